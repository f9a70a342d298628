package metrics

import (
	"context"
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/nguyentantai21042004/audio-report/internal/domain"
	"github.com/nguyentantai21042004/audio-report/internal/logger"
)

type staticLister struct {
	jobs []domain.JobSummary
	err  error
}

func (s staticLister) List(context.Context) ([]domain.JobSummary, error) {
	return s.jobs, s.err
}

func TestIncreaseJobsTotalMetric(t *testing.T) {
	before := testutil.ToFloat64(jobsTotalMetric.WithLabelValues("completed"))
	IncreaseJobsTotalMetric("completed")
	if got := testutil.ToFloat64(jobsTotalMetric.WithLabelValues("completed")); got != before+1 {
		t.Errorf("jobs_total{completed} = %v, want %v", got, before+1)
	}
}

func TestJobsInFlight(t *testing.T) {
	before := testutil.ToFloat64(jobsInFlightMetric)
	IncJobsInFlight()
	IncJobsInFlight()
	DecJobsInFlight()
	if got := testutil.ToFloat64(jobsInFlightMetric); got != before+1 {
		t.Errorf("jobs_in_flight = %v, want %v", got, before+1)
	}
}

func TestJobStatusCollector(t *testing.T) {
	lister := staticLister{jobs: []domain.JobSummary{
		{ID: "a", Status: domain.JobStatusQueued},
		{ID: "b", Status: domain.JobStatusQueued},
		{ID: "c", Status: domain.JobStatusCompleted},
	}}
	c := NewJobStatusCollector(lister, logger.NewNop())

	reg := prometheus.NewRegistry()
	reg.MustRegister(c)
	families, err := reg.Gather()
	if err != nil {
		t.Fatalf("Gather() error = %v", err)
	}
	if len(families) != 1 || families[0].GetName() != "audio_report_jobs_by_status" {
		t.Fatalf("Gather() returned %d families, want audio_report_jobs_by_status only", len(families))
	}

	got := map[string]float64{}
	for _, m := range families[0].GetMetric() {
		got[m.GetLabel()[0].GetValue()] = m.GetGauge().GetValue()
	}
	want := map[string]float64{
		"queued":            2,
		"processing":        0,
		"generating_report": 0,
		"completed":         1,
		"failed":            0,
	}
	if len(got) != len(want) {
		t.Errorf("got %d status series, want %d", len(got), len(want))
	}
	for status, n := range want {
		if got[status] != n {
			t.Errorf("jobs_by_status{%s} = %v, want %v", status, got[status], n)
		}
	}
}

func TestJobStatusCollectorStoreError(t *testing.T) {
	c := NewJobStatusCollector(staticLister{err: errors.New("db locked")}, logger.NewNop())

	reg := prometheus.NewRegistry()
	reg.MustRegister(c)
	if n, err := testutil.GatherAndCount(reg); err != nil || n != 0 {
		t.Errorf("GatherAndCount() = %d, %v; want 0, nil", n, err)
	}
}
