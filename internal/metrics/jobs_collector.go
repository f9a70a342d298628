package metrics

import (
	"context"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/nguyentantai21042004/audio-report/internal/domain"
	"github.com/nguyentantai21042004/audio-report/internal/logger"
)

// JobLister is the part of the job store the collector reads.
type JobLister interface {
	List(ctx context.Context) ([]domain.JobSummary, error)
}

type jobStatusCollector struct {
	store       JobLister
	logger      logger.Logger
	jobsByState *prometheus.Desc
}

// NewJobStatusCollector reports the number of stored jobs per status at
// scrape time.
func NewJobStatusCollector(s JobLister, l logger.Logger) prometheus.Collector {
	return &jobStatusCollector{
		store:  s,
		logger: l,
		jobsByState: prometheus.NewDesc(
			fmt.Sprintf("%s_jobs_by_status", audioReport),
			"Number of stored jobs in each status.",
			[]string{statusLabel},
			prometheus.Labels{},
		),
	}
}

func (c *jobStatusCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.jobsByState
}

func (c *jobStatusCollector) Collect(ch chan<- prometheus.Metric) {
	jobs, err := c.store.List(context.Background())
	if err != nil {
		c.logger.Error(context.Background(), "failed to collect job statistics: %v", err)
		return
	}

	counts := map[domain.JobStatus]int{
		domain.JobStatusQueued:           0,
		domain.JobStatusProcessing:       0,
		domain.JobStatusGeneratingReport: 0,
		domain.JobStatusCompleted:        0,
		domain.JobStatusFailed:           0,
	}
	for _, j := range jobs {
		counts[j.Status]++
	}
	for status, n := range counts {
		ch <- prometheus.MustNewConstMetric(c.jobsByState, prometheus.GaugeValue, float64(n), string(status))
	}
}
