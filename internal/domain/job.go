// Package domain holds the job model, report structures and error taxonomy
// shared by every stage of the report pipeline.
package domain

import "time"

// JobStatus is one state of the job lifecycle.
type JobStatus string

const (
	JobStatusQueued           JobStatus = "queued"
	JobStatusProcessing       JobStatus = "processing"
	JobStatusGeneratingReport JobStatus = "generating_report"
	JobStatusCompleted        JobStatus = "completed"
	JobStatusFailed           JobStatus = "failed"
)

// IsTerminal reports whether no further transition can leave the status.
func (s JobStatus) IsTerminal() bool {
	return s == JobStatusCompleted || s == JobStatusFailed
}

// IsActive reports whether a worker is currently driving the job.
func (s JobStatus) IsActive() bool {
	return s == JobStatusProcessing || s == JobStatusGeneratingReport
}

// Predecessors lists the statuses a job may move into s from.
func (s JobStatus) Predecessors() []JobStatus {
	switch s {
	case JobStatusProcessing:
		return []JobStatus{JobStatusQueued}
	case JobStatusGeneratingReport:
		return []JobStatus{JobStatusProcessing}
	case JobStatusCompleted:
		return []JobStatus{JobStatusGeneratingReport}
	case JobStatusFailed:
		return []JobStatus{JobStatusQueued, JobStatusProcessing, JobStatusGeneratingReport}
	default:
		return nil
	}
}

// Prompt roles accepted in Job.CustomPrompts.
const (
	PromptSummary    = "summary"
	PromptTranscript = "transcript"
)

// Job is one end-to-end request to transcribe and summarize one audio source.
type Job struct {
	ID             string            `gorm:"column:id;primaryKey" json:"id"`
	Status         JobStatus         `gorm:"column:status;not null;index" json:"status"`
	SourcePath     string            `gorm:"column:source_path;not null" json:"source_path"`
	SourceName     string            `gorm:"column:source_name" json:"source_name"`
	ModelID        string            `gorm:"column:model_id;not null" json:"model_id"`
	OutputOptions  []string          `gorm:"column:output_options;serializer:json" json:"output_options"`
	CustomPrompts  map[string]string `gorm:"column:custom_prompts;serializer:json" json:"custom_prompts,omitempty"`
	SubmitTime     time.Time         `gorm:"column:submit_time;not null;index" json:"submit_time"`
	StartTime      *time.Time        `gorm:"column:start_time" json:"start_time,omitempty"`
	CompletionTime *time.Time        `gorm:"column:completion_time" json:"completion_time,omitempty"`
	ErrorMessage   string            `gorm:"column:error_message" json:"error_message,omitempty"`
	ResultPreview  string            `gorm:"column:result_preview" json:"result_preview,omitempty"`
	DownloadLinks  map[string]string `gorm:"column:download_links;serializer:json" json:"download_links,omitempty"`
}

// TableName pins the table name for gorm.
func (Job) TableName() string {
	return "jobs"
}

// Prompt returns the custom prompt for role, if one was supplied.
func (j *Job) Prompt(role string) (string, bool) {
	if j.CustomPrompts == nil {
		return "", false
	}
	p, ok := j.CustomPrompts[role]
	if !ok || p == "" {
		return "", false
	}
	return p, true
}

// Summary returns the list view of the job.
func (j *Job) Summary() JobSummary {
	return JobSummary{
		ID:             j.ID,
		Status:         j.Status,
		SourceName:     j.SourceName,
		ModelID:        j.ModelID,
		SubmitTime:     j.SubmitTime,
		StartTime:      j.StartTime,
		CompletionTime: j.CompletionTime,
		ErrorMessage:   j.ErrorMessage,
		DownloadLinks:  j.DownloadLinks,
	}
}

// JobSummary is the list view of a job, without the rendered preview.
type JobSummary struct {
	ID             string            `json:"id"`
	Status         JobStatus         `json:"status"`
	SourceName     string            `json:"source_name"`
	ModelID        string            `json:"model_id"`
	SubmitTime     time.Time         `json:"submit_time"`
	StartTime      *time.Time        `json:"start_time,omitempty"`
	CompletionTime *time.Time        `json:"completion_time,omitempty"`
	ErrorMessage   string            `json:"error_message,omitempty"`
	DownloadLinks  map[string]string `json:"download_links,omitempty"`
}
