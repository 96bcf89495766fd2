package domain

import (
	"context"
	"errors"
	"strconv"
	"time"
)

// Common domain errors
var (
	ErrNotFound             = errors.New("resource not found")
	ErrDuplicateApplication = errors.New("application already exists for this job and applicant")
	ErrDuplicateEmail       = errors.New("email already registered")
)

// Job status constants
const (
	JobStatusDraft  = "DRAFT"
	JobStatusActive = "ACTIVE"
	JobStatusClosed = "CLOSED"
)

// ValidJobStatus reports whether s is a recognized job status
func ValidJobStatus(s string) bool {
	switch s {
	case JobStatusDraft, JobStatusActive, JobStatusClosed:
		return true
	}
	return false
}

// CustomQuestion is an admin-defined prompt attached to a job.
type CustomQuestion struct {
	ID       *int64 `json:"id,omitempty"`
	Question string `json:"question"`
	Required bool   `json:"required"`
}

// AnswerKey derives the key under which this question's answer is
// stored: the stable id if present, otherwise the literal question
// text. Changing a question's text without an id orphans previously
// stored answers, so ids should be assigned whenever questions are
// edited after publication.
func (q CustomQuestion) AnswerKey() string {
	if q.ID != nil {
		return strconv.FormatInt(*q.ID, 10)
	}
	return q.Question
}

type Job struct {
	ID              string           `json:"id"`
	Title           string           `json:"title"`
	Department      string           `json:"department"`
	Location        string           `json:"location"`
	Salary          *string          `json:"salary,omitempty"`
	Description     string           `json:"description"`
	Requirements    string           `json:"requirements"`
	ResumeRequired  bool             `json:"resume_required"`
	CustomQuestions []CustomQuestion `json:"custom_questions"`
	Status          string           `json:"status"`
	PublisherID     string           `json:"publisher_id"`
	CreatedAt       time.Time        `json:"created_at"`
	UpdatedAt       time.Time        `json:"updated_at"`

	// Joined data for list/detail responses
	Publisher        *UserSummary `json:"publisher,omitempty"`
	ApplicationCount *int64       `json:"application_count,omitempty"`
}

// JobSummary is the projection embedded in application responses
type JobSummary struct {
	ID          string       `json:"id"`
	Title       string       `json:"title"`
	Department  string       `json:"department"`
	Location    string       `json:"location"`
	Status      string       `json:"status"`
	PublisherID string       `json:"publisher_id"`
	Publisher   *UserSummary `json:"publisher,omitempty"`
}

// Summary returns the embeddable projection of a job
func (j *Job) Summary() *JobSummary {
	return &JobSummary{
		ID:          j.ID,
		Title:       j.Title,
		Department:  j.Department,
		Location:    j.Location,
		Status:      j.Status,
		PublisherID: j.PublisherID,
		Publisher:   j.Publisher,
	}
}

// JobFilter narrows job listings. Search matches title/description
// case-insensitively, Location is a substring match, Department exact.
type JobFilter struct {
	Search     string
	Department string
	Location   string
	Status     string // admin listing only
	Limit      int    // 0 means no cap
}

// CreateJobInput is the validated payload for job creation
type CreateJobInput struct {
	Title           string           `json:"title" binding:"required"`
	Department      string           `json:"department" binding:"required"`
	Location        string           `json:"location" binding:"required"`
	Salary          *string          `json:"salary"`
	Description     string           `json:"description" binding:"required"`
	Requirements    string           `json:"requirements" binding:"required"`
	ResumeRequired  *bool            `json:"resume_required"`
	CustomQuestions []CustomQuestion `json:"custom_questions"`
	Status          string           `json:"status"`
}

type JobRepository interface {
	Create(ctx context.Context, job *Job) error
	GetByID(ctx context.Context, id string) (*Job, error)
	GetByIDWithPublisher(ctx context.Context, id string) (*Job, error)
	FetchActive(ctx context.Context, filter JobFilter) ([]Job, error)
	FetchByPublisher(ctx context.Context, publisherID string, filter JobFilter) ([]Job, error)
	UpdateStatus(ctx context.Context, id, status string) error
	Delete(ctx context.Context, id string) error
}

type JobUsecase interface {
	CreateJob(ctx context.Context, publisherID string, input CreateJobInput) (*Job, error)
	GetJobDetails(ctx context.Context, id string) (*Job, error)
	ListPublicJobs(ctx context.Context, filter JobFilter) ([]Job, error)
	ListJobsByPublisher(ctx context.Context, publisherID string, filter JobFilter) ([]Job, error)
	UpdateJobStatus(ctx context.Context, publisherID, jobID, status string) (*Job, error)
	DeleteJob(ctx context.Context, publisherID, jobID string) error
}
