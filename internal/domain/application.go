package domain

import (
	"context"
	"time"
)

// Application status constants. Transitions are unordered: any status
// may be set from any other, and a no-op transition is still logged.
const (
	ApplicationStatusPending  = "PENDING"
	ApplicationStatusAccepted = "ACCEPTED"
	ApplicationStatusRejected = "REJECTED"
	ApplicationStatusOnHold   = "ON_HOLD"
)

// ValidApplicationStatus reports whether s is a recognized application status
func ValidApplicationStatus(s string) bool {
	switch s {
	case ApplicationStatusPending, ApplicationStatusAccepted,
		ApplicationStatusRejected, ApplicationStatusOnHold:
		return true
	}
	return false
}

// Application represents a candidate's submission to a job
type Application struct {
	ID          string            `json:"id"`
	JobID       string            `json:"job_id"`
	ApplicantID string            `json:"applicant_id"`
	Status      string            `json:"status"`
	Answers     map[string]string `json:"answers"`
	ResumeURL   *string           `json:"resume_url,omitempty"`
	CreatedAt   time.Time         `json:"created_at"`
	UpdatedAt   time.Time         `json:"updated_at"`

	// Joined data for responses
	Job        *JobSummary      `json:"job,omitempty"`
	Applicant  *UserSummary     `json:"applicant,omitempty"`
	ActionLogs []ApplicationLog `json:"action_logs,omitempty"`
}

// ApplicationLog is one append-only audit entry for an application.
// PreviousStatus is nil only for the creation event.
type ApplicationLog struct {
	ID             string    `json:"id"`
	ApplicationID  string    `json:"application_id"`
	Action         string    `json:"action"`
	PreviousStatus *string   `json:"previous_status,omitempty"`
	NewStatus      string    `json:"new_status"`
	Notes          string    `json:"notes,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
}

// ResumeFile is a raw uploaded resume passed through from the delivery layer
type ResumeFile struct {
	Filename    string
	ContentType string
	Data        []byte
}

// SubmitApplicationInput is the payload for a new application
type SubmitApplicationInput struct {
	JobID      string
	Answers    map[string]string
	ResumeURL  string      // pre-hosted resume
	ResumeFile *ResumeFile // raw upload, stored before any row is written
}

// ApplicationFilter narrows application listings
type ApplicationFilter struct {
	JobID  string
	Status string
	Page   int
	Limit  int
}

// Pagination describes one page of a list response
type Pagination struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"total_pages"`
}

// ApplicationStats are per-status counts scoped to one publisher's jobs
// or one applicant's own applications
type ApplicationStats struct {
	Total    int64 `json:"total"`
	Pending  int64 `json:"pending"`
	Accepted int64 `json:"accepted"`
	Rejected int64 `json:"rejected"`
	OnHold   int64 `json:"on_hold"`
}

// DashboardStats summarize a publisher's activity
type DashboardStats struct {
	TotalJobs           int64 `json:"total_jobs"`
	ActiveJobs          int64 `json:"active_jobs"`
	TotalApplications   int64 `json:"total_applications"`
	PendingApplications int64 `json:"pending_applications"`
	RecentApplications  int64 `json:"recent_applications"`  // last 7 days
	MonthlyApplications int64 `json:"monthly_applications"` // current month
}

// ApplicationRepository defines data access for applications and their logs
type ApplicationRepository interface {
	// CreateWithLog inserts the application and its creation log entry in
	// one transaction; neither row exists without the other.
	CreateWithLog(ctx context.Context, app *Application, logEntry *ApplicationLog) error
	GetByJobAndApplicant(ctx context.Context, jobID, applicantID string) (*Application, error)
	GetByIDForApplicant(ctx context.Context, id, applicantID string) (*Application, error)
	GetByIDForPublisher(ctx context.Context, id, publisherID string) (*Application, error)
	FetchByApplicant(ctx context.Context, applicantID string, filter ApplicationFilter) ([]Application, int64, error)
	FetchByPublisher(ctx context.Context, publisherID string, filter ApplicationFilter) ([]Application, int64, error)
	// UpdateStatusWithLog locks the row, verifies the parent job belongs
	// to publisherID, updates the status and appends the log entry in one
	// transaction. Returns ErrNotFound for absent or foreign applications.
	UpdateStatusWithLog(ctx context.Context, id, publisherID, status, notes string) (*Application, error)
	CountByPublisher(ctx context.Context, publisherID string) (*ApplicationStats, error)
	CountByApplicant(ctx context.Context, applicantID string) (*ApplicationStats, error)
	ResumeURLsByJob(ctx context.Context, jobID string) ([]string, error)
}

// StatsRepository provides dashboard aggregates
type StatsRepository interface {
	DashboardStats(ctx context.Context, publisherID string) (*DashboardStats, error)
}

// ApplicationUsecase defines the lifecycle business logic
type ApplicationUsecase interface {
	// Applicant operations
	SubmitApplication(ctx context.Context, applicantID string, input SubmitApplicationInput) (*Application, error)
	GetMyApplications(ctx context.Context, applicantID string, filter ApplicationFilter) ([]Application, *ApplicationStats, *Pagination, error)
	GetMyApplicationDetail(ctx context.Context, applicantID, applicationID string) (*Application, error)
	GetApplicationForJob(ctx context.Context, applicantID, jobID string) (*Application, error)

	// Publisher operations
	ListPublisherApplications(ctx context.Context, publisherID string, filter ApplicationFilter) ([]Application, *ApplicationStats, *Pagination, error)
	GetPublisherApplicationDetail(ctx context.Context, publisherID, applicationID string) (*Application, error)
	UpdateApplicationStatus(ctx context.Context, publisherID, applicationID, status, notes string) (*Application, error)
	ExportPublisherApplications(ctx context.Context, publisherID, format string, filter ApplicationFilter) ([]byte, string, error)
}

// StatsUsecase provides the admin dashboard aggregates
type StatsUsecase interface {
	GetDashboardStats(ctx context.Context, publisherID string) (*DashboardStats, error)
}
