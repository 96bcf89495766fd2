package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"go-jobboard-backend/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// recentLogLimit caps the audit entries attached to list responses.
// Detail endpoints load the full trail.
const recentLogLimit = 5

type applicationRepo struct {
	db *pgxpool.Pool
}

// NewApplicationRepository creates a new application repository
func NewApplicationRepository(db *pgxpool.Pool) domain.ApplicationRepository {
	return &applicationRepo{db: db}
}

// CreateWithLog inserts the application row and its creation log entry in
// one transaction. A concurrent duplicate submission loses on the
// (job_id, applicant_id) unique index and maps to ErrDuplicateApplication.
func (r *applicationRepo) CreateWithLog(ctx context.Context, app *domain.Application, logEntry *domain.ApplicationLog) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	answers, err := json.Marshal(app.Answers)
	if err != nil {
		return err
	}

	now := time.Now()
	app.CreatedAt = now
	app.UpdatedAt = now

	err = tx.QueryRow(ctx, `
		INSERT INTO applications (job_id, applicant_id, status, answers, resume_url, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id`,
		app.JobID, app.ApplicantID, app.Status, string(answers), app.ResumeURL,
		app.CreatedAt, app.UpdatedAt,
	).Scan(&app.ID)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return domain.ErrDuplicateApplication
		}
		return err
	}

	logEntry.ApplicationID = app.ID
	logEntry.CreatedAt = now
	err = tx.QueryRow(ctx, `
		INSERT INTO application_logs (application_id, action, previous_status, new_status, notes, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id`,
		logEntry.ApplicationID, logEntry.Action, logEntry.PreviousStatus,
		logEntry.NewStatus, logEntry.Notes, logEntry.CreatedAt,
	).Scan(&logEntry.ID)
	if err != nil {
		return err
	}

	return tx.Commit(ctx)
}

func (r *applicationRepo) GetByJobAndApplicant(ctx context.Context, jobID, applicantID string) (*domain.Application, error) {
	query := `
		SELECT id, job_id, applicant_id, status, answers, resume_url, created_at, updated_at
		FROM applications
		WHERE job_id = $1 AND applicant_id = $2`

	app, err := scanApplication(r.db.QueryRow(ctx, query, jobID, applicantID))
	if err != nil {
		return nil, err
	}
	return app, nil
}

// GetByIDForApplicant retrieves one application the applicant owns, with
// the job summary and full audit trail. Absent and foreign rows are
// indistinguishable to the caller.
func (r *applicationRepo) GetByIDForApplicant(ctx context.Context, id, applicantID string) (*domain.Application, error) {
	query := `
		SELECT
			a.id, a.job_id, a.applicant_id, a.status, a.answers, a.resume_url,
			a.created_at, a.updated_at,
			j.id, j.title, j.department, j.location, j.status, j.publisher_id,
			u.id, u.name, u.email
		FROM applications a
		JOIN jobs j ON a.job_id = j.id
		JOIN users u ON j.publisher_id = u.id
		WHERE a.id = $1 AND a.applicant_id = $2`

	var app domain.Application
	var answers []byte
	var job domain.JobSummary
	var publisher domain.UserSummary
	err := r.db.QueryRow(ctx, query, id, applicantID).Scan(
		&app.ID, &app.JobID, &app.ApplicantID, &app.Status, &answers, &app.ResumeURL,
		&app.CreatedAt, &app.UpdatedAt,
		&job.ID, &job.Title, &job.Department, &job.Location, &job.Status, &job.PublisherID,
		&publisher.ID, &publisher.Name, &publisher.Email,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	if err := json.Unmarshal(answers, &app.Answers); err != nil {
		return nil, err
	}
	job.Publisher = &publisher
	app.Job = &job

	app.ActionLogs, err = r.fetchLogs(ctx, app.ID, 0)
	if err != nil {
		return nil, err
	}
	return &app, nil
}

// GetByIDForPublisher retrieves one application whose parent job belongs
// to publisherID, with the applicant summary and full audit trail.
func (r *applicationRepo) GetByIDForPublisher(ctx context.Context, id, publisherID string) (*domain.Application, error) {
	query := `
		SELECT
			a.id, a.job_id, a.applicant_id, a.status, a.answers, a.resume_url,
			a.created_at, a.updated_at,
			j.id, j.title, j.department, j.location, j.status, j.publisher_id,
			u.id, u.name, u.email,
			p.id, p.name, p.email
		FROM applications a
		JOIN jobs j ON a.job_id = j.id
		JOIN users u ON a.applicant_id = u.id
		JOIN users p ON j.publisher_id = p.id
		WHERE a.id = $1 AND j.publisher_id = $2`

	var app domain.Application
	var answers []byte
	var job domain.JobSummary
	var applicant, publisher domain.UserSummary
	err := r.db.QueryRow(ctx, query, id, publisherID).Scan(
		&app.ID, &app.JobID, &app.ApplicantID, &app.Status, &answers, &app.ResumeURL,
		&app.CreatedAt, &app.UpdatedAt,
		&job.ID, &job.Title, &job.Department, &job.Location, &job.Status, &job.PublisherID,
		&applicant.ID, &applicant.Name, &applicant.Email,
		&publisher.ID, &publisher.Name, &publisher.Email,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	if err := json.Unmarshal(answers, &app.Answers); err != nil {
		return nil, err
	}
	job.Publisher = &publisher
	app.Job = &job
	app.Applicant = &applicant

	app.ActionLogs, err = r.fetchLogs(ctx, app.ID, 0)
	if err != nil {
		return nil, err
	}
	return &app, nil
}

// FetchByApplicant retrieves one page of the applicant's own applications,
// newest first, with job summaries and recent audit entries.
func (r *applicationRepo) FetchByApplicant(ctx context.Context, applicantID string, filter domain.ApplicationFilter) ([]domain.Application, int64, error) {
	query := `
		SELECT
			a.id, a.job_id, a.applicant_id, a.status, a.answers, a.resume_url,
			a.created_at, a.updated_at,
			j.id, j.title, j.department, j.location, j.status, j.publisher_id,
			u.id, u.name, u.email
		FROM applications a
		JOIN jobs j ON a.job_id = j.id
		JOIN users u ON j.publisher_id = u.id
		WHERE a.applicant_id = $1
		ORDER BY a.created_at DESC
		LIMIT $2 OFFSET $3`

	offset := (filter.Page - 1) * filter.Limit
	rows, err := r.db.Query(ctx, query, applicantID, filter.Limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var applications []domain.Application
	for rows.Next() {
		var app domain.Application
		var answers []byte
		var job domain.JobSummary
		var publisher domain.UserSummary
		if err := rows.Scan(
			&app.ID, &app.JobID, &app.ApplicantID, &app.Status, &answers, &app.ResumeURL,
			&app.CreatedAt, &app.UpdatedAt,
			&job.ID, &job.Title, &job.Department, &job.Location, &job.Status, &job.PublisherID,
			&publisher.ID, &publisher.Name, &publisher.Email,
		); err != nil {
			return nil, 0, err
		}
		if err := json.Unmarshal(answers, &app.Answers); err != nil {
			return nil, 0, err
		}
		job.Publisher = &publisher
		app.Job = &job
		applications = append(applications, app)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	var total int64
	if err := r.db.QueryRow(ctx,
		`SELECT COUNT(*) FROM applications WHERE applicant_id = $1`, applicantID,
	).Scan(&total); err != nil {
		return nil, 0, err
	}

	if err := r.attachRecentLogs(ctx, applications); err != nil {
		return nil, 0, err
	}
	return applications, total, nil
}

// FetchByPublisher retrieves one page of applications across the
// publisher's jobs, optionally narrowed to one job or one status.
func (r *applicationRepo) FetchByPublisher(ctx context.Context, publisherID string, filter domain.ApplicationFilter) ([]domain.Application, int64, error) {
	baseWhere := ` FROM applications a
		JOIN jobs j ON a.job_id = j.id
		JOIN users u ON a.applicant_id = u.id
		WHERE j.publisher_id = $1`

	args := []interface{}{publisherID}
	if filter.JobID != "" {
		args = append(args, filter.JobID)
		baseWhere += fmt.Sprintf(" AND a.job_id = $%d", len(args))
	}
	if filter.Status != "" {
		args = append(args, filter.Status)
		baseWhere += fmt.Sprintf(" AND a.status = $%d", len(args))
	}

	var total int64
	if err := r.db.QueryRow(ctx, "SELECT COUNT(*)"+baseWhere, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := `
		SELECT
			a.id, a.job_id, a.applicant_id, a.status, a.answers, a.resume_url,
			a.created_at, a.updated_at,
			j.id, j.title, j.department, j.location, j.status, j.publisher_id,
			u.id, u.name, u.email` + baseWhere
	args = append(args, filter.Limit, (filter.Page-1)*filter.Limit)
	query += fmt.Sprintf(" ORDER BY a.created_at DESC LIMIT $%d OFFSET $%d", len(args)-1, len(args))

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var applications []domain.Application
	for rows.Next() {
		var app domain.Application
		var answers []byte
		var job domain.JobSummary
		var applicant domain.UserSummary
		if err := rows.Scan(
			&app.ID, &app.JobID, &app.ApplicantID, &app.Status, &answers, &app.ResumeURL,
			&app.CreatedAt, &app.UpdatedAt,
			&job.ID, &job.Title, &job.Department, &job.Location, &job.Status, &job.PublisherID,
			&applicant.ID, &applicant.Name, &applicant.Email,
		); err != nil {
			return nil, 0, err
		}
		if err := json.Unmarshal(answers, &app.Answers); err != nil {
			return nil, 0, err
		}
		app.Job = &job
		app.Applicant = &applicant
		applications = append(applications, app)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	if err := r.attachRecentLogs(ctx, applications); err != nil {
		return nil, 0, err
	}
	return applications, total, nil
}

// UpdateStatusWithLog locks the application row, verifies ownership
// through the parent job, then writes the new status and the audit entry
// in the same transaction. Two concurrent transitions serialize on the
// row lock, so each log entry records the status it actually replaced.
func (r *applicationRepo) UpdateStatusWithLog(ctx context.Context, id, publisherID, status, notes string) (*domain.Application, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	var previous string
	err = tx.QueryRow(ctx, `
		SELECT a.status
		FROM applications a
		JOIN jobs j ON a.job_id = j.id
		WHERE a.id = $1 AND j.publisher_id = $2
		FOR UPDATE OF a`,
		id, publisherID,
	).Scan(&previous)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}

	now := time.Now()
	if _, err := tx.Exec(ctx,
		`UPDATE applications SET status = $2, updated_at = $3 WHERE id = $1`,
		id, status, now,
	); err != nil {
		return nil, err
	}

	action := fmt.Sprintf("Status changed from %s to %s", previous, status)
	if _, err := tx.Exec(ctx, `
		INSERT INTO application_logs (application_id, action, previous_status, new_status, notes, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		id, action, previous, status, notes, now,
	); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	return r.GetByIDForPublisher(ctx, id, publisherID)
}

// CountByPublisher returns per-status counts across the publisher's jobs
func (r *applicationRepo) CountByPublisher(ctx context.Context, publisherID string) (*domain.ApplicationStats, error) {
	query := `
		SELECT
			COUNT(*),
			COUNT(*) FILTER (WHERE a.status = 'PENDING'),
			COUNT(*) FILTER (WHERE a.status = 'ACCEPTED'),
			COUNT(*) FILTER (WHERE a.status = 'REJECTED'),
			COUNT(*) FILTER (WHERE a.status = 'ON_HOLD')
		FROM applications a
		JOIN jobs j ON a.job_id = j.id
		WHERE j.publisher_id = $1`

	var stats domain.ApplicationStats
	err := r.db.QueryRow(ctx, query, publisherID).Scan(
		&stats.Total, &stats.Pending, &stats.Accepted, &stats.Rejected, &stats.OnHold,
	)
	if err != nil {
		return nil, err
	}
	return &stats, nil
}

// CountByApplicant returns per-status counts of the applicant's own applications
func (r *applicationRepo) CountByApplicant(ctx context.Context, applicantID string) (*domain.ApplicationStats, error) {
	query := `
		SELECT
			COUNT(*),
			COUNT(*) FILTER (WHERE status = 'PENDING'),
			COUNT(*) FILTER (WHERE status = 'ACCEPTED'),
			COUNT(*) FILTER (WHERE status = 'REJECTED'),
			COUNT(*) FILTER (WHERE status = 'ON_HOLD')
		FROM applications
		WHERE applicant_id = $1`

	var stats domain.ApplicationStats
	err := r.db.QueryRow(ctx, query, applicantID).Scan(
		&stats.Total, &stats.Pending, &stats.Accepted, &stats.Rejected, &stats.OnHold,
	)
	if err != nil {
		return nil, err
	}
	return &stats, nil
}

// ResumeURLsByJob lists the stored resume locations for a job, used to
// clean up uploaded files when the job is deleted.
func (r *applicationRepo) ResumeURLsByJob(ctx context.Context, jobID string) ([]string, error) {
	rows, err := r.db.Query(ctx,
		`SELECT resume_url FROM applications WHERE job_id = $1 AND resume_url IS NOT NULL`, jobID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var urls []string
	for rows.Next() {
		var url string
		if err := rows.Scan(&url); err != nil {
			return nil, err
		}
		urls = append(urls, url)
	}
	return urls, rows.Err()
}

// fetchLogs loads the audit trail for one application, newest first.
// limit 0 means the full trail.
func (r *applicationRepo) fetchLogs(ctx context.Context, applicationID string, limit int) ([]domain.ApplicationLog, error) {
	query := `
		SELECT id, application_id, action, previous_status, new_status, notes, created_at
		FROM application_logs
		WHERE application_id = $1
		ORDER BY created_at DESC`
	args := []interface{}{applicationID}
	if limit > 0 {
		args = append(args, limit)
		query += " LIMIT $2"
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var logs []domain.ApplicationLog
	for rows.Next() {
		var entry domain.ApplicationLog
		if err := rows.Scan(
			&entry.ID, &entry.ApplicationID, &entry.Action,
			&entry.PreviousStatus, &entry.NewStatus, &entry.Notes, &entry.CreatedAt,
		); err != nil {
			return nil, err
		}
		logs = append(logs, entry)
	}
	return logs, rows.Err()
}

// attachRecentLogs fills ActionLogs on each listed application with its
// most recent audit entries.
func (r *applicationRepo) attachRecentLogs(ctx context.Context, applications []domain.Application) error {
	for i := range applications {
		logs, err := r.fetchLogs(ctx, applications[i].ID, recentLogLimit)
		if err != nil {
			return err
		}
		applications[i].ActionLogs = logs
	}
	return nil
}

func scanApplication(row pgx.Row) (*domain.Application, error) {
	var app domain.Application
	var answers []byte
	err := row.Scan(
		&app.ID, &app.JobID, &app.ApplicantID, &app.Status, &answers, &app.ResumeURL,
		&app.CreatedAt, &app.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	if err := json.Unmarshal(answers, &app.Answers); err != nil {
		return nil, err
	}
	return &app, nil
}
