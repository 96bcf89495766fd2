package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"go-jobboard-backend/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type jobRepo struct {
	db *pgxpool.Pool
}

func NewJobRepository(db *pgxpool.Pool) domain.JobRepository {
	return &jobRepo{db: db}
}

func (r *jobRepo) Create(ctx context.Context, job *domain.Job) error {
	query := `
		INSERT INTO jobs (title, department, location, salary, description, requirements, resume_required, custom_questions, status, publisher_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING id`

	questions, err := json.Marshal(job.CustomQuestions)
	if err != nil {
		return err
	}

	now := time.Now()
	job.CreatedAt = now
	job.UpdatedAt = now

	return r.db.QueryRow(ctx, query,
		job.Title, job.Department, job.Location, job.Salary,
		job.Description, job.Requirements, job.ResumeRequired,
		string(questions), job.Status, job.PublisherID,
		job.CreatedAt, job.UpdatedAt,
	).Scan(&job.ID)
}

func (r *jobRepo) GetByID(ctx context.Context, id string) (*domain.Job, error) {
	query := `
		SELECT id, title, department, location, salary, description, requirements, resume_required, custom_questions, status, publisher_id, created_at, updated_at
		FROM jobs WHERE id = $1`

	var job domain.Job
	var questions []byte
	err := r.db.QueryRow(ctx, query, id).Scan(
		&job.ID, &job.Title, &job.Department, &job.Location, &job.Salary,
		&job.Description, &job.Requirements, &job.ResumeRequired,
		&questions, &job.Status, &job.PublisherID,
		&job.CreatedAt, &job.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	if err := json.Unmarshal(questions, &job.CustomQuestions); err != nil {
		return nil, err
	}
	return &job, nil
}

// GetByIDWithPublisher retrieves a job with the publisher summary joined in
func (r *jobRepo) GetByIDWithPublisher(ctx context.Context, id string) (*domain.Job, error) {
	query := `
		SELECT
			j.id, j.title, j.department, j.location, j.salary, j.description,
			j.requirements, j.resume_required, j.custom_questions, j.status,
			j.publisher_id, j.created_at, j.updated_at,
			u.id, u.name, u.email
		FROM jobs j
		JOIN users u ON j.publisher_id = u.id
		WHERE j.id = $1`

	var job domain.Job
	var questions []byte
	var publisher domain.UserSummary
	err := r.db.QueryRow(ctx, query, id).Scan(
		&job.ID, &job.Title, &job.Department, &job.Location, &job.Salary,
		&job.Description, &job.Requirements, &job.ResumeRequired,
		&questions, &job.Status, &job.PublisherID,
		&job.CreatedAt, &job.UpdatedAt,
		&publisher.ID, &publisher.Name, &publisher.Email,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	if err := json.Unmarshal(questions, &job.CustomQuestions); err != nil {
		return nil, err
	}
	job.Publisher = &publisher
	return &job, nil
}

// FetchActive retrieves ACTIVE jobs for the public catalog. The status
// filter is hardcoded so no query parameter can widen it.
func (r *jobRepo) FetchActive(ctx context.Context, filter domain.JobFilter) ([]domain.Job, error) {
	query := `
		SELECT
			j.id, j.title, j.department, j.location, j.salary, j.description,
			j.requirements, j.resume_required, j.custom_questions, j.status,
			j.publisher_id, j.created_at, j.updated_at,
			u.id, u.name, u.email
		FROM jobs j
		JOIN users u ON j.publisher_id = u.id
		WHERE j.status = 'ACTIVE'`

	args := []interface{}{}
	if filter.Search != "" {
		args = append(args, "%"+filter.Search+"%")
		query += fmt.Sprintf(" AND (j.title ILIKE $%d OR j.description ILIKE $%d)", len(args), len(args))
	}
	if filter.Department != "" {
		args = append(args, filter.Department)
		query += fmt.Sprintf(" AND j.department = $%d", len(args))
	}
	if filter.Location != "" {
		args = append(args, "%"+filter.Location+"%")
		query += fmt.Sprintf(" AND j.location ILIKE $%d", len(args))
	}
	query += " ORDER BY j.created_at DESC"
	if filter.Limit > 0 {
		args = append(args, filter.Limit)
		query += fmt.Sprintf(" LIMIT $%d", len(args))
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanJobsWithPublisher(rows)
}

// FetchByPublisher retrieves one publisher's jobs with application counts
func (r *jobRepo) FetchByPublisher(ctx context.Context, publisherID string, filter domain.JobFilter) ([]domain.Job, error) {
	query := `
		SELECT
			j.id, j.title, j.department, j.location, j.salary, j.description,
			j.requirements, j.resume_required, j.custom_questions, j.status,
			j.publisher_id, j.created_at, j.updated_at,
			COUNT(a.id) AS application_count
		FROM jobs j
		LEFT JOIN applications a ON a.job_id = j.id
		WHERE j.publisher_id = $1`

	args := []interface{}{publisherID}
	if filter.Status != "" {
		args = append(args, filter.Status)
		query += fmt.Sprintf(" AND j.status = $%d", len(args))
	}
	query += " GROUP BY j.id ORDER BY j.created_at DESC"

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var jobs []domain.Job
	for rows.Next() {
		var job domain.Job
		var questions []byte
		var count int64
		if err := rows.Scan(
			&job.ID, &job.Title, &job.Department, &job.Location, &job.Salary,
			&job.Description, &job.Requirements, &job.ResumeRequired,
			&questions, &job.Status, &job.PublisherID,
			&job.CreatedAt, &job.UpdatedAt, &count,
		); err != nil {
			return nil, err
		}
		if err := json.Unmarshal(questions, &job.CustomQuestions); err != nil {
			return nil, err
		}
		job.ApplicationCount = &count
		jobs = append(jobs, job)
	}
	return jobs, rows.Err()
}

func (r *jobRepo) UpdateStatus(ctx context.Context, id, status string) error {
	query := `UPDATE jobs SET status = $2, updated_at = $3 WHERE id = $1`
	result, err := r.db.Exec(ctx, query, id, status, time.Now())
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete removes a job. Applications and their logs cascade at the
// database level.
func (r *jobRepo) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM jobs WHERE id = $1`
	result, err := r.db.Exec(ctx, query, id)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func scanJobsWithPublisher(rows pgx.Rows) ([]domain.Job, error) {
	var jobs []domain.Job
	for rows.Next() {
		var job domain.Job
		var questions []byte
		var publisher domain.UserSummary
		if err := rows.Scan(
			&job.ID, &job.Title, &job.Department, &job.Location, &job.Salary,
			&job.Description, &job.Requirements, &job.ResumeRequired,
			&questions, &job.Status, &job.PublisherID,
			&job.CreatedAt, &job.UpdatedAt,
			&publisher.ID, &publisher.Name, &publisher.Email,
		); err != nil {
			return nil, err
		}
		if err := json.Unmarshal(questions, &job.CustomQuestions); err != nil {
			return nil, err
		}
		job.Publisher = &publisher
		jobs = append(jobs, job)
	}
	return jobs, rows.Err()
}
