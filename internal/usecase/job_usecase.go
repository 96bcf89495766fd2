package usecase

import (
	"context"
	"errors"
	"log/slog"

	"go-jobboard-backend/internal/domain"
	"go-jobboard-backend/pkg/apperror"
	"go-jobboard-backend/pkg/storage"
)

type jobUsecase struct {
	jobRepo         domain.JobRepository
	applicationRepo domain.ApplicationRepository
	resumeStore     storage.ResumeStore
}

// NewJobUsecase creates a new job usecase
func NewJobUsecase(
	jobRepo domain.JobRepository,
	applicationRepo domain.ApplicationRepository,
	resumeStore storage.ResumeStore,
) domain.JobUsecase {
	return &jobUsecase{
		jobRepo:         jobRepo,
		applicationRepo: applicationRepo,
		resumeStore:     resumeStore,
	}
}

// CreateJob creates a posting owned by the caller. New jobs start as
// DRAFT unless an explicit valid status is given, and resumes are
// required unless the posting opts out.
func (uc *jobUsecase) CreateJob(ctx context.Context, publisherID string, input domain.CreateJobInput) (*domain.Job, error) {
	status := input.Status
	if status == "" {
		status = domain.JobStatusDraft
	}
	if !domain.ValidJobStatus(status) {
		return nil, apperror.BadRequest("Invalid job status. Must be: DRAFT, ACTIVE, or CLOSED")
	}

	resumeRequired := true
	if input.ResumeRequired != nil {
		resumeRequired = *input.ResumeRequired
	}

	questions := input.CustomQuestions
	if questions == nil {
		questions = []domain.CustomQuestion{}
	}

	job := &domain.Job{
		Title:           input.Title,
		Department:      input.Department,
		Location:        input.Location,
		Salary:          input.Salary,
		Description:     input.Description,
		Requirements:    input.Requirements,
		ResumeRequired:  resumeRequired,
		CustomQuestions: questions,
		Status:          status,
		PublisherID:     publisherID,
	}
	if err := uc.jobRepo.Create(ctx, job); err != nil {
		return nil, apperror.Internal(err)
	}
	return job, nil
}

func (uc *jobUsecase) GetJobDetails(ctx context.Context, id string) (*domain.Job, error) {
	job, err := uc.jobRepo.GetByIDWithPublisher(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, apperror.NotFound("Job not found")
		}
		return nil, apperror.Internal(err)
	}
	return job, nil
}

// ListPublicJobs returns ACTIVE jobs only, regardless of filter input
func (uc *jobUsecase) ListPublicJobs(ctx context.Context, filter domain.JobFilter) ([]domain.Job, error) {
	if filter.Limit < 0 || filter.Limit > 100 {
		filter.Limit = 100
	}
	jobs, err := uc.jobRepo.FetchActive(ctx, filter)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return jobs, nil
}

func (uc *jobUsecase) ListJobsByPublisher(ctx context.Context, publisherID string, filter domain.JobFilter) ([]domain.Job, error) {
	if filter.Status != "" && !domain.ValidJobStatus(filter.Status) {
		return nil, apperror.BadRequest("Invalid job status filter")
	}
	jobs, err := uc.jobRepo.FetchByPublisher(ctx, publisherID, filter)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return jobs, nil
}

// UpdateJobStatus transitions a job the caller owns. Foreign jobs are
// reported as not found rather than forbidden.
func (uc *jobUsecase) UpdateJobStatus(ctx context.Context, publisherID, jobID, status string) (*domain.Job, error) {
	if !domain.ValidJobStatus(status) {
		return nil, apperror.BadRequest("Invalid job status. Must be: DRAFT, ACTIVE, or CLOSED")
	}

	job, err := uc.jobRepo.GetByID(ctx, jobID)
	if err != nil || job.PublisherID != publisherID {
		if err != nil && !errors.Is(err, domain.ErrNotFound) {
			return nil, apperror.Internal(err)
		}
		return nil, apperror.NotFound("Job not found")
	}

	if err := uc.jobRepo.UpdateStatus(ctx, jobID, status); err != nil {
		return nil, apperror.Internal(err)
	}
	job.Status = status
	return job, nil
}

// DeleteJob removes a job the caller owns along with its applications.
// Stored resume files are cleaned up best effort after the delete
// commits; a failed file removal never fails the request.
func (uc *jobUsecase) DeleteJob(ctx context.Context, publisherID, jobID string) error {
	job, err := uc.jobRepo.GetByID(ctx, jobID)
	if err != nil || job.PublisherID != publisherID {
		if err != nil && !errors.Is(err, domain.ErrNotFound) {
			return apperror.Internal(err)
		}
		return apperror.NotFound("Job not found")
	}

	resumeURLs, err := uc.applicationRepo.ResumeURLsByJob(ctx, jobID)
	if err != nil {
		return apperror.Internal(err)
	}

	if err := uc.jobRepo.Delete(ctx, jobID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return apperror.NotFound("Job not found")
		}
		return apperror.Internal(err)
	}

	for _, url := range resumeURLs {
		if err := uc.resumeStore.Delete(ctx, url); err != nil {
			slog.Warn("failed to delete resume file", "url", url, "error", err)
		}
	}
	return nil
}
