package usecase

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"go-jobboard-backend/internal/domain"
	"go-jobboard-backend/pkg/apperror"
	"go-jobboard-backend/pkg/security"
	"go-jobboard-backend/pkg/storage"

	"github.com/xuri/excelize/v2"
)

// exportRowCap bounds a single export file
const exportRowCap = 10000

type applicationUsecase struct {
	applicationRepo domain.ApplicationRepository
	jobRepo         domain.JobRepository
	userRepo        domain.UserRepository
	resumeStore     storage.ResumeStore
	events          *security.EventLogger
}

// NewApplicationUsecase creates a new application usecase
func NewApplicationUsecase(
	applicationRepo domain.ApplicationRepository,
	jobRepo domain.JobRepository,
	userRepo domain.UserRepository,
	resumeStore storage.ResumeStore,
	events *security.EventLogger,
) domain.ApplicationUsecase {
	return &applicationUsecase{
		applicationRepo: applicationRepo,
		jobRepo:         jobRepo,
		userRepo:        userRepo,
		resumeStore:     resumeStore,
		events:          events,
	}
}

// SubmitApplication runs the submission preconditions in order, stores
// the resume before any row is written, then creates the application and
// its first audit entry atomically. A duplicate that slips past the
// pre-check still loses on the unique index and maps to the same 409.
func (uc *applicationUsecase) SubmitApplication(ctx context.Context, applicantID string, input domain.SubmitApplicationInput) (*domain.Application, error) {
	// 1. Only candidate accounts may apply
	applicant, err := uc.userRepo.GetByID(ctx, applicantID)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	if applicant.Role != domain.RoleUser {
		return nil, apperror.Forbidden("Only candidate accounts can apply to jobs")
	}

	// 2. Job must exist and be accepting applications
	job, err := uc.jobRepo.GetByID(ctx, input.JobID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, apperror.NotFound("Job not found")
		}
		return nil, apperror.Internal(err)
	}
	if job.Status != domain.JobStatusActive {
		return nil, apperror.BadRequest("This job is not accepting applications")
	}

	// 3. Publishers cannot apply to their own postings
	if job.PublisherID == applicantID {
		return nil, apperror.Forbidden("You cannot apply to your own job posting")
	}

	// 4. One application per job per applicant
	if _, err := uc.applicationRepo.GetByJobAndApplicant(ctx, input.JobID, applicantID); err == nil {
		uc.logDuplicate(ctx, applicantID, input.JobID)
		return nil, apperror.Conflict("You have already applied to this job")
	} else if !errors.Is(err, domain.ErrNotFound) {
		return nil, apperror.Internal(err)
	}

	// 5. Every required question needs a non-empty answer
	answers := input.Answers
	if answers == nil {
		answers = map[string]string{}
	}
	for _, question := range job.CustomQuestions {
		if !question.Required {
			continue
		}
		if strings.TrimSpace(answers[question.AnswerKey()]) == "" {
			return nil, apperror.BadRequest(fmt.Sprintf("Answer required for question: %s", question.Question))
		}
	}

	// 6. Resume, validated and uploaded before any row exists
	resumeURL := strings.TrimSpace(input.ResumeURL)
	if input.ResumeFile != nil {
		result := security.ValidateResumeFile(
			input.ResumeFile.Filename, input.ResumeFile.Data, input.ResumeFile.ContentType)
		if !result.Valid {
			return nil, apperror.BadRequest(result.Error)
		}
		resumeURL, err = uc.resumeStore.Upload(ctx, storage.ResumeUpload{
			Filename:    input.ResumeFile.Filename,
			ContentType: input.ResumeFile.ContentType,
			Data:        input.ResumeFile.Data,
			ApplicantID: applicantID,
			JobID:       input.JobID,
		})
		if err != nil {
			return nil, apperror.Internal(err)
		}
	}
	if job.ResumeRequired && resumeURL == "" {
		return nil, apperror.BadRequest("A resume is required for this job")
	}

	app := &domain.Application{
		JobID:       input.JobID,
		ApplicantID: applicantID,
		Status:      domain.ApplicationStatusPending,
		Answers:     answers,
	}
	if resumeURL != "" {
		app.ResumeURL = &resumeURL
	}
	logEntry := &domain.ApplicationLog{
		Action:    "Application submitted",
		NewStatus: domain.ApplicationStatusPending,
		Notes:     "Application submitted successfully",
	}

	if err := uc.applicationRepo.CreateWithLog(ctx, app, logEntry); err != nil {
		// The uploaded file has no owning row; remove it best effort.
		if input.ResumeFile != nil && resumeURL != "" {
			if delErr := uc.resumeStore.Delete(ctx, resumeURL); delErr != nil {
				slog.Warn("failed to delete orphaned resume", "url", resumeURL, "error", delErr)
			}
		}
		if errors.Is(err, domain.ErrDuplicateApplication) {
			uc.logDuplicate(ctx, applicantID, input.JobID)
			return nil, apperror.Conflict("You have already applied to this job")
		}
		return nil, apperror.Internal(err)
	}

	app.ActionLogs = []domain.ApplicationLog{*logEntry}
	app.Job = job.Summary()
	app.Applicant = applicant.Summary()
	return app, nil
}

// GetMyApplications returns one page of the applicant's own applications
// plus per-status totals across all of them.
func (uc *applicationUsecase) GetMyApplications(ctx context.Context, applicantID string, filter domain.ApplicationFilter) ([]domain.Application, *domain.ApplicationStats, *domain.Pagination, error) {
	normalizePagination(&filter)
	applications, total, err := uc.applicationRepo.FetchByApplicant(ctx, applicantID, filter)
	if err != nil {
		return nil, nil, nil, apperror.Internal(err)
	}
	stats, err := uc.applicationRepo.CountByApplicant(ctx, applicantID)
	if err != nil {
		return nil, nil, nil, apperror.Internal(err)
	}
	return applications, stats, paginate(filter, total), nil
}

func (uc *applicationUsecase) GetMyApplicationDetail(ctx context.Context, applicantID, applicationID string) (*domain.Application, error) {
	app, err := uc.applicationRepo.GetByIDForApplicant(ctx, applicationID, applicantID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, apperror.NotFound("Application not found")
		}
		return nil, apperror.Internal(err)
	}
	return app, nil
}

// GetApplicationForJob returns the caller's application to one job, used
// by the job detail page to show applied state.
func (uc *applicationUsecase) GetApplicationForJob(ctx context.Context, applicantID, jobID string) (*domain.Application, error) {
	app, err := uc.applicationRepo.GetByJobAndApplicant(ctx, jobID, applicantID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, apperror.NotFound("Application not found")
		}
		return nil, apperror.Internal(err)
	}
	return app, nil
}

// ListPublisherApplications returns one page of applications across the
// caller's jobs plus per-status totals for the same scope.
func (uc *applicationUsecase) ListPublisherApplications(ctx context.Context, publisherID string, filter domain.ApplicationFilter) ([]domain.Application, *domain.ApplicationStats, *domain.Pagination, error) {
	if filter.Status != "" && !domain.ValidApplicationStatus(filter.Status) {
		return nil, nil, nil, apperror.BadRequest("Invalid application status filter")
	}
	normalizePagination(&filter)

	applications, total, err := uc.applicationRepo.FetchByPublisher(ctx, publisherID, filter)
	if err != nil {
		return nil, nil, nil, apperror.Internal(err)
	}
	stats, err := uc.applicationRepo.CountByPublisher(ctx, publisherID)
	if err != nil {
		return nil, nil, nil, apperror.Internal(err)
	}
	return applications, stats, paginate(filter, total), nil
}

func (uc *applicationUsecase) GetPublisherApplicationDetail(ctx context.Context, publisherID, applicationID string) (*domain.Application, error) {
	app, err := uc.applicationRepo.GetByIDForPublisher(ctx, applicationID, publisherID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, apperror.NotFound("Application not found")
		}
		return nil, apperror.Internal(err)
	}
	return app, nil
}

// UpdateApplicationStatus transitions an application on one of the
// caller's jobs. Any status may follow any other; a repeated status is
// still recorded in the audit trail. Applications on other publishers'
// jobs are reported as not found.
func (uc *applicationUsecase) UpdateApplicationStatus(ctx context.Context, publisherID, applicationID, status, notes string) (*domain.Application, error) {
	if !domain.ValidApplicationStatus(status) {
		return nil, apperror.BadRequest("Invalid status. Must be: PENDING, ACCEPTED, REJECTED, or ON_HOLD")
	}
	if notes == "" {
		notes = fmt.Sprintf("Application %s by admin", strings.ToLower(status))
	}

	app, err := uc.applicationRepo.UpdateStatusWithLog(ctx, applicationID, publisherID, status, notes)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, apperror.NotFound("Application not found")
		}
		return nil, apperror.Internal(err)
	}
	// Logs come back newest first; the transition response carries the
	// recent window, the detail endpoint the full trail.
	if len(app.ActionLogs) > 5 {
		app.ActionLogs = app.ActionLogs[:5]
	}
	return app, nil
}

// ExportPublisherApplications renders the caller's applications as an
// xlsx or csv download.
func (uc *applicationUsecase) ExportPublisherApplications(ctx context.Context, publisherID, format string, filter domain.ApplicationFilter) ([]byte, string, error) {
	if filter.Status != "" && !domain.ValidApplicationStatus(filter.Status) {
		return nil, "", apperror.BadRequest("Invalid application status filter")
	}
	filter.Page = 1
	filter.Limit = exportRowCap

	applications, _, err := uc.applicationRepo.FetchByPublisher(ctx, publisherID, filter)
	if err != nil {
		return nil, "", apperror.Internal(err)
	}

	switch format {
	case "csv":
		return exportApplicationsCSV(applications)
	case "xlsx", "":
		return exportApplicationsExcel(applications)
	default:
		return nil, "", apperror.BadRequest("Unsupported export format: " + format)
	}
}

func (uc *applicationUsecase) logDuplicate(ctx context.Context, applicantID, jobID string) {
	uc.events.Log(ctx, security.Event{
		Event:        security.EventDuplicateApplication,
		SubjectType:  "user_id",
		SubjectValue: security.HashValue(applicantID),
		Details:      map[string]interface{}{"job_id": jobID},
	})
}

var exportColumns = []string{
	"APPLICANT", "EMAIL", "JOB TITLE", "DEPARTMENT", "STATUS", "RESUME", "SUBMITTED AT",
}

func exportFieldValues(app domain.Application) []string {
	var name, email, title, department string
	if app.Applicant != nil {
		name = app.Applicant.Name
		email = app.Applicant.Email
	}
	if app.Job != nil {
		title = app.Job.Title
		department = app.Job.Department
	}
	resume := ""
	if app.ResumeURL != nil {
		resume = *app.ResumeURL
	}
	return []string{
		name, email, title, department, app.Status, resume,
		app.CreatedAt.Format("2006-01-02 15:04:05"),
	}
}

// exportApplicationsExcel generates an Excel file from application data
func exportApplicationsExcel(applications []domain.Application) ([]byte, string, error) {
	f := excelize.NewFile()
	sheetName := "Applications"
	f.SetSheetName("Sheet1", sheetName)

	for i, col := range exportColumns {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheetName, cell, col)
	}

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "#FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"#1E3A5F"}},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	endCell, _ := excelize.CoordinatesToCellName(len(exportColumns), 1)
	f.SetCellStyle(sheetName, "A1", endCell, headerStyle)

	for rowIdx, app := range applications {
		for colIdx, value := range exportFieldValues(app) {
			cell, _ := excelize.CoordinatesToCellName(colIdx+1, rowIdx+2)
			f.SetCellValue(sheetName, cell, value)
		}
	}

	for i := range exportColumns {
		colName, _ := excelize.ColumnNumberToName(i + 1)
		f.SetColWidth(sheetName, colName, colName, 24)
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, "", fmt.Errorf("failed to write Excel file: %w", err)
	}

	filename := fmt.Sprintf("applications_%s.xlsx", time.Now().Format("20060102_150405"))
	return buf.Bytes(), filename, nil
}

// exportApplicationsCSV generates a CSV file from application data
func exportApplicationsCSV(applications []domain.Application) ([]byte, string, error) {
	var buf bytes.Buffer
	buf.WriteString(strings.Join(exportColumns, ",") + "\n")

	for _, app := range applications {
		values := exportFieldValues(app)
		for i, value := range values {
			if strings.ContainsAny(value, ",\"\n") {
				values[i] = "\"" + strings.ReplaceAll(value, "\"", "\"\"") + "\""
			}
		}
		buf.WriteString(strings.Join(values, ",") + "\n")
	}

	filename := fmt.Sprintf("applications_%s.csv", time.Now().Format("20060102_150405"))
	return buf.Bytes(), filename, nil
}

// normalizePagination clamps page and limit to sane bounds
func normalizePagination(filter *domain.ApplicationFilter) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 10
	}
	if filter.Limit > 100 {
		filter.Limit = 100
	}
}

func paginate(filter domain.ApplicationFilter, total int64) *domain.Pagination {
	totalPages := int(total) / filter.Limit
	if int(total)%filter.Limit > 0 {
		totalPages++
	}
	return &domain.Pagination{
		Page:       filter.Page,
		Limit:      filter.Limit,
		Total:      total,
		TotalPages: totalPages,
	}
}
