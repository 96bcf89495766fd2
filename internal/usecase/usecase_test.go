package usecase_test

import (
	"context"
	"net/http"
	"testing"
	"time"

	"go-jobboard-backend/internal/domain"
	"go-jobboard-backend/internal/usecase"
	"go-jobboard-backend/pkg/apperror"
	"go-jobboard-backend/pkg/auth"
	"go-jobboard-backend/pkg/security"
	"go-jobboard-backend/pkg/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"
)

// Mock Repositories

type MockUserRepo struct {
	mock.Mock
}

func (m *MockUserRepo) Create(ctx context.Context, user *domain.User) error {
	return m.Called(ctx, user).Error(0)
}
func (m *MockUserRepo) GetByID(ctx context.Context, id string) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockUserRepo) UpdateProfile(ctx context.Context, user *domain.User) error {
	return m.Called(ctx, user).Error(0)
}

type MockJobRepo struct {
	mock.Mock
}

func (m *MockJobRepo) Create(ctx context.Context, job *domain.Job) error {
	return m.Called(ctx, job).Error(0)
}
func (m *MockJobRepo) GetByID(ctx context.Context, id string) (*domain.Job, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Job), args.Error(1)
}
func (m *MockJobRepo) GetByIDWithPublisher(ctx context.Context, id string) (*domain.Job, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Job), args.Error(1)
}
func (m *MockJobRepo) FetchActive(ctx context.Context, filter domain.JobFilter) ([]domain.Job, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Job), args.Error(1)
}
func (m *MockJobRepo) FetchByPublisher(ctx context.Context, publisherID string, filter domain.JobFilter) ([]domain.Job, error) {
	args := m.Called(ctx, publisherID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Job), args.Error(1)
}
func (m *MockJobRepo) UpdateStatus(ctx context.Context, id, status string) error {
	return m.Called(ctx, id, status).Error(0)
}
func (m *MockJobRepo) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

type MockApplicationRepo struct {
	mock.Mock
}

func (m *MockApplicationRepo) CreateWithLog(ctx context.Context, app *domain.Application, logEntry *domain.ApplicationLog) error {
	return m.Called(ctx, app, logEntry).Error(0)
}
func (m *MockApplicationRepo) GetByJobAndApplicant(ctx context.Context, jobID, applicantID string) (*domain.Application, error) {
	args := m.Called(ctx, jobID, applicantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Application), args.Error(1)
}
func (m *MockApplicationRepo) GetByIDForApplicant(ctx context.Context, id, applicantID string) (*domain.Application, error) {
	args := m.Called(ctx, id, applicantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Application), args.Error(1)
}
func (m *MockApplicationRepo) GetByIDForPublisher(ctx context.Context, id, publisherID string) (*domain.Application, error) {
	args := m.Called(ctx, id, publisherID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Application), args.Error(1)
}
func (m *MockApplicationRepo) FetchByApplicant(ctx context.Context, applicantID string, filter domain.ApplicationFilter) ([]domain.Application, int64, error) {
	args := m.Called(ctx, applicantID, filter)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]domain.Application), args.Get(1).(int64), args.Error(2)
}
func (m *MockApplicationRepo) FetchByPublisher(ctx context.Context, publisherID string, filter domain.ApplicationFilter) ([]domain.Application, int64, error) {
	args := m.Called(ctx, publisherID, filter)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]domain.Application), args.Get(1).(int64), args.Error(2)
}
func (m *MockApplicationRepo) UpdateStatusWithLog(ctx context.Context, id, publisherID, status, notes string) (*domain.Application, error) {
	args := m.Called(ctx, id, publisherID, status, notes)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Application), args.Error(1)
}
func (m *MockApplicationRepo) CountByPublisher(ctx context.Context, publisherID string) (*domain.ApplicationStats, error) {
	args := m.Called(ctx, publisherID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ApplicationStats), args.Error(1)
}
func (m *MockApplicationRepo) CountByApplicant(ctx context.Context, applicantID string) (*domain.ApplicationStats, error) {
	args := m.Called(ctx, applicantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ApplicationStats), args.Error(1)
}
func (m *MockApplicationRepo) ResumeURLsByJob(ctx context.Context, jobID string) ([]string, error) {
	args := m.Called(ctx, jobID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

// memStore is an in-memory resume store for tests
type memStore struct {
	uploads []string
	deletes []string
	fail    bool
}

func (s *memStore) Upload(_ context.Context, upload storage.ResumeUpload) (string, error) {
	if s.fail {
		return "", assert.AnError
	}
	url := "/uploads/resumes/" + upload.Filename
	s.uploads = append(s.uploads, url)
	return url, nil
}

func (s *memStore) Delete(_ context.Context, url string) error {
	if s.fail {
		return assert.AnError
	}
	s.deletes = append(s.deletes, url)
	return nil
}

// test helpers

func candidate(id string) *domain.User {
	return &domain.User{ID: id, Email: id + "@example.com", Name: "Test User", Role: domain.RoleUser}
}

func activeJob(id, publisherID string) *domain.Job {
	return &domain.Job{
		ID:             id,
		Title:          "Backend Engineer",
		Status:         domain.JobStatusActive,
		PublisherID:    publisherID,
		ResumeRequired: false,
	}
}

func appCode(t *testing.T, err error) int {
	t.Helper()
	appErr, ok := err.(*apperror.AppError)
	if !ok {
		t.Fatalf("expected *apperror.AppError, got %T: %v", err, err)
	}
	return appErr.Code
}

func newApplicationUC(userRepo *MockUserRepo, jobRepo *MockJobRepo, appRepo *MockApplicationRepo) domain.ApplicationUsecase {
	return usecase.NewApplicationUsecase(appRepo, jobRepo, userRepo, &memStore{}, security.DefaultLogger())
}

func TestSubmitApplicationPreconditions(t *testing.T) {
	ctx := context.Background()

	t.Run("rejects admin accounts", func(t *testing.T) {
		userRepo := new(MockUserRepo)
		jobRepo := new(MockJobRepo)
		appRepo := new(MockApplicationRepo)
		uc := newApplicationUC(userRepo, jobRepo, appRepo)

		admin := candidate("admin1")
		admin.Role = domain.RoleAdmin
		userRepo.On("GetByID", ctx, "admin1").Return(admin, nil)

		_, err := uc.SubmitApplication(ctx, "admin1", domain.SubmitApplicationInput{JobID: "job1"})
		assert.Error(t, err)
		assert.Equal(t, http.StatusForbidden, appCode(t, err))
	})

	t.Run("rejects inactive job", func(t *testing.T) {
		userRepo := new(MockUserRepo)
		jobRepo := new(MockJobRepo)
		appRepo := new(MockApplicationRepo)
		uc := newApplicationUC(userRepo, jobRepo, appRepo)

		userRepo.On("GetByID", ctx, "user1").Return(candidate("user1"), nil)
		job := activeJob("job1", "admin1")
		job.Status = domain.JobStatusDraft
		jobRepo.On("GetByID", ctx, "job1").Return(job, nil)

		_, err := uc.SubmitApplication(ctx, "user1", domain.SubmitApplicationInput{JobID: "job1"})
		assert.Error(t, err)
		assert.Equal(t, http.StatusBadRequest, appCode(t, err))
		assert.Contains(t, err.Error(), "not accepting applications")
	})

	t.Run("rejects missing job with 404", func(t *testing.T) {
		userRepo := new(MockUserRepo)
		jobRepo := new(MockJobRepo)
		appRepo := new(MockApplicationRepo)
		uc := newApplicationUC(userRepo, jobRepo, appRepo)

		userRepo.On("GetByID", ctx, "user1").Return(candidate("user1"), nil)
		jobRepo.On("GetByID", ctx, "missing").Return(nil, domain.ErrNotFound)

		_, err := uc.SubmitApplication(ctx, "user1", domain.SubmitApplicationInput{JobID: "missing"})
		assert.Error(t, err)
		assert.Equal(t, http.StatusNotFound, appCode(t, err))
	})

	t.Run("rejects applying to own posting", func(t *testing.T) {
		userRepo := new(MockUserRepo)
		jobRepo := new(MockJobRepo)
		appRepo := new(MockApplicationRepo)
		uc := newApplicationUC(userRepo, jobRepo, appRepo)

		userRepo.On("GetByID", ctx, "user1").Return(candidate("user1"), nil)
		jobRepo.On("GetByID", ctx, "job1").Return(activeJob("job1", "user1"), nil)

		_, err := uc.SubmitApplication(ctx, "user1", domain.SubmitApplicationInput{JobID: "job1"})
		assert.Error(t, err)
		assert.Equal(t, http.StatusForbidden, appCode(t, err))
	})

	t.Run("rejects duplicate with 409", func(t *testing.T) {
		userRepo := new(MockUserRepo)
		jobRepo := new(MockJobRepo)
		appRepo := new(MockApplicationRepo)
		uc := newApplicationUC(userRepo, jobRepo, appRepo)

		userRepo.On("GetByID", ctx, "user1").Return(candidate("user1"), nil)
		jobRepo.On("GetByID", ctx, "job1").Return(activeJob("job1", "admin1"), nil)
		appRepo.On("GetByJobAndApplicant", ctx, "job1", "user1").
			Return(&domain.Application{ID: "app1"}, nil)

		_, err := uc.SubmitApplication(ctx, "user1", domain.SubmitApplicationInput{JobID: "job1"})
		assert.Error(t, err)
		assert.Equal(t, http.StatusConflict, appCode(t, err))
		assert.Contains(t, err.Error(), "already applied")
	})

	t.Run("index collision maps to the same 409", func(t *testing.T) {
		userRepo := new(MockUserRepo)
		jobRepo := new(MockJobRepo)
		appRepo := new(MockApplicationRepo)
		uc := newApplicationUC(userRepo, jobRepo, appRepo)

		userRepo.On("GetByID", ctx, "user1").Return(candidate("user1"), nil)
		jobRepo.On("GetByID", ctx, "job1").Return(activeJob("job1", "admin1"), nil)
		appRepo.On("GetByJobAndApplicant", ctx, "job1", "user1").Return(nil, domain.ErrNotFound)
		appRepo.On("CreateWithLog", ctx, mock.Anything, mock.Anything).
			Return(domain.ErrDuplicateApplication)

		_, err := uc.SubmitApplication(ctx, "user1", domain.SubmitApplicationInput{JobID: "job1"})
		assert.Error(t, err)
		assert.Equal(t, http.StatusConflict, appCode(t, err))
		assert.Contains(t, err.Error(), "already applied")
	})
}

func TestSubmitApplicationAnswers(t *testing.T) {
	ctx := context.Background()
	questionID := int64(7)

	setup := func(questions []domain.CustomQuestion) (domain.ApplicationUsecase, *MockApplicationRepo) {
		userRepo := new(MockUserRepo)
		jobRepo := new(MockJobRepo)
		appRepo := new(MockApplicationRepo)
		uc := newApplicationUC(userRepo, jobRepo, appRepo)

		userRepo.On("GetByID", ctx, "user1").Return(candidate("user1"), nil)
		job := activeJob("job1", "admin1")
		job.CustomQuestions = questions
		jobRepo.On("GetByID", ctx, "job1").Return(job, nil)
		appRepo.On("GetByJobAndApplicant", ctx, "job1", "user1").Return(nil, domain.ErrNotFound)
		return uc, appRepo
	}

	t.Run("requires answer keyed by question id", func(t *testing.T) {
		uc, _ := setup([]domain.CustomQuestion{
			{ID: &questionID, Question: "Why us?", Required: true},
		})

		_, err := uc.SubmitApplication(ctx, "user1", domain.SubmitApplicationInput{
			JobID:   "job1",
			Answers: map[string]string{"Why us?": "keyed by text, not id"},
		})
		assert.Error(t, err)
		assert.Equal(t, http.StatusBadRequest, appCode(t, err))
		assert.Contains(t, err.Error(), "Why us?")
	})

	t.Run("requires answer keyed by question text when no id", func(t *testing.T) {
		uc, _ := setup([]domain.CustomQuestion{
			{Question: "Notice period?", Required: true},
		})

		_, err := uc.SubmitApplication(ctx, "user1", domain.SubmitApplicationInput{
			JobID:   "job1",
			Answers: map[string]string{"Notice period?": "   "},
		})
		assert.Error(t, err)
		assert.Equal(t, http.StatusBadRequest, appCode(t, err))
	})

	t.Run("optional questions may stay unanswered", func(t *testing.T) {
		uc, appRepo := setup([]domain.CustomQuestion{
			{Question: "Anything to add?", Required: false},
		})
		appRepo.On("CreateWithLog", ctx, mock.Anything, mock.Anything).Return(nil)

		app, err := uc.SubmitApplication(ctx, "user1", domain.SubmitApplicationInput{JobID: "job1"})
		assert.NoError(t, err)
		assert.Equal(t, domain.ApplicationStatusPending, app.Status)
	})
}

func TestSubmitApplicationResume(t *testing.T) {
	ctx := context.Background()

	t.Run("resume required but absent", func(t *testing.T) {
		userRepo := new(MockUserRepo)
		jobRepo := new(MockJobRepo)
		appRepo := new(MockApplicationRepo)
		uc := newApplicationUC(userRepo, jobRepo, appRepo)

		userRepo.On("GetByID", ctx, "user1").Return(candidate("user1"), nil)
		job := activeJob("job1", "admin1")
		job.ResumeRequired = true
		jobRepo.On("GetByID", ctx, "job1").Return(job, nil)
		appRepo.On("GetByJobAndApplicant", ctx, "job1", "user1").Return(nil, domain.ErrNotFound)

		_, err := uc.SubmitApplication(ctx, "user1", domain.SubmitApplicationInput{JobID: "job1"})
		assert.Error(t, err)
		assert.Equal(t, http.StatusBadRequest, appCode(t, err))
		assert.Contains(t, err.Error(), "resume is required")
	})

	t.Run("rejects spoofed resume file", func(t *testing.T) {
		userRepo := new(MockUserRepo)
		jobRepo := new(MockJobRepo)
		appRepo := new(MockApplicationRepo)
		uc := newApplicationUC(userRepo, jobRepo, appRepo)

		userRepo.On("GetByID", ctx, "user1").Return(candidate("user1"), nil)
		job := activeJob("job1", "admin1")
		job.ResumeRequired = true
		jobRepo.On("GetByID", ctx, "job1").Return(job, nil)
		appRepo.On("GetByJobAndApplicant", ctx, "job1", "user1").Return(nil, domain.ErrNotFound)

		_, err := uc.SubmitApplication(ctx, "user1", domain.SubmitApplicationInput{
			JobID: "job1",
			ResumeFile: &domain.ResumeFile{
				Filename:    "resume.pdf",
				ContentType: "application/pdf",
				Data:        []byte("MZ this is not a pdf"),
			},
		})
		assert.Error(t, err)
		assert.Equal(t, http.StatusBadRequest, appCode(t, err))
	})

	t.Run("uploads valid resume and records creation log", func(t *testing.T) {
		userRepo := new(MockUserRepo)
		jobRepo := new(MockJobRepo)
		appRepo := new(MockApplicationRepo)
		store := &memStore{}
		uc := usecase.NewApplicationUsecase(appRepo, jobRepo, userRepo, store, security.DefaultLogger())

		userRepo.On("GetByID", ctx, "user1").Return(candidate("user1"), nil)
		job := activeJob("job1", "admin1")
		job.ResumeRequired = true
		jobRepo.On("GetByID", ctx, "job1").Return(job, nil)
		appRepo.On("GetByJobAndApplicant", ctx, "job1", "user1").Return(nil, domain.ErrNotFound)
		appRepo.On("CreateWithLog", ctx, mock.Anything, mock.Anything).Return(nil).
			Run(func(args mock.Arguments) {
				app := args.Get(1).(*domain.Application)
				logEntry := args.Get(2).(*domain.ApplicationLog)
				assert.Equal(t, domain.ApplicationStatusPending, app.Status)
				assert.NotNil(t, app.ResumeURL)
				assert.Equal(t, "Application submitted", logEntry.Action)
				assert.Nil(t, logEntry.PreviousStatus)
				assert.Equal(t, domain.ApplicationStatusPending, logEntry.NewStatus)
				assert.Equal(t, "Application submitted successfully", logEntry.Notes)
			})

		app, err := uc.SubmitApplication(ctx, "user1", domain.SubmitApplicationInput{
			JobID: "job1",
			ResumeFile: &domain.ResumeFile{
				Filename:    "resume.pdf",
				ContentType: "application/pdf",
				Data:        []byte("%PDF-1.7 test content"),
			},
		})
		assert.NoError(t, err)
		assert.Len(t, store.uploads, 1)
		assert.Len(t, app.ActionLogs, 1)
	})

	t.Run("storage failure aborts before any row is written", func(t *testing.T) {
		userRepo := new(MockUserRepo)
		jobRepo := new(MockJobRepo)
		appRepo := new(MockApplicationRepo)
		store := &memStore{fail: true}
		uc := usecase.NewApplicationUsecase(appRepo, jobRepo, userRepo, store, security.DefaultLogger())

		userRepo.On("GetByID", ctx, "user1").Return(candidate("user1"), nil)
		job := activeJob("job1", "admin1")
		job.ResumeRequired = true
		jobRepo.On("GetByID", ctx, "job1").Return(job, nil)
		appRepo.On("GetByJobAndApplicant", ctx, "job1", "user1").Return(nil, domain.ErrNotFound)

		_, err := uc.SubmitApplication(ctx, "user1", domain.SubmitApplicationInput{
			JobID: "job1",
			ResumeFile: &domain.ResumeFile{
				Filename:    "resume.pdf",
				ContentType: "application/pdf",
				Data:        []byte("%PDF-1.7 test content"),
			},
		})
		assert.Error(t, err)
		assert.Equal(t, http.StatusInternalServerError, appCode(t, err))
		appRepo.AssertNotCalled(t, "CreateWithLog", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("failed persistence removes the uploaded file", func(t *testing.T) {
		userRepo := new(MockUserRepo)
		jobRepo := new(MockJobRepo)
		appRepo := new(MockApplicationRepo)
		store := &memStore{}
		uc := usecase.NewApplicationUsecase(appRepo, jobRepo, userRepo, store, security.DefaultLogger())

		userRepo.On("GetByID", ctx, "user1").Return(candidate("user1"), nil)
		job := activeJob("job1", "admin1")
		job.ResumeRequired = true
		jobRepo.On("GetByID", ctx, "job1").Return(job, nil)
		appRepo.On("GetByJobAndApplicant", ctx, "job1", "user1").Return(nil, domain.ErrNotFound)
		appRepo.On("CreateWithLog", ctx, mock.Anything, mock.Anything).Return(assert.AnError)

		_, err := uc.SubmitApplication(ctx, "user1", domain.SubmitApplicationInput{
			JobID: "job1",
			ResumeFile: &domain.ResumeFile{
				Filename:    "resume.pdf",
				ContentType: "application/pdf",
				Data:        []byte("%PDF-1.7 test content"),
			},
		})
		assert.Error(t, err)
		assert.Equal(t, http.StatusInternalServerError, appCode(t, err))
		assert.Equal(t, store.uploads, store.deletes)
	})
}

func TestUpdateApplicationStatus(t *testing.T) {
	ctx := context.Background()

	t.Run("rejects unknown status", func(t *testing.T) {
		uc := newApplicationUC(new(MockUserRepo), new(MockJobRepo), new(MockApplicationRepo))

		_, err := uc.UpdateApplicationStatus(ctx, "admin1", "app1", "HIRED", "")
		assert.Error(t, err)
		assert.Equal(t, http.StatusBadRequest, appCode(t, err))
	})

	t.Run("defaults notes from status", func(t *testing.T) {
		appRepo := new(MockApplicationRepo)
		uc := newApplicationUC(new(MockUserRepo), new(MockJobRepo), appRepo)

		appRepo.On("UpdateStatusWithLog", ctx, "app1", "admin1",
			domain.ApplicationStatusAccepted, "Application accepted by admin").
			Return(&domain.Application{ID: "app1", Status: domain.ApplicationStatusAccepted}, nil)

		app, err := uc.UpdateApplicationStatus(ctx, "admin1", "app1", domain.ApplicationStatusAccepted, "")
		assert.NoError(t, err)
		assert.Equal(t, domain.ApplicationStatusAccepted, app.Status)
		appRepo.AssertExpectations(t)
	})

	t.Run("foreign application reads as not found", func(t *testing.T) {
		appRepo := new(MockApplicationRepo)
		uc := newApplicationUC(new(MockUserRepo), new(MockJobRepo), appRepo)

		appRepo.On("UpdateStatusWithLog", ctx, "app1", "other-admin",
			domain.ApplicationStatusRejected, mock.Anything).
			Return(nil, domain.ErrNotFound)

		_, err := uc.UpdateApplicationStatus(ctx, "other-admin", "app1", domain.ApplicationStatusRejected, "")
		assert.Error(t, err)
		assert.Equal(t, http.StatusNotFound, appCode(t, err))
	})
}

func TestListPublisherApplications(t *testing.T) {
	ctx := context.Background()

	t.Run("rejects invalid status filter", func(t *testing.T) {
		uc := newApplicationUC(new(MockUserRepo), new(MockJobRepo), new(MockApplicationRepo))

		_, _, _, err := uc.ListPublisherApplications(ctx, "admin1", domain.ApplicationFilter{Status: "HIRED"})
		assert.Error(t, err)
		assert.Equal(t, http.StatusBadRequest, appCode(t, err))
	})

	t.Run("normalizes pagination and computes pages", func(t *testing.T) {
		appRepo := new(MockApplicationRepo)
		uc := newApplicationUC(new(MockUserRepo), new(MockJobRepo), appRepo)

		expected := domain.ApplicationFilter{Page: 1, Limit: 10}
		appRepo.On("FetchByPublisher", ctx, "admin1", expected).
			Return([]domain.Application{{ID: "app1"}}, int64(25), nil)
		appRepo.On("CountByPublisher", ctx, "admin1").
			Return(&domain.ApplicationStats{Total: 25, Pending: 20}, nil)

		apps, stats, pagination, err := uc.ListPublisherApplications(ctx, "admin1", domain.ApplicationFilter{Page: 0, Limit: 0})
		assert.NoError(t, err)
		assert.Len(t, apps, 1)
		assert.Equal(t, int64(25), stats.Total)
		assert.Equal(t, 3, pagination.TotalPages)
	})
}

func TestGetMyApplications(t *testing.T) {
	ctx := context.Background()

	t.Run("returns per-status counts alongside the page", func(t *testing.T) {
		appRepo := new(MockApplicationRepo)
		uc := newApplicationUC(new(MockUserRepo), new(MockJobRepo), appRepo)

		expected := domain.ApplicationFilter{Page: 1, Limit: 10}
		appRepo.On("FetchByApplicant", ctx, "user1", expected).
			Return([]domain.Application{{ID: "app1"}, {ID: "app2"}}, int64(2), nil)
		appRepo.On("CountByApplicant", ctx, "user1").
			Return(&domain.ApplicationStats{Total: 2, Pending: 1, OnHold: 1}, nil)

		apps, stats, pagination, err := uc.GetMyApplications(ctx, "user1", domain.ApplicationFilter{})
		assert.NoError(t, err)
		assert.Len(t, apps, 2)
		assert.Equal(t, int64(1), stats.Pending)
		assert.Equal(t, int64(1), stats.OnHold)
		assert.Equal(t, 1, pagination.TotalPages)
	})
}

func TestAuthUsecase(t *testing.T) {
	ctx := context.Background()
	tokens := auth.NewTokenIssuer("test-secret", time.Hour)

	t.Run("register coerces unknown roles to USER", func(t *testing.T) {
		userRepo := new(MockUserRepo)
		uc := usecase.NewAuthUsecase(userRepo, tokens)

		userRepo.On("Create", ctx, mock.AnythingOfType("*domain.User")).Return(nil).
			Run(func(args mock.Arguments) {
				user := args.Get(1).(*domain.User)
				user.ID = "user1"
				assert.Equal(t, domain.RoleUser, user.Role)
				assert.NotEqual(t, "secret123", user.Password)
			})

		result, err := uc.Register(ctx, "Test", "TEST@Example.com", "secret123", "SUPERUSER")
		assert.NoError(t, err)
		assert.Equal(t, "test@example.com", result.User.Email)
		assert.NotEmpty(t, result.Token)
	})

	t.Run("register surfaces duplicate email as 409", func(t *testing.T) {
		userRepo := new(MockUserRepo)
		uc := usecase.NewAuthUsecase(userRepo, tokens)

		userRepo.On("Create", ctx, mock.Anything).Return(domain.ErrDuplicateEmail)

		_, err := uc.Register(ctx, "Test", "taken@example.com", "secret123", "")
		assert.Error(t, err)
		assert.Equal(t, http.StatusConflict, appCode(t, err))
	})

	t.Run("register rejects short passwords", func(t *testing.T) {
		uc := usecase.NewAuthUsecase(new(MockUserRepo), tokens)

		_, err := uc.Register(ctx, "Test", "a@b.com", "12345", "")
		assert.Error(t, err)
		assert.Equal(t, http.StatusBadRequest, appCode(t, err))
	})

	t.Run("login rejects wrong password and unknown email alike", func(t *testing.T) {
		userRepo := new(MockUserRepo)
		uc := usecase.NewAuthUsecase(userRepo, tokens)

		hash, _ := bcrypt.GenerateFromPassword([]byte("correct-password"), bcrypt.MinCost)
		user := candidate("user1")
		user.Password = string(hash)
		userRepo.On("GetByEmail", ctx, "user1@example.com").Return(user, nil)
		userRepo.On("GetByEmail", ctx, "ghost@example.com").Return(nil, domain.ErrNotFound)

		_, err := uc.Login(ctx, "user1@example.com", "wrong-password")
		assert.Error(t, err)
		wrongPwMsg := err.Error()
		assert.Equal(t, http.StatusUnauthorized, appCode(t, err))

		_, err = uc.Login(ctx, "ghost@example.com", "whatever")
		assert.Error(t, err)
		assert.Equal(t, wrongPwMsg, err.Error())
	})

	t.Run("login succeeds with valid credentials", func(t *testing.T) {
		userRepo := new(MockUserRepo)
		uc := usecase.NewAuthUsecase(userRepo, tokens)

		hash, _ := bcrypt.GenerateFromPassword([]byte("correct-password"), bcrypt.MinCost)
		user := candidate("user1")
		user.Password = string(hash)
		userRepo.On("GetByEmail", ctx, "user1@example.com").Return(user, nil)

		result, err := uc.Login(ctx, "user1@example.com", "correct-password")
		assert.NoError(t, err)
		assert.NotEmpty(t, result.Token)

		claims, err := tokens.Parse(result.Token)
		assert.NoError(t, err)
		assert.Equal(t, "user1", claims.UserID)
	})
}

func TestJobUsecase(t *testing.T) {
	ctx := context.Background()

	t.Run("create defaults to DRAFT", func(t *testing.T) {
		jobRepo := new(MockJobRepo)
		uc := usecase.NewJobUsecase(jobRepo, new(MockApplicationRepo), &memStore{})

		jobRepo.On("Create", ctx, mock.AnythingOfType("*domain.Job")).Return(nil)

		job, err := uc.CreateJob(ctx, "admin1", domain.CreateJobInput{
			Title: "Backend Engineer", Department: "Engineering", Location: "Remote",
			Description: "Build things", Requirements: "Go",
		})
		assert.NoError(t, err)
		assert.Equal(t, domain.JobStatusDraft, job.Status)
		assert.True(t, job.ResumeRequired)
		assert.Equal(t, "admin1", job.PublisherID)
	})

	t.Run("status update on foreign job reads as not found", func(t *testing.T) {
		jobRepo := new(MockJobRepo)
		uc := usecase.NewJobUsecase(jobRepo, new(MockApplicationRepo), &memStore{})

		jobRepo.On("GetByID", ctx, "job1").Return(activeJob("job1", "someone-else"), nil)

		_, err := uc.UpdateJobStatus(ctx, "admin1", "job1", domain.JobStatusClosed)
		assert.Error(t, err)
		assert.Equal(t, http.StatusNotFound, appCode(t, err))
	})

	t.Run("delete removes stored resumes best effort", func(t *testing.T) {
		jobRepo := new(MockJobRepo)
		appRepo := new(MockApplicationRepo)
		store := &memStore{}
		uc := usecase.NewJobUsecase(jobRepo, appRepo, store)

		jobRepo.On("GetByID", ctx, "job1").Return(activeJob("job1", "admin1"), nil)
		appRepo.On("ResumeURLsByJob", ctx, "job1").Return([]string{"/uploads/resumes/a.pdf"}, nil)
		jobRepo.On("Delete", ctx, "job1").Return(nil)

		err := uc.DeleteJob(ctx, "admin1", "job1")
		assert.NoError(t, err)
		assert.Equal(t, []string{"/uploads/resumes/a.pdf"}, store.deletes)
	})
}
