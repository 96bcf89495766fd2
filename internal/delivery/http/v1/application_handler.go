package v1

import (
	"encoding/json"
	"io"
	"net/http"
	"strconv"

	"go-jobboard-backend/internal/delivery/http/response"
	"go-jobboard-backend/internal/domain"
	"go-jobboard-backend/pkg/apperror"
	"go-jobboard-backend/pkg/security"

	"github.com/gin-gonic/gin"
)

type ApplicationHandler struct {
	applicationUC domain.ApplicationUsecase
}

// NewApplicationHandler registers application routes. The submission
// endpoint carries its own upload rate limit on top of the global one.
func NewApplicationHandler(protected, admin *gin.RouterGroup, applicationUC domain.ApplicationUsecase, uploadLimiter gin.HandlerFunc) {
	handler := &ApplicationHandler{applicationUC: applicationUC}

	// Candidate routes
	protected.POST("/jobs/:id/apply", uploadLimiter, handler.SubmitApplication)
	protected.GET("/jobs/:id/application", handler.GetApplicationForJob)
	applications := protected.Group("/applications")
	{
		applications.GET("", handler.GetMyApplications)
		applications.GET("/:id", handler.GetMyApplicationDetail)
	}

	// Admin routes
	adminApps := admin.Group("/applications")
	{
		adminApps.GET("", handler.ListApplications)
		adminApps.GET("/:id", handler.GetApplicationDetail)
		adminApps.PATCH("/:id/status", handler.UpdateApplicationStatus)
	}
}

// SubmitApplicationRequest is the JSON payload for applying without a
// file upload. Multipart submissions carry the same fields as form
// values plus the resume file.
type SubmitApplicationRequest struct {
	Answers   map[string]string `json:"answers"`
	ResumeURL string            `json:"resume_url"`
}

// SubmitApplication godoc
// @Summary      Apply to a job
// @Description  Submit an application. Accepts JSON or multipart/form-data with a resume file (PDF, DOC, DOCX up to 5MB).
// @Tags         applications
// @Accept       json
// @Accept       multipart/form-data
// @Produce      json
// @Param        id  path      string  true  "Job ID"
// @Success      201  {object}  response.Response{data=domain.Application}
// @Failure      400  {object}  response.Response
// @Failure      403  {object}  response.Response
// @Failure      409  {object}  response.Response
// @Router       /jobs/{id}/apply [post]
// @Security     BearerAuth
func (h *ApplicationHandler) SubmitApplication(c *gin.Context) {
	userID := c.GetString(string(domain.KeyUserID))

	input := domain.SubmitApplicationInput{JobID: c.Param("id")}

	if c.ContentType() == "multipart/form-data" {
		if answersField := c.PostForm("answers"); answersField != "" {
			if err := json.Unmarshal([]byte(answersField), &input.Answers); err != nil {
				c.Error(apperror.BadRequest("Invalid answers payload"))
				return
			}
		}
		input.ResumeURL = c.PostForm("resume_url")

		fileHeader, err := c.FormFile("resume")
		if err == nil {
			if fileHeader.Size > security.MaxResumeSize {
				c.Error(apperror.BadRequest("Resume file exceeds the 5MB limit"))
				return
			}
			file, err := fileHeader.Open()
			if err != nil {
				c.Error(apperror.Internal(err))
				return
			}
			defer file.Close()

			data, err := io.ReadAll(io.LimitReader(file, security.MaxResumeSize+1))
			if err != nil {
				c.Error(apperror.Internal(err))
				return
			}
			input.ResumeFile = &domain.ResumeFile{
				Filename:    fileHeader.Filename,
				ContentType: fileHeader.Header.Get("Content-Type"),
				Data:        data,
			}
		}
	} else {
		var req SubmitApplicationRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.Error(apperror.BadRequest(err.Error()))
			return
		}
		input.Answers = req.Answers
		input.ResumeURL = req.ResumeURL
	}

	app, err := h.applicationUC.SubmitApplication(c.Request.Context(), userID, input)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusCreated, "Application submitted successfully", app)
}

// GetApplicationForJob godoc
// @Summary      Get own application for a job
// @Description  Return the caller's application to the given job, if any
// @Tags         applications
// @Produce      json
// @Param        id  path      string  true  "Job ID"
// @Success      200  {object}  response.Response{data=domain.Application}
// @Failure      404  {object}  response.Response
// @Router       /jobs/{id}/application [get]
// @Security     BearerAuth
func (h *ApplicationHandler) GetApplicationForJob(c *gin.Context) {
	userID := c.GetString(string(domain.KeyUserID))

	app, err := h.applicationUC.GetApplicationForJob(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Application retrieved", app)
}

// GetMyApplications godoc
// @Summary      List own applications
// @Description  List the caller's applications, newest first, with per-status counts
// @Tags         applications
// @Produce      json
// @Param        page   query     int  false  "Page (default 1)"
// @Param        limit  query     int  false  "Page size (default 10)"
// @Success      200  {object}  response.Response{data=[]domain.Application}
// @Failure      401  {object}  response.Response
// @Router       /applications [get]
// @Security     BearerAuth
func (h *ApplicationHandler) GetMyApplications(c *gin.Context) {
	userID := c.GetString(string(domain.KeyUserID))

	applications, stats, pagination, err := h.applicationUC.GetMyApplications(
		c.Request.Context(), userID, paginationFilter(c))
	if err != nil {
		c.Error(err)
		return
	}

	response.SuccessWithMeta(c, http.StatusOK, "Applications retrieved", applications,
		gin.H{"stats": stats, "pagination": pagination})
}

// GetMyApplicationDetail godoc
// @Summary      Get own application
// @Description  Return one of the caller's applications with its full audit trail
// @Tags         applications
// @Produce      json
// @Param        id  path      string  true  "Application ID"
// @Success      200  {object}  response.Response{data=domain.Application}
// @Failure      404  {object}  response.Response
// @Router       /applications/{id} [get]
// @Security     BearerAuth
func (h *ApplicationHandler) GetMyApplicationDetail(c *gin.Context) {
	userID := c.GetString(string(domain.KeyUserID))

	app, err := h.applicationUC.GetMyApplicationDetail(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Application retrieved", app)
}

// ListApplications godoc
// @Summary      List applications across own jobs
// @Description  List applications to the caller's jobs with per-status counts and pagination
// @Tags         applications
// @Produce      json
// @Param        job_id  query     string  false  "Filter by job"
// @Param        status  query     string  false  "Filter by status"
// @Param        page    query     int     false  "Page (default 1)"
// @Param        limit   query     int     false  "Page size (default 10)"
// @Success      200  {object}  response.Response{data=[]domain.Application}
// @Failure      403  {object}  response.Response
// @Router       /admin/applications [get]
// @Security     BearerAuth
func (h *ApplicationHandler) ListApplications(c *gin.Context) {
	userID := c.GetString(string(domain.KeyUserID))

	filter := paginationFilter(c)
	filter.JobID = c.Query("job_id")
	filter.Status = c.Query("status")

	applications, stats, pagination, err := h.applicationUC.ListPublisherApplications(
		c.Request.Context(), userID, filter)
	if err != nil {
		c.Error(err)
		return
	}

	response.SuccessWithMeta(c, http.StatusOK, "Applications retrieved", applications,
		gin.H{"stats": stats, "pagination": pagination})
}

// GetApplicationDetail godoc
// @Summary      Get application detail
// @Description  Return one application on the caller's jobs with applicant data and full audit trail
// @Tags         applications
// @Produce      json
// @Param        id  path      string  true  "Application ID"
// @Success      200  {object}  response.Response{data=domain.Application}
// @Failure      404  {object}  response.Response
// @Router       /admin/applications/{id} [get]
// @Security     BearerAuth
func (h *ApplicationHandler) GetApplicationDetail(c *gin.Context) {
	userID := c.GetString(string(domain.KeyUserID))

	app, err := h.applicationUC.GetPublisherApplicationDetail(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Application retrieved", app)
}

// UpdateApplicationStatusRequest is the payload for a status transition
type UpdateApplicationStatusRequest struct {
	Status string `json:"status" binding:"required"`
	Notes  string `json:"notes"`
}

// UpdateApplicationStatus godoc
// @Summary      Update application status
// @Description  Transition an application to any status and append an audit entry
// @Tags         applications
// @Accept       json
// @Produce      json
// @Param        id    path      string                          true  "Application ID"
// @Param        body  body      UpdateApplicationStatusRequest  true  "Status update"
// @Success      200  {object}  response.Response{data=domain.Application}
// @Failure      400  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /admin/applications/{id}/status [patch]
// @Security     BearerAuth
func (h *ApplicationHandler) UpdateApplicationStatus(c *gin.Context) {
	userID := c.GetString(string(domain.KeyUserID))

	var req UpdateApplicationStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest(err.Error()))
		return
	}

	app, err := h.applicationUC.UpdateApplicationStatus(
		c.Request.Context(), userID, c.Param("id"), req.Status, req.Notes)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Application status updated", app)
}

// paginationFilter reads page/limit query parameters
func paginationFilter(c *gin.Context) domain.ApplicationFilter {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
	return domain.ApplicationFilter{Page: page, Limit: limit}
}
