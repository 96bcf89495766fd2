package v1

import (
	"net/http"
	"strconv"

	"go-jobboard-backend/internal/delivery/http/response"
	"go-jobboard-backend/internal/domain"
	"go-jobboard-backend/pkg/apperror"

	"github.com/gin-gonic/gin"
)

type JobHandler struct {
	jobUC domain.JobUsecase
}

// NewJobHandler registers job catalog routes. Listing and detail are
// public; management routes require an ADMIN session.
func NewJobHandler(public, admin *gin.RouterGroup, jobUC domain.JobUsecase) {
	handler := &JobHandler{jobUC: jobUC}

	jobs := public.Group("/jobs")
	{
		jobs.GET("", handler.ListJobs)
		jobs.GET("/:id", handler.GetJob)
	}

	adminJobs := admin.Group("/jobs")
	{
		adminJobs.POST("", handler.CreateJob)
		adminJobs.GET("", handler.ListMyJobs)
		adminJobs.PATCH("/:id/status", handler.UpdateJobStatus)
		adminJobs.DELETE("/:id", handler.DeleteJob)
	}
}

// ListJobs godoc
// @Summary      List open jobs
// @Description  List ACTIVE jobs with optional search, department and location filters
// @Tags         jobs
// @Produce      json
// @Param        search      query     string  false  "Match against title and description"
// @Param        department  query     string  false  "Exact department"
// @Param        location    query     string  false  "Location substring"
// @Param        limit       query     int     false  "Max results (default 100)"
// @Success      200  {object}  response.Response{data=[]domain.Job}
// @Router       /jobs [get]
func (h *JobHandler) ListJobs(c *gin.Context) {
	limit, _ := strconv.Atoi(c.Query("limit"))
	filter := domain.JobFilter{
		Search:     c.Query("search"),
		Department: c.Query("department"),
		Location:   c.Query("location"),
		Limit:      limit,
	}

	jobs, err := h.jobUC.ListPublicJobs(c.Request.Context(), filter)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Jobs retrieved", jobs)
}

// GetJob godoc
// @Summary      Get job details
// @Description  Return one job with its publisher and custom questions
// @Tags         jobs
// @Produce      json
// @Param        id  path      string  true  "Job ID"
// @Success      200  {object}  response.Response{data=domain.Job}
// @Failure      404  {object}  response.Response
// @Router       /jobs/{id} [get]
func (h *JobHandler) GetJob(c *gin.Context) {
	job, err := h.jobUC.GetJobDetails(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Job retrieved", job)
}

// CreateJob godoc
// @Summary      Create a job
// @Description  Create a posting owned by the caller. Status defaults to DRAFT.
// @Tags         jobs
// @Accept       json
// @Produce      json
// @Param        body  body      domain.CreateJobInput  true  "Job fields"
// @Success      201  {object}  response.Response{data=domain.Job}
// @Failure      400  {object}  response.Response
// @Failure      403  {object}  response.Response
// @Router       /admin/jobs [post]
// @Security     BearerAuth
func (h *JobHandler) CreateJob(c *gin.Context) {
	userID := c.GetString(string(domain.KeyUserID))

	var input domain.CreateJobInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.Error(apperror.BadRequest(err.Error()))
		return
	}

	job, err := h.jobUC.CreateJob(c.Request.Context(), userID, input)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusCreated, "Job created", job)
}

// ListMyJobs godoc
// @Summary      List own jobs
// @Description  List the caller's postings with application counts, any status
// @Tags         jobs
// @Produce      json
// @Param        status  query     string  false  "Filter by status"
// @Success      200  {object}  response.Response{data=[]domain.Job}
// @Failure      403  {object}  response.Response
// @Router       /admin/jobs [get]
// @Security     BearerAuth
func (h *JobHandler) ListMyJobs(c *gin.Context) {
	userID := c.GetString(string(domain.KeyUserID))
	filter := domain.JobFilter{Status: c.Query("status")}

	jobs, err := h.jobUC.ListJobsByPublisher(c.Request.Context(), userID, filter)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Jobs retrieved", jobs)
}

// UpdateJobStatusRequest is the payload for a job status transition
type UpdateJobStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// UpdateJobStatus godoc
// @Summary      Update job status
// @Description  Transition a posting between DRAFT, ACTIVE and CLOSED
// @Tags         jobs
// @Accept       json
// @Produce      json
// @Param        id    path      string                  true  "Job ID"
// @Param        body  body      UpdateJobStatusRequest  true  "New status"
// @Success      200  {object}  response.Response{data=domain.Job}
// @Failure      400  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /admin/jobs/{id}/status [patch]
// @Security     BearerAuth
func (h *JobHandler) UpdateJobStatus(c *gin.Context) {
	userID := c.GetString(string(domain.KeyUserID))

	var req UpdateJobStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest(err.Error()))
		return
	}

	job, err := h.jobUC.UpdateJobStatus(c.Request.Context(), userID, c.Param("id"), req.Status)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Job status updated", job)
}

// DeleteJob godoc
// @Summary      Delete a job
// @Description  Delete a posting the caller owns along with its applications and stored resumes
// @Tags         jobs
// @Produce      json
// @Param        id  path      string  true  "Job ID"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /admin/jobs/{id} [delete]
// @Security     BearerAuth
func (h *JobHandler) DeleteJob(c *gin.Context) {
	userID := c.GetString(string(domain.KeyUserID))

	if err := h.jobUC.DeleteJob(c.Request.Context(), userID, c.Param("id")); err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Job deleted", nil)
}
