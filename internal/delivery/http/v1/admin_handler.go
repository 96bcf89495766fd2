package v1

import (
	"net/http"

	"go-jobboard-backend/internal/delivery/http/response"
	"go-jobboard-backend/internal/domain"

	"github.com/gin-gonic/gin"
)

type AdminHandler struct {
	statsUC       domain.StatsUsecase
	applicationUC domain.ApplicationUsecase
}

// NewAdminHandler registers dashboard and export routes
func NewAdminHandler(admin *gin.RouterGroup, statsUC domain.StatsUsecase, applicationUC domain.ApplicationUsecase) {
	handler := &AdminHandler{statsUC: statsUC, applicationUC: applicationUC}

	admin.GET("/stats", handler.GetDashboardStats)
	admin.GET("/applications/export", handler.ExportApplications)
}

// GetDashboardStats godoc
// @Summary      Dashboard statistics
// @Description  Aggregate job and application counts for the caller's postings
// @Tags         admin
// @Produce      json
// @Success      200  {object}  response.Response{data=domain.DashboardStats}
// @Failure      403  {object}  response.Response
// @Router       /admin/stats [get]
// @Security     BearerAuth
func (h *AdminHandler) GetDashboardStats(c *gin.Context) {
	userID := c.GetString(string(domain.KeyUserID))

	stats, err := h.statsUC.GetDashboardStats(c.Request.Context(), userID)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Dashboard stats retrieved", stats)
}

// ExportApplications godoc
// @Summary      Export applications
// @Description  Download applications to the caller's jobs as xlsx or csv
// @Tags         admin
// @Produce      application/octet-stream
// @Param        format  query     string  false  "xlsx (default) or csv"
// @Param        job_id  query     string  false  "Filter by job"
// @Param        status  query     string  false  "Filter by status"
// @Success      200  {file}    binary
// @Failure      400  {object}  response.Response
// @Failure      403  {object}  response.Response
// @Router       /admin/applications/export [get]
// @Security     BearerAuth
func (h *AdminHandler) ExportApplications(c *gin.Context) {
	userID := c.GetString(string(domain.KeyUserID))

	filter := domain.ApplicationFilter{
		JobID:  c.Query("job_id"),
		Status: c.Query("status"),
	}

	data, filename, err := h.applicationUC.ExportPublisherApplications(
		c.Request.Context(), userID, c.DefaultQuery("format", "xlsx"), filter)
	if err != nil {
		c.Error(err)
		return
	}

	contentType := "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	if c.Query("format") == "csv" {
		contentType = "text/csv"
	}

	c.Header("Content-Disposition", "attachment; filename="+filename)
	c.Data(http.StatusOK, contentType, data)
}
