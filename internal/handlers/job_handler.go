package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sjperalta/debtbook-api/internal/services"
)

type JobHandler struct {
	jobService *services.JobService
}

func NewJobHandler(jobSvc *services.JobService) *JobHandler {
	return &JobHandler{
		jobService: jobSvc,
	}
}

// Status returns the current worker status
// @Summary Get background job status
// @Description Statistics about background jobs (active, completed, failed, queue length, last runs)
// @Tags Jobs
// @Produce json
// @Success 200 {object} jobs.WorkerStats
// @Router /jobs/status [get]
func (h *JobHandler) Status(c *gin.Context) {
	c.JSON(http.StatusOK, h.jobService.GetStatus())
}

// RunReminders queues a promise-to-pay reminder run
func (h *JobHandler) RunReminders(c *gin.Context) {
	h.jobService.TriggerReminders()
	c.JSON(http.StatusAccepted, gin.H{"message": "Reminder job queued", "job": services.ReminderJobName})
}
