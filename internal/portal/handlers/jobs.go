package handlers

import (
	"net/http"

	"github.com/code2cash/backend/internal/portal/auth"
	"github.com/code2cash/backend/internal/portal/controller"
	"github.com/code2cash/backend/internal/portal/models"
	"github.com/gin-gonic/gin"
)

// activeJobs is GET /api/jobs/active (public).
func (a *API) activeJobs(c *gin.Context) {
	jobs, err := a.Jobs.Active(c.Request.Context())
	if err != nil {
		a.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, jobs)
}

// listJobs is GET /api/jobs (admin).
func (a *API) listJobs(c *gin.Context) {
	page, limit := pageParams(c)
	jobs, total, err := a.Jobs.List(c.Request.Context(), page, limit)
	if err != nil {
		a.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"jobs":        jobs,
		"totalPages":  totalPages(total, limit),
		"currentPage": page,
		"total":       total,
	})
}

type jobRequest struct {
	Title        string         `json:"title" binding:"required"`
	Type         models.JobType `json:"type" binding:"required"`
	Location     string         `json:"location" binding:"required"`
	Description  string         `json:"description" binding:"required"`
	Requirements []string       `json:"requirements"`
	Salary       string         `json:"salary"`
	Experience   string         `json:"experience"`
}

// createJob is POST /api/jobs (admin).
func (a *API) createJob(c *gin.Context) {
	var req jobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid request body: " + err.Error()})
		return
	}

	admin, err := auth.CurrentAdmin(c)
	if err != nil {
		a.fail(c, err)
		return
	}

	job, err := a.Jobs.Create(c.Request.Context(), &controller.NewJobInput{
		Title:        req.Title,
		Type:         req.Type,
		Location:     req.Location,
		Description:  req.Description,
		Requirements: req.Requirements,
		Salary:       req.Salary,
		Experience:   req.Experience,
	}, admin.ID)
	if err != nil {
		a.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"message": "job created successfully",
		"job":     job,
	})
}

// updateJob is PUT /api/jobs/:id (admin). Absent fields keep their stored
// value.
func (a *API) updateJob(c *gin.Context) {
	var req struct {
		Title        *string         `json:"title"`
		Type         *models.JobType `json:"type"`
		Location     *string         `json:"location"`
		Description  *string         `json:"description"`
		Requirements *[]string       `json:"requirements"`
		Salary       *string         `json:"salary"`
		Experience   *string         `json:"experience"`
		IsActive     *bool           `json:"isActive"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid request body: " + err.Error()})
		return
	}

	job, err := a.Jobs.Update(c.Request.Context(), &models.JobUpdate{
		ID:           c.Param("id"),
		Title:        req.Title,
		Type:         req.Type,
		Location:     req.Location,
		Description:  req.Description,
		Requirements: req.Requirements,
		Salary:       req.Salary,
		Experience:   req.Experience,
		IsActive:     req.IsActive,
	})
	if err != nil {
		a.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message": "job updated successfully",
		"job":     job,
	})
}

// deleteJob is DELETE /api/jobs/:id (admin).
func (a *API) deleteJob(c *gin.Context) {
	if err := a.Jobs.Delete(c.Request.Context(), c.Param("id")); err != nil {
		a.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "job deleted successfully"})
}

// jobStats is GET /api/jobs/stats (admin).
func (a *API) jobStats(c *gin.Context) {
	stats, err := a.Jobs.Stats(c.Request.Context())
	if err != nil {
		a.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}
