package handlers

import (
	"fmt"
	"net/http"

	"github.com/code2cash/backend/internal/portal/controller"
	"github.com/code2cash/backend/internal/portal/models"
	"github.com/gin-gonic/gin"
)

// submitCareer is POST /api/careers/apply (public, multipart).
func (a *API) submitCareer(c *gin.Context) {
	upload, ok := readResume(c)
	if !ok {
		return
	}

	career, err := a.Careers.Submit(c.Request.Context(), &controller.CareerSubmission{
		Name:       c.PostForm("name"),
		Email:      c.PostForm("email"),
		Phone:      c.PostForm("phone"),
		Position:   c.PostForm("position"),
		Experience: c.PostForm("experience"),
		Resume:     upload,
	})
	if err != nil {
		a.fail(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "application submitted successfully",
		"career":  career,
	})
}

// listCareers is GET /api/careers/applications (admin).
func (a *API) listCareers(c *gin.Context) {
	page, limit := pageParams(c)
	careers, total, err := a.Careers.List(c.Request.Context(), page, limit,
		models.ApplicationStatus(c.Query("status")))
	if err != nil {
		a.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"applications": careers,
		"totalPages":   totalPages(total, limit),
		"currentPage":  page,
		"total":        total,
	})
}

// getCareer is GET /api/careers/application/:id (admin).
func (a *API) getCareer(c *gin.Context) {
	career, err := a.Careers.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		a.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, career)
}

// downloadCareerResume is GET /api/careers/application/:id/resume (admin).
func (a *API) downloadCareerResume(c *gin.Context) {
	file, err := a.Careers.ResumeFile(c.Request.Context(), c.Param("id"))
	if err != nil {
		a.fail(c, err)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", file.Name))
	c.Data(http.StatusOK, file.ContentType, file.Data)
}

// updateCareerStatus is PATCH /api/careers/application/:id/status (admin).
// Accepts status plus optional notes in one body, matching the console form.
func (a *API) updateCareerStatus(c *gin.Context) {
	var req struct {
		Status models.ApplicationStatus `json:"status" binding:"required"`
		Notes  *string                  `json:"notes"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "status is required"})
		return
	}

	career, err := a.Careers.UpdateStatus(c.Request.Context(), c.Param("id"), req.Status, req.Notes)
	if err != nil {
		a.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message":     "application status updated",
		"application": career,
	})
}

// deleteCareer is DELETE /api/careers/application/:id (admin).
func (a *API) deleteCareer(c *gin.Context) {
	if err := a.Careers.Delete(c.Request.Context(), c.Param("id")); err != nil {
		a.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "application deleted successfully"})
}

// careerStats is GET /api/careers/stats (admin).
func (a *API) careerStats(c *gin.Context) {
	stats, err := a.Careers.Stats(c.Request.Context())
	if err != nil {
		a.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}
