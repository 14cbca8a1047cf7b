package handlers

import (
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/code2cash/backend/internal/portal/controller"
	"github.com/code2cash/backend/internal/portal/models"
	"github.com/gin-gonic/gin"
)

// maxResumeSize is the hard upload cap.
const maxResumeSize = 5 << 20

// readResume pulls the resume file out of the multipart form and applies the
// transport-level filters: the type filter first, then the size limit, each
// with its own error. A missing file is not an error here; the service
// reports it after the required-field check so the failure order holds.
func readResume(c *gin.Context) (*controller.ResumeUpload, bool) {
	header, err := c.FormFile("resume")
	if err != nil {
		return nil, true
	}

	contentType := header.Header.Get("Content-Type")
	if contentType != "application/pdf" && !strings.HasPrefix(contentType, "image/") {
		c.JSON(http.StatusBadRequest, gin.H{"message": "only PDF and image files are allowed"})
		return nil, false
	}
	if header.Size > maxResumeSize {
		c.JSON(http.StatusBadRequest, gin.H{"message": "file too large, maximum size is 5MB"})
		return nil, false
	}

	data, err := readAll(header)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "failed to read uploaded file"})
		return nil, false
	}
	return &controller.ResumeUpload{
		Filename:    header.Filename,
		ContentType: contentType,
		Data:        data,
	}, true
}

func readAll(header *multipart.FileHeader) ([]byte, error) {
	file, err := header.Open()
	if err != nil {
		return nil, err
	}
	defer file.Close()
	return io.ReadAll(file)
}

// submitApplication is POST /api/job-applications/apply (public, multipart).
func (a *API) submitApplication(c *gin.Context) {
	upload, ok := readResume(c)
	if !ok {
		return
	}

	app, err := a.Applications.Submit(c.Request.Context(), &controller.Submission{
		JobID:       c.PostForm("jobId"),
		FullName:    c.PostForm("fullName"),
		Email:       c.PostForm("email"),
		Phone:       c.PostForm("phone"),
		Experience:  c.PostForm("experience"),
		CoverLetter: c.PostForm("coverLetter"),
		Resume:      upload,
	})
	if err != nil {
		a.fail(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":       "application submitted successfully",
		"applicationId": app.ID,
	})
}

// listApplications is GET /api/job-applications (admin).
func (a *API) listApplications(c *gin.Context) {
	page, limit := pageParams(c)
	apps, total, err := a.Applications.List(c.Request.Context(), controller.ApplicationFilter{
		Page:   page,
		Limit:  limit,
		Status: models.ApplicationStatus(c.Query("status")),
		JobID:  c.Query("jobId"),
	})
	if err != nil {
		a.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"applications": apps,
		"totalPages":   totalPages(total, limit),
		"currentPage":  page,
		"total":        total,
	})
}

// getApplication is GET /api/job-applications/:id (admin).
func (a *API) getApplication(c *gin.Context) {
	app, err := a.Applications.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		a.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, app)
}

// updateApplicationStatus is PATCH /api/job-applications/:id/status (admin).
func (a *API) updateApplicationStatus(c *gin.Context) {
	var req struct {
		Status models.ApplicationStatus `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "status is required"})
		return
	}

	app, err := a.Applications.UpdateStatus(c.Request.Context(), c.Param("id"), req.Status)
	if err != nil {
		a.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message":     "status updated successfully",
		"application": app,
	})
}

// updateApplicationNotes is PATCH /api/job-applications/:id/notes (admin).
func (a *API) updateApplicationNotes(c *gin.Context) {
	var req struct {
		Notes string `json:"notes"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid request body"})
		return
	}

	app, err := a.Applications.UpdateNotes(c.Request.Context(), c.Param("id"), req.Notes)
	if err != nil {
		a.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message":     "notes updated successfully",
		"application": app,
	})
}

// deleteApplication is DELETE /api/job-applications/:id (admin).
func (a *API) deleteApplication(c *gin.Context) {
	if err := a.Applications.Delete(c.Request.Context(), c.Param("id")); err != nil {
		a.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "application deleted successfully"})
}

// downloadResume is GET /api/job-applications/:id/resume (admin). Attachment
// disposition with the stored original filename.
func (a *API) downloadResume(c *gin.Context) {
	file, err := a.Applications.ResumeFile(c.Request.Context(), c.Param("id"))
	if err != nil {
		a.fail(c, err)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", file.Name))
	c.Data(http.StatusOK, file.ContentType, file.Data)
}

// viewResume is GET /api/job-applications/:id/resume/view (admin, token via
// header or query). Inline disposition so a compatible viewer renders the
// file in place.
func (a *API) viewResume(c *gin.Context) {
	file, err := a.Applications.ResumeFile(c.Request.Context(), c.Param("id"))
	if err != nil {
		a.fail(c, err)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf("inline; filename=%q", file.Name))
	c.Data(http.StatusOK, file.ContentType, file.Data)
}
