package handlers

import (
	"net/http"

	"github.com/code2cash/backend/internal/portal/controller"
	"github.com/code2cash/backend/internal/portal/models"
	"github.com/gin-gonic/gin"
)

// submitContact is POST /api/contacts/message (public).
func (a *API) submitContact(c *gin.Context) {
	var req struct {
		Name    string `json:"name" binding:"required"`
		Email   string `json:"email" binding:"required"`
		Subject string `json:"subject"`
		Message string `json:"message" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "name, email and message are required"})
		return
	}

	contact, err := a.Contacts.Submit(c.Request.Context(), &controller.ContactMessage{
		Name:    req.Name,
		Email:   req.Email,
		Subject: req.Subject,
		Message: req.Message,
	})
	if err != nil {
		a.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"message": "message sent successfully",
		"contact": contact,
	})
}

// listContacts is GET /api/contacts/messages (admin).
func (a *API) listContacts(c *gin.Context) {
	page, limit := pageParams(c)
	contacts, total, err := a.Contacts.List(c.Request.Context(), page, limit,
		models.ContactStatus(c.Query("status")),
		models.ContactPriority(c.Query("priority")))
	if err != nil {
		a.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"messages":    contacts,
		"totalPages":  totalPages(total, limit),
		"currentPage": page,
		"total":       total,
	})
}

// getContact is GET /api/contacts/message/:id (admin). First view flips an
// unread message to read.
func (a *API) getContact(c *gin.Context) {
	contact, err := a.Contacts.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		a.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, contact)
}

// updateContact is PATCH /api/contacts/message/:id (admin).
func (a *API) updateContact(c *gin.Context) {
	var req struct {
		Status     *models.ContactStatus   `json:"status"`
		Priority   *models.ContactPriority `json:"priority"`
		AdminNotes *string                 `json:"adminNotes"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid request body"})
		return
	}

	contact, err := a.Contacts.Update(c.Request.Context(), &models.ContactUpdate{
		ID:         c.Param("id"),
		Status:     req.Status,
		Priority:   req.Priority,
		AdminNotes: req.AdminNotes,
	})
	if err != nil {
		a.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message": "message updated successfully",
		"contact": contact,
	})
}

// deleteContact is DELETE /api/contacts/message/:id (admin).
func (a *API) deleteContact(c *gin.Context) {
	if err := a.Contacts.Delete(c.Request.Context(), c.Param("id")); err != nil {
		a.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "message deleted successfully"})
}

// contactStats is GET /api/contacts/stats (admin).
func (a *API) contactStats(c *gin.Context) {
	stats, err := a.Contacts.Stats(c.Request.Context())
	if err != nil {
		a.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}
