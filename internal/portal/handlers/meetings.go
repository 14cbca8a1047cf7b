package handlers

import (
	"net/http"

	"github.com/code2cash/backend/internal/portal/controller"
	"github.com/code2cash/backend/internal/portal/models"
	"github.com/gin-gonic/gin"
)

// submitMeeting is POST /api/meetings/request (public).
func (a *API) submitMeeting(c *gin.Context) {
	var req struct {
		Name          string `json:"name" binding:"required"`
		Email         string `json:"email" binding:"required"`
		Phone         string `json:"phone"`
		Company       string `json:"company"`
		Message       string `json:"message"`
		PreferredDate string `json:"preferredDate"`
		PreferredTime string `json:"preferredTime"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "name and email are required"})
		return
	}

	meeting, err := a.Meetings.Request(c.Request.Context(), &controller.MeetingRequest{
		Name:          req.Name,
		Email:         req.Email,
		Phone:         req.Phone,
		Company:       req.Company,
		Message:       req.Message,
		PreferredDate: req.PreferredDate,
		PreferredTime: req.PreferredTime,
	})
	if err != nil {
		a.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"message": "meeting request submitted successfully",
		"meeting": meeting,
	})
}

// listMeetings is GET /api/meetings/requests (admin).
func (a *API) listMeetings(c *gin.Context) {
	page, limit := pageParams(c)
	meetings, total, err := a.Meetings.List(c.Request.Context(), page, limit,
		models.MeetingStatus(c.Query("status")))
	if err != nil {
		a.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"meetings":    meetings,
		"totalPages":  totalPages(total, limit),
		"currentPage": page,
		"total":       total,
	})
}

// getMeeting is GET /api/meetings/request/:id (admin).
func (a *API) getMeeting(c *gin.Context) {
	meeting, err := a.Meetings.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		a.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, meeting)
}

// updateMeeting is PATCH /api/meetings/request/:id/status (admin).
func (a *API) updateMeeting(c *gin.Context) {
	var req struct {
		Status        *models.MeetingStatus `json:"status"`
		AdminNotes    *string               `json:"adminNotes"`
		ScheduledDate *string               `json:"scheduledDate"`
		ScheduledTime *string               `json:"scheduledTime"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid request body"})
		return
	}

	meeting, err := a.Meetings.Update(c.Request.Context(), &models.MeetingUpdate{
		ID:            c.Param("id"),
		Status:        req.Status,
		AdminNotes:    req.AdminNotes,
		ScheduledDate: req.ScheduledDate,
		ScheduledTime: req.ScheduledTime,
	})
	if err != nil {
		a.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message": "meeting status updated",
		"meeting": meeting,
	})
}

// deleteMeeting is DELETE /api/meetings/request/:id (admin).
func (a *API) deleteMeeting(c *gin.Context) {
	if err := a.Meetings.Delete(c.Request.Context(), c.Param("id")); err != nil {
		a.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "meeting request deleted successfully"})
}

// meetingStats is GET /api/meetings/stats (admin).
func (a *API) meetingStats(c *gin.Context) {
	stats, err := a.Meetings.Stats(c.Request.Context())
	if err != nil {
		a.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}
