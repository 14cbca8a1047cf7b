package handlers

import (
	"net/http"

	"github.com/code2cash/backend/internal/portal/auth"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// login is POST /api/auth/login (public).
func (a *API) login(c *gin.Context) {
	var req struct {
		Username string `json:"username" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "username and password are required"})
		return
	}

	token, admin, err := a.Auth.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		a.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"token": token,
		"admin": admin,
	})
}

// verify is GET /api/auth/verify (admin). The guard has already validated the
// token; this refetches the identity so a deleted admin stops verifying.
func (a *API) verify(c *gin.Context) {
	current, err := auth.CurrentAdmin(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "token is not valid"})
		return
	}
	admin, err := a.Auth.Verify(c.Request.Context(), current.ID)
	if err != nil {
		a.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"admin": admin})
}

// changePassword is POST /api/auth/change-password (admin).
func (a *API) changePassword(c *gin.Context) {
	var req struct {
		CurrentPassword string `json:"currentPassword" binding:"required"`
		NewPassword     string `json:"newPassword" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "currentPassword and newPassword are required"})
		return
	}

	current, err := auth.CurrentAdmin(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "token is not valid"})
		return
	}
	if err := a.Auth.ChangePassword(c.Request.Context(), current.ID, req.CurrentPassword, req.NewPassword); err != nil {
		a.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "password changed successfully"})
}

// forgotPassword is POST /api/auth/forgot-password (public). The response
// never reveals whether the address belongs to the admin.
func (a *API) forgotPassword(c *gin.Context) {
	var req struct {
		Email string `json:"email" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "email is required"})
		return
	}

	if err := a.Auth.ForgotPassword(c.Request.Context(), req.Email); err != nil {
		a.Logger.Warn("password reset request failed", zap.Error(err))
	}
	c.JSON(http.StatusOK, gin.H{"message": "if the email exists, a reset link has been sent"})
}

// resetPassword is POST /api/auth/reset-password (public).
func (a *API) resetPassword(c *gin.Context) {
	var req struct {
		Token       string `json:"token" binding:"required"`
		NewPassword string `json:"newPassword" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "token and newPassword are required"})
		return
	}

	if err := a.Auth.ResetPassword(c.Request.Context(), req.Token, req.NewPassword); err != nil {
		a.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "password reset successfully"})
}
