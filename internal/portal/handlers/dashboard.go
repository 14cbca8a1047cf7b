package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// dashboard is GET /api/admin/dashboard (admin).
func (a *API) dashboard(c *gin.Context) {
	overview, err := a.Dashboard.Build(c.Request.Context())
	if err != nil {
		a.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, overview)
}
