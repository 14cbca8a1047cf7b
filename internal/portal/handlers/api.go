package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/code2cash/backend/internal/portal/auth"
	"github.com/code2cash/backend/internal/portal/controller"
	e "github.com/code2cash/backend/internal/portal/errors"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// API bundles the controller services behind the HTTP routes.
type API struct {
	Applications *controller.ApplicationService
	Jobs         *controller.JobService
	Careers      *controller.CareerService
	Meetings     *controller.MeetingService
	Contacts     *controller.ContactService
	Auth         *controller.AuthService
	Dashboard    *controller.DashboardService

	Guard  *auth.Guard
	Logger *zap.Logger

	// Development controls whether internal error detail leaks into 500
	// responses.
	Development bool
}

// Router assembles the Gin engine: CORS for the fixed origin list, public
// submission routes, and the guarded admin surface.
func (a *API) Router(origins []string) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.MaxMultipartMemory = maxResumeSize

	if len(origins) > 0 {
		r.Use(cors.New(cors.Config{
			AllowOrigins:     origins,
			AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Length", "Content-Type", "Authorization"},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}))
	}

	r.GET("/health", a.health)

	api := r.Group("/api")

	jobs := api.Group("/jobs")
	jobs.GET("/active", a.activeJobs)
	jobs.GET("", a.Guard.RequireAdmin(), a.listJobs)
	jobs.GET("/stats", a.Guard.RequireAdmin(), a.jobStats)
	jobs.POST("", a.Guard.RequireAdmin(), a.createJob)
	jobs.PUT("/:id", a.Guard.RequireAdmin(), a.updateJob)
	jobs.DELETE("/:id", a.Guard.RequireAdmin(), a.deleteJob)

	apps := api.Group("/job-applications")
	apps.POST("/apply", a.submitApplication)
	apps.GET("", a.Guard.RequireAdmin(), a.listApplications)
	apps.GET("/:id", a.Guard.RequireAdmin(), a.getApplication)
	apps.PATCH("/:id/status", a.Guard.RequireAdmin(), a.updateApplicationStatus)
	apps.PATCH("/:id/notes", a.Guard.RequireAdmin(), a.updateApplicationNotes)
	apps.DELETE("/:id", a.Guard.RequireAdmin(), a.deleteApplication)
	apps.GET("/:id/resume", a.Guard.RequireAdmin(), a.downloadResume)
	// The inline viewer cannot attach headers, so this one route also
	// accepts ?token=.
	apps.GET("/:id/resume/view", a.Guard.RequireAdminWithQueryToken(), a.viewResume)

	careers := api.Group("/careers")
	careers.POST("/apply", a.submitCareer)
	careers.GET("/applications", a.Guard.RequireAdmin(), a.listCareers)
	careers.GET("/application/:id", a.Guard.RequireAdmin(), a.getCareer)
	careers.GET("/application/:id/resume", a.Guard.RequireAdmin(), a.downloadCareerResume)
	careers.PATCH("/application/:id/status", a.Guard.RequireAdmin(), a.updateCareerStatus)
	careers.DELETE("/application/:id", a.Guard.RequireAdmin(), a.deleteCareer)
	careers.GET("/stats", a.Guard.RequireAdmin(), a.careerStats)

	meetings := api.Group("/meetings")
	meetings.POST("/request", a.submitMeeting)
	meetings.GET("/requests", a.Guard.RequireAdmin(), a.listMeetings)
	meetings.GET("/request/:id", a.Guard.RequireAdmin(), a.getMeeting)
	meetings.PATCH("/request/:id/status", a.Guard.RequireAdmin(), a.updateMeeting)
	meetings.DELETE("/request/:id", a.Guard.RequireAdmin(), a.deleteMeeting)
	meetings.GET("/stats", a.Guard.RequireAdmin(), a.meetingStats)

	contacts := api.Group("/contacts")
	contacts.POST("/message", a.submitContact)
	contacts.GET("/messages", a.Guard.RequireAdmin(), a.listContacts)
	contacts.GET("/message/:id", a.Guard.RequireAdmin(), a.getContact)
	contacts.PATCH("/message/:id", a.Guard.RequireAdmin(), a.updateContact)
	contacts.DELETE("/message/:id", a.Guard.RequireAdmin(), a.deleteContact)
	contacts.GET("/stats", a.Guard.RequireAdmin(), a.contactStats)

	authR := api.Group("/auth")
	authR.POST("/login", a.login)
	authR.POST("/forgot-password", a.forgotPassword)
	authR.POST("/reset-password", a.resetPassword)
	authR.GET("/verify", a.Guard.RequireAdmin(), a.verify)
	authR.POST("/change-password", a.Guard.RequireAdmin(), a.changePassword)

	api.GET("/admin/dashboard", a.Guard.RequireAdmin(), a.dashboard)

	return r
}

func (a *API) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "OK",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

// fail maps a service error to its HTTP response. The sentinel taxonomy:
// invalid input 400, duplicate application 409, anything missing 404,
// everything unrecognized 500 with detail only in development.
func (a *API) fail(c *gin.Context, err error) {
	switch {
	case errors.Is(err, e.ErrMissingFields),
		errors.Is(err, e.ErrMissingResume),
		errors.Is(err, e.ErrInvalidJobID),
		errors.Is(err, e.ErrInvalidStatus),
		errors.Is(err, e.ErrInvalidInput),
		errors.Is(err, e.ErrInvalidCredentials),
		errors.Is(err, e.ErrInvalidResetToken),
		errors.Is(err, e.ErrDuplicateEmail),
		errors.Is(err, e.ErrDuplicatePhone):
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})

	case errors.Is(err, e.ErrAlreadyApplied):
		c.JSON(http.StatusConflict, gin.H{"message": err.Error()})

	case errors.Is(err, e.ErrNotFound),
		errors.Is(err, e.ErrResumeMissing),
		errors.Is(err, e.ErrResumeCorrupted):
		c.JSON(http.StatusNotFound, gin.H{"message": err.Error()})

	default:
		a.Logger.Error("request failed",
			zap.String("path", c.FullPath()),
			zap.Error(err),
		)
		body := gin.H{"message": "server error"}
		if a.Development {
			body["error"] = err.Error()
		}
		c.JSON(http.StatusInternalServerError, body)
	}
}

// pageParams reads the page/limit query pair with the listing defaults.
func pageParams(c *gin.Context) (int, int) {
	page := intQuery(c, "page", 1)
	limit := intQuery(c, "limit", 10)
	return page, limit
}

func intQuery(c *gin.Context, key string, def int) int {
	n, err := strconv.Atoi(c.Query(key))
	if err != nil || n < 1 {
		return def
	}
	return n
}

// totalPages computes the page count of a listing.
func totalPages(total int64, limit int) int64 {
	if limit < 1 {
		return 0
	}
	return (total + int64(limit) - 1) / int64(limit)
}
