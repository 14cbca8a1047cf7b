package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"strings"
	"testing"

	"github.com/code2cash/backend/internal/portal/auth"
	"github.com/code2cash/backend/internal/portal/controller"
	"github.com/code2cash/backend/internal/portal/db"
	"github.com/code2cash/backend/internal/portal/resume"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

const testSecret = "api-test-secret"

// newTestAPI assembles the full stack on in-memory SQLite and disk resume
// storage under a temp dir, then logs in and returns the router plus a live
// admin token.
func newTestAPI(t *testing.T) (*gin.Engine, string) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	gdb, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	repo, err := db.New(gdb)
	require.NoError(t, err)

	logger := zaptest.NewLogger(t)
	store := resume.NewStorage(resume.ModeDisk, t.TempDir())

	authSvc := controller.NewAuthService(repo, nil, testSecret, logger)
	require.NoError(t, authSvc.EnsureDefaultAdmin(context.Background(), "admin123"))

	api := &API{
		Applications: controller.NewApplicationService(repo, store, logger),
		Jobs:         controller.NewJobService(repo, logger),
		Careers:      controller.NewCareerService(repo, store, logger),
		Meetings:     controller.NewMeetingService(repo, logger),
		Contacts:     controller.NewContactService(repo, logger),
		Auth:         authSvc,
		Dashboard:    controller.NewDashboardService(repo, logger),
		Guard:        auth.NewGuard(testSecret, repo),
		Logger:       logger,
	}
	r := api.Router(nil)

	w := doJSON(r, http.MethodPost, "/api/auth/login", "", gin.H{
		"username": "admin",
		"password": "admin123",
	})
	require.Equal(t, http.StatusOK, w.Code, "login must succeed: %s", w.Body.String())
	var loginResp struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &loginResp))
	require.NotEmpty(t, loginResp.Token)
	return r, loginResp.Token
}

func doJSON(r *gin.Engine, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

// multipartBody builds a multipart form with the given fields and one file
// part named "resume" carrying an explicit Content-Type.
func multipartBody(t *testing.T, fields map[string]string, filename, contentType string, data []byte) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(t, mw.WriteField(k, v))
	}
	if filename != "" {
		h := textproto.MIMEHeader{}
		h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="resume"; filename=%q`, filename))
		h.Set("Content-Type", contentType)
		part, err := mw.CreatePart(h)
		require.NoError(t, err)
		_, err = part.Write(data)
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())
	return &buf, mw.FormDataContentType()
}

func createJob(t *testing.T, r *gin.Engine, token string) string {
	t.Helper()
	w := doJSON(r, http.MethodPost, "/api/jobs", token, gin.H{
		"title":        "Backend Engineer",
		"type":         "Full-time",
		"location":     "Remote",
		"description":  "Build the portal backend.",
		"requirements": []string{"Go", "SQL"},
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var resp struct {
		Job struct {
			ID string `json:"id"`
		} `json:"job"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Job.ID)
	return resp.Job.ID
}

func submitApplication(t *testing.T, r *gin.Engine, jobID, email string, pdf []byte) *httptest.ResponseRecorder {
	t.Helper()
	body, contentType := multipartBody(t, map[string]string{
		"jobId":       jobID,
		"fullName":    "Jane Doe",
		"email":       email,
		"phone":       "+1-555-0100",
		"experience":  "5 years",
		"coverLetter": "I would like to apply.",
	}, "jane-cv.pdf", "application/pdf", pdf)

	req := httptest.NewRequest(http.MethodPost, "/api/job-applications/apply", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

// TestApplicationLifecycle walks the whole intake path: submit, duplicate
// rejection, admin listing, byte-identical download, status update.
func TestApplicationLifecycle(t *testing.T) {
	r, token := newTestAPI(t)
	jobID := createJob(t, r, token)
	pdf := []byte("%PDF-1.4 test resume payload")

	// Submit.
	w := submitApplication(t, r, jobID, "jane@example.com", pdf)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var created struct {
		ApplicationID string `json:"applicationId"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	require.NotEmpty(t, created.ApplicationID)

	// Resubmitting the same (job, email) conflicts.
	w = submitApplication(t, r, jobID, "jane@example.com", pdf)
	assert.Equal(t, http.StatusConflict, w.Code)

	// Admin listing with the job filter finds it.
	w = doJSON(r, http.MethodGet, "/api/job-applications?jobId="+jobID, token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var listing struct {
		Applications []struct {
			ID       string `json:"id"`
			JobTitle string `json:"jobTitle"`
			Status   string `json:"status"`
		} `json:"applications"`
		Total int64 `json:"total"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &listing))
	require.Len(t, listing.Applications, 1)
	assert.EqualValues(t, 1, listing.Total)
	assert.Equal(t, "Backend Engineer", listing.Applications[0].JobTitle)
	assert.Equal(t, "pending", listing.Applications[0].Status)

	// Download returns the original bytes and filename.
	w = doJSON(r, http.MethodGet, "/api/job-applications/"+created.ApplicationID+"/resume", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, pdf, w.Body.Bytes(), "download must be byte-identical to the upload")
	assert.Contains(t, w.Header().Get("Content-Disposition"), "jane-cv.pdf")
	assert.Equal(t, "application/pdf", w.Header().Get("Content-Type"))

	// Status moves to hired.
	w = doJSON(r, http.MethodPatch, "/api/job-applications/"+created.ApplicationID+"/status", token, gin.H{"status": "hired"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Contains(t, w.Body.String(), `"hired"`)

	// Unknown status is rejected.
	w = doJSON(r, http.MethodPatch, "/api/job-applications/"+created.ApplicationID+"/status", token, gin.H{"status": "archived"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestApplicationValidationFailures(t *testing.T) {
	r, token := newTestAPI(t)
	jobID := createJob(t, r, token)

	// Missing fields beat the missing resume.
	body, contentType := multipartBody(t, map[string]string{"jobId": jobID}, "", "", nil)
	req := httptest.NewRequest(http.MethodPost, "/api/job-applications/apply", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "all fields are required")

	// Complete fields but no file.
	body, contentType = multipartBody(t, map[string]string{
		"jobId":       jobID,
		"fullName":    "Jane Doe",
		"email":       "jane@example.com",
		"phone":       "+1-555-0100",
		"experience":  "5 years",
		"coverLetter": "Hello.",
	}, "", "", nil)
	req = httptest.NewRequest(http.MethodPost, "/api/job-applications/apply", body)
	req.Header.Set("Content-Type", contentType)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "resume file is required")

	// Disallowed file type is stopped at the transport.
	body, contentType = multipartBody(t, map[string]string{"jobId": jobID},
		"cv.zip", "application/zip", []byte("zip"))
	req = httptest.NewRequest(http.MethodPost, "/api/job-applications/apply", body)
	req.Header.Set("Content-Type", contentType)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "only PDF and image files are allowed")

	// Malformed job id, complete otherwise.
	w = submitApplication(t, r, "not-hex", "jane@example.com", []byte("%PDF-1.4"))
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "invalid job")

	// Well-formed id with no posting behind it.
	w = submitApplication(t, r, "507f1f77bcf86cd799439011", "jane@example.com", []byte("%PDF-1.4"))
	assert.Equal(t, http.StatusNotFound, w.Code)
}

// TestResumeViewAuthCarriers: the inline view accepts the token in the header
// or the query string; the plain download accepts the header only.
func TestResumeViewAuthCarriers(t *testing.T) {
	r, token := newTestAPI(t)
	jobID := createJob(t, r, token)
	pdf := []byte("%PDF-1.4 view me")

	w := submitApplication(t, r, jobID, "jane@example.com", pdf)
	require.Equal(t, http.StatusCreated, w.Code)
	var created struct {
		ApplicationID string `json:"applicationId"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))

	viewPath := "/api/job-applications/" + created.ApplicationID + "/resume/view"

	// Header carrier.
	w = doJSON(r, http.MethodGet, viewPath, token, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, strings.HasPrefix(w.Header().Get("Content-Disposition"), "inline"))

	// Query carrier.
	w = doJSON(r, http.MethodGet, viewPath+"?token="+token, "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, pdf, w.Body.Bytes())

	// No token at all.
	w = doJSON(r, http.MethodGet, viewPath, "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// The download route ignores the query carrier.
	w = doJSON(r, http.MethodGet, "/api/job-applications/"+created.ApplicationID+"/resume?token="+token, "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAdminSurfaceRequiresToken(t *testing.T) {
	r, _ := newTestAPI(t)

	for _, path := range []string{
		"/api/job-applications",
		"/api/jobs",
		"/api/careers/applications",
		"/api/meetings/requests",
		"/api/contacts/messages",
		"/api/admin/dashboard",
	} {
		w := doJSON(r, http.MethodGet, path, "", nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code, path)
	}
}

// TestCareersFieldSpecificDuplicates: careers reject duplicate email and
// duplicate phone independently, each with its own message.
func TestCareersFieldSpecificDuplicates(t *testing.T) {
	r, _ := newTestAPI(t)
	pdf := []byte("%PDF-1.4 career resume")

	submit := func(email, phone string) *httptest.ResponseRecorder {
		body, contentType := multipartBody(t, map[string]string{
			"name":       "Jane Doe",
			"email":      email,
			"phone":      phone,
			"position":   "Backend Engineer",
			"experience": "5 years",
		}, "jane-cv.pdf", "application/pdf", pdf)
		req := httptest.NewRequest(http.MethodPost, "/api/careers/apply", body)
		req.Header.Set("Content-Type", contentType)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w
	}

	w := submit("jane@example.com", "+1-555-0100")
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = submit("jane@example.com", "+1-555-0199")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "email")

	w = submit("other@example.com", "+1-555-0100")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "phone")
}

// TestCareerDownloadUsesOriginalName: the career download serves the original
// upload name, not the collision-proof stored one.
func TestCareerDownloadUsesOriginalName(t *testing.T) {
	r, token := newTestAPI(t)
	pdf := []byte("%PDF-1.4 original name")

	body, contentType := multipartBody(t, map[string]string{
		"name":       "Jane Doe",
		"email":      "jane@example.com",
		"phone":      "+1-555-0100",
		"position":   "Backend Engineer",
		"experience": "5 years",
	}, "my-real-cv.pdf", "application/pdf", pdf)
	req := httptest.NewRequest(http.MethodPost, "/api/careers/apply", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var created struct {
		Career struct {
			ID string `json:"id"`
		} `json:"career"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))

	w = doJSON(r, http.MethodGet, "/api/careers/application/"+created.Career.ID+"/resume", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Disposition"), "my-real-cv.pdf")
	assert.Equal(t, pdf, w.Body.Bytes())
}

// TestContactReadTransition: the first admin view flips unread to read, and
// the dashboard and stats see the message.
func TestContactReadTransition(t *testing.T) {
	r, token := newTestAPI(t)

	w := doJSON(r, http.MethodPost, "/api/contacts/message", "", gin.H{
		"name":    "Visitor",
		"email":   "visitor@example.com",
		"subject": "Hi",
		"message": "Tell me more.",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var created struct {
		Contact struct {
			ID     string `json:"id"`
			Status string `json:"status"`
		} `json:"contact"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	assert.Equal(t, "unread", created.Contact.Status)

	// First admin view flips it.
	w = doJSON(r, http.MethodGet, "/api/contacts/message/"+created.Contact.ID, token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"read"`)

	// Stats reflect the transition.
	w = doJSON(r, http.MethodGet, "/api/contacts/stats", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var stats struct {
		Total  int64 `json:"total"`
		Unread int64 `json:"unread"`
		Read   int64 `json:"read"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &stats))
	assert.EqualValues(t, 1, stats.Total)
	assert.EqualValues(t, 0, stats.Unread)
	assert.EqualValues(t, 1, stats.Read)
}

// TestMeetingFlow: public request then admin scheduling.
func TestMeetingFlow(t *testing.T) {
	r, token := newTestAPI(t)

	w := doJSON(r, http.MethodPost, "/api/meetings/request", "", gin.H{
		"name":          "Visitor",
		"email":         "visitor@example.com",
		"preferredDate": "next Tuesday",
		"preferredTime": "after lunch",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var created struct {
		Meeting struct {
			ID string `json:"id"`
		} `json:"meeting"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))

	w = doJSON(r, http.MethodPatch, "/api/meetings/request/"+created.Meeting.ID+"/status", token, gin.H{
		"status":        "approved",
		"scheduledDate": "2026-09-15",
		"scheduledTime": "14:00",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Contains(t, w.Body.String(), `"approved"`)
	assert.Contains(t, w.Body.String(), "next Tuesday")
}

// TestPublicJobsHideInactive: deactivated postings vanish from the public
// list but stay in the admin one.
func TestPublicJobsHideInactive(t *testing.T) {
	r, token := newTestAPI(t)
	jobID := createJob(t, r, token)

	w := doJSON(r, http.MethodGet, "/api/jobs/active", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), jobID)

	w = doJSON(r, http.MethodPut, "/api/jobs/"+jobID, token, gin.H{"isActive": false})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = doJSON(r, http.MethodGet, "/api/jobs/active", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.NotContains(t, w.Body.String(), jobID)

	w = doJSON(r, http.MethodGet, "/api/jobs", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), jobID)
}

func TestDashboardAggregates(t *testing.T) {
	r, token := newTestAPI(t)

	w := doJSON(r, http.MethodPost, "/api/contacts/message", "", gin.H{
		"name":    "Visitor",
		"email":   "visitor@example.com",
		"message": "Hello.",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(r, http.MethodGet, "/api/admin/dashboard", token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var overview struct {
		Stats struct {
			Contacts struct {
				Total int64 `json:"total"`
			} `json:"contacts"`
		} `json:"stats"`
		RecentActivities struct {
			Messages []json.RawMessage `json:"messages"`
		} `json:"recentActivities"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &overview))
	assert.EqualValues(t, 1, overview.Stats.Contacts.Total)
	assert.Len(t, overview.RecentActivities.Messages, 1)
}

func TestAuthEndpoints(t *testing.T) {
	r, token := newTestAPI(t)

	// Verify returns the live identity.
	w := doJSON(r, http.MethodGet, "/api/auth/verify", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"admin"`)

	// Bad credentials.
	w = doJSON(r, http.MethodPost, "/api/auth/login", "", gin.H{
		"username": "admin",
		"password": "wrong",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// Change password, then the old one stops working.
	w = doJSON(r, http.MethodPost, "/api/auth/change-password", token, gin.H{
		"currentPassword": "admin123",
		"newPassword":     "hunter22",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = doJSON(r, http.MethodPost, "/api/auth/login", "", gin.H{
		"username": "admin",
		"password": "hunter22",
	})
	assert.Equal(t, http.StatusOK, w.Code)
	w = doJSON(r, http.MethodPost, "/api/auth/login", "", gin.H{
		"username": "admin",
		"password": "admin123",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// Forgot-password never discloses whether the address exists.
	w = doJSON(r, http.MethodPost, "/api/auth/forgot-password", "", gin.H{"email": "stranger@example.com"})
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestHealth(t *testing.T) {
	r, _ := newTestAPI(t)

	w := doJSON(r, http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "OK")
}
