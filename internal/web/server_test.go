package web

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"study-planner/internal/repository"
	"study-planner/internal/service"
)

type httpErr struct {
	Error string `json:"error"`
}

type httpTest struct {
	name     string
	method   string
	path     string
	form     url.Values
	wantCode int
	wantErr  string
}

func newTestServer(t *testing.T) Server {
	t.Helper()
	db, err := repository.NewDB(filepath.Join(t.TempDir(), "planner.db"))
	require.NoError(t, err)
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})

	subjectRepo := repository.NewSubjectRepository(db)
	taskRepo := repository.NewTaskRepository(db)
	sessionRepo := repository.NewSessionRepository(db)

	srv, err := NewServer(&Options{
		DisableReqLogs: true,
		SubjectSvc:     service.NewSubjectService(subjectRepo, taskRepo, sessionRepo),
		TaskSvc:        service.NewTaskService(taskRepo, subjectRepo),
		SessionSvc:     service.NewSessionService(sessionRepo, subjectRepo),
		DashboardSvc:   service.NewDashboardService(subjectRepo, taskRepo, sessionRepo),
	})
	require.NoError(t, err)
	return srv
}

func newRequest(method, path string, form url.Values) (*http.Request, *httptest.ResponseRecorder) {
	var req *http.Request
	if form != nil {
		req = httptest.NewRequest(method, path, strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	return req, httptest.NewRecorder()
}

func do(t *testing.T, app Server, method, path string, form url.Values) *httptest.ResponseRecorder {
	t.Helper()
	req, rec := newRequest(method, path, form)
	app.ServeHTTP(rec, req)
	return rec
}

func getDashboard(t *testing.T, app Server) service.Dashboard {
	t.Helper()
	rec := do(t, app, http.MethodGet, "/api/dashboard", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var d service.Dashboard
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &d))
	return d
}

func runHTTPTests(t *testing.T, app Server, tests []httpTest) {
	t.Helper()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, app, tt.method, tt.path, tt.form)
			assert.Equal(t, tt.wantCode, rec.Code)
			if tt.wantCode == http.StatusFound {
				assert.Equal(t, "/", rec.Header().Get("Location"))
			}
			if tt.wantErr != "" {
				var body httpErr
				require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
				assert.Contains(t, body.Error, tt.wantErr)
			}
		})
	}
}

func TestIndex_Empty(t *testing.T) {
	app := newTestServer(t)

	rec := do(t, app, http.MethodGet, "/", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Great job! You are maintaining a balanced study schedule.")
	assert.Contains(t, rec.Body.String(), "No subjects yet")
}

func TestRequestID(t *testing.T) {
	app := newTestServer(t)

	rec := do(t, app, http.MethodGet, "/api/dashboard", nil)
	_, err := uuid.Parse(rec.Header().Get(echo.HeaderXRequestID))
	assert.NoError(t, err)

	req, rec := newRequest(http.MethodGet, "/api/dashboard", nil)
	req.Header.Set(echo.HeaderXRequestID, "trace-1")
	app.ServeHTTP(rec, req)
	assert.Equal(t, "trace-1", rec.Header().Get(echo.HeaderXRequestID))
}

func TestForms(t *testing.T) {
	app := newTestServer(t)

	runHTTPTests(t, app, []httpTest{
		{name: "add subject", method: http.MethodPost, path: "/add_subject", form: url.Values{"name": {"Math"}}, wantCode: http.StatusFound},
		{name: "add subject without name", method: http.MethodPost, path: "/add_subject", form: url.Values{"name": {""}}, wantCode: http.StatusFound},
		{name: "add subject with no body", method: http.MethodPost, path: "/add_subject", wantCode: http.StatusFound},
		{name: "add task", method: http.MethodPost, path: "/add_task", form: url.Values{"title": {"Algebra HW"}, "subject_id": {"1"}, "deadline": {"2024-01-15"}}, wantCode: http.StatusFound},
		{name: "add task missing deadline", method: http.MethodPost, path: "/add_task", form: url.Values{"title": {"Essay"}, "subject_id": {"1"}}, wantCode: http.StatusFound},
		{name: "add task bad deadline", method: http.MethodPost, path: "/add_task", form: url.Values{"title": {"Essay"}, "subject_id": {"1"}, "deadline": {"tomorrow"}}, wantCode: http.StatusBadRequest, wantErr: "invalid deadline"},
		{name: "add task bad subject id", method: http.MethodPost, path: "/add_task", form: url.Values{"title": {"Essay"}, "subject_id": {"x"}, "deadline": {"2024-01-15"}}, wantCode: http.StatusBadRequest, wantErr: "invalid subject_id"},
		{name: "add task unknown subject", method: http.MethodPost, path: "/add_task", form: url.Values{"title": {"Essay"}, "subject_id": {"42"}, "deadline": {"2024-01-15"}}, wantCode: http.StatusNotFound, wantErr: "subject not found"},
		{name: "log session", method: http.MethodPost, path: "/log_session", form: url.Values{"subject_id": {"1"}, "duration": {"30"}, "notes": {"chapter 2"}}, wantCode: http.StatusFound},
		{name: "log session missing duration", method: http.MethodPost, path: "/log_session", form: url.Values{"subject_id": {"1"}}, wantCode: http.StatusFound},
		{name: "log session bad duration", method: http.MethodPost, path: "/log_session", form: url.Values{"subject_id": {"1"}, "duration": {"1h"}}, wantCode: http.StatusBadRequest, wantErr: "invalid duration"},
		{name: "log session unknown subject", method: http.MethodPost, path: "/log_session", form: url.Values{"subject_id": {"9"}, "duration": {"10"}}, wantCode: http.StatusNotFound},
		{name: "complete task", method: http.MethodGet, path: "/complete_task/1", wantCode: http.StatusFound},
		{name: "complete task again", method: http.MethodGet, path: "/complete_task/1", wantCode: http.StatusFound},
		{name: "complete unknown task", method: http.MethodGet, path: "/complete_task/999", wantCode: http.StatusFound},
		{name: "complete non-integer task", method: http.MethodGet, path: "/complete_task/abc", wantCode: http.StatusNotFound},
	})

	d := getDashboard(t, app)
	assert.Equal(t, []string{"Math"}, d.ChartLabels)
	assert.Equal(t, []float64{0.5}, d.ChartData)
	assert.Empty(t, d.Tasks)
	assert.Empty(t, d.Neglected)
}

func TestDashboard_MathHistoryScenario(t *testing.T) {
	app := newTestServer(t)

	do(t, app, http.MethodPost, "/add_subject", url.Values{"name": {"Math"}})
	do(t, app, http.MethodPost, "/add_subject", url.Values{"name": {"History"}})
	rec := do(t, app, http.MethodPost, "/log_session", url.Values{"subject_id": {"1"}, "duration": {"90"}})
	require.Equal(t, http.StatusFound, rec.Code)

	d := getDashboard(t, app)
	assert.Equal(t, []string{"Math", "History"}, d.ChartLabels)
	assert.Equal(t, []float64{1.5, 0}, d.ChartData)
	assert.Equal(t, []string{"History"}, d.Neglected)
	assert.Equal(t, "Tip: You haven't studied History yet. Plan a session soon!", d.Insight)

	page := do(t, app, http.MethodGet, "/", nil)
	require.Equal(t, http.StatusOK, page.Code)
	assert.Contains(t, page.Body.String(), "studied History yet")
	assert.Contains(t, page.Body.String(), `<td>1.5</td>`)
}

func TestDashboard_CompleteRemovesTask(t *testing.T) {
	app := newTestServer(t)

	do(t, app, http.MethodPost, "/add_subject", url.Values{"name": {"Math"}})
	do(t, app, http.MethodPost, "/add_task", url.Values{"title": {"Algebra HW"}, "subject_id": {"1"}, "deadline": {"2024-01-15"}})

	page := do(t, app, http.MethodGet, "/", nil)
	assert.Contains(t, page.Body.String(), "Algebra HW")
	assert.Contains(t, page.Body.String(), `href="/complete_task/1"`)

	d := getDashboard(t, app)
	require.Len(t, d.Tasks, 1)
	assert.Equal(t, "Math", d.Tasks[0].Subject.Name)

	rec := do(t, app, http.MethodGet, "/complete_task/1", nil)
	require.Equal(t, http.StatusFound, rec.Code)

	d = getDashboard(t, app)
	assert.Empty(t, d.Tasks)
	page = do(t, app, http.MethodGet, "/", nil)
	assert.NotContains(t, page.Body.String(), "Algebra HW")
}

func TestSubjectJSON(t *testing.T) {
	app := newTestServer(t)

	do(t, app, http.MethodPost, "/add_subject", url.Values{"name": {"Math"}})
	do(t, app, http.MethodPost, "/add_task", url.Values{"title": {"Algebra HW"}, "subject_id": {"1"}, "deadline": {"2024-01-15"}})
	do(t, app, http.MethodPost, "/log_session", url.Values{"subject_id": {"1"}, "duration": {"25"}})

	rec := do(t, app, http.MethodGet, "/api/subjects/1", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var detail service.SubjectDetail
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &detail))
	assert.Equal(t, "Math", detail.Subject.Name)
	require.Len(t, detail.Tasks, 1)
	assert.Equal(t, "Algebra HW", detail.Tasks[0].Title)
	require.Len(t, detail.Sessions, 1)
	assert.Equal(t, 25, detail.Sessions[0].DurationMinutes)

	runHTTPTests(t, app, []httpTest{
		{name: "unknown subject", method: http.MethodGet, path: "/api/subjects/7", wantCode: http.StatusNotFound, wantErr: "subject not found"},
		{name: "non-integer subject", method: http.MethodGet, path: "/api/subjects/math", wantCode: http.StatusNotFound, wantErr: "not found"},
	})
}
