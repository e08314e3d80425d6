package api

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"

	"github.com/example/studytrack/internal/database"
	"github.com/example/studytrack/internal/study"
	"github.com/example/studytrack/pkg/models"
)

var secret = []byte("test-secret")

type httpTest struct {
	name     string
	method   string
	path     string
	body     string
	token    string
	wantCode int
	wantBody string
}

type testApp struct {
	srv   *Server
	store *database.Store
	ada   string
	bob   string
}

func newTestApp(t *testing.T, limit rate.Limit, burst int) *testApp {
	t.Helper()
	ctx := context.Background()
	db, err := database.Connect(ctx, database.DriverSQLite, ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, db.Migrate(ctx))
	store := database.NewStore(db)

	now := time.Date(2024, time.March, 15, 10, 0, 0, 0, time.UTC)
	svc := study.NewService(store, study.WithClock(func() time.Time { return now }))

	srv, err := NewServer(&Options{
		Service:        svc,
		JWTSecret:      secret,
		RateLimit:      limit,
		Burst:          burst,
		Health:         db.PingContext,
		Logger:         slog.New(slog.NewTextHandler(io.Discard, nil)),
		DisableReqLogs: true,
	})
	require.NoError(t, err)

	app := &testApp{srv: srv, store: store}
	app.ada = app.userToken(t, "ada@example.com")
	app.bob = app.userToken(t, "bob@example.com")
	return app
}

func (a *testApp) userToken(t *testing.T, email string) string {
	t.Helper()
	u := &models.User{Name: email, Email: email}
	require.NoError(t, a.store.CreateUser(context.Background(), u))
	token, err := GenerateToken(secret, u.ID, time.Hour)
	require.NoError(t, err)
	return token
}

func newAuthRequest(method, path, token, body string) (*http.Request, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return req, httptest.NewRecorder()
}

func (a *testApp) do(t *testing.T, method, path, token, body string) *httptest.ResponseRecorder {
	t.Helper()
	req, rec := newAuthRequest(method, path, token, body)
	a.srv.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

func runTests(t *testing.T, app *testApp, tests []httpTest) {
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := app.do(t, tt.method, tt.path, tt.token, tt.body)
			assert.Equal(t, tt.wantCode, rec.Code, rec.Body.String())
			if tt.wantBody != "" {
				assert.JSONEq(t, tt.wantBody, rec.Body.String())
			}
		})
	}
}

func TestAuthentication(t *testing.T) {
	app := newTestApp(t, 0, 0)
	expired, err := GenerateToken(secret, 1, -time.Minute)
	require.NoError(t, err)
	forged, err := GenerateToken([]byte("other-secret"), 1, time.Hour)
	require.NoError(t, err)

	runTests(t, app, []httpTest{
		{name: "health is public", method: http.MethodGet, path: "/healthz", wantCode: http.StatusOK, wantBody: `{"status":"ok"}`},
		{name: "missing token", method: http.MethodGet, path: "/api/subjects", wantCode: http.StatusUnauthorized, wantBody: `{"error":"missing or malformed jwt"}`},
		{name: "expired token", method: http.MethodGet, path: "/api/subjects", token: expired, wantCode: http.StatusUnauthorized, wantBody: `{"error":"invalid or expired jwt"}`},
		{name: "forged token", method: http.MethodGet, path: "/api/subjects", token: forged, wantCode: http.StatusUnauthorized},
		{name: "valid token", method: http.MethodGet, path: "/api/subjects", token: app.ada, wantCode: http.StatusOK, wantBody: `[]`},
	})
}

func TestSubjectsAndTopics(t *testing.T) {
	app := newTestApp(t, 0, 0)

	rec := app.do(t, http.MethodPost, "/api/subjects", app.ada, `{"name":"Biology","type":"A-Level"}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	subject := decode[models.Subject](t, rec)

	rec = app.do(t, http.MethodPost, "/api/topics", app.ada, fmt.Sprintf(`{"subjectId":%d,"name":"Cells"}`, subject.ID))
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	topic := decode[models.Topic](t, rec)

	rec = app.do(t, http.MethodPatch, fmt.Sprintf("/api/topics/%d", topic.ID), app.ada, `{"completed":true}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	completed := decode[models.Topic](t, rec)
	assert.True(t, completed.Completed)
	assert.Len(t, completed.Revisions, 6)

	subjectPath := fmt.Sprintf("/api/subjects/%d", subject.ID)
	runTests(t, app, []httpTest{
		{name: "missing fields", method: http.MethodPost, path: "/api/subjects", token: app.ada, body: `{"name":""}`,
			wantCode: http.StatusBadRequest,
			wantBody: `{"error":"validation failed","fields":{"name":"this field is required","type":"this field is required"}}`},
		{name: "foreign subject", method: http.MethodGet, path: subjectPath, token: app.bob, wantCode: http.StatusNotFound, wantBody: `{"error":"not found"}`},
		{name: "foreign delete", method: http.MethodDelete, path: subjectPath, token: app.bob, wantCode: http.StatusNotFound},
		{name: "bad id", method: http.MethodGet, path: "/api/subjects/abc", token: app.ada, wantCode: http.StatusBadRequest, wantBody: `{"error":"invalid id"}`},
		{name: "no revisions due yet", method: http.MethodGet, path: "/api/revisions", token: app.ada, wantCode: http.StatusOK, wantBody: `[]`},
		{name: "delete", method: http.MethodDelete, path: subjectPath, token: app.ada, wantCode: http.StatusNoContent},
		{name: "deleted", method: http.MethodGet, path: subjectPath, token: app.ada, wantCode: http.StatusNotFound},
	})
}

func TestLearningSession(t *testing.T) {
	app := newTestApp(t, 0, 0)
	rec := app.do(t, http.MethodPost, "/api/learning-projects", app.ada, `{"name":"Rust book","totalUnits":2}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	project := decode[models.LearningProject](t, rec)

	body := fmt.Sprintf(`{"projectId":%d,"unitsCompleted":2}`, project.ID)
	rec = app.do(t, http.MethodPost, "/api/learning-sessions", app.bob, body)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = app.do(t, http.MethodPost, "/api/learning-sessions", app.ada, body)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	res := decode[learningSessionResponse](t, rec)
	assert.Equal(t, models.ProjectCompleted, res.Project.Status)
	assert.Equal(t, 100, res.Project.ProgressPercentage)
}

func TestReports(t *testing.T) {
	app := newTestApp(t, 0, 0)
	rec := app.do(t, http.MethodPost, "/api/vocabulary", app.ada,
		`{"word":"lucid","definition":"clear","sentences":["A lucid answer."]}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = app.do(t, http.MethodGet, "/api/dashboard", app.ada, "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	dash := decode[models.Dashboard](t, rec)
	assert.Equal(t, 1, dash.Streaks.Study)

	rec = app.do(t, http.MethodGet, "/api/stats", app.ada, "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	stats := decode[models.Statistics](t, rec)
	assert.Equal(t, 1, stats.Vocabulary.Total)
	assert.Equal(t, 1, stats.Vocabulary.ThisWeek)

	rec = app.do(t, http.MethodGet, "/api/activity-calendar", app.ada, "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.JSONEq(t, `[{"date":"2024-03-15","activities":["study","vocabulary"]}]`, rec.Body.String())

	rec = app.do(t, http.MethodGet, "/api/vocabulary/export", app.ada, "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, xlsxContentType, rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "vocabulary-2024-03-15.xlsx")

	runTests(t, app, []httpTest{
		{name: "bad month", method: http.MethodGet, path: "/api/activity-calendar?year=2024&month=13", token: app.ada,
			wantCode: http.StatusBadRequest, wantBody: `{"error":"validation failed","fields":{"month":"must be between 1 and 12"}}`},
		{name: "month", method: http.MethodGet, path: "/api/activity-calendar?year=2024&month=2", token: app.ada,
			wantCode: http.StatusOK, wantBody: `[]`},
		{name: "daily topic", method: http.MethodGet, path: "/api/daily-topic", token: app.ada, wantCode: http.StatusOK},
		{name: "random topic", method: http.MethodGet, path: "/api/daily-topic?random=true", token: app.ada, wantCode: http.StatusOK},
	})
}

func TestRateLimit(t *testing.T) {
	app := newTestApp(t, rate.Every(time.Hour), 2)

	for i := 0; i < 2; i++ {
		rec := app.do(t, http.MethodGet, "/api/exams", app.ada, "")
		require.Equal(t, http.StatusOK, rec.Code)
	}
	rec := app.do(t, http.MethodGet, "/api/exams", app.ada, "")
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)

	rec = app.do(t, http.MethodGet, "/api/exams", app.bob, "")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRateLimiterEvictsIdleKeys(t *testing.T) {
	now := time.Date(2024, 3, 15, 10, 0, 0, 0, time.UTC)
	rl := newRateLimiter(rate.Every(time.Hour), 1)
	rl.now = func() time.Time { return now }

	require.True(t, rl.allow("user:1"))
	require.False(t, rl.allow("user:1"))
	require.True(t, rl.allow("user:2"))
	assert.Equal(t, 2, rl.size())

	now = now.Add(5 * time.Minute)
	require.False(t, rl.allow("user:2"))

	// user:1 has been idle past the TTL, user:2 was seen 6 minutes ago
	now = now.Add(6 * time.Minute)
	require.True(t, rl.allow("user:3"))
	assert.Equal(t, 2, rl.size())

	// a fresh bucket means user:1 starts over with a full burst
	assert.True(t, rl.allow("user:1"))
}

func TestReminderSettings(t *testing.T) {
	app := newTestApp(t, 0, 0)

	rec := app.do(t, http.MethodPatch, "/api/me/reminders", app.ada, `{"remindersEnabled":true,"reminderHour":19,"telegramChatId":4242}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = app.do(t, http.MethodGet, "/api/me", app.ada, "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	user := decode[models.User](t, rec)
	assert.Equal(t, "ada@example.com", user.Email)
	assert.True(t, user.RemindersEnabled)
	assert.Equal(t, 19, user.ReminderHour)
	assert.Equal(t, int64(4242), user.TelegramChatID)

	rec = app.do(t, http.MethodGet, "/api/me", app.bob, "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.False(t, decode[models.User](t, rec).RemindersEnabled)

	runTests(t, app, []httpTest{
		{name: "hour out of range", method: http.MethodPatch, path: "/api/me/reminders", token: app.ada, body: `{"reminderHour":24}`,
			wantCode: http.StatusBadRequest},
	})
}

func TestPracticePapers(t *testing.T) {
	app := newTestApp(t, 0, 0)

	rec := app.do(t, http.MethodPost, "/api/subjects", app.ada, `{"name":"Physics","type":"A-Level"}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	subject := decode[models.Subject](t, rec)

	rec = app.do(t, http.MethodPost, "/api/practice-papers", app.ada, fmt.Sprintf(
		`{"subjectId":%d,"paperName":"June 2023 P1","questionStart":"1","questionEnd":"10","totalQuestions":10,"reminderDays":2}`, subject.ID))
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	paper := decode[models.PracticePaper](t, rec)
	assert.Equal(t, "topical", paper.PaperType)

	rec = app.do(t, http.MethodPost, "/api/practice-paper-questions", app.ada, fmt.Sprintf(
		`{"practicePaperId":%d,"questionNumber":"7","status":"redo"}`, paper.ID))
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = app.do(t, http.MethodPost, "/api/practice-paper-logs", app.ada, fmt.Sprintf(
		`{"practicePaperId":%d,"questionStart":"1","questionEnd":"10","score":31,"totalMarks":40}`, paper.ID))
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	assert.True(t, decode[models.PracticePaperLog](t, rec).Completed)

	rec = app.do(t, http.MethodGet, "/api/dashboard", app.ada, "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	dash := decode[models.Dashboard](t, rec)
	require.Len(t, dash.UpcomingReminders, 1)
	assert.Equal(t, paper.ID, dash.UpcomingReminders[0].ID)

	paperPath := fmt.Sprintf("/api/practice-papers/%d", paper.ID)
	runTests(t, app, []httpTest{
		{name: "list by subject", method: http.MethodGet, path: fmt.Sprintf("/api/practice-papers?subjectId=%d", subject.ID), token: app.ada,
			wantCode: http.StatusOK},
		{name: "bad subject filter", method: http.MethodGet, path: "/api/practice-papers?subjectId=x", token: app.ada,
			wantCode: http.StatusBadRequest, wantBody: `{"error":"validation failed","fields":{"subjectId":"must be a positive id"}}`},
		{name: "questions need a paper", method: http.MethodGet, path: "/api/practice-paper-questions", token: app.ada,
			wantCode: http.StatusBadRequest, wantBody: `{"error":"validation failed","fields":{"practicePaperId":"is required"}}`},
		{name: "foreign questions", method: http.MethodGet, path: fmt.Sprintf("/api/practice-paper-questions?practicePaperId=%d", paper.ID), token: app.bob,
			wantCode: http.StatusNotFound},
		{name: "foreign logs", method: http.MethodGet, path: fmt.Sprintf("/api/practice-paper-logs?practicePaperId=%d", paper.ID), token: app.bob,
			wantCode: http.StatusNotFound},
		{name: "partial log on completed paper", method: http.MethodPost, path: "/api/practice-paper-logs", token: app.ada,
			body:     fmt.Sprintf(`{"practicePaperId":%d,"questionStart":"1","questionEnd":"3"}`, paper.ID),
			wantCode: http.StatusBadRequest},
		{name: "bad question status", method: http.MethodPost, path: "/api/practice-paper-questions", token: app.ada,
			body:     fmt.Sprintf(`{"practicePaperId":%d,"questionNumber":"2","status":"maybe"}`, paper.ID),
			wantCode: http.StatusBadRequest},
		{name: "foreign update", method: http.MethodPatch, path: paperPath, token: app.bob, body: `{"notes":"x"}`, wantCode: http.StatusNotFound},
		{name: "foreign delete", method: http.MethodDelete, path: paperPath, token: app.bob, wantCode: http.StatusNotFound},
		{name: "delete", method: http.MethodDelete, path: paperPath, token: app.ada, wantCode: http.StatusNoContent},
		{name: "deleted", method: http.MethodGet, path: "/api/practice-papers", token: app.ada, wantCode: http.StatusOK, wantBody: `[]`},
	})
}

func TestSubtopicsAndNotes(t *testing.T) {
	app := newTestApp(t, 0, 0)

	rec := app.do(t, http.MethodPost, "/api/subjects", app.ada, `{"name":"Biology","type":"A-Level"}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	subject := decode[models.Subject](t, rec)
	rec = app.do(t, http.MethodPost, "/api/topics", app.ada, fmt.Sprintf(`{"subjectId":%d,"name":"Cells"}`, subject.ID))
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	topic := decode[models.Topic](t, rec)

	rec = app.do(t, http.MethodPost, "/api/subtopics", app.ada, fmt.Sprintf(`{"topicId":%d,"name":"Organelles"}`, topic.ID))
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	subtopic := decode[models.Subtopic](t, rec)

	rec = app.do(t, http.MethodPost, "/api/notes", app.ada, fmt.Sprintf(`{"subtopicId":%d,"title":"Mitochondria"}`, subtopic.ID))
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	note := decode[models.Note](t, rec)

	rec = app.do(t, http.MethodGet, fmt.Sprintf("/api/notes/%d", note.ID), app.ada, "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.NotNil(t, decode[models.Note](t, rec).LastViewedAt)

	rec = app.do(t, http.MethodPost, "/api/topic-notes", app.ada, fmt.Sprintf(`{"topicId":%d,"fileUrl":"https://files.example.com/cells.pdf"}`, topic.ID))
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	assert.Equal(t, "Cells notes", decode[models.Note](t, rec).Title)

	rec = app.do(t, http.MethodGet, fmt.Sprintf("/api/subjects/%d", subject.ID), app.ada, "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	got := decode[models.Subject](t, rec)
	require.Len(t, got.Topics, 1)
	require.Len(t, got.Topics[0].Subtopics, 1)
	assert.Equal(t, "Organelles", got.Topics[0].Subtopics[0].Name)

	notePath := fmt.Sprintf("/api/notes/%d", note.ID)
	subtopicPath := fmt.Sprintf("/api/subtopics/%d", subtopic.ID)
	runTests(t, app, []httpTest{
		{name: "notes by subtopic", method: http.MethodGet, path: fmt.Sprintf("/api/notes?subtopicId=%d", subtopic.ID), token: app.ada,
			wantCode: http.StatusOK},
		{name: "foreign subtopic note", method: http.MethodPost, path: "/api/notes", token: app.bob,
			body: fmt.Sprintf(`{"subtopicId":%d,"title":"x"}`, subtopic.ID), wantCode: http.StatusNotFound},
		{name: "foreign note", method: http.MethodGet, path: notePath, token: app.bob, wantCode: http.StatusNotFound},
		{name: "foreign subtopic", method: http.MethodPatch, path: subtopicPath, token: app.bob, body: `{"completed":true}`, wantCode: http.StatusNotFound},
		{name: "foreign topic note", method: http.MethodPost, path: "/api/topic-notes", token: app.bob,
			body: fmt.Sprintf(`{"topicId":%d,"fileUrl":"x.pdf"}`, topic.ID), wantCode: http.StatusNotFound},
		{name: "complete subtopic", method: http.MethodPatch, path: subtopicPath, token: app.ada, body: `{"completed":true}`, wantCode: http.StatusOK},
		{name: "rename note", method: http.MethodPatch, path: notePath, token: app.ada, body: `{"title":"Powerhouse"}`, wantCode: http.StatusOK},
		{name: "delete subtopic", method: http.MethodDelete, path: subtopicPath, token: app.ada, wantCode: http.StatusNoContent},
		{name: "note went with it", method: http.MethodGet, path: notePath, token: app.ada, wantCode: http.StatusNotFound},
	})
}

func TestResetUserData(t *testing.T) {
	app := newTestApp(t, 0, 0)

	rec := app.do(t, http.MethodPost, "/api/subjects", app.ada, `{"name":"Biology","type":"A-Level"}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	rec = app.do(t, http.MethodPost, "/api/subjects", app.bob, `{"name":"Maths","type":"GCSE"}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	runTests(t, app, []httpTest{
		{name: "reset", method: http.MethodPost, path: "/api/reset-user-data", token: app.ada,
			wantCode: http.StatusOK, wantBody: `{"success":true,"message":"all study data has been deleted"}`},
		{name: "subjects gone", method: http.MethodGet, path: "/api/subjects", token: app.ada, wantCode: http.StatusOK, wantBody: `[]`},
		{name: "profile kept", method: http.MethodGet, path: "/api/me", token: app.ada, wantCode: http.StatusOK},
	})

	rec = app.do(t, http.MethodGet, "/api/subjects", app.bob, "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Len(t, decode[[]models.Subject](t, rec), 1)
}
