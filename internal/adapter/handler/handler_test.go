package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/johnquangdev/meeting-minutes/errors"
	"github.com/johnquangdev/meeting-minutes/internal/domain/entities"
	usecaseErrors "github.com/johnquangdev/meeting-minutes/internal/usecase/errors"
	meetingsUsecase "github.com/johnquangdev/meeting-minutes/internal/usecase/meetings"
	minutesUsecase "github.com/johnquangdev/meeting-minutes/internal/usecase/minutes"
	notifyUsecase "github.com/johnquangdev/meeting-minutes/internal/usecase/notify"
	summaryUsecase "github.com/johnquangdev/meeting-minutes/internal/usecase/summary"
	taskUsecase "github.com/johnquangdev/meeting-minutes/internal/usecase/tasks"
	"github.com/johnquangdev/meeting-minutes/pkg/mom"
	"github.com/johnquangdev/meeting-minutes/pkg/validator"
)

type fakeMinutes struct {
	minutesUsecase.Service
	records map[string]*entities.MinutesRecord
}

func (f *fakeMinutes) Create(ctx context.Context, in minutesUsecase.CreateInput) (*entities.MinutesRecord, error) {
	if _, ok := f.records[in.MeetingID]; ok {
		return nil, usecaseErrors.ErrMinutesAlreadyExists
	}
	m, err := mom.Decode(in.MomData)
	if err != nil {
		return nil, usecaseErrors.ErrInvalidInput
	}
	rec := entities.NewMinutesRecord(in.MeetingID, in.Subject, m, in.Attendees)
	f.records[in.MeetingID] = rec
	return rec, nil
}

func (f *fakeMinutes) Get(ctx context.Context, id string) (*entities.MinutesRecord, error) {
	rec, ok := f.records[id]
	if !ok {
		return nil, usecaseErrors.ErrMinutesNotFound
	}
	return rec, nil
}

func (f *fakeMinutes) Text(ctx context.Context, id string) (string, error) {
	rec, err := f.Get(ctx, id)
	if err != nil {
		return "", err
	}
	return mom.Format(rec.Minutes()), nil
}

func (f *fakeMinutes) UpdateFromText(ctx context.Context, id, text string) (mom.Envelope, error) {
	rec, err := f.Get(ctx, id)
	if err != nil {
		return mom.Envelope{}, err
	}
	rec.SetMinutes(mom.Parse(text).MomData)
	return mom.Wrap(rec.Minutes()), nil
}

type fakeTasks struct {
	taskUsecase.Service
	tasks []entities.Task
	err   error
}

func (f *fakeTasks) All(ctx context.Context) ([]entities.Task, error) {
	return f.tasks, f.err
}

func (f *fakeTasks) List(ctx context.Context, q taskUsecase.Query) (*taskUsecase.Page, error) {
	if f.err != nil {
		return nil, f.err
	}
	p := taskUsecase.Paginate(taskUsecase.FilterByStatus(f.tasks, q.Status), q.Page, q.PageSize)
	p.Status = q.Status
	return &p, nil
}

func (f *fakeTasks) CreateTasks(ctx context.Context, reqs []mom.TaskRequest) ([]taskUsecase.CreateResult, error) {
	out := []taskUsecase.CreateResult{}
	for _, r := range reqs {
		out = append(out, taskUsecase.CreateResult{Email: r.AssigneeEmail, Summary: r.Summary, Status: taskUsecase.ResultSuccess, TaskID: "OPS-1"})
	}
	return out, nil
}

func (f *fakeTasks) Project(ctx context.Context, id string) (*entities.Project, error) {
	return nil, fmt.Errorf("get project: %w: no project %s", usecaseErrors.ErrNotFound, id)
}

type fakeNotify struct {
	notifyUsecase.Service
	checked []entities.Task
}

func (f *fakeNotify) DetectMissingFields(ctx context.Context, tasks []entities.Task) ([]notifyUsecase.Detection, error) {
	f.checked = tasks
	return []notifyUsecase.Detection{}, nil
}

func (f *fakeNotify) SendReminders(ctx context.Context, issues []string) error {
	if len(issues) == 0 {
		return usecaseErrors.ErrNoIssues
	}
	return nil
}

type fakeSummary struct {
	summaryUsecase.Service
	err error
}

func (f *fakeSummary) Summarize(ctx context.Context, m mom.MeetingMinutes) (map[string]interface{}, error) {
	if f.err != nil {
		return nil, f.err
	}
	return map[string]interface{}{"discussion_highlights": m.Organizer}, nil
}

type fakeMeetings struct {
	meetingsUsecase.Service
}

func (fakeMeetings) Upcoming(ctx context.Context, now time.Time) ([]entities.Event, error) {
	return nil, usecaseErrors.ErrCalendarUnavailable
}

type testServer struct {
	e       *echo.Echo
	minutes *fakeMinutes
	tasks   *fakeTasks
	notify  *fakeNotify
	summary *fakeSummary
}

func newTestServer() *testServer {
	ts := &testServer{
		e:       echo.New(),
		minutes: &fakeMinutes{records: map[string]*entities.MinutesRecord{}},
		tasks:   &fakeTasks{},
		notify:  &fakeNotify{},
		summary: &fakeSummary{},
	}
	ts.e.Validator = validator.New()
	NewRouter(nil,
		NewMinutesHandler(ts.minutes, nil),
		NewTasksHandler(ts.tasks, nil),
		NewNotifyHandler(ts.notify, ts.tasks, nil),
		NewSummaryHandler(ts.summary, nil),
		NewMeetingsHandler(fakeMeetings{}, nil),
		nil,
	).Setup(ts.e)
	return ts
}

func (ts *testServer) do(method, path, contentType, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if contentType != "" {
		req.Header.Set(echo.HeaderContentType, contentType)
	}
	rec := httptest.NewRecorder()
	ts.e.ServeHTTP(rec, req)
	return rec
}

type envelope struct {
	Code    int               `json:"code"`
	Message string            `json:"message"`
	Data    json.RawMessage   `json:"data"`
	Info    string            `json:"info"`
	Details map[string]string `json:"details"`
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env), rec.Body.String())
	return env
}

const createBody = `{"meeting_id":"m-1","subject":"Weekly","mom_data":{"organizer":"Sam","action_items":[{"item":"Ship","deadline":"Fri","owner":"Al"}]}}`

func TestHealth(t *testing.T) {
	ts := newTestServer()
	rec := ts.do(http.MethodGet, "/health", "", "")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestMinutes_CreateGetAndConflict(t *testing.T) {
	ts := newTestServer()

	rec := ts.do(http.MethodPost, "/v1/mom", echo.MIMEApplicationJSON, createBody)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = ts.do(http.MethodGet, "/v1/mom/m-1", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var got struct {
		MeetingID string             `json:"meeting_id"`
		MomData   mom.MeetingMinutes `json:"mom_data"`
	}
	require.NoError(t, json.Unmarshal(decode(t, rec).Data, &got))
	assert.Equal(t, "m-1", got.MeetingID)
	assert.Equal(t, "Sam", got.MomData.Organizer)

	rec = ts.do(http.MethodPost, "/v1/mom", echo.MIMEApplicationJSON, createBody)
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, int(errors.ErrorCode_MINUTES_ALREADY_EXISTS), decode(t, rec).Code)
}

func TestMinutes_CreateValidation(t *testing.T) {
	ts := newTestServer()

	rec := ts.do(http.MethodPost, "/v1/mom", echo.MIMEApplicationJSON, `{"subject":"x","mom_data":{}}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	env := decode(t, rec)
	assert.Equal(t, int(errors.ErrorCode_VALIDATION_FAILED), env.Code)
	assert.Equal(t, "required", env.Details["meeting_id"])
}

func TestMinutes_CreateRejectsPathInMeetingID(t *testing.T) {
	ts := newTestServer()

	rec := ts.do(http.MethodPost, "/v1/mom", echo.MIMEApplicationJSON, `{"meeting_id":"../m-2","subject":"x","mom_data":{}}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "excludesall", decode(t, rec).Details["meeting_id"])
	assert.Empty(t, ts.minutes.records)
}

func TestMinutes_NotFound(t *testing.T) {
	ts := newTestServer()

	rec := ts.do(http.MethodGet, "/v1/mom/nope", "", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	env := decode(t, rec)
	assert.Equal(t, "Meeting ID not found", env.Message)
}

func TestMinutes_TextEndpoints(t *testing.T) {
	ts := newTestServer()
	require.Equal(t, http.StatusCreated, ts.do(http.MethodPost, "/v1/mom", echo.MIMEApplicationJSON, createBody).Code)

	rec := ts.do(http.MethodGet, "/v1/mom/m-1/text", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, strings.HasPrefix(rec.Body.String(), "Organizer: Sam\n"))

	edited := strings.Replace(rec.Body.String(), "Organizer: Sam", "Organizer: Dee", 1)
	rec = ts.do(http.MethodPut, "/v1/mom/m-1/text", echo.MIMETextPlain, edited)
	require.Equal(t, http.StatusOK, rec.Code)

	var env mom.Envelope
	require.NoError(t, json.Unmarshal(decode(t, rec).Data, &env))
	assert.Equal(t, "Dee", env.MomData.Organizer)
	assert.Equal(t, []mom.ActionItem{{Item: "Ship", Deadline: "Fri", Owner: "Al"}}, env.MomData.ActionItems)

	rec = ts.do(http.MethodPut, "/v1/mom/m-1/text", echo.MIMEApplicationJSON, `{"text":"Organizer: Eve\n"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(decode(t, rec).Data, &env))
	assert.Equal(t, "Eve", env.MomData.Organizer)
	assert.Empty(t, env.MomData.ActionItems)
}

func TestMinutes_FormatAndParse(t *testing.T) {
	ts := newTestServer()

	rec := ts.do(http.MethodPost, "/v1/mom/format", echo.MIMEApplicationJSON, `{"mom_data":{"organizer":"Sam","faqs":["why?"]}}`)
	require.Equal(t, http.StatusOK, rec.Code)
	var text struct {
		Text string `json:"text"`
	}
	require.NoError(t, json.Unmarshal(decode(t, rec).Data, &text))
	assert.Contains(t, text.Text, "  Q1: why?\n")

	rec = ts.do(http.MethodPost, "/v1/mom/format", echo.MIMEApplicationJSON, `{"organizer":`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = ts.do(http.MethodPost, "/v1/mom/parse", echo.MIMETextPlain, text.Text)
	require.Equal(t, http.StatusOK, rec.Code)
	var env mom.Envelope
	require.NoError(t, json.Unmarshal(decode(t, rec).Data, &env))
	assert.Equal(t, []string{"why?"}, env.MomData.FAQs)
}

func TestTasks_List(t *testing.T) {
	ts := newTestServer()
	ts.tasks.tasks = []entities.Task{
		{Key: "OPS-1", Status: "To Do"},
		{Key: "OPS-2", Status: "Done"},
		{Key: "OPS-3", Status: "To Do"},
	}

	rec := ts.do(http.MethodGet, "/v1/tasks?status=To+Do&page=1&page_size=1", "", "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var page struct {
		Tasks      []entities.Task `json:"tasks"`
		Pagination struct {
			TotalPages int `json:"total_pages"`
		} `json:"pagination"`
	}
	require.NoError(t, json.Unmarshal(decode(t, rec).Data, &page))
	require.Len(t, page.Tasks, 1)
	assert.Equal(t, "OPS-1", page.Tasks[0].Key)
	assert.Equal(t, 2, page.Pagination.TotalPages)

	rec = ts.do(http.MethodGet, "/v1/tasks?page_size=1000", "", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestTasks_TrackerFailureIsBadGateway(t *testing.T) {
	ts := newTestServer()
	ts.tasks.err = usecaseErrors.ErrTrackerFailed

	rec := ts.do(http.MethodGet, "/v1/tasks", "", "")
	assert.Equal(t, http.StatusBadGateway, rec.Code)
	assert.Equal(t, int(errors.ErrorCode_INTEGRATION_JIRA_FAILED), decode(t, rec).Code)
}

func TestTasks_UnknownProjectIsNotFound(t *testing.T) {
	ts := newTestServer()

	rec := ts.do(http.MethodGet, "/v1/project/99999", "", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, int(errors.ErrorCode_NOT_FOUND), decode(t, rec).Code)
}

func TestTasks_CreateTasksRequiresArray(t *testing.T) {
	ts := newTestServer()

	rec := ts.do(http.MethodPost, "/v1/create-tasks", echo.MIMEApplicationJSON, `{"summary":"x"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Invalid input. Expected an array of tasks.", decode(t, rec).Message)

	rec = ts.do(http.MethodPost, "/v1/create-tasks", echo.MIMEApplicationJSON, `[{"summary":"x","assignee_email":"a@example.com"}]`)
	require.Equal(t, http.StatusOK, rec.Code)
	var results []taskUsecase.CreateResult
	require.NoError(t, json.Unmarshal(decode(t, rec).Data, &results))
	assert.Equal(t, "OPS-1", results[0].TaskID)
}

func TestNotify_DetectFallsBackToTracker(t *testing.T) {
	ts := newTestServer()
	ts.tasks.tasks = []entities.Task{{Key: "OPS-1"}}

	rec := ts.do(http.MethodPost, "/v1/detect", "", "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, ts.tasks.tasks, ts.notify.checked)

	rec = ts.do(http.MethodPost, "/v1/detect", echo.MIMEApplicationJSON, `{"tasks":[{"key":"OPS-9"}]}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "OPS-9", ts.notify.checked[0].Key)
}

func TestNotify_RemindersRequireIssues(t *testing.T) {
	ts := newTestServer()

	rec := ts.do(http.MethodPost, "/v1/send-mail-to-assignee", echo.MIMEApplicationJSON, `{"issues":[]}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSummary_Generate(t *testing.T) {
	ts := newTestServer()

	rec := ts.do(http.MethodPost, "/v1/generate-summary", echo.MIMEApplicationJSON, `{}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "MOM data is required in request body.", decode(t, rec).Message)

	rec = ts.do(http.MethodPost, "/v1/generate-summary", echo.MIMEApplicationJSON, `{"momData":{"organizer":"Sam"}}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"discussion_highlights":"Sam"`)

	ts.summary.err = usecaseErrors.ErrInvalidModelOutput
	rec = ts.do(http.MethodPost, "/v1/generate-summary", echo.MIMEApplicationJSON, `{"organizer":"Sam"}`)
	assert.Equal(t, int(errors.ErrorCode_AI_INVALID_MODEL_OUTPUT), decode(t, rec).Code)
}

func TestMeetings_NotConfigured(t *testing.T) {
	ts := newTestServer()

	rec := ts.do(http.MethodGet, "/v1/meetings/upcoming-events", "", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Access token is required", decode(t, rec).Message)
}

func TestAuthGuardsV1(t *testing.T) {
	e := echo.New()
	deny := func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			return c.NoContent(http.StatusUnauthorized)
		}
	}
	NewRouter(nil, NewMinutesHandler(&fakeMinutes{records: map[string]*entities.MinutesRecord{}}, nil), nil, nil, nil, nil, deny).Setup(e)

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/mom", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}
