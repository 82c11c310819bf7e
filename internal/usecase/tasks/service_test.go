package tasks

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/johnquangdev/meeting-minutes/internal/domain/entities"
	"github.com/johnquangdev/meeting-minutes/internal/infrastructure/cache"
	"github.com/johnquangdev/meeting-minutes/internal/infrastructure/external/jira"
	usecaseErrors "github.com/johnquangdev/meeting-minutes/internal/usecase/errors"
	"github.com/johnquangdev/meeting-minutes/pkg/mom"
)

type fakeTracker struct {
	tasks        []entities.Task
	searchErr    error
	project      *entities.Project
	projectCalls int
	accounts     map[string]string
	createErr    map[string]error
	dueErr       error
	created      []jira.IssueInput
	dueDates     map[string]string
	updated      map[string]map[string]interface{}
}

func newFakeTracker() *fakeTracker {
	return &fakeTracker{
		accounts:  map[string]string{},
		createErr: map[string]error{},
		dueDates:  map[string]string{},
		updated:   map[string]map[string]interface{}{},
	}
}

func (f *fakeTracker) SearchTasks(ctx context.Context) ([]entities.Task, error) {
	return f.tasks, f.searchErr
}

func (f *fakeTracker) GetProject(ctx context.Context, id string) (*entities.Project, error) {
	f.projectCalls++
	if f.project == nil {
		return nil, fmt.Errorf("%w: project %s", jira.ErrNotFound, id)
	}
	return f.project, nil
}

func (f *fakeTracker) FindAccountID(ctx context.Context, email string) (string, error) {
	return f.accounts[email], nil
}

func (f *fakeTracker) CreateIssue(ctx context.Context, in jira.IssueInput) (*jira.CreatedIssue, error) {
	if err := f.createErr[in.Summary]; err != nil {
		return nil, err
	}
	f.created = append(f.created, in)
	key := "OPS-" + string(rune('0'+len(f.created)))
	return &jira.CreatedIssue{ID: "100", Key: key}, nil
}

func (f *fakeTracker) UpdateDueDate(ctx context.Context, key, due string) error {
	if f.dueErr != nil {
		return f.dueErr
	}
	f.dueDates[key] = due
	return nil
}

func (f *fakeTracker) UpdateFields(ctx context.Context, key string, fields map[string]interface{}) error {
	f.updated[key] = fields
	return nil
}

type fakeLinks struct {
	rows map[string]*entities.MeetingTasks
}

func (f *fakeLinks) AddTasks(ctx context.Context, meetingID, subject string, keys []string) (*entities.MeetingTasks, error) {
	row, ok := f.rows[meetingID]
	if !ok {
		row = &entities.MeetingTasks{MeetingID: meetingID, Subject: subject}
		f.rows[meetingID] = row
	}
	row.AddKeys(keys...)
	return row, nil
}

func (f *fakeLinks) FindByMeetingID(ctx context.Context, meetingID string) (*entities.MeetingTasks, error) {
	row, ok := f.rows[meetingID]
	if !ok {
		return nil, entities.ErrMeetingTasksNotFound
	}
	return row, nil
}

func (f *fakeLinks) List(ctx context.Context) ([]*entities.MeetingTasks, error) {
	out := []*entities.MeetingTasks{}
	for _, r := range f.rows {
		out = append(out, r)
	}
	return out, nil
}

func newTestService(t *testing.T, tr *fakeTracker) (Service, *fakeLinks) {
	t.Helper()
	store := cache.NewMemoryStore()
	t.Cleanup(func() { store.Close() })
	links := &fakeLinks{rows: map[string]*entities.MeetingTasks{}}
	return NewService(tr, links, store, time.Minute, nil), links
}

func TestList_FiltersAndPages(t *testing.T) {
	tr := newFakeTracker()
	tr.tasks = sampleTasks()
	svc, _ := newTestService(t, tr)

	page, err := svc.List(context.Background(), Query{Status: "To Do", Page: 1, PageSize: 2})
	require.NoError(t, err)
	assert.Equal(t, []string{"OPS-1", "OPS-4"}, keys(page.Tasks))
	assert.Equal(t, 2, page.TotalPages)
	assert.Equal(t, "To Do", page.Status)

	page, err = svc.List(context.Background(), Query{})
	require.NoError(t, err)
	assert.Equal(t, entities.TaskStatusAll, page.Status)
	assert.Len(t, page.Tasks, DefaultPageSize)
}

func TestList_TrackerError(t *testing.T) {
	tr := newFakeTracker()
	tr.searchErr = errors.New("boom")
	svc, _ := newTestService(t, tr)

	_, err := svc.List(context.Background(), Query{})
	assert.ErrorIs(t, err, usecaseErrors.ErrTrackerFailed)
}

func TestProject_Cached(t *testing.T) {
	tr := newFakeTracker()
	tr.project = &entities.Project{ID: "10000", Key: "OPS", Name: "Operations"}
	svc, _ := newTestService(t, tr)

	for i := 0; i < 3; i++ {
		p, err := svc.Project(context.Background(), "10000")
		require.NoError(t, err)
		assert.Equal(t, "Operations", p.Name)
	}
	assert.Equal(t, 1, tr.projectCalls)

	_, err := svc.Project(context.Background(), " ")
	assert.ErrorIs(t, err, usecaseErrors.ErrInvalidInput)
}

func TestProject_NotFound(t *testing.T) {
	svc, _ := newTestService(t, newFakeTracker())

	_, err := svc.Project(context.Background(), "99999")
	assert.ErrorIs(t, err, usecaseErrors.ErrNotFound)
	assert.NotErrorIs(t, err, usecaseErrors.ErrTrackerFailed)
}

func TestCreateTasks_PerTaskResults(t *testing.T) {
	tr := newFakeTracker()
	tr.accounts["priya@example.com"] = "acc-priya"
	tr.accounts["lee@example.com"] = "acc-lee"
	tr.createErr["Broken"] = errors.New("400")
	svc, _ := newTestService(t, tr)

	results, err := svc.CreateTasks(context.Background(), []mom.TaskRequest{
		{Summary: "Review code", AssigneeEmail: "priya@example.com", DueDate: "2026-10-20"},
		{Summary: "Ghost", AssigneeEmail: "ghost@example.com"},
		{Summary: "Broken", AssigneeEmail: "lee@example.com"},
		{Summary: "", AssigneeEmail: "lee@example.com"},
	})
	require.NoError(t, err)
	require.Len(t, results, 4)

	assert.Equal(t, CreateResult{Email: "priya@example.com", Summary: "Review code", Status: ResultSuccess, TaskID: "OPS-1"}, results[0])
	assert.Equal(t, CreateResult{Email: "ghost@example.com", Summary: "Ghost", Status: ResultFailed, Reason: "Invalid or unrecognized email"}, results[1])
	assert.Equal(t, CreateResult{Email: "lee@example.com", Summary: "Broken", Status: ResultFailed, Reason: "Task creation failed"}, results[2])
	assert.Equal(t, ResultSuccess, results[3].Status)
	assert.Equal(t, mom.DefaultSummary, results[3].Summary)

	assert.Equal(t, map[string]string{"OPS-1": "2026-10-20"}, tr.dueDates)
	assert.Equal(t, "acc-priya", tr.created[0].AccountID)
}

func TestCreateResult_JSONKeys(t *testing.T) {
	ok, err := json.Marshal(CreateResult{Email: "a@example.com", Summary: "s", Status: ResultSuccess, TaskID: "OPS-1"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"email":"a@example.com","summary":"s","status":"success","task_id":"OPS-1"}`, string(ok))

	failed, err := json.Marshal(CreateResult{Email: "", Summary: "s", Status: ResultFailed, Reason: "Task creation failed"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"email":"","summary":"s","status":"failed","reason":"Task creation failed"}`, string(failed))
}

func TestCreateTasks_DueDateFailureStillSucceeds(t *testing.T) {
	tr := newFakeTracker()
	tr.accounts["a@example.com"] = "acc"
	tr.dueErr = errors.New("field not on screen")
	svc, _ := newTestService(t, tr)

	results, err := svc.CreateTasks(context.Background(), []mom.TaskRequest{
		{Summary: "x", AssigneeEmail: "a@example.com", DueDate: "2026-10-20"},
	})
	require.NoError(t, err)
	assert.Equal(t, ResultSuccess, results[0].Status)
}

func TestCreateTasks_Empty(t *testing.T) {
	svc, _ := newTestService(t, newFakeTracker())
	_, err := svc.CreateTasks(context.Background(), nil)
	assert.ErrorIs(t, err, usecaseErrors.ErrInvalidInput)
}

func TestUpdateFields(t *testing.T) {
	tr := newFakeTracker()
	svc, _ := newTestService(t, tr)

	require.NoError(t, svc.UpdateFields(context.Background(), "OPS-1", map[string]interface{}{"duedate": "2026-11-01"}))
	assert.Equal(t, "2026-11-01", tr.updated["OPS-1"]["duedate"])

	assert.ErrorIs(t, svc.UpdateFields(context.Background(), "OPS-1", nil), usecaseErrors.ErrNoFieldsToUpdate)
	assert.ErrorIs(t, svc.UpdateFields(context.Background(), "", map[string]interface{}{"a": 1}), usecaseErrors.ErrInvalidInput)
}

func TestMeetingTasks(t *testing.T) {
	svc, _ := newTestService(t, newFakeTracker())
	ctx := context.Background()

	_, err := svc.SaveMeetingTasks(ctx, "m-1", "Weekly", []string{"OPS-1", "OPS-2"})
	require.NoError(t, err)
	got, err := svc.SaveMeetingTasks(ctx, "m-1", "Weekly", []string{"OPS-2", "OPS-3"})
	require.NoError(t, err)
	assert.Equal(t, []string{"OPS-1", "OPS-2", "OPS-3"}, []string(got.TaskKeys))

	_, err = svc.GetMeetingTasks(ctx, "missing")
	assert.ErrorIs(t, err, usecaseErrors.ErrMeetingTasksNotFound)

	all, err := svc.ListMeetingTasks(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)

	_, err = svc.SaveMeetingTasks(ctx, "", "x", nil)
	assert.ErrorIs(t, err, usecaseErrors.ErrInvalidInput)
}
