package notify

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/johnquangdev/meeting-minutes/internal/domain/entities"
	"github.com/johnquangdev/meeting-minutes/internal/infrastructure/external/sendgrid"
	usecaseErrors "github.com/johnquangdev/meeting-minutes/internal/usecase/errors"
)

type fakeMailer struct {
	mu   sync.Mutex
	sent []sendgrid.Message
	err  error
}

func (f *fakeMailer) Send(ctx context.Context, msg sendgrid.Message) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, msg)
	return nil
}

type fakeReminder struct {
	issues []string
	err    error
}

func (f *fakeReminder) TriggerReminders(ctx context.Context, issues []string) error {
	f.issues = issues
	return f.err
}

func boardURL(id string) string {
	return "https://acme.atlassian.net/jira/software/projects/OPS/list?selectedIssue=" + id
}

func newTestService(m *fakeMailer, r *fakeReminder, organizer string) Service {
	return NewService(m, r, organizer, boardURL, nil)
}

func TestSendMissingFieldsAlert(t *testing.T) {
	m := &fakeMailer{}
	svc := newTestService(m, &fakeReminder{}, "")

	err := svc.SendMissingFieldsAlert(context.Background(), AlertInput{
		To:            "lead@example.com",
		TaskID:        "OPS-7",
		MissingFields: []string{"due_date", "description"},
		CC:            []string{"pm@example.com"},
	})
	require.NoError(t, err)
	require.Len(t, m.sent, 1)

	msg := m.sent[0]
	assert.Equal(t, "Task ID OPS-7: Missing Fields Alert", msg.Subject)
	assert.Equal(t, []string{"lead@example.com"}, msg.To)
	assert.Equal(t, []string{"pm@example.com"}, msg.CC)
	assert.Contains(t, msg.Text, "- due_date\n")
	assert.Contains(t, msg.HTML, "<li>description</li>")
	assert.Contains(t, msg.HTML, "selectedIssue=OPS-7")
}

func TestSendMissingFieldsAlert_Errors(t *testing.T) {
	m := &fakeMailer{err: errors.New("403 forbidden")}
	svc := newTestService(m, &fakeReminder{}, "")

	err := svc.SendMissingFieldsAlert(context.Background(), AlertInput{To: "a@example.com", TaskID: "OPS-1"})
	assert.ErrorIs(t, err, usecaseErrors.ErrEmailFailed)

	err = svc.SendMissingFieldsAlert(context.Background(), AlertInput{TaskID: "OPS-1"})
	assert.ErrorIs(t, err, usecaseErrors.ErrInvalidInput)
}

func TestDetectMissingFields(t *testing.T) {
	m := &fakeMailer{}
	svc := newTestService(m, &fakeReminder{}, "lead@example.com")

	tasks := []entities.Task{
		{Key: "OPS-1", Summary: "s", Description: "d", DueDate: "2026-10-20", AssigneeEmail: "a@example.com"},
		{Key: "OPS-2", Summary: "s", Description: "", DueDate: "2026-10-20", AssigneeEmail: "b@example.com"},
		{Key: "OPS-3", Summary: "s", Description: "d"},
	}

	got, err := svc.DetectMissingFields(context.Background(), tasks)
	require.NoError(t, err)

	assert.Equal(t, []Detection{
		{TaskID: "OPS-2", Email: "b@example.com", MissingFields: []string{"description"}},
		{TaskID: "OPS-3", Email: "N/A", MissingFields: []string{"due_date", "email"}},
	}, got)

	// organizer alert for both, assignee notice only for OPS-2
	require.Len(t, m.sent, 3)
	assert.Equal(t, []string{"lead@example.com"}, m.sent[0].To)
	assert.Equal(t, []string{"b@example.com"}, m.sent[1].To)
	assert.Equal(t, []string{"lead@example.com"}, m.sent[2].To)
}

func TestDetectMissingFields_MailFailureDoesNotStop(t *testing.T) {
	m := &fakeMailer{err: errors.New("down")}
	svc := newTestService(m, &fakeReminder{}, "lead@example.com")

	got, err := svc.DetectMissingFields(context.Background(), []entities.Task{{Key: "OPS-9"}})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "OPS-9", got[0].TaskID)
}

func TestSendReminders(t *testing.T) {
	r := &fakeReminder{}
	svc := newTestService(&fakeMailer{}, r, "")

	require.NoError(t, svc.SendReminders(context.Background(), []string{"OPS-1", " ", "OPS-2"}))
	assert.Equal(t, []string{"OPS-1", "OPS-2"}, r.issues)

	assert.ErrorIs(t, svc.SendReminders(context.Background(), nil), usecaseErrors.ErrNoIssues)

	r.err = errors.New("401")
	assert.ErrorIs(t, svc.SendReminders(context.Background(), []string{"OPS-1"}), usecaseErrors.ErrReminderFailed)
}
