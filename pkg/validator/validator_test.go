package validator

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type attendee struct {
	Email string `json:"email" validate:"required,email"`
}

type request struct {
	MeetingID string     `json:"meeting_id" validate:"required,excludesall=/\\"`
	Subject   string     `json:"subject,omitempty" validate:"max=5"`
	Internal  string     `json:"-" validate:"omitempty,max=1"`
	Plain     string     `validate:"omitempty,email"`
	Attendees []attendee `json:"attendees" validate:"dive"`
}

func TestValidate_OK(t *testing.T) {
	err := New().Validate(&request{MeetingID: "m-1", Attendees: []attendee{{Email: "a@example.com"}}})
	assert.NoError(t, err)
}

func TestFields_UsesJSONNames(t *testing.T) {
	err := New().Validate(&request{
		MeetingID: "../m-2",
		Subject:   "too long",
		Plain:     "nope",
		Attendees: []attendee{{Email: "bad"}},
	})
	require.Error(t, err)

	assert.Equal(t, map[string]string{
		"meeting_id":         "excludesall",
		"subject":            "max",
		"Plain":              "email",
		"attendees[0].email": "email",
	}, Fields(err))
}

func TestFields_Required(t *testing.T) {
	err := New().Validate(&request{})
	assert.Equal(t, map[string]string{"meeting_id": "required"}, Fields(err))
}

func TestFields_NotValidationError(t *testing.T) {
	assert.Nil(t, Fields(errors.New("boom")))
	assert.Nil(t, Fields(nil))
}
