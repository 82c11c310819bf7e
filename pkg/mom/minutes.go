// Package mom holds the minutes-of-meeting record and its plain-text form.
//
// The text form is meant for hand editing: Format is deterministic and Parse
// never fails. Lines Parse does not recognise are dropped.
package mom

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// MeetingMinutes is the structured minutes of a single meeting
type MeetingMinutes struct {
	Organizer        string       `json:"organizer"`
	DiscussionTopics []string     `json:"discussion_topics"`
	KeyPoints        []string     `json:"key_points"`
	FAQs             []string     `json:"faqs"`
	ActionItems      []ActionItem `json:"action_items"`
}

// ActionItem is a follow-up task captured in the minutes.
// An empty Email means the owner's address was not captured.
type ActionItem struct {
	Item     string `json:"item"`
	Deadline string `json:"deadline"`
	Owner    string `json:"owner"`
	Email    string `json:"email,omitempty"`
}

// Envelope is the canonical wire shape {"mom_data": {...}}
type Envelope struct {
	MomData MeetingMinutes `json:"mom_data"`
}

// Normalize replaces nil sequences with empty ones so that records
// compare and encode the same regardless of where they came from.
func Normalize(m MeetingMinutes) MeetingMinutes {
	out := m
	out.DiscussionTopics = nonNil(m.DiscussionTopics)
	out.KeyPoints = nonNil(m.KeyPoints)
	out.FAQs = nonNil(m.FAQs)
	if m.ActionItems == nil {
		out.ActionItems = []ActionItem{}
	}
	return out
}

// Wrap normalizes m and puts it in an envelope
func Wrap(m MeetingMinutes) Envelope {
	return Envelope{MomData: Normalize(m)}
}

// Decode reads either a bare record or an envelope and returns the
// normalized record. The envelope key may be "mom_data" or "momData".
func Decode(data []byte) (MeetingMinutes, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return Normalize(MeetingMinutes{}), nil
	}

	var keys map[string]json.RawMessage
	if err := json.Unmarshal(data, &keys); err != nil {
		return MeetingMinutes{}, fmt.Errorf("decode minutes: %w", err)
	}

	body := data
	for _, key := range []string{"mom_data", "momData"} {
		if inner, ok := keys[key]; ok {
			body = inner
			break
		}
	}

	var m MeetingMinutes
	if err := json.Unmarshal(body, &m); err != nil {
		return MeetingMinutes{}, fmt.Errorf("decode minutes: %w", err)
	}
	return Normalize(m), nil
}

// UnmarshalJSON accepts both snake_case and camelCase keys
func (m *MeetingMinutes) UnmarshalJSON(data []byte) error {
	var w struct {
		Organizer             string       `json:"organizer"`
		DiscussionTopics      []string     `json:"discussion_topics"`
		DiscussionTopicsCamel []string     `json:"discussionTopics"`
		KeyPoints             []string     `json:"key_points"`
		KeyPointsCamel        []string     `json:"keyPoints"`
		FAQs                  []string     `json:"faqs"`
		ActionItems           []ActionItem `json:"action_items"`
		ActionItemsCamel      []ActionItem `json:"actionItems"`
	}
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	*m = MeetingMinutes{
		Organizer:        w.Organizer,
		DiscussionTopics: firstNonNil(w.DiscussionTopics, w.DiscussionTopicsCamel),
		KeyPoints:        firstNonNil(w.KeyPoints, w.KeyPointsCamel),
		FAQs:             w.FAQs,
		ActionItems:      firstNonNil(w.ActionItems, w.ActionItemsCamel),
	}
	return nil
}

func firstNonNil[T any](a, b []T) []T {
	if a != nil {
		return a
	}
	return b
}

// IsEmpty reports whether the record carries no content at all
func (m MeetingMinutes) IsEmpty() bool {
	return m.Organizer == "" &&
		len(m.DiscussionTopics) == 0 &&
		len(m.KeyPoints) == 0 &&
		len(m.FAQs) == 0 &&
		len(m.ActionItems) == 0
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
