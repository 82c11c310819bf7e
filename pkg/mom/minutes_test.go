package mom

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecode_BareAndEnveloped(t *testing.T) {
	bare := `{"organizer":"Sam","discussion_topics":["a"],"action_items":[{"item":"x","deadline":"d","owner":"o"}]}`
	wrapped := `{"mom_data":` + bare + `}`
	camel := `{"momData":` + bare + `}`

	want := MeetingMinutes{
		Organizer:        "Sam",
		DiscussionTopics: []string{"a"},
		KeyPoints:        []string{},
		FAQs:             []string{},
		ActionItems:      []ActionItem{{Item: "x", Deadline: "d", Owner: "o"}},
	}

	for _, in := range []string{bare, wrapped, camel} {
		got, err := Decode([]byte(in))
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
}

func TestDecode_CamelCaseKeys(t *testing.T) {
	got, err := Decode([]byte(`{"momData":{"organizer":"Sarah Chen","discussionTopics":["Sprint planning"],` +
		`"keyPoints":["Fixed caching bug"],"faqs":["What is the OAuth status?"],` +
		`"actionItems":[{"item":"Review code","deadline":"Tomorrow","owner":"Priya Patel"}]}}`))
	require.NoError(t, err)
	assert.Equal(t, Normalize(sampleMinutes()), got)
}

func TestDecode_EmptyAndInvalid(t *testing.T) {
	got, err := Decode([]byte("  "))
	require.NoError(t, err)
	assert.True(t, got.IsEmpty())

	_, err = Decode([]byte(`{"organizer":`))
	assert.Error(t, err)

	_, err = Decode([]byte(`{"mom_data":"nope"}`))
	assert.Error(t, err)
}

func TestFormatJSON_SameForBothShapes(t *testing.T) {
	bare := `{"organizer":"Sam","faqs":["q"]}`
	a, err := FormatJSON([]byte(bare))
	require.NoError(t, err)
	b, err := FormatJSON([]byte(`{"mom_data":` + bare + `}`))
	require.NoError(t, err)
	assert.Equal(t, a, b)
	assert.Contains(t, a, "  Q1: q\n")
}

func TestWrap_Normalizes(t *testing.T) {
	env := Wrap(MeetingMinutes{Organizer: "x"})
	assert.NotNil(t, env.MomData.KeyPoints)
	assert.NotNil(t, env.MomData.ActionItems)
}

func TestToTaskRequests(t *testing.T) {
	got := ToTaskRequests([]ActionItem{
		{Item: "Review code", Deadline: "2026-10-20", Owner: "Priya", Email: "priya@example.com"},
		{Item: "", Deadline: "", Owner: "Nobody"},
	})

	require.Len(t, got, 2)
	assert.Equal(t, TaskRequest{Summary: "Review code", AssigneeEmail: "priya@example.com", DueDate: "2026-10-20"}, got[0])
	assert.Equal(t, DefaultSummary, got[1].Summary)
	assert.Empty(t, got[1].Description)
}

func TestFormatHTML_EscapesContent(t *testing.T) {
	out, err := FormatHTML("Weekly sync", MeetingMinutes{
		Organizer:   "<b>Sam</b>",
		ActionItems: []ActionItem{{Item: "Ship"}},
	})
	require.NoError(t, err)
	assert.Contains(t, out, "&lt;b&gt;Sam&lt;/b&gt;")
	assert.Contains(t, out, "<td>1</td><td>Ship</td>")
}
