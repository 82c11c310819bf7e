package summary

import (
	"encoding/json"
	"fmt"

	"github.com/johnquangdev/meeting-minutes/pkg/mom"
)

const summaryPrompt = `You are an expert meeting summarizer. Given the following Meeting Minutes (MOM) data, generate a well-structured JSON summary with these sections:

- "discussion_highlights": the main topics discussed, concisely.
- "key_takeaways": an array of critical insights from the discussion.
- "action_items": an array of objects with "item" (actionable and specific), "deadline" (or "TBD" when unknown) and "owner".
- "faqs_answered": an array of questions addressed in the meeting.
- "next_steps_risks": what happens next and the potential challenges.

--- MOM Data ---
%s

Return only valid JSON, with no extra text or explanations.`

const agendaPrompt = `You are an expert meeting planner. Based on the last Meeting Minutes (MOM), generate a follow-up meeting agenda covering:

- Review of previous topics: briefly summarize past discussion topics.
- Status of action items: pending action items, highlighting overdue ones.
- Outstanding issues and risks left unresolved.
- Pending FAQs that need an answer or a follow-up.
- New topics to discuss in the next meeting.

MOM Data:
%s

Return only valid JSON with this structure:
{
  "meeting_agenda": {
    "review_previous_topics": [...],
    "status_action_items": [...],
    "outstanding_issues": [...],
    "pending_faqs": [...],
    "new_discussion_topics": [...]
  },
  "html_agenda": "<html>...</html>"
}

"html_agenda" must be a complete HTML document usable directly as an email body: h2 for the main heading, h3 for sections, ul and li for lists and a small <style> block.`

func buildPrompt(tmpl string, m mom.MeetingMinutes) (string, error) {
	b, err := json.Marshal(mom.Normalize(m))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf(tmpl, b), nil
}
