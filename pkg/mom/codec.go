package mom

import (
	"fmt"
	"regexp"
	"strings"
)

const (
	headerOrganizer = "Organizer:"
	headerTopics    = "Discussion Topics:"
	headerPoints    = "Key Points:"
	headerFAQs      = "FAQs:"
	headerActions   = "Action Items:"

	fieldDeadline = "Deadline:"
	fieldOwner    = "Owner:"
	fieldEmail    = "Email:"
)

// Format renders the minutes as editable text. It never fails; empty
// fields render as empty strings and empty sequences as bare headings.
func Format(m MeetingMinutes) string {
	var b strings.Builder

	fmt.Fprintf(&b, "%s %s\n\n", headerOrganizer, m.Organizer)

	b.WriteString(headerTopics + "\n")
	for i, topic := range m.DiscussionTopics {
		fmt.Fprintf(&b, "  %d. %s\n", i+1, topic)
	}

	b.WriteString("\n" + headerPoints + "\n")
	for _, point := range m.KeyPoints {
		fmt.Fprintf(&b, "  - %s\n", point)
	}

	b.WriteString("\n" + headerFAQs + "\n")
	for i, faq := range m.FAQs {
		fmt.Fprintf(&b, "  Q%d: %s\n", i+1, faq)
	}

	b.WriteString("\n" + headerActions + "\n")
	for i, item := range m.ActionItems {
		fmt.Fprintf(&b, "  %d. %s\n", i+1, item.Item)
		fmt.Fprintf(&b, "     %s %s\n", fieldDeadline, item.Deadline)
		fmt.Fprintf(&b, "     %s %s\n", fieldOwner, item.Owner)
		if item.Email != "" {
			fmt.Fprintf(&b, "     %s %s\n", fieldEmail, item.Email)
		}
	}

	return b.String()
}

// FormatJSON decodes a bare or enveloped record and formats it
func FormatJSON(data []byte) (string, error) {
	m, err := Decode(data)
	if err != nil {
		return "", err
	}
	return Format(m), nil
}

type section int

const (
	sectionNone section = iota
	sectionTopics
	sectionPoints
	sectionFAQs
	sectionActions
)

var (
	numberedLine   = regexp.MustCompile(`^\d+\.`)
	numberedMarker = regexp.MustCompile(`^\d+\.\s*`)
	faqLine        = regexp.MustCompile(`^Q\d+:`)
	faqMarker      = regexp.MustCompile(`^Q\d+:\s*`)
)

// Parse reads text produced by Format, possibly hand edited, back into
// an envelope. Unrecognised lines are ignored and Parse never fails.
//
// Only the markers Format emits are recognised: "N." for topics and
// action items, "-" for key points and "QN:" for FAQs. Variants such as
// "1)" are dropped. Numbers are not checked, any "N." line inside Action
// Items starts a new item.
func Parse(text string) Envelope {
	p := parser{minutes: Normalize(MeetingMinutes{})}
	for _, line := range strings.Split(text, "\n") {
		p.consume(strings.TrimSpace(line))
	}
	p.flush()
	return Envelope{MomData: p.minutes}
}

type parser struct {
	minutes MeetingMinutes
	section section
	current *ActionItem
}

func (p *parser) consume(line string) {
	if strings.HasPrefix(line, headerOrganizer) {
		p.minutes.Organizer = strings.TrimSpace(strings.TrimPrefix(line, headerOrganizer))
		return
	}

	switch {
	case strings.HasPrefix(line, headerTopics):
		p.enter(sectionTopics)
		p.minutes.DiscussionTopics = []string{}
		return
	case strings.HasPrefix(line, headerPoints):
		p.enter(sectionPoints)
		p.minutes.KeyPoints = []string{}
		return
	case strings.HasPrefix(line, headerFAQs):
		p.enter(sectionFAQs)
		p.minutes.FAQs = []string{}
		return
	case strings.HasPrefix(line, headerActions):
		p.enter(sectionActions)
		p.current = nil
		p.minutes.ActionItems = []ActionItem{}
		return
	}

	switch p.section {
	case sectionTopics:
		if numberedLine.MatchString(line) {
			p.minutes.DiscussionTopics = append(p.minutes.DiscussionTopics, numberedMarker.ReplaceAllString(line, ""))
		}
	case sectionPoints:
		if strings.HasPrefix(line, "-") {
			point := strings.TrimPrefix(line, "-")
			point = strings.TrimPrefix(point, " ")
			p.minutes.KeyPoints = append(p.minutes.KeyPoints, point)
		}
	case sectionFAQs:
		if faqLine.MatchString(line) {
			p.minutes.FAQs = append(p.minutes.FAQs, faqMarker.ReplaceAllString(line, ""))
		}
	case sectionActions:
		p.consumeAction(line)
	}
}

func (p *parser) consumeAction(line string) {
	if numberedLine.MatchString(line) {
		p.flush()
		p.current = &ActionItem{Item: numberedMarker.ReplaceAllString(line, "")}
		return
	}

	// sub-fields with no open item are dropped
	if p.current == nil {
		return
	}

	switch {
	case strings.HasPrefix(line, fieldDeadline):
		p.current.Deadline = fieldValue(line, fieldDeadline)
	case strings.HasPrefix(line, fieldOwner):
		p.current.Owner = fieldValue(line, fieldOwner)
	case strings.HasPrefix(line, fieldEmail):
		p.current.Email = fieldValue(line, fieldEmail)
	}
}

// enter switches section, closing any open action item first
func (p *parser) enter(next section) {
	if p.section == sectionActions {
		p.flush()
	}
	p.section = next
}

func (p *parser) flush() {
	if p.current == nil {
		return
	}
	p.minutes.ActionItems = append(p.minutes.ActionItems, *p.current)
	p.current = nil
}

func fieldValue(line, prefix string) string {
	return strings.TrimSpace(strings.TrimPrefix(line, prefix))
}
