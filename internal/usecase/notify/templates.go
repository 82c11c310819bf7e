package notify

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"
)

var alertHTML = template.Must(template.New("alert").Parse(`<html>
<body style="font-family: Arial, sans-serif;">
<p>Hello,</p>
<p>The task <strong>{{.TaskID}}</strong> is missing the following fields:</p>
<ul>{{range .Fields}}<li>{{.}}</li>{{end}}</ul>
<p>Please update the task on the <a href="{{.BoardURL}}">task board</a>.</p>
<p>Thank you.</p>
</body>
</html>
`))

var assigneeHTML = template.Must(template.New("assignee").Parse(`<html>
<body style="font-family: Arial, sans-serif;">
<p>Hello,</p>
<p>You have been assigned the task <strong>{{.TaskID}}</strong>.</p>
{{if .Fields}}<p>It still needs the following fields filled in:</p>
<ul>{{range .Fields}}<li>{{.}}</li>{{end}}</ul>{{end}}
<p>View it on the <a href="{{.BoardURL}}">task board</a>.</p>
</body>
</html>
`))

type mailData struct {
	TaskID   string
	Fields   []string
	BoardURL string
}

func render(t *template.Template, d mailData) (string, error) {
	var buf bytes.Buffer
	if err := t.Execute(&buf, d); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func alertSubject(taskID string) string {
	return fmt.Sprintf("Task ID %s: Missing Fields Alert", taskID)
}

func assigneeSubject(taskID string) string {
	return fmt.Sprintf("Task ID %s: Assigned to you", taskID)
}

func alertText(d mailData) string {
	var b strings.Builder
	fmt.Fprintf(&b, "The task %s is missing the following fields:\n", d.TaskID)
	for _, f := range d.Fields {
		fmt.Fprintf(&b, "- %s\n", f)
	}
	fmt.Fprintf(&b, "\nUpdate it here: %s\n", d.BoardURL)
	return b.String()
}

func assigneeText(d mailData) string {
	var b strings.Builder
	fmt.Fprintf(&b, "You have been assigned the task %s.\n", d.TaskID)
	if len(d.Fields) > 0 {
		b.WriteString("It still needs the following fields filled in:\n")
		for _, f := range d.Fields {
			fmt.Fprintf(&b, "- %s\n", f)
		}
	}
	fmt.Fprintf(&b, "\nView it here: %s\n", d.BoardURL)
	return b.String()
}
