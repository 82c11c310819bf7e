package mom

import (
	"bytes"
	"html/template"
)

var minutesHTML = template.Must(template.New("minutes").Funcs(template.FuncMap{
	"inc": func(i int) int { return i + 1 },
}).Parse(`<html>
<body style="font-family: Arial, sans-serif;">
<h2>{{.Subject}}</h2>
<p><strong>Organizer:</strong> {{.Minutes.Organizer}}</p>
<h3>Discussion Topics</h3>
<ol>{{range .Minutes.DiscussionTopics}}<li>{{.}}</li>{{end}}</ol>
<h3>Key Points</h3>
<ul>{{range .Minutes.KeyPoints}}<li>{{.}}</li>{{end}}</ul>
<h3>FAQs</h3>
<ol>{{range .Minutes.FAQs}}<li>{{.}}</li>{{end}}</ol>
<h3>Action Items</h3>
<table border="1" cellpadding="6" cellspacing="0">
<tr><th>#</th><th>Item</th><th>Deadline</th><th>Owner</th><th>Email</th></tr>
{{range $i, $a := .Minutes.ActionItems}}<tr><td>{{inc $i}}</td><td>{{$a.Item}}</td><td>{{$a.Deadline}}</td><td>{{$a.Owner}}</td><td>{{$a.Email}}</td></tr>
{{end}}</table>
</body>
</html>
`))

// FormatHTML renders the minutes as an HTML document for mail bodies and archives
func FormatHTML(subject string, m MeetingMinutes) (string, error) {
	var buf bytes.Buffer
	err := minutesHTML.Execute(&buf, struct {
		Subject string
		Minutes MeetingMinutes
	}{Subject: subject, Minutes: Normalize(m)})
	if err != nil {
		return "", err
	}
	return buf.String(), nil
}
