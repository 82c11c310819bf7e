package jira

import "strings"

// Node is a node of an Atlassian Document Format tree
type Node struct {
	Type    string  `json:"type"`
	Version int     `json:"version,omitempty"`
	Text    string  `json:"text,omitempty"`
	Content []*Node `json:"content,omitempty"`
}

// NewDocument wraps plain text in a single-paragraph ADF document
func NewDocument(text string) *Node {
	para := &Node{Type: "paragraph"}
	if text != "" {
		para.Content = []*Node{{Type: "text", Text: text}}
	}
	return &Node{Type: "doc", Version: 1, Content: []*Node{para}}
}

// PlainText flattens the document, one line per block
func (n *Node) PlainText() string {
	if n == nil {
		return ""
	}
	var lines []string
	var walk func(node *Node, b *strings.Builder)
	walk = func(node *Node, b *strings.Builder) {
		if node.Text != "" {
			b.WriteString(node.Text)
		}
		for _, child := range node.Content {
			walk(child, b)
		}
	}
	for _, block := range n.Content {
		var b strings.Builder
		walk(block, &b)
		if s := strings.TrimSpace(b.String()); s != "" {
			lines = append(lines, s)
		}
	}
	if len(lines) == 0 && n.Text != "" {
		return n.Text
	}
	return strings.Join(lines, "\n")
}
