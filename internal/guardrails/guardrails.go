// Package guardrails bounds the structure of generated HTML: nesting depth,
// element count and tag vocabulary.
package guardrails

import (
	"fmt"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Guardrails are the structural limits applied to generated markup.
// Zero limits and an empty tag list disable the corresponding check.
type Guardrails struct {
	MaxNestingDepth int      `json:"max_nesting_depth" yaml:"max_nesting_depth"`
	MaxElementCount int      `json:"max_element_count" yaml:"max_element_count"`
	AllowedTags     []string `json:"allowed_tags" yaml:"allowed_tags"`
}

// DefaultAllowedTags is the tag vocabulary permitted in generated pages.
var DefaultAllowedTags = []string{
	"div", "section", "article", "header", "footer", "nav", "main", "aside",
	"h1", "h2", "h3", "h4", "h5", "h6", "p", "span", "a", "button",
	"ul", "ol", "li", "img", "svg", "path",
	"form", "input", "textarea", "label", "select", "option",
}

// Default returns the standard limits: depth 10, 500 elements, DefaultAllowedTags.
func Default() Guardrails {
	return Guardrails{
		MaxNestingDepth: 10,
		MaxElementCount: 500,
		AllowedTags:     append([]string(nil), DefaultAllowedTags...),
	}
}

// Stats summarizes the element tree of a fragment.
type Stats struct {
	MaxDepth     int
	ElementCount int
	// Disallowed holds the tag name of every element outside the allow-list,
	// in document order.
	Disallowed []string
}

// Inspect parses markup leniently and walks its element tree. Full documents
// (a leading doctype or <html> tag) are parsed whole so the html, head and
// body elements are counted; anything else is parsed as a body fragment.
// Top-level elements are at depth 1.
func Inspect(markup string, allowed []string) (Stats, error) {
	nodes, err := parseNodes(markup)
	if err != nil {
		return Stats{}, err
	}

	allow := make(map[string]bool, len(allowed))
	for _, t := range allowed {
		allow[strings.ToLower(t)] = true
	}

	var st Stats
	var walk func(n *html.Node, depth int)
	walk = func(n *html.Node, depth int) {
		if n.Type == html.ElementNode {
			st.ElementCount++
			if depth > st.MaxDepth {
				st.MaxDepth = depth
			}
			if len(allow) > 0 && !allow[strings.ToLower(n.Data)] {
				st.Disallowed = append(st.Disallowed, n.Data)
			}
			for c := n.FirstChild; c != nil; c = c.NextSibling {
				walk(c, depth+1)
			}
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c, depth)
		}
	}
	for _, n := range nodes {
		walk(n, 1)
	}
	return st, nil
}

func isDocument(markup string) bool {
	head := strings.ToLower(strings.TrimLeft(markup, " \t\r\n\ufeff"))
	return strings.HasPrefix(head, "<!doctype") || strings.HasPrefix(head, "<html")
}

func parseNodes(markup string) ([]*html.Node, error) {
	if isDocument(markup) {
		doc, err := html.Parse(strings.NewReader(markup))
		if err != nil {
			return nil, fmt.Errorf("failed to parse html document: %w", err)
		}
		var nodes []*html.Node
		for c := doc.FirstChild; c != nil; c = c.NextSibling {
			nodes = append(nodes, c)
		}
		return nodes, nil
	}

	body := &html.Node{Type: html.ElementNode, Data: "body", DataAtom: atom.Body}
	nodes, err := html.ParseFragment(strings.NewReader(markup), body)
	if err != nil {
		return nil, fmt.Errorf("failed to parse html fragment: %w", err)
	}
	return nodes, nil
}

// Validate checks markup against g and returns one message per violation.
// A nil result means the markup is clean. Parse failures are reported as an
// issue rather than an error.
func Validate(markup string, g Guardrails) []string {
	st, err := Inspect(markup, g.AllowedTags)
	if err != nil {
		return []string{err.Error()}
	}

	var issues []string
	if g.MaxNestingDepth > 0 && st.MaxDepth > g.MaxNestingDepth {
		issues = append(issues, fmt.Sprintf("Nesting depth (%d) exceeds maximum (%d)", st.MaxDepth, g.MaxNestingDepth))
	}
	if g.MaxElementCount > 0 && st.ElementCount > g.MaxElementCount {
		issues = append(issues, fmt.Sprintf("Element count (%d) exceeds maximum (%d)", st.ElementCount, g.MaxElementCount))
	}
	for _, tag := range st.Disallowed {
		issues = append(issues, "Disallowed tag found: "+tag)
	}
	return issues
}
