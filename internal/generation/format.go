package generation

import (
	"strings"

	"golang.org/x/net/html"
)

// preserved elements keep their contents byte for byte.
var preserved = map[string]bool{"pre": true, "textarea": true, "script": true, "style": true}

var voidElements = map[string]bool{
	"area": true, "base": true, "br": true, "col": true, "embed": true, "hr": true, "img": true,
	"input": true, "link": true, "meta": true, "source": true, "track": true, "wbr": true,
}

// inline elements flow with the surrounding text, so no whitespace may be
// added next to them.
var inlineElements = map[string]bool{
	"a": true, "abbr": true, "b": true, "bdi": true, "bdo": true, "br": true, "button": true,
	"cite": true, "code": true, "data": true, "dfn": true, "em": true, "i": true, "img": true,
	"input": true, "kbd": true, "label": true, "mark": true, "path": true, "q": true, "s": true,
	"samp": true, "small": true, "span": true, "strong": true, "sub": true, "sup": true,
	"svg": true, "time": true, "u": true, "var": true, "wbr": true,
}

const indentUnit = "  "

// Format pretty-prints markup. Block-level tags go on their own lines,
// indented two spaces per level; a run of text and inline elements is kept on
// one line exactly as written, minus its leading and trailing whitespace.
// The rendered text is unchanged.
func Format(markup string) string {
	z := html.NewTokenizer(strings.NewReader(markup))
	var b strings.Builder
	depth := 0

	line := func(s string) {
		b.WriteString(strings.Repeat(indentUnit, depth))
		b.WriteString(s)
		b.WriteByte('\n')
	}

	// run collects the current stretch of inline content
	var run strings.Builder
	flush := func() {
		if text := strings.TrimSpace(run.String()); text != "" {
			line(text)
		}
		run.Reset()
	}
	inRun := func() bool { return strings.TrimSpace(run.String()) != "" }

	// inside a preserved element everything is copied raw until its end tag
	var keep string
	keepDepth := 0
	keepInline := false

	for {
		tt := z.Next()
		if tt == html.ErrorToken {
			break
		}
		raw := string(z.Raw())

		if keep != "" {
			out := &b
			if keepInline {
				out = &run
			}
			out.WriteString(raw)
			name, _ := z.TagName()
			switch {
			case tt == html.StartTagToken && string(name) == keep:
				keepDepth++
			case tt == html.EndTagToken && string(name) == keep:
				keepDepth--
				if keepDepth == 0 {
					keep = ""
					if !keepInline {
						b.WriteByte('\n')
					}
				}
			}
			continue
		}

		switch tt {
		case html.TextToken:
			run.WriteString(raw)
		case html.StartTagToken, html.SelfClosingTagToken:
			name, _ := z.TagName()
			tag := string(name)
			switch {
			case preserved[tag] && tt == html.StartTagToken:
				keepInline = inRun()
				if keepInline {
					run.WriteString(raw)
				} else {
					flush()
					b.WriteString(strings.Repeat(indentUnit, depth))
					b.WriteString(raw)
				}
				keep, keepDepth = tag, 1
			case inlineElements[tag]:
				run.WriteString(raw)
			default:
				flush()
				line(raw)
				if tt == html.StartTagToken && !voidElements[tag] {
					depth++
				}
			}
		case html.EndTagToken:
			name, _ := z.TagName()
			if inlineElements[string(name)] {
				run.WriteString(raw)
				continue
			}
			flush()
			if depth > 0 {
				depth--
			}
			line(raw)
		case html.CommentToken:
			if inRun() {
				run.WriteString(raw)
				continue
			}
			flush()
			line(raw)
		default:
			flush()
			line(raw)
		}
	}
	flush()

	return strings.TrimRight(b.String(), "\n")
}
