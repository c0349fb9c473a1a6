package templates

import (
	"bytes"
	"html/template"
	"strings"
)

// DocumentOptions controls WrapDocument.
type DocumentOptions struct {
	Title   string
	Variant Variant
	// Stylesheets are extra <link> hrefs appended to the head, such as brand fonts.
	Stylesheets []string
}

type documentData struct {
	Title       string
	Semantic    bool
	CSS         template.CSS
	Stylesheets []string
	Body        template.HTML
}

var documentTmpl = template.Must(template.ParseFS(templateFS, "html/document.tmpl"))

// PreviewCSS returns the stylesheet that backs the semantic class vocabulary.
func PreviewCSS() string {
	b, err := templateFS.ReadFile("html/semantic.css")
	if err != nil {
		return ""
	}
	return string(b)
}

// WrapDocument embeds an HTML fragment in a complete HTML5 document with the
// Tailwind runtime, Font Awesome and, for the semantic variant, the semantic
// stylesheet. Input that is already a full document is returned unchanged.
func WrapDocument(body string, opts DocumentOptions) (string, error) {
	if strings.Contains(strings.ToLower(body), "<!doctype html>") {
		return body, nil
	}
	if opts.Title == "" {
		opts.Title = "Generated Page"
	}

	data := documentData{
		Title:       opts.Title,
		Semantic:    opts.Variant != VariantUtility,
		Stylesheets: opts.Stylesheets,
		Body:        template.HTML(body),
	}
	if data.Semantic {
		data.CSS = template.CSS(PreviewCSS())
	}

	var buf bytes.Buffer
	if err := documentTmpl.Execute(&buf, data); err != nil {
		return "", &RenderError{Section: "document", Cause: err}
	}
	return buf.String(), nil
}
