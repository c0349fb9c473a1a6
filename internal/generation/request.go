// Package generation turns a page request into HTML. It picks the AI backend
// when one is enabled and the embedded templates otherwise, then formats the
// result and checks it against the guardrails.
package generation

import (
	"strings"

	"github.com/alexramsey92/ai-web-design-workbench/internal/brand"
	"github.com/alexramsey92/ai-web-design-workbench/internal/stylelevel"
	"github.com/alexramsey92/ai-web-design-workbench/internal/templates"
	"github.com/alexramsey92/ai-web-design-workbench/internal/validation"
)

// PageType names the kind of page to build.
type PageType string

const LandingPage PageType = "landing_page"

// DefaultPrompt is sent to the backend when the request has no brief.
const DefaultPrompt = "A professional website"

// NormalizeType maps accepted spellings onto their canonical page type.
// Unrecognized types are returned lowercased so validation can reject them.
func NormalizeType(t string) PageType {
	switch s := strings.ToLower(strings.TrimSpace(t)); s {
	case "", "landing", "landing-page", "landing_page", "landingpage":
		return LandingPage
	default:
		return PageType(s)
	}
}

// Request describes one page to generate. Template copy such as headline
// and features rides along in the embedded Options.
type Request struct {
	Type       PageType            `json:"type" validate:"page_type"`
	StyleLevel stylelevel.Level    `json:"style_level,omitempty" validate:"omitempty,style_level"`
	Prompt     string              `json:"prompt,omitempty" validate:"omitempty,min=10,max=1000"`
	Sections   []templates.Section `json:"sections,omitempty" validate:"omitempty,dive,section"`
	MaxTokens  int                 `json:"max_tokens,omitempty" validate:"omitempty,min=1"`
	Voice      *brand.VoiceProfile `json:"voice,omitempty"`

	templates.Options
}

// normalize canonicalizes the type, level and section spellings in place.
func (r *Request) normalize() {
	r.Type = NormalizeType(string(r.Type))
	r.StyleLevel = stylelevel.Level(strings.ToLower(strings.TrimSpace(string(r.StyleLevel))))
	r.Prompt = strings.TrimSpace(r.Prompt)

	names := make([]string, len(r.Sections))
	for i, s := range r.Sections {
		names[i] = string(s)
	}
	r.Sections = templates.ParseSections(names)
}

// Validate normalizes r and checks it. Failures are *validation.Error.
func (r *Request) Validate() error {
	r.normalize()
	return validation.Struct(r)
}

// ApplyProfile fills fields the caller left empty from p: the voice,
// company name, industry and, from the tagline, the subheadline.
func (r *Request) ApplyProfile(p *brand.Profile) {
	if p == nil {
		return
	}
	if r.Voice == nil && p.Voice != nil {
		v := *p.Voice
		r.Voice = &v
	}
	if r.CompanyName == "" {
		r.CompanyName = p.Name
	}
	if r.Industry == "" {
		r.Industry = p.Industry
	}
	if r.Subheadline == "" {
		r.Subheadline = p.Tagline
	}
}
