// Package templates assembles deterministic landing-page HTML from embedded
// section templates. Two variants exist: semantic (named CSS classes scaled by
// a level suffix) and utility (per-level Tailwind class bundles).
package templates

import (
	"bytes"
	"embed"
	"html/template"
	"strings"

	"github.com/alexramsey92/ai-web-design-workbench/internal/stylelevel"
)

// Variant selects a template family.
type Variant string

const (
	VariantSemantic Variant = "semantic"
	VariantUtility  Variant = "utility"
)

// Section is a page section key.
type Section string

const (
	SectionHero         Section = "hero"
	SectionFeatures     Section = "features"
	SectionCTA          Section = "cta"
	SectionProblem      Section = "problem"
	SectionTestimonials Section = "testimonials"
	SectionStats        Section = "stats"
	SectionFooter       Section = "footer"
)

// DefaultSections is used when a request names no sections.
var DefaultSections = []Section{SectionHero, SectionFeatures, SectionCTA}

// sectionOrder is the canonical listing order for registries.
var sectionOrder = []Section{
	SectionHero, SectionFeatures, SectionCTA, SectionProblem,
	SectionTestimonials, SectionStats, SectionFooter,
}

// AllSections lists every section key any variant can render.
func AllSections() []Section {
	return append([]Section(nil), sectionOrder...)
}

//go:embed html/*.tmpl html/*.css
var templateFS embed.FS

// sectionData is what every section template receives.
type sectionData struct {
	Level stylelevel.Level
	C     classTable
	O     Options
}

type sectionFunc func(level stylelevel.Level, o Options) sectionData

// Assembler renders sections of one variant. It holds no per-call state
// and is safe for concurrent use.
type Assembler struct {
	variant  Variant
	tmpl     *template.Template
	registry map[Section]sectionFunc
}

// New parses the templates for variant. Unknown variants fall back to semantic.
func New(variant Variant) (*Assembler, error) {
	if variant != VariantUtility {
		variant = VariantSemantic
	}

	funcs := template.FuncMap{"sem": semanticClass}
	tmpl, err := template.New(string(variant)).Funcs(funcs).ParseFS(templateFS, "html/"+string(variant)+".tmpl")
	if err != nil {
		return nil, &TemplateError{Message: "failed to parse " + string(variant) + " templates", Cause: err}
	}

	a := &Assembler{variant: variant, tmpl: tmpl}
	if variant == VariantUtility {
		a.registry = utilityRegistry()
	} else {
		a.registry = semanticRegistry()
	}
	return a, nil
}

// Variant returns the template family this assembler renders.
func (a *Assembler) Variant() Variant {
	return a.variant
}

// Sections lists the section keys this variant can render, in canonical order.
func (a *Assembler) Sections() []Section {
	var out []Section
	for _, s := range sectionOrder {
		if _, ok := a.registry[s]; ok {
			out = append(out, s)
		}
	}
	return out
}

// Assemble renders the requested sections in order, separated by a blank
// line. Unknown sections are skipped and repeats are rendered once. An
// empty request renders DefaultSections; an unknown level renders as full.
func (a *Assembler) Assemble(sections []Section, level stylelevel.Level, opts Options) (string, error) {
	if len(sections) == 0 {
		sections = DefaultSections
	}
	if !level.Valid() {
		level = stylelevel.DefaultLevel
	}
	opts = opts.withDefaults()

	seen := make(map[Section]bool, len(sections))
	fragments := make([]string, 0, len(sections))
	for _, s := range sections {
		build, ok := a.registry[s]
		if !ok || seen[s] {
			continue
		}
		seen[s] = true

		var buf bytes.Buffer
		if err := a.tmpl.ExecuteTemplate(&buf, string(s), build(level, opts)); err != nil {
			return "", &RenderError{Section: s, Cause: err}
		}
		fragments = append(fragments, strings.TrimSpace(buf.String()))
	}
	return strings.Join(fragments, "\n\n"), nil
}

// ParseSections converts raw section names, trimming and lowercasing them.
// Empty names are dropped; unknown names are kept so Assemble can skip them.
func ParseSections(names []string) []Section {
	out := make([]Section, 0, len(names))
	for _, n := range names {
		n = strings.ToLower(strings.TrimSpace(n))
		if n != "" {
			out = append(out, Section(n))
		}
	}
	return out
}

func semanticClass(level stylelevel.Level, base string) string {
	switch level {
	case stylelevel.Mid:
		return base + "-mid"
	case stylelevel.Low:
		return base + "-low"
	}
	return base
}

func semanticRegistry() map[Section]sectionFunc {
	plain := func(level stylelevel.Level, o Options) sectionData {
		return sectionData{Level: level, O: o}
	}
	reg := make(map[Section]sectionFunc, len(sectionOrder))
	for _, s := range sectionOrder {
		reg[s] = plain
	}
	return reg
}

func utilityRegistry() map[Section]sectionFunc {
	withClasses := func(s Section) sectionFunc {
		return func(level stylelevel.Level, o Options) sectionData {
			return sectionData{Level: level, C: utilityClasses[s][level], O: o}
		}
	}
	reg := map[Section]sectionFunc{
		SectionHero:   withClasses(SectionHero),
		SectionCTA:    withClasses(SectionCTA),
		SectionFooter: withClasses(SectionFooter),
	}
	features := withClasses(SectionFeatures)
	reg[SectionFeatures] = func(level stylelevel.Level, o Options) sectionData {
		if o.FeatureCount < len(o.Features) {
			o.Features = o.Features[:o.FeatureCount]
		}
		return features(level, o)
	}
	return reg
}
