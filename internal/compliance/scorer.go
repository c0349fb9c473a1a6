package compliance

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/alexramsey92/ai-web-design-workbench/internal/brand"
)

var (
	hexToken     = regexp.MustCompile(`#([A-Fa-f0-9]{6}|[A-Fa-f0-9]{3})\b`)
	contractions = regexp.MustCompile(`(?i)\b(don't|can't|won't|shouldn't|wouldn't|isn't|aren't|wasn't|weren't|hasn't|haven't|hadn't|doesn't)`)
)

const (
	colorPenalty         = 10
	typographyPenalty    = 15
	voicePenalty         = 10
	accessibilityPenalty = 15

	// text shorter than this is not nudged toward contractions
	contractionHintMinLength = 100
	preferredTermsShown      = 3
)

// Evaluate scores markup and its visible text. A nil visual identity skips
// the colors and typography checks; a nil voice profile skips voice.
// Accessibility is always checked.
func Evaluate(visual *brand.VisualIdentity, voice *brand.VoiceProfile, markup, text string) Report {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(markup))
	if err != nil {
		// the HTML tokenizer does not fail on malformed input; an empty
		// document still lets the text-based checks run
		doc, _ = goquery.NewDocumentFromReader(strings.NewReader(""))
	}

	c := Categories{
		Colors:        skipped("No visual identity configured"),
		Typography:    skipped("No visual identity configured"),
		Voice:         skipped("No voice profile configured"),
		Accessibility: checkAccessibility(doc),
	}
	if visual != nil {
		c.Colors = checkColors(*visual, markup)
		c.Typography = checkTypography(*visual, markup, doc)
	}
	if voice != nil {
		c.Voice = checkVoice(*voice, text)
	}
	return aggregate(c)
}

func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}

func checkColors(v brand.VisualIdentity, markup string) CategoryReport {
	issues := []Issue{}
	if !containsFold(markup, v.PrimaryColor) {
		issues = append(issues, Issue{
			Severity:   SeverityWarning,
			Message:    "Primary brand color not detected in content",
			Suggestion: fmt.Sprintf("Use %s in prominent elements", v.PrimaryColor),
		})
	}

	for _, c := range nonBrandColors(v, markup) {
		issues = append(issues, Issue{
			Severity:   SeverityWarning,
			Message:    "Non-brand color detected: " + c,
			Suggestion: "Consider using brand palette colors",
		})
	}

	return CategoryReport{Status: passOrWarn(issues), Issues: issues, Score: penalize(issues, colorPenalty)}
}

// nonBrandColors returns distinct hex tokens outside the palette, uppercased,
// in order of first appearance.
func nonBrandColors(v brand.VisualIdentity, markup string) []string {
	var out []string
	seen := map[string]bool{}
	for _, tok := range hexToken.FindAllString(markup, -1) {
		tok = strings.ToUpper(tok)
		if seen[tok] || v.HasColor(tok) {
			continue
		}
		seen[tok] = true
		out = append(out, tok)
	}
	return out
}

func checkTypography(v brand.VisualIdentity, markup string, doc *goquery.Document) CategoryReport {
	issues := []Issue{}
	if !containsFold(markup, v.HeadingFont) && !containsFold(markup, v.BodyFont) {
		issues = append(issues, Issue{
			Severity:   SeverityWarning,
			Message:    "Brand fonts not detected in content",
			Suggestion: fmt.Sprintf("Use %s for headings and %s for body text", v.HeadingFont, v.BodyFont),
		})
	}

	prev := 0
	for _, level := range headingLevels(doc) {
		if level > prev+1 {
			issues = append(issues, Issue{
				Severity:   SeverityWarning,
				Message:    fmt.Sprintf("Heading hierarchy skip detected (H%d to H%d)", prev, level),
				Suggestion: "Maintain sequential heading levels",
			})
		}
		prev = level
	}

	return CategoryReport{Status: passOrWarn(issues), Issues: issues, Score: penalize(issues, typographyPenalty)}
}

// headingLevels lists h1..h6 levels in document order.
func headingLevels(doc *goquery.Document) []int {
	var levels []int
	doc.Find("*").Each(func(_ int, s *goquery.Selection) {
		name := goquery.NodeName(s)
		if len(name) == 2 && name[0] == 'h' && name[1] >= '1' && name[1] <= '6' {
			levels = append(levels, int(name[1]-'0'))
		}
	})
	return levels
}

func checkVoice(p brand.VoiceProfile, text string) CategoryReport {
	issues := []Issue{}
	for _, term := range p.AvoidTerms {
		if term != "" && containsFold(text, term) {
			issues = append(issues, Issue{
				Severity:   SeverityError,
				Message:    fmt.Sprintf("Content contains avoided term: '%s'", term),
				Suggestion: "Remove or replace this term",
			})
		}
	}

	hasContractions := contractions.MatchString(text)
	switch {
	case hasContractions && !p.UseContractions:
		issues = append(issues, Issue{
			Severity:   SeverityWarning,
			Message:    "Content uses contractions, inconsistent with brand voice",
			Suggestion: "Use full forms (do not, cannot, etc.)",
		})
	case !hasContractions && p.UseContractions && len(text) > contractionHintMinLength:
		issues = append(issues, Issue{
			Severity:   SeverityInfo,
			Message:    "Consider using contractions for a more casual tone",
			Suggestion: "Brand voice prefers contractions (don't vs do not)",
		})
	}

	if len(p.PreferredTerms) > 0 && !anyPresent(text, p.PreferredTerms) {
		shown := p.PreferredTerms
		if len(shown) > preferredTermsShown {
			shown = shown[:preferredTermsShown]
		}
		issues = append(issues, Issue{
			Severity:   SeverityInfo,
			Message:    "Consider using preferred brand terms",
			Suggestion: "Preferred terms: " + strings.Join(shown, ", "),
		})
	}

	issues = append(issues, toneIssues(p, text)...)

	return CategoryReport{Status: statusFromSeverity(issues), Issues: issues, Score: penalize(issues, voicePenalty)}
}

func anyPresent(text string, terms []string) bool {
	for _, t := range terms {
		if t != "" && containsFold(text, t) {
			return true
		}
	}
	return false
}

// ExclamationRatio is exclamation marks per sentence, where sentences are
// counted as '.', '!' and '?' with a floor of one.
func ExclamationRatio(text string) float64 {
	exclaims := strings.Count(text, "!")
	sentences := strings.Count(text, ".") + exclaims + strings.Count(text, "?")
	if sentences < 1 {
		sentences = 1
	}
	return float64(exclaims) / float64(sentences)
}

func toneIssues(p brand.VoiceProfile, text string) []Issue {
	ratio := ExclamationRatio(text)
	switch {
	case p.Enthusiasm == "low" && ratio > 0.2:
		return []Issue{{
			Severity:   SeverityInfo,
			Message:    "High use of exclamation marks detected",
			Suggestion: "Brand voice prefers low enthusiasm - consider reducing exclamation marks",
		}}
	case p.Enthusiasm == "high" && ratio < 0.05:
		return []Issue{{
			Severity:   SeverityInfo,
			Message:    "Low use of exclamation marks detected",
			Suggestion: "Brand voice prefers high enthusiasm - consider adding more energy",
		}}
	}
	return nil
}

func checkAccessibility(doc *goquery.Document) CategoryReport {
	issues := []Issue{}

	missingAlt := doc.Find("img").FilterFunction(func(_ int, s *goquery.Selection) bool {
		alt, ok := s.Attr("alt")
		return !ok || alt == ""
	}).Length()
	if missingAlt > 0 {
		issues = append(issues, Issue{
			Severity:   SeverityError,
			Message:    fmt.Sprintf("%d image(s) missing alt text", missingAlt),
			Suggestion: "Add descriptive alt text to all images",
		})
	}

	emptyLinks := doc.Find("a").FilterFunction(func(_ int, s *goquery.Selection) bool {
		return len(strings.Fields(s.Text())) == 0
	}).Length()
	if emptyLinks > 0 {
		issues = append(issues, Issue{
			Severity:   SeverityError,
			Message:    fmt.Sprintf("%d link(s) without text content", emptyLinks),
			Suggestion: "Add descriptive text or aria-label to links",
		})
	}

	labelled := map[string]bool{}
	doc.Find("label[for]").Each(func(_ int, s *goquery.Selection) {
		labelled[s.AttrOr("for", "")] = true
	})
	unlabelled := doc.Find("input").FilterFunction(func(_ int, s *goquery.Selection) bool {
		if strings.EqualFold(s.AttrOr("type", ""), "hidden") {
			return false
		}
		if _, ok := s.Attr("aria-label"); ok {
			return false
		}
		id, ok := s.Attr("id")
		return !ok || !labelled[id]
	}).Length()
	if unlabelled > 0 {
		issues = append(issues, Issue{
			Severity:   SeverityWarning,
			Message:    fmt.Sprintf("%d form input(s) without labels", unlabelled),
			Suggestion: "Add <label> elements or aria-label attributes",
		})
	}

	switch h1 := doc.Find("h1").Length(); {
	case h1 == 0:
		issues = append(issues, Issue{
			Severity:   SeverityWarning,
			Message:    "No H1 heading found",
			Suggestion: "Add a main H1 heading to the page",
		})
	case h1 > 1:
		issues = append(issues, Issue{
			Severity:   SeverityWarning,
			Message:    fmt.Sprintf("Multiple H1 headings found (%d)", h1),
			Suggestion: "Use only one H1 per page",
		})
	}

	return CategoryReport{Status: statusFromSeverity(issues), Issues: issues, Score: penalize(issues, accessibilityPenalty)}
}

// TextFromHTML returns the visible text of markup with whitespace collapsed.
// Script and style contents are dropped.
func TextFromHTML(markup string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(markup))
	if err != nil {
		return ""
	}
	doc.Find("script, style, noscript").Remove()
	return strings.Join(strings.Fields(doc.Text()), " ")
}
