package db

import (
	"encoding/json"
	"sort"
	"time"

	"github.com/alexramsey92/ai-web-design-workbench/internal/brand"
)

// BrandSummary is one row of ListProfiles.
type BrandSummary struct {
	ID         int64     `json:"id"`
	Name       string    `json:"name"`
	Slug       string    `json:"slug"`
	Industry   string    `json:"industry,omitempty"`
	IsTemplate bool      `json:"is_template"`
	UpdatedAt  time.Time `json:"updated_at"`
}

type brandRow struct {
	ID               int64
	Name             string
	Slug             string
	Tagline          *string
	Description      *string
	Industry         *string
	TargetAudience   []byte
	ValueProposition *string
	Personality      []byte
}

type visualRow struct {
	PrimaryColor   string
	SecondaryColor *string
	AccentColor    *string
	SuccessColor   string
	WarningColor   string
	ErrorColor     string
	Neutral50      string
	Neutral100     string
	Neutral900     string
	HeadingFont    string
	HeadingFontURL *string
	BodyFont       string
	BodyFontURL    *string
	CodeFont       string
	SpacingUnit    int
	BorderRadiusSM int
	BorderRadiusMD int
	BorderRadiusLG int
	UseShadows     bool
	UseGradients   bool
	UseAnimations  bool
}

type voiceRow struct {
	Tone               string
	Formality          string
	Enthusiasm         string
	PreferredPerson    string
	SentenceLength     string
	UseContractions    bool
	UseEmojis          bool
	UseTechnicalJargon bool
	PreferredTerms     []byte
	AvoidTerms         []byte
	BrandSpecificTerms []byte
	KeyMessages        *string
	ValueProps         []byte
}

func (r brandRow) profile() *brand.Profile {
	return &brand.Profile{
		Name:             r.Name,
		Slug:             r.Slug,
		Tagline:          deref(r.Tagline),
		Description:      deref(r.Description),
		Industry:         deref(r.Industry),
		TargetAudience:   stringList(r.TargetAudience),
		ValueProposition: deref(r.ValueProposition),
		Personality:      stringList(r.Personality),
	}
}

func (r visualRow) identity() *brand.VisualIdentity {
	return &brand.VisualIdentity{
		PrimaryColor:   r.PrimaryColor,
		SecondaryColor: deref(r.SecondaryColor),
		AccentColor:    deref(r.AccentColor),
		SuccessColor:   r.SuccessColor,
		WarningColor:   r.WarningColor,
		ErrorColor:     r.ErrorColor,
		Neutral50:      r.Neutral50,
		Neutral100:     r.Neutral100,
		Neutral900:     r.Neutral900,
		HeadingFont:    r.HeadingFont,
		HeadingFontURL: deref(r.HeadingFontURL),
		BodyFont:       r.BodyFont,
		BodyFontURL:    deref(r.BodyFontURL),
		CodeFont:       r.CodeFont,
		SpacingUnit:    r.SpacingUnit,
		BorderRadiusSM: r.BorderRadiusSM,
		BorderRadiusMD: r.BorderRadiusMD,
		BorderRadiusLG: r.BorderRadiusLG,
		UseShadows:     r.UseShadows,
		UseGradients:   r.UseGradients,
		UseAnimations:  r.UseAnimations,
	}
}

func (r voiceRow) profile() *brand.VoiceProfile {
	return &brand.VoiceProfile{
		Tone:               r.Tone,
		Formality:          r.Formality,
		Enthusiasm:         r.Enthusiasm,
		PreferredPerson:    r.PreferredPerson,
		SentenceLength:     r.SentenceLength,
		UseContractions:    r.UseContractions,
		UseEmojis:          r.UseEmojis,
		UseTechnicalJargon: r.UseTechnicalJargon,
		PreferredTerms:     stringList(r.PreferredTerms),
		AvoidTerms:         stringList(r.AvoidTerms),
		BrandSpecificTerms: stringList(r.BrandSpecificTerms),
		KeyMessages:        deref(r.KeyMessages),
		ValueProps:         stringList(r.ValueProps),
	}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// stringList decodes a JSON column holding either an array of strings or an
// object of named entries. Objects yield their string values ordered by key.
// Anything else decodes to nil.
func stringList(raw []byte) []string {
	if len(raw) == 0 {
		return nil
	}

	var list []string
	if err := json.Unmarshal(raw, &list); err == nil {
		return list
	}

	var obj map[string]any
	if err := json.Unmarshal(raw, &obj); err != nil || len(obj) == 0 {
		return nil
	}
	keys := make([]string, 0, len(obj))
	for k := range obj {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	var out []string
	for _, k := range keys {
		if s, ok := obj[k].(string); ok && s != "" {
			out = append(out, s)
		}
	}
	return out
}
