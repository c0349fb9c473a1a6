package brand

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"unicode"

	"github.com/alexramsey92/ai-web-design-workbench/internal/schemas"
	"github.com/alexramsey92/ai-web-design-workbench/internal/validation"
)

// Profile is a brand with its optional visual identity and voice.
type Profile struct {
	Name             string          `json:"name" validate:"required,max=255"`
	Slug             string          `json:"slug"`
	Tagline          string          `json:"tagline,omitempty"`
	Description      string          `json:"description,omitempty"`
	Industry         string          `json:"industry,omitempty" validate:"max=255"`
	TargetAudience   []string        `json:"target_audience,omitempty"`
	ValueProposition string          `json:"value_proposition,omitempty"`
	Personality      []string        `json:"brand_personality,omitempty"`
	Visual           *VisualIdentity `json:"visual_identity,omitempty"`
	Voice            *VoiceProfile   `json:"voice_profile,omitempty"`
}

// Validate checks field constraints on the profile and its parts.
func (p *Profile) Validate() error {
	return validation.Struct(p)
}

// ParseProfile decodes a brand profile document after checking it against
// the brand profile schema. A missing slug is derived from the name.
func ParseProfile(data []byte) (*Profile, error) {
	if err := schemas.Validate(schemas.BrandProfile, data); err != nil {
		return nil, err
	}

	var p Profile
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("failed to parse brand profile: %w", err)
	}
	if p.Slug == "" {
		p.Slug = Slugify(p.Name)
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return &p, nil
}

// LoadProfile reads and parses a brand profile JSON file.
func LoadProfile(path string) (*Profile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read brand profile: %w", err)
	}
	return ParseProfile(data)
}

// Slugify lowercases s and joins its alphanumeric runs with hyphens.
func Slugify(s string) string {
	var b strings.Builder
	pendingDash := false
	for _, r := range strings.ToLower(s) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			if pendingDash && b.Len() > 0 {
				b.WriteByte('-')
			}
			pendingDash = false
			b.WriteRune(r)
			continue
		}
		pendingDash = true
	}
	return b.String()
}
