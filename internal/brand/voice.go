package brand

import (
	"encoding/json"
	"strings"
)

// VoiceProfile describes how a brand writes.
type VoiceProfile struct {
	Tone            string `json:"tone" validate:"oneof=professional casual friendly authoritative playful serious inspirational"`
	Formality       string `json:"formality" validate:"oneof=very_formal formal neutral casual very_casual"`
	Enthusiasm      string `json:"enthusiasm" validate:"oneof=low moderate high"`
	PreferredPerson string `json:"preferred_person" validate:"oneof=first second third mixed"`
	SentenceLength  string `json:"sentence_length" validate:"oneof=short medium long varied"`

	UseContractions    bool `json:"use_contractions"`
	UseEmojis          bool `json:"use_emojis"`
	UseTechnicalJargon bool `json:"use_technical_jargon"`

	PreferredTerms     []string `json:"preferred_terms,omitempty"`
	AvoidTerms         []string `json:"avoid_terms,omitempty"`
	BrandSpecificTerms []string `json:"brand_specific_terms,omitempty"`
	KeyMessages        string   `json:"key_messages,omitempty"`
	ValueProps         []string `json:"value_props,omitempty"`
}

// DefaultVoiceProfile returns the voice new brands start from.
func DefaultVoiceProfile() VoiceProfile {
	return VoiceProfile{
		Tone:            "professional",
		Formality:       "neutral",
		Enthusiasm:      "moderate",
		PreferredPerson: "second",
		SentenceLength:  "varied",
		UseContractions: true,
	}
}

// UnmarshalJSON decodes over DefaultVoiceProfile.
func (p *VoiceProfile) UnmarshalJSON(data []byte) error {
	type plain VoiceProfile
	v := plain(DefaultVoiceProfile())
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*p = VoiceProfile(v)
	return nil
}

// Description summarizes the voice in one line.
func (p VoiceProfile) Description() string {
	return p.Tone + ", " + p.Formality + ", " + p.Enthusiasm + " enthusiasm"
}

// AIInstructions renders the profile as newline-separated writing rules for
// a generation backend.
func (p VoiceProfile) AIInstructions() string {
	lines := []string{
		"Tone: " + p.Tone,
		"Formality: " + p.Formality,
		"Enthusiasm: " + p.Enthusiasm,
		"Use " + p.PreferredPerson + " person perspective",
		"Sentence length: " + p.SentenceLength,
	}

	if p.UseContractions {
		lines = append(lines, "Use contractions (don't, can't, we're)")
	} else {
		lines = append(lines, "Avoid contractions (do not, cannot, we are)")
	}
	if p.UseEmojis {
		lines = append(lines, "You may use emojis appropriately")
	}
	if p.UseTechnicalJargon {
		lines = append(lines, "Technical jargon is acceptable")
	} else {
		lines = append(lines, "Avoid technical jargon, use plain language")
	}

	if len(p.PreferredTerms) > 0 {
		lines = append(lines, "Preferred terms: "+strings.Join(p.PreferredTerms, ", "))
	}
	if len(p.AvoidTerms) > 0 {
		lines = append(lines, "Avoid these terms: "+strings.Join(p.AvoidTerms, ", "))
	}
	if p.KeyMessages != "" {
		lines = append(lines, "Key messages to reinforce: "+p.KeyMessages)
	}
	return strings.Join(lines, "\n")
}
