package validation

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sample struct {
	Type     string   `json:"type" validate:"required,page_type"`
	Level    string   `json:"style_level" validate:"omitempty,style_level"`
	Sections []string `json:"sections" validate:"omitempty,dive,section"`
	Color    string   `json:"color" validate:"omitempty,hexcolor"`
	Prompt   string   `json:"prompt" validate:"omitempty,min=10,max=1000"`
}

func TestStruct_Valid(t *testing.T) {
	err := Struct(sample{
		Type:     "landing_page",
		Level:    "mid",
		Sections: []string{"hero", "stats", "pricing"},
		Color:    "#3B82F6",
		Prompt:   "a coffee roastery in Portland",
	})
	assert.NoError(t, err)
}

func TestStruct_FieldErrors(t *testing.T) {
	err := Struct(sample{
		Type:     "blog",
		Level:    "ultra",
		Sections: []string{"hero", "bogus"},
		Color:    "blue",
		Prompt:   "short",
	})
	require.Error(t, err)

	var verr *Error
	require.True(t, errors.As(err, &verr))

	byField := map[string]FieldError{}
	for _, f := range verr.Fields {
		byField[f.Field] = f
	}
	assert.Equal(t, "page_type", byField["type"].Tag)
	assert.Equal(t, "style_level", byField["style_level"].Tag)
	assert.Equal(t, "section", byField["sections[1]"].Tag)
	assert.Contains(t, byField["sections[1]"].Message, "bogus")
	assert.Equal(t, "hexcolor", byField["color"].Tag)
	assert.Equal(t, "must be at least 10", byField["prompt"].Message)
	assert.Len(t, verr.Fields, 5)
}

func TestStruct_Required(t *testing.T) {
	err := Struct(sample{})
	var verr *Error
	require.ErrorAs(t, err, &verr)
	require.Len(t, verr.Fields, 1)
	assert.Equal(t, "type", verr.Fields[0].Field)
	assert.Contains(t, verr.Error(), "type: is required")
}

func TestKnownSection(t *testing.T) {
	assert.True(t, KnownSection("testimonials"))
	assert.True(t, KnownSection(SectionPricing))
	assert.False(t, KnownSection("bogus"))
}

func TestNew(t *testing.T) {
	err := New("prompt", "must not be blank")
	assert.Equal(t, "validation error: invalid request: prompt: must not be blank", err.Error())
}
