package guardrails

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const threeDeep = `<div><section><p>a</p><p>b</p></section><span>c</span></div>`

func TestInspect(t *testing.T) {
	st, err := Inspect(threeDeep, nil)
	require.NoError(t, err)
	assert.Equal(t, 3, st.MaxDepth)
	assert.Equal(t, 5, st.ElementCount)
	assert.Empty(t, st.Disallowed)
}

const fullDocument = `<!DOCTYPE html><html><head><title>x</title></head><body><div><p>hi</p></div></body></html>`

func TestInspect_Document(t *testing.T) {
	tests := []struct {
		name   string
		markup string
	}{
		{"doctype", fullDocument},
		{"html tag with leading space", "\n  <HTML><head><title>x</title></head><body><div><p>hi</p></div></body></HTML>"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			st, err := Inspect(tt.markup, DefaultAllowedTags)
			require.NoError(t, err)
			assert.Equal(t, 6, st.ElementCount)
			assert.Equal(t, 4, st.MaxDepth)
			assert.Equal(t, []string{"html", "head", "title", "body"}, st.Disallowed)
		})
	}
}

func TestInspect_FragmentUnchanged(t *testing.T) {
	st, err := Inspect(`<div><p>hi</p></div>`, DefaultAllowedTags)
	require.NoError(t, err)
	assert.Equal(t, 2, st.ElementCount)
	assert.Equal(t, 2, st.MaxDepth)
	assert.Empty(t, st.Disallowed)
}

func TestValidate_NestingOnly(t *testing.T) {
	issues := Validate(threeDeep, Guardrails{MaxNestingDepth: 2, MaxElementCount: 10})
	require.Len(t, issues, 1)
	assert.Equal(t, "Nesting depth (3) exceeds maximum (2)", issues[0])
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		markup string
		g      Guardrails
		want   []string
	}{
		{
			name:   "clean default",
			markup: `<section class="hero"><h1>Hi</h1><a href="#">Go</a></section>`,
			g:      Default(),
		},
		{
			name:   "element count",
			markup: `<p>1</p><p>2</p><p>3</p>`,
			g:      Guardrails{MaxElementCount: 2},
			want:   []string{"Element count (3) exceeds maximum (2)"},
		},
		{
			name:   "one issue per disallowed element",
			markup: `<div><script>x()</script><iframe></iframe><script></script></div>`,
			g:      Guardrails{AllowedTags: []string{"div"}},
			want: []string{
				"Disallowed tag found: script",
				"Disallowed tag found: iframe",
				"Disallowed tag found: script",
			},
		},
		{
			name:   "empty allow list permits everything",
			markup: `<marquee>old</marquee>`,
			g:      Guardrails{},
		},
		{
			name:   "malformed markup is tolerated",
			markup: `<div><p>unclosed<div>`,
			g:      Default(),
		},
		{
			name:   "document wrapper is flagged",
			markup: fullDocument,
			g:      Default(),
			want: []string{
				"Disallowed tag found: html",
				"Disallowed tag found: head",
				"Disallowed tag found: title",
				"Disallowed tag found: body",
			},
		},
		{
			name:   "svg children are checked",
			markup: `<svg><path d="M0 0"></path><circle r="1"></circle></svg>`,
			g:      Default(),
			want:   []string{"Disallowed tag found: circle"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Validate(tt.markup, tt.g))
		})
	}
}

func TestValidate_DeepNesting(t *testing.T) {
	markup := strings.Repeat("<div>", 12) + strings.Repeat("</div>", 12)
	issues := Validate(markup, Default())
	assert.Equal(t, []string{"Nesting depth (12) exceeds maximum (10)"}, issues)
}

func TestDefault(t *testing.T) {
	g := Default()
	assert.Equal(t, 10, g.MaxNestingDepth)
	assert.Equal(t, 500, g.MaxElementCount)
	assert.Contains(t, g.AllowedTags, "option")
	assert.Len(t, g.AllowedTags, 30)
}
