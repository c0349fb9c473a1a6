package server

import (
	"net/http"
	"strings"

	"github.com/alexramsey92/ai-web-design-workbench/internal/brand"
	"github.com/alexramsey92/ai-web-design-workbench/internal/color"
	"github.com/alexramsey92/ai-web-design-workbench/internal/compliance"
	"github.com/alexramsey92/ai-web-design-workbench/internal/fetch"
	"github.com/alexramsey92/ai-web-design-workbench/internal/validation"
)

// ScoreRequest is the body of POST /score. Exactly one of HTML and URL is
// required. The brand comes from a stored slug or inline identity values;
// inline values win.
type ScoreRequest struct {
	HTML    string                `json:"html,omitempty"`
	Text    string                `json:"text,omitempty"`
	URL     string                `json:"url,omitempty"`
	Browser bool                  `json:"browser,omitempty"`
	Brand   string                `json:"brand,omitempty"`
	Visual  *brand.VisualIdentity `json:"visual_identity,omitempty"`
	Voice   *brand.VoiceProfile   `json:"voice_profile,omitempty"`
}

// ScoreResponse is the body of a successful POST /score.
type ScoreResponse struct {
	compliance.Report
	URL      string `json:"url,omitempty"`
	Rendered bool   `json:"rendered,omitempty"`
}

func (s *Server) handleScore(w http.ResponseWriter, r *http.Request) {
	var req ScoreRequest
	if _, err := decodeJSON(w, r, &req); err != nil {
		s.fail(w, err)
		return
	}

	hasHTML := strings.TrimSpace(req.HTML) != ""
	hasURL := strings.TrimSpace(req.URL) != ""
	if hasHTML == hasURL {
		s.fail(w, validation.New("html", "provide exactly one of html or url"))
		return
	}
	if req.Visual != nil {
		if err := validation.Struct(req.Visual); err != nil {
			s.fail(w, err)
			return
		}
	}
	if req.Voice != nil {
		if err := validation.Struct(req.Voice); err != nil {
			s.fail(w, err)
			return
		}
	}

	visual, voice := req.Visual, req.Voice
	if req.Brand != "" {
		p, err := s.profile(r.Context(), req.Brand)
		if err != nil {
			s.fail(w, err)
			return
		}
		if visual == nil {
			visual = p.Visual
		}
		if voice == nil {
			voice = p.Voice
		}
	}

	resp := ScoreResponse{}
	markup, text := req.HTML, req.Text
	if hasURL {
		page, err := s.fetch(r.Context(), req.URL, fetch.PageOptions{
			Browser:         req.Browser,
			BrowserFallback: req.Browser,
			Log:             s.log,
		})
		if err != nil {
			s.fail(w, err)
			return
		}
		markup, text = page.HTML, page.Text
		resp.URL = page.URL
		resp.Rendered = page.Rendered
	}
	if text == "" {
		text = compliance.TextFromHTML(markup)
	}

	resp.Report = compliance.Evaluate(visual, voice, markup, text)
	s.log.WithFields(map[string]any{
		"score":  resp.OverallScore,
		"status": resp.OverallStatus,
		"issues": resp.TotalIssues,
	}).Info("page scored")
	s.jsonResponse(w, http.StatusOK, resp)
}

// PaletteRequest is the body of POST /palette. Primary derives a palette by
// hue rotation; otherwise Industry picks a curated one.
type PaletteRequest struct {
	Primary  string     `json:"primary,omitempty"`
	Mood     color.Mood `json:"mood,omitempty"`
	Industry string     `json:"industry,omitempty"`
	Pick     int        `json:"pick,omitempty"`
}

// PaletteResponse is the body of a successful POST /palette.
type PaletteResponse struct {
	Palette color.Palette  `json:"palette"`
	Slots   []color.Slot   `json:"slots"`
	Shades  map[int]string `json:"shades"`
	// Contrast is the primary color against white.
	Contrast   float64 `json:"contrast_on_white"`
	Accessible bool    `json:"accessible_on_white"`
}

func (s *Server) handlePalette(w http.ResponseWriter, r *http.Request) {
	var req PaletteRequest
	if _, err := decodeJSON(w, r, &req); err != nil {
		s.fail(w, err)
		return
	}

	var (
		p   color.Palette
		err error
	)
	switch {
	case req.Primary != "":
		p, err = color.PaletteFromPrimary(req.Primary, req.Mood)
		if err != nil {
			s.fail(w, validation.New("primary", err.Error()))
			return
		}
	case req.Industry != "":
		p = color.SuggestByIndustry(req.Industry, req.Pick)
	default:
		s.fail(w, validation.New("primary", "provide a primary color or an industry"))
		return
	}

	shades, err := color.ShadeRamp(p.Primary)
	if err != nil {
		s.fail(w, err)
		return
	}
	ratio, err := color.Contrast(p.Primary, "#FFFFFF")
	if err != nil {
		s.fail(w, err)
		return
	}

	s.jsonResponse(w, http.StatusOK, PaletteResponse{
		Palette:    p,
		Slots:      p.Slots(),
		Shades:     shades,
		Contrast:   ratio,
		Accessible: color.ValidateContrast(p.Primary, "#FFFFFF"),
	})
}
