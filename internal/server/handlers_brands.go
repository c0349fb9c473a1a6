package server

import (
	"net/http"
)

func (s *Server) handleListBrands(w http.ResponseWriter, r *http.Request) {
	if s.brands == nil {
		s.fail(w, &ErrUnavailable{Feature: "brand store"})
		return
	}
	brands, err := s.brands.ListProfiles(r.Context())
	if err != nil {
		s.fail(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, map[string]any{
		"brands": brands,
		"count":  len(brands),
	})
}

func (s *Server) handleGetBrand(w http.ResponseWriter, r *http.Request) {
	p, err := s.profile(r.Context(), r.PathValue("slug"))
	if err != nil {
		s.fail(w, err)
		return
	}

	resp := map[string]any{"profile": p}
	if p.Visual != nil {
		resp["tailwind"] = p.Visual.TailwindConfig()
	}
	if p.Voice != nil {
		resp["voice_description"] = p.Voice.Description()
	}
	s.jsonResponse(w, http.StatusOK, resp)
}

// handleBrandCSS serves the brand's CSS custom properties.
func (s *Server) handleBrandCSS(w http.ResponseWriter, r *http.Request) {
	slug := r.PathValue("slug")
	p, err := s.profile(r.Context(), slug)
	if err != nil {
		s.fail(w, err)
		return
	}
	if p.Visual == nil {
		s.fail(w, &ErrNotFound{Resource: "visual identity", Key: slug})
		return
	}

	w.Header().Set("Content-Type", "text/css; charset=utf-8")
	w.Header().Set("Cache-Control", "public, max-age=300")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte(p.Visual.CSSVariables())); err != nil {
		s.log.Error(err, "failed to write brand CSS")
	}
}
