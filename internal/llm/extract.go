package llm

import (
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strings"
)

var (
	htmlFence = regexp.MustCompile("(?s)```html\\s*(.*?)\\s*```")
	anyFence  = regexp.MustCompile("(?s)```\\s*(.*?)\\s*```")
)

// StripCodeFence returns the contents of the first ```html block in text,
// else of the first untagged block, else text itself. The result is trimmed.
func StripCodeFence(text string) string {
	if m := htmlFence.FindStringSubmatch(text); m != nil {
		return strings.TrimSpace(m[1])
	}
	if m := anyFence.FindStringSubmatch(text); m != nil {
		return strings.TrimSpace(m[1])
	}
	return strings.TrimSpace(text)
}

// ExtractHTML pulls page markup out of a backend response body. Two shapes
// are understood: a messages response whose content[0].text carries the
// model output, and a generation server response with an html field.
func ExtractHTML(body []byte) (string, error) {
	var resp struct {
		Content []struct {
			Type string `json:"type"`
			Text string `json:"text"`
		} `json:"content"`
		HTML *string `json:"html"`
	}
	if err := json.Unmarshal(body, &resp); err != nil {
		return "", fmt.Errorf("invalid response: %w", err)
	}

	if len(resp.Content) > 0 && resp.Content[0].Text != "" {
		return StripCodeFence(resp.Content[0].Text), nil
	}
	if resp.HTML != nil {
		return *resp.HTML, nil
	}
	return "", errors.New("invalid response: missing content or html field")
}
