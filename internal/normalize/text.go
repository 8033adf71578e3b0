// Package normalize reshapes heterogeneous vendor responses into the
// canonical forms the rest of the relay works with.
package normalize

import (
	"encoding/json"
	"fmt"
	"strings"

	"docpilot/internal/domain"
)

type textElement struct {
	Content struct {
		Text string `json:"text"`
	} `json:"content"`
}

type parseResponse struct {
	Elements json.RawMessage `json:"elements"`
	Content  *struct {
		Text string `json:"text"`
		HTML string `json:"html"`
	} `json:"content"`
	HTML string `json:"html"`
}

// ExtractText recovers the plain-text body of a document-parse response.
// Strategies are tried in order and the first non-blank result wins:
// elements[].content.text, content.text, content.html, html.
func ExtractText(body []byte) (domain.NormalizedDocument, error) {
	var resp parseResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return domain.NormalizedDocument{}, fmt.Errorf("%w: response is not a JSON object: %v", domain.ErrNoTextExtracted, err)
	}

	if text, ok := elementsText(resp.Elements); ok {
		return domain.NormalizedDocument{PlainText: text, Strategy: domain.StrategyElements}, nil
	}
	if resp.Content != nil && strings.TrimSpace(resp.Content.Text) != "" {
		return domain.NormalizedDocument{PlainText: resp.Content.Text, Strategy: domain.StrategyContentText}, nil
	}
	if resp.Content != nil && resp.Content.HTML != "" {
		if text := StripHTML(resp.Content.HTML); text != "" {
			return domain.NormalizedDocument{PlainText: text, Strategy: domain.StrategyContentHTML}, nil
		}
	}
	if resp.HTML != "" {
		if text := StripHTML(resp.HTML); text != "" {
			return domain.NormalizedDocument{PlainText: text, Strategy: domain.StrategyHTML}, nil
		}
	}
	return domain.NormalizedDocument{}, domain.ErrNoTextExtracted
}

// elementsText joins element texts with newlines. Elements without text
// contribute an empty line so positions are preserved.
func elementsText(raw json.RawMessage) (string, bool) {
	if len(raw) == 0 {
		return "", false
	}
	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		return "", false
	}

	texts := make([]string, len(items))
	for i, item := range items {
		var el textElement
		if err := json.Unmarshal(item, &el); err == nil {
			texts[i] = el.Content.Text
		}
	}
	joined := strings.Join(texts, "\n")
	if strings.TrimSpace(joined) == "" {
		return "", false
	}
	return joined, true
}
