package normalize

import (
	"html"
	"regexp"
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

var (
	strictPolicyOnce sync.Once
	strictPolicy     *bluemonday.Policy

	blockTag    = regexp.MustCompile(`(?i)<\s*/?\s*(p|div|br|li|tr|table|h[1-6])\b[^>]*>`)
	inlineSpace = regexp.MustCompile(`[ \t\f\v\r\x{00A0}]+`)
)

// StrictHTMLPolicy returns a singleton bluemonday policy that strips every
// element and attribute.
func StrictHTMLPolicy() *bluemonday.Policy {
	strictPolicyOnce.Do(func() {
		strictPolicy = bluemonday.StrictPolicy()
	})
	return strictPolicy
}

// StripHTML converts markup to plain text. Entities are decoded first so
// entity-encoded markup is stripped with the rest. Block-level tags become
// line breaks, every other tag is removed, and whitespace is collapsed so the
// result never contains two consecutive blank lines.
func StripHTML(s string) string {
	if strings.TrimSpace(s) == "" {
		return ""
	}
	s = html.UnescapeString(s)
	s = blockTag.ReplaceAllString(s, "\n")
	// The policy escapes the text it keeps.
	s = html.UnescapeString(StrictHTMLPolicy().Sanitize(s))
	return collapseWhitespace(s)
}

func collapseWhitespace(s string) string {
	lines := strings.Split(s, "\n")
	out := make([]string, 0, len(lines))
	blank := false
	for _, line := range lines {
		line = strings.TrimSpace(inlineSpace.ReplaceAllString(line, " "))
		if line == "" {
			if blank || len(out) == 0 {
				continue
			}
			blank = true
			out = append(out, "")
			continue
		}
		blank = false
		out = append(out, line)
	}
	return strings.TrimSpace(strings.Join(out, "\n"))
}
