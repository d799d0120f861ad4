package validation

import (
	"regexp"
	"strings"
)

var htmlTagPattern = regexp.MustCompile(`<[^>]*>`)

// SanitizeString strips HTML tags, drops C0/C1 control characters and trims
// surrounding whitespace. The result is stable under repeated application.
func SanitizeString(s string) string {
	s = htmlTagPattern.ReplaceAllString(s, "")
	s = strings.Map(func(r rune) rune {
		if r < 0x20 || (r >= 0x7f && r < 0xa0) {
			return -1
		}
		return r
	}, s)
	return strings.TrimSpace(s)
}

// SanitizeInput returns a copy of the payload with every string-valued field
// sanitized. Runs before validation on the create/update path.
func SanitizeInput(in TaskInput) TaskInput {
	out := in
	out.Title = sanitizePtr(in.Title)
	out.Description = sanitizePtr(in.Description)
	out.Status = sanitizePtr(in.Status)
	out.Priority = sanitizePtr(in.Priority)
	out.DueDate = sanitizePtr(in.DueDate)
	return out
}

func sanitizePtr(s *string) *string {
	if s == nil {
		return nil
	}
	clean := SanitizeString(*s)
	return &clean
}
