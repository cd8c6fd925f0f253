package newsletter

import (
	"fmt"
	"strings"
)

// Issue is a single newsletter edition. It is transient: nothing is
// persisted beyond the idempotency outcome of publishing it.
type Issue struct {
	Title       string `json:"title"`
	TextContent string `json:"text_content"`
	HTMLContent string `json:"html_content"`
}

// Validate checks that every part of the issue is present.
func (i Issue) Validate() error {
	if strings.TrimSpace(i.Title) == "" {
		return fmt.Errorf("%w: title is required", ErrInvalidIssue)
	}
	if strings.TrimSpace(i.TextContent) == "" {
		return fmt.Errorf("%w: text_content is required", ErrInvalidIssue)
	}
	if strings.TrimSpace(i.HTMLContent) == "" {
		return fmt.Errorf("%w: html_content is required", ErrInvalidIssue)
	}
	return nil
}
