package subscriber

import (
	"fmt"
	"net/mail"
	"strings"
	"unicode/utf8"
)

// maxNameLength bounds display names; anything longer is hostile input.
const maxNameLength = 256

// forbiddenNameChars would allow header or markup injection if they reached
// an email body or a provider API.
const forbiddenNameChars = `/()"<>\{}`

// ParseEmail validates an address for typical web use and returns it
// trimmed. The rules go beyond RFC 5322 parsing: the local part must be
// non-empty and the domain must be dotted, which rejects addresses like
// "user@localhost" that no public mailbox provider would accept.
func ParseEmail(s string) (string, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", fmt.Errorf("%w: email is empty", ErrInvalidEmail)
	}

	addr, err := mail.ParseAddress(s)
	if err != nil {
		return "", fmt.Errorf("%w: %q is not a valid email address", ErrInvalidEmail, s)
	}

	// mail.ParseAddress accepts display names ("A <a@b.c>"); a subscriber
	// email must be the bare address.
	if addr.Address != s {
		return "", fmt.Errorf("%w: %q is not a bare email address", ErrInvalidEmail, s)
	}

	local, domain, ok := strings.Cut(addr.Address, "@")
	if !ok || local == "" {
		return "", fmt.Errorf("%w: %q is missing a local part", ErrInvalidEmail, s)
	}
	if !strings.Contains(domain, ".") || strings.HasPrefix(domain, ".") || strings.HasSuffix(domain, ".") {
		return "", fmt.Errorf("%w: %q has an invalid domain", ErrInvalidEmail, s)
	}
	for _, part := range strings.Split(domain, ".") {
		if part == "" {
			return "", fmt.Errorf("%w: %q has an invalid domain", ErrInvalidEmail, s)
		}
	}

	return addr.Address, nil
}

// ParseName validates a display name and returns it trimmed.
func ParseName(s string) (string, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", fmt.Errorf("%w: name is empty", ErrInvalidName)
	}
	if utf8.RuneCountInString(s) > maxNameLength {
		return "", fmt.Errorf("%w: name exceeds %d characters", ErrInvalidName, maxNameLength)
	}
	if strings.ContainsAny(s, forbiddenNameChars) {
		return "", fmt.Errorf("%w: name contains forbidden characters", ErrInvalidName)
	}
	return s, nil
}
