package gonewton

import (
	"fmt"
	"regexp"
	"strings"
)

var functionPrefix = regexp.MustCompile(`(?i)^\s*(?:y|f\s*\(\s*x\s*\))\s*=\s*`)

// Normalize rewrites equation text into a single expression whose zero is
// the root. "y = e" and "f(x) = e" lose their prefix; "A = B" becomes
// "(A) - (B)". Text without '=' passes through trimmed.
func Normalize(text string) (string, error) {
	s := strings.TrimSpace(text)
	s = functionPrefix.ReplaceAllString(s, "")
	s = strings.TrimSpace(s)
	if s == "" {
		return "", ErrEmptyFunction
	}

	switch strings.Count(s, "=") {
	case 0:
		return s, nil
	case 1:
		left, right, _ := strings.Cut(s, "=")
		left, right = strings.TrimSpace(left), strings.TrimSpace(right)
		if left == "" || right == "" {
			return "", fmt.Errorf("%w: equation %q has an empty side", ErrEmptyFunction, s)
		}
		return "(" + left + ") - (" + right + ")", nil
	}
	return "", fmt.Errorf("%w: %q", ErrMultipleEquals, s)
}
