package shops

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

var ErrInvalidDomain = errors.New("invalid shop domain")

const DefaultSuffix = "myshopify.com"

var labelRe = regexp.MustCompile(`^[a-z0-9][a-z0-9-]*$`)

// NormalizeDomain turns user input such as "Acme", "acme.myshopify.com" or
// "https://acme.myshopify.com/admin" into "acme.myshopify.com".
// An empty suffix means DefaultSuffix.
func NormalizeDomain(raw, suffix string) (string, error) {
	if suffix == "" {
		suffix = DefaultSuffix
	}
	suffix = strings.ToLower(strings.Trim(suffix, ". "))
	d := strings.ToLower(strings.TrimSpace(raw))
	if i := strings.Index(d, "://"); i >= 0 {
		d = d[i+3:]
	}
	if i := strings.IndexAny(d, "/?#"); i >= 0 {
		d = d[:i]
	}
	if i := strings.Index(d, ":"); i >= 0 {
		d = d[:i]
	}
	if !strings.Contains(d, ".") {
		d = d + "." + suffix
	}
	name, ok := strings.CutSuffix(d, "."+suffix)
	if !ok || !labelRe.MatchString(name) {
		return "", fmt.Errorf("%w: %q", ErrInvalidDomain, raw)
	}
	return d, nil
}
