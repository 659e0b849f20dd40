package toolbar

import (
	"regexp"
	"strings"
)

var (
	schemeRe = regexp.MustCompile(`^\w+?://`)
	mailRe   = regexp.MustCompile(`^.*@.*\..+$`)
)

// NormalizeLink turns what a user typed into the link input into an href.
// Bare addresses get "mailto:", scheme-less hosts get "http://", and
// relative or fragment links are kept. An empty result means unlink.
func NormalizeLink(raw string) string {
	v := strings.TrimSpace(raw)
	if v == "" {
		return ""
	}
	if isMail(v) {
		return "mailto:" + v
	}
	if needsScheme(v) {
		return "http://" + v
	}
	return v
}

func isMail(v string) bool {
	if strings.HasPrefix(v, "mailto:") {
		return false
	}
	if len(v) > 1 && strings.ContainsAny(v[1:], "/#?") {
		return false
	}
	return mailRe.MatchString(v)
}

func needsScheme(v string) bool {
	if schemeRe.MatchString(v) {
		return false
	}
	for _, p := range []string{"mailto:", "/", "./", "?", "#"} {
		if strings.HasPrefix(v, p) {
			return false
		}
	}
	return true
}
