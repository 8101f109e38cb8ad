package gitrepo

import (
	"net/url"
	"strings"
	"unicode"
)

// IsWellFormedURL reports whether candidate parses as an absolute URL.
// Surrounding whitespace is ignored; embedded whitespace disqualifies the candidate.
func IsWellFormedURL(candidate string) bool {
	trimmedCandidate := strings.TrimSpace(candidate)
	if len(trimmedCandidate) == 0 {
		return false
	}
	if strings.IndexFunc(trimmedCandidate, unicode.IsSpace) >= 0 {
		return false
	}

	parsedURL, parseError := url.Parse(trimmedCandidate)
	if parseError != nil {
		return false
	}
	if len(parsedURL.Scheme) == 0 {
		return false
	}
	return len(parsedURL.Host) > 0 || len(parsedURL.Opaque) > 0
}

// IsSecureURL reports whether candidate uses the https scheme.
func IsSecureURL(candidate string) bool {
	return strings.HasPrefix(candidate, httpsProtocolPrefixConstant)
}
