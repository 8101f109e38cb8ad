package gitrepo

import (
	"fmt"
	"regexp"
	"strings"
)

const (
	gitSuffixPatternConstant               = `\.git(#.*)?$`
	referencePatternTemplateConstant       = `^(?:https?://|git://|git\+ssh://|git\+https://)?(?:[^@]+@)?(%s)[:/]([^/]+/[^/]+?|[0-9]+)$`
	hostAlternationSeparatorConstant       = "|"
	httpsProtocolPrefixConstant            = "https://"
	pathSeparatorConstant                  = "/"
	referenceParseErrorTemplateConstant    = "%s: %s"
	requiredValueMessageConstant           = "value required"
	unrecognizedReferenceMessageConstant   = "not a recognised git repository reference"
	githubHostConstant                     = "github.com"
	githubGistHostConstant                 = "gist.github.com"
	referenceHostSubmatchIndexConstant     = 1
	referencePathSubmatchIndexConstant     = 2
	referenceExpectedSubmatchCountConstant = 3
)

var gitSuffixPattern = regexp.MustCompile(gitSuffixPatternConstant)

// DefaultHosts lists the hosting services recognised when no hosts are configured.
func DefaultHosts() []string {
	return []string{githubGistHostConstant, githubHostConstant}
}

// RepositoryReference is a repository reference reduced to the parts needed to address its web page.
// Owner is empty for gist references, whose Repository holds the numeric gist identifier.
type RepositoryReference struct {
	Host       string
	Owner      string
	Repository string
}

// ReferenceParseError indicates a repository reference could not be recognised.
type ReferenceParseError struct {
	Input   string
	Message string
}

// Error describes the parse failure.
func (parseError ReferenceParseError) Error() string {
	return fmt.Sprintf(referenceParseErrorTemplateConstant, parseError.Input, parseError.Message)
}

// Normalizer recognises repository references for a fixed set of hosts.
type Normalizer struct {
	referencePattern *regexp.Regexp
}

// NewNormalizer compiles a normalizer for the provided hosts, falling back to DefaultHosts when none are usable.
func NewNormalizer(hosts []string) *Normalizer {
	quotedHosts := make([]string, 0, len(hosts))
	for _, host := range hosts {
		trimmedHost := strings.TrimSpace(host)
		if len(trimmedHost) == 0 {
			continue
		}
		quotedHosts = append(quotedHosts, regexp.QuoteMeta(trimmedHost))
	}
	if len(quotedHosts) == 0 {
		for _, host := range DefaultHosts() {
			quotedHosts = append(quotedHosts, regexp.QuoteMeta(host))
		}
	}

	pattern := fmt.Sprintf(referencePatternTemplateConstant, strings.Join(quotedHosts, hostAlternationSeparatorConstant))
	return &Normalizer{referencePattern: regexp.MustCompile(pattern)}
}

// ParseRepositoryReference converts a declared repository url into a structured reference.
func (normalizer *Normalizer) ParseRepositoryReference(rawReference string) (RepositoryReference, error) {
	if len(rawReference) == 0 {
		return RepositoryReference{}, ReferenceParseError{Input: rawReference, Message: requiredValueMessageConstant}
	}

	strippedReference := gitSuffixPattern.ReplaceAllString(rawReference, "")
	submatches := normalizer.referencePattern.FindStringSubmatch(strippedReference)
	if len(submatches) != referenceExpectedSubmatchCountConstant {
		return RepositoryReference{}, ReferenceParseError{Input: rawReference, Message: unrecognizedReferenceMessageConstant}
	}

	host := submatches[referenceHostSubmatchIndexConstant]
	path := submatches[referencePathSubmatchIndexConstant]

	owner, repository, hasOwner := strings.Cut(path, pathSeparatorConstant)
	if !hasOwner {
		return RepositoryReference{Host: host, Repository: path}, nil
	}

	return RepositoryReference{Host: host, Owner: owner, Repository: repository}, nil
}

// NormalizeRepositoryURL returns the canonical page URL for rawReference, or false when the reference is not recognised.
func (normalizer *Normalizer) NormalizeRepositoryURL(rawReference string) (string, bool) {
	reference, parseError := normalizer.ParseRepositoryReference(rawReference)
	if parseError != nil {
		return "", false
	}
	return FormatPageURL(reference), true
}

// NormalizeRepositoryURL is a convenience wrapper building a one-off Normalizer for hosts.
func NormalizeRepositoryURL(rawReference string, hosts []string) (string, bool) {
	return NewNormalizer(hosts).NormalizeRepositoryURL(rawReference)
}

// FormatPageURL renders the https page URL for a repository reference.
func FormatPageURL(reference RepositoryReference) string {
	if len(reference.Owner) == 0 {
		return httpsProtocolPrefixConstant + reference.Host + pathSeparatorConstant + reference.Repository
	}
	return httpsProtocolPrefixConstant + reference.Host + pathSeparatorConstant + reference.Owner + pathSeparatorConstant + reference.Repository
}
