package pages

import (
	"context"
	"fmt"
	"strings"

	"github.com/temirov/npm-pack/internal/gitrepo"
	"github.com/temirov/npm-pack/internal/registry"
)

const (
	// DefaultRegistryBaseURL hosts the primary registry pages.
	DefaultRegistryBaseURL = "https://npmjs.com"
	// DefaultAlternateRegistryBaseURL hosts the alternate registry pages.
	DefaultAlternateRegistryBaseURL = "https://yarnpkg.com"
	// DefaultRepositoryBaseURL hosts source-repository pages addressed by slug.
	DefaultRepositoryBaseURL = "https://github.com"

	registryPageTemplateConstant            = "%s/package/%s"
	alternateRegistryPageTemplateConstant   = "%s/package?name=%s"
	repositoryPageTemplateConstant          = "%s/%s/%s"
	slugSeparatorConstant                   = "/"
	baseURLTrailingSeparatorConstant        = "/"
	notGitPageDiagnosticTemplateConstant    = "URL specified in the repository at %s does not point to a git page."
	invalidURLDiagnosticTemplateConstant    = "URL specified in the repository at %s is invalid."
	malformedSlugDiagnosticTemplateConstant = "%s is not an author/repo slug; the opened page is likely broken."
	unsupportedModeTemplateConstant         = "unsupported page mode: %s"
)

// Origin records which rule produced a ResolvedURL.
type Origin string

// Supported origins.
const (
	OriginRegistry                 Origin = Origin("registry")
	OriginAlternateRegistry        Origin = Origin("alternate-registry")
	OriginSourceRepository         Origin = Origin("source-repository")
	OriginSourceRepositoryFallback Origin = Origin("source-repository-fallback")
	OriginExplicitSlug             Origin = Origin("explicit-slug")
)

// DiagnosticKind classifies a non-fatal resolution problem.
type DiagnosticKind string

// Supported diagnostic kinds.
const (
	DiagnosticMalformedRepositoryReference DiagnosticKind = DiagnosticKind("malformed-repository-reference")
	DiagnosticMalformedExplicitSlug        DiagnosticKind = DiagnosticKind("malformed-explicit-slug")
)

// Diagnostic is a user-facing warning attached to a ResolvedURL.
type Diagnostic struct {
	Kind    DiagnosticKind
	Message string
}

// ResolvedURL is a destination computed for one package name.
type ResolvedURL struct {
	PackageName string
	URL         string
	Origin      Origin
	Diagnostics []Diagnostic
}

// MetadataFetcher retrieves registry metadata for a package.
type MetadataFetcher interface {
	FetchPackageMetadata(executionContext context.Context, packageName string) (registry.PackageMetadata, error)
}

// RepositoryNormalizer converts a declared repository url into a canonical page URL.
type RepositoryNormalizer interface {
	NormalizeRepositoryURL(rawReference string) (string, bool)
}

// URLValidator reports whether a string is a well-formed URL.
type URLValidator func(candidate string) bool

// BaseURLs holds the hosts used by the page templates.
type BaseURLs struct {
	Registry          string
	AlternateRegistry string
	Repository        string
}

// DefaultBaseURLs returns the public hosts.
func DefaultBaseURLs() BaseURLs {
	return BaseURLs{
		Registry:          DefaultRegistryBaseURL,
		AlternateRegistry: DefaultAlternateRegistryBaseURL,
		Repository:        DefaultRepositoryBaseURL,
	}
}

func (baseURLs BaseURLs) withDefaults() BaseURLs {
	defaults := DefaultBaseURLs()
	return BaseURLs{
		Registry:          normalizeBaseURL(baseURLs.Registry, defaults.Registry),
		AlternateRegistry: normalizeBaseURL(baseURLs.AlternateRegistry, defaults.AlternateRegistry),
		Repository:        normalizeBaseURL(baseURLs.Repository, defaults.Repository),
	}
}

func normalizeBaseURL(value string, fallback string) string {
	trimmedValue := strings.TrimSuffix(strings.TrimSpace(value), baseURLTrailingSeparatorConstant)
	if len(trimmedValue) == 0 {
		return fallback
	}
	return trimmedValue
}

// ResolverDependencies wires the collaborators of a Resolver.
type ResolverDependencies struct {
	Fetcher    MetadataFetcher
	Normalizer RepositoryNormalizer
	Validator  URLValidator
	BaseURLs   BaseURLs
}

// Resolver maps a package name and selection to a ResolvedURL.
type Resolver struct {
	fetcher    MetadataFetcher
	normalizer RepositoryNormalizer
	validator  URLValidator
	baseURLs   BaseURLs
}

// NewResolver constructs a Resolver. A nil normalizer recognises the default git hosts and a nil validator uses gitrepo.IsWellFormedURL.
func NewResolver(dependencies ResolverDependencies) *Resolver {
	normalizer := dependencies.Normalizer
	if normalizer == nil {
		normalizer = gitrepo.NewNormalizer(nil)
	}
	validator := dependencies.Validator
	if validator == nil {
		validator = gitrepo.IsWellFormedURL
	}

	return &Resolver{
		fetcher:    dependencies.Fetcher,
		normalizer: normalizer,
		validator:  validator,
		baseURLs:   dependencies.BaseURLs.withDefaults(),
	}
}

// Resolve computes the destination for packageName. Only source-repository mode touches the network.
func (resolver *Resolver) Resolve(executionContext context.Context, packageName string, selection Selection) (ResolvedURL, error) {
	switch selection.Mode {
	case ModeExplicitSlug:
		return resolver.resolveExplicitSlug(packageName), nil
	case ModeSourceRepository:
		return resolver.resolveSourceRepository(executionContext, packageName, selection.Registry)
	case ModeRegistry, "":
		return resolver.resolveRegistry(packageName, selection.Registry, OriginRegistry), nil
	default:
		return ResolvedURL{}, fmt.Errorf(unsupportedModeTemplateConstant, selection.Mode)
	}
}

func (resolver *Resolver) resolveExplicitSlug(packageName string) ResolvedURL {
	author, repository, hasSeparator := strings.Cut(packageName, slugSeparatorConstant)
	resolved := ResolvedURL{
		PackageName: packageName,
		URL:         fmt.Sprintf(repositoryPageTemplateConstant, resolver.baseURLs.Repository, author, repository),
		Origin:      OriginExplicitSlug,
	}
	if !hasSeparator {
		resolved.Diagnostics = append(resolved.Diagnostics, Diagnostic{
			Kind:    DiagnosticMalformedExplicitSlug,
			Message: fmt.Sprintf(malformedSlugDiagnosticTemplateConstant, packageName),
		})
	}
	return resolved
}

func (resolver *Resolver) resolveSourceRepository(executionContext context.Context, packageName string, registryChoice RegistryChoice) (ResolvedURL, error) {
	if resolver.fetcher == nil {
		return ResolvedURL{}, MetadataFetchError{PackageName: packageName, Cause: errMetadataFetcherMissing}
	}

	metadata, fetchError := resolver.fetcher.FetchPackageMetadata(executionContext, packageName)
	if fetchError != nil {
		return ResolvedURL{}, MetadataFetchError{PackageName: packageName, Cause: fetchError}
	}

	if metadata.Repository == nil || len(strings.TrimSpace(metadata.Repository.URL)) == 0 {
		return resolver.resolveRegistry(packageName, registryChoice, OriginSourceRepositoryFallback), nil
	}

	declaredURL := metadata.Repository.URL
	if pageURL, normalized := resolver.normalizer.NormalizeRepositoryURL(declaredURL); normalized {
		return ResolvedURL{PackageName: packageName, URL: pageURL, Origin: OriginSourceRepository}, nil
	}

	diagnosticTemplate := invalidURLDiagnosticTemplateConstant
	if resolver.validator(declaredURL) && gitrepo.IsSecureURL(declaredURL) {
		diagnosticTemplate = notGitPageDiagnosticTemplateConstant
	}

	return ResolvedURL{
		PackageName: packageName,
		URL:         declaredURL,
		Origin:      OriginSourceRepository,
		Diagnostics: []Diagnostic{{
			Kind:    DiagnosticMalformedRepositoryReference,
			Message: fmt.Sprintf(diagnosticTemplate, packageName),
		}},
	}, nil
}

// resolveRegistry keeps origin for the source-repository fallback and otherwise reports which registry served the page.
func (resolver *Resolver) resolveRegistry(packageName string, registryChoice RegistryChoice, origin Origin) ResolvedURL {
	if registryChoice == RegistryAlternate {
		if origin == OriginRegistry {
			origin = OriginAlternateRegistry
		}
		return ResolvedURL{
			PackageName: packageName,
			URL:         fmt.Sprintf(alternateRegistryPageTemplateConstant, resolver.baseURLs.AlternateRegistry, packageName),
			Origin:      origin,
		}
	}

	return ResolvedURL{
		PackageName: packageName,
		URL:         fmt.Sprintf(registryPageTemplateConstant, resolver.baseURLs.Registry, packageName),
		Origin:      origin,
	}
}
