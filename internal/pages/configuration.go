package pages

import (
	"strings"
	"time"

	"github.com/temirov/npm-pack/internal/gitrepo"
	"github.com/temirov/npm-pack/internal/manifest"
	"github.com/temirov/npm-pack/internal/registry"
)

const (
	configurationRegistryURLKeyConstant          = "registry_url"
	configurationAlternateRegistryURLKeyConstant = "alternate_registry_url"
	configurationRepositoryURLKeyConstant        = "repository_url"
	configurationMetadataURLKeyConstant          = "metadata_url"
	configurationGitHostsKeyConstant             = "git_hosts"
	configurationConcurrencyKeyConstant          = "concurrency"
	configurationRequestTimeoutKeyConstant       = "request_timeout"
	configurationMaxRetriesKeyConstant           = "max_retries"
	configurationManifestFileKeyConstant         = "manifest_file"
	configurationDryRunKeyConstant               = "dry_run"
	configurationKeySeparatorConstant            = "."
	defaultMaxRetriesConstant                    = 3
)

// Configuration stores the settings of the page-opening command.
type Configuration struct {
	RegistryURL          string        `mapstructure:"registry_url"`
	AlternateRegistryURL string        `mapstructure:"alternate_registry_url"`
	RepositoryURL        string        `mapstructure:"repository_url"`
	MetadataURL          string        `mapstructure:"metadata_url"`
	GitHosts             []string      `mapstructure:"git_hosts"`
	Concurrency          int           `mapstructure:"concurrency"`
	RequestTimeout       time.Duration `mapstructure:"request_timeout"`
	MaxRetries           int           `mapstructure:"max_retries"`
	ManifestFile         string        `mapstructure:"manifest_file"`
	DryRun               bool          `mapstructure:"dry_run"`
}

// DefaultConfiguration returns the public registry hosts and a fan-out of DefaultConcurrency.
func DefaultConfiguration() Configuration {
	return Configuration{
		RegistryURL:          DefaultRegistryBaseURL,
		AlternateRegistryURL: DefaultAlternateRegistryBaseURL,
		RepositoryURL:        DefaultRepositoryBaseURL,
		MetadataURL:          registry.DefaultMetadataURL,
		GitHosts:             gitrepo.DefaultHosts(),
		Concurrency:          DefaultConcurrency,
		RequestTimeout:       0,
		MaxRetries:           defaultMaxRetriesConstant,
		ManifestFile:         manifest.DefaultManifestFileName,
		DryRun:               false,
	}
}

// DefaultConfigurationValues produces Viper defaults rooted at rootKey.
func DefaultConfigurationValues(rootKey string) map[string]any {
	defaults := DefaultConfiguration()
	prefix := rootKey + configurationKeySeparatorConstant
	return map[string]any{
		prefix + configurationRegistryURLKeyConstant:          defaults.RegistryURL,
		prefix + configurationAlternateRegistryURLKeyConstant: defaults.AlternateRegistryURL,
		prefix + configurationRepositoryURLKeyConstant:        defaults.RepositoryURL,
		prefix + configurationMetadataURLKeyConstant:          defaults.MetadataURL,
		prefix + configurationGitHostsKeyConstant:             defaults.GitHosts,
		prefix + configurationConcurrencyKeyConstant:          defaults.Concurrency,
		prefix + configurationRequestTimeoutKeyConstant:       defaults.RequestTimeout,
		prefix + configurationMaxRetriesKeyConstant:           defaults.MaxRetries,
		prefix + configurationManifestFileKeyConstant:         defaults.ManifestFile,
		prefix + configurationDryRunKeyConstant:               defaults.DryRun,
	}
}

// Sanitize trims configured values and replaces unusable ones with defaults.
func (configuration Configuration) Sanitize() Configuration {
	defaults := DefaultConfiguration()
	sanitized := configuration

	sanitized.RegistryURL = selectTrimmedValue(configuration.RegistryURL, defaults.RegistryURL)
	sanitized.AlternateRegistryURL = selectTrimmedValue(configuration.AlternateRegistryURL, defaults.AlternateRegistryURL)
	sanitized.RepositoryURL = selectTrimmedValue(configuration.RepositoryURL, defaults.RepositoryURL)
	sanitized.MetadataURL = selectTrimmedValue(configuration.MetadataURL, defaults.MetadataURL)
	sanitized.ManifestFile = selectTrimmedValue(configuration.ManifestFile, defaults.ManifestFile)

	sanitized.GitHosts = sanitizeHosts(configuration.GitHosts)
	if len(sanitized.GitHosts) == 0 {
		sanitized.GitHosts = defaults.GitHosts
	}
	if sanitized.Concurrency <= 0 {
		sanitized.Concurrency = defaults.Concurrency
	}
	if sanitized.RequestTimeout < 0 {
		sanitized.RequestTimeout = 0
	}
	if sanitized.MaxRetries < 0 {
		sanitized.MaxRetries = 0
	}

	return sanitized
}

// BaseURLs returns the page hosts of the configuration.
func (configuration Configuration) BaseURLs() BaseURLs {
	return BaseURLs{
		Registry:          configuration.RegistryURL,
		AlternateRegistry: configuration.AlternateRegistryURL,
		Repository:        configuration.RepositoryURL,
	}
}

func selectTrimmedValue(value string, fallback string) string {
	trimmedValue := strings.TrimSpace(value)
	if len(trimmedValue) == 0 {
		return fallback
	}
	return trimmedValue
}

func sanitizeHosts(candidateHosts []string) []string {
	sanitizedHosts := make([]string, 0, len(candidateHosts))
	for _, hostCandidate := range candidateHosts {
		trimmedHost := strings.TrimSpace(hostCandidate)
		if len(trimmedHost) == 0 {
			continue
		}
		sanitizedHosts = append(sanitizedHosts, trimmedHost)
	}
	if len(sanitizedHosts) == 0 {
		return nil
	}
	return sanitizedHosts
}
