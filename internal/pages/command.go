package pages

import (
	"fmt"
	"net/http"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/temirov/npm-pack/internal/browser"
	"github.com/temirov/npm-pack/internal/gitrepo"
	"github.com/temirov/npm-pack/internal/manifest"
	"github.com/temirov/npm-pack/internal/registry"
	"github.com/temirov/npm-pack/internal/utils"
)

const (
	commandUseConstant                  = "npm-pack [package-name...]"
	commandShortDescriptionConstant     = "Open the registry or repository page of npm packages"
	commandLongDescriptionConstant      = "npm-pack opens the npm page of each named package in the default browser. Without arguments it opens the page of the package declared by the nearest package.json."
	commandExampleConstant              = "  npm-pack left-pad\n  npm-pack --github react vue\n  npm-pack --yarn @scope/tool\n  npm-pack --specific facebook/react"
	sourceRepositoryFlagNameConstant    = "github"
	sourceRepositoryFlagShortConstant   = "g"
	sourceRepositoryFlagUsageConstant   = "Open the source repository page declared in the package metadata"
	alternateRegistryFlagNameConstant   = "yarn"
	alternateRegistryFlagShortConstant  = "y"
	alternateRegistryFlagUsageConstant  = "Open the alternate (yarn) registry page"
	explicitSlugFlagNameConstant        = "specific"
	explicitSlugFlagShortConstant       = "s"
	explicitSlugFlagUsageConstant       = "Treat each argument as an author/repo slug"
	dryRunFlagNameConstant              = "dry-run"
	dryRunFlagUsageConstant             = "Print the resolved URLs instead of opening them"
	namesResolvedLogMessageConstant     = "Package names resolved"
	logFieldNamesConstant               = "names"
	logFieldNameSourceConstant          = "source"
	logFieldManifestPathConstant        = "manifest_path"
	logFieldModeConstant                = "mode"
	logFieldRegistryConstant            = "registry"
	metadataClientErrorTemplateConstant = "unable to configure registry client: %w"
)

// LoggerProvider supplies a zap logger instance.
type LoggerProvider func() *zap.Logger

// ConfigurationProvider returns the current page configuration.
type ConfigurationProvider func() Configuration

// CommandBuilder assembles the page-opening command.
type CommandBuilder struct {
	LoggerProvider           LoggerProvider
	ConfigurationProvider    ConfigurationProvider
	MetadataFetcher          MetadataFetcher
	Launcher                 browser.Launcher
	HTTPClient               *http.Client
	WorkingDirectoryResolver manifest.WorkingDirectoryResolver
	FileSystem               manifest.FileSystem
}

// Build constructs the command. The caller decides whether it becomes the root command.
func (builder *CommandBuilder) Build() (*cobra.Command, error) {
	command := &cobra.Command{
		Use:     commandUseConstant,
		Short:   commandShortDescriptionConstant,
		Long:    commandLongDescriptionConstant,
		Example: commandExampleConstant,
		RunE:    builder.run,
	}

	command.Flags().BoolP(sourceRepositoryFlagNameConstant, sourceRepositoryFlagShortConstant, false, sourceRepositoryFlagUsageConstant)
	command.Flags().BoolP(alternateRegistryFlagNameConstant, alternateRegistryFlagShortConstant, false, alternateRegistryFlagUsageConstant)
	command.Flags().BoolP(explicitSlugFlagNameConstant, explicitSlugFlagShortConstant, false, explicitSlugFlagUsageConstant)
	command.Flags().Bool(dryRunFlagNameConstant, false, dryRunFlagUsageConstant)

	return command, nil
}

func (builder *CommandBuilder) run(command *cobra.Command, arguments []string) error {
	configuration := builder.resolveConfiguration()
	logger := builder.resolveLogger()

	modeFlags, flagsError := parseModeFlags(command)
	if flagsError != nil {
		return flagsError
	}

	dryRun := configuration.DryRun
	if command.Flags().Changed(dryRunFlagNameConstant) {
		flagDryRunValue, dryRunFlagError := command.Flags().GetBool(dryRunFlagNameConstant)
		if dryRunFlagError != nil {
			return dryRunFlagError
		}
		dryRun = flagDryRunValue
	}

	nameResolver := manifest.NewResolver(
		manifest.NewLocator(builder.FileSystem, configuration.ManifestFile),
		builder.WorkingDirectoryResolver,
	)
	input, resolveError := nameResolver.ResolvePackageNames(arguments)
	if resolveError != nil {
		return resolveError
	}

	// The slug switch only applies to names typed on the command line.
	if input.Source == manifest.NameSourceManifest {
		modeFlags.ExplicitSlug = false
	}
	selection := ParseSelection(modeFlags)

	logger.Debug(
		namesResolvedLogMessageConstant,
		zap.Strings(logFieldNamesConstant, input.Names),
		zap.String(logFieldNameSourceConstant, string(input.Source)),
		zap.String(logFieldManifestPathConstant, input.ManifestPath),
		zap.String(logFieldModeConstant, string(selection.Mode)),
		zap.String(logFieldRegistryConstant, string(selection.Registry)),
	)

	fetcher, fetcherError := builder.resolveMetadataFetcher(configuration, logger)
	if fetcherError != nil {
		return fetcherError
	}

	resolver := NewResolver(ResolverDependencies{
		Fetcher:    fetcher,
		Normalizer: gitrepo.NewNormalizer(configuration.GitHosts),
		BaseURLs:   configuration.BaseURLs(),
	})
	opener := NewOpener(resolver, builder.resolveLauncher(command, dryRun), command.ErrOrStderr(), logger)

	return NewDispatcher(opener, configuration.Concurrency).Dispatch(command.Context(), input.Names, selection)
}

func parseModeFlags(command *cobra.Command) (ModeFlags, error) {
	sourceRepository, sourceRepositoryError := command.Flags().GetBool(sourceRepositoryFlagNameConstant)
	if sourceRepositoryError != nil {
		return ModeFlags{}, sourceRepositoryError
	}
	alternateRegistry, alternateRegistryError := command.Flags().GetBool(alternateRegistryFlagNameConstant)
	if alternateRegistryError != nil {
		return ModeFlags{}, alternateRegistryError
	}
	explicitSlug, explicitSlugError := command.Flags().GetBool(explicitSlugFlagNameConstant)
	if explicitSlugError != nil {
		return ModeFlags{}, explicitSlugError
	}

	return ModeFlags{
		SourceRepository:  sourceRepository,
		AlternateRegistry: alternateRegistry,
		ExplicitSlug:      explicitSlug,
	}, nil
}

func (builder *CommandBuilder) resolveMetadataFetcher(configuration Configuration, logger *zap.Logger) (MetadataFetcher, error) {
	if builder.MetadataFetcher != nil {
		return builder.MetadataFetcher, nil
	}

	httpClient := builder.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: configuration.RequestTimeout}
	}

	client, clientError := registry.NewClient(configuration.MetadataURL, httpClient, configuration.MaxRetries, utils.NewSugaredLogAdapter(logger))
	if clientError != nil {
		return nil, fmt.Errorf(metadataClientErrorTemplateConstant, clientError)
	}
	return client, nil
}

func (builder *CommandBuilder) resolveLauncher(command *cobra.Command, dryRun bool) browser.Launcher {
	if dryRun {
		return browser.NewPrintingLauncher(command.OutOrStdout())
	}
	if builder.Launcher != nil {
		return builder.Launcher
	}
	return browser.NewSystemLauncher(command.OutOrStdout(), command.ErrOrStderr())
}

func (builder *CommandBuilder) resolveLogger() *zap.Logger {
	if builder.LoggerProvider == nil {
		return zap.NewNop()
	}

	logger := builder.LoggerProvider()
	if logger == nil {
		return zap.NewNop()
	}

	return logger
}

func (builder *CommandBuilder) resolveConfiguration() Configuration {
	configuration := DefaultConfiguration()
	if builder.ConfigurationProvider != nil {
		configuration = builder.ConfigurationProvider()
	}
	return configuration.Sanitize()
}
