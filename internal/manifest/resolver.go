package manifest

import (
	"errors"
	"os"
)

const locatorNotConfiguredMessageConstant = "manifest locator not configured"

// NameSource records where the package names of a run came from.
type NameSource string

// Supported name sources.
const (
	NameSourceArguments NameSource = NameSource("arguments")
	NameSourceManifest  NameSource = NameSource("manifest")
)

// Input is the ordered list of package names to process.
type Input struct {
	Names        []string
	Source       NameSource
	ManifestPath string
}

// ManifestLocator finds the manifest governing a directory.
type ManifestLocator interface {
	Locate(startDirectory string) (Manifest, error)
}

// WorkingDirectoryResolver returns the directory the manifest search starts from.
type WorkingDirectoryResolver func() (string, error)

// Resolver produces the package names for a run.
type Resolver struct {
	locator                  ManifestLocator
	workingDirectoryResolver WorkingDirectoryResolver
}

// NewResolver constructs a Resolver. A nil workingDirectoryResolver defaults to os.Getwd.
func NewResolver(locator ManifestLocator, workingDirectoryResolver WorkingDirectoryResolver) *Resolver {
	if workingDirectoryResolver == nil {
		workingDirectoryResolver = os.Getwd
	}
	return &Resolver{locator: locator, workingDirectoryResolver: workingDirectoryResolver}
}

// ResolvePackageNames returns arguments unchanged when present, otherwise the nearest manifest's name.
func (resolver *Resolver) ResolvePackageNames(arguments []string) (Input, error) {
	if len(arguments) > 0 {
		names := make([]string, len(arguments))
		copy(names, arguments)
		return Input{Names: names, Source: NameSourceArguments}, nil
	}

	if resolver.locator == nil {
		return Input{}, errors.New(locatorNotConfiguredMessageConstant)
	}

	workingDirectory, workingDirectoryError := resolver.workingDirectoryResolver()
	if workingDirectoryError != nil {
		return Input{}, workingDirectoryError
	}

	locatedManifest, locateError := resolver.locator.Locate(workingDirectory)
	if locateError != nil {
		return Input{}, locateError
	}

	return Input{
		Names:        []string{locatedManifest.Name},
		Source:       NameSourceManifest,
		ManifestPath: locatedManifest.Path,
	}, nil
}
