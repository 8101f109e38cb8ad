package manifest

import (
	"encoding/json"
	"path/filepath"
	"strings"
)

// DefaultManifestFileName is the project descriptor searched for when none is configured.
const DefaultManifestFileName = "package.json"

// Manifest holds the fields read from a project descriptor.
type Manifest struct {
	Path    string `json:"-"`
	Name    string `json:"name"`
	Version string `json:"version"`
}

// Locator finds the nearest manifest by walking parent directories.
type Locator struct {
	fileSystem       FileSystem
	manifestFileName string
}

// NewLocator constructs a Locator. Empty manifestFileName selects DefaultManifestFileName.
func NewLocator(fileSystem FileSystem, manifestFileName string) *Locator {
	if fileSystem == nil {
		fileSystem = OSFileSystem{}
	}

	trimmedManifestFileName := strings.TrimSpace(manifestFileName)
	if len(trimmedManifestFileName) == 0 {
		trimmedManifestFileName = DefaultManifestFileName
	}

	return &Locator{fileSystem: fileSystem, manifestFileName: trimmedManifestFileName}
}

// Locate returns the manifest found in startDirectory or its closest ancestor that has one.
func (locator *Locator) Locate(startDirectory string) (Manifest, error) {
	currentDirectory, absoluteError := locator.fileSystem.Abs(startDirectory)
	if absoluteError != nil {
		return Manifest{}, absoluteError
	}

	for {
		candidatePath := filepath.Join(currentDirectory, locator.manifestFileName)
		if fileInfo, statError := locator.fileSystem.Stat(candidatePath); statError == nil && !fileInfo.IsDir() {
			return locator.readManifest(candidatePath)
		}

		parentDirectory := filepath.Dir(currentDirectory)
		if parentDirectory == currentDirectory {
			return Manifest{}, ManifestNotFoundError{StartDirectory: startDirectory, ManifestFileName: locator.manifestFileName}
		}
		currentDirectory = parentDirectory
	}
}

func (locator *Locator) readManifest(manifestPath string) (Manifest, error) {
	contents, readError := locator.fileSystem.ReadFile(manifestPath)
	if readError != nil {
		return Manifest{}, ManifestParseError{Path: manifestPath, Cause: readError}
	}

	var decodedManifest Manifest
	if decodeError := json.Unmarshal(contents, &decodedManifest); decodeError != nil {
		return Manifest{}, ManifestParseError{Path: manifestPath, Cause: decodeError}
	}

	decodedManifest.Path = manifestPath
	decodedManifest.Name = strings.TrimSpace(decodedManifest.Name)
	if len(decodedManifest.Name) == 0 {
		return Manifest{}, ManifestNameMissingError{Path: manifestPath}
	}

	return decodedManifest, nil
}
