package manifest

import (
	"errors"
	"fmt"
)

const (
	manifestNotFoundMessageConstant          = "manifest not found"
	manifestNotFoundTemplateConstant         = "no %s found in %s or any parent directory"
	manifestParseErrorTemplateConstant       = "unable to parse %s: %v"
	manifestNameMissingErrorTemplateConstant = "%s does not declare a package name"
)

// ErrManifestNotFound is matched by ManifestNotFoundError through errors.Is.
var ErrManifestNotFound = errors.New(manifestNotFoundMessageConstant)

// ManifestNotFoundError reports that no manifest exists in the start directory or any ancestor.
type ManifestNotFoundError struct {
	StartDirectory   string
	ManifestFileName string
}

// Error describes the failed search.
func (notFoundError ManifestNotFoundError) Error() string {
	return fmt.Sprintf(manifestNotFoundTemplateConstant, notFoundError.ManifestFileName, notFoundError.StartDirectory)
}

// Unwrap exposes ErrManifestNotFound.
func (notFoundError ManifestNotFoundError) Unwrap() error {
	return ErrManifestNotFound
}

// ManifestParseError reports a manifest that could not be decoded.
type ManifestParseError struct {
	Path  string
	Cause error
}

// Error describes the decoding failure.
func (parseError ManifestParseError) Error() string {
	return fmt.Sprintf(manifestParseErrorTemplateConstant, parseError.Path, parseError.Cause)
}

// Unwrap exposes the decoding cause.
func (parseError ManifestParseError) Unwrap() error {
	return parseError.Cause
}

// ManifestNameMissingError reports a manifest without a usable name field.
type ManifestNameMissingError struct {
	Path string
}

// Error describes the missing field.
func (nameError ManifestNameMissingError) Error() string {
	return fmt.Sprintf(manifestNameMissingErrorTemplateConstant, nameError.Path)
}
