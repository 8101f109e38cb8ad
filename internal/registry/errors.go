package registry

import (
	"fmt"
)

const (
	packageNotFoundTemplateConstant = "package %s not found in registry"
	httpStatusTemplateConstant      = "registry responded with status %d for %s"
)

// PackageNotFoundError reports a registry 404 for the requested package.
type PackageNotFoundError struct {
	PackageName string
}

// Error describes the missing package.
func (notFoundError PackageNotFoundError) Error() string {
	return fmt.Sprintf(packageNotFoundTemplateConstant, notFoundError.PackageName)
}

// HTTPStatusError reports any other non-success registry response.
type HTTPStatusError struct {
	PackageName string
	StatusCode  int
}

// Error describes the unexpected status.
func (statusError HTTPStatusError) Error() string {
	return fmt.Sprintf(httpStatusTemplateConstant, statusError.StatusCode, statusError.PackageName)
}
