package pages

import (
	"context"
	"fmt"
	"io"
	"sync"

	"go.uber.org/zap"

	"github.com/temirov/npm-pack/internal/browser"
)

const (
	openingPageLogMessageConstant   = "Opening package page"
	diagnosticLogMessageConstant    = "Package page diagnostic"
	packageNameFieldNameConstant    = "package"
	pageURLFieldNameConstant        = "url"
	originFieldNameConstant         = "origin"
	diagnosticKindFieldNameConstant = "diagnostic"
	diagnosticLineTemplateConstant  = "%s\n"
	launchErrorTemplateConstant     = "failed to open page for %s: %w"
)

// PageResolver computes the destination for one package name.
type PageResolver interface {
	Resolve(executionContext context.Context, packageName string, selection Selection) (ResolvedURL, error)
}

// Opener resolves a package page, reports its diagnostics and launches it.
type Opener struct {
	resolver         PageResolver
	launcher         browser.Launcher
	diagnosticWriter io.Writer
	logger           *zap.Logger
	writeMutex       sync.Mutex
}

// NewOpener constructs an Opener. Diagnostics are written to diagnosticWriter one per line.
func NewOpener(resolver PageResolver, launcher browser.Launcher, diagnosticWriter io.Writer, logger *zap.Logger) *Opener {
	if diagnosticWriter == nil {
		diagnosticWriter = io.Discard
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Opener{resolver: resolver, launcher: launcher, diagnosticWriter: diagnosticWriter, logger: logger}
}

// Open resolves packageName and hands the result to the launcher. Diagnostics never prevent the launch.
func (opener *Opener) Open(executionContext context.Context, packageName string, selection Selection) error {
	resolved, resolveError := opener.resolver.Resolve(executionContext, packageName, selection)
	if resolveError != nil {
		return resolveError
	}

	opener.reportDiagnostics(resolved)

	opener.logger.Debug(
		openingPageLogMessageConstant,
		zap.String(packageNameFieldNameConstant, resolved.PackageName),
		zap.String(pageURLFieldNameConstant, resolved.URL),
		zap.String(originFieldNameConstant, string(resolved.Origin)),
	)

	if launchError := opener.launcher.Open(executionContext, resolved.URL); launchError != nil {
		return fmt.Errorf(launchErrorTemplateConstant, packageName, launchError)
	}
	return nil
}

func (opener *Opener) reportDiagnostics(resolved ResolvedURL) {
	if len(resolved.Diagnostics) == 0 {
		return
	}

	opener.writeMutex.Lock()
	defer opener.writeMutex.Unlock()

	for _, diagnostic := range resolved.Diagnostics {
		opener.logger.Debug(
			diagnosticLogMessageConstant,
			zap.String(packageNameFieldNameConstant, resolved.PackageName),
			zap.String(diagnosticKindFieldNameConstant, string(diagnostic.Kind)),
		)
		fmt.Fprintf(opener.diagnosticWriter, diagnosticLineTemplateConstant, diagnostic.Message)
	}
}
