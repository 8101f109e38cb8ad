package browser

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"

	systembrowser "github.com/pkg/browser"
)

const (
	emptyURLMessageConstant       = "url required"
	openURLErrorTemplateConstant  = "failed to open %s: %w"
	printedURLTemplateConstant    = "%s\n"
	printURLErrorTemplateConstant = "failed to print %s: %w"
)

// ErrEmptyURL is returned when a launcher receives a blank URL.
var ErrEmptyURL = errors.New(emptyURLMessageConstant)

// Launcher opens a URL for the user.
type Launcher interface {
	Open(executionContext context.Context, pageURL string) error
}

// URLOpener matches the signature of the system browser helper.
type URLOpener func(pageURL string) error

// SystemLauncher opens URLs with the platform's default browser.
type SystemLauncher struct {
	openURL URLOpener
}

// NewSystemLauncher constructs a SystemLauncher whose helper processes write to the provided streams.
// The streams are assigned to the pkg/browser package variables, so the redirect is process-wide and
// the most recently constructed SystemLauncher wins. Nil writers discard the helper's output.
func NewSystemLauncher(outputWriter io.Writer, errorWriter io.Writer) *SystemLauncher {
	if outputWriter == nil {
		outputWriter = io.Discard
	}
	if errorWriter == nil {
		errorWriter = io.Discard
	}
	systembrowser.Stdout = outputWriter
	systembrowser.Stderr = errorWriter

	return &SystemLauncher{openURL: systembrowser.OpenURL}
}

// NewSystemLauncherWithOpener constructs a SystemLauncher around a custom opener.
func NewSystemLauncherWithOpener(openURL URLOpener) *SystemLauncher {
	if openURL == nil {
		openURL = systembrowser.OpenURL
	}
	return &SystemLauncher{openURL: openURL}
}

// Open launches pageURL unless the context is already done.
func (launcher *SystemLauncher) Open(executionContext context.Context, pageURL string) error {
	trimmedURL := strings.TrimSpace(pageURL)
	if len(trimmedURL) == 0 {
		return ErrEmptyURL
	}
	if contextError := executionContext.Err(); contextError != nil {
		return contextError
	}

	if openError := launcher.openURL(trimmedURL); openError != nil {
		return fmt.Errorf(openURLErrorTemplateConstant, trimmedURL, openError)
	}
	return nil
}

// PrintingLauncher writes each URL on its own line instead of opening it.
type PrintingLauncher struct {
	writer     io.Writer
	writeMutex sync.Mutex
}

// NewPrintingLauncher constructs a PrintingLauncher writing to writer.
func NewPrintingLauncher(writer io.Writer) *PrintingLauncher {
	if writer == nil {
		writer = io.Discard
	}
	return &PrintingLauncher{writer: writer}
}

// Open prints pageURL.
func (launcher *PrintingLauncher) Open(executionContext context.Context, pageURL string) error {
	trimmedURL := strings.TrimSpace(pageURL)
	if len(trimmedURL) == 0 {
		return ErrEmptyURL
	}

	launcher.writeMutex.Lock()
	defer launcher.writeMutex.Unlock()

	if _, writeError := fmt.Fprintf(launcher.writer, printedURLTemplateConstant, trimmedURL); writeError != nil {
		return fmt.Errorf(printURLErrorTemplateConstant, trimmedURL, writeError)
	}
	return nil
}
