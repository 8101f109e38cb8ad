package pages_test

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/temirov/npm-pack/internal/registry"
)

type spyFetcher struct {
	mutex          sync.Mutex
	metadataByName map[string]registry.PackageMetadata
	errorByName    map[string]error
	requestedNames []string
}

func (fetcher *spyFetcher) FetchPackageMetadata(_ context.Context, packageName string) (registry.PackageMetadata, error) {
	fetcher.mutex.Lock()
	defer fetcher.mutex.Unlock()

	fetcher.requestedNames = append(fetcher.requestedNames, packageName)
	if fetchError, found := fetcher.errorByName[packageName]; found {
		return registry.PackageMetadata{}, fetchError
	}
	return fetcher.metadataByName[packageName], nil
}

func (fetcher *spyFetcher) calls() []string {
	fetcher.mutex.Lock()
	defer fetcher.mutex.Unlock()

	return append([]string(nil), fetcher.requestedNames...)
}

type recordingLauncher struct {
	mutex      sync.Mutex
	openedURLs []string
	openError  error
}

func (launcher *recordingLauncher) Open(_ context.Context, pageURL string) error {
	launcher.mutex.Lock()
	defer launcher.mutex.Unlock()

	launcher.openedURLs = append(launcher.openedURLs, pageURL)
	return launcher.openError
}

func (launcher *recordingLauncher) urls() []string {
	launcher.mutex.Lock()
	defer launcher.mutex.Unlock()

	return append([]string(nil), launcher.openedURLs...)
}

// inFlightCounter tracks the peak number of concurrent calls.
type inFlightCounter struct {
	current atomic.Int32
	peak    atomic.Int32
}

func (counter *inFlightCounter) enter() {
	value := counter.current.Add(1)
	for {
		peak := counter.peak.Load()
		if value <= peak || counter.peak.CompareAndSwap(peak, value) {
			return
		}
	}
}

func (counter *inFlightCounter) leave() {
	counter.current.Add(-1)
}

func repositoryMetadata(name string, repositoryURL string) registry.PackageMetadata {
	return registry.PackageMetadata{
		Name:       name,
		Repository: &registry.RepositoryDescriptor{Type: "git", URL: repositoryURL},
	}
}
