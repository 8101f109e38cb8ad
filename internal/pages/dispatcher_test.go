package pages_test

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/temirov/npm-pack/internal/pages"
	"github.com/temirov/npm-pack/internal/registry"
)

const (
	dispatchedNameCountConstant = 12
	dispatchBoundConstant       = 5
	launchDelayConstant         = 50 * time.Millisecond
)

type slowLauncher struct {
	recordingLauncher
	counter *inFlightCounter
}

func (launcher *slowLauncher) Open(executionContext context.Context, pageURL string) error {
	launcher.counter.enter()
	defer launcher.counter.leave()

	time.Sleep(launchDelayConstant)
	return launcher.recordingLauncher.Open(executionContext, pageURL)
}

type scriptedOpener struct {
	mutex       sync.Mutex
	openedNames []string
	failures    map[string]error
}

func (opener *scriptedOpener) Open(_ context.Context, packageName string, _ pages.Selection) error {
	opener.mutex.Lock()
	defer opener.mutex.Unlock()

	opener.openedNames = append(opener.openedNames, packageName)
	return opener.failures[packageName]
}

func packageNames(count int) []string {
	names := make([]string, 0, count)
	for index := 0; index < count; index++ {
		names = append(names, fmt.Sprintf("package-%02d", index))
	}
	return names
}

func TestDispatchOpensEveryNameWithinBound(testInstance *testing.T) {
	testInstance.Parallel()

	names := packageNames(dispatchedNameCountConstant)
	metadataByName := make(map[string]registry.PackageMetadata, len(names))
	for _, name := range names {
		metadataByName[name] = repositoryMetadata(name, fmt.Sprintf("git+https://github.com/owner/%s.git", name))
	}

	counter := &inFlightCounter{}
	launcher := &slowLauncher{counter: counter}
	opener := pages.NewOpener(newTestResolver(&spyFetcher{metadataByName: metadataByName}), launcher, nil, nil)
	dispatcher := pages.NewDispatcher(opener, dispatchBoundConstant)

	dispatchError := dispatcher.Dispatch(context.Background(), names, pages.Selection{Mode: pages.ModeSourceRepository})
	require.NoError(testInstance, dispatchError)

	openedURLs := launcher.urls()
	require.Len(testInstance, openedURLs, dispatchedNameCountConstant)

	expectedURLs := make([]string, 0, len(names))
	for _, name := range names {
		expectedURLs = append(expectedURLs, "https://github.com/owner/"+name)
	}
	sort.Strings(openedURLs)
	require.Equal(testInstance, expectedURLs, openedURLs)

	require.Equal(testInstance, int32(dispatchBoundConstant), counter.peak.Load())
	require.Equal(testInstance, int32(0), counter.current.Load())
}

func TestDispatchStopsStartingNamesAfterFailure(testInstance *testing.T) {
	testInstance.Parallel()

	openFailure := errors.New("metadata unavailable")
	opener := &scriptedOpener{failures: map[string]error{"second": openFailure}}
	dispatcher := pages.NewDispatcher(opener, 1)

	dispatchError := dispatcher.Dispatch(context.Background(), []string{"first", "second", "third", "fourth"}, pages.Selection{})
	require.ErrorIs(testInstance, dispatchError, openFailure)
	require.Equal(testInstance, []string{"first", "second"}, opener.openedNames)
}

func TestDispatchDefaultsConcurrency(testInstance *testing.T) {
	testInstance.Parallel()

	opener := &scriptedOpener{}
	dispatcher := pages.NewDispatcher(opener, 0)

	require.NoError(testInstance, dispatcher.Dispatch(context.Background(), []string{"only"}, pages.Selection{}))
	require.Equal(testInstance, []string{"only"}, opener.openedNames)

	require.NoError(testInstance, dispatcher.Dispatch(context.Background(), nil, pages.Selection{}))
}

func TestDispatchHonoursCancelledContext(testInstance *testing.T) {
	testInstance.Parallel()

	opener := &scriptedOpener{}
	cancelledContext, cancel := context.WithCancel(context.Background())
	cancel()

	dispatchError := pages.NewDispatcher(opener, pages.DefaultConcurrency).Dispatch(cancelledContext, []string{"a", "b"}, pages.Selection{})
	require.ErrorIs(testInstance, dispatchError, context.Canceled)
	require.Empty(testInstance, opener.openedNames)
}
