package manifest_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/temirov/npm-pack/internal/manifest"
)

const (
	projectManifestContentConstant = `{"name": "example-project", "version": "1.2.3"}`
	nestedManifestContentConstant  = `{"name": "@scope/nested"}`
	alternateManifestFileName      = "project.json"
)

type recordingLocator struct {
	manifest         manifest.Manifest
	locateError      error
	startDirectories []string
}

func (locator *recordingLocator) Locate(startDirectory string) (manifest.Manifest, error) {
	locator.startDirectories = append(locator.startDirectories, startDirectory)
	return locator.manifest, locator.locateError
}

func writeManifest(testInstance *testing.T, directory string, fileName string, content string) string {
	testInstance.Helper()

	require.NoError(testInstance, os.MkdirAll(directory, 0o755))
	manifestPath := filepath.Join(directory, fileName)
	require.NoError(testInstance, os.WriteFile(manifestPath, []byte(content), 0o600))
	return manifestPath
}

func TestResolverReturnsArgumentsUnchanged(testInstance *testing.T) {
	testInstance.Parallel()

	locator := &recordingLocator{}
	resolver := manifest.NewResolver(locator, func() (string, error) { return "/unused", nil })

	arguments := []string{"zeta", "alpha", "@scope/pkg", "zeta"}
	input, resolveError := resolver.ResolvePackageNames(arguments)
	require.NoError(testInstance, resolveError)
	require.Equal(testInstance, []string{"zeta", "alpha", "@scope/pkg", "zeta"}, input.Names)
	require.Equal(testInstance, manifest.NameSourceArguments, input.Source)
	require.Empty(testInstance, locator.startDirectories)

	arguments[0] = "mutated"
	require.Equal(testInstance, "zeta", input.Names[0])
}

func TestResolverFallsBackToManifest(testInstance *testing.T) {
	testInstance.Parallel()

	locator := &recordingLocator{manifest: manifest.Manifest{Path: "/work/package.json", Name: "example-project"}}
	resolver := manifest.NewResolver(locator, func() (string, error) { return "/work/src", nil })

	input, resolveError := resolver.ResolvePackageNames(nil)
	require.NoError(testInstance, resolveError)
	require.Equal(testInstance, []string{"example-project"}, input.Names)
	require.Equal(testInstance, manifest.NameSourceManifest, input.Source)
	require.Equal(testInstance, "/work/package.json", input.ManifestPath)
	require.Equal(testInstance, []string{"/work/src"}, locator.startDirectories)
}

func TestResolverPropagatesFailures(testInstance *testing.T) {
	testInstance.Parallel()

	workingDirectoryError := errors.New("working directory unavailable")
	resolver := manifest.NewResolver(&recordingLocator{}, func() (string, error) { return "", workingDirectoryError })
	_, resolveError := resolver.ResolvePackageNames([]string{})
	require.ErrorIs(testInstance, resolveError, workingDirectoryError)

	notFoundResolver := manifest.NewResolver(
		&recordingLocator{locateError: manifest.ManifestNotFoundError{StartDirectory: "/", ManifestFileName: manifest.DefaultManifestFileName}},
		func() (string, error) { return "/", nil },
	)
	_, notFoundError := notFoundResolver.ResolvePackageNames(nil)
	require.ErrorIs(testInstance, notFoundError, manifest.ErrManifestNotFound)

	_, unconfiguredError := manifest.NewResolver(nil, nil).ResolvePackageNames(nil)
	require.Error(testInstance, unconfiguredError)
}

func TestLocatorWalksParentDirectories(testInstance *testing.T) {
	testInstance.Parallel()

	projectRoot := testInstance.TempDir()
	manifestPath := writeManifest(testInstance, projectRoot, manifest.DefaultManifestFileName, projectManifestContentConstant)
	nestedDirectory := filepath.Join(projectRoot, "packages", "library", "src")
	require.NoError(testInstance, os.MkdirAll(nestedDirectory, 0o755))

	locator := manifest.NewLocator(manifest.OSFileSystem{}, "")
	locatedManifest, locateError := locator.Locate(nestedDirectory)
	require.NoError(testInstance, locateError)
	require.Equal(testInstance, "example-project", locatedManifest.Name)
	require.Equal(testInstance, "1.2.3", locatedManifest.Version)
	require.Equal(testInstance, manifestPath, locatedManifest.Path)
}

func TestLocatorPrefersNearestManifest(testInstance *testing.T) {
	testInstance.Parallel()

	projectRoot := testInstance.TempDir()
	writeManifest(testInstance, projectRoot, manifest.DefaultManifestFileName, projectManifestContentConstant)
	nestedDirectory := filepath.Join(projectRoot, "packages", "nested")
	nestedManifestPath := writeManifest(testInstance, nestedDirectory, manifest.DefaultManifestFileName, nestedManifestContentConstant)

	locatedManifest, locateError := manifest.NewLocator(nil, "").Locate(filepath.Join(nestedDirectory, "."))
	require.NoError(testInstance, locateError)
	require.Equal(testInstance, "@scope/nested", locatedManifest.Name)
	require.Equal(testInstance, nestedManifestPath, locatedManifest.Path)
}

func TestLocatorSkipsDirectoriesNamedLikeManifest(testInstance *testing.T) {
	testInstance.Parallel()

	projectRoot := testInstance.TempDir()
	writeManifest(testInstance, projectRoot, manifest.DefaultManifestFileName, projectManifestContentConstant)
	nestedDirectory := filepath.Join(projectRoot, "child")
	require.NoError(testInstance, os.MkdirAll(filepath.Join(nestedDirectory, manifest.DefaultManifestFileName), 0o755))

	locatedManifest, locateError := manifest.NewLocator(nil, "").Locate(nestedDirectory)
	require.NoError(testInstance, locateError)
	require.Equal(testInstance, "example-project", locatedManifest.Name)
}

func TestLocatorReportsManifestProblems(testInstance *testing.T) {
	testInstance.Parallel()

	testCases := []struct {
		name            string
		manifestContent string
		assertError     func(require.TestingT, error)
	}{
		{
			name:            "invalid_json",
			manifestContent: "{not json",
			assertError: func(testingT require.TestingT, locateError error) {
				var parseError manifest.ManifestParseError
				require.ErrorAs(testingT, locateError, &parseError)
			},
		},
		{
			name:            "missing_name",
			manifestContent: `{"version": "1.0.0"}`,
			assertError: func(testingT require.TestingT, locateError error) {
				var nameError manifest.ManifestNameMissingError
				require.ErrorAs(testingT, locateError, &nameError)
			},
		},
		{
			name:            "blank_name",
			manifestContent: `{"name": "   "}`,
			assertError: func(testingT require.TestingT, locateError error) {
				var nameError manifest.ManifestNameMissingError
				require.ErrorAs(testingT, locateError, &nameError)
			},
		},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(subTest *testing.T) {
			subTest.Parallel()

			projectRoot := subTest.TempDir()
			writeManifest(subTest, projectRoot, manifest.DefaultManifestFileName, testCase.manifestContent)

			_, locateError := manifest.NewLocator(nil, "").Locate(projectRoot)
			require.Error(subTest, locateError)
			require.NotErrorIs(subTest, locateError, manifest.ErrManifestNotFound)
			testCase.assertError(subTest, locateError)
		})
	}
}

func TestLocatorReportsMissingManifest(testInstance *testing.T) {
	testInstance.Parallel()

	// A file name no ancestor of the temp directory will carry.
	searchRoot := testInstance.TempDir()
	locator := manifest.NewLocator(nil, "npm-pack-test-absent-manifest.json")

	_, locateError := locator.Locate(searchRoot)
	require.ErrorIs(testInstance, locateError, manifest.ErrManifestNotFound)

	var notFoundError manifest.ManifestNotFoundError
	require.ErrorAs(testInstance, locateError, &notFoundError)
	require.Equal(testInstance, searchRoot, notFoundError.StartDirectory)
}

func TestLocatorHonoursConfiguredFileName(testInstance *testing.T) {
	testInstance.Parallel()

	projectRoot := testInstance.TempDir()
	writeManifest(testInstance, projectRoot, alternateManifestFileName, projectManifestContentConstant)

	locatedManifest, locateError := manifest.NewLocator(nil, alternateManifestFileName).Locate(projectRoot)
	require.NoError(testInstance, locateError)
	require.Equal(testInstance, "example-project", locatedManifest.Name)
}
