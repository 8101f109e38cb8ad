// Package manifest determines which package names a run should process.
//
// Explicit command-line names are used as given. Without them the nearest
// package.json above the working directory supplies the project's own name.
package manifest
