// Package pages resolves package names to registry or source-repository page URLs
// and opens them through a browser launcher with bounded concurrency.
//
// Resolution is pure: Resolver.Resolve only computes a ResolvedURL and its
// diagnostics. Opener composes resolution with reporting and launching, and
// Dispatcher fans Opener calls out over many names.
package pages
