// Package registry fetches package metadata from an npm-compatible registry.
package registry
