// Package gitrepo recognises repository references declared in package
// metadata and turns them into canonical source-repository page URLs.
//
// It also exposes the URL shape checks used to classify references that
// cannot be normalised.
package gitrepo
