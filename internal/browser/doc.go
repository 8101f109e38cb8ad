// Package browser hands resolved page URLs to the operating system's default browser.
package browser
