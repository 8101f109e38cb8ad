// Package cli constructs the npm-pack command-line interface, wiring the
// page-opening Cobra command to the configuration loader and structured
// logging.
package cli
