//go:build !debug

// Package debug toggles expensive diagnostics at build time.
//
// Build with the "debug" tag to keep logging active under `go test` and to
// enable extra checks elsewhere in the library.
package debug

const Debug = false
