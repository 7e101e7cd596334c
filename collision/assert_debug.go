//go:build debug

package collision

// debugAsserts enables precondition checks on hot-path constructors
// Build with -tags debug to turn them on
const debugAsserts = true
