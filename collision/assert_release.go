//go:build !debug

package collision

// debugAsserts is off in regular builds; preconditions are the caller's responsibility
const debugAsserts = false
