package collision

import "fmt"

// assertf panics with a formatted message when cond is false
// Reserved for programming errors; never used for recoverable input
func assertf(cond bool, format string, args ...any) {
	if !cond {
		panic(fmt.Sprintf("collision: "+format, args...))
	}
}

// debugAssertf is assertf compiled out unless built with -tags debug
func debugAssertf(cond bool, format string, args ...any) {
	if debugAsserts {
		assertf(cond, format, args...)
	}
}
