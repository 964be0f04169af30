//go:build debug

package tag

// Debug is true when the module is built with -tags debug.
const Debug = true
