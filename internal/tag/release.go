//go:build !debug

// Package tag exposes build tags as constants.
package tag

const Debug = false
