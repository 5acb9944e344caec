//go:build !meshdebug

package mesh

// DebugChecks enables validation after every patch. Build with -tags meshdebug.
const DebugChecks = false
