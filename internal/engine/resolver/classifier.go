package resolver

import "strings"

// SpecifierClass is the §4.2 classification of a raw import specifier.
type SpecifierClass string

const (
	ClassRuntimeBuiltin SpecifierClass = "runtime_builtin"
	ClassPath           SpecifierClass = "path"
	ClassPackage        SpecifierClass = "package"
)

// runtimeBuiltins is the fixed set of standard-library module names for the
// target runtime, unqualified and with the "node:" prefix form both
// recognised. Mirrors the teacher's per-language builtin tables
// (goBuiltins/pythonBuiltins), scoped here to the single target runtime this
// engine's facades describe.
var runtimeBuiltins = buildRuntimeBuiltins()

func buildRuntimeBuiltins() map[string]bool {
	names := []string{
		"assert", "buffer", "child_process", "cluster", "console", "constants",
		"crypto", "dgram", "diagnostics_channel", "dns", "domain", "events",
		"fs", "http", "http2", "https", "inspector", "module", "net", "os",
		"path", "perf_hooks", "process", "punycode", "querystring", "readline",
		"repl", "stream", "string_decoder", "timers", "tls", "trace_events",
		"tty", "url", "util", "v8", "vm", "wasi", "worker_threads", "zlib",
	}
	m := make(map[string]bool, len(names)*2)
	for _, n := range names {
		m[n] = true
		m["node:"+n] = true
	}
	return m
}

// Classify implements the §4.2 Specifier Classifier (C2).
func Classify(specifier string) SpecifierClass {
	if runtimeBuiltins[specifier] {
		return ClassRuntimeBuiltin
	}
	if isPathSpecifier(specifier) {
		return ClassPath
	}
	return ClassPackage
}

func isPathSpecifier(specifier string) bool {
	if strings.HasPrefix(specifier, "./") || strings.HasPrefix(specifier, "../") {
		return true
	}
	if strings.HasPrefix(specifier, "/") {
		return true
	}
	if idx := strings.Index(specifier, "://"); idx > 0 && !strings.Contains(specifier[:idx], "/") {
		return true // filesystem-URL scheme, e.g. file://
	}
	return false
}

// PackageName extracts the canonical package name from a package-qualified
// specifier (§4.2): the first path segment, or the first two for a scoped
// package (@scope/name[/...]).
func PackageName(specifier string) string {
	if specifier == "" {
		return ""
	}
	segments := strings.Split(specifier, "/")
	if strings.HasPrefix(specifier, "@") && len(segments) >= 2 {
		return segments[0] + "/" + segments[1]
	}
	return segments[0]
}
