package deps

import "strings"

// knownRunners are tool invocations that never name a dependency themselves;
// tokenizing a script command skips past them to find the actual tool name.
var knownRunners = map[string]bool{
	"npm": true, "npx": true, "yarn": true, "pnpm": true, "pnpx": true,
	"bun": true, "bunx": true, "node": true, "sh": true, "bash": true,
	"env": true, "cross-env": true, "run": true, "run-s": true, "run-p": true,
	"concurrently": true, "exec": true,
}

// toolAliases maps a script-invoked binary name to the package name that
// provides it, for the (common) cases where they differ. Each entry is an
// explicit, enumerated heuristic (§4.8) rather than a guess.
var toolAliases = map[string]string{
	"tsc":      "typescript",
	"jest":     "jest",
	"vitest":   "vitest",
	"eslint":   "eslint",
	"prettier": "prettier",
	"webpack":  "webpack",
	"rollup":   "rollup",
	"vite":     "vite",
	"next":     "next",
	"nest":     "@nestjs/cli",
	"ts-node":  "ts-node",
	"nodemon":  "nodemon",
}

// tokenizeScript splits a package-manifest script command at the chaining
// characters &, | and ; and tries each segment in turn, returning the first
// word that names an actual tool. Within a segment it drops
// environment-variable assignments ("FOO=bar cmd"), known runners, and the
// script name that follows "run" (§4.8's "Package scripts" source).
func tokenizeScript(command string) string {
	for _, segment := range strings.FieldsFunc(command, func(r rune) bool {
		return r == '&' || r == '|' || r == ';'
	}) {
		if tool := firstToolIn(segment); tool != "" {
			return tool
		}
	}
	return ""
}

func firstToolIn(segment string) string {
	words := strings.Fields(segment)
	skipNext := false
	for _, w := range words {
		if skipNext {
			skipNext = false
			continue // script name, e.g. build in "npm run build"
		}
		if strings.Contains(w, "=") {
			continue // environment assignment, e.g. NODE_ENV=production
		}
		w = trimPathPrefix(w)
		if w == "run" {
			skipNext = true
			continue
		}
		if knownRunners[w] {
			continue
		}
		return w
	}
	return ""
}

func trimPathPrefix(word string) string {
	if i := strings.LastIndexByte(word, '/'); i >= 0 {
		return word[i+1:]
	}
	return word
}

// resolveToolPackage maps a tokenized tool name to the listed package that
// provides it, via toolAliases when the names differ, else the bare name
// itself, only when that name is actually listed in the manifest.
func resolveToolPackage(m *Manifest, tool string) (pkg string, ok bool) {
	if tool == "" {
		return "", false
	}
	if alias, has := toolAliases[tool]; has {
		if prod, dev := m.listedIn(alias); prod || dev {
			return alias, true
		}
	}
	if prod, dev := m.listedIn(tool); prod || dev {
		return tool, true
	}
	return "", false
}
