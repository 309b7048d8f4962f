// Package suppress implements the Ignore/Suppress Layer (C10): filtering a
// final issue list against in-source directives and configuration-supplied
// ignore rules. It is a pure post-pass over model.Issue values, the same
// way the teacher's detect.go runs pure passes over *graph.Graph — this
// package never mutates the symbol graph or re-runs a detector, it only
// removes entries from the list a detector already produced.
//
// Order of application is deterministic (§4.10): in-source directives are
// checked first, then configuration ignores.
package suppress

import (
	"context"

	"github.com/sweepa/sweepa/internal/engine/facade"
	"github.com/sweepa/sweepa/internal/engine/model"
)

// SourceReader is an optional facade capability, mirroring
// internal/engine/deps.StylesheetReader: a concrete facade implementation
// may provide raw source text for in-source directive scanning. A facade
// that doesn't implement it simply yields no in-source suppressions, since
// CompilerFacade's tree-inspection primitives have no notion of a comment
// token.
type SourceReader interface {
	ReadSource(ctx context.Context, file string) (string, error)
}

// CollectInSource scans every file in files for §4.10's in-source
// directives and returns the per-file suppression table the final Filter
// call consumes. Returns (nil, nil) when fc offers no SourceReader
// capability.
func CollectInSource(ctx context.Context, fc facade.CompilerFacade, files []string) (map[string]*FileSuppressions, error) {
	reader, ok := fc.(SourceReader)
	if !ok {
		return nil, nil
	}

	out := make(map[string]*FileSuppressions, len(files))
	for _, file := range files {
		source, err := reader.ReadSource(ctx, file)
		if err != nil {
			return nil, err
		}
		out[file] = ParseSource(source)
	}
	return out, nil
}

// Filter removes every issue suppressed by an in-source directive or by
// cfg, in that order (§4.10). projectRoot makes file paths relative for
// glob matching the same way model.SortIssues does for ordering.
func Filter(issues []model.Issue, inSource map[string]*FileSuppressions, cfg *Config, projectRoot string) []model.Issue {
	out := make([]model.Issue, 0, len(issues))
	for _, issue := range issues {
		if suppressesInSource(inSource, issue) {
			continue
		}
		if cfg != nil && suppressesByConfig(cfg, issue, projectRoot) {
			continue
		}
		out = append(out, issue)
	}
	return out
}

func suppressesInSource(inSource map[string]*FileSuppressions, issue model.Issue) bool {
	if inSource == nil {
		return false
	}
	return inSource[issue.File].Suppresses(issue)
}

func suppressesByConfig(cfg *Config, issue model.Issue, projectRoot string) bool {
	rel := relPath(issue.File, projectRoot)
	effective := ResolveForFile(cfg, rel)
	return effective.suppresses(issue, rel)
}
