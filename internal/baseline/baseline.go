// Package baseline implements the §6.4 baseline protocol: a snapshot of a
// prior run's issues, keyed by their stable hash, that a later run diffs
// against so only genuinely new issues get reported. The snapshot shape
// mirrors the teacher's internal/history.Snapshot (schema_version,
// timestamp, per-kind counts), narrowed from a time-series trend record
// down to a single point-in-time baseline.
package baseline

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"github.com/sweepa/sweepa/internal/engine/model"
)

// SchemaVersion is the baseline file format's own version, independent of
// the engine's release version, so a future format change can detect and
// migrate older baselines.
const SchemaVersion = 1

// Issue is one recorded entry in a baseline (§6.4).
type Issue struct {
	Hash   string          `json:"hash"`
	Kind   model.IssueKind `json:"kind"`
	Name   string          `json:"name"`
	File   string          `json:"file"`
	Line   int             `json:"line"`
	Parent string          `json:"parent,omitempty"`
}

// Baseline is the §6.4 snapshot, serialized as JSON.
type Baseline struct {
	Version      int            `json:"version"`
	RunID        string         `json:"run_id"`
	Timestamp    time.Time      `json:"timestamp"`
	ProjectRoot  string         `json:"project_root"`
	TotalIssues  int            `json:"total_issues"`
	IssuesByKind map[string]int `json:"issues_by_kind"`
	Issues       []Issue        `json:"issues"`
	hashes       map[string]bool
}

// New builds a Baseline from the current issue list, computing each
// issue's §3.6 hash relative to projectRoot. RunID identifies the run that
// produced this snapshot, so a later comparison of two baseline files can
// tell whether they came from the same invocation without comparing
// timestamps.
func New(issues []model.Issue, projectRoot string, at time.Time) *Baseline {
	b := &Baseline{
		Version:      SchemaVersion,
		RunID:        uuid.New().String(),
		Timestamp:    at,
		ProjectRoot:  projectRoot,
		TotalIssues:  len(issues),
		IssuesByKind: make(map[string]int),
		Issues:       make([]Issue, 0, len(issues)),
		hashes:       make(map[string]bool, len(issues)),
	}

	for _, issue := range issues {
		hash := model.IssueHash(issue, projectRoot)
		b.Issues = append(b.Issues, Issue{
			Hash: hash, Kind: issue.Kind, Name: issue.Name,
			File: issue.File, Line: issue.Line, Parent: issue.Parent,
		})
		b.IssuesByKind[string(issue.Kind)]++
		b.hashes[hash] = true
	}
	return b
}

// Marshal renders the baseline as indented JSON, matching the teacher's
// RenderTrendJSON shape (internal/ui/report/trends.go).
func (b *Baseline) Marshal() ([]byte, error) {
	return json.MarshalIndent(b, "", "  ")
}

// Load parses a previously written baseline file and rebuilds its hash set
// for Diff.
func Load(data []byte) (*Baseline, error) {
	var b Baseline
	if err := json.Unmarshal(data, &b); err != nil {
		return nil, err
	}
	b.hashes = make(map[string]bool, len(b.Issues))
	for _, issue := range b.Issues {
		b.hashes[issue.Hash] = true
	}
	return &b, nil
}

// Contains reports whether hash already appears in the baseline.
func (b *Baseline) Contains(hash string) bool {
	if b == nil {
		return false
	}
	return b.hashes[hash]
}

// Diff returns the subset of current whose hash is not already present in
// baseline (§6.4). A nil baseline means no prior snapshot exists, so every
// current issue is reported.
func Diff(current []model.Issue, baseline *Baseline, projectRoot string) []model.Issue {
	if baseline == nil {
		return current
	}
	out := make([]model.Issue, 0, len(current))
	for _, issue := range current {
		if baseline.Contains(model.IssueHash(issue, projectRoot)) {
			continue
		}
		out = append(out, issue)
	}
	return out
}
