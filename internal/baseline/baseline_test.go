package baseline

import (
	"testing"
	"time"

	"github.com/sweepa/sweepa/internal/engine/model"
)

func fixedTime() time.Time {
	return time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
}

func TestNewComputesPerKindCountsAndHashes(t *testing.T) {
	issues := []model.Issue{
		{Kind: model.IssueUnusedExport, Name: "a", File: "/proj/a.ts", Line: 1},
		{Kind: model.IssueUnusedExport, Name: "b", File: "/proj/a.ts", Line: 5},
		{Kind: model.IssueUnusedFile, Name: "c.ts", File: "/proj/c.ts", Line: 1},
	}
	b := New(issues, "/proj", fixedTime())

	if b.TotalIssues != 3 {
		t.Fatalf("expected 3 total issues, got %d", b.TotalIssues)
	}
	if b.IssuesByKind[string(model.IssueUnusedExport)] != 2 {
		t.Fatalf("expected 2 unused-export issues, got %d", b.IssuesByKind[string(model.IssueUnusedExport)])
	}
	if len(b.Issues) != 3 {
		t.Fatalf("expected 3 recorded issues, got %d", len(b.Issues))
	}
	for _, recorded := range b.Issues {
		if recorded.Hash == "" {
			t.Fatalf("expected every recorded issue to carry a hash, got %+v", recorded)
		}
	}
}

func TestNewAssignsAUniqueRunID(t *testing.T) {
	issues := []model.Issue{{Kind: model.IssueUnusedFile, Name: "a.ts", File: "/proj/a.ts", Line: 1}}
	a := New(issues, "/proj", fixedTime())
	b := New(issues, "/proj", fixedTime())
	if a.RunID == "" {
		t.Fatal("expected a non-empty run id")
	}
	if a.RunID == b.RunID {
		t.Fatalf("expected two runs to get distinct run ids, both got %q", a.RunID)
	}
}

func TestMarshalRoundTripsThroughLoad(t *testing.T) {
	issues := []model.Issue{{Kind: model.IssueUnusedType, Name: "Widget", File: "/proj/a.ts", Line: 3}}
	original := New(issues, "/proj", fixedTime())

	data, err := original.Marshal()
	if err != nil {
		t.Fatal(err)
	}
	loaded, err := Load(data)
	if err != nil {
		t.Fatal(err)
	}
	if loaded.TotalIssues != original.TotalIssues {
		t.Fatalf("expected total issues to round-trip, got %d want %d", loaded.TotalIssues, original.TotalIssues)
	}
	hash := model.IssueHash(issues[0], "/proj")
	if !loaded.Contains(hash) {
		t.Fatalf("expected loaded baseline to contain the original issue's hash")
	}
}

func TestDiffDropsAlreadyBaselinedIssuesAndKeepsNewOnes(t *testing.T) {
	baselined := []model.Issue{{Kind: model.IssueUnusedExport, Name: "old", File: "/proj/a.ts", Line: 1}}
	b := New(baselined, "/proj", fixedTime())

	current := []model.Issue{
		{Kind: model.IssueUnusedExport, Name: "old", File: "/proj/a.ts", Line: 99}, // line excluded from the hash, still matches
		{Kind: model.IssueUnusedExport, Name: "new", File: "/proj/a.ts", Line: 2},
	}
	got := Diff(current, b, "/proj")
	if len(got) != 1 || got[0].Name != "new" {
		t.Fatalf("expected only the new issue to survive the diff, got %+v", got)
	}
}

func TestDiffWithNilBaselineReturnsEverything(t *testing.T) {
	current := []model.Issue{{Kind: model.IssueUnusedFile, Name: "a.ts", File: "/proj/a.ts", Line: 1}}
	got := Diff(current, nil, "/proj")
	if len(got) != 1 {
		t.Fatalf("expected no filtering with a nil baseline, got %+v", got)
	}
}
