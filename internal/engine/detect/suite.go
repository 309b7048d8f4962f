package detect

import (
	"context"

	"github.com/sweepa/sweepa/internal/engine/facade"
	"github.com/sweepa/sweepa/internal/engine/model"
	"github.com/sweepa/sweepa/internal/engine/resolver"
	"github.com/sweepa/sweepa/internal/engine/symbolgraph"
)

// Inputs bundles everything a full C9 Suite run needs. Exports/ExportIssues
// carries C7's already-computed unused-exported / unused-exported-type
// issues (§4.7), since UnusedType/UnusedExported/UnusedExportedType share
// one pass over the export analysis rather than recomputing it here.
type Inputs struct {
	Candidates   []string
	Reachable    map[string]bool
	Entry        map[string]bool
	ExportIssues []model.Issue
	PackageOf    PackageOf
}

// Run executes every §4.9 detector and returns their combined, unsorted
// (per-detector-sorted) issue list. The caller runs model.SortIssues over
// the project-wide union after merging in C7/C8's own issues.
func Run(ctx context.Context, fc facade.CompilerFacade, res *resolver.Resolver, g *symbolgraph.Graph, in Inputs) ([]model.Issue, error) {
	var issues []model.Issue

	issues = append(issues, UnusedFile(in.Candidates, in.Reachable, in.Entry)...)
	issues = append(issues, UnusedExport(g)...)
	issues = append(issues, in.ExportIssues...)
	issues = append(issues, UnusedMethod(g)...)
	issues = append(issues, UnusedParameter(g)...)
	issues = append(issues, UnusedEnumCase(g)...)
	issues = append(issues, AssignOnlyProperty(g)...)
	issues = append(issues, UnusedDeclaration(g)...)
	issues = append(issues, RedundantExport(g, in.PackageOf)...)

	typeIssues, err := UnusedType(ctx, fc, g)
	if err != nil {
		return nil, err
	}
	issues = append(issues, typeIssues...)

	var reachableFiles []string
	for f := range in.Reachable {
		reachableFiles = append(reachableFiles, f)
	}
	importIssues, err := UnusedImport(ctx, fc, res, g, reachableFiles)
	if err != nil {
		return nil, err
	}
	issues = append(issues, importIssues...)

	return issues, nil
}
