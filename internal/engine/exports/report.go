package exports

import "github.com/sweepa/sweepa/internal/engine/model"

// Report implements §4.7 step 4: for each reachable file not flagged
// skip_reporting, emit unused-exported for every value export not in
// used_values and unused-exported-type for every type export not in
// used_types. Locations are left at (1,1) here; the caller (detect
// package) fills in real declaration locations from the symbol graph.
func (r *Result) Report() []model.Issue {
	var issues []model.Issue

	for file, prov := range r.Provenance {
		if prov.SkipReporting {
			continue
		}
		u := r.Usage[file]

		for name := range prov.ValueExports {
			if used(u, name, false) {
				continue
			}
			issues = append(issues, model.Issue{
				Kind: model.IssueUnusedExported, Confidence: model.ConfidenceMedium,
				Name: name, File: file,
				Message: "exported value \"" + name + "\" is never imported by any reachable module",
			})
		}
		for name := range prov.TypeExports {
			if used(u, name, true) {
				continue
			}
			issues = append(issues, model.Issue{
				Kind: model.IssueUnusedExportedType, Confidence: model.ConfidenceMedium,
				Name: name, File: file,
				Message: "exported type \"" + name + "\" is never imported by any reachable module",
			})
		}
	}

	return issues
}

func used(u *model.FileUsage, name string, isType bool) bool {
	if u == nil {
		return false
	}
	if u.UsesAll {
		return true
	}
	if isType {
		return u.UsedTypes[name]
	}
	return u.UsedValues[name]
}
