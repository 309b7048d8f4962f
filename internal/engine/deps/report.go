package deps

import "github.com/sweepa/sweepa/internal/engine/model"

// Report implements §4.8's issue rules: every listed package with no
// recorded usage is unused-dependency; every used package absent from both
// manifest sections is unlisted-dependency; every package used exclusively
// in a section other than the one it's listed in is misplaced-dependency.
// Unresolved-import issues collected during Analyze are appended as-is.
func (r *Result) Report(m *Manifest) []model.Issue {
	issues := append([]model.Issue{}, r.Unresolved...)

	for pkg, u := range r.Usage {
		prodListed, devListed := m.listedIn(pkg)
		if !prodListed && !devListed {
			issues = append(issues, model.Issue{
				Kind: model.IssueUnlistedDependency, Confidence: model.ConfidenceHigh,
				Name: pkg, File: m.Path,
				Message: "\"" + pkg + "\" is imported but not listed in the manifest",
			})
			continue
		}
		if misplaced, current, recommended := isMisplaced(u, prodListed, devListed); misplaced {
			issues = append(issues, model.Issue{
				Kind: model.IssueMisplacedDependency, Confidence: model.ConfidenceMedium,
				Name: pkg, File: m.Path,
				Message: "\"" + pkg + "\" is used in " + recommended + " but listed only in " + current,
				Context: &model.IssueContext{CurrentSection: current, RecommendedSection: recommended},
			})
		}
	}

	for pkg := range m.Dependencies {
		if !usedAtAll(r.Usage[pkg]) {
			issues = append(issues, unusedDependencyIssue(m, pkg))
		}
	}
	for pkg := range m.DevDependencies {
		if _, listedProd := m.Dependencies[pkg]; listedProd {
			continue // already reported once above
		}
		if !usedAtAll(r.Usage[pkg]) {
			issues = append(issues, unusedDependencyIssue(m, pkg))
		}
	}

	return issues
}

func unusedDependencyIssue(m *Manifest, pkg string) model.Issue {
	return model.Issue{
		Kind: model.IssueUnusedDependency, Confidence: model.ConfidenceMedium,
		Name: pkg, File: m.Path,
		Message: "\"" + pkg + "\" is listed in the manifest but never used",
	}
}

func usedAtAll(u *PackageUsage) bool {
	return u != nil && (u.UsedInProduction || u.UsedInDevelopment)
}

// isMisplaced reports whether u's actual usage section disagrees with where
// pkg is listed: used in production but listed only under development, or
// vice versa. A package used in both, or listed in both, is never misplaced.
func isMisplaced(u *PackageUsage, prodListed, devListed bool) (misplaced bool, current, recommended string) {
	if prodListed && devListed {
		return false, "", ""
	}
	if u.UsedInProduction && !u.UsedInDevelopment && devListed {
		return true, SectionDevelopment, SectionProduction
	}
	if u.UsedInDevelopment && !u.UsedInProduction && prodListed {
		return true, SectionProduction, SectionDevelopment
	}
	return false, "", ""
}
