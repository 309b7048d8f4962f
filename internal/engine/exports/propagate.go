package exports

import "github.com/sweepa/sweepa/internal/engine/model"

// propagate implements §4.7 step 3 as a real bounded fixpoint: iterate until
// no file's usage set grows. Each round, a file with uses_all marks every
// local export used; a used name is traced to its re-export origins and
// marks the origin used under the origin's local name; and names reachable
// only via a star re-export are marked used in whichever star target
// actually defines them. Terminates because used-name sets only grow and
// are bounded by the total export count (§8.1 invariant 3, "star
// idempotence": a second fixpoint pass is a no-op).
func propagate(provenance map[string]*model.ExportProvenance, usage map[string]*model.FileUsage) {
	for {
		changed := false

		for file, prov := range provenance {
			u := ensureUsage(usage, file)

			if u.UsesAll {
				before := len(u.UsedValues) + len(u.UsedTypes)
				u.MarkAllUsed(prov.ValueExports, prov.TypeExports)
				if len(u.UsedValues)+len(u.UsedTypes) != before {
					changed = true
				}
			}

			for name := range u.UsedValues {
				if propagateOrigins(prov.ValueOrigins[name], usage, false) {
					changed = true
				}
			}
			for name := range u.UsedTypes {
				if propagateOrigins(prov.TypeOrigins[name], usage, true) {
					changed = true
				}
			}

			for starTarget := range prov.StarReexportTargets {
				targetProv := provenance[starTarget]
				if targetProv == nil {
					continue
				}
				// A name used on `file` that file doesn't itself define is
				// presumed forwarded from the star target; mark it used
				// there under the same name, for every such name the star
				// target actually exports.
				if markForwarded(u.UsedValues, prov.ValueExports, targetProv.ValueExports, usage, starTarget, false) {
					changed = true
				}
				if markForwarded(u.UsedTypes, prov.TypeExports, targetProv.TypeExports, usage, starTarget, true) {
					changed = true
				}
			}
		}

		if !changed {
			return
		}
	}
}

func ensureUsage(usage map[string]*model.FileUsage, file string) *model.FileUsage {
	if usage[file] == nil {
		usage[file] = model.NewFileUsage(file)
	}
	return usage[file]
}

func propagateOrigins(origins []model.OriginRef, usage map[string]*model.FileUsage, isType bool) bool {
	changed := false
	for _, origin := range origins {
		u := ensureUsage(usage, origin.File)
		set := u.UsedValues
		if isType {
			set = u.UsedTypes
		}
		if !set[origin.Name] {
			set[origin.Name] = true
			changed = true
		}
	}
	return changed
}

func markForwarded(usedHere, localExports, targetExports map[string]bool, usage map[string]*model.FileUsage, starTarget string, isType bool) bool {
	changed := false
	for name := range usedHere {
		if localExports[name] {
			continue // file defines this name itself; not forwarded
		}
		if !targetExports[name] {
			continue
		}
		u := ensureUsage(usage, starTarget)
		set := u.UsedValues
		if isType {
			set = u.UsedTypes
		}
		if !set[name] {
			set[name] = true
			changed = true
		}
	}
	return changed
}
