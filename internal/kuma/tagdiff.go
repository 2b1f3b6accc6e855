package kuma

import "github.com/autokuma-go/autokuma/internal/model"

// tagDiff computes the add/remove operations needed to make a monitor's
// live tag set match the desired one. Kuma has no "replace tag list"
// call - tags must be added or removed one at a time - so every edit
// diffs against the currently known tags rather than blindly removing
// everything and re-adding it.
type tagDiff struct {
	Add    []model.MonitorTag
	Remove []model.MonitorTag
}

func diffTags(current, desired []model.MonitorTag) tagDiff {
	var d tagDiff
	matched := make([]bool, len(current))

	for _, want := range desired {
		found := false
		for i, have := range current {
			if matched[i] {
				continue
			}
			if model.SameTag(have, want) {
				matched[i] = true
				found = true
				break
			}
		}
		if !found {
			d.Add = append(d.Add, want)
		}
	}

	for i, have := range current {
		if !matched[i] {
			d.Remove = append(d.Remove, have)
		}
	}

	return d
}
