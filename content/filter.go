package content

import "sort"

// FilterByTags returns the projects whose tag set is a superset of selected.
// An empty selection returns projects unchanged.
func FilterByTags(projects []Project, selected []string) []Project {
	want := NormalizeTags(selected)
	if len(want) == 0 {
		return projects
	}
	filtered := []Project{}
	for _, p := range projects {
		have := make(map[string]struct{}, len(p.Tags))
		for _, t := range p.Tags {
			have[NormalizeTag(t)] = struct{}{}
		}
		match := true
		for _, t := range want {
			if _, ok := have[t]; !ok {
				match = false
				break
			}
		}
		if match {
			filtered = append(filtered, p)
		}
	}
	return filtered
}

// ToggleTag returns a new selection with tag removed if present, added otherwise.
func ToggleTag(selected []string, tag string) []string {
	tag = NormalizeTag(tag)
	out := make([]string, 0, len(selected)+1)
	found := false
	for _, t := range NormalizeTags(selected) {
		if t == tag {
			found = true
			continue
		}
		out = append(out, t)
	}
	if !found && tag != "" {
		out = append(out, tag)
	}
	return out
}

// AllTags returns every tag used by projects, sorted and de-duplicated.
func AllTags(projects []Project) []string {
	set := make(map[string]struct{})
	for _, p := range projects {
		for _, t := range p.Tags {
			if n := NormalizeTag(t); n != "" {
				set[n] = struct{}{}
			}
		}
	}
	tags := make([]string, 0, len(set))
	for t := range set {
		tags = append(tags, t)
	}
	sort.Strings(tags)
	return tags
}

// RelatedProjects returns projects sharing at least one tag with current.
func RelatedProjects(current Project, projects []Project) []Project {
	var related []Project
	for _, p := range projects {
		if p.Slug == current.Slug {
			continue
		}
		for _, t := range p.Tags {
			if current.HasTag(t) {
				related = append(related, p)
				break
			}
		}
	}
	return related
}
