package content

// AllTag selects every project.
const AllTag = "All"

// FilterProjects keeps the projects tagged with tag, in their original order.
// AllTag returns the full list.
func FilterProjects(projects []Project, tag string) []Project {
	if tag == AllTag {
		return projects
	}
	out := make([]Project, 0, len(projects))
	for _, p := range projects {
		if p.HasTag(tag) {
			out = append(out, p)
		}
	}
	return out
}

// ProjectTags lists AllTag followed by every tag in first-seen order.
func ProjectTags(projects []Project) []string {
	tags := []string{AllTag}
	seen := map[string]bool{AllTag: true}
	for _, p := range projects {
		for _, t := range p.Tags {
			if !seen[t] {
				seen[t] = true
				tags = append(tags, t)
			}
		}
	}
	return tags
}

// NextTag cycles through tags, wrapping at the end.
func NextTag(tags []string, current string) string {
	if len(tags) == 0 {
		return AllTag
	}
	for i, t := range tags {
		if t == current {
			return tags[(i+1)%len(tags)]
		}
	}
	return tags[0]
}
