package content

import "testing"

func sample() []Project {
	return []Project{
		{ID: 1, Title: "a", Tags: []string{"React", "Full Stack"}},
		{ID: 2, Title: "b", Tags: []string{"Go"}},
		{ID: 3, Title: "c", Tags: []string{"React", "Animation"}},
		{ID: 4, Title: "d", Tags: []string{"Full Stack"}},
	}
}

func ids(ps []Project) []int {
	out := make([]int, len(ps))
	for i, p := range ps {
		out[i] = p.ID
	}
	return out
}

func equal(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestFilterProjects(t *testing.T) {
	tests := []struct {
		tag  string
		want []int
	}{
		{AllTag, []int{1, 2, 3, 4}},
		{"React", []int{1, 3}},
		{"Full Stack", []int{1, 4}},
		{"Go", []int{2}},
		{"react", []int{}},
		{"Rust", []int{}},
	}

	for _, tt := range tests {
		t.Run(tt.tag, func(t *testing.T) {
			got := ids(FilterProjects(sample(), tt.tag))
			if !equal(got, tt.want) {
				t.Errorf("Expected %v, got %v", tt.want, got)
			}
		})
	}
}

func TestFilterDoesNotMutate(t *testing.T) {
	ps := sample()
	FilterProjects(ps, "React")
	if !equal(ids(ps), []int{1, 2, 3, 4}) {
		t.Errorf("Expected input untouched, got %v", ids(ps))
	}
}

func TestProjectTags(t *testing.T) {
	p, err := Load()
	if err != nil {
		t.Fatalf("Failed to load portfolio: %v", err)
	}

	want := []string{"All", "React", "Full Stack", "Animation", "Open Source"}
	got := ProjectTags(p.Projects)
	if len(got) != len(want) {
		t.Fatalf("Expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("tag %d: expected %s, got %s", i, want[i], got[i])
		}
	}
}

func TestNextTag(t *testing.T) {
	tags := []string{"All", "React", "Go"}
	if got := NextTag(tags, "All"); got != "React" {
		t.Errorf("Expected React, got %s", got)
	}
	if got := NextTag(tags, "Go"); got != "All" {
		t.Errorf("Expected wrap to All, got %s", got)
	}
	if got := NextTag(tags, "missing"); got != "All" {
		t.Errorf("Expected All for unknown tag, got %s", got)
	}
}
