package schema

// Target is a classified artifact URL.
type Target struct {
	URL      string     `json:"url"`
	Kind     SourceKind `json:"kind"`
	Category *Category  `json:"category"`
	Name     string     `json:"name,omitempty"` // last segment of the repo id
	Owner    string     `json:"owner,omitempty"`
	RepoID   string     `json:"repo_id,omitempty"` // owner/name as used by the hosting API
}

// Known reports whether the URL was recognized.
func (t Target) Known() bool {
	return t.Kind != UnknownSource && t.Kind != ""
}
