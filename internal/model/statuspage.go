package model

// StatusPage is a public status page grouping a set of monitors behind a
// slug. Kuma exposes the monitor grouping as a slice of named groups,
// each holding a weighted list of monitor IDs.
type StatusPage struct {
	ID          *int64              `json:"id,omitempty"`
	Slug        string              `json:"slug"`
	Title       string              `json:"title"`
	Description *string             `json:"description,omitempty"`
	Icon        *string             `json:"icon,omitempty"`
	Theme       *string             `json:"theme,omitempty"`
	Published   bool                `json:"published"`
	ShowTags    bool                `json:"showTags"`
	Groups      []StatusPageGroup   `json:"publicGroupList"`
}

type StatusPageGroup struct {
	Name     string                  `json:"name"`
	Weight   int                     `json:"weight"`
	Monitors []StatusPageGroupEntry  `json:"monitorList"`
}

type StatusPageGroupEntry struct {
	ID int64 `json:"id"`
}

func (s *StatusPage) Equal(other *StatusPage) bool {
	if s == nil || other == nil {
		return s == other
	}
	if s.Slug != other.Slug || s.Title != other.Title || s.Published != other.Published || s.ShowTags != other.ShowTags {
		return false
	}
	return deepEqualJSON(s, other)
}
