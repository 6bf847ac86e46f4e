// Package browse derives the visible page of vehicles from the catalog and
// the user's browse state: selected makes, search text and page count.
package browse

// PageSize is the number of vehicles revealed per page.
const PageSize = 8

// State is the per-session browse input. The zero value is not usable as a
// page count, use NewState.
type State struct {
	Makes  []string `json:"makes"`
	Search string   `json:"search"`
	Page   int      `json:"page"`
}

// NewState returns the initial state: nothing selected, empty search, page 1.
func NewState() State {
	return State{Page: 1}
}

// Navigate applies the search term taken from the location. The page is
// reset only when the term changes.
func (s *State) Navigate(search string) {
	if search == s.Search {
		return
	}
	s.Search = search
	s.Page = 1
}

// ToggleMake selects name if unselected and unselects it otherwise.
func (s *State) ToggleMake(name string) {
	s.Makes = toggled(s.Makes, name)
	s.Page = 1
}

// LoadMore advances one page unless every filtered vehicle is already shown.
// It reports whether the page changed.
func (s *State) LoadMore(filtered int) bool {
	if visibleLen(filtered, s.Page) >= filtered {
		return false
	}
	s.Page++
	return true
}

// Selected reports whether name is in the selected set.
func (s State) Selected(name string) bool {
	return contains(s.Makes, name)
}

func toggled(makes []string, name string) []string {
	out := make([]string, 0, len(makes)+1)
	found := false
	for _, m := range makes {
		if m == name {
			found = true
			continue
		}
		out = append(out, m)
	}
	if !found {
		out = append(out, name)
	}
	return out
}

func contains(values []string, name string) bool {
	for _, v := range values {
		if v == name {
			return true
		}
	}
	return false
}
