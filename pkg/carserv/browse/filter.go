package browse

import (
	"strings"

	"github.com/nekruzvatanshoev/easydrive/pkg/carserv/dal"
)

// Matches reports whether v passes both the make and the search filter.
func Matches(v dal.Vehicle, makes []string, search string) bool {
	return makeMatch(v, makes) && searchMatch(v, search)
}

func makeMatch(v dal.Vehicle, makes []string) bool {
	return len(makes) == 0 || contains(makes, v.Make)
}

func searchMatch(v dal.Vehicle, search string) bool {
	if search == "" {
		return true
	}
	q := strings.ToLower(search)
	return strings.Contains(strings.ToLower(v.Make), q) ||
		strings.Contains(strings.ToLower(v.Model), q) ||
		strings.Contains(v.YearText(), search)
}

// Filter returns the vehicles matching makes and search in their original order.
func Filter(vehicles []dal.Vehicle, makes []string, search string) []dal.Vehicle {
	out := make([]dal.Vehicle, 0, len(vehicles))
	for _, v := range vehicles {
		if Matches(v, makes, search) {
			out = append(out, v)
		}
	}
	return out
}

// Paginate returns the first page*PageSize vehicles of filtered.
func Paginate(filtered []dal.Vehicle, page int) []dal.Vehicle {
	return filtered[:visibleLen(len(filtered), page)]
}

func visibleLen(filtered, page int) int {
	if page < 1 {
		page = 1
	}
	n := page * PageSize
	if n > filtered {
		return filtered
	}
	return n
}

// Facet is a make chip shown above the results.
type Facet struct {
	Make     string `json:"make"`
	Selected bool   `json:"selected"`
}

// View is the derived, renderable result of a browse state.
type View struct {
	Search   string        `json:"search"`
	Page     int           `json:"page"`
	Total    int           `json:"total"`
	HasMore  bool          `json:"has_more"`
	Facets   []Facet       `json:"facets"`
	Vehicles []dal.Vehicle `json:"vehicles"`
}

// Apply filters and paginates the catalog for state.
func Apply(catalog *dal.Catalog, state State) View {
	filtered := Filter(catalog.All(), state.Makes, state.Search)
	visible := Paginate(filtered, state.Page)

	page := state.Page
	if page < 1 {
		page = 1
	}

	makes := catalog.Makes()
	facets := make([]Facet, len(makes))
	for i, m := range makes {
		facets[i] = Facet{Make: m, Selected: state.Selected(m)}
	}

	return View{
		Search:   state.Search,
		Page:     page,
		Total:    len(filtered),
		HasMore:  len(visible) < len(filtered),
		Facets:   facets,
		Vehicles: visible,
	}
}
