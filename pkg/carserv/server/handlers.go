package server

import (
	"net/http"
	"net/url"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/nekruzvatanshoev/easydrive/pkg/carserv/browse"
	"github.com/nekruzvatanshoev/easydrive/pkg/logging"
)

// BrowseResponse is the payload of GET /vehicles.
type BrowseResponse struct {
	browse.View
	Cards []browse.Card `json:"cards"`
	Links Links         `json:"links"`
}

// Links are the follow-up requests a client can make from a page.
type Links struct {
	Self     string            `json:"self"`
	LoadMore string            `json:"load_more,omitempty"`
	Toggle   map[string]string `json:"toggle"`
}

// ImageResponse is the payload of GET /vehicles/{id}/image.
type ImageResponse struct {
	ID    int    `json:"id"`
	Image string `json:"image"`
}

// GetVehicles defines a GET handler returning the visible page of the catalog
func (h *httpServer) GetVehicles(w http.ResponseWriter, r *http.Request) {
	vars := r.URL.Query()

	state, err := h.validateState(vars)
	if err != nil {
		logging.FromContext(r.Context()).Debug().Err(err).Msg("browse state validation failed")
		WriteError(w, err)
		return
	}

	view := browse.Apply(h.catalog, state)
	cards := view.Cards()

	if resolve, _ := strconv.ParseBool(vars.Get("resolve_images")); resolve {
		urls := make([]string, len(cards))
		for i, c := range cards {
			urls[i] = c.Image
		}
		for i, u := range h.images.ResolveAll(r.Context(), urls) {
			cards[i].Image = u
		}
	}

	OK(w, BrowseResponse{
		View:  view,
		Cards: cards,
		Links: links(r.URL.Path, state, view),
	})
}

// GetMakes lists the makes a client can toggle.
func (h *httpServer) GetMakes(w http.ResponseWriter, r *http.Request) {
	OK(w, h.catalog.Makes())
}

// GetVehicleImage resolves the image of one vehicle, substituting the fallback
// when it does not load.
func (h *httpServer) GetVehicleImage(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		WriteError(w, &ValidationError{Field: "id", Value: mux.Vars(r)["id"], Message: "must be a number"})
		return
	}

	v, err := h.catalog.Get(id)
	if err != nil {
		WriteError(w, err)
		return
	}

	OK(w, ImageResponse{ID: v.ID, Image: h.images.Resolve(r.Context(), v.Image)})
}

func (h *httpServer) validateState(vars url.Values) (browse.State, error) {
	state := browse.NewState()
	state.Navigate(vars.Get("search"))

	makes, err := h.validateMakes(vars)
	if err != nil {
		return state, err
	}
	for _, m := range makes {
		state.ToggleMake(m)
	}

	page, err := validatePage(vars)
	if err != nil {
		return state, err
	}
	state.Page = page
	return state, nil
}

func (h *httpServer) validateMakes(vars url.Values) ([]string, error) {
	var makes []string
	seen := make(map[string]bool)
	for _, m := range vars["make"] {
		if !h.catalog.HasMake(m) {
			return nil, &ValidationError{Field: "make", Value: m, Message: "not present in the catalog"}
		}
		// toggling a repeated make would unselect it
		if seen[m] {
			continue
		}
		seen[m] = true
		makes = append(makes, m)
	}
	return makes, nil
}

func validatePage(vars url.Values) (int, error) {
	page := vars.Get("page")
	if page == "" {
		return 1, nil
	}
	pageInt, err := strconv.Atoi(page)
	if err != nil {
		return 0, &ValidationError{Field: "page", Value: page, Message: "must be a number"}
	}
	if pageInt < 1 {
		return 0, &ValidationError{Field: "page", Value: page, Message: "must be a positive number"}
	}
	return pageInt, nil
}

func links(path string, state browse.State, view browse.View) Links {
	l := Links{
		Self:   path + "?" + encodeState(state),
		Toggle: make(map[string]string, len(view.Facets)),
	}

	if view.HasMore {
		next := state
		next.LoadMore(view.Total)
		l.LoadMore = path + "?" + encodeState(next)
	}

	for _, f := range view.Facets {
		next := state
		next.ToggleMake(f.Make)
		l.Toggle[f.Make] = path + "?" + encodeState(next)
	}
	return l
}

func encodeState(s browse.State) string {
	q := url.Values{}
	if s.Search != "" {
		q.Set("search", s.Search)
	}
	for _, m := range s.Makes {
		q.Add("make", m)
	}
	q.Set("page", strconv.Itoa(s.Page))
	return q.Encode()
}
