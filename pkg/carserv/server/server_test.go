package server

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nekruzvatanshoev/easydrive/pkg/carserv/browse"
	"github.com/nekruzvatanshoev/easydrive/pkg/carserv/dal"
)

type envelope struct {
	Data  json.RawMessage `json:"data"`
	Error *Error          `json:"error"`
}

func testCatalog() *dal.Catalog {
	makes := []string{"Toyota", "Honda", "Ford", "Kia"}
	vehicles := make([]dal.Vehicle, 30)
	for i := range vehicles {
		vehicles[i] = dal.Vehicle{
			ID:          i + 1,
			Make:        makes[i%len(makes)],
			Model:       "SUV " + string(rune('A'+i)),
			Year:        2020 + i%5,
			Price:       20000 + i*1000,
			FuelEconomy: "30/35",
			Rating:      4,
			Image:       dal.ImageURL(makes[i%len(makes)]),
		}
	}
	return dal.NewCatalog(vehicles)
}

func newTestServer(t *testing.T, images *dal.ImageResolver) *httptest.Server {
	t.Helper()
	server := newHTTPServer(testCatalog(), images, zerolog.Nop())
	ts := httptest.NewServer(server.router())
	t.Cleanup(ts.Close)
	return ts
}

func get(t *testing.T, ts *httptest.Server, path string, data any) (int, *Error) {
	t.Helper()
	resp, err := http.Get(ts.URL + path)
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))

	var env envelope
	require.NoError(t, json.Unmarshal(body, &env))
	if data != nil && env.Error == nil {
		require.NoError(t, json.Unmarshal(env.Data, data))
	}
	return resp.StatusCode, env.Error
}

func cardIDs(cards []browse.Card) []int {
	out := make([]int, len(cards))
	for i, c := range cards {
		out[i] = c.ID
	}
	return out
}

func TestServer(t *testing.T) {
	tests := []struct {
		name     string
		path     string
		ids      []int
		total    int
		loadMore string
	}{
		{
			name:     "FirstPage",
			path:     "/vehicles",
			ids:      []int{1, 2, 3, 4, 5, 6, 7, 8},
			total:    30,
			loadMore: "/vehicles?page=2",
		},
		{
			name:     "SecondPage",
			path:     "/vehicles?page=2",
			ids:      []int{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15, 16},
			total:    30,
			loadMore: "/vehicles?page=3",
		},
		{
			name:  "MakeOnly",
			path:  "/vehicles?make=Ford",
			ids:   []int{3, 7, 11, 15, 19, 23, 27},
			total: 7,
		},
		{
			name:     "TwoMakes",
			path:     "/vehicles?make=Ford&make=Kia",
			ids:      []int{3, 4, 7, 8, 11, 12, 15, 16},
			total:    14,
			loadMore: "/vehicles?make=Ford&make=Kia&page=2",
		},
		{
			name:  "SearchYear",
			path:  "/vehicles?search=2021",
			ids:   []int{2, 7, 12, 17, 22, 27},
			total: 6,
		},
		{
			name:  "MakeAndSearch",
			path:  "/vehicles?make=Honda&search=suv+b",
			ids:   []int{2},
			total: 1,
		},
		{
			name:  "NoMatches",
			path:  "/vehicles?search=tesla",
			ids:   []int{},
			total: 0,
		},
		{
			name:  "PageBeyondEnd",
			path:  "/vehicles?make=Ford&page=9",
			ids:   []int{3, 7, 11, 15, 19, 23, 27},
			total: 7,
		},
	}

	ts := newTestServer(t, nil)

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var got BrowseResponse
			status, apiErr := get(t, ts, tc.path, &got)
			require.Nil(t, apiErr)
			assert.Equal(t, http.StatusOK, status)

			assert.Equal(t, tc.ids, cardIDs(got.Cards))
			assert.Equal(t, tc.total, got.Total)
			assert.Equal(t, tc.loadMore != "", got.HasMore)
			assert.Equal(t, tc.loadMore, got.Links.LoadMore)
			assert.Len(t, got.Links.Toggle, 4)
		})
	}
}

func TestServerToggleLinks(t *testing.T) {
	ts := newTestServer(t, nil)

	var got BrowseResponse
	status, _ := get(t, ts, "/vehicles?make=Ford&search=suv&page=3", &got)
	require.Equal(t, http.StatusOK, status)

	// toggling resets the page and keeps the search
	assert.Equal(t, "/vehicles?page=1&search=suv", got.Links.Toggle["Ford"])

	kia, err := url.Parse(got.Links.Toggle["Kia"])
	require.NoError(t, err)
	assert.Equal(t, []string{"Ford", "Kia"}, kia.Query()["make"])
	assert.Equal(t, "1", kia.Query().Get("page"))

	for _, f := range got.Facets {
		assert.Equal(t, f.Make == "Ford", f.Selected, f.Make)
	}
}

func TestServerFollowLoadMore(t *testing.T) {
	ts := newTestServer(t, nil)

	path := "/vehicles"
	pages := 0
	var got BrowseResponse
	for path != "" {
		got = BrowseResponse{}
		status, _ := get(t, ts, path, &got)
		require.Equal(t, http.StatusOK, status)
		assert.Len(t, got.Cards, min(got.Total, got.Page*browse.PageSize))
		path = got.Links.LoadMore
		pages++
	}
	assert.Equal(t, 4, pages)
	assert.Len(t, got.Cards, 30)
}

func TestServerValidation(t *testing.T) {
	tests := []struct {
		name   string
		path   string
		status int
		code   string
	}{
		{name: "PageNotNumber", path: "/vehicles?page=two", status: http.StatusBadRequest, code: "BAD_REQUEST"},
		{name: "PageZero", path: "/vehicles?page=0", status: http.StatusBadRequest, code: "BAD_REQUEST"},
		{name: "UnknownMake", path: "/vehicles?make=Tesla", status: http.StatusBadRequest, code: "BAD_REQUEST"},
		{name: "UnknownVehicle", path: "/vehicles/99/image", status: http.StatusNotFound, code: "NOT_FOUND"},
		{name: "UnknownRoute", path: "/review/1", status: http.StatusNotFound, code: "NOT_FOUND"},
	}

	ts := newTestServer(t, nil)
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			status, apiErr := get(t, ts, tc.path, nil)
			assert.Equal(t, tc.status, status)
			require.NotNil(t, apiErr)
			assert.Equal(t, tc.code, apiErr.Code)
		})
	}
}

func TestServerMakes(t *testing.T) {
	ts := newTestServer(t, nil)

	var makes []string
	status, _ := get(t, ts, "/makes", &makes)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, []string{"Ford", "Honda", "Kia", "Toyota"}, makes)
}

func TestServerImageFallback(t *testing.T) {
	// every image request fails
	broken := httptest.NewServer(http.NotFoundHandler())
	defer broken.Close()

	client := broken.Client()
	client.Transport = rewriteTransport{target: broken.URL, next: http.DefaultTransport}
	ts := newTestServer(t, dal.NewImageResolver(client))

	var img ImageResponse
	status, _ := get(t, ts, "/vehicles/5/image", &img)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, 5, img.ID)
	assert.Equal(t, dal.FallbackImageURL, img.Image)
}

func TestServerResolveImages(t *testing.T) {
	images := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "image/jpeg")
		w.Write([]byte{0xff, 0xd8, 0xff})
	}))
	defer images.Close()

	// redirect every outgoing image request to the local image server
	client := images.Client()
	client.Transport = rewriteTransport{target: images.URL, next: http.DefaultTransport}

	ts := newTestServer(t, dal.NewImageResolver(client))

	var got BrowseResponse
	status, _ := get(t, ts, "/vehicles?make=Kia&resolve_images=true", &got)
	require.Equal(t, http.StatusOK, status)
	require.NotEmpty(t, got.Cards)
	for _, c := range got.Cards {
		assert.Equal(t, dal.ImageURL("Kia"), c.Image)
		assert.Equal(t, dal.FallbackImageURL, c.Fallback)
	}
}

type rewriteTransport struct {
	target string
	next   http.RoundTripper
}

func (rt rewriteTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	u, err := url.Parse(rt.target)
	if err != nil {
		return nil, err
	}
	out := req.Clone(req.Context())
	out.URL.Scheme = u.Scheme
	out.URL.Host = u.Host
	out.Host = u.Host
	return rt.next.RoundTrip(out)
}
