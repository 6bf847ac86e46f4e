package server

import (
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog"

	"github.com/nekruzvatanshoev/easydrive/pkg/carserv/dal"
)

// NewHTTPServer returns a new HTTP server browsing catalog
func NewHTTPServer(addr string, catalog *dal.Catalog, images *dal.ImageResolver, logger zerolog.Logger) *http.Server {
	server := newHTTPServer(catalog, images, logger)
	return &http.Server{
		Addr:              addr,
		Handler:           server.router(),
		ReadHeaderTimeout: 10 * time.Second,
	}
}

type httpServer struct {
	log     zerolog.Logger
	catalog *dal.Catalog
	images  *dal.ImageResolver
}

func newHTTPServer(catalog *dal.Catalog, images *dal.ImageResolver, logger zerolog.Logger) *httpServer {
	if images == nil {
		images = dal.NewImageResolver(nil)
	}
	return &httpServer{
		log:     logger,
		catalog: catalog,
		images:  images,
	}
}

func (h *httpServer) router() *mux.Router {
	r := mux.NewRouter()
	r.Use(Logger(&h.log), Recovery(&h.log))
	r.HandleFunc("/vehicles", h.GetVehicles).Methods(http.MethodGet)
	r.HandleFunc("/vehicles/{id:[0-9]+}/image", h.GetVehicleImage).Methods(http.MethodGet)
	r.HandleFunc("/makes", h.GetMakes).Methods(http.MethodGet)
	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		NotFound(w, "no route for "+r.URL.Path)
	})
	r.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		JSON(w, http.StatusMethodNotAllowed, Fail("METHOD_NOT_ALLOWED", "method "+r.Method+" is not supported"))
	})
	return r
}
