package httptransport

import (
	"io"
	"io/fs"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"mergington/internal/platform/metrics"
	"mergington/internal/platform/middleware"
	"mergington/pkg/platform/httputil"
	"mergington/pkg/platform/middleware/metadata"
	"mergington/pkg/platform/middleware/requesttime"
)

// IndexPath is where the root path sends browsers.
const IndexPath = "/static/index.html"

// Registrar is a module handler that owns a set of routes.
type Registrar interface {
	Register(r chi.Router)
}

// Deps collects everything the root router needs.
type Deps struct {
	Logger   *slog.Logger
	Metrics  *metrics.Metrics
	Gatherer prometheus.Gatherer
	Static   fs.FS
	Modules  []Registrar
}

// NewRouter wires the platform middleware, the static front-end, the
// operational endpoints and every module's routes.
func NewRouter(d Deps) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recovery(d.Logger, d.Metrics))
	r.Use(middleware.RequestID)
	r.Use(requesttime.Middleware)
	r.Use(metadata.ClientMetadata)
	r.Use(middleware.Logger(d.Logger))
	r.Use(middleware.Latency(d.Metrics))

	r.Get("/", handleRoot)
	r.Get("/health", handleHealth)
	if d.Gatherer != nil {
		r.Handle("/metrics", promhttp.HandlerFor(d.Gatherer, promhttp.HandlerOpts{}))
	}
	if d.Static != nil {
		r.Get(IndexPath, serveIndex(d.Static))
		r.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.FS(d.Static))))
	}

	for _, m := range d.Modules {
		m.Register(r)
	}
	return r
}

// handleRoot never reads the request body.
func handleRoot(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, IndexPath, http.StatusTemporaryRedirect)
}

func handleHealth(w http.ResponseWriter, _ *http.Request) {
	httputil.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// serveIndex answers /static/index.html directly. http.FileServer would
// redirect any */index.html request to its directory first.
func serveIndex(static fs.FS) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		f, err := static.Open("index.html")
		if err != nil {
			http.NotFound(w, r)
			return
		}
		defer f.Close()

		info, err := f.Stat()
		if err != nil {
			http.NotFound(w, r)
			return
		}
		content, ok := f.(io.ReadSeeker)
		if !ok {
			http.NotFound(w, r)
			return
		}
		http.ServeContent(w, r, "index.html", info.ModTime(), content)
	}
}
