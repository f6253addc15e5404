// Package api exposes the mesh service over HTTP: snapshot CRUD against a
// configured store, topology statistics, refinement operators, and
// connectivity rendering.
package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/halfmesh/pkg/buildinfo"
	"github.com/matzehuels/halfmesh/pkg/errors"
	"github.com/matzehuels/halfmesh/pkg/meshio"
	"github.com/matzehuels/halfmesh/pkg/observability"
	"github.com/matzehuels/halfmesh/pkg/render"
	"github.com/matzehuels/halfmesh/pkg/store"
)

// Server handles HTTP requests against a snapshot store.
type Server struct {
	store   store.Store
	backend string // backend name for observability events
	logger  *log.Logger
}

// NewServer creates a server backed by the given store.
func NewServer(s store.Store, backend string, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.Default()
	}
	return &Server{store: s, backend: backend, logger: logger}
}

// Router builds the HTTP route table.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))

	r.Get("/healthz", s.handleHealth)
	r.Get("/version", s.handleVersion)

	r.Route("/meshes", func(r chi.Router) {
		r.Get("/", s.handleList)
		r.Route("/{name}", func(r chi.Router) {
			r.Get("/", s.handleGet)
			r.Put("/", s.handlePut)
			r.Delete("/", s.handleDelete)
			r.Get("/stats", s.handleStats)
			r.Post("/refine", s.handleRefine)
			r.Get("/render.dot", s.handleRenderDOT)
			r.Get("/render.svg", s.handleRenderSVG)
		})
	})

	return r
}

// =============================================================================
// Handlers
// =============================================================================

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleVersion(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"version": buildinfo.Version,
		"commit":  buildinfo.Commit,
		"built":   buildinfo.Date,
	})
}

func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	names, err := s.store.List(r.Context())
	if err != nil {
		s.fail(w, r, err)
		return
	}
	if names == nil {
		names = []string{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"meshes": names})
}

// handleGet serves a snapshot with its content hash as ETag, so clients
// polling a mesh between refinements can skip unchanged bodies.
func (s *Server) handleGet(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	doc, err := s.store.Get(r.Context(), name)
	observability.Store().OnStoreGet(r.Context(), s.backend, name, err == nil)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	data, err := meshio.Marshal(doc)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	etag := `"` + store.Hash(data) + `"`
	w.Header().Set("ETag", etag)
	if r.Header.Get("If-None-Match") == etag {
		w.WriteHeader(http.StatusNotModified)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

// handlePut validates the uploaded snapshot by building the mesh before it
// is stored, so the store never holds an unbuildable document.
func (s *Server) handlePut(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	doc, err := meshio.Read(r.Body)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	start := time.Now()
	observability.Mesh().OnBuildStart(r.Context(), "upload")
	_, err = meshio.ToMesh(doc)
	observability.Mesh().OnBuildComplete(r.Context(), "upload", len(doc.Polygons), time.Since(start), err)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	doc.Name = name
	if err := s.store.Put(r.Context(), name, doc); err != nil {
		s.fail(w, r, err)
		return
	}
	data, _ := meshio.Marshal(doc)
	observability.Store().OnStorePut(r.Context(), s.backend, name, len(data))
	s.logger.Info("stored mesh", "name", name, "vertices", len(doc.Vertices), "polygons", len(doc.Polygons))
	writeJSON(w, http.StatusCreated, map[string]string{"name": name})
}

func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	if err := s.store.Delete(r.Context(), name); err != nil {
		s.fail(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Stats summarizes a mesh's topology.
type Stats struct {
	Name         string `json:"name"`
	Vertices     int    `json:"vertices"`
	Arcs         int    `json:"arcs"`
	Edges        int    `json:"edges"`
	Faces        int    `json:"faces"`
	BoundaryArcs int    `json:"boundary_arcs"`
	Euler        int    `json:"euler"`
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	doc, err := s.store.Get(r.Context(), name)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	stats, err := StatsOf(name, doc)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

func (s *Server) handleRefine(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	op := r.URL.Query().Get("op")

	doc, err := s.store.Get(r.Context(), name)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	start := time.Now()
	m, err := meshio.ToMesh(doc)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	observability.Mesh().OnRefineStart(r.Context(), op, countFaces(doc))
	refined, err := Refine(m, op)
	observability.Mesh().OnRefineComplete(r.Context(), op, refined, time.Since(start), err)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	out, err := meshio.FromMesh(m, name)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	if err := s.store.Put(r.Context(), name, out); err != nil {
		s.fail(w, r, err)
		return
	}
	s.logger.Info("refined mesh", "name", name, "op", op, "faces", len(out.Polygons))

	stats, err := StatsOf(name, out)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

func (s *Server) handleRenderDOT(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	doc, err := s.store.Get(r.Context(), name)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	dot := render.ToDOT(doc, renderOptions(r))
	w.Header().Set("Content-Type", "text/vnd.graphviz")
	_, _ = w.Write([]byte(dot))
}

func (s *Server) handleRenderSVG(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	doc, err := s.store.Get(r.Context(), name)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	start := time.Now()
	observability.Mesh().OnRenderStart(r.Context(), "svg")
	svg, err := render.RenderSVG(render.ToDOT(doc, renderOptions(r)))
	observability.Mesh().OnRenderComplete(r.Context(), "svg", len(svg), time.Since(start), err)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "image/svg+xml")
	_, _ = w.Write(svg)
}

func renderOptions(r *http.Request) render.Options {
	q := r.URL.Query()
	return render.Options{
		Coords: q.Get("coords") == "true",
		Faces:  q.Get("faces") == "true",
	}
}

// =============================================================================
// Helpers
// =============================================================================

// StatsOf builds the mesh behind a snapshot and summarizes its topology.
func StatsOf(name string, doc meshio.Document) (Stats, error) {
	m, err := meshio.ToMesh(doc)
	if err != nil {
		return Stats{}, err
	}
	r, err := m.Reader()
	if err != nil {
		return Stats{}, err
	}
	defer r.Close()

	boundary := 0
	for _, k := range r.ArcKeys() {
		a, err := r.Arc(k)
		if err != nil {
			return Stats{}, err
		}
		b, err := a.IsBoundary()
		if err != nil {
			return Stats{}, err
		}
		if b {
			boundary++
		}
	}
	return Stats{
		Name:         name,
		Vertices:     r.VertexCount(),
		Arcs:         r.ArcCount(),
		Edges:        r.EdgeCount(),
		Faces:        r.FaceCount(),
		BoundaryArcs: boundary,
		Euler:        r.VertexCount() - r.EdgeCount() + r.FaceCount(),
	}, nil
}

func countFaces(doc meshio.Document) int { return len(doc.Polygons) }

// errorResponse is the JSON body for failed requests.
type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// fail maps an error code to an HTTP status and writes the error body.
func (s *Server) fail(w http.ResponseWriter, r *http.Request, err error) {
	status := http.StatusInternalServerError
	switch errors.GetCode(err) {
	case errors.ErrCodeInvalidName, errors.ErrCodeInvalidFormat, errors.ErrCodeInvalidInput, errors.ErrCodeInvalidPath:
		status = http.StatusBadRequest
	case errors.ErrCodeTopologyViolation, errors.ErrCodeCapabilityUnavailable:
		status = http.StatusUnprocessableEntity
	case errors.ErrCodeMeshNotFound, errors.ErrCodeNotFound, errors.ErrCodeFileNotFound:
		status = http.StatusNotFound
	case errors.ErrCodeAliasingViolation:
		status = http.StatusConflict
	case errors.ErrCodeStore:
		status = http.StatusBadGateway
	case errors.ErrCodeUnsupported:
		status = http.StatusNotImplemented
	}
	if status >= 500 {
		s.logger.Error("request failed", "path", r.URL.Path, "err", err)
		observability.Store().OnStoreError(r.Context(), s.backend, r.Method, err)
	}
	writeJSON(w, status, errorResponse{
		Code:    string(errors.GetCode(err)),
		Message: errors.UserMessage(err),
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
