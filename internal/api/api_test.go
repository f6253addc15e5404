package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/matzehuels/halfmesh/pkg/meshio"
	"github.com/matzehuels/halfmesh/pkg/primitive"
	"github.com/matzehuels/halfmesh/pkg/store"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	fs, err := store.NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileStore: %v", err)
	}
	srv := httptest.NewServer(NewServer(fs, "file", nil).Router())
	t.Cleanup(srv.Close)
	t.Cleanup(func() { fs.Close() })
	return srv
}

func putMesh(t *testing.T, srv *httptest.Server, name string, doc meshio.Document) {
	t.Helper()
	body, err := meshio.Marshal(doc)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	req, _ := http.NewRequest(http.MethodPut, srv.URL+"/meshes/"+name, bytes.NewReader(body))
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("PUT: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("PUT status = %d, want 201", resp.StatusCode)
	}
}

func getJSON(t *testing.T, srv *httptest.Server, path string, out any) int {
	t.Helper()
	resp, err := http.Get(srv.URL + path)
	if err != nil {
		t.Fatalf("GET %s: %v", path, err)
	}
	defer resp.Body.Close()
	if out != nil && resp.StatusCode < 300 {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			t.Fatalf("decode %s: %v", path, err)
		}
	}
	return resp.StatusCode
}

func TestMeshLifecycle(t *testing.T) {
	srv := newTestServer(t)

	// Empty list to start.
	var list struct {
		Meshes []string `json:"meshes"`
	}
	if status := getJSON(t, srv, "/meshes/", &list); status != http.StatusOK {
		t.Fatalf("list status = %d", status)
	}
	if len(list.Meshes) != 0 {
		t.Errorf("initial list = %v, want empty", list.Meshes)
	}

	putMesh(t, srv, "cube", primitive.Cube())

	var doc meshio.Document
	if status := getJSON(t, srv, "/meshes/cube/", &doc); status != http.StatusOK {
		t.Fatalf("get status = %d", status)
	}
	if doc.Name != "cube" || len(doc.Vertices) != 8 {
		t.Errorf("fetched %q with %d vertices, want cube/8", doc.Name, len(doc.Vertices))
	}

	var stats Stats
	if status := getJSON(t, srv, "/meshes/cube/stats", &stats); status != http.StatusOK {
		t.Fatalf("stats status = %d", status)
	}
	want := Stats{Name: "cube", Vertices: 8, Arcs: 24, Edges: 12, Faces: 6, BoundaryArcs: 0, Euler: 2}
	if stats != want {
		t.Errorf("stats = %+v, want %+v", stats, want)
	}

	req, _ := http.NewRequest(http.MethodDelete, srv.URL+"/meshes/cube/", nil)
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("DELETE: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusNoContent {
		t.Errorf("delete status = %d, want 204", resp.StatusCode)
	}
	if status := getJSON(t, srv, "/meshes/cube/", nil); status != http.StatusNotFound {
		t.Errorf("get after delete = %d, want 404", status)
	}
}

func TestGetServesETag(t *testing.T) {
	srv := newTestServer(t)
	putMesh(t, srv, "cube", primitive.Cube())

	resp, err := http.Get(srv.URL + "/meshes/cube/")
	if err != nil {
		t.Fatalf("GET: %v", err)
	}
	resp.Body.Close()
	etag := resp.Header.Get("ETag")
	if etag == "" {
		t.Fatal("response has no ETag")
	}

	// Matching If-None-Match skips the body.
	req, _ := http.NewRequest(http.MethodGet, srv.URL+"/meshes/cube/", nil)
	req.Header.Set("If-None-Match", etag)
	resp2, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("conditional GET: %v", err)
	}
	resp2.Body.Close()
	if resp2.StatusCode != http.StatusNotModified {
		t.Errorf("conditional status = %d, want 304", resp2.StatusCode)
	}

	// Refining changes the snapshot, so the tag rotates.
	resp3, err := http.Post(srv.URL+"/meshes/cube/refine?op=poke", "", nil)
	if err != nil {
		t.Fatalf("POST refine: %v", err)
	}
	resp3.Body.Close()

	req4, _ := http.NewRequest(http.MethodGet, srv.URL+"/meshes/cube/", nil)
	req4.Header.Set("If-None-Match", etag)
	resp4, err := http.DefaultClient.Do(req4)
	if err != nil {
		t.Fatalf("GET after refine: %v", err)
	}
	resp4.Body.Close()
	if resp4.StatusCode != http.StatusOK {
		t.Errorf("stale tag status = %d, want 200", resp4.StatusCode)
	}
	if resp4.Header.Get("ETag") == etag {
		t.Error("ETag unchanged after refinement")
	}
}

func TestPutRejectsInvalidMesh(t *testing.T) {
	srv := newTestServer(t)

	// Non-manifold: directed side 0->1 used twice.
	doc := primitive.Triangle()
	doc.Polygons = append(doc.Polygons, []int{0, 1, 2})

	body, _ := meshio.Marshal(doc)
	req, _ := http.NewRequest(http.MethodPut, srv.URL+"/meshes/bad", bytes.NewReader(body))
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("PUT: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusUnprocessableEntity {
		t.Errorf("status = %d, want 422", resp.StatusCode)
	}
	var e struct {
		Code string `json:"code"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&e); err != nil {
		t.Fatalf("decode error body: %v", err)
	}
	if e.Code != "TOPOLOGY_VIOLATION" {
		t.Errorf("error code = %q, want TOPOLOGY_VIOLATION", e.Code)
	}

	// Garbage body.
	req2, _ := http.NewRequest(http.MethodPut, srv.URL+"/meshes/bad", strings.NewReader("{oops"))
	resp2, err := http.DefaultClient.Do(req2)
	if err != nil {
		t.Fatalf("PUT: %v", err)
	}
	resp2.Body.Close()
	if resp2.StatusCode != http.StatusBadRequest {
		t.Errorf("garbage status = %d, want 400", resp2.StatusCode)
	}
}

func TestRefineEndpoint(t *testing.T) {
	srv := newTestServer(t)
	putMesh(t, srv, "quad", primitive.Quad())

	resp, err := http.Post(srv.URL+"/meshes/quad/refine?op=poke", "", nil)
	if err != nil {
		t.Fatalf("POST refine: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("refine status = %d, want 200", resp.StatusCode)
	}
	var stats Stats
	if err := json.NewDecoder(resp.Body).Decode(&stats); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if stats.Faces != 4 || stats.Vertices != 5 {
		t.Errorf("refined stats = %+v, want 4 faces/5 vertices", stats)
	}

	// The refined snapshot replaced the stored one.
	var doc meshio.Document
	getJSON(t, srv, "/meshes/quad/", &doc)
	if len(doc.Polygons) != 4 {
		t.Errorf("stored polygons = %d, want 4", len(doc.Polygons))
	}

	// Unknown operator.
	resp2, err := http.Post(srv.URL+"/meshes/quad/refine?op=explode", "", nil)
	if err != nil {
		t.Fatalf("POST refine: %v", err)
	}
	resp2.Body.Close()
	if resp2.StatusCode != http.StatusBadRequest {
		t.Errorf("unknown op status = %d, want 400", resp2.StatusCode)
	}
}

func TestRenderDOTEndpoint(t *testing.T) {
	srv := newTestServer(t)
	putMesh(t, srv, "tri", primitive.Triangle())

	resp, err := http.Get(srv.URL + "/meshes/tri/render.dot")
	if err != nil {
		t.Fatalf("GET render.dot: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	var buf bytes.Buffer
	if _, err := buf.ReadFrom(resp.Body); err != nil {
		t.Fatalf("read body: %v", err)
	}
	if !strings.Contains(buf.String(), "graph mesh {") {
		t.Errorf("body is not DOT:\n%s", buf.String())
	}
}

func TestRefineHelper(t *testing.T) {
	m, err := meshio.ToMesh(primitive.Cube())
	if err != nil {
		t.Fatalf("ToMesh: %v", err)
	}
	n, err := Refine(m, OpPoke)
	if err != nil {
		t.Fatalf("Refine: %v", err)
	}
	if n != 6 {
		t.Errorf("processed = %d, want 6", n)
	}
	r, _ := m.Reader()
	defer r.Close()
	if r.FaceCount() != 24 {
		t.Errorf("faces = %d, want 24", r.FaceCount())
	}
	if err := r.Validate(); err != nil {
		t.Errorf("Validate: %v", err)
	}
}
