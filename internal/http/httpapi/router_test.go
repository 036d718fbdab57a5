package httpapi

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/binary"
	"encoding/json"
	"errors"
	"hash/crc32"
	"image"
	"image/color"
	"image/png"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"mockupstudio/internal/adapter/repo"
	"mockupstudio/internal/concepts"
	"mockupstudio/internal/domain"
	"mockupstudio/internal/export"
	"mockupstudio/internal/gallery"
	"mockupstudio/internal/http/handlers"
	imageprov "mockupstudio/internal/providers/image"
	"mockupstudio/internal/storage"
	"mockupstudio/internal/studio"
)

type failingBackend struct {
	calls atomic.Int64
}

func (f *failingBackend) Name() string { return "failing" }

func (f *failingBackend) Generate(ctx context.Context, prompt string, input domain.ImageInput) (*domain.Image, error) {
	f.calls.Add(1)
	return nil, errors.New("quota exhausted")
}

type stubStats struct {
	since time.Time
}

func (s *stubStats) StatsSince(ctx context.Context, since time.Time) ([]repo.ViewStats, error) {
	s.since = since
	return []repo.ViewStats{{Provider: "synthetic", View: domain.ViewFront, Attempts: 4, Successes: 3}}, nil
}

type fixture struct {
	srv *httptest.Server
	app *handlers.App
}

func newFixture(t *testing.T, backend imageprov.Backend) *fixture {
	t.Helper()
	client := imageprov.NewClient(backend, nil)
	svc := studio.NewService(studio.New(client), gallery.NewSessions(), nil)
	app := handlers.NewApp(svc, client.Provider(), zerolog.Nop())
	srv := httptest.NewServer(NewRouter(app, Options{AllowedOrigins: []string{"*"}}))
	t.Cleanup(srv.Close)
	return &fixture{srv: srv, app: app}
}

func (f *fixture) do(t *testing.T, method, path string, body any) *http.Response {
	t.Helper()
	var rd *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal: %v", err)
		}
		rd = bytes.NewReader(raw)
	} else {
		rd = bytes.NewReader(nil)
	}
	req, err := http.NewRequest(method, f.srv.URL+path, rd)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := f.srv.Client().Do(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func decodeJSON(t *testing.T, resp *http.Response, v any) {
	t.Helper()
	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		t.Fatalf("decode response: %v", err)
	}
}

type viewJSON struct {
	MIMEType string `json:"mime_type"`
	URL      string `json:"url"`
}

type designJSON struct {
	ID            string              `json:"id"`
	Style         string              `json:"style"`
	Gender        string              `json:"model_gender"`
	Views         map[string]viewJSON `json:"views"`
	RotationReady bool                `json:"rotation_ready"`
	PrintFilesURL string              `json:"print_files_url"`
	Loading       bool                `json:"loading"`
}

type stateJSON struct {
	SessionID string       `json:"session_id"`
	Status    string       `json:"status"`
	Message   string       `json:"message"`
	Designs   []designJSON `json:"designs"`
}

type errorJSON struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
	State *stateJSON `json:"state"`
}

func (f *fixture) createSession(t *testing.T) string {
	t.Helper()
	resp := f.do(t, http.MethodPost, "/v1/sessions", nil)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create session status %d", resp.StatusCode)
	}
	var st stateJSON
	decodeJSON(t, resp, &st)
	if st.SessionID == "" || st.Status != string(gallery.StatusIdle) {
		t.Fatalf("unexpected session: %+v", st)
	}
	return st.SessionID
}

func TestHealthAndCatalog(t *testing.T) {
	f := newFixture(t, &imageprov.SyntheticGenerator{Size: 8})

	resp := f.do(t, http.MethodGet, "/v1/healthz", nil)
	var health map[string]any
	decodeJSON(t, resp, &health)
	if resp.StatusCode != http.StatusOK || health["status"] != "ok" || health["provider"] != "synthetic" {
		t.Fatalf("unexpected health %d %v", resp.StatusCode, health)
	}
	if resp.Header.Get("X-Request-ID") == "" {
		t.Fatal("expected request id header")
	}

	resp = f.do(t, http.MethodGet, "/v1/catalog", nil)
	var catalog struct {
		Styles     []map[string]string `json:"styles"`
		Effects    []string            `json:"text_effects"`
		MaxBatch   int                 `json:"max_batch"`
		QuickPicks []string            `json:"quick_picks"`
		Concepts   []string            `json:"concepts"`
	}
	decodeJSON(t, resp, &catalog)
	if len(catalog.Styles) != 7 || len(catalog.Effects) != 5 || catalog.MaxBatch != studio.MaxBatch || len(catalog.QuickPicks) != 4 {
		t.Fatalf("unexpected catalog %+v", catalog)
	}
	if len(catalog.Concepts) != len(concepts.All()) || len(catalog.Concepts) == 0 {
		t.Fatalf("catalog concepts = %d", len(catalog.Concepts))
	}

	resp = f.do(t, http.MethodGet, "/v1/concepts/suggest?q=tr", nil)
	var sugg struct {
		Suggestions []string `json:"suggestions"`
	}
	decodeJSON(t, resp, &sugg)
	if len(sugg.Suggestions) == 0 {
		t.Fatal("expected suggestions for 'tr'")
	}
	resp = f.do(t, http.MethodGet, "/v1/concepts/suggest?q=t", nil)
	decodeJSON(t, resp, &sugg)
	if sugg.Suggestions == nil || len(sugg.Suggestions) != 0 {
		t.Fatalf("short query should yield an empty list, got %v", sugg.Suggestions)
	}
}

func TestDesignLifecycle(t *testing.T) {
	f := newFixture(t, &imageprov.SyntheticGenerator{Size: 8})
	sid := f.createSession(t)
	base := "/v1/sessions/" + sid

	resp := f.do(t, http.MethodPost, base+"/designs", map[string]any{
		"concept": "Gradient Descent",
		"style":   "NOT_A_STYLE",
		"apparel": "hoodie",
		"count":   2,
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("generate status %d", resp.StatusCode)
	}
	var st stateJSON
	decodeJSON(t, resp, &st)
	if st.Status != string(gallery.StatusSuccess) || len(st.Designs) != 2 {
		t.Fatalf("unexpected state %+v", st)
	}
	d := st.Designs[0]
	if d.Style != "NEURAL_GRAFFITI" || d.Gender != string(domain.GenderFemale) {
		t.Fatalf("unexpected first design %+v", d)
	}
	if len(d.Views) != 1 || d.Views["front"].URL == "" || d.RotationReady || d.PrintFilesURL != "" {
		t.Fatalf("fresh design should carry only a front view: %+v", d)
	}
	designPath := base + "/designs/" + d.ID

	resp = f.do(t, http.MethodGet, d.Views["front"].URL, nil)
	if resp.StatusCode != http.StatusOK || resp.Header.Get("Content-Type") != "image/png" {
		t.Fatalf("download status %d type %q", resp.StatusCode, resp.Header.Get("Content-Type"))
	}
	wantName := export.FileName(d.ID, "front", "image/png")
	if cd := resp.Header.Get("Content-Disposition"); !strings.Contains(cd, wantName) {
		t.Fatalf("content disposition %q missing %q", cd, wantName)
	}

	resp = f.do(t, http.MethodGet, designPath+"/prints.zip", nil)
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("prints.zip before prints: status %d", resp.StatusCode)
	}

	resp = f.do(t, http.MethodPost, designPath+"/rotation", map[string]string{"effect": "NEON_GLOW"})
	var rotated designJSON
	decodeJSON(t, resp, &rotated)
	if resp.StatusCode != http.StatusOK || !rotated.RotationReady || len(rotated.Views) != 4 || rotated.Loading {
		t.Fatalf("rotation: status %d design %+v", resp.StatusCode, rotated)
	}

	resp = f.do(t, http.MethodPost, designPath+"/prints", nil)
	var printed designJSON
	decodeJSON(t, resp, &printed)
	if resp.StatusCode != http.StatusOK || len(printed.Views) != 6 || printed.PrintFilesURL == "" {
		t.Fatalf("prints: status %d design %+v", resp.StatusCode, printed)
	}

	resp = f.do(t, http.MethodGet, printed.PrintFilesURL, nil)
	if resp.StatusCode != http.StatusOK || resp.Header.Get("Content-Type") != "application/zip" {
		t.Fatalf("prints.zip status %d type %q", resp.StatusCode, resp.Header.Get("Content-Type"))
	}
	if cd := resp.Header.Get("Content-Disposition"); !strings.Contains(cd, export.PackageName(d.ID)) {
		t.Fatalf("unexpected zip name %q", cd)
	}

	resp = f.do(t, http.MethodPost, designPath+"/effect", map[string]string{"view": "sideways", "effect": "GLITCH"})
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("invalid view: status %d", resp.StatusCode)
	}
	resp = f.do(t, http.MethodPost, designPath+"/effect", map[string]string{"view": "back", "effect": "GLITCH"})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("effect status %d", resp.StatusCode)
	}

	resp = f.do(t, http.MethodPost, designPath+"/gender", map[string]string{"view": "flatFront"})
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("swap on print view: status %d", resp.StatusCode)
	}
	resp = f.do(t, http.MethodPost, designPath+"/gender", map[string]string{"view": "back"})
	var swap struct {
		Swapped bool       `json:"swapped"`
		Design  designJSON `json:"design"`
	}
	decodeJSON(t, resp, &swap)
	if resp.StatusCode != http.StatusOK || !swap.Swapped || swap.Design.Gender != string(domain.GenderMale) {
		t.Fatalf("swap: status %d body %+v", resp.StatusCode, swap)
	}
	if _, ok := swap.Design.Views["front"]; ok {
		t.Fatal("swap should drop the other modeled views")
	}

	resp = f.do(t, http.MethodPost, designPath+"/rotation", map[string]string{"view": "sideways"})
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("rotation with invalid view: status %d", resp.StatusCode)
	}
	resp = f.do(t, http.MethodPost, designPath+"/rotation", map[string]string{"view": "back"})
	decodeJSON(t, resp, &rotated)
	if resp.StatusCode != http.StatusOK || !rotated.RotationReady || len(rotated.Views) != 6 {
		t.Fatalf("rotation after swap: status %d design %+v", resp.StatusCode, rotated)
	}

	resp = f.do(t, http.MethodDelete, designPath, nil)
	if resp.StatusCode != http.StatusNoContent {
		t.Fatalf("delete status %d", resp.StatusCode)
	}
	resp = f.do(t, http.MethodDelete, designPath, nil)
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("second delete status %d", resp.StatusCode)
	}

	resp = f.do(t, http.MethodGet, base, nil)
	decodeJSON(t, resp, &st)
	if len(st.Designs) != 1 {
		t.Fatalf("expected one design left, got %d", len(st.Designs))
	}
}

func TestGenerateValidation(t *testing.T) {
	backend := &failingBackend{}
	f := newFixture(t, backend)
	sid := f.createSession(t)

	tests := []struct {
		name string
		body map[string]any
	}{
		{"empty concept", map[string]any{"concept": "  ", "count": 1}},
		{"count too high", map[string]any{"concept": "Eigenvectors", "count": 5}},
		{"negative count", map[string]any{"concept": "Eigenvectors", "count": -1}},
		{"bad logo", map[string]any{"concept": "Eigenvectors", "logo": map[string]string{"image": "not base64!"}}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			resp := f.do(t, http.MethodPost, "/v1/sessions/"+sid+"/designs", tc.body)
			if resp.StatusCode != http.StatusBadRequest {
				t.Fatalf("status %d", resp.StatusCode)
			}
		})
	}
	if n := backend.calls.Load(); n != 0 {
		t.Fatalf("validation failures reached the backend %d times", n)
	}
}

func TestGenerateRejectsOversizedLogo(t *testing.T) {
	backend := &failingBackend{}
	f := newFixture(t, backend)
	sid := f.createSession(t)

	big := base64.StdEncoding.EncodeToString(make([]byte, 5<<19))
	resp := f.do(t, http.MethodPost, "/v1/sessions/"+sid+"/designs", map[string]any{
		"concept": "Backpropagation",
		"logo":    map[string]string{"image": "data:image/png;base64," + big},
	})
	var body errorJSON
	decodeJSON(t, resp, &body)
	if resp.StatusCode != http.StatusBadRequest || body.Error.Message != "File is too large. Max 2MB." {
		t.Fatalf("status %d body %+v", resp.StatusCode, body)
	}
	if backend.calls.Load() != 0 {
		t.Fatal("oversized logo reached the backend")
	}
}

func TestGenerateRejectsOversizedLogoRaster(t *testing.T) {
	backend := &failingBackend{}
	f := newFixture(t, backend)
	sid := f.createSession(t)

	var buf bytes.Buffer
	if err := png.Encode(&buf, image.NewGray(image.Rect(0, 0, 1, 1))); err != nil {
		t.Fatalf("encode: %v", err)
	}
	data := buf.Bytes()
	binary.BigEndian.PutUint32(data[16:20], 20000)
	binary.BigEndian.PutUint32(data[20:24], 20000)
	binary.BigEndian.PutUint32(data[29:33], crc32.ChecksumIEEE(data[12:29]))

	resp := f.do(t, http.MethodPost, "/v1/sessions/"+sid+"/designs", map[string]any{
		"concept": "Backpropagation",
		"logo":    map[string]string{"image": base64.StdEncoding.EncodeToString(data)},
	})
	var body errorJSON
	decodeJSON(t, resp, &body)
	if resp.StatusCode != http.StatusBadRequest || !strings.Contains(body.Error.Message, "dimensions") {
		t.Fatalf("status %d body %+v", resp.StatusCode, body)
	}
	if backend.calls.Load() != 0 {
		t.Fatal("oversized raster reached the backend")
	}
}

func TestGenerateWithLogo(t *testing.T) {
	f := newFixture(t, &imageprov.SyntheticGenerator{Size: 8})
	sid := f.createSession(t)

	img := image.NewNRGBA(image.Rect(0, 0, 4, 4))
	img.Set(1, 1, color.NRGBA{R: 255, A: 255})
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encode: %v", err)
	}
	resp := f.do(t, http.MethodPost, "/v1/sessions/"+sid+"/designs", map[string]any{
		"concept": "Transformers & Attention",
		"count":   1,
		"logo": map[string]string{
			"image":     base64.StdEncoding.EncodeToString(buf.Bytes()),
			"placement": "center_back",
		},
	})
	var st struct {
		Designs []struct {
			Logo struct {
				Placement string `json:"placement"`
				Size      string `json:"size"`
			} `json:"logo"`
		} `json:"designs"`
	}
	decodeJSON(t, resp, &st)
	if resp.StatusCode != http.StatusOK || len(st.Designs) != 1 {
		t.Fatalf("status %d body %+v", resp.StatusCode, st)
	}
	if st.Designs[0].Logo.Placement != "CENTER_BACK" || st.Designs[0].Logo.Size != "MEDIUM" {
		t.Fatalf("unexpected logo %+v", st.Designs[0].Logo)
	}
}

func TestGenerateBatchFailure(t *testing.T) {
	backend := &failingBackend{}
	f := newFixture(t, backend)
	sid := f.createSession(t)

	resp := f.do(t, http.MethodPost, "/v1/sessions/"+sid+"/designs", map[string]any{"concept": "Eigenvectors", "count": 3})
	var body errorJSON
	decodeJSON(t, resp, &body)
	if resp.StatusCode != http.StatusBadGateway || body.Error.Code != "generation_failed" {
		t.Fatalf("status %d body %+v", resp.StatusCode, body)
	}
	if body.State == nil || body.State.Status != string(gallery.StatusError) || body.State.Message != studio.BatchFailedMessage {
		t.Fatalf("unexpected state %+v", body.State)
	}
	if backend.calls.Load() != 3 {
		t.Fatalf("expected 3 attempts, got %d", backend.calls.Load())
	}
}

func TestUnknownSession(t *testing.T) {
	f := newFixture(t, &imageprov.SyntheticGenerator{Size: 8})
	for _, path := range []string{"/v1/sessions/nope", "/v1/sessions/nope/designs/x", "/v1/sessions/nope/designs/x/views/front"} {
		resp := f.do(t, http.MethodGet, path, nil)
		var body errorJSON
		decodeJSON(t, resp, &body)
		if resp.StatusCode != http.StatusNotFound || body.Error.Code != "not_found" {
			t.Fatalf("%s: status %d body %+v", path, resp.StatusCode, body)
		}
	}
}

func TestExportDesign(t *testing.T) {
	f := newFixture(t, &imageprov.SyntheticGenerator{Size: 8})
	sid := f.createSession(t)
	resp := f.do(t, http.MethodPost, "/v1/sessions/"+sid+"/designs", map[string]any{"concept": "Eigenvectors", "count": 1})
	var st stateJSON
	decodeJSON(t, resp, &st)
	exportPath := "/v1/sessions/" + sid + "/designs/" + st.Designs[0].ID + "/export"

	resp = f.do(t, http.MethodPost, exportPath, nil)
	if resp.StatusCode != http.StatusServiceUnavailable {
		t.Fatalf("export without sink: status %d", resp.StatusCode)
	}

	store, err := storage.NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("file store: %v", err)
	}
	f.app.Exporter = export.NewExporter(store, "exports", nil)
	resp = f.do(t, http.MethodPost, exportPath, nil)
	var out struct {
		Files map[string]string `json:"files"`
	}
	decodeJSON(t, resp, &out)
	if resp.StatusCode != http.StatusOK || out.Files["front"] == "" {
		t.Fatalf("export: status %d body %+v", resp.StatusCode, out)
	}
}

func TestGenerationStats(t *testing.T) {
	f := newFixture(t, &imageprov.SyntheticGenerator{Size: 8})

	resp := f.do(t, http.MethodGet, "/v1/stats/generations", nil)
	if resp.StatusCode != http.StatusServiceUnavailable {
		t.Fatalf("stats without log: status %d", resp.StatusCode)
	}

	stats := &stubStats{}
	f.app.Stats = stats
	resp = f.do(t, http.MethodGet, "/v1/stats/generations?hours=0", nil)
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("invalid hours: status %d", resp.StatusCode)
	}
	resp = f.do(t, http.MethodGet, "/v1/stats/generations?hours=6", nil)
	var out struct {
		Stats []repo.ViewStats `json:"stats"`
	}
	decodeJSON(t, resp, &out)
	if resp.StatusCode != http.StatusOK || len(out.Stats) != 1 || out.Stats[0].Successes != 3 {
		t.Fatalf("stats: status %d body %+v", resp.StatusCode, out)
	}
	if age := time.Since(stats.since); age < 6*time.Hour-time.Minute || age > 6*time.Hour+time.Minute {
		t.Fatalf("unexpected window start %v", stats.since)
	}
}
