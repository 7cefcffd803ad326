package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/labstack/echo/v5"

	"github.com/pish-pish/bmc2json/internal/palstore"
	"github.com/pish-pish/bmc2json/pkg/bmc"
)

func testColors() []bmc.Color {
	return []bmc.Color{
		{R: 0xFF, A: 0x80},
		{G: 0xFF, A: 0xFF},
		{B: 0xFF, A: 0xFF},
		{R: 0x11, G: 0x22, B: 0x33, A: 0x44},
	}
}

// newTestEcho builds a server over a library directory. An empty dir means
// no library; rps configures the conversion rate limit.
func newTestEcho(t *testing.T, dir string, rps float64) *echo.Echo {
	t.Helper()
	var store *palstore.Store
	if dir != "" {
		s, err := palstore.New(dir)
		if err != nil {
			t.Fatalf("open store: %v", err)
		}
		store = s
	}
	e := echo.New()
	NewServer(store, rps).Register(e)
	return e
}

func do(t *testing.T, e *echo.Echo, method, path, contentType string, body []byte) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, bytes.NewReader(body))
	if contentType != "" {
		req.Header.Set(echo.HeaderContentType, contentType)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestHealthEndpoint(t *testing.T) {
	t.Parallel()

	e := newTestEcho(t, "", 0)
	rec := do(t, e, http.MethodGet, "/healthz", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d body=%s", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), `"status":"ok"`) {
		t.Fatalf("unexpected health body: %s", rec.Body.String())
	}
}

func TestIndexServesViewer(t *testing.T) {
	t.Parallel()

	e := newTestEcho(t, "", 0)
	rec := do(t, e, http.MethodGet, "/", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d", rec.Code)
	}
	if ct := rec.Header().Get(echo.HeaderContentType); !strings.HasPrefix(ct, "text/html") {
		t.Fatalf("content type: %q", ct)
	}
	if !strings.Contains(rec.Body.String(), "palette viewer") {
		t.Fatalf("viewer page not served")
	}
}

func TestConvertExportRoundTrip(t *testing.T) {
	t.Parallel()

	bin, err := bmc.New(testColors()).Encode()
	if err != nil {
		t.Fatalf("encode: %v", err)
	}

	e := newTestEcho(t, "", 0)
	rec := do(t, e, http.MethodPost, "/v1/convert/export?group=2", "application/octet-stream", bin)
	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d body=%s", rec.Code, rec.Body.String())
	}

	var resp ExportResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if !strings.HasPrefix(resp.ID, "conv_") {
		t.Fatalf("conversion id: %q", resp.ID)
	}
	if resp.Entries != 4 {
		t.Fatalf("entries: got %d want 4", resp.Entries)
	}
	if !resp.Document.Colors.Grouped() {
		t.Fatalf("document not grouped: %s", rec.Body.String())
	}
	flat := resp.Document.Colors.Flatten()
	want := []string{"FF000080", "00FF00FF", "0000FFFF", "11223344"}
	if len(flat) != len(want) {
		t.Fatalf("flattened %d entries, want %d", len(flat), len(want))
	}
	for i := range want {
		if flat[i] != want[i] {
			t.Fatalf("entry %d: got %q want %q", i, flat[i], want[i])
		}
	}
}

func TestConvertBuildRoundTrip(t *testing.T) {
	t.Parallel()

	cont := bmc.New(testColors())
	doc, err := cont.ExportDocument(2)
	if err != nil {
		t.Fatalf("export document: %v", err)
	}
	want, err := cont.Encode()
	if err != nil {
		t.Fatalf("encode: %v", err)
	}

	e := newTestEcho(t, "", 0)
	rec := do(t, e, http.MethodPost, "/v1/convert/build", echo.MIMEApplicationJSON, doc)
	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d body=%s", rec.Code, rec.Body.String())
	}
	if ct := rec.Header().Get(echo.HeaderContentType); !strings.HasPrefix(ct, "application/octet-stream") {
		t.Fatalf("content type: %q", ct)
	}
	if !strings.HasPrefix(rec.Header().Get(headerConversionID), "conv_") {
		t.Fatalf("conversion id header: %q", rec.Header().Get(headerConversionID))
	}
	if !bytes.Equal(rec.Body.Bytes(), want) {
		t.Fatalf("built container differs from direct encode")
	}
}

func TestConvertFaultsAreClientErrors(t *testing.T) {
	t.Parallel()

	e := newTestEcho(t, "", 0)

	rec := do(t, e, http.MethodPost, "/v1/convert/export", "application/octet-stream", []byte("not a container"))
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("garbage container: got %d body=%s", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), "invalid_request_error") {
		t.Fatalf("unexpected error body: %s", rec.Body.String())
	}

	rec = do(t, e, http.MethodPost, "/v1/convert/build", echo.MIMEApplicationJSON, []byte(`{"Palette": []}`))
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("bad document: got %d body=%s", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), "Colors") {
		t.Fatalf("unexpected error body: %s", rec.Body.String())
	}

	rec = do(t, e, http.MethodPost, "/v1/convert/build", echo.MIMEApplicationJSON, []byte(`{"Colors": ["FF00"]}`))
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("bad color: got %d body=%s", rec.Code, rec.Body.String())
	}

	rec = do(t, e, http.MethodPost, "/v1/convert/export", "application/octet-stream", nil)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("empty body: got %d body=%s", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), "request body is empty") {
		t.Fatalf("unexpected error body: %s", rec.Body.String())
	}
}

func TestPaletteLibraryEndpoints(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	if err := bmc.New(testColors()).WriteFile(filepath.Join(dir, "sunset.bmc")); err != nil {
		t.Fatalf("write palette: %v", err)
	}
	if err := bmc.New(nil).WriteFile(filepath.Join(dir, "empty.bmc")); err != nil {
		t.Fatalf("write palette: %v", err)
	}

	e := newTestEcho(t, dir, 0)

	listRec := do(t, e, http.MethodGet, "/v1/palettes", "", nil)
	if listRec.Code != http.StatusOK {
		t.Fatalf("list status: got %d body=%s", listRec.Code, listRec.Body.String())
	}
	var list PaletteListResponse
	if err := json.Unmarshal(listRec.Body.Bytes(), &list); err != nil {
		t.Fatalf("decode list: %v", err)
	}
	if len(list.Palettes) != 2 {
		t.Fatalf("listed %d palettes, want 2", len(list.Palettes))
	}
	if list.Palettes[0].Name != "empty" || list.Palettes[1].Name != "sunset" {
		t.Fatalf("unsorted palettes: %+v", list.Palettes)
	}
	if list.Palettes[1].Entries != 4 {
		t.Fatalf("sunset entries: got %d want 4", list.Palettes[1].Entries)
	}

	getRec := do(t, e, http.MethodGet, "/v1/palettes/sunset?group=2", "", nil)
	if getRec.Code != http.StatusOK {
		t.Fatalf("get status: got %d body=%s", getRec.Code, getRec.Body.String())
	}
	var got PaletteResponse
	if err := json.Unmarshal(getRec.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode palette: %v", err)
	}
	if got.Name != "sunset" || got.Entries != 4 || !got.Document.Colors.Grouped() {
		t.Fatalf("unexpected palette response: %s", getRec.Body.String())
	}

	missingRec := do(t, e, http.MethodGet, "/v1/palettes/nope", "", nil)
	if missingRec.Code != http.StatusNotFound {
		t.Fatalf("missing palette: got %d body=%s", missingRec.Code, missingRec.Body.String())
	}
	if !strings.Contains(missingRec.Body.String(), "not_found_error") {
		t.Fatalf("unexpected error body: %s", missingRec.Body.String())
	}
}

func TestLibraryRoutesWithoutStore(t *testing.T) {
	t.Parallel()

	e := newTestEcho(t, "", 0)
	for _, path := range []string{"/v1/palettes", "/v1/palettes/any"} {
		rec := do(t, e, http.MethodGet, path, "", nil)
		if rec.Code != http.StatusNotFound {
			t.Fatalf("%s: got %d body=%s", path, rec.Code, rec.Body.String())
		}
		if !strings.Contains(rec.Body.String(), "no palette library configured") {
			t.Fatalf("%s: unexpected body: %s", path, rec.Body.String())
		}
	}
}

func TestConvertRateLimit(t *testing.T) {
	t.Parallel()

	bin, err := bmc.New(testColors()).Encode()
	if err != nil {
		t.Fatalf("encode: %v", err)
	}

	e := newTestEcho(t, "", 1)
	first := do(t, e, http.MethodPost, "/v1/convert/export", "application/octet-stream", bin)
	if first.Code != http.StatusOK {
		t.Fatalf("first request: got %d body=%s", first.Code, first.Body.String())
	}
	second := do(t, e, http.MethodPost, "/v1/convert/export", "application/octet-stream", bin)
	if second.Code != http.StatusTooManyRequests {
		t.Fatalf("second request: got %d body=%s", second.Code, second.Body.String())
	}
	if !strings.Contains(second.Body.String(), "rate_limit_error") {
		t.Fatalf("unexpected error body: %s", second.Body.String())
	}

	// Unlimited servers never throttle.
	open := newTestEcho(t, "", 0)
	for i := 0; i < 5; i++ {
		rec := do(t, open, http.MethodPost, "/v1/convert/export", "application/octet-stream", bin)
		if rec.Code != http.StatusOK {
			t.Fatalf("request %d: got %d", i, rec.Code)
		}
	}
}
