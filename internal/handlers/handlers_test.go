package handlers

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/bobmcallan/statement-report/internal/common"
)

func decodeBody(t *testing.T, w *httptest.ResponseRecorder, v any) {
	t.Helper()
	if err := json.Unmarshal(w.Body.Bytes(), v); err != nil {
		t.Fatalf("failed to unmarshal response %q: %v", w.Body.String(), err)
	}
}

func TestHealthHandler_ListsSchemas(t *testing.T) {
	w := httptest.NewRecorder()
	NewHealthHandler(common.NewSilentLogger()).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/health", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}
	var body healthResponse
	decodeBody(t, w, &body)
	if body.Status != "ok" {
		t.Errorf("expected status ok, got %s", body.Status)
	}
	if len(body.Schemas) != 2 || body.Schemas[0] != "4.0" || body.Schemas[1] != "5.0" {
		t.Errorf("expected schemas [4.0 5.0], got %v", body.Schemas)
	}
}

func TestVersionHandler_ReportsBuild(t *testing.T) {
	w := httptest.NewRecorder()
	NewVersionHandler(common.NewSilentLogger()).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/version", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("expected Content-Type application/json, got %s", ct)
	}
	var body map[string]string
	decodeBody(t, w, &body)
	if body["service"] != "statement-report" {
		t.Errorf("expected service statement-report, got %q", body["service"])
	}
	for _, key := range []string{"version", "build", "git_commit"} {
		if _, ok := body[key]; !ok {
			t.Errorf("expected %s field in response", key)
		}
	}
}

func TestInfoHandlers_RejectWrites(t *testing.T) {
	logger := common.NewSilentLogger()
	for _, tc := range []struct {
		name    string
		handler http.Handler
		method  string
	}{
		{"health POST", NewHealthHandler(logger), http.MethodPost},
		{"version DELETE", NewVersionHandler(logger), http.MethodDelete},
	} {
		t.Run(tc.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			tc.handler.ServeHTTP(w, httptest.NewRequest(tc.method, "/", nil))
			if w.Code != http.StatusMethodNotAllowed {
				t.Errorf("expected status 405, got %d", w.Code)
			}
		})
	}
}

func TestRequireMethod_AllowsHEADForGET(t *testing.T) {
	w := httptest.NewRecorder()
	if !RequireMethod(w, httptest.NewRequest(http.MethodHead, "/", nil), http.MethodGet) {
		t.Error("expected HEAD to satisfy GET")
	}
	if RequireMethod(w, httptest.NewRequest(http.MethodHead, "/", nil), http.MethodPost) {
		t.Error("expected HEAD to be rejected for POST")
	}
	if w.Code != http.StatusMethodNotAllowed {
		t.Errorf("expected status 405, got %d", w.Code)
	}
}

func TestWriteError_Shape(t *testing.T) {
	w := httptest.NewRecorder()
	WriteError(w, http.StatusUnprocessableEntity, "acme.json: invalid JSON")

	if w.Code != http.StatusUnprocessableEntity {
		t.Errorf("expected status 422, got %d", w.Code)
	}
	var body map[string]string
	decodeBody(t, w, &body)
	if body["status"] != "error" || body["error"] != "acme.json: invalid JSON" {
		t.Errorf("unexpected error body %v", body)
	}
}

func TestBodyName(t *testing.T) {
	tests := []struct {
		name        string
		target      string
		contentType string
		want        string
	}{
		{"query name wins", "/?name=reports/acme.yml", "application/json", "acme.yml"},
		{"yaml content type", "/", "application/x-yaml", "document.yaml"},
		{"yaml with params", "/", "application/yaml; charset=utf-8", "document.yaml"},
		{"json content type", "/", "application/json", "document.json"},
		{"no content type", "/", "", "document.json"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodPost, tt.target, nil)
			if tt.contentType != "" {
				r.Header.Set("Content-Type", tt.contentType)
			}
			if got := bodyName(r); got != tt.want {
				t.Errorf("bodyName() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestReadUploads_StripsDirectories(t *testing.T) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for _, name := range []string{"../../etc/a.json", "dir/b.yaml"} {
		part, err := mw.CreateFormFile("files", name)
		if err != nil {
			t.Fatal(err)
		}
		part.Write([]byte(`{}`))
	}
	mw.Close()

	r := httptest.NewRequest(http.MethodPost, "/", &buf)
	r.Header.Set("Content-Type", mw.FormDataContentType())
	uploads, err := readUploads(httptest.NewRecorder(), r, 1<<20, "files")
	if err != nil {
		t.Fatalf("readUploads failed: %v", err)
	}
	if len(uploads) != 2 || uploads[0].Name != "a.json" || uploads[1].Name != "b.yaml" {
		t.Errorf("unexpected uploads %+v", uploads)
	}
}

func TestAttachment_QuotesFilename(t *testing.T) {
	w := httptest.NewRecorder()
	attachment(w, `Acme "Holdings"_2024.html`)
	want := `attachment; filename="Acme \"Holdings\"_2024.html"`
	if got := w.Header().Get("Content-Disposition"); got != want {
		t.Errorf("Content-Disposition = %q, want %q", got, want)
	}
}
