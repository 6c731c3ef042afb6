package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"path/filepath"
	"strings"
)

// RequireMethod validates that the HTTP request uses the specified method.
// Returns true if the method matches, false otherwise (and writes error response).
func RequireMethod(w http.ResponseWriter, r *http.Request, method string) bool {
	if r.Method == method || (method == http.MethodGet && r.Method == http.MethodHead) {
		return true
	}
	http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	return false
}

// WriteJSON writes a JSON response with the specified status code and data.
func WriteJSON(w http.ResponseWriter, statusCode int, data interface{}) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	return json.NewEncoder(w).Encode(data)
}

// WriteError writes a standard error JSON response.
func WriteError(w http.ResponseWriter, statusCode int, message string) error {
	return WriteJSON(w, statusCode, map[string]string{
		"status": "error",
		"error":  message,
	})
}

// upload is one document received in a request.
type upload struct {
	Name string
	Data []byte
}

// errNoDocument is returned when a request carries no document.
var errNoDocument = errors.New("no document in request")

// readUpload reads one document from r. Multipart requests carry it in the
// "file" field; any other body is the document itself, named by the "name"
// query parameter or after its content type.
func readUpload(w http.ResponseWriter, r *http.Request, maxBytes int64) (upload, error) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBytes)

	if isMultipart(r) {
		uploads, err := readMultipart(r, maxBytes, "file")
		if err != nil {
			return upload{}, err
		}
		return uploads[0], nil
	}

	data, err := io.ReadAll(r.Body)
	if err != nil {
		return upload{}, err
	}
	if len(data) == 0 {
		return upload{}, errNoDocument
	}
	return upload{Name: bodyName(r), Data: data}, nil
}

// readUploads reads every part of the multipart field named field.
func readUploads(w http.ResponseWriter, r *http.Request, maxBytes int64, field string) ([]upload, error) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
	if !isMultipart(r) {
		return nil, fmt.Errorf("expected multipart/form-data with %q parts", field)
	}
	return readMultipart(r, maxBytes, field)
}

func readMultipart(r *http.Request, maxBytes int64, field string) ([]upload, error) {
	if err := r.ParseMultipartForm(maxBytes); err != nil {
		return nil, err
	}
	defer r.MultipartForm.RemoveAll()

	headers := r.MultipartForm.File[field]
	if len(headers) == 0 {
		return nil, errNoDocument
	}

	uploads := make([]upload, 0, len(headers))
	for _, fh := range headers {
		f, err := fh.Open()
		if err != nil {
			return nil, fmt.Errorf("open %s: %w", fh.Filename, err)
		}
		data, err := io.ReadAll(f)
		f.Close()
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", fh.Filename, err)
		}
		uploads = append(uploads, upload{Name: filepath.Base(fh.Filename), Data: data})
	}
	return uploads, nil
}

func isMultipart(r *http.Request) bool {
	mediaType, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	return err == nil && mediaType == "multipart/form-data"
}

// bodyName names a raw request body. The extension selects the decoder.
func bodyName(r *http.Request) string {
	if name := strings.TrimSpace(r.URL.Query().Get("name")); name != "" {
		return filepath.Base(name)
	}
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if strings.Contains(mediaType, "yaml") {
		return "document.yaml"
	}
	return "document.json"
}

// uploadStatus maps a request read error to its response status.
func uploadStatus(err error) int {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		return http.StatusRequestEntityTooLarge
	}
	return http.StatusBadRequest
}

// attachment marks the response as a download named filename.
func attachment(w http.ResponseWriter, filename string) {
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
}
