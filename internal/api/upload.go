package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/dgallion1/tocgraft/internal/parser"
	"github.com/dgallion1/tocgraft/internal/pipeline"
	"github.com/dgallion1/tocgraft/internal/toc"
)

// upload is one document read from a multipart request.
type upload struct {
	filename string
	data     []byte
}

// parseForm limits the body to limit bytes plus 1MB of form overhead and
// parses it as multipart.
func (s *Server) parseForm(w http.ResponseWriter, r *http.Request, limit int64) bool {
	r.Body = http.MaxBytesReader(w, r.Body, limit+1024*1024)
	if err := r.ParseMultipartForm(32 << 20); err != nil {
		jsonError(w, "invalid multipart form: "+err.Error(), http.StatusBadRequest)
		return false
	}
	return true
}

// readUpload opens fh and checks its extension and size. The returned
// message is suitable for the client.
func (s *Server) readUpload(fh *multipart.FileHeader) (upload, int, error) {
	filename := sanitizeFilename(fh.Filename)
	if !parser.IsSupportedExtension(filename) {
		return upload{filename: filename}, http.StatusBadRequest, fmt.Errorf("unsupported file type: %s", filepath.Ext(filename))
	}

	f, err := fh.Open()
	if err != nil {
		return upload{filename: filename}, http.StatusInternalServerError, errors.New("failed to open file")
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, s.cfg.MaxUploadBytes+1))
	if err != nil {
		return upload{filename: filename}, http.StatusInternalServerError, errors.New("failed to read file")
	}
	if int64(len(data)) > s.cfg.MaxUploadBytes {
		return upload{filename: filename}, http.StatusRequestEntityTooLarge, fmt.Errorf("file exceeds max size (%d bytes)", s.cfg.MaxUploadBytes)
	}
	return upload{filename: filename, data: data}, http.StatusOK, nil
}

// singleUpload reads the "file" field of a parsed form.
func (s *Server) singleUpload(w http.ResponseWriter, r *http.Request) (upload, bool) {
	_, fh, err := r.FormFile("file")
	if err != nil {
		jsonError(w, "file is required: "+err.Error(), http.StatusBadRequest)
		return upload{}, false
	}
	up, code, err := s.readUpload(fh)
	if err != nil {
		jsonError(w, err.Error(), code)
		return upload{}, false
	}
	return up, true
}

// formOptions decodes the optional "options" field (YAML or JSON).
func formOptions(w http.ResponseWriter, r *http.Request) (toc.Config, bool) {
	raw := r.FormValue("options")
	if strings.TrimSpace(raw) == "" {
		return toc.Config{}, true
	}
	cfg, err := toc.ParseConfig([]byte(raw))
	if err != nil {
		writeGraftError(w, err)
		return toc.Config{}, false
	}
	return cfg, true
}

// writeGraftError maps pipeline and toc failures to status codes:
// configuration problems are the client's request, a document without a
// match or headings is unprocessable.
func writeGraftError(w http.ResponseWriter, err error) {
	var parseErr *pipeline.ParseError
	switch {
	case errors.Is(err, toc.ErrConfiguration):
		jsonError(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, toc.ErrSelectorNotFound), errors.Is(err, toc.ErrNoHeadingsFound):
		jsonError(w, err.Error(), http.StatusUnprocessableEntity)
	case errors.As(err, &parseErr):
		jsonError(w, err.Error(), http.StatusUnprocessableEntity)
	default:
		jsonError(w, err.Error(), http.StatusInternalServerError)
	}
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(v)
}

func jsonError(w http.ResponseWriter, msg string, code int) {
	writeJSON(w, code, map[string]string{"error": msg})
}

func sanitizeFilename(name string) string {
	// Strip path components, keep only the base name.
	name = filepath.Base(name)
	// Remove any path separators that might have survived.
	name = strings.ReplaceAll(name, "/", "_")
	name = strings.ReplaceAll(name, "\\", "_")
	name = strings.ReplaceAll(name, "..", "_")
	if name == "" || name == "." {
		name = "unnamed"
	}
	return name
}
