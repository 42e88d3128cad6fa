package api

import (
	"net/http"
	"strconv"

	"github.com/dgallion1/tocgraft/internal/outline"
)

// handleTOC grafts a table of contents into the uploaded document and
// returns the HTML.
func (s *Server) handleTOC(w http.ResponseWriter, r *http.Request) {
	if !s.parseForm(w, r, s.cfg.MaxUploadBytes) {
		return
	}
	defer r.MultipartForm.RemoveAll()

	opts, ok := formOptions(w, r)
	if !ok {
		return
	}
	up, ok := s.singleUpload(w, r)
	if !ok {
		return
	}

	out, err := s.orchestrator.Worker().Graft(up.filename, up.data, opts)
	if err != nil {
		s.log.Info("graft rejected", "filename", up.filename, "error", err)
		writeGraftError(w, err)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("X-Toc-Headings", strconv.Itoa(outline.Count(out.Outline)))
	w.Header().Set("X-Toc-Inserted", strconv.FormatBool(out.Inserted))
	w.Write([]byte(out.HTML))
}

// handleOutline returns the heading outline of the uploaded document.
func (s *Server) handleOutline(w http.ResponseWriter, r *http.Request) {
	if !s.parseForm(w, r, s.cfg.MaxUploadBytes) {
		return
	}
	defer r.MultipartForm.RemoveAll()

	up, ok := s.singleUpload(w, r)
	if !ok {
		return
	}

	forest, err := s.orchestrator.Worker().Outline(up.filename, up.data)
	if err != nil {
		writeGraftError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"filename": up.filename,
		"headings": outline.Count(forest),
		"depth":    outline.Depth(forest),
		"outline":  outline.Entries(forest),
	})
}
