package api

import (
	"fmt"
	"net/http"

	"github.com/dgallion1/tocgraft/internal/pipeline"
	"github.com/go-chi/chi/v5"
)

func (s *Server) handleSubmitJob(w http.ResponseWriter, r *http.Request) {
	if !s.parseForm(w, r, s.cfg.MaxUploadBytes) {
		return
	}
	defer r.MultipartForm.RemoveAll()

	opts, ok := formOptions(w, r)
	if !ok {
		return
	}
	if err := s.orchestrator.Worker().Validate(opts); err != nil {
		writeGraftError(w, err)
		return
	}
	up, ok := s.singleUpload(w, r)
	if !ok {
		return
	}

	job := pipeline.NewJob(up.filename, r.FormValue("doc_id"), r.FormValue("title"), up.data, opts)
	if err := s.orchestrator.Submit(job); err != nil {
		jsonError(w, err.Error(), http.StatusServiceUnavailable)
		return
	}

	writeJSON(w, http.StatusAccepted, jobAccepted(job))
}

func (s *Server) handleBatchJobs(w http.ResponseWriter, r *http.Request) {
	if !s.parseForm(w, r, s.cfg.MaxUploadBytes*10+9*1024*1024) {
		return
	}
	defer r.MultipartForm.RemoveAll()

	opts, ok := formOptions(w, r)
	if !ok {
		return
	}
	if err := s.orchestrator.Worker().Validate(opts); err != nil {
		writeGraftError(w, err)
		return
	}

	files := r.MultipartForm.File["files"]
	if len(files) == 0 {
		jsonError(w, "at least one file is required", http.StatusBadRequest)
		return
	}

	results := make([]map[string]any, 0, len(files))
	for _, fh := range files {
		up, _, err := s.readUpload(fh)
		if err != nil {
			results = append(results, map[string]any{
				"filename": up.filename,
				"error":    err.Error(),
			})
			continue
		}

		job := pipeline.NewJob(up.filename, "", "", up.data, opts)
		if err := s.orchestrator.Submit(job); err != nil {
			results = append(results, map[string]any{
				"filename": up.filename,
				"error":    err.Error(),
			})
			continue
		}

		entry := jobAccepted(job)
		entry["filename"] = up.filename
		results = append(results, entry)
	}

	writeJSON(w, http.StatusAccepted, map[string]any{"jobs": results})
}

func jobAccepted(job *pipeline.Job) map[string]any {
	snap := job.Snapshot()
	return map[string]any{
		"job_id":   snap.ID,
		"doc_id":   snap.DocID,
		"status":   snap.Status,
		"poll_url": fmt.Sprintf("/api/jobs/%s/status", snap.ID),
	}
}

func (s *Server) handleJobStatus(w http.ResponseWriter, r *http.Request) {
	job := s.orchestrator.GetJob(chi.URLParam(r, "jobID"))
	if job == nil {
		jsonError(w, "job not found", http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, job.Snapshot())
}

// handleJobResult returns the grafted HTML of a finished job, or the outline
// as JSON with ?format=json.
func (s *Server) handleJobResult(w http.ResponseWriter, r *http.Request) {
	job := s.orchestrator.GetJob(chi.URLParam(r, "jobID"))
	if job == nil {
		jsonError(w, "job not found", http.StatusNotFound)
		return
	}

	res := job.Result()
	if res == nil {
		snap := job.Snapshot()
		if snap.Status == pipeline.StatusFailed {
			writeJSON(w, http.StatusUnprocessableEntity, map[string]any{
				"error":  "job failed",
				"status": snap.Status,
				"errors": snap.Progress.Errors,
			})
			return
		}
		writeJSON(w, http.StatusConflict, map[string]any{
			"error":  "job not finished",
			"status": snap.Status,
		})
		return
	}

	if r.URL.Query().Get("format") == "json" {
		writeJSON(w, http.StatusOK, res)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write([]byte(res.HTML))
}
