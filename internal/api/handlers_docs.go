package api

import (
	"net/http"
	"strings"

	"github.com/dgallion1/tocgraft/internal/pathstore"
	"github.com/go-chi/chi/v5"
)

// handleListDocuments lists published documents.
func (s *Server) handleListDocuments(w http.ResponseWriter, r *http.Request) {
	if s.docs == nil {
		jsonError(w, "publishing is disabled", http.StatusServiceUnavailable)
		return
	}

	children, err := s.docs.ListChildren(r.Context(), pathstore.DocumentsPrefix, 200)
	if err != nil {
		jsonError(w, "failed to list documents: "+err.Error(), http.StatusBadGateway)
		return
	}

	// Filter to only meta nodes.
	docs := []map[string]any{}
	for _, child := range children {
		docID, ok := metaDocID(child.Key)
		if !ok {
			continue
		}
		docs = append(docs, map[string]any{
			"doc_id": docID,
			"key":    child.Key,
			"value":  child.Value,
		})
	}

	writeJSON(w, http.StatusOK, map[string]any{"documents": docs})
}

// metaDocID extracts the document id from a ".../<docID>/meta" key, dotted
// or slashed.
func metaDocID(key string) (string, bool) {
	parts := strings.FieldsFunc(key, func(r rune) bool { return r == '.' || r == '/' })
	if len(parts) < 2 || parts[len(parts)-1] != "meta" {
		return "", false
	}
	return parts[len(parts)-2], true
}

// handleDeleteDocument deletes a published outline and its hash index entry.
func (s *Server) handleDeleteDocument(w http.ResponseWriter, r *http.Request) {
	if s.docs == nil {
		jsonError(w, "publishing is disabled", http.StatusServiceUnavailable)
		return
	}

	ctx := r.Context()
	docID := chi.URLParam(r, "docID")

	meta, err := s.docs.GetNode(ctx, pathstore.MetaKey(docID))
	if err != nil {
		jsonError(w, "failed to read document: "+err.Error(), http.StatusBadGateway)
		return
	}
	if meta == nil {
		jsonError(w, "document not found", http.StatusNotFound)
		return
	}

	hashDeleted := false
	if hash := contentHash(meta.Value); hash != "" {
		if err := s.docs.DeleteNode(ctx, pathstore.HashKey(hash, docID), false); err != nil {
			s.log.Warn("hash index delete failed", "doc_id", docID, "error", err)
		} else {
			hashDeleted = true
		}
	}

	if err := s.docs.DeleteNode(ctx, pathstore.DocumentKey(docID), true); err != nil {
		jsonError(w, "failed to delete document: "+err.Error(), http.StatusBadGateway)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"doc_id":             docID,
		"deleted":            true,
		"hash_index_deleted": hashDeleted,
	})
}

func contentHash(value any) string {
	m, ok := value.(map[string]any)
	if !ok {
		return ""
	}
	hash, _ := m["content_hash"].(string)
	return hash
}
