package pathstore

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestPutNode_SendsBodyAndAuth(t *testing.T) {
	var gotPath, gotAuth string
	var gotBody NodeRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPut {
			t.Errorf("expected PUT, got %s", r.Method)
		}
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Errorf("decode body: %v", err)
		}
		w.WriteHeader(http.StatusCreated)
	}))
	defer srv.Close()

	c := NewClient(srv.URL+"/", "secret")
	err := c.PutNode(context.Background(), MetaKey("doc1"), NodeRequest{Value: map[string]any{"title": "T"}, Source: "tocgraft:doc1"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotPath != "/kv/toc/documents/doc1/meta" {
		t.Errorf("unexpected path %q", gotPath)
	}
	if gotAuth != "Bearer secret" {
		t.Errorf("unexpected auth header %q", gotAuth)
	}
	if gotBody.Source != "tocgraft:doc1" {
		t.Errorf("unexpected source %q", gotBody.Source)
	}
}

func TestClient_RetryableStatuses(t *testing.T) {
	tests := []struct {
		status    int
		retryable bool
	}{
		{http.StatusInternalServerError, true},
		{http.StatusBadGateway, true},
		{http.StatusTooManyRequests, true},
		{http.StatusBadRequest, false},
		{http.StatusUnauthorized, false},
	}

	for _, tt := range tests {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "nope", tt.status)
		}))
		c := NewClient(srv.URL, "k")
		err := c.PutNode(context.Background(), "a/b", NodeRequest{Value: 1})
		srv.Close()

		if err == nil {
			t.Fatalf("status %d: expected error", tt.status)
		}
		var re *RetryableError
		if got := errors.As(err, &re); got != tt.retryable {
			t.Errorf("status %d: retryable=%v, want %v (%v)", tt.status, got, tt.retryable, err)
		}
		if tt.retryable && re.StatusCode != tt.status {
			t.Errorf("status %d: RetryableError carries %d", tt.status, re.StatusCode)
		}
	}
}

func TestGetNode_NotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer srv.Close()

	node, err := NewClient(srv.URL, "k").GetNode(context.Background(), "missing")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if node != nil {
		t.Errorf("expected nil node, got %+v", node)
	}
}

func TestGetNode_Decodes(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"key_path":"toc.documents.d1.meta","value":{"title":"Guide"}}`))
	}))
	defer srv.Close()

	node, err := NewClient(srv.URL, "k").GetNode(context.Background(), MetaKey("d1"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if node == nil || node.Key != "toc.documents.d1.meta" {
		t.Fatalf("unexpected node %+v", node)
	}
	value, ok := node.Value.(map[string]any)
	if !ok || value["title"] != "Guide" {
		t.Errorf("unexpected value %#v", node.Value)
	}
}

func TestDeleteNode_Recursive(t *testing.T) {
	var gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodDelete {
			t.Errorf("expected DELETE, got %s", r.Method)
		}
		gotQuery = r.URL.RawQuery
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	if err := NewClient(srv.URL, "k").DeleteNode(context.Background(), DocumentKey("d1"), true); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotQuery != "children=true" {
		t.Errorf("expected children=true, got %q", gotQuery)
	}
}

func TestListChildren(t *testing.T) {
	var gotPath, gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.RawQuery
		w.Write([]byte(`{"nodes":[{"key_path":"toc.documents.by_hash.abc.d1","value":{}}]}`))
	}))
	defer srv.Close()

	nodes, err := NewClient(srv.URL, "k").ListChildren(context.Background(), HashPrefix("abc"), 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotPath != "/kv/toc/documents/by_hash/abc/*" {
		t.Errorf("unexpected path %q", gotPath)
	}
	if gotQuery != "limit=1" {
		t.Errorf("unexpected query %q", gotQuery)
	}
	if len(nodes) != 1 || LastSegment(nodes[0].Key) != "d1" {
		t.Errorf("unexpected nodes %+v", nodes)
	}
}

func TestKeys(t *testing.T) {
	tests := []struct {
		got, want string
	}{
		{MetaKey("d1"), "toc/documents/d1/meta"},
		{OutlineKey("d1"), "toc/documents/d1/outline"},
		{DocumentKey("d1"), "toc/documents/d1"},
		{HashKey("h", "d1"), "toc/documents/by_hash/h/d1"},
		{LastSegment("toc/documents/d1"), "d1"},
		{LastSegment("plain"), "plain"},
	}
	for _, tt := range tests {
		if tt.got != tt.want {
			t.Errorf("got %q, want %q", tt.got, tt.want)
		}
	}
}
