package pathstore

import (
	"fmt"
	"strings"
)

// DocumentsPrefix is the root under which outlines are published.
const DocumentsPrefix = "toc/documents"

// MetaKey is the key of a document's metadata node.
func MetaKey(docID string) string {
	return fmt.Sprintf("%s/%s/meta", DocumentsPrefix, docID)
}

// OutlineKey is the key of a document's published outline.
func OutlineKey(docID string) string {
	return fmt.Sprintf("%s/%s/outline", DocumentsPrefix, docID)
}

// DocumentKey is the key of a document's subtree.
func DocumentKey(docID string) string {
	return DocumentsPrefix + "/" + docID
}

// HashPrefix is the dedup index prefix for a content hash.
func HashPrefix(hash string) string {
	return fmt.Sprintf("%s/by_hash/%s", DocumentsPrefix, hash)
}

// HashKey records that docID was published with content hash hash.
func HashKey(hash, docID string) string {
	return HashPrefix(hash) + "/" + docID
}

// LastSegment returns the final segment of a key path. The server reports
// keys dotted or slashed depending on the endpoint, so both separate.
func LastSegment(key string) string {
	if i := strings.LastIndexAny(key, "./"); i >= 0 {
		return key[i+1:]
	}
	return key
}
