// Package storage defines the blob-store capability over the single
// fixed bucket holding cut images. Production uses the S3-compatible
// backend; tests and local development use the in-memory backend.
package storage

import (
	"context"
	"strings"
)

// Store is the capability the cut service depends on. Remove failures
// are treated by callers as warnings, never as fatal errors.
type Store interface {
	// Upload writes bytes under objectName, overwriting any prior object.
	Upload(ctx context.Context, objectName string, data []byte, contentType string) error
	// PublicURL derives the publicly fetchable URL for an object name.
	// It is deterministic and performs no network round-trip.
	PublicURL(objectName string) string
	// Remove deletes an object.
	Remove(ctx context.Context, objectName string) error
	// ExtractObjectName recovers the object name from a previously
	// issued public URL. It returns "" when the URL does not match the
	// bucket path shape; callers treat "" as "nothing to delete".
	ExtractObjectName(publicURL string) string
}

// JoinPublicURL builds the canonical public URL for an object:
// <base>/<bucket>/<objectName>.
func JoinPublicURL(publicBase, bucket, objectName string) string {
	return strings.TrimRight(publicBase, "/") + "/" + bucket + "/" + objectName
}

// ObjectNameFromURL inverts JoinPublicURL by locating the fixed
// "/<bucket>/" path segment and stripping any trailing query string.
// Returns "" when the segment is absent or nothing follows it.
func ObjectNameFromURL(bucket, publicURL string) string {
	marker := "/" + bucket + "/"
	idx := strings.Index(publicURL, marker)
	if idx < 0 {
		return ""
	}
	name := publicURL[idx+len(marker):]
	if q := strings.IndexByte(name, '?'); q >= 0 {
		name = name[:q]
	}
	return name
}
