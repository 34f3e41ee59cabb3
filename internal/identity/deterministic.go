package identity

import (
	"strings"

	hashid "github.com/goliatone/hashid/pkg/hashid"
	"github.com/google/uuid"
)

// UUID derives a deterministic UUID from a stable key using go-hashid.
//
// Callers must ensure key construction prevents cross-entity collisions
// (prefix by domain/kind).
func UUID(key string) uuid.UUID {
	trimmed := strings.TrimSpace(key)
	if trimmed == "" {
		return uuid.Nil
	}
	uid, err := hashid.NewUUID(trimmed, hashid.WithHashAlgorithm(hashid.SHA256), hashid.WithNormalization(true))
	if err != nil || uid == uuid.Nil {
		return uuid.NewSHA1(uuid.NameSpaceOID, []byte(trimmed))
	}
	return uid
}

// EntityUUID identifies one seeded content entity.
func EntityUUID(kind, bundle, slug string) uuid.UUID {
	return UUID("content-api:" + kind + ":" + bundle + ":" + strings.ToLower(strings.TrimSpace(slug)))
}

// TermUUID identifies one seeded taxonomy term.
func TermUUID(vocabulary, name string) uuid.UUID {
	return UUID("content-api:taxonomy_term:" + vocabulary + ":" + strings.ToLower(strings.TrimSpace(name)))
}

// FileUUID identifies one seeded managed file by its storage URI.
func FileUUID(uri string) uuid.UUID {
	return UUID("content-api:file:" + strings.TrimSpace(uri))
}

// CacheKey derives a stable cache key from request descriptor parts. The
// hashed form keeps keys short and uniform regardless of parameter length.
func CacheKey(parts ...string) string {
	return UUID(strings.Join(parts, "|")).String()
}
