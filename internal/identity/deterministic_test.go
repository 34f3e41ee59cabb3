package identity_test

import (
	"testing"

	"github.com/goliatone/go-content-api/internal/identity"
	"github.com/google/uuid"
)

func TestUUIDDeterministic(t *testing.T) {
	a := identity.UUID("content-api:node:article:first-post")
	b := identity.UUID("content-api:node:article:first-post")
	if a != b {
		t.Fatalf("expected stable uuid, got %s and %s", a, b)
	}
	if a == uuid.Nil {
		t.Fatal("expected non-nil uuid")
	}

	other := identity.UUID("content-api:node:article:second-post")
	if a == other {
		t.Fatal("expected distinct keys to yield distinct uuids")
	}
}

func TestUUIDEmptyKey(t *testing.T) {
	if identity.UUID("   ") != uuid.Nil {
		t.Fatal("expected nil uuid for blank key")
	}
}

func TestEntityUUIDNormalizesSlug(t *testing.T) {
	a := identity.EntityUUID("node", "article", "First-Post")
	b := identity.EntityUUID("node", "article", "  first-post ")
	if a != b {
		t.Fatalf("expected case and whitespace insensitive slug, got %s and %s", a, b)
	}

	if identity.EntityUUID("node", "article", "x") == identity.EntityUUID("node", "product", "x") {
		t.Fatal("expected bundle to participate in the key")
	}
}

func TestCacheKeyStable(t *testing.T) {
	a := identity.CacheKey("search", "camp", "en", "10", "0")
	b := identity.CacheKey("search", "camp", "en", "10", "0")
	if a != b {
		t.Fatalf("expected stable cache key, got %q and %q", a, b)
	}
	if a == identity.CacheKey("search", "camp", "zh", "10", "0") {
		t.Fatal("expected parameter changes to change the key")
	}
}
