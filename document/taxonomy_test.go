package document_test

import (
	"context"
	"testing"

	"github.com/goliatone/go-content-api/document"
	"github.com/goliatone/go-content-api/entity"
)

func TestAssembleTerm(t *testing.T) {
	store, svc := newFixture()
	record, err := store.Load(context.Background(), entity.KindTerm, 70)
	if err != nil {
		t.Fatalf("load term: %v", err)
	}

	term, err := svc.AssembleTerm(context.Background(), record, "en", "en")
	if err != nil {
		t.Fatalf("assemble term: %v", err)
	}

	if term.ID != 70 || term.Name != "Paint" {
		t.Fatalf("unexpected term identity %+v", term)
	}
	if term.Vocabulary != "p_category" || term.Language != "en" {
		t.Fatalf("unexpected vocabulary resolution %+v", term)
	}

	if len(term.Parents) != 1 || term.Parents[0].ID != 69 || term.Parents[0].Name != "Root" {
		t.Fatalf("unexpected parents %+v", term.Parents)
	}

	code, ok := term.Fields["field_t_code"].(document.Scalar)
	if !ok || code.Value != "#ffffff" {
		t.Fatalf("expected color code field, got %#v", term.Fields["field_t_code"])
	}

	if len(term.Translations) != 2 {
		t.Fatalf("expected 2 term translations got %d", len(term.Translations))
	}
	for _, tr := range term.Translations {
		if tr.Name != tr.TermName {
			t.Fatalf("name and term_name must match, got %+v", tr)
		}
	}
}

func TestAssembleTermWithoutParents(t *testing.T) {
	store, svc := newFixture()
	record, _ := store.Load(context.Background(), entity.KindTerm, 69)

	term, err := svc.AssembleTerm(context.Background(), record, "en", "en")
	if err != nil {
		t.Fatalf("assemble term: %v", err)
	}
	if term.Parents == nil {
		t.Fatal("parents must be an empty list, not nil")
	}
	if len(term.Parents) != 0 {
		t.Fatalf("expected no parents got %+v", term.Parents)
	}
}

func TestAssembleTermLanguageVariant(t *testing.T) {
	store, svc := newFixture()
	record, _ := store.Load(context.Background(), entity.KindTerm, 70)

	term, err := svc.AssembleTerm(context.Background(), record, "zh", "zh")
	if err != nil {
		t.Fatalf("assemble term: %v", err)
	}
	if term.Name != "Paint zh" || term.Language != "zh" {
		t.Fatalf("expected zh variant, got %+v", term)
	}
	// Parents resolve in the same language context.
	if len(term.Parents) != 1 || term.Parents[0].Name != "Root zh" {
		t.Fatalf("expected zh parent name, got %+v", term.Parents)
	}
}
