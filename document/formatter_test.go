package document_test

import (
	"context"
	"testing"

	"github.com/goliatone/go-content-api/document"
	"github.com/goliatone/go-content-api/entity"
)

func assembleFixtureArticle(t *testing.T) *document.Document {
	t.Helper()
	store, svc := newFixture()
	node, err := store.Load(context.Background(), entity.KindNode, 1)
	if err != nil {
		t.Fatalf("load node: %v", err)
	}
	doc, err := svc.Assemble(context.Background(), node, "en", "en")
	if err != nil {
		t.Fatalf("assemble: %v", err)
	}
	return doc
}

func TestFormatDateTime(t *testing.T) {
	doc := assembleFixtureArticle(t)

	value, ok := doc.Fields["field_date"].(document.DateTime)
	if !ok {
		t.Fatalf("expected DateTime got %T", doc.Fields["field_date"])
	}
	if value.Value != "2024-03-01T10:00:00Z" {
		t.Fatalf("unexpected raw value %q", value.Value)
	}
	if value.Timestamp != 1709287200 {
		t.Fatalf("unexpected timestamp %d", value.Timestamp)
	}
	if value.Formatted != "2024-03-01 10:00:00" {
		t.Fatalf("unexpected display value %q", value.Formatted)
	}
}

func TestFormatScalars(t *testing.T) {
	doc := assembleFixtureArticle(t)

	if flag, ok := doc.Fields["field_flag"].(document.Boolean); !ok || !bool(flag) {
		t.Fatalf("expected Boolean(true) got %#v", doc.Fields["field_flag"])
	}
	if count, ok := doc.Fields["field_count"].(document.Integer); !ok || count != 42 {
		t.Fatalf("expected Integer(42) got %#v", doc.Fields["field_count"])
	}
}

func TestFormatImageWithStyles(t *testing.T) {
	doc := assembleFixtureArticle(t)

	img, ok := doc.Fields["field_image"].(document.Image)
	if !ok {
		t.Fatalf("expected single Image got %T", doc.Fields["field_image"])
	}
	if img.URL != testBase+"/sites/default/files/2024/cover.jpg" {
		t.Fatalf("unexpected file url %q", img.URL)
	}
	if img.Alt != "Cover" || img.Filesize != 2048 || img.MimeType != "image/jpeg" {
		t.Fatalf("unexpected image metadata %+v", img)
	}
	want := testBase + "/sites/default/files/styles/large/public/2024/cover.jpg"
	if img.ImageStyles["large"] != want {
		t.Fatalf("unexpected derivative url %q", img.ImageStyles["large"])
	}
	if len(img.ImageStyles) != 2 {
		t.Fatalf("expected full style catalog got %v", img.ImageStyles)
	}
}

func TestFormatTermReference(t *testing.T) {
	doc := assembleFixtureArticle(t)

	ref, ok := doc.Fields["field_tags"].(document.Reference)
	if !ok {
		t.Fatalf("expected single Reference got %T", doc.Fields["field_tags"])
	}
	if ref.TargetID != 70 || ref.ID != 70 {
		t.Fatalf("unexpected target ids %+v", ref)
	}
	if ref.Type != "taxonomy_term" || ref.Bundle != "p_category" {
		t.Fatalf("unexpected reference typing %+v", ref)
	}
	if ref.Label != "Paint" {
		t.Fatalf("expected resolved label, got %q", ref.Label)
	}
	if ref.ColorCode != "#ffffff" {
		t.Fatalf("expected color code decoration, got %q", ref.ColorCode)
	}
}

func TestFormatParagraph(t *testing.T) {
	doc := assembleFixtureArticle(t)

	block, ok := doc.Fields["field_blocks"].(document.Paragraph)
	if !ok {
		t.Fatalf("expected single Paragraph got %T", doc.Fields["field_blocks"])
	}
	if block.ID != 500 || block.Type != "text_block" {
		t.Fatalf("unexpected paragraph identity %+v", block)
	}
	quote, ok := block.Fields["field_quote"].(document.Scalar)
	if !ok || quote.Value != "stay curious" {
		t.Fatalf("expected nested scalar, got %#v", block.Fields["field_quote"])
	}
}

func TestFormatMultiValueStaysList(t *testing.T) {
	store, _ := newFixture()
	store.RegisterBundle(entity.Bundle{ID: "gallery", Label: "Gallery"}, []entity.FieldDefinition{
		{Name: "field_colors", Type: entity.FieldListString},
	})
	store.Put(&entity.Entity{
		ID:              20,
		Kind:            entity.KindNode,
		Bundle:          "gallery",
		DefaultLanguage: "en",
		Translations: map[string]*entity.Translation{
			"en": {
				Language:  "en",
				Title:     "Swatches",
				Published: true,
				Fields: map[string][]entity.Item{
					"field_colors": {{Value: "red"}, {Value: "green"}},
				},
			},
		},
	})
	svc := document.New(store, document.NewURLBuilder(testBase, []string{"en"}, "en"))

	node, _ := store.Load(context.Background(), entity.KindNode, 20)
	doc, err := svc.Assemble(context.Background(), node, "en", "en")
	if err != nil {
		t.Fatalf("assemble: %v", err)
	}

	list, ok := doc.Fields["field_colors"].(document.List)
	if !ok {
		t.Fatalf("expected List got %T", doc.Fields["field_colors"])
	}
	if len(list) != 2 {
		t.Fatalf("expected both values preserved, got %d", len(list))
	}
}

func TestFormatDepthGuard(t *testing.T) {
	store, _ := newFixture()
	store.RegisterBundle(entity.Bundle{ID: "stack", Label: "Stack"}, []entity.FieldDefinition{
		{Name: "field_blocks", Type: entity.FieldParagraphs},
	})
	store.RegisterFieldDefinitions(entity.KindParagraph, "wrapper", []entity.FieldDefinition{
		{Name: "field_inner", Type: entity.FieldParagraphs},
	})

	store.Put(&entity.Entity{
		ID:              510,
		Kind:            entity.KindParagraph,
		Bundle:          "wrapper",
		DefaultLanguage: "en",
		Translations: map[string]*entity.Translation{
			"en": {
				Language: "en",
				Fields: map[string][]entity.Item{
					"field_inner": {{TargetID: 500}},
				},
			},
		},
	})
	store.Put(&entity.Entity{
		ID:              21,
		Kind:            entity.KindNode,
		Bundle:          "stack",
		DefaultLanguage: "en",
		Translations: map[string]*entity.Translation{
			"en": {
				Language:  "en",
				Title:     "Deep",
				Published: true,
				Fields: map[string][]entity.Item{
					"field_blocks": {{TargetID: 510}},
				},
			},
		},
	})

	svc := document.New(store,
		document.NewURLBuilder(testBase, []string{"en"}, "en"),
		document.WithMaxDepth(1))

	node, _ := store.Load(context.Background(), entity.KindNode, 21)
	doc, err := svc.Assemble(context.Background(), node, "en", "en")
	if err != nil {
		t.Fatalf("assemble: %v", err)
	}

	wrapper, ok := doc.Fields["field_blocks"].(document.Paragraph)
	if !ok {
		t.Fatalf("expected wrapper paragraph got %T", doc.Fields["field_blocks"])
	}
	inner, ok := wrapper.Fields["field_inner"].(document.Paragraph)
	if !ok {
		t.Fatalf("expected nested paragraph got %T", wrapper.Fields["field_inner"])
	}
	// Past the limit the inner block's own fields are cut off.
	quote, ok := inner.Fields["field_quote"].(document.List)
	if !ok || len(quote) != 0 {
		t.Fatalf("expected depth guard to empty the deepest field, got %#v", inner.Fields["field_quote"])
	}
}
