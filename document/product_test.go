package document_test

import (
	"context"
	"testing"

	"github.com/goliatone/go-content-api/entity"
)

func TestAssembleProductColorOptions(t *testing.T) {
	store, svc := newFixture()
	node, _ := store.Load(context.Background(), entity.KindNode, 10)

	doc, err := svc.AssembleProduct(context.Background(), node, "en", "en")
	if err != nil {
		t.Fatalf("assemble product: %v", err)
	}
	if doc.ProductHelpers == nil {
		t.Fatal("expected product helpers")
	}

	options := doc.ProductHelpers.ColorOptions
	if len(options) != 1 {
		t.Fatalf("expected deduped color options, got %d", len(options))
	}
	if options[0].ID != 71 || options[0].Name != "Blue" {
		t.Fatalf("unexpected option %+v", options[0])
	}
	// The label stays the term name; the short code rides alongside.
	if options[0].Label != "Blue" {
		t.Fatalf("expected term name label, got %q", options[0].Label)
	}
	if options[0].Code != "BLU" {
		t.Fatalf("expected color code, got %q", options[0].Code)
	}
}

func TestAssembleProductRecommended(t *testing.T) {
	store, svc := newFixture()
	node, _ := store.Load(context.Background(), entity.KindNode, 10)

	doc, err := svc.AssembleProduct(context.Background(), node, "en", "en")
	if err != nil {
		t.Fatalf("assemble product: %v", err)
	}

	cards := doc.ProductHelpers.RecommendedProducts
	if len(cards) != 2 {
		t.Fatalf("expected 2 same-category siblings, got %d", len(cards))
	}
	// Title ascending, the product itself excluded.
	if cards[0].ID != 11 || cards[1].ID != 12 {
		t.Fatalf("unexpected sibling order %+v", cards)
	}
	for _, card := range cards {
		if card.ID == 10 {
			t.Fatal("product must not recommend itself")
		}
	}

	if cards[0].Price != "HK$50.00" {
		t.Fatalf("expected formatted product price, got %q", cards[0].Price)
	}
	if cards[1].Price != "HK$0.00" {
		t.Fatalf("expected zero price when no price field, got %q", cards[1].Price)
	}
	if cards[0].Image != "/themes/custom/react/images/placeholder.png" {
		t.Fatalf("expected placeholder image, got %q", cards[0].Image)
	}
	if cards[0].URL == "" {
		t.Fatal("expected canonical url for sibling card")
	}
}

func TestAssembleProductNoCategory(t *testing.T) {
	store, svc := newFixture()
	store.Put(product(14, "Floating Lamp", map[string][]entity.Item{
		"field_p_price": {{Value: "10"}},
	}))
	node, _ := store.Load(context.Background(), entity.KindNode, 14)

	doc, err := svc.AssembleProduct(context.Background(), node, "en", "en")
	if err != nil {
		t.Fatalf("assemble product: %v", err)
	}
	if len(doc.ProductHelpers.RecommendedProducts) != 0 {
		t.Fatalf("expected no recommendations without a category, got %d", len(doc.ProductHelpers.RecommendedProducts))
	}
	if len(doc.ProductHelpers.ColorOptions) != 0 {
		t.Fatalf("expected no color options without variants, got %d", len(doc.ProductHelpers.ColorOptions))
	}
}

func TestProductVariantPriceAndImageProbing(t *testing.T) {
	store, svc := newFixture()
	// A sibling in category 71 forces product 13's recommendation list to
	// include product 10's variant-driven card fields.
	store.Put(product(15, "Variant Rich", map[string][]entity.Item{
		"field_p_attributes": {{TargetID: 601}},
		"field_p_categories": {{TargetID: 71}},
		"field_p_price":      {{Value: "999"}},
	}))
	node, _ := store.Load(context.Background(), entity.KindNode, 13)

	doc, err := svc.AssembleProduct(context.Background(), node, "en", "en")
	if err != nil {
		t.Fatalf("assemble product: %v", err)
	}

	cards := doc.ProductHelpers.RecommendedProducts
	if len(cards) != 1 || cards[0].ID != 15 {
		t.Fatalf("expected variant-rich sibling, got %+v", cards)
	}
	// The variant price wins over the product-level price.
	if cards[0].Price != "HK$249.90" {
		t.Fatalf("expected variant price, got %q", cards[0].Price)
	}
	want := testBase + "/sites/default/files/styles/maxheight_551/public/2024/cover.jpg"
	if cards[0].Image != want {
		t.Fatalf("expected styled variant image, got %q", cards[0].Image)
	}
}
