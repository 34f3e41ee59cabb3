package document_test

import (
	"github.com/goliatone/go-content-api/document"
	"github.com/goliatone/go-content-api/entity"
)

const testBase = "https://example.com"

// newFixture builds a bilingual store with an article, a product catalog, a
// taxonomy branch, and the media records they reference.
func newFixture() (*entity.MemoryStore, *document.Service) {
	store := entity.NewMemoryStore([]entity.Language{
		{Code: "en", Name: "English", Direction: "ltr"},
		{Code: "zh", Name: "Chinese", Direction: "ltr", Weight: 1},
	}, "en")

	store.RegisterBundle(entity.Bundle{ID: "article", Label: "Article"}, []entity.FieldDefinition{
		{Name: "field_date", Type: entity.FieldDateTime},
		{Name: "field_flag", Type: entity.FieldBoolean},
		{Name: "field_count", Type: entity.FieldInteger},
		{Name: "field_image", Type: entity.FieldImage},
		{Name: "field_tags", Type: entity.FieldReference, Target: entity.KindTerm},
		{Name: "field_blocks", Type: entity.FieldParagraphs},
	})
	store.RegisterBundle(entity.Bundle{ID: "product", Label: "Product"}, []entity.FieldDefinition{
		{Name: "field_p_attributes", Type: entity.FieldParagraphs},
		{Name: "field_p_categories", Type: entity.FieldReference, Target: entity.KindTerm},
		{Name: "field_p_price", Type: entity.FieldDecimal},
		{Name: "field_image", Type: entity.FieldImage},
	})
	store.RegisterVocabulary(entity.Vocabulary{ID: "p_category", Label: "Category"}, []entity.FieldDefinition{
		{Name: "field_t_code", Type: entity.FieldString},
	})
	store.RegisterFieldDefinitions(entity.KindParagraph, "text_block", []entity.FieldDefinition{
		{Name: "field_quote", Type: entity.FieldString},
	})
	store.RegisterFieldDefinitions(entity.KindParagraph, "variant", []entity.FieldDefinition{
		{Name: "field_v_color", Type: entity.FieldReference, Target: entity.KindTerm},
		{Name: "field_v_price", Type: entity.FieldDecimal},
		{Name: "field_v_images", Type: entity.FieldImage},
	})
	store.RegisterImageStyles(entity.ImageStyle{Name: "large"}, entity.ImageStyle{Name: "maxheight_551"})

	store.Put(&entity.Entity{
		ID:   900,
		Kind: entity.KindFile,
		File: &entity.FileInfo{
			URI:      "public://2024/cover.jpg",
			Filename: "cover.jpg",
			Size:     2048,
			MimeType: "image/jpeg",
		},
	})

	store.Put(term(69, "Root", "", nil))
	store.Put(term(70, "Paint", "#ffffff", []int64{69}))
	store.Put(term(71, "Blue", "BLU", nil))

	store.Put(&entity.Entity{
		ID:              500,
		Kind:            entity.KindParagraph,
		Bundle:          "text_block",
		DefaultLanguage: "en",
		Translations: map[string]*entity.Translation{
			"en": {
				Language:  "en",
				Published: true,
				Fields: map[string][]entity.Item{
					"field_quote": {{Value: "stay curious"}},
				},
			},
		},
	})

	store.Put(&entity.Entity{
		ID:              1,
		Kind:            entity.KindNode,
		Bundle:          "article",
		DefaultLanguage: "en",
		Translations: map[string]*entity.Translation{
			"en": {
				Language:   "en",
				Title:      "First Post",
				Published:  true,
				Created:    100,
				Updated:    200,
				AuthorID:   9,
				AuthorName: "editor",
				Fields: map[string][]entity.Item{
					"body": {{
						Value:     "Hello **world**",
						Processed: "<p>Hello <strong>world</strong></p>",
						Summary:   "Hello",
						Format:    "markdown",
					}},
					"field_date":   {{Value: "2024-03-01T10:00:00Z"}},
					"field_flag":   {{Value: "1"}},
					"field_count":  {{Value: "42"}},
					"field_image":  {{TargetID: 900, Alt: "Cover", Title: "Cover image"}},
					"field_tags":   {{TargetID: 70}},
					"field_blocks": {{TargetID: 500}},
				},
			},
			"zh": {
				Language:  "zh",
				Title:     "第一篇",
				Published: true,
				Created:   100,
				Updated:   210,
			},
			"fr": {
				Language:  "fr",
				Title:     "Premier article",
				Published: false,
				Created:   100,
				Updated:   100,
			},
		},
		Aliases: map[string]string{"en": "/articles/first-post"},
	})

	putProducts(store)

	urls := document.NewURLBuilder(testBase, []string{"en", "zh"}, "en")
	return store, document.New(store, urls)
}

func putProducts(store *entity.MemoryStore) {
	store.Put(variant(601, 71, "249.90", 900))
	store.Put(variant(602, 71, "", 0))

	store.Put(product(10, "Blue Chair", map[string][]entity.Item{
		"field_p_attributes": {{TargetID: 601}, {TargetID: 602}},
		"field_p_categories": {{TargetID: 70}},
		"field_p_price":      {{Value: "199.5"}},
		"field_image":        {{TargetID: 900}},
	}))
	store.Put(product(11, "Alpha Chair", map[string][]entity.Item{
		"field_p_categories": {{TargetID: 70}},
		"field_p_price":      {{Value: "50"}},
	}))
	store.Put(product(12, "Zed Chair", map[string][]entity.Item{
		"field_p_categories": {{TargetID: 70}},
	}))
	store.Put(product(13, "Other Shelf", map[string][]entity.Item{
		"field_p_categories": {{TargetID: 71}},
	}))
}

func product(id int64, title string, fields map[string][]entity.Item) *entity.Entity {
	return &entity.Entity{
		ID:              id,
		Kind:            entity.KindNode,
		Bundle:          "product",
		DefaultLanguage: "en",
		Translations: map[string]*entity.Translation{
			"en": {
				Language:  "en",
				Title:     title,
				Published: true,
				Created:   100,
				Updated:   100,
				Fields:    fields,
			},
		},
	}
}

func variant(id, colorTerm int64, price string, image int64) *entity.Entity {
	fields := map[string][]entity.Item{
		"field_v_color": {{TargetID: colorTerm}},
	}
	if price != "" {
		fields["field_v_price"] = []entity.Item{{Value: price}}
	}
	if image != 0 {
		fields["field_v_images"] = []entity.Item{{TargetID: image}}
	}
	return &entity.Entity{
		ID:              id,
		Kind:            entity.KindParagraph,
		Bundle:          "variant",
		DefaultLanguage: "en",
		Translations: map[string]*entity.Translation{
			"en": {Language: "en", Published: true, Fields: fields},
		},
	}
}

func term(id int64, title, code string, parents []int64) *entity.Entity {
	fields := map[string][]entity.Item{}
	if code != "" {
		fields["field_t_code"] = []entity.Item{{Value: code}}
	}
	return &entity.Entity{
		ID:              id,
		Kind:            entity.KindTerm,
		Bundle:          "p_category",
		DefaultLanguage: "en",
		ParentIDs:       parents,
		Translations: map[string]*entity.Translation{
			"en": {Language: "en", Title: title, Published: true, Fields: fields},
			"zh": {Language: "zh", Title: title + " zh", Published: true, Fields: fields},
		},
	}
}
