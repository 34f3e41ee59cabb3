package document

import (
	"context"
	"fmt"

	"github.com/goliatone/go-content-api/entity"
)

const (
	productBundle     = "product"
	variantsField     = "field_p_attributes"
	categoryField     = "field_p_categories"
	productPriceField = "field_p_price"
	variantColorField = "field_v_color"
	variantPriceField = "field_v_price"
	variantImageField = "field_v_images"
	fallbackImageFld  = "field_image"

	recommendedLimit = 6
)

// AssembleProduct builds the product document and attaches the detail-page
// helpers: the color options mined from variant sub-entities and up to six
// same-category sibling products.
func (s *Service) AssembleProduct(ctx context.Context, e *entity.Entity, target, active string) (*Document, error) {
	doc, err := s.Assemble(ctx, e, target, active)
	if err != nil {
		return nil, err
	}

	lc := langContext{target: target, active: active}
	helpers := &ProductHelpers{
		ColorOptions:        s.colorOptions(ctx, lc, e),
		RecommendedProducts: s.recommendedProducts(ctx, lc, e),
	}
	doc.ProductHelpers = helpers
	return doc, nil
}

// colorOptions walks the product's variants and collects the distinct color
// terms they reference, in variant order.
func (s *Service) colorOptions(ctx context.Context, lc langContext, product *entity.Entity) []ColorOption {
	options := []ColorOption{}
	seen := map[int64]struct{}{}

	for _, variant := range s.loadVariants(ctx, product) {
		tr := lc.resolve(variant)
		items := tr.Field(variantColorField)
		if len(items) == 0 {
			continue
		}
		term, err := s.store.Load(ctx, entity.KindTerm, items[0].TargetID)
		if err != nil {
			continue
		}
		if _, dup := seen[term.ID]; dup {
			continue
		}
		seen[term.ID] = struct{}{}

		termTr := lc.resolve(term)
		option := ColorOption{ID: term.ID, Name: termTr.Title, Label: termTr.Title}
		if codes := termTr.Field("field_t_code"); len(codes) > 0 {
			option.Code = stringValue(codes[0].Value)
		}
		options = append(options, option)
	}
	return options
}

// recommendedProducts returns sibling published products sharing the same
// category term, title ascending, excluding the product itself.
func (s *Service) recommendedProducts(ctx context.Context, lc langContext, product *entity.Entity) []RecommendedProduct {
	cards := []RecommendedProduct{}

	tr := lc.resolve(product)
	categories := tr.Field(categoryField)
	if len(categories) == 0 {
		return cards
	}

	ids, err := s.store.Query(entity.KindNode).
		Condition("type", productBundle).
		Condition("status", true).
		Condition(categoryField+".target_id", categories[0].TargetID).
		Sort("title", "asc").
		Range(0, recommendedLimit+1).
		Execute(ctx)
	if err != nil {
		s.log.Warn("recommended product lookup failed", "product", product.ID, "error", err)
		return cards
	}

	siblings, err := s.store.LoadMultiple(ctx, entity.KindNode, ids)
	if err != nil {
		return cards
	}

	for _, sibling := range siblings {
		if sibling.ID == product.ID {
			continue
		}
		if len(cards) == recommendedLimit {
			break
		}
		siblingTr := lc.resolve(sibling)
		cards = append(cards, RecommendedProduct{
			ID:    sibling.ID,
			Name:  siblingTr.Title,
			Title: siblingTr.Title,
			URL:   s.urls.Canonical(sibling, siblingTr.Language),
			Price: s.productPrice(ctx, lc, sibling),
			Image: s.productImage(ctx, lc, sibling),
		})
	}
	return cards
}

// productPrice formats the display price, probing the first variant before
// falling back to the product-level price field. Unpriced products render
// the zero price rather than an empty string.
func (s *Service) productPrice(ctx context.Context, lc langContext, product *entity.Entity) string {
	for _, variant := range s.loadVariants(ctx, product) {
		tr := lc.resolve(variant)
		if items := tr.Field(variantPriceField); len(items) > 0 {
			return fmt.Sprintf("HK$%.2f", toFloat64(items[0].Value))
		}
	}
	tr := lc.resolve(product)
	if items := tr.Field(productPriceField); len(items) > 0 {
		return fmt.Sprintf("HK$%.2f", toFloat64(items[0].Value))
	}
	return "HK$0.00"
}

// productImage probes variant images first, then the product image field,
// then the configured placeholder. The card uses the recommended derivative.
func (s *Service) productImage(ctx context.Context, lc langContext, product *entity.Entity) string {
	for _, variant := range s.loadVariants(ctx, product) {
		tr := lc.resolve(variant)
		if url := s.styledImageURL(ctx, tr.Field(variantImageField)); url != "" {
			return url
		}
	}
	tr := lc.resolve(product)
	if url := s.styledImageURL(ctx, tr.Field(fallbackImageFld)); url != "" {
		return url
	}
	return s.placeholderImage
}

func (s *Service) styledImageURL(ctx context.Context, items []entity.Item) string {
	if len(items) == 0 {
		return ""
	}
	file, err := s.loadFile(ctx, items[0].TargetID)
	if err != nil || file == nil {
		return ""
	}
	if s.recommendedStyle != "" {
		return s.urls.StyledURL(s.recommendedStyle, file.URI)
	}
	return s.urls.FileURL(file.URI)
}

func (s *Service) loadVariants(ctx context.Context, product *entity.Entity) []*entity.Entity {
	tr := product.Default()
	items := tr.Field(variantsField)
	if len(items) == 0 {
		return nil
	}
	ids := make([]int64, 0, len(items))
	for _, item := range items {
		ids = append(ids, item.TargetID)
	}
	variants, err := s.store.LoadMultiple(ctx, entity.KindParagraph, ids)
	if err != nil {
		return nil
	}
	return variants
}
