package client

import (
	"context"
	"sync"
)

// Bundle and vocabulary names of the deployed site. The generic operations
// remain available for any other bundle.
const (
	bundleRecipe  = "recipe"
	bundleArticle = "article"
	bundleProduct = "product"

	vocabularyRecipeCategories  = "recipe_category"
	vocabularyArticleCategories = "article_category"
)

// FeaturedContent aggregates the promoted documents shown on landing pages.
type FeaturedContent struct {
	Recipes  []Document
	Articles []Document
}

// Recipes fetches one window of the recipe listing.
func (c *Client) Recipes(ctx context.Context, opts ListOptions) (*ListResult, error) {
	return c.List(ctx, bundleRecipe, opts)
}

// Recipe fetches one recipe by identifier.
func (c *Client) Recipe(ctx context.Context, id int64) (Document, error) {
	return c.Get(ctx, bundleRecipe, id)
}

// RecipeByAlias resolves a recipe through its public path alias.
func (c *Client) RecipeByAlias(ctx context.Context, alias string) (Document, error) {
	return c.GetByAlias(ctx, bundleRecipe, alias)
}

// RecipeCategories lists the recipe category vocabulary. Lookup failures
// degrade to an empty catalog so navigation can still render.
func (c *Client) RecipeCategories(ctx context.Context) (*TermList, error) {
	return c.categories(ctx, vocabularyRecipeCategories)
}

// RecipesByCategory fetches recipes sharing a category term, excluding the
// current recipe.
func (c *Client) RecipesByCategory(ctx context.Context, categoryID, excludeID int64, limit int) ([]Document, error) {
	if limit <= 0 {
		limit = 4
	}
	return c.relatedBy(ctx, bundleRecipe, "field_recipe_category", categoryID, excludeID, limit)
}

// Articles fetches one window of the article listing.
func (c *Client) Articles(ctx context.Context, opts ListOptions) (*ListResult, error) {
	return c.List(ctx, bundleArticle, opts)
}

// Article fetches one article by identifier.
func (c *Client) Article(ctx context.Context, id int64) (Document, error) {
	return c.Get(ctx, bundleArticle, id)
}

// ArticleByAlias resolves an article through its public path alias.
func (c *Client) ArticleByAlias(ctx context.Context, alias string) (Document, error) {
	return c.GetByAlias(ctx, bundleArticle, alias)
}

// ArticleCategories lists the article category vocabulary. Lookup failures
// degrade to an empty catalog.
func (c *Client) ArticleCategories(ctx context.Context) (*TermList, error) {
	return c.categories(ctx, vocabularyArticleCategories)
}

// ArticlesByCategory fetches articles sharing a category term, excluding the
// current article.
func (c *Client) ArticlesByCategory(ctx context.Context, categoryID, excludeID int64, limit int) ([]Document, error) {
	if limit <= 0 {
		limit = 4
	}
	return c.relatedBy(ctx, bundleArticle, "field_article_category", categoryID, excludeID, limit)
}

// Products fetches one window of the product listing.
func (c *Client) Products(ctx context.Context, opts ListOptions) (*ListResult, error) {
	return c.List(ctx, bundleProduct, opts)
}

// Product fetches one product by identifier.
func (c *Client) Product(ctx context.Context, id int64) (Document, error) {
	return c.Get(ctx, bundleProduct, id)
}

// Featured fetches the promoted recipes and articles in parallel. Either
// side failing degrades to an empty slice rather than failing the whole
// aggregate.
func (c *Client) Featured(ctx context.Context) (*FeaturedContent, error) {
	featured := &FeaturedContent{}

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		list, err := c.Recipes(ctx, ListOptions{Limit: 6, Filters: map[string]string{"promote": "1"}})
		if err != nil {
			c.log.Debug("featured recipes degraded to empty", "error", err)
			return
		}
		featured.Recipes = list.Items
	}()
	go func() {
		defer wg.Done()
		list, err := c.Articles(ctx, ListOptions{Limit: 3, Filters: map[string]string{"promote": "1"}})
		if err != nil {
			c.log.Debug("featured articles degraded to empty", "error", err)
			return
		}
		featured.Articles = list.Items
	}()
	wg.Wait()

	return featured, nil
}

func (c *Client) categories(ctx context.Context, vocabulary string) (*TermList, error) {
	list, err := c.Taxonomy(ctx, vocabulary)
	if err != nil {
		c.log.Debug("category listing degraded to empty", "vocabulary", vocabulary, "error", err)
		return &TermList{Vocabulary: vocabulary, Items: []Document{}}, nil
	}
	return list, nil
}
