// Package seed imports markdown content into the entity store. Each file is
// one language variant of one entity: frontmatter carries identity and field
// values, the markdown body becomes the rendered body field.
package seed

import (
	"bytes"
	"context"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"
	"time"

	"github.com/adrg/frontmatter"
	"github.com/goliatone/go-slug"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer/html"

	"github.com/goliatone/go-content-api/entity"
	"github.com/goliatone/go-content-api/internal/identity"
	"github.com/goliatone/go-content-api/internal/logging"
	"github.com/goliatone/go-content-api/pkg/interfaces"
)

// Importer reads markdown sources from a filesystem tree and produces
// entities ready for a store.
type Importer struct {
	fsys            fs.FS
	md              goldmark.Markdown
	log             interfaces.Logger
	defaultLanguage string
}

// Option configures optional importer behavior.
type Option func(*Importer)

// WithLogger attaches a logger namespace to the importer.
func WithLogger(log interfaces.Logger) Option {
	return func(i *Importer) {
		if log != nil {
			i.log = log
		}
	}
}

// New constructs an importer over the given tree. Files are expected at
// <kind>/<name>.<langcode>.md.
func New(fsys fs.FS, defaultLanguage string, opts ...Option) *Importer {
	i := &Importer{
		fsys: fsys,
		md: goldmark.New(
			goldmark.WithExtensions(extension.GFM),
			goldmark.WithParserOptions(parser.WithAutoHeadingID()),
			goldmark.WithRendererOptions(html.WithUnsafe()),
		),
		log:             logging.NoOp(),
		defaultLanguage: defaultLanguage,
	}
	for _, opt := range opts {
		opt(i)
	}
	return i
}

type frontMatter struct {
	ID        int64          `yaml:"id"`
	Kind      string         `yaml:"kind"`
	Type      string         `yaml:"type"`
	Title     string         `yaml:"title"`
	Slug      string         `yaml:"slug"`
	Published bool           `yaml:"published"`
	Created   time.Time      `yaml:"created"`
	Updated   time.Time      `yaml:"updated"`
	Author    string         `yaml:"author"`
	AuthorID  int64          `yaml:"author_id"`
	Weight    int            `yaml:"weight"`
	Fields    map[string]any `yaml:"fields"`
}

// Entities walks the tree and assembles one entity per identifier, merging
// every language file into its translation set.
func (i *Importer) Entities(ctx context.Context) ([]*entity.Entity, error) {
	byKey := map[string]*entity.Entity{}

	err := fs.WalkDir(i.fsys, ".", func(filePath string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if d.IsDir() || !strings.HasSuffix(filePath, ".md") {
			return nil
		}
		return i.importFile(filePath, byKey)
	})
	if err != nil {
		return nil, fmt.Errorf("seed: walk sources: %w", err)
	}

	keys := make([]string, 0, len(byKey))
	for key := range byKey {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	out := make([]*entity.Entity, 0, len(keys))
	for _, key := range keys {
		out = append(out, byKey[key])
	}
	return out, nil
}

func (i *Importer) importFile(filePath string, byKey map[string]*entity.Entity) error {
	source, err := fs.ReadFile(i.fsys, filePath)
	if err != nil {
		return err
	}

	var meta frontMatter
	body, err := frontmatter.Parse(bytes.NewReader(source), &meta)
	if err != nil {
		return fmt.Errorf("parse %s: %w", filePath, err)
	}
	if meta.ID == 0 {
		return fmt.Errorf("parse %s: id required", filePath)
	}

	kind := entity.Kind(meta.Kind)
	if kind == "" {
		kind = entity.KindNode
	}
	langcode := languageFromPath(filePath)
	if langcode == "" {
		langcode = i.defaultLanguage
	}

	slugValue := meta.Slug
	if slugValue == "" {
		slugValue, err = slug.Normalize(meta.Title)
		if err != nil {
			return fmt.Errorf("slugify %s: %w", filePath, err)
		}
	}

	key := fmt.Sprintf("%s:%d", kind, meta.ID)
	e, ok := byKey[key]
	if !ok {
		e = &entity.Entity{
			ID:              meta.ID,
			UUID:            identity.EntityUUID(string(kind), meta.Type, slugValue),
			Kind:            kind,
			Bundle:          meta.Type,
			DefaultLanguage: i.defaultLanguage,
			Translations:    map[string]*entity.Translation{},
			Aliases:         map[string]string{},
		}
		byKey[key] = e
	}

	tr := &entity.Translation{
		Language:   langcode,
		Title:      meta.Title,
		Published:  meta.Published,
		Created:    meta.Created.Unix(),
		Updated:    meta.Updated.Unix(),
		AuthorID:   meta.AuthorID,
		AuthorName: meta.Author,
		Weight:     meta.Weight,
		Fields:     map[string][]entity.Item{},
	}
	if meta.Created.IsZero() {
		tr.Created = 0
	}
	if meta.Updated.IsZero() {
		tr.Updated = tr.Created
	}

	if trimmed := bytes.TrimSpace(body); len(trimmed) > 0 {
		var rendered bytes.Buffer
		if err := i.md.Convert(trimmed, &rendered); err != nil {
			return fmt.Errorf("render %s: %w", filePath, err)
		}
		tr.Fields["body"] = []entity.Item{{
			Value:     string(trimmed),
			Format:    "markdown",
			Processed: rendered.String(),
		}}
	}

	for name, raw := range meta.Fields {
		tr.Fields[name] = fieldItems(raw)
	}

	e.Translations[langcode] = tr
	e.Aliases[langcode] = "/" + path.Dir(filePath) + "/" + slugValue

	i.log.Debug("imported source", "file", filePath, "kind", kind, "id", meta.ID, "langcode", langcode)
	return nil
}

// languageFromPath extracts the language suffix from <name>.<langcode>.md.
func languageFromPath(filePath string) string {
	base := strings.TrimSuffix(path.Base(filePath), ".md")
	if idx := strings.LastIndex(base, "."); idx >= 0 {
		return base[idx+1:]
	}
	return ""
}

// fieldItems converts a frontmatter field value into item slots. Maps become
// single structured items, lists fan out one item per element.
func fieldItems(raw any) []entity.Item {
	switch value := raw.(type) {
	case []any:
		items := make([]entity.Item, 0, len(value))
		for _, element := range value {
			items = append(items, fieldItem(element))
		}
		return items
	default:
		return []entity.Item{fieldItem(raw)}
	}
}

func fieldItem(raw any) entity.Item {
	structured, ok := raw.(map[string]any)
	if !ok {
		return entity.Item{Value: raw}
	}

	item := entity.Item{Value: structured["value"]}
	if target, ok := asInt64(structured["target_id"]); ok {
		item.TargetID = target
	}
	if summary, ok := structured["summary"].(string); ok {
		item.Summary = summary
	}
	if alt, ok := structured["alt"].(string); ok {
		item.Alt = alt
	}
	if title, ok := structured["title"].(string); ok {
		item.Title = title
	}
	if description, ok := structured["description"].(string); ok {
		item.Description = description
	}
	return item
}

func asInt64(raw any) (int64, bool) {
	switch value := raw.(type) {
	case int:
		return int64(value), true
	case int64:
		return value, true
	case float64:
		return int64(value), true
	default:
		return 0, false
	}
}
