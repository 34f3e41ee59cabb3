package seed_test

import (
	"context"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/goliatone/go-content-api/entity"
	"github.com/goliatone/go-content-api/internal/seed"
)

const articleEN = `---
id: 1
type: article
title: First Post
slug: first-post
published: true
created: 2024-03-01T10:00:00Z
author: editor
author_id: 9
fields:
  field_tags:
    - target_id: 70
  field_count: 42
---
Hello **world**
`

const articleZH = `---
id: 1
type: article
title: 第一篇
slug: first-post
published: true
---
你好
`

const draft = `---
id: 2
type: article
title: Draft Notes
published: false
---
`

func newImporter(files map[string]string) *seed.Importer {
	fsys := fstest.MapFS{}
	for name, content := range files {
		fsys[name] = &fstest.MapFile{Data: []byte(content)}
	}
	return seed.New(fsys, "en")
}

func TestEntitiesMergeLanguageFiles(t *testing.T) {
	importer := newImporter(map[string]string{
		"articles/first-post.md":    articleEN,
		"articles/first-post.zh.md": articleZH,
	})

	entities, err := importer.Entities(context.Background())
	if err != nil {
		t.Fatalf("entities: %v", err)
	}
	if len(entities) != 1 {
		t.Fatalf("expected both files to merge into one entity, got %d", len(entities))
	}

	e := entities[0]
	if e.ID != 1 || e.Kind != entity.KindNode || e.Bundle != "article" {
		t.Fatalf("unexpected identity %+v", e)
	}
	if e.DefaultLanguage != "en" {
		t.Fatalf("expected en default got %q", e.DefaultLanguage)
	}
	if len(e.Translations) != 2 {
		t.Fatalf("expected en and zh variants got %d", len(e.Translations))
	}
	if e.Translations["zh"].Title != "第一篇" {
		t.Fatalf("unexpected zh title %q", e.Translations["zh"].Title)
	}
}

func TestEntityMetadata(t *testing.T) {
	importer := newImporter(map[string]string{
		"articles/first-post.md": articleEN,
	})

	entities, err := importer.Entities(context.Background())
	if err != nil {
		t.Fatalf("entities: %v", err)
	}
	tr := entities[0].Translations["en"]

	if tr.Title != "First Post" || !tr.Published {
		t.Fatalf("unexpected translation %+v", tr)
	}
	if tr.AuthorID != 9 || tr.AuthorName != "editor" {
		t.Fatalf("unexpected author %+v", tr)
	}
	if tr.Created == 0 || tr.Updated != tr.Created {
		t.Fatalf("expected updated to default to created, got %d/%d", tr.Created, tr.Updated)
	}
	if entities[0].UUID.String() == "00000000-0000-0000-0000-000000000000" {
		t.Fatal("expected deterministic uuid")
	}
}

func TestBodyRendersMarkdown(t *testing.T) {
	importer := newImporter(map[string]string{
		"articles/first-post.md": articleEN,
	})

	entities, _ := importer.Entities(context.Background())
	body := entities[0].Translations["en"].Fields["body"]
	if len(body) != 1 {
		t.Fatalf("expected one body item got %d", len(body))
	}
	if body[0].Format != "markdown" {
		t.Fatalf("unexpected format %q", body[0].Format)
	}
	if !strings.Contains(body[0].Processed, "<strong>world</strong>") {
		t.Fatalf("expected rendered markdown, got %q", body[0].Processed)
	}
	if body[0].Value != "Hello **world**" {
		t.Fatalf("expected raw source kept, got %q", body[0].Value)
	}
}

func TestFrontmatterFields(t *testing.T) {
	importer := newImporter(map[string]string{
		"articles/first-post.md": articleEN,
	})

	entities, _ := importer.Entities(context.Background())
	fields := entities[0].Translations["en"].Fields

	tags := fields["field_tags"]
	if len(tags) != 1 || tags[0].TargetID != 70 {
		t.Fatalf("expected reference item, got %+v", tags)
	}
	count := fields["field_count"]
	if len(count) != 1 || count[0].Value != 42 {
		t.Fatalf("expected scalar item, got %+v", count)
	}
}

func TestAliasFromPathAndSlug(t *testing.T) {
	importer := newImporter(map[string]string{
		"articles/first-post.md": articleEN,
	})

	entities, _ := importer.Entities(context.Background())
	if alias := entities[0].Aliases["en"]; alias != "/articles/first-post" {
		t.Fatalf("unexpected alias %q", alias)
	}
}

func TestSlugFallsBackToTitle(t *testing.T) {
	importer := newImporter(map[string]string{
		"articles/draft.md": draft,
	})

	entities, err := importer.Entities(context.Background())
	if err != nil {
		t.Fatalf("entities: %v", err)
	}
	if alias := entities[0].Aliases["en"]; alias != "/articles/draft-notes" {
		t.Fatalf("expected slugified title alias, got %q", alias)
	}
}

func TestMissingIDFails(t *testing.T) {
	importer := newImporter(map[string]string{
		"articles/broken.md": "---\ntitle: No ID\n---\n",
	})

	if _, err := importer.Entities(context.Background()); err == nil {
		t.Fatal("expected error for missing id")
	}
}
