package entitybun

import (
	"context"
	"fmt"
	"sort"
	"strconv"

	"github.com/google/uuid"

	"github.com/goliatone/go-content-api/entity"
)

// User is one account row accepted by the importer.
type User struct {
	ID     int64
	Name   string
	Active bool
}

// ImportLanguages registers the language catalog. The default language must
// be part of the list.
func (s *Store) ImportLanguages(ctx context.Context, languages []entity.Language, defaultCode string) error {
	for _, lang := range languages {
		record := &LanguageRecord{
			ID:        recordUUID("language", lang.Code),
			Code:      lang.Code,
			Name:      lang.Name,
			Direction: lang.Direction,
			Weight:    lang.Weight,
			IsDefault: lang.Code == defaultCode,
		}
		if _, err := s.languages.Create(ctx, record); err != nil {
			return wrapStorageError(err, "import language "+lang.Code)
		}
	}
	return nil
}

// ImportBundles registers node bundles.
func (s *Store) ImportBundles(ctx context.Context, bundles []entity.Bundle) error {
	for _, bundle := range bundles {
		record := &BundleRecord{
			ID:    recordUUID("bundle", bundle.ID),
			Key:   bundle.ID,
			Label: bundle.Label,
		}
		if _, err := s.db.NewInsert().Model(record).Exec(ctx); err != nil {
			return wrapStorageError(err, "import bundle "+bundle.ID)
		}
	}
	return nil
}

// ImportVocabularies registers taxonomy vocabularies.
func (s *Store) ImportVocabularies(ctx context.Context, vocabularies []entity.Vocabulary) error {
	for _, vocab := range vocabularies {
		record := &VocabularyRecord{
			ID:    recordUUID("vocabulary", vocab.ID),
			Key:   vocab.ID,
			Label: vocab.Label,
		}
		if _, err := s.db.NewInsert().Model(record).Exec(ctx); err != nil {
			return wrapStorageError(err, "import vocabulary "+vocab.ID)
		}
	}
	return nil
}

// ImportFieldDefinitions registers the custom field declarations of one
// bundle.
func (s *Store) ImportFieldDefinitions(ctx context.Context, kind entity.Kind, bundle string, defs map[string]entity.FieldDefinition) error {
	names := make([]string, 0, len(defs))
	for name := range defs {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		def := defs[name]
		record := &FieldDefinitionRecord{
			ID:     recordUUID(kind, "field_definition", bundle, name),
			Kind:   string(kind),
			Bundle: bundle,
			Name:   def.Name,
			Type:   string(def.Type),
			Target: string(def.Target),
		}
		if _, err := s.db.NewInsert().Model(record).Exec(ctx); err != nil {
			return wrapStorageError(err, "import field definition "+name)
		}
	}
	return nil
}

// ImportImageStyles registers the image derivative catalog.
func (s *Store) ImportImageStyles(ctx context.Context, styles []entity.ImageStyle) error {
	for _, style := range styles {
		record := &ImageStyleRecord{
			ID:   recordUUID("image_style", style.Name),
			Name: style.Name,
		}
		if _, err := s.db.NewInsert().Model(record).Exec(ctx); err != nil {
			return wrapStorageError(err, "import image style "+style.Name)
		}
	}
	return nil
}

// ImportUsers registers account rows for the stats aggregates.
func (s *Store) ImportUsers(ctx context.Context, users []User) error {
	for _, user := range users {
		record := &UserRecord{
			ID:     recordUUID("user", strconv.FormatInt(user.ID, 10)),
			Uid:    user.ID,
			Name:   user.Name,
			Active: user.Active,
		}
		if _, err := s.db.NewInsert().Model(record).Exec(ctx); err != nil {
			return wrapStorageError(err, "import user "+user.Name)
		}
	}
	return nil
}

// ImportEntity persists one entity with its translations, field items,
// aliases, and term parents.
func (s *Store) ImportEntity(ctx context.Context, e *entity.Entity) error {
	key := strconv.FormatInt(e.ID, 10)

	record := &EntityRecord{
		ID:              e.UUID,
		Nid:             e.ID,
		Kind:            string(e.Kind),
		Bundle:          e.Bundle,
		DefaultLanguage: e.DefaultLanguage,
	}
	if record.ID == uuid.Nil {
		record.ID = recordUUID(e.Kind, key)
	}
	if e.File != nil {
		record.FileURI = e.File.URI
		record.FileName = e.File.Filename
		record.FileSize = e.File.Size
		record.FileMimeType = e.File.MimeType
	}
	if _, err := s.entities.Create(ctx, record); err != nil {
		return wrapStorageError(err, "import entity "+key)
	}

	for _, code := range e.Languages() {
		tr := e.Translations[code]
		trRecord := &TranslationRecord{
			ID:         recordUUID(e.Kind, key, "translation", code),
			Nid:        e.ID,
			Kind:       string(e.Kind),
			Bundle:     e.Bundle,
			Langcode:   code,
			IsDefault:  code == e.DefaultLanguage,
			Title:      tr.Title,
			Published:  tr.Published,
			Created:    tr.Created,
			Updated:    tr.Updated,
			AuthorID:   tr.AuthorID,
			AuthorName: tr.AuthorName,
			Weight:     tr.Weight,
		}
		if _, err := s.translations.Create(ctx, trRecord); err != nil {
			return wrapStorageError(err, "import translation "+code)
		}

		fieldNames := make([]string, 0, len(tr.Fields))
		for name := range tr.Fields {
			fieldNames = append(fieldNames, name)
		}
		sort.Strings(fieldNames)

		for _, name := range fieldNames {
			for delta, item := range tr.Fields[name] {
				itemRecord := &FieldItemRecord{
					ID:          recordUUID(e.Kind, key, "item", code, name, strconv.Itoa(delta)),
					Nid:         e.ID,
					Kind:        string(e.Kind),
					Langcode:    code,
					FieldName:   name,
					Delta:       delta,
					Value:       fmt.Sprint(item.Value),
					Summary:     item.Summary,
					Format:      item.Format,
					Processed:   item.Processed,
					TargetID:    item.TargetID,
					Alt:         item.Alt,
					Title:       item.Title,
					Width:       item.Width,
					Height:      item.Height,
					Description: item.Description,
				}
				if item.Value == nil {
					itemRecord.Value = ""
				}
				if _, err := s.fieldItems.Create(ctx, itemRecord); err != nil {
					return wrapStorageError(err, "import field item "+name)
				}
			}
		}
	}

	for code, alias := range e.Aliases {
		aliasRecord := &AliasRecord{
			ID:       recordUUID(e.Kind, key, "alias", code),
			Nid:      e.ID,
			Kind:     string(e.Kind),
			Langcode: code,
			Alias:    alias,
		}
		if _, err := s.aliases.Create(ctx, aliasRecord); err != nil {
			return wrapStorageError(err, "import alias "+alias)
		}
	}

	for _, parentID := range e.ParentIDs {
		parentRecord := &TermParentRecord{
			ID:       recordUUID(e.Kind, key, "parent", strconv.FormatInt(parentID, 10)),
			TermID:   e.ID,
			ParentID: parentID,
		}
		if _, err := s.db.NewInsert().Model(parentRecord).Exec(ctx); err != nil {
			return wrapStorageError(err, "import term parent")
		}
	}
	return nil
}
