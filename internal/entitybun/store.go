// Package entitybun persists the entity graph with bun. Records are keyed by
// deterministic UUIDs derived from their public identifiers, so repeated
// imports of the same content upsert instead of duplicating rows.
package entitybun

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"

	goerrors "github.com/goliatone/go-errors"
	repository "github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
	"github.com/uptrace/bun"

	"github.com/goliatone/go-content-api/entity"
	"github.com/goliatone/go-content-api/internal/identity"
	"github.com/goliatone/go-content-api/internal/logging"
	"github.com/goliatone/go-content-api/pkg/interfaces"
)

// Store implements entity.Store on a bun database.
type Store struct {
	db           *bun.DB
	log          interfaces.Logger
	entities     repository.Repository[*EntityRecord]
	translations repository.Repository[*TranslationRecord]
	fieldItems   repository.Repository[*FieldItemRecord]
	aliases      repository.Repository[*AliasRecord]
	languages    repository.Repository[*LanguageRecord]
}

// Option configures optional store behavior.
type Option func(*Store)

// WithLogger attaches a logger namespace to the store.
func WithLogger(log interfaces.Logger) Option {
	return func(s *Store) {
		if log != nil {
			s.log = log
		}
	}
}

// New constructs a bun-backed store.
func New(db *bun.DB, opts ...Option) *Store {
	s := &Store{
		db:           db,
		log:          logging.NoOp(),
		entities:     newEntityRepository(db),
		translations: newTranslationRepository(db),
		fieldItems:   newFieldItemRepository(db),
		aliases:      newAliasRepository(db),
		languages:    newLanguageRepository(db),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// CreateSchema creates every table the store reads. Existing tables are left
// untouched.
func CreateSchema(ctx context.Context, db *bun.DB) error {
	models := []any{
		(*EntityRecord)(nil),
		(*TranslationRecord)(nil),
		(*FieldItemRecord)(nil),
		(*AliasRecord)(nil),
		(*TermParentRecord)(nil),
		(*BundleRecord)(nil),
		(*VocabularyRecord)(nil),
		(*FieldDefinitionRecord)(nil),
		(*ImageStyleRecord)(nil),
		(*LanguageRecord)(nil),
		(*UserRecord)(nil),
	}
	for _, model := range models {
		if _, err := db.NewCreateTable().Model(model).IfNotExists().Exec(ctx); err != nil {
			return wrapStorageError(err, "create schema")
		}
	}
	return nil
}

// CreateSchema creates the store's tables on its own database handle.
func (s *Store) CreateSchema(ctx context.Context) error {
	return CreateSchema(ctx, s.db)
}

func (s *Store) Load(ctx context.Context, kind entity.Kind, id int64) (*entity.Entity, error) {
	records, err := s.LoadMultiple(ctx, kind, []int64{id})
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, &entity.NotFoundError{Kind: kind, Key: strconv.FormatInt(id, 10)}
	}
	return records[0], nil
}

func (s *Store) LoadMultiple(ctx context.Context, kind entity.Kind, ids []int64) ([]*entity.Entity, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	var baseRows []EntityRecord
	err := s.db.NewSelect().Model(&baseRows).
		Where("e.kind = ?", string(kind)).
		Where("e.nid IN (?)", bun.In(ids)).
		Scan(ctx)
	if err != nil {
		return nil, wrapStorageError(err, "load entities")
	}

	byID := make(map[int64]*entity.Entity, len(baseRows))
	for _, row := range baseRows {
		byID[row.Nid] = entityFromRecord(row)
	}
	if len(byID) == 0 {
		return nil, nil
	}

	var translationRows []TranslationRecord
	err = s.db.NewSelect().Model(&translationRows).
		Where("et.kind = ?", string(kind)).
		Where("et.nid IN (?)", bun.In(ids)).
		Scan(ctx)
	if err != nil {
		return nil, wrapStorageError(err, "load translations")
	}
	for _, row := range translationRows {
		if e, ok := byID[row.Nid]; ok {
			e.Translations[row.Langcode] = &entity.Translation{
				Language:   row.Langcode,
				Title:      row.Title,
				Published:  row.Published,
				Created:    row.Created,
				Updated:    row.Updated,
				AuthorID:   row.AuthorID,
				AuthorName: row.AuthorName,
				Weight:     row.Weight,
				Fields:     map[string][]entity.Item{},
			}
		}
	}

	var itemRows []FieldItemRecord
	err = s.db.NewSelect().Model(&itemRows).
		Where("fi.kind = ?", string(kind)).
		Where("fi.nid IN (?)", bun.In(ids)).
		Order("fi.field_name", "fi.delta").
		Scan(ctx)
	if err != nil {
		return nil, wrapStorageError(err, "load field items")
	}
	for _, row := range itemRows {
		e, ok := byID[row.Nid]
		if !ok {
			continue
		}
		tr, ok := e.Translations[row.Langcode]
		if !ok {
			continue
		}
		tr.Fields[row.FieldName] = append(tr.Fields[row.FieldName], entity.Item{
			Value:       row.Value,
			Summary:     row.Summary,
			Format:      row.Format,
			Processed:   row.Processed,
			TargetID:    row.TargetID,
			Alt:         row.Alt,
			Title:       row.Title,
			Width:       row.Width,
			Height:      row.Height,
			Description: row.Description,
		})
	}

	var aliasRows []AliasRecord
	err = s.db.NewSelect().Model(&aliasRows).
		Where("pa.kind = ?", string(kind)).
		Where("pa.nid IN (?)", bun.In(ids)).
		Scan(ctx)
	if err != nil {
		return nil, wrapStorageError(err, "load aliases")
	}
	for _, row := range aliasRows {
		if e, ok := byID[row.Nid]; ok {
			e.Aliases[row.Langcode] = row.Alias
		}
	}

	if kind == entity.KindTerm {
		var parentRows []TermParentRecord
		err = s.db.NewSelect().Model(&parentRows).
			Where("tp.term_id IN (?)", bun.In(ids)).
			Scan(ctx)
		if err != nil {
			return nil, wrapStorageError(err, "load term parents")
		}
		for _, row := range parentRows {
			if e, ok := byID[row.TermID]; ok {
				e.ParentIDs = append(e.ParentIDs, row.ParentID)
			}
		}
	}

	out := make([]*entity.Entity, 0, len(byID))
	for _, id := range ids {
		if e, ok := byID[id]; ok {
			out = append(out, e)
		}
	}
	return out, nil
}

func (s *Store) Query(kind entity.Kind) entity.Query {
	return &bunQuery{db: s.db, kind: kind}
}

func (s *Store) Bundles(ctx context.Context) ([]entity.Bundle, error) {
	var rows []BundleRecord
	if err := s.db.NewSelect().Model(&rows).Order("b.key").Scan(ctx); err != nil {
		return nil, wrapStorageError(err, "list bundles")
	}
	out := make([]entity.Bundle, 0, len(rows))
	for _, row := range rows {
		out = append(out, entity.Bundle{ID: row.Key, Label: row.Label})
	}
	return out, nil
}

func (s *Store) Vocabularies(ctx context.Context) ([]entity.Vocabulary, error) {
	var rows []VocabularyRecord
	if err := s.db.NewSelect().Model(&rows).Order("v.key").Scan(ctx); err != nil {
		return nil, wrapStorageError(err, "list vocabularies")
	}
	out := make([]entity.Vocabulary, 0, len(rows))
	for _, row := range rows {
		out = append(out, entity.Vocabulary{ID: row.Key, Label: row.Label})
	}
	return out, nil
}

func (s *Store) FieldDefinitions(ctx context.Context, kind entity.Kind, bundle string) (map[string]entity.FieldDefinition, error) {
	var rows []FieldDefinitionRecord
	err := s.db.NewSelect().Model(&rows).
		Where("fd.kind = ?", string(kind)).
		Where("fd.bundle = ?", bundle).
		Scan(ctx)
	if err != nil {
		return nil, wrapStorageError(err, "load field definitions")
	}
	out := make(map[string]entity.FieldDefinition, len(rows))
	for _, row := range rows {
		out[row.Name] = entity.FieldDefinition{
			Name:   row.Name,
			Type:   entity.FieldType(row.Type),
			Target: entity.Kind(row.Target),
		}
	}
	return out, nil
}

func (s *Store) ImageStyles(ctx context.Context) ([]entity.ImageStyle, error) {
	var rows []ImageStyleRecord
	if err := s.db.NewSelect().Model(&rows).Order("ist.name").Scan(ctx); err != nil {
		return nil, wrapStorageError(err, "list image styles")
	}
	out := make([]entity.ImageStyle, 0, len(rows))
	for _, row := range rows {
		out = append(out, entity.ImageStyle{Name: row.Name})
	}
	return out, nil
}

func (s *Store) ResolveAlias(ctx context.Context, alias string) (string, error) {
	var row AliasRecord
	err := s.db.NewSelect().Model(&row).
		Where("pa.alias = ?", alias).
		Limit(1).
		Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return alias, nil
	}
	if err != nil {
		return "", wrapStorageError(err, "resolve alias")
	}
	return fmt.Sprintf("/%s/%d", row.Kind, row.Nid), nil
}

func (s *Store) TermParents(ctx context.Context, id int64) ([]*entity.Entity, error) {
	var rows []TermParentRecord
	err := s.db.NewSelect().Model(&rows).
		Where("tp.term_id = ?", id).
		Scan(ctx)
	if err != nil {
		return nil, wrapStorageError(err, "load term parents")
	}
	if len(rows) == 0 {
		return nil, nil
	}
	ids := make([]int64, 0, len(rows))
	for _, row := range rows {
		ids = append(ids, row.ParentID)
	}
	return s.LoadMultiple(ctx, entity.KindTerm, ids)
}

func (s *Store) CountUsers(ctx context.Context, activeOnly bool) (int, error) {
	q := s.db.NewSelect().Model((*UserRecord)(nil))
	if activeOnly {
		q = q.Where("u.active = ?", true)
	}
	count, err := q.Count(ctx)
	if err != nil {
		return 0, wrapStorageError(err, "count users")
	}
	return count, nil
}

func (s *Store) Languages(ctx context.Context) ([]entity.Language, error) {
	var rows []LanguageRecord
	if err := s.db.NewSelect().Model(&rows).Order("l.weight", "l.code").Scan(ctx); err != nil {
		return nil, wrapStorageError(err, "list languages")
	}
	out := make([]entity.Language, 0, len(rows))
	for _, row := range rows {
		out = append(out, entity.Language{
			Code:      row.Code,
			Name:      row.Name,
			Direction: row.Direction,
			Weight:    row.Weight,
		})
	}
	return out, nil
}

func (s *Store) DefaultLanguage(ctx context.Context) (string, error) {
	var row LanguageRecord
	err := s.db.NewSelect().Model(&row).
		Where("l.is_default = ?", true).
		Limit(1).
		Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", wrapStorageError(err, "load default language")
	}
	return row.Code, nil
}

func entityFromRecord(row EntityRecord) *entity.Entity {
	e := &entity.Entity{
		ID:              row.Nid,
		UUID:            row.ID,
		Kind:            entity.Kind(row.Kind),
		Bundle:          row.Bundle,
		DefaultLanguage: row.DefaultLanguage,
		Translations:    map[string]*entity.Translation{},
		Aliases:         map[string]string{},
	}
	if row.FileURI != "" {
		e.File = &entity.FileInfo{
			URI:      row.FileURI,
			Filename: row.FileName,
			Size:     row.FileSize,
			MimeType: row.FileMimeType,
		}
	}
	return e
}

func wrapStorageError(err error, operation string) error {
	if err == nil {
		return nil
	}
	if goerrors.IsWrapped(err) {
		return err
	}
	return goerrors.Wrap(err, goerrors.CategoryInternal, "storage "+operation+" failed").
		WithTextCode("STORAGE_OPERATION_FAILED")
}

func recordUUID(kind entity.Kind, parts ...string) uuid.UUID {
	key := "content-api:" + string(kind)
	for _, part := range parts {
		key += ":" + part
	}
	return identity.UUID(key)
}
