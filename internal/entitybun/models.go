package entitybun

import (
	repository "github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// EntityRecord is the base row for every content entity. The public integer
// identifier lives beside the UUID primary key so lookups match the API's
// numeric routes.
type EntityRecord struct {
	bun.BaseModel `bun:"table:entities,alias:e"`

	ID              uuid.UUID `bun:"id,pk,type:uuid"`
	Nid             int64     `bun:"nid,notnull,unique:entities_kind_nid"`
	Kind            string    `bun:"kind,notnull,unique:entities_kind_nid"`
	Bundle          string    `bun:"bundle,notnull"`
	DefaultLanguage string    `bun:"default_language,notnull"`

	FileURI      string `bun:"file_uri,nullzero"`
	FileName     string `bun:"file_name,nullzero"`
	FileSize     int64  `bun:"file_size,nullzero"`
	FileMimeType string `bun:"file_mime_type,nullzero"`
}

// TranslationRecord is one language variant. Bundle and the default-variant
// marker are denormalized so listing queries run without joining entities.
type TranslationRecord struct {
	bun.BaseModel `bun:"table:entity_translations,alias:et"`

	ID         uuid.UUID `bun:"id,pk,type:uuid"`
	Nid        int64     `bun:"nid,notnull"`
	Kind       string    `bun:"kind,notnull"`
	Bundle     string    `bun:"bundle,notnull"`
	Langcode   string    `bun:"langcode,notnull"`
	IsDefault  bool      `bun:"is_default,notnull"`
	Title      string    `bun:"title,notnull"`
	Published  bool      `bun:"published,notnull"`
	Created    int64     `bun:"created,notnull"`
	Updated    int64     `bun:"updated,notnull"`
	AuthorID   int64     `bun:"author_id,nullzero"`
	AuthorName string    `bun:"author_name,nullzero"`
	Weight     int       `bun:"weight"`
}

// FieldItemRecord is one value slot of one field on one translation.
type FieldItemRecord struct {
	bun.BaseModel `bun:"table:field_items,alias:fi"`

	ID          uuid.UUID `bun:"id,pk,type:uuid"`
	Nid         int64     `bun:"nid,notnull"`
	Kind        string    `bun:"kind,notnull"`
	Langcode    string    `bun:"langcode,notnull"`
	FieldName   string    `bun:"field_name,notnull"`
	Delta       int       `bun:"delta,notnull"`
	Value       string    `bun:"value,nullzero"`
	Summary     string    `bun:"summary,nullzero"`
	Format      string    `bun:"format,nullzero"`
	Processed   string    `bun:"processed,nullzero"`
	TargetID    int64     `bun:"target_id,nullzero"`
	Alt         string    `bun:"alt,nullzero"`
	Title       string    `bun:"title,nullzero"`
	Width       int       `bun:"width,nullzero"`
	Height      int       `bun:"height,nullzero"`
	Description string    `bun:"description,nullzero"`
}

// AliasRecord maps a public path alias to one entity translation.
type AliasRecord struct {
	bun.BaseModel `bun:"table:path_aliases,alias:pa"`

	ID       uuid.UUID `bun:"id,pk,type:uuid"`
	Nid      int64     `bun:"nid,notnull"`
	Kind     string    `bun:"kind,notnull"`
	Langcode string    `bun:"langcode,notnull"`
	Alias    string    `bun:"alias,notnull"`
}

// TermParentRecord links a taxonomy term to one ancestor.
type TermParentRecord struct {
	bun.BaseModel `bun:"table:term_parents,alias:tp"`

	ID       uuid.UUID `bun:"id,pk,type:uuid"`
	TermID   int64     `bun:"term_id,notnull"`
	ParentID int64     `bun:"parent_id,notnull"`
}

// BundleRecord registers one node bundle.
type BundleRecord struct {
	bun.BaseModel `bun:"table:bundles,alias:b"`

	ID    uuid.UUID `bun:"id,pk,type:uuid"`
	Key   string    `bun:"key,notnull,unique"`
	Label string    `bun:"label,notnull"`
}

// VocabularyRecord registers one taxonomy vocabulary.
type VocabularyRecord struct {
	bun.BaseModel `bun:"table:vocabularies,alias:v"`

	ID    uuid.UUID `bun:"id,pk,type:uuid"`
	Key   string    `bun:"key,notnull,unique"`
	Label string    `bun:"label,notnull"`
}

// FieldDefinitionRecord declares one custom field on one bundle.
type FieldDefinitionRecord struct {
	bun.BaseModel `bun:"table:field_definitions,alias:fd"`

	ID     uuid.UUID `bun:"id,pk,type:uuid"`
	Kind   string    `bun:"kind,notnull"`
	Bundle string    `bun:"bundle,notnull"`
	Name   string    `bun:"name,notnull"`
	Type   string    `bun:"type,notnull"`
	Target string    `bun:"target,nullzero"`
}

// ImageStyleRecord registers one image derivative preset.
type ImageStyleRecord struct {
	bun.BaseModel `bun:"table:image_styles,alias:ist"`

	ID   uuid.UUID `bun:"id,pk,type:uuid"`
	Name string    `bun:"name,notnull,unique"`
}

// LanguageRecord is one configured site language.
type LanguageRecord struct {
	bun.BaseModel `bun:"table:languages,alias:l"`

	ID        uuid.UUID `bun:"id,pk,type:uuid"`
	Code      string    `bun:"code,notnull,unique"`
	Name      string    `bun:"name,notnull"`
	Direction string    `bun:"direction,nullzero"`
	Weight    int       `bun:"weight"`
	IsDefault bool      `bun:"is_default,notnull"`
}

// UserRecord is one account counted by the stats aggregates.
type UserRecord struct {
	bun.BaseModel `bun:"table:users,alias:u"`

	ID     uuid.UUID `bun:"id,pk,type:uuid"`
	Uid    int64     `bun:"uid,notnull,unique"`
	Name   string    `bun:"name,notnull"`
	Active bool      `bun:"active,notnull"`
}

func newEntityRepository(db *bun.DB) repository.Repository[*EntityRecord] {
	return repository.MustNewRepository(db, repository.ModelHandlers[*EntityRecord]{
		NewRecord:          func() *EntityRecord { return &EntityRecord{} },
		GetID:              func(r *EntityRecord) uuid.UUID { return r.ID },
		SetID:              func(r *EntityRecord, id uuid.UUID) { r.ID = id },
		GetIdentifier:      func() string { return "" },
		GetIdentifierValue: func(*EntityRecord) string { return "" },
	})
}

func newTranslationRepository(db *bun.DB) repository.Repository[*TranslationRecord] {
	return repository.MustNewRepository(db, repository.ModelHandlers[*TranslationRecord]{
		NewRecord:          func() *TranslationRecord { return &TranslationRecord{} },
		GetID:              func(r *TranslationRecord) uuid.UUID { return r.ID },
		SetID:              func(r *TranslationRecord, id uuid.UUID) { r.ID = id },
		GetIdentifier:      func() string { return "" },
		GetIdentifierValue: func(*TranslationRecord) string { return "" },
	})
}

func newFieldItemRepository(db *bun.DB) repository.Repository[*FieldItemRecord] {
	return repository.MustNewRepository(db, repository.ModelHandlers[*FieldItemRecord]{
		NewRecord:          func() *FieldItemRecord { return &FieldItemRecord{} },
		GetID:              func(r *FieldItemRecord) uuid.UUID { return r.ID },
		SetID:              func(r *FieldItemRecord, id uuid.UUID) { r.ID = id },
		GetIdentifier:      func() string { return "" },
		GetIdentifierValue: func(*FieldItemRecord) string { return "" },
	})
}

func newAliasRepository(db *bun.DB) repository.Repository[*AliasRecord] {
	return repository.MustNewRepository(db, repository.ModelHandlers[*AliasRecord]{
		NewRecord:          func() *AliasRecord { return &AliasRecord{} },
		GetID:              func(r *AliasRecord) uuid.UUID { return r.ID },
		SetID:              func(r *AliasRecord, id uuid.UUID) { r.ID = id },
		GetIdentifier:      func() string { return "alias" },
		GetIdentifierValue: func(r *AliasRecord) string { return r.Alias },
	})
}

func newLanguageRepository(db *bun.DB) repository.Repository[*LanguageRecord] {
	return repository.MustNewRepository(db, repository.ModelHandlers[*LanguageRecord]{
		NewRecord:          func() *LanguageRecord { return &LanguageRecord{} },
		GetID:              func(r *LanguageRecord) uuid.UUID { return r.ID },
		SetID:              func(r *LanguageRecord, id uuid.UUID) { r.ID = id },
		GetIdentifier:      func() string { return "code" },
		GetIdentifierValue: func(r *LanguageRecord) string { return r.Code },
	})
}
