package entity

import (
	"sort"

	"github.com/google/uuid"
)

// Kind identifies the base entity kind a record belongs to.
type Kind string

const (
	KindNode      Kind = "node"
	KindTerm      Kind = "taxonomy_term"
	KindMedia     Kind = "media"
	KindParagraph Kind = "paragraph"
	KindFile      Kind = "file"
	KindUser      Kind = "user"
)

// FieldType enumerates the declared storage types the formatter dispatches on.
type FieldType string

const (
	FieldTextLong        FieldType = "text_long"
	FieldTextWithSummary FieldType = "text_with_summary"
	FieldImage           FieldType = "image"
	FieldFile            FieldType = "file"
	FieldReference       FieldType = "entity_reference"
	FieldParagraphs      FieldType = "entity_reference_revisions"
	FieldDateTime        FieldType = "datetime"
	FieldBoolean         FieldType = "boolean"
	FieldInteger         FieldType = "integer"
	FieldDecimal         FieldType = "decimal"
	FieldFloat           FieldType = "float"
	FieldListString      FieldType = "list_string"
	FieldListInteger     FieldType = "list_integer"
	FieldString          FieldType = "string"
)

// FieldDefinition declares a custom field attached to a bundle. Target names
// the referenced entity kind for reference fields and is empty otherwise.
type FieldDefinition struct {
	Name   string
	Type   FieldType
	Target Kind
}

// Item is one value slot inside a field item list. Only the members relevant
// to the declared field type are populated.
type Item struct {
	Value       any
	Summary     string
	Format      string
	Processed   string
	TargetID    int64
	Alt         string
	Title       string
	Width       int
	Height      int
	Description string
}

// Translation carries the language-specific variant of an entity.
type Translation struct {
	Language   string
	Title      string
	Published  bool
	Created    int64
	Updated    int64
	AuthorID   int64
	AuthorName string
	Weight     int
	Fields     map[string][]Item
}

// FileInfo describes the stored binary backing a file entity.
type FileInfo struct {
	URI      string
	Filename string
	Size     int64
	MimeType string
}

// Entity is the canonical persistent record owned by the store. Field values
// live on translations; Aliases maps language codes to public path aliases.
type Entity struct {
	ID              int64
	UUID            uuid.UUID
	Kind            Kind
	Bundle          string
	DefaultLanguage string
	Translations    map[string]*Translation
	Aliases         map[string]string
	File            *FileInfo
	ParentIDs       []int64
}

// HasTranslation reports whether a variant exists for the language code.
func (e *Entity) HasTranslation(language string) bool {
	if e == nil {
		return false
	}
	_, ok := e.Translations[language]
	return ok
}

// Translation returns the variant for the language code, falling back to the
// entity's default language when the requested variant does not exist.
func (e *Entity) Translation(language string) *Translation {
	if e == nil {
		return nil
	}
	if tr, ok := e.Translations[language]; ok {
		return tr
	}
	return e.Translations[e.DefaultLanguage]
}

// Default returns the default-language variant.
func (e *Entity) Default() *Translation {
	return e.Translation(e.DefaultLanguage)
}

// Field returns the item list for a field name on the given translation,
// or nil when the field is absent or empty.
func (t *Translation) Field(name string) []Item {
	if t == nil {
		return nil
	}
	items := t.Fields[name]
	if len(items) == 0 {
		return nil
	}
	return items
}

// Languages lists the language codes the entity has variants for, sorted.
func (e *Entity) Languages() []string {
	if e == nil {
		return nil
	}
	out := make([]string, 0, len(e.Translations))
	for code := range e.Translations {
		out = append(out, code)
	}
	sort.Strings(out)
	return out
}

// Bundle describes a registered node bundle (content sub-type).
type Bundle struct {
	ID    string
	Label string
}

// Vocabulary describes a registered taxonomy vocabulary.
type Vocabulary struct {
	ID    string
	Label string
}

// ImageStyle names a registered image derivative preset.
type ImageStyle struct {
	Name string
}

// Language describes one configured site language.
type Language struct {
	Code      string `json:"langcode"`
	Name      string `json:"name"`
	Direction string `json:"direction"`
	Weight    int    `json:"weight"`
}
