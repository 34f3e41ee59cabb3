package document

import "encoding/json"

// FieldValue is the closed union of normalized field shapes. Concrete
// variants carry a marker method so the formatter dispatch stays exhaustive;
// JSON encoding matches the public contract (scalars stay bare, collapsed
// single values stay unwrapped).
type FieldValue interface {
	fieldValue()
}

// LongText is the normalized shape for long/summary text fields and bodies.
type LongText struct {
	Value     string  `json:"value"`
	Processed string  `json:"processed"`
	Summary   *string `json:"summary,omitempty"`
	Format    string  `json:"format,omitempty"`
}

// Image is one rendered image item including the full derivative catalog.
type Image struct {
	URL         string            `json:"url"`
	Alt         string            `json:"alt"`
	Title       string            `json:"title"`
	Width       int               `json:"width,omitempty"`
	Height      int               `json:"height,omitempty"`
	Filesize    int64             `json:"filesize"`
	MimeType    string            `json:"mime_type"`
	ImageStyles map[string]string `json:"image_styles,omitempty"`
}

// File is one rendered file attachment item.
type File struct {
	URL         string `json:"url"`
	Filename    string `json:"filename"`
	Filesize    int64  `json:"filesize"`
	MimeType    string `json:"mime_type"`
	Description string `json:"description,omitempty"`
}

// Reference is a resolved entity reference. Media references carry the
// probed image or file payload; taxonomy references carry term extras.
type Reference struct {
	TargetID    int64     `json:"target_id"`
	ID          int64     `json:"id"`
	Type        string    `json:"type"`
	Bundle      string    `json:"bundle"`
	Label       string    `json:"label"`
	UUID        string    `json:"uuid"`
	Image       *Image    `json:"image,omitempty"`
	File        *File     `json:"file,omitempty"`
	ColorCode   string    `json:"color_code,omitempty"`
	Description *LongText `json:"description,omitempty"`
}

// Paragraph is a nested composite block with its own formatted field set.
type Paragraph struct {
	ID     int64                 `json:"id"`
	Type   string                `json:"type"`
	UUID   string                `json:"uuid"`
	Fields map[string]FieldValue `json:"fields"`
}

// DateTime is a date field value with a derived epoch and display string.
type DateTime struct {
	Value     string `json:"value"`
	Timestamp int64  `json:"timestamp"`
	Formatted string `json:"formatted"`
}

// Boolean, Integer, and Decimal render as bare JSON scalars.
type (
	Boolean bool
	Integer int64
	Decimal float64
)

// Scalar is the default-branch passthrough for untyped raw values.
type Scalar struct {
	Value any
}

func (s Scalar) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.Value)
}

// List is an ordered sequence of field values; single-item lists are
// collapsed before they reach a document.
type List []FieldValue

func (LongText) fieldValue()  {}
func (Image) fieldValue()     {}
func (File) fieldValue()      {}
func (Reference) fieldValue() {}
func (Paragraph) fieldValue() {}
func (DateTime) fieldValue()  {}
func (Boolean) fieldValue()   {}
func (Integer) fieldValue()   {}
func (Decimal) fieldValue()   {}
func (Scalar) fieldValue()    {}
func (List) fieldValue()      {}

// Author identifies the owner of an entity.
type Author struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// TranslationInfo summarizes one existing language variant. The list always
// reflects every variant, independent of the resolved target language.
type TranslationInfo struct {
	Langcode  string `json:"langcode"`
	Name      string `json:"name"`
	Title     string `json:"title"`
	Published bool   `json:"published"`
}

// URLSet groups the public URLs for one published translation.
type URLSet struct {
	Canonical string `json:"canonical"`
	Edit      string `json:"edit"`
	API       string `json:"api"`
}

// Document is the normalized output unit for one content entity.
type Document struct {
	ID             int64                 `json:"id"`
	Type           string                `json:"type"`
	Title          string                `json:"title"`
	Language       string                `json:"language"`
	Created        int64                 `json:"created"`
	Updated        int64                 `json:"updated"`
	Published      bool                  `json:"published"`
	Author         *Author               `json:"author,omitempty"`
	Body           *LongText             `json:"body,omitempty"`
	Fields         map[string]FieldValue `json:"fields,omitempty"`
	Translations   []TranslationInfo     `json:"translations"`
	URLs           map[string]URLSet     `json:"urls"`
	URL            string                `json:"url,omitempty"`
	PagePath       string                `json:"page_path,omitempty"`
	ProductHelpers *ProductHelpers       `json:"product_helpers,omitempty"`
}

// ProductHelpers carries the product detail conveniences mined from variant
// sub-entities and sibling products.
type ProductHelpers struct {
	ColorOptions        []ColorOption        `json:"color_options"`
	RecommendedProducts []RecommendedProduct `json:"recommended_products"`
}

// ColorOption is one color taxonomy choice extracted from product variants.
// Label carries the term name for display; Code is the short color code when
// the term defines one.
type ColorOption struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Label string `json:"label"`
	Code  string `json:"color_code,omitempty"`
}

// RecommendedProduct is a sibling product card for the detail page.
type RecommendedProduct struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Title string `json:"title"`
	URL   string `json:"url"`
	Price string `json:"price"`
	Image string `json:"image"`
}

// TermParent identifies an ancestor taxonomy term.
type TermParent struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	UUID string `json:"uuid"`
}

// TermTranslation summarizes one language variant of a taxonomy term.
type TermTranslation struct {
	Langcode string `json:"langcode"`
	Name     string `json:"name"`
	TermName string `json:"term_name"`
}

// Term is the normalized output unit for one taxonomy term.
type Term struct {
	ID           int64                 `json:"id"`
	UUID         string                `json:"uuid"`
	Name         string                `json:"name"`
	Description  *LongText             `json:"description,omitempty"`
	Vocabulary   string                `json:"vocabulary"`
	Language     string                `json:"language"`
	Weight       int                   `json:"weight"`
	Parents      []TermParent          `json:"parent"`
	Fields       map[string]FieldValue `json:"fields,omitempty"`
	Translations []TermTranslation     `json:"translations"`
}
