package document

import (
	"github.com/goliatone/go-content-api/entity"
	"github.com/goliatone/go-content-api/internal/logging"
	"github.com/goliatone/go-content-api/pkg/interfaces"
)

// Default probing order for media sub-fields. The first non-empty candidate
// wins; lists are configurable per media kind.
var (
	defaultImageFields = []string{"field_media_image", "image", "field_image"}
	defaultFileFields  = []string{"field_media_document", "field_media_file", "document", "file"}
)

// System fields skipped when recursing into paragraph and variant entities.
var paragraphSystemFields = map[string]struct{}{
	"id":                            {},
	"revision_id":                   {},
	"uuid":                          {},
	"langcode":                      {},
	"type":                          {},
	"status":                        {},
	"created":                       {},
	"parent_id":                     {},
	"parent_type":                   {},
	"parent_field_name":             {},
	"behavior_settings":             {},
	"default_langcode":              {},
	"revision_default":              {},
	"revision_translation_affected": {},
}

const defaultMaxDepth = 16

// Service assembles normalized documents from the entity store. The resolved
// language context is threaded explicitly through every call so nested
// reference resolution carries no ambient state.
type Service struct {
	store            entity.Store
	urls             *URLBuilder
	log              interfaces.Logger
	imageFields      []string
	fileFields       []string
	maxDepth         int
	recommendedStyle string
	placeholderImage string
}

// Option configures optional service behavior.
type Option func(*Service)

// WithLogger attaches a logger namespace to the service.
func WithLogger(log interfaces.Logger) Option {
	return func(s *Service) {
		if log != nil {
			s.log = log
		}
	}
}

// WithMediaImageFields overrides the ordered image sub-field candidates.
func WithMediaImageFields(names ...string) Option {
	return func(s *Service) {
		if len(names) > 0 {
			s.imageFields = append([]string(nil), names...)
		}
	}
}

// WithMediaFileFields overrides the ordered file sub-field candidates.
func WithMediaFileFields(names ...string) Option {
	return func(s *Service) {
		if len(names) > 0 {
			s.fileFields = append([]string(nil), names...)
		}
	}
}

// WithMaxDepth bounds paragraph/reference recursion. Values below one are
// ignored.
func WithMaxDepth(depth int) Option {
	return func(s *Service) {
		if depth > 0 {
			s.maxDepth = depth
		}
	}
}

// WithRecommendedImageStyle sets the derivative preferred for recommended
// product cards.
func WithRecommendedImageStyle(style string) Option {
	return func(s *Service) {
		s.recommendedStyle = style
	}
}

// WithPlaceholderImage sets the fallback image path for recommended product
// cards without any resolvable image.
func WithPlaceholderImage(path string) Option {
	return func(s *Service) {
		s.placeholderImage = path
	}
}

// New constructs a document service over the supplied store and URL builder.
func New(store entity.Store, urls *URLBuilder, opts ...Option) *Service {
	s := &Service{
		store:            store,
		urls:             urls,
		log:              logging.NoOp(),
		imageFields:      defaultImageFields,
		fileFields:       defaultFileFields,
		maxDepth:         defaultMaxDepth,
		recommendedStyle: "maxheight_551",
		placeholderImage: "/themes/custom/react/images/placeholder.png",
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// langContext carries the explicit language parameters threaded through the
// pipeline: the requested target language (may be empty) and the active
// request language used as the second fallback tier.
type langContext struct {
	target string
	active string
}

// resolve picks the translation for one entity in the reference graph:
// target language if that variant exists, else the active request language,
// else the entity default. Each entity resolves independently, so a
// referenced term can land on a different language than its parent.
func (lc langContext) resolve(e *entity.Entity) *entity.Translation {
	if lc.target != "" && e.HasTranslation(lc.target) {
		return e.Translations[lc.target]
	}
	if lc.active != "" && e.HasTranslation(lc.active) {
		return e.Translations[lc.active]
	}
	return e.Default()
}
