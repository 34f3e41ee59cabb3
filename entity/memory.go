package entity

import (
	"context"
	"fmt"
	"strings"
	"sync"
)

// MemoryStore is an in-memory Store implementation for tests, seeding, and
// small deployments.
type MemoryStore struct {
	mu          sync.RWMutex
	entities    map[Kind]map[int64]*Entity
	bundles     []Bundle
	vocabs      []Vocabulary
	fieldDefs   map[string]map[string]FieldDefinition
	styles      []ImageStyle
	aliases     map[string]string
	languages   []Language
	defaultLang string
}

// NewMemoryStore creates an empty in-memory store with the supplied language
// catalog. The first language marked default (or the first entry) becomes
// the store default.
func NewMemoryStore(languages []Language, defaultLanguage string) *MemoryStore {
	return &MemoryStore{
		entities:    make(map[Kind]map[int64]*Entity),
		fieldDefs:   make(map[string]map[string]FieldDefinition),
		aliases:     make(map[string]string),
		languages:   append([]Language(nil), languages...),
		defaultLang: defaultLanguage,
	}
}

// Put inserts or replaces an entity record.
func (m *MemoryStore) Put(e *Entity) {
	if e == nil {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	kindMap, ok := m.entities[e.Kind]
	if !ok {
		kindMap = make(map[int64]*Entity)
		m.entities[e.Kind] = kindMap
	}
	kindMap[e.ID] = e
	for _, alias := range e.Aliases {
		m.aliases[alias] = fmt.Sprintf("/%s/%d", e.Kind, e.ID)
	}
}

// RegisterBundle registers a node bundle and its field definitions.
func (m *MemoryStore) RegisterBundle(b Bundle, defs []FieldDefinition) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.bundles = append(m.bundles, b)
	m.putDefs(KindNode, b.ID, defs)
}

// RegisterVocabulary registers a taxonomy vocabulary and its term fields.
func (m *MemoryStore) RegisterVocabulary(v Vocabulary, defs []FieldDefinition) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.vocabs = append(m.vocabs, v)
	m.putDefs(KindTerm, v.ID, defs)
}

// RegisterFieldDefinitions declares fields for any kind/bundle pair, used for
// paragraph and media bundles.
func (m *MemoryStore) RegisterFieldDefinitions(kind Kind, bundle string, defs []FieldDefinition) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.putDefs(kind, bundle, defs)
}

func (m *MemoryStore) putDefs(kind Kind, bundle string, defs []FieldDefinition) {
	key := string(kind) + ":" + bundle
	byName, ok := m.fieldDefs[key]
	if !ok {
		byName = make(map[string]FieldDefinition)
		m.fieldDefs[key] = byName
	}
	for _, def := range defs {
		byName[def.Name] = def
	}
}

// RegisterImageStyles sets the derivative style catalog.
func (m *MemoryStore) RegisterImageStyles(styles ...ImageStyle) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.styles = append(m.styles, styles...)
}

func (m *MemoryStore) Load(_ context.Context, kind Kind, id int64) (*Entity, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	kindMap, ok := m.entities[kind]
	if !ok {
		return nil, &NotFoundError{Kind: kind, Key: fmt.Sprint(id)}
	}
	e, ok := kindMap[id]
	if !ok {
		return nil, &NotFoundError{Kind: kind, Key: fmt.Sprint(id)}
	}
	return e, nil
}

func (m *MemoryStore) LoadMultiple(ctx context.Context, kind Kind, ids []int64) ([]*Entity, error) {
	out := make([]*Entity, 0, len(ids))
	for _, id := range ids {
		e, err := m.Load(ctx, kind, id)
		if err != nil {
			continue
		}
		out = append(out, e)
	}
	return out, nil
}

func (m *MemoryStore) Query(kind Kind) Query {
	return &memoryQuery{store: m, kind: kind, limit: -1}
}

func (m *MemoryStore) Bundles(_ context.Context) ([]Bundle, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]Bundle(nil), m.bundles...), nil
}

func (m *MemoryStore) Vocabularies(_ context.Context) ([]Vocabulary, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]Vocabulary(nil), m.vocabs...), nil
}

func (m *MemoryStore) FieldDefinitions(_ context.Context, kind Kind, bundle string) (map[string]FieldDefinition, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	defs, ok := m.fieldDefs[string(kind)+":"+bundle]
	if !ok {
		return map[string]FieldDefinition{}, nil
	}
	out := make(map[string]FieldDefinition, len(defs))
	for name, def := range defs {
		out[name] = def
	}
	return out, nil
}

func (m *MemoryStore) ImageStyles(_ context.Context) ([]ImageStyle, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]ImageStyle(nil), m.styles...), nil
}

func (m *MemoryStore) ResolveAlias(_ context.Context, alias string) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if internal, ok := m.aliases[alias]; ok {
		return internal, nil
	}
	return alias, nil
}

func (m *MemoryStore) TermParents(ctx context.Context, id int64) ([]*Entity, error) {
	term, err := m.Load(ctx, KindTerm, id)
	if err != nil {
		return nil, err
	}
	return m.LoadMultiple(ctx, KindTerm, term.ParentIDs)
}

func (m *MemoryStore) CountUsers(_ context.Context, activeOnly bool) (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	count := 0
	for _, user := range m.entities[KindUser] {
		if activeOnly && !user.Default().Published {
			continue
		}
		count++
	}
	return count, nil
}

func (m *MemoryStore) Languages(_ context.Context) ([]Language, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]Language(nil), m.languages...), nil
}

func (m *MemoryStore) DefaultLanguage(_ context.Context) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.defaultLang, nil
}

var _ Store = (*MemoryStore)(nil)

func likeMatch(value, pattern string) bool {
	value = strings.ToLower(value)
	pattern = strings.ToLower(pattern)
	switch {
	case strings.HasPrefix(pattern, "%") && strings.HasSuffix(pattern, "%"):
		return strings.Contains(value, strings.Trim(pattern, "%"))
	case strings.HasPrefix(pattern, "%"):
		return strings.HasSuffix(value, strings.TrimPrefix(pattern, "%"))
	case strings.HasSuffix(pattern, "%"):
		return strings.HasPrefix(value, strings.TrimSuffix(pattern, "%"))
	default:
		return value == pattern
	}
}
