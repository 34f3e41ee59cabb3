package client

import (
	"errors"
	"fmt"
	"os"
	"slices"
	"strings"
)

// LanguageStore persists the active language across client instances.
type LanguageStore interface {
	Load() (string, error)
	Save(code string) error
}

// FileLanguageStore keeps the active language in a single file.
type FileLanguageStore struct {
	path string
}

// NewFileLanguageStore creates a store backed by the given file path.
func NewFileLanguageStore(path string) *FileLanguageStore {
	return &FileLanguageStore{path: path}
}

func (s *FileLanguageStore) Load() (string, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(data)), nil
}

func (s *FileLanguageStore) Save(code string) error {
	return os.WriteFile(s.path, []byte(code+"\n"), 0o644)
}

// WithLanguageStore persists language switches through the given store and
// restores the last persisted language on first use.
func WithLanguageStore(store LanguageStore) Option {
	return func(c *Client) {
		c.store = store
	}
}

// WithSupportedLanguages restricts SetLanguage to the given codes and lets
// environment locale hints participate in language resolution.
func WithSupportedLanguages(codes ...string) Option {
	return func(c *Client) {
		c.supported = append([]string(nil), codes...)
	}
}

// SetLanguage switches the active language, flushes every cache so no
// stale-language payload can be served afterward, notifies subscribers, and
// persists the switch when a store is configured.
func (c *Client) SetLanguage(code string) error {
	if !c.supports(code) {
		return fmt.Errorf("client: unsupported language %q", code)
	}

	c.mu.Lock()
	c.language = code
	subs := make([]func(string), 0, len(c.subs))
	for _, fn := range c.subs {
		subs = append(subs, fn)
	}
	c.mu.Unlock()

	c.contentCache.Flush()
	c.searchCache.Flush()
	c.statsCache.Flush()

	for _, fn := range subs {
		fn(code)
	}

	if c.store != nil {
		if err := c.store.Save(code); err != nil {
			return fmt.Errorf("client: persist language: %w", err)
		}
	}
	return nil
}

// OnLanguageChange registers a callback invoked after every successful
// language switch. The returned function cancels the subscription.
func (c *Client) OnLanguageChange(fn func(code string)) func() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.subs == nil {
		c.subs = make(map[int]func(string))
	}
	id := c.nextSub
	c.nextSub++
	c.subs[id] = fn

	return func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		delete(c.subs, id)
	}
}

// Language reports the active language. Resolution order: an explicit switch
// or WithLanguage override, the persisted store value, a locale hint from the
// environment, then the configured site default.
func (c *Client) Language() string {
	c.mu.RLock()
	if c.language != "" {
		lang := c.language
		c.mu.RUnlock()
		return lang
	}
	c.mu.RUnlock()

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.language != "" {
		return c.language
	}
	if c.store != nil {
		if code, err := c.store.Load(); err == nil && code != "" && c.supports(code) {
			c.language = code
			return code
		}
	}
	if code := c.envLocale(); code != "" {
		c.language = code
		return code
	}
	return c.defaultLanguage
}

func (c *Client) supports(code string) bool {
	if code == "" {
		return false
	}
	if len(c.supported) == 0 {
		return true
	}
	return slices.Contains(c.supported, code)
}

// envLocale maps LC_ALL/LANG onto a supported language code. Without a
// configured supported set there is nothing to match against.
func (c *Client) envLocale() string {
	if len(c.supported) == 0 {
		return ""
	}
	for _, name := range []string{"LC_ALL", "LANG"} {
		raw := strings.ToLower(strings.TrimSpace(os.Getenv(name)))
		if raw == "" || raw == "c" || strings.HasPrefix(raw, "c.") || strings.HasPrefix(raw, "posix") {
			continue
		}
		base, _, _ := strings.Cut(raw, ".")
		base, _, _ = strings.Cut(base, "_")
		base, _, _ = strings.Cut(base, "-")
		for _, code := range c.supported {
			if code == base || strings.HasPrefix(code, base+"-") {
				return code
			}
		}
	}
	return ""
}
