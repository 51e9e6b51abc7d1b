package fetcher

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/huangsam/trustscore/core/engine"
	"github.com/huangsam/trustscore/internal/contract"
	"github.com/huangsam/trustscore/schema"
	"gopkg.in/yaml.v3"
)

// FileProvider serves contexts from a YAML or JSON fixture keyed by URL.
type FileProvider struct {
	path     string
	contexts map[string]map[string]any
}

var _ contract.ContextProvider = &FileProvider{} // Compile-time check

// LoadFileProvider reads the fixture at path.
func LoadFileProvider(path string) (*FileProvider, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read context file %q: %w", path, err)
	}
	fp, err := ParseFileProvider(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse context file %q: %w", path, err)
	}
	fp.path = path
	return fp, nil
}

// ParseFileProvider parses fixture bytes. The document is a mapping from URL
// to the context for that URL.
func ParseFileProvider(data []byte) (*FileProvider, error) {
	var raw map[string]map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, err
	}
	contexts := make(map[string]map[string]any, len(raw))
	for u, c := range raw {
		contexts[strings.TrimSpace(u)] = c
	}
	return &FileProvider{contexts: contexts}, nil
}

// Name implements contract.ContextProvider.
func (f *FileProvider) Name() string { return "file" }

// Len returns the number of URLs in the fixture.
func (f *FileProvider) Len() int { return len(f.contexts) }

// Supports implements contract.ContextProvider.
func (f *FileProvider) Supports(target schema.Target) bool {
	_, ok := f.contexts[strings.TrimSpace(target.URL)]
	return ok
}

// Fetch implements contract.ContextProvider.
func (f *FileProvider) Fetch(_ context.Context, target schema.Target) (engine.Context, error) {
	c, ok := f.contexts[strings.TrimSpace(target.URL)]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNoProvider, target.URL)
	}
	return cloneContext(c), nil
}
