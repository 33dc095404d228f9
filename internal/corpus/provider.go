// Package corpus loads the reference list of legitimate domains and keeps a
// process-wide, read-only snapshot of it.
package corpus

import (
	"context"
	_ "embed"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"phishguard/pkg/domain"
)

// bundled is the corpus shipped with the binary.
//
//go:embed known_domains.yml
var bundled []byte

// Provider returns the ordered list of known domains.
type Provider interface {
	Load(ctx context.Context) ([]domain.KnownDomain, error)
}

// file is the on-disk layout of a corpus document.
type file struct {
	Domains []domain.KnownDomain `yaml:"domains"`
}

// FileProvider reads the corpus from a YAML document. An empty path selects
// the bundled corpus.
type FileProvider struct {
	path string
}

// NewFileProvider creates a FileProvider for the YAML file at path.
func NewFileProvider(path string) *FileProvider {
	return &FileProvider{path: path}
}

// Load reads and decodes the corpus file.
func (p *FileProvider) Load(_ context.Context) ([]domain.KnownDomain, error) {
	raw := bundled
	if p.path != "" {
		b, err := os.ReadFile(p.path)
		if err != nil {
			return nil, fmt.Errorf("could not read corpus file: %w", err)
		}
		raw = b
	}

	return Decode(raw)
}

// Decode parses a YAML corpus document. Domains are lower-cased and entries
// without a primary domain are dropped.
func Decode(raw []byte) ([]domain.KnownDomain, error) {
	var f file
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("could not decode corpus: %w", err)
	}

	out := make([]domain.KnownDomain, 0, len(f.Domains))
	for _, e := range f.Domains {
		e.PrimaryDomain = strings.ToLower(strings.TrimSpace(e.PrimaryDomain))
		if e.PrimaryDomain == "" {
			continue
		}
		aliases := make([]string, 0, len(e.Aliases))
		for _, a := range e.Aliases {
			if a = strings.ToLower(strings.TrimSpace(a)); a != "" {
				aliases = append(aliases, a)
			}
		}
		e.Aliases = aliases
		out = append(out, e)
	}

	return out, nil
}

// StaticProvider serves a fixed list of entries.
type StaticProvider []domain.KnownDomain

// Load returns a copy of the entries.
func (s StaticProvider) Load(_ context.Context) ([]domain.KnownDomain, error) {
	out := make([]domain.KnownDomain, len(s))
	copy(out, s)

	return out, nil
}
