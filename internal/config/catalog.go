package config

import (
	_ "embed"
	"fmt"
	"os"
	"strings"

	sonic "github.com/bytedance/sonic"
	"github.com/riskibarqy/draft-roster/internal/domain/feed"
)

//go:embed feeds.default.json
var defaultCatalog []byte

// Catalog lists the upstream feeds and the roster pages used to fill in
// missing player details, keyed by team name.
type Catalog struct {
	Feeds       []feed.Descriptor `json:"feeds"`
	RosterPages map[string]string `json:"roster_pages"`
}

// LoadCatalog reads the catalogue at path, or the built-in one when path is
// empty.
func LoadCatalog(path string) (Catalog, error) {
	raw := defaultCatalog
	if strings.TrimSpace(path) != "" {
		var err error
		raw, err = os.ReadFile(path)
		if err != nil {
			return Catalog{}, fmt.Errorf("read catalog: %w", err)
		}
	}
	return ParseCatalog(raw)
}

// ParseCatalog decodes and validates a catalogue document. Feed names must be
// unique.
func ParseCatalog(raw []byte) (Catalog, error) {
	var out Catalog
	if err := sonic.Unmarshal(raw, &out); err != nil {
		return Catalog{}, fmt.Errorf("decode catalog: %w", err)
	}
	if len(out.Feeds) == 0 {
		return Catalog{}, fmt.Errorf("catalog lists no feeds")
	}

	seen := make(map[string]struct{}, len(out.Feeds))
	for i, desc := range out.Feeds {
		if err := desc.Validate(); err != nil {
			return Catalog{}, fmt.Errorf("feed #%d: %w", i, err)
		}
		if _, dup := seen[desc.Name]; dup {
			return Catalog{}, fmt.Errorf("duplicate feed name %q", desc.Name)
		}
		seen[desc.Name] = struct{}{}
	}

	if out.RosterPages == nil {
		out.RosterPages = map[string]string{}
	}
	return out, nil
}
