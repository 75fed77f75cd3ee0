package diag

import (
	_ "embed"
	"encoding/json"
	"sync"
)

//go:embed codes.json
var codesJSON []byte

// CodeEntry is a single diagnostic code definition.
type CodeEntry struct {
	ID    string `json:"id"`    // e.g., "GLW0001"
	Title string `json:"title"` // short human title
	Help  string `json:"help"`  // optional default help text
}

// Registry is the top-level catalog format, split by subsystem.
type Registry struct {
	Analyzer map[string]CodeEntry `json:"analyzer"`
	Lowering map[string]CodeEntry `json:"lowering"`
}

var (
	regOnce sync.Once
	reg     Registry
	regErr  error
)

func load() error {
	regOnce.Do(func() {
		if len(codesJSON) == 0 {
			regErr = nil // empty catalog is allowed
			return
		}
		regErr = json.Unmarshal(codesJSON, &reg)
	})
	return regErr
}

// Lookup returns a code entry by (domain, key).
// Domain is one of: "analyzer", "lowering".
func Lookup(domain, key string) (CodeEntry, bool) {
	if err := load(); err != nil {
		return CodeEntry{}, false
	}
	var m map[string]CodeEntry
	switch domain {
	case "analyzer":
		m = reg.Analyzer
	case "lowering":
		m = reg.Lowering
	default:
		return CodeEntry{}, false
	}
	if m == nil {
		return CodeEntry{}, false
	}
	ce, ok := m[key]
	return ce, ok
}

// MustLookup returns the catalog entry if found; otherwise a synthesized
// placeholder with the provided defaults, so codes stay stable even when the
// embedded catalog lags behind the code.
func MustLookup(domain, key, defaultID, defaultTitle string) CodeEntry {
	if ce, ok := Lookup(domain, key); ok {
		return ce
	}
	return CodeEntry{ID: defaultID, Title: defaultTitle}
}

// LookupAnalyzer is a convenience for the "analyzer" domain.
func LookupAnalyzer(key string) (CodeEntry, bool) { return Lookup("analyzer", key) }

// LookupLowering is a convenience for the "lowering" domain.
func LookupLowering(key string) (CodeEntry, bool) { return Lookup("lowering", key) }
