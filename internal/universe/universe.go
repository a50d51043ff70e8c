// Package universe loads the static ticker universes from a flat JSON file
// mapping a universe name to its member symbols.
package universe

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"idxsignal/internal/domain/models"
)

// Universe holds the named ticker lists available to the screener.
type Universe struct {
	lists map[string][]string
}

// Load reads a universe file. Names are normalized to uppercase.
func Load(path string) (*Universe, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read universe file: %w", err)
	}

	var raw map[string][]string
	if err := json.Unmarshal(b, &raw); err != nil {
		return nil, fmt.Errorf("parse universe file: %w", err)
	}
	if len(raw) == 0 {
		return nil, fmt.Errorf("universe file %s defines no universes", path)
	}

	lists := make(map[string][]string, len(raw))
	for name, tickers := range raw {
		lists[strings.ToUpper(name)] = tickers
	}
	return &Universe{lists: lists}, nil
}

// Tickers returns the member list for a universe name (case-insensitive).
// The returned slice is a copy.
func (u *Universe) Tickers(name string) ([]string, error) {
	list, ok := u.lists[strings.ToUpper(name)]
	if !ok {
		return nil, fmt.Errorf("%w: %s", models.ErrUnknownUniverse, name)
	}
	out := make([]string, len(list))
	copy(out, list)
	return out, nil
}
