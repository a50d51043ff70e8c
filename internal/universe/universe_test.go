package universe

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"idxsignal/internal/domain/models"
)

func writeFile(t *testing.T, payload string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "universe.json")
	if err := os.WriteFile(path, []byte(payload), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	return path
}

func TestLoadAndLookup(t *testing.T) {
	u, err := Load(writeFile(t, `{"lq45": ["BBRI", "BBCA", "TLKM"]}`))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	for _, name := range []string{"LQ45", "lq45", "Lq45"} {
		tickers, err := u.Tickers(name)
		if err != nil {
			t.Fatalf("Tickers(%q): %v", name, err)
		}
		if len(tickers) != 3 || tickers[0] != "BBRI" {
			t.Fatalf("Tickers(%q) = %v", name, tickers)
		}
	}
}

func TestTickersReturnsCopy(t *testing.T) {
	u, err := Load(writeFile(t, `{"LQ45": ["BBRI", "BBCA"]}`))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	first, _ := u.Tickers("LQ45")
	first[0] = "mutated"
	second, _ := u.Tickers("LQ45")
	if second[0] != "BBRI" {
		t.Fatalf("caller mutation leaked into the universe: %v", second)
	}
}

func TestUnknownUniverse(t *testing.T) {
	u, err := Load(writeFile(t, `{"LQ45": ["BBRI"]}`))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if _, err := u.Tickers("KOMPAS100"); !errors.Is(err, models.ErrUnknownUniverse) {
		t.Fatalf("expected ErrUnknownUniverse, got %v", err)
	}
}

func TestLoadRejectsEmptyFile(t *testing.T) {
	if _, err := Load(writeFile(t, `{}`)); err == nil {
		t.Fatalf("expected error for a file without universes")
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Fatalf("expected error for missing file")
	}
}
