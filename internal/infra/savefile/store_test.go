package savefile

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/kylepfurey/FureyLib-sub005/internal/domain"
	"github.com/kylepfurey/FureyLib-sub005/internal/infra/fileio"
)

var fixedNow = func() time.Time { return time.Date(2026, 2, 3, 10, 11, 12, 0, time.UTC) }

func newTestStore(t *testing.T, format string) (*Store, string) {
	t.Helper()
	tmp := t.TempDir()
	cfg := domain.DefaultConfig()
	cfg.Saves.Format = format

	s, err := NewStore(tmp, cfg, WithNow(fixedNow))
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	return s, tmp
}

func TestSave_WritesJSONLayout(t *testing.T) {
	s, tmp := newTestStore(t, "json")

	path, err := s.Save("Slot One", domain.SaveData{Name: "Kyle", Data: "level=2"})
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	want := filepath.Join(tmp, "saves", "slot-one.json")
	if path != want {
		t.Fatalf("path = %s, want %s", path, want)
	}

	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	var raw map[string]any
	if err := json.Unmarshal(b, &raw); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if raw["version"] != float64(1) {
		t.Fatalf("expected version 1, got %v", raw["version"])
	}
	if raw["saved_at"] != "2026-02-03T10:11:12Z" {
		t.Fatalf("unexpected saved_at %v", raw["saved_at"])
	}
	data, _ := raw["data"].(map[string]any)
	if data["name"] != "Kyle" || data["data"] != "level=2" {
		t.Fatalf("unexpected data %v", data)
	}
}

func TestSaveLoad_AllFormats(t *testing.T) {
	for _, format := range []string{"json", "yaml", "toml"} {
		t.Run(format, func(t *testing.T) {
			s, _ := newTestStore(t, format)
			in := domain.SaveData{Name: "Player \"One\"", Data: "hp=10\nmp=3"}

			path, err := s.Save("slot1", in)
			if err != nil {
				t.Fatalf("Save: %v", err)
			}
			if !strings.HasSuffix(path, "."+format) {
				t.Fatalf("expected .%s file, got %s", format, path)
			}

			f, err := s.LoadFile("slot1")
			if err != nil {
				t.Fatalf("LoadFile: %v", err)
			}
			if f.Data != in {
				t.Fatalf("round trip mismatch: %+v != %+v", f.Data, in)
			}
			if !f.SavedAt.Equal(fixedNow()) {
				t.Fatalf("SavedAt = %v", f.SavedAt)
			}
		})
	}
}

func TestSave_SwitchingFormatRemovesOldCopy(t *testing.T) {
	tmp := t.TempDir()
	cfg := domain.DefaultConfig()

	cfg.Saves.Format = "yaml"
	ys, _ := NewStore(tmp, cfg)
	if _, err := ys.Save("slot", domain.SaveData{Name: "old"}); err != nil {
		t.Fatal(err)
	}

	cfg.Saves.Format = "json"
	js, _ := NewStore(tmp, cfg)
	if _, err := js.Save("slot", domain.SaveData{Name: "new"}); err != nil {
		t.Fatal(err)
	}

	if fileio.Exists(filepath.Join(tmp, "saves", "slot.yaml")) {
		t.Fatalf("expected yaml copy removed")
	}
	got, err := ys.Load("slot")
	if err != nil {
		t.Fatalf("Load via yaml store: %v", err)
	}
	if got.Name != "new" {
		t.Fatalf("expected new data, got %+v", got)
	}
}

func TestLoad_Missing(t *testing.T) {
	s, _ := newTestStore(t, "json")
	_, err := s.Load("nope")
	if !domain.IsKind(err, domain.KindNotFound) {
		t.Fatalf("expected not_found, got %v", err)
	}
}

func TestLoad_Corrupt(t *testing.T) {
	s, _ := newTestStore(t, "json")
	if err := fileio.WriteText(filepath.Join(s.Dir(), "bad.json"), "{not json"); err != nil {
		t.Fatal(err)
	}
	_, err := s.Load("bad")
	if !domain.IsKind(err, domain.KindInvalidInput) {
		t.Fatalf("expected invalid_input, got %v", err)
	}
}

func TestLoad_FixtureFile(t *testing.T) {
	s, _ := newTestStore(t, "json")
	if err := fileio.Copy(filepath.Join("testdata", "legacy.json"), filepath.Join(s.Dir(), "legacy.json")); err != nil {
		t.Fatal(err)
	}
	d, err := s.Load("legacy")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if d.Name != "Legacy" || d.Data != `{"level":3}` {
		t.Fatalf("unexpected %+v", d)
	}
}

func TestSave_RejectsEmptySlot(t *testing.T) {
	s, _ := newTestStore(t, "json")
	if _, err := s.Save("  !!  ", domain.SaveData{}); !domain.IsKind(err, domain.KindInvalidInput) {
		t.Fatalf("expected invalid_input, got %v", err)
	}
}

func TestDeleteAndList(t *testing.T) {
	s, _ := newTestStore(t, "json")

	refs, err := s.List()
	if err != nil {
		t.Fatalf("List on missing dir: %v", err)
	}
	if len(refs) != 0 {
		t.Fatalf("expected no slots")
	}

	for _, slot := range []string{"b", "a"} {
		if _, err := s.Save(slot, domain.SaveData{Name: slot}); err != nil {
			t.Fatal(err)
		}
	}

	refs, err = s.List()
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(refs) != 2 || refs[0].Slot != "a" || refs[1].Slot != "b" {
		t.Fatalf("unexpected refs %+v", refs)
	}
	if refs[0].Format != "json" || !refs[0].SavedAt.Equal(fixedNow()) {
		t.Fatalf("unexpected ref metadata %+v", refs[0])
	}

	if !s.Delete("a") {
		t.Fatalf("expected Delete(a)")
	}
	if s.Delete("a") {
		t.Fatalf("expected second Delete(a) to report false")
	}
}

func TestNewStore_UnknownFormat(t *testing.T) {
	cfg := domain.DefaultConfig()
	cfg.Saves.Format = "xml"
	if _, err := NewStore(t.TempDir(), cfg); !domain.IsKind(err, domain.KindInvalidConfig) {
		t.Fatalf("expected invalid_config, got %v", err)
	}
}

func TestSlugify(t *testing.T) {
	cases := map[string]string{
		"Slot One":      "slot-one",
		"  auto__save ": "auto-save",
		"ÄB":            "b",
		"---":           "",
	}
	for in, want := range cases {
		if got := slugify(in); got != want {
			t.Errorf("slugify(%q) = %q, want %q", in, got, want)
		}
	}
}
