package savefile

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/kylepfurey/FureyLib-sub005/internal/domain"
	"github.com/kylepfurey/FureyLib-sub005/internal/infra/fileio"
	"github.com/kylepfurey/FureyLib-sub005/internal/ports"
)

const defaultSavesDir = "saves"

// Store keeps one file per save slot under <root>/<saves dir>.
type Store struct {
	rootDir  string
	dirName  string
	codec    Codec
	now      func() time.Time
	fallback Codec
	log      *slog.Logger
}

type Option func(*Store)

// WithNow is useful for tests.
func WithNow(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

func WithLogger(l *slog.Logger) Option {
	return func(s *Store) {
		if l != nil {
			s.log = l
		}
	}
}

// WithCodec overrides the codec picked from the config format.
func WithCodec(c Codec) Option {
	return func(s *Store) { s.codec = c }
}

func NewStore(root string, cfg domain.Config, opts ...Option) (*Store, error) {
	dir := cfg.Saves.Dir
	if strings.TrimSpace(dir) == "" {
		dir = defaultSavesDir
	}

	format := cfg.Saves.Format
	if strings.TrimSpace(format) == "" {
		format = "json"
	}
	codec, err := CodecFor(format)
	if err != nil {
		return nil, &domain.OpError{Op: "savefile.new", Kind: domain.KindInvalidConfig, Err: err}
	}

	s := &Store{
		rootDir:  root,
		dirName:  dir,
		codec:    codec,
		now:      time.Now,
		fallback: jsonCodec{},
		log:      slog.New(slog.NewJSONHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

var _ ports.SaveStore = (*Store)(nil)

func (s *Store) Dir() string { return filepath.Join(s.rootDir, s.dirName) }

// Save writes data into slot and returns the file path.
// Saving in one format removes copies of the slot left in other formats.
func (s *Store) Save(slot string, data domain.SaveData) (string, error) {
	name := slugify(slot)
	if name == "" {
		return "", &domain.OpError{
			Op:   "savefile.save",
			Kind: domain.KindInvalidInput,
			Err:  fmt.Errorf("slot name %q is empty after normalization: %w", slot, domain.ErrInvalidInput),
		}
	}

	path := filepath.Join(s.Dir(), name+s.codec.Ext())
	b, err := s.codec.Marshal(domain.SaveFile{
		Version: domain.SaveFileVersion,
		SavedAt: s.now().UTC().Truncate(time.Second),
		Data:    data,
	})
	if err != nil {
		return "", &domain.OpError{Op: "savefile.marshal", Kind: domain.KindExecution, Path: path, Err: err}
	}

	if err := fileio.WriteBytes(path, b, 0o600); err != nil {
		return "", err
	}

	for _, other := range s.slotPaths(name) {
		if other != path {
			_ = os.Remove(other)
		}
	}
	s.log.Info("savefile.saved", "slot", name, "path", path, "bytes", len(b))
	return path, nil
}

func (s *Store) Load(slot string) (domain.SaveData, error) {
	f, err := s.LoadFile(slot)
	if err != nil {
		return domain.SaveData{}, err
	}
	return f.Data, nil
}

// LoadFile returns the full envelope, including metadata.
func (s *Store) LoadFile(slot string) (domain.SaveFile, error) {
	name := slugify(slot)
	paths := s.slotPaths(name)
	if name == "" || len(paths) == 0 {
		return domain.SaveFile{}, &domain.OpError{
			Op:   "savefile.load",
			Kind: domain.KindNotFound,
			Path: filepath.Join(s.Dir(), name+s.codec.Ext()),
			Err:  fmt.Errorf("slot %q: %w", slot, domain.ErrNotFound),
		}
	}
	return s.readFile(paths[0])
}

func (s *Store) Delete(slot string) bool {
	removed := false
	for _, p := range s.slotPaths(slugify(slot)) {
		if fileio.Delete(p) {
			removed = true
		}
	}
	if removed {
		s.log.Info("savefile.deleted", "slot", slot)
	}
	return removed
}

// List returns every slot in the saves dir, sorted by slot name.
func (s *Store) List() ([]domain.SlotRef, error) {
	paths, err := fileio.List(s.Dir(), ".json", ".yaml", ".yml", ".toml")
	if err != nil {
		if domain.IsKind(err, domain.KindNotFound) {
			return []domain.SlotRef{}, nil
		}
		return nil, err
	}

	out := make([]domain.SlotRef, 0, len(paths))
	for _, p := range paths {
		ref := domain.SlotRef{
			Slot:   strings.TrimSuffix(filepath.Base(p), filepath.Ext(p)),
			Path:   p,
			Format: strings.TrimPrefix(filepath.Ext(p), "."),
		}
		if f, err := s.readFile(p); err == nil {
			ref.SavedAt = f.SavedAt
		}
		out = append(out, ref)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Slot < out[j].Slot })
	return out, nil
}

func (s *Store) readFile(path string) (domain.SaveFile, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		kind := domain.KindExecution
		if errors.Is(err, fs.ErrNotExist) {
			kind = domain.KindNotFound
		}
		return domain.SaveFile{}, &domain.OpError{Op: "savefile.read", Kind: kind, Path: path, Err: err}
	}

	codec, ok := codecForExt(filepath.Ext(path))
	if !ok {
		codec = s.fallback
	}

	var f domain.SaveFile
	if err := codec.Unmarshal(b, &f); err != nil {
		return domain.SaveFile{}, &domain.OpError{Op: "savefile.decode", Kind: domain.KindInvalidInput, Path: path, Err: err}
	}
	if f.Version > domain.SaveFileVersion {
		return domain.SaveFile{}, &domain.OpError{
			Op:   "savefile.decode",
			Kind: domain.KindInvalidInput,
			Path: path,
			Err:  fmt.Errorf("save version %d is newer than supported %d", f.Version, domain.SaveFileVersion),
		}
	}
	return f, nil
}

// slotPaths lists existing files for a slot, configured format first.
func (s *Store) slotPaths(name string) []string {
	if name == "" {
		return nil
	}
	exts := []string{s.codec.Ext()}
	for _, e := range []string{".json", ".yaml", ".yml", ".toml"} {
		if e != s.codec.Ext() {
			exts = append(exts, e)
		}
	}

	var out []string
	for _, e := range exts {
		p := filepath.Join(s.Dir(), name+e)
		if fileio.Exists(p) {
			out = append(out, p)
		}
	}
	return out
}

// slugify produces a safe filename component.
func slugify(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return ""
	}

	var b strings.Builder
	b.Grow(len(s))

	lastDash := false
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastDash = false
		default:
			if !lastDash {
				b.WriteByte('-')
				lastDash = true
			}
		}
	}

	return strings.Trim(b.String(), "-")
}
