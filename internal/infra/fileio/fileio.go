// Package fileio holds small text-file helpers.
//
// Reads and writes return *domain.OpError on failure; Exists and Delete
// report plain boolean success.
package fileio

import (
	"bufio"
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/kylepfurey/FureyLib-sub005/internal/domain"
)

func ReadText(path string) (string, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return "", readErr("fileio.read", path, err)
	}
	return string(b), nil
}

// ReadLines returns the file split on newlines, without line terminators.
func ReadLines(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, readErr("fileio.read_lines", path, err)
	}
	defer f.Close()

	var lines []string
	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	for sc.Scan() {
		lines = append(lines, sc.Text())
	}
	if err := sc.Err(); err != nil {
		return nil, &domain.OpError{Op: "fileio.read_lines", Kind: domain.KindExecution, Path: path, Err: err}
	}
	return lines, nil
}

// WriteText replaces the file contents, creating parent directories.
func WriteText(path, text string) error {
	return WriteBytes(path, []byte(text), 0o644)
}

// WriteBytes writes atomically: tmp then rename.
func WriteBytes(path string, b []byte, perm fs.FileMode) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return &domain.OpError{Op: "fileio.mkdir", Kind: domain.KindExecution, Path: filepath.Dir(path), Err: err}
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, b, perm); err != nil {
		return &domain.OpError{Op: "fileio.write", Kind: domain.KindExecution, Path: tmp, Err: err}
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return &domain.OpError{Op: "fileio.rename", Kind: domain.KindExecution, Path: path, Err: err}
	}
	return nil
}

func AppendText(path, text string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return &domain.OpError{Op: "fileio.mkdir", Kind: domain.KindExecution, Path: filepath.Dir(path), Err: err}
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return &domain.OpError{Op: "fileio.append", Kind: domain.KindExecution, Path: path, Err: err}
	}
	defer f.Close()

	if _, err := f.WriteString(text); err != nil {
		return &domain.OpError{Op: "fileio.append", Kind: domain.KindExecution, Path: path, Err: err}
	}
	return nil
}

func Exists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

// Delete removes a file and reports whether something was removed.
func Delete(path string) bool {
	if !Exists(path) {
		return false
	}
	return os.Remove(path) == nil
}

func Copy(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return readErr("fileio.copy", src, err)
	}
	defer in.Close()

	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return &domain.OpError{Op: "fileio.mkdir", Kind: domain.KindExecution, Path: filepath.Dir(dst), Err: err}
	}
	out, err := os.Create(dst)
	if err != nil {
		return &domain.OpError{Op: "fileio.copy", Kind: domain.KindExecution, Path: dst, Err: err}
	}
	if _, err := io.Copy(out, in); err != nil {
		_ = out.Close()
		return &domain.OpError{Op: "fileio.copy", Kind: domain.KindExecution, Path: dst, Err: err}
	}
	return out.Close()
}

// List returns the files in dir (non-recursive) whose extension matches one
// of exts, sorted by name. No exts means every file.
func List(dir string, exts ...string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, readErr("fileio.list", dir, err)
	}

	var out []string
	for _, e := range entries {
		if e.IsDir() || strings.HasSuffix(e.Name(), ".tmp") {
			continue
		}
		if len(exts) > 0 && !hasExt(e.Name(), exts) {
			continue
		}
		out = append(out, filepath.Join(dir, e.Name()))
	}
	sort.Strings(out)
	return out, nil
}

func hasExt(name string, exts []string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	for _, e := range exts {
		if ext == strings.ToLower(e) {
			return true
		}
	}
	return false
}

func readErr(op, path string, err error) error {
	kind := domain.KindExecution
	if errors.Is(err, fs.ErrNotExist) {
		kind = domain.KindNotFound
	}
	return &domain.OpError{Op: op, Kind: kind, Path: path, Err: err}
}
