// Package ledger merges comparison metrics into a JSON statistics file that
// other pipeline stages also write to. Keys it does not own are carried
// over untouched.
package ledger

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/philipparndt/meshdist/pkg/metrics"
)

// CorruptLedgerError is returned when an existing ledger file cannot be
// parsed as a JSON object. The file is left as it was.
type CorruptLedgerError struct {
	Path string
	Err  error
}

func (e *CorruptLedgerError) Error() string {
	return fmt.Sprintf("ledger %s is not a JSON object: %v", e.Path, e.Err)
}

func (e *CorruptLedgerError) Unwrap() error {
	return e.Err
}

// Record is the decoded ledger. Values stay raw so foreign entries are
// written back byte-for-byte apart from indentation.
type Record map[string]json.RawMessage

var locks sync.Map // cleaned path -> *sync.Mutex

func lockFor(path string) *sync.Mutex {
	mu, _ := locks.LoadOrStore(filepath.Clean(path), &sync.Mutex{})
	return mu.(*sync.Mutex)
}

// Read loads the ledger at path. A missing file is an empty record.
func Read(path string) (Record, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return Record{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read ledger: %w", err)
	}
	return decode(path, data)
}

func decode(path string, data []byte) (Record, error) {
	var rec Record
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, &CorruptLedgerError{Path: path, Err: err}
	}
	if rec == nil {
		return nil, &CorruptLedgerError{Path: path, Err: errors.New("top-level value is null")}
	}
	return rec, nil
}

// Merge sets fields in the ledger at path and keeps every other key. The
// read-merge-write runs under a per-path lock, and the new content replaces
// the file with a rename so readers never see a partial write.
func Merge(path string, fields []metrics.Field) error {
	mu := lockFor(path)
	mu.Lock()
	defer mu.Unlock()

	rec, err := Read(path)
	if err != nil {
		return err
	}

	for _, f := range fields {
		raw, err := json.Marshal(f.Value)
		if err != nil {
			return fmt.Errorf("failed to encode %s: %w", f.Name, err)
		}
		rec[f.Name] = raw
	}

	data, err := Encode(rec)
	if err != nil {
		return err
	}
	return writeAtomic(path, data)
}

// Encode renders rec with sorted keys, two-space indentation and a trailing
// newline.
func Encode(rec Record) ([]byte, error) {
	data, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode ledger: %w", err)
	}
	var buf bytes.Buffer
	buf.Grow(len(data) + 1)
	buf.Write(data)
	buf.WriteByte('\n')
	return buf.Bytes(), nil
}

func writeAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	perm := fs.FileMode(0o644)
	if info, err := os.Stat(path); err == nil {
		perm = info.Mode().Perm()
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp ledger: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write temp ledger: %w", err)
	}
	if err := tmp.Chmod(perm); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to set ledger permissions: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to sync temp ledger: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close temp ledger: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("failed to replace ledger: %w", err)
	}
	return nil
}
