package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// FilePersister keeps the whole snapshot as one JSON document on disk.
// Saves rewrite the entire file, so persistence latency scales with total
// data size, not with the size of the change.
type FilePersister struct {
	path string
}

func NewFilePersister(path string) *FilePersister {
	return &FilePersister{path: path}
}

func (p *FilePersister) Load() (map[string]json.RawMessage, error) {
	data, err := os.ReadFile(p.path)
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]json.RawMessage{}, nil
		}
		return nil, fmt.Errorf("read snapshot %s: %w", p.path, err)
	}

	if len(data) == 0 {
		return map[string]json.RawMessage{}, nil
	}

	var snapshot map[string]json.RawMessage
	if err := json.Unmarshal(data, &snapshot); err != nil {
		return nil, fmt.Errorf("decode snapshot %s: %w", p.path, err)
	}
	return snapshot, nil
}

func (p *FilePersister) Save(snapshot map[string]json.RawMessage) error {
	data, err := json.MarshalIndent(snapshot, "", "  ")
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}

	if dir := filepath.Dir(p.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create snapshot dir: %w", err)
		}
	}

	// Write-then-rename so a crash mid-save never truncates the snapshot.
	tmp := p.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write snapshot %s: %w", tmp, err)
	}
	if err := os.Rename(tmp, p.path); err != nil {
		return fmt.Errorf("rename snapshot %s: %w", p.path, err)
	}
	return nil
}
