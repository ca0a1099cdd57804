package chatclient

import (
	"encoding/json"
	"os"
	"path/filepath"
)

// HistoryStore persists the conversation between sessions.
type HistoryStore interface {
	Load() ([]Message, error)
	Save(messages []Message) error
	Clear() error
}

// FileHistoryStore keeps the conversation as a JSON file on disk.
type FileHistoryStore struct {
	path string
}

func NewFileHistoryStore(path string) *FileHistoryStore {
	return &FileHistoryStore{path: path}
}

func (f *FileHistoryStore) Load() ([]Message, error) {
	data, err := os.ReadFile(f.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	var messages []Message
	if err := json.Unmarshal(data, &messages); err != nil {
		// Corrupt history starts the conversation over rather than
		// blocking the session forever.
		return nil, nil
	}
	return messages, nil
}

func (f *FileHistoryStore) Save(messages []Message) error {
	data, err := json.MarshalIndent(messages, "", "  ")
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(f.path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(f.path, data, 0o644)
}

func (f *FileHistoryStore) Clear() error {
	err := os.Remove(f.path)
	if os.IsNotExist(err) {
		return nil
	}
	return err
}
