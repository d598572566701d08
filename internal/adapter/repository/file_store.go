package repository

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/pkg/errors"

	"vibe-resume/internal/domain"
	"vibe-resume/internal/model"
)

// FileStore persists one JSON record per session under a single directory.
// Writes go to a temp file in the same directory and are renamed over the
// record, so a crash mid-write never truncates existing state.
type FileStore struct {
	dir string
}

func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0750); err != nil {
		return nil, errors.Wrapf(err, "failed to create session dir: %s", dir)
	}
	return &FileStore{dir: dir}, nil
}

// SanitizeID strips everything but letters and digits from a caller-supplied
// session identifier before it is used as a storage key.
func SanitizeID(id string) string {
	out := make([]byte, 0, len(id))
	for i := 0; i < len(id); i++ {
		c := id[i]
		if c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= '0' && c <= '9' {
			out = append(out, c)
		}
	}
	return string(out)
}

func (s *FileStore) path(id string) string {
	return filepath.Join(s.dir, SanitizeID(id)+".json")
}

// Get loads a session record. A missing record returns (nil, nil): sessions
// are created lazily on first reference.
func (s *FileStore) Get(_ context.Context, id string) (*domain.Session, error) {
	raw, err := os.ReadFile(s.path(id))
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read session: %s", id)
	}
	if err := model.ValidateSessionJSON(raw); err != nil {
		return nil, errors.Wrapf(err, "stored session is invalid: %s", id)
	}
	var sess domain.Session
	if err := json.Unmarshal(raw, &sess); err != nil {
		return nil, errors.Wrapf(err, "failed to decode session: %s", id)
	}
	return &sess, nil
}

// Put atomically replaces the session record.
func (s *FileStore) Put(_ context.Context, sess *domain.Session) error {
	raw, err := json.MarshalIndent(sess, "", "  ")
	if err != nil {
		return errors.Wrap(err, "failed to encode session")
	}

	tmp, err := os.CreateTemp(s.dir, ".session-*")
	if err != nil {
		return errors.Wrap(err, "failed to create temp file")
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(raw); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return errors.Wrap(err, "failed to write session")
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return errors.Wrap(err, "failed to close temp file")
	}
	if err := os.Rename(tmpName, s.path(sess.ID)); err != nil {
		os.Remove(tmpName)
		return errors.Wrapf(err, "failed to replace session: %s", sess.ID)
	}
	return nil
}

// Delete removes a session record; deleting an absent record is not an
// error.
func (s *FileStore) Delete(_ context.Context, id string) error {
	err := os.Remove(s.path(id))
	if err != nil && !os.IsNotExist(err) {
		return errors.Wrapf(err, "failed to delete session: %s", id)
	}
	return nil
}
