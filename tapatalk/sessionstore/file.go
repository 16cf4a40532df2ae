package sessionstore

import (
	"context"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"

	"github.com/tapatalk/login-go/tapatalk"
)

// File is a session store keeping one JSON file per session under a
// directory. Access is serialized with flock advisory locks, so multiple
// server processes can share the directory.
type File struct {
	dir string
}

// NewFile creates a File store rooted at dir, creating the directory if
// needed.
func NewFile(dir string) (*File, error) {
	const op = "sessionstore.NewFile"
	if dir == "" {
		return nil, fmt.Errorf("%s: directory is empty: %w", op, tapatalk.ErrInvalidParameter)
	}
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, fmt.Errorf("%s: unable to create session directory: %w", op, err)
	}
	return &File{dir: dir}, nil
}

// Session returns the store scoped to a single end-user session.
func (f *File) Session(id string) tapatalk.SessionStore {
	// hex keeps arbitrary session ids filesystem-safe
	name := hex.EncodeToString([]byte(id))
	return &fileSession{
		path: filepath.Join(f.dir, name+".json"),
		lock: flock.New(filepath.Join(f.dir, name+".lock")),
	}
}

type fileSession struct {
	path string
	lock *flock.Flock
}

// Get implements tapatalk.SessionStore.Get, returning "" for absent keys or
// when no session file exists yet.
func (s *fileSession) Get(ctx context.Context, key string) (string, error) {
	const op = "fileSession.Get"
	if err := s.lock.RLock(); err != nil {
		return "", fmt.Errorf("%s: unable to lock session file: %w", op, err)
	}
	defer func() { _ = s.lock.Unlock() }()
	values, err := s.read()
	if err != nil {
		return "", fmt.Errorf("%s: unable to read session file: %w", op, err)
	}
	return values[key], nil
}

// Set implements tapatalk.SessionStore.Set.
func (s *fileSession) Set(ctx context.Context, key string, value string) error {
	const op = "fileSession.Set"
	if err := s.lock.Lock(); err != nil {
		return fmt.Errorf("%s: unable to lock session file: %w", op, err)
	}
	defer func() { _ = s.lock.Unlock() }()
	values, err := s.read()
	if err != nil {
		return fmt.Errorf("%s: unable to read session file: %w", op, err)
	}
	values[key] = value
	if err := s.write(values); err != nil {
		return fmt.Errorf("%s: unable to write session file: %w", op, err)
	}
	return nil
}

// Delete implements tapatalk.SessionStore.Delete. The session file is removed
// once its last key is deleted.
func (s *fileSession) Delete(ctx context.Context, key string) error {
	const op = "fileSession.Delete"
	if err := s.lock.Lock(); err != nil {
		return fmt.Errorf("%s: unable to lock session file: %w", op, err)
	}
	defer func() { _ = s.lock.Unlock() }()
	values, err := s.read()
	if err != nil {
		return fmt.Errorf("%s: unable to read session file: %w", op, err)
	}
	if _, ok := values[key]; !ok {
		return nil
	}
	delete(values, key)
	if len(values) == 0 {
		if err := os.Remove(s.path); err != nil && !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("%s: unable to remove session file: %w", op, err)
		}
		return nil
	}
	if err := s.write(values); err != nil {
		return fmt.Errorf("%s: unable to write session file: %w", op, err)
	}
	return nil
}

func (s *fileSession) read() (map[string]string, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return map[string]string{}, nil
	}
	if err != nil {
		return nil, err
	}
	values := map[string]string{}
	if err := json.Unmarshal(data, &values); err != nil {
		return nil, err
	}
	return values, nil
}

func (s *fileSession) write(values map[string]string) error {
	data, err := json.Marshal(values)
	if err != nil {
		return err
	}
	// write+rename keeps readers from seeing a partial file
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return err
	}
	return os.Rename(tmp, s.path)
}
