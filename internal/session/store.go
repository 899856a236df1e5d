// Package session manages conversation session records and the
// current-session pointer file.
package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/hliang/pai/internal/model"
)

const currentPointerFile = "current_session"

// ErrNotFound is returned when a session id resolves to no session file.
var ErrNotFound = errors.New("session not found")

// ErrDeleteCurrent is returned when deleting the current session is refused.
var ErrDeleteCurrent = errors.New("cannot delete current session")

// Store persists sessions as JSON files under <dataRoot>/sessions. The
// current-session pointer is a separate file overwritten on every
// switch/create/rename — never versioned.
type Store struct {
	dir string
}

// NewStore creates a session store rooted at the assistant data directory.
func NewStore(dataRoot string) *Store {
	return &Store{dir: filepath.Join(dataRoot, "sessions")}
}

func (s *Store) ensureDir() error {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("create sessions dir: %w", err)
	}
	return nil
}

func (s *Store) sessionPath(id string) string {
	return filepath.Join(s.dir, id+".json")
}

func (s *Store) pointerPath() string {
	return filepath.Join(s.dir, currentPointerFile)
}

func (s *Store) writeSession(sess model.Session, updatePointer bool) error {
	raw, err := json.MarshalIndent(sess, "", "  ")
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}
	if err := os.WriteFile(s.sessionPath(sess.ID), raw, 0o644); err != nil {
		return fmt.Errorf("write session: %w", err)
	}
	if updatePointer {
		if err := os.WriteFile(s.pointerPath(), raw, 0o644); err != nil {
			return fmt.Errorf("write current pointer: %w", err)
		}
	}
	return nil
}

// Current returns the session the pointer file resolves to. A missing pointer
// synthesizes a new Default session so the invariant "current always resolves"
// holds.
func (s *Store) Current() (model.Session, error) {
	if err := s.ensureDir(); err != nil {
		return model.Session{}, err
	}

	raw, err := os.ReadFile(s.pointerPath())
	if err != nil {
		if os.IsNotExist(err) {
			return s.Create("Default")
		}
		return model.Session{}, fmt.Errorf("read current pointer: %w", err)
	}

	var sess model.Session
	if err := json.Unmarshal(raw, &sess); err != nil {
		return model.Session{}, fmt.Errorf("parse current pointer: %w", err)
	}
	return sess, nil
}

// Create makes a new session, persists it, and points the current pointer at
// it.
func (s *Store) Create(name string) (model.Session, error) {
	if err := s.ensureDir(); err != nil {
		return model.Session{}, err
	}

	now := time.Now().UnixMilli()
	sess := model.Session{
		ID:         fmt.Sprintf("session-%d", now),
		Name:       name,
		CreatedAt:  now,
		LastActive: now,
	}
	if err := s.writeSession(sess, true); err != nil {
		return model.Session{}, err
	}
	return sess, nil
}

// List returns every session, most recently active first.
func (s *Store) List() ([]model.Session, error) {
	if err := s.ensureDir(); err != nil {
		return nil, err
	}

	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("read sessions dir: %w", err)
	}

	var sessions []model.Session
	for _, entry := range entries {
		name := entry.Name()
		if !strings.HasPrefix(name, "session-") || !strings.HasSuffix(name, ".json") {
			continue
		}
		raw, err := os.ReadFile(filepath.Join(s.dir, name))
		if err != nil {
			continue
		}
		var sess model.Session
		if err := json.Unmarshal(raw, &sess); err != nil {
			continue
		}
		sessions = append(sessions, sess)
	}

	sort.SliceStable(sessions, func(i, j int) bool {
		return sessions[i].LastActive > sessions[j].LastActive
	})
	return sessions, nil
}

func (s *Store) read(id string) (model.Session, error) {
	raw, err := os.ReadFile(s.sessionPath(id))
	if err != nil {
		return model.Session{}, ErrNotFound
	}
	var sess model.Session
	if err := json.Unmarshal(raw, &sess); err != nil {
		return model.Session{}, fmt.Errorf("parse session: %w", err)
	}
	return sess, nil
}

// Switch points the current pointer at an existing session.
func (s *Store) Switch(id string) (model.Session, error) {
	if err := s.ensureDir(); err != nil {
		return model.Session{}, err
	}

	sess, err := s.read(id)
	if err != nil {
		return model.Session{}, err
	}
	raw, _ := json.MarshalIndent(sess, "", "  ")
	if err := os.WriteFile(s.pointerPath(), raw, 0o644); err != nil {
		return model.Session{}, fmt.Errorf("write current pointer: %w", err)
	}
	return sess, nil
}

// Delete removes a session file. Deleting the current session is refused and
// leaves the file intact.
func (s *Store) Delete(id string) error {
	if err := s.ensureDir(); err != nil {
		return err
	}

	if _, err := os.Stat(s.sessionPath(id)); err != nil {
		return ErrNotFound
	}

	current, err := s.Current()
	if err != nil {
		return err
	}
	if current.ID == id {
		return ErrDeleteCurrent
	}

	if err := os.Remove(s.sessionPath(id)); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

// Rename changes a session's display name, rewriting the pointer file when
// the renamed session is current.
func (s *Store) Rename(id, name string) (model.Session, error) {
	if err := s.ensureDir(); err != nil {
		return model.Session{}, err
	}

	sess, err := s.read(id)
	if err != nil {
		return model.Session{}, err
	}
	sess.Name = name

	updatePointer := false
	if current, err := s.Current(); err == nil && current.ID == id {
		updatePointer = true
	}
	if err := s.writeSession(sess, updatePointer); err != nil {
		return model.Session{}, err
	}
	return sess, nil
}

// Touch refreshes the session's last-active instant and persists it.
func (s *Store) Touch(sess *model.Session) error {
	sess.LastActive = time.Now().UnixMilli()
	return s.writeSession(*sess, true)
}

// IncrementMessages bumps the message count and refreshes activity.
func (s *Store) IncrementMessages(sess *model.Session) error {
	sess.MessageCount++
	return s.Touch(sess)
}
