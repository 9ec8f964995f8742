package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
)

// ErrNotFound is returned by repositories when an id or reference does not
// resolve against the current document.
var ErrNotFound = errors.New("record not found")

// Store owns the persisted JSON document. All access goes through View and
// Update so that every mutation plus its full-document write forms a single
// critical section.
type Store struct {
	mu   sync.RWMutex
	path string
	doc  *Document
	log  *slog.Logger
}

// Open reads the document at path, or initializes an empty one if the file
// does not exist yet. A file that exists but cannot be read or parsed is an
// error; callers treat that as fatal at startup.
func Open(path string, log *slog.Logger) (*Store, error) {
	if path == "" {
		return nil, errors.New("store path is empty")
	}
	if log == nil {
		log = slog.Default()
	}

	s := &Store{path: path, log: log}

	raw, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
		s.doc = &Document{Subscriptions: []Subscription{}, Payments: []Payment{}}
		log.Info("store initialized empty", "path", path)
		return s, nil
	case err != nil:
		return nil, fmt.Errorf("read store file: %w", err)
	}

	var doc Document
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("parse store file: %w", err)
	}
	if doc.Subscriptions == nil {
		doc.Subscriptions = []Subscription{}
	}
	if doc.Payments == nil {
		doc.Payments = []Payment{}
	}

	s.doc = &doc
	log.Info("store loaded",
		"path", path,
		"subscriptions", len(doc.Subscriptions),
		"payments", len(doc.Payments),
	)
	return s, nil
}

// View runs fn against the current document under a read lock. fn must not
// mutate the document.
func (s *Store) View(fn func(doc *Document) error) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return fn(s.doc)
}

// Update runs fn against the document under the write lock and persists the
// whole document before returning. If fn fails, nothing is written and the
// in-memory document is restored to its prior state.
func (s *Store) Update(fn func(doc *Document) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	prev := s.doc.clone()
	if err := fn(s.doc); err != nil {
		s.doc = prev
		return err
	}

	if err := s.save(); err != nil {
		s.doc = prev
		return fmt.Errorf("persist document: %w", err)
	}
	return nil
}

// save writes the document to a sibling temp file and renames it into place,
// so readers of the file on disk never observe a torn write.
func (s *Store) save() error {
	raw, err := json.MarshalIndent(s.doc, "", "  ")
	if err != nil {
		return fmt.Errorf("encode document: %w", err)
	}

	dir := filepath.Dir(s.path)
	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(raw); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("replace store file: %w", err)
	}
	return nil
}

func (d *Document) clone() *Document {
	cp := &Document{
		Subscriptions: make([]Subscription, len(d.Subscriptions)),
		Payments:      make([]Payment, len(d.Payments)),
	}
	copy(cp.Subscriptions, d.Subscriptions)
	copy(cp.Payments, d.Payments)
	return cp
}
