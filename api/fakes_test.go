package api

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/CeraCharlesCC/wiki-ish-battlebox-generator/db"
	"github.com/CeraCharlesCC/wiki-ish-battlebox-generator/document"
	"github.com/CeraCharlesCC/wiki-ish-battlebox-generator/tmpstore"
)

// memStore is an in-memory db.Store for handler tests. failWith, when
// set, makes every call fail with that error.
type memStore struct {
	mu       sync.Mutex
	docs     map[string]document.Document
	failWith error
}

func newMemStore() *memStore {
	return &memStore{docs: map[string]document.Document{}}
}

func (s *memStore) CreateDocument(_ context.Context, doc document.Document) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failWith != nil {
		return s.failWith
	}
	if _, ok := s.docs[doc.ID]; ok {
		return db.ErrDuplicateID
	}
	s.docs[doc.ID] = doc.Clone()
	return nil
}

func (s *memStore) GetDocument(_ context.Context, id string) (document.Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failWith != nil {
		return document.Document{}, s.failWith
	}
	doc, ok := s.docs[id]
	if !ok {
		return document.Document{}, db.ErrDocumentNotFound
	}
	return doc.Clone(), nil
}

func (s *memStore) UpdateDocument(_ context.Context, doc document.Document) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failWith != nil {
		return s.failWith
	}
	if _, ok := s.docs[doc.ID]; !ok {
		return db.ErrDocumentNotFound
	}
	s.docs[doc.ID] = doc.Clone()
	return nil
}

func (s *memStore) DeleteDocument(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failWith != nil {
		return s.failWith
	}
	if _, ok := s.docs[id]; !ok {
		return db.ErrDocumentNotFound
	}
	delete(s.docs, id)
	return nil
}

func (s *memStore) ListDocuments(_ context.Context, limit, offset int32) ([]db.DocumentSummary, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failWith != nil {
		return nil, s.failWith
	}

	all := make([]document.Document, 0, len(s.docs))
	for _, doc := range s.docs {
		all = append(all, doc)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].LastEdited.After(all[j].LastEdited) })

	summaries := []db.DocumentSummary{}
	for i := int(offset); i < len(all) && len(summaries) < int(limit); i++ {
		summaries = append(summaries, db.DocumentSummary{
			ID:         all[i].ID,
			Title:      all[i].Title,
			LastEdited: all[i].LastEdited.UTC().Format(time.RFC3339),
		})
	}
	return summaries, nil
}

func (s *memStore) Shutdown() {}

// memDrafts is an in-memory tmpstore.Store for handler tests.
type memDrafts struct {
	mu       sync.Mutex
	drafts   map[string]tmpstore.Draft
	failWith error
}

func newMemDrafts() *memDrafts {
	return &memDrafts{drafts: map[string]tmpstore.Draft{}}
}

func (s *memDrafts) SaveDraft(_ context.Context, docID string, draft tmpstore.Draft, _ time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failWith != nil {
		return s.failWith
	}
	s.drafts[docID] = draft
	return nil
}

func (s *memDrafts) GetDraft(_ context.Context, docID string) (*tmpstore.Draft, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failWith != nil {
		return nil, s.failWith
	}
	draft, ok := s.drafts[docID]
	if !ok {
		return nil, tmpstore.ErrDraftNotFound
	}
	return &draft, nil
}

func (s *memDrafts) DeleteDraft(_ context.Context, docID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failWith != nil {
		return s.failWith
	}
	delete(s.drafts, docID)
	return nil
}
