package services

import (
	"context"
	"sort"
	"sync"

	"github.com/markdave123-py/Sumora/internal/core"
	"github.com/markdave123-py/Sumora/internal/models"
)

type memDB struct {
	mu        sync.Mutex
	users     map[string]*models.User
	documents map[string]*models.Document
	summaries map[string]*models.Summary
	statuses  []string

	createDocErr error
}

func newMemDB() *memDB {
	return &memDB{
		users:     map[string]*models.User{},
		documents: map[string]*models.Document{},
		summaries: map[string]*models.Summary{},
	}
}

var _ core.DbClient = (*memDB)(nil)

func (m *memDB) CreateUser(_ context.Context, u *models.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *u
	m.users[u.Email] = &cp
	return nil
}

func (m *memDB) GetUserByEmail(_ context.Context, email string) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[email]
	if !ok {
		return nil, core.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (m *memDB) CreateDocument(_ context.Context, d *models.Document) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.createDocErr != nil {
		return m.createDocErr
	}
	cp := *d
	m.documents[d.ID] = &cp
	return nil
}

func (m *memDB) GetDocumentByID(_ context.Context, id string) (*models.Document, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	d, ok := m.documents[id]
	if !ok {
		return nil, core.ErrNotFound
	}
	cp := *d
	return &cp, nil
}

func (m *memDB) ListDocumentsByUser(_ context.Context, userID string) ([]models.Document, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.Document
	for _, d := range m.documents {
		if d.UserID == userID {
			out = append(out, *d)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *memDB) UpdateDocumentStatus(_ context.Context, id, status string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	d, ok := m.documents[id]
	if !ok {
		return core.ErrNotFound
	}
	d.Status = status
	m.statuses = append(m.statuses, status)
	return nil
}

func (m *memDB) CreateSummary(_ context.Context, s *models.Summary) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *s
	m.summaries[s.ID] = &cp
	return nil
}

func (m *memDB) GetSummaryByID(_ context.Context, id string) (*models.Summary, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.summaries[id]
	if !ok {
		return nil, core.ErrNotFound
	}
	cp := *s
	return &cp, nil
}

func (m *memDB) ListSummariesByDocument(_ context.Context, documentID string) ([]models.Summary, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.Summary
	for _, s := range m.summaries {
		if s.DocumentID == documentID {
			out = append(out, *s)
		}
	}
	return out, nil
}

func (m *memDB) Close() error { return nil }

type memStore struct {
	mu      sync.Mutex
	objects map[string][]byte
	getErr  error
	deleted []string
}

func newMemStore() *memStore { return &memStore{objects: map[string][]byte{}} }

var _ core.ObjectClient = (*memStore)(nil)

func (s *memStore) UploadFile(_ context.Context, bucket, key string, data []byte, _ string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.objects[bucket+"/"+key] = append([]byte(nil), data...)
	return "https://" + bucket + ".s3.us-east-2.amazonaws.com/" + key, nil
}

func (s *memStore) DeleteFile(_ context.Context, bucket, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.objects, bucket+"/"+key)
	s.deleted = append(s.deleted, bucket+"/"+key)
	return nil
}

func (s *memStore) GetFile(_ context.Context, bucket, key string) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.getErr != nil {
		return nil, s.getErr
	}
	b, ok := s.objects[bucket+"/"+key]
	if !ok {
		return nil, core.ErrNotFound
	}
	return b, nil
}

func (s *memStore) len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.objects)
}
