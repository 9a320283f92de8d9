package storage

import (
	"sort"
	"sync"

	"solace-backend/internal/model"
)

type MemoryStorage struct {
	sessions    map[string]*model.Session
	assessments map[string][]byte
	transcripts map[string]string
	mu          sync.RWMutex
}

func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{
		sessions:    make(map[string]*model.Session),
		assessments: make(map[string][]byte),
		transcripts: make(map[string]string),
	}
}

func (m *MemoryStorage) Init() error {
	return nil
}

func (m *MemoryStorage) Close() error {
	return nil
}

func (m *MemoryStorage) Backup() error {
	return nil
}

func (m *MemoryStorage) CreateSession(session *model.Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.sessions[session.ID] = session
	return nil
}

func (m *MemoryStorage) GetSession(sessionID string) (*model.Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	session, exists := m.sessions[sessionID]
	if !exists {
		return nil, ErrSessionNotFound
	}

	return session, nil
}

func (m *MemoryStorage) UpdateSession(session *model.Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.sessions[session.ID]; !exists {
		return ErrSessionNotFound
	}

	m.sessions[session.ID] = session
	return nil
}

func (m *MemoryStorage) DeleteSession(sessionID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.sessions[sessionID]; !exists {
		return ErrSessionNotFound
	}

	delete(m.sessions, sessionID)
	return nil
}

func (m *MemoryStorage) ListSessions() ([]*model.Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	sessions := make([]*model.Session, 0, len(m.sessions))
	for _, session := range m.sessions {
		sessions = append(sessions, session)
	}

	sort.Slice(sessions, func(i, j int) bool {
		return sessions[i].UpdatedAt.After(sessions[j].UpdatedAt)
	})

	return sessions, nil
}

func (m *MemoryStorage) SaveAssessment(name string, data []byte) error {
	if err := validateFileName(name); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.assessments[name] = data
	return nil
}

func (m *MemoryStorage) ListAssessments() ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	names := make([]string, 0, len(m.assessments))
	for name := range m.assessments {
		names = append(names, name)
	}
	sort.Sort(sort.Reverse(sort.StringSlice(names)))

	return names, nil
}

func (m *MemoryStorage) GetAssessment(name string) ([]byte, error) {
	if err := validateFileName(name); err != nil {
		return nil, err
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	data, exists := m.assessments[name]
	if !exists {
		return nil, ErrFileNotFound
	}
	return data, nil
}

// PutTranscript 测试与数据导入用，磁盘实现直接读目录
func (m *MemoryStorage) PutTranscript(name, content string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.transcripts[name] = content
}

func (m *MemoryStorage) ListTranscripts() ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	names := make([]string, 0, len(m.transcripts))
	for name := range m.transcripts {
		names = append(names, name)
	}
	sort.Strings(names)

	return names, nil
}

func (m *MemoryStorage) GetTranscript(name string) (string, error) {
	if err := validateFileName(name); err != nil {
		return "", err
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	content, exists := m.transcripts[name]
	if !exists {
		return "", ErrFileNotFound
	}
	return content, nil
}
