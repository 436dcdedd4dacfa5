package blob

import (
	"strings"
	"sync"
)

// Memory is an in-process store for tests and local development. PutErr and
// DeleteErr inject failures; Deleted records every delete attempt in order.
type Memory struct {
	mu      sync.Mutex
	objects map[string][]byte

	BaseURL   string
	PutErr    error
	DeleteErr error
	Deleted   []string
}

func NewMemory() *Memory {
	return &Memory{
		objects: make(map[string][]byte),
		BaseURL: "https://blobs.example.test",
	}
}

func (m *Memory) Put(key string, content []byte) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.PutErr != nil {
		return "", m.PutErr
	}

	m.objects[key] = content
	return m.BaseURL + "/" + key, nil
}

func (m *Memory) Delete(url string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.Deleted = append(m.Deleted, url)
	if m.DeleteErr != nil {
		return m.DeleteErr
	}

	delete(m.objects, strings.TrimPrefix(url, m.BaseURL+"/"))
	return nil
}

// Has reports whether a previously returned URL still resolves to an object.
func (m *Memory) Has(url string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	_, ok := m.objects[strings.TrimPrefix(url, m.BaseURL+"/")]
	return ok
}

func (m *Memory) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.objects)
}
