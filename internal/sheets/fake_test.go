package sheets

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"
)

type memSheet struct {
	file   File
	folder string
	rows   [][]string
}

// memBackend is an in-memory Backend that counts calls.
type memBackend struct {
	mu     sync.Mutex
	sheets map[string]*memSheet
	nextID int
	clock  time.Time

	calls map[string]int

	findErr   error
	createErr error
	appendErr error
	deleteErr map[string]error
}

func newMemBackend() *memBackend {
	return &memBackend{
		sheets:    make(map[string]*memSheet),
		clock:     time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		calls:     make(map[string]int),
		deleteErr: make(map[string]error),
	}
}

// seed adds an existing spreadsheet with the given modification time.
func (m *memBackend) seed(id, name, folder string, modified time.Time, rows ...[]string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sheets[id] = &memSheet{file: File{ID: id, Name: name, ModifiedTime: modified}, folder: folder, rows: rows}
}

func (m *memBackend) count(op string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls[op]
}

func (m *memBackend) totalCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	total := 0
	for _, n := range m.calls {
		total += n
	}
	return total
}

func (m *memBackend) rows(id string) [][]string {
	m.mu.Lock()
	defer m.mu.Unlock()
	if s, ok := m.sheets[id]; ok {
		return s.rows
	}
	return nil
}

func (m *memBackend) FindByName(_ context.Context, name, folderID string) ([]File, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls["find"]++
	if m.findErr != nil {
		return nil, m.findErr
	}

	var out []File
	for _, s := range m.sheets {
		if s.file.Name == name && (folderID == "" || s.folder == folderID) {
			out = append(out, s.file)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *memBackend) Create(_ context.Context, name, folderID string) (File, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls["create"]++
	if m.createErr != nil {
		return File{}, m.createErr
	}

	m.nextID++
	m.clock = m.clock.Add(time.Minute)
	f := File{ID: fmt.Sprintf("sheet-%d", m.nextID), Name: name, ModifiedTime: m.clock}
	m.sheets[f.ID] = &memSheet{file: f, folder: folderID}
	return f, nil
}

func (m *memBackend) ReadHeader(_ context.Context, id string) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls["read_header"]++
	s, ok := m.sheets[id]
	if !ok {
		return nil, errors.New("not found")
	}
	if len(s.rows) == 0 {
		return nil, nil
	}
	return append([]string(nil), s.rows[0]...), nil
}

func (m *memBackend) AppendRows(_ context.Context, id string, rows [][]string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls["append"]++
	if m.appendErr != nil {
		return m.appendErr
	}
	s, ok := m.sheets[id]
	if !ok {
		return errors.New("not found")
	}
	s.rows = append(s.rows, rows...)
	return nil
}

func (m *memBackend) ListOwned(context.Context) ([]File, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls["list"]++

	var out []File
	for _, s := range m.sheets {
		out = append(out, s.file)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *memBackend) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls["delete"]++
	if err := m.deleteErr[id]; err != nil {
		return err
	}
	delete(m.sheets, id)
	return nil
}
