package service

import (
	"context"
	"sync"

	"github.com/alienwaste/alienwaste-backend/pkg/clock"
	"github.com/alienwaste/alienwaste-backend/pkg/state"

	"github.com/sirupsen/logrus"
)

type memoryRecord struct {
	mu    sync.Mutex
	state *state.GameState
}

// MemoryGameStateStore keeps game state in process memory.
// Operations on one user are serialized; different users proceed in parallel.
type MemoryGameStateStore struct {
	mu      sync.RWMutex
	records map[string]*memoryRecord
	factory StateFactory
	clock   clock.Clock
}

func NewMemoryGameStateStore(factory StateFactory, clk clock.Clock) *MemoryGameStateStore {
	return &MemoryGameStateStore{
		records: make(map[string]*memoryRecord),
		factory: factory,
		clock:   clk,
	}
}

func (m *MemoryGameStateStore) lookup(userID string) (*memoryRecord, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	rec, ok := m.records[userID]
	return rec, ok
}

func (m *MemoryGameStateStore) GetOrCreate(_ context.Context, userID string) (*state.GameState, bool, error) {
	rec, ok := m.lookup(userID)
	created := false

	if !ok {
		m.mu.Lock()
		rec, ok = m.records[userID]
		if !ok {
			rec = &memoryRecord{state: m.factory(userID, m.clock.Now())}
			m.records[userID] = rec
			created = true
		}
		m.mu.Unlock()
	}

	if created {
		logrus.Infof("created game state for user %s", userID)
	}

	rec.mu.Lock()
	defer rec.mu.Unlock()
	return rec.state.Clone(), created, nil
}

func (m *MemoryGameStateStore) Get(_ context.Context, userID string) (*state.GameState, error) {
	rec, ok := m.lookup(userID)
	if !ok {
		return nil, ErrNotFound
	}

	rec.mu.Lock()
	defer rec.mu.Unlock()
	return rec.state.Clone(), nil
}

func (m *MemoryGameStateStore) Apply(_ context.Context, userID string, mutate Mutation) (*state.GameState, error) {
	rec, ok := m.lookup(userID)
	if !ok {
		return nil, ErrNotFound
	}

	rec.mu.Lock()
	defer rec.mu.Unlock()

	working := rec.state.Clone()
	if err := mutate(working); err != nil {
		return nil, err
	}
	rec.state = working

	return working.Clone(), nil
}

func (m *MemoryGameStateStore) List(_ context.Context) ([]*state.GameState, error) {
	m.mu.RLock()
	records := make([]*memoryRecord, 0, len(m.records))
	for _, rec := range m.records {
		records = append(records, rec)
	}
	m.mu.RUnlock()

	states := make([]*state.GameState, 0, len(records))
	for _, rec := range records {
		rec.mu.Lock()
		states = append(states, rec.state.Clone())
		rec.mu.Unlock()
	}
	return states, nil
}
