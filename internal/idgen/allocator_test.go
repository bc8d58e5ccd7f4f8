package idgen

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeStore struct {
	counters map[string]int64

	incrementErr error
	initErr      error
	scanErr      error

	// raceOnInit simulates another writer creating the counter between
	// the failed increment and InitIfAbsent.
	raceOnInit bool

	userIDs []string
	bookIDs []string
}

func newFakeStore() *fakeStore {
	return &fakeStore{counters: map[string]int64{}}
}

func (s *fakeStore) Increment(_ context.Context, name string) (int64, bool, error) {
	if s.incrementErr != nil {
		return 0, false, s.incrementErr
	}
	v, ok := s.counters[name]
	if !ok {
		return 0, false, nil
	}
	s.counters[name] = v + 1
	return v + 1, true, nil
}

func (s *fakeStore) InitIfAbsent(_ context.Context, name string, value int64) (bool, error) {
	if s.initErr != nil {
		return false, s.initErr
	}
	if s.raceOnInit {
		s.counters[name] = value
		s.raceOnInit = false
		return false, nil
	}
	if _, ok := s.counters[name]; ok {
		return false, nil
	}
	s.counters[name] = value
	return true, nil
}

func (s *fakeStore) UserIDs(_ context.Context) ([]string, error) {
	if s.scanErr != nil {
		return nil, s.scanErr
	}
	return s.userIDs, nil
}

func (s *fakeStore) BookIDs(_ context.Context) ([]string, error) {
	if s.scanErr != nil {
		return nil, s.scanErr
	}
	return s.bookIDs, nil
}

func TestGenerateBookID_FirstAllocationsAreSequential(t *testing.T) {
	store := newFakeStore()
	alloc := New(store, store)

	id, err := alloc.GenerateBookID(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "B1001", id)

	id, err = alloc.GenerateBookID(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "B1002", id)

	id, err = alloc.GenerateBookID(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "B1003", id)
}

func TestGenerateBookID_LosingInitRaceRetriesIncrement(t *testing.T) {
	store := newFakeStore()
	store.raceOnInit = true
	alloc := New(store, store)

	// The racing writer initialized to 1001, so the retried increment
	// must yield 1002, never a duplicate 1001.
	id, err := alloc.GenerateBookID(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "B1002", id)
}

func TestGenerateBookID_CounterDownFallsBackToScan(t *testing.T) {
	store := newFakeStore()
	store.incrementErr = errors.New("connection refused")
	store.bookIDs = []string{"B1001", "B1007", "B1003"}
	alloc := New(store, store)

	id, err := alloc.GenerateBookID(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "B1008", id)
}

func TestGenerateBookID_ScanIgnoresMalformedIDs(t *testing.T) {
	store := newFakeStore()
	store.incrementErr = errors.New("connection refused")
	store.bookIDs = []string{"B1005", "legacy-42", "Bxyz"}
	alloc := New(store, store)

	id, err := alloc.GenerateBookID(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "B1006", id)
}

func TestGenerateBookID_EverythingDownIssuesTimestampID(t *testing.T) {
	store := newFakeStore()
	store.incrementErr = errors.New("connection refused")
	store.scanErr = errors.New("connection refused")

	alloc := New(store, store)
	alloc.now = func() time.Time { return time.Unix(1700000000, 0) }

	id, err := alloc.GenerateBookID(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "B1700000000", id)
}

func TestGenerateUserID_EmptyTableStartsAtBase(t *testing.T) {
	store := newFakeStore()
	alloc := New(store, store)

	id, err := alloc.GenerateUserID(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "U1001", id)
}

func TestGenerateUserID_UsesMaxExistingSuffix(t *testing.T) {
	store := newFakeStore()
	store.userIDs = []string{"U1001", "U1042", "U1010"}
	alloc := New(store, store)

	id, err := alloc.GenerateUserID(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "U1043", id)
}

func TestGenerateUserID_ScanFailureIsAnError(t *testing.T) {
	store := newFakeStore()
	store.scanErr = errors.New("connection refused")
	alloc := New(store, store)

	_, err := alloc.GenerateUserID(context.Background())
	assert.Error(t, err)
}
