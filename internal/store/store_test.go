package store

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/briteco/briteroles/internal/types"
)

// memBlobs implements blobStore in memory for Store tests.
type memBlobs struct {
	mu      sync.Mutex
	objects map[string][]byte

	writeErr  error
	deleteErr error

	deleted []string
}

func newMemBlobs() *memBlobs {
	return &memBlobs{objects: make(map[string][]byte)}
}

func (m *memBlobs) write(_ context.Context, name string, data []byte) error {
	if m.writeErr != nil {
		return m.writeErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.objects[name] = data
	return nil
}

func (m *memBlobs) read(_ context.Context, name string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	data, ok := m.objects[name]
	if !ok {
		return nil, ErrNotFound
	}
	return data, nil
}

func (m *memBlobs) delete(_ context.Context, name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.deleted = append(m.deleted, name)
	if m.deleteErr != nil {
		return m.deleteErr
	}
	if _, ok := m.objects[name]; !ok {
		return ErrNotFound
	}
	delete(m.objects, name)
	return nil
}

func (m *memBlobs) list(_ context.Context, prefix string) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var names []string
	for name := range m.objects {
		if len(name) >= len(prefix) && name[:len(prefix)] == prefix {
			names = append(names, name)
		}
	}
	return names, nil
}

func testStore(blobs blobStore) *Store {
	s := newStore(blobs)
	s.now = func() time.Time {
		return time.Date(2026, 3, 1, 18, 30, 0, 0, time.UTC)
	}
	return s
}

func TestTimestamp_FixedLocale(t *testing.T) {
	// 2026-03-01 18:30:00 UTC is 12:30:00 in Chicago (CST, UTC-6).
	utc := time.Date(2026, 3, 1, 18, 30, 0, 0, time.UTC)
	assert.Equal(t, "2026-03-01 12:30:00", Timestamp(utc))
}

func TestTimestamp_SortsLexicographically(t *testing.T) {
	earlier := Timestamp(time.Date(2026, 1, 5, 9, 0, 0, 0, time.UTC))
	later := Timestamp(time.Date(2026, 1, 5, 10, 0, 0, 0, time.UTC))
	assert.Less(t, earlier, later)
}

func TestSortSummaries_NewestFirst(t *testing.T) {
	summaries := []types.RoleSummary{
		{File: "a.json", LastSavedAt: "2026-01-01 08:00:00"},
		{File: "b.json", LastSavedAt: "2026-02-01 08:00:00"},
		{File: "c.json", LastSavedAt: "2026-01-15 08:00:00"},
	}

	SortSummaries(summaries)

	assert.Equal(t, "b.json", summaries[0].File)
	assert.Equal(t, "c.json", summaries[1].File)
	assert.Equal(t, "a.json", summaries[2].File)
}

func TestSortSummaries_StableForMissingTimestamps(t *testing.T) {
	summaries := []types.RoleSummary{
		{File: "a.json"},
		{File: "b.json"},
	}

	SortSummaries(summaries)

	assert.Equal(t, "a.json", summaries[0].File)
	assert.Equal(t, "b.json", summaries[1].File)
}

func TestStore_SaveDraftStampsDocument(t *testing.T) {
	mb := newMemBlobs()
	s := testStore(mb)

	file, err := s.SaveDraft(context.Background(), &types.RoleDocument{
		Title:   "Claims Specialist",
		SavedBy: "jane.doe@brite.co",
	})
	require.NoError(t, err)
	assert.Equal(t, "claims-specialist--jane-doe.json", file)

	data, ok := mb.objects[DraftsPrefix+file]
	require.True(t, ok)

	var saved types.RoleDocument
	require.NoError(t, json.Unmarshal(data, &saved))
	assert.Equal(t, "jane.doe@brite.co", saved.LastSavedBy)
	assert.Equal(t, "2026-03-01 12:30:00", saved.LastSavedAt)
}

func TestStore_SaveDraftBlankTitle(t *testing.T) {
	s := testStore(newMemBlobs())

	_, err := s.SaveDraft(context.Background(), &types.RoleDocument{Title: "!!!"})
	assert.Error(t, err)
}

func TestStore_SaveRolePromotesDraft(t *testing.T) {
	mb := newMemBlobs()
	s := testStore(mb)
	doc := &types.RoleDocument{Title: "Claims Specialist", SavedBy: "jane.doe@brite.co"}

	_, err := s.SaveDraft(context.Background(), doc)
	require.NoError(t, err)

	file, err := s.SaveRole(context.Background(), doc)
	require.NoError(t, err)

	assert.Contains(t, mb.objects, SavedPrefix+file)
	assert.NotContains(t, mb.objects, DraftsPrefix+file)
}

func TestStore_SaveRoleWithoutDraft(t *testing.T) {
	mb := newMemBlobs()
	s := testStore(mb)

	file, err := s.SaveRole(context.Background(), &types.RoleDocument{
		Title:   "Underwriter",
		SavedBy: "jane.doe@brite.co",
	})
	require.NoError(t, err)
	assert.Contains(t, mb.objects, SavedPrefix+file)
	assert.Contains(t, mb.deleted, DraftsPrefix+file)
}

func TestStore_LoadDraftNotFound(t *testing.T) {
	s := testStore(newMemBlobs())

	_, err := s.LoadDraft(context.Background(), "missing.json")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestStore_ListSortsAndSkipsMalformed(t *testing.T) {
	mb := newMemBlobs()
	mb.objects[DraftsPrefix+"old.json"] = mustDocJSON(t, "Old Role", "2026-01-01 08:00:00")
	mb.objects[DraftsPrefix+"new.json"] = mustDocJSON(t, "New Role", "2026-02-01 08:00:00")
	mb.objects[DraftsPrefix+"broken.json"] = []byte("{not json")
	mb.objects[DraftsPrefix+"notes.txt"] = []byte("ignored")
	s := testStore(mb)

	summaries, err := s.ListDrafts(context.Background())
	require.NoError(t, err)
	require.Len(t, summaries, 2)
	assert.Equal(t, "new.json", summaries[0].File)
	assert.Equal(t, "old.json", summaries[1].File)
}

func TestStore_DeleteSwallowsFailure(t *testing.T) {
	mb := newMemBlobs()
	mb.deleteErr = fmt.Errorf("bucket unreachable")
	s := testStore(mb)

	assert.NoError(t, s.DeleteDraft(context.Background(), "claims.json"))
	assert.NoError(t, s.DeleteRole(context.Background(), "claims.json"))
}

func mustDocJSON(t *testing.T, title, savedAt string) []byte {
	t.Helper()
	data, err := json.Marshal(&types.RoleDocument{Title: title, LastSavedAt: savedAt})
	require.NoError(t, err)
	return data
}

func TestValidateFileName(t *testing.T) {
	assert.NoError(t, validateFileName("claims-specialist--jane.json"))
	assert.Error(t, validateFileName(""))
	assert.Error(t, validateFileName("nested/file.json"))
	assert.Error(t, validateFileName("../escape.json"))
}
