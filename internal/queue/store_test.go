package queue

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ytget/vivid-downloader/internal/model"
	"github.com/ytget/vivid-downloader/internal/worker"
)

type fakeBusy struct{ busy bool }

func (f *fakeBusy) Busy() bool { return f.busy }

func newEntry(title string, formats ...model.Format) *model.QueueEntry {
	return model.NewQueueEntry(title, "uploader", formats, model.SourceRecord{URL: "https://example.com/" + title})
}

func titles(entries []*model.QueueEntry) []string {
	out := make([]string, 0, len(entries))
	for _, e := range entries {
		out = append(out, e.Title)
	}
	return out
}

func TestStore_AddEntriesKeepsOrder(t *testing.T) {
	s := NewStore(nil)
	require.NoError(t, s.AddEntries(newEntry("A"), newEntry("B")))
	require.NoError(t, s.AddEntries(newEntry("C")))

	assert.Equal(t, []string{"A", "B", "C"}, titles(s.Entries()))
	assert.Equal(t, 3, s.Len())
}

func TestStore_AddEntriesRejectsDuplicateID(t *testing.T) {
	s := NewStore(nil)
	a := newEntry("A")
	require.NoError(t, s.AddEntries(a))

	err := s.AddEntries(a, newEntry("B"))
	assert.ErrorIs(t, err, ErrDuplicateID)
	assert.Equal(t, []string{"A", "B"}, titles(s.Entries()))
}

func TestStore_SelectionSnapshot(t *testing.T) {
	s := NewStore(nil)
	a, b, c := newEntry("A"), newEntry("B"), newEntry("C")
	require.NoError(t, s.AddEntries(a, b, c))

	assert.True(t, s.SetSelected(b.ID, false))
	assert.False(t, s.SetSelected("missing", true))

	snapshot := s.Selected()
	assert.Equal(t, []string{"A", "C"}, titles(snapshot))

	s.SetSelected(a.ID, false)
	assert.Equal(t, []string{"A", "C"}, titles(snapshot))
	assert.Equal(t, []string{"C"}, titles(s.Selected()))
}

func TestStore_SelectAllIsIdempotent(t *testing.T) {
	s := NewStore(nil)
	a, b := newEntry("A"), newEntry("B")
	require.NoError(t, s.AddEntries(a, b))
	s.SetSelected(a.ID, false)

	s.SelectAll()
	s.SelectAll()

	entries := s.Entries()
	require.Len(t, entries, 2)
	for _, e := range entries {
		assert.True(t, e.Selected)
	}
}

func TestStore_SetChosenFormat(t *testing.T) {
	s := NewStore(nil)
	withFormats := newEntry("A", model.Format{Label: "720p (mp4)", ID: "22"})
	bare := newEntry("B")
	require.NoError(t, s.AddEntries(withFormats, bare))

	require.NoError(t, s.SetChosenFormat(withFormats.ID, "720p (mp4)"))
	got, _ := s.Get(withFormats.ID)
	assert.Equal(t, "720p (mp4)", got.ChosenFormat)

	require.NoError(t, s.SetChosenFormat(withFormats.ID, model.BestFormat))
	assert.ErrorIs(t, s.SetChosenFormat(withFormats.ID, "4320p"), ErrUnknownFormat)

	assert.ErrorIs(t, s.SetChosenFormat(bare.ID, "720p (mp4)"), ErrNoFormats)
	got, _ = s.Get(bare.ID)
	assert.Equal(t, model.BestFormat, got.ChosenFormat)

	assert.ErrorIs(t, s.SetChosenFormat("missing", model.BestFormat), ErrNotFound)
}

func TestStore_ClearWhileBusy(t *testing.T) {
	busy := &fakeBusy{busy: true}
	s := NewStore(busy)
	require.NoError(t, s.AddEntries(newEntry("A"), newEntry("B")))

	assert.ErrorIs(t, s.Clear(), worker.ErrBusy)
	assert.Equal(t, 2, s.Len())

	busy.busy = false
	require.NoError(t, s.Clear())
	assert.Equal(t, 0, s.Len())
}

func TestStore_UpdateStatusProgressRules(t *testing.T) {
	s := NewStore(nil)
	a := newEntry("A")
	require.NoError(t, s.AddEntries(a))

	require.True(t, s.UpdateStatus(a.ID, model.EntryStatusStarting, 0))
	s.UpdateStatus(a.ID, model.EntryStatusDownloading, 40)
	s.UpdateStatus(a.ID, model.EntryStatusDownloading, 10)

	got, _ := s.Get(a.ID)
	assert.Equal(t, model.EntryStatusDownloading, got.Status)
	assert.InDelta(t, 40, got.Progress, 0.001)

	s.UpdateStatus(a.ID, model.EntryStatusCompleted, 63)
	got, _ = s.Get(a.ID)
	assert.Equal(t, model.EntryStatusCompleted, got.Status)
	assert.InDelta(t, 100, got.Progress, 0.001)
}

func TestStore_UpdateUnknownIDIsNoop(t *testing.T) {
	s := NewStore(nil)
	assert.False(t, s.UpdateStatus("gone", model.EntryStatusDownloading, 50))
	assert.False(t, s.SetError("gone", "boom"))
	assert.False(t, s.SetOutputPath("gone", "/tmp/x.mp4"))
}

func TestStore_SetError(t *testing.T) {
	s := NewStore(nil)
	a := newEntry("A")
	require.NoError(t, s.AddEntries(a))
	s.UpdateStatus(a.ID, model.EntryStatusDownloading, 30)

	require.True(t, s.SetError(a.ID, "HTTP Error 403"))
	got, _ := s.Get(a.ID)
	assert.Equal(t, model.EntryStatusError, got.Status)
	assert.Equal(t, "HTTP Error 403", got.LastError)
	assert.InDelta(t, 30, got.Progress, 0.001)
}

func TestStore_EntriesAreCopies(t *testing.T) {
	s := NewStore(nil)
	a := newEntry("A")
	require.NoError(t, s.AddEntries(a))

	a.Title = "mutated by caller"
	entries := s.Entries()
	entries[0].Selected = false

	got, _ := s.Get(a.ID)
	assert.Equal(t, "A", got.Title)
	assert.True(t, got.Selected)
}
