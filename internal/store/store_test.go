package store_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/hbarnes/penny/internal/storage"
	"github.com/hbarnes/penny/internal/store"
)

type note struct {
	ID        uuid.UUID `json:"id"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"created_at"`
}

func (n note) EntityID() uuid.UUID { return n.ID }

func byCreation(a, b note) bool { return a.CreatedAt.Before(b.CreatedAt) }

func newNote(text string, at time.Time) note {
	return note{ID: uuid.New(), Text: text, CreatedAt: at}
}

func TestCollection_LoadMissingSlotStartsEmpty(t *testing.T) {
	ctrl := gomock.NewController(t)
	slot := storage.NewMockSlot(ctrl)
	slot.EXPECT().Read(gomock.Any(), "notes").Return(nil, storage.ErrNotFound)

	c := store.New(slot, "notes", byCreation)
	c.Load(context.Background())

	assert.NoError(t, c.Err())
	assert.Empty(t, c.Items())
}

func TestCollection_LoadCorruptSlotResetsEmpty(t *testing.T) {
	ctrl := gomock.NewController(t)
	slot := storage.NewMockSlot(ctrl)
	slot.EXPECT().Read(gomock.Any(), "notes").Return([]byte("{not json"), nil)

	c := store.New(slot, "notes", byCreation)
	c.Load(context.Background())

	assert.Error(t, c.Err())
	assert.Empty(t, c.Items())
}

func TestCollection_AddSortsAndPersists(t *testing.T) {
	ctrl := gomock.NewController(t)
	slot := storage.NewMockSlot(ctrl)

	var persisted []byte

	slot.EXPECT().
		Write(gomock.Any(), "notes", gomock.Any()).
		DoAndReturn(func(_ context.Context, _ string, data []byte) error {
			persisted = data
			return nil
		}).
		Times(3)

	c := store.New(slot, "notes", byCreation)
	ctx := context.Background()

	base := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	require.NoError(t, c.Add(ctx, newNote("second", base.Add(time.Hour))))
	require.NoError(t, c.Add(ctx, newNote("first", base)))
	require.NoError(t, c.Add(ctx, newNote("third", base.Add(2*time.Hour))))

	items := c.Items()
	require.Len(t, items, 3)
	assert.Equal(t, "first", items[0].Text)
	assert.Equal(t, "second", items[1].Text)
	assert.Equal(t, "third", items[2].Text)

	// The slot always holds the full serialized collection.
	var stored []note
	require.NoError(t, json.Unmarshal(persisted, &stored))
	assert.Len(t, stored, 3)
}

func TestCollection_AddPersistFailureDropsEntity(t *testing.T) {
	ctrl := gomock.NewController(t)
	slot := storage.NewMockSlot(ctrl)
	slot.EXPECT().
		Write(gomock.Any(), "notes", gomock.Any()).
		Return(errors.New("quota exceeded"))

	c := store.New(slot, "notes", byCreation)

	err := c.Add(context.Background(), newNote("doomed", time.Now()))
	assert.Error(t, err)
	assert.Empty(t, c.Items())
	assert.Error(t, c.Err())
}

func TestCollection_UpdateUnknownIDIsSilentNoOp(t *testing.T) {
	ctrl := gomock.NewController(t)
	slot := storage.NewMockSlot(ctrl)
	// No Write expected: an absent id must not trigger a persist.

	c := store.New(slot, "notes", byCreation)

	err := c.Update(context.Background(), uuid.New(), func(n note) note {
		n.Text = "changed"
		return n
	})
	assert.NoError(t, err)
}

func TestCollection_UpdatePatchesTargetedFields(t *testing.T) {
	ctrl := gomock.NewController(t)
	slot := storage.NewMockSlot(ctrl)
	slot.EXPECT().Write(gomock.Any(), "notes", gomock.Any()).Return(nil).Times(2)

	c := store.New(slot, "notes", byCreation)
	ctx := context.Background()

	n := newNote("before", time.Now())
	require.NoError(t, c.Add(ctx, n))

	require.NoError(t, c.Update(ctx, n.ID, func(cur note) note {
		cur.Text = "after"
		return cur
	}))

	got, ok := c.Get(n.ID)
	require.True(t, ok)
	assert.Equal(t, "after", got.Text)
	assert.Equal(t, n.CreatedAt, got.CreatedAt)
}

func TestCollection_RemoveThenClearAllDeletesSlot(t *testing.T) {
	ctrl := gomock.NewController(t)
	slot := storage.NewMockSlot(ctrl)
	slot.EXPECT().Write(gomock.Any(), "notes", gomock.Any()).Return(nil).Times(3)
	slot.EXPECT().Delete(gomock.Any(), "notes").Return(nil)

	c := store.New(slot, "notes", byCreation)
	ctx := context.Background()

	a := newNote("a", time.Now())
	b := newNote("b", time.Now().Add(time.Minute))
	require.NoError(t, c.Add(ctx, a))
	require.NoError(t, c.Add(ctx, b))

	require.NoError(t, c.Remove(ctx, a.ID))
	assert.Equal(t, 1, c.Len())

	require.NoError(t, c.ClearAll(ctx))
	assert.Empty(t, c.Items())
}

func TestCollection_ClearAllDeleteFailureKeepsItems(t *testing.T) {
	ctrl := gomock.NewController(t)
	slot := storage.NewMockSlot(ctrl)
	slot.EXPECT().Write(gomock.Any(), "notes", gomock.Any()).Return(nil)
	slot.EXPECT().Delete(gomock.Any(), "notes").Return(errors.New("disk gone"))

	c := store.New(slot, "notes", byCreation)
	ctx := context.Background()

	n := newNote("survivor", time.Now())
	require.NoError(t, c.Add(ctx, n))

	err := c.ClearAll(ctx)
	assert.Error(t, err)
	assert.Error(t, c.Err())

	items := c.Items()
	require.Len(t, items, 1)
	assert.Equal(t, n.ID, items[0].ID)
}

func TestCollection_RoundTripThroughSlot(t *testing.T) {
	ctrl := gomock.NewController(t)
	slot := storage.NewMockSlot(ctrl)

	var persisted []byte

	slot.EXPECT().
		Write(gomock.Any(), "notes", gomock.Any()).
		DoAndReturn(func(_ context.Context, _ string, data []byte) error {
			persisted = data
			return nil
		}).
		Times(2)

	c := store.New(slot, "notes", byCreation)
	ctx := context.Background()

	base := time.Date(2024, 5, 1, 9, 30, 0, 0, time.UTC)
	require.NoError(t, c.Add(ctx, newNote("keep me", base)))
	require.NoError(t, c.Add(ctx, newNote("me too", base.Add(time.Minute))))

	want := c.Items()

	// A fresh collection loading the persisted bytes must be equal,
	// order and field values included.
	slot.EXPECT().Read(gomock.Any(), "notes").Return(persisted, nil)

	fresh := store.New(slot, "notes", byCreation)
	fresh.Load(ctx)

	assert.NoError(t, fresh.Err())
	assert.Equal(t, want, fresh.Items())
}
