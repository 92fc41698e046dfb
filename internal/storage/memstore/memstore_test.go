package memstore

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/fsdevblog/groph-vending/internal/domain"
	"github.com/fsdevblog/groph-vending/internal/storage"
)

func TestSave(t *testing.T) {
	store := New[domain.User]()

	saved, err := store.Save(t.Context(), domain.User{ID: "u1", Username: "alice"})
	require.NoError(t, err)
	require.Equal(t, "u1", saved.ID)

	// повторный Save с тем же ID перезаписывает запись, а не добавляет вторую.
	_, err = store.Save(t.Context(), domain.User{ID: "u1", Username: "bob"})
	require.NoError(t, err)

	all, err := store.FindAll(t.Context())
	require.NoError(t, err)
	require.Len(t, all, 1)
	require.Equal(t, "bob", all[0].Username)
}

func TestUpdate(t *testing.T) {
	store := New[domain.User]()

	ok, err := store.Update(t.Context(), domain.User{ID: "u1"})
	require.NoError(t, err)
	require.False(t, ok)

	_, err = store.Save(t.Context(), domain.User{ID: "u1", Username: "alice"})
	require.NoError(t, err)

	ok, err = store.Update(t.Context(), domain.User{ID: "u1", Username: "renamed"})
	require.NoError(t, err)
	require.True(t, ok)

	found, err := store.FindByID(t.Context(), "u1")
	require.NoError(t, err)
	require.Equal(t, "renamed", found.Username)
}

func TestDelete(t *testing.T) {
	store := New[domain.User]()

	_, err := store.Save(t.Context(), domain.User{ID: "u1"})
	require.NoError(t, err)

	ok, err := store.Delete(t.Context(), domain.User{ID: "u1"})
	require.NoError(t, err)
	require.True(t, ok)

	ok, err = store.Delete(t.Context(), domain.User{ID: "u1"})
	require.NoError(t, err)
	require.False(t, ok)
}

func TestFind(t *testing.T) {
	store := New[domain.Product]()

	_, err := store.Save(t.Context(), domain.Product{ID: "p1", Name: "cola", Cost: 25})
	require.NoError(t, err)

	byID, err := store.FindByID(t.Context(), "p1")
	require.NoError(t, err)
	require.Equal(t, "cola", byID.Name)

	byName, err := store.FindByName(t.Context(), "cola")
	require.NoError(t, err)
	require.Equal(t, "p1", byName.ID)

	_, err = store.FindByID(t.Context(), "missing")
	require.ErrorIs(t, err, storage.ErrRecordNotFound)

	_, err = store.FindByName(t.Context(), "missing")
	require.ErrorIs(t, err, storage.ErrRecordNotFound)
}

// TestFindReturnsCopy мутация найденной записи не должна протекать в хранилище в обход Update.
func TestFindReturnsCopy(t *testing.T) {
	store := New[domain.User]()

	_, err := store.Save(t.Context(), domain.User{ID: "u1", Deposit: 100})
	require.NoError(t, err)

	found, err := store.FindByID(t.Context(), "u1")
	require.NoError(t, err)
	found.Deposit = 0

	stored, err := store.FindByID(t.Context(), "u1")
	require.NoError(t, err)
	require.Equal(t, 100, stored.Deposit)
}
