package ports

import (
	"context"
	"testing"
	"time"

	"github.com/aretw0/cssmachine/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// RunDocumentStoreContract runs a suite of tests to verify that a DocumentStore implementation
// adheres to the defined interface contract.
func RunDocumentStoreContract(t *testing.T, store DocumentStore) {
	ctx := context.Background()
	suffix := time.Now().Format("20060102150405.000000000")

	newDoc := func(html string) domain.SharedDocument {
		return domain.NewSharedDocument(domain.DefaultMachine(), html+suffix)
	}

	t.Run("Save and Load", func(t *testing.T) {
		doc := newDoc("<p>save</p>")

		err := store.Save(ctx, doc)
		require.NoError(t, err, "Save should not return error")

		loaded, err := store.Load(ctx, doc.ID)
		require.NoError(t, err, "Load should not return error")
		assert.Equal(t, doc.ID, loaded.ID)
		assert.Equal(t, doc.HTML, loaded.HTML)
		assert.Equal(t, doc.Machine, loaded.Machine)
		assert.True(t, doc.CreatedAt.Equal(loaded.CreatedAt), "CreatedAt should survive a round trip")
	})

	t.Run("Load Non-Existent", func(t *testing.T) {
		_, err := store.Load(ctx, "non-existent-"+suffix)
		assert.ErrorIs(t, err, domain.ErrDocumentNotFound)
	})

	t.Run("Overwrite", func(t *testing.T) {
		doc := newDoc("<p>overwrite</p>")
		require.NoError(t, store.Save(ctx, doc))

		doc.Machine.Name = "renamed"
		require.NoError(t, store.Save(ctx, doc))

		loaded, err := store.Load(ctx, doc.ID)
		require.NoError(t, err)
		assert.Equal(t, "renamed", loaded.Machine.Name)
	})

	t.Run("Delete", func(t *testing.T) {
		doc := newDoc("<p>delete</p>")
		require.NoError(t, store.Save(ctx, doc))

		err := store.Delete(ctx, doc.ID)
		require.NoError(t, err, "Delete should not return error")

		_, err = store.Load(ctx, doc.ID)
		assert.ErrorIs(t, err, domain.ErrDocumentNotFound, "Load after Delete should return ErrDocumentNotFound")

		assert.NoError(t, store.Delete(ctx, doc.ID), "deleting twice should be a no-op")
	})

	t.Run("List", func(t *testing.T) {
		d1 := newDoc("<p>list-1</p>")
		d2 := newDoc("<p>list-2</p>")
		require.NoError(t, store.Save(ctx, d1))
		require.NoError(t, store.Save(ctx, d2))

		defer func() {
			_ = store.Delete(ctx, d1.ID)
			_ = store.Delete(ctx, d2.ID)
		}()

		ids, err := store.List(ctx)
		require.NoError(t, err)
		assert.Contains(t, ids, d1.ID)
		assert.Contains(t, ids, d2.ID)
	})
}

// RunMachineLibraryContract verifies a MachineLibrary that has been seeded with
// the machine want under id.
func RunMachineLibraryContract(t *testing.T, lib MachineLibrary, id string, want domain.MachineConfig) {
	ctx := context.Background()

	t.Run("Get", func(t *testing.T) {
		got, err := lib.Get(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, want.States, got.States)
		assert.Equal(t, want.TapeLength, got.TapeLength)
	})

	t.Run("Get Non-Existent", func(t *testing.T) {
		_, err := lib.Get(ctx, "no-such-machine")
		assert.ErrorIs(t, err, domain.ErrMachineNotFound)
	})

	t.Run("List", func(t *testing.T) {
		list, err := lib.List(ctx)
		require.NoError(t, err)

		var found bool
		for i, s := range list {
			if i > 0 {
				assert.Less(t, list[i-1].ID, s.ID, "List should be sorted by ID")
			}
			if s.ID == id {
				found = true
				assert.Equal(t, len(want.States), s.States)
				assert.Equal(t, want.TapeLength, s.TapeLength)
			}
		}
		assert.True(t, found, "List should include %q", id)
	})
}
