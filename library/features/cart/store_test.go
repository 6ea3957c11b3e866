package cart_test

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/library-circulation-go/internal/testdoubles"
	"github.com/AntonStoeckl/library-circulation-go/library/features/cart"
	"github.com/AntonStoeckl/library-circulation-go/library/notify"
	"github.com/AntonStoeckl/library-circulation-go/library/shared/core"
)

func entry(itemID string, category cart.Category) cart.Entry {
	return cart.Entry{ItemID: itemID, Title: "Title " + itemID, TypeName: core.ItemTypeBook, Status: core.ItemStatusAvailable, Category: category}
}

func Test_Store_Add_SameItemTwice_KeepsOneEntry(t *testing.T) {
	// arrange
	ctx := context.Background()
	recorder := notify.NewRecorder(nil)
	store := cart.NewStore(cart.NewMemorySessionStore(), cart.WithPublisher(recorder))

	// act
	first, err := store.Add(ctx, "s-1", entry("1", cart.CategoryInCart))
	require.NoError(t, err)
	second, err := store.Add(ctx, "s-1", entry("1", cart.CategoryInCart))
	require.NoError(t, err)

	// assert
	assert.True(t, first)
	assert.False(t, second)

	entries, err := store.Entries(ctx, "s-1")
	require.NoError(t, err)
	assert.Len(t, entries, 1)
	assert.Len(t, recorder.Notifications(notify.TopicCartChanged), 1)
}

func Test_Store_Mutations(t *testing.T) {
	// arrange
	ctx := context.Background()
	recorder := notify.NewRecorder(nil)
	store := cart.NewStore(cart.NewMemorySessionStore(), cart.WithPublisher(recorder))

	for _, id := range []string{"1", "2", "3"} {
		_, err := store.Add(ctx, "s-1", entry(id, cart.CategoryInCart))
		require.NoError(t, err)
	}
	_, err := store.Add(ctx, "s-2", entry("1", cart.CategoryInCart))
	require.NoError(t, err)

	// act + assert
	require.NoError(t, store.Remove(ctx, "s-1", "2"))
	entries, err := store.Entries(ctx, "s-1")
	require.NoError(t, err)
	assert.Equal(t, []string{"1", "3"}, entries.ItemIDs())

	require.NoError(t, store.SetCategory(ctx, "s-1", "3", cart.CategoryOnHold))
	require.NoError(t, store.RemoveIfCategory(ctx, "s-1", "1", cart.CategoryOnHold))
	inCart, err := store.IsInCart(ctx, "s-1", "1")
	require.NoError(t, err)
	assert.True(t, inCart)

	require.NoError(t, store.RemoveIfCategory(ctx, "s-1", "3", cart.CategoryOnHold))
	require.NoError(t, store.Clear(ctx, "s-1"))
	entries, err = store.Entries(ctx, "s-1")
	require.NoError(t, err)
	assert.Empty(t, entries)

	other, err := store.Entries(ctx, "s-2")
	require.NoError(t, err)
	assert.Len(t, other, 1)

	changes := recorder.Notifications(notify.TopicCartChanged)
	require.Len(t, changes, 8)
	assert.Equal(t, 0, changes[len(changes)-1].Payload["entryCount"])
}

func Test_Store_Clear_EmptyCart_DoesNotPersistOrNotify(t *testing.T) {
	// arrange
	ctx := context.Background()
	recorder := notify.NewRecorder(nil)
	store := cart.NewStore(cart.NewMemorySessionStore(), cart.WithPublisher(recorder))

	// act
	err := store.Clear(ctx, "s-1")

	// assert
	require.NoError(t, err)
	assert.Empty(t, recorder.Notifications(notify.TopicCartChanged))
}

func Test_Store_ConcurrentAdds_AcrossManySessions_KeepEveryEntry(t *testing.T) {
	// arrange
	ctx := context.Background()
	store := cart.NewStore(cart.NewMemorySessionStore())
	const sessions = 200
	const items = 5

	var wg sync.WaitGroup

	// act
	for s := 0; s < sessions; s++ {
		for i := 0; i < items; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				_, err := store.Add(ctx, fmt.Sprintf("s-%d", s), entry(fmt.Sprintf("%d", i), cart.CategoryInCart))
				assert.NoError(t, err)
			}()
		}
	}
	wg.Wait()

	// assert
	for s := 0; s < sessions; s++ {
		entries, err := store.Entries(ctx, fmt.Sprintf("s-%d", s))
		require.NoError(t, err)
		assert.Len(t, entries, items)
	}
}

func Test_Store_Errors(t *testing.T) {
	ctx := context.Background()
	store := cart.NewStore(cart.NewMemorySessionStore())

	_, err := store.Add(ctx, "", entry("1", cart.CategoryInCart))
	assert.ErrorIs(t, err, cart.ErrEmptySessionID)

	_, err = store.Add(ctx, "s-1", entry("1", "Wishlist"))
	assert.ErrorIs(t, err, cart.ErrUnknownCategory)
}

func Test_Store_NotificationFailure_DoesNotFailTheMutation(t *testing.T) {
	// arrange
	ctx := context.Background()
	logs := testdoubles.NewLogHandlerSpy(false)
	store := cart.NewStore(
		cart.NewMemorySessionStore(),
		cart.WithPublisher(notify.NewRecorder(errors.New("broker down"))),
		cart.WithLogger(slog.New(logs)),
	)

	// act
	added, err := store.Add(ctx, "s-1", entry("1", cart.CategoryInCart))

	// assert
	require.NoError(t, err)
	assert.True(t, added)
	assert.True(t, logs.HasMessage(slog.LevelWarn, "publishing cart.changed failed"))
}
