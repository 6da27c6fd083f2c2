package bootstrap

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApp_Run(t *testing.T) {
	t.Run("run returns nil", func(t *testing.T) {
		app := New(time.Second)
		err := app.Run(context.Background(), func(ctx context.Context) error {
			return nil
		})
		assert.NoError(t, err)
	})

	t.Run("run error is joined with hook errors", func(t *testing.T) {
		app := New(time.Second)
		want := errors.New("run failed")
		hookErr := errors.New("close failed")
		app.AddShutdownHook("store", func(ctx context.Context) error { return hookErr })

		err := app.Run(context.Background(), func(ctx context.Context) error {
			return want
		})
		assert.ErrorIs(t, err, want)
		assert.ErrorIs(t, err, hookErr)
		assert.ErrorContains(t, err, "shutdown store")
	})

	t.Run("shutdown hooks run in LIFO order on context cancel", func(t *testing.T) {
		app := New(time.Second)
		var mu sync.Mutex
		var order []string
		for _, name := range []string{"first", "second", "third"} {
			name := name
			app.AddShutdownHook(name, func(ctx context.Context) error {
				mu.Lock()
				defer mu.Unlock()
				order = append(order, name)
				return nil
			})
		}

		ctx, cancel := context.WithCancel(context.Background())
		err := app.Run(ctx, func(ctx context.Context) error {
			cancel()
			<-ctx.Done()
			return nil
		})
		require.NoError(t, err)
		assert.Equal(t, []string{"third", "second", "first"}, order)
	})

	t.Run("hook registered from inside run callback", func(t *testing.T) {
		app := New(0)
		called := make(chan struct{}, 1)

		err := app.Run(context.Background(), func(ctx context.Context) error {
			app.AddShutdownHook("server", func(ctx context.Context) error {
				_, ok := ctx.Deadline()
				assert.True(t, ok)
				called <- struct{}{}
				return nil
			})
			return nil
		})
		require.NoError(t, err)
		assert.Len(t, called, 1)
	})
}
