package crawl_test

import (
	"context"
	"testing"
	"time"

	"github.com/mwalter/cardcrawl/crawl"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPacer_Wait(t *testing.T) {
	t.Parallel()

	t.Run("nil pacer never waits", func(t *testing.T) {
		t.Parallel()

		var p *crawl.Pacer
		require.NoError(t, p.Wait(context.Background()))
	})

	t.Run("spaces out successive transitions", func(t *testing.T) {
		t.Parallel()

		p := crawl.NewPacer(50) // 20ms apart

		begin := time.Now()
		require.NoError(t, p.Wait(context.Background()))
		require.NoError(t, p.Wait(context.Background()))
		require.NoError(t, p.Wait(context.Background()))

		assert.GreaterOrEqual(t, time.Since(begin), 40*time.Millisecond)
	})

	t.Run("honors context cancellation", func(t *testing.T) {
		t.Parallel()

		p := crawl.NewPacer(0.001)
		require.NoError(t, p.Wait(context.Background())) // burst token

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
		defer cancel()

		assert.Error(t, p.Wait(ctx))
	})
}
