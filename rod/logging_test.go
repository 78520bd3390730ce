package rod_test

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/mwalter/cardcrawl"
	"github.com/mwalter/cardcrawl/mock"
	"github.com/mwalter/cardcrawl/rod"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoggingSession(t *testing.T) {
	t.Parallel()

	t.Run("logs navigation and delegates", func(t *testing.T) {
		t.Parallel()

		var navigated string
		next := &mock.Session{
			NavigateFn: func(_ context.Context, url string) error {
				navigated = url
				return nil
			},
		}

		var buf bytes.Buffer
		s := rod.NewLoggingSession(next, slog.New(slog.NewTextHandler(&buf, nil)))

		require.NoError(t, s.Navigate(context.Background(), "https://example.com/dir"))
		assert.Equal(t, "https://example.com/dir", navigated)
		assert.Contains(t, buf.String(), "msg=navigate")
		assert.Contains(t, buf.String(), "url=https://example.com/dir")
	})

	t.Run("logs element counts at debug level", func(t *testing.T) {
		t.Parallel()

		next := &mock.Session{
			ElementsFn: func(context.Context, string) ([]cardcrawl.Element, error) {
				return []cardcrawl.Element{&mock.Element{}, &mock.Element{}}, nil
			},
		}

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
		s := rod.NewLoggingSession(next, logger)

		els, err := s.Elements(context.Background(), "div.card")

		require.NoError(t, err)
		assert.Len(t, els, 2)
		assert.Contains(t, buf.String(), "count=2")
	})

	t.Run("propagates errors unchanged", func(t *testing.T) {
		t.Parallel()

		next := &mock.Session{
			HTMLFn: func(context.Context) (string, error) {
				return "", assert.AnError
			},
		}

		var buf bytes.Buffer
		s := rod.NewLoggingSession(next, slog.New(slog.NewTextHandler(&buf, nil)))

		_, err := s.HTML(context.Background())
		assert.ErrorIs(t, err, assert.AnError)
	})
}
