package crawl_test

import (
	"context"
	"testing"

	"github.com/mwalter/cardcrawl"
	"github.com/mwalter/cardcrawl/crawl"
	"github.com/mwalter/cardcrawl/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseIndicator(t *testing.T) {
	t.Parallel()

	t.Run("parses the visible range and total", func(t *testing.T) {
		t.Parallel()

		st, err := crawl.ParseIndicator("1 to 25 of 136 records")

		require.NoError(t, err)
		assert.Equal(t, cardcrawl.PaginationState{Start: 1, End: 25, Total: 136}, st)
		assert.Equal(t, 25, st.PerPage())
		assert.Equal(t, 6, st.TotalPages(st.PerPage()))
	})

	t.Run("tolerates non-breaking spaces and case", func(t *testing.T) {
		t.Parallel()

		st, err := crawl.ParseIndicator("26 TO 50 OF 136 records")

		require.NoError(t, err)
		assert.Equal(t, cardcrawl.PaginationState{Start: 26, End: 50, Total: 136}, st)
	})

	t.Run("returns ENOTFOUND for unparseable text", func(t *testing.T) {
		t.Parallel()

		_, err := crawl.ParseIndicator("loading...")

		require.Error(t, err)
		assert.Equal(t, cardcrawl.ENOTFOUND, cardcrawl.ErrorCode(err))

		_, err = crawl.ParseIndicator("")
		assert.Equal(t, cardcrawl.ENOTFOUND, cardcrawl.ErrorCode(err))
	})
}

func TestDiscoverMaxPage(t *testing.T) {
	t.Parallel()

	t.Run("takes the maximum numeric page marker", func(t *testing.T) {
		t.Parallel()

		session := &mock.Session{
			ElementsFn: func(context.Context, string) ([]cardcrawl.Element, error) {
				return pageAnchors("2", "14", "3", "next"), nil
			},
		}

		got := crawl.DiscoverMaxPage(context.Background(), session, "a.page-link[data-page]", 99)

		assert.Equal(t, 14, got)
	})

	t.Run("falls back to anchor text when the attribute is empty", func(t *testing.T) {
		t.Parallel()

		el := &mock.Element{
			AttributeFn: func(context.Context, string) (string, error) { return "", nil },
			TextFn:      func(context.Context) (string, error) { return " 8 ", nil },
		}
		session := &mock.Session{
			ElementsFn: func(context.Context, string) ([]cardcrawl.Element, error) {
				return []cardcrawl.Element{el}, nil
			},
		}

		got := crawl.DiscoverMaxPage(context.Background(), session, "ul.pagination a", 99)

		assert.Equal(t, 8, got)
	})

	t.Run("returns the fallback when nothing numeric is found", func(t *testing.T) {
		t.Parallel()

		session := &mock.Session{
			ElementsFn: func(context.Context, string) ([]cardcrawl.Element, error) {
				return nil, nil
			},
		}

		got := crawl.DiscoverMaxPage(context.Background(), session, "a.page-link[data-page]", 14)

		assert.Equal(t, 14, got)
	})
}

func TestIndicatorReader_State(t *testing.T) {
	t.Parallel()

	t.Run("reads and parses the indicator element", func(t *testing.T) {
		t.Parallel()

		el := &mock.Element{
			TextFn: func(context.Context) (string, error) {
				return "126 to 136 of 136 records", nil
			},
			AttributeFn: func(context.Context, string) (string, error) { return "", nil },
		}
		r := &crawl.IndicatorReader{
			Session: &mock.Session{
				ElementsFn: func(context.Context, string) ([]cardcrawl.Element, error) {
					return []cardcrawl.Element{el}, nil
				},
			},
			Selector: "div.pagination_inner p",
		}

		st, err := r.State(context.Background())

		require.NoError(t, err)
		assert.Equal(t, cardcrawl.PaginationState{Start: 126, End: 136, Total: 136}, st)
	})

	t.Run("returns ENOTFOUND when no indicator is rendered", func(t *testing.T) {
		t.Parallel()

		r := &crawl.IndicatorReader{
			Session: &mock.Session{
				ElementsFn: func(context.Context, string) ([]cardcrawl.Element, error) {
					return nil, nil
				},
			},
			Selector: "div.pagination_inner p",
		}

		_, err := r.State(context.Background())

		require.Error(t, err)
		assert.Equal(t, cardcrawl.ENOTFOUND, cardcrawl.ErrorCode(err))
	})
}
