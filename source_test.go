package cardcrawl_test

import (
	"testing"

	"github.com/mwalter/cardcrawl"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validClickSource() *cardcrawl.Source {
	return &cardcrawl.Source{
		Name:             "members",
		StartURL:         "https://example.test/members-directory/",
		Pager:            cardcrawl.PagerClick,
		Columns:          []string{"name", "email"},
		PageLinkSelector: "a.page-link[data-page]",
	}
}

func TestSource_Validate(t *testing.T) {
	t.Parallel()

	t.Run("accepts a complete click source", func(t *testing.T) {
		t.Parallel()
		require.NoError(t, validClickSource().Validate())
	})

	t.Run("requires name, start URL, and schema", func(t *testing.T) {
		t.Parallel()

		src := validClickSource()
		src.Name = ""
		assert.Equal(t, cardcrawl.EINVALID, cardcrawl.ErrorCode(src.Validate()))

		src = validClickSource()
		src.StartURL = ""
		assert.Equal(t, cardcrawl.EINVALID, cardcrawl.ErrorCode(src.Validate()))

		src = validClickSource()
		src.Columns = nil
		assert.Equal(t, cardcrawl.EINVALID, cardcrawl.ErrorCode(src.Validate()))
	})

	t.Run("requires pager specific configuration", func(t *testing.T) {
		t.Parallel()

		src := validClickSource()
		src.PageLinkSelector = ""
		assert.Error(t, src.Validate())

		src = validClickSource()
		src.Pager = cardcrawl.PagerScript
		assert.Error(t, src.Validate())
		src.PageFunc = "searchFormFpi"
		assert.NoError(t, src.Validate())

		src = validClickSource()
		src.Pager = "teleport"
		assert.Error(t, src.Validate())
	})
}

func TestSource_Faceted(t *testing.T) {
	t.Parallel()

	src := validClickSource()
	assert.False(t, src.Faceted())

	src.Facets = []string{"A1", "A"}
	assert.True(t, src.Faceted())
}
