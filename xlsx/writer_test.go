package xlsx_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/mwalter/cardcrawl"
	"github.com/mwalter/cardcrawl/xlsx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestWriter_WriteTable(t *testing.T) {
	t.Parallel()

	columns := []string{"type", "name", "company", "mobile_no", "email", "website"}

	t.Run("writes header and rows in column order", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "members.xlsx")
		records := []cardcrawl.Record{
			{
				"type":      "Life Member",
				"name":      "Jane Roe",
				"company":   "Roe Logistics",
				"mobile_no": "+919876543210",
				"email":     "jane@roe.test",
				"website":   "https://roe.test/",
			},
			{
				"type": "", "name": "No Frills", "company": "",
				"mobile_no": "0012345678", "email": "", "website": "",
			},
		}

		err := xlsx.NewWriter(path).WriteTable(context.Background(), columns, []string{"mobile_no"}, records)
		require.NoError(t, err)

		f, err := excelize.OpenFile(path)
		require.NoError(t, err)
		defer f.Close()

		rows, err := f.GetRows("Sheet1")
		require.NoError(t, err)
		require.Len(t, rows, 3)
		assert.Equal(t, columns, rows[0])
		assert.Equal(t, "Jane Roe", rows[1][1])

		// Phone values survive as text, plus sign and leading zeros intact.
		mobile, err := f.GetCellValue("Sheet1", "D2")
		require.NoError(t, err)
		assert.Equal(t, "+919876543210", mobile)
		mobile, err = f.GetCellValue("Sheet1", "D3")
		require.NoError(t, err)
		assert.Equal(t, "0012345678", mobile)
	})

	t.Run("replaces an existing artifact", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "members.xlsx")
		w := xlsx.NewWriter(path)

		require.NoError(t, w.WriteTable(context.Background(), columns, nil, []cardcrawl.Record{
			{"name": "old"},
		}))
		require.NoError(t, w.WriteTable(context.Background(), columns, nil, []cardcrawl.Record{
			{"name": "new one"},
			{"name": "new two"},
		}))

		f, err := excelize.OpenFile(path)
		require.NoError(t, err)
		defer f.Close()

		rows, err := f.GetRows("Sheet1")
		require.NoError(t, err)
		require.Len(t, rows, 3)
		assert.Equal(t, "new one", rows[1][1])
	})

	t.Run("returns ELOCKED for an unwritable destination", func(t *testing.T) {
		t.Parallel()

		// A directory at the destination path stands in for a file held
		// open by another program.
		dir := t.TempDir()
		path := filepath.Join(dir, "members.xlsx")
		require.NoError(t, os.Mkdir(path, 0o755))

		err := xlsx.NewWriter(path).WriteTable(context.Background(), columns, nil, nil)

		require.Error(t, err)
		assert.Equal(t, cardcrawl.ELOCKED, cardcrawl.ErrorCode(err))

		// The existing destination was not touched.
		info, statErr := os.Stat(path)
		require.NoError(t, statErr)
		assert.True(t, info.IsDir())
	})

	t.Run("leaves no temp files behind", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		path := filepath.Join(dir, "out.xlsx")

		require.NoError(t, xlsx.NewWriter(path).WriteTable(context.Background(), columns, nil, nil))

		entries, err := os.ReadDir(dir)
		require.NoError(t, err)
		require.Len(t, entries, 1)
		assert.Equal(t, "out.xlsx", entries[0].Name())
	})

	t.Run("honors context cancellation before writing", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "out.xlsx")
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		err := xlsx.NewWriter(path).WriteTable(ctx, columns, nil, nil)

		require.Error(t, err)
		_, statErr := os.Stat(path)
		assert.True(t, os.IsNotExist(statErr))
	})
}
