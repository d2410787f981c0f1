package feed

import (
	"archive/zip"
	"bytes"
	"context"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	syncengine "gomarketsync_api/internal/sync"
)

func encodeWindows1251(t *testing.T, s string) []byte {
	t.Helper()
	encoded, _, err := transform.Bytes(charmap.Windows1251.NewEncoder(), []byte(s))
	require.NoError(t, err)
	return encoded
}

const remnantsCSV = "ООО Часовой мир;;\n" +
	"выгрузка от 26.08.2026;;\n" +
	"Код;Количество;Цена\n" +
	"CAS-1;>10;5'990.00 руб.\n" +
	"CAS-2;1;199\n" +
	";5;100\n" +
	"CAS-3;4;1 200.50\n"

func TestParse(t *testing.T) {
	loader := NewLoader(nil, 2, io.Discard)

	records, err := loader.Parse(bytes.NewReader(encodeWindows1251(t, remnantsCSV)))
	require.NoError(t, err)

	// строка с пустым кодом выброшена
	require.Len(t, records, 3)
	assert.Equal(t, syncengine.InventoryRecord{SKU: "CAS-1", RawQuantity: ">10", RawPrice: "5'990.00 руб."}, records[0])
	assert.Equal(t, syncengine.InventoryRecord{SKU: "CAS-2", RawQuantity: "1", RawPrice: "199"}, records[1])
	assert.Equal(t, syncengine.InventoryRecord{SKU: "CAS-3", RawQuantity: "4", RawPrice: "1 200.50"}, records[2])
}

func TestParseMissingColumns(t *testing.T) {
	loader := NewLoader(nil, 0, io.Discard)

	_, err := loader.Parse(bytes.NewReader(encodeWindows1251(t, "Код;Остаток\nCAS-1;5\n")))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing required columns")
}

func TestParseEmpty(t *testing.T) {
	loader := NewLoader(nil, 5, io.Discard)

	_, err := loader.Parse(strings.NewReader(""))
	require.Error(t, err)
}

type staticFetcher struct {
	body []byte
}

func (f *staticFetcher) Fetch(_ context.Context, _ string) (io.ReadCloser, error) {
	return io.NopCloser(bytes.NewReader(f.body)), nil
}

func TestLoadFromArchive(t *testing.T) {
	var buf bytes.Buffer
	writer := zip.NewWriter(&buf)
	entry, err := writer.Create("ostatki.csv")
	require.NoError(t, err)
	_, err = entry.Write(encodeWindows1251(t, remnantsCSV))
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	loader := NewLoader(&staticFetcher{body: buf.Bytes()}, 2, io.Discard)

	records, err := loader.Load(context.Background(), "https://example.com/ostatki.zip")
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, "CAS-1", records[0].SKU)
}

func TestLoadNoCsvInArchive(t *testing.T) {
	var buf bytes.Buffer
	writer := zip.NewWriter(&buf)
	_, err := writer.Create("readme.txt")
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	loader := NewLoader(&staticFetcher{body: buf.Bytes()}, 0, io.Discard)

	_, err = loader.Load(context.Background(), "https://example.com/ostatki.zip")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no csv file")
}
