package feed

import (
	"archive/zip"
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	syncengine "gomarketsync_api/internal/sync"
	"gomarketsync_api/pkg/logger"
)

// Имена колонок в выгрузке поставщика.
const (
	columnSKU      = "Код"
	columnQuantity = "Количество"
	columnPrice    = "Цена"
)

// Loader скачивает zip-архив с остатками и разбирает CSV-выгрузку в
// снапшот инвентаря. Выгрузка идет в Windows-1251 с разделителем ';'
// и рекламной шапкой перед строкой заголовка.
type Loader struct {
	fetcher      Fetcher
	headerOffset int
	log          logger.Logger
}

func NewLoader(fetcher Fetcher, headerOffset int, writer io.Writer) *Loader {
	_log := logger.NewLogger(writer, "[FeedLoader]")
	return &Loader{fetcher: fetcher, headerOffset: headerOffset, log: _log}
}

// Load возвращает полный снапшот остатков за один запуск синхронизации.
func (l *Loader) Load(ctx context.Context, url string) ([]syncengine.InventoryRecord, error) {
	l.log.Log("Downloading remnants archive: %s", url)

	body, err := l.fetcher.Fetch(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("failed to download remnants archive: %w", err)
	}
	defer body.Close()

	archiveBytes, err := io.ReadAll(body)
	if err != nil {
		return nil, fmt.Errorf("failed to read remnants archive: %w", err)
	}

	archive, err := zip.NewReader(bytes.NewReader(archiveBytes), int64(len(archiveBytes)))
	if err != nil {
		return nil, fmt.Errorf("failed to open remnants archive: %w", err)
	}

	file, err := pickRemnantsFile(archive)
	if err != nil {
		return nil, err
	}

	reader, err := file.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", file.Name, err)
	}
	defer reader.Close()

	records, err := l.Parse(reader)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", file.Name, err)
	}

	l.log.Log("Loaded %d inventory records", len(records))
	return records, nil
}

func pickRemnantsFile(archive *zip.Reader) (*zip.File, error) {
	for _, file := range archive.File {
		if file.FileInfo().IsDir() {
			continue
		}
		if strings.HasSuffix(strings.ToLower(file.Name), ".csv") {
			return file, nil
		}
	}
	return nil, fmt.Errorf("remnants archive contains no csv file")
}

// Parse разбирает CSV-выгрузку остатков: пропускает headerOffset строк
// преамбулы, находит колонки по заголовку и собирает записи. Строки с
// пустым кодом товара пропускаются.
func (l *Loader) Parse(reader io.Reader) ([]syncengine.InventoryRecord, error) {
	decoder := transform.NewReader(reader, charmap.Windows1251.NewDecoder())
	csvReader := csv.NewReader(decoder)
	csvReader.Comma = ';'
	csvReader.LazyQuotes = true
	csvReader.FieldsPerRecord = -1

	allRows, err := csvReader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("csv read error: %w", err)
	}
	if len(allRows) <= l.headerOffset {
		return nil, fmt.Errorf("csv data is empty")
	}

	header := allRows[l.headerOffset]
	data := allRows[l.headerOffset+1:]

	skuIdx := indexOf(header, columnSKU)
	quantityIdx := indexOf(header, columnQuantity)
	priceIdx := indexOf(header, columnPrice)
	if skuIdx < 0 || quantityIdx < 0 || priceIdx < 0 {
		return nil, fmt.Errorf("csv header is missing required columns %q, %q, %q",
			columnSKU, columnQuantity, columnPrice)
	}

	records := make([]syncengine.InventoryRecord, 0, len(data))
	for _, row := range data {
		if skuIdx >= len(row) || row[skuIdx] == "" {
			continue
		}
		records = append(records, syncengine.InventoryRecord{
			SKU:         row[skuIdx],
			RawQuantity: cell(row, quantityIdx),
			RawPrice:    cell(row, priceIdx),
		})
	}
	return records, nil
}

func cell(row []string, idx int) string {
	if idx < len(row) {
		return row[idx]
	}
	return ""
}

func indexOf(slice []string, str string) int {
	for i, s := range slice {
		if s == str {
			return i
		}
	}
	return -1
}
