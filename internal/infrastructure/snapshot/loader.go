package snapshot

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"deal_analyzer/internal/domain"
	"deal_analyzer/internal/domain/entity"
	"deal_analyzer/internal/domain/service/pricing"
	"deal_analyzer/pkg/errcodes"
)

const (
	Extension         = ".csv"
	DateStampLayout   = "20060102"
	categoryDelimiter = "_"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF} //nolint:gochecknoglobals

// Category derives the category of a snapshot from its file name: the part
// before the first "_".
func Category(path string) string {
	name := filepath.Base(path)

	category, _, found := strings.Cut(name, categoryDelimiter)
	if !found {
		return strings.TrimSuffix(name, filepath.Ext(name))
	}

	return category
}

// Loader reads category snapshot files.
type Loader struct{}

func NewLoader() Loader {
	return Loader{}
}

// Discover lists the snapshots of day in dir: files with the .csv
// extension whose name contains the YYYYMMDD stamp, sorted by name.
// Directories are skipped.
func (l Loader) Discover(dir string, day time.Time) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, domain.WrapError(err, errcodes.LoadError, "read data dir")
	}

	stamp := day.Format(DateStampLayout)

	var paths []string

	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, Extension) || !strings.Contains(name, stamp) {
			continue
		}

		paths = append(paths, filepath.Join(dir, name))
	}

	return paths, nil
}

// Load reads a snapshot, keeps the last row of every product name and
// annotates the survivors with their discount. Bad prices never fail the
// file; they yield a zero discount.
func (l Loader) Load(path string) ([]entity.Deal, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, domain.WrapError(err, errcodes.LoadError, "open snapshot")
	}
	defer f.Close()

	records, err := readRecords(f)
	if err != nil {
		return nil, domain.WrapError(err, errcodes.LoadError, "read snapshot "+filepath.Base(path))
	}

	records = dedupLast(records)

	deals := make([]entity.Deal, 0, len(records))
	for _, record := range records {
		deals = append(deals, entity.Deal{
			ProductRecord:      record,
			DiscountPercentage: pricing.Discount(record.OriginalPrice, record.CurrentPrice),
		})
	}

	return deals, nil
}

func readRecords(r io.Reader) ([]entity.ProductRecord, error) {
	br := bufio.NewReader(r)

	if prefix, _ := br.Peek(len(utf8BOM)); bytes.Equal(prefix, utf8BOM) {
		_, _ = br.Discard(len(utf8BOM))
	}

	cr := csv.NewReader(br)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, errors.New("missing header")
	}
	if err != nil {
		return nil, fmt.Errorf("csv.Read header: %w", err)
	}

	header = trimHeader(header)
	if !slices.Contains(header, entity.ColumnProductName) {
		return nil, fmt.Errorf("missing column %q", entity.ColumnProductName)
	}

	var records []entity.ProductRecord

	for {
		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("csv.Read: %w", err)
		}

		if isBlank(row) {
			continue
		}

		records = append(records, entity.NewProductRecord(header, row))
	}

	return records, nil
}

// dedupLast keeps, for every product name, only its last row, placed where
// that last row appears.
func dedupLast(records []entity.ProductRecord) []entity.ProductRecord {
	last := make(map[string]int, len(records))
	for i, record := range records {
		last[record.Name] = i
	}

	result := make([]entity.ProductRecord, 0, len(last))
	for i, record := range records {
		if last[record.Name] == i {
			result = append(result, record)
		}
	}

	return result
}

func trimHeader(header []string) []string {
	trimmed := make([]string, len(header))
	for i, column := range header {
		trimmed[i] = strings.TrimSpace(column)
	}

	return trimmed
}

func isBlank(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}

	return true
}
