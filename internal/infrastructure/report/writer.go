package report

import (
	"bytes"
	"encoding/csv"
	stdjson "encoding/json"
	"fmt"
	"os"
	"path/filepath"

	jsoniter "github.com/json-iterator/go"
	"github.com/samber/lo"

	"deal_analyzer/internal/domain"
	"deal_analyzer/internal/domain/entity"
	"deal_analyzer/pkg/errcodes"
)

const (
	JSONFileName = "analysis.json"
	CSVFileName  = "analysis.csv"

	dirPerm  = 0o755
	filePerm = 0o644
)

// Non-ASCII text and URLs with "&" are written as-is; map keys are sorted so
// identical results encode identically.
var json = jsoniter.Config{EscapeHTML: false, SortMapKeys: true}.Froze() //nolint:gochecknoglobals // skip

var utf8BOM = []byte{0xEF, 0xBB, 0xBF} //nolint:gochecknoglobals

var csvHeader = []string{ //nolint:gochecknoglobals
	"category",
	entity.ColumnProductName,
	entity.FieldDiscountPercentage,
	entity.ColumnCurrentPrice,
	entity.ColumnOriginalPrice,
	entity.ColumnImageURL,
}

// Writer materializes a run result as analysis.json and analysis.csv. Both
// files are replaced on every run.
type Writer struct{}

func NewWriter() Writer {
	return Writer{}
}

func (w Writer) Write(result entity.RunResult, dir string) (jsonPath, csvPath string, err error) {
	if err := os.MkdirAll(dir, dirPerm); err != nil {
		return "", "", domain.WrapError(err, errcodes.MaterializationError, "create analysis dir")
	}

	jsonData, err := EncodeJSON(result)
	if err != nil {
		return "", "", domain.WrapError(err, errcodes.MaterializationError, "encode "+JSONFileName)
	}

	jsonPath = filepath.Join(dir, JSONFileName)
	if err := writeFile(jsonPath, jsonData); err != nil {
		return "", "", domain.WrapError(err, errcodes.MaterializationError, "write "+JSONFileName)
	}

	csvData, err := EncodeCSV(result)
	if err != nil {
		return "", "", domain.WrapError(err, errcodes.MaterializationError, "encode "+CSVFileName)
	}

	csvPath = filepath.Join(dir, CSVFileName)
	if err := writeFile(csvPath, csvData); err != nil {
		return "", "", domain.WrapError(err, errcodes.MaterializationError, "write "+CSVFileName)
	}

	return jsonPath, csvPath, nil
}

// EncodeJSON renders the full result with two-space indentation.
func EncodeJSON(result entity.RunResult) ([]byte, error) {
	if result == nil {
		result = entity.RunResult{}
	}

	compact, err := json.Marshal(result)
	if err != nil {
		return nil, fmt.Errorf("json.Marshal: %w", err)
	}

	var buf bytes.Buffer
	if err := stdjson.Indent(&buf, compact, "", "  "); err != nil {
		return nil, fmt.Errorf("json.Indent: %w", err)
	}

	buf.WriteByte('\n')

	return buf.Bytes(), nil
}

// EncodeCSV flattens the result to one row per deal, prefixed with a UTF-8
// byte order mark so spreadsheets detect the encoding.
func EncodeCSV(result entity.RunResult) ([]byte, error) {
	var buf bytes.Buffer

	buf.Write(utf8BOM)

	cw := csv.NewWriter(&buf)

	rows := lo.FlatMap(result, func(category entity.CategoryResult, _ int) [][]string {
		return lo.Map(category.Deals, func(deal entity.Deal, _ int) []string {
			return []string{
				category.Category,
				deal.Name,
				FormatPercentage(deal.DiscountPercentage),
				deal.CurrentPrice,
				deal.OriginalPrice,
				deal.ImageURL,
			}
		})
	})

	if err := cw.Write(csvHeader); err != nil {
		return nil, fmt.Errorf("csv.Write: %w", err)
	}

	if err := cw.WriteAll(rows); err != nil {
		return nil, fmt.Errorf("csv.WriteAll: %w", err)
	}

	return buf.Bytes(), nil
}

func FormatPercentage(value float64) string {
	return fmt.Sprintf("%.2f%%", value)
}

// writeFile replaces path through a sibling temp file so readers never see a
// partially written artifact.
func writeFile(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return fmt.Errorf("os.CreateTemp: %w", err)
	}

	tmpPath := tmp.Name()
	defer os.Remove(tmpPath) //nolint:errcheck

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("tmp.Write: %w", err)
	}

	if err := tmp.Chmod(filePerm); err != nil {
		tmp.Close()
		return fmt.Errorf("tmp.Chmod: %w", err)
	}

	if err := tmp.Close(); err != nil {
		return fmt.Errorf("tmp.Close: %w", err)
	}

	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("os.Rename: %w", err)
	}

	return nil
}
