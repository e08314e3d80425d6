// Package excel imports and exports vocabulary as spreadsheets.
package excel

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/xuri/excelize/v2"

	"github.com/example/studytrack/internal/core"
	"github.com/example/studytrack/pkg/models"
)

// SentenceSeparator splits the example sentences of one cell
const SentenceSeparator = "|"

// Store is the persistence the importer writes to
type Store interface {
	ListVocabulary(ctx context.Context, find *models.FindRecord) ([]models.Vocabulary, error)
	CreateVocabulary(ctx context.Context, v *models.Vocabulary) error
}

// ImportConfig defines the import configuration
type ImportConfig struct {
	FilePath         string // .xlsx or .csv file
	SheetName        string // defaults to the first sheet
	WordColumn       string
	DefinitionColumn string
	SentencesColumn  string
	CategoryColumn   string
	StartRow         int // 1-based, rows above are headers
}

// DefaultImportConfig returns the default import configuration
func DefaultImportConfig() ImportConfig {
	return ImportConfig{
		WordColumn:       "A",
		DefinitionColumn: "B",
		SentencesColumn:  "C",
		CategoryColumn:   "D",
		StartRow:         2,
	}
}

// ImportResult holds the result of an import operation
type ImportResult struct {
	TotalProcessed int      `json:"totalProcessed"`
	Created        int      `json:"created"`
	Skipped        int      `json:"skipped"`
	Errors         []string `json:"errors"`
}

type row struct {
	Word       string   `json:"word" validate:"required,notblank,max=200"`
	Definition string   `json:"definition" validate:"required,notblank,max=2000"`
	Sentences  []string `json:"sentences" validate:"required,min=1,dive,notblank,max=1000"`
	Category   string   `json:"category" validate:"max=100"`
}

// ImportVocabulary imports the file named by cfg into the user's vocabulary
func ImportVocabulary(ctx context.Context, store Store, userID int64, cfg ImportConfig) (*ImportResult, error) {
	file, err := os.Open(cfg.FilePath)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open import file")
	}
	defer file.Close()

	csvFormat := strings.EqualFold(filepath.Ext(cfg.FilePath), ".csv")
	return Import(ctx, store, userID, file, csvFormat, cfg)
}

// Import reads an xlsx workbook, or CSV when csvFormat is set, from r
func Import(ctx context.Context, store Store, userID int64, r io.Reader, csvFormat bool, cfg ImportConfig) (*ImportResult, error) {
	cols, err := columnIndexes(cfg)
	if err != nil {
		return nil, err
	}

	var rows [][]string
	if csvFormat {
		rows, err = readCSV(r)
	} else {
		rows, err = readSheet(r, cfg.SheetName)
	}
	if err != nil {
		return nil, err
	}

	existing, err := store.ListVocabulary(ctx, &models.FindRecord{UserID: userID})
	if err != nil {
		return nil, errors.Wrap(err, "failed to get existing vocabulary")
	}
	known := make(map[string]bool, len(existing))
	for _, v := range existing {
		known[strings.ToLower(v.Word)] = true
	}

	start := max(cfg.StartRow, 1)
	result := &ImportResult{Errors: []string{}}
	for i, cells := range rows {
		rowNum := i + 1
		if rowNum < start || blank(cells) {
			continue
		}
		result.TotalProcessed++

		rec := parseRow(cells, cols)
		if err := core.Validate.Struct(rec); err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("row %d: %v", rowNum, err))
			continue
		}
		key := strings.ToLower(rec.Word)
		if known[key] {
			result.Skipped++
			continue
		}

		now := time.Now()
		entry := &models.Vocabulary{
			UserID:     userID,
			Word:       rec.Word,
			Definition: rec.Definition,
			Sentences:  rec.Sentences,
			Category:   rec.Category,
			CreatedAt:  now,
			UpdatedAt:  now,
		}
		if err := store.CreateVocabulary(ctx, entry); err != nil {
			return result, errors.Wrapf(err, "row %d", rowNum)
		}
		known[key] = true
		result.Created++
	}
	return result, nil
}

type columns struct {
	word, definition, sentences, category int
}

func columnIndexes(cfg ImportConfig) (columns, error) {
	idx := func(name string) (int, error) {
		if name == "" {
			return -1, nil
		}
		n, err := excelize.ColumnNameToNumber(name)
		if err != nil {
			return 0, errors.Wrapf(core.ErrInvalidInput, "column %q", name)
		}
		return n - 1, nil
	}

	var c columns
	var err error
	if c.word, err = idx(cfg.WordColumn); err != nil {
		return c, err
	}
	if c.definition, err = idx(cfg.DefinitionColumn); err != nil {
		return c, err
	}
	if c.sentences, err = idx(cfg.SentencesColumn); err != nil {
		return c, err
	}
	if c.category, err = idx(cfg.CategoryColumn); err != nil {
		return c, err
	}
	return c, nil
}

func cell(cells []string, i int) string {
	if i < 0 || i >= len(cells) {
		return ""
	}
	return strings.TrimSpace(cells[i])
}

func parseRow(cells []string, cols columns) row {
	var sentences []string
	for _, s := range strings.Split(cell(cells, cols.sentences), SentenceSeparator) {
		if s = strings.TrimSpace(s); s != "" {
			sentences = append(sentences, s)
		}
	}
	return row{
		Word:       core.CleanString(cell(cells, cols.word)),
		Definition: cell(cells, cols.definition),
		Sentences:  sentences,
		Category:   cell(cells, cols.category),
	}
}

func blank(cells []string) bool {
	for _, c := range cells {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

func readCSV(r io.Reader) ([][]string, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, errors.Wrap(err, "error reading CSV")
	}
	return rows, nil
}

func readSheet(r io.Reader, sheet string) ([][]string, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open Excel file")
	}
	defer f.Close()

	if sheet == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, errors.Wrap(core.ErrInvalidInput, "workbook has no sheets")
		}
		sheet = sheets[0]
	}
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to get rows of sheet %q", sheet)
	}
	return rows, nil
}
