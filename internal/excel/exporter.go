package excel

import (
	"strings"

	"github.com/pkg/errors"
	"github.com/xuri/excelize/v2"

	"github.com/example/studytrack/pkg/models"
)

// ExportSheet is the sheet vocabulary is written to, the default sheet of a new workbook
const ExportSheet = "Sheet1"

var exportHeader = []interface{}{"Word", "Definition", "Sentences", "Category", "Learned"}

// ExportVocabulary writes entries to a workbook laid out like DefaultImportConfig
// expects, so an export can be imported again.
func ExportVocabulary(entries []models.Vocabulary) (*excelize.File, error) {
	f := excelize.NewFile()
	if err := f.SetSheetRow(ExportSheet, "A1", &exportHeader); err != nil {
		return nil, errors.Wrap(err, "failed to write header")
	}
	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, errors.Wrap(err, "failed to create header style")
	}
	if err := f.SetCellStyle(ExportSheet, "A1", "E1", bold); err != nil {
		return nil, errors.Wrap(err, "failed to style header")
	}

	for i, v := range entries {
		learned := "no"
		if v.Learned {
			learned = "yes"
		}
		values := []interface{}{v.Word, v.Definition, strings.Join(v.Sentences, " "+SentenceSeparator+" "), v.Category, learned}
		addr, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		if err := f.SetSheetRow(ExportSheet, addr, &values); err != nil {
			return nil, errors.Wrapf(err, "failed to write %q", v.Word)
		}
	}

	if err := f.SetColWidth(ExportSheet, "A", "A", 20); err != nil {
		return nil, err
	}
	if err := f.SetColWidth(ExportSheet, "B", "C", 50); err != nil {
		return nil, err
	}
	return f, nil
}
