package excel

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/studytrack/pkg/models"
)

type memStore struct {
	entries []models.Vocabulary
}

func (m *memStore) ListVocabulary(_ context.Context, find *models.FindRecord) ([]models.Vocabulary, error) {
	var out []models.Vocabulary
	for _, v := range m.entries {
		if v.UserID == find.UserID {
			out = append(out, v)
		}
	}
	return out, nil
}

func (m *memStore) CreateVocabulary(_ context.Context, v *models.Vocabulary) error {
	v.ID = int64(len(m.entries) + 1)
	m.entries = append(m.entries, *v)
	return nil
}

const sampleCSV = `word,definition,sentences,category
ephemeral,lasting a very short time,Fame is ephemeral. | Trends are ephemeral.,adjectives
laconic,using very few words,,adjectives
,missing word,A sentence.,nouns
Ubiquitous,found everywhere,Phones are ubiquitous.,adjectives
ubiquitous,duplicate in the same file,Still ubiquitous.,adjectives
`

func TestImportCSV(t *testing.T) {
	store := &memStore{entries: []models.Vocabulary{{UserID: 1, Word: "ephemeral"}}}

	res, err := Import(context.Background(), store, 1, strings.NewReader(sampleCSV), true, DefaultImportConfig())
	require.NoError(t, err)

	assert.Equal(t, 5, res.TotalProcessed)
	assert.Equal(t, 1, res.Created)
	assert.Equal(t, 2, res.Skipped)
	assert.Len(t, res.Errors, 2)
	assert.True(t, strings.HasPrefix(res.Errors[0], "row 3:"), res.Errors[0])

	created := store.entries[len(store.entries)-1]
	assert.Equal(t, "Ubiquitous", created.Word)
	assert.Equal(t, models.StringList{"Phones are ubiquitous."}, created.Sentences)
	assert.Equal(t, int64(1), created.UserID)
}

func TestImportFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "words.csv")
	require.NoError(t, os.WriteFile(path, []byte(sampleCSV), 0o600))

	cfg := DefaultImportConfig()
	cfg.FilePath = path
	res, err := ImportVocabulary(context.Background(), &memStore{}, 2, cfg)
	require.NoError(t, err)
	assert.Equal(t, 2, res.Created)
}

func TestExportCanBeImported(t *testing.T) {
	entries := []models.Vocabulary{
		{Word: "terse", Definition: "sparing in words", Sentences: models.StringList{"A terse reply.", "Terse notes."}, Category: "adjectives", Learned: true},
		{Word: "gregarious", Definition: "fond of company", Sentences: models.StringList{"A gregarious host."}},
	}
	f, err := ExportVocabulary(entries)
	require.NoError(t, err)

	learned, err := f.GetCellValue(ExportSheet, "E2")
	require.NoError(t, err)
	assert.Equal(t, "yes", learned)

	buf, err := f.WriteToBuffer()
	require.NoError(t, err)

	store := &memStore{}
	res, err := Import(context.Background(), store, 3, buf, false, DefaultImportConfig())
	require.NoError(t, err)
	assert.Equal(t, 2, res.Created)
	assert.Empty(t, res.Errors)
	require.Len(t, store.entries, 2)
	assert.Equal(t, models.StringList{"A terse reply.", "Terse notes."}, store.entries[0].Sentences)
	assert.Equal(t, "adjectives", store.entries[0].Category)
}

func TestBadColumnName(t *testing.T) {
	cfg := DefaultImportConfig()
	cfg.WordColumn = "1"
	_, err := Import(context.Background(), &memStore{}, 1, strings.NewReader(sampleCSV), true, cfg)
	assert.Error(t, err)
}
