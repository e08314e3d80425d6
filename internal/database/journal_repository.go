package database

import (
	"context"

	"github.com/pkg/errors"

	"github.com/example/studytrack/pkg/models"
)

// recordWhere scopes a journal table query to the user and creation window
func recordWhere(find *models.FindRecord) *where {
	w := &where{}
	w.add("user_id = ?", find.UserID)
	if find.From != nil {
		w.add("created_at >= ?", utc(*find.From))
	}
	if find.To != nil {
		w.add("created_at < ?", utc(*find.To))
	}
	return w
}

const essayColumns = `id, user_id, title, topic, prompt, content, word_count, grade, notes, created_at, updated_at`

// CreateEssay inserts a new essay
func (s *Store) CreateEssay(ctx context.Context, e *models.Essay) error {
	id, err := s.insert(ctx, s.db, `
		INSERT INTO essays (user_id, title, topic, prompt, content, word_count, grade, notes, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		e.UserID, e.Title, e.Topic, e.Prompt, e.Content, e.WordCount, e.Grade, e.Notes, utc(e.CreatedAt), utc(e.UpdatedAt),
	)
	if err != nil {
		return errors.Wrap(err, "failed to create essay")
	}
	e.ID = id
	return nil
}

// GetEssay returns a user's essay, or nil
func (s *Store) GetEssay(ctx context.Context, userID, id int64) (*models.Essay, error) {
	var e models.Essay
	ok, err := s.get(ctx, &e, `SELECT `+essayColumns+` FROM essays WHERE id = ? AND user_id = ?`, id, userID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get essay")
	}
	if !ok {
		return nil, nil
	}
	return &e, nil
}

// ListEssays returns a user's essays, newest first
func (s *Store) ListEssays(ctx context.Context, find *models.FindRecord) ([]models.Essay, error) {
	w := recordWhere(find)
	essays := []models.Essay{}
	query := `SELECT ` + essayColumns + ` FROM essays WHERE ` + w.String() + ` ORDER BY created_at DESC, id DESC`
	if err := s.selectRows(ctx, &essays, query, w.args...); err != nil {
		return nil, errors.Wrap(err, "failed to list essays")
	}
	return essays, nil
}

// UpdateEssay modifies an existing essay
func (s *Store) UpdateEssay(ctx context.Context, e *models.Essay) error {
	err := s.execOne(ctx, s.db, `
		UPDATE essays SET title = ?, topic = ?, prompt = ?, content = ?, word_count = ?, grade = ?, notes = ?, updated_at = ?
		WHERE id = ? AND user_id = ?`,
		e.Title, e.Topic, e.Prompt, e.Content, e.WordCount, e.Grade, e.Notes, utc(e.UpdatedAt), e.ID, e.UserID,
	)
	return errors.Wrap(err, "failed to update essay")
}

// DeleteEssay removes an essay
func (s *Store) DeleteEssay(ctx context.Context, userID, id int64) error {
	err := s.execOne(ctx, s.db, `DELETE FROM essays WHERE id = ? AND user_id = ?`, id, userID)
	return errors.Wrap(err, "failed to delete essay")
}

const vocabularyColumns = `id, user_id, word, definition, sentences, category, learned, created_at, updated_at`

// CreateVocabulary inserts a new vocabulary entry
func (s *Store) CreateVocabulary(ctx context.Context, v *models.Vocabulary) error {
	id, err := s.insert(ctx, s.db, `
		INSERT INTO vocabulary (user_id, word, definition, sentences, category, learned, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		v.UserID, v.Word, v.Definition, v.Sentences, v.Category, v.Learned, utc(v.CreatedAt), utc(v.UpdatedAt),
	)
	if err != nil {
		return errors.Wrap(err, "failed to create vocabulary")
	}
	v.ID = id
	return nil
}

// GetVocabulary returns a user's vocabulary entry, or nil
func (s *Store) GetVocabulary(ctx context.Context, userID, id int64) (*models.Vocabulary, error) {
	var v models.Vocabulary
	ok, err := s.get(ctx, &v, `SELECT `+vocabularyColumns+` FROM vocabulary WHERE id = ? AND user_id = ?`, id, userID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get vocabulary")
	}
	if !ok {
		return nil, nil
	}
	return &v, nil
}

// ListVocabulary returns a user's vocabulary, newest first
func (s *Store) ListVocabulary(ctx context.Context, find *models.FindRecord) ([]models.Vocabulary, error) {
	w := recordWhere(find)
	words := []models.Vocabulary{}
	query := `SELECT ` + vocabularyColumns + ` FROM vocabulary WHERE ` + w.String() + ` ORDER BY created_at DESC, id DESC`
	if err := s.selectRows(ctx, &words, query, w.args...); err != nil {
		return nil, errors.Wrap(err, "failed to list vocabulary")
	}
	return words, nil
}

// UpdateVocabulary modifies an existing vocabulary entry
func (s *Store) UpdateVocabulary(ctx context.Context, v *models.Vocabulary) error {
	err := s.execOne(ctx, s.db, `
		UPDATE vocabulary SET word = ?, definition = ?, sentences = ?, category = ?, learned = ?, updated_at = ?
		WHERE id = ? AND user_id = ?`,
		v.Word, v.Definition, v.Sentences, v.Category, v.Learned, utc(v.UpdatedAt), v.ID, v.UserID,
	)
	return errors.Wrap(err, "failed to update vocabulary")
}

// DeleteVocabulary removes a vocabulary entry
func (s *Store) DeleteVocabulary(ctx context.Context, userID, id int64) error {
	err := s.execOne(ctx, s.db, `DELETE FROM vocabulary WHERE id = ? AND user_id = ?`, id, userID)
	return errors.Wrap(err, "failed to delete vocabulary")
}

const grammarColumns = `id, user_id, title, explanation, examples, category, status, created_at, updated_at`

// CreateGrammarRule inserts a new grammar rule
func (s *Store) CreateGrammarRule(ctx context.Context, g *models.GrammarRule) error {
	id, err := s.insert(ctx, s.db, `
		INSERT INTO grammar_rules (user_id, title, explanation, examples, category, status, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		g.UserID, g.Title, g.Explanation, g.Examples, g.Category, g.Status, utc(g.CreatedAt), utc(g.UpdatedAt),
	)
	if err != nil {
		return errors.Wrap(err, "failed to create grammar rule")
	}
	g.ID = id
	return nil
}

// GetGrammarRule returns a user's grammar rule, or nil
func (s *Store) GetGrammarRule(ctx context.Context, userID, id int64) (*models.GrammarRule, error) {
	var g models.GrammarRule
	ok, err := s.get(ctx, &g, `SELECT `+grammarColumns+` FROM grammar_rules WHERE id = ? AND user_id = ?`, id, userID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get grammar rule")
	}
	if !ok {
		return nil, nil
	}
	return &g, nil
}

// ListGrammarRules returns a user's grammar rules, newest first
func (s *Store) ListGrammarRules(ctx context.Context, find *models.FindRecord) ([]models.GrammarRule, error) {
	w := recordWhere(find)
	rules := []models.GrammarRule{}
	query := `SELECT ` + grammarColumns + ` FROM grammar_rules WHERE ` + w.String() + ` ORDER BY created_at DESC, id DESC`
	if err := s.selectRows(ctx, &rules, query, w.args...); err != nil {
		return nil, errors.Wrap(err, "failed to list grammar rules")
	}
	return rules, nil
}

// UpdateGrammarRule modifies an existing grammar rule
func (s *Store) UpdateGrammarRule(ctx context.Context, g *models.GrammarRule) error {
	err := s.execOne(ctx, s.db, `
		UPDATE grammar_rules SET title = ?, explanation = ?, examples = ?, category = ?, status = ?, updated_at = ?
		WHERE id = ? AND user_id = ?`,
		g.Title, g.Explanation, g.Examples, g.Category, g.Status, utc(g.UpdatedAt), g.ID, g.UserID,
	)
	return errors.Wrap(err, "failed to update grammar rule")
}

// DeleteGrammarRule removes a grammar rule
func (s *Store) DeleteGrammarRule(ctx context.Context, userID, id int64) error {
	err := s.execOne(ctx, s.db, `DELETE FROM grammar_rules WHERE id = ? AND user_id = ?`, id, userID)
	return errors.Wrap(err, "failed to delete grammar rule")
}

const errorEntryColumns = `id, user_id, category, description, correction, context, resolved, resolved_at, created_at, updated_at`

// CreateErrorEntry inserts a new error log entry
func (s *Store) CreateErrorEntry(ctx context.Context, e *models.ErrorEntry) error {
	id, err := s.insert(ctx, s.db, `
		INSERT INTO error_entries (user_id, category, description, correction, context, resolved, resolved_at, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		e.UserID, e.Category, e.Description, e.Correction, e.Context, e.Resolved, utcPtr(e.ResolvedAt),
		utc(e.CreatedAt), utc(e.UpdatedAt),
	)
	if err != nil {
		return errors.Wrap(err, "failed to create error entry")
	}
	e.ID = id
	return nil
}

// GetErrorEntry returns a user's error entry, or nil
func (s *Store) GetErrorEntry(ctx context.Context, userID, id int64) (*models.ErrorEntry, error) {
	var e models.ErrorEntry
	ok, err := s.get(ctx, &e, `SELECT `+errorEntryColumns+` FROM error_entries WHERE id = ? AND user_id = ?`, id, userID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get error entry")
	}
	if !ok {
		return nil, nil
	}
	return &e, nil
}

// ListErrorEntries returns a user's error log, newest first
func (s *Store) ListErrorEntries(ctx context.Context, find *models.FindRecord) ([]models.ErrorEntry, error) {
	w := recordWhere(find)
	entries := []models.ErrorEntry{}
	query := `SELECT ` + errorEntryColumns + ` FROM error_entries WHERE ` + w.String() + ` ORDER BY created_at DESC, id DESC`
	if err := s.selectRows(ctx, &entries, query, w.args...); err != nil {
		return nil, errors.Wrap(err, "failed to list error entries")
	}
	return entries, nil
}

// UpdateErrorEntry modifies an existing error entry
func (s *Store) UpdateErrorEntry(ctx context.Context, e *models.ErrorEntry) error {
	err := s.execOne(ctx, s.db, `
		UPDATE error_entries SET category = ?, description = ?, correction = ?, context = ?, resolved = ?, resolved_at = ?, updated_at = ?
		WHERE id = ? AND user_id = ?`,
		e.Category, e.Description, e.Correction, e.Context, e.Resolved, utcPtr(e.ResolvedAt), utc(e.UpdatedAt),
		e.ID, e.UserID,
	)
	return errors.Wrap(err, "failed to update error entry")
}

// DeleteErrorEntry removes an error entry
func (s *Store) DeleteErrorEntry(ctx context.Context, userID, id int64) error {
	err := s.execOne(ctx, s.db, `DELETE FROM error_entries WHERE id = ? AND user_id = ?`, id, userID)
	return errors.Wrap(err, "failed to delete error entry")
}
