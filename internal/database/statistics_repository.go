package database

import (
	"context"
	"time"

	"github.com/pkg/errors"
)

// CountGrammarRules counts a user's grammar rules, optionally by status
func (s *Store) CountGrammarRules(ctx context.Context, userID int64, status *string) (int, error) {
	w := &where{}
	w.add("user_id = ?", userID)
	if status != nil {
		w.add("status = ?", *status)
	}
	n, err := s.count(ctx, `SELECT COUNT(*) FROM grammar_rules WHERE `+w.String(), w.args...)
	return n, errors.Wrap(err, "failed to count grammar rules")
}

// CountVocabulary counts a user's vocabulary, optionally only learned words or
// words added since a moment
func (s *Store) CountVocabulary(ctx context.Context, userID int64, learned *bool, since *time.Time) (int, error) {
	w := &where{}
	w.add("user_id = ?", userID)
	if learned != nil {
		w.add("learned = ?", *learned)
	}
	if since != nil {
		w.add("created_at >= ?", utc(*since))
	}
	n, err := s.count(ctx, `SELECT COUNT(*) FROM vocabulary WHERE `+w.String(), w.args...)
	return n, errors.Wrap(err, "failed to count vocabulary")
}

// CountEssays counts a user's essays
func (s *Store) CountEssays(ctx context.Context, userID int64) (int, error) {
	n, err := s.count(ctx, `SELECT COUNT(*) FROM essays WHERE user_id = ?`, userID)
	return n, errors.Wrap(err, "failed to count essays")
}

// CountErrorEntries counts a user's error log, optionally by resolution
func (s *Store) CountErrorEntries(ctx context.Context, userID int64, resolved *bool) (int, error) {
	w := &where{}
	w.add("user_id = ?", userID)
	if resolved != nil {
		w.add("resolved = ?", *resolved)
	}
	n, err := s.count(ctx, `SELECT COUNT(*) FROM error_entries WHERE `+w.String(), w.args...)
	return n, errors.Wrap(err, "failed to count error entries")
}
