package study

import (
	"context"

	"github.com/example/studytrack/internal/core"
	"github.com/example/studytrack/pkg/models"
)

type EssayInput struct {
	Title   string `json:"title" validate:"required,notblank,max=300"`
	Topic   string `json:"topic" validate:"max=300"`
	Prompt  string `json:"prompt" validate:"max=2000"`
	Content string `json:"content" validate:"required,notblank"`
	Grade   string `json:"grade" validate:"max=20"`
	Notes   string `json:"notes" validate:"max=5000"`
}

type EssayPatch struct {
	Title   *string `json:"title" validate:"omitempty,notblank,max=300"`
	Topic   *string `json:"topic" validate:"omitempty,max=300"`
	Prompt  *string `json:"prompt" validate:"omitempty,max=2000"`
	Content *string `json:"content" validate:"omitempty,notblank"`
	Grade   *string `json:"grade" validate:"omitempty,max=20"`
	Notes   *string `json:"notes" validate:"omitempty,max=5000"`
}

// ListEssays returns the user's essays, newest first
func (s *Service) ListEssays(ctx context.Context, userID int64) ([]models.Essay, error) {
	return s.store.ListEssays(ctx, &models.FindRecord{UserID: userID})
}

// GetEssay returns one essay
func (s *Service) GetEssay(ctx context.Context, userID, id int64) (*models.Essay, error) {
	essay, err := s.store.GetEssay(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if essay == nil {
		return nil, notFound("essay", id)
	}
	return essay, nil
}

// CreateEssay saves an essay with its word count and logs essay practice for today
func (s *Service) CreateEssay(ctx context.Context, userID int64, in EssayInput) (*models.Essay, error) {
	if err := core.Validate.Struct(in); err != nil {
		return nil, err
	}
	now := s.now()
	essay := &models.Essay{
		UserID:    userID,
		Title:     core.CleanString(in.Title),
		Topic:     in.Topic,
		Prompt:    in.Prompt,
		Content:   in.Content,
		WordCount: core.WordCount(in.Content),
		Grade:     in.Grade,
		Notes:     in.Notes,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.store.CreateEssay(ctx, essay); err != nil {
		return nil, err
	}
	s.logActivity(ctx, userID, models.ActivityEssay)
	return essay, nil
}

// UpdateEssay applies a partial update, recounting words when the content changes
func (s *Service) UpdateEssay(ctx context.Context, userID, id int64, patch EssayPatch) (*models.Essay, error) {
	if err := core.Validate.Struct(patch); err != nil {
		return nil, err
	}
	essay, err := s.GetEssay(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	if patch.Title != nil {
		essay.Title = core.CleanString(*patch.Title)
	}
	if patch.Topic != nil {
		essay.Topic = *patch.Topic
	}
	if patch.Prompt != nil {
		essay.Prompt = *patch.Prompt
	}
	if patch.Content != nil && *patch.Content != essay.Content {
		essay.Content = *patch.Content
		essay.WordCount = core.WordCount(essay.Content)
	}
	if patch.Grade != nil {
		essay.Grade = *patch.Grade
	}
	if patch.Notes != nil {
		essay.Notes = *patch.Notes
	}
	essay.UpdatedAt = s.now()

	if err := s.store.UpdateEssay(ctx, essay); err != nil {
		return nil, err
	}
	return essay, nil
}

// DeleteEssay removes an essay
func (s *Service) DeleteEssay(ctx context.Context, userID, id int64) error {
	return s.store.DeleteEssay(ctx, userID, id)
}

type VocabularyInput struct {
	Word       string   `json:"word" validate:"required,notblank,max=200"`
	Definition string   `json:"definition" validate:"required,notblank,max=2000"`
	Sentences  []string `json:"sentences" validate:"required,min=1,dive,notblank,max=1000"`
	Category   string   `json:"category" validate:"max=100"`
}

type VocabularyPatch struct {
	Word       *string  `json:"word" validate:"omitempty,notblank,max=200"`
	Definition *string  `json:"definition" validate:"omitempty,notblank,max=2000"`
	Sentences  []string `json:"sentences" validate:"omitempty,min=1,dive,notblank,max=1000"`
	Category   *string  `json:"category" validate:"omitempty,max=100"`
	Learned    *bool    `json:"learned"`
}

// ListVocabulary returns the user's vocabulary, newest first
func (s *Service) ListVocabulary(ctx context.Context, userID int64) ([]models.Vocabulary, error) {
	return s.store.ListVocabulary(ctx, &models.FindRecord{UserID: userID})
}

// CreateVocabulary saves a word and logs vocabulary practice for today
func (s *Service) CreateVocabulary(ctx context.Context, userID int64, in VocabularyInput) (*models.Vocabulary, error) {
	if err := core.Validate.Struct(in); err != nil {
		return nil, err
	}
	now := s.now()
	entry := &models.Vocabulary{
		UserID:     userID,
		Word:       core.CleanString(in.Word),
		Definition: in.Definition,
		Sentences:  in.Sentences,
		Category:   in.Category,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := s.store.CreateVocabulary(ctx, entry); err != nil {
		return nil, err
	}
	s.logActivity(ctx, userID, models.ActivityVocabulary)
	return entry, nil
}

// UpdateVocabulary applies a partial update
func (s *Service) UpdateVocabulary(ctx context.Context, userID, id int64, patch VocabularyPatch) (*models.Vocabulary, error) {
	if err := core.Validate.Struct(patch); err != nil {
		return nil, err
	}
	entry, err := s.store.GetVocabulary(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if entry == nil {
		return nil, notFound("vocabulary", id)
	}

	if patch.Word != nil {
		entry.Word = core.CleanString(*patch.Word)
	}
	if patch.Definition != nil {
		entry.Definition = *patch.Definition
	}
	if patch.Sentences != nil {
		entry.Sentences = patch.Sentences
	}
	if patch.Category != nil {
		entry.Category = *patch.Category
	}
	if patch.Learned != nil {
		entry.Learned = *patch.Learned
	}
	entry.UpdatedAt = s.now()

	if err := s.store.UpdateVocabulary(ctx, entry); err != nil {
		return nil, err
	}
	return entry, nil
}

// DeleteVocabulary removes a vocabulary entry
func (s *Service) DeleteVocabulary(ctx context.Context, userID, id int64) error {
	return s.store.DeleteVocabulary(ctx, userID, id)
}

type GrammarRuleInput struct {
	Title       string   `json:"title" validate:"required,notblank,max=300"`
	Explanation string   `json:"explanation" validate:"required,notblank"`
	Examples    []string `json:"examples" validate:"dive,notblank,max=1000"`
	Category    string   `json:"category" validate:"max=100"`
	Status      string   `json:"status" validate:"omitempty,oneof=needs_work understood"`
}

type GrammarRulePatch struct {
	Title       *string  `json:"title" validate:"omitempty,notblank,max=300"`
	Explanation *string  `json:"explanation" validate:"omitempty,notblank"`
	Examples    []string `json:"examples" validate:"omitempty,dive,notblank,max=1000"`
	Category    *string  `json:"category" validate:"omitempty,max=100"`
	Status      *string  `json:"status" validate:"omitempty,oneof=needs_work understood"`
}

// ListGrammarRules returns the user's grammar rules, newest first
func (s *Service) ListGrammarRules(ctx context.Context, userID int64) ([]models.GrammarRule, error) {
	return s.store.ListGrammarRules(ctx, &models.FindRecord{UserID: userID})
}

// CreateGrammarRule saves a grammar rule and logs grammar practice for today
func (s *Service) CreateGrammarRule(ctx context.Context, userID int64, in GrammarRuleInput) (*models.GrammarRule, error) {
	if err := core.Validate.Struct(in); err != nil {
		return nil, err
	}
	now := s.now()
	examples := models.StringList{}
	if in.Examples != nil {
		examples = in.Examples
	}
	rule := &models.GrammarRule{
		UserID:      userID,
		Title:       core.CleanString(in.Title),
		Explanation: in.Explanation,
		Examples:    examples,
		Category:    in.Category,
		Status:      orDefault(in.Status, models.GrammarNeedsWork),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.store.CreateGrammarRule(ctx, rule); err != nil {
		return nil, err
	}
	s.logActivity(ctx, userID, models.ActivityGrammar)
	return rule, nil
}

// UpdateGrammarRule applies a partial update
func (s *Service) UpdateGrammarRule(ctx context.Context, userID, id int64, patch GrammarRulePatch) (*models.GrammarRule, error) {
	if err := core.Validate.Struct(patch); err != nil {
		return nil, err
	}
	rule, err := s.store.GetGrammarRule(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if rule == nil {
		return nil, notFound("grammar rule", id)
	}

	if patch.Title != nil {
		rule.Title = core.CleanString(*patch.Title)
	}
	if patch.Explanation != nil {
		rule.Explanation = *patch.Explanation
	}
	if patch.Examples != nil {
		rule.Examples = patch.Examples
	}
	if patch.Category != nil {
		rule.Category = *patch.Category
	}
	if patch.Status != nil {
		rule.Status = *patch.Status
	}
	rule.UpdatedAt = s.now()

	if err := s.store.UpdateGrammarRule(ctx, rule); err != nil {
		return nil, err
	}
	return rule, nil
}

// DeleteGrammarRule removes a grammar rule
func (s *Service) DeleteGrammarRule(ctx context.Context, userID, id int64) error {
	return s.store.DeleteGrammarRule(ctx, userID, id)
}

type ErrorEntryInput struct {
	Category    string `json:"category" validate:"required,notblank,max=100"`
	Description string `json:"description" validate:"required,notblank,max=2000"`
	Correction  string `json:"correction" validate:"required,notblank,max=2000"`
	Context     string `json:"context" validate:"max=2000"`
}

type ErrorEntryPatch struct {
	Category    *string `json:"category" validate:"omitempty,notblank,max=100"`
	Description *string `json:"description" validate:"omitempty,notblank,max=2000"`
	Correction  *string `json:"correction" validate:"omitempty,notblank,max=2000"`
	Context     *string `json:"context" validate:"omitempty,max=2000"`
	Resolved    *bool   `json:"resolved"`
}

// ListErrorEntries returns the user's error log, newest first
func (s *Service) ListErrorEntries(ctx context.Context, userID int64) ([]models.ErrorEntry, error) {
	return s.store.ListErrorEntries(ctx, &models.FindRecord{UserID: userID})
}

// CreateErrorEntry logs a mistake
func (s *Service) CreateErrorEntry(ctx context.Context, userID int64, in ErrorEntryInput) (*models.ErrorEntry, error) {
	if err := core.Validate.Struct(in); err != nil {
		return nil, err
	}
	now := s.now()
	entry := &models.ErrorEntry{
		UserID:      userID,
		Category:    core.CleanString(in.Category),
		Description: in.Description,
		Correction:  in.Correction,
		Context:     in.Context,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.store.CreateErrorEntry(ctx, entry); err != nil {
		return nil, err
	}
	return entry, nil
}

// UpdateErrorEntry applies a partial update. Resolving stamps resolvedAt,
// reopening clears it.
func (s *Service) UpdateErrorEntry(ctx context.Context, userID, id int64, patch ErrorEntryPatch) (*models.ErrorEntry, error) {
	if err := core.Validate.Struct(patch); err != nil {
		return nil, err
	}
	entry, err := s.store.GetErrorEntry(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if entry == nil {
		return nil, notFound("error entry", id)
	}

	now := s.now()
	if patch.Category != nil {
		entry.Category = core.CleanString(*patch.Category)
	}
	if patch.Description != nil {
		entry.Description = *patch.Description
	}
	if patch.Correction != nil {
		entry.Correction = *patch.Correction
	}
	if patch.Context != nil {
		entry.Context = *patch.Context
	}
	if patch.Resolved != nil {
		entry.Resolved = *patch.Resolved
		if entry.Resolved {
			entry.ResolvedAt = &now
		} else {
			entry.ResolvedAt = nil
		}
	}
	entry.UpdatedAt = now

	if err := s.store.UpdateErrorEntry(ctx, entry); err != nil {
		return nil, err
	}
	return entry, nil
}

// DeleteErrorEntry removes an error entry
func (s *Service) DeleteErrorEntry(ctx context.Context, userID, id int64) error {
	return s.store.DeleteErrorEntry(ctx, userID, id)
}
