package study

import (
	"context"

	"github.com/pkg/errors"

	"github.com/example/studytrack/internal/core"
	"github.com/example/studytrack/pkg/models"
)

type SubjectInput struct {
	Name  string `json:"name" validate:"required,notblank,max=200"`
	Type  string `json:"type" validate:"required,notblank,max=100"`
	Level string `json:"level" validate:"max=100"`
	Color string `json:"color" validate:"max=32"`
	Icon  string `json:"icon" validate:"max=64"`
}

type SubjectPatch struct {
	Name  *string `json:"name" validate:"omitempty,notblank,max=200"`
	Type  *string `json:"type" validate:"omitempty,notblank,max=100"`
	Level *string `json:"level" validate:"omitempty,max=100"`
	Color *string `json:"color" validate:"omitempty,max=32"`
	Icon  *string `json:"icon" validate:"omitempty,max=64"`
}

func notFound(kind string, id int64) error {
	return errors.Wrapf(core.ErrNotFound, "%s %d", kind, id)
}

// ListSubjects returns the user's subjects with their topics, newest first
func (s *Service) ListSubjects(ctx context.Context, userID int64) ([]models.Subject, error) {
	subjects, err := s.store.ListSubjects(ctx, userID)
	if err != nil {
		return nil, err
	}
	for i := range subjects {
		topics, err := s.store.ListTopics(ctx, userID, subjects[i].ID)
		if err != nil {
			return nil, err
		}
		subjects[i].Topics = topics
	}
	return subjects, nil
}

// GetSubject returns one subject with its topics and their subtopics
func (s *Service) GetSubject(ctx context.Context, userID, id int64) (*models.Subject, error) {
	subject, err := s.store.GetSubject(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if subject == nil {
		return nil, notFound("subject", id)
	}
	topics, err := s.store.ListTopics(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	subtopics, err := s.store.ListSubtopics(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	byTopic := make(map[int64][]models.Subtopic)
	for _, st := range subtopics {
		byTopic[st.TopicID] = append(byTopic[st.TopicID], st)
	}
	for i := range topics {
		topics[i].Subtopics = byTopic[topics[i].ID]
	}
	subject.Topics = topics
	return subject, nil
}

// CreateSubject adds a subject for the user
func (s *Service) CreateSubject(ctx context.Context, userID int64, in SubjectInput) (*models.Subject, error) {
	if err := core.Validate.Struct(in); err != nil {
		return nil, err
	}
	now := s.now()
	subject := &models.Subject{
		UserID:    userID,
		Name:      core.CleanString(in.Name),
		Type:      core.CleanString(in.Type),
		Level:     in.Level,
		Color:     in.Color,
		Icon:      in.Icon,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.store.CreateSubject(ctx, subject); err != nil {
		return nil, err
	}
	return subject, nil
}

// UpdateSubject applies a partial update
func (s *Service) UpdateSubject(ctx context.Context, userID, id int64, patch SubjectPatch) (*models.Subject, error) {
	if err := core.Validate.Struct(patch); err != nil {
		return nil, err
	}
	subject, err := s.store.GetSubject(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if subject == nil {
		return nil, notFound("subject", id)
	}

	if patch.Name != nil {
		subject.Name = core.CleanString(*patch.Name)
	}
	if patch.Type != nil {
		subject.Type = core.CleanString(*patch.Type)
	}
	if patch.Level != nil {
		subject.Level = *patch.Level
	}
	if patch.Color != nil {
		subject.Color = *patch.Color
	}
	if patch.Icon != nil {
		subject.Icon = *patch.Icon
	}
	subject.UpdatedAt = s.now()

	if err := s.store.UpdateSubject(ctx, subject); err != nil {
		return nil, err
	}
	return subject, nil
}

// DeleteSubject removes a subject with its topics and their revisions
func (s *Service) DeleteSubject(ctx context.Context, userID, id int64) error {
	return s.store.DeleteSubject(ctx, userID, id)
}
