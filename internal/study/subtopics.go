package study

import (
	"context"

	"github.com/example/studytrack/internal/core"
	"github.com/example/studytrack/pkg/models"
)

type SubtopicInput struct {
	TopicID     int64  `json:"topicId" validate:"required,gt=0"`
	Name        string `json:"name" validate:"required,notblank,max=200"`
	Description string `json:"description" validate:"max=5000"`
	Order       *int   `json:"order" validate:"omitempty,gte=0"`
}

type SubtopicPatch struct {
	Name        *string `json:"name" validate:"omitempty,notblank,max=200"`
	Description *string `json:"description" validate:"omitempty,max=5000"`
	Order       *int    `json:"order" validate:"omitempty,gte=0"`
	Completed   *bool   `json:"completed"`
}

func (s *Service) checkTopic(ctx context.Context, userID, topicID int64) (*models.Topic, error) {
	topic, err := s.store.GetTopic(ctx, userID, topicID)
	if err != nil {
		return nil, err
	}
	if topic == nil {
		return nil, notFound("topic", topicID)
	}
	return topic, nil
}

// CreateSubtopic adds a subtopic to one of the user's topics
func (s *Service) CreateSubtopic(ctx context.Context, userID int64, in SubtopicInput) (*models.Subtopic, error) {
	if err := core.Validate.Struct(in); err != nil {
		return nil, err
	}
	topic, err := s.checkTopic(ctx, userID, in.TopicID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	st := &models.Subtopic{
		TopicID:     topic.ID,
		Name:        core.CleanString(in.Name),
		Description: in.Description,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if in.Order != nil {
		st.Order = *in.Order
	}
	if err := s.store.CreateSubtopic(ctx, st); err != nil {
		return nil, err
	}
	return st, nil
}

// UpdateSubtopic applies a partial update. Completing an open subtopic stamps
// its completion time; reopening keeps the old stamp.
func (s *Service) UpdateSubtopic(ctx context.Context, userID, id int64, patch SubtopicPatch) (*models.Subtopic, error) {
	if err := core.Validate.Struct(patch); err != nil {
		return nil, err
	}
	st, err := s.store.GetSubtopic(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if st == nil {
		return nil, notFound("subtopic", id)
	}

	now := s.now()
	if patch.Completed != nil {
		if *patch.Completed && !st.Completed {
			st.CompletedAt = &now
		}
		st.Completed = *patch.Completed
	}
	if patch.Name != nil {
		st.Name = core.CleanString(*patch.Name)
	}
	if patch.Description != nil {
		st.Description = *patch.Description
	}
	if patch.Order != nil {
		st.Order = *patch.Order
	}
	st.UpdatedAt = now

	if err := s.store.UpdateSubtopic(ctx, userID, st); err != nil {
		return nil, err
	}
	return st, nil
}

// DeleteSubtopic removes a subtopic and its notes
func (s *Service) DeleteSubtopic(ctx context.Context, userID, id int64) error {
	return s.store.DeleteSubtopic(ctx, userID, id)
}
