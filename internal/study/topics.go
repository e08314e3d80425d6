package study

import (
	"context"

	"github.com/pkg/errors"

	"github.com/example/studytrack/internal/core"
	"github.com/example/studytrack/pkg/models"
)

type TopicInput struct {
	SubjectID   int64  `json:"subjectId" validate:"required,gt=0"`
	Name        string `json:"name" validate:"required,notblank,max=200"`
	Description string `json:"description" validate:"max=5000"`
	Order       *int   `json:"order" validate:"omitempty,gte=0"`
}

type TopicPatch struct {
	Name        *string `json:"name" validate:"omitempty,notblank,max=200"`
	Description *string `json:"description" validate:"omitempty,max=5000"`
	Order       *int    `json:"order" validate:"omitempty,gte=0"`
	Completed   *bool   `json:"completed"`
}

// CreateTopic adds a topic to one of the user's subjects
func (s *Service) CreateTopic(ctx context.Context, userID int64, in TopicInput) (*models.Topic, error) {
	if err := core.Validate.Struct(in); err != nil {
		return nil, err
	}
	subject, err := s.store.GetSubject(ctx, userID, in.SubjectID)
	if err != nil {
		return nil, err
	}
	if subject == nil {
		return nil, notFound("subject", in.SubjectID)
	}

	now := s.now()
	topic := &models.Topic{
		SubjectID:   subject.ID,
		Name:        core.CleanString(in.Name),
		Description: in.Description,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if in.Order != nil {
		topic.Order = *in.Order
	}
	if err := s.store.CreateTopic(ctx, topic); err != nil {
		return nil, err
	}
	return topic, nil
}

// UpdateTopic applies a partial update. Completing a topic for the first time
// schedules its revisions before the completed flag is saved.
func (s *Service) UpdateTopic(ctx context.Context, userID, id int64, patch TopicPatch) (*models.Topic, error) {
	if err := core.Validate.Struct(patch); err != nil {
		return nil, err
	}
	topic, err := s.store.GetTopic(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if topic == nil {
		return nil, notFound("topic", id)
	}

	now := s.now()
	if patch.Completed != nil {
		if *patch.Completed && !topic.Completed {
			if _, err := s.scheduler.ScheduleRevisions(ctx, userID, topic.ID, now); err != nil {
				return nil, errors.Wrap(err, "completing topic")
			}
			topic.CompletedAt = &now
			s.logger.Debug("topic completed", "user", userID, "topic", topic.ID)
		}
		topic.Completed = *patch.Completed
	}
	if patch.Name != nil {
		topic.Name = core.CleanString(*patch.Name)
	}
	if patch.Description != nil {
		topic.Description = *patch.Description
	}
	if patch.Order != nil {
		topic.Order = *patch.Order
	}
	topic.UpdatedAt = now

	if err := s.store.UpdateTopic(ctx, userID, topic); err != nil {
		return nil, err
	}

	revisions, err := s.store.ListRevisions(ctx, &models.FindRevision{
		UserID:    &userID,
		TopicID:   &topic.ID,
		Completed: boolPtr(false),
	})
	if err != nil {
		return nil, err
	}
	topic.Revisions = revisions
	return topic, nil
}

// DeleteTopic removes a topic and its revisions
func (s *Service) DeleteTopic(ctx context.Context, userID, id int64) error {
	return s.store.DeleteTopic(ctx, userID, id)
}
