package study

import (
	"context"
	"fmt"

	"github.com/example/studytrack/internal/core"
	"github.com/example/studytrack/pkg/models"
)

type NoteInput struct {
	SubjectID    *int64 `json:"subjectId" validate:"omitempty,gt=0"`
	TopicID      *int64 `json:"topicId" validate:"omitempty,gt=0"`
	SubtopicID   *int64 `json:"subtopicId" validate:"omitempty,gt=0"`
	Title        string `json:"title" validate:"required,notblank,max=300"`
	Content      string `json:"content"`
	FileURL      string `json:"fileUrl" validate:"max=2000"`
	FileType     string `json:"fileType" validate:"max=50"`
	LastPosition string `json:"lastPosition" validate:"max=100"`
}

type NotePatch struct {
	Title        *string `json:"title" validate:"omitempty,notblank,max=300"`
	Content      *string `json:"content"`
	FileURL      *string `json:"fileUrl" validate:"omitempty,max=2000"`
	FileType     *string `json:"fileType" validate:"omitempty,max=50"`
	LastPosition *string `json:"lastPosition" validate:"omitempty,max=100"`
}

// TopicNoteInput attaches an already uploaded file to a topic
type TopicNoteInput struct {
	TopicID  int64  `json:"topicId" validate:"required,gt=0"`
	FileURL  string `json:"fileUrl" validate:"required,notblank,max=2000"`
	FileType string `json:"fileType" validate:"max=50"`
	Content  string `json:"content"`
}

// NoteFilter narrows ListNotes
type NoteFilter struct {
	SubjectID  *int64
	TopicID    *int64
	SubtopicID *int64
}

func (s *Service) checkSubtopic(ctx context.Context, userID int64, id *int64) error {
	if id == nil {
		return nil
	}
	st, err := s.store.GetSubtopic(ctx, userID, *id)
	if err != nil {
		return err
	}
	if st == nil {
		return notFound("subtopic", *id)
	}
	return nil
}

func (s *Service) getNote(ctx context.Context, userID, id int64) (*models.Note, error) {
	note, err := s.store.GetNote(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if note == nil {
		return nil, notFound("note", id)
	}
	return note, nil
}

// ListNotes returns the user's notes, newest first
func (s *Service) ListNotes(ctx context.Context, userID int64, filter NoteFilter) ([]models.Note, error) {
	return s.store.ListNotes(ctx, &models.FindNote{
		UserID:     userID,
		SubjectID:  filter.SubjectID,
		TopicID:    filter.TopicID,
		SubtopicID: filter.SubtopicID,
	})
}

// GetNote returns a note and marks it as viewed now
func (s *Service) GetNote(ctx context.Context, userID, id int64) (*models.Note, error) {
	note, err := s.getNote(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	now := s.now()
	if err := s.store.TouchNote(ctx, userID, id, now); err != nil {
		return nil, err
	}
	note.LastViewedAt = &now
	return note, nil
}

// CreateNote stores a note. Any subject, topic or subtopic it points at must be
// the user's own.
func (s *Service) CreateNote(ctx context.Context, userID int64, in NoteInput) (*models.Note, error) {
	if err := core.Validate.Struct(in); err != nil {
		return nil, err
	}
	if _, err := s.checkSubject(ctx, userID, in.SubjectID); err != nil {
		return nil, err
	}
	if in.TopicID != nil {
		if _, err := s.checkTopic(ctx, userID, *in.TopicID); err != nil {
			return nil, err
		}
	}
	if err := s.checkSubtopic(ctx, userID, in.SubtopicID); err != nil {
		return nil, err
	}

	now := s.now()
	note := &models.Note{
		UserID:       userID,
		SubjectID:    in.SubjectID,
		TopicID:      in.TopicID,
		SubtopicID:   in.SubtopicID,
		Title:        core.CleanString(in.Title),
		Content:      in.Content,
		FileURL:      in.FileURL,
		FileType:     in.FileType,
		LastPosition: in.LastPosition,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.store.CreateNote(ctx, note); err != nil {
		return nil, err
	}
	return note, nil
}

// CreateTopicNote files an uploaded document under a topic, titled after it
func (s *Service) CreateTopicNote(ctx context.Context, userID int64, in TopicNoteInput) (*models.Note, error) {
	if err := core.Validate.Struct(in); err != nil {
		return nil, err
	}
	topic, err := s.checkTopic(ctx, userID, in.TopicID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	note := &models.Note{
		UserID:    userID,
		SubjectID: &topic.SubjectID,
		TopicID:   &topic.ID,
		Title:     fmt.Sprintf("%s notes", topic.Name),
		Content:   in.Content,
		FileURL:   core.CleanString(in.FileURL),
		FileType:  orDefault(in.FileType, "pdf"),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.store.CreateNote(ctx, note); err != nil {
		return nil, err
	}
	return note, nil
}

// UpdateNote applies a partial update
func (s *Service) UpdateNote(ctx context.Context, userID, id int64, patch NotePatch) (*models.Note, error) {
	if err := core.Validate.Struct(patch); err != nil {
		return nil, err
	}
	note, err := s.getNote(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	if patch.Title != nil {
		note.Title = core.CleanString(*patch.Title)
	}
	if patch.Content != nil {
		note.Content = *patch.Content
	}
	if patch.FileURL != nil {
		note.FileURL = *patch.FileURL
	}
	if patch.FileType != nil {
		note.FileType = *patch.FileType
	}
	if patch.LastPosition != nil {
		note.LastPosition = *patch.LastPosition
	}
	note.UpdatedAt = s.now()

	if err := s.store.UpdateNote(ctx, note); err != nil {
		return nil, err
	}
	return note, nil
}

// DeleteNote removes a note
func (s *Service) DeleteNote(ctx context.Context, userID, id int64) error {
	return s.store.DeleteNote(ctx, userID, id)
}
