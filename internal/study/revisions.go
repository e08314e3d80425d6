package study

import (
	"context"

	"github.com/example/studytrack/internal/revision"
	"github.com/example/studytrack/pkg/models"
)

// PendingRevisions returns the user's revisions due by the end of today
func (s *Service) PendingRevisions(ctx context.Context, userID int64) ([]models.Revision, error) {
	return s.scheduler.GetPendingRevisions(ctx, userID, s.now())
}

// UpdateRevision completes, reopens or annotates a revision
func (s *Service) UpdateRevision(ctx context.Context, userID, id int64, patch revision.Patch) (*models.Revision, error) {
	return s.scheduler.UpdateRevision(ctx, userID, id, patch, s.now())
}
