package api

import (
	"context"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/example/studytrack/internal/core"
	"github.com/example/studytrack/internal/study"
)

type handlers struct {
	svc *study.Service
}

func (h *handlers) register(g *echo.Group) {
	g.GET("/me", h.profile)
	g.PATCH("/me/reminders", h.updateReminderSettings)

	g.GET("/subjects", h.listSubjects)
	g.POST("/subjects", h.createSubject)
	g.GET("/subjects/:id", h.getSubject)
	g.PATCH("/subjects/:id", h.updateSubject)
	g.DELETE("/subjects/:id", h.deleteSubject)

	g.POST("/topics", h.createTopic)
	g.PATCH("/topics/:id", h.updateTopic)
	g.DELETE("/topics/:id", h.deleteTopic)

	g.POST("/subtopics", h.createSubtopic)
	g.PATCH("/subtopics/:id", h.updateSubtopic)
	g.DELETE("/subtopics/:id", h.deleteSubtopic)

	g.GET("/revisions", h.listRevisions)
	g.PATCH("/revisions/:id", h.updateRevision)

	g.GET("/study-sessions", h.listStudySessions)
	g.POST("/study-sessions", h.createStudySession)

	g.GET("/sat-sessions", h.listSATSessions)
	g.POST("/sat-sessions", h.createSATSession)
	g.PATCH("/sat-sessions/:id", h.updateSATSession)
	g.DELETE("/sat-sessions/:id", h.deleteSATSession)

	g.GET("/learning-projects", h.listLearningProjects)
	g.POST("/learning-projects", h.createLearningProject)
	g.GET("/learning-projects/:id", h.getLearningProject)
	g.PATCH("/learning-projects/:id", h.updateLearningProject)
	g.DELETE("/learning-projects/:id", h.deleteLearningProject)
	g.POST("/learning-sessions", h.createLearningSession)

	g.GET("/exams", h.listExams)
	g.POST("/exams", h.createExam)
	g.PATCH("/exams/:id", h.updateExam)
	g.DELETE("/exams/:id", h.deleteExam)

	g.GET("/essays", h.listEssays)
	g.POST("/essays", h.createEssay)
	g.GET("/essays/:id", h.getEssay)
	g.PATCH("/essays/:id", h.updateEssay)
	g.DELETE("/essays/:id", h.deleteEssay)

	g.GET("/vocabulary", h.listVocabulary)
	g.POST("/vocabulary", h.createVocabulary)
	g.GET("/vocabulary/export", h.exportVocabulary)
	g.PATCH("/vocabulary/:id", h.updateVocabulary)
	g.DELETE("/vocabulary/:id", h.deleteVocabulary)

	g.GET("/grammar", h.listGrammarRules)
	g.POST("/grammar", h.createGrammarRule)
	g.PATCH("/grammar/:id", h.updateGrammarRule)
	g.DELETE("/grammar/:id", h.deleteGrammarRule)

	g.GET("/errors", h.listErrorEntries)
	g.POST("/errors", h.createErrorEntry)
	g.PATCH("/errors/:id", h.updateErrorEntry)
	g.DELETE("/errors/:id", h.deleteErrorEntry)

	g.GET("/practice-papers", h.listPracticePapers)
	g.POST("/practice-papers", h.createPracticePaper)
	g.PATCH("/practice-papers/:id", h.updatePracticePaper)
	g.DELETE("/practice-papers/:id", h.deletePracticePaper)
	g.GET("/practice-paper-questions", h.listPracticeQuestions)
	g.POST("/practice-paper-questions", h.trackPracticeQuestion)
	g.PATCH("/practice-paper-questions/:id", h.updatePracticeQuestion)
	g.DELETE("/practice-paper-questions/:id", h.deletePracticeQuestion)
	g.GET("/practice-paper-logs", h.listPracticeLogs)
	g.POST("/practice-paper-logs", h.createPracticeLog)

	g.GET("/notes", h.listNotes)
	g.POST("/notes", h.createNote)
	g.GET("/notes/:id", h.getNote)
	g.PATCH("/notes/:id", h.updateNote)
	g.DELETE("/notes/:id", h.deleteNote)
	g.POST("/topic-notes", h.createTopicNote)

	g.POST("/reset-user-data", h.resetUserData)

	g.GET("/dashboard", h.dashboard)
	g.GET("/stats", h.stats)
	g.GET("/activity-calendar", h.activityCalendar)
	g.GET("/daily-topic", h.dailyTopic)
}

func pathID(c echo.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, errInvalidID
	}
	return id, nil
}

// queryID parses an optional id filter from the query string
func queryID(c echo.Context, name string) (*int64, error) {
	v := c.QueryParam(name)
	if v == "" {
		return nil, nil
	}
	id, err := strconv.ParseInt(v, 10, 64)
	if err != nil || id <= 0 {
		return nil, core.NewValidationError(nil, core.FieldError{Field: name, Error: "must be a positive id"})
	}
	return &id, nil
}

func requiredQueryID(c echo.Context, name string) (int64, error) {
	id, err := queryID(c, name)
	if err != nil {
		return 0, err
	}
	if id == nil {
		return 0, core.NewValidationError(nil, core.FieldError{Field: name, Error: "is required"})
	}
	return *id, nil
}

func bind(c echo.Context, dst interface{}) error {
	if err := c.Bind(dst); err != nil {
		return errors.Wrapf(err, "binding to %T", dst)
	}
	return nil
}

// create binds the request body into a new In, calls fn and answers 201
func create[In, Out any](c echo.Context, fn func(ctx context.Context, userID int64, in In) (Out, error)) error {
	var in In
	if err := bind(c, &in); err != nil {
		return err
	}
	out, err := fn(c.Request().Context(), currentUserID(c), in)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, out)
}

// update binds a patch for the record in the path, calls fn and answers 200
func update[In, Out any](c echo.Context, fn func(ctx context.Context, userID, id int64, patch In) (Out, error)) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	var patch In
	if err := bind(c, &patch); err != nil {
		return err
	}
	out, err := fn(c.Request().Context(), currentUserID(c), id, patch)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, out)
}

func get[Out any](c echo.Context, fn func(ctx context.Context, userID, id int64) (Out, error)) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	out, err := fn(c.Request().Context(), currentUserID(c), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, out)
}

func list[Out any](c echo.Context, fn func(ctx context.Context, userID int64) (Out, error)) error {
	out, err := fn(c.Request().Context(), currentUserID(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, out)
}

func remove(c echo.Context, fn func(ctx context.Context, userID, id int64) error) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	if err := fn(c.Request().Context(), currentUserID(c), id); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
