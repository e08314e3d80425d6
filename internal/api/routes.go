package api

import (
	"fmt"
	"math/rand/v2"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/example/studytrack/internal/core"
	"github.com/example/studytrack/internal/essaytopic"
	"github.com/example/studytrack/internal/excel"
	"github.com/example/studytrack/internal/study"
	"github.com/example/studytrack/pkg/models"
)

func (h *handlers) profile(c echo.Context) error {
	return list(c, h.svc.Profile)
}

func (h *handlers) updateReminderSettings(c echo.Context) error {
	var patch study.ReminderSettingsPatch
	if err := bind(c, &patch); err != nil {
		return err
	}
	user, err := h.svc.UpdateReminderSettings(c.Request().Context(), currentUserID(c), patch)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, user)
}

func (h *handlers) listSubjects(c echo.Context) error {
	return list(c, h.svc.ListSubjects)
}

func (h *handlers) createSubject(c echo.Context) error {
	return create(c, h.svc.CreateSubject)
}

func (h *handlers) getSubject(c echo.Context) error {
	return get(c, h.svc.GetSubject)
}

func (h *handlers) updateSubject(c echo.Context) error {
	return update(c, h.svc.UpdateSubject)
}

func (h *handlers) deleteSubject(c echo.Context) error {
	return remove(c, h.svc.DeleteSubject)
}

func (h *handlers) createTopic(c echo.Context) error {
	return create(c, h.svc.CreateTopic)
}

func (h *handlers) updateTopic(c echo.Context) error {
	return update(c, h.svc.UpdateTopic)
}

func (h *handlers) deleteTopic(c echo.Context) error {
	return remove(c, h.svc.DeleteTopic)
}

func (h *handlers) createSubtopic(c echo.Context) error {
	return create(c, h.svc.CreateSubtopic)
}

func (h *handlers) updateSubtopic(c echo.Context) error {
	return update(c, h.svc.UpdateSubtopic)
}

func (h *handlers) deleteSubtopic(c echo.Context) error {
	return remove(c, h.svc.DeleteSubtopic)
}

func (h *handlers) listRevisions(c echo.Context) error {
	return list(c, h.svc.PendingRevisions)
}

func (h *handlers) updateRevision(c echo.Context) error {
	return update(c, h.svc.UpdateRevision)
}

func (h *handlers) listStudySessions(c echo.Context) error {
	return list(c, h.svc.ListStudySessions)
}

func (h *handlers) createStudySession(c echo.Context) error {
	return create(c, h.svc.CreateStudySession)
}

func (h *handlers) listSATSessions(c echo.Context) error {
	return list(c, h.svc.ListSATSessions)
}

func (h *handlers) createSATSession(c echo.Context) error {
	return create(c, h.svc.CreateSATSession)
}

func (h *handlers) updateSATSession(c echo.Context) error {
	return update(c, h.svc.UpdateSATSession)
}

func (h *handlers) deleteSATSession(c echo.Context) error {
	return remove(c, h.svc.DeleteSATSession)
}

func (h *handlers) listLearningProjects(c echo.Context) error {
	return list(c, h.svc.ListLearningProjects)
}

func (h *handlers) createLearningProject(c echo.Context) error {
	return create(c, h.svc.CreateLearningProject)
}

func (h *handlers) getLearningProject(c echo.Context) error {
	return get(c, h.svc.GetLearningProject)
}

func (h *handlers) updateLearningProject(c echo.Context) error {
	return update(c, h.svc.UpdateLearningProject)
}

func (h *handlers) deleteLearningProject(c echo.Context) error {
	return remove(c, h.svc.DeleteLearningProject)
}

type learningSessionResponse struct {
	Session *models.LearningSession `json:"session"`
	Project *models.LearningProject `json:"project"`
}

func (h *handlers) createLearningSession(c echo.Context) error {
	var in study.LearningSessionInput
	if err := bind(c, &in); err != nil {
		return err
	}
	session, project, err := h.svc.AddLearningSession(c.Request().Context(), currentUserID(c), in)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, learningSessionResponse{Session: session, Project: project})
}

func (h *handlers) listExams(c echo.Context) error {
	return list(c, h.svc.ListExams)
}

func (h *handlers) createExam(c echo.Context) error {
	return create(c, h.svc.CreateExam)
}

func (h *handlers) updateExam(c echo.Context) error {
	return update(c, h.svc.UpdateExam)
}

func (h *handlers) deleteExam(c echo.Context) error {
	return remove(c, h.svc.DeleteExam)
}

func (h *handlers) listEssays(c echo.Context) error {
	return list(c, h.svc.ListEssays)
}

func (h *handlers) createEssay(c echo.Context) error {
	return create(c, h.svc.CreateEssay)
}

func (h *handlers) getEssay(c echo.Context) error {
	return get(c, h.svc.GetEssay)
}

func (h *handlers) updateEssay(c echo.Context) error {
	return update(c, h.svc.UpdateEssay)
}

func (h *handlers) deleteEssay(c echo.Context) error {
	return remove(c, h.svc.DeleteEssay)
}

func (h *handlers) listVocabulary(c echo.Context) error {
	return list(c, h.svc.ListVocabulary)
}

func (h *handlers) createVocabulary(c echo.Context) error {
	return create(c, h.svc.CreateVocabulary)
}

func (h *handlers) updateVocabulary(c echo.Context) error {
	return update(c, h.svc.UpdateVocabulary)
}

func (h *handlers) deleteVocabulary(c echo.Context) error {
	return remove(c, h.svc.DeleteVocabulary)
}

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

func (h *handlers) exportVocabulary(c echo.Context) error {
	entries, err := h.svc.ListVocabulary(c.Request().Context(), currentUserID(c))
	if err != nil {
		return err
	}
	f, err := excel.ExportVocabulary(entries)
	if err != nil {
		return errors.Wrap(err, "exporting vocabulary")
	}
	defer f.Close()

	buf, err := f.WriteToBuffer()
	if err != nil {
		return errors.Wrap(err, "writing workbook")
	}
	name := fmt.Sprintf("vocabulary-%s.xlsx", h.svc.Now().Format("2006-01-02"))
	c.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", name))
	return c.Blob(http.StatusOK, xlsxContentType, buf.Bytes())
}

func (h *handlers) listGrammarRules(c echo.Context) error {
	return list(c, h.svc.ListGrammarRules)
}

func (h *handlers) createGrammarRule(c echo.Context) error {
	return create(c, h.svc.CreateGrammarRule)
}

func (h *handlers) updateGrammarRule(c echo.Context) error {
	return update(c, h.svc.UpdateGrammarRule)
}

func (h *handlers) deleteGrammarRule(c echo.Context) error {
	return remove(c, h.svc.DeleteGrammarRule)
}

func (h *handlers) listErrorEntries(c echo.Context) error {
	return list(c, h.svc.ListErrorEntries)
}

func (h *handlers) createErrorEntry(c echo.Context) error {
	return create(c, h.svc.CreateErrorEntry)
}

func (h *handlers) updateErrorEntry(c echo.Context) error {
	return update(c, h.svc.UpdateErrorEntry)
}

func (h *handlers) deleteErrorEntry(c echo.Context) error {
	return remove(c, h.svc.DeleteErrorEntry)
}

func (h *handlers) listPracticePapers(c echo.Context) error {
	var (
		filter study.PracticePaperFilter
		err    error
	)
	if filter.SubjectID, err = queryID(c, "subjectId"); err != nil {
		return err
	}
	if filter.TopicID, err = queryID(c, "topicId"); err != nil {
		return err
	}
	papers, err := h.svc.ListPracticePapers(c.Request().Context(), currentUserID(c), filter)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, papers)
}

func (h *handlers) createPracticePaper(c echo.Context) error {
	return create(c, h.svc.CreatePracticePaper)
}

func (h *handlers) updatePracticePaper(c echo.Context) error {
	return update(c, h.svc.UpdatePracticePaper)
}

func (h *handlers) deletePracticePaper(c echo.Context) error {
	return remove(c, h.svc.DeletePracticePaper)
}

func (h *handlers) listPracticeQuestions(c echo.Context) error {
	paperID, err := requiredQueryID(c, "practicePaperId")
	if err != nil {
		return err
	}
	questions, err := h.svc.ListPracticeQuestions(c.Request().Context(), currentUserID(c), paperID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, questions)
}

func (h *handlers) trackPracticeQuestion(c echo.Context) error {
	return create(c, h.svc.TrackPracticeQuestion)
}

func (h *handlers) updatePracticeQuestion(c echo.Context) error {
	return update(c, h.svc.UpdatePracticeQuestion)
}

func (h *handlers) deletePracticeQuestion(c echo.Context) error {
	return remove(c, h.svc.DeletePracticeQuestion)
}

func (h *handlers) listPracticeLogs(c echo.Context) error {
	paperID, err := requiredQueryID(c, "practicePaperId")
	if err != nil {
		return err
	}
	logs, err := h.svc.ListPracticeLogs(c.Request().Context(), currentUserID(c), paperID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, logs)
}

func (h *handlers) createPracticeLog(c echo.Context) error {
	return create(c, h.svc.AddPracticeLog)
}

func (h *handlers) listNotes(c echo.Context) error {
	var (
		filter study.NoteFilter
		err    error
	)
	if filter.SubjectID, err = queryID(c, "subjectId"); err != nil {
		return err
	}
	if filter.TopicID, err = queryID(c, "topicId"); err != nil {
		return err
	}
	if filter.SubtopicID, err = queryID(c, "subtopicId"); err != nil {
		return err
	}
	notes, err := h.svc.ListNotes(c.Request().Context(), currentUserID(c), filter)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, notes)
}

func (h *handlers) createNote(c echo.Context) error {
	return create(c, h.svc.CreateNote)
}

func (h *handlers) getNote(c echo.Context) error {
	return get(c, h.svc.GetNote)
}

func (h *handlers) updateNote(c echo.Context) error {
	return update(c, h.svc.UpdateNote)
}

func (h *handlers) deleteNote(c echo.Context) error {
	return remove(c, h.svc.DeleteNote)
}

func (h *handlers) createTopicNote(c echo.Context) error {
	return create(c, h.svc.CreateTopicNote)
}

type resetResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

func (h *handlers) resetUserData(c echo.Context) error {
	if err := h.svc.ResetUserData(c.Request().Context(), currentUserID(c)); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, resetResponse{Success: true, Message: "all study data has been deleted"})
}

func (h *handlers) dashboard(c echo.Context) error {
	return list(c, h.svc.Dashboard)
}

func (h *handlers) stats(c echo.Context) error {
	return list(c, h.svc.Stats)
}

func (h *handlers) activityCalendar(c echo.Context) error {
	var year, month int
	if v := c.QueryParam("year"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return core.NewValidationError(nil, core.FieldError{Field: "year", Error: "must be a number"})
		}
		year = n
	}
	if v := c.QueryParam("month"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 || n > 12 {
			return core.NewValidationError(nil, core.FieldError{Field: "month", Error: "must be between 1 and 12"})
		}
		month = n
	}

	from, to := h.svc.CalendarRange(year, time.Month(month))
	days, err := h.svc.ActivityCalendar(c.Request().Context(), currentUserID(c), from, to)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, days)
}

func (h *handlers) dailyTopic(c echo.Context) error {
	if c.QueryParam("random") == "true" {
		rng := rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
		return c.JSON(http.StatusOK, essaytopic.Random(rng))
	}
	return c.JSON(http.StatusOK, essaytopic.Daily(h.svc.Now()))
}
