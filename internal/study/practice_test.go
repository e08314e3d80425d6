package study

import (
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/studytrack/internal/core"
	"github.com/example/studytrack/pkg/models"
)

func (e *testEnv) paper(t *testing.T, topic *models.Topic, total *int, reminderDays *int) *models.PracticePaper {
	t.Helper()
	paper, err := e.svc.CreatePracticePaper(e.ctx, e.user, PracticePaperInput{
		SubjectID:      topic.SubjectID,
		TopicID:        &topic.ID,
		PaperName:      "Nov 2022 P2",
		QuestionStart:  "1",
		QuestionEnd:    "12",
		TotalQuestions: total,
		ReminderDays:   reminderDays,
	})
	require.NoError(t, err)
	return paper
}

func TestSubtopics(t *testing.T) {
	env := newTestEnv(t)
	topic := env.topic(t, "Organic")

	_, err := env.svc.CreateSubtopic(env.ctx, env.other, SubtopicInput{TopicID: topic.ID, Name: "Alkenes"})
	assert.True(t, core.IsNotFound(err))

	second, err := env.svc.CreateSubtopic(env.ctx, env.user, SubtopicInput{TopicID: topic.ID, Name: "Alcohols", Order: intPtr(2)})
	require.NoError(t, err)
	first, err := env.svc.CreateSubtopic(env.ctx, env.user, SubtopicInput{TopicID: topic.ID, Name: " Alkenes ", Order: intPtr(1)})
	require.NoError(t, err)
	assert.Equal(t, "Alkenes", first.Name)

	subject, err := env.svc.GetSubject(env.ctx, env.user, topic.SubjectID)
	require.NoError(t, err)
	require.Len(t, subject.Topics, 1)
	require.Len(t, subject.Topics[0].Subtopics, 2)
	assert.Equal(t, first.ID, subject.Topics[0].Subtopics[0].ID)
	assert.Equal(t, second.ID, subject.Topics[0].Subtopics[1].ID)

	done := true
	got, err := env.svc.UpdateSubtopic(env.ctx, env.user, first.ID, SubtopicPatch{Completed: &done})
	require.NoError(t, err)
	require.NotNil(t, got.CompletedAt)
	assert.True(t, env.now.Equal(*got.CompletedAt))

	completedAt := *got.CompletedAt
	env.advance(time.Hour)
	got, err = env.svc.UpdateSubtopic(env.ctx, env.user, first.ID, SubtopicPatch{Completed: &done})
	require.NoError(t, err)
	assert.True(t, completedAt.Equal(*got.CompletedAt))

	_, err = env.svc.UpdateSubtopic(env.ctx, env.other, first.ID, SubtopicPatch{Completed: &done})
	assert.True(t, core.IsNotFound(err))
	assert.True(t, core.IsNotFound(env.svc.DeleteSubtopic(env.ctx, env.other, first.ID)))
	require.NoError(t, env.svc.DeleteSubtopic(env.ctx, env.user, first.ID))
}

func TestCreatePracticePaper(t *testing.T) {
	env := newTestEnv(t)
	topic := env.topic(t, "Kinetics")
	elsewhere := env.topic(t, "Equilibria")

	paper := env.paper(t, topic, intPtr(12), intPtr(2))
	assert.Equal(t, models.PaperTypeTopical, paper.PaperType)
	assert.Equal(t, "Chemistry", paper.SubjectName)
	require.NotNil(t, paper.ReminderDate)
	assert.True(t, env.now.AddDate(0, 0, 2).Equal(*paper.ReminderDate))

	_, err := env.svc.CreatePracticePaper(env.ctx, env.user, PracticePaperInput{
		SubjectID: topic.SubjectID, TopicID: &elsewhere.ID, PaperName: "P1", QuestionStart: "1", QuestionEnd: "5",
	})
	var verr *core.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "topicId", verr.Fields[0].Field)

	_, err = env.svc.CreatePracticePaper(env.ctx, env.other, PracticePaperInput{
		SubjectID: topic.SubjectID, PaperName: "P1", QuestionStart: "1", QuestionEnd: "5",
	})
	assert.True(t, core.IsNotFound(err))

	papers, err := env.svc.ListPracticePapers(env.ctx, env.user, PracticePaperFilter{TopicID: &elsewhere.ID})
	require.NoError(t, err)
	assert.Empty(t, papers)
	papers, err = env.svc.ListPracticePapers(env.ctx, env.user, PracticePaperFilter{SubjectID: &topic.SubjectID})
	require.NoError(t, err)
	assert.Len(t, papers, 1)
}

func TestUpdatePracticePaperReminder(t *testing.T) {
	env := newTestEnv(t)
	topic := env.topic(t, "Kinetics")
	paper := env.paper(t, topic, nil, intPtr(2))
	due := *paper.ReminderDate

	env.advance(24 * time.Hour)
	got, err := env.svc.UpdatePracticePaper(env.ctx, env.user, paper.ID, PracticePaperPatch{ReminderDays: intPtr(2), Notes: strPtr("retry")})
	require.NoError(t, err)
	assert.True(t, due.Equal(*got.ReminderDate), "same day count keeps the date")
	assert.Equal(t, "retry", got.Notes)

	got, err = env.svc.UpdatePracticePaper(env.ctx, env.user, paper.ID, PracticePaperPatch{ReminderDays: intPtr(5)})
	require.NoError(t, err)
	assert.True(t, env.now.AddDate(0, 0, 5).Equal(*got.ReminderDate))

	got, err = env.svc.UpdatePracticePaper(env.ctx, env.user, paper.ID, PracticePaperPatch{ReminderDays: intPtr(0)})
	require.NoError(t, err)
	assert.Nil(t, got.ReminderDate)
	assert.Nil(t, got.ReminderDays)

	_, err = env.svc.UpdatePracticePaper(env.ctx, env.other, paper.ID, PracticePaperPatch{Notes: strPtr("x")})
	assert.True(t, core.IsNotFound(err))
}

func TestPracticeLogCompletesPaper(t *testing.T) {
	env := newTestEnv(t)
	topic := env.topic(t, "Kinetics")
	paper := env.paper(t, topic, intPtr(12), nil)

	log, err := env.svc.AddPracticeLog(env.ctx, env.user, PracticeLogInput{
		PracticePaperID: paper.ID, QuestionStart: "1", QuestionEnd: "6", Duration: 20,
	})
	require.NoError(t, err)
	assert.False(t, log.Completed)

	env.advance(time.Hour)
	log, err = env.svc.AddPracticeLog(env.ctx, env.user, PracticeLogInput{
		PracticePaperID: paper.ID, QuestionStart: "7", QuestionEnd: "Q12b", Score: intPtr(40), TotalMarks: intPtr(50),
	})
	require.NoError(t, err)
	assert.True(t, log.Completed)

	papers, err := env.svc.ListPracticePapers(env.ctx, env.user, PracticePaperFilter{})
	require.NoError(t, err)
	require.Len(t, papers, 1)
	assert.True(t, papers[0].Completed)
	assert.Equal(t, 40, *papers[0].Score)
	assert.Equal(t, 50, *papers[0].TotalMarks)

	_, err = env.svc.AddPracticeLog(env.ctx, env.user, PracticeLogInput{
		PracticePaperID: paper.ID, QuestionStart: "1", QuestionEnd: "3",
	})
	assert.ErrorIs(t, err, ErrPaperCompleted)
	assert.ErrorIs(t, err, core.ErrInvalidInput)

	_, err = env.svc.AddPracticeLog(env.ctx, env.user, PracticeLogInput{
		PracticePaperID: paper.ID, QuestionStart: "1", QuestionEnd: "12", Completed: true, Score: intPtr(45),
	})
	require.NoError(t, err)

	logs, err := env.svc.ListPracticeLogs(env.ctx, env.user, paper.ID)
	require.NoError(t, err)
	require.Len(t, logs, 3)
	assert.Equal(t, "12", logs[0].QuestionEnd)

	_, err = env.svc.ListPracticeLogs(env.ctx, env.other, paper.ID)
	assert.True(t, core.IsNotFound(err))
}

func TestReachesEnd(t *testing.T) {
	assert.True(t, reachesEnd("12", intPtr(12)))
	assert.True(t, reachesEnd("Q14a", intPtr(12)))
	assert.False(t, reachesEnd("11", intPtr(12)))
	assert.False(t, reachesEnd("end", intPtr(12)))
	assert.False(t, reachesEnd("12", nil))
}

func TestTrackPracticeQuestion(t *testing.T) {
	env := newTestEnv(t)
	topic := env.topic(t, "Kinetics")
	paper := env.paper(t, topic, nil, nil)

	_, err := env.svc.TrackPracticeQuestion(env.ctx, env.user, PracticeQuestionInput{PracticePaperID: paper.ID, QuestionNumber: "3", Status: "skip"})
	require.Error(t, err)

	first, err := env.svc.TrackPracticeQuestion(env.ctx, env.user, PracticeQuestionInput{PracticePaperID: paper.ID, QuestionNumber: "3", Status: models.QuestionRedo})
	require.NoError(t, err)
	again, err := env.svc.TrackPracticeQuestion(env.ctx, env.user, PracticeQuestionInput{PracticePaperID: paper.ID, QuestionNumber: "3", Status: models.QuestionLater, Notes: "graph"})
	require.NoError(t, err)
	assert.Equal(t, first.ID, again.ID)

	questions, err := env.svc.ListPracticeQuestions(env.ctx, env.user, paper.ID)
	require.NoError(t, err)
	require.Len(t, questions, 1)
	assert.Equal(t, models.QuestionLater, questions[0].Status)

	updated, err := env.svc.UpdatePracticeQuestion(env.ctx, env.user, first.ID, PracticeQuestionPatch{Status: strPtr(models.QuestionFocus)})
	require.NoError(t, err)
	assert.Equal(t, models.QuestionFocus, updated.Status)
	assert.Equal(t, "graph", updated.Notes)

	_, err = env.svc.TrackPracticeQuestion(env.ctx, env.other, PracticeQuestionInput{PracticePaperID: paper.ID, QuestionNumber: "4", Status: models.QuestionRedo})
	assert.True(t, core.IsNotFound(err))
	_, err = env.svc.UpdatePracticeQuestion(env.ctx, env.other, first.ID, PracticeQuestionPatch{Status: strPtr(models.QuestionRedo)})
	assert.True(t, core.IsNotFound(err))

	require.NoError(t, env.svc.DeletePracticePaper(env.ctx, env.user, paper.ID))
	_, err = env.svc.ListPracticeQuestions(env.ctx, env.user, paper.ID)
	assert.True(t, core.IsNotFound(err))
}

func TestNotes(t *testing.T) {
	env := newTestEnv(t)
	topic := env.topic(t, "Kinetics")
	st, err := env.svc.CreateSubtopic(env.ctx, env.user, SubtopicInput{TopicID: topic.ID, Name: "Rate equations"})
	require.NoError(t, err)

	_, err = env.svc.CreateNote(env.ctx, env.other, NoteInput{SubtopicID: &st.ID, Title: "Mine now"})
	assert.True(t, core.IsNotFound(err))
	_, err = env.svc.CreateNote(env.ctx, env.other, NoteInput{TopicID: &topic.ID, Title: "Mine now"})
	assert.True(t, core.IsNotFound(err))

	note, err := env.svc.CreateNote(env.ctx, env.user, NoteInput{SubjectID: &topic.SubjectID, SubtopicID: &st.ID, Title: "Orders of reaction"})
	require.NoError(t, err)
	assert.Nil(t, note.LastViewedAt)

	env.advance(time.Hour)
	got, err := env.svc.GetNote(env.ctx, env.user, note.ID)
	require.NoError(t, err)
	require.NotNil(t, got.LastViewedAt)
	assert.True(t, env.now.Equal(*got.LastViewedAt))

	got, err = env.svc.UpdateNote(env.ctx, env.user, note.ID, NotePatch{LastPosition: strPtr("page 4")})
	require.NoError(t, err)
	assert.Equal(t, "page 4", got.LastPosition)
	assert.Equal(t, "Orders of reaction", got.Title)

	topicNote, err := env.svc.CreateTopicNote(env.ctx, env.user, TopicNoteInput{TopicID: topic.ID, FileURL: "https://files.example.com/kinetics.pdf"})
	require.NoError(t, err)
	assert.Equal(t, "Kinetics notes", topicNote.Title)
	assert.Equal(t, "pdf", topicNote.FileType)
	assert.Equal(t, topic.SubjectID, *topicNote.SubjectID)

	notes, err := env.svc.ListNotes(env.ctx, env.user, NoteFilter{SubtopicID: &st.ID})
	require.NoError(t, err)
	require.Len(t, notes, 1)
	notes, err = env.svc.ListNotes(env.ctx, env.user, NoteFilter{})
	require.NoError(t, err)
	assert.Len(t, notes, 2)

	_, err = env.svc.GetNote(env.ctx, env.other, note.ID)
	assert.True(t, core.IsNotFound(err))
	assert.True(t, core.IsNotFound(env.svc.DeleteNote(env.ctx, env.other, note.ID)))
	require.NoError(t, env.svc.DeleteNote(env.ctx, env.user, note.ID))
}

func TestDashboardUpcomingReminders(t *testing.T) {
	env := newTestEnv(t)
	topic := env.topic(t, "Kinetics")

	later := env.paper(t, topic, nil, intPtr(3))
	sooner := env.paper(t, topic, nil, intPtr(1))
	env.paper(t, topic, nil, intPtr(4))
	env.paper(t, topic, nil, nil)

	dash, err := env.svc.Dashboard(env.ctx, env.user)
	require.NoError(t, err)
	require.Len(t, dash.UpcomingReminders, 2)
	assert.Equal(t, sooner.ID, dash.UpcomingReminders[0].ID)
	assert.Equal(t, later.ID, dash.UpcomingReminders[1].ID)

	dash, err = env.svc.Dashboard(env.ctx, env.other)
	require.NoError(t, err)
	assert.Empty(t, dash.UpcomingReminders)
}

func TestResetUserData(t *testing.T) {
	env := newTestEnv(t)
	topic := env.topic(t, "Kinetics")
	env.paper(t, topic, nil, intPtr(1))
	_, err := env.svc.CreateNote(env.ctx, env.user, NoteInput{TopicID: &topic.ID, Title: "Rates"})
	require.NoError(t, err)
	_, err = env.svc.CreateStudySession(env.ctx, env.user, StudySessionInput{Duration: 30})
	require.NoError(t, err)

	require.NoError(t, env.svc.ResetUserData(env.ctx, env.user))

	subjects, err := env.svc.ListSubjects(env.ctx, env.user)
	require.NoError(t, err)
	assert.Empty(t, subjects)
	papers, err := env.svc.ListPracticePapers(env.ctx, env.user, PracticePaperFilter{})
	require.NoError(t, err)
	assert.Empty(t, papers)
	notes, err := env.svc.ListNotes(env.ctx, env.user, NoteFilter{})
	require.NoError(t, err)
	assert.Empty(t, notes)

	_, err = env.svc.Profile(env.ctx, env.user)
	require.NoError(t, err)

	assert.True(t, core.IsNotFound(env.svc.ResetUserData(env.ctx, 9999)))
}
