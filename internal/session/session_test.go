package session

import (
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/brightboard/quiz-service/internal/gamification"
	"github.com/brightboard/quiz-service/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeStore counts writes and can be told to fail specific operations.
type fakeStore struct {
	createCalls  int
	updateCalls  int
	resultCalls  int
	profileCalls int
	quizCalls    int

	failUpdate bool
	failResult bool

	attempt *models.Attempt
	result  *models.Result
	delta   ProfileDelta
}

func (f *fakeStore) CreateAttempt(_ context.Context, attempt *models.Attempt) error {
	f.createCalls++
	attempt.ID = 42
	f.attempt = attempt
	return nil
}

func (f *fakeStore) UpdateAttempt(_ context.Context, attempt *models.Attempt) error {
	f.updateCalls++
	if f.failUpdate {
		return errors.New("backend unavailable")
	}
	f.attempt = attempt
	return nil
}

func (f *fakeStore) SaveResult(_ context.Context, result *models.Result) error {
	f.resultCalls++
	if f.failResult {
		return errors.New("backend unavailable")
	}
	result.ID = 7
	f.result = result
	return nil
}

func (f *fakeStore) ApplyProfileDelta(_ context.Context, _ string, delta ProfileDelta) error {
	f.profileCalls++
	f.delta = delta
	return nil
}

func (f *fakeStore) ApplyQuizAggregate(_ context.Context, _ uint, _ int) error {
	f.quizCalls++
	return nil
}

type fakeClock struct {
	t time.Time
}

func (c *fakeClock) now() time.Time { return c.t }

func (c *fakeClock) advance(d time.Duration) { c.t = c.t.Add(d) }

func threeQuestionQuiz() *models.Quiz {
	return &models.Quiz{
		ID:            1,
		Title:         "Fractions Basics",
		Subject:       "Mathematics",
		Difficulty:    models.DifficultyEasy,
		EstimatedTime: 10,
		Questions: []models.QuizQuestion{
			{QuestionID: "q1", Text: "1/2 + 1/2?", Type: models.SingleChoice, Options: []string{"1", "2", "0"}, CorrectAnswers: []int{0}, Topic: "Fractions", Points: 10},
			{QuestionID: "q2", Text: "1/3 > 1/2?", Type: models.TrueFalse, Options: []string{"True", "False"}, CorrectAnswers: []int{1}, Topic: "Fractions", Points: 10},
			{QuestionID: "q3", Text: "Which are prime?", Type: models.MultiSelect, Options: []string{"2", "3", "4", "6"}, CorrectAnswers: []int{0, 1}, Topic: "Primes", Points: 10},
		},
	}
}

func testProfile() models.UserProfile {
	return models.UserProfile{ID: "user-1", Name: "Ada", Role: models.RoleStudent, Level: 1}
}

func newTestSession(t *testing.T, quiz *models.Quiz, store Store, clock *fakeClock) *Session {
	t.Helper()
	s := New(quiz, testProfile(), store, gamification.NewRegistry(), slog.New(slog.DiscardHandler), WithClock(clock.now))
	require.NoError(t, s.Start(context.Background()))
	return s
}

func TestStartRequiresQuestions(t *testing.T) {
	quiz := threeQuestionQuiz()
	quiz.Questions = nil
	s := New(quiz, testProfile(), &fakeStore{}, gamification.NewRegistry(), slog.New(slog.DiscardHandler))
	assert.ErrorIs(t, s.Start(context.Background()), ErrNoQuestions)
}

func TestStartInitializesSession(t *testing.T) {
	store := &fakeStore{}
	clock := &fakeClock{t: time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)}
	s := newTestSession(t, threeQuestionQuiz(), store, clock)

	snap := s.Snapshot()
	assert.Equal(t, uint(42), snap.AttemptID)
	assert.Equal(t, StateInProgress, snap.State)
	assert.Equal(t, 0, snap.CurrentQuestion)
	assert.Equal(t, 600, snap.RemainingTime)
	assert.Equal(t, 1, store.createCalls)
	assert.Equal(t, models.AttemptInProgress, store.attempt.Status)
	assert.Equal(t, 30, store.attempt.MaxScore)

	assert.ErrorIs(t, s.Start(context.Background()), ErrAlreadyStarted)
}

func TestSelectAnswerReplacesForSingleChoice(t *testing.T) {
	clock := &fakeClock{t: time.Now()}
	s := newTestSession(t, threeQuestionQuiz(), &fakeStore{}, clock)

	require.NoError(t, s.SelectAnswer(0, 1))
	require.NoError(t, s.SelectAnswer(0, 0))
	assert.Equal(t, []int{0}, s.Snapshot().Answers[0])
}

func TestSelectAnswerTogglesForMultiSelect(t *testing.T) {
	clock := &fakeClock{t: time.Now()}
	s := newTestSession(t, threeQuestionQuiz(), &fakeStore{}, clock)

	require.NoError(t, s.Navigate(2))
	require.NoError(t, s.SelectAnswer(2, 0))
	require.NoError(t, s.SelectAnswer(2, 1))
	require.NoError(t, s.SelectAnswer(2, 3))
	require.NoError(t, s.SelectAnswer(2, 3)) // toggle off again
	assert.Equal(t, []int{0, 1}, s.Snapshot().Answers[2])
}

func TestSelectAnswerValidation(t *testing.T) {
	clock := &fakeClock{t: time.Now()}
	s := newTestSession(t, threeQuestionQuiz(), &fakeStore{}, clock)

	assert.ErrorIs(t, s.SelectAnswer(5, 0), ErrIndexOutOfRange)
	assert.ErrorIs(t, s.SelectAnswer(1, 0), ErrQuestionNotDisplayed)
	assert.ErrorIs(t, s.SelectAnswer(0, 9), ErrIndexOutOfRange)
}

func TestNavigateAccumulatesDwellTime(t *testing.T) {
	store := &fakeStore{}
	clock := &fakeClock{t: time.Now()}
	s := newTestSession(t, threeQuestionQuiz(), store, clock)

	clock.advance(30 * time.Second)
	require.NoError(t, s.Navigate(1))
	clock.advance(15 * time.Second)
	require.NoError(t, s.Navigate(0))
	clock.advance(5 * time.Second)
	require.NoError(t, s.Navigate(2))

	assert.ErrorIs(t, s.Navigate(3), ErrIndexOutOfRange)
	assert.ErrorIs(t, s.Navigate(-1), ErrIndexOutOfRange)

	_, err := s.Submit(context.Background())
	require.NoError(t, err)

	// Dwell is attributed to the question being left: 30+5s on q1, 15s on q2.
	responses := store.attempt.Responses
	assert.InDelta(t, 35.0, responses[0].TimeSpent, 0.001)
	assert.InDelta(t, 15.0, responses[1].TimeSpent, 0.001)
	assert.InDelta(t, 0.0, responses[2].TimeSpent, 0.001)
}

func TestToggleFlag(t *testing.T) {
	clock := &fakeClock{t: time.Now()}
	s := newTestSession(t, threeQuestionQuiz(), &fakeStore{}, clock)

	require.NoError(t, s.ToggleFlag())
	require.NoError(t, s.Navigate(1))
	require.NoError(t, s.ToggleFlag())
	assert.Equal(t, []int{0, 1}, s.Snapshot().Flagged)

	require.NoError(t, s.ToggleFlag())
	assert.Equal(t, []int{0}, s.Snapshot().Flagged)
}

func TestSubmitEndToEnd(t *testing.T) {
	store := &fakeStore{}
	clock := &fakeClock{t: time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)}
	s := newTestSession(t, threeQuestionQuiz(), store, clock)

	// Q1 answered correctly, Q2 incorrectly, Q3 left unanswered.
	require.NoError(t, s.SelectAnswer(0, 0))
	require.NoError(t, s.Navigate(1))
	require.NoError(t, s.SelectAnswer(1, 0))
	clock.advance(20 * time.Second)

	outcome, err := s.Submit(context.Background())
	require.NoError(t, err)
	require.NotNil(t, outcome)

	assert.Equal(t, 10, outcome.Result.Score)
	assert.Equal(t, 30, outcome.Result.MaxScore)
	assert.Equal(t, 33, outcome.Result.Accuracy)
	assert.InDelta(t, 20.0, outcome.Result.TimeSpent, 0.001)
	assert.InDelta(t, 66.666, store.attempt.CompletionRate, 0.01)

	// Topic breakdown: Fractions 1/2, Primes 0/1.
	require.Len(t, outcome.Result.TopicPerformance, 2)
	assert.Equal(t, models.TopicPerformance{Topic: "Fractions", Correct: 1, Total: 2, Accuracy: 50}, outcome.Result.TopicPerformance[0])
	assert.Equal(t, models.TopicPerformance{Topic: "Primes", Correct: 0, Total: 1, Accuracy: 0}, outcome.Result.TopicPerformance[1])
	assert.Equal(t, []string{"Primes"}, []string(outcome.Result.WeakTopics))
	assert.Empty(t, []string(outcome.Result.StrongTopics))

	// XP: round(10 * 0.33 * 1.0 * 10) = 33; first-quiz and speed-demon unlock.
	assert.Equal(t, 33, outcome.XPEarned)
	assert.Equal(t, 1, outcome.Level)
	assert.Equal(t, []string{"first-quiz", "speed-demon"}, outcome.NewBadges)

	assert.Equal(t, models.AttemptCompleted, store.attempt.Status)
	assert.Equal(t, 1, store.profileCalls)
	assert.Equal(t, 1, store.quizCalls)
	assert.Equal(t, 33, store.delta.XP)
}

func TestSubmitIsIdempotent(t *testing.T) {
	store := &fakeStore{}
	clock := &fakeClock{t: time.Now()}
	s := newTestSession(t, threeQuestionQuiz(), store, clock)
	require.NoError(t, s.SelectAnswer(0, 0))

	first, err := s.Submit(context.Background())
	require.NoError(t, err)
	second, err := s.Submit(context.Background())
	require.NoError(t, err)

	assert.Same(t, first, second)
	assert.Equal(t, 1, store.updateCalls)
	assert.Equal(t, 1, store.resultCalls)
	assert.Equal(t, 1, store.profileCalls)
	assert.Equal(t, 1, store.quizCalls)
}

func TestMultiSelectRequiresExactSet(t *testing.T) {
	tests := []struct {
		name     string
		selected []int
		correct  bool
	}{
		{"exact match", []int{0, 1}, true},
		{"exact match reordered", []int{1, 0}, true},
		{"superset", []int{0, 1, 3}, false},
		{"subset", []int{0}, false},
		{"disjoint", []int{2, 3}, false},
		{"nothing selected", nil, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := &fakeStore{}
			clock := &fakeClock{t: time.Now()}
			s := newTestSession(t, threeQuestionQuiz(), store, clock)

			require.NoError(t, s.Navigate(2))
			for _, opt := range tt.selected {
				require.NoError(t, s.SelectAnswer(2, opt))
			}
			outcome, err := s.Submit(context.Background())
			require.NoError(t, err)
			assert.Equal(t, tt.correct, outcome.Result.Score == 10)
		})
	}
}

func TestSubmitWithZeroMaxScore(t *testing.T) {
	quiz := threeQuestionQuiz()
	for i := range quiz.Questions {
		quiz.Questions[i].Points = 0
	}
	clock := &fakeClock{t: time.Now()}
	s := newTestSession(t, quiz, &fakeStore{}, clock)

	outcome, err := s.Submit(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, outcome.Result.MaxScore)
	assert.Equal(t, 0, outcome.Result.Accuracy)
}

func TestTickAutoSubmitsExactlyOnce(t *testing.T) {
	quiz := threeQuestionQuiz()
	quiz.EstimatedTime = 1 // 60 seconds
	store := &fakeStore{}
	clock := &fakeClock{t: time.Now()}
	s := newTestSession(t, quiz, store, clock)
	require.NoError(t, s.SelectAnswer(0, 0))

	ctx := context.Background()
	var outcome *Outcome
	for i := 0; i < 60; i++ {
		clock.advance(time.Second)
		out, err := s.Tick(ctx)
		require.NoError(t, err)
		if out != nil {
			outcome = out
		}
	}
	require.NotNil(t, outcome)
	// Unanswered questions count as incorrect, not skipped.
	assert.Equal(t, 10, outcome.Result.Score)
	assert.Equal(t, StateCompleted, s.State())

	// Further ticks never decrement below zero or submit again.
	out, err := s.Tick(ctx)
	require.NoError(t, err)
	assert.Nil(t, out)
	assert.Equal(t, 1, store.updateCalls)
	assert.Equal(t, 0, s.Snapshot().RemainingTime)
}

func TestSubmitFailureIsRetryable(t *testing.T) {
	store := &fakeStore{failUpdate: true}
	clock := &fakeClock{t: time.Now()}
	s := newTestSession(t, threeQuestionQuiz(), store, clock)
	require.NoError(t, s.SelectAnswer(0, 0))

	_, err := s.Submit(context.Background())
	var perr *PersistenceError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, StateInProgress, s.State())

	// The result insert can fail too; still retryable.
	store.failUpdate = false
	store.failResult = true
	_, err = s.Submit(context.Background())
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, StateInProgress, s.State())

	store.failResult = false
	outcome, err := s.Submit(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 10, outcome.Result.Score)
	assert.Equal(t, StateCompleted, s.State())
	// One result insert succeeded in total.
	assert.Equal(t, 1, store.profileCalls)
}

func TestActionsRejectedAfterCompletion(t *testing.T) {
	clock := &fakeClock{t: time.Now()}
	s := newTestSession(t, threeQuestionQuiz(), &fakeStore{}, clock)
	_, err := s.Submit(context.Background())
	require.NoError(t, err)

	assert.ErrorIs(t, s.SelectAnswer(0, 0), ErrNotActive)
	assert.ErrorIs(t, s.Navigate(1), ErrNotActive)
	assert.ErrorIs(t, s.ToggleFlag(), ErrNotActive)
}

func TestAbandonLeavesAttemptRecordAlone(t *testing.T) {
	store := &fakeStore{}
	clock := &fakeClock{t: time.Now()}
	s := newTestSession(t, threeQuestionQuiz(), store, clock)

	s.Abandon()
	assert.Equal(t, StateAbandoned, s.State())
	assert.Equal(t, 0, store.updateCalls)

	_, err := s.Submit(context.Background())
	assert.ErrorIs(t, err, ErrNotActive)
}
