package services

import (
	"context"
	"log/slog"
	"testing"

	apperrors "github.com/brightboard/quiz-service/internal/errors"
	"github.com/brightboard/quiz-service/internal/models"
	"github.com/brightboard/quiz-service/internal/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newQuizService(repo *MockRepository) *QuizService {
	return NewQuizService(repo, utils.NewValidator(), slog.New(slog.DiscardHandler))
}

func validQuiz() *models.Quiz {
	return &models.Quiz{
		Title:         "Algebra Basics",
		Subject:       "Mathematics",
		Difficulty:    models.DifficultyEasy,
		EstimatedTime: 15,
		Questions: []models.QuizQuestion{
			{
				QuestionID:     "q1",
				Text:           "2 + 2 = ?",
				Type:           models.SingleChoice,
				Options:        []string{"3", "4"},
				CorrectAnswers: []int{1},
				Points:         10,
			},
		},
	}
}

func TestQuizServiceCreate(t *testing.T) {
	repo := &MockRepository{}
	repo.QuizRepo.On("Create", mock.Anything, mock.AnythingOfType("*models.Quiz")).Return(nil)

	svc := newQuizService(repo)
	quiz := validQuiz()
	created, err := svc.Create(context.Background(), quiz, "teacher-1")

	require.NoError(t, err)
	assert.Equal(t, "teacher-1", created.CreatedBy)
	repo.QuizRepo.AssertExpectations(t)
}

func TestQuizServiceCreateRejectsEmptyQuestions(t *testing.T) {
	svc := newQuizService(&MockRepository{})
	quiz := validQuiz()
	quiz.Questions = nil

	_, err := svc.Create(context.Background(), quiz, "teacher-1")
	assert.ErrorIs(t, err, ErrQuizNoQuestions)
	assert.True(t, IsValidation(err))
}

func TestQuizServiceCreateRejectsBadCorrectIndex(t *testing.T) {
	svc := newQuizService(&MockRepository{})
	quiz := validQuiz()
	quiz.Questions[0].CorrectAnswers = []int{5}

	_, err := svc.Create(context.Background(), quiz, "teacher-1")
	var ve ValidationErrors
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "correct_answers", ve[0].Field)
}

func TestQuizServiceCreateRejectsMultipleAnswersOnSingleChoice(t *testing.T) {
	svc := newQuizService(&MockRepository{})
	quiz := validQuiz()
	quiz.Questions[0].CorrectAnswers = []int{0, 1}

	_, err := svc.Create(context.Background(), quiz, "teacher-1")
	assert.True(t, IsValidation(err))
}

func TestQuizServiceCreateRejectsInvalidDifficulty(t *testing.T) {
	svc := newQuizService(&MockRepository{})
	quiz := validQuiz()
	quiz.Difficulty = "brutal"

	_, err := svc.Create(context.Background(), quiz, "teacher-1")
	var ve apperrors.ValidationErrors
	require.ErrorAs(t, err, &ve)
}

func TestQuizServiceUpdateRequiresOwnership(t *testing.T) {
	repo := &MockRepository{}
	existing := validQuiz()
	existing.ID = 3
	existing.CreatedBy = "teacher-1"
	repo.QuizRepo.On("GetByID", mock.Anything, uint(3)).Return(existing, nil)

	svc := newQuizService(repo)
	_, err := svc.Update(context.Background(), 3, validQuiz(), "teacher-2")
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestQuizServiceGetForTakingStripsAnswerKey(t *testing.T) {
	repo := &MockRepository{}
	stored := validQuiz()
	stored.ID = 7
	stored.IsActive = true
	stored.Questions[0].Explanation = "basic addition"
	repo.QuizRepo.On("GetByID", mock.Anything, uint(7)).Return(stored, nil)

	svc := newQuizService(repo)
	quiz, err := svc.GetForTaking(context.Background(), 7)

	require.NoError(t, err)
	assert.Nil(t, quiz.Questions[0].CorrectAnswers)
	assert.Empty(t, quiz.Questions[0].Explanation)
	// The stored copy keeps its answer key.
	assert.Equal(t, []int{1}, stored.Questions[0].CorrectAnswers)
}

func TestQuizServiceGetForTakingRejectsInactive(t *testing.T) {
	repo := &MockRepository{}
	stored := validQuiz()
	stored.ID = 8
	stored.IsActive = false
	repo.QuizRepo.On("GetByID", mock.Anything, uint(8)).Return(stored, nil)

	svc := newQuizService(repo)
	_, err := svc.GetForTaking(context.Background(), 8)
	assert.ErrorIs(t, err, ErrQuizInactive)
}
