package services

import (
	"context"
	"log/slog"

	apperrors "github.com/brightboard/quiz-service/internal/errors"
	"github.com/brightboard/quiz-service/internal/models"
	"github.com/brightboard/quiz-service/internal/repositories"
	"github.com/go-playground/validator/v10"
)

// QuizService owns quiz authoring: create, update, list, deactivate.
type QuizService struct {
	repo      repositories.Repository
	validator *validator.Validate
	logger    *slog.Logger
}

func NewQuizService(repo repositories.Repository, validate *validator.Validate, logger *slog.Logger) *QuizService {
	return &QuizService{
		repo:      repo,
		validator: validate,
		logger:    logger,
	}
}

func (s *QuizService) Create(ctx context.Context, quiz *models.Quiz, creatorID string) (*models.Quiz, error) {
	quiz.CreatedBy = creatorID
	if err := s.validateQuiz(quiz); err != nil {
		return nil, err
	}

	if err := s.repo.Quiz().Create(ctx, quiz); err != nil {
		return nil, err
	}
	s.logger.Info("quiz created", "quiz_id", quiz.ID, "title", quiz.Title, "created_by", creatorID)
	return quiz, nil
}

func (s *QuizService) GetByID(ctx context.Context, id uint) (*models.Quiz, error) {
	quiz, err := s.repo.Quiz().GetByID(ctx, id)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrQuizNotFound
		}
		return nil, err
	}
	return quiz, nil
}

// GetForTaking strips correct answers and explanations before the quiz is
// handed to a learner.
func (s *QuizService) GetForTaking(ctx context.Context, id uint) (*models.Quiz, error) {
	quiz, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !quiz.IsActive {
		return nil, ErrQuizInactive
	}

	sanitized := *quiz
	questions := make([]models.QuizQuestion, len(quiz.Questions))
	for i, q := range quiz.Questions {
		q.CorrectAnswers = nil
		q.Explanation = ""
		questions[i] = q
	}
	sanitized.Questions = questions
	return &sanitized, nil
}

func (s *QuizService) Update(ctx context.Context, id uint, updated *models.Quiz, userID string) (*models.Quiz, error) {
	existing, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if existing.CreatedBy != userID {
		return nil, ErrForbidden
	}

	updated.ID = existing.ID
	updated.CreatedBy = existing.CreatedBy
	updated.TimesAttempted = existing.TimesAttempted
	updated.AverageScore = existing.AverageScore
	updated.CreatedAt = existing.CreatedAt
	if err := s.validateQuiz(updated); err != nil {
		return nil, err
	}

	if err := s.repo.Quiz().Update(ctx, updated); err != nil {
		return nil, err
	}
	return updated, nil
}

func (s *QuizService) Delete(ctx context.Context, id uint, userID string) error {
	existing, err := s.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if existing.CreatedBy != userID {
		return ErrForbidden
	}
	return s.repo.Quiz().Delete(ctx, id)
}

func (s *QuizService) List(ctx context.Context, filters repositories.QuizFilters) ([]*models.Quiz, int64, error) {
	return s.repo.Quiz().List(ctx, filters)
}

// validateQuiz runs struct validation plus the question-level rules the
// struct tags cannot express.
func (s *QuizService) validateQuiz(quiz *models.Quiz) error {
	if err := s.validator.Struct(quiz); err != nil {
		return apperrors.ToValidationErrors(err)
	}
	if len(quiz.Questions) == 0 {
		return ErrQuizNoQuestions
	}

	var errs ValidationErrors
	for i, q := range quiz.Questions {
		if err := s.validator.Struct(q); err != nil {
			errs = append(errs, apperrors.ToValidationErrors(err)...)
			continue
		}
		for _, idx := range q.CorrectAnswers {
			if idx < 0 || idx >= len(q.Options) {
				errs = append(errs, *apperrors.NewValidationError(
					"correct_answers", "index out of range for options", idx))
			}
		}
		if q.Type != models.MultiSelect && len(q.CorrectAnswers) > 1 {
			errs = append(errs, *apperrors.NewValidationError(
				"correct_answers", "only multi-select questions may have multiple correct answers", i))
		}
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}
