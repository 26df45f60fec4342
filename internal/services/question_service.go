package services

import (
	"context"
	"log/slog"

	apperrors "github.com/brightboard/quiz-service/internal/errors"
	"github.com/brightboard/quiz-service/internal/models"
	"github.com/brightboard/quiz-service/internal/repositories"
	"github.com/go-playground/validator/v10"
)

// QuestionService manages the shared question bank teachers draw from when
// assembling quizzes.
type QuestionService struct {
	repo      repositories.Repository
	validator *validator.Validate
	logger    *slog.Logger
}

func NewQuestionService(repo repositories.Repository, validate *validator.Validate, logger *slog.Logger) *QuestionService {
	return &QuestionService{
		repo:      repo,
		validator: validate,
		logger:    logger,
	}
}

func (s *QuestionService) Create(ctx context.Context, question *models.Question, creatorID string) (*models.Question, error) {
	question.CreatedBy = creatorID
	if err := s.validateQuestion(question); err != nil {
		return nil, err
	}

	if err := s.repo.Question().Create(ctx, question); err != nil {
		return nil, err
	}
	s.logger.Info("question created", "question_id", question.ID, "created_by", creatorID)
	return question, nil
}

func (s *QuestionService) GetByID(ctx context.Context, id uint) (*models.Question, error) {
	question, err := s.repo.Question().GetByID(ctx, id)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrQuestionNotFound
		}
		return nil, err
	}
	return question, nil
}

func (s *QuestionService) Update(ctx context.Context, id uint, updated *models.Question, userID string) (*models.Question, error) {
	existing, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if existing.CreatedBy != userID {
		return nil, ErrForbidden
	}

	updated.ID = existing.ID
	updated.CreatedBy = existing.CreatedBy
	updated.CreatedAt = existing.CreatedAt
	if err := s.validateQuestion(updated); err != nil {
		return nil, err
	}

	if err := s.repo.Question().Update(ctx, updated); err != nil {
		return nil, err
	}
	return updated, nil
}

func (s *QuestionService) Delete(ctx context.Context, id uint, userID string) error {
	existing, err := s.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if existing.CreatedBy != userID {
		return ErrForbidden
	}
	return s.repo.Question().Delete(ctx, id)
}

func (s *QuestionService) List(ctx context.Context, filters repositories.QuestionFilters) ([]*models.Question, int64, error) {
	return s.repo.Question().List(ctx, filters)
}

// Snapshots resolves bank questions into the embedded form quizzes carry.
// Missing IDs are an error; a quiz must never silently shrink.
func (s *QuestionService) Snapshots(ctx context.Context, ids []uint) ([]models.QuizQuestion, error) {
	questions, err := s.repo.Question().GetByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	if len(questions) != len(ids) {
		return nil, ErrQuestionNotFound
	}

	byID := make(map[uint]*models.Question, len(questions))
	for _, q := range questions {
		byID[q.ID] = q
	}
	snapshots := make([]models.QuizQuestion, 0, len(ids))
	for _, id := range ids {
		q, ok := byID[id]
		if !ok {
			return nil, ErrQuestionNotFound
		}
		snapshots = append(snapshots, q.Snapshot())
	}
	return snapshots, nil
}

func (s *QuestionService) validateQuestion(question *models.Question) error {
	if err := s.validator.Struct(question); err != nil {
		return apperrors.ToValidationErrors(err)
	}

	var errs ValidationErrors
	for _, idx := range question.CorrectIdx {
		if idx < 0 || idx >= len(question.Options) {
			errs = append(errs, *apperrors.NewValidationError(
				"correct_answers", "index out of range for options", idx))
		}
	}
	if question.Type != models.MultiSelect && len(question.CorrectIdx) > 1 {
		errs = append(errs, *apperrors.NewValidationError(
			"correct_answers", "only multi-select questions may have multiple correct answers", nil))
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}
