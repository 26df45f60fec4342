package repositories

import (
	"context"
	"errors"

	"github.com/brightboard/quiz-service/internal/models"
	"gorm.io/gorm"
)

// ===== SHARED FILTER STRUCTS =====

type QuizFilters struct {
	Subject    *string            `json:"subject"`
	Difficulty *models.Difficulty `json:"difficulty"`
	GradeLevel *string            `json:"grade_level"`
	IsActive   *bool              `json:"is_active"`
	CreatedBy  *string            `json:"created_by"`
	Limit      int                `json:"limit"`
	Offset     int                `json:"offset"`
	SortBy     string             `json:"sort_by"`    // "created_at", "title", "times_attempted"
	SortOrder  string             `json:"sort_order"` // "asc", "desc"
}

type QuestionFilters struct {
	Type       *models.QuestionType `json:"type"`
	Difficulty *models.Difficulty   `json:"difficulty"`
	Topic      *string              `json:"topic"`
	CreatedBy  *string              `json:"created_by"`
	Limit      int                  `json:"limit"`
	Offset     int                  `json:"offset"`
}

type AttemptFilters struct {
	Status *models.AttemptStatus `json:"status"`
	QuizID *uint                 `json:"quiz_id"`
	Limit  int                   `json:"limit"`
	Offset int                   `json:"offset"`
}

// StatsDelta is the profile change one completed attempt rolls up. Streak
// handling lives in the repository because it depends on the stored
// last-active timestamp.
type StatsDelta struct {
	Score     int
	Accuracy  int
	XP        int
	Level     int
	NewBadges []string
}

// ===== REPOSITORY INTERFACES =====

type QuizRepository interface {
	Create(ctx context.Context, quiz *models.Quiz) error
	GetByID(ctx context.Context, id uint) (*models.Quiz, error)
	Update(ctx context.Context, quiz *models.Quiz) error
	Delete(ctx context.Context, id uint) error
	List(ctx context.Context, filters QuizFilters) ([]*models.Quiz, int64, error)

	// ApplyAggregate folds one attempt's accuracy into the quiz's running
	// average and bumps the attempt counter.
	ApplyAggregate(ctx context.Context, quizID uint, accuracy int) error
}

type QuestionRepository interface {
	Create(ctx context.Context, question *models.Question) error
	GetByID(ctx context.Context, id uint) (*models.Question, error)
	GetByIDs(ctx context.Context, ids []uint) ([]*models.Question, error)
	Update(ctx context.Context, question *models.Question) error
	Delete(ctx context.Context, id uint) error
	List(ctx context.Context, filters QuestionFilters) ([]*models.Question, int64, error)
}

type UserRepository interface {
	Create(ctx context.Context, profile *models.UserProfile) error
	GetByID(ctx context.Context, id string) (*models.UserProfile, error)
	Update(ctx context.Context, profile *models.UserProfile) error

	// ApplyStatsDelta rolls one completed attempt into the stored profile:
	// score and accuracy aggregates, XP, level, badges, streak and
	// last-active bookkeeping.
	ApplyStatsDelta(ctx context.Context, userID string, delta StatsDelta) error

	GetLeaderboard(ctx context.Context, limit int) ([]*models.LeaderboardEntry, error)
}

type AttemptRepository interface {
	Create(ctx context.Context, attempt *models.Attempt) error
	GetByID(ctx context.Context, id uint) (*models.Attempt, error)
	Update(ctx context.Context, attempt *models.Attempt) error
	GetByUser(ctx context.Context, userID string, filters AttemptFilters) ([]*models.Attempt, int64, error)

	// GetCompletedQuizIDs returns the distinct quizzes the user has finished.
	GetCompletedQuizIDs(ctx context.Context, userID string) ([]uint, error)
}

type ResultRepository interface {
	Create(ctx context.Context, result *models.Result) error
	GetByAttempt(ctx context.Context, attemptID uint) (*models.Result, error)
	GetByUser(ctx context.Context, userID string, limit int) ([]*models.Result, error)
	GetByQuiz(ctx context.Context, quizID uint) ([]*models.Result, error)
}

// Repository aggregates access to all stores.
type Repository interface {
	Quiz() QuizRepository
	Question() QuestionRepository
	User() UserRepository
	Attempt() AttemptRepository
	Result() ResultRepository
}

// IsNotFoundError reports whether err is the backend's missing-record error.
func IsNotFoundError(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}
