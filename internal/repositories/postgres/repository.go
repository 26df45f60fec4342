package postgres

import (
	"github.com/brightboard/quiz-service/internal/repositories"
	"gorm.io/gorm"
)

type Repository struct {
	quiz     repositories.QuizRepository
	question repositories.QuestionRepository
	user     repositories.UserRepository
	attempt  repositories.AttemptRepository
	result   repositories.ResultRepository
}

func NewRepository(db *gorm.DB) repositories.Repository {
	return &Repository{
		quiz:     NewQuizPostgreSQL(db),
		question: NewQuestionPostgreSQL(db),
		user:     NewUserPostgreSQL(db),
		attempt:  NewAttemptPostgreSQL(db),
		result:   NewResultPostgreSQL(db),
	}
}

func (r *Repository) Quiz() repositories.QuizRepository         { return r.quiz }
func (r *Repository) Question() repositories.QuestionRepository { return r.question }
func (r *Repository) User() repositories.UserRepository         { return r.user }
func (r *Repository) Attempt() repositories.AttemptRepository   { return r.attempt }
func (r *Repository) Result() repositories.ResultRepository     { return r.result }
