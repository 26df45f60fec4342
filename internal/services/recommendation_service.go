package services

import (
	"context"
	"log/slog"

	"github.com/brightboard/quiz-service/internal/adaptive"
	"github.com/brightboard/quiz-service/internal/models"
	"github.com/brightboard/quiz-service/internal/repositories"
)

const historyWindow = 5

// Recommendations is the adaptive view handed to the learner's dashboard.
type Recommendations struct {
	Difficulty   models.Difficulty `json:"difficulty"`
	WeakTopics   []string          `json:"weak_topics"`
	StrongTopics []string          `json:"strong_topics"`
	Quizzes      []*models.Quiz    `json:"quizzes"`
}

// RecommendationService feeds stored results through the adaptive engine.
type RecommendationService struct {
	repo   repositories.Repository
	logger *slog.Logger
}

func NewRecommendationService(repo repositories.Repository, logger *slog.Logger) *RecommendationService {
	return &RecommendationService{repo: repo, logger: logger}
}

// ForUser computes the recommended difficulty, topic strengths and the ranked
// next-quiz list. A user with no history gets easy quizzes and no topic data.
func (s *RecommendationService) ForUser(ctx context.Context, userID string) (*Recommendations, error) {
	results, err := s.repo.Result().GetByUser(ctx, userID, historyWindow)
	if err != nil {
		return nil, err
	}

	recent, err := s.performances(ctx, results)
	if err != nil {
		return nil, err
	}
	difficulty := adaptive.RecommendDifficulty(recent)
	weak, strong := adaptive.AnalyzeTopicStrengths(aggregateTopics(results))

	active := true
	available, _, err := s.repo.Quiz().List(ctx, repositories.QuizFilters{IsActive: &active})
	if err != nil {
		return nil, err
	}
	completedIDs, err := s.repo.Attempt().GetCompletedQuizIDs(ctx, userID)
	if err != nil {
		return nil, err
	}

	summaries := make([]adaptive.QuizSummary, 0, len(available))
	byID := make(map[uint]*models.Quiz, len(available))
	for _, quiz := range available {
		summaries = append(summaries, adaptive.QuizSummary{
			ID:         quiz.ID,
			Subject:    quiz.Subject,
			Difficulty: quiz.Difficulty,
			Tags:       quiz.Tags,
		})
		byID[quiz.ID] = quiz
	}

	rankedIDs := adaptive.RecommendQuizzes(summaries, weak, difficulty, completedIDs)
	quizzes := make([]*models.Quiz, 0, len(rankedIDs))
	for _, id := range rankedIDs {
		quizzes = append(quizzes, byID[id])
	}

	return &Recommendations{
		Difficulty:   difficulty,
		WeakTopics:   weak,
		StrongTopics: strong,
		Quizzes:      quizzes,
	}, nil
}

// performances resolves each result's quiz difficulty. Results are newest
// first, which RecommendDifficulty requires.
func (s *RecommendationService) performances(ctx context.Context, results []*models.Result) ([]adaptive.AttemptPerformance, error) {
	difficulties := make(map[uint]models.Difficulty)
	recent := make([]adaptive.AttemptPerformance, 0, len(results))
	for _, result := range results {
		difficulty, ok := difficulties[result.QuizID]
		if !ok {
			quiz, err := s.repo.Quiz().GetByID(ctx, result.QuizID)
			if err != nil {
				if !repositories.IsNotFoundError(err) {
					return nil, err
				}
				// Quiz deleted since the attempt; difficulty unknown.
				difficulty = ""
			} else {
				difficulty = quiz.Difficulty
			}
			difficulties[result.QuizID] = difficulty
		}
		recent = append(recent, adaptive.AttemptPerformance{
			Accuracy:   result.Accuracy,
			TimeSpent:  result.TimeSpent,
			Difficulty: difficulty,
		})
	}
	return recent, nil
}

// aggregateTopics merges topic counts across results so a topic's strength
// reflects all recent attempts, not just the last one.
func aggregateTopics(results []*models.Result) []models.TopicPerformance {
	index := map[string]int{}
	merged := []models.TopicPerformance{}
	for _, result := range results {
		for _, tp := range result.TopicPerformance {
			i, ok := index[tp.Topic]
			if !ok {
				i = len(merged)
				index[tp.Topic] = i
				merged = append(merged, models.TopicPerformance{Topic: tp.Topic})
			}
			merged[i].Correct += tp.Correct
			merged[i].Total += tp.Total
		}
	}
	for i := range merged {
		merged[i].Accuracy = adaptive.RoundPercent(merged[i].Correct, merged[i].Total)
	}
	return merged
}
