package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/brightboard/quiz-service/internal/adaptive"
	"github.com/brightboard/quiz-service/internal/models"
	"github.com/brightboard/quiz-service/internal/repositories"
	"github.com/xuri/excelize/v2"
)

// QuizAnalytics summarizes how a quiz performs across all completed attempts.
type QuizAnalytics struct {
	QuizID          uint                     `json:"quiz_id"`
	Title           string                   `json:"title"`
	TimesAttempted  int                      `json:"times_attempted"`
	AverageAccuracy float64                  `json:"average_accuracy"`
	AverageTime     float64                  `json:"average_time"` // seconds
	TopicBreakdown  []models.TopicPerformance `json:"topic_breakdown"`
}

// AnalyticsService computes teacher-facing reporting over stored results.
type AnalyticsService struct {
	repo   repositories.Repository
	logger *slog.Logger
}

func NewAnalyticsService(repo repositories.Repository, logger *slog.Logger) *AnalyticsService {
	return &AnalyticsService{repo: repo, logger: logger}
}

// QuizStats aggregates accuracy, timing and per-topic correctness for one
// quiz. Only the quiz owner may see it.
func (s *AnalyticsService) QuizStats(ctx context.Context, quizID uint, userID string) (*QuizAnalytics, error) {
	quiz, err := s.ownedQuiz(ctx, quizID, userID)
	if err != nil {
		return nil, err
	}

	results, err := s.repo.Result().GetByQuiz(ctx, quizID)
	if err != nil {
		return nil, err
	}

	analytics := &QuizAnalytics{
		QuizID:         quiz.ID,
		Title:          quiz.Title,
		TimesAttempted: len(results),
	}
	if len(results) == 0 {
		analytics.TopicBreakdown = []models.TopicPerformance{}
		return analytics, nil
	}

	var accuracySum, timeSum float64
	topicIndex := map[string]int{}
	topics := []models.TopicPerformance{}
	for _, result := range results {
		accuracySum += float64(result.Accuracy)
		timeSum += result.TimeSpent
		for _, tp := range result.TopicPerformance {
			i, ok := topicIndex[tp.Topic]
			if !ok {
				i = len(topics)
				topicIndex[tp.Topic] = i
				topics = append(topics, models.TopicPerformance{Topic: tp.Topic})
			}
			topics[i].Correct += tp.Correct
			topics[i].Total += tp.Total
		}
	}
	for i := range topics {
		topics[i].Accuracy = adaptive.RoundPercent(topics[i].Correct, topics[i].Total)
	}

	analytics.AverageAccuracy = accuracySum / float64(len(results))
	analytics.AverageTime = timeSum / float64(len(results))
	analytics.TopicBreakdown = topics
	return analytics, nil
}

// ExportQuizResults renders every stored result for a quiz as an Excel
// workbook for offline grading review.
func (s *AnalyticsService) ExportQuizResults(ctx context.Context, quizID uint, userID string) ([]byte, error) {
	quiz, err := s.ownedQuiz(ctx, quizID, userID)
	if err != nil {
		return nil, err
	}

	results, err := s.repo.Result().GetByQuiz(ctx, quizID)
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	sheetName := "Results"

	index, err := f.NewSheet(sheetName)
	if err != nil {
		return nil, fmt.Errorf("failed to create Excel sheet: %w", err)
	}
	f.SetActiveSheet(index)
	f.DeleteSheet("Sheet1")

	headers := []string{
		"Student ID", "Score", "Max Score", "Accuracy (%)", "Time Spent (s)",
		"Weak Topics", "Strong Topics", "Completed At",
	}
	for i, header := range headers {
		cell := fmt.Sprintf("%c1", 'A'+i)
		f.SetCellValue(sheetName, cell, header)
	}

	for rowIndex, result := range results {
		row := []interface{}{
			result.UserID,
			result.Score,
			result.MaxScore,
			result.Accuracy,
			result.TimeSpent,
			strings.Join(result.WeakTopics, ", "),
			strings.Join(result.StrongTopics, ", "),
			result.CreatedAt.Format("2006-01-02 15:04:05"),
		}
		for colIndex, value := range row {
			cell := fmt.Sprintf("%c%d", 'A'+colIndex, rowIndex+2)
			f.SetCellValue(sheetName, cell, value)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to write Excel file: %w", err)
	}

	s.logger.Info("exported quiz results", "quiz_id", quiz.ID, "rows", len(results))
	return buf.Bytes(), nil
}

func (s *AnalyticsService) ownedQuiz(ctx context.Context, quizID uint, userID string) (*models.Quiz, error) {
	quiz, err := s.repo.Quiz().GetByID(ctx, quizID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrQuizNotFound
		}
		return nil, err
	}
	if quiz.CreatedBy != userID {
		return nil, ErrForbidden
	}
	return quiz, nil
}
