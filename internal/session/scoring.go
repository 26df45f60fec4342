package session

import (
	"context"
	"math"

	"github.com/brightboard/quiz-service/internal/adaptive"
	"github.com/brightboard/quiz-service/internal/gamification"
	"github.com/brightboard/quiz-service/internal/models"
)

// submitLocked runs the submission pipeline. Caller holds s.mu.
//
// The completed transition is gated only on the attempt update and the result
// insert; profile and quiz-aggregate writes are best-effort so a stats
// failure cannot hide the learner's score. Any gating failure rolls the state
// back to in-progress and the whole pipeline can be retried.
func (s *Session) submitLocked(ctx context.Context) (*Outcome, error) {
	switch s.state {
	case StateCompleted:
		return s.outcome, nil
	case StateInProgress:
		// proceed
	default:
		return nil, ErrNotActive
	}
	s.state = StateSubmitting

	now := s.now()
	totalTime := now.Sub(s.startedAt).Seconds()
	grade := s.grade()

	weak, strong := adaptive.AnalyzeTopicStrengths(grade.topics)
	completionRate := float64(len(s.answers)) / float64(len(s.quiz.Questions)) * 100

	xp := gamification.CalculateXP(grade.score, grade.accuracy, s.quiz.Difficulty)
	newLevel := gamification.Level(s.profile.XP + xp)
	newBadges := s.badges.CheckNewBadges(s.profile.Badges, gamification.Stats{
		QuizzesCompleted: s.profile.QuizzesCompleted + 1,
		Streak:           s.profile.Streak,
		Level:            newLevel,
		LastAccuracy:     grade.accuracy,
		LastTimeSpent:    totalTime,
	})

	attempt := &models.Attempt{
		ID:             s.attemptID,
		UserID:         s.profile.ID,
		QuizID:         s.quiz.ID,
		QuizTitle:      s.quiz.Title,
		StartedAt:      s.startedAt,
		EndedAt:        &now,
		Status:         models.AttemptCompleted,
		Responses:      grade.responses,
		Score:          grade.score,
		MaxScore:       grade.maxScore,
		Accuracy:       grade.accuracy,
		CompletionRate: completionRate,
	}
	if err := s.store.UpdateAttempt(ctx, attempt); err != nil {
		s.state = StateInProgress
		return nil, &PersistenceError{Op: "update attempt", Err: err}
	}

	result := models.Result{
		UserID:           s.profile.ID,
		QuizID:           s.quiz.ID,
		QuizTitle:        s.quiz.Title,
		AttemptID:        s.attemptID,
		Score:            grade.score,
		MaxScore:         grade.maxScore,
		Accuracy:         grade.accuracy,
		TimeSpent:        totalTime,
		TopicPerformance: grade.topics,
		WeakTopics:       weak,
		StrongTopics:     strong,
	}
	if err := s.store.SaveResult(ctx, &result); err != nil {
		s.state = StateInProgress
		return nil, &PersistenceError{Op: "save result", Err: err}
	}

	delta := ProfileDelta{
		Score:     grade.score,
		Accuracy:  grade.accuracy,
		XP:        xp,
		Level:     newLevel,
		NewBadges: newBadges,
	}
	if err := s.store.ApplyProfileDelta(ctx, s.profile.ID, delta); err != nil {
		s.logger.Warn("profile stats update failed after submission",
			"attempt_id", s.attemptID, "user_id", s.profile.ID, "error", err)
	}
	if err := s.store.ApplyQuizAggregate(ctx, s.quiz.ID, grade.accuracy); err != nil {
		s.logger.Warn("quiz aggregate update failed after submission",
			"attempt_id", s.attemptID, "quiz_id", s.quiz.ID, "error", err)
	}

	s.state = StateCompleted
	s.outcome = &Outcome{
		Result:    result,
		NewBadges: newBadges,
		XPEarned:  xp,
		Level:     newLevel,
	}
	s.logger.Info("quiz session completed",
		"attempt_id", s.attemptID,
		"score", grade.score,
		"accuracy", grade.accuracy,
		"xp_earned", xp,
		"new_badges", len(newBadges))
	return s.outcome, nil
}

type gradeSheet struct {
	score     int
	maxScore  int
	accuracy  int
	responses []models.QuestionResponse
	topics    []models.TopicPerformance
}

// grade scores every question. A question is correct only when the selected
// set equals the correct set exactly; no selection is always incorrect.
// Unanswered questions count against accuracy, not as skipped.
func (s *Session) grade() gradeSheet {
	sheet := gradeSheet{
		responses: make([]models.QuestionResponse, 0, len(s.quiz.Questions)),
	}
	topicIndex := map[string]int{}

	for i, question := range s.quiz.Questions {
		selected := s.answers[i]
		correct := setsEqual(selected, question.CorrectAnswers)
		if correct {
			sheet.score += question.Points
		}
		sheet.maxScore += question.Points

		// Questions without a topic fall back to the quiz subject.
		topic := question.Topic
		if topic == "" {
			topic = s.quiz.Subject
		}
		idx, ok := topicIndex[topic]
		if !ok {
			idx = len(sheet.topics)
			topicIndex[topic] = idx
			sheet.topics = append(sheet.topics, models.TopicPerformance{Topic: topic})
		}
		sheet.topics[idx].Total++
		if correct {
			sheet.topics[idx].Correct++
		}

		_, flagged := s.flagged[i]
		sheet.responses = append(sheet.responses, models.QuestionResponse{
			QuestionID:      question.QuestionID,
			SelectedAnswers: append([]int{}, selected...),
			IsCorrect:       correct,
			TimeSpent:       s.dwell[i],
			Flagged:         flagged,
		})
	}

	for i := range sheet.topics {
		tp := &sheet.topics[i]
		tp.Accuracy = adaptive.RoundPercent(tp.Correct, tp.Total)
	}

	if sheet.maxScore > 0 {
		sheet.accuracy = int(math.Round(float64(sheet.score) / float64(sheet.maxScore) * 100))
	}
	return sheet
}

// setsEqual compares two index sets ignoring order. An empty selection only
// matches an empty correct set, which valid quiz data never has.
func setsEqual(selected, correct []int) bool {
	if len(selected) != len(correct) {
		return false
	}
	for _, c := range correct {
		found := false
		for _, sel := range selected {
			if sel == c {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}
