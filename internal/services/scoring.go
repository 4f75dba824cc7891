package services

import (
	"sort"

	"github.com/SAP-F-2025/onlinecourse-service/internal/models"
)

// ComputeResult scores submission against the questions of course. A
// question adds its grade only when the selected choices that belong to it
// are exactly its correct choices.
func ComputeResult(course *models.Course, submission *models.Submission, passingPercent int) *ExamResult {
	result := &ExamResult{
		Course:          course,
		SubmissionID:    submission.ID,
		PassingPercent:  passingPercent,
		SelectedChoices: submission.Choices,
		SelectedIDs:     make(map[uint]struct{}, len(submission.Choices)),
		Questions:       make([]QuestionResult, 0, len(course.Questions)),
	}

	byQuestion := make(map[uint][]uint)
	for _, choice := range submission.Choices {
		result.SelectedIDs[choice.ID] = struct{}{}
		byQuestion[choice.QuestionID] = append(byQuestion[choice.QuestionID], choice.ID)
	}

	questions := make([]models.Question, len(course.Questions))
	copy(questions, course.Questions)
	sort.Slice(questions, func(i, j int) bool { return questions[i].ID < questions[j].ID })

	for i := range questions {
		question := &questions[i]
		selected := sortedIDs(byQuestion[question.ID])

		correct := make([]uint, 0)
		for id := range question.CorrectChoiceIDs() {
			correct = append(correct, id)
		}

		passed := question.IsGetScore(selected)
		if passed {
			result.TotalScore += question.Grade
		}
		result.PossibleScore += question.Grade

		result.Questions = append(result.Questions, QuestionResult{
			QuestionID:        question.ID,
			Text:              question.Text,
			Grade:             question.Grade,
			SelectedChoiceIDs: selected,
			CorrectChoiceIDs:  sortedIDs(correct),
			Passed:            passed,
		})
	}

	result.Passed = result.PossibleScore > 0 &&
		result.TotalScore*100 >= passingPercent*result.PossibleScore

	return result
}

func sortedIDs(ids []uint) []uint {
	out := make([]uint, len(ids))
	copy(out, ids)
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
