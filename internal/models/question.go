package models

type Question struct {
	ID       uint   `json:"id" gorm:"primaryKey"`
	CourseID uint   `json:"course_id" gorm:"not null;index"`
	Text     string `json:"question_text" gorm:"column:question_text;not null;size:500"`
	Grade    int    `json:"grade" gorm:"not null;default:0"`

	Choices []Choice `json:"choices" gorm:"foreignKey:QuestionID;constraint:OnDelete:CASCADE"`
}

func (Question) TableName() string {
	return "questions"
}

// CorrectChoiceIDs returns the set of choice IDs flagged correct.
func (q *Question) CorrectChoiceIDs() map[uint]struct{} {
	ids := make(map[uint]struct{})
	for _, choice := range q.Choices {
		if choice.IsCorrect {
			ids[choice.ID] = struct{}{}
		}
	}
	return ids
}

// IsGetScore reports whether selectedIDs is exactly the correct-choice set.
// Order and duplicates are ignored; there is no partial credit.
func (q *Question) IsGetScore(selectedIDs []uint) bool {
	correct := q.CorrectChoiceIDs()

	selected := make(map[uint]struct{}, len(selectedIDs))
	for _, id := range selectedIDs {
		selected[id] = struct{}{}
	}

	if len(selected) != len(correct) {
		return false
	}
	for id := range selected {
		if _, ok := correct[id]; !ok {
			return false
		}
	}
	return true
}

type Choice struct {
	ID         uint   `json:"id" gorm:"primaryKey"`
	QuestionID uint   `json:"question_id" gorm:"not null;index"`
	Text       string `json:"choice_text" gorm:"column:choice_text;not null;size:200"`
	IsCorrect  bool   `json:"is_correct" gorm:"not null;default:false"`
}

func (Choice) TableName() string {
	return "choices"
}
