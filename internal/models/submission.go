package models

import "time"

// Submission is one exam attempt. Its selected choices are replaced as a
// whole whenever they are written.
type Submission struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	EnrollmentID uint      `json:"enrollment_id" gorm:"not null;index"`
	CreatedAt    time.Time `json:"created_at"`

	// Relations
	Enrollment Enrollment `json:"-" gorm:"foreignKey:EnrollmentID"`
	Choices    []Choice   `json:"choices" gorm:"many2many:submission_choices;constraint:OnDelete:CASCADE"`
}

func (Submission) TableName() string {
	return "submissions"
}

// SelectedChoiceIDs returns the IDs of the selected choices in stored order.
func (s *Submission) SelectedChoiceIDs() []uint {
	ids := make([]uint, 0, len(s.Choices))
	for _, choice := range s.Choices {
		ids = append(ids, choice.ID)
	}
	return ids
}
