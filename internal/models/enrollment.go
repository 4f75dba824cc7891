package models

import (
	"fmt"
	"time"

	"gorm.io/gorm"
)

type EnrollmentMode string

const (
	EnrollmentModeAudit EnrollmentMode = "audit"
	EnrollmentModeHonor EnrollmentMode = "honor"
	EnrollmentModeBeta  EnrollmentMode = "BETA"
)

func (m EnrollmentMode) IsValid() bool {
	switch m {
	case EnrollmentModeAudit, EnrollmentModeHonor, EnrollmentModeBeta:
		return true
	}
	return false
}

// Enrollment links a user to a course. At most one row exists per
// (user, course); the composite unique index enforces it.
type Enrollment struct {
	ID           uint           `json:"id" gorm:"primaryKey"`
	UserID       uint           `json:"user_id" gorm:"not null;uniqueIndex:idx_enrollments_user_course"`
	CourseID     uint           `json:"course_id" gorm:"not null;uniqueIndex:idx_enrollments_user_course;index"`
	Mode         EnrollmentMode `json:"mode" gorm:"not null;size:5;default:honor"`
	DateEnrolled time.Time      `json:"date_enrolled" gorm:"not null"`
	Rating       float64        `json:"rating" gorm:"default:5"`

	// Relations
	User        User         `json:"-" gorm:"foreignKey:UserID"`
	Course      Course       `json:"-" gorm:"foreignKey:CourseID"`
	Submissions []Submission `json:"submissions,omitempty" gorm:"foreignKey:EnrollmentID;constraint:OnDelete:CASCADE"`
}

func (Enrollment) TableName() string {
	return "enrollments"
}

// BeforeCreate defaults an empty mode to honor and rejects unknown modes
func (e *Enrollment) BeforeCreate(tx *gorm.DB) error {
	if e.Mode == "" {
		e.Mode = EnrollmentModeHonor
	}
	if !e.Mode.IsValid() {
		return fmt.Errorf("invalid enrollment mode %q", e.Mode)
	}
	return nil
}
