package models

import (
	"time"

	"gorm.io/datatypes"
)

type Course struct {
	ID              uint            `json:"id" gorm:"primaryKey"`
	Name            string          `json:"name" gorm:"not null;size:200" validate:"required,min=1,max=200"`
	Description     string          `json:"description" gorm:"type:text" validate:"max=1000"`
	ImageURL        *string         `json:"image_url" gorm:"size:500"`
	PubDate         *datatypes.Date `json:"pub_date"`
	TotalEnrollment int             `json:"total_enrollment" gorm:"not null;default:0;index"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relations
	Lessons   []Lesson   `json:"lessons,omitempty" gorm:"foreignKey:CourseID;constraint:OnDelete:CASCADE"`
	Questions []Question `json:"questions,omitempty" gorm:"foreignKey:CourseID;constraint:OnDelete:CASCADE"`

	// Computed per viewer (not stored)
	IsEnrolled bool `json:"is_enrolled" gorm:"-"`
}

func (Course) TableName() string {
	return "courses"
}

type Lesson struct {
	ID       uint   `json:"id" gorm:"primaryKey"`
	CourseID uint   `json:"course_id" gorm:"not null;index"`
	Order    int    `json:"order" gorm:"column:lesson_order;default:0"`
	Title    string `json:"title" gorm:"not null;size:200"`
	Content  string `json:"content" gorm:"type:text"`
}

func (Lesson) TableName() string {
	return "lessons"
}
