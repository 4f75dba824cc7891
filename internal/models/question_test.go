package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestQuestion_IsGetScore(t *testing.T) {
	question := Question{
		Grade: 5,
		Choices: []Choice{
			{ID: 1, IsCorrect: true},
			{ID: 2, IsCorrect: true},
			{ID: 3},
		},
	}

	tests := []struct {
		name     string
		selected []uint
		expected bool
	}{
		{"exact set", []uint{1, 2}, true},
		{"order ignored", []uint{2, 1}, true},
		{"duplicates ignored", []uint{1, 2, 2}, true},
		{"missing a correct choice", []uint{1}, false},
		{"extra wrong choice", []uint{1, 2, 3}, false},
		{"nothing selected", nil, false},
		{"choice from another question", []uint{1, 2, 99}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, question.IsGetScore(tt.selected))
		})
	}
}

func TestQuestion_IsGetScore_NoCorrectChoices(t *testing.T) {
	question := Question{Choices: []Choice{{ID: 4}, {ID: 5}}}

	assert.True(t, question.IsGetScore(nil))
	assert.False(t, question.IsGetScore([]uint{4}))
}

func TestSubmission_SelectedChoiceIDs(t *testing.T) {
	submission := Submission{Choices: []Choice{{ID: 7}, {ID: 3}}}
	assert.Equal(t, []uint{7, 3}, submission.SelectedChoiceIDs())
}

func TestUser_Password(t *testing.T) {
	var user User
	assert.NoError(t, user.SetPassword("s3cret"))
	assert.NotEqual(t, "s3cret", user.PasswordHash)
	assert.NoError(t, user.CheckPassword("s3cret"))
	assert.Error(t, user.CheckPassword("wrong"))
}

func TestUser_IsAuthenticated(t *testing.T) {
	var anonymous *User
	assert.False(t, anonymous.IsAuthenticated())
	assert.Equal(t, "", anonymous.FullName())
	assert.True(t, (&User{ID: 1}).IsAuthenticated())
	assert.Equal(t, "Ada Lovelace", (&User{ID: 1, FirstName: "Ada", LastName: "Lovelace"}).FullName())
}
