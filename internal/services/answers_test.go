package services

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractAnswers(t *testing.T) {
	form := url.Values{
		"csrfmiddlewaretoken": {"abc"},
		"choice_2":            {"7"},
		"choice_1":            {"3", "5"},
		"choice_3":            {"3"},
		"submit":              {"Submit"},
	}

	ids, err := ExtractAnswers(form)
	require.NoError(t, err)
	assert.Equal(t, []uint{3, 5, 7}, ids)
}

func TestExtractAnswers_NoChoices(t *testing.T) {
	ids, err := ExtractAnswers(url.Values{"other": {"1"}})
	require.NoError(t, err)
	assert.Empty(t, ids)
}

func TestExtractAnswers_RejectsMalformedValues(t *testing.T) {
	form := url.Values{
		"choice_1": {"4"},
		"choice_2": {"abc"},
		"choice_3": {"1.5", "0"},
	}

	ids, err := ExtractAnswers(form)
	assert.Nil(t, ids)

	var errs ValidationErrors
	require.ErrorAs(t, err, &errs)
	require.Len(t, errs, 2)
	assert.Equal(t, "choice_2", errs[0].Field)
	assert.Equal(t, "choice_3", errs[1].Field)
	assert.Equal(t, "1.5", errs[1].Value)
	assert.Equal(t, "choice_id", errs[0].Rule)
	assert.True(t, IsValidation(err))
}

func TestExtractAnswers_DropsNonPositiveIDs(t *testing.T) {
	form := url.Values{
		"choice_1": {"4", "0"},
		"choice_2": {"-1"},
		"choice_3": {" 9 "},
	}

	ids, err := ExtractAnswers(form)
	require.NoError(t, err)
	assert.Equal(t, []uint{4, 9}, ids)

	ids, err = ExtractAnswers(url.Values{"choice_1": {"0", "-7"}})
	require.NoError(t, err)
	assert.Empty(t, ids)
}

func TestDedupeIDs(t *testing.T) {
	assert.Equal(t, []uint{3, 1, 2}, dedupeIDs([]uint{3, 1, 3, 2, 1}))
	assert.Empty(t, dedupeIDs(nil))
}
