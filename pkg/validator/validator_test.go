package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type ratingRequest struct {
	RaterID string `validate:"required,uuid"`
	Score   int    `validate:"required,gte=1,lte=5"`
}

func TestValidate_OK(t *testing.T) {
	req := ratingRequest{RaterID: "550e8400-e29b-41d4-a716-446655440000", Score: 5}
	assert.NoError(t, Validate(req))
}

func TestValidate_ScoreOutOfRange(t *testing.T) {
	req := ratingRequest{RaterID: "550e8400-e29b-41d4-a716-446655440000", Score: 6}

	err := Validate(req)
	require.Error(t, err)

	var valErr *ValidationError
	require.ErrorAs(t, err, &valErr)
	assert.Contains(t, valErr.Fields(), "Score")
	assert.Contains(t, valErr.Fields()["Score"], "less than or equal to 5")
}

func TestValidate_MissingRequired(t *testing.T) {
	err := Validate(ratingRequest{})
	require.Error(t, err)

	var valErr *ValidationError
	require.ErrorAs(t, err, &valErr)
	assert.Len(t, valErr.Fields(), 2)
	assert.Contains(t, err.Error(), "RaterID")
}

func TestValidate_InvalidUUID(t *testing.T) {
	req := ratingRequest{RaterID: "not-a-uuid", Score: 3}

	err := Validate(req)
	require.Error(t, err)

	var valErr *ValidationError
	require.ErrorAs(t, err, &valErr)
	assert.Equal(t, "must be a valid UUID", valErr.Fields()["RaterID"])
}
