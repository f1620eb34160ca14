package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type ratedInput struct {
	Name   string `validate:"required"`
	Rating *int   `validate:"omitnil,min=1,max=5"`
}

func TestValidateStructRatingBounds(t *testing.T) {
	good := 3
	assert.Empty(t, ValidateStruct(ratedInput{Name: "x", Rating: &good}))

	// nil rating is allowed
	assert.Empty(t, ValidateStruct(ratedInput{Name: "x"}))

	// explicit zero is out of range, not "omitted"
	zero := 0
	errs := ValidateStruct(ratedInput{Name: "x", Rating: &zero})
	assert.Contains(t, errs, "Rating")

	high := 6
	errs = ValidateStruct(ratedInput{Name: "x", Rating: &high})
	assert.Contains(t, errs, "Rating")
}

func TestValidateStructRequired(t *testing.T) {
	errs := ValidateStruct(ratedInput{})
	assert.Equal(t, "This field is required", errs["Name"])
}
