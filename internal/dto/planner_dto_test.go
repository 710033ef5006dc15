package dto

import (
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
)

func TestRequestValidationTags(t *testing.T) {
	validate := validator.New()

	assert.Error(t, validate.Struct(&SetSiteNameRequest{}))
	assert.NoError(t, validate.Struct(&SetSiteNameRequest{SiteName: "Kalaburagi GP-1"}))

	assert.Error(t, validate.Struct(&SelectWorkRequest{}))
	assert.NoError(t, validate.Struct(&SelectWorkRequest{WorkId: "ai-work-0-1"}))
}
