package domain_test

import (
	"testing"

	"go-jobboard-backend/internal/domain"

	"github.com/stretchr/testify/assert"
)

func TestAnswerKey(t *testing.T) {
	id := int64(42)

	t.Run("uses id when present", func(t *testing.T) {
		q := domain.CustomQuestion{ID: &id, Question: "Why us?"}
		assert.Equal(t, "42", q.AnswerKey())
	})

	t.Run("falls back to question text", func(t *testing.T) {
		q := domain.CustomQuestion{Question: "Why us?"}
		assert.Equal(t, "Why us?", q.AnswerKey())
	})
}

func TestStatusValidation(t *testing.T) {
	assert.True(t, domain.ValidJobStatus(domain.JobStatusDraft))
	assert.True(t, domain.ValidJobStatus(domain.JobStatusActive))
	assert.True(t, domain.ValidJobStatus(domain.JobStatusClosed))
	assert.False(t, domain.ValidJobStatus("ARCHIVED"))
	assert.False(t, domain.ValidJobStatus("active"))

	assert.True(t, domain.ValidApplicationStatus(domain.ApplicationStatusOnHold))
	assert.False(t, domain.ValidApplicationStatus("HIRED"))
}
