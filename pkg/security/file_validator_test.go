package security_test

import (
	"bytes"
	"testing"

	"go-jobboard-backend/pkg/security"

	"github.com/stretchr/testify/assert"
)

func TestValidateResumeFile(t *testing.T) {
	t.Run("accepts a pdf with matching content", func(t *testing.T) {
		result := security.ValidateResumeFile("resume.pdf", []byte("%PDF-1.7 content"), "application/pdf")
		assert.True(t, result.Valid)
		assert.Equal(t, ".pdf", result.Extension)
	})

	t.Run("accepts a docx detected as octet-stream", func(t *testing.T) {
		data := append([]byte{0x50, 0x4B, 0x03, 0x04}, []byte("zip payload")...)
		result := security.ValidateResumeFile("resume.docx", data, "application/octet-stream")
		assert.True(t, result.Valid)
	})

	t.Run("accepts a doc with no detected mime", func(t *testing.T) {
		data := []byte{0xD0, 0xCF, 0x11, 0xE0, 0xA1, 0xB1, 0x1A, 0xE1}
		result := security.ValidateResumeFile("resume.doc", data, "")
		assert.True(t, result.Valid)
	})

	t.Run("rejects disallowed extensions", func(t *testing.T) {
		result := security.ValidateResumeFile("malware.exe", []byte{0x4D, 0x5A, 0x00, 0x00}, "application/pdf")
		assert.False(t, result.Valid)
		assert.Contains(t, result.Error, "only PDF, DOC, and DOCX")
	})

	t.Run("rejects content that does not match the extension", func(t *testing.T) {
		result := security.ValidateResumeFile("resume.pdf", []byte("MZ executable bytes"), "application/pdf")
		assert.False(t, result.Valid)
		assert.Contains(t, result.Error, "spoofing")
	})

	t.Run("rejects files with no extension", func(t *testing.T) {
		result := security.ValidateResumeFile("resume", []byte("%PDF-1.7"), "application/pdf")
		assert.False(t, result.Valid)
	})

	t.Run("rejects oversized files", func(t *testing.T) {
		data := append([]byte("%PDF"), bytes.Repeat([]byte{0x20}, security.MaxResumeSize)...)
		result := security.ValidateResumeFile("resume.pdf", data, "application/pdf")
		assert.False(t, result.Valid)
		assert.Contains(t, result.Error, "5MB")
	})

	t.Run("rejects unexpected mime types", func(t *testing.T) {
		result := security.ValidateResumeFile("resume.pdf", []byte("%PDF-1.7"), "text/html")
		assert.False(t, result.Valid)
	})
}

func TestMaskEmail(t *testing.T) {
	assert.Equal(t, "j***@example.com", security.MaskEmail("john@example.com"))
	assert.Equal(t, "***", security.MaskEmail("a"))
}

func TestHashValue(t *testing.T) {
	first := security.HashValue("user1")
	second := security.HashValue("user1")
	assert.Equal(t, first, second)
	assert.NotEqual(t, first, security.HashValue("user2"))
	assert.Len(t, first, 16)
}
