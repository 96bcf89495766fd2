package storage

import (
	"context"
	"fmt"
	"path/filepath"
	"time"
)

// ResumeUpload is a raw resume file handed over by the delivery layer.
type ResumeUpload struct {
	Filename    string
	ContentType string
	Data        []byte
	ApplicantID string
	JobID       string
}

// ResumeStore stores resume blobs and returns durable retrieval URLs.
// Upload must complete before any application row is written so a failed
// upload never leaves a resume-required application without its file.
type ResumeStore interface {
	Upload(ctx context.Context, upload ResumeUpload) (string, error)
	Delete(ctx context.Context, url string) error
}

// objectKey builds the stable key scheme shared by both drivers:
// resumes/<applicant>-<job>-<timestamp><ext>
func objectKey(upload ResumeUpload) string {
	ext := filepath.Ext(upload.Filename)
	return fmt.Sprintf("resumes/%s-%s-%d%s",
		upload.ApplicantID, upload.JobID, time.Now().UnixMilli(), ext)
}
