package models

import (
	"io"
	"time"
)

type UploadRequest struct {
	File     io.Reader
	Filename string
}

// UploadResponse is returned on success. Analysis holds the model's JSON
// text verbatim; callers parse it themselves.
type UploadResponse struct {
	Message  string `json:"message"`
	Filename string `json:"filename"`
	Analysis string `json:"analysis"`
}

type HealthResponse struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
}
