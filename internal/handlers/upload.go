package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/BerylCAtieno/happyhour-menu-api/internal/models"
	"github.com/BerylCAtieno/happyhour-menu-api/internal/services"
	"github.com/BerylCAtieno/happyhour-menu-api/internal/utils"
)

const formField = "file"

type UploadHandler struct {
	service     services.AnalysisService
	maxFileSize int64
	allowed     map[string]bool
	logger      *utils.Logger
}

func NewUploadHandler(service services.AnalysisService, maxFileSize int64, allowed map[string]bool, logger *utils.Logger) *UploadHandler {
	return &UploadHandler{
		service:     service,
		maxFileSize: maxFileSize,
		allowed:     allowed,
		logger:      logger,
	}
}

func (h *UploadHandler) Upload(w http.ResponseWriter, r *http.Request) {
	// Check Content-Length header first to reject oversized requests early
	if r.ContentLength > h.maxFileSize {
		respondError(h.logger, w, h.tooLarge())
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, h.maxFileSize)

	if err := r.ParseMultipartForm(h.maxFileSize); err != nil {
		if isTooLarge(err) {
			respondError(h.logger, w, h.tooLarge())
			return
		}
		respondError(h.logger, w, utils.NewBadRequestError("No file provided"))
		return
	}

	file, header, err := r.FormFile(formField)
	if err != nil {
		// Browsers send the field with an empty filename when nothing was
		// chosen; multipart parsing files that under Value, not File.
		if _, ok := r.MultipartForm.Value[formField]; ok {
			respondError(h.logger, w, utils.NewBadRequestError("No file selected"))
			return
		}
		respondError(h.logger, w, utils.NewBadRequestError("No file provided"))
		return
	}
	defer file.Close()

	if header.Filename == "" {
		respondError(h.logger, w, utils.NewBadRequestError("No file selected"))
		return
	}

	if !utils.AllowedFile(header.Filename, h.allowed) {
		respondError(h.logger, w, utils.NewBadRequestError("Invalid file type. Only PDF files are allowed"))
		return
	}

	h.logger.Info("File upload accepted", "filename", header.Filename, "size", header.Size)

	resp, err := h.service.ProcessUpload(r.Context(), &models.UploadRequest{
		File:     file,
		Filename: header.Filename,
	})
	if err != nil {
		respondError(h.logger, w, err)
		return
	}

	respondJSON(h.logger, w, http.StatusOK, resp)
}

func (h *UploadHandler) tooLarge() error {
	return utils.NewTooLargeError(fmt.Sprintf("File size exceeds %dMB limit", h.maxFileSize>>20))
}

func isTooLarge(err error) bool {
	var maxErr *http.MaxBytesError
	if errors.As(err, &maxErr) {
		return true
	}
	return strings.Contains(err.Error(), "request body too large")
}
