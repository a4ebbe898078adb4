package services

import (
	"context"
	"errors"
	"net/http"

	"github.com/BerylCAtieno/happyhour-menu-api/internal/analyzer"
	"github.com/BerylCAtieno/happyhour-menu-api/internal/config"
	"github.com/BerylCAtieno/happyhour-menu-api/internal/extractor"
	"github.com/BerylCAtieno/happyhour-menu-api/internal/models"
	"github.com/BerylCAtieno/happyhour-menu-api/internal/utils"
	"github.com/BerylCAtieno/happyhour-menu-api/internal/workspace"
)

const successMessage = "File uploaded, images extracted and analyzed successfully"

type AnalysisService interface {
	ProcessUpload(ctx context.Context, req *models.UploadRequest) (*models.UploadResponse, error)
}

type Options struct {
	Variant          models.SchemaVariant
	ValidateAnalysis bool
}

type analysisService struct {
	workspace  *workspace.Manager
	rasterizer extractor.Rasterizer
	analyzer   analyzer.Analyzer
	opts       Options
	logger     *utils.Logger
}

func NewService(ws *workspace.Manager, rasterizer extractor.Rasterizer, llm analyzer.Analyzer, opts Options, logger *utils.Logger) AnalysisService {
	return &analysisService{
		workspace:  ws,
		rasterizer: rasterizer,
		analyzer:   llm,
		opts:       opts,
		logger:     logger,
	}
}

// NewServiceFromConfig wires the production rasterizer and analyzer.
func NewServiceFromConfig(cfg *config.Config, logger *utils.Logger) AnalysisService {
	variant := models.SchemaVariant(cfg.SchemaVariant)

	ws := workspace.NewManager(cfg.UploadFolder, cfg.ImageFolder, logger)
	rasterizer := extractor.NewRasterizer(cfg.RasterDPI, logger)
	llm := analyzer.NewOpenAIAnalyzer(cfg.OpenAIAPIKey, cfg.OpenAIBaseURL, cfg.OpenAIModel, variant, logger)

	return NewService(ws, rasterizer, llm, Options{
		Variant:          variant,
		ValidateAnalysis: cfg.ValidateAnalysis,
	}, logger)
}

// ProcessUpload stages the upload, rasterizes it, asks the model for an
// analysis and always removes the staged artifacts before returning.
func (s *analysisService) ProcessUpload(ctx context.Context, req *models.UploadRequest) (*models.UploadResponse, error) {
	if err := s.workspace.EnsureDirectories(); err != nil {
		s.logger.Error("Failed to prepare staging directories", "error", err)
		return nil, pipelineError(err)
	}

	doc := s.workspace.NewDocument(req.Filename)
	logger := s.logger.With("document_id", doc.ID, "filename", req.Filename)

	// Cleanup errors are logged by the workspace and never change the result.
	defer s.workspace.Cleanup(doc)

	if err := s.workspace.SaveUpload(doc, req.File); err != nil {
		logger.Error("Failed to save upload", "error", err)
		return nil, pipelineError(err)
	}

	pages, err := s.rasterizer.ExtractImages(ctx, doc.UploadPath, doc.ImageDir)
	if err != nil {
		logger.Error("Failed to extract images", "error", err)
		return nil, pipelineError(err)
	}

	analysis, err := s.analyzer.Analyze(ctx, pages)
	if err != nil {
		logger.Error("Failed to analyze images", "error", err)
		return nil, pipelineError(err)
	}

	if s.opts.ValidateAnalysis {
		result, err := models.ParseAnalysis(analysis, s.opts.Variant)
		if err != nil {
			logger.Error("Model output does not match schema", "error", err)
			return nil, pipelineError(utils.NewUpstreamError("Model output does not match schema", err))
		}
		logger.Info("Menu analyzed", "pages", len(pages), "sessions", len(result.HappyHours))
	} else {
		logger.Info("Menu analyzed", "pages", len(pages))
	}
	logger.Debug("Analysis result", "analysis", analysis)

	return &models.UploadResponse{
		Message:  successMessage,
		Filename: doc.Filename,
		Analysis: analysis,
	}, nil
}

// pipelineError turns any stage failure into the single 500 the client
// sees, "Error processing file: <detail>". The stage's error kind is kept.
func pipelineError(err error) error {
	appErr := &utils.AppError{
		StatusCode: http.StatusInternalServerError,
		Message:    "Error processing file",
		Err:        err,
	}
	var cause *utils.AppError
	if errors.As(err, &cause) {
		appErr.Kind = cause.Kind
	}
	return appErr
}
