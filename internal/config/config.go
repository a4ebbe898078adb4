package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	Port     string
	LogLevel string

	// OpenAI-compatible provider
	OpenAIAPIKey  string
	OpenAIModel   string
	OpenAIBaseURL string

	// Staging
	UploadFolder string
	ImageFolder  string

	// Upload limits
	MaxFileSize       int64
	AllowedExtensions map[string]bool

	// Pipeline
	RasterDPI        float64
	SchemaVariant    string
	ValidateAnalysis bool

	// S3
	S3Endpoint        string
	S3AccessKeyID     string
	S3SecretAccessKey string
	S3BucketName      string
	S3UseSSL          bool

	// Menu fetcher
	MenuPrefix string
	MenusDir   string
}

// Load reads the server configuration. OPENAI_API_KEY is required.
func Load() (*Config, error) {
	cfg, err := load()
	if err != nil {
		return nil, err
	}

	if cfg.OpenAIAPIKey == "" {
		return nil, fmt.Errorf("OPENAI_API_KEY is required")
	}

	return cfg, nil
}

// LoadFetcher reads the configuration for the menu fetcher. Only the
// object store settings are required.
func LoadFetcher() (*Config, error) {
	cfg, err := load()
	if err != nil {
		return nil, err
	}

	if cfg.S3BucketName == "" {
		return nil, fmt.Errorf("S3_BUCKET_NAME is required")
	}

	return cfg, nil
}

func load() (*Config, error) {
	_ = godotenv.Load()

	maxMB, err := strconv.ParseInt(getEnv("MAX_UPLOAD_MB", "16"), 10, 64)
	if err != nil || maxMB <= 0 {
		return nil, fmt.Errorf("invalid MAX_UPLOAD_MB: %q", os.Getenv("MAX_UPLOAD_MB"))
	}

	dpi, err := strconv.ParseFloat(getEnv("RASTER_DPI", "72"), 64)
	if err != nil || dpi <= 0 {
		return nil, fmt.Errorf("invalid RASTER_DPI: %q", os.Getenv("RASTER_DPI"))
	}

	variant := strings.ToLower(getEnv("SCHEMA_VARIANT", "structured"))
	if variant != "structured" && variant != "freeform" {
		return nil, fmt.Errorf("invalid SCHEMA_VARIANT: %q", variant)
	}

	root := stagingRoot()

	cfg := &Config{
		Port:              getEnv("PORT", "8080"),
		LogLevel:          getEnv("LOG_LEVEL", "info"),
		OpenAIAPIKey:      getEnv("OPENAI_API_KEY", ""),
		OpenAIModel:       getEnv("OPENAI_MODEL", "gpt-4o"),
		OpenAIBaseURL:     getEnv("OPENAI_BASE_URL", ""),
		UploadFolder:      filepath.Join(root, getEnv("UPLOAD_FOLDER", "uploads")),
		ImageFolder:       filepath.Join(root, getEnv("IMAGE_FOLDER", "extracted_images")),
		MaxFileSize:       maxMB << 20,
		AllowedExtensions: map[string]bool{"pdf": true},
		RasterDPI:         dpi,
		SchemaVariant:     variant,
		ValidateAnalysis:  getEnv("VALIDATE_ANALYSIS", "true") != "false",
		S3Endpoint:        getEnv("S3_ENDPOINT", "localhost:9000"),
		S3AccessKeyID:     getEnv("S3_ACCESS_KEY_ID", "minioadmin"),
		S3SecretAccessKey: getEnv("S3_SECRET_ACCESS_KEY", "minioadmin"),
		S3BucketName:      getEnv("S3_BUCKET_NAME", "menus"),
		S3UseSSL:          getEnv("S3_USE_SSL", "false") == "true",
		MenuPrefix:        getEnv("MENU_PREFIX", "happyHourMenu/"),
		MenusDir:          getEnv("MENUS_DIR", "menus"),
	}

	return cfg, nil
}

// stagingRoot is STAGING_ROOT if set. Serverless deployments (VERCEL) only
// have a writable temp dir, so default there; otherwise the working dir.
func stagingRoot() string {
	if root := os.Getenv("STAGING_ROOT"); root != "" {
		return root
	}
	if os.Getenv("VERCEL") != "" {
		return os.TempDir()
	}
	return ""
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
