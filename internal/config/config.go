package config

import (
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/joho/godotenv"

	"eventvenue/internal/pkg/validator"
)

const (
	defaultAppEnv          = "dev"
	defaultPort            = "8080"
	defaultUploadDirectory = "uploads"
	defaultStorageDriver   = DriverDisk
	defaultS3Region        = "us-east-1"
)

const (
	DriverDisk = "disk"
	DriverS3   = "s3"
)

type Config struct {
	AppEnv             string
	Port               string `validate:"required,numeric"`
	UploadDirectory    string `validate:"required"`
	BackendURL         string `validate:"required,url"`
	StorageDriver      string `validate:"oneof=disk s3"`
	CORSAllowedOrigins []string
	S3                 S3Config
}

type S3Config struct {
	Endpoint  string `validate:"omitempty,url"`
	Region    string
	Bucket    string
	AccessKey string
	SecretKey string
}

// Load reads .env (if present) and the process environment.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		AppEnv:          strings.ToLower(strings.TrimSpace(getEnv("APP_ENV", defaultAppEnv))),
		Port:            strings.TrimSpace(getEnv("PORT", defaultPort)),
		UploadDirectory: strings.TrimSpace(getEnv("UPLOAD_DIRECTORY", defaultUploadDirectory)),
		BackendURL:      strings.TrimSpace(os.Getenv("BACKEND_URL")),
		StorageDriver:   strings.ToLower(strings.TrimSpace(getEnv("STORAGE_DRIVER", defaultStorageDriver))),
		S3: S3Config{
			Endpoint:  strings.TrimSpace(os.Getenv("S3_ENDPOINT")),
			Region:    strings.TrimSpace(getEnv("S3_REGION", defaultS3Region)),
			Bucket:    strings.TrimSpace(os.Getenv("S3_BUCKET")),
			AccessKey: strings.TrimSpace(os.Getenv("S3_ACCESS_KEY")),
			SecretKey: strings.TrimSpace(os.Getenv("S3_SECRET_KEY")),
		},
	}
	cfg.CORSAllowedOrigins = parseListEnv("CORS_ALLOWED_ORIGINS")

	if err := validateConfig(cfg); err != nil {
		return nil, err
	}

	log.Printf("upload config: env=%s driver=%s upload_dir=%s backend_url=%s", cfg.AppEnv, cfg.StorageDriver, cfg.UploadDirectory, cfg.BackendURL)

	return cfg, nil
}

func validateConfig(cfg *Config) error {
	if errs := validator.Validate(cfg); errs != nil {
		return fmt.Errorf("invalid config: %v", errs)
	}

	if cfg.StorageDriver == DriverS3 {
		if cfg.S3.Bucket == "" {
			return fmt.Errorf("S3_BUCKET must be set when STORAGE_DRIVER=s3")
		}
		if cfg.S3.Region == "" {
			return fmt.Errorf("S3_REGION must not be empty")
		}
		if (cfg.S3.AccessKey == "") != (cfg.S3.SecretKey == "") {
			return fmt.Errorf("S3_ACCESS_KEY and S3_SECRET_KEY must be set together")
		}
	}

	if isProdLike(cfg.AppEnv) && strings.HasPrefix(cfg.BackendURL, "http://localhost") {
		return fmt.Errorf("in prod/release BACKEND_URL must not point at localhost")
	}

	return nil
}

func isProdLike(env string) bool {
	env = strings.ToLower(strings.TrimSpace(env))
	return env == "prod" || env == "production" || env == "release"
}

func parseListEnv(name string) []string {
	var out []string
	for _, v := range strings.Split(os.Getenv(name), ",") {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}

func getEnv(name, fallback string) string {
	if v := os.Getenv(name); v != "" {
		return v
	}
	return fallback
}
