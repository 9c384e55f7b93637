package main

import (
	"context"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"eventvenue/internal/config"
	"eventvenue/internal/domain/upload"
	"eventvenue/internal/middleware"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	store, err := newStore(context.Background(), cfg)
	if err != nil {
		log.Fatal(err)
	}

	uploadService := upload.NewService(upload.Config{
		UploadRoot:    cfg.UploadDirectory,
		PublicBaseURL: cfg.BackendURL,
	}, store)
	uploadHandler := upload.NewHandler(uploadService)

	r := gin.New()
	r.Use(gin.Logger(), middleware.ErrorLogger(), middleware.CORS(cfg.CORSAllowedOrigins))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// stored files are served back under the same /uploads prefix the URLs use
	if cfg.StorageDriver == config.DriverDisk {
		r.Static("/uploads", cfg.UploadDirectory)
	}

	v1 := r.Group("/api/v1")
	upload.RegisterRoutes(v1, uploadHandler)

	log.Printf("listening on :%s", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatal(err)
	}
}

func newStore(ctx context.Context, cfg *config.Config) (upload.Store, error) {
	if cfg.StorageDriver != config.DriverS3 {
		return upload.NewDiskStore(cfg.UploadDirectory), nil
	}
	return upload.NewS3Store(ctx, upload.S3Options{
		Endpoint:  cfg.S3.Endpoint,
		Region:    cfg.S3.Region,
		Bucket:    cfg.S3.Bucket,
		AccessKey: cfg.S3.AccessKey,
		SecretKey: cfg.S3.SecretKey,
		Prefix:    cfg.UploadDirectory,
	})
}
