package storage

import (
	"bytes"
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/ClinicFlowBR/clinicflow/internal/config"
)

// ======================================================
// Armazenamento de imagens (fotos de perfil, logo)
// ======================================================

// Uploader sobe imagens já normalizadas para o bucket e devolve a URL
// pública. As chaves são determinísticas, então um novo upload do mesmo
// dono substitui o anterior.
type Uploader struct {
	client  *s3.Client
	bucket  string
	baseURL string
}

func NewUploader(cfg *config.Config) *Uploader {
	client := s3.New(s3.Options{
		Region: cfg.S3Region,
		Credentials: credentials.NewStaticCredentialsProvider(
			cfg.S3AccessKey, cfg.S3SecretKey, "",
		),
	})
	return &Uploader{
		client:  client,
		bucket:  cfg.S3Bucket,
		baseURL: cfg.S3BaseURL,
	}
}

// UploadUserPhoto grava a foto de perfil em avatars/<userID>.webp.
func (u *Uploader) UploadUserPhoto(ctx context.Context, userID string, data []byte) (string, error) {
	return u.put(ctx, fmt.Sprintf("avatars/%s.webp", userID), data)
}

// UploadClinicLogo grava o logo da clínica em branding/logo.webp.
func (u *Uploader) UploadClinicLogo(ctx context.Context, data []byte) (string, error) {
	return u.put(ctx, "branding/logo.webp", data)
}

func (u *Uploader) put(ctx context.Context, key string, data []byte) (string, error) {
	normalized, err := normalizeImage(data)
	if err != nil {
		return "", err
	}

	_, err = u.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(u.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(normalized),
		ContentType: aws.String("image/webp"),
	})
	if err != nil {
		return "", fmt.Errorf("upload %s: %w", key, err)
	}

	return fmt.Sprintf("%s/%s", u.baseURL, key), nil
}
