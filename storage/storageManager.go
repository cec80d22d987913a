package storage

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"

	"pitboxBackend/config"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3manager"
	"github.com/charmbracelet/log"
)

type (
	// StorageManager stores uploaded photo blobs and hands back the public
	// URL they will be served under. Keys are opaque file names chosen by
	// the photo service.
	StorageManager interface {
		Save(key string, data []byte, mimeType string) (string, error)
		Delete(key string) error
		PublicUrl(key string) string
		// ServeDirectory returns the local directory to mount as a static
		// file route, or false when blobs are served remotely.
		ServeDirectory() (string, bool)
	}

	diskStorage struct {
		directory     string
		publicBaseUrl string
	}

	s3Storage struct {
		bucket        string
		publicBaseUrl string
		s3Client      *s3.S3
	}
)

func CreateStorageManager(config *config.PitboxConfig) StorageManager {
	baseUrl := strings.TrimSuffix(config.Storage.PublicBaseUrl, "/")

	if config.Storage.Type == "s3" {
		awsSession, err := session.NewSession(&aws.Config{
			Region:      aws.String(config.Storage.S3Region),
			Endpoint:    aws.String(config.Storage.S3Endpoint),
			Credentials: credentials.NewStaticCredentials(os.Getenv("PB_S3_KEY"), os.Getenv("PB_S3_SECRET"), ""),
		})
		if err != nil {
			log.Fatalf("Failed to create S3 session: %s", err.Error())
			os.Exit(1)
		}

		return &s3Storage{
			bucket:        config.Storage.S3Bucket,
			publicBaseUrl: baseUrl,
			s3Client:      s3.New(awsSession),
		}
	}

	if err := os.MkdirAll(config.Storage.DiskDirectory, 0755); err != nil {
		log.Fatalf("Failed to create storage directory: %s", err.Error())
		os.Exit(1)
	}

	return &diskStorage{
		directory:     config.Storage.DiskDirectory,
		publicBaseUrl: baseUrl,
	}
}

func (s *diskStorage) Save(key string, data []byte, mimeType string) (string, error) {
	if err := os.WriteFile(filepath.Join(s.directory, key), data, 0644); err != nil {
		return "", err
	}

	return s.PublicUrl(key), nil
}

func (s *diskStorage) Delete(key string) error {
	err := os.Remove(filepath.Join(s.directory, key))
	if os.IsNotExist(err) {
		return nil
	}

	return err
}

func (s *diskStorage) PublicUrl(key string) string {
	return s.publicBaseUrl + "/" + key
}

func (s *diskStorage) ServeDirectory() (string, bool) {
	return s.directory, true
}

func (s *s3Storage) Save(key string, data []byte, mimeType string) (string, error) {
	uploader := s3manager.NewUploaderWithClient(s.s3Client)
	_, err := uploader.Upload(&s3manager.UploadInput{
		Bucket:      &s.bucket,
		Key:         aws.String(key),
		ContentType: &mimeType,
		Body:        bytes.NewReader(data),
	})
	if err != nil {
		return "", err
	}

	return s.PublicUrl(key), nil
}

func (s *s3Storage) Delete(key string) error {
	_, err := s.s3Client.DeleteObject(&s3.DeleteObjectInput{
		Bucket: &s.bucket,
		Key:    aws.String(key),
	})

	return err
}

func (s *s3Storage) PublicUrl(key string) string {
	return s.publicBaseUrl + "/" + key
}

func (s *s3Storage) ServeDirectory() (string, bool) {
	return "", false
}
