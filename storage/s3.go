package storage

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3manager"
)

// Media lives in an S3-compatible bucket (DigitalOcean Spaces). Configured
// via SPACES_KEY, SPACES_SECRET, SPACES_BUCKET, SPACES_REGION and an
// optional SPACES_ENDPOINT override.

var (
	s3Client *s3.S3
	uploader *s3manager.Uploader
	bucket   string
	cdnBase  string
)

func InitializeS3() {
	key := os.Getenv("SPACES_KEY")
	secret := os.Getenv("SPACES_SECRET")
	bucket = os.Getenv("SPACES_BUCKET")
	region := os.Getenv("SPACES_REGION")
	if region == "" {
		region = "lon1"
	}
	endpoint := os.Getenv("SPACES_ENDPOINT")
	if endpoint == "" {
		endpoint = fmt.Sprintf("https://%s.digitaloceanspaces.com", region)
	}

	if key == "" || secret == "" || bucket == "" {
		log.Println("Warning: Spaces credentials not set, media uploads are disabled")
		return
	}

	sess, err := session.NewSession(&aws.Config{
		Region:      aws.String(region),
		Endpoint:    aws.String(endpoint),
		Credentials: credentials.NewStaticCredentials(key, secret, ""),
	})
	if err != nil {
		log.Panic("error creating Spaces session: " + err.Error())
	}

	s3Client = s3.New(sess)
	uploader = s3manager.NewUploader(sess)

	cdnBase = os.Getenv("SPACES_CDN_BASE")
	if cdnBase == "" {
		cdnBase = fmt.Sprintf("https://%s.%s.digitaloceanspaces.com", bucket, region)
	}
}

// UploadObject stores raw bytes under the given key and returns the key.
func UploadObject(key string, data []byte, contentType string) (string, error) {
	if uploader == nil {
		return "", fmt.Errorf("media storage not configured")
	}
	_, err := uploader.Upload(&s3manager.UploadInput{
		Bucket:      aws.String(bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
		ACL:         aws.String("public-read"),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload %s: %w", key, err)
	}
	return key, nil
}

// UploadBase64 decodes a base64 payload (with or without a data: prefix),
// detects the content type and stores it under keyPrefix.
func UploadBase64(base64Src, keyPrefix string) (string, error) {
	if base64Src == "" {
		return "", fmt.Errorf("empty payload")
	}
	payload := base64Src
	if i := strings.Index(base64Src, ","); i != -1 {
		payload = base64Src[i+1:]
	}
	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return "", fmt.Errorf("invalid base64 payload: %w", err)
	}
	contentType := http.DetectContentType(data)
	ext := "bin"
	switch contentType {
	case "image/jpeg":
		ext = "jpg"
	case "image/png":
		ext = "png"
	case "image/webp":
		ext = "webp"
	case "video/mp4":
		ext = "mp4"
	}
	key := fmt.Sprintf("%s/%d.%s", keyPrefix, time.Now().UnixNano(), ext)
	return UploadObject(key, data, contentType)
}

// DeleteObject removes the object stored under key.
func DeleteObject(key string) error {
	if s3Client == nil {
		return fmt.Errorf("media storage not configured")
	}
	_, err := s3Client.DeleteObject(&s3.DeleteObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("failed to delete %s: %w", key, err)
	}
	return nil
}

// ObjectURL returns the public URL for a stored key.
func ObjectURL(key string) string {
	if key == "" {
		return ""
	}
	return cdnBase + "/" + key
}
