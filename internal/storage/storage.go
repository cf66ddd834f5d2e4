// Package storage puts uploaded listing images somewhere they can be served
// from: an S3-compatible bucket or the local media directory.
package storage

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"

	"farmtech/internal/config"
)

// Uploader stores body under key and returns the public URL.
type Uploader interface {
	Put(ctx context.Context, key string, body []byte, contentType string) (string, error)
}

// New picks S3 when a bucket is configured, local disk otherwise.
func New(cfg config.Config) (Uploader, error) {
	if cfg.S3.Bucket == "" {
		return NewLocal(cfg.MediaDir), nil
	}
	return NewS3(cfg.S3)
}

type S3 struct {
	client    *s3.S3
	bucket    string
	publicURL string
}

func NewS3(c config.S3) (*S3, error) {
	awsCfg := &aws.Config{Region: aws.String(c.Region)}
	if c.Endpoint != "" {
		awsCfg.Endpoint = aws.String(c.Endpoint)
		awsCfg.S3ForcePathStyle = aws.Bool(true)
	}
	if c.AccessKey != "" {
		awsCfg.Credentials = credentials.NewStaticCredentials(c.AccessKey, c.SecretKey, "")
	}
	sess, err := session.NewSession(awsCfg)
	if err != nil {
		return nil, fmt.Errorf("s3 session: %w", err)
	}

	pub := strings.TrimRight(c.PublicURL, "/")
	if pub == "" {
		pub = fmt.Sprintf("https://%s.s3.%s.amazonaws.com", c.Bucket, c.Region)
	}
	return &S3{client: s3.New(sess), bucket: c.Bucket, publicURL: pub}, nil
}

func (u *S3) Put(ctx context.Context, key string, body []byte, contentType string) (string, error) {
	_, err := u.client.PutObjectWithContext(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(u.bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(body),
		ContentLength: aws.Int64(int64(len(body))),
		ContentType:   aws.String(contentType),
		ACL:           aws.String("public-read"),
	})
	if err != nil {
		return "", fmt.Errorf("unable to upload file to S3: %w", err)
	}
	return u.publicURL + "/" + key, nil
}

// Local writes into dir; files are served by the app under /media/.
type Local struct {
	dir string
}

func NewLocal(dir string) *Local { return &Local{dir: dir} }

func (u *Local) Put(_ context.Context, key string, body []byte, _ string) (string, error) {
	clean := filepath.Clean("/" + key)
	dst := filepath.Join(u.dir, clean)
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return "", err
	}
	if err := os.WriteFile(dst, body, 0o644); err != nil {
		return "", err
	}
	return "/media" + filepath.ToSlash(clean), nil
}
