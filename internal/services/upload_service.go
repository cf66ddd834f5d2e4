package services

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/google/uuid"

	"farmtech/internal/storage"
)

const (
	UploadFolder   = "agricultural-equipment"
	MaxUploadBytes = 2 << 20
)

var (
	ErrNotImage = errors.New("only image files are allowed")
	ErrTooLarge = errors.New("image must be less than 2 MB")
)

var reUnsafe = regexp.MustCompile(`[^A-Za-z0-9_-]+`)

type UploadService struct {
	Store storage.Uploader
	// NewID is overridable in tests.
	NewID func() string
}

// Upload checks that body is an image of acceptable size and stores it under
// agricultural-equipment/<uuid>-<base><ext>.
func (s *UploadService) Upload(ctx context.Context, filename string, body []byte) (string, error) {
	if len(body) > MaxUploadBytes {
		return "", ErrTooLarge
	}
	ct := http.DetectContentType(body)
	if !strings.HasPrefix(ct, "image/") {
		return "", ErrNotImage
	}

	newID := s.NewID
	if newID == nil {
		newID = uuid.NewString
	}
	url, err := s.Store.Put(ctx, objectKey(newID(), filename), body, ct)
	if err != nil {
		return "", fmt.Errorf("store upload: %w", err)
	}
	return url, nil
}

func objectKey(id, filename string) string {
	name := filepath.Base(filename)
	ext := filepath.Ext(name)
	base := reUnsafe.ReplaceAllString(strings.TrimSuffix(name, ext), "-")
	if ext != "" {
		ext = strings.ToLower(reUnsafe.ReplaceAllString(ext[1:], ""))
		if ext != "" {
			ext = "." + ext
		}
	}
	if base == "" || base == "-" {
		base = "image"
	}
	return fmt.Sprintf("%s/%s-%s%s", UploadFolder, id, base, ext)
}
