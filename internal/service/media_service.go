package service

import (
	"context"
	"strings"
	"time"

	"github.com/localscoop/escoop-backend/internal/common"
	"github.com/localscoop/escoop-backend/internal/domain"
	"github.com/localscoop/escoop-backend/pkg/storage"
)

// Upload constraints. Images upload straight to object storage; the API
// only hands out pre-signed URLs.
const (
	MaxUploadSize = 10 << 20 // 10 MiB
	UploadExpiry  = 15 * time.Minute
)

var allowedContentTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/gif":  true,
	"image/webp": true,
}

// PresignRequest is the request body for a pre-signed upload
type PresignRequest struct {
	Filename    string `json:"filename" binding:"required"`
	ContentType string `json:"content_type" binding:"required"`
	Size        int64  `json:"size" binding:"required,min=1"`
	Kind        string `json:"kind"`
	LocalID     string `json:"local_id"`
}

// PresignResult is the pre-signed upload plus the image reference the
// client should carry once the upload finishes
type PresignResult struct {
	Upload   *storage.PresignedUpload `json:"upload"`
	ImageRef domain.ImageRef          `json:"image_ref"`
	CDNURL   string                   `json:"cdn_url"`
}

// MediaService hands out pre-signed upload URLs and resolves pending
// image references once their uploads complete
type MediaService interface {
	PresignUpload(ctx context.Context, req *PresignRequest) (*PresignResult, error)
	ResolveImage(ref domain.ImageRef, key string) domain.ImageRef
	Delete(ctx context.Context, key string) error
}

type mediaService struct {
	storage *storage.S3Client
}

// NewMediaService creates a new MediaService
func NewMediaService(s3 *storage.S3Client) MediaService {
	return &mediaService{storage: s3}
}

// PresignUpload validates the upload and returns a time-limited PUT URL.
// The kind selects the storage prefix: banners, editorials, arts-groups,
// and everything else lands under uploads/.
func (s *mediaService) PresignUpload(ctx context.Context, req *PresignRequest) (*PresignResult, error) {
	if !allowedContentTypes[req.ContentType] {
		return nil, common.ErrInvalidInput
	}
	if req.Size <= 0 || req.Size > MaxUploadSize {
		return nil, common.ErrInvalidInput
	}
	filename := strings.TrimSpace(req.Filename)
	if filename == "" || strings.ContainsAny(filename, "/\\") {
		return nil, common.ErrInvalidInput
	}

	key := storage.GenerateKey(prefixForKind(req.Kind), filename)
	upload, err := s.storage.PresignUpload(ctx, key, req.ContentType, req.Size, UploadExpiry)
	if err != nil {
		return nil, err
	}

	ref := domain.PendingImage(req.LocalID).Resolve(upload.Key)
	return &PresignResult{
		Upload:   upload,
		ImageRef: ref,
		CDNURL:   s.storage.GetCDNURL(upload.Key),
	}, nil
}

// ResolveImage converts a pending reference to a persisted one
func (s *mediaService) ResolveImage(ref domain.ImageRef, key string) domain.ImageRef {
	return ref.Resolve(key)
}

// Delete removes an uploaded object
func (s *mediaService) Delete(ctx context.Context, key string) error {
	return s.storage.Delete(ctx, key)
}

func prefixForKind(kind string) string {
	switch kind {
	case "banner":
		return "banners"
	case "editorial":
		return "editorials"
	case "arts-group":
		return "arts-groups"
	default:
		return "uploads"
	}
}
