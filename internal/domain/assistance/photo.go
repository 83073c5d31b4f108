package assistance

import (
	"fmt"
	"time"
)

// Photo is one piece of completion evidence: a stored image referenced by
// path, with the sniffed content type and size kept for serving.
type Photo struct {
	id           uint
	assistanceID uint
	storagePath  string
	contentType  string
	sizeBytes    int64
	uploadedAt   time.Time
}

func NewPhoto(assistanceID uint, storagePath, contentType string, sizeBytes int64, now time.Time) (*Photo, error) {
	if assistanceID == 0 {
		return nil, fmt.Errorf("assistance ID is required")
	}
	if len(storagePath) == 0 {
		return nil, fmt.Errorf("storage path is required")
	}
	if len(contentType) == 0 {
		return nil, fmt.Errorf("content type is required")
	}
	if sizeBytes <= 0 {
		return nil, fmt.Errorf("photo size must be positive")
	}

	return &Photo{
		assistanceID: assistanceID,
		storagePath:  storagePath,
		contentType:  contentType,
		sizeBytes:    sizeBytes,
		uploadedAt:   now.UTC(),
	}, nil
}

func ReconstructPhoto(id, assistanceID uint, storagePath, contentType string, sizeBytes int64, uploadedAt time.Time) *Photo {
	return &Photo{
		id:           id,
		assistanceID: assistanceID,
		storagePath:  storagePath,
		contentType:  contentType,
		sizeBytes:    sizeBytes,
		uploadedAt:   uploadedAt,
	}
}

func (p *Photo) ID() uint              { return p.id }
func (p *Photo) AssistanceID() uint    { return p.assistanceID }
func (p *Photo) StoragePath() string   { return p.storagePath }
func (p *Photo) ContentType() string   { return p.contentType }
func (p *Photo) SizeBytes() int64      { return p.sizeBytes }
func (p *Photo) UploadedAt() time.Time { return p.uploadedAt }

func (p *Photo) SetID(id uint) error {
	if p.id != 0 {
		return fmt.Errorf("photo ID is already set")
	}
	p.id = id
	return nil
}
