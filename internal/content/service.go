// Package content manages BinaryContent blobs: profile images and message
// attachments. Blobs are immutable; the delete operation exists for the
// owner cascades in the user, message and channel services.
package content

import (
	"context"
	"log/slog"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"parley/infrastructure"
	"parley/internal/entity"
	"parley/internal/storage"
)

var validate = validator.New()

// CreateRequest describes a blob to store. It is also embedded in user and
// message creation requests for profile images and attachments.
type CreateRequest struct {
	FileName    string `validate:"required"`
	ContentType string `validate:"required"`
	Data        []byte `validate:"required"`
}

type Service struct {
	contents storage.BinaryContentRepository
	logger   *slog.Logger
}

func NewService(store *storage.Container, logger *slog.Logger) *Service {
	return &Service{contents: store.Contents, logger: logger}
}

func (s *Service) Create(ctx context.Context, req CreateRequest) (entity.BinaryContent, error) {
	if err := validate.Struct(req); err != nil {
		return entity.BinaryContent{}, infrastructure.InvalidOperation("invalid binary content: %v", err)
	}
	return s.contents.Save(entity.NewBinaryContent(req.FileName, req.ContentType, req.Data))
}

func (s *Service) Find(ctx context.Context, id uuid.UUID) (entity.BinaryContent, error) {
	return s.contents.FindByID(id)
}

func (s *Service) FindAllByIDIn(ctx context.Context, ids []uuid.UUID) ([]entity.BinaryContent, error) {
	return s.contents.FindAllByIDIn(ids)
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.contents.DeleteByID(id)
}
