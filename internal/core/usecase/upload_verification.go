package usecase

import (
	"context"
	"fmt"

	"listing-service/internal/contextkeys"
	"listing-service/internal/core/domain"
	"listing-service/internal/core/port"

	"github.com/google/uuid"
)

// verificationNamespace - префикс blob-хранилища для документов верификации
const verificationNamespace = "verification_documents"

// UploadVerificationUseCase сохраняет документ верификации пользователя.
// Статус документа всегда pending - его меняет только модерация.
type UploadVerificationUseCase struct {
	users port.UserStoragePort
	files port.FileStoragePort
}

func NewUploadVerificationUseCase(users port.UserStoragePort, files port.FileStoragePort) *UploadVerificationUseCase {
	return &UploadVerificationUseCase{users: users, files: files}
}

func (uc *UploadVerificationUseCase) Execute(ctx context.Context, identity *domain.Identity, documentType string, file port.UploadedFile) (*domain.VerificationDocument, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	ucLogger := logger.WithFields(port.Fields{
		"use_case":      "UploadVerification",
		"user_id":       identity.UserID.String(),
		"document_type": documentType,
	})

	ucLogger.Info("Use case started", nil)

	url, err := uc.files.SaveFile(ctx, verificationNamespace, file.Filename, file.Content)
	if err != nil {
		ucLogger.Error("Failed to store document file", err, nil)
		return nil, fmt.Errorf("failed to store verification document: %w", err)
	}

	doc := &domain.VerificationDocument{
		ID:           uuid.New(),
		UserID:       identity.UserID,
		DocumentType: documentType,
		FileURL:      url,
		Status:       domain.DocumentStatusPending,
	}

	if err := uc.users.CreateVerificationDocument(ctx, doc); err != nil {
		ucLogger.Error("Storage returned an error during document create", err, nil)
		return nil, fmt.Errorf("failed to create verification document: %w", err)
	}

	ucLogger.Info("Use case finished successfully", port.Fields{"document_id": doc.ID.String()})
	return doc, nil
}
