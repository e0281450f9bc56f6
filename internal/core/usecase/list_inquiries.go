package usecase

import (
	"context"

	"listing-service/internal/contextkeys"
	"listing-service/internal/core/domain"
	"listing-service/internal/core/port"
)

type ListInquiriesUseCase struct {
	storage port.PropertyStoragePort
}

func NewListInquiriesUseCase(storage port.PropertyStoragePort) *ListInquiriesUseCase {
	return &ListInquiriesUseCase{storage: storage}
}

func (uc *ListInquiriesUseCase) Execute(ctx context.Context, filters domain.InquiryFilters, limit, offset int) (*domain.PaginatedInquiries, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	ucLogger := logger.WithFields(port.Fields{
		"use_case": "ListInquiries",
		"limit":    limit,
		"offset":   offset,
	})

	result, err := uc.storage.FindInquiries(ctx, filters, limit, offset)
	if err != nil {
		ucLogger.Error("Storage returned an error", err, nil)
		return nil, err
	}

	ucLogger.Info("Inquiries listed", port.Fields{"total_found": result.TotalCount})
	return result, nil
}
