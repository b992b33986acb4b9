package receipts

import (
	"context"
	"strings"

	"plugevents/pkg/logger"
)

type Service interface {
	Record(ctx context.Context, receipt Receipt) error
	ListByEmail(ctx context.Context, email string) ([]Receipt, error)
}

type service struct {
	repo   Repository
	logger *logger.Logger
}

func NewService(repo Repository) Service {
	return &service{
		repo:   repo,
		logger: logger.GetDefault(),
	}
}

// Record appends a receipt. ErrDuplicateReceipt signals the reference was
// already recorded and callers may treat it as success.
func (s *service) Record(ctx context.Context, receipt Receipt) error {
	receipt.PurchaseDate = receipt.PurchaseDate.UTC()
	receipt.Email = strings.TrimSpace(receipt.Email)
	if err := s.repo.Append(ctx, receipt); err != nil {
		return err
	}

	s.logger.LogReceiptStored(ctx, receipt.Reference, receipt.EventID, receipt.Quantity)
	return nil
}

func (s *service) ListByEmail(ctx context.Context, email string) ([]Receipt, error) {
	return s.repo.ListByEmail(ctx, strings.TrimSpace(email))
}
