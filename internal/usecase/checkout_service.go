package usecase

import (
	"context"
	"fmt"
	"math"

	"go.uber.org/zap"

	"github.com/ecomart/backend/internal/domain"
	"github.com/ecomart/backend/internal/logger"
)

const defaultCustomer = "guest"

// CheckoutService totals carts, mints receipts and records the carbon saved
type CheckoutService struct {
	catalog domain.CatalogProvider
	minter  *ReceiptMinter
	tracker *SustainabilityTracker
	log     *zap.Logger
}

// NewCheckoutService creates a new checkout service with dependencies
func NewCheckoutService(
	catalog domain.CatalogProvider,
	minter *ReceiptMinter,
	tracker *SustainabilityTracker,
	log *zap.Logger,
) *CheckoutService {
	return &CheckoutService{
		catalog: catalog,
		minter:  minter,
		tracker: tracker,
		log:     logger.OrNop(log),
	}
}

// Summarize resolves cart items against the catalog. Repeated products are
// merged into one line, keeping the position of the first occurrence.
func (s *CheckoutService) Summarize(items []domain.CartItem) (*domain.CartSummary, error) {
	if len(items) == 0 {
		return nil, domain.ErrEmptyCart
	}

	summary := &domain.CartSummary{Lines: []domain.CartLine{}}
	index := make(map[string]int, len(items))
	for _, item := range items {
		if item.Quantity < 1 {
			return nil, fmt.Errorf("%w: quantity %d for product %s", domain.ErrInvalidRequest, item.Quantity, item.ProductID)
		}
		if i, ok := index[item.ProductID]; ok {
			summary.Lines[i].Quantity += item.Quantity
			continue
		}

		p, err := s.catalog.ByID(item.ProductID)
		if err != nil {
			return nil, err
		}
		index[item.ProductID] = len(summary.Lines)
		summary.Lines = append(summary.Lines, domain.CartLine{
			ProductID:           p.ID,
			Name:                p.Name,
			Quantity:            item.Quantity,
			Price:               p.Price,
			SustainabilityScore: p.SustainabilityScore,
			CarbonSaved:         p.CarbonSaved,
		})
	}

	var total, carbon float64
	var scoreSum int
	for _, line := range summary.Lines {
		total += line.Price * float64(line.Quantity)
		carbon += line.CarbonSaved * float64(line.Quantity)
		scoreSum += line.SustainabilityScore
	}
	summary.TotalAmount = roundCents(total)
	summary.TotalCarbonSaved = roundCents(carbon)
	summary.EcoScore = float64(scoreSum) / float64(len(summary.Lines))
	summary.EcoPoints = int(math.Floor(summary.TotalCarbonSaved * 10))

	return summary, nil
}

// Checkout totals the cart, mints its receipt and records the carbon saved.
// A tracker failure is logged but does not undo the receipt.
func (s *CheckoutService) Checkout(ctx context.Context, req domain.CheckoutRequest) (*domain.Receipt, error) {
	summary, err := s.Summarize(req.Items)
	if err != nil {
		return nil, err
	}

	customer := req.Customer
	if customer == "" {
		customer = defaultCustomer
	}

	receipt, err := s.minter.Mint(ctx, customer, *summary)
	if err != nil {
		return nil, err
	}

	if s.tracker != nil {
		if _, err := s.tracker.RecordImpact(ctx, summary.TotalCarbonSaved); err != nil {
			s.log.Warn("failed to record checkout impact",
				zap.String("token_id", receipt.TokenID), zap.Error(err))
		}
	}
	return receipt, nil
}

// VerifyReceipt returns a previously minted receipt
func (s *CheckoutService) VerifyReceipt(ctx context.Context, tokenID string) (*domain.Receipt, error) {
	return s.minter.Verify(ctx, tokenID)
}

func roundCents(v float64) float64 {
	return math.Round(v*100) / 100
}
