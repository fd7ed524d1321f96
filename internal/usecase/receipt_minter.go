package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math/rand/v2"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/ecomart/backend/internal/domain"
	"github.com/ecomart/backend/internal/logger"
	"github.com/ecomart/backend/internal/metrics"
)

const (
	receiptNetwork      = "polygon-simulated"
	receiptWarranty     = "2 years manufacturer warranty"
	receiptReturnPolicy = "30-day return guarantee"
	receiptKeyPrefix    = "receipt:"
	baseBlockNumber     = 45_000_000
)

// mintStage is one simulated step of receipt minting
type mintStage struct {
	Name     string
	Duration time.Duration
}

var mintStages = []mintStage{
	{"generating metadata", 800 * time.Millisecond},
	{"uploading metadata", 1200 * time.Millisecond},
	{"creating contract", 1000 * time.Millisecond},
	{"broadcasting", 1500 * time.Millisecond},
	{"confirming", 800 * time.Millisecond},
}

// ReceiptConfig holds configuration for the receipt minter
type ReceiptConfig struct {
	// StageDelayScale multiplies every stage duration. Zero skips the delays.
	StageDelayScale float64
	TTL             time.Duration // zero keeps receipts until deleted
}

// ReceiptMinter issues synthetic blockchain-style receipts. Nothing leaves
// the process: every hash and number on a receipt is random.
type ReceiptMinter struct {
	store  domain.CacheRepository
	config ReceiptConfig
	log    *zap.Logger
	now    func() time.Time
}

// NewReceiptMinter creates a new receipt minter
func NewReceiptMinter(store domain.CacheRepository, config ReceiptConfig, log *zap.Logger) *ReceiptMinter {
	if config.StageDelayScale < 0 {
		config.StageDelayScale = 0
	}
	return &ReceiptMinter{
		store:  store,
		config: config,
		log:    logger.OrNop(log),
		now:    time.Now,
	}
}

// Mint runs the minting stages and stores the receipt. Cancelling ctx
// aborts between or during stages and nothing is stored.
func (m *ReceiptMinter) Mint(ctx context.Context, customer string, summary domain.CartSummary) (*domain.Receipt, error) {
	for i, stage := range mintStages {
		if err := m.wait(ctx, stage.Duration); err != nil {
			metrics.IncReceiptMinted("canceled")
			m.log.Info("receipt minting canceled", zap.String("stage", stage.Name), zap.Error(err))
			return nil, err
		}
		m.log.Debug("mint stage complete",
			zap.String("stage", stage.Name),
			zap.Int("step", i+1),
			zap.Int("steps", len(mintStages)))
	}

	receipt := &domain.Receipt{
		ID:              uuid.NewString(),
		TokenID:         "NFT#" + randomString(base36Upper, 9),
		TransactionHash: "0x" + randomString(hexDigits, 64),
		MetadataHash:    "Qm" + randomString(base36Lower, 44),
		BlockNumber:     baseBlockNumber + rand.Int64N(1_000_000),
		GasUsed:         fmt.Sprintf("%.6f", 0.005+rand.Float64()*0.01),
		Network:         receiptNetwork,
		Customer:        customer,
		Summary:         summary,
		Warranty:        receiptWarranty,
		ReturnPolicy:    receiptReturnPolicy,
		MintedAt:        m.now().UTC(),
		Synthetic:       true,
	}

	data, err := json.Marshal(receipt)
	if err != nil {
		return nil, fmt.Errorf("encode receipt: %w", err)
	}
	if err := m.store.Set(ctx, receiptKeyPrefix+receipt.TokenID, data, m.config.TTL); err != nil {
		metrics.IncReceiptMinted("failed")
		return nil, fmt.Errorf("store receipt: %w", err)
	}

	metrics.IncReceiptMinted("ok")
	m.log.Info("receipt minted",
		zap.String("token_id", receipt.TokenID),
		zap.Int64("block", receipt.BlockNumber),
		zap.Float64("total", summary.TotalAmount))
	return receipt, nil
}

// Verify returns the stored receipt for tokenID
func (m *ReceiptMinter) Verify(ctx context.Context, tokenID string) (*domain.Receipt, error) {
	data, err := m.store.Get(ctx, receiptKeyPrefix+tokenID)
	if err != nil {
		if errors.Is(err, domain.ErrCacheMiss) {
			return nil, fmt.Errorf("%w: %s", domain.ErrReceiptNotFound, tokenID)
		}
		return nil, err
	}

	var receipt domain.Receipt
	if err := json.Unmarshal(data, &receipt); err != nil {
		return nil, fmt.Errorf("decode receipt %s: %w", tokenID, err)
	}
	return &receipt, nil
}

func (m *ReceiptMinter) wait(ctx context.Context, d time.Duration) error {
	scaled := time.Duration(float64(d) * m.config.StageDelayScale)
	if scaled <= 0 {
		return ctx.Err()
	}

	timer := time.NewTimer(scaled)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

const (
	base36Upper = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	base36Lower = "0123456789abcdefghijklmnopqrstuvwxyz"
	hexDigits   = "0123456789abcdef"
)

func randomString(alphabet string, n int) string {
	var b strings.Builder
	b.Grow(n)
	for i := 0; i < n; i++ {
		b.WriteByte(alphabet[rand.IntN(len(alphabet))])
	}
	return b.String()
}
