package observation

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/coldtrace/foodtrace/internal/domain/ledger"
	"github.com/coldtrace/foodtrace/internal/domain/risk"
	apperrors "github.com/coldtrace/foodtrace/pkg/errors"
	"github.com/coldtrace/foodtrace/pkg/util"
)

// Service exposes the four ledger-backed operations to the transport layer.
type Service interface {
	Submit(ctx context.Context, req SubmitRequest) (SubmitResponse, error)
	Ledger(ctx context.Context) (LedgerResponse, error)
	Validate(ctx context.Context) (ValidityResponse, error)
	History(ctx context.Context, productID string) (ProductHistory, error)
}

// Config tunes the ingestion service.
type Config struct {
	CacheTTL time.Duration
}

type service struct {
	cfg    Config
	chain  *ledger.Chain
	cache  HistoryCache
	logger *slog.Logger
	now    func() time.Time
}

// NewService wires up the observation ingestion domain.
func NewService(cfg Config, chain *ledger.Chain, cache HistoryCache, logger *slog.Logger) Service {
	return &service{
		cfg:    cfg,
		chain:  chain,
		cache:  cache,
		logger: logger.With("component", "observation.service"),
		now:    util.NowUTC,
	}
}

// Submit validates the reading, scores it, and appends the combined record
// to the ledger. The ledger is never touched when validation fails.
func (s *service) Submit(ctx context.Context, req SubmitRequest) (SubmitResponse, error) {
	if missing := missingFields(req); len(missing) > 0 {
		return SubmitResponse{}, apperrors.Wrap("missing_field",
			"missing required fields: "+strings.Join(missing, ", "), nil)
	}

	reading := risk.Reading{
		Temperature:    *req.Temperature,
		Humidity:       *req.Humidity,
		PH:             *req.PH,
		BacterialCount: *req.BacterialCount,
	}
	assessment := risk.Assess(reading)

	record := ledger.Observation{
		ProductID:  *req.ProductID,
		Timestamp:  s.now().Format(time.RFC3339),
		Sensor:     reading,
		Location:   *req.Location,
		Prediction: assessment,
		Notes:      req.Notes,
	}

	block, stats, err := s.chain.Append(record)
	if err != nil {
		return SubmitResponse{}, apperrors.Wrap("seal_failed", "failed to seal observation block", err)
	}

	if err := s.cache.Invalidate(ctx, record.ProductID); err != nil {
		s.logger.Warn("history cache invalidation failed", "productId", record.ProductID, "error", err)
	}

	s.logger.Info("observation sealed",
		"productId", record.ProductID,
		"index", block.Index,
		"score", assessment.Score,
		"category", assessment.Category,
		"attempts", stats.Attempts,
	)

	return SubmitResponse{
		Block: BlockSummary{
			Index:        block.Index,
			Hash:         block.Hash,
			PreviousHash: block.PreviousHash,
			Timestamp:    block.Timestamp,
		},
		Prediction: assessment,
		Mining:     stats,
	}, nil
}

// Ledger returns the full chain plus validity from one consistent snapshot.
func (s *service) Ledger(_ context.Context) (LedgerResponse, error) {
	blocks, valid := s.chain.Snapshot()
	return LedgerResponse{
		Length: len(blocks),
		Valid:  valid,
		Chain:  blocks,
	}, nil
}

// Validate reports the chain's integrity verdict.
func (s *service) Validate(_ context.Context) (ValidityResponse, error) {
	return ValidityResponse{Valid: s.chain.Verify()}, nil
}

// History lists every record for the product, serving from cache when warm.
func (s *service) History(ctx context.Context, productID string) (ProductHistory, error) {
	productID = strings.TrimSpace(productID)
	if productID == "" {
		return ProductHistory{}, apperrors.Wrap("missing_field", "missing required fields: productId", nil)
	}

	if cached, ok, err := s.cache.Get(ctx, productID); err != nil {
		s.logger.Warn("history cache read failed", "productId", productID, "error", err)
	} else if ok {
		return cached, nil
	}

	records := s.chain.FindByProduct(productID)
	history := ProductHistory{
		ProductID: productID,
		Count:     len(records),
		Records:   records,
	}

	if err := s.cache.Save(ctx, history, s.cfg.CacheTTL); err != nil {
		s.logger.Warn("history cache write failed", "productId", productID, "error", err)
	}
	return history, nil
}

func missingFields(req SubmitRequest) []string {
	var missing []string
	if req.ProductID == nil || strings.TrimSpace(*req.ProductID) == "" {
		missing = append(missing, "productId")
	}
	if req.Temperature == nil {
		missing = append(missing, "temp")
	}
	if req.Humidity == nil {
		missing = append(missing, "humidity")
	}
	if req.PH == nil {
		missing = append(missing, "pH")
	}
	if req.BacterialCount == nil {
		missing = append(missing, "bacterialCount")
	}
	if req.Location == nil {
		missing = append(missing, "location")
	}
	return missing
}
