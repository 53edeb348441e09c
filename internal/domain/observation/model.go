package observation

import (
	"github.com/coldtrace/foodtrace/internal/domain/ledger"
	"github.com/coldtrace/foodtrace/internal/domain/risk"
	"github.com/coldtrace/foodtrace/pkg/metrics"
)

// SubmitRequest is the inbound payload for a new sensor observation.
// The six required fields are pointers so absence can be told apart from
// a legitimate zero value.
type SubmitRequest struct {
	ProductID      *string  `json:"productId"`
	Temperature    *float64 `json:"temp"`
	Humidity       *float64 `json:"humidity"`
	PH             *float64 `json:"pH"`
	BacterialCount *float64 `json:"bacterialCount"`
	Location       *string  `json:"location"`
	Notes          string   `json:"notes"`
}

// BlockSummary is the sealed-block digest returned to submitters.
type BlockSummary struct {
	Index        int64  `json:"index"`
	Hash         string `json:"hash"`
	PreviousHash string `json:"previousHash"`
	Timestamp    string `json:"timestamp"`
}

// SubmitResponse reports the sealed block and the derived risk assessment.
type SubmitResponse struct {
	Block      BlockSummary        `json:"block"`
	Prediction risk.Assessment     `json:"prediction"`
	Mining     metrics.MiningStats `json:"mining"`
}

// LedgerResponse is the full ordered chain with its validity.
type LedgerResponse struct {
	Length int            `json:"length"`
	Valid  bool           `json:"valid"`
	Chain  []ledger.Block `json:"chain"`
}

// ValidityResponse carries the boolean integrity verdict.
type ValidityResponse struct {
	Valid bool `json:"valid"`
}

// ProductHistory lists every ledger record for one product, oldest first.
type ProductHistory struct {
	ProductID string               `json:"productId"`
	Count     int                  `json:"count"`
	Records   []ledger.Observation `json:"records"`
}
