package ledger

import (
	"strings"
	"sync"
	"time"

	"github.com/coldtrace/foodtrace/pkg/metrics"
	"github.com/coldtrace/foodtrace/pkg/util"
)

const genesisPreviousHash = "0"

// Config carries the immutable parameters of a chain.
type Config struct {
	// Difficulty is the required count of leading zero hex digits.
	Difficulty int
	// MaxSealAttempts bounds the proof-of-work search per block.
	// 0 keeps the search unbounded.
	MaxSealAttempts uint64
}

// Chain is the append-only, hash-linked sequence of sealed blocks. It owns
// its blocks exclusively: Append is the only mutation entry point and every
// read hands out copies.
type Chain struct {
	mu          sync.RWMutex
	blocks      []*Block
	difficulty  int
	maxAttempts uint64
	now         func() time.Time
}

// NewChain creates a chain holding only the genesis block. Genesis carries
// the sentinel payload, previous hash "0", a computed (never mined) hash.
func NewChain(cfg Config) *Chain {
	difficulty := cfg.Difficulty
	if difficulty <= 0 {
		difficulty = 2
	}
	c := &Chain{
		difficulty:  difficulty,
		maxAttempts: cfg.MaxSealAttempts,
		now:         util.NowUTC,
	}
	genesis := NewBlock(0, c.now().Format(time.RFC3339), BlockData{}, genesisPreviousHash)
	c.blocks = []*Block{genesis}
	return c
}

// Append builds a block for the observation, links it to the current tail,
// seals it and pushes it. The whole read-tail → seal → push sequence holds
// the write lock so concurrent appends can never fork the chain. On a
// sealing failure the chain is left untouched.
func (c *Chain) Append(obs Observation) (Block, metrics.MiningStats, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	tail := c.blocks[len(c.blocks)-1]
	block := NewBlock(tail.Index+1, c.now().Format(time.RFC3339), BlockData{Observation: &obs}, tail.Hash)

	start := time.Now()
	attempts, err := block.Seal(c.difficulty, c.maxAttempts)
	stats := metrics.MiningStats{Attempts: attempts, ElapsedMs: time.Since(start).Milliseconds()}
	if err != nil {
		return Block{}, stats, err
	}

	c.blocks = append(c.blocks, block)
	return cloneBlock(block), stats, nil
}

func cloneBlock(b *Block) Block {
	out := *b
	if b.Data.Observation != nil {
		obs := b.Data.Observation.clone()
		out.Data.Observation = &obs
	}
	return out
}

// Verify walks the chain from block 1 and confirms that every stored hash
// recomputes from the block's fields and that every previousHash matches
// the predecessor's stored hash. A genesis-only chain is trivially valid.
func (c *Chain) Verify() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.verifyLocked()
}

func (c *Chain) verifyLocked() bool {
	for i := 1; i < len(c.blocks); i++ {
		block := c.blocks[i]
		if block.Hash != block.ComputeHash() {
			return false
		}
		if block.PreviousHash != c.blocks[i-1].Hash {
			return false
		}
	}
	return true
}

// AuditReport is the extended integrity report used by the background
// auditor. Verify stays boolean-only; the report adds the first offending
// block for debuggability.
type AuditReport struct {
	OK        bool   `json:"ok"`
	Length    int    `json:"length"`
	FirstBad  int64  `json:"firstBad"`
	Violation string `json:"violation,omitempty"`
}

// Audit performs the Verify checks plus index continuity and the
// proof-of-work prefix, reporting the first offending block.
func (c *Chain) Audit() AuditReport {
	c.mu.RLock()
	defer c.mu.RUnlock()

	report := AuditReport{OK: true, Length: len(c.blocks), FirstBad: -1}
	target := strings.Repeat("0", c.difficulty)
	for i := 1; i < len(c.blocks); i++ {
		block := c.blocks[i]
		switch {
		case block.Index != int64(i):
			report.Violation = "index discontinuity"
		case block.Hash != block.ComputeHash():
			report.Violation = "stored hash does not recompute"
		case block.PreviousHash != c.blocks[i-1].Hash:
			report.Violation = "broken predecessor link"
		case !strings.HasPrefix(block.Hash, target):
			report.Violation = "missing proof-of-work prefix"
		default:
			continue
		}
		report.OK = false
		report.FirstBad = block.Index
		return report
	}
	return report
}

// FindByProduct returns copies of every observation whose product id is an
// exact match, oldest first. Genesis is excluded unconditionally.
func (c *Chain) FindByProduct(productID string) []Observation {
	c.mu.RLock()
	defer c.mu.RUnlock()

	matches := []Observation{}
	for _, block := range c.blocks[1:] {
		obs := block.Data.Observation
		if obs != nil && obs.ProductID == productID {
			matches = append(matches, obs.clone())
		}
	}
	return matches
}

// Snapshot returns a consistent copy of the chain together with its
// validity, both taken under one read lock.
func (c *Chain) Snapshot() ([]Block, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	blocks := make([]Block, len(c.blocks))
	for i, b := range c.blocks {
		blocks[i] = cloneBlock(b)
	}
	return blocks, c.verifyLocked()
}

// Length reports the number of blocks, genesis included.
func (c *Chain) Length() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.blocks)
}

// Difficulty exposes the fixed proof-of-work parameter.
func (c *Chain) Difficulty() int {
	return c.difficulty
}
