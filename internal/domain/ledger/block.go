package ledger

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"strconv"
	"strings"
)

// ErrSealExhausted is returned when bounded sealing gives up before the
// difficulty target is met. The block must be discarded in that case.
var ErrSealExhausted = errors.New("sealing exhausted maximum attempts")

// Block is one unit of the ledger. Index, timestamp, payload and
// predecessor link are fixed at construction; only Seal may touch Nonce
// and Hash, and only until the block is pushed onto the chain.
type Block struct {
	Index        int64     `json:"index"`
	Timestamp    string    `json:"timestamp"`
	Data         BlockData `json:"data"`
	PreviousHash string    `json:"previousHash"`
	Nonce        uint64    `json:"nonce"`
	Hash         string    `json:"hash"`
}

// NewBlock constructs an unsealed block with nonce 0 and a provisional hash.
func NewBlock(index int64, timestamp string, data BlockData, previousHash string) *Block {
	b := &Block{
		Index:        index,
		Timestamp:    timestamp,
		Data:         data,
		PreviousHash: previousHash,
	}
	b.Hash = b.ComputeHash()
	return b
}

// ComputeHash derives the SHA-256 content hash from the block's current
// fields: index, previous hash, timestamp, canonical payload JSON, nonce.
func (b *Block) ComputeHash() string {
	payload, err := b.Data.MarshalJSON()
	if err != nil {
		// Observation payloads contain only plain values; marshaling them
		// cannot fail. Keep the hash total anyway.
		payload = []byte("null")
	}
	var sb strings.Builder
	sb.WriteString(strconv.FormatInt(b.Index, 10))
	sb.WriteString(b.PreviousHash)
	sb.WriteString(b.Timestamp)
	sb.Write(payload)
	sb.WriteString(strconv.FormatUint(b.Nonce, 10))
	sum := sha256.Sum256([]byte(sb.String()))
	return hex.EncodeToString(sum[:])
}

// Seal runs the proof-of-work search: increment the nonce and recompute the
// hash until it starts with difficulty leading zero hex digits. Expected
// effort is 16^difficulty attempts. maxAttempts 0 means unbounded.
func (b *Block) Seal(difficulty int, maxAttempts uint64) (uint64, error) {
	target := strings.Repeat("0", difficulty)
	var attempts uint64
	for !strings.HasPrefix(b.Hash, target) {
		if maxAttempts > 0 && attempts >= maxAttempts {
			return attempts, ErrSealExhausted
		}
		b.Nonce++
		attempts++
		b.Hash = b.ComputeHash()
	}
	return attempts, nil
}
