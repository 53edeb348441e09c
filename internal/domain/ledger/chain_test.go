package ledger

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func newTestChain(t *testing.T) *Chain {
	t.Helper()
	// Difficulty 1 keeps proof-of-work cheap in tests (~16 attempts).
	return NewChain(Config{Difficulty: 1})
}

func TestNewChainStartsWithGenesis(t *testing.T) {
	chain := newTestChain(t)

	require.Equal(t, 1, chain.Length())
	require.True(t, chain.Verify())

	blocks, valid := chain.Snapshot()
	require.True(t, valid)
	require.Len(t, blocks, 1)
	require.Equal(t, int64(0), blocks[0].Index)
	require.Equal(t, "0", blocks[0].PreviousHash)
	require.True(t, blocks[0].Data.IsGenesis())
}

func TestAppendLinksAndSealsBlocks(t *testing.T) {
	chain := newTestChain(t)

	var previous string
	for i, productID := range []string{"P1", "P2", "P1"} {
		block, stats, err := chain.Append(testObservation(productID))
		require.NoError(t, err)
		require.Equal(t, int64(i+1), block.Index)
		require.True(t, strings.HasPrefix(block.Hash, "0"))
		require.Equal(t, block.ComputeHash(), block.Hash)
		if i > 0 {
			require.Equal(t, previous, block.PreviousHash)
		}
		require.GreaterOrEqual(t, stats.ElapsedMs, int64(0))
		previous = block.Hash
	}

	require.Equal(t, 4, chain.Length())
	require.True(t, chain.Verify())

	blocks, _ := chain.Snapshot()
	for i := 1; i < len(blocks); i++ {
		require.Equal(t, blocks[i-1].Hash, blocks[i].PreviousHash)
		require.Equal(t, int64(i), blocks[i].Index)
	}
}

func TestVerifyDetectsTampering(t *testing.T) {
	tamper := []struct {
		name string
		fn   func(c *Chain)
	}{
		{"data", func(c *Chain) {
			mutated := testObservation("EVIL")
			c.blocks[1].Data = BlockData{Observation: &mutated}
		}},
		{"nonce", func(c *Chain) { c.blocks[1].Nonce++ }},
		{"previousHash", func(c *Chain) { c.blocks[2].PreviousHash = strings.Repeat("0", 64) }},
		{"hash", func(c *Chain) { c.blocks[2].Hash = strings.Repeat("f", 64) }},
	}

	for _, tc := range tamper {
		t.Run(tc.name, func(t *testing.T) {
			chain := newTestChain(t)
			for _, productID := range []string{"P1", "P2"} {
				_, _, err := chain.Append(testObservation(productID))
				require.NoError(t, err)
			}
			require.True(t, chain.Verify())

			tc.fn(chain)
			require.False(t, chain.Verify())
		})
	}
}

func TestAuditReportsFirstOffendingBlock(t *testing.T) {
	chain := newTestChain(t)
	for _, productID := range []string{"P1", "P2", "P3"} {
		_, _, err := chain.Append(testObservation(productID))
		require.NoError(t, err)
	}

	report := chain.Audit()
	require.True(t, report.OK)
	require.Equal(t, int64(-1), report.FirstBad)
	require.Equal(t, 4, report.Length)

	chain.blocks[2].Nonce++
	report = chain.Audit()
	require.False(t, report.OK)
	require.Equal(t, int64(2), report.FirstBad)
	require.Equal(t, "stored hash does not recompute", report.Violation)
}

func TestAppendRejectionLeavesChainUntouched(t *testing.T) {
	chain := NewChain(Config{Difficulty: 16, MaxSealAttempts: 4})

	_, _, err := chain.Append(testObservation("P1"))
	require.ErrorIs(t, err, ErrSealExhausted)
	require.Equal(t, 1, chain.Length())
	require.True(t, chain.Verify())
}

func TestFindByProductPreservesChainOrder(t *testing.T) {
	chain := newTestChain(t)
	for _, productID := range []string{"P1", "P2", "P1", "p1"} {
		obs := testObservation(productID)
		obs.Notes = "batch " + productID
		_, _, err := chain.Append(obs)
		require.NoError(t, err)
	}

	matches := chain.FindByProduct("P1")
	require.Len(t, matches, 2)
	require.Equal(t, "batch P1", matches[0].Notes)
	require.Equal(t, "batch P1", matches[1].Notes)

	// Match is case-sensitive and never includes genesis.
	require.Len(t, chain.FindByProduct("p1"), 1)
	require.Empty(t, chain.FindByProduct("unknown"))
	require.Empty(t, chain.FindByProduct("genesis"))
}

func TestSnapshotCopiesDoNotAliasChainState(t *testing.T) {
	chain := newTestChain(t)
	_, _, err := chain.Append(testObservation("P1"))
	require.NoError(t, err)

	blocks, _ := chain.Snapshot()
	blocks[1].Data.Observation.ProductID = "MUTATED"
	blocks[1].Data.Observation.Prediction.Raw["humidity"] = -1

	require.True(t, chain.Verify())
	require.Len(t, chain.FindByProduct("P1"), 1)
	require.Empty(t, chain.FindByProduct("MUTATED"))
}
