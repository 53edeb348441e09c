package ledger

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/coldtrace/foodtrace/internal/domain/risk"
)

func testObservation(productID string) Observation {
	return Observation{
		ProductID: productID,
		Timestamp: "2026-08-26T10:00:00Z",
		Sensor:    risk.Reading{Temperature: 4, Humidity: 50, PH: 6.5},
		Location:  "warehouse-7",
		Prediction: risk.Assessment{
			Score:    10,
			Category: risk.CategoryLow,
			Reasons:  []string{"humidity (impact 10.0)", "temperature (impact 0.0)"},
			Raw:      map[string]float64{"temperature": 0, "humidity": 50, "pH": 0, "bacterialCount": 0},
		},
	}
}

func TestNewBlockComputesProvisionalHash(t *testing.T) {
	block := NewBlock(1, "2026-08-26T10:00:00Z", BlockData{}, "abc")

	require.Equal(t, uint64(0), block.Nonce)
	require.Len(t, block.Hash, 64)
	require.Equal(t, block.ComputeHash(), block.Hash)
}

func TestComputeHashIsIdempotent(t *testing.T) {
	obs := testObservation("P1")
	block := NewBlock(3, "2026-08-26T10:00:00Z", BlockData{Observation: &obs}, "00ff")

	first := block.ComputeHash()
	require.Equal(t, first, block.ComputeHash())
}

func TestComputeHashChangesWithAnyField(t *testing.T) {
	obs := testObservation("P1")
	block := NewBlock(3, "2026-08-26T10:00:00Z", BlockData{Observation: &obs}, "00ff")
	baseline := block.ComputeHash()

	tampered := *block
	tampered.Nonce++
	require.NotEqual(t, baseline, tampered.ComputeHash())

	tampered = *block
	tampered.PreviousHash = "00fe"
	require.NotEqual(t, baseline, tampered.ComputeHash())

	mutated := testObservation("P2")
	tampered = *block
	tampered.Data = BlockData{Observation: &mutated}
	require.NotEqual(t, baseline, tampered.ComputeHash())
}

func TestSealMeetsDifficultyTarget(t *testing.T) {
	obs := testObservation("P1")
	block := NewBlock(1, "2026-08-26T10:00:00Z", BlockData{Observation: &obs}, "00ff")

	attempts, err := block.Seal(2, 0)
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(block.Hash, "00"))
	require.Equal(t, block.ComputeHash(), block.Hash)
	require.Equal(t, attempts, block.Nonce)
}

func TestSealExhaustsBoundedAttempts(t *testing.T) {
	obs := testObservation("P1")
	block := NewBlock(1, "2026-08-26T10:00:00Z", BlockData{Observation: &obs}, "00ff")

	_, err := block.Seal(16, 8)
	require.ErrorIs(t, err, ErrSealExhausted)
}

func TestBlockDataTaggedSerialization(t *testing.T) {
	genesis, err := json.Marshal(BlockData{})
	require.NoError(t, err)
	require.JSONEq(t, `"genesis"`, string(genesis))

	var decodedGenesis BlockData
	require.NoError(t, json.Unmarshal(genesis, &decodedGenesis))
	require.True(t, decodedGenesis.IsGenesis())

	obs := testObservation("P1")
	payload, err := json.Marshal(BlockData{Observation: &obs})
	require.NoError(t, err)

	var decoded BlockData
	require.NoError(t, json.Unmarshal(payload, &decoded))
	require.False(t, decoded.IsGenesis())
	require.Equal(t, obs, *decoded.Observation)

	var unknown BlockData
	require.Error(t, json.Unmarshal([]byte(`"tombstone"`), &unknown))
}
