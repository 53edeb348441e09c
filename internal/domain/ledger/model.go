package ledger

import (
	"encoding/json"
	"errors"

	"github.com/coldtrace/foodtrace/internal/domain/risk"
)

// genesisSentinel is the fixed payload carried by block 0.
const genesisSentinel = "genesis"

// Observation is the immutable record appended to the chain: one sensor
// reading about a product together with its risk assessment.
type Observation struct {
	ProductID  string          `json:"productId"`
	Timestamp  string          `json:"timestamp"`
	Sensor     risk.Reading    `json:"sensor"`
	Location   string          `json:"location"`
	Prediction risk.Assessment `json:"prediction"`
	Notes      string          `json:"notes"`
}

// clone returns a copy that shares no mutable state with the original, so
// chain reads can hand records out without aliasing ledger-owned memory.
func (o Observation) clone() Observation {
	if o.Prediction.Reasons != nil {
		o.Prediction.Reasons = append([]string(nil), o.Prediction.Reasons...)
	}
	if o.Prediction.Raw != nil {
		raw := make(map[string]float64, len(o.Prediction.Raw))
		for k, v := range o.Prediction.Raw {
			raw[k] = v
		}
		o.Prediction.Raw = raw
	}
	return o
}

// BlockData is the tagged payload of a block: either the genesis sentinel
// or an observation record. The discriminator is explicit rather than
// inferred from payload shape.
type BlockData struct {
	Observation *Observation
}

// IsGenesis reports whether this payload is the genesis sentinel.
func (d BlockData) IsGenesis() bool {
	return d.Observation == nil
}

// MarshalJSON serializes the sentinel as a bare string and observations as
// the record object, matching the wire layout consumers expect.
func (d BlockData) MarshalJSON() ([]byte, error) {
	if d.Observation == nil {
		return json.Marshal(genesisSentinel)
	}
	return json.Marshal(d.Observation)
}

// UnmarshalJSON discriminates on the leading token: a JSON string is the
// genesis sentinel, an object is an observation record.
func (d *BlockData) UnmarshalJSON(data []byte) error {
	trimmed := bytesTrimLeft(data)
	if len(trimmed) == 0 {
		return errors.New("empty block payload")
	}
	if trimmed[0] == '"' {
		var sentinel string
		if err := json.Unmarshal(data, &sentinel); err != nil {
			return err
		}
		if sentinel != genesisSentinel {
			return errors.New("unknown sentinel payload: " + sentinel)
		}
		d.Observation = nil
		return nil
	}
	var obs Observation
	if err := json.Unmarshal(data, &obs); err != nil {
		return err
	}
	d.Observation = &obs
	return nil
}

func bytesTrimLeft(data []byte) []byte {
	for len(data) > 0 {
		switch data[0] {
		case ' ', '\t', '\n', '\r':
			data = data[1:]
		default:
			return data
		}
	}
	return data
}
