package diverging

import (
	"encoding/json"
	"math"

	"github.com/matzehuels/butterfly/pkg/chart"
)

// TransformedRecord is a record with draw-direction signs applied.
// SignedLeft <= 0 <= SignedRight for finite input; NaN stays NaN.
type TransformedRecord struct {
	Category    string
	SignedLeft  float64
	SignedRight float64
}

// Sign returns the transformed form of r.
func Sign(r chart.Record) TransformedRecord {
	return TransformedRecord{
		Category:    r.Category,
		SignedLeft:  -math.Abs(r.Left),
		SignedRight: math.Abs(r.Right),
	}
}

// SignRecords transforms records one to one, in order.
func SignRecords(records []chart.Record) []TransformedRecord {
	out := make([]TransformedRecord, len(records))
	for i, r := range records {
		out[i] = Sign(r)
	}
	return out
}

type transformedJSON struct {
	Category    string   `json:"category"`
	SignedLeft  *float64 `json:"signed_left"`
	SignedRight *float64 `json:"signed_right"`
}

// MarshalJSON encodes NaN as null.
func (t TransformedRecord) MarshalJSON() ([]byte, error) {
	return json.Marshal(transformedJSON{
		Category:    t.Category,
		SignedLeft:  finite(t.SignedLeft),
		SignedRight: finite(t.SignedRight),
	})
}

func finite(v float64) *float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return &v
}
