package output

import (
	"encoding/json"
	"io"
	"time"

	"github.com/dando385/slotcommit/internal/commitment"
	"github.com/dando385/slotcommit/internal/network"
)

// Document is the JSON form of a run, used for --output json and for
// report files.
type Document struct {
	Timestamp  time.Time       `json:"timestamp"`
	Address    string          `json:"address"`
	Slot       SlotJSON        `json:"slot"`
	Block      string          `json:"block"`
	Results    []ResultJSON    `json:"results"`
	CrossCheck *CrossCheckJSON `json:"cross_check,omitempty"`
}

type SlotJSON struct {
	Hex     string `json:"hex"`
	Decimal string `json:"decimal"`
}

type ResultJSON struct {
	Source      string `json:"source"`
	Network     string `json:"network"`
	ChainID     uint64 `json:"chain_id"`
	BlockNumber uint64 `json:"block_number"`
	Value       string `json:"value"`
	Commitment  string `json:"commitment"`
	ElapsedMS   int64  `json:"elapsed_ms"`
}

type CrossCheckJSON struct {
	Sound      bool        `json:"sound"`
	Mismatched []string    `json:"mismatched"`
	Fields     []FieldJSON `json:"fields"`
}

type FieldJSON struct {
	Field     string `json:"field"`
	Primary   string `json:"primary"`
	Secondary string `json:"secondary"`
	Match     bool   `json:"match"`
}

// NewDocument converts an outcome into its JSON form.
func NewDocument(out *commitment.Outcome, now time.Time) *Document {
	doc := &Document{
		Timestamp: now.UTC(),
		Address:   out.Input.Address.Hex(),
		Slot: SlotJSON{
			Hex:     out.Input.Slot.Quantity(),
			Decimal: out.Input.Slot.Big().String(),
		},
		Block: out.Input.Block.Display(),
	}

	for _, r := range []*commitment.Result{out.Primary, out.Secondary} {
		if r == nil {
			continue
		}
		doc.Results = append(doc.Results, ResultJSON{
			Source:      r.Source,
			Network:     network.Name(r.Query.ChainID),
			ChainID:     r.Query.ChainID,
			BlockNumber: r.Query.BlockNumber,
			Value:       r.Query.Value.Hex(),
			Commitment:  r.Commitment.Hex(),
			ElapsedMS:   r.Elapsed.Milliseconds(),
		})
	}

	if out.Check != nil {
		cc := &CrossCheckJSON{
			Sound:      out.Check.Sound(),
			Mismatched: out.Check.MismatchedNames(),
		}
		for _, f := range out.Check.Fields {
			cc.Fields = append(cc.Fields, FieldJSON{
				Field:     string(f.Field),
				Primary:   f.Primary,
				Secondary: f.Secondary,
				Match:     f.Match,
			})
		}
		doc.CrossCheck = cc
	}
	return doc
}

// RenderJSON writes doc as indented JSON.
func RenderJSON(w io.Writer, doc *Document) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(doc)
}
