package commitment

import "strconv"

// Field names a compared component of two results.
type Field string

const (
	FieldChainID     Field = "chain id"
	FieldBlockNumber Field = "block number"
	FieldValue       Field = "value"
	FieldCommitment  Field = "commitment"
)

// FieldCheck is the verdict for one field.
type FieldCheck struct {
	Field     Field
	Primary   string
	Secondary string
	Match     bool
}

// CrossCheck compares two results field by field.
type CrossCheck struct {
	Fields []FieldCheck
}

// Compare checks chain id, block number, value and commitment, in that order.
func Compare(primary, secondary *Result) *CrossCheck {
	a, b := primary.Query, secondary.Query
	return &CrossCheck{Fields: []FieldCheck{
		{
			Field:     FieldChainID,
			Primary:   strconv.FormatUint(a.ChainID, 10),
			Secondary: strconv.FormatUint(b.ChainID, 10),
			Match:     a.ChainID == b.ChainID,
		},
		{
			Field:     FieldBlockNumber,
			Primary:   strconv.FormatUint(a.BlockNumber, 10),
			Secondary: strconv.FormatUint(b.BlockNumber, 10),
			Match:     a.BlockNumber == b.BlockNumber,
		},
		{
			Field:     FieldValue,
			Primary:   a.Value.Hex(),
			Secondary: b.Value.Hex(),
			Match:     a.Value == b.Value,
		},
		{
			Field:     FieldCommitment,
			Primary:   primary.Commitment.Hex(),
			Secondary: secondary.Commitment.Hex(),
			Match:     primary.Commitment == secondary.Commitment,
		},
	}}
}

// Sound reports whether every compared field matched.
func (c *CrossCheck) Sound() bool {
	return len(c.Mismatched()) == 0
}

func (c *CrossCheck) Mismatched() []Field {
	var out []Field
	for _, f := range c.Fields {
		if !f.Match {
			out = append(out, f.Field)
		}
	}
	return out
}

func (c *CrossCheck) MismatchedNames() []string {
	fields := c.Mismatched()
	names := make([]string, len(fields))
	for i, f := range fields {
		names[i] = string(f)
	}
	return names
}
