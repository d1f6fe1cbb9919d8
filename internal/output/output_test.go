package output

import (
	"bytes"
	"encoding/json"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/dando385/slotcommit/internal/commitment"
)

func TestMain(m *testing.M) {
	DisableColors()
	os.Exit(m.Run())
}

const depositContract = "0x00000000219ab540356cBB839Cbe05303d7705Fa"

func result(t *testing.T, source string, value uint64) *commitment.Result {
	t.Helper()
	addr, err := commitment.ParseAddress(depositContract)
	require.NoError(t, err)
	q := commitment.Query{
		ChainID:     1,
		Address:     addr,
		Slot:        commitment.WordFromUint64(5),
		Block:       commitment.Latest(),
		BlockNumber: 18000000,
		Value:       commitment.WordFromUint64(value),
	}
	return &commitment.Result{Source: source, Query: q, Commitment: q.Commitment(), Elapsed: 42 * time.Millisecond}
}

func outcome(t *testing.T, secondaryValue uint64, withSecondary bool) *commitment.Outcome {
	t.Helper()
	in, err := commitment.ParseInput(depositContract, "5", "latest")
	require.NoError(t, err)
	out := &commitment.Outcome{Input: in, Primary: result(t, "infura", 0x1a4)}
	if withSecondary {
		out.Secondary = result(t, "archive", secondaryValue)
		out.Check = commitment.Compare(out.Primary, out.Secondary)
	}
	return out
}

func TestTerminalPrimaryOnly(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewTerminalFormatter(outcome(t, 0, false)).Format(&buf))
	got := buf.String()

	require.Contains(t, got, "— PRIMARY · infura —")
	require.Contains(t, got, "Ethereum Mainnet (chainId 1)")
	require.Contains(t, got, depositContract)
	require.Contains(t, got, "0x5 (5)")
	require.Contains(t, got, "18000000 (latest)")
	require.Contains(t, got, "0x00000000000000000000000000000000000000000000000000000000000001a4")
	require.Contains(t, got, "0x907b80bd95b8d82ba25a509f63a6a57f8421e86248861071704ee4b9f9960fa3")
	require.Contains(t, got, "42ms")
	require.NotContains(t, got, "CROSS-CHECK")
}

func TestTerminalUnknownChain(t *testing.T) {
	out := outcome(t, 0, false)
	out.Primary.Query.ChainID = 31337

	var buf bytes.Buffer
	require.NoError(t, NewTerminalFormatter(out).Format(&buf))
	require.Contains(t, buf.String(), "Unknown (chain ID 31337)")
	require.NotContains(t, buf.String(), "chainId 31337")
}

func TestTerminalCrossCheckSound(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewTerminalFormatter(outcome(t, 0x1a4, true)).Format(&buf))
	got := buf.String()

	require.Contains(t, got, "— SECONDARY · archive —")
	require.Contains(t, got, "— CROSS-CHECK —")
	require.Contains(t, strings.ToLower(got), "soundness confirmed")
	matches := 0
	for _, line := range strings.Split(got, "\n") {
		if strings.HasSuffix(strings.TrimRight(line, " "), "✓") {
			matches++
		}
	}
	require.Equal(t, 4, matches, got)
	require.NotContains(t, got, "inconsistency")
}

func TestTerminalCrossCheckMismatch(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewTerminalFormatter(outcome(t, 0x1a5, true)).Format(&buf))
	got := buf.String()

	require.NotContains(t, strings.ToLower(got), "soundness confirmed")
	require.Contains(t, got, "Potential inconsistency detected: value, commitment differ.")
	require.Contains(t, got, "✗")
}

func TestTableAlignment(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewTerminalFormatter(outcome(t, 0x1a4, true)).Format(&buf))

	var rows []string
	for _, line := range strings.Split(buf.String(), "\n") {
		for _, prefix := range []string{"chain id ", "block number ", "value ", "commitment "} {
			if strings.HasPrefix(line, prefix) {
				rows = append(rows, line)
			}
		}
	}
	require.Len(t, rows, 4)
	col := strings.Index(rows[0], "1 ")
	require.Greater(t, col, 0)
	for _, r := range rows[1:] {
		require.NotEqual(t, ' ', rune(r[col]), "columns should line up:\n%s", strings.Join(rows, "\n"))
	}
}

func TestNewDocument(t *testing.T) {
	now := time.Date(2026, 10, 18, 12, 0, 0, 0, time.UTC)
	doc := NewDocument(outcome(t, 0x1a5, true), now)

	require.Equal(t, depositContract, doc.Address)
	require.Equal(t, SlotJSON{Hex: "0x5", Decimal: "5"}, doc.Slot)
	require.Equal(t, "latest", doc.Block)
	require.Len(t, doc.Results, 2)
	require.Equal(t, "Ethereum Mainnet", doc.Results[0].Network)
	require.Equal(t, uint64(18000000), doc.Results[1].BlockNumber)
	require.False(t, doc.CrossCheck.Sound)
	require.Equal(t, []string{"value", "commitment"}, doc.CrossCheck.Mismatched)

	var buf bytes.Buffer
	require.NoError(t, RenderJSON(&buf, doc))

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	require.Equal(t, "2026-10-18T12:00:00Z", decoded["timestamp"])
	cc := decoded["cross_check"].(map[string]interface{})
	require.Equal(t, false, cc["sound"])
}

func TestNewDocumentPrimaryOnly(t *testing.T) {
	doc := NewDocument(outcome(t, 0, false), time.Now())
	require.Len(t, doc.Results, 1)
	require.Nil(t, doc.CrossCheck)

	var buf bytes.Buffer
	require.NoError(t, RenderJSON(&buf, doc))
	require.NotContains(t, buf.String(), "cross_check")
}
