// Package output renders a commitment run for the terminal or as JSON.
package output

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/fatih/color"
	"github.com/rodaine/table"

	"github.com/dando385/slotcommit/internal/commitment"
	"github.com/dando385/slotcommit/internal/network"
)

const labelWidth = 13

// TerminalFormatter formats a run as a human-readable report.
type TerminalFormatter struct {
	outcome *commitment.Outcome
}

func NewTerminalFormatter(outcome *commitment.Outcome) *TerminalFormatter {
	return &TerminalFormatter{outcome: outcome}
}

func (f *TerminalFormatter) Format(w io.Writer) error {
	fmt.Fprintln(w)
	f.formatResult(w, "PRIMARY", f.outcome.Primary)

	if f.outcome.Secondary == nil {
		return nil
	}
	f.formatResult(w, "SECONDARY", f.outcome.Secondary)
	f.formatCrossCheck(w)
	return nil
}

func (f *TerminalFormatter) formatResult(w io.Writer, role string, r *commitment.Result) {
	q := r.Query

	block := fmt.Sprintf("%d", q.BlockNumber)
	if q.Block.IsTag() {
		block += dim(fmt.Sprintf(" (%s)", q.Block.Tag()))
	}

	// Unknown names already carry the chain id.
	chain := network.Name(q.ChainID)
	if network.Known(q.ChainID) {
		chain = fmt.Sprintf("%s (chainId %d)", chain, q.ChainID)
	}

	fmt.Fprintf(w, "%s\n", bold(fmt.Sprintf("— %s · %s —", role, r.Source)))
	field(w, "Network:", chain)
	field(w, "Address:", q.Address.Hex())
	field(w, "Slot:", fmt.Sprintf("%s (%s)", q.Slot.Quantity(), q.Slot.Big()))
	field(w, "Block:", block)
	field(w, "Value@slot:", q.Value.Hex())
	field(w, "Commitment:", bold(r.Commitment.Hex()))
	field(w, "Fetched in:", dim(fmt.Sprintf("%dms", r.Elapsed.Milliseconds())))
	fmt.Fprintln(w)
}

func (f *TerminalFormatter) formatCrossCheck(w io.Writer) {
	check := f.outcome.Check

	fmt.Fprintf(w, "%s\n", bold("— CROSS-CHECK —"))

	headerFmt := color.New(color.FgCyan, color.Underline).SprintfFunc()
	tbl := table.New("Field", f.outcome.Primary.Source, f.outcome.Secondary.Source, "Match").
		WithWriter(w).
		WithHeaderFormatter(headerFmt).
		WithWidthFunc(func(s string) int { return utf8.RuneCountInString(stripANSI(s)) })

	for _, fc := range check.Fields {
		tbl.AddRow(string(fc.Field), fc.Primary, fc.Secondary, matchMark(fc.Match))
	}
	tbl.Print()
	fmt.Fprintln(w)

	if check.Sound() {
		fmt.Fprintf(w, "%s Soundness confirmed across providers.\n\n", green("✓"))
		return
	}

	fmt.Fprintf(w, "%s Potential inconsistency detected: %s differ.\n",
		yellow("⚠"), strings.Join(check.MismatchedNames(), ", "))
	fmt.Fprintln(w, "  Recheck RPCs, block tag, or use archival nodes.")
	fmt.Fprintln(w)
}

func field(w io.Writer, label, value string) {
	fmt.Fprintf(w, "  %s %s\n", padRight(cyan(label), labelWidth), value)
}
