package rpc

import (
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"

	"github.com/dando385/slotcommit/internal/commitment"
)

// ParseQuantity decodes a JSON-RPC QUANTITY ("0x" followed by at least one
// hex digit) into a uint64.
//
// Examples:
//   - "0x1" -> 1
//   - "0x112a880" -> 18000000
//   - "", "0x", "12" -> error
func ParseQuantity(s string) (uint64, error) {
	if !strings.HasPrefix(s, "0x") || len(s) == 2 {
		return 0, fmt.Errorf("invalid quantity %q", s)
	}
	n, err := strconv.ParseUint(s[2:], 16, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid quantity %q", s)
	}
	return n, nil
}

// DecodeWord decodes a 0x-prefixed DATA string of at most 32 bytes,
// left-padding it to a full word. Odd-length strings are accepted since
// some nodes return storage values as QUANTITY ("0x0").
func DecodeWord(s string) (commitment.Word, error) {
	if !strings.HasPrefix(s, "0x") {
		return commitment.Word{}, fmt.Errorf("missing 0x prefix in %q", s)
	}
	digits := s[2:]
	if len(digits)%2 == 1 {
		digits = "0" + digits
	}
	b, err := hex.DecodeString(digits)
	if err != nil {
		return commitment.Word{}, fmt.Errorf("invalid hex %q", s)
	}
	return commitment.WordFromBytes(b)
}
