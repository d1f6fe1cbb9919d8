package commitment

import (
	"fmt"
	"math/big"
	"strconv"
	"strings"
)

// Block tags accepted in place of a block number.
const (
	TagLatest    = "latest"
	TagFinalized = "finalized"
	TagSafe      = "safe"
	TagPending   = "pending"
)

// BlockID identifies the block a query is made against: either one of the
// symbolic tags or a literal block number.
type BlockID struct {
	tag    string
	number uint64
}

// Latest is the block identifier used when none is given.
func Latest() BlockID { return BlockID{tag: TagLatest} }

// BlockNumber returns a literal block identifier.
func BlockNumber(n uint64) BlockID { return BlockID{number: n} }

func (b BlockID) IsTag() bool { return b.tag != "" }

// Tag returns the symbolic tag, or "" for a literal block number.
func (b BlockID) Tag() string { return b.tag }

// Number returns the literal block number. It is meaningless for tags.
func (b BlockID) Number() uint64 { return b.number }

// String returns the JSON-RPC parameter form: the tag or a 0x quantity.
func (b BlockID) String() string {
	if b.IsTag() {
		return b.tag
	}
	return "0x" + strconv.FormatUint(b.number, 16)
}

// Display returns the tag or the decimal block number.
func (b BlockID) Display() string {
	if b.IsTag() {
		return b.tag
	}
	return strconv.FormatUint(b.number, 10)
}

// ParseBlockID converts a block argument to a BlockID. An empty argument
// means "latest"; tags are case-insensitive; numbers may be decimal or
// 0x-prefixed hex.
func ParseBlockID(arg string) (BlockID, error) {
	norm := strings.ToLower(strings.TrimSpace(arg))

	switch norm {
	case "":
		return Latest(), nil
	case TagLatest, TagFinalized, TagSafe, TagPending:
		return BlockID{tag: norm}, nil
	}

	var (
		n   uint64
		err error
	)
	if hasHexPrefix(norm) {
		n, err = strconv.ParseUint(norm[2:], 16, 64)
	} else {
		n, err = strconv.ParseUint(norm, 10, 64)
	}
	if err != nil {
		return BlockID{}, invalidInput("block", arg, "expected latest, finalized, safe, pending or a block number")
	}
	return BlockNumber(n), nil
}

// ParseSlot parses a decimal or 0x-prefixed hex storage slot into a word.
func ParseSlot(arg string) (Word, error) {
	s := strings.TrimSpace(arg)

	digits, base := s, 10
	if hasHexPrefix(s) {
		digits, base = s[2:], 16
	}
	// big.Int accepts a leading sign; slots are unsigned.
	if digits == "" || strings.ContainsAny(digits[:1], "+-") {
		return Word{}, invalidInput("slot", arg, "expected a decimal or 0x-prefixed hex integer")
	}

	v, ok := new(big.Int).SetString(digits, base)
	if !ok {
		return Word{}, invalidInput("slot", arg, "expected a decimal or 0x-prefixed hex integer")
	}
	w, err := WordFromBig(v)
	if err != nil {
		return Word{}, invalidInput("slot", arg, err.Error())
	}
	return w, nil
}

// Input is the normalized form of the command-line arguments. It is shared
// unchanged by every endpoint queried in one run.
type Input struct {
	Address Address
	Slot    Word
	Block   BlockID
}

// ParseInput normalizes the address, slot and optional block arguments.
// Pass "" for block to default to "latest".
func ParseInput(address, slot, block string) (Input, error) {
	addr, err := ParseAddress(address)
	if err != nil {
		return Input{}, err
	}
	s, err := ParseSlot(slot)
	if err != nil {
		return Input{}, err
	}
	b, err := ParseBlockID(block)
	if err != nil {
		return Input{}, err
	}
	return Input{Address: addr, Slot: s, Block: b}, nil
}

func (in Input) String() string {
	return fmt.Sprintf("%s slot %s @ %s", in.Address.Hex(), in.Slot.Quantity(), in.Block.Display())
}

func hasHexPrefix(s string) bool {
	return len(s) >= 2 && s[0] == '0' && (s[1] == 'x' || s[1] == 'X')
}
