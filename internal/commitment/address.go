package commitment

import (
	"encoding/hex"
	"strings"
)

// ParseAddress accepts a 40 hex character address with or without a 0x
// prefix. All-lowercase and all-uppercase forms are taken as-is; mixed case
// must carry a valid EIP-55 checksum.
func ParseAddress(s string) (Address, error) {
	var addr Address

	body := strings.TrimSpace(s)
	if hasHexPrefix(body) {
		body = body[2:]
	}
	if len(body) != 2*len(addr) {
		return addr, invalidInput("address", s, "expected 40 hex characters")
	}

	raw, err := hex.DecodeString(body)
	if err != nil {
		return addr, invalidInput("address", s, "contains non-hex characters")
	}
	copy(addr[:], raw)

	mixed := strings.ToLower(body) != body && strings.ToUpper(body) != body
	if mixed && addr.Hex()[2:] != body {
		return Address{}, invalidInput("address", s, "EIP-55 checksum mismatch")
	}
	return addr, nil
}

// Hex returns the EIP-55 checksummed form.
func (a Address) Hex() string {
	lower := []byte(hex.EncodeToString(a[:]))
	digest := keccak256(lower)

	for i, c := range lower {
		if c < 'a' {
			continue
		}
		nibble := digest[i/2]
		if i%2 == 0 {
			nibble >>= 4
		}
		if nibble&0x0f >= 8 {
			lower[i] = c - 'a' + 'A'
		}
	}
	return "0x" + string(lower)
}

func (a Address) String() string { return a.Hex() }
