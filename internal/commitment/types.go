// Package commitment normalizes storage-slot queries, derives the Keccak-256
// commitment over (chain id, address, slot, value, block number) and compares
// the results obtained from independent RPC endpoints.
package commitment

import (
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"math/big"

	"golang.org/x/crypto/sha3"
)

// Address is a 20-byte EVM account address.
type Address [20]byte

// Word is a 32-byte big-endian EVM word, used for storage slots and values.
type Word [32]byte

// Hash is a Keccak-256 digest.
type Hash [32]byte

// WordFromUint64 returns v as a 32-byte big-endian word.
func WordFromUint64(v uint64) Word {
	var w Word
	binary.BigEndian.PutUint64(w[24:], v)
	return w
}

// WordFromBig returns v as a 32-byte big-endian word.
// Negative values and values wider than 256 bits are rejected.
func WordFromBig(v *big.Int) (Word, error) {
	var w Word
	if v.Sign() < 0 {
		return w, fmt.Errorf("negative value %s", v)
	}
	if v.BitLen() > 256 {
		return w, fmt.Errorf("value exceeds 256 bits")
	}
	v.FillBytes(w[:])
	return w, nil
}

// WordFromBytes left-pads b to 32 bytes.
func WordFromBytes(b []byte) (Word, error) {
	var w Word
	if len(b) > len(w) {
		return w, fmt.Errorf("value is %d bytes, want at most 32", len(b))
	}
	copy(w[len(w)-len(b):], b)
	return w, nil
}

// Big returns the word as an unsigned integer.
func (w Word) Big() *big.Int { return new(big.Int).SetBytes(w[:]) }

// Hex returns the full 0x-prefixed 64 character encoding.
func (w Word) Hex() string { return "0x" + hex.EncodeToString(w[:]) }

// Quantity returns the minimal 0x-prefixed hex encoding ("0x0" for zero).
func (w Word) Quantity() string { return "0x" + w.Big().Text(16) }

func (h Hash) Hex() string { return "0x" + hex.EncodeToString(h[:]) }

func (h Hash) String() string { return h.Hex() }

func keccak256(data ...[]byte) Hash {
	hasher := sha3.NewLegacyKeccak256()
	for _, b := range data {
		hasher.Write(b)
	}
	var h Hash
	copy(h[:], hasher.Sum(nil))
	return h
}
