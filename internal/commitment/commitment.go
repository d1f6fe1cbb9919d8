package commitment

import "encoding/binary"

// PreimageSize is the length of the commitment preimage:
// chainId(32) || address(20) || slot(32) || value(32) || blockNumber(32).
const PreimageSize = 32 + 20 + 32 + 32 + 32

// Query is one storage read as served by a single endpoint.
type Query struct {
	ChainID     uint64
	Address     Address
	Slot        Word
	Block       BlockID // as requested
	BlockNumber uint64  // as resolved
	Value       Word
}

// Preimage returns the fixed-width big-endian encoding that is hashed into
// the commitment.
func (q Query) Preimage() []byte {
	buf := make([]byte, 0, PreimageSize)
	buf = appendUint256(buf, q.ChainID)
	buf = append(buf, q.Address[:]...)
	buf = append(buf, q.Slot[:]...)
	buf = append(buf, q.Value[:]...)
	buf = appendUint256(buf, q.BlockNumber)
	return buf
}

// Commitment returns keccak256 of the query preimage.
func (q Query) Commitment() Hash { return keccak256(q.Preimage()) }

// Compute derives the commitment for an explicit tuple.
func Compute(chainID uint64, addr Address, slot, value Word, blockNumber uint64) Hash {
	return Query{
		ChainID:     chainID,
		Address:     addr,
		Slot:        slot,
		Value:       value,
		BlockNumber: blockNumber,
	}.Commitment()
}

func appendUint256(buf []byte, v uint64) []byte {
	var word [32]byte
	binary.BigEndian.PutUint64(word[24:], v)
	return append(buf, word[:]...)
}
