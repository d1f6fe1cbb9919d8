package commitment

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
)

// Endpoint is the capability the fetcher needs from an RPC node.
type Endpoint interface {
	// ChainID returns the chain id reported by the node.
	ChainID(ctx context.Context) (uint64, error)
	// StorageAt returns the storage word at slot of addr as of block.
	StorageAt(ctx context.Context, addr Address, slot Word, block BlockID) (Word, error)
	// ResolveBlockNumber returns the concrete number of block.
	ResolveBlockNumber(ctx context.Context, block BlockID) (uint64, error)
}

// Source is a named endpoint.
type Source struct {
	Name     string
	Endpoint Endpoint
}

// Result is a fetched query together with its commitment.
type Result struct {
	Source     string
	Query      Query
	Commitment Hash
	Elapsed    time.Duration
}

// Outcome is everything one run produced. Secondary and Check are nil when
// no secondary endpoint was configured.
type Outcome struct {
	Input     Input
	Primary   *Result
	Secondary *Result
	Check     *CrossCheck
}

// Fetcher runs the fetch procedure against one or two endpoints, one after
// the other.
type Fetcher struct {
	logger zerolog.Logger
}

func NewFetcher(logger zerolog.Logger) *Fetcher {
	return &Fetcher{logger: logger}
}

// Fetch resolves the chain id, reads the slot and resolves the block number
// served, then computes the commitment.
//
// latest, safe and finalized are resolved to a number before the storage
// read, and the read is made at that number, so the value and the block
// number always describe the same state. pending has no stable number to
// read at, so it is read by tag and its number looked up afterwards.
func (f *Fetcher) Fetch(ctx context.Context, src Source, in Input) (*Result, error) {
	start := time.Now()
	log := f.logger.With().Str("endpoint", src.Name).Logger()

	chainID, err := src.Endpoint.ChainID(ctx)
	if err != nil {
		return nil, fmt.Errorf("resolve chain id: %w", err)
	}
	log.Debug().Uint64("chain_id", chainID).Msg("chain resolved")

	readAt := in.Block
	var blockNumber uint64
	switch {
	case !in.Block.IsTag():
		blockNumber = in.Block.Number()
	case in.Block.Tag() != TagPending:
		blockNumber, err = src.Endpoint.ResolveBlockNumber(ctx, in.Block)
		if err != nil {
			return nil, fmt.Errorf("resolve block %s: %w", in.Block.Display(), err)
		}
		readAt = BlockNumber(blockNumber)
		log.Debug().Str("tag", in.Block.Tag()).Uint64("block", blockNumber).Msg("tag pinned")
	}

	value, err := src.Endpoint.StorageAt(ctx, in.Address, in.Slot, readAt)
	if err != nil {
		return nil, fmt.Errorf("read storage: %w", err)
	}

	if in.Block.Tag() == TagPending {
		blockNumber, err = src.Endpoint.ResolveBlockNumber(ctx, in.Block)
		if err != nil {
			return nil, fmt.Errorf("resolve block %s: %w", in.Block.Display(), err)
		}
	}

	q := Query{
		ChainID:     chainID,
		Address:     in.Address,
		Slot:        in.Slot,
		Block:       in.Block,
		BlockNumber: blockNumber,
		Value:       value,
	}
	res := &Result{
		Source:     src.Name,
		Query:      q,
		Commitment: q.Commitment(),
		Elapsed:    time.Since(start),
	}
	log.Debug().
		Uint64("block", blockNumber).
		Str("value", value.Hex()).
		Str("commitment", res.Commitment.Hex()).
		Dur("elapsed", res.Elapsed).
		Msg("commitment computed")
	return res, nil
}

// Run fetches from primary and, when secondary is non-nil, repeats the fetch
// against it and compares the two results.
func (f *Fetcher) Run(ctx context.Context, in Input, primary Source, secondary *Source) (*Outcome, error) {
	out := &Outcome{Input: in}

	res, err := f.Fetch(ctx, primary, in)
	if err != nil {
		return nil, err
	}
	out.Primary = res

	if secondary == nil {
		return out, nil
	}

	res, err = f.Fetch(ctx, *secondary, in)
	if err != nil {
		return nil, err
	}
	out.Secondary = res
	out.Check = Compare(out.Primary, out.Secondary)

	if !out.Check.Sound() {
		f.logger.Warn().Strs("fields", out.Check.MismatchedNames()).Msg("cross-check mismatch")
	}
	return out, nil
}
