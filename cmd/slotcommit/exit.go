package main

import (
	"errors"

	"github.com/dando385/slotcommit/internal/commitment"
)

// Process exit codes.
const (
	exitOK         = 0
	exitInvalid    = 1 // bad arguments, flags or configuration
	exitConnection = 2 // endpoint unreachable or timed out
	exitRPC        = 3 // endpoint rejected the request or returned malformed data
	exitMismatch   = 4 // cross-check mismatch under --strict
)

func exitCode(err error) int {
	var (
		connErr *commitment.ConnectionError
		rpcErr  *commitment.RPCError
	)
	switch {
	case err == nil:
		return exitOK
	case errors.Is(err, commitment.ErrMismatch):
		return exitMismatch
	case errors.As(err, &connErr):
		return exitConnection
	case errors.As(err, &rpcErr):
		return exitRPC
	default:
		return exitInvalid
	}
}
