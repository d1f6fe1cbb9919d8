// Command slotcommit reads one storage slot of an EVM contract, derives a
// Keccak-256 commitment over (chain id, address, slot, value, block number)
// and, when a second RPC endpoint is configured, cross-checks the result.
//
// Usage:
//
//	slotcommit <contract_address> <slot(hex|int)> [block_tag|block_number] [flags]
//	RPC_URL=https://... RPC_URL_2=https://... slotcommit 0x00000000219ab540356cBB839Cbe05303d7705Fa 5 18000000
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/dando385/slotcommit/internal/env"
)

func main() {
	if err := env.Load(); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to load %s: %v\n", env.DefaultFile, err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := newRootCmd().ExecuteContext(ctx)
	stop()

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(exitCode(err))
	}
}
