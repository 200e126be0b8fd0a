// Command sctpcat moves messages between the terminal and an SCTP session.
//
// Usage:
//
//	sctpcat recv "sctp://0.0.0.0:9000?listen&max_streams=4"
//	sctpcat send --stream 2 "sctp://127.0.0.1:9000?max_streams=4" hi
//	sctpcat echo --config sctpcat.toml server
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	err := newRootCmd().ExecuteContext(ctx)
	stop()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
