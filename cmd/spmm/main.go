// Command spmm benchmarks the sparse matrix multiply strategies.
//
//	spmm bench --rows 2000 --inner 2000 --cols 2000 --density 0.01 --workers 8
//	spmm version
package main

import (
	"context"
	"os"
	"os/signal"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}
