// Command dbscan clusters 2-D points read from a text file.
//
//	dbscan <input> <n> <eps> <minpts> [flags]
//
// n is the number of clusters to report, eps the reachability radius and
// minpts the neighbor count (self included) a core point needs.
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
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
