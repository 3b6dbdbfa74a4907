// veloxconv converts the tables of a database schema, mapped to entities by
// a YAML mapping file, into velox schema declarations.
//
//	veloxconv -config mapping.yaml -out ./schema [-export models.json] [-graphql velox.graphql] [-watch]
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
	if err := run(ctx, os.Args[1:], os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "veloxconv: %v\n", err)
		os.Exit(1)
	}
}
