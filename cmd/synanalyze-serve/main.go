// Command synanalyze-serve runs the live WebSocket analysis endpoint.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/holla2040/synanalyze/internal/live"
	"github.com/holla2040/synanalyze/internal/store"
)

func main() {
	addr := flag.String("addr", ":8085", "listen address")
	dbPath := flag.String("db", "synanalyze.db", "SQLite database path")
	flag.Parse()

	st, err := store.New(*dbPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening database %s: %v\n", *dbPath, err)
		os.Exit(2)
	}
	defer st.Close()

	if err := live.Serve(*addr, st); err != nil {
		fmt.Fprintf(os.Stderr, "server stopped: %v\n", err)
		os.Exit(1)
	}
}
