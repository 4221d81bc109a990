package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/caasmo/tablebook"
)

func main() {
	configPath := flag.String("config", "", "path to TOML config file (defaults used when empty)")
	dbPath := flag.String("db", "tablebook.db", "path to SQLite database file")
	flag.Parse()

	pool, err := tablebook.NewZombiezenPool(*dbPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to open database: %v\n", err)
		os.Exit(1)
	}
	defer pool.Close()

	_, srv, err := tablebook.New(*configPath, pool, tablebook.WithPhusLogger(nil))
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialize application: %v\n", err)
		os.Exit(1)
	}

	if err := srv.Run(); err != nil {
		os.Exit(1)
	}
}
