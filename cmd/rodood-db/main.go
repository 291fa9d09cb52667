package main

import (
	"fmt"
	"os"
	"runtime/debug"

	"github.com/Sam-Ezzat/rodood-db/internal/cli"
	"github.com/Sam-Ezzat/rodood-db/pkg/rodooddb"
)

func main() {
	// Recover from panics to ensure graceful exits with stack traces
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "panic: %v\n%s\n", r, debug.Stack())
			os.Exit(rodooddb.ExitPanic)
		}
	}()

	if os.Getenv("RODOOD_DB_TEST_PANIC") == "1" {
		panic("intentional test panic")
	}

	if err := cli.Execute(); err != nil {
		os.Exit(rodooddb.ExitCodeForError(err))
	}
}
