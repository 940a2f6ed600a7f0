package main

import (
	"fmt"
	"os"

	"carbontrack/internal/app"
)

func main() {
	if err := app.Run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "carbontrack: %v\n", err)
		os.Exit(1)
	}
}
