package main

import (
	"os"
	sys "os"
)

func run() error { return nil }

func main() {
	if err := run(); err != nil {
		os.Exit(1) // want "использование os.Exit в функции main запрещено"
	}

	defer sys.Exit(0) // want "использование os.Exit в функции main запрещено"

	go func() {
		os.Exit(2)
	}()
}

func helper() {
	os.Exit(3)
}
