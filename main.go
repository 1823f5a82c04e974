package main

import (
	"context"
	"os"

	"github.com/PolarWolf314/lockbox/cmd"
	"github.com/awnumar/memguard"
)

func main() {
	memguard.CatchInterrupt()

	code := cmd.Execute(context.Background())
	memguard.Purge()
	os.Exit(code)
}
