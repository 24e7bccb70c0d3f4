package main

import (
	"github.com/alecthomas/kong"

	"beerledger.io/BeerLedger/cmd"
)

func main() {
	ctx := kong.Parse(&cmd.CLI, kong.Name("BeerLedger"), kong.Description("BeerLedger is a beer catalog and collection tracker."))
	err := ctx.Run(&cmd.Context{Debug: cmd.CLI.Debug})
	ctx.FatalIfErrorf(err)
}
