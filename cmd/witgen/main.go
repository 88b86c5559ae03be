// witgen generates KECCAK256 witnesses from EVM execution traces.
package main

import (
	"os"

	"github.com/urfave/cli/v2"

	"github.com/bnb-chain/zkwitness/cmd/utils"
)

var app = &cli.App{
	Name:                 "witgen",
	Usage:                "the EVM witness generator",
	EnableBashCompletion: true,
	Flags:                append([]cli.Flag{utils.ConfigFileFlag}, utils.LogFlags...),
	Commands: []*cli.Command{
		replayCommand,
		dumpConfigCommand,
	},
}

func main() {
	if err := app.Run(os.Args); err != nil {
		utils.Fatalf("%v", err)
	}
}
