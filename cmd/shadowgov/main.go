package main

import (
	"github.com/alecthomas/kong"
)

// version is set by ldflags during build
var version = "dev"

type CLI struct {
	Globals

	Version  kong.VersionFlag `short:"v" help:"Show version"`
	Decide   DecideCmd        `cmd:"" help:"Pick the AI's next card for a snapshot"`
	Plan     PlanCmd          `cmd:"" help:"Plan a full AI turn for a snapshot"`
	Assess   AssessCmd        `cmd:"" help:"Print the AI's strategic assessment of a snapshot"`
	Simulate SimulateCmd      `cmd:"" help:"Play engine-vs-engine matches"`
	Runs     RunsCmd          `cmd:"" help:"List simulation runs stored in a database"`
	Presets  PresetsCmd       `cmd:"" help:"Show the difficulty presets in effect"`
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("shadowgov"),
		kong.Description("Adaptive AI opponent for Shadow Government"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
		kong.Vars{
			"version": version,
		},
	)
	err := ctx.Run(&cli.Globals)
	ctx.FatalIfErrorf(err)
}
