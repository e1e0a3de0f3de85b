package main

import (
	"log/slog"

	"github.com/alecthomas/kong"

	"git.home.luguber.info/inful/bookgen/cmd/bookgen/commands"
	"git.home.luguber.info/inful/bookgen/internal/foundation/errors"
	"git.home.luguber.info/inful/bookgen/internal/version"
)

func main() {
	cli := &commands.CLI{}
	parser := kong.Parse(cli,
		kong.Name("bookgen"),
		kong.Description("Generate the example, unit and function pages of the Numbat book and build it with mdBook."),
		kong.UsageOnError(),
		kong.Vars{"version": version.String()},
	)
	if err := parser.Run(commands.NewGlobal(), cli); err != nil {
		errors.NewCLIErrorAdapter(cli.Verbose, slog.Default()).HandleError(err)
	}
}
