// Command eqscope drives the six-band equalizer from the terminal.
//
// Usage:
//
//	eqscope response [--band N:TYPE:FREQ:Q:GAIN ...] [--solo N] [--output DB]
//	eqscope analyze --signal sine --freq 1000 --seconds 2 [--band ...]
//	eqscope params [--set ID=VALUE ...]
//	eqscope windows [--size N] [name ...]
//	eqscope live --signal noise --band 4:peak:1000:2:6
//
// Examples:
//
//	eqscope response --band 4:peak:1000:1:6 --per-band
//	eqscope analyze -s noise -b 2:hp:200 --top 3
//	eqscope windows hann kaiser
package main

import (
	"io"
	"log/slog"
	"os"

	"github.com/alecthomas/kong"

	"github.com/cwbudde/algo-eq/internal/logger"
)

var version = "0.1.0"

// Globals are flags shared by every command.
type Globals struct {
	Version   kong.VersionFlag `short:"v" help:"Show version information."`
	LogLevel  string           `default:"warn" env:"EQSCOPE_LOG_LEVEL" enum:"debug,info,warn,error" help:"Log level: ${enum}."`
	LogFormat string           `default:"text" env:"EQSCOPE_LOG_FORMAT" enum:"text,json" help:"Log format: ${enum}."`
}

// CLI defines the command-line interface
type CLI struct {
	Globals

	Response ResponseCmd `cmd:"" help:"Print the combined magnitude response."`
	Analyze  AnalyzeCmd  `cmd:"" help:"Run a test signal through the equalizer and list spectral peaks."`
	Params   ParamsCmd   `cmd:"" help:"List parameter ids, ranges and values."`
	Windows  WindowsCmd  `cmd:"" help:"Print spectral properties of the analysis windows."`
	Live     LiveCmd     `cmd:"" help:"Play a test signal through the equalizer with a live display."`
}

// runEnv is bound into every command's Run method.
type runEnv struct {
	out io.Writer
	log *slog.Logger
}

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		printError(os.Stderr, err)
		os.Exit(1)
	}
}

// run parses args and executes the selected command.
func run(args []string, stdout, stderr io.Writer) error {
	var cli CLI
	parser, err := kong.New(&cli,
		kong.Name("eqscope"),
		kong.Description("Six-band parametric equalizer with spectrum analysis"),
		kong.UsageOnError(),
		kong.Vars{
			"version": version,
		},
		kong.ConfigureHelp(kong.HelpOptions{Compact: true}),
		kong.Writers(stdout, stderr),
	)
	if err != nil {
		return err
	}

	ctx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	level, err := logger.ParseLevel(cli.LogLevel)
	if err != nil {
		return err
	}
	log := logger.New(logger.Config{Level: level, Format: cli.LogFormat, Output: stderr})

	return ctx.Run(&runEnv{out: stdout, log: log})
}
