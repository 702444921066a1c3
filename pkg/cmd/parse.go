package cmd

import (
	"fmt"
	"os"

	segjson "github.com/segmentio/encoding/json"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/movelang/moveir/pkg/parser"
	"github.com/movelang/moveir/pkg/printer"
)

var parseCmd = &cobra.Command{
	Use:   "parse",
	Short: "Parse Move IR source and report syntax errors.",
}

var parseProgramCmd = &cobra.Command{
	Use:   "program source_file",
	Short: "Parse a full program (optional module preamble plus a script).",
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) != 1 {
			fmt.Println(cmd.UsageString())
			os.Exit(1)
		}

		if GetFlag(cmd, "verbose") {
			log.SetLevel(log.DebugLevel)
		}

		filename := args[0]
		logger := log.WithField("file", filename)
		logger.Debug("parsing program")

		src := readSourceFile(filename)

		prog, err := parser.ParseProgram(filename, src)
		if err != nil {
			logger.WithError(err).Debug("parse failed")
			reportParseError(err)
			os.Exit(1)
		}

		if GetFlag(cmd, "json") {
			emitJSON(prog)
			return
		}

		if _, err := printer.PrintProgram(os.Stdout, prog); err != nil {
			fmt.Println(err)
			os.Exit(2)
		}
	},
}

var parseModuleCmd = &cobra.Command{
	Use:   "module source_file",
	Short: "Parse a single module definition.",
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) != 1 {
			fmt.Println(cmd.UsageString())
			os.Exit(1)
		}

		if GetFlag(cmd, "verbose") {
			log.SetLevel(log.DebugLevel)
		}

		filename := args[0]
		logger := log.WithField("file", filename)
		logger.Debug("parsing module")

		src := readSourceFile(filename)

		mod, err := parser.ParseModule(filename, src)
		if err != nil {
			logger.WithError(err).Debug("parse failed")
			reportParseError(err)
			os.Exit(1)
		}

		if GetFlag(cmd, "json") {
			emitJSON(mod)
			return
		}

		if _, err := printer.PrintModule(os.Stdout, mod); err != nil {
			fmt.Println(err)
			os.Exit(2)
		}
	},
}

// emitJSON encodes a parsed value with segmentio/encoding/json, which the
// teacher's go.mod already carried as an indirect dependency of its own
// JSON trace format (pkg/trace/json) — promoted here to a direct one, used
// for the AST's debug/tool-consumption representation rather than a wire
// trace format.
func emitJSON(v any) {
	enc := segjson.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")

	if err := enc.Encode(v); err != nil {
		fmt.Println(err)
		os.Exit(2)
	}
}

func init() {
	rootCmd.AddCommand(parseCmd)
	parseCmd.AddCommand(parseProgramCmd)
	parseCmd.AddCommand(parseModuleCmd)
}
