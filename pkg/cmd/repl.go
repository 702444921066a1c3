package cmd

import (
	"bufio"
	"fmt"
	"os"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/movelang/moveir/pkg/parser"
)

// replCmd reads one Cmd per line from stdin and parses it, the interactive
// analogue of the "REPL / test fixtures" entry point spec.md §6 names.
// Whether a prompt is shown is decided by term.IsTerminal, matching the
// teacher's pkg/util/termio use of the same check to tell an interactive
// session from a piped one.
var replCmd = &cobra.Command{
	Use:   "repl",
	Short: "Read Move IR commands from stdin, one per line, and parse each.",
	Run: func(cmd *cobra.Command, args []string) {
		if GetFlag(cmd, "verbose") {
			log.SetLevel(log.DebugLevel)
		}

		interactive := term.IsTerminal(int(os.Stdin.Fd()))
		echo, _ := cmd.Flags().GetBool("echo")

		runRepl(os.Stdin, os.Stdout, interactive, echo)
	},
}

func runRepl(in *os.File, out *os.File, interactive, echo bool) {
	scanner := bufio.NewScanner(in)

	for {
		if interactive {
			fmt.Fprint(out, "moveir> ")
		}

		if !scanner.Scan() {
			return
		}

		line := scanner.Text()
		if line == "" {
			continue
		}

		cmdNode, err := parser.ParseCommand("<repl>", []byte(line))
		if err != nil {
			reportParseError(err)
			continue
		}

		if echo {
			fmt.Fprintf(out, "%#v\n", cmdNode)
		} else {
			fmt.Fprintln(out, "ok")
		}
	}
}

func init() {
	rootCmd.AddCommand(replCmd)
	replCmd.Flags().Bool("echo", false, "print the parsed command's Go representation instead of \"ok\"")
}
