package cmd

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/movelang/moveir/pkg/source"
)

// GetFlag reads an expected boolean flag, exiting the process on error —
// a malformed flag access here indicates a programming mistake, not bad
// user input.
func GetFlag(cmd *cobra.Command, flag string) bool {
	r, err := cmd.Flags().GetBool(flag)
	if err != nil {
		fmt.Println(err)
		os.Exit(2)
	}

	return r
}

// readSourceFile reads a file's contents, exiting the process on an I/O
// error.
func readSourceFile(filename string) []byte {
	bytes, err := os.ReadFile(filename)
	if err != nil {
		fmt.Println(err)
		os.Exit(2)
	}

	return bytes
}

// reportParseError prints a parse failure. A *source.SyntaxError gets
// caret-style source context; anything else is printed as-is.
func reportParseError(err error) {
	var synErr *source.SyntaxError
	if errors.As(err, &synErr) {
		printSyntaxError(synErr)
		return
	}

	fmt.Println(err)
}

// printSyntaxError prints a syntax error with a caret under the offending
// span, adapted from the teacher's pkg/cmd.printSyntaxError (which locates
// the enclosing line by scanning byte offsets) to work off
// source.SyntaxError's own span/file accessors instead of a raw index.
func printSyntaxError(err *source.SyntaxError) {
	file := err.File()
	span := err.Span()
	line, col := file.Line(span.Start)

	fmt.Printf("%s:%d:%d: %s\n", file.Filename, line, col, err.Message())

	lineText, lineStart := enclosingLine(file.Text, span.Start)
	fmt.Println(lineText)

	width := span.Length()
	if width == 0 {
		width = 1
	}

	fmt.Print(strings.Repeat(" ", int(span.Start-lineStart)))
	fmt.Println(strings.Repeat("^", int(width)))
}

// enclosingLine returns the line of text containing offset, and that
// line's own starting offset.
func enclosingLine(text []byte, offset uint32) (string, uint32) {
	start := uint32(0)

	for i := uint32(0); i < offset && int(i) < len(text); i++ {
		if text[i] == '\n' {
			start = i + 1
		}
	}

	end := start

	for int(end) < len(text) && text[end] != '\n' {
		end++
	}

	return string(text[start:end]), start
}
