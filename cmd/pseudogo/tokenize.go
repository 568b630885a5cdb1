package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"pseudogo/internal/diag"
	"pseudogo/internal/diagfmt"
	"pseudogo/internal/lexer"
)

var tokenizeCmd = &cobra.Command{
	Use:   "tokenize [flags] file.pseudo",
	Short: "Tokenize a pseudocode source file",
	Args:  cobra.ExactArgs(1),
	RunE:  runTokenize,
}

func init() {
	tokenizeCmd.Flags().String("format", "pretty", "output format (pretty|json)")
}

func runTokenize(cmd *cobra.Command, args []string) error {
	lf, err := loadFile(args[0])
	if err != nil {
		return err
	}

	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}

	bag := diag.NewBag()
	rep := diag.BagReporter{Bag: bag}
	toks := lexer.New(lf.fid, lf.src, rep).Tokenize()
	bag.Sort()

	if bag.Len() > 0 {
		diagfmt.Pretty(os.Stderr, bag, lf.fs, diagfmt.PrettyOpts{Color: wantColor(cmd, os.Stderr)})
	}

	switch format {
	case "pretty":
		return diagfmt.FormatTokensPretty(os.Stdout, toks)
	case "json":
		return diagfmt.FormatTokensJSON(os.Stdout, toks)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}
