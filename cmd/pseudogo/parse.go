package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"pseudogo/internal/diag"
	"pseudogo/internal/diagfmt"
	"pseudogo/internal/lexer"
	"pseudogo/internal/parser"
)

var parseCmd = &cobra.Command{
	Use:   "parse [flags] file.pseudo",
	Short: "Parse a pseudocode source file and dump its AST",
	Args:  cobra.ExactArgs(1),
	RunE:  runParse,
}

func init() {
	parseCmd.Flags().String("format", "tree", "output format (tree|json)")
}

func runParse(cmd *cobra.Command, args []string) error {
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
	prog := parser.Parse(lf.fid, toks, rep)
	bag.Sort()

	if bag.Len() > 0 {
		diagfmt.Pretty(os.Stderr, bag, lf.fs, diagfmt.PrettyOpts{Color: wantColor(cmd, os.Stderr)})
	}

	switch format {
	case "tree":
		fmt.Fprintln(os.Stdout, diagfmt.BuildProgramTree(prog, lf.fs))
		return nil
	case "json":
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(prog)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}
