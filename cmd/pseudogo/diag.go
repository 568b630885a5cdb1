package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"pseudogo/internal/diag"
	"pseudogo/internal/diagfmt"
	"pseudogo/internal/ui"
)

var diagCmd = &cobra.Command{
	Use:   "diag [flags] [file.pseudo]",
	Short: "Report diagnostics for a pseudocode source file",
	Long: `Report diagnostics for a pseudocode source file. If file.pseudo is
omitted, the entry named by the nearest pseudogo.toml is used.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runDiag,
}

func init() {
	diagCmd.Flags().String("format", "pretty", "output format (pretty|json)")
	diagCmd.AddCommand(diagBrowseCmd)
}

var diagBrowseCmd = &cobra.Command{
	Use:   "browse [file.pseudo]",
	Short: "Interactively browse diagnostics for a pseudocode source file",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runDiagBrowse,
}

func compileToBag(args []string) (*diag.Bag, *loadedFile, error) {
	path, err := resolveSourcePath(args)
	if err != nil {
		return nil, nil, err
	}
	lf, err := loadFile(path)
	if err != nil {
		return nil, nil, err
	}
	_, bag, err := compileCached(lf, false)
	if err != nil {
		return nil, nil, err
	}
	return bag, lf, nil
}

func runDiag(cmd *cobra.Command, args []string) error {
	bag, lf, err := compileToBag(args)
	if err != nil {
		return err
	}

	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}

	max := maxDiagnosticsFlag(cmd)
	shown := diag.NewBag()
	for _, d := range truncateBag(bag, max) {
		shown.Add(d)
	}

	switch format {
	case "pretty":
		diagfmt.Pretty(os.Stdout, shown, lf.fs, diagfmt.PrettyOpts{Color: wantColor(cmd, os.Stdout), ShowNotes: true})
	case "json":
		if err := diagfmt.JSON(os.Stdout, shown, lf.fs, diagfmt.JSONOpts{IncludeNotes: true}); err != nil {
			return err
		}
	default:
		return fmt.Errorf("unknown format: %s", format)
	}

	if bag.HasErrors() {
		return fmt.Errorf("%d error(s) found", bag.Len())
	}
	return nil
}

func runDiagBrowse(cmd *cobra.Command, args []string) error {
	bag, lf, err := compileToBag(args)
	if err != nil {
		return err
	}
	if bag.Len() == 0 {
		fmt.Fprintln(os.Stdout, "no diagnostics")
		return nil
	}
	model := ui.NewBrowseModel(bag, lf.fs)
	_, err = tea.NewProgram(model).Run()
	return err
}
