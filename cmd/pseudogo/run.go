package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"pseudogo/internal/diagfmt"
	"pseudogo/internal/sandbox"
)

var runCmd = &cobra.Command{
	Use:   "run [flags] [file.pseudo]",
	Short: "Compile and execute a pseudocode source file",
	Long: `Compile and execute a pseudocode source file. If file.pseudo is
omitted, the entry named by the nearest pseudogo.toml is used.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runRun,
}

func init() {
	runCmd.Flags().Duration("timeout", 10*time.Second, "execution timeout")
	runCmd.Flags().Bool("no-cache", false, "skip the on-disk compile cache")
}

func runRun(cmd *cobra.Command, args []string) error {
	path, err := resolveSourcePath(args)
	if err != nil {
		return err
	}
	lf, err := loadFile(path)
	if err != nil {
		return err
	}

	noCache, err := cmd.Flags().GetBool("no-cache")
	if err != nil {
		return err
	}

	res, bag, err := compileCached(lf, noCache)
	if err != nil {
		return err
	}

	if bag.Len() > 0 {
		diagfmt.Pretty(os.Stderr, bag, lf.fs, diagfmt.PrettyOpts{Color: wantColor(cmd, os.Stderr)})
	}
	if !res.Success {
		return fmt.Errorf("compilation failed with %d diagnostic(s)", bag.Len())
	}

	timeout, err := cmd.Flags().GetDuration("timeout")
	if err != nil {
		return err
	}

	stdin, err := io.ReadAll(os.Stdin)
	if err != nil {
		return fmt.Errorf("reading stdin: %w", err)
	}

	client := sandbox.LocalExec{}
	result, err := client.Run(context.Background(), sandbox.RunRequest{
		PythonCode: res.PythonCode,
		StdinLines: splitStdinLines(string(stdin)),
		Timeout:    timeout,
	})
	if err != nil {
		return fmt.Errorf("running sandbox: %w", err)
	}

	fmt.Fprint(os.Stdout, result.Stdout)
	fmt.Fprint(os.Stderr, result.Stderr)
	if result.TimedOut {
		return fmt.Errorf("execution timed out after %s", timeout)
	}
	if len(result.Diagnostics) > 0 {
		return fmt.Errorf("program raised an unhandled exception")
	}
	return nil
}

func splitStdinLines(raw string) []string {
	if raw == "" {
		return nil
	}
	return strings.Split(strings.TrimRight(raw, "\n"), "\n")
}
