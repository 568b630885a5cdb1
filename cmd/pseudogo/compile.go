package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"pseudogo/internal/cache"
	"pseudogo/internal/compiler"
	"pseudogo/internal/diag"
	"pseudogo/internal/diagfmt"
	"pseudogo/internal/source"
)

var compileCmd = &cobra.Command{
	Use:   "compile [flags] [file.pseudo]",
	Short: "Compile a pseudocode source file to Python",
	Long: `Compile a pseudocode source file to Python. If file.pseudo is
omitted, the entry named by the nearest pseudogo.toml is used.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runCompile,
}

func init() {
	compileCmd.Flags().StringP("output", "o", "", "write generated Python to this path instead of stdout")
	compileCmd.Flags().Bool("no-cache", false, "skip the on-disk compile cache")
}

func runCompile(cmd *cobra.Command, args []string) error {
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
		diagfmt.Pretty(os.Stderr, bag, lf.fs, diagfmt.PrettyOpts{
			Color: wantColor(cmd, os.Stderr),
		})
	}

	if !res.Success {
		return fmt.Errorf("compilation failed with %d diagnostic(s)", bag.Len())
	}

	output, err := cmd.Flags().GetString("output")
	if err != nil {
		return err
	}
	if output == "" {
		fmt.Fprint(os.Stdout, res.PythonCode)
		return nil
	}
	if err := os.WriteFile(output, []byte(res.PythonCode), 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", output, err)
	}
	return nil
}

// compileCached runs the pipeline through the on-disk compile cache keyed
// on lf.src's content hash, falling back to a live compile on any cache
// error (a cold cache, corruption, or a filesystem the caller can't write
// to are never fatal).
func compileCached(lf *loadedFile, noCache bool) (compiler.Result, *diag.Bag, error) {
	key := cache.HashSource(lf.src)

	var disk *cache.Disk
	if !noCache {
		if d, err := cache.Open(); err == nil {
			disk = d
			if payload, ok, err := disk.Get(key); err == nil && ok {
				return resultFromPayload(payload, lf.fid), bagFromPayload(payload, lf.fid), nil
			}
		}
	}

	res := compiler.Compile(lf.fid, lf.src)
	bag := diag.NewBag()
	for _, d := range res.Diagnostics {
		bag.Add(d)
	}
	bag.Sort()

	if disk != nil {
		_ = disk.Put(key, payloadFromResult(res))
	}

	return res, bag, nil
}

func payloadFromResult(res compiler.Result) *cache.Payload {
	p := &cache.Payload{Success: res.Success, PythonCode: res.PythonCode}
	for _, d := range res.Diagnostics {
		p.Diagnostics = append(p.Diagnostics, cache.DiagnosticPayload{
			Severity:  uint8(d.Severity),
			Code:      uint16(d.Code),
			Message:   d.Message,
			StartLine: d.Span.StartLine,
			StartCol:  d.Span.StartCol,
			EndLine:   d.Span.EndLine,
			EndCol:    d.Span.EndCol,
			Hint:      d.Hint,
		})
	}
	return p
}

func resultFromPayload(p *cache.Payload, fid source.FileID) compiler.Result {
	res := compiler.Result{Success: p.Success, PythonCode: p.PythonCode}
	for _, dp := range p.Diagnostics {
		res.Diagnostics = append(res.Diagnostics, diagFromPayload(dp, fid))
	}
	return res
}

func bagFromPayload(p *cache.Payload, fid source.FileID) *diag.Bag {
	bag := diag.NewBag()
	for _, dp := range p.Diagnostics {
		bag.Add(diagFromPayload(dp, fid))
	}
	bag.Sort()
	return bag
}

func diagFromPayload(dp cache.DiagnosticPayload, fid source.FileID) diag.Diagnostic {
	return diag.Diagnostic{
		Severity: diag.Severity(dp.Severity),
		Code:     diag.Code(dp.Code),
		Message:  dp.Message,
		Span: source.Span{
			File:      fid,
			StartLine: dp.StartLine,
			StartCol:  dp.StartCol,
			EndLine:   dp.EndLine,
			EndCol:    dp.EndCol,
		},
		Hint: dp.Hint,
	}
}
