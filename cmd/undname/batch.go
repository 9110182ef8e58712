package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

var (
	batchSkipErrors  bool
	batchShowMangled bool
	batchLimit       int
)

var batchCmd = &cobra.Command{
	Use:   "batch [file]",
	Short: "Demangle names read from a file or stdin",
	Long: `Demangle names read one per line from a file, or from stdin when
no file is given. Blank lines are ignored.

By default the first failure stops the run. With --skip-errors each
failure is reported on stderr as "error: <name>: <reason>" and the run
continues.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runBatch,
}

func init() {
	batchCmd.Flags().BoolVar(&batchSkipErrors, "skip-errors", false, "report failures and continue")
	batchCmd.Flags().BoolVarP(&batchShowMangled, "show-mangled", "m", false, "print the mangled name before each result")
	batchCmd.Flags().IntVarP(&batchLimit, "limit", "n", 0, "limit number of names processed (0 = unlimited)")
}

func runBatch(cmd *cobra.Command, args []string) error {
	var in io.Reader = cmd.InOrStdin()
	if len(args) == 1 {
		f, err := os.Open(args[0])
		if err != nil {
			return fmt.Errorf("failed to open input: %w", err)
		}
		defer f.Close()
		in = f
	}

	dm, err := newDemangler()
	if err != nil {
		return err
	}

	stderr := cmd.ErrOrStderr()
	scanner := bufio.NewScanner(in)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	count, failed := 0, 0
	for scanner.Scan() {
		name := strings.TrimSpace(scanner.Text())
		if name == "" {
			continue
		}
		if batchLimit > 0 && count >= batchLimit {
			break
		}
		count++

		s, err := dm.Demangle(name)
		if err != nil {
			if !batchSkipErrors {
				return fmt.Errorf("failed to demangle %q: %w", name, err)
			}
			failed++
			fmt.Fprintf(stderr, "error: %s: %v\n", name, err)
			continue
		}
		printResult(name, s, batchShowMangled)
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("failed to read input: %w", err)
	}

	if failed > 0 {
		fmt.Fprintf(stderr, "%d of %d names failed\n", failed, count)
	}
	return nil
}
