package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var demangleShowMangled bool

var demangleCmd = &cobra.Command{
	Use:   "demangle <name>...",
	Short: "Demangle one or more names",
	Long: `Demangle each name given on the command line and print one
declaration per line.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runDemangle,
}

func init() {
	demangleCmd.Flags().BoolVarP(&demangleShowMangled, "show-mangled", "m", false, "print the mangled name before each result")
}

func runDemangle(cmd *cobra.Command, args []string) error {
	dm, err := newDemangler()
	if err != nil {
		return err
	}

	for _, name := range args {
		s, err := dm.Demangle(name)
		if err != nil {
			return fmt.Errorf("failed to demangle %q: %w", name, err)
		}
		printResult(name, s, demangleShowMangled)
	}
	return nil
}

func printResult(mangled, demangled string, showMangled bool) {
	if showMangled {
		fmt.Fprintf(output, "%s\t%s\n", mangled, demangled)
		return
	}
	fmt.Fprintln(output, demangled)
}
