package main

import (
	"fmt"
	"io"
	"os"

	"github.com/skdltmxn/undname-go/demangle"
	"github.com/spf13/cobra"
)

var (
	outputFile    string
	configFile    string
	typeinfoNames bool
	output        io.Writer
	profile       = &Profile{}
	render        *renderFlags
)

var rootCmd = &cobra.Command{
	Use:   "undname",
	Short: "Microsoft C++ symbol demangler",
	Long: `undname decodes Microsoft Visual C++ decorated names into
readable C++ declarations.

Names that are not decorated (C symbols, for example) are printed
unchanged. Render flags such as --no-calling-convention and --name-only
control which parts of a declaration are shown.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if configFile != "" {
			p, err := loadProfile(configFile)
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}
			profile = p
		} else {
			profile = &Profile{}
		}

		if outputFile != "" {
			f, err := os.Create(outputFile)
			if err != nil {
				return fmt.Errorf("failed to create output file: %w", err)
			}
			output = f
		} else {
			output = cmd.OutOrStdout()
		}
		return nil
	},
}

// execute runs the command tree. The output file is closed here because
// cobra skips post-run hooks when a command fails.
func execute() error {
	defer closeOutput()
	return rootCmd.Execute()
}

func closeOutput() {
	if f, ok := output.(*os.File); ok && f != os.Stdout {
		f.Close()
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&outputFile, "output", "o", "", "write output to file instead of stdout")
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "load a YAML profile (flags, max_nodes, format)")
	rootCmd.PersistentFlags().BoolVar(&typeinfoNames, "typeinfo-names", false, "decode .-prefixed RTTI typeinfo names instead of passing them through")
	render = bindRenderFlags(rootCmd.PersistentFlags())

	rootCmd.AddCommand(demangleCmd)
	rootCmd.AddCommand(batchCmd)
	rootCmd.AddCommand(dumpCmd)
}

// newDemangler combines the profile with the command line. Command-line
// flags are added to the profile's flags.
func newDemangler() (*demangle.Demangler, error) {
	flags, err := profile.renderFlags()
	if err != nil {
		return nil, err
	}
	flags |= render.value()
	opts := []demangle.Option{
		demangle.WithFlags(flags),
		demangle.WithMaxNodes(profile.MaxNodes),
	}
	if typeinfoNames {
		opts = append(opts, demangle.WithTypeinfoNames())
	}
	return demangle.NewDemangler(opts...), nil
}
