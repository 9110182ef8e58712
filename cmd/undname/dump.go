package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/skdltmxn/undname-go/demangle"
	"github.com/spf13/cobra"
)

var dumpFormat string

var dumpCmd = &cobra.Command{
	Use:   "dump <name>",
	Short: "Dump the syntax tree of a name",
	Long: `Parse a decorated name and print its syntax tree. Each node is
shown with its kind and its rendering under the selected flags.

Supported formats:
  - text: Indented tree (default)
  - json: JSON format`,
	Args: cobra.ExactArgs(1),
	RunE: runDump,
}

func init() {
	dumpCmd.Flags().StringVarP(&dumpFormat, "format", "f", "text", "output format (text, json)")
}

// NodeDump is the JSON form of one AST node.
type NodeDump struct {
	Kind     string     `json:"kind"`
	Text     string     `json:"text"`
	Children []NodeDump `json:"children,omitempty"`
}

// SymbolDump is the JSON document written by dump.
type SymbolDump struct {
	Mangled   string   `json:"mangled"`
	Demangled string   `json:"demangled"`
	Flags     string   `json:"flags"`
	Nodes     int      `json:"nodes"`
	Tree      NodeDump `json:"tree"`
}

func runDump(cmd *cobra.Command, args []string) error {
	name := args[0]

	dm, err := newDemangler()
	if err != nil {
		return err
	}
	res, err := dm.Parse(name)
	if err != nil {
		return fmt.Errorf("failed to parse %q: %w", name, err)
	}

	flags := dm.Flags()
	switch format := profile.format(dumpFormat, cmd.Flags().Changed("format")); format {
	case "json":
		return dumpJSON(name, res, flags)
	case "text":
		return dumpText(name, res, flags)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}

func buildNodeDump(n demangle.Node, flags demangle.Flags) NodeDump {
	d := NodeDump{
		Kind: n.Kind().String(),
		Text: demangle.RenderNode(n, flags),
	}
	for _, c := range demangle.Children(n) {
		d.Children = append(d.Children, buildNodeDump(c, flags))
	}
	return d
}

func dumpJSON(name string, res *demangle.Result, flags demangle.Flags) error {
	dump := &SymbolDump{
		Mangled:   name,
		Demangled: demangle.Render(res.Symbol, flags),
		Flags:     flags.String(),
		Nodes:     res.Nodes,
		Tree:      buildNodeDump(res.Symbol, flags),
	}

	encoder := json.NewEncoder(output)
	encoder.SetIndent("", "  ")
	return encoder.Encode(dump)
}

func dumpText(name string, res *demangle.Result, flags demangle.Flags) error {
	fmt.Fprintf(output, "Mangled: %s\n", name)
	fmt.Fprintf(output, "Demangled: %s\n", demangle.Render(res.Symbol, flags))
	fmt.Fprintf(output, "Nodes: %d\n", res.Nodes)
	fmt.Fprintln(output)
	writeTree(buildNodeDump(res.Symbol, flags), 0)
	return nil
}

func writeTree(d NodeDump, depth int) {
	fmt.Fprintf(output, "%s%s: %s\n", strings.Repeat("  ", depth), d.Kind, d.Text)
	for _, c := range d.Children {
		writeTree(c, depth+1)
	}
}
