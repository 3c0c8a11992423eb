package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/goccy/go-json"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/renderer"
	"github.com/olekukonko/tablewriter/tw"

	"github.com/tenowg/optionsgen/internal/scan"
	"github.com/tenowg/optionsgen/synth"
)

type Inspect struct {
	Path   string `arg:"" optional:"" default:"." help:"Module root to scan for annotated types" env:"OPTIONSGEN_PATH"`
	Format string `help:"Output format" enum:"table,json" default:"table"`
}

// Run is called by Kong when the inspect command is executed.
func (c *Inspect) Run(logger *slog.Logger) error {
	snap, err := scan.Scan(c.Path)
	if err != nil {
		return err
	}
	res := synth.New(logger).Run(snap)

	if c.Format == "json" {
		data, err := json.MarshalIndent(res, "", "  ")
		if err != nil {
			return err
		}
		_, err = os.Stdout.Write(append(data, '\n'))
		return err
	}

	printTypes(res)
	printProperties(res)
	printCapabilities(res)
	return nil
}

func newTable() *tablewriter.Table {
	return tablewriter.NewTable(os.Stdout,
		tablewriter.WithHeaderAutoFormat(tw.Off),
		tablewriter.WithRenderer(renderer.NewBlueprint(tw.Rendition{
			Settings: tw.Settings{Separators: tw.Separators{BetweenRows: tw.Off, ShowHeader: tw.On}},
		})))
}

func printTypes(res *synth.Result) {
	fmt.Println("Configuration types")
	table := newTable()
	table.Header("Type", "Role", "Package", "Properties")
	for _, b := range res.Roots {
		_ = table.Append([]string{b.Name, "root", b.ImportPath, fmt.Sprintf("%d", len(b.Properties))})
	}
	for _, b := range res.SubTypes {
		_ = table.Append([]string{b.Name, "subtype", b.ImportPath, fmt.Sprintf("%d", len(b.Properties))})
	}
	_ = table.Render()
	fmt.Println()
}

func printProperties(res *synth.Result) {
	fmt.Println("Properties")
	table := newTable()
	table.Header("Type", "Property", "Display", "Declared", "Required", "Newable", "Chain")
	appendProps := func(b synth.ConfigTypeBundle) {
		for _, p := range b.Properties {
			chain := "-"
			if ch, ok := b.Chains[p.Name]; ok {
				chain = fmt.Sprintf("%d", len(ch.Slots))
			}
			_ = table.Append([]string{
				b.Name, p.Name, p.DisplayName, p.Type.String(),
				fmt.Sprintf("%t", p.Required), fmt.Sprintf("%t", p.Newable), chain,
			})
		}
	}
	for _, b := range res.Roots {
		appendProps(b)
	}
	for _, b := range res.SubTypes {
		appendProps(b)
	}
	_ = table.Render()
	fmt.Println()
}

func printCapabilities(res *synth.Result) {
	fmt.Println("Capabilities")
	table := newTable()
	table.Header("Interface", "Method", "Whitelist")
	for _, c := range res.Capabilities {
		whitelist := "(all)"
		if len(c.Whitelist) > 0 {
			whitelist = strings.Join(c.Whitelist, ", ")
		}
		_ = table.Append([]string{c.Name, c.Method, whitelist})
	}
	_ = table.Render()
}
