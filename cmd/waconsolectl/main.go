package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/ettle/strcase"
	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-waconsole/components/records"
	"github.com/goliatone/go-waconsole/components/variations"
)

type cli struct {
	Analyze analyzeCmd `cmd:"" help:"Analyze a message template and print its variation breakdown."`
	Views   viewsCmd   `cmd:"" help:"Work with record view manifests."`
}

type viewsCmd struct {
	Lint lintCmd `cmd:"" help:"Validate a view manifest and its per-kind configurations."`
}

type analyzeCmd struct {
	Template        string `arg:"" optional:"" help:"Template text to analyze. Reads stdin when omitted."`
	File            string `type:"path" help:"Read the template from a file instead of the argument."`
	Format          string `default:"text" enum:"text,json,yaml" help:"Output format (text, json, yaml)."`
	MaxCombinations int    `default:"500" help:"Combination ceiling before the template is rejected."`
	MaxLength       int    `default:"280" help:"Maximum characters allowed per variation."`
}

type lintCmd struct {
	ManifestPath string `arg:"" type:"path" help:"Path to the view manifest YAML file."`
}

func main() {
	ctx := kong.Parse(&cli{},
		kong.Description("Operator utility for the gateway console: template analysis and view manifest linting."),
		kong.UsageOnError(),
	)
	err := ctx.Run(context.Background())
	ctx.FatalIfErrorf(err)
}

func (cmd *analyzeCmd) Run(_ context.Context) error {
	template, err := cmd.readTemplate()
	if err != nil {
		return err
	}
	analyzer := variations.New(variations.Limits{
		MaxCombinations:    cmd.MaxCombinations,
		MaxVariationLength: cmd.MaxLength,
	})
	analysis := analyzer.Analyze(template)

	switch cmd.Format {
	case "json":
		encoder := json.NewEncoder(os.Stdout)
		encoder.SetIndent("", "  ")
		return encoder.Encode(analysis)
	case "yaml":
		encoder := yaml.NewEncoder(os.Stdout)
		encoder.SetIndent(2)
		defer encoder.Close()
		return encoder.Encode(analysis)
	default:
		printAnalysis(analysis)
		if !analysis.IsValid() {
			return fmt.Errorf("waconsolectl: template has %d error(s)", len(analysis.Errors))
		}
		return nil
	}
}

func (cmd *analyzeCmd) readTemplate() (string, error) {
	if cmd.File != "" {
		data, err := os.ReadFile(cmd.File)
		if err != nil {
			return "", fmt.Errorf("waconsolectl: read template file: %w", err)
		}
		return string(data), nil
	}
	if cmd.Template != "" {
		return cmd.Template, nil
	}
	data, err := os.ReadFile(os.Stdin.Name())
	if err != nil {
		return "", fmt.Errorf("waconsolectl: read stdin: %w", err)
	}
	return string(data), nil
}

func printAnalysis(analysis variations.Analysis) {
	fmt.Fprintf(os.Stdout, "Combinations: %d\n", analysis.TotalCombinations)
	for _, block := range analysis.Blocks {
		fmt.Fprintf(os.Stdout, "Block %d: %s (%d variations)\n",
			block.Index+1, strings.Join(block.Variations, " | "), block.VariationCount)
	}
	for _, issue := range analysis.Errors {
		fmt.Fprintf(os.Stdout, "ERROR [%s] %s\n", issueLabel(issue), issue.Message)
	}
	for _, issue := range analysis.Warnings {
		fmt.Fprintf(os.Stdout, "WARN  [%s] %s\n", issueLabel(issue), issue.Message)
	}
}

func issueLabel(issue variations.Issue) string {
	return strcase.ToCase(string(issue.Kind), strcase.TitleCase, ' ')
}

func (cmd *lintCmd) Run(_ context.Context) error {
	path, err := filepath.Abs(cmd.ManifestPath)
	if err != nil {
		return fmt.Errorf("waconsolectl: resolve manifest path: %w", err)
	}
	registry := records.NewRegistry()
	doc, err := registry.LoadManifestFile(path)
	if err != nil {
		return err
	}
	views := 0
	for _, collection := range doc.Collections {
		views += len(collection.Views)
	}
	fmt.Fprintf(os.Stdout, "✓ %s: %d collection(s), %d view(s)\n", path, len(doc.Collections), views)
	return nil
}
