package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/satyammistari/schemadoc/internal/config"
	"github.com/satyammistari/schemadoc/internal/graph"
	"github.com/satyammistari/schemadoc/internal/render"
	"github.com/satyammistari/schemadoc/internal/reporter"
	"github.com/satyammistari/schemadoc/internal/schema"
)

var docCmd = &cobra.Command{
	Use:   "doc <schema.sql>",
	Short: "Generate documentation from a DDL script",
	Args:  cobra.ExactArgs(1),
	RunE:  runDoc,
}

func init() {
	rootCmd.AddCommand(docCmd)
	docCmd.Flags().StringP("output", "o", "", "Output file (default: stdout)")
	docCmd.Flags().String("format", "", "Output format: markdown or text")
	docCmd.Flags().String("title", "", "Document title")
	docCmd.Flags().BoolP("verbose", "v", false, "Print a per-table summary")
}

func runDoc(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	verbose, _ := cmd.Flags().GetBool("verbose")
	return generateFromFile(args[0], cfg, verbose)
}

// loadConfig reads the config file and lets changed flags win over it.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return nil, err
	}
	if cmd.Flags().Changed("output") {
		cfg.Output, _ = cmd.Flags().GetString("output")
	}
	if cmd.Flags().Changed("format") {
		cfg.Format, _ = cmd.Flags().GetString("format")
	}
	if cmd.Flags().Changed("title") {
		cfg.Title, _ = cmd.Flags().GetString("title")
	}
	return cfg, nil
}

// generateFromFile runs the full pipeline over one DDL file and writes the
// document. Shared with the watch command.
func generateFromFile(path string, cfg *config.Config, verbose bool) error {
	content, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("schema file: %w", err)
	}
	s, report, err := schema.Parse(string(content))
	if err != nil {
		return err
	}
	return emit(s, report, cfg, verbose)
}

// emit filters, renders, writes and reports one parsed schema.
func emit(s *schema.Schema, report *schema.Report, cfg *config.Config, verbose bool) error {
	s = s.Filter(func(name string) bool { return !cfg.Excluded(name) })
	g := graph.Build(s)
	doc, err := render.Document(s, g, cfg.Format, cfg.Title)
	if err != nil {
		return err
	}
	if err := writeOutput(cfg.Output, doc); err != nil {
		return err
	}

	if cfg.Output != "" {
		reporter.Ok(fmt.Sprintf("%d tables documented → %s", s.Len(), cfg.Output))
	}
	if report != nil && report.SkippedCount() > 0 {
		reporter.Warn(fmt.Sprintf("%d unrecognized statements skipped", report.SkippedCount()))
		if verbose {
			for _, head := range report.Skipped {
				reporter.Info("      " + head)
			}
		}
	}
	for _, e := range g.Unresolved() {
		reporter.Warn(fmt.Sprintf("unresolved foreign key: %s → %s (table not defined)", e.From, e.To))
	}
	if verbose {
		var rows [][]string
		for _, name := range s.Names() {
			t := s.Table(name)
			rows = append(rows, []string{
				name,
				fmt.Sprint(len(t.Columns)),
				fmt.Sprint(len(t.ForeignKeys())),
				fmt.Sprint(len(t.Indexes)),
			})
		}
		reporter.Table([]string{"Table", "Columns", "FKs", "Indexes"}, rows)
	}
	return nil
}

func writeOutput(path, doc string) error {
	if path == "" {
		_, err := fmt.Print(doc)
		return err
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	return os.WriteFile(path, []byte(doc), 0o644)
}
