package main

import (
	"bytes"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/tsawler/restitch/audit"
	"github.com/tsawler/restitch/config"
	"github.com/tsawler/restitch/export"
	"github.com/tsawler/restitch/ingest"
	"github.com/tsawler/restitch/model"
	"github.com/tsawler/restitch/pipeline"
	"github.com/tsawler/restitch/profile"
)

const appName = "restitch"

var Version = "0.1.0"

type convertFlags struct {
	configPath string
	strategy   string
	format     string
	outDir     string
	reportPath string
	auditPath  string
	noValidate bool
	verbose    bool
}

func main() {
	rootCmd := &cobra.Command{
		Use:           appName,
		Short:         "Reassemble page-bounded table fragments into logical tables",
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(newConvertCmd(), newProfilesCmd(), newAuditCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "%s %v\n", color.RedString("error:"), err)
		os.Exit(1)
	}
}

func newConvertCmd() *cobra.Command {
	flags := &convertFlags{}

	cmd := &cobra.Command{
		Use:   "convert <input>",
		Short: "Convert a fragment document into logical tables",
		Long: `Convert reads table fragments from a JSON fragment document or an HTML
file, reassembles them into logical tables, validates the result and
writes one output file per table.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConvert(args[0], flags)
		},
	}

	cmd.Flags().StringVarP(&flags.configPath, "config", "c", "", "Path to a YAML config file")
	cmd.Flags().StringVarP(&flags.strategy, "strategy", "s", "", "Segmentation strategy (auto, score_domain, header_repetition)")
	cmd.Flags().StringVarP(&flags.format, "format", "f", "csv", "Output format (csv, markdown)")
	cmd.Flags().StringVarP(&flags.outDir, "out", "o", ".", "Directory for output tables")
	cmd.Flags().StringVar(&flags.reportPath, "report", "", "Write the validation report JSON to this path")
	cmd.Flags().StringVar(&flags.auditPath, "audit", "", "Record the conversion in this SQLite audit database")
	cmd.Flags().BoolVar(&flags.noValidate, "no-validate", false, "Skip validation")
	cmd.Flags().BoolVarP(&flags.verbose, "verbose", "v", false, "Enable debug logging")

	return cmd
}

func runConvert(input string, flags *convertFlags) error {
	logger := newLogger(flags.verbose)

	cfg := config.Default()
	if flags.configPath != "" {
		loaded, err := config.Load(flags.configPath)
		if err != nil {
			return err
		}
		cfg = loaded
	}

	strategy := cfg.Strategy()
	if flags.strategy != "" {
		parsed, err := model.ParseStrategy(flags.strategy)
		if err != nil {
			return err
		}
		strategy = parsed
	}

	format, err := export.ParseFormat(flags.format)
	if err != nil {
		return err
	}

	doc, err := readDocument(input)
	if err != nil {
		return err
	}
	logger.Debug("Document loaded", "source", input, "fragments", len(doc.Fragments))

	registry := profile.NewRegistry()
	registry.SetMinConfidence(cfg.Profiles.MinConfidence)
	registry.SetLogger(logger)
	registry.Register(profile.MarksDistribution{})
	registry.Register(profile.StaffList{})

	opts := pipeline.Options{
		Strategy:          strategy,
		ScoreDomains:      cfg.Domains(),
		ValidationEnabled: cfg.Validation.Enabled && !flags.noValidate,
		Segmentation:      cfg.SegmentConfig(),
		Validation:        cfg.ValidateConfig(),
	}

	p := pipeline.New(registry, opts)
	p.SetLogger(logger)

	result, err := p.Convert(filepath.Base(input), doc.Fragments, doc.PageTexts)
	if err != nil {
		return err
	}

	written, err := export.WriteTables(flags.outDir, result.Tables, format)
	if err != nil {
		return err
	}
	if flags.reportPath != "" {
		if err := export.WriteReport(flags.reportPath, result.Report); err != nil {
			return err
		}
	}

	if flags.auditPath != "" {
		store, err := audit.Open(flags.auditPath)
		if err != nil {
			return err
		}
		defer store.Close()
		logID, err := store.Record(result.Metadata, result.Report)
		if err != nil {
			return err
		}
		logger.Debug("Conversion recorded", "log_id", logID)
	}

	printSummary(result, written)
	return nil
}

// readDocument loads fragments from input, detecting the format from the
// content first and the file extension second.
func readDocument(input string) (*ingest.Document, error) {
	data, err := os.ReadFile(input)
	if err != nil {
		return nil, fmt.Errorf("reading input: %w", err)
	}

	format := ingest.DetectFromMagic(data)
	if format == ingest.Unknown {
		format = ingest.Detect(input)
	}

	switch format {
	case ingest.HTML:
		return ingest.HTMLDocument(bytes.NewReader(data), filepath.Base(input))
	case ingest.JSON:
		return ingest.DecodeDocument(bytes.NewReader(data))
	}
	return nil, fmt.Errorf("unrecognized input format for %s", input)
}

func printSummary(result *pipeline.Result, written []string) {
	meta := result.Metadata

	fmt.Printf("Source:    %s\n", meta.SourceName)
	if meta.ProfileID != "" {
		fmt.Printf("Profile:   %s (confidence %.2f)\n", meta.ProfileID, meta.ProfileConfidence)
	} else {
		fmt.Printf("Profile:   %s\n", color.New(color.Faint).Sprint("none"))
	}
	fmt.Printf("Tables:    %d\n", len(result.Tables))

	report := result.Report
	fmt.Printf("Validated: %s (%d passed, %d warnings, %d failed)\n",
		statusColor(report.OverallStatus), report.TablesPassed,
		report.TablesWithWarnings, report.TablesFailed)
	for _, issue := range report.Issues {
		fmt.Printf("  %s %s: %s\n", statusColor(issue.Severity), issue.TableName, issue.Message)
	}

	for _, path := range written {
		fmt.Printf("Wrote %s\n", path)
	}
	fmt.Printf("Elapsed:   %s\n", result.Elapsed.Round(time.Millisecond))
}

func statusColor(status model.Status) string {
	switch status {
	case model.StatusPassed:
		return color.GreenString(status.String())
	case model.StatusWarning:
		return color.YellowString(status.String())
	case model.StatusFailed:
		return color.RedString(status.String())
	}
	return status.String()
}

func newProfilesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "profiles",
		Short: "List the built-in document profiles",
		RunE: func(cmd *cobra.Command, args []string) error {
			registry := profile.NewRegistry()
			registry.Register(profile.MarksDistribution{})
			registry.Register(profile.StaffList{})
			for _, id := range registry.Profiles() {
				fmt.Println(id)
			}
			return nil
		},
	}
}

func newAuditCmd() *cobra.Command {
	var limit int
	var dbPath string

	cmd := &cobra.Command{
		Use:   "audit",
		Short: "Show recent conversions from the audit database",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := audit.Open(dbPath)
			if err != nil {
				return err
			}
			defer store.Close()

			entries, err := store.Recent(limit)
			if err != nil {
				return err
			}
			if len(entries) == 0 {
				fmt.Println("No conversions recorded.")
				return nil
			}
			for _, e := range entries {
				status := e.Status
				if parsed, perr := parseStatus(e.Status); perr == nil {
					status = statusColor(parsed)
				}
				fmt.Printf("%s  %-9s %s", e.Timestamp.Format("2006-01-02 15:04:05"), status, e.SourceName)
				if e.ProfileID != "" {
					fmt.Printf("  [%s]", e.ProfileID)
				}
				fmt.Println()
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "Maximum number of entries to show")
	cmd.Flags().StringVar(&dbPath, "db", "restitch_audit.db", "Path to the audit database")

	return cmd
}

func parseStatus(s string) (model.Status, error) {
	switch s {
	case "passed":
		return model.StatusPassed, nil
	case "warning":
		return model.StatusWarning, nil
	case "failed":
		return model.StatusFailed, nil
	}
	return model.StatusPassed, fmt.Errorf("unknown status %q", s)
}

func newLogger(verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}
