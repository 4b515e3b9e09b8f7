package main

import (
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"
)

// Version is set at build time
var Version = "dev"

// options holds CLI flags layered over the config file
type options struct {
	configFile string
	search     string
	input      string
	format     string
	csvOutput  string
	sarifFile  string
	history    string
	noColor    bool
	timeout    int
}

var opts options

func main() {
	if err := newRootCmd().Execute(); err != nil {
		log.Fatal(err)
	}
}

// newRootCmd creates the root cobra command
func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "pageweigh [urls...]",
		Short: "Analyze the JavaScript weight, provenance, and security of live web pages",
		Long: `pageweigh opens pages in a headless browser and reports on their scripts:
  - size, transfer size, and load/parse timing per script
  - first-party/third-party/CDN provenance
  - detected frameworks and libraries with known-vulnerability checks
  - dynamic code execution, untrusted domains, and missing CSP`,
		SilenceUsage: true,
		RunE:         runAnalysis,
	}

	rootCmd.PersistentFlags().StringVarP(&opts.configFile, "config", "c", "", "config file path")
	rootCmd.PersistentFlags().StringVar(&opts.search, "search", "", "Google Places search prompt to discover target URLs")
	rootCmd.PersistentFlags().StringVarP(&opts.input, "input", "i", "", "path to input CSV file with URLs")
	rootCmd.PersistentFlags().StringVarP(&opts.format, "format", "f", "", "output format (terminal, json, text)")
	rootCmd.PersistentFlags().StringVarP(&opts.csvOutput, "output", "o", "", "path to output CSV report")
	rootCmd.PersistentFlags().StringVar(&opts.sarifFile, "sarif", "", "write SARIF findings to file")
	rootCmd.PersistentFlags().StringVar(&opts.history, "history", "", "path to per-domain history store")
	rootCmd.PersistentFlags().BoolVar(&opts.noColor, "no-color", false, "disable colored output")
	rootCmd.PersistentFlags().IntVar(&opts.timeout, "timeout", 0, "per-page timeout in seconds")

	rootCmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("pageweigh version %s\n", Version)
		},
	})

	return rootCmd
}

func runAnalysis(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig()
	if err != nil {
		return err
	}

	if opts.search == "" && opts.input == "" && len(args) == 0 {
		return fmt.Errorf("no targets: pass URLs, --input, or --search")
	}

	ctx := cmd.Context()

	websites, err := extractWebsites(ctx, cfg, opts.search, opts.input, args)
	if err != nil {
		return err
	}
	if len(websites) == 0 {
		return fmt.Errorf("no analyzable URLs found")
	}

	a, err := newAnalyzer(cfg)
	if err != nil {
		return err
	}

	spinner := newProgressSpinner(os.Stdout)
	spinner.Start(fmt.Sprintf("Analyzing %d page(s)", len(websites)))
	a.progress = spinner.Update
	snapshots, err := a.analyzeWebsites(ctx, websites)
	spinner.Stop(fmt.Sprintf("Analyzed %d of %d page(s)", len(snapshots), len(websites)))
	if err != nil {
		return err
	}

	return writeOutputs(cfg, snapshots)
}

// resolveConfig loads the config file and layers CLI flags on top
func resolveConfig() (*Config, error) {
	cfg := DefaultConfig()

	path := opts.configFile
	if path == "" {
		path = FindConfig(".")
	}
	if path != "" {
		loaded, err := LoadConfig(path)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	if opts.format != "" {
		cfg.Output.Format = opts.format
	}
	if opts.csvOutput != "" {
		cfg.Output.CSVFile = opts.csvOutput
	}
	if opts.sarifFile != "" {
		cfg.Output.SARIFFile = opts.sarifFile
	}
	if opts.history != "" {
		cfg.Output.HistoryFile = opts.history
	}
	if opts.noColor {
		cfg.Output.NoColor = true
	}
	if opts.timeout > 0 {
		cfg.TimeoutSeconds = opts.timeout
	}

	return cfg, nil
}

// writeOutputs renders and persists the snapshots per the configuration
func writeOutputs(cfg *Config, snapshots []AnalysisSnapshot) error {
	switch cfg.Output.Format {
	case "json":
		if err := WriteJSON(os.Stdout, snapshots); err != nil {
			return err
		}
	case "text":
		if err := WriteText(os.Stdout, snapshots); err != nil {
			return err
		}
	default:
		writer := NewTerminalWriter(os.Stdout, cfg.Output.NoColor)
		for _, snap := range snapshots {
			if err := writer.Write(snap); err != nil {
				return err
			}
		}
	}

	if cfg.Output.CSVFile != "" {
		sink, err := NewCSVSink(cfg.Output.CSVFile)
		if err != nil {
			return err
		}
		if err := sink.WriteSnapshots(snapshots); err != nil {
			return err
		}
	}

	if cfg.Output.SARIFFile != "" {
		if err := WriteSARIF(cfg.Output.SARIFFile, snapshots); err != nil {
			return err
		}
	}

	if cfg.Output.HistoryFile != "" {
		store, err := openHistoryStore(cfg.Output.HistoryFile)
		if err != nil {
			return err
		}
		for _, snap := range snapshots {
			if host, ok := resolveHost(snap.URL); ok && host != "" {
				store.Append(host, snap)
			}
		}
		if err := store.Save(); err != nil {
			return err
		}
	}

	return nil
}
