package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/spf13/cobra"
	"github.com/yuya-takeyama/dupscan/internal/logging"
	"github.com/yuya-takeyama/dupscan/internal/report"
	"github.com/yuya-takeyama/dupscan/pkg/finder"
	"github.com/yuya-takeyama/dupscan/pkg/logger"
	"github.com/yuya-takeyama/dupscan/pkg/s3client"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
	builtBy = "unknown"
)

type scanConfig struct {
	directory   string
	stages      []string
	excludes    []string
	jsonFile    string
	reportS3URI string
	profile     string
	region      string
	quiet       bool
	verbose     bool
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		logging.NewLogger(false, false).Error("%v", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var cfg scanConfig

	rootCmd := &cobra.Command{
		Use:   "dupscan <Directory>",
		Short: "Find duplicate files by size and content digest",
		Long: `dupscan walks a directory tree and reports groups of files with identical
content. Candidates are narrowed stage by stage, cheapest first: file size,
then one or more content digests. Files are never modified.`,
		Version:      fmt.Sprintf("%s (commit: %s, built at: %s by %s)", version, commit, date, builtBy),
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg.directory = args[0]

			if err := validateConfig(&cfg); err != nil {
				return err
			}

			ctx := context.Background()
			return run(ctx, &cfg)
		},
	}

	rootCmd.Flags().StringSliceVar(&cfg.stages, "stages", finder.DefaultStageNames(), "Comparison stages in order (size, md5, sha1, sha256, xxh3, crc64nvme)")
	rootCmd.Flags().StringSliceVar(&cfg.excludes, "exclude", nil, "Exclude patterns (multiple allowed, trailing / excludes a directory)")
	rootCmd.Flags().StringVar(&cfg.jsonFile, "json-file", "", "Path to output the report as JSON file")
	rootCmd.Flags().StringVar(&cfg.reportS3URI, "report-s3-uri", "", "Upload the JSON report to s3://bucket/key")
	rootCmd.Flags().StringVar(&cfg.profile, "profile", "", "AWS profile to use for --report-s3-uri")
	rootCmd.Flags().StringVar(&cfg.region, "region", "", "AWS region (uses default if not specified)")
	rootCmd.Flags().BoolVar(&cfg.quiet, "quiet", false, "Suppress non-error output")
	rootCmd.Flags().BoolVar(&cfg.verbose, "verbose", false, "Log progress of each stage")

	return rootCmd
}

func validateConfig(cfg *scanConfig) error {
	if cfg.directory == "" {
		return fmt.Errorf("directory is required")
	}

	if _, err := finder.ParseStages(cfg.stages); err != nil {
		return err
	}

	if cfg.reportS3URI != "" {
		if _, _, err := s3client.ParseS3URI(cfg.reportS3URI); err != nil {
			return err
		}
	}

	if cfg.quiet && cfg.verbose {
		return fmt.Errorf("--quiet and --verbose cannot be used together")
	}

	return nil
}

func run(ctx context.Context, cfg *scanConfig) error {
	startTime := time.Now()
	out := logging.NewLogger(cfg.quiet, cfg.verbose)

	stages, err := finder.ParseStages(cfg.stages)
	if err != nil {
		return err
	}

	var stageLogger logger.Logger = &logger.NullLogger{}
	if cfg.verbose {
		stageLogger = &logger.VerboseLogger{Logger: log.New(os.Stderr, "", log.LstdFlags)}
	}

	job := finder.NewJob(cfg.directory, finder.Options{
		Stages:   stages,
		Excludes: cfg.excludes,
		Logger:   stageLogger,
	})

	out.Debug("Scanning %s with stages %v", cfg.directory, finder.StageNames(stages))

	groups, err := job.Execute()
	if err != nil {
		return fmt.Errorf("find duplicates: %w", err)
	}

	rep, err := report.Build(job.Filesystem(), cfg.directory, finder.StageNames(stages), groups)
	if err != nil {
		return fmt.Errorf("build report: %w", err)
	}

	if len(rep.Groups) == 0 {
		out.Info("No duplicates found in %s", rep.Root)
	} else if !cfg.quiet {
		if err := report.Print(out.Out(), rep); err != nil {
			return fmt.Errorf("print report: %w", err)
		}
	}

	if cfg.jsonFile != "" {
		if err := report.WriteJSON(cfg.jsonFile, rep); err != nil {
			return fmt.Errorf("failed to write report JSON: %w", err)
		}
		out.Debug("Wrote report to %s", cfg.jsonFile)
	}

	if cfg.reportS3URI != "" {
		if err := uploadReport(ctx, cfg, rep); err != nil {
			return err
		}
		out.Info("Uploaded report to %s", cfg.reportS3URI)
	}

	out.PrintSummary(rep.Summary.Groups, rep.Summary.Files, rep.Summary.Redundant, rep.Summary.WastedBytes, time.Since(startTime))

	return nil
}

func uploadReport(ctx context.Context, cfg *scanConfig, rep *report.Report) error {
	var configOpts []func(*config.LoadOptions) error
	if cfg.profile != "" {
		configOpts = append(configOpts, config.WithSharedConfigProfile(cfg.profile))
	}
	if cfg.region != "" {
		configOpts = append(configOpts, config.WithRegion(cfg.region))
	}

	awsCfg, err := config.LoadDefaultConfig(ctx, configOpts...)
	if err != nil {
		return fmt.Errorf("failed to load AWS config: %w", err)
	}

	return report.Upload(ctx, s3client.NewAWSClient(awsCfg), cfg.reportS3URI, rep)
}
