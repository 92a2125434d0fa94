package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/briandowns/spinner"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/younsl/idlestop/internal/app"
	"github.com/younsl/idlestop/internal/config"
	"github.com/younsl/idlestop/internal/logging"
	"github.com/younsl/idlestop/internal/version"
	"github.com/younsl/idlestop/pkg/formatter"
	"github.com/younsl/idlestop/pkg/stopper"
	"github.com/younsl/idlestop/pkg/utils"
)

var (
	configPath  string
	showVersion bool
	loader      = config.NewLoader()
)

// startRunSpinner creates and starts a spinner for a check in region
func startRunSpinner(region string) *spinner.Spinner {
	s := spinner.New(spinner.CharSets[9], 200*time.Millisecond)
	s.Suffix = fmt.Sprintf(" Checking running EC2 instances in %s ...", region)
	s.Writer = os.Stderr
	s.Start()
	return s
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "idlestop",
		Short: "Stop idle EC2 instances and report what was stopped",
		Long: `idlestop checks the running EC2 instances of one region, stops those whose
average CPU over the last hour is below a threshold, uploads a JSON report
to S3 and sends a summary with a download link to an SNS topic.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return loader.BindFlags(cmd.Root().PersistentFlags())
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			// If version flag is set, print version info and exit
			if showVersion {
				printVersion(cmd)
				return nil
			}
			return cmd.Help()
		},
	}

	// Version flag
	rootCmd.Flags().BoolVarP(&showVersion, "version", "v", false, "Show version information")

	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&configPath, "config", "c", "", "Path to a YAML config file (env: IDLESTOP_CONFIG)")
	flags.StringP("region", "r", utils.GetDefaultRegion(), "AWS region to check")
	flags.Float64("threshold", stopper.DefaultThreshold, "Average CPU percentage below which an instance is idle")
	flags.String("topic", "", "SNS topic ARN for notifications")
	flags.String("bucket", "", "S3 bucket for reports")
	flags.String("key-prefix", "", "Prefix for report object keys")
	flags.Duration("link-expiry", stopper.DefaultLinkExpiry, "Validity of the report download link")
	flags.String("schedule", stopper.DefaultSchedule, "Check cadence shown in notifications")
	flags.StringP("profile", "p", "", "AWS shared config profile")
	flags.String("log-level", "info", "Log level (debug, info, warn, error)")
	flags.String("log-format", logging.FormatText, "Log format (text, json)")

	rootCmd.AddCommand(newRunCmd(), newConfigCmd(), newVersionCmd())
	return rootCmd
}

// loadConfig reads the configuration, letting only explicitly set flags win
// over the file and environment
func loadConfig() (*config.Config, error) {
	loader.SetDefault("log_format", logging.FormatText)
	return loader.LoadValid(configPath)
}

func newRunCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Run one idle instance check",
		Long: `Run one idle instance check. Idle instances are stopped without
confirmation; the run is not retried if any AWS call fails.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			logger, err := logging.New(os.Stderr, cfg.LogLevel, cfg.LogFormat)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			return runCheck(ctx, cmd, cfg, logger)
		},
	}
}

// runCheck handles one check with progress feedback and a result table
func runCheck(ctx context.Context, cmd *cobra.Command, cfg *config.Config, logger *logrus.Logger) error {
	s, err := app.NewStopper(ctx, cfg, app.TriggerCLI, logger)
	if err != nil {
		return err
	}

	scanStartTime := time.Now()
	sp := startRunSpinner(cfg.Region)

	result, err := s.Run(ctx)
	scanDuration := time.Since(scanStartTime)
	if err != nil {
		sp.FinalMSG = fmt.Sprintf("✗ Check failed after %.2f seconds\n", scanDuration.Seconds())
		sp.Stop()
		app.LogFailure(logger, err)
		return err
	}

	// Set completion message with scan time and resource count
	sp.FinalMSG = fmt.Sprintf("✓ [%d instances checked] EC2 resources analyzed - Completed in %.2f seconds\n",
		result.Report.InstancesChecked, scanDuration.Seconds())
	sp.Stop()

	formatter.PrintReportTable(cmd.OutOrStdout(), result.Report, result.Link, scanStartTime, scanDuration)
	return nil
}

func newConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration as YAML",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			out, err := cfg.YAML()
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), out)
			return nil
		},
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, args []string) {
			printVersion(cmd)
		},
	}
}

func printVersion(cmd *cobra.Command) {
	fmt.Fprintln(cmd.OutOrStdout(), version.Get())
}
