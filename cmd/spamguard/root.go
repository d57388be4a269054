package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"spamguard/internal/core/detector"
	"spamguard/internal/core/version"
	"spamguard/internal/modkit"
	"spamguard/internal/modkit/module"
	"spamguard/internal/platform/config"
	"spamguard/internal/platform/logger"
	"spamguard/internal/services/api/spamcheck/domain"
	spammod "spamguard/internal/services/api/spamcheck/module"

	"github.com/spf13/cobra"
)

// NewRootCmd creates the root command for spamguard
func NewRootCmd() *cobra.Command {
	spamCfg := config.New().Prefix("CORE_SPAM_")

	cmd := &cobra.Command{
		Use:   "spamguard",
		Short: "Rule based spam scoring for forum posts",
		Long: `spamguard scores questions and answers against the spam rule pack.

The embedded rule pack is used unless --rules (or CORE_SPAM_RULES_FILE)
names a YAML or JSON overlay.`,
		Version:       version.InfoFor("spamguard").Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			verbose, _ := cmd.Flags().GetBool("verbose")
			logger.Init(logOptions(verbose))
		},
	}

	// Global flags that apply to all commands
	cmd.PersistentFlags().BoolP("verbose", "v", false, "Log every check to stderr")
	cmd.PersistentFlags().String("rules", spamCfg.MayString("RULES_FILE", ""), "Rule pack overlay file (yaml or json)")

	cmd.AddCommand(NewCheckCmd())
	cmd.AddCommand(NewBatchCmd())
	cmd.AddCommand(NewRulesCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// Execute runs the root command; SIGINT/SIGTERM cancel a running batch
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := NewRootCmd().ExecuteContext(ctx); err != nil {
		stop()
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// logOptions keeps the CLI quiet unless asked; LOG_LEVEL still wins when set
func logOptions(verbose bool) logger.Options {
	opt := logger.FromEnv()
	opt.Component = "cli"
	if _, set := os.LookupEnv("LOG_LEVEL"); !set {
		opt.Level = "warn"
		if verbose {
			opt.Level = "debug"
		}
	}
	return opt
}

// loadDetector resolves the --rules overlay
func loadDetector(cmd *cobra.Command) (*detector.Detector, error) {
	path, _ := cmd.Flags().GetString("rules")
	return modkit.LoadDetector(path)
}

// checker builds the spam check module and pulls its service port
func checker(cmd *cobra.Command, o spammod.Options) (domain.ServicePort, error) {
	det, err := loadDetector(cmd)
	if err != nil {
		return nil, err
	}
	mod := spammod.NewWith(modkit.Deps{Detector: det}, o)
	return module.MustPortsOf[domain.ServicePort](mod), nil
}
