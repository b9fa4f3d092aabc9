package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"github.com/stitts-dev/lineupgen/internal/config"
	"github.com/stitts-dev/lineupgen/internal/metrics"
	"github.com/stitts-dev/lineupgen/internal/optimizer"
	"github.com/stitts-dev/lineupgen/internal/pool"
	"github.com/stitts-dev/lineupgen/internal/report"
	"github.com/stitts-dev/lineupgen/pkg/logger"
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate lineups from a player pool",
	Long: "Loads a CSV or JSON player pool, applies liked-player weights and samples up to the " +
		"requested number of distinct lineups inside the preset's salary band.",
	Args: cobra.NoArgs,
	RunE: runGenerate,
}

// flag name -> config key
var generateFlagKeys = map[string]string{
	"pool":              "POOL_PATH",
	"preset":            "PRESET",
	"lineups":           "NUM_LINEUPS",
	"salary-cap":        "SALARY_CAP",
	"salary-floor":      "SALARY_FLOOR",
	"failure-threshold": "FAILURE_THRESHOLD",
	"workers":           "WORKERS",
	"seed":              "SEED",
	"timeout":           "TIMEOUT",
	"like":              "LIKES",
	"format":            "FORMAT",
	"metrics-file":      "METRICS_FILE",
	"log-level":         "LOG_LEVEL",
}

func init() {
	addGenerateFlags(generateCmd.Flags())
	if err := bindFlags(generateCmd, viper.GetViper()); err != nil {
		panic(fmt.Sprintf("failed to bind generate flags: %v", err))
	}

	rootCmd.AddCommand(generateCmd)
}

func addGenerateFlags(flags *pflag.FlagSet) {
	flags.StringP("pool", "p", "", "Path to the player pool (.csv or .json)")
	flags.String("preset", "nba-fanduel", "Roster preset (see 'lineupgen presets')")
	flags.IntP("lineups", "n", 1, "Number of lineups to generate")
	flags.Int("salary-cap", 0, "Override the preset salary cap")
	flags.Int("salary-floor", 0, "Override the salary floor (default 95% of the cap)")
	flags.Int("failure-threshold", optimizer.DefaultFailureThreshold, "Consecutive failed attempts before giving up")
	flags.Int("workers", 1, "Parallel candidate builders")
	flags.Int64("seed", 0, "Random seed (0 seeds from the clock)")
	flags.Duration("timeout", 0, "Stop searching after this long (0 for no limit)")
	flags.StringSliceP("like", "l", nil, "Liked player as id=weight, e.g. 1234=0.3 or 1234=30% (repeatable)")
	flags.StringP("format", "f", report.FormatTable, "Output format: table, json or csv")
	flags.String("metrics-file", "", "Write search counters to this file in Prometheus textfile format")
	flags.String("log-level", "", "Log level (debug, info, warn, error)")
}

func bindFlags(cmd *cobra.Command, v *viper.Viper) error {
	for name, key := range generateFlagKeys {
		if err := v.BindPFlag(key, cmd.Flags().Lookup(name)); err != nil {
			return fmt.Errorf("flag %s: %w", name, err)
		}
	}
	return nil
}

func runGenerate(cmd *cobra.Command, _ []string) error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}
	if cfg.PoolPath == "" {
		return fmt.Errorf("a player pool is required (--pool or LINEUPGEN_POOL_PATH)")
	}

	logger.InitLogger(cfg.LogLevel, cfg.IsDevelopment())

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	_, err = generate(ctx, cfg, cmd.OutOrStdout())
	return err
}

// generate runs one configured search and writes the report to out
func generate(ctx context.Context, cfg *config.Config, out io.Writer) (*optimizer.Result, error) {
	template, err := cfg.Template()
	if err != nil {
		return nil, err
	}

	runID := uuid.New().String()
	log := logger.WithRunContext(runID, template.Name)

	players, err := pool.LoadFile(cfg.PoolPath, template)
	if err != nil {
		return nil, err
	}

	likes, err := pool.ParseLikes(cfg.Likes)
	if err != nil {
		return nil, err
	}
	if players, err = pool.ApplyLikes(players, likes); err != nil {
		return nil, err
	}

	log.WithFields(logrus.Fields{
		"pool":    cfg.PoolPath,
		"players": len(players),
		"likes":   len(likes),
	}).Info("Player pool loaded")

	if cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.Timeout)
		defer cancel()
	}

	recorder := metrics.NewRecorder(template.Name)
	assembleConfig := cfg.AssembleConfig()
	assembleConfig.RunID = runID

	result, err := optimizer.NewAssembler(players, template, assembleConfig, logger.WithComponent(log, "assembler")).
		WithObserver(recorder).
		Generate(ctx)
	if err != nil {
		return nil, err
	}
	recorder.RecordResult(result)

	if err := recorder.WriteTextfile(cfg.MetricsFile); err != nil {
		log.WithError(err).Warn("Could not export search metrics")
	}

	if err := report.Write(out, cfg.Format, result); err != nil {
		return result, fmt.Errorf("failed to write report: %w", err)
	}
	return result, nil
}
