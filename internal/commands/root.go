// internal/commands/root.go
package benchchart

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"

	"github.com/fatih/color"
	"github.com/mwiater/benchchart/internal/appconfig"
	"github.com/mwiater/benchchart/internal/driver"
	"github.com/mwiater/benchchart/internal/logging"
	"github.com/mwiater/benchchart/internal/pipeline"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	cfgFile       string
	loadedConfig  string
	currentConfig *appconfig.Config
	appVersion    = "dev"
	appCommit     = "none"
	appDate       = "unknown"

	runPipeline = pipeline.Run
	exit        = os.Exit
)

var (
	boolFlags   = []string{"debug", "skipBuild"}
	stringFlags = []string{"baseDir", "viewer", "logFile"}
)

// rootCmd builds the benchmark target, runs it, and charts the results when
// called without a subcommand.
var rootCmd = &cobra.Command{
	Use:           "benchchart",
	Short:         "benchchart builds a benchmark target, runs it, and charts the results",
	Args:          cobra.NoArgs,
	SilenceErrors: true,
	SilenceUsage:  true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := ensureConfigLoaded(cmd); err != nil {
			return err
		}

		// Unset flags take the config file value so viper and pflag agree.
		for _, name := range boolFlags {
			if !cmd.Flags().Changed(name) {
				_ = cmd.Flags().Set(name, strconv.FormatBool(viper.GetBool(name)))
			}
		}
		for _, name := range stringFlags {
			if !cmd.Flags().Changed(name) {
				_ = cmd.Flags().Set(name, viper.GetString(name))
			}
		}
		if !cmd.Flags().Changed("repetitions") {
			_ = cmd.Flags().Set("repetitions", strconv.Itoa(viper.GetInt("repetitions")))
		}

		var cfg appconfig.Config
		if err := viper.Unmarshal(&cfg); err != nil {
			return fmt.Errorf("unmarshal config: %w", err)
		}
		if cfg.Repetitions < 0 {
			return fmt.Errorf("invalid configuration: repetitions must not be negative, got %d", cfg.Repetitions)
		}
		cfg.ConfigPath = loadedConfig
		currentConfig = &cfg

		baseDir, err := cfg.BaseDirPath()
		if err != nil {
			return err
		}
		if err := logging.Init(cfg.LogFilePath(baseDir)); err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runPipeline(cmd.Context(), GetConfig(), cmd.OutOrStdout(), cmd.ErrOrStderr())
	},
}

// Execute adds all child commands to the root command and runs it. It exits
// the process with status 1 on any failure.
func Execute() {
	rootCmd.Version = fmt.Sprintf("%s (commit: %s, built: %s)", appVersion, appCommit, appDate)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		reportError(rootCmd.ErrOrStderr(), err)
		_ = logging.Close()
		exit(1)
		return
	}
	_ = logging.Close()
}

// reportError prints err to w. Build failures also echo the captured stderr
// of the failing step.
func reportError(w io.Writer, err error) {
	var be *driver.BuildError
	if errors.As(err, &be) && be.Output != "" {
		fmt.Fprint(w, be.Output)
		if be.Output[len(be.Output)-1] != '\n' {
			fmt.Fprintln(w)
		}
	}
	fmt.Fprintln(w, color.New(color.FgRed).Sprint("Error: "+err.Error()))
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", appconfig.DefaultConfigPath, "config file (e.g., benchchart.json)")

	rootCmd.PersistentFlags().Bool("debug", false, "dump the resolved configuration and statistics")
	rootCmd.PersistentFlags().Bool("skipBuild", false, "skip the configure and build steps")
	rootCmd.PersistentFlags().String("baseDir", "", "project directory containing the build tree (defaults to the working directory)")
	rootCmd.PersistentFlags().String("viewer", "", "how to show the chart: system, tui or none")
	rootCmd.PersistentFlags().Int("repetitions", 0, "benchmark repetitions (0 = default of 4)")
	rootCmd.PersistentFlags().String("logFile", "", "path to the log file")

	for _, name := range []string{"debug", "skipBuild", "baseDir", "viewer", "repetitions", "logFile"} {
		_ = viper.BindPFlag(name, rootCmd.PersistentFlags().Lookup(name))
	}
}

// initConfig points viper at the selected config file.
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	}
}

// ensureConfigLoaded reads the config file. A missing default file is fine;
// a missing file passed explicitly with --config is not.
func ensureConfigLoaded(cmd *cobra.Command) error {
	loadedConfig = ""
	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return nil
		}
		if errors.Is(err, os.ErrNotExist) && !cmd.Flags().Changed("config") {
			return nil
		}
		return fmt.Errorf("failed to load config: %w", err)
	}
	loadedConfig = viper.ConfigFileUsed()
	return nil
}

// GetConfig returns the loaded application configuration.
func GetConfig() *appconfig.Config {
	return currentConfig
}

// SetVersionInfo allows the main package to inject build-time variables.
func SetVersionInfo(version, commit, date string) {
	appVersion = version
	appCommit = commit
	appDate = date
}
