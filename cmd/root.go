package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"dirflat/pkg/flatten"
	"dirflat/pkg/logging"
	"dirflat/pkg/settings"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var logger *zap.Logger

var (
	flagExts    []string
	flagSkips   []string
	flagConfig  string
	flagVerbose bool
)

// rootCmd flattens a directory tree into a single text document.
var rootCmd = &cobra.Command{
	Use:   "dirflat <directory> [output-file]",
	Short: "Dirflat combines matching files under a directory into one text document",
	Long: `Dirflat walks a directory tree and concatenates the contents of files
matching the configured extensions into a single document, skipping the
configured folder names. The result is written to a timestamped output file
unless an explicit output path is given.`,
	Args:         cobra.RangeArgs(1, 2),
	SilenceUsage: true,
	RunE:         runFlatten,
}

// Execute wires the supplied logger into the command tree and runs it.
func Execute(l *zap.Logger) error {
	logger = l
	return rootCmd.Execute()
}

func init() {
	rootCmd.Flags().StringSliceVarP(&flagExts, "ext", "e", nil,
		"file extensions to include (overrides settings; default .py,.xml)")
	rootCmd.Flags().StringSliceVarP(&flagSkips, "skip", "s", nil,
		"folder names to skip (overrides settings; default tests,static,__pycache__,i18n)")
	rootCmd.Flags().StringVar(&flagConfig, "config", "",
		"path to a JSON settings file")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false,
		"enable debug logging")
}

func runFlatten(cmd *cobra.Command, args []string) error {
	if flagVerbose {
		dev, err := logging.New(true, "Dirflat", "1.0.0")
		if err != nil {
			return fmt.Errorf("initialize debug logger: %w", err)
		}
		logger = dev
	}

	dir := args[0]
	cfg := resolveConfig()

	doc, err := flatten.New(cfg, logger).FlattenDir(dir)
	if err != nil {
		return err
	}

	var output string
	if len(args) == 2 {
		output = args[1]
	} else {
		output = flatten.OutputFilename(dir, time.Now())
	}
	if !filepath.IsAbs(output) {
		wd, err := os.Getwd()
		if err != nil {
			return fmt.Errorf("resolve working directory: %w", err)
		}
		output = filepath.Join(wd, output)
	}

	if err := flatten.WriteFile(output, doc, logger); err != nil {
		return err
	}

	logger.Info("Flatten complete",
		zap.String("directory", dir),
		zap.String("output", output),
		zap.Int("totalFiles", len(doc.Entries)))
	fmt.Printf("Flatten complete. Output written to %s\n", output)
	return nil
}

// resolveConfig layers the configuration sources: defaults, then the
// settings file when --config is given, then explicit flags.
func resolveConfig() flatten.Config {
	cfg := flatten.DefaultConfig()
	if flagConfig != "" {
		cfg = settings.NewStore(afero.NewOsFs(), logger).Load(flagConfig)
	}
	if len(flagExts) > 0 {
		cfg.IncludeExts = flagExts
	}
	if len(flagSkips) > 0 {
		cfg.SkipDirs = flagSkips
	}
	return cfg.Normalize()
}
