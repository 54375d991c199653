package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"os/signal"
	"syscall"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/custodia-labs/docs-dataset/internal/adapters/driven/auth"
	"github.com/custodia-labs/docs-dataset/internal/adapters/driven/config/env"
	"github.com/custodia-labs/docs-dataset/internal/adapters/driven/config/file"
	"github.com/custodia-labs/docs-dataset/internal/adapters/driven/hub/huggingface"
	"github.com/custodia-labs/docs-dataset/internal/adapters/driven/parquet"
	"github.com/custodia-labs/docs-dataset/internal/connectors/github"
	"github.com/custodia-labs/docs-dataset/internal/core/domain"
	"github.com/custodia-labs/docs-dataset/internal/core/ports/driven"
	"github.com/custodia-labs/docs-dataset/internal/core/ports/driving"
	"github.com/custodia-labs/docs-dataset/internal/core/services"
	"github.com/custodia-labs/docs-dataset/internal/logger"
	"github.com/custodia-labs/docs-dataset/internal/normalisers/markdown"
	"github.com/custodia-labs/docs-dataset/internal/postprocessors"
)

// Flag names.
const (
	flagDatasetName        = "dataset-name"
	flagDocsFolder         = "docs_folder"
	flagOutputDir          = "output_dir"
	flagPrivate            = "private"
	flagNoPrivate          = "no-private"
	flagConfig             = "config"
	flagChunkingStrategy   = "chunking-strategy"
	flagMaxCharacters      = "max-characters"
	flagNewAfterNChars     = "new-after-n-chars"
	flagCombineUnderNChars = "combine-under-n-chars"
	flagDryRun             = "dry-run"
	flagSaveLocal          = "save-local"
	flagVerbose            = "verbose"
)

// BuilderFactory wires a dataset builder from resolved settings.
type BuilderFactory func(settings domain.Settings, out io.Writer) (driving.DatasetBuilder, error)

// newBuilder is replaced in tests.
var newBuilder BuilderFactory = defaultBuilder

// dotEnvPath is loaded before the environment is parsed.
var dotEnvPath = env.DefaultDotEnv

var rootCmd = &cobra.Command{
	Use:   "docs-dataset [flags] owner/repo [owner/repo...]",
	Short: "Build a chunked dataset from repository documentation",
	Long: `Downloads the markdown documentation of one or more GitHub repositories,
splits it into chunks and publishes the result as a dataset on the Hugging Face hub.

Repositories are processed in the order given. Each one is downloaded into a folder
named after the repository (or --output_dir); an existing folder is reused as is.

A dataset without any rows is never published: the run fails instead of
pushing an empty dataset.

Tokens are read from GITHUB_TOKEN and HF_TOKEN (a .env file is loaded first).`,
	Args:          cobra.MinimumNArgs(1),
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runRoot,
}

func init() {
	f := rootCmd.Flags()
	f.String(flagDatasetName, "", "dataset identifier on the hub (owner/name or name)")
	f.String(flagDocsFolder, domain.DefaultDocsFolder, "folder downloaded from each repository")
	f.String(flagOutputDir, "", "local destination (default: the repository name)")
	f.Bool(flagPrivate, false, "create the dataset as private")
	f.Bool(flagNoPrivate, false, "create the dataset as public")
	f.String(flagConfig, "", "TOML settings file (default: ./"+file.DefaultFileName+" when present)")
	f.String(flagChunkingStrategy, string(domain.ChunkByTitle), "chunking strategy (by_title, basic)")
	f.Int(flagMaxCharacters, domain.DefaultMaxCharacters, "hard chunk size limit in characters")
	f.Int(flagNewAfterNChars, 0, "soft chunk size limit in characters (default: --max-characters)")
	f.Int(flagCombineUnderNChars, 0,
		"merge consecutive sections shorter than this; 0 disables (default: --max-characters)")
	f.Bool(flagDryRun, false, "build the dataset and save it locally without publishing")
	f.String(flagSaveLocal, "", "also write the dataset to this parquet file")
	f.BoolP(flagVerbose, "v", false, "enable verbose logging on stderr")

	rootCmd.MarkFlagsMutuallyExclusive(flagPrivate, flagNoPrivate)
	rootCmd.SetVersionTemplate(versionTemplate)
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func runRoot(cmd *cobra.Command, args []string) error {
	settings, err := resolveSettings(cmd)
	if err != nil {
		return err
	}

	if err := setupLogging(cmd, settings); err != nil {
		return err
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	builder, err := newBuilder(settings, cmd.OutOrStdout())
	if err != nil {
		return err
	}

	_, err = builder.Run(ctx, driving.RunRequest{
		Build: driving.BuildRequest{
			Repos:      args,
			DocsFolder: settings.DocsFolder,
			OutputDir:  settings.OutputDir,
		},
		Publish: driving.PublishRequest{
			DatasetName: settings.DatasetName,
			Private:     settings.Private,
		},
		DryRun:    settings.DryRun,
		SaveLocal: settings.SaveLocal,
	})
	if errors.Is(err, context.Canceled) {
		return fmt.Errorf("interrupted: %w", err)
	}
	return err
}

// resolveSettings layers defaults, the config file, the environment and
// explicitly set flags, then validates the result.
func resolveSettings(cmd *cobra.Command) (domain.Settings, error) {
	settings := domain.DefaultSettings()
	f := cmd.Flags()

	if err := applyConfigFile(cmd, &settings); err != nil {
		return settings, err
	}

	e, err := env.Load(dotEnvPath)
	if err != nil {
		return settings, err
	}
	e.Apply(&settings)

	if f.Changed(flagDatasetName) {
		settings.DatasetName, _ = f.GetString(flagDatasetName)
	}
	if f.Changed(flagDocsFolder) {
		settings.DocsFolder, _ = f.GetString(flagDocsFolder)
	}
	if f.Changed(flagOutputDir) {
		settings.OutputDir, _ = f.GetString(flagOutputDir)
	}
	if f.Changed(flagPrivate) {
		settings.Private, _ = f.GetBool(flagPrivate)
	}
	if f.Changed(flagNoPrivate) {
		noPrivate, _ := f.GetBool(flagNoPrivate)
		settings.Private = !noPrivate
	}
	if f.Changed(flagChunkingStrategy) {
		s, _ := f.GetString(flagChunkingStrategy)
		settings.Chunking.Strategy = domain.ChunkingStrategy(s)
	}
	if f.Changed(flagMaxCharacters) {
		settings.Chunking.MaxCharacters, _ = f.GetInt(flagMaxCharacters)
	}
	if f.Changed(flagNewAfterNChars) {
		settings.Chunking.NewAfterNChars, _ = f.GetInt(flagNewAfterNChars)
	}
	if f.Changed(flagCombineUnderNChars) {
		settings.Chunking.CombineUnderNChars, _ = f.GetInt(flagCombineUnderNChars)
	}
	settings.DryRun, _ = f.GetBool(flagDryRun)
	settings.SaveLocal, _ = f.GetString(flagSaveLocal)

	if err := settings.Validate(); err != nil {
		return settings, err
	}
	return settings, nil
}

// applyConfigFile reads --config, or the default file when it exists.
func applyConfigFile(cmd *cobra.Command, settings *domain.Settings) error {
	path, _ := cmd.Flags().GetString(flagConfig)
	explicit := path != ""
	if !explicit {
		path = file.DefaultFileName
	}

	store, err := file.NewConfigStore(path)
	if err != nil {
		if !explicit && errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return err
	}
	return store.Apply(settings)
}

func setupLogging(cmd *cobra.Command, settings domain.Settings) error {
	verbose, _ := cmd.Flags().GetBool(flagVerbose)

	logger.SetOutput(cmd.ErrOrStderr())
	if err := logger.SetLevel(settings.Log.Level); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}
	if err := logger.SetFormat(settings.Log.Format); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}
	logger.SetRunID(uuid.NewString())
	logger.SetVerbose(verbose)
	return nil
}

// defaultBuilder wires the production adapters.
func defaultBuilder(settings domain.Settings, out io.Writer) (driving.DatasetBuilder, error) {
	tokens := auth.NewFactory(settings)

	host := github.NewHost(github.NewClient(tokens.GitHub(), settings.GitHub.APIURL))

	segmenter, err := postprocessors.NewSegmenterFromSettings(
		markdown.New(), postprocessors.DefaultRegistry(), settings.Chunking,
	)
	if err != nil {
		return nil, err
	}

	encoder := parquet.NewEncoder()

	var hub driven.DatasetHub
	if !settings.DryRun {
		hub = huggingface.NewClient(huggingface.Config{Endpoint: settings.Hub.Endpoint}, tokens.Hub(), encoder)
	}

	return services.NewDatasetBuilder(host, host, segmenter, hub, encoder, out), nil
}
