// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the nbextract CLI.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/nbextract/internal/batch"
	"github.com/pdiddy/nbextract/internal/extract"
	"github.com/pdiddy/nbextract/internal/kernel"
	"github.com/pdiddy/nbextract/internal/render"
	"github.com/pdiddy/nbextract/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// rootCmd carries the whole CLI surface: --single FILE for one notebook,
// or input_dir output_dir for a recursive batch run.
var rootCmd = &cobra.Command{
	Use:   "nbextract [--single file.nb | input_dir output_dir]",
	Short: "Extract Input cells from Mathematica notebooks",
	Long: `nbextract extracts the Input cells of Mathematica notebook (.nb) files
through a locally installed Wolfram Language kernel. Cells whose held form
is Null or that contain an Image are dropped; survivors are rendered in
InputForm reflowed to a fixed page width.

Single-file mode writes a JSON array of strings to stdout, keeping stdout a
pure machine-readable artifact. Directory mode mirrors the input tree into
the output directory, one .txt artifact per notebook.`,
	Args:         cobra.MaximumNArgs(2),
	SilenceUsage: true,
	RunE:         runRoot,
}

func runRoot(cmd *cobra.Command, args []string) error {
	single, _ := cmd.Flags().GetString("single")

	switch {
	case single != "" && len(args) == 0:
		return runSingle(cmd, single)
	case single == "" && len(args) == 2:
		return runBatch(cmd, args[0], args[1])
	default:
		_ = cmd.Help()
		return fmt.Errorf("provide either --single FILE or both input_dir and output_dir")
	}
}

func runSingle(cmd *cobra.Command, nbPath string) error {
	cfg := loadConfig(cmd)

	// Validate before paying the kernel startup cost.
	if _, err := os.Stat(nbPath); err != nil {
		return fmt.Errorf("file %s does not exist", nbPath)
	}
	if filepath.Ext(nbPath) != cfg.Files.NotebookExtension {
		return fmt.Errorf("%s is not a %s file", nbPath, cfg.Files.NotebookExtension)
	}

	session, err := launchSession(cfg.Kernel)
	if err != nil {
		return err
	}
	defer session.Close()

	ex := extract.New(session, cfg.Format.PageWidth, os.Stderr)
	return render.WriteJSON(os.Stdout, ex.Extract(nbPath))
}

func runBatch(cmd *cobra.Command, inputDir, outputDir string) error {
	cfg := loadConfig(cmd)

	notebooks, err := batch.Discover(inputDir, cfg.Files.NotebookExtension)
	if err != nil {
		return err
	}
	if len(notebooks) == 0 {
		fmt.Printf("No %s files found in %s\n", cfg.Files.NotebookExtension, inputDir)
		return nil
	}
	fmt.Printf("Found %d notebook(s)\n", len(notebooks))

	session, err := launchSession(cfg.Kernel)
	if err != nil {
		return err
	}
	defer session.Close()

	opts := batch.Options{OutputExt: cfg.Files.OutputExtension}
	opts.Manifest, _ = cmd.Flags().GetBool("manifest")

	ex := extract.New(session, cfg.Format.PageWidth, os.Stderr)
	_, err = batch.Run(ex, notebooks, inputDir, outputDir, opts, os.Stdout)
	return err
}

// launchSession locates the Wolfram kernel and starts the one session used
// for the whole run. A launch failure is fatal; there is no retry.
func launchSession(cfg types.KernelConfig) (*kernel.Session, error) {
	fmt.Fprintln(os.Stderr, "Starting Wolfram Language kernel...")

	var (
		k   kernel.Kernel
		err error
	)
	if cfg.Path != "" {
		k, err = kernel.At(cfg.Path)
	} else {
		k, err = kernel.Detect()
	}
	if err != nil {
		return nil, fmt.Errorf("could not start Wolfram Language kernel: %w (make sure Wolfram Engine or Mathematica is installed)", err)
	}

	session, err := k.Launch(cfg.Args...)
	if err != nil {
		return nil, fmt.Errorf("could not start Wolfram Language kernel: %w", err)
	}
	return session, nil
}

// loadConfig merges command-line flags over viper settings and fills in
// defaults for anything left unset.
func loadConfig(cmd *cobra.Command) types.Config {
	cfg := types.Config{
		Kernel: types.KernelConfig{
			Path: viper.GetString("kernel.path"),
			Args: viper.GetStringSlice("kernel.args"),
		},
		Format: types.FormatConfig{
			PageWidth: viper.GetInt("format.page_width"),
		},
		Files: types.FilesConfig{
			NotebookExtension: viper.GetString("files.notebook_extension"),
			OutputExtension:   viper.GetString("files.output_extension"),
		},
	}

	if p, _ := cmd.Flags().GetString("kernel"); p != "" {
		cfg.Kernel.Path = p
	}
	if w, _ := cmd.Flags().GetInt("page-width"); w > 0 {
		cfg.Format.PageWidth = w
	}

	if cfg.Format.PageWidth <= 0 {
		cfg.Format.PageWidth = extract.DefaultPageWidth
	}
	if cfg.Files.NotebookExtension == "" {
		cfg.Files.NotebookExtension = batch.DefaultNotebookExt
	}
	if cfg.Files.OutputExtension == "" {
		cfg.Files.OutputExtension = batch.DefaultOutputExt
	}
	return cfg
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./nbextract.yaml or ~/.config/nbextract/config.yaml)")
	rootCmd.Flags().String("single", "", "extract inputs from a single .nb file (JSON to stdout)")
	rootCmd.Flags().String("kernel", "", "path to the Wolfram kernel binary (default: detect on PATH)")
	rootCmd.Flags().Int("page-width", 0, "column width for reflowed output (0 = config value or 80)")
	rootCmd.Flags().Bool("manifest", false, "write manifest.yaml into the output directory")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("nbextract")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "nbextract"))
		}
	}

	viper.SetEnvPrefix("NBEXTRACT")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
