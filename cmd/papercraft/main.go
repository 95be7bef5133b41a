package main

import (
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/smasonuk/papercraft"
)

type options struct {
	configPath  string
	outPath     string
	format      string
	paged       bool
	pageFormat  string
	orientation string
	tabWidth    float64
	grouping    string
	reverse     bool
	centre      bool
	scale       float64
	logLevel    string
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		log.Error().Err(err).Msg("papercraft failed")
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var opts options

	rootCmd := &cobra.Command{
		Use:           "papercraft",
		Short:         "Unfold the faces of a solid into printable papercraft patterns",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return setupLogging(opts.logLevel)
		},
	}
	rootCmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "info", "Log level: debug, info, warn, error.")

	unfoldCmd := &cobra.Command{
		Use:   "unfold <input>",
		Short: "Unfold a record file (.yaml, .json) or mesh (.ply, .dxf) and write the layout",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return unfold(cmd, args[0], &opts)
		},
	}
	unfoldCmd.Flags().StringVarP(&opts.configPath, "config", "c", "", "YAML or TOML config file.")
	unfoldCmd.Flags().StringVarP(&opts.outPath, "output", "o", "", "Output file. By default, it's stdout.")
	unfoldCmd.Flags().StringVarP(&opts.format, "format", "f", "", "Output format, yaml or json. By default, it follows the output extension.")
	unfoldCmd.Flags().BoolVar(&opts.paged, "paged", false, "Lay pieces out on pages instead of one canvas.")
	unfoldCmd.Flags().StringVar(&opts.pageFormat, "page-format", "", "Page format: A4, A3 or Letter.")
	unfoldCmd.Flags().StringVar(&opts.orientation, "orientation", "", "Page orientation: portrait or landscape.")
	unfoldCmd.Flags().Float64Var(&opts.tabWidth, "tab-width", 0, "Width of glue tabs, 0 disables them.")
	unfoldCmd.Flags().StringVar(&opts.grouping, "grouping", "", "Grouping policy: singleton or adjacency.")
	addMeshFlags(unfoldCmd, &opts)

	recordsCmd := &cobra.Command{
		Use:   "records <mesh>",
		Short: "Convert a .ply or .dxf mesh into a face record file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			records, err := papercraft.LoadMesh(args[0], meshOptions(&opts))
			if err != nil {
				return err
			}
			return withOutput(cmd, opts.outPath, func(w io.Writer) error {
				return papercraft.WriteRecords(w, outputFormat(opts), records)
			})
		},
	}
	recordsCmd.Flags().StringVarP(&opts.outPath, "output", "o", "", "Output file. By default, it's stdout.")
	recordsCmd.Flags().StringVarP(&opts.format, "format", "f", "", "Output format, yaml or json.")
	addMeshFlags(recordsCmd, &opts)

	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Print the default configuration as YAML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := papercraft.DefaultConfig()
			return papercraft.Encode(cmd.OutOrStdout(), papercraft.FormatYAML, cfg)
		},
	}

	rootCmd.AddCommand(unfoldCmd, recordsCmd, configCmd)
	return rootCmd
}

func addMeshFlags(cmd *cobra.Command, opts *options) {
	cmd.Flags().BoolVar(&opts.reverse, "reverse", false, "Flip the winding of mesh polygons.")
	cmd.Flags().BoolVar(&opts.centre, "centre", false, "Centre the mesh on the origin before unfolding.")
	cmd.Flags().Float64Var(&opts.scale, "scale", 1, "Scale factor applied to mesh coordinates.")
}

func meshOptions(opts *options) papercraft.MeshOptions {
	meshOpts := papercraft.DefaultMeshOptions()
	meshOpts.Reverse = opts.reverse
	meshOpts.Centre = opts.centre
	meshOpts.Scale = opts.scale
	return meshOpts
}

func setupLogging(level string) error {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		return fmt.Errorf("invalid log level %q: %w", level, err)
	}
	zerolog.SetGlobalLevel(lvl)
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	return nil
}

// buildConfig loads the config file, if any, and applies flag overrides.
func buildConfig(cmd *cobra.Command, opts *options) (papercraft.Config, error) {
	cfg := papercraft.DefaultConfig()
	if opts.configPath != "" {
		loaded, err := papercraft.LoadConfig(opts.configPath)
		if err != nil {
			return cfg, err
		}
		cfg = loaded
	}

	flags := cmd.Flags()
	if opts.paged {
		cfg.LayoutMode = papercraft.LayoutPaged
	}
	if flags.Changed("page-format") {
		f, err := papercraft.ParsePageFormat(opts.pageFormat)
		if err != nil {
			return cfg, err
		}
		cfg.Page.Format = f
	}
	if flags.Changed("orientation") {
		cfg.Page.Orientation = papercraft.Orientation(opts.orientation)
	}
	if flags.Changed("tab-width") {
		cfg.TabWidth = opts.tabWidth
	}
	if flags.Changed("grouping") {
		cfg.Grouping = papercraft.Grouping(opts.grouping)
	}
	return cfg, cfg.Validate()
}

func unfold(cmd *cobra.Command, input string, opts *options) error {
	cfg, err := buildConfig(cmd, opts)
	if err != nil {
		return err
	}

	records, err := papercraft.LoadInput(input, meshOptions(opts))
	if err != nil {
		return err
	}
	log.Info().Str("input", input).Int("faces", len(records)).Msg("loaded faces")

	engine, err := papercraft.NewEngine(cfg, papercraft.WithLogger(log.Logger))
	if err != nil {
		return err
	}
	res, err := engine.Process(records)
	if err != nil {
		return err
	}

	return withOutput(cmd, opts.outPath, func(w io.Writer) error {
		return papercraft.WriteResult(w, outputFormat(*opts), res)
	})
}

func outputFormat(opts options) papercraft.Format {
	if opts.format != "" {
		return papercraft.Format(opts.format)
	}
	return papercraft.FormatFromPath(opts.outPath)
}

func withOutput(cmd *cobra.Command, path string, write func(io.Writer) error) error {
	if path == "" {
		return write(cmd.OutOrStdout())
	}
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("could not create output file %s: %w", path, err)
	}
	if err := write(file); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}
