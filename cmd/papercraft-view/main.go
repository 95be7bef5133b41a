package main

import (
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/smasonuk/papercraft"
	"github.com/smasonuk/papercraft/preview"
)

const (
	screenWidth  = 1024
	screenHeight = 768
)

func main() {
	var configPath string
	var paged, reverse, centre bool
	var scale float64

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	rootCmd := &cobra.Command{
		Use:   "papercraft-view <input>",
		Short: "Show the unfolded layout of a record file or mesh in a window",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := papercraft.DefaultConfig()
			if configPath != "" {
				loaded, err := papercraft.LoadConfig(configPath)
				if err != nil {
					return err
				}
				cfg = loaded
			}
			if paged {
				cfg.LayoutMode = papercraft.LayoutPaged
			}

			meshOpts := papercraft.DefaultMeshOptions()
			meshOpts.Reverse = reverse
			meshOpts.Centre = centre
			meshOpts.Scale = scale
			records, err := papercraft.LoadInput(args[0], meshOpts)
			if err != nil {
				return err
			}

			engine, err := papercraft.NewEngine(cfg, papercraft.WithLogger(log.Logger))
			if err != nil {
				return err
			}
			res, err := engine.Process(records)
			if err != nil {
				return err
			}

			ebiten.SetWindowSize(screenWidth, screenHeight)
			ebiten.SetWindowTitle("papercraft: " + args[0])
			return ebiten.RunGame(preview.NewGame(res, screenWidth, screenHeight, log.Logger))
		},
	}
	rootCmd.Flags().StringVarP(&configPath, "config", "c", "", "YAML or TOML config file.")
	rootCmd.Flags().BoolVar(&paged, "paged", false, "Show the paged layout one page at a time.")
	rootCmd.Flags().BoolVar(&reverse, "reverse", false, "Flip the winding of mesh polygons.")
	rootCmd.Flags().BoolVar(&centre, "centre", false, "Centre the mesh on the origin.")
	rootCmd.Flags().Float64Var(&scale, "scale", 1, "Scale factor applied to mesh coordinates.")

	if err := rootCmd.Execute(); err != nil {
		log.Fatal().Err(err).Msg("viewer failed")
	}
}
