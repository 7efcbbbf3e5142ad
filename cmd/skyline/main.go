package main

import (
	"os"

	"github.com/spf13/cobra"
)

// flags shared by every subcommand.
type options struct {
	configPath string
	width      float64
	height     float64
	seed       uint64
	clamp      bool
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &options{}
	rootCmd := &cobra.Command{
		Use:          "skyline",
		Short:        "Procedural 2.5D city skyline generator for hero artwork",
		SilenceUsage: true,
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVarP(&opts.configPath, "config", "c", "", "path to skyline.yaml (defaults to built-in hero banner)")
	pf.Float64Var(&opts.width, "width", 0, "canvas width override, at most 5000 (0 keeps the config value)")
	pf.Float64Var(&opts.height, "height", 0, "canvas height override, at most 5000 (0 keeps the config value)")
	pf.Uint64Var(&opts.seed, "seed", 0, "random seed override (0 keeps the config value)")
	pf.BoolVar(&opts.clamp, "clamp", false, "clamp the perspective factor to [0,1]")

	rootCmd.AddCommand(generateCmd(opts))
	rootCmd.AddCommand(sceneCmd(opts))
	rootCmd.AddCommand(renderCmd(opts))
	rootCmd.AddCommand(validateCmd(opts))
	rootCmd.AddCommand(previewCmd(opts))
	rootCmd.AddCommand(serveCmd(opts))
	return rootCmd
}

func generateCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "generate",
		Short: "Generate buildings and print them as JSON",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runGenerate(cmd.OutOrStdout(), opts)
		},
	}
}

func sceneCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "scene",
		Short: "Assemble the drawable scene graph and print it as JSON",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runScene(cmd.OutOrStdout(), opts)
		},
	}
}

func renderCmd(opts *options) *cobra.Command {
	var (
		format string
		output string
		scale  float64
	)
	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render the skyline as SVG or PNG",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runRender(cmd.OutOrStdout(), opts, format, output, scale)
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "svg", "output format: svg or png")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default stdout)")
	cmd.Flags().Float64Var(&scale, "scale", 1, "PNG pixels per scene unit")
	return cmd
}

func validateCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Validate the config and a generated skyline",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runValidate(cmd.OutOrStdout(), opts)
		},
	}
}

func previewCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "preview",
		Short: "Preview the skyline in the terminal (q to quit)",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			return runPreview(opts)
		},
	}
}

func serveCmd(opts *options) *cobra.Command {
	var port int

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the local preview server",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			return runServe(opts, port)
		},
	}

	cmd.Flags().IntVarP(&port, "port", "p", 0, "HTTP server port (default from config)")
	return cmd
}
