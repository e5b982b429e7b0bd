package main

import (
	"os"

	"github.com/spf13/cobra"

	"pocol/asm"
	"pocol/config"
)

func main() {
	var output string
	var configPath string

	rootCmd := &cobra.Command{
		Use:   "pocol-asm [source.pocol]",
		Short: "Assemble Pocol source into a binary object",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Default()
			if configPath != "" {
				var err error
				cfg, err = config.Load(configPath)
				if err != nil {
					return err
				}
			}

			out := output
			if out == "" {
				out = asm.DefaultOutputName
			}

			return asm.Assemble(args[0], out, cfg)
		},
	}
	rootCmd.Flags().StringVarP(&output, "output", "o", "", "Output object path (default out.pob)")
	rootCmd.Flags().StringVar(&configPath, "config", "", "TOML file overriding memory_size/stack_size")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
