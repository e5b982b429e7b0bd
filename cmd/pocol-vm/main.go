package main

import (
	"os"

	"github.com/spf13/cobra"

	"pocol/config"
	"pocol/vm"
)

func main() {
	var steps int64
	var configPath string

	rootCmd := &cobra.Command{
		Use:   "pocol-vm [object.pob]",
		Short: "Load and execute a Pocol object file",
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

			machine := vm.NewVM(cfg)
			if err := machine.Load(args[0]); err != nil {
				return err
			}

			if err := machine.Run(steps); err != nil {
				machine.ReportError(err)
				os.Exit(1)
			}
			return nil
		},
	}
	rootCmd.Flags().Int64Var(&steps, "steps", -1, "Step budget (negative means unbounded)")
	rootCmd.Flags().StringVar(&configPath, "config", "", "TOML file overriding memory_size/stack_size")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
