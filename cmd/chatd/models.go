package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"chatd/internal/registry"
)

func buildModelsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "models",
		Short: "List *.gguf models in the models directory",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := resolveConfig(cmd)
			if err != nil {
				return err
			}
			models, err := registry.LoadDir(cfg.ModelsDir)
			if err != nil {
				return err
			}
			if len(models) == 0 {
				fmt.Printf("no models found in %s\n", cfg.ModelsDir)
				return nil
			}
			for _, m := range models {
				fmt.Printf("%-50s %8s GB\n", m.ID, m.Size)
			}
			return nil
		},
	}
}
