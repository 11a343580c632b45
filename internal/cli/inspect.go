package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/rdarder/modular/internal/app"
)

type inspectOptions struct {
	File string
}

func newInspectCommand() *cobra.Command {
	opts := inspectOptions{}
	cmd := &cobra.Command{
		Use:   "inspect",
		Short: "Summarize a validated declaration set",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runInspect(cmd.Context(), cmd, opts)
		},
	}
	cmd.Flags().StringVar(&opts.File, "file", "", "Declaration file path")
	_ = viper.BindPFlag("file", cmd.Flags().Lookup("file"))
	return cmd
}

func runInspect(ctx context.Context, cmd *cobra.Command, opts inspectOptions) error {
	service := app.NewService()
	result, err := service.Inspect(ctx, app.InspectRequest{
		Path: resolveString(cmd, opts.File, "file", "file"),
	})
	if err != nil {
		return err
	}
	fmt.Printf("modules: %s\n", strings.Join(result.Modules, ", "))
	for _, provider := range result.Providers {
		line := fmt.Sprintf("%s (module=%s", provider.Name, provider.Module)
		if len(provider.Base) > 0 {
			line += fmt.Sprintf(", base=%s", strings.Join(provider.Base, " -> "))
		}
		line += fmt.Sprintf("): %d own, %d inherited, %d bound", provider.Own, provider.Inherited, provider.Bindings)
		fmt.Println(line)
	}
	return nil
}
