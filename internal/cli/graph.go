package cli

import (
	"context"
	"fmt"
	"sort"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/rdarder/modular/internal/app"
)

type graphOptions struct {
	File    string
	Partial bool
}

func newGraphCommand() *cobra.Command {
	opts := graphOptions{}
	cmd := &cobra.Command{
		Use:   "graph",
		Short: "Solve the module graph and print resource order",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runGraph(cmd.Context(), cmd, opts)
		},
	}
	cmd.Flags().StringVar(&opts.File, "file", "", "Declaration file path")
	cmd.Flags().BoolVar(&opts.Partial, "partial", false, "Allow providers that leave resources unbound")
	_ = viper.BindPFlag("file", cmd.Flags().Lookup("file"))
	_ = viper.BindPFlag("partial", cmd.Flags().Lookup("partial"))
	return cmd
}

func runGraph(ctx context.Context, cmd *cobra.Command, opts graphOptions) error {
	service := app.NewService()
	result, err := service.Graph(ctx, app.GraphRequest{
		Path:    resolveString(cmd, opts.File, "file", "file"),
		Partial: resolveBool(cmd, opts.Partial, "partial", "partial"),
	})
	if err != nil {
		return err
	}
	modules := make([]string, 0, len(result.Providers))
	for module := range result.Providers {
		modules = append(modules, module)
	}
	sort.Strings(modules)
	for _, module := range modules {
		fmt.Printf("%s <- %s\n", module, result.Providers[module])
	}
	for _, node := range result.Order {
		fmt.Println(node)
	}
	return nil
}
