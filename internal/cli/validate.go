package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/rdarder/modular/internal/app"
)

type validateOptions struct {
	File          string
	Batch         bool
	Partial       bool
	AllowOverride bool
}

func newValidateCommand() *cobra.Command {
	opts := validateOptions{}
	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate module and provider declarations",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runValidate(cmd.Context(), cmd, opts)
		},
	}
	cmd.Flags().StringVar(&opts.File, "file", "", "Declaration file path")
	cmd.Flags().BoolVar(&opts.Batch, "batch", false, "Collect every diagnostic instead of stopping at the first")
	cmd.Flags().BoolVar(&opts.Partial, "partial", false, "Allow providers that leave resources unbound")
	cmd.Flags().BoolVar(&opts.AllowOverride, "allow-override", false, "Allow a later provider to replace the one installed for a module")
	_ = viper.BindPFlag("file", cmd.Flags().Lookup("file"))
	_ = viper.BindPFlag("batch", cmd.Flags().Lookup("batch"))
	_ = viper.BindPFlag("partial", cmd.Flags().Lookup("partial"))
	_ = viper.BindPFlag("allow_override", cmd.Flags().Lookup("allow-override"))
	return cmd
}

func runValidate(ctx context.Context, cmd *cobra.Command, opts validateOptions) error {
	service := app.NewService()
	result, err := service.Validate(ctx, app.ValidateRequest{
		Path:          resolveString(cmd, opts.File, "file", "file"),
		Batch:         resolveBool(cmd, opts.Batch, "batch", "batch"),
		Partial:       resolveBool(cmd, opts.Partial, "partial", "partial"),
		AllowOverride: resolveBool(cmd, opts.AllowOverride, "allow_override", "allow-override"),
	})
	if err != nil {
		return err
	}
	for _, rendered := range result.Diagnostics {
		fmt.Println(rendered.Message)
		fmt.Println()
	}
	for _, skipped := range result.Skipped {
		fmt.Printf("skipped %s: its base provider failed validation\n", skipped)
	}
	if err := app.FailedValidation(result); err != nil {
		return err
	}
	fmt.Printf("validated: %d modules, %d providers\n", result.Modules, result.Valid)
	return nil
}

func resolveString(cmd *cobra.Command, value string, key string, flagName string) string {
	if cmd == nil {
		if value != "" {
			return value
		}
		return viper.GetString(key)
	}
	if flagChanged(cmd, flagName) {
		return value
	}
	return viper.GetString(key)
}

func resolveBool(cmd *cobra.Command, value bool, key string, flagName string) bool {
	if cmd == nil {
		return value
	}
	if flagChanged(cmd, flagName) {
		return value
	}
	return viper.GetBool(key)
}

func flagChanged(cmd *cobra.Command, name string) bool {
	if cmd == nil || strings.TrimSpace(name) == "" {
		return false
	}
	if flag := cmd.Flags().Lookup(name); flag != nil {
		return flag.Changed
	}
	if flag := cmd.PersistentFlags().Lookup(name); flag != nil {
		return flag.Changed
	}
	return false
}
