package commands

import (
	"context"
	"time"

	"github.com/spf13/cobra"

	"github.com/optimuscode/optimus/internal/apiclient"
)

var environmentsCmd = &cobra.Command{
	Use:     "environments",
	Aliases: []string{"env", "envs"},
	Short:   "List languages the server's policy table supports",
	Args:    cobra.NoArgs,
	RunE:    runEnvironments,
}

func init() {
	rootCmd.AddCommand(environmentsCmd)
}

func runEnvironments(cmd *cobra.Command, args []string) error {
	client := apiclient.New(apiURL)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	envs, err := client.Environments(ctx)
	if err != nil {
		printError("failed to fetch environments: %v", err)
		return err
	}
	if len(envs) == 0 {
		printInfo(cmd, "no environments configured")
		return nil
	}

	for _, env := range envs {
		kind := "interpreted"
		if env.Compiled {
			kind = "compiled"
		}
		printInfo(cmd, "%-12s %-10s image=%-30s ext=%s", env.Language, kind, env.Image, env.FileExtension)
	}
	return nil
}
