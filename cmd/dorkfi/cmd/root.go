package cmd

import "github.com/spf13/cobra"

func RootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dorkfi",
		Short: "dorkfi liquidation backend",
	}
	cmd.AddCommand(WatcherCmd())
	cmd.AddCommand(ServerCmd())
	return cmd
}
