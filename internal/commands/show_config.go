package benchchart

import (
	"github.com/mwiater/benchchart/internal/appconfig"
	"github.com/spf13/cobra"
)

// showCmd groups commands that display resources.
var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Show resources",
}

// showConfigCmd implements the 'show config' command, which displays the current configuration settings.
var showConfigCmd = &cobra.Command{
	Use:   "config",
	Short: "Show config settings",
	Long:  `Show config settings ensuring that the JSON config is loaded properly and overridden by flags accordingly.`,
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		appconfig.ShowConfig(cmd.OutOrStdout(), loadedConfig, GetConfig())
	},
}

func init() {
	rootCmd.AddCommand(showCmd)
	showCmd.AddCommand(showConfigCmd)
}
