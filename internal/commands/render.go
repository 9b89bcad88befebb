package benchchart

import (
	"github.com/mwiater/benchchart/internal/pipeline"
	"github.com/spf13/cobra"
)

var renderReport = pipeline.Render

// renderCmd charts an existing report without building or running the benchmark.
var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Chart an existing benchmark report",
	Long:  `Load the JSON report left by a previous run, print the per-case summary, and write and show the chart.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return renderReport(cmd.Context(), GetConfig(), cmd.OutOrStdout())
	},
}

func init() {
	rootCmd.AddCommand(renderCmd)
}
