package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/tacair/aircombat-simulations/pkg/scenario"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List bundled scenarios",
	Long:  `List all bundled scenarios with their descriptions`,
	RunE:  listScenarios,
}

func listScenarios(cmd *cobra.Command, args []string) error {
	configs := scenario.Builtin()
	if len(configs) == 0 {
		fmt.Println("No scenarios found")
		return nil
	}

	// Create tabwriter for formatted output
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "NAME\tAIRCRAFT\tRATE\tDESCRIPTION")
	_, _ = fmt.Fprintln(w, "----\t--------\t----\t-----------")

	for _, cfg := range configs {
		_, _ = fmt.Fprintf(w, "%s\t%d\t%d Hz\t%s\n",
			cfg.Name,
			len(cfg.Aircraft),
			cfg.Frequency,
			cfg.Description,
		)
	}

	return w.Flush()
}
