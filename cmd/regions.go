package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/ridgeline-data/propmail/internal/region"
)

var regionsCmd = &cobra.Command{
	Use:   "regions",
	Short: "List configured regions",
	RunE: func(cmd *cobra.Command, _ []string) error {
		mgr, err := region.NewManager(cfg.Regions.Dir)
		if err != nil {
			return err
		}

		keys := mgr.Keys()
		if len(keys) == 0 {
			fmt.Fprintf(os.Stderr, "No regions configured under %s.\n", cfg.Regions.Dir)
			return nil
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "KEY\tNAME\tFIPS\tMARKET\tCUTOFFS")
		for _, key := range keys {
			rc, err := mgr.Get(key)
			if err != nil {
				return err
			}
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s / %s\n",
				key, rc.Name, rc.FIPS, rc.MarketType, rc.DateCutoff1, rc.DateCutoff2)
		}
		return w.Flush()
	},
}

func init() {
	rootCmd.AddCommand(regionsCmd)
}
