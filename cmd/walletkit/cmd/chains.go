package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func chainsCmd(k *kit) *cobra.Command {
	return &cobra.Command{
		Use:   "chains",
		Short: "List the configured chains",
		Args:  cobra.NoArgs,
		RunE: k.runE(false, func(cmd *cobra.Command, _ []string) error {
			out := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(out, "NAME\tCHAIN ID\tGAS PRICE\tLOGO")
			for _, chainName := range k.manager.ChainNames() {
				record, err := k.manager.GetChainRecord(chainName)
				if err != nil {
					return err
				}
				gasPrice := "-"
				if price, ok := record.DefaultGasPrice(); ok {
					gasPrice = price.String()
				}
				fmt.Fprintf(out, "%s\t%s\t%s\t%s\n", record.Name, record.ChainID(), gasPrice, record.Logo())
			}
			return out.Flush()
		}),
	}
}
