package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sunnya97/cosmos-kit/cmd/flags"
)

func endpointCmd(k *kit) *cobra.Command {
	return &cobra.Command{
		Use:       "endpoint <chain> rpc|rest",
		Short:     "Print the first healthy RPC or REST endpoint of a chain",
		Args:      cobra.ExactArgs(2),
		ValidArgs: []string{"rpc", "rest"},
		RunE: k.runE(false, func(cmd *cobra.Command, args []string) error {
			repo, err := k.manager.GetWalletRepo(args[0])
			if err != nil {
				return err
			}

			var endpoint string
			switch args[1] {
			case "rpc":
				endpoint, err = repo.GetRPCEndpoint(cmd.Context())
			case "rest":
				endpoint, err = repo.GetRESTEndpoint(cmd.Context())
			default:
				return flags.ErrFlagInvalidValue.Wrapf("endpoint kind %q, expected rpc or rest", args[1])
			}
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), endpoint)
			return nil
		}),
	}
}

func balanceCmd(k *kit) *cobra.Command {
	return &cobra.Command{
		Use:   "balance <chain> <address> [denom]",
		Short: "Print the balances of an address, or its balance in denom",
		Args:  cobra.RangeArgs(2, 3),
		RunE: k.runE(false, func(cmd *cobra.Command, args []string) error {
			repo, err := k.manager.GetWalletRepo(args[0])
			if err != nil {
				return err
			}
			stargateClient, err := repo.GetStargateClient(cmd.Context())
			if err != nil {
				return err
			}

			if len(args) == 3 {
				balance, err := stargateClient.Balance(cmd.Context(), args[1], args[2])
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), balance.String())
				return nil
			}

			balances, err := stargateClient.AllBalances(cmd.Context(), args[1])
			if err != nil {
				return err
			}
			for _, coin := range balances {
				fmt.Fprintln(cmd.OutOrStdout(), coin.String())
			}
			return nil
		}),
	}
}

func heightCmd(k *kit) *cobra.Command {
	return &cobra.Command{
		Use:   "height <chain>",
		Short: "Print the latest block height of a chain",
		Args:  cobra.ExactArgs(1),
		RunE: k.runE(false, func(cmd *cobra.Command, args []string) error {
			repo, err := k.manager.GetWalletRepo(args[0])
			if err != nil {
				return err
			}
			stargateClient, err := repo.GetStargateClient(cmd.Context())
			if err != nil {
				return err
			}

			height, err := stargateClient.Height(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), height)
			return nil
		}),
	}
}

func contractQueryCmd(k *kit) *cobra.Command {
	return &cobra.Command{
		Use:     "contract-query <chain> <contract> <json>",
		Short:   "Run a smart query against a CosmWasm contract",
		Example: `walletkit contract-query juno juno1...contract '{"config":{}}'`,
		Args:    cobra.ExactArgs(3),
		RunE: k.runE(false, func(cmd *cobra.Command, args []string) error {
			queryMsg := []byte(args[2])
			if !json.Valid(queryMsg) {
				return flags.ErrFlagInvalidValue.Wrapf("query %q is not valid JSON", args[2])
			}

			repo, err := k.manager.GetWalletRepo(args[0])
			if err != nil {
				return err
			}
			cosmWasmClient, err := repo.GetCosmWasmClient(cmd.Context())
			if err != nil {
				return err
			}

			response, err := cosmWasmClient.QueryContractSmart(cmd.Context(), args[1], queryMsg)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(response))
			return nil
		}),
	}
}
