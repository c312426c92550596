package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/sunnya97/cosmos-kit/pkg/wallet"
	"github.com/sunnya97/cosmos-kit/pkg/walletrepo"
)

func walletsCmd(k *kit) *cobra.Command {
	return &cobra.Command{
		Use:   "wallets <chain>",
		Short: "List the wallets of a chain with their status",
		Args:  cobra.ExactArgs(1),
		RunE: k.runE(true, func(cmd *cobra.Command, args []string) error {
			repo, err := k.manager.GetWalletRepo(args[0])
			if err != nil {
				return err
			}
			return k.printWallets(cmd, repo, repo.Wallets())
		}),
	}
}

func connectCmd(k *kit) *cobra.Command {
	return &cobra.Command{
		Use:   "connect <chain> [wallet]",
		Short: "Connect a wallet to a chain",
		Long: `Connect a wallet to a chain and persist its session.

Without a wallet name, the only wallet of the chain is connected; when there
are several, a selector is shown.`,
		Args: cobra.RangeArgs(1, 2),
		RunE: k.runE(true, func(cmd *cobra.Command, args []string) error {
			repo, err := k.manager.GetWalletRepo(args[0])
			if err != nil {
				return err
			}

			walletName := walletNameArg(args)
			selecting := walletName == "" && !repo.IsSingleWallet()
			if err := repo.Connect(cmd.Context(), walletName); err != nil {
				return err
			}
			if selecting {
				if err := k.selector.Err(); err != nil {
					return err
				}
			}
			return k.printWallets(cmd, repo, connected(repo))
		}),
	}
}

func disconnectCmd(k *kit) *cobra.Command {
	return &cobra.Command{
		Use:   "disconnect <chain> [wallet]",
		Short: "Disconnect one or every wallet of a chain and drop their sessions",
		Args:  cobra.RangeArgs(1, 2),
		RunE: k.runE(true, func(cmd *cobra.Command, args []string) error {
			repo, err := k.manager.GetWalletRepo(args[0])
			if err != nil {
				return err
			}
			return repo.Disconnect(cmd.Context(), walletNameArg(args))
		}),
	}
}

func currentCmd(k *kit) *cobra.Command {
	return &cobra.Command{
		Use:   "current <chain>",
		Short: "Show the wallet connected to a chain",
		Args:  cobra.ExactArgs(1),
		RunE: k.runE(true, func(cmd *cobra.Command, args []string) error {
			repo, err := k.manager.GetWalletRepo(args[0])
			if err != nil {
				return err
			}

			current := repo.Current()
			if current == nil {
				fmt.Fprintln(cmd.OutOrStdout(), "no wallet connected")
				return nil
			}
			return k.printWallets(cmd, repo, []wallet.ChainWallet{current})
		}),
	}
}

func (k *kit) printWallets(cmd *cobra.Command, repo *walletrepo.WalletRepo, wallets []wallet.ChainWallet) error {
	out := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(out, "NAME\tPRETTY NAME\tMODE\tSTATUS\tADDRESS")
	for _, w := range wallets {
		info := w.WalletInfo()

		var address string
		if w.Status() == wallet.StatusConnected {
			chainWallet, err := k.manager.GetChainWallet(repo.ChainName(), w.WalletName())
			if err != nil {
				return err
			}
			if address, err = chainWallet.Address(); err != nil {
				return err
			}
		}
		fmt.Fprintf(out, "%s\t%s\t%s\t%s\t%s\n", info.Name, info.PrettyName, info.Mode, w.Status(), address)
	}
	return out.Flush()
}

func connected(repo *walletrepo.WalletRepo) []wallet.ChainWallet {
	var wallets []wallet.ChainWallet
	for _, w := range repo.Wallets() {
		if w.Status() == wallet.StatusConnected {
			wallets = append(wallets, w)
		}
	}
	return wallets
}

func walletNameArg(args []string) wallet.Name {
	if len(args) < 2 {
		return ""
	}
	return wallet.Name(args[1])
}
