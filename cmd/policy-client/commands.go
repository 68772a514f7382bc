package main

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"

	"github.com/quantumauth-io/policy-client/internal/chains"
	clienthttp "github.com/quantumauth-io/policy-client/internal/http"
	"github.com/quantumauth-io/policy-client/internal/policy"
	"github.com/quantumauth-io/policy-client/internal/securefile"
	"github.com/quantumauth-io/policy-client/internal/wallet"
)

func newRootCmd() *cobra.Command {
	flags := &globalFlags{}

	root := &cobra.Command{
		Use:           "policy-client",
		Short:         "Client for the on-chain insurance policy contract",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&flags.network, "network", "", "network name from config (overrides POLICY_NETWORK)")
	root.PersistentFlags().StringVar(&flags.rpcURL, "rpc", "", "RPC URL for the active network (overrides POLICY_RPC_URL)")
	root.PersistentFlags().StringVar(&flags.contract, "contract", "", "insurance contract address (overrides POLICY_CONTRACT)")

	root.AddCommand(
		newServeCmd(flags),
		newStatusCmd(flags),
		newPurchaseCmd(flags),
		newClaimCmd(flags),
		newCancelCmd(flags),
		newDonateCmd(flags),
		newExtendCmd(flags),
		newRenewCmd(flags),
		newWalletCmd(flags),
		newNetworksCmd(flags),
	)
	return root
}

func newServeCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the local policy UI and JSON API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			display := policy.NewMemoryDisplay()
			a, err := newApp(flags, display)
			if err != nil {
				return err
			}
			defer a.Close()

			h := clienthttp.NewHandler(a.controller, display, clienthttp.Info{
				Contract: a.controller.ContractAddress().Hex(),
				Network:  a.chain.NetworkName,
				ChainID:  a.chain.ChainID,
				Explorer: a.chain.Explorer,
				Version:  Version,
			})
			router := clienthttp.NewRouter(h, clienthttp.RouterOptions{
				AllowedOrigins: a.cfg.ClientSettings.AllowedOrigins,
			})

			settings := a.cfg.ClientSettings
			return clienthttp.Serve(cmd.Context(), settings.LocalHost, settings.Port, router)
		},
	}
}

// actionFunc runs one controller action against an initialized session.
type actionFunc func(cmd *cobra.Command, c *policy.Controller) (policy.Result, error)

// runAction connects the wallet, then runs fn and prints its result.
func runAction(flags *globalFlags, fn actionFunc) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, _ []string) error {
		a, err := newApp(flags, &policy.WriterDisplay{W: cmd.OutOrStdout()})
		if err != nil {
			return err
		}
		defer a.Close()

		res, err := a.controller.Initialize(cmd.Context())
		printResult(cmd.OutOrStdout(), res)
		if err != nil {
			return err
		}
		if fn == nil {
			return nil
		}

		res, err = fn(cmd, a.controller)
		printResult(cmd.OutOrStdout(), res)
		return err
	}
}

func printResult(w io.Writer, res policy.Result) {
	switch {
	case res.OK:
		_, _ = fmt.Fprintln(w, res.Message)
	case res.Error != "":
		_, _ = fmt.Fprintln(w, "Error:", res.Error)
	}
	if res.ExplorerURL != "" {
		_, _ = fmt.Fprintln(w, res.ExplorerURL)
	} else if res.TxHash != "" {
		_, _ = fmt.Fprintln(w, "tx:", res.TxHash)
	}
	if res.RefreshError != "" {
		_, _ = fmt.Fprintln(w, "Refresh failed:", res.RefreshError)
	}
}

func newStatusCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Connect the wallet and show the policy and contract balance",
		Args:  cobra.NoArgs,
		RunE:  runAction(flags, nil),
	}
}

func newPurchaseCmd(flags *globalFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "purchase <policy-type> <premium>",
		Short: "Purchase a policy, paying the premium in ETH",
		Args:  cobra.ExactArgs(2),
	}
	cmd.RunE = func(c *cobra.Command, args []string) error {
		policyType, err := strconv.ParseUint(args[0], 10, 8)
		if err != nil {
			return errors.Wrapf(err, "invalid policy type %q", args[0])
		}
		return runAction(flags, func(cmd *cobra.Command, ctrl *policy.Controller) (policy.Result, error) {
			return ctrl.PurchasePolicy(cmd.Context(), uint8(policyType), args[1])
		})(c, args)
	}
	return cmd
}

func newClaimCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "claim",
		Short: "File a claim on the current policy",
		Args:  cobra.NoArgs,
		RunE: runAction(flags, func(cmd *cobra.Command, ctrl *policy.Controller) (policy.Result, error) {
			return ctrl.FileClaim(cmd.Context())
		}),
	}
}

func newCancelCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "cancel",
		Short: "Cancel the current policy",
		Args:  cobra.NoArgs,
		RunE: runAction(flags, func(cmd *cobra.Command, ctrl *policy.Controller) (policy.Result, error) {
			return ctrl.CancelPolicy(cmd.Context())
		}),
	}
}

func newDonateCmd(flags *globalFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "donate <amount>",
		Short: "Donate ETH to the contract",
		Args:  cobra.ExactArgs(1),
	}
	cmd.RunE = func(c *cobra.Command, args []string) error {
		return runAction(flags, func(cmd *cobra.Command, ctrl *policy.Controller) (policy.Result, error) {
			return ctrl.Donate(cmd.Context(), args[0])
		})(c, args)
	}
	return cmd
}

func newExtendCmd(flags *globalFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "extend <extra-days> <payment>",
		Short: "Extend the current policy by a number of days",
		Args:  cobra.ExactArgs(2),
	}
	cmd.RunE = func(c *cobra.Command, args []string) error {
		days, err := strconv.ParseUint(args[0], 10, 64)
		if err != nil {
			return errors.Wrapf(err, "invalid day count %q", args[0])
		}
		return runAction(flags, func(cmd *cobra.Command, ctrl *policy.Controller) (policy.Result, error) {
			return ctrl.ExtendPolicy(cmd.Context(), days, args[1])
		})(c, args)
	}
	return cmd
}

func newRenewCmd(flags *globalFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "renew <premium>",
		Short: "Renew the current policy",
		Args:  cobra.ExactArgs(1),
	}
	cmd.RunE = func(c *cobra.Command, args []string) error {
		return runAction(flags, func(cmd *cobra.Command, ctrl *policy.Controller) (policy.Result, error) {
			return ctrl.RenewPolicy(cmd.Context(), args[0])
		})(c, args)
	}
	return cmd
}

func newWalletCmd(flags *globalFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "wallet",
		Short: "Manage the encrypted local wallet",
	}

	var importEnv bool
	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Create the wallet file (random key, or imported with --import-env)",
		Args:  cobra.NoArgs,
		RunE: func(c *cobra.Command, _ []string) error {
			cfg, err := loadConfig(flags)
			if err != nil {
				return err
			}
			store, err := wallet.NewStore(cfg.Wallet.File)
			if err != nil {
				return err
			}
			if store.Exists() {
				return errors.Newf("wallet already exists at %s", store.Path)
			}

			var w *wallet.Wallet
			if importEnv {
				if w, err = wallet.ImportWallet(os.Getenv(cfg.Wallet.KeyEnv)); err != nil {
					return errors.Wrapf(err, "import from %s", cfg.Wallet.KeyEnv)
				}
			}

			pw, err := newPassword(wallet.NewTerminalPrompter())
			if err != nil {
				return err
			}
			defer securefile.ZeroBytes(pw)

			if w, err = store.Create(pw, w); err != nil {
				return err
			}
			_, _ = fmt.Fprintf(c.OutOrStdout(), "Wallet created at %s\nAddress: %s\n", store.Path, w.Address().Hex())
			return nil
		},
	}
	initCmd.Flags().BoolVar(&importEnv, "import-env", false, "import the private key from the configured key environment variable")

	addressCmd := &cobra.Command{
		Use:   "address",
		Short: "Unlock the wallet and print its address",
		Args:  cobra.NoArgs,
		RunE: func(c *cobra.Command, _ []string) error {
			cfg, err := loadConfig(flags)
			if err != nil {
				return err
			}
			store, err := wallet.NewStore(cfg.Wallet.File)
			if err != nil {
				return err
			}
			pw, err := wallet.NewTerminalPrompter().Password("Wallet password: ")
			if err != nil {
				return err
			}
			defer securefile.ZeroBytes(pw)

			w, err := store.Load(pw)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(c.OutOrStdout(), w.Address().Hex())
			return nil
		},
	}

	cmd.AddCommand(initCmd, addressCmd)
	return cmd
}

// newPassword asks for a new wallet password twice and validates it.
func newPassword(p wallet.Prompter) ([]byte, error) {
	pw, err := p.Password("New wallet password: ")
	if err != nil {
		return nil, err
	}
	if err := wallet.ValidateNewPassword(pw); err != nil {
		securefile.ZeroBytes(pw)
		return nil, err
	}

	confirm, err := p.Password("Confirm password: ")
	if err != nil {
		securefile.ZeroBytes(pw)
		return nil, err
	}
	defer securefile.ZeroBytes(confirm)

	if !bytes.Equal(pw, confirm) {
		securefile.ZeroBytes(pw)
		return nil, errors.New("passwords do not match")
	}
	return pw, nil
}

func newNetworksCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "networks",
		Short: "List configured networks and the RPC each would use",
		Args:  cobra.NoArgs,
		RunE: func(c *cobra.Command, _ []string) error {
			cfg, err := loadConfig(flags)
			if err != nil {
				return err
			}
			svc, err := chains.NewChainService(chains.ChainConfig{
				Chains:               cfg.Networks,
				DefaultActiveNetwork: cfg.Networks.ActiveNetwork,
				PreferredRPCName:     cfg.Networks.ActiveRPC,
			})
			if err != nil {
				return err
			}
			defer func() { _ = svc.Close() }()

			listNetworks(c.OutOrStdout(), svc, cfg.Networks)
			return nil
		},
	}
}

// listNetworks prints one line per network; the active one is starred.
func listNetworks(w io.Writer, svc *chains.ChainService, cfg *chains.AllChainsConfig) {
	names := make([]string, 0, len(cfg.Networks))
	for name := range cfg.Networks {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		marker := " "
		if name == cfg.ActiveNetwork {
			marker = "*"
		}
		chain, err := svc.ResolveNetworkByName(name)
		if err != nil {
			_, _ = fmt.Fprintf(w, "%s %s: %v\n", marker, name, err)
			continue
		}
		_, _ = fmt.Fprintf(w, "%s %s (chain %d) via %s %s\n", marker, name, chain.ChainID, chain.RPCName, chain.URL)
	}
}
