package main

import (
	"time"

	"github.com/cockroachdb/errors"
	"github.com/quantumauth-io/quantum-go-utils/log"

	clientconfig "github.com/quantumauth-io/policy-client/cmd/policy-client/config"
	"github.com/quantumauth-io/policy-client/internal/chains"
	"github.com/quantumauth-io/policy-client/internal/policy"
	"github.com/quantumauth-io/policy-client/internal/wallet"
)

const (
	dialRetryMaxDelay = 2 * time.Second
	dialRetryBudget   = 20 * time.Second
)

// globalFlags are the persistent overrides shared by every command.
type globalFlags struct {
	network  string
	rpcURL   string
	contract string
}

// app holds the wired components for one command invocation.
type app struct {
	cfg        *clientconfig.Config
	chains     *chains.ChainService
	chain      chains.ResolvedChain
	controller *policy.Controller
}

func loadConfig(flags *globalFlags) (*clientconfig.Config, error) {
	cfg, err := clientconfig.Load()
	if err != nil {
		return nil, errors.Wrap(err, "failed to parse config")
	}
	cfg.ApplyFromEnv()
	cfg.ApplyFlags(flags.network, flags.rpcURL, flags.contract)
	if err := cfg.Normalize(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}
	return cfg, nil
}

func newProvider(cfg *clientconfig.Config, source wallet.BackendSource) (policy.Provider, error) {
	switch cfg.Wallet.Mode {
	case clientconfig.WalletModeKey:
		return wallet.NewKeyProvider(cfg.Wallet.KeyEnv, source), nil
	default:
		store, err := wallet.NewStore(cfg.Wallet.File)
		if err != nil {
			return nil, err
		}
		return wallet.NewFileProvider(store, wallet.NewTerminalPrompter(), source), nil
	}
}

func newApp(flags *globalFlags, display policy.Display) (*app, error) {
	cfg, err := loadConfig(flags)
	if err != nil {
		return nil, err
	}

	svc, err := chains.NewChainService(chains.ChainConfig{
		Chains:               cfg.Networks,
		DefaultActiveNetwork: cfg.Networks.ActiveNetwork,
		PreferredRPCName:     cfg.Networks.ActiveRPC,
	}, chains.WithDialRetry(dialRetryMaxDelay, dialRetryBudget))
	if err != nil {
		return nil, errors.Wrap(err, "chain service")
	}
	chain, err := svc.ActiveChain()
	if err != nil {
		_ = svc.Close()
		return nil, err
	}

	provider, err := newProvider(cfg, wallet.FromChainService(svc))
	if err != nil {
		_ = svc.Close()
		return nil, err
	}

	loc, err := cfg.Location()
	if err != nil {
		_ = svc.Close()
		return nil, err
	}
	renderer := policy.Renderer{
		Symbol:     cfg.Contract.Symbol,
		Decimals:   cfg.Contract.Decimals,
		TimeLayout: cfg.Display.TimeLayout,
		Location:   loc,
	}

	controller := policy.NewController(provider, cfg.ContractAddress(),
		policy.WithDisplay(display),
		policy.WithRenderer(renderer),
		policy.WithExplorer(chain.TxURL),
	)

	log.Info("policy client ready",
		"network", chain.NetworkName,
		"chain_id", chain.ChainID,
		"rpc", chain.RPCName,
		"contract", controller.ContractAddress().Hex(),
		"wallet_mode", cfg.Wallet.Mode,
	)

	return &app{
		cfg:        cfg,
		chains:     svc,
		chain:      chain,
		controller: controller,
	}, nil
}

func (a *app) Close() {
	if err := a.chains.Close(); err != nil {
		log.Error("failed to close chain clients", "error", err)
	}
}
