package config

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/ethereum/go-ethereum/common"
	utilsconfig "github.com/quantumauth-io/quantum-go-utils/config"

	"github.com/quantumauth-io/policy-client/internal/chains"
	"github.com/quantumauth-io/policy-client/internal/constants"
)

const (
	WalletModeFile = "file"
	WalletModeKey  = "key"

	envRPCName = "env"
)

type ClientSettings struct {
	LocalHost      string
	Port           string
	AllowedOrigins []string
}

type ContractConfig struct {
	Address  string
	Symbol   string
	Decimals uint8
}

type DisplayConfig struct {
	TimeLayout string
	// Location is an IANA zone name, "Local" or "UTC".
	Location string
}

type WalletConfig struct {
	Mode   string
	File   string
	KeyEnv string
}

type Config struct {
	ClientSettings *ClientSettings
	Networks       *chains.AllChainsConfig `mapstructure:"Networks"`
	Contract       ContractConfig
	Display        DisplayConfig
	Wallet         WalletConfig
}

func Load() (*Config, error) {
	home, _ := os.UserHomeDir()
	paths := []string{
		filepath.Join(home, ".config", constants.AppName),
		filepath.Join(home, "config"),
		".",
	}

	return utilsconfig.ParseConfigWithEmbedded[Config](paths, EmbeddedConfigYAML)
}

// ApplyFromEnv overrides config values from POLICY_* environment variables.
func (c *Config) ApplyFromEnv() {
	if v := strings.TrimSpace(os.Getenv("POLICY_NETWORK")); v != "" {
		c.networks().ActiveNetwork = v
	}
	if v := strings.TrimSpace(os.Getenv("POLICY_RPC_URL")); v != "" {
		c.SetRPCURL(v)
	}
	if v := strings.TrimSpace(os.Getenv("POLICY_CONTRACT")); v != "" {
		c.Contract.Address = v
	}
	if v := strings.TrimSpace(os.Getenv("POLICY_WALLET_MODE")); v != "" {
		c.Wallet.Mode = v
	}
}

// ApplyFlags overrides config values with non-empty command line flags.
// Flags win over the environment.
func (c *Config) ApplyFlags(network, rpcURL, contract string) {
	if v := strings.TrimSpace(network); v != "" {
		c.networks().ActiveNetwork = v
	}
	if v := strings.TrimSpace(rpcURL); v != "" {
		c.SetRPCURL(v)
	}
	if v := strings.TrimSpace(contract); v != "" {
		c.Contract.Address = v
	}
}

// SetRPCURL pins the active network to a single RPC endpoint.
func (c *Config) SetRPCURL(url string) {
	n := c.networks()
	n.Normalize()
	name := n.ActiveNetwork
	net := n.Networks[name]
	net.RPCs = []chains.RPC{{Name: envRPCName, URL: url}}

	// IMPORTANT: write back (map value copy)
	n.Networks[name] = net
	n.ActiveRPC = envRPCName
}

func (c *Config) networks() *chains.AllChainsConfig {
	if c.Networks == nil {
		c.Networks = &chains.AllChainsConfig{}
	}
	if c.Networks.Networks == nil {
		c.Networks.Networks = map[string]chains.NetworkConfig{}
	}
	return c.Networks
}

// Normalize fills defaults, canonicalizes names and addresses, and rejects
// values the client cannot run with.
func (c *Config) Normalize() error {
	if c.ClientSettings == nil {
		c.ClientSettings = &ClientSettings{}
	}
	if strings.TrimSpace(c.ClientSettings.LocalHost) == "" {
		c.ClientSettings.LocalHost = "127.0.0.1"
	}
	if strings.TrimSpace(c.ClientSettings.Port) == "" {
		c.ClientSettings.Port = "8090"
	}

	n := c.networks()
	n.Normalize()
	if n.ActiveNetwork == "" {
		return errors.New("Networks.activeNetwork is empty")
	}
	if _, ok := n.Networks[n.ActiveNetwork]; !ok {
		return errors.Newf("Networks.activeNetwork %q is not configured", n.ActiveNetwork)
	}

	addr := strings.TrimSpace(c.Contract.Address)
	if addr == "" {
		addr = constants.DefaultContractAddress
	}
	if !strings.HasPrefix(addr, "0x") && !strings.HasPrefix(addr, "0X") {
		addr = "0x" + addr
	}
	if !common.IsHexAddress(addr) {
		return errors.Newf("Contract.Address invalid: %q", c.Contract.Address)
	}
	// canonical form: checksummed hex string
	c.Contract.Address = common.HexToAddress(addr).Hex()

	if strings.TrimSpace(c.Contract.Symbol) == "" {
		c.Contract.Symbol = constants.NativeSymbol
	}
	if c.Contract.Decimals == 0 {
		c.Contract.Decimals = constants.NativeDecimals
	}

	if strings.TrimSpace(c.Display.TimeLayout) == "" {
		c.Display.TimeLayout = constants.DefaultTimeLayout
	}
	if _, err := c.Location(); err != nil {
		return err
	}

	c.Wallet.Mode = strings.ToLower(strings.TrimSpace(c.Wallet.Mode))
	switch c.Wallet.Mode {
	case "":
		c.Wallet.Mode = WalletModeFile
	case WalletModeFile, WalletModeKey:
	default:
		return errors.Newf("invalid Wallet.Mode %q (allowed: file, key)", c.Wallet.Mode)
	}
	if strings.TrimSpace(c.Wallet.KeyEnv) == "" {
		c.Wallet.KeyEnv = constants.DefaultKeyEnv
	}

	return nil
}

// ContractAddress returns the normalized contract address.
func (c *Config) ContractAddress() common.Address {
	return common.HexToAddress(c.Contract.Address)
}

func (c *Config) Location() (*time.Location, error) {
	name := strings.TrimSpace(c.Display.Location)
	switch strings.ToLower(name) {
	case "", "local":
		return time.Local, nil
	case "utc":
		return time.UTC, nil
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, errors.Wrapf(err, "Display.Location %q", name)
	}
	return loc, nil
}
