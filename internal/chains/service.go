package chains

import (
	"context"
	"math/big"
	"strings"
	"sync"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/quantumauth-io/quantum-go-utils/log"
	"github.com/quantumauth-io/quantum-go-utils/qa_evm"
	"github.com/quantumauth-io/quantum-go-utils/retry"
)

type ChainConfig struct {
	Chains               *AllChainsConfig
	DefaultActiveNetwork string
	PreferredRPCName     string
}

type ChainClients struct {
	Chain ResolvedChain
	HTTP  qa_evm.BlockchainClient

	closer func()
}

type ResolvedChain struct {
	NetworkName string
	ChainID     uint64
	Explorer    string

	RPCName string
	URL     string
}

// DialFunc opens an RPC client for url.
type DialFunc func(ctx context.Context, url string) (*ethclient.Client, error)

// ChainService resolves the configured network and owns the dialed clients.
// Only the active network is ever used by a session; other networks are kept
// resolvable so config mistakes surface early.
type ChainService struct {
	cfg       ChainConfig
	dial      DialFunc
	retryDial func(ctx context.Context, connect func(context.Context) error) error

	mu               sync.Mutex
	clientsByNetwork map[string]*ChainClients
}

type Option func(*ChainService)

// WithDialer replaces ethclient.DialContext.
func WithDialer(d DialFunc) Option {
	return func(s *ChainService) { s.dial = d }
}

// WithDialRetry retries connecting to an RPC with backoff capped at maxDelay,
// giving up after budget.
func WithDialRetry(maxDelay, budget time.Duration) Option {
	cfg := retry.DefaultConfig()
	cfg.MaxDelayBeforeRetrying = maxDelay
	cfg.InitialDelayBeforeRetrying = maxDelay / 10

	return func(s *ChainService) {
		s.retryDial = func(ctx context.Context, connect func(context.Context) error) error {
			ctx, cancel := context.WithTimeout(ctx, budget)
			defer cancel()

			var last error
			_, err := retry.Retry(ctx, cfg,
				func(ctx context.Context) ([]interface{}, error) {
					last = connect(ctx)
					return nil, last
				},
				nil, // always retry
				"connect to chain rpc")
			if last != nil {
				return last
			}
			return err
		}
	}
}

func NewChainService(cfg ChainConfig, opts ...Option) (*ChainService, error) {
	if cfg.Chains == nil {
		return nil, errors.New("chains config is nil")
	}
	if strings.TrimSpace(cfg.DefaultActiveNetwork) == "" {
		return nil, errors.New("active network is empty")
	}

	s := &ChainService{
		cfg:              cfg,
		dial:             ethclient.DialContext,
		clientsByNetwork: make(map[string]*ChainClients),
	}
	for _, opt := range opts {
		opt(s)
	}

	if _, err := s.ResolveNetworkByName(cfg.DefaultActiveNetwork); err != nil {
		return nil, err
	}
	return s, nil
}

// Active returns the clients for the default network, dialing on first use.
func (s *ChainService) Active(ctx context.Context) (*ChainClients, error) {
	return s.ClientsForNetwork(ctx, s.cfg.DefaultActiveNetwork)
}

// ActiveChain resolves the default network without dialing.
func (s *ChainService) ActiveChain() (ResolvedChain, error) {
	return s.ResolveNetworkByName(s.cfg.DefaultActiveNetwork)
}

// ClientsForNetwork returns (and caches) clients for a specific network.
func (s *ChainService) ClientsForNetwork(ctx context.Context, networkName string) (*ChainClients, error) {
	networkName = strings.TrimSpace(networkName)
	if networkName == "" {
		return nil, errors.New("network name is empty")
	}

	cacheKey := strings.ToLower(networkName)

	s.mu.Lock()
	if existing := s.clientsByNetwork[cacheKey]; existing != nil {
		s.mu.Unlock()
		return existing, nil
	}
	s.mu.Unlock()

	resolved, err := s.ResolveNetworkByName(networkName)
	if err != nil {
		return nil, err
	}

	// Dial outside the lock (avoid blocking concurrent readers)
	dialed, err := s.dialChainClients(ctx, resolved)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	if existing := s.clientsByNetwork[cacheKey]; existing != nil {
		s.mu.Unlock()
		// We raced; close what we just dialed and return existing
		safeCloseClients(dialed)
		return existing, nil
	}
	s.clientsByNetwork[cacheKey] = dialed
	s.mu.Unlock()

	log.Info("chain connected", "network", resolved.NetworkName, "rpc", resolved.RPCName)
	return dialed, nil
}

// Close closes all cached clients (call on shutdown).
func (s *ChainService) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for key, clients := range s.clientsByNetwork {
		safeCloseClients(clients)
		delete(s.clientsByNetwork, key)
	}
	return nil
}

func (s *ChainService) dialChainClients(ctx context.Context, chain ResolvedChain) (*ChainClients, error) {
	var (
		client *ethclient.Client
		got    *big.Int
	)
	connect := func(ctx context.Context) error {
		c, err := s.dial(ctx, chain.URL)
		if err != nil {
			return errors.Wrapf(err, "dial http %q", chain.NetworkName)
		}
		if chain.ChainID != 0 {
			id, err := c.ChainID(ctx)
			if err != nil {
				c.Close()
				return errors.Wrapf(err, "chain id for %q", chain.NetworkName)
			}
			got = id
		}
		client = c
		return nil
	}

	var err error
	if s.retryDial != nil {
		err = s.retryDial(ctx, connect)
	} else {
		err = connect(ctx)
	}
	if err != nil {
		return nil, err
	}

	if chain.ChainID != 0 && (!got.IsUint64() || got.Uint64() != chain.ChainID) {
		client.Close()
		return nil, errors.Newf("network %q: rpc reports chain id %s, config expects %d",
			chain.NetworkName, got, chain.ChainID)
	}

	return &ChainClients{
		Chain:  chain,
		HTTP:   client,
		closer: client.Close,
	}, nil
}

func safeCloseClients(c *ChainClients) {
	if c == nil || c.closer == nil {
		return
	}
	c.closer()
}

func (s *ChainService) ResolveNetworkByName(networkName string) (ResolvedChain, error) {
	networkName = strings.ToLower(strings.TrimSpace(networkName))
	if networkName == "" {
		return ResolvedChain{}, errors.New("network name is empty")
	}

	network, ok := s.cfg.Chains.Networks[networkName]
	if !ok {
		return ResolvedChain{}, errors.Newf("unknown network %q", networkName)
	}
	return s.resolveFromNetworkConfig(networkName, network)
}

func (s *ChainService) resolveFromNetworkConfig(networkName string, network NetworkConfig) (ResolvedChain, error) {
	// pick RPC by preferred name; otherwise first
	var selectedRPC *RPC

	if preferred := strings.TrimSpace(s.cfg.PreferredRPCName); preferred != "" {
		for i := range network.RPCs {
			if strings.EqualFold(strings.TrimSpace(network.RPCs[i].Name), preferred) {
				selectedRPC = &network.RPCs[i]
				break
			}
		}
	}
	if selectedRPC == nil {
		if len(network.RPCs) == 0 {
			return ResolvedChain{}, errors.Newf("network %q has no RPCs configured", networkName)
		}
		selectedRPC = &network.RPCs[0]
	}

	if strings.TrimSpace(selectedRPC.URL) == "" {
		return ResolvedChain{}, errors.Newf("network %q rpc %q url is empty", networkName, selectedRPC.Name)
	}

	return ResolvedChain{
		NetworkName: networkName,
		ChainID:     network.ChainID,
		Explorer:    network.Explorer,
		RPCName:     selectedRPC.Name,
		URL:         selectedRPC.URL,
	}, nil
}

// TxURL returns the explorer link for a transaction hash, or "" when the
// network has no explorer configured.
func (r ResolvedChain) TxURL(txHash string) string {
	if r.Explorer == "" || txHash == "" {
		return ""
	}
	return r.Explorer + "/tx/" + txHash
}
