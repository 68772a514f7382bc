package wallet

import (
	"context"
	"math/big"

	"github.com/cockroachdb/errors"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/quantumauth-io/quantum-go-utils/qa_evm"

	"github.com/quantumauth-io/policy-client/internal/chains"
)

var (
	// ErrUnavailable means no signing provider could be reached: no wallet
	// file, no key in the environment, or no node to talk to.
	ErrUnavailable = errors.New("wallet provider unavailable")

	// ErrDenied means the provider was reached but refused to expose an
	// account or sign.
	ErrDenied = errors.New("wallet authorization denied")
)

// Backend is everything a session needs from the node: contract calls,
// transaction submission and receipt polling.
type Backend interface {
	bind.ContractBackend
	bind.DeployBackend
	ChainID(ctx context.Context) (*big.Int, error)
}

// BackendSource yields the backend for the active network, dialing lazily.
type BackendSource func(ctx context.Context) (Backend, error)

// BackendFrom narrows a chain client to the contract backend surface.
func BackendFrom(c qa_evm.BlockchainClient) (Backend, error) {
	if c == nil {
		return nil, errors.New("nil blockchain client")
	}
	b, ok := c.(Backend)
	if !ok {
		return nil, errors.Newf("blockchain client %T cannot back contract calls", c)
	}
	return b, nil
}

// FromChainService returns a BackendSource bound to the service's active network.
func FromChainService(svc *chains.ChainService) BackendSource {
	return func(ctx context.Context) (Backend, error) {
		clients, err := svc.Active(ctx)
		if err != nil {
			return nil, err
		}
		return BackendFrom(clients.HTTP)
	}
}

// StaticBackend always returns b.
func StaticBackend(b Backend) BackendSource {
	return func(context.Context) (Backend, error) { return b, nil }
}
