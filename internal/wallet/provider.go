package wallet

import (
	"context"
	"crypto/ecdsa"
	"math/big"
	"os"
	"strings"
	"sync"

	"github.com/cockroachdb/errors"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/quantumauth-io/quantum-go-utils/log"

	"github.com/quantumauth-io/policy-client/internal/securefile"
)

// signer holds an unlocked key and the node it signs for.
type signer struct {
	source BackendSource

	mu      sync.Mutex
	backend Backend
	chainID *big.Int
	key     *ecdsa.PrivateKey

	// nextNonce is the lowest nonce not yet handed out; valid when haveNonce.
	nextNonce uint64
	haveNonce bool
}

func (s *signer) connect(ctx context.Context) (Backend, *big.Int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.backend != nil {
		return s.backend, s.chainID, nil
	}
	if s.source == nil {
		return nil, nil, errors.Wrap(ErrUnavailable, "no backend configured")
	}

	b, err := s.source(ctx)
	if err != nil {
		return nil, nil, errors.Wrapf(ErrUnavailable, "connect: %v", err)
	}
	chainID, err := b.ChainID(ctx)
	if err != nil {
		return nil, nil, errors.Wrapf(ErrUnavailable, "chain id: %v", err)
	}

	s.backend = b
	s.chainID = chainID
	return b, chainID, nil
}

// Backend returns the node connection, dialing on first use.
func (s *signer) Backend(ctx context.Context) (Backend, error) {
	b, _, err := s.connect(ctx)
	return b, err
}

func (s *signer) unlocked() *ecdsa.PrivateKey {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.key
}

func (s *signer) setKey(k *ecdsa.PrivateKey) {
	s.mu.Lock()
	s.key = k
	s.mu.Unlock()
}

// TransactOpts returns signing options for account with nonce and fees filled in.
func (s *signer) TransactOpts(ctx context.Context, account common.Address) (*bind.TransactOpts, error) {
	key := s.unlocked()
	if key == nil {
		return nil, errors.Wrap(ErrDenied, "wallet is locked")
	}
	if crypto.PubkeyToAddress(key.PublicKey) != account {
		return nil, errors.Wrapf(ErrDenied, "account %s is not managed by this wallet", account.Hex())
	}

	backend, chainID, err := s.connect(ctx)
	if err != nil {
		return nil, err
	}
	opts, err := transactorFromKey(ctx, backend, key, chainID)
	if err != nil {
		return nil, err
	}
	opts.Nonce = new(big.Int).SetUint64(s.reserveNonce(opts.Nonce.Uint64()))
	return opts, nil
}

// reserveNonce hands out max(pending, next) so overlapping sends from this
// wallet get consecutive nonces.
func (s *signer) reserveNonce(pending uint64) uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := pending
	if s.haveNonce && s.nextNonce > n {
		n = s.nextNonce
	}
	s.nextNonce = n + 1
	s.haveNonce = true
	return n
}

// ResetNonce forgets locally reserved nonces; the next TransactOpts starts
// again from the node's pending nonce. Call it when a send fails.
func (s *signer) ResetNonce() {
	s.mu.Lock()
	s.haveNonce = false
	s.nextNonce = 0
	s.mu.Unlock()
}

func transactorFromKey(
	ctx context.Context,
	backend Backend,
	key *ecdsa.PrivateKey,
	chainID *big.Int,
) (*bind.TransactOpts, error) {

	opts, err := bind.NewKeyedTransactorWithChainID(key, chainID)
	if err != nil {
		return nil, err
	}

	nonce, err := backend.PendingNonceAt(ctx, opts.From)
	if err != nil {
		return nil, errors.Wrap(err, "pending nonce")
	}
	opts.Nonce = new(big.Int).SetUint64(nonce)

	// Fees: 1559 preferred, else legacy
	tip, tipErr := backend.SuggestGasTipCap(ctx)
	hdr, hdrErr := backend.HeaderByNumber(ctx, nil)

	if tipErr == nil && hdrErr == nil && hdr != nil && hdr.BaseFee != nil {
		feeCap := new(big.Int).Mul(hdr.BaseFee, big.NewInt(2))
		feeCap.Add(feeCap, tip)
		opts.GasTipCap = tip
		opts.GasFeeCap = feeCap
	} else {
		gp, err := backend.SuggestGasPrice(ctx)
		if err != nil {
			return nil, errors.Wrap(err, "suggest gas price")
		}
		opts.GasPrice = gp
	}

	opts.Context = ctx
	return opts, nil
}

// FileProvider signs with the password-encrypted wallet file. The password is
// requested on RequestAccounts; refusing it counts as a denial.
type FileProvider struct {
	signer
	store    *Store
	prompter Prompter
}

func NewFileProvider(store *Store, prompter Prompter, source BackendSource) *FileProvider {
	return &FileProvider{
		signer:   signer{source: source},
		store:    store,
		prompter: prompter,
	}
}

func (p *FileProvider) RequestAccounts(ctx context.Context) ([]common.Address, error) {
	if p.store == nil || !p.store.Exists() {
		return nil, errors.Wrap(ErrUnavailable, "no wallet file; run `wallet init` first")
	}
	if _, _, err := p.connect(ctx); err != nil {
		return nil, err
	}

	if k := p.unlocked(); k != nil {
		return []common.Address{crypto.PubkeyToAddress(k.PublicKey)}, nil
	}

	if p.prompter == nil {
		return nil, errors.Wrap(ErrUnavailable, "no password prompt available")
	}
	pw, err := p.prompter.Password("Wallet password: ")
	if err != nil {
		return nil, errors.Wrapf(ErrDenied, "password prompt: %v", err)
	}
	defer securefile.ZeroBytes(pw)

	w, err := p.store.Load(pw)
	if err != nil {
		if errors.Is(err, securefile.ErrEmptyPassword) || errors.Is(err, securefile.ErrInvalidPasswordOrCorrupt) {
			return nil, errors.Wrap(ErrDenied, "wallet could not be unlocked")
		}
		return nil, errors.Wrapf(ErrUnavailable, "%v", err)
	}

	key, err := w.privateKey()
	if err != nil {
		return nil, errors.Wrapf(ErrUnavailable, "wallet key: %v", err)
	}
	p.setKey(key)

	log.Info("wallet unlocked", "address", w.Address().Hex())
	return []common.Address{w.Address()}, nil
}

// KeyProvider signs with a hex private key read from an environment variable.
type KeyProvider struct {
	signer
	envName string
}

func NewKeyProvider(envName string, source BackendSource) *KeyProvider {
	return &KeyProvider{
		signer:  signer{source: source},
		envName: envName,
	}
}

func (p *KeyProvider) RequestAccounts(ctx context.Context) ([]common.Address, error) {
	raw := strings.TrimSpace(os.Getenv(p.envName))
	if raw == "" {
		return nil, errors.Wrapf(ErrUnavailable, "%s is not set", p.envName)
	}
	if _, _, err := p.connect(ctx); err != nil {
		return nil, err
	}

	key, err := parseKey(raw)
	if err != nil {
		return nil, errors.Wrapf(ErrUnavailable, "%s: %v", p.envName, err)
	}
	p.setKey(key)

	return []common.Address{crypto.PubkeyToAddress(key.PublicKey)}, nil
}
