package wallet

import (
	"crypto/ecdsa"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"

	"github.com/quantumauth-io/policy-client/internal/constants"
	"github.com/quantumauth-io/policy-client/internal/securefile"
)

// Wallet is the plaintext payload stored inside the encrypted wallet file.
type Wallet struct {
	Version    int    `json:"version"`
	AddressHex string `json:"address"`
	PrivKeyHex string `json:"priv_key_hex"`

	CreatedAt string `json:"created_at,omitempty"` // RFC3339
}

func (w *Wallet) Address() common.Address {
	return common.HexToAddress(w.AddressHex)
}

func (w *Wallet) privateKey() (*ecdsa.PrivateKey, error) {
	return parseKey(w.PrivKeyHex)
}

// Store locates the encrypted wallet on disk. A zero Cost uses the
// default Argon2id work factor.
type Store struct {
	Path string
	Cost securefile.Cost
}

// NewStore returns a store at path, or at the canonical config path when
// path is empty.
func NewStore(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		var err error
		if path, err = securefile.DefaultPath(constants.AppName, constants.WalletFile); err != nil {
			return nil, err
		}
	}
	return &Store{Path: path}, nil
}

func (s *Store) vault() *securefile.Vault {
	return &securefile.Vault{Path: s.Path, Cost: s.Cost}
}

// Exists reports whether the wallet file is present.
func (s *Store) Exists() bool { return s.vault().Exists() }

// Load decrypts the wallet with password.
func (s *Store) Load(password []byte) (*Wallet, error) {
	var w Wallet
	if err := s.vault().Load(password, &w); err != nil {
		return nil, errors.Wrapf(err, "load wallet %s", s.Path)
	}
	return &w, nil
}

// Create writes w (or a fresh random wallet when w is nil) encrypted under
// password. An existing file is never overwritten.
func (s *Store) Create(password []byte, w *Wallet) (*Wallet, error) {
	if s.Exists() {
		return nil, errors.Newf("wallet already exists at %s", s.Path)
	}
	if w == nil {
		var err error
		if w, err = NewRandomWallet(); err != nil {
			return nil, err
		}
	}
	if err := s.vault().Save(w, password); err != nil {
		return nil, errors.Wrap(err, "write wallet")
	}
	return w, nil
}

func NewRandomWallet() (*Wallet, error) {
	key, err := crypto.GenerateKey()
	if err != nil {
		return nil, errors.Wrap(err, "generate key")
	}
	return walletFromKey(key), nil
}

// ImportWallet wraps an existing hex private key.
func ImportWallet(hexKey string) (*Wallet, error) {
	key, err := parseKey(hexKey)
	if err != nil {
		return nil, err
	}
	return walletFromKey(key), nil
}

func walletFromKey(key *ecdsa.PrivateKey) *Wallet {
	return &Wallet{
		Version:    constants.SchemaV1,
		AddressHex: crypto.PubkeyToAddress(key.PublicKey).Hex(),
		PrivKeyHex: common.Bytes2Hex(crypto.FromECDSA(key)),
		CreatedAt:  time.Now().UTC().Format(time.RFC3339),
	}
}

func parseKey(hexKey string) (*ecdsa.PrivateKey, error) {
	s := strings.TrimSpace(hexKey)
	s = strings.TrimPrefix(strings.TrimPrefix(s, "0x"), "0X")
	if s == "" {
		return nil, errors.New("empty private key")
	}
	key, err := crypto.HexToECDSA(s)
	if err != nil {
		return nil, errors.Wrap(err, "parse private key")
	}
	return key, nil
}
