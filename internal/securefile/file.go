// Package securefile stores the wallet as a password-sealed JSON envelope.
// The key is derived with Argon2id and the payload sealed with
// XChaCha20-Poly1305, bound to the wallet AAD.
package securefile

import (
	"crypto/rand"
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/cockroachdb/errors"
	"golang.org/x/crypto/argon2"
	"golang.org/x/crypto/chacha20poly1305"

	"github.com/quantumauth-io/policy-client/internal/constants"
)

const (
	envelopeVersion = 1
	saltSize        = 16
)

var (
	// ErrInvalidPasswordOrCorrupt is returned when the envelope does not open.
	// Wrong password and tampered file are indistinguishable on purpose.
	ErrInvalidPasswordOrCorrupt = errors.New("invalid password or corrupted file")

	ErrEmptyPassword = errors.New("securefile: empty password")
)

// Cost is the Argon2id work factor recorded in each envelope.
type Cost struct {
	Time      uint32 `json:"time"`
	MemoryKiB uint32 `json:"memory_kib"`
	Threads   uint8  `json:"threads"`
}

var DefaultCost = Cost{Time: 2, MemoryKiB: 64 * 1024, Threads: 1}

func (c Cost) key(password, salt []byte) []byte {
	return argon2.IDKey(password, salt, c.Time, c.MemoryKiB, c.Threads, chacha20poly1305.KeySize)
}

// envelope is the on-disk form. []byte fields encode as base64.
type envelope struct {
	Version    int    `json:"version"`
	Cost       Cost   `json:"kdf"`
	Salt       []byte `json:"salt"`
	Nonce      []byte `json:"nonce"`
	Ciphertext []byte `json:"ciphertext"`
}

// Vault is one sealed file. A zero Cost means DefaultCost.
type Vault struct {
	Path string
	Cost Cost
}

func (v *Vault) cost() Cost {
	if v.Cost == (Cost{}) {
		return DefaultCost
	}
	return v.Cost
}

// Exists reports whether the vault file is present.
func (v *Vault) Exists() bool {
	_, err := os.Stat(v.Path)
	return err == nil
}

// Save seals the JSON encoding of payload under password and replaces the
// file atomically.
func (v *Vault) Save(payload any, password []byte) error {
	if blank(password) {
		return ErrEmptyPassword
	}

	plain, err := json.Marshal(payload)
	if err != nil {
		return errors.Wrap(err, "encode payload")
	}
	defer ZeroBytes(plain)

	env := envelope{
		Version: envelopeVersion,
		Cost:    v.cost(),
		Salt:    make([]byte, saltSize),
		Nonce:   make([]byte, chacha20poly1305.NonceSizeX),
	}
	if _, err := rand.Read(env.Salt); err != nil {
		return errors.Wrap(err, "salt")
	}
	if _, err := rand.Read(env.Nonce); err != nil {
		return errors.Wrap(err, "nonce")
	}

	key := env.Cost.key(password, env.Salt)
	defer ZeroBytes(key)
	aead, err := chacha20poly1305.NewX(key)
	if err != nil {
		return errors.Wrap(err, "cipher")
	}
	env.Ciphertext = aead.Seal(nil, env.Nonce, plain, []byte(constants.WalletAAD))

	data, err := json.MarshalIndent(env, "", "  ")
	if err != nil {
		return errors.Wrap(err, "encode envelope")
	}
	return replaceFile(v.Path, data)
}

// Load opens the file with password and decodes the payload into out.
// A missing file keeps os.ErrNotExist in the chain.
func (v *Vault) Load(password []byte, out any) error {
	data, err := os.ReadFile(v.Path)
	if err != nil {
		return errors.Wrap(err, "read vault")
	}
	if blank(password) {
		return ErrEmptyPassword
	}

	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return errors.Wrap(err, "decode envelope")
	}
	if env.Version != envelopeVersion {
		return errors.Newf("unsupported vault version %d", env.Version)
	}
	if len(env.Nonce) != chacha20poly1305.NonceSizeX {
		return ErrInvalidPasswordOrCorrupt
	}

	key := env.Cost.key(password, env.Salt)
	defer ZeroBytes(key)
	aead, err := chacha20poly1305.NewX(key)
	if err != nil {
		return errors.Wrap(err, "cipher")
	}
	plain, err := aead.Open(nil, env.Nonce, env.Ciphertext, []byte(constants.WalletAAD))
	if err != nil {
		return ErrInvalidPasswordOrCorrupt
	}
	defer ZeroBytes(plain)

	return errors.Wrap(json.Unmarshal(plain, out), "decode payload")
}

// DefaultPath is <home>/.config/<app>/<filename>, falling back to the
// platform config dir when HOME is unset.
func DefaultPath(app, filename string) (string, error) {
	if app == "" || filename == "" {
		return "", errors.New("app and filename must not be empty")
	}
	if home := os.Getenv("HOME"); home != "" {
		return filepath.Join(home, ".config", app, filename), nil
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", errors.Wrap(err, "config dir")
	}
	return filepath.Join(dir, app, filename), nil
}

// replaceFile writes data next to path and renames it into place.
func replaceFile(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, constants.DirectoryPerm); err != nil {
		return errors.Wrapf(err, "mkdir %s", dir)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".*.tmp")
	if err != nil {
		return errors.Wrap(err, "create temp")
	}
	defer func() { _ = os.Remove(tmp.Name()) }()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return errors.Wrap(err, "write temp")
	}
	if err := tmp.Chmod(constants.FilePerm); err != nil {
		_ = tmp.Close()
		return errors.Wrap(err, "chmod temp")
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		return errors.Wrap(err, "sync temp")
	}
	if err := tmp.Close(); err != nil {
		return errors.Wrap(err, "close temp")
	}
	return errors.Wrap(os.Rename(tmp.Name(), path), "rename")
}

func blank(b []byte) bool {
	for _, c := range b {
		if c != 0 {
			return false
		}
	}
	return true
}

// ZeroBytes wipes b in place.
func ZeroBytes(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
