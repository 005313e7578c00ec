// Package wallet turns encrypted wallet material into signing handles.
package wallet

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/ed25519"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"

	"github.com/custodia-tech/settlement-backend/internal/model"
)

// ErrVkeyMismatch means the key derived from the stored mnemonic does not
// hash to the verification key hash on the wallet row. The row is corrupt
// or the wrong service secret is configured; signing must not proceed.
var ErrVkeyMismatch = errors.New("derived verification key does not match wallet record")

// KeyHandle is a resolved signing wallet.
type KeyHandle struct {
	priv     ed25519.PrivateKey
	vkeyHash string
	address  string
}

// Sign signs the transaction body with the wallet's payment key.
func (h *KeyHandle) Sign(txBytes []byte) ([]byte, error) {
	return ed25519.Sign(h.priv, txBytes), nil
}

// VkeyHash returns the hash of the wallet's verification key.
func (h *KeyHandle) VkeyHash() string { return h.vkeyHash }

// Address returns the wallet's payment address.
func (h *KeyHandle) Address() string { return h.address }

// Provider decrypts stored mnemonics with the service secret and derives
// signing handles from them.
type Provider struct {
	key []byte
}

// NewProvider derives the symmetric encryption key from the service secret.
func NewProvider(secret string) (*Provider, error) {
	if secret == "" {
		return nil, errors.New("wallet encryption secret is required")
	}
	key := sha256.Sum256([]byte(secret))
	return &Provider{key: key[:]}, nil
}

// Resolve decrypts the wallet's mnemonic and returns its signing handle.
// The derived verification key hash must match the one persisted on the row.
func (p *Provider) Resolve(w *model.HotWallet) (*KeyHandle, error) {
	mnemonic, err := p.decrypt(w.EncryptedMnemonic)
	if err != nil {
		return nil, fmt.Errorf("decrypt mnemonic of wallet %s: %w", w.ID, err)
	}

	seed := sha256.Sum256([]byte(mnemonic))
	priv := ed25519.NewKeyFromSeed(seed[:])
	vkeyHash := hashVkey(priv.Public().(ed25519.PublicKey))

	if w.VkeyHash != "" && w.VkeyHash != vkeyHash {
		return nil, fmt.Errorf("wallet %s: %w", w.ID, ErrVkeyMismatch)
	}

	return &KeyHandle{
		priv:     priv,
		vkeyHash: vkeyHash,
		address:  w.Address,
	}, nil
}

// EncryptMnemonic seals a mnemonic for storage. Used by onboarding tooling
// and tests; the settlement core itself only decrypts.
func (p *Provider) EncryptMnemonic(mnemonic string) (string, error) {
	block, err := aes.NewCipher(p.key)
	if err != nil {
		return "", err
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return "", err
	}
	nonce := make([]byte, gcm.NonceSize())
	if _, err := rand.Read(nonce); err != nil {
		return "", err
	}
	sealed := gcm.Seal(nonce, nonce, []byte(mnemonic), nil)
	return base64.StdEncoding.EncodeToString(sealed), nil
}

// VkeyHashFromMnemonic derives the verification key hash a mnemonic maps
// to, for populating wallet rows.
func VkeyHashFromMnemonic(mnemonic string) string {
	seed := sha256.Sum256([]byte(mnemonic))
	priv := ed25519.NewKeyFromSeed(seed[:])
	return hashVkey(priv.Public().(ed25519.PublicKey))
}

func (p *Provider) decrypt(encoded string) (string, error) {
	sealed, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return "", fmt.Errorf("decode ciphertext: %w", err)
	}
	block, err := aes.NewCipher(p.key)
	if err != nil {
		return "", err
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return "", err
	}
	if len(sealed) < gcm.NonceSize() {
		return "", errors.New("ciphertext shorter than nonce")
	}
	nonce, ciphertext := sealed[:gcm.NonceSize()], sealed[gcm.NonceSize():]
	plain, err := gcm.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return "", fmt.Errorf("open ciphertext: %w", err)
	}
	return string(plain), nil
}

// The ledger identifies signing parties by a 28-byte hash of the
// verification key.
func hashVkey(pub ed25519.PublicKey) string {
	sum := sha256.Sum256(pub)
	return hex.EncodeToString(sum[:28])
}
