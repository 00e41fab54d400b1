// Package vault provides encrypted at-rest storage for the sync backend
// credential.
package vault

import (
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"golang.org/x/crypto/nacl/secretbox"
	"golang.org/x/crypto/scrypt"
)

// Vault errors.
var (
	ErrCredentialNotFound = errors.New("credential not found")
	ErrWrongPassphrase    = errors.New("wrong passphrase or corrupted vault")
	ErrPassphraseRequired = errors.New("passphrase is required")
)

// scrypt parameters. Bump only together with a vault format version.
const (
	scryptN = 1 << 15
	scryptR = 8
	scryptP = 1
	keySize = 32
)

// Credential holds the sync backend access data.
type Credential struct {
	// BaseURL is the sync backend base URL this credential belongs to.
	BaseURL string `json:"base_url"`

	// Token is the bearer token for the backend API.
	Token string `json:"token"`

	// AccountEmail identifies the account, for display only.
	AccountEmail string `json:"account_email,omitempty"`

	// CreatedAt is when the credential was first saved.
	CreatedAt time.Time `json:"created_at"`

	// UpdatedAt is when the credential was last saved.
	UpdatedAt time.Time `json:"updated_at"`
}

// envelope is the on-disk vault file format.
type envelope struct {
	Version int    `json:"version"`
	Salt    string `json:"salt"`
	Nonce   string `json:"nonce"`
	Sealed  string `json:"sealed"`
}

// DefaultVaultPath returns the default vault file location.
func DefaultVaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	return filepath.Join(home, ".config", "framecast", "vault", "credential.json")
}

// Exists reports whether a credential has been saved at vaultPath.
func Exists(vaultPath string) bool {
	_, err := os.Stat(vaultPath)
	return err == nil
}

// Save encrypts the credential with a passphrase-derived key and writes it
// to vaultPath, replacing any previous credential.
func Save(vaultPath, passphrase string, cred *Credential) error {
	if passphrase == "" {
		return ErrPassphraseRequired
	}

	now := time.Now().UTC()
	if cred.CreatedAt.IsZero() {
		cred.CreatedAt = now
	}
	cred.UpdatedAt = now

	plaintext, err := json.Marshal(cred)
	if err != nil {
		return fmt.Errorf("encode credential: %w", err)
	}

	salt := make([]byte, 16)
	if _, err := io.ReadFull(rand.Reader, salt); err != nil {
		return fmt.Errorf("generate salt: %w", err)
	}
	key, err := deriveKey(passphrase, salt)
	if err != nil {
		return err
	}

	var nonce [24]byte
	if _, err := io.ReadFull(rand.Reader, nonce[:]); err != nil {
		return fmt.Errorf("generate nonce: %w", err)
	}

	sealed := secretbox.Seal(nil, plaintext, &nonce, key)

	data, err := json.MarshalIndent(envelope{
		Version: 1,
		Salt:    base64.StdEncoding.EncodeToString(salt),
		Nonce:   base64.StdEncoding.EncodeToString(nonce[:]),
		Sealed:  base64.StdEncoding.EncodeToString(sealed),
	}, "", "  ")
	if err != nil {
		return fmt.Errorf("encode vault: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(vaultPath), 0700); err != nil {
		return fmt.Errorf("create vault directory: %w", err)
	}
	if err := os.WriteFile(vaultPath, data, 0600); err != nil {
		return fmt.Errorf("write vault: %w", err)
	}
	return nil
}

// Load decrypts and returns the credential stored at vaultPath.
func Load(vaultPath, passphrase string) (*Credential, error) {
	if passphrase == "" {
		return nil, ErrPassphraseRequired
	}

	data, err := os.ReadFile(vaultPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrCredentialNotFound
		}
		return nil, fmt.Errorf("read vault: %w", err)
	}

	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, fmt.Errorf("parse vault: %w", err)
	}

	salt, err := base64.StdEncoding.DecodeString(env.Salt)
	if err != nil {
		return nil, fmt.Errorf("decode salt: %w", err)
	}
	nonceBytes, err := base64.StdEncoding.DecodeString(env.Nonce)
	if err != nil || len(nonceBytes) != 24 {
		return nil, fmt.Errorf("decode nonce: invalid")
	}
	sealed, err := base64.StdEncoding.DecodeString(env.Sealed)
	if err != nil {
		return nil, fmt.Errorf("decode payload: %w", err)
	}

	key, err := deriveKey(passphrase, salt)
	if err != nil {
		return nil, err
	}

	var nonce [24]byte
	copy(nonce[:], nonceBytes)

	plaintext, ok := secretbox.Open(nil, sealed, &nonce, key)
	if !ok {
		return nil, ErrWrongPassphrase
	}

	var cred Credential
	if err := json.Unmarshal(plaintext, &cred); err != nil {
		return nil, fmt.Errorf("decode credential: %w", err)
	}
	return &cred, nil
}

// Delete removes the stored credential. Deleting a missing credential is
// not an error.
func Delete(vaultPath string) error {
	if err := os.Remove(vaultPath); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("delete vault: %w", err)
	}
	return nil
}

func deriveKey(passphrase string, salt []byte) (*[keySize]byte, error) {
	derived, err := scrypt.Key([]byte(passphrase), salt, scryptN, scryptR, scryptP, keySize)
	if err != nil {
		return nil, fmt.Errorf("derive key: %w", err)
	}
	var key [keySize]byte
	copy(key[:], derived)
	return &key, nil
}
