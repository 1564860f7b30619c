package identity

import (
	"crypto/ecdsa"
	"fmt"
	"os"
	"path/filepath"

	ethcrypto "github.com/ethereum/go-ethereum/crypto"
)

// GenerateKey creates a new secp256k1 private key.
func GenerateKey() (*ecdsa.PrivateKey, error) {
	key, err := ethcrypto.GenerateKey()
	if err != nil {
		return nil, fmt.Errorf("failed to generate key: %w", err)
	}
	return key, nil
}

// SaveKey writes a private key to path as hex, creating parent directories.
// The file is readable only by the owner.
func SaveKey(key *ecdsa.PrivateKey, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("failed to create key directory: %w", err)
	}
	if err := ethcrypto.SaveECDSA(path, key); err != nil {
		return fmt.Errorf("failed to save key: %w", err)
	}
	return os.Chmod(path, 0600)
}

// LoadKey reads a hex-encoded private key from path.
func LoadKey(path string) (*ecdsa.PrivateKey, error) {
	key, err := ethcrypto.LoadECDSA(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load key %s: %w", path, err)
	}
	return key, nil
}

// DefaultKeyPath returns the default key location under the user's home
// directory.
func DefaultKeyPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(homeDir, ".titleledger", "key.hex"), nil
}
