package identity

import (
	"crypto/ecdsa"
	"encoding/hex"
	"strconv"
	"strings"

	ethcrypto "github.com/ethereum/go-ethereum/crypto"

	"github.com/landchain/titleledger/pkg/errors"
)

// personalHash computes the Ethereum personal-sign digest of a message.
// Wallets prepend this prefix before signing, so recovery must too.
func personalHash(msg []byte) []byte {
	prefix := []byte("\x19Ethereum Signed Message:\n" + strconv.Itoa(len(msg)))
	return ethcrypto.Keccak256(prefix, msg)
}

// Sign produces a personal-sign signature over msg with the given key. The
// returned signature is 65 bytes hex-encoded with a 27/28 recovery id, the
// format wallets emit.
func Sign(key *ecdsa.PrivateKey, msg []byte) (string, error) {
	sig, err := ethcrypto.Sign(personalHash(msg), key)
	if err != nil {
		return "", errors.NewInternalError("signing failed", err)
	}
	sig[64] += 27
	return "0x" + hex.EncodeToString(sig), nil
}

// RecoverSigner recovers the identity that produced a personal-sign signature
// over msg. It accepts both 0/1 and 27/28 recovery ids.
func RecoverSigner(msg []byte, signature string) (Identity, error) {
	sigHex := strings.TrimSpace(signature)
	if strings.HasPrefix(sigHex, "0x") || strings.HasPrefix(sigHex, "0X") {
		sigHex = sigHex[2:]
	}
	sig, err := hex.DecodeString(sigHex)
	if err != nil || len(sig) != 65 {
		return Zero, errors.NewUnauthenticatedError("invalid signature format")
	}

	if sig[64] >= 27 {
		sig[64] -= 27
	}

	pub, err := ethcrypto.SigToPub(personalHash(msg), sig)
	if err != nil {
		return Zero, errors.NewUnauthenticatedError("signature recovery failed")
	}

	return Identity(ethcrypto.PubkeyToAddress(*pub)), nil
}

// FromKey derives the identity for a private key.
func FromKey(key *ecdsa.PrivateKey) Identity {
	return Identity(ethcrypto.PubkeyToAddress(key.PublicKey))
}
