package identity

import (
	"github.com/ethereum/go-ethereum/common"

	"github.com/landchain/titleledger/pkg/errors"
)

// Identity is a 20-byte secp256k1-derived address identifying a caller on the
// ledger: the admin, a land owner, or any read-only observer. The zero value
// is the null identity and is never a valid admin or owner.
type Identity common.Address

// Zero is the null identity.
var Zero Identity

// Parse converts a hex address string (with or without 0x prefix) into an
// Identity.
func Parse(s string) (Identity, error) {
	if !common.IsHexAddress(s) {
		return Zero, errors.NewInvalidArgumentError("identity", "not a valid hex address", s)
	}
	return Identity(common.HexToAddress(s)), nil
}

// MustParse is Parse for hard-coded addresses in tests and tooling; it panics
// on invalid input.
func MustParse(s string) Identity {
	id, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return id
}

// IsZero reports whether the identity is the null identity.
func (id Identity) IsZero() bool {
	return id == Zero
}

// Hex returns the EIP-55 checksummed hex form.
func (id Identity) Hex() string {
	return common.Address(id).Hex()
}

// String implements fmt.Stringer.
func (id Identity) String() string {
	return id.Hex()
}

// MarshalText implements encoding.TextMarshaler so identities serialize as
// hex in JSON and YAML.
func (id Identity) MarshalText() ([]byte, error) {
	return []byte(id.Hex()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (id *Identity) UnmarshalText(text []byte) error {
	parsed, err := Parse(string(text))
	if err != nil {
		return err
	}
	*id = parsed
	return nil
}
