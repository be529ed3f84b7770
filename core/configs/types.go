package configs

import (
	"encoding/hex"
	"errors"
	"fmt"
	"time"
)

// Signer of a scenario transaction (account, predicate)
type SignerKind string

const SignerAccount SignerKind = "account"
const SignerPredicate SignerKind = "predicate"

var ErrUnknownSigner = errors.New("unknown signer")

// Chain implementation names
const ChainEthereum = "ethereum"
const ChainMock = "mock"

type ChainKey struct {
	PrivateKey []byte // Private key bytes
	Address    string // Address the key is expected to control, may be empty
}

// Naive check if the prefixed key has "0x" leading.
func checkPrefix(keyHex string) bool {
	return len(keyHex) >= 2 && // Length must be 0x or more
		keyHex[0] == '0' && // Starts with 0
		(keyHex[1] == 'x' || keyHex[1] == 'X') // followed by an x or X
}

// DecodeHex decodes a hex string with or without its "0x" prefix.
func DecodeHex(s string) ([]byte, error) {
	if checkPrefix(s) {
		s = s[2:]
	}

	return hex.DecodeString(s)
}

// ParseChainKey builds a key from its hex encoding.
func ParseChainKey(privateHex string, address string) (*ChainKey, error) {
	if len(privateHex) == 0 {
		return nil, errors.New("empty private key")
	}

	privateKeyBytes, err := DecodeHex(privateHex)
	if err != nil {
		return nil, fmt.Errorf("decode private key: %w", err)
	}

	return &ChainKey{
		PrivateKey: privateKeyBytes,
		Address:    address,
	}, nil
}

func (sk *SignerKind) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var unmarshaled string

	err := unmarshal(&unmarshaled)

	if err != nil {
		return err
	}

	// An omitted signer is the main account
	if len(unmarshaled) == 0 {
		*sk = SignerAccount
		return nil
	}

	switch unmarshaled {
	case "account":
		*sk = SignerAccount
	case "predicate":
		*sk = SignerPredicate
	default:
		return fmt.Errorf("%w '%s'", ErrUnknownSigner, unmarshaled)
	}

	return nil
}

// Duration accepts either a Go duration string ("30s") or a number of seconds.
type Duration time.Duration

func (d *Duration) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var seconds float64

	if err := unmarshal(&seconds); err == nil {
		*d = Duration(seconds * float64(time.Second))
		return nil
	}

	var unmarshaled string

	err := unmarshal(&unmarshaled)
	if err != nil {
		return err
	}

	parsed, err := time.ParseDuration(unmarshaled)
	if err != nil {
		return err
	}

	*d = Duration(parsed)

	return nil
}
