// Package crypto implements signature verification for ledger transactions
// over secp256k1 ECDSA.
package crypto

import (
	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/btcec/v2/ecdsa"
	"github.com/btcsuite/btcd/chaincfg/chainhash"
)

// Verifier checks transaction input signatures. It satisfies the validator's
// SignatureVerifier contract: total, never panics, false for anything malformed.
type Verifier struct{}

// NewVerifier returns a secp256k1 ECDSA Verifier.
func NewVerifier() Verifier {
	return Verifier{}
}

// Verify reports whether sig is a valid DER-encoded ECDSA signature by the
// owner of pubKey (compressed or uncompressed SEC encoding) over the
// double-SHA256 digest of payload.
func (Verifier) Verify(pubKey, payload, sig []byte) bool {
	if len(pubKey) == 0 || len(sig) == 0 {
		return false
	}
	pk, err := btcec.ParsePubKey(pubKey)
	if err != nil {
		return false
	}
	signature, err := ecdsa.ParseDERSignature(sig)
	if err != nil {
		return false
	}
	return signature.Verify(chainhash.DoubleHashB(payload), pk)
}

// Sign produces a DER-encoded signature over the double-SHA256 digest of
// payload. Used by wallet-side callers and test fixtures.
func Sign(priv *btcec.PrivateKey, payload []byte) []byte {
	return ecdsa.Sign(priv, chainhash.DoubleHashB(payload)).Serialize()
}

// GenerateKey creates a fresh secp256k1 key pair.
func GenerateKey() (*btcec.PrivateKey, error) {
	return btcec.NewPrivateKey()
}
