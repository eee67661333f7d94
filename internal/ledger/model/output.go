package model

import "github.com/btcsuite/btcd/btcutil"

// Output is a spendable amount owned by a public key. Outputs are immutable
// once constructed; a negative Value is representable but never valid.
type Output struct {
	Value  btcutil.Amount
	PubKey []byte
}

// NewOutput constructs an Output owned by the given serialized public key.
func NewOutput(value btcutil.Amount, pubKey []byte) Output {
	return Output{Value: value, PubKey: append([]byte(nil), pubKey...)}
}

// Clone returns a deep copy of the output.
func (o Output) Clone() Output {
	return Output{Value: o.Value, PubKey: append([]byte(nil), o.PubKey...)}
}
