// Package model defines domain models for the UTXO ledger core.
package model

import (
	"fmt"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
)

// Outpoint references a single output of a prior transaction. It is a value
// type and safe to use as a map key.
type Outpoint struct {
	TxID  chainhash.Hash
	Index uint32
}

// NewOutpoint constructs an Outpoint for the given transaction id and output index.
func NewOutpoint(txid chainhash.Hash, index uint32) Outpoint {
	return Outpoint{TxID: txid, Index: index}
}

// String renders the outpoint as "txid:index".
func (o Outpoint) String() string {
	return fmt.Sprintf("%s:%d", o.TxID.String(), o.Index)
}
