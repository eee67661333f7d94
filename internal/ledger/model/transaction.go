package model

import (
	"encoding/binary"
	"fmt"
	"sync"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
)

// Input claims a prior output and carries the signature authorizing the claim
// under the referenced output's owner key.
type Input struct {
	PrevOut   Outpoint
	Signature []byte
}

// Transaction is an immutable proposed transfer: an ordered list of inputs, an
// ordered list of outputs, and a content-derived identifier. Two transactions
// with identical input and output content share the same identifier.
//
// Transactions must not be modified after construction; the identifier is
// computed once, lazily, from the content as it stands at the first TxID call.
type Transaction struct {
	Inputs  []Input
	Outputs []Output

	txidOnce sync.Once
	txid     chainhash.Hash
}

// NewTransaction constructs a transaction from its inputs and outputs.
func NewTransaction(inputs []Input, outputs []Output) *Transaction {
	return &Transaction{Inputs: inputs, Outputs: outputs}
}

// TxID returns the content hash identifying this transaction.
func (t *Transaction) TxID() chainhash.Hash {
	t.txidOnce.Do(func() {
		t.txid = chainhash.DoubleHashH(t.serialize())
	})
	return t.txid
}

// SignaturePayload returns the canonical byte sequence the signature of input
// index must cover: every input's claimed outpoint (signatures excluded), every
// output, and the input index itself. Altering any outpoint, any output, or the
// index changes the payload; signatures never do.
func (t *Transaction) SignaturePayload(index int) ([]byte, error) {
	if index < 0 || index >= len(t.Inputs) {
		return nil, fmt.Errorf("input index %d out of range [0,%d)", index, len(t.Inputs))
	}

	buf := make([]byte, 0, 64)
	buf = appendUint32(buf, uint32(len(t.Inputs)))
	for _, in := range t.Inputs {
		buf = appendOutpoint(buf, in.PrevOut)
	}
	buf = appendUint32(buf, uint32(len(t.Outputs)))
	for _, out := range t.Outputs {
		buf = appendOutput(buf, out)
	}
	buf = appendUint32(buf, uint32(index))
	return buf, nil
}

// serialize produces the full canonical encoding, signatures included, used for
// the content hash.
func (t *Transaction) serialize() []byte {
	buf := make([]byte, 0, 64)
	buf = appendUint32(buf, uint32(len(t.Inputs)))
	for _, in := range t.Inputs {
		buf = appendOutpoint(buf, in.PrevOut)
		buf = appendBytes(buf, in.Signature)
	}
	buf = appendUint32(buf, uint32(len(t.Outputs)))
	for _, out := range t.Outputs {
		buf = appendOutput(buf, out)
	}
	return buf
}

func appendUint32(buf []byte, v uint32) []byte {
	return binary.LittleEndian.AppendUint32(buf, v)
}

func appendOutpoint(buf []byte, o Outpoint) []byte {
	buf = append(buf, o.TxID[:]...)
	return appendUint32(buf, o.Index)
}

func appendOutput(buf []byte, o Output) []byte {
	buf = binary.LittleEndian.AppendUint64(buf, uint64(o.Value))
	return appendBytes(buf, o.PubKey)
}

// appendBytes writes a length-prefixed byte string, keeping the encoding
// injective for variable-length fields.
func appendBytes(buf, b []byte) []byte {
	buf = appendUint32(buf, uint32(len(b)))
	return append(buf, b...)
}
