// Package validator decides whether a single transaction may spend against a
// UTXO set and applies accepted transactions to it.
package validator

import (
	"github.com/btcsuite/btcd/btcutil"

	"github.com/goodnatureofminers/ledgercore7000-backend/internal/ledger/model"
)

// Validator performs stateless per-transaction validation against a UTXO set
// snapshot supplied per call.
type Validator struct {
	sig SignatureVerifier
}

// New constructs a Validator using the given signature verifier.
func New(sig SignatureVerifier) *Validator {
	return &Validator{sig: sig}
}

// Validate reports whether tx is valid against set:
//  1. every claimed outpoint is unspent in set,
//  2. every input signature verifies under the claimed output's owner key,
//  3. no outpoint is claimed twice within tx,
//  4. every output value is non-negative,
//  5. claimed input value covers output value (fee >= 0).
//
// A nil transaction and malformed signatures are rejections, not errors.
// Zero-input transactions are not special-cased; they fail only if rule 5 does.
func (v *Validator) Validate(tx *model.Transaction, set *model.UTXOSet) bool {
	if tx == nil || set == nil {
		return false
	}
	return inputsUnspent(tx, set) &&
		v.signaturesValid(tx, set) &&
		!HasDoubleSpend(tx) &&
		!HasNegativeOutput(tx) &&
		!createsValue(tx, set)
}

// Fee returns the resolved input value minus the output value. Inputs that do
// not resolve in set contribute zero; this is a fee estimate, not a validity
// check, and is only meaningful for transactions whose inputs all resolve.
func (v *Validator) Fee(tx *model.Transaction, set *model.UTXOSet) btcutil.Amount {
	return sumInputs(tx, set) - sumOutputs(tx)
}

// Apply consumes every claimed outpoint from set and adds one entry per output
// keyed by (tx id, output index). Inputs are removed before outputs are added,
// so a transaction can never consume its own outputs.
//
// The caller must have validated tx against exactly this set; prefer
// ValidateAndApply on commit paths.
func (v *Validator) Apply(tx *model.Transaction, set *model.UTXOSet) {
	for _, in := range tx.Inputs {
		set.Remove(in.PrevOut)
	}
	txid := tx.TxID()
	for i, out := range tx.Outputs {
		set.Add(model.NewOutpoint(txid, uint32(i)), out)
	}
}

// ValidateAndApply applies tx to set only if it validates against it, and
// reports whether it did. This is the only mutation path commit code should use.
func (v *Validator) ValidateAndApply(tx *model.Transaction, set *model.UTXOSet) bool {
	if !v.Validate(tx, set) {
		return false
	}
	v.Apply(tx, set)
	return true
}

func inputsUnspent(tx *model.Transaction, set *model.UTXOSet) bool {
	for _, in := range tx.Inputs {
		if !set.Contains(in.PrevOut) {
			return false
		}
	}
	return true
}

func (v *Validator) signaturesValid(tx *model.Transaction, set *model.UTXOSet) bool {
	for i, in := range tx.Inputs {
		out, ok := set.Get(in.PrevOut)
		if !ok {
			return false
		}
		payload, err := tx.SignaturePayload(i)
		if err != nil {
			return false
		}
		if len(in.Signature) == 0 || !v.sig.Verify(out.PubKey, payload, in.Signature) {
			return false
		}
	}
	return true
}

// HasDoubleSpend reports whether tx claims the same outpoint more than once.
// Snapshot-independent; exported for the resolver's structural pre-check.
func HasDoubleSpend(tx *model.Transaction) bool {
	seen := make(map[model.Outpoint]struct{}, len(tx.Inputs))
	for _, in := range tx.Inputs {
		if _, dup := seen[in.PrevOut]; dup {
			return true
		}
		seen[in.PrevOut] = struct{}{}
	}
	return false
}

// HasNegativeOutput reports whether any output value of tx is negative.
// Snapshot-independent; exported for the resolver's structural pre-check.
func HasNegativeOutput(tx *model.Transaction) bool {
	for _, out := range tx.Outputs {
		if out.Value < 0 {
			return true
		}
	}
	return false
}

func createsValue(tx *model.Transaction, set *model.UTXOSet) bool {
	return sumOutputs(tx) > sumInputs(tx, set)
}

func sumInputs(tx *model.Transaction, set *model.UTXOSet) btcutil.Amount {
	var total btcutil.Amount
	for _, in := range tx.Inputs {
		if out, ok := set.Get(in.PrevOut); ok {
			total += out.Value
		}
	}
	return total
}

func sumOutputs(tx *model.Transaction) btcutil.Amount {
	var total btcutil.Amount
	for _, out := range tx.Outputs {
		total += out.Value
	}
	return total
}
