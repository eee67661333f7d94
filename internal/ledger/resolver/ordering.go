package resolver

import (
	"sort"

	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/chaincfg/chainhash"

	"github.com/goodnatureofminers/ledgercore7000-backend/internal/ledger/model"
	"github.com/goodnatureofminers/ledgercore7000-backend/internal/ledger/validator"
)

// Ordering arranges deduplicated candidates before the fixed-point acceptance
// scan. The snapshot is the epoch-start UTXO set; fees computed against it are
// independent per-candidate estimates, blind to dependencies between candidates.
type Ordering func(txs []*model.Transaction, v *validator.Validator, snapshot *model.UTXOSet) []*model.Transaction

// OrderArrival keeps candidates in arrival order. The fixed-point scan over
// this order yields a maximal mutually valid subset.
func OrderArrival(txs []*model.Transaction, _ *validator.Validator, _ *model.UTXOSet) []*model.Transaction {
	return txs
}

// OrderByFee sorts candidates by descending fee estimated against the
// epoch-start snapshot, so that when two candidates conflict the scan reaches
// the higher-fee one first. Dependency chains are not reordered: a candidate
// spending another candidate's outputs estimates a zero input value here and
// sorts late, which the fixed-point retry passes tolerate but do not optimize.
func OrderByFee(txs []*model.Transaction, v *validator.Validator, snapshot *model.UTXOSet) []*model.Transaction {
	ordered := append([]*model.Transaction(nil), txs...)
	fees := feeIndex(ordered, v, snapshot)
	sort.SliceStable(ordered, func(i, j int) bool {
		return fees[ordered[i].TxID()] > fees[ordered[j].TxID()]
	})
	return ordered
}

// OrderByDependencyFee orders candidates so that every candidate follows the
// candidates whose outputs it spends, choosing among the ready ones by
// descending fee. This keeps a high-fee transaction that depends on a low-fee
// predecessor from being starved by its ancestor's sort position.
func OrderByDependencyFee(txs []*model.Transaction, v *validator.Validator, snapshot *model.UTXOSet) []*model.Transaction {
	fees := feeIndex(txs, v, snapshot)

	byID := make(map[chainhash.Hash]*model.Transaction, len(txs))
	for _, tx := range txs {
		byID[tx.TxID()] = tx
	}

	// pending[id] counts unemitted candidate predecessors; children[id] lists
	// the candidates spending id's outputs.
	pending := make(map[chainhash.Hash]int, len(txs))
	children := make(map[chainhash.Hash][]chainhash.Hash, len(txs))
	for _, tx := range txs {
		id := tx.TxID()
		pending[id] = 0
	}
	for _, tx := range txs {
		id := tx.TxID()
		seen := make(map[chainhash.Hash]struct{})
		for _, in := range tx.Inputs {
			parent := in.PrevOut.TxID
			if parent == id {
				continue
			}
			if _, ok := byID[parent]; !ok {
				continue
			}
			if _, dup := seen[parent]; dup {
				continue
			}
			seen[parent] = struct{}{}
			pending[id]++
			children[parent] = append(children[parent], id)
		}
	}

	ready := make([]*model.Transaction, 0, len(txs))
	for _, tx := range txs {
		if pending[tx.TxID()] == 0 {
			ready = append(ready, tx)
		}
	}

	ordered := make([]*model.Transaction, 0, len(txs))
	emitted := make(map[chainhash.Hash]struct{}, len(txs))
	for len(ordered) < len(txs) {
		if len(ready) == 0 {
			// Content addressing makes genuine dependency cycles unreachable,
			// but a malformed batch must not hang: flush the rest by fee.
			rest := make([]*model.Transaction, 0, len(txs)-len(ordered))
			for _, tx := range txs {
				if _, done := emitted[tx.TxID()]; !done {
					rest = append(rest, tx)
				}
			}
			sort.SliceStable(rest, func(i, j int) bool {
				return fees[rest[i].TxID()] > fees[rest[j].TxID()]
			})
			return append(ordered, rest...)
		}

		best := 0
		for i := 1; i < len(ready); i++ {
			if fees[ready[i].TxID()] > fees[ready[best].TxID()] {
				best = i
			}
		}
		next := ready[best]
		ready = append(ready[:best], ready[best+1:]...)

		id := next.TxID()
		ordered = append(ordered, next)
		emitted[id] = struct{}{}
		for _, child := range children[id] {
			pending[child]--
			if pending[child] == 0 {
				ready = append(ready, byID[child])
			}
		}
	}
	return ordered
}

func feeIndex(txs []*model.Transaction, v *validator.Validator, snapshot *model.UTXOSet) map[chainhash.Hash]btcutil.Amount {
	fees := make(map[chainhash.Hash]btcutil.Amount, len(txs))
	for _, tx := range txs {
		fees[tx.TxID()] = v.Fee(tx, snapshot)
	}
	return fees
}
