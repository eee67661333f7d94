package transport

import (
	"encoding/hex"
	"fmt"

	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/chaincfg/chainhash"

	"github.com/goodnatureofminers/ledgercore7000-backend/internal/ledger/model"
)

// TransactionDTO is the JSON shape of a submitted candidate transaction.
type TransactionDTO struct {
	Inputs  []InputDTO  `json:"inputs"`
	Outputs []OutputDTO `json:"outputs"`
}

// InputDTO references a prior output and carries its authorizing signature.
type InputDTO struct {
	PrevTxID  string `json:"prev_txid"`
	Index     uint32 `json:"index"`
	Signature string `json:"signature"`
}

// OutputDTO is an amount in base units owned by a public key.
type OutputDTO struct {
	Value  int64  `json:"value"`
	PubKey string `json:"pubkey"`
}

// OutpointDTO is one spendable entry of the authoritative set.
type OutpointDTO struct {
	TxID   string `json:"txid"`
	Index  uint32 `json:"index"`
	Value  int64  `json:"value"`
	PubKey string `json:"pubkey"`
}

// EpochResultDTO summarizes a triggered epoch.
type EpochResultDTO struct {
	Accepted []string `json:"accepted"`
	TotalFee int64    `json:"total_fee"`
	Passes   int      `json:"passes"`
}

func (d TransactionDTO) toModel() (*model.Transaction, error) {
	inputs := make([]model.Input, 0, len(d.Inputs))
	for i, in := range d.Inputs {
		txid, err := chainhash.NewHashFromStr(in.PrevTxID)
		if err != nil {
			return nil, fmt.Errorf("input %d: parse prev txid: %w", i, err)
		}
		sig, err := hex.DecodeString(in.Signature)
		if err != nil {
			return nil, fmt.Errorf("input %d: decode signature: %w", i, err)
		}
		inputs = append(inputs, model.Input{
			PrevOut:   model.NewOutpoint(*txid, in.Index),
			Signature: sig,
		})
	}

	outputs := make([]model.Output, 0, len(d.Outputs))
	for i, out := range d.Outputs {
		pubKey, err := hex.DecodeString(out.PubKey)
		if err != nil {
			return nil, fmt.Errorf("output %d: decode pubkey: %w", i, err)
		}
		outputs = append(outputs, model.NewOutput(btcutil.Amount(out.Value), pubKey))
	}

	return model.NewTransaction(inputs, outputs), nil
}

func outpointDTO(outpoint model.Outpoint, output model.Output) OutpointDTO {
	return OutpointDTO{
		TxID:   outpoint.TxID.String(),
		Index:  outpoint.Index,
		Value:  int64(output.Value),
		PubKey: hex.EncodeToString(output.PubKey),
	}
}
