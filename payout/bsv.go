package payout

import (
	"context"
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/bsv-blockchain/go-sdk/chainhash"
	ec "github.com/bsv-blockchain/go-sdk/primitives/ec"
	"github.com/bsv-blockchain/go-sdk/script"
	"github.com/bsv-blockchain/go-sdk/transaction"
	"github.com/bsv-blockchain/go-sdk/transaction/template/p2pkh"
)

const (
	// txFee is the flat miner fee reserved per payout transaction.
	txFee = 500

	// dustLimit is the minimum change output worth keeping.
	dustLimit = 135
)

// UTXO is a spendable funding output for payout transactions.
type UTXO struct {
	TxID         []byte // little-endian txid bytes
	Vout         uint32
	Amount       uint64
	ScriptPubKey []byte
	PrivateKey   *ec.PrivateKey
}

// UTXOSource supplies funding outputs for payout transactions.
type UTXOSource interface {
	// Allocate reserves a UTXO worth at least amount satoshis plus fee.
	Allocate(ctx context.Context, amount uint64) (*UTXO, error)
}

// Broadcaster submits raw transactions to the payment network.
type Broadcaster interface {
	// BroadcastTx submits a raw transaction hex and returns the txid.
	BroadcastTx(ctx context.Context, rawTxHex string) (string, error)
}

// MockBroadcaster is a test double for Broadcaster.
type MockBroadcaster struct {
	BroadcastTxFn func(ctx context.Context, rawTxHex string) (string, error)
}

func (m *MockBroadcaster) BroadcastTx(ctx context.Context, rawTxHex string) (string, error) {
	return m.BroadcastTxFn(ctx, rawTxHex)
}

// TxPayer settles payouts as single-recipient P2PKH transactions. Recipients
// may be BSV address strings, or alias@domain handles resolved through the
// Resolver when one is configured.
type TxPayer struct {
	utxos    UTXOSource
	svc      Broadcaster
	resolver *HandleResolver
}

// Compile-time interface check.
var _ Payer = (*TxPayer)(nil)

// NewTxPayer creates a TxPayer funding from utxos and broadcasting via svc.
// resolver may be nil, in which case recipients must be addresses.
func NewTxPayer(utxos UTXOSource, svc Broadcaster, resolver *HandleResolver) *TxPayer {
	return &TxPayer{utxos: utxos, svc: svc, resolver: resolver}
}

// Transfer builds, signs, and broadcasts a payment of amount satoshis to the
// recipient. The transaction is irrevocable once broadcast.
func (p *TxPayer) Transfer(ctx context.Context, recipient string, amount uint64) error {
	if recipient == "" {
		return ErrEmptyRecipient
	}
	if amount == 0 {
		return ErrInvalidAmount
	}

	addrStr := recipient
	if strings.Contains(recipient, "@") {
		if p.resolver == nil {
			return fmt.Errorf("%w: no resolver for handle %q", ErrResolveFailed, recipient)
		}
		resolved, err := p.resolver.Resolve(ctx, recipient)
		if err != nil {
			return err
		}
		addrStr = resolved
	}

	utxo, err := p.utxos.Allocate(ctx, amount+txFee)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInsufficientFunds, err)
	}
	if utxo.Amount < amount+txFee {
		return fmt.Errorf("%w: need %d sat, have %d sat", ErrInsufficientFunds, amount+txFee, utxo.Amount)
	}

	rawHex, err := buildPaymentTx(utxo, addrStr, amount)
	if err != nil {
		return err
	}

	if _, err := p.svc.BroadcastTx(ctx, rawHex); err != nil {
		return fmt.Errorf("payout: broadcast: %w", err)
	}
	return nil
}

// buildPaymentTx assembles and signs a one-input transaction paying amount
// to addrStr, with change back to the funding key when above dust.
func buildPaymentTx(utxo *UTXO, addrStr string, amount uint64) (string, error) {
	sdkTx := transaction.NewTransaction()

	utxoHash, err := chainhash.NewHash(utxo.TxID)
	if err != nil {
		return "", fmt.Errorf("%w: invalid UTXO TxID: %w", ErrTxBuildFailed, err)
	}
	sdkTx.AddInput(&transaction.TransactionInput{
		SourceTXID:       utxoHash,
		SourceTxOutIndex: utxo.Vout,
		SequenceNumber:   transaction.DefaultSequenceNumber,
	})

	addr, err := script.NewAddressFromString(addrStr)
	if err != nil {
		return "", fmt.Errorf("%w: recipient address %q: %w", ErrTxBuildFailed, addrStr, err)
	}
	lockScript, err := p2pkh.Lock(addr)
	if err != nil {
		return "", fmt.Errorf("%w: recipient lock script: %w", ErrTxBuildFailed, err)
	}
	sdkTx.Outputs = append(sdkTx.Outputs, &transaction.TransactionOutput{
		Satoshis:      amount,
		LockingScript: lockScript,
	})

	// Change back to the funding key.
	if change := utxo.Amount - amount - txFee; change > dustLimit {
		changeAddr, err := script.NewAddressFromPublicKey(utxo.PrivateKey.PubKey(), true)
		if err != nil {
			return "", fmt.Errorf("%w: change address: %w", ErrTxBuildFailed, err)
		}
		changeScript, err := p2pkh.Lock(changeAddr)
		if err != nil {
			return "", fmt.Errorf("%w: change lock script: %w", ErrTxBuildFailed, err)
		}
		sdkTx.Outputs = append(sdkTx.Outputs, &transaction.TransactionOutput{
			Satoshis:      change,
			LockingScript: changeScript,
		})
	}

	unlocker, err := p2pkh.Unlock(utxo.PrivateKey, nil)
	if err != nil {
		return "", fmt.Errorf("%w: unlocker: %w", ErrTxBuildFailed, err)
	}
	sdkTx.Inputs[0].SetSourceTxOutput(&transaction.TransactionOutput{
		Satoshis:      utxo.Amount,
		LockingScript: script.NewFromBytes(utxo.ScriptPubKey),
	})
	sdkTx.Inputs[0].UnlockingScriptTemplate = unlocker

	if err := sdkTx.Sign(); err != nil {
		return "", fmt.Errorf("%w: sign: %w", ErrTxBuildFailed, err)
	}

	return hex.EncodeToString(sdkTx.Bytes()), nil
}
