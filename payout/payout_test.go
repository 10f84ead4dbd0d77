package payout

import (
	"bytes"
	"context"
	"encoding/hex"
	"sync"
	"testing"

	ec "github.com/bsv-blockchain/go-sdk/primitives/ec"
	"github.com/bsv-blockchain/go-sdk/script"
	"github.com/bsv-blockchain/go-sdk/transaction"
	"github.com/bsv-blockchain/go-sdk/transaction/template/p2pkh"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recordingPayer collects transfers for assertions.
type recordingPayer struct {
	mu        sync.Mutex
	transfers []transferCall
}

type transferCall struct {
	recipient string
	amount    uint64
}

func (p *recordingPayer) Transfer(ctx context.Context, recipient string, amount uint64) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.transfers = append(p.transfers, transferCall{recipient, amount})
	return nil
}

func (p *recordingPayer) calls() []transferCall {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]transferCall, len(p.transfers))
	copy(out, p.transfers)
	return out
}

// --- Dispatcher tests ---

func TestDispatcher_ScalesToMinorUnits(t *testing.T) {
	payer := &recordingPayer{}
	d := NewDispatcher(payer, 1e8)

	d.Pay(context.Background(), "creator.cmg", 2.025)
	d.Wait()

	calls := payer.calls()
	require.Len(t, calls, 1)
	assert.Equal(t, transferCall{"creator.cmg", 202500000}, calls[0])
}

func TestDispatcher_SkipsNonPositiveAndDust(t *testing.T) {
	payer := &recordingPayer{}
	d := NewDispatcher(payer, 1e8)

	ctx := context.Background()
	d.Pay(ctx, "a.cmg", 0)
	d.Pay(ctx, "a.cmg", -1.5)
	d.Pay(ctx, "", 1.0)
	d.Wait()

	assert.Empty(t, payer.calls())
}

func TestDispatcher_ErrorNotObserved(t *testing.T) {
	// A failing payer must not affect the dispatching caller.
	d := NewDispatcher(&MockPayer{
		TransferFn: func(ctx context.Context, recipient string, amount uint64) error {
			return assert.AnError
		},
	}, 1e8)

	d.Pay(context.Background(), "creator.cmg", 1.0)
	d.Wait() // no panic, no error surfaced
}

func TestDispatcher_SurvivesCallerCancellation(t *testing.T) {
	payer := &recordingPayer{}
	d := NewDispatcher(payer, 1e8)

	ctx, cancel := context.WithCancel(context.Background())
	d.Pay(ctx, "creator.cmg", 1.0)
	cancel()
	d.Wait()

	require.Len(t, payer.calls(), 1)
}

// --- TxPayer tests ---

type stubUTXOSource struct {
	utxo *UTXO
	err  error
}

func (s *stubUTXOSource) Allocate(ctx context.Context, amount uint64) (*UTXO, error) {
	return s.utxo, s.err
}

func makeFundingUTXO(t *testing.T, amount uint64) (*UTXO, *ec.PrivateKey) {
	t.Helper()
	priv, err := ec.NewPrivateKey()
	require.NoError(t, err)

	addr, err := script.NewAddressFromPublicKey(priv.PubKey(), true)
	require.NoError(t, err)
	lockScript, err := p2pkh.Lock(addr)
	require.NoError(t, err)

	return &UTXO{
		TxID:         bytes.Repeat([]byte{0x01}, 32),
		Vout:         0,
		Amount:       amount,
		ScriptPubKey: []byte(*lockScript),
		PrivateKey:   priv,
	}, priv
}

func TestTxPayer_BuildsPaymentTx(t *testing.T) {
	ctx := context.Background()
	utxo, _ := makeFundingUTXO(t, 100000)

	recipientPriv, err := ec.NewPrivateKey()
	require.NoError(t, err)
	recipientAddr, err := script.NewAddressFromPublicKey(recipientPriv.PubKey(), true)
	require.NoError(t, err)

	var broadcastHex string
	payer := NewTxPayer(
		&stubUTXOSource{utxo: utxo},
		&MockBroadcaster{
			BroadcastTxFn: func(ctx context.Context, rawTxHex string) (string, error) {
				broadcastHex = rawTxHex
				return "txid", nil
			},
		},
		nil,
	)

	require.NoError(t, payer.Transfer(ctx, recipientAddr.AddressString, 5000))
	require.NotEmpty(t, broadcastHex)

	raw, err := hex.DecodeString(broadcastHex)
	require.NoError(t, err)
	sdkTx, err := transaction.NewTransactionFromBytes(raw)
	require.NoError(t, err)

	// Payment output first, change output back to the funding key second.
	require.Len(t, sdkTx.Outputs, 2)
	assert.Equal(t, uint64(5000), sdkTx.Outputs[0].Satoshis)
	require.True(t, sdkTx.Outputs[0].LockingScript.IsP2PKH())

	pkh, err := sdkTx.Outputs[0].LockingScript.PublicKeyHash()
	require.NoError(t, err)
	assert.Equal(t, []byte(recipientAddr.PublicKeyHash), pkh)

	assert.Equal(t, uint64(100000-5000-txFee), sdkTx.Outputs[1].Satoshis)
}

func TestTxPayer_InsufficientFunds(t *testing.T) {
	ctx := context.Background()
	utxo, _ := makeFundingUTXO(t, 1000)

	payer := NewTxPayer(
		&stubUTXOSource{utxo: utxo},
		&MockBroadcaster{BroadcastTxFn: func(ctx context.Context, rawTxHex string) (string, error) {
			t.Fatal("must not broadcast")
			return "", nil
		}},
		nil,
	)

	recipientPriv, err := ec.NewPrivateKey()
	require.NoError(t, err)
	addr, err := script.NewAddressFromPublicKey(recipientPriv.PubKey(), true)
	require.NoError(t, err)

	err = payer.Transfer(ctx, addr.AddressString, 5000)
	assert.ErrorIs(t, err, ErrInsufficientFunds)
}

func TestTxPayer_HandleWithoutResolver(t *testing.T) {
	utxo, _ := makeFundingUTXO(t, 100000)
	payer := NewTxPayer(&stubUTXOSource{utxo: utxo}, &MockBroadcaster{}, nil)

	err := payer.Transfer(context.Background(), "alice@pay.example.com", 5000)
	assert.ErrorIs(t, err, ErrResolveFailed)
}

func TestTxPayer_ParamValidation(t *testing.T) {
	payer := NewTxPayer(&stubUTXOSource{}, &MockBroadcaster{}, nil)

	assert.ErrorIs(t, payer.Transfer(context.Background(), "", 100), ErrEmptyRecipient)
	assert.ErrorIs(t, payer.Transfer(context.Background(), "addr", 0), ErrInvalidAmount)
}
