package chain

import (
	"bytes"
	"testing"

	"github.com/oasisprotocol/curve25519-voi/primitives/ed25519"
)

func testSettlement(t *testing.T, account, nonce uint64) *Transaction {
	t.Helper()
	tx := &Transaction{
		Kind:    TxTradeSettlement,
		Account: account,
		Nonce:   nonce,
		Fee:     2,
		Trade: TradeSettlement{
			TradeID:     "0190a1b2-0000-7000-8000-000000000001",
			Venue:       "bkk-north",
			BuyOrderID:  10,
			SellOrderID: 11,
			BuyAccount:  100,
			SellAccount: 200,
			Price:       480,
			Qty:         50_000,
			Source:      "solar",
			ExecutedAt:  1700000000000000000,
		},
	}
	tx.Sign(testKey(t))
	return tx
}

func TestNotional(t *testing.T) {
	s := TradeSettlement{Price: 480, Qty: 50_000}
	if got := s.Notional(); got != 24_000 {
		t.Errorf("notional = %d, want 24000 (480/kWh * 50kWh)", got)
	}
}

func TestTxSignVerify(t *testing.T) {
	tx := testSettlement(t, 1, 0)
	if !tx.VerifySignature() {
		t.Fatal("fresh signature must verify")
	}
	tx.Trade.Qty++
	if tx.VerifySignature() {
		t.Error("mutated payload must fail verification")
	}
}

func TestTxCodecRoundtrip(t *testing.T) {
	tx := testSettlement(t, 1, 42)
	got, err := DecodeTx(EncodeTx(tx))
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(got.SignBytes(), tx.SignBytes()) {
		t.Error("sign bytes differ after roundtrip")
	}
	if !got.VerifySignature() {
		t.Error("decoded tx must still verify")
	}
	if got.Trade.Venue != "bkk-north" || got.Nonce != 42 {
		t.Error("fields lost in roundtrip")
	}
}

func TestTxRootOrderSensitive(t *testing.T) {
	a := testSettlement(t, 1, 0)
	b := testSettlement(t, 1, 1)

	r1 := TxRoot([]*Transaction{a, b})
	r2 := TxRoot([]*Transaction{b, a})
	if r1 == r2 {
		t.Error("tx root must commit to ordering")
	}
	if TxRoot(nil) == r1 {
		t.Error("empty root must differ from non-empty")
	}
	if TxRoot(nil) != TxRoot([]*Transaction{}) {
		t.Error("empty roots must agree")
	}
}

func TestTxRootOddCount(t *testing.T) {
	txs := []*Transaction{
		testSettlement(t, 1, 0),
		testSettlement(t, 1, 1),
		testSettlement(t, 1, 2),
	}
	r1 := TxRoot(txs)
	r2 := TxRoot(txs)
	if r1 != r2 {
		t.Error("root must be deterministic")
	}
}

func TestBlockSealVerify(t *testing.T) {
	priv := testKey(t)
	txs := []*Transaction{testSettlement(t, 1, 0)}
	energy, fees := BlockStats(txs)

	b := &Block{
		Header: BlockHeader{
			Height:      1,
			Round:       0,
			Time:        1700000000000000000,
			Validator:   "v0",
			TxRoot:      TxRoot(txs),
			TotalEnergy: energy,
			TotalFees:   fees,
		},
		Txs: txs,
	}
	b.Seal(priv)

	pub := priv.Public().(ed25519.PublicKey)
	if !b.VerifySeal(pub) {
		t.Fatal("sealed block must verify against the signing key")
	}

	b.Header.TotalFees++
	if b.VerifySeal(pub) {
		t.Error("tampered header must fail seal verification")
	}
	b.Header.TotalFees--

	other := testKey(t)
	if b.VerifySeal(other.Public().(ed25519.PublicKey)) {
		t.Error("seal must not verify against a different key")
	}
}

func TestBlockCodecRoundtrip(t *testing.T) {
	priv := testKey(t)
	txs := []*Transaction{testSettlement(t, 1, 0), testSettlement(t, 2, 0)}
	energy, fees := BlockStats(txs)

	b := &Block{
		Header: BlockHeader{
			Height:      5,
			Round:       9,
			Time:        1700000000000000000,
			Validator:   "v1",
			TxRoot:      TxRoot(txs),
			TotalEnergy: energy,
			TotalFees:   fees,
		},
		Txs: txs,
	}
	b.Seal(priv)

	got, err := DecodeBlock(EncodeBlock(b))
	if err != nil {
		t.Fatal(err)
	}
	if got.Hash() != b.Hash() {
		t.Error("hash differs after roundtrip")
	}
	if len(got.Txs) != 2 {
		t.Fatalf("tx count = %d, want 2", len(got.Txs))
	}
	if !got.VerifySeal(priv.Public().(ed25519.PublicKey)) {
		t.Error("decoded block must still verify")
	}
}

func TestBlockStats(t *testing.T) {
	txs := []*Transaction{testSettlement(t, 1, 0), testSettlement(t, 1, 1)}
	energy, fees := BlockStats(txs)
	if energy != 100_000 {
		t.Errorf("energy = %d, want 100000", energy)
	}
	if fees != 4 {
		t.Errorf("fees = %d, want 4", fees)
	}
}
