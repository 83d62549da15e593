package chain

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"

	"github.com/oasisprotocol/curve25519-voi/primitives/ed25519"
)

// Binary codecs for durable storage and broadcast. The encoding
// mirrors SignBytes field order so decoded envelopes re-verify.

func EncodeTx(tx *Transaction) []byte {
	var buf bytes.Buffer
	body := tx.SignBytes()
	writeBytes(&buf, body)
	writeBytes(&buf, tx.PubKey)
	writeBytes(&buf, tx.Signature)
	return buf.Bytes()
}

func DecodeTx(b []byte) (*Transaction, error) {
	r := bytes.NewReader(b)
	body, err := readBytes(r)
	if err != nil {
		return nil, err
	}
	pub, err := readBytes(r)
	if err != nil {
		return nil, err
	}
	sig, err := readBytes(r)
	if err != nil {
		return nil, err
	}
	tx, err := decodeTxBody(body)
	if err != nil {
		return nil, err
	}
	tx.PubKey = ed25519.PublicKey(pub)
	tx.Signature = sig
	return tx, nil
}

func decodeTxBody(b []byte) (*Transaction, error) {
	r := bytes.NewReader(b)
	var tx Transaction

	kind, err := r.ReadByte()
	if err != nil {
		return nil, err
	}
	tx.Kind = TxKind(kind)
	if tx.Account, err = readU64(r); err != nil {
		return nil, err
	}
	if tx.Nonce, err = readU64(r); err != nil {
		return nil, err
	}
	if tx.Fee, err = readI64(r); err != nil {
		return nil, err
	}

	switch tx.Kind {
	case TxTradeSettlement:
		t := &tx.Trade
		if t.TradeID, err = readString(r); err != nil {
			return nil, err
		}
		if t.Venue, err = readString(r); err != nil {
			return nil, err
		}
		if t.BuyOrderID, err = readU64(r); err != nil {
			return nil, err
		}
		if t.SellOrderID, err = readU64(r); err != nil {
			return nil, err
		}
		if t.BuyAccount, err = readU64(r); err != nil {
			return nil, err
		}
		if t.SellAccount, err = readU64(r); err != nil {
			return nil, err
		}
		if t.Price, err = readI64(r); err != nil {
			return nil, err
		}
		if t.Qty, err = readI64(r); err != nil {
			return nil, err
		}
		if t.Source, err = readString(r); err != nil {
			return nil, err
		}
		if t.ExecutedAt, err = readI64(r); err != nil {
			return nil, err
		}
	case TxTransfer:
		if tx.To, err = readU64(r); err != nil {
			return nil, err
		}
		if tx.Amount, err = readI64(r); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("chain: unknown tx kind %d", kind)
	}
	return &tx, nil
}

func EncodeBlock(b *Block) []byte {
	var buf bytes.Buffer
	writeU64(&buf, b.Header.Height)
	writeU64(&buf, b.Header.Round)
	buf.Write(b.Header.ParentHash[:])
	writeI64(&buf, b.Header.Time)
	writeString(&buf, b.Header.Validator)
	buf.Write(b.Header.TxRoot[:])
	writeI64(&buf, b.Header.TotalEnergy)
	writeI64(&buf, b.Header.TotalFees)
	writeBytes(&buf, b.Signature)
	writeU32(&buf, uint32(len(b.Txs)))
	for _, tx := range b.Txs {
		writeBytes(&buf, EncodeTx(tx))
	}
	return buf.Bytes()
}

func DecodeBlock(data []byte) (*Block, error) {
	r := bytes.NewReader(data)
	var b Block
	var err error

	if b.Header.Height, err = readU64(r); err != nil {
		return nil, err
	}
	if b.Header.Round, err = readU64(r); err != nil {
		return nil, err
	}
	if _, err = io.ReadFull(r, b.Header.ParentHash[:]); err != nil {
		return nil, err
	}
	if b.Header.Time, err = readI64(r); err != nil {
		return nil, err
	}
	if b.Header.Validator, err = readString(r); err != nil {
		return nil, err
	}
	if _, err = io.ReadFull(r, b.Header.TxRoot[:]); err != nil {
		return nil, err
	}
	if b.Header.TotalEnergy, err = readI64(r); err != nil {
		return nil, err
	}
	if b.Header.TotalFees, err = readI64(r); err != nil {
		return nil, err
	}
	if b.Signature, err = readBytes(r); err != nil {
		return nil, err
	}
	n, err := readU32(r)
	if err != nil {
		return nil, err
	}
	b.Txs = make([]*Transaction, 0, n)
	for i := uint32(0); i < n; i++ {
		raw, err := readBytes(r)
		if err != nil {
			return nil, err
		}
		tx, err := DecodeTx(raw)
		if err != nil {
			return nil, err
		}
		b.Txs = append(b.Txs, tx)
	}
	return &b, nil
}

// --- read/write helpers ---

func writeU32(buf *bytes.Buffer, v uint32) {
	var b [4]byte
	binary.BigEndian.PutUint32(b[:], v)
	buf.Write(b[:])
}

func writeBytes(buf *bytes.Buffer, b []byte) {
	writeU32(buf, uint32(len(b)))
	buf.Write(b)
}

func readU32(r *bytes.Reader) (uint32, error) {
	var b [4]byte
	if _, err := io.ReadFull(r, b[:]); err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint32(b[:]), nil
}

func readU64(r *bytes.Reader) (uint64, error) {
	var b [8]byte
	if _, err := io.ReadFull(r, b[:]); err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint64(b[:]), nil
}

func readI64(r *bytes.Reader) (int64, error) {
	v, err := readU64(r)
	return int64(v), err
}

func readBytes(r *bytes.Reader) ([]byte, error) {
	n, err := readU32(r)
	if err != nil {
		return nil, err
	}
	b := make([]byte, n)
	if _, err := io.ReadFull(r, b); err != nil {
		return nil, err
	}
	return b, nil
}

func readString(r *bytes.Reader) (string, error) {
	b, err := readBytes(r)
	return string(b), err
}
