package service

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"

	"ampere/domain/orderbook"
)

// Journal payload codecs. Submissions and cancels are framed by the
// journal itself; these encode just the order fields needed to
// rebuild the book deterministically on replay.

type submitPayload struct {
	OrderID   uint64
	AccountID uint64
	Venue     string
	Source    string
	Side      orderbook.Side
	Kind      orderbook.Kind
	TIF       orderbook.TimeInForce
	Price     int64
	Qty       int64
	ExpiresAt int64
}

type cancelPayload struct {
	OrderID   uint64
	AccountID uint64
	Venue     string
}

func encodeSubmit(p submitPayload) []byte {
	var buf bytes.Buffer
	putU64(&buf, p.OrderID)
	putU64(&buf, p.AccountID)
	putStr(&buf, p.Venue)
	putStr(&buf, p.Source)
	buf.WriteByte(byte(p.Side))
	buf.WriteByte(byte(p.Kind))
	buf.WriteByte(byte(p.TIF))
	putU64(&buf, uint64(p.Price))
	putU64(&buf, uint64(p.Qty))
	putU64(&buf, uint64(p.ExpiresAt))
	return buf.Bytes()
}

func decodeSubmit(b []byte) (submitPayload, error) {
	r := bytes.NewReader(b)
	var p submitPayload
	var err error
	if p.OrderID, err = getU64(r); err != nil {
		return p, err
	}
	if p.AccountID, err = getU64(r); err != nil {
		return p, err
	}
	if p.Venue, err = getStr(r); err != nil {
		return p, err
	}
	if p.Source, err = getStr(r); err != nil {
		return p, err
	}
	var tags [3]byte
	if _, err = io.ReadFull(r, tags[:]); err != nil {
		return p, err
	}
	p.Side = orderbook.Side(tags[0])
	p.Kind = orderbook.Kind(tags[1])
	p.TIF = orderbook.TimeInForce(tags[2])
	var v uint64
	if v, err = getU64(r); err != nil {
		return p, err
	}
	p.Price = int64(v)
	if v, err = getU64(r); err != nil {
		return p, err
	}
	p.Qty = int64(v)
	if v, err = getU64(r); err != nil {
		return p, err
	}
	p.ExpiresAt = int64(v)
	return p, nil
}

func encodeCancel(p cancelPayload) []byte {
	var buf bytes.Buffer
	putU64(&buf, p.OrderID)
	putU64(&buf, p.AccountID)
	putStr(&buf, p.Venue)
	return buf.Bytes()
}

func decodeCancel(b []byte) (cancelPayload, error) {
	r := bytes.NewReader(b)
	var p cancelPayload
	var err error
	if p.OrderID, err = getU64(r); err != nil {
		return p, err
	}
	if p.AccountID, err = getU64(r); err != nil {
		return p, err
	}
	if p.Venue, err = getStr(r); err != nil {
		return p, err
	}
	return p, nil
}

func putU64(buf *bytes.Buffer, v uint64) {
	var b [8]byte
	binary.BigEndian.PutUint64(b[:], v)
	buf.Write(b[:])
}

func putStr(buf *bytes.Buffer, s string) {
	var b [2]byte
	binary.BigEndian.PutUint16(b[:], uint16(len(s)))
	buf.Write(b[:])
	buf.WriteString(s)
}

func getU64(r *bytes.Reader) (uint64, error) {
	var b [8]byte
	if _, err := io.ReadFull(r, b[:]); err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint64(b[:]), nil
}

func getStr(r *bytes.Reader) (string, error) {
	var b [2]byte
	if _, err := io.ReadFull(r, b[:]); err != nil {
		return "", err
	}
	n := binary.BigEndian.Uint16(b[:])
	s := make([]byte, n)
	if _, err := io.ReadFull(r, s); err != nil {
		return "", fmt.Errorf("short string payload: %w", err)
	}
	return string(s), nil
}
