package journal

type RecordType uint8

const (
	RecordSubmit RecordType = iota
	RecordCancel
)

// Record is one journaled order intent as read back during replay.
// Data carries the binary-encoded submission or cancellation. Seq is
// assigned by the journal on append.
type Record struct {
	Type RecordType
	Seq  uint64
	Time int64
	Data []byte
}
