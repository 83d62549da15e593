package journal

import (
	"encoding/binary"
	"hash/crc32"
	"os"
	"path/filepath"
	"sync"
	"testing"
)

func TestAppendReplay(t *testing.T) {
	dir := t.TempDir()
	j, err := Open(DefaultConfig(dir))
	if err != nil {
		t.Fatal(err)
	}

	for i := uint64(1); i <= 10; i++ {
		typ := RecordSubmit
		if i%3 == 0 {
			typ = RecordCancel
		}
		seq, err := j.Append(typ, []byte{byte(i)})
		if err != nil {
			t.Fatal(err)
		}
		if seq != i {
			t.Fatalf("append %d assigned seq %d", i, seq)
		}
	}
	if err := j.Close(); err != nil {
		t.Fatal(err)
	}

	var seqs []uint64
	last, err := Replay(dir, func(rec *Record) error {
		seqs = append(seqs, rec.Seq)
		if rec.Data[0] != byte(rec.Seq) {
			t.Errorf("payload mismatch at seq %d", rec.Seq)
		}
		if rec.Seq%3 == 0 && rec.Type != RecordCancel {
			t.Errorf("seq %d: wrong type", rec.Seq)
		}
		return nil
	})
	if err != nil {
		t.Fatal(err)
	}
	if last != 10 {
		t.Errorf("last seq = %d, want 10", last)
	}
	if len(seqs) != 10 {
		t.Errorf("replayed %d records, want 10", len(seqs))
	}
}

func TestReplayEmptyDir(t *testing.T) {
	last, err := Replay(t.TempDir(), func(*Record) error {
		t.Fatal("no records expected")
		return nil
	})
	if err != nil || last != 0 {
		t.Errorf("empty dir: last=%d err=%v", last, err)
	}
}

// Many venue writers append at once; every record must land intact
// and in seq order, which Replay itself enforces.
func TestConcurrentAppendKeepsSeqOrder(t *testing.T) {
	dir := t.TempDir()
	j, err := Open(Config{Dir: dir, SegmentSize: 256})
	if err != nil {
		t.Fatal(err)
	}

	const writers, perWriter = 8, 25
	var wg sync.WaitGroup
	for w := 0; w < writers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < perWriter; i++ {
				if _, err := j.Append(RecordSubmit, make([]byte, 16)); err != nil {
					t.Error(err)
					return
				}
			}
		}()
	}
	wg.Wait()
	if err := j.Close(); err != nil {
		t.Fatal(err)
	}

	count := 0
	last, err := Replay(dir, func(*Record) error {
		count++
		return nil
	})
	if err != nil {
		t.Fatal(err)
	}
	if count != writers*perWriter || last != writers*perWriter {
		t.Errorf("replayed %d records, last=%d, want %d", count, last, writers*perWriter)
	}
}

func TestSegmentRotation(t *testing.T) {
	dir := t.TempDir()
	j, err := Open(Config{Dir: dir, SegmentSize: 64})
	if err != nil {
		t.Fatal(err)
	}

	for i := 0; i < 20; i++ {
		if _, err := j.Append(RecordSubmit, make([]byte, 16)); err != nil {
			t.Fatal(err)
		}
	}
	j.Close()

	files, _ := filepath.Glob(filepath.Join(dir, "segment-*.journal"))
	if len(files) < 2 {
		t.Fatalf("expected rotation into multiple segments, got %d", len(files))
	}

	last, err := Replay(dir, func(*Record) error { return nil })
	if err != nil {
		t.Fatal(err)
	}
	if last != 20 {
		t.Errorf("last seq across segments = %d, want 20", last)
	}
}

// A reopened journal must resume its seq counter past everything
// still on disk.
func TestReopenResumesSeq(t *testing.T) {
	dir := t.TempDir()
	j, err := Open(DefaultConfig(dir))
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 5; i++ {
		if _, err := j.Append(RecordSubmit, nil); err != nil {
			t.Fatal(err)
		}
	}
	j.Close()

	j, err = Open(DefaultConfig(dir))
	if err != nil {
		t.Fatal(err)
	}
	seq, err := j.Append(RecordSubmit, nil)
	if err != nil {
		t.Fatal(err)
	}
	if seq != 6 {
		t.Errorf("seq after reopen = %d, want 6", seq)
	}
	j.Close()
}

func TestReplayDetectsCorruption(t *testing.T) {
	dir := t.TempDir()
	j, err := Open(DefaultConfig(dir))
	if err != nil {
		t.Fatal(err)
	}
	if _, err := j.Append(RecordSubmit, []byte("payload")); err != nil {
		t.Fatal(err)
	}
	j.Close()

	files, _ := filepath.Glob(filepath.Join(dir, "segment-*.journal"))
	raw, err := os.ReadFile(files[0])
	if err != nil {
		t.Fatal(err)
	}
	raw[22] ^= 0xFF // flip a payload byte
	if err := os.WriteFile(files[0], raw, 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := Replay(dir, func(*Record) error { return nil }); err == nil {
		t.Fatal("corrupted record must fail replay")
	}
}

// writeRawFrame bypasses the journal to plant a frame with an
// arbitrary seq.
func writeRawFrame(t *testing.T, f *os.File, seq uint64) {
	t.Helper()
	buf := make([]byte, 21+4)
	buf[0] = byte(RecordSubmit)
	binary.BigEndian.PutUint64(buf[1:9], seq)
	crc := crc32.ChecksumIEEE(buf[:21])
	binary.BigEndian.PutUint32(buf[21:], crc)
	if _, err := f.Write(buf); err != nil {
		t.Fatal(err)
	}
}

func TestReplayRejectsNonMonotonicSeq(t *testing.T) {
	dir := t.TempDir()
	f, err := os.Create(filepath.Join(dir, "segment-000000.journal"))
	if err != nil {
		t.Fatal(err)
	}
	writeRawFrame(t, f, 2)
	writeRawFrame(t, f, 1)
	f.Close()

	if _, err := Replay(dir, func(*Record) error { return nil }); err == nil {
		t.Fatal("out-of-order seq must fail replay")
	}
}

func TestTruncateBefore(t *testing.T) {
	dir := t.TempDir()
	j, err := Open(Config{Dir: dir, SegmentSize: 64})
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 20; i++ {
		if _, err := j.Append(RecordSubmit, make([]byte, 16)); err != nil {
			t.Fatal(err)
		}
	}

	if err := j.TruncateBefore(10); err != nil {
		t.Fatal(err)
	}
	j.Close()

	// Truncation is whole-segment: early records may survive if they
	// share a segment with later ones, but nothing after seq 10 may
	// be lost.
	last, err := Replay(dir, func(*Record) error { return nil })
	if err != nil {
		t.Fatal(err)
	}
	if last != 20 {
		t.Errorf("records after the snapshot point must survive, last=%d", last)
	}
}

// After truncation leaves a gap at the low end of the segment
// numbering, a reopen must keep appending after the newest segment
// rather than filling the gap.
func TestReopenAfterTruncateContinues(t *testing.T) {
	dir := t.TempDir()
	j, err := Open(Config{Dir: dir, SegmentSize: 64})
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 20; i++ {
		if _, err := j.Append(RecordSubmit, make([]byte, 16)); err != nil {
			t.Fatal(err)
		}
	}
	if err := j.TruncateBefore(10); err != nil {
		t.Fatal(err)
	}
	j.Close()

	j, err = Open(Config{Dir: dir, SegmentSize: 64})
	if err != nil {
		t.Fatal(err)
	}
	seq, err := j.Append(RecordSubmit, make([]byte, 16))
	if err != nil {
		t.Fatal(err)
	}
	if seq != 21 {
		t.Errorf("seq after truncate+reopen = %d, want 21", seq)
	}
	j.Close()

	last, err := Replay(dir, func(*Record) error { return nil })
	if err != nil {
		t.Fatal(err)
	}
	if last != 21 {
		t.Errorf("last seq = %d, want 21", last)
	}
}
