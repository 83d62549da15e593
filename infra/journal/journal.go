package journal

import (
	"encoding/binary"
	"fmt"
	"hash/crc32"
	"os"
	"path/filepath"
	"sync"
	"time"
)

type Config struct {
	Dir         string
	SegmentSize int64
}

func DefaultConfig(dir string) Config {
	return Config{Dir: dir, SegmentSize: 2 * 1024 * 1024}
}

// Journal is a segmented, CRC-framed append-only log of order
// intents. It is written before the in-memory book mutates and
// replayed on startup to rebuild the books.
//
// Append assigns the record seq under the journal lock, so on-disk
// order always matches seq order even with several venue writers
// appending at once.
type Journal struct {
	mu         sync.Mutex
	dir        string
	segSize    int64
	current    *segment
	segIndex   int
	lastSeq    uint64
	lastRotate time.Time
}

func Open(cfg Config) (*Journal, error) {
	if err := os.MkdirAll(cfg.Dir, 0o755); err != nil {
		return nil, err
	}

	idx := nextSegmentIndex(cfg.Dir)
	seg, err := openSegment(cfg.Dir, idx)
	if err != nil {
		return nil, err
	}
	last, err := maxSeq(cfg.Dir)
	if err != nil {
		_ = seg.close()
		return nil, err
	}

	return &Journal{
		dir:        cfg.Dir,
		segSize:    cfg.SegmentSize,
		current:    seg,
		segIndex:   idx,
		lastSeq:    last,
		lastRotate: time.Now(),
	}, nil
}

// Append frames and writes one record and returns its seq:
// [type:1][seq:8][time:8][len:4][payload][crc:4]
func (j *Journal) Append(typ RecordType, data []byte) (uint64, error) {
	j.mu.Lock()
	defer j.mu.Unlock()

	j.lastSeq++
	seq := j.lastSeq

	payloadLen := uint32(len(data))
	buf := make([]byte, 1+8+8+4+payloadLen+4)

	buf[0] = byte(typ)
	binary.BigEndian.PutUint64(buf[1:9], seq)
	binary.BigEndian.PutUint64(buf[9:17], uint64(time.Now().UnixNano()))
	binary.BigEndian.PutUint32(buf[17:21], payloadLen)
	copy(buf[21:], data)

	crc := crc32.ChecksumIEEE(buf[:21+payloadLen])
	binary.BigEndian.PutUint32(buf[21+payloadLen:], crc)

	if err := j.current.append(buf); err != nil {
		return seq, err
	}

	if j.current.offset >= j.segSize {
		return seq, j.rotate()
	}
	return seq, nil
}

func (j *Journal) Sync() error {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.current.sync()
}

func (j *Journal) Close() error {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.current.close()
}

func (j *Journal) rotate() error {
	_ = j.current.close()
	j.segIndex++

	seg, err := openSegment(j.dir, j.segIndex)
	if err != nil {
		return err
	}

	j.current = seg
	j.lastRotate = time.Now()
	return nil
}

// TruncateBefore removes whole segments whose records are all at or
// below seq. The live segment is never removed. Used after a durable
// book snapshot.
func (j *Journal) TruncateBefore(seq uint64) error {
	j.mu.Lock()
	defer j.mu.Unlock()

	files, err := filepath.Glob(filepath.Join(j.dir, "segment-*.journal"))
	if err != nil {
		return err
	}
	live := segmentPath(j.dir, j.segIndex)

	for _, path := range files {
		if path == live {
			continue
		}
		maxSeq, err := maxSeqInSegment(path)
		if err != nil {
			continue
		}
		if maxSeq <= seq {
			_ = os.Remove(path)
		}
	}
	return nil
}

// nextSegmentIndex returns the highest index parsed out of the
// segment filenames, so a reopen keeps appending to the newest
// segment even when truncation removed earlier ones.
func nextSegmentIndex(dir string) int {
	files, err := filepath.Glob(filepath.Join(dir, "segment-*.journal"))
	if err != nil {
		return 0
	}
	max := 0
	for _, f := range files {
		var idx int
		if _, err := fmt.Sscanf(filepath.Base(f), "segment-%d.journal", &idx); err == nil && idx > max {
			max = idx
		}
	}
	return max
}
