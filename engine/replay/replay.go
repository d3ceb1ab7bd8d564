// Package replay records the held-action stream of a session and plays it
// back. A simulation fed the same level, settings, seed and frame length
// reproduces the session exactly.
package replay

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/1siamBot/dungeon-engine/engine/core"
)

var magic = [4]byte{'D', 'R', 'P', 'L'}

const version uint8 = 1

const maxPrealloc = 4096

var (
	ErrBadMagic   = errors.New("replay: not a replay file")
	ErrBadVersion = errors.New("replay: unsupported version")
)

// Change is the action set that becomes held at a tick and stays held
// until the next change
type Change struct {
	Tick    uint64
	Actions core.ActionSet
}

// Encode writes a change to binary
func (c *Change) Encode(w io.Writer) error {
	if err := binary.Write(w, binary.LittleEndian, c.Tick); err != nil {
		return err
	}
	return binary.Write(w, binary.LittleEndian, uint16(c.Actions))
}

// Decode reads a change from binary
func (c *Change) Decode(r io.Reader) error {
	if err := binary.Read(r, binary.LittleEndian, &c.Tick); err != nil {
		return err
	}
	var a uint16
	if err := binary.Read(r, binary.LittleEndian, &a); err != nil {
		return err
	}
	c.Actions = core.ActionSet(a)
	return nil
}

// Replay is a recorded session
type Replay struct {
	Seed    uint64
	DT      float64 // seconds per tick
	Ticks   uint64
	Changes []Change
}

// ActionsAt returns the actions held at tick
func (r *Replay) ActionsAt(tick uint64) core.ActionSet {
	var held core.ActionSet
	for _, c := range r.Changes {
		if c.Tick > tick {
			break
		}
		held = c.Actions
	}
	return held
}

// Write encodes the replay: a header followed by the change list
func (r *Replay) Write(w io.Writer) error {
	bw := bufio.NewWriter(w)
	hdr := []any{magic, version, r.Seed, r.DT, r.Ticks, uint32(len(r.Changes))}
	for _, v := range hdr {
		if err := binary.Write(bw, binary.LittleEndian, v); err != nil {
			return fmt.Errorf("write replay header: %w", err)
		}
	}
	for i := range r.Changes {
		if err := r.Changes[i].Encode(bw); err != nil {
			return fmt.Errorf("write replay change %d: %w", i, err)
		}
	}
	return bw.Flush()
}

// Read decodes a replay written by Write
func Read(rd io.Reader) (*Replay, error) {
	br := bufio.NewReader(rd)
	var m [4]byte
	if err := binary.Read(br, binary.LittleEndian, &m); err != nil || m != magic {
		return nil, ErrBadMagic
	}
	var v uint8
	if err := binary.Read(br, binary.LittleEndian, &v); err != nil {
		return nil, fmt.Errorf("read replay header: %w", err)
	}
	if v != version {
		return nil, fmt.Errorf("%w: %d", ErrBadVersion, v)
	}
	r := &Replay{}
	var n uint32
	for _, p := range []any{&r.Seed, &r.DT, &r.Ticks, &n} {
		if err := binary.Read(br, binary.LittleEndian, p); err != nil {
			return nil, fmt.Errorf("read replay header: %w", err)
		}
	}
	// the count is untrusted until the records are actually there
	r.Changes = make([]Change, 0, min(n, maxPrealloc))
	for i := uint32(0); i < n; i++ {
		var c Change
		if err := c.Decode(br); err != nil {
			if errors.Is(err, io.EOF) {
				err = io.ErrUnexpectedEOF
			}
			return nil, fmt.Errorf("read replay change %d: %w", i, err)
		}
		r.Changes = append(r.Changes, c)
	}
	return r, nil
}

// Save writes the replay to path
func (r *Replay) Save(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := r.Write(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// Load reads a replay file
func Load(path string) (*Replay, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Read(f)
}
