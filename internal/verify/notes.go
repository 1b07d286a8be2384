// Package verify implements a post-link checker: that every declared probe
// produced a `.note.stapsdt` note whose provider/probe/argument-format
// strings match the declaration, and that the recorded trap-site PC really
// does decode to a single-byte NOP. It exists so those properties can be
// asserted from Go test code instead of shelling out to `readelf -n`.
package verify

import (
	"bytes"
	"debug/elf"
	"encoding/binary"
	"fmt"

	"golang.org/x/arch/x86/x86asm"
)

// StapsdtNote is one decoded entry from a `.note.stapsdt` section.
type StapsdtNote struct {
	Location  uint64
	Base      uint64
	Semaphore uint64
	Provider  string
	Probe     string
	Arguments string
}

const noteTypeStapsdt = 3
const noteNameStapsdt = "stapsdt\x00"

// ReadNotes extracts every stapsdt note from the ELF file at path.
func ReadNotes(path string) ([]StapsdtNote, error) {
	f, err := elf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("verify: opening %s: %w", path, err)
	}
	defer f.Close()

	sect := f.Section(".note.stapsdt")
	if sect == nil {
		return nil, fmt.Errorf("verify: %s has no .note.stapsdt section", path)
	}
	data, err := sect.Data()
	if err != nil {
		return nil, fmt.Errorf("verify: reading .note.stapsdt: %w", err)
	}
	return parseNotes(data, f.ByteOrder)
}

// ParseNotes decodes a raw `.note.stapsdt` section body directly, without
// requiring a linked ELF file. Exported so tests can exercise the note
// format against synthetic section bytes (see buildNote in notes_test.go)
// rather than only through a real binary.
func ParseNotes(data []byte, order binary.ByteOrder) ([]StapsdtNote, error) {
	return parseNotes(data, order)
}

func parseNotes(data []byte, order binary.ByteOrder) ([]StapsdtNote, error) {
	var notes []StapsdtNote
	for len(data) > 0 {
		if len(data) < 12 {
			return notes, fmt.Errorf("verify: truncated note header")
		}
		nameLen := order.Uint32(data[0:4])
		descLen := order.Uint32(data[4:8])
		noteType := order.Uint32(data[8:12])
		data = data[12:]

		nameEnd := align4(int(nameLen))
		if len(data) < nameEnd {
			return notes, fmt.Errorf("verify: truncated note name")
		}
		name := data[:nameLen]
		data = data[nameEnd:]

		descEnd := align4(int(descLen))
		if len(data) < descEnd {
			return notes, fmt.Errorf("verify: truncated note descriptor")
		}
		desc := data[:descLen]
		data = data[descEnd:]

		if noteType != noteTypeStapsdt || string(name) != noteNameStapsdt {
			continue
		}
		n, err := parseDescriptor(desc, order)
		if err != nil {
			return notes, err
		}
		notes = append(notes, n)
	}
	return notes, nil
}

func parseDescriptor(desc []byte, order binary.ByteOrder) (StapsdtNote, error) {
	if len(desc) < 24 {
		return StapsdtNote{}, fmt.Errorf("verify: stapsdt descriptor too short")
	}
	n := StapsdtNote{
		Location:  order.Uint64(desc[0:8]),
		Base:      order.Uint64(desc[8:16]),
		Semaphore: order.Uint64(desc[16:24]),
	}
	rest := desc[24:]
	strs := bytes.SplitN(rest, []byte{0}, 4)
	if len(strs) < 3 {
		return StapsdtNote{}, fmt.Errorf("verify: stapsdt descriptor missing provider/probe/arguments strings")
	}
	n.Provider = string(strs[0])
	n.Probe = string(strs[1])
	n.Arguments = string(strs[2])
	return n, nil
}

func align4(n int) int {
	if n%4 == 0 {
		return n
	}
	return n + (4 - n%4)
}

// IsNopAt disassembles the bytes at off within code and reports whether
// the first instruction is a single-byte NOP, confirming the trap site is
// really a no-op when no tracer has patched it.
func IsNopAt(code []byte, off int) (bool, error) {
	if off < 0 || off >= len(code) {
		return false, fmt.Errorf("verify: offset %d out of range", off)
	}
	inst, err := x86asm.Decode(code[off:], 64)
	if err != nil {
		return false, fmt.Errorf("verify: decoding instruction at offset %d: %w", off, err)
	}
	return inst.Op == x86asm.NOP, nil
}
