package macho

// High level access to low level data structures.

import (
	"encoding/binary"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/appsworld/go-macho64/internal/fields"
	"github.com/appsworld/go-macho64/types"
)

// A File represents a decoded 64-bit Mach-O header and load command table.
type File struct {
	FileTOC

	// Findings holds every non-fatal problem in the order it was found.
	Findings []Finding

	walked uint64
}

type FileTOC struct {
	types.FileHeader
	ByteOrder binary.ByteOrder
	Loads     []Load
}

func (t *FileTOC) String() string {
	return t.FileHeader.String() + t.LoadsString()
}

// LoadsString returns a string representation of all the MachO's load commands
func (t *FileTOC) LoadsString() string {
	var loadsStr string
	for _, l := range t.Loads {
		loadsStr += l.String() + "\n"
	}
	return loadsStr
}

// HdrSize returns the size in bytes of the Macho header.
func (t *FileTOC) HdrSize() uint32 {
	return types.FileHeaderSize64
}

func loadInSlice(c types.LoadCmd, list []types.LoadCmd) bool {
	for _, b := range list {
		if b == c {
			return true
		}
	}
	return false
}

// FileConfig is a MachO file config object
type FileConfig struct {
	// Registry replaces DefaultRegistry when non-nil.
	Registry Registry
	// LoadFilter keeps only the listed kinds in Loads. The whole table is still walked.
	LoadFilter []types.LoadCmd
}

// Open reads the named file into memory and decodes it with NewFile.
func Open(name string, config ...FileConfig) (*File, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	dat, err := io.ReadAll(f)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", name, err)
	}
	return NewFile(dat, config...)
}

// NewFile decodes the 64-bit Mach-O header at the start of dat and the
// NCommands load commands that follow it.
//
// Header errors and load commands whose prefix cannot be decoded are fatal.
// Everything else is recorded in Findings.
func NewFile(dat []byte, config ...FileConfig) (*File, error) {
	reg := DefaultRegistry()
	var loadsFilter []types.LoadCmd
	if config != nil {
		if config[0].Registry != nil {
			reg = config[0].Registry
		}
		loadsFilter = config[0].LoadFilter
	}

	f := new(File)
	f.ByteOrder = binary.LittleEndian

	hdr, notes, err := decodeHeader(dat)
	if err != nil {
		return nil, err
	}
	f.FileHeader = hdr
	f.Findings = append(f.Findings, notes...)

	start := uint64(f.HdrSize())
	end := start + uint64(f.SizeCommands)
	offset := start
	overrun := false

	for i := uint32(0); i < f.NCommands; i++ {
		lc, err := decodeLoad(dat, offset)
		if err != nil {
			return nil, err
		}
		if !lc.Cmd.Known() {
			f.Findings = append(f.Findings, unresolved(ScopeLoad, offset, "unknown load command %#x", uint32(lc.Cmd)))
		}

		var l Load = lc
		if decode, ok := reg[lc.Cmd]; ok {
			sl, err := decode(dat, lc)
			if err != nil {
				f.Findings = append(f.Findings, inconsistent(ScopeLoad, offset, "%v, decoded as a generic load command", err))
			} else {
				l = sl
			}
		}

		if offset+uint64(lc.Len) > uint64(len(dat)) {
			f.Findings = append(f.Findings, inconsistent(ScopeLoad, offset,
				"load command %d (%s) ends at %#x, past the end of the %d byte buffer",
				i, lc.Cmd, offset+uint64(lc.Len), len(dat)))
		}
		if !overrun && offset+uint64(lc.Len) > end {
			overrun = true
			f.Findings = append(f.Findings, inconsistent(ScopeLoad, offset,
				"load command %d (%s) ends at %#x, past the end of the declared command table at %#x",
				i, lc.Cmd, offset+uint64(lc.Len), end))
		}

		if len(loadsFilter) == 0 || loadInSlice(lc.Cmd, loadsFilter) {
			f.Loads = append(f.Loads, l)
		}
		offset += uint64(lc.Len)
	}

	f.walked = offset - start
	if f.walked != uint64(f.SizeCommands) {
		f.Findings = append(f.Findings, inconsistent(ScopeFile, offset,
			"sizeofcmds is %d but the %d load commands occupy %d bytes", f.SizeCommands, f.NCommands, f.walked))
	}

	return f, nil
}

func decodeHeader(dat []byte) (types.FileHeader, []Finding, error) {
	var hdr types.FileHeader

	magic, err := fields.Uint32(dat, 0)
	if err != nil {
		return hdr, nil, &FormatError{0, "failed to read magic: " + err.Error(), nil, err}
	}
	if types.Magic(magic) != types.Magic64 {
		return hdr, nil, &FormatError{0, fmt.Sprintf("invalid magic number: expected %#x, found %#x", types.Magic64.Int(), magic), nil, ErrUnrecognizedMagic}
	}

	if err := fields.Decode(dat, 0, binary.LittleEndian, &hdr); err != nil {
		return hdr, nil, &FormatError{0, "failed to read header: " + err.Error(), nil, err}
	}

	var notes []Finding
	if !hdr.CPU.Known() {
		notes = append(notes, unresolved(ScopeHeader, 0, "unknown cputype %#x", uint32(hdr.CPU)))
	}
	if !hdr.Type.Known() {
		notes = append(notes, unresolved(ScopeHeader, 0, "unknown filetype %#x", uint32(hdr.Type)))
	}
	if r := hdr.Flags.Residue(); r != 0 {
		notes = append(notes, unresolved(ScopeHeader, 0, "unknown flag bits %#x", uint32(r)))
	}
	return hdr, notes, nil
}

// LoadSize returns the number of bytes the load command walk consumed.
func (f *File) LoadSize() uint64 {
	return f.walked
}

// Warnings returns the structural inconsistencies found in the file.
func (f *File) Warnings() []Finding {
	return f.filter(Warning)
}

// Notes returns the informational findings, e.g. codes without a symbolic name.
func (f *File) Notes() []Finding {
	return f.filter(Note)
}

func (f *File) filter(s Severity) []Finding {
	var out []Finding
	for _, fd := range f.Findings {
		if fd.Severity == s {
			out = append(out, fd)
		}
	}
	return out
}

// UUID returns the first LC_UUID load command, or nil if there is none.
func (f *File) UUID() *UUID {
	for _, l := range f.Loads {
		if u, ok := l.(*UUID); ok {
			return u
		}
	}
	return nil
}

// Render writes the header, the load commands in file order and any
// findings next to the record they belong to.
func (f *File) Render(w io.Writer) error {
	_, err := io.WriteString(w, f.String())
	return err
}

func (f *File) String() string {
	var b strings.Builder
	used := make([]bool, len(f.Findings))
	writeFindings := func(match func(Finding) bool) {
		for i, fd := range f.Findings {
			if !used[i] && match(fd) {
				used[i] = true
				b.WriteString("   " + fd.String() + "\n")
			}
		}
	}

	b.WriteString(f.FileHeader.String())
	writeFindings(func(fd Finding) bool { return fd.Scope == ScopeHeader })
	for _, l := range f.Loads {
		b.WriteString(l.String() + "\n")
		writeFindings(func(fd Finding) bool { return fd.Scope == ScopeLoad && fd.Offset == l.LoadOffset() })
	}
	writeFindings(func(Finding) bool { return true })

	return b.String()
}

func (f *File) MarshalJSON() ([]byte, error) {
	loads := f.Loads
	if loads == nil {
		loads = []Load{}
	}
	findings := f.Findings
	if findings == nil {
		findings = []Finding{}
	}
	return json.Marshal(struct {
		Header   types.FileHeader `json:"header"`
		Loads    []Load           `json:"loads"`
		Findings []Finding        `json:"findings"`
	}{f.FileHeader, loads, findings})
}
