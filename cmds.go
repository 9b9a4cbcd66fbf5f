package macho

import (
	"encoding/binary"
	"fmt"

	"github.com/appsworld/go-macho64/internal/fields"
	"github.com/appsworld/go-macho64/types"
)

// A Load represents any Mach-O load command.
type Load interface {
	String() string
	Command() types.LoadCmd // kind with LC_REQ_DYLD cleared
	LoadOffset() uint64     // file offset of the command
	LoadSize() uint32       // cmdsize, including the 8 byte prefix
	LoadReqDyld() bool      // LC_REQ_DYLD was set on the kind
}

// A LoadDecoder re-decodes the command described by lc with an extended layout.
type LoadDecoder func(dat []byte, lc *LoadCommand) (Load, error)

// A Registry maps a load command kind to the decoder that specializes it.
// Kinds missing from the registry keep the generic LoadCommand shape.
type Registry map[types.LoadCmd]LoadDecoder

// DefaultRegistry returns a new registry holding the built-in specializations.
func DefaultRegistry() Registry {
	return Registry{
		types.LC_UUID: decodeUUID,
	}
}

/*******************************************************************************
 * GENERIC
 *******************************************************************************/

// A LoadCommand is a load command decoded only as far as its {cmd, cmdsize} prefix.
type LoadCommand struct {
	Offset  uint64        `json:"offset"`
	Cmd     types.LoadCmd `json:"cmd"`
	ReqDyld bool          `json:"req_dyld"`
	Len     uint32        `json:"cmdsize"`
}

func (l *LoadCommand) Command() types.LoadCmd { return l.Cmd }
func (l *LoadCommand) LoadOffset() uint64     { return l.Offset }
func (l *LoadCommand) LoadSize() uint32       { return l.Len }
func (l *LoadCommand) LoadReqDyld() bool      { return l.ReqDyld }

// Raw returns the kind as stored in the file.
func (l *LoadCommand) Raw() types.LoadCmd {
	if l.ReqDyld {
		return l.Cmd | types.LC_REQ_DYLD
	}
	return l.Cmd
}

func (l *LoadCommand) String() string {
	return fmt.Sprintf("%d load_command { cmd = %s, cmdsize = %d };", l.Offset, l.Raw(), l.Len)
}

// decodeLoad decodes the load command prefix at off.
func decodeLoad(dat []byte, off uint64) (*LoadCommand, error) {
	var hdr types.LoadCmdHeader
	if err := fields.Decode(dat, off, binary.LittleEndian, &hdr); err != nil {
		return nil, &FormatError{int64(off), "command block too small", nil, err}
	}
	if hdr.Len < types.LoadCmdHeaderSize {
		return nil, &FormatError{int64(off), "invalid command block size", hdr.Len, ErrMalformedInput}
	}
	return &LoadCommand{
		Offset:  off,
		Cmd:     hdr.Cmd.Base(),
		ReqDyld: hdr.Cmd.ReqDyld(),
		Len:     hdr.Len,
	}, nil
}

/*******************************************************************************
 * LC_UUID
 *******************************************************************************/

// UUID represents a Mach-O LC_UUID command.
type UUID struct {
	LoadCommand
	ID types.UUID `json:"uuid"`
}

func (u *UUID) String() string {
	return fmt.Sprintf("%d uuid_command { cmd = %s, cmdsize = %d, uuid = %s };", u.Offset, u.Raw(), u.Len, u.ID)
}

func decodeUUID(dat []byte, lc *LoadCommand) (Load, error) {
	if lc.Len != types.UUIDCmdSize {
		return nil, &FormatError{int64(lc.Offset), fmt.Sprintf("invalid LC_UUID size: expected %d, found %d", types.UUIDCmdSize, lc.Len), nil, ErrStructuralInconsistency}
	}
	var u types.UUIDCmd
	if err := fields.Decode(dat, lc.Offset, binary.LittleEndian, &u); err != nil {
		return nil, &FormatError{int64(lc.Offset), "failed to read LC_UUID: " + err.Error(), nil, err}
	}
	return &UUID{LoadCommand: *lc, ID: u.UUID}, nil
}
