package types

import "strings"

// A LoadCmd is a Mach-O load command kind.
//
// On disk the kind may carry LC_REQ_DYLD; the constants below are the
// values with that bit cleared and Base strips it from a raw kind.
type LoadCmd uint32

func (c LoadCmd) Command() LoadCmd { return c }

// Base returns c with LC_REQ_DYLD cleared.
func (c LoadCmd) Base() LoadCmd { return c &^ LC_REQ_DYLD }

// ReqDyld reports whether the dynamic linker must understand c to load the file.
func (c LoadCmd) ReqDyld() bool { return c&LC_REQ_DYLD != 0 }

const LoadCmdHeaderSize = 2 * 4

const (
	LC_REQ_DYLD                 LoadCmd = 0x80000000
	LC_SEGMENT                  LoadCmd = 0x1  // segment of this file to be mapped
	LC_SYMTAB                   LoadCmd = 0x2  // link-edit stab symbol table info
	LC_SYMSEG                   LoadCmd = 0x3  // link-edit gdb symbol table info (obsolete)
	LC_THREAD                   LoadCmd = 0x4  // thread
	LC_UNIXTHREAD               LoadCmd = 0x5  // thread+stack
	LC_LOADFVMLIB               LoadCmd = 0x6  // load a specified fixed VM shared library
	LC_IDFVMLIB                 LoadCmd = 0x7  // fixed VM shared library identification
	LC_IDENT                    LoadCmd = 0x8  // object identification info (obsolete)
	LC_FVMFILE                  LoadCmd = 0x9  // fixed VM file inclusion (internal use)
	LC_PREPAGE                  LoadCmd = 0xa  // prepage command (internal use)
	LC_DYSYMTAB                 LoadCmd = 0xb  // dynamic link-edit symbol table info
	LC_LOAD_DYLIB               LoadCmd = 0xc  // load dylib command
	LC_ID_DYLIB                 LoadCmd = 0xd  // id dylib command
	LC_LOAD_DYLINKER            LoadCmd = 0xe  // load a dynamic linker
	LC_ID_DYLINKER              LoadCmd = 0xf  // id dylinker command (not load dylinker command)
	LC_PREBOUND_DYLIB           LoadCmd = 0x10 // modules prebound for a dynamically linked shared library
	LC_ROUTINES                 LoadCmd = 0x11 // image routines
	LC_SUB_FRAMEWORK            LoadCmd = 0x12 // sub framework
	LC_SUB_UMBRELLA             LoadCmd = 0x13 // sub umbrella
	LC_SUB_CLIENT               LoadCmd = 0x14 // sub client
	LC_SUB_LIBRARY              LoadCmd = 0x15 // sub library
	LC_TWOLEVEL_HINTS           LoadCmd = 0x16 // two-level namespace lookup hints
	LC_PREBIND_CKSUM            LoadCmd = 0x17 // prebind checksum
	LC_LOAD_WEAK_DYLIB          LoadCmd = 0x18 // load a dylib that is allowed to be missing (| LC_REQ_DYLD)
	LC_SEGMENT_64               LoadCmd = 0x19 // 64-bit segment of this file to be mapped
	LC_ROUTINES_64              LoadCmd = 0x1a // 64-bit image routines
	LC_UUID                     LoadCmd = 0x1b // the uuid
	LC_RPATH                    LoadCmd = 0x1c // runpath additions (| LC_REQ_DYLD)
	LC_CODE_SIGNATURE           LoadCmd = 0x1d // local of code signature
	LC_SEGMENT_SPLIT_INFO       LoadCmd = 0x1e // local of info to split segments
	LC_REEXPORT_DYLIB           LoadCmd = 0x1f // load and re-export dylib (| LC_REQ_DYLD)
	LC_LAZY_LOAD_DYLIB          LoadCmd = 0x20 // delay load of dylib until first use
	LC_ENCRYPTION_INFO          LoadCmd = 0x21 // encrypted segment information
	LC_DYLD_INFO                LoadCmd = 0x22 // compressed dyld information (| LC_REQ_DYLD for LC_DYLD_INFO_ONLY)
	LC_LOAD_UPWARD_DYLIB        LoadCmd = 0x23 // load upward dylib (| LC_REQ_DYLD)
	LC_VERSION_MIN_MACOSX       LoadCmd = 0x24 // build for MacOSX min OS version
	LC_VERSION_MIN_IPHONEOS     LoadCmd = 0x25 // build for iPhoneOS min OS version
	LC_FUNCTION_STARTS          LoadCmd = 0x26 // compressed table of function start addresses
	LC_DYLD_ENVIRONMENT         LoadCmd = 0x27 // string for dyld to treat like environment variable
	LC_MAIN                     LoadCmd = 0x28 // replacement for LC_UNIXTHREAD (| LC_REQ_DYLD)
	LC_DATA_IN_CODE             LoadCmd = 0x29 // table of non-instructions in __text
	LC_SOURCE_VERSION           LoadCmd = 0x2A // source version used to build binary
	LC_DYLIB_CODE_SIGN_DRS      LoadCmd = 0x2B // Code signing DRs copied from linked dylibs
	LC_ENCRYPTION_INFO_64       LoadCmd = 0x2C // 64-bit encrypted segment information
	LC_LINKER_OPTION            LoadCmd = 0x2D // linker options in MH_OBJECT files
	LC_LINKER_OPTIMIZATION_HINT LoadCmd = 0x2E // optimization hints in MH_OBJECT files
	LC_VERSION_MIN_TVOS         LoadCmd = 0x2F // build for AppleTV min OS version
	LC_VERSION_MIN_WATCHOS      LoadCmd = 0x30 // build for Watch min OS version
	LC_NOTE                     LoadCmd = 0x31 // arbitrary data included within a Mach-O file
	LC_BUILD_VERSION            LoadCmd = 0x32 // build for platform min OS version
	LC_DYLD_EXPORTS_TRIE        LoadCmd = 0x33 // used with linkedit_data_command, payload is trie (| LC_REQ_DYLD)
	LC_DYLD_CHAINED_FIXUPS      LoadCmd = 0x34 // used with linkedit_data_command (| LC_REQ_DYLD)
	LC_FILESET_ENTRY            LoadCmd = 0x35 // used with fileset_entry_command (| LC_REQ_DYLD)
)

var loadCmdStrings = []intName{
	{uint32(LC_SEGMENT), "LC_SEGMENT"},
	{uint32(LC_SYMTAB), "LC_SYMTAB"},
	{uint32(LC_SYMSEG), "LC_SYMSEG"},
	{uint32(LC_THREAD), "LC_THREAD"},
	{uint32(LC_UNIXTHREAD), "LC_UNIXTHREAD"},
	{uint32(LC_LOADFVMLIB), "LC_LOADFVMLIB"},
	{uint32(LC_IDFVMLIB), "LC_IDFVMLIB"},
	{uint32(LC_IDENT), "LC_IDENT"},
	{uint32(LC_FVMFILE), "LC_FVMFILE"},
	{uint32(LC_PREPAGE), "LC_PREPAGE"},
	{uint32(LC_DYSYMTAB), "LC_DYSYMTAB"},
	{uint32(LC_LOAD_DYLIB), "LC_LOAD_DYLIB"},
	{uint32(LC_ID_DYLIB), "LC_ID_DYLIB"},
	{uint32(LC_LOAD_DYLINKER), "LC_LOAD_DYLINKER"},
	{uint32(LC_ID_DYLINKER), "LC_ID_DYLINKER"},
	{uint32(LC_PREBOUND_DYLIB), "LC_PREBOUND_DYLIB"},
	{uint32(LC_ROUTINES), "LC_ROUTINES"},
	{uint32(LC_SUB_FRAMEWORK), "LC_SUB_FRAMEWORK"},
	{uint32(LC_SUB_UMBRELLA), "LC_SUB_UMBRELLA"},
	{uint32(LC_SUB_CLIENT), "LC_SUB_CLIENT"},
	{uint32(LC_SUB_LIBRARY), "LC_SUB_LIBRARY"},
	{uint32(LC_TWOLEVEL_HINTS), "LC_TWOLEVEL_HINTS"},
	{uint32(LC_PREBIND_CKSUM), "LC_PREBIND_CKSUM"},
	{uint32(LC_LOAD_WEAK_DYLIB), "LC_LOAD_WEAK_DYLIB"},
	{uint32(LC_SEGMENT_64), "LC_SEGMENT_64"},
	{uint32(LC_ROUTINES_64), "LC_ROUTINES_64"},
	{uint32(LC_UUID), "LC_UUID"},
	{uint32(LC_RPATH), "LC_RPATH"},
	{uint32(LC_CODE_SIGNATURE), "LC_CODE_SIGNATURE"},
	{uint32(LC_SEGMENT_SPLIT_INFO), "LC_SEGMENT_SPLIT_INFO"},
	{uint32(LC_REEXPORT_DYLIB), "LC_REEXPORT_DYLIB"},
	{uint32(LC_LAZY_LOAD_DYLIB), "LC_LAZY_LOAD_DYLIB"},
	{uint32(LC_ENCRYPTION_INFO), "LC_ENCRYPTION_INFO"},
	{uint32(LC_DYLD_INFO), "LC_DYLD_INFO"},
	{uint32(LC_LOAD_UPWARD_DYLIB), "LC_LOAD_UPWARD_DYLIB"},
	{uint32(LC_VERSION_MIN_MACOSX), "LC_VERSION_MIN_MACOSX"},
	{uint32(LC_VERSION_MIN_IPHONEOS), "LC_VERSION_MIN_IPHONEOS"},
	{uint32(LC_FUNCTION_STARTS), "LC_FUNCTION_STARTS"},
	{uint32(LC_DYLD_ENVIRONMENT), "LC_DYLD_ENVIRONMENT"},
	{uint32(LC_MAIN), "LC_MAIN"},
	{uint32(LC_DATA_IN_CODE), "LC_DATA_IN_CODE"},
	{uint32(LC_SOURCE_VERSION), "LC_SOURCE_VERSION"},
	{uint32(LC_DYLIB_CODE_SIGN_DRS), "LC_DYLIB_CODE_SIGN_DRS"},
	{uint32(LC_ENCRYPTION_INFO_64), "LC_ENCRYPTION_INFO_64"},
	{uint32(LC_LINKER_OPTION), "LC_LINKER_OPTION"},
	{uint32(LC_LINKER_OPTIMIZATION_HINT), "LC_LINKER_OPTIMIZATION_HINT"},
	{uint32(LC_VERSION_MIN_TVOS), "LC_VERSION_MIN_TVOS"},
	{uint32(LC_VERSION_MIN_WATCHOS), "LC_VERSION_MIN_WATCHOS"},
	{uint32(LC_NOTE), "LC_NOTE"},
	{uint32(LC_BUILD_VERSION), "LC_BUILD_VERSION"},
	{uint32(LC_DYLD_EXPORTS_TRIE), "LC_DYLD_EXPORTS_TRIE"},
	{uint32(LC_DYLD_CHAINED_FIXUPS), "LC_DYLD_CHAINED_FIXUPS"},
	{uint32(LC_FILESET_ENTRY), "LC_FILESET_ENTRY"},
}

// String returns the symbolic name of the base kind, followed by
// " | LC_REQ_DYLD" when that bit is set.
func (c LoadCmd) String() string {
	parts := []string{stringName(uint32(c.Base()), loadCmdStrings, false)}
	if c.ReqDyld() {
		parts = append(parts, "LC_REQ_DYLD")
	}
	return strings.Join(parts, " | ")
}

func (c LoadCmd) GoString() string { return stringName(uint32(c.Base()), loadCmdStrings, true) }
func (c LoadCmd) Known() bool      { return knownName(uint32(c.Base()), loadCmdStrings) }

func (c LoadCmd) MarshalText() ([]byte, error) { return []byte(c.String()), nil }

// A LoadCmdHeader is the prefix shared by every load command.
type LoadCmdHeader struct {
	Cmd LoadCmd // raw, LC_REQ_DYLD included
	Len uint32  // includes this header
}

// UUIDCmd is a Mach-O uuid load command.
type UUIDCmd struct {
	LoadCmd // LC_UUID
	Len     uint32
	UUID    UUID
}

const UUIDCmdSize = 24

// ParseLoadCmd returns the kind named s, e.g. "LC_UUID". The "LC_" prefix
// and case are optional.
func ParseLoadCmd(s string) (LoadCmd, bool) {
	name := strings.ToUpper(strings.TrimSpace(s))
	if !strings.HasPrefix(name, "LC_") {
		name = "LC_" + name
	}
	for _, n := range loadCmdStrings {
		if n.s == name {
			return LoadCmd(n.i), true
		}
	}
	return 0, false
}
