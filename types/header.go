package types

import (
	"encoding/binary"
	"encoding/json"
	"fmt"
	"math/bits"
	"strings"
)

// A FileHeader represents a 64-bit Mach-O file header (mach_header_64).
type FileHeader struct {
	Magic        Magic          `json:"magic"`
	CPU          CPU            `json:"cputype"`
	SubCPU       CPUSubtype     `json:"cpusubtype"`
	Type         HeaderFileType `json:"filetype"`
	NCommands    uint32         `json:"ncmds"`
	SizeCommands uint32         `json:"sizeofcmds"`
	Flags        HeaderFlag     `json:"flags"`
	Reserved     uint32         `json:"reserved"`
}

// Put encodes h into b and returns the number of bytes written.
func (h *FileHeader) Put(b []byte, o binary.ByteOrder) int {
	o.PutUint32(b[0:], uint32(h.Magic))
	o.PutUint32(b[4:], uint32(h.CPU))
	o.PutUint32(b[8:], uint32(h.SubCPU))
	o.PutUint32(b[12:], uint32(h.Type))
	o.PutUint32(b[16:], h.NCommands)
	o.PutUint32(b[20:], h.SizeCommands)
	o.PutUint32(b[24:], uint32(h.Flags))
	o.PutUint32(b[28:], h.Reserved)
	return FileHeaderSize64
}

const (
	FileHeaderSize32 = 7 * 4
	FileHeaderSize64 = 8 * 4
)

type Magic uint32

const (
	Magic32  Magic = 0xfeedface
	Magic64  Magic = 0xfeedfacf
	MagicFat Magic = 0xcafebabe
)

var magicStrings = []intName{
	{uint32(Magic32), "MH_MAGIC"},
	{uint32(Magic64), "MH_MAGIC_64"},
	{uint32(MagicFat), "FAT_MAGIC"},
}

func (i Magic) Int() uint32      { return uint32(i) }
func (i Magic) String() string   { return stringName(uint32(i), magicStrings, false) }
func (i Magic) GoString() string { return stringName(uint32(i), magicStrings, true) }
func (i Magic) Known() bool      { return knownName(uint32(i), magicStrings) }

func (i Magic) MarshalText() ([]byte, error) { return []byte(i.String()), nil }

// A HeaderFileType is the Mach-O file type, e.g. an object file, executable, or dynamic library.
type HeaderFileType uint32

const (
	MH_OBJECT      HeaderFileType = 0x1 /* relocatable object file */
	MH_EXECUTE     HeaderFileType = 0x2 /* demand paged executable file */
	MH_FVMLIB      HeaderFileType = 0x3 /* fixed VM shared library file */
	MH_CORE        HeaderFileType = 0x4 /* core file */
	MH_PRELOAD     HeaderFileType = 0x5 /* preloaded executable file */
	MH_DYLIB       HeaderFileType = 0x6 /* dynamically bound shared library */
	MH_DYLINKER    HeaderFileType = 0x7 /* dynamic link editor */
	MH_BUNDLE      HeaderFileType = 0x8 /* dynamically bound bundle file */
	MH_DYLIB_STUB  HeaderFileType = 0x9 /* shared library stub for static linking only, no section contents */
	MH_DSYM        HeaderFileType = 0xa /* companion file with only debug sections */
	MH_KEXT_BUNDLE HeaderFileType = 0xb /* x86_64 kexts */
	MH_FILESET     HeaderFileType = 0xc /* a file composed of other Mach-Os to be run in the same userspace sharing a single linkedit. */
	MH_GPU_EXECUTE HeaderFileType = 0xd /* gpu program */
	MH_GPU_DYLIB   HeaderFileType = 0xe /* gpu support functions */
)

var fileTypeStrings = []intName{
	{uint32(MH_OBJECT), "MH_OBJECT"},
	{uint32(MH_EXECUTE), "MH_EXECUTE"},
	{uint32(MH_FVMLIB), "MH_FVMLIB"},
	{uint32(MH_CORE), "MH_CORE"},
	{uint32(MH_PRELOAD), "MH_PRELOAD"},
	{uint32(MH_DYLIB), "MH_DYLIB"},
	{uint32(MH_DYLINKER), "MH_DYLINKER"},
	{uint32(MH_BUNDLE), "MH_BUNDLE"},
	{uint32(MH_DYLIB_STUB), "MH_DYLIB_STUB"},
	{uint32(MH_DSYM), "MH_DSYM"},
	{uint32(MH_KEXT_BUNDLE), "MH_KEXT_BUNDLE"},
	{uint32(MH_FILESET), "MH_FILESET"},
	{uint32(MH_GPU_EXECUTE), "MH_GPU_EXECUTE"},
	{uint32(MH_GPU_DYLIB), "MH_GPU_DYLIB"},
}

func (t HeaderFileType) String() string   { return stringName(uint32(t), fileTypeStrings, false) }
func (t HeaderFileType) GoString() string { return stringName(uint32(t), fileTypeStrings, true) }
func (t HeaderFileType) Known() bool      { return knownName(uint32(t), fileTypeStrings) }

func (t HeaderFileType) MarshalText() ([]byte, error) { return []byte(t.String()), nil }

type HeaderFlag uint32

const (
	None                       HeaderFlag = 0x0
	NoUndefs                   HeaderFlag = 0x1
	IncrLink                   HeaderFlag = 0x2
	DyldLink                   HeaderFlag = 0x4
	BindAtLoad                 HeaderFlag = 0x8
	Prebound                   HeaderFlag = 0x10
	SplitSegs                  HeaderFlag = 0x20
	LazyInit                   HeaderFlag = 0x40
	TwoLevel                   HeaderFlag = 0x80
	ForceFlat                  HeaderFlag = 0x100
	NoMultiDefs                HeaderFlag = 0x200
	NoFixPrebinding            HeaderFlag = 0x400
	Prebindable                HeaderFlag = 0x800
	AllModsBound               HeaderFlag = 0x1000
	SubsectionsViaSymbols      HeaderFlag = 0x2000
	Canonical                  HeaderFlag = 0x4000
	WeakDefines                HeaderFlag = 0x8000
	BindsToWeak                HeaderFlag = 0x10000
	AllowStackExecution        HeaderFlag = 0x20000
	RootSafe                   HeaderFlag = 0x40000
	SetuidSafe                 HeaderFlag = 0x80000
	NoReexportedDylibs         HeaderFlag = 0x100000
	PIE                        HeaderFlag = 0x200000
	DeadStrippableDylib        HeaderFlag = 0x400000
	HasTLVDescriptors          HeaderFlag = 0x800000
	NoHeapExecution            HeaderFlag = 0x1000000
	AppExtensionSafe           HeaderFlag = 0x2000000
	NlistOutofsyncWithDyldinfo HeaderFlag = 0x4000000
	SimSupport                 HeaderFlag = 0x8000000
	DylibInCache               HeaderFlag = 0x80000000
)

// headerFlagStrings is kept in ascending bit order.
var headerFlagStrings = []intName{
	{uint32(NoUndefs), "MH_NOUNDEFS"},
	{uint32(IncrLink), "MH_INCRLINK"},
	{uint32(DyldLink), "MH_DYLDLINK"},
	{uint32(BindAtLoad), "MH_BINDATLOAD"},
	{uint32(Prebound), "MH_PREBOUND"},
	{uint32(SplitSegs), "MH_SPLIT_SEGS"},
	{uint32(LazyInit), "MH_LAZY_INIT"},
	{uint32(TwoLevel), "MH_TWOLEVEL"},
	{uint32(ForceFlat), "MH_FORCE_FLAT"},
	{uint32(NoMultiDefs), "MH_NOMULTIDEFS"},
	{uint32(NoFixPrebinding), "MH_NOFIXPREBINDING"},
	{uint32(Prebindable), "MH_PREBINDABLE"},
	{uint32(AllModsBound), "MH_ALLMODSBOUND"},
	{uint32(SubsectionsViaSymbols), "MH_SUBSECTIONS_VIA_SYMBOLS"},
	{uint32(Canonical), "MH_CANONICAL"},
	{uint32(WeakDefines), "MH_WEAK_DEFINES"},
	{uint32(BindsToWeak), "MH_BINDS_TO_WEAK"},
	{uint32(AllowStackExecution), "MH_ALLOW_STACK_EXECUTION"},
	{uint32(RootSafe), "MH_ROOT_SAFE"},
	{uint32(SetuidSafe), "MH_SETUID_SAFE"},
	{uint32(NoReexportedDylibs), "MH_NO_REEXPORTED_DYLIBS"},
	{uint32(PIE), "MH_PIE"},
	{uint32(DeadStrippableDylib), "MH_DEAD_STRIPPABLE_DYLIB"},
	{uint32(HasTLVDescriptors), "MH_HAS_TLV_DESCRIPTORS"},
	{uint32(NoHeapExecution), "MH_NO_HEAP_EXECUTION"},
	{uint32(AppExtensionSafe), "MH_APP_EXTENSION_SAFE"},
	{uint32(NlistOutofsyncWithDyldinfo), "MH_NLIST_OUTOFSYNC_WITH_DYLDINFO"},
	{uint32(SimSupport), "MH_SIM_SUPPORT"},
	{uint32(DylibInCache), "MH_DYLIB_IN_CACHE"},
}

// GETTERS
func (f HeaderFlag) None() bool {
	return f == 0
}
func (f HeaderFlag) NoUndefs() bool {
	return (f & NoUndefs) != 0
}
func (f HeaderFlag) DyldLink() bool {
	return (f & DyldLink) != 0
}
func (f HeaderFlag) TwoLevel() bool {
	return (f & TwoLevel) != 0
}
func (f HeaderFlag) SubsectionsViaSymbols() bool {
	return (f & SubsectionsViaSymbols) != 0
}
func (f HeaderFlag) PIE() bool {
	return (f & PIE) != 0
}
func (f HeaderFlag) DylibInCache() bool {
	return (f & DylibInCache) != 0
}

// Has reports whether every bit of flag is set in f.
func (f HeaderFlag) Has(flag HeaderFlag) bool {
	return flag != 0 && f&flag == flag
}

// List returns the set bits of f as single-bit flags in ascending bit order.
// Bits without a name are kept; see Residue.
func (f HeaderFlag) List() []HeaderFlag {
	var flags []HeaderFlag
	for rest := uint32(f); rest != 0; rest &= rest - 1 {
		flags = append(flags, HeaderFlag(1)<<bits.TrailingZeros32(rest))
	}
	return flags
}

// Residue returns the set bits of f that have no symbolic name.
func (f HeaderFlag) Residue() HeaderFlag {
	known := uint32(0)
	for _, n := range headerFlagStrings {
		known |= n.i
	}
	return f &^ HeaderFlag(known)
}

func (f HeaderFlag) Known() bool { return f.Residue() == 0 }

// Names returns the symbolic names of the set bits of f.
func (f HeaderFlag) Names() []string {
	names := []string{}
	for _, flag := range f.List() {
		names = append(names, stringName(uint32(flag), headerFlagStrings, false))
	}
	return names
}

func (f HeaderFlag) String() string {
	return "[" + strings.Join(f.Names(), ", ") + "]"
}

func (f HeaderFlag) MarshalJSON() ([]byte, error) {
	return json.Marshal(f.Names())
}

func (f HeaderFlag) Flags() string {
	return strings.Join(f.Names(), ", ")
}

func (h FileHeader) String() string {
	return fmt.Sprintf(
		"mach_header_64 {\n"+
			"   magic = %s,\n"+
			"   cputype = %s,\n"+
			"   cpusubtype = %s,\n"+
			"   filetype = %s,\n"+
			"   ncmds = %d,\n"+
			"   sizeofcmds = %d,\n"+
			"   flags = %s,\n"+
			"   reserved = %d,\n"+
			"};\n",
		h.Magic,
		h.CPU,
		h.SubCPU.String(h.CPU),
		h.Type,
		h.NCommands,
		h.SizeCommands,
		h.Flags,
		h.Reserved,
	)
}

// MarshalJSON renders cpusubtype symbolically; its names depend on cputype.
func (h FileHeader) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Magic        Magic          `json:"magic"`
		CPU          CPU            `json:"cputype"`
		SubCPU       string         `json:"cpusubtype"`
		Type         HeaderFileType `json:"filetype"`
		NCommands    uint32         `json:"ncmds"`
		SizeCommands uint32         `json:"sizeofcmds"`
		Flags        HeaderFlag     `json:"flags"`
		Reserved     uint32         `json:"reserved"`
	}{h.Magic, h.CPU, h.SubCPU.String(h.CPU), h.Type, h.NCommands, h.SizeCommands, h.Flags, h.Reserved})
}
