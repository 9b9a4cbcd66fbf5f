package types

import (
	"fmt"
	"strings"
)

// A CPU is a Mach-O cpu type.
type CPU int32

const (
	cpuArchMask = 0xff000000 //  mask for architecture bits
	cpuArch64   = 0x01000000 // 64 bit ABI
	cpuArch6432 = 0x02000000 // ABI for 64-bit hardware with 32-bit types; LP32
)

// Base architectures. The 64-bit variants are derived from these with
// the ABI bits rather than listed as independent values.
const (
	CPUAny     CPU = -1
	CPUVax     CPU = 1
	CPUMc680x0 CPU = 6
	CPU386     CPU = 7
	CPUMc98000 CPU = 10
	CPUHppa    CPU = 11
	CPUArm     CPU = 12
	CPUMc88000 CPU = 13
	CPUSparc   CPU = 14
	CPUI860    CPU = 15
	CPUPpc     CPU = 18
)

const (
	CPUAmd64   = CPU386 | cpuArch64
	CPUArm64   = CPUArm | cpuArch64
	CPUArm6432 = CPUArm | cpuArch6432
	CPUPpc64   = CPUPpc | cpuArch64
)

var cpuStrings = []intName{
	{uint32(CPUVax), "CPU_TYPE_VAX"},
	{uint32(CPUMc680x0), "CPU_TYPE_MC680x0"},
	{uint32(CPU386), "CPU_TYPE_X86"},
	{uint32(CPUMc98000), "CPU_TYPE_MC98000"},
	{uint32(CPUHppa), "CPU_TYPE_HPPA"},
	{uint32(CPUArm), "CPU_TYPE_ARM"},
	{uint32(CPUMc88000), "CPU_TYPE_MC88000"},
	{uint32(CPUSparc), "CPU_TYPE_SPARC"},
	{uint32(CPUI860), "CPU_TYPE_I860"},
	{uint32(CPUPpc), "CPU_TYPE_POWERPC"},
}

// conventional names of the ABI variants, keyed by base architecture
var cpu64Strings = []intName{
	{uint32(CPU386), "CPU_TYPE_X86_64"},
	{uint32(CPUArm), "CPU_TYPE_ARM64"},
	{uint32(CPUPpc), "CPU_TYPE_POWERPC64"},
}

var cpu6432Strings = []intName{
	{uint32(CPUArm), "CPU_TYPE_ARM64_32"},
}

// Base returns the architecture with the ABI bits cleared.
func (c CPU) Base() CPU {
	if c == CPUAny {
		return c
	}
	return CPU(uint32(c) &^ cpuArchMask)
}

// Is64 reports whether the 64-bit ABI bit is set.
func (c CPU) Is64() bool { return c != CPUAny && c&cpuArch64 != 0 }

// Is64_32 reports whether the LP32-on-64-bit ABI bit is set.
func (c CPU) Is64_32() bool { return c != CPUAny && c&cpuArch6432 != 0 }

// ABI64 splits c into its base architecture and 64-bit ABI tag.
func (c CPU) ABI64() (CPU, bool) { return c.Base(), c.Is64() }

// Known reports whether both the base architecture and every ABI bit of c have a name.
func (c CPU) Known() bool {
	if c == CPUAny {
		return true
	}
	if uint32(c)&cpuArchMask&^(cpuArch64|cpuArch6432) != 0 {
		return false
	}
	return knownName(uint32(c.Base()), cpuStrings)
}

func (c CPU) String() string {
	if c == CPUAny {
		return "CPU_TYPE_ANY"
	}
	base := uint32(c.Base())
	abi := uint32(c) & cpuArchMask
	switch abi {
	case 0:
		return stringName(base, cpuStrings, false)
	case cpuArch64:
		if s, ok := lookupName(base, cpu64Strings); ok {
			return s
		}
	case cpuArch6432:
		if s, ok := lookupName(base, cpu6432Strings); ok {
			return s
		}
	}
	parts := []string{stringName(base, cpuStrings, false)}
	if abi&cpuArch64 != 0 {
		parts = append(parts, "CPU_ARCH_ABI64")
	}
	if abi&cpuArch6432 != 0 {
		parts = append(parts, "CPU_ARCH_ABI64_32")
	}
	if rest := abi &^ (cpuArch64 | cpuArch6432); rest != 0 {
		parts = append(parts, unknownName(rest))
	}
	return strings.Join(parts, " | ")
}

func (c CPU) GoString() string {
	return fmt.Sprintf("types.CPU(%#x)", uint32(c))
}

func (c CPU) MarshalText() ([]byte, error) { return []byte(c.String()), nil }

type CPUSubtype int32

// X86 subtypes
const (
	CPUSubtypeX86All   CPUSubtype = 3
	CPUSubtypeX8664All CPUSubtype = 3
	CPUSubtypeX86Arch1 CPUSubtype = 4
	CPUSubtypeX86_64H  CPUSubtype = 8
)

// ARM subtypes
const (
	CPUSubtypeArmAll    CPUSubtype = 0
	CPUSubtypeArmV4T    CPUSubtype = 5
	CPUSubtypeArmV6     CPUSubtype = 6
	CPUSubtypeArmV5Tej  CPUSubtype = 7
	CPUSubtypeArmXscale CPUSubtype = 8
	CPUSubtypeArmV7     CPUSubtype = 9
	CPUSubtypeArmV7F    CPUSubtype = 10
	CPUSubtypeArmV7S    CPUSubtype = 11
	CPUSubtypeArmV7K    CPUSubtype = 12
	CPUSubtypeArmV8     CPUSubtype = 13
	CPUSubtypeArmV6M    CPUSubtype = 14
	CPUSubtypeArmV7M    CPUSubtype = 15
	CPUSubtypeArmV7Em   CPUSubtype = 16
	CPUSubtypeArmV8M    CPUSubtype = 17
)

// ARM64 subtypes
const (
	CPUSubtypeArm64All CPUSubtype = 0
	CPUSubtypeArm64V8  CPUSubtype = 1
	CPUSubtypeArm64E   CPUSubtype = 2
)

// Capability bits used in the definition of cpu_subtype.
const (
	CpuSubtypeFeatureMask uint32     = 0xff000000 /* mask for feature flags */
	CpuSubtypeMask        uint32     = 0x00ffffff /* mask for cpu subtype */
	CpuSubtypeLib64       uint32     = 0x80000000 /* 64 bit libraries */
	CpuSubtypeMultiple    CPUSubtype = -1
)

var cpuSubtypeX86Strings = []intName{
	{uint32(CPUSubtypeX8664All), "CPU_SUBTYPE_X86_64_ALL"},
	{uint32(CPUSubtypeX86Arch1), "CPU_SUBTYPE_X86_ARCH1"},
	{uint32(CPUSubtypeX86_64H), "CPU_SUBTYPE_X86_64_H"},
}
var cpuSubtypeArmStrings = []intName{
	{uint32(CPUSubtypeArmAll), "CPU_SUBTYPE_ARM_ALL"},
	{uint32(CPUSubtypeArmV4T), "CPU_SUBTYPE_ARM_V4T"},
	{uint32(CPUSubtypeArmV6), "CPU_SUBTYPE_ARM_V6"},
	{uint32(CPUSubtypeArmV5Tej), "CPU_SUBTYPE_ARM_V5TEJ"},
	{uint32(CPUSubtypeArmXscale), "CPU_SUBTYPE_ARM_XSCALE"},
	{uint32(CPUSubtypeArmV7), "CPU_SUBTYPE_ARM_V7"},
	{uint32(CPUSubtypeArmV7F), "CPU_SUBTYPE_ARM_V7F"},
	{uint32(CPUSubtypeArmV7S), "CPU_SUBTYPE_ARM_V7S"},
	{uint32(CPUSubtypeArmV7K), "CPU_SUBTYPE_ARM_V7K"},
	{uint32(CPUSubtypeArmV8), "CPU_SUBTYPE_ARM_V8"},
	{uint32(CPUSubtypeArmV6M), "CPU_SUBTYPE_ARM_V6M"},
	{uint32(CPUSubtypeArmV7M), "CPU_SUBTYPE_ARM_V7M"},
	{uint32(CPUSubtypeArmV7Em), "CPU_SUBTYPE_ARM_V7EM"},
	{uint32(CPUSubtypeArmV8M), "CPU_SUBTYPE_ARM_V8M"},
}
var cpuSubtypeArm64Strings = []intName{
	{uint32(CPUSubtypeArm64All), "CPU_SUBTYPE_ARM64_ALL"},
	{uint32(CPUSubtypeArm64V8), "CPU_SUBTYPE_ARM64_V8"},
	{uint32(CPUSubtypeArm64E), "CPU_SUBTYPE_ARM64E"},
}

// Subtype returns st with the capability bits cleared.
func (st CPUSubtype) Subtype() uint32 { return uint32(st) & CpuSubtypeMask }

// Caps returns the capability bits of st.
func (st CPUSubtype) Caps() uint32 { return uint32(st) & CpuSubtypeFeatureMask }

// Lib64 reports whether the 64-bit libraries capability bit is set.
func (st CPUSubtype) Lib64() bool { return uint32(st)&CpuSubtypeLib64 != 0 }

func subtypeStrings(cpu CPU) []intName {
	switch cpu {
	case CPU386, CPUAmd64:
		return cpuSubtypeX86Strings
	case CPUArm:
		return cpuSubtypeArmStrings
	case CPUArm64:
		return cpuSubtypeArm64Strings
	}
	return nil
}

// String renders st in the context of cpu. Known subtypes render
// symbolically, others as the masked decimal value.
func (st CPUSubtype) String(cpu CPU) string {
	if st == CpuSubtypeMultiple {
		return "CPU_SUBTYPE_MULTIPLE"
	}
	name, ok := lookupName(st.Subtype(), subtypeStrings(cpu))
	if !ok {
		name = fmt.Sprintf("%d", st.Subtype())
	}
	parts := []string{name}
	if st.Lib64() {
		parts = append(parts, "CPU_SUBTYPE_LIB64")
	}
	if caps := st.Caps() &^ CpuSubtypeLib64; caps != 0 {
		parts = append(parts, fmt.Sprintf("%#x", caps))
	}
	return strings.Join(parts, " | ")
}
