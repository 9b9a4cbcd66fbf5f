package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCPU(t *testing.T) {
	tests := []struct {
		cpu   CPU
		name  string
		base  CPU
		is64  bool
		known bool
	}{
		{0x01000007, "CPU_TYPE_X86_64", CPU386, true, true},
		{7, "CPU_TYPE_X86", CPU386, false, true},
		{0x0100000c, "CPU_TYPE_ARM64", CPUArm, true, true},
		{0x0200000c, "CPU_TYPE_ARM64_32", CPUArm, false, true},
		{0x01000012, "CPU_TYPE_POWERPC64", CPUPpc, true, true},
		{0x0100000e, "CPU_TYPE_SPARC | CPU_ARCH_ABI64", CPUSparc, true, true},
		{0x04000007, "CPU_TYPE_X86 | unknown(0x4000000)", CPU386, false, false},
		{0x42, "unknown(0x42)", 0x42, false, false},
		{-1, "CPU_TYPE_ANY", CPUAny, false, true},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.name, tt.cpu.String(), "%#x", uint32(tt.cpu))
		base, is64 := tt.cpu.ABI64()
		assert.Equal(t, tt.base, base, "%#x", uint32(tt.cpu))
		assert.Equal(t, tt.is64, is64, "%#x", uint32(tt.cpu))
		assert.Equal(t, tt.known, tt.cpu.Known(), "%#x", uint32(tt.cpu))
	}
	assert.NotEqual(t, CPU(0x01000007), CPU(7))
	assert.True(t, CPUArm6432.Is64_32())
}

func TestCPUSubtype(t *testing.T) {
	lib64 := CpuSubtypeLib64
	tests := []struct {
		cpu  CPU
		sub  CPUSubtype
		want string
	}{
		{CPUAmd64, CPUSubtypeX8664All, "CPU_SUBTYPE_X86_64_ALL"},
		{CPUAmd64, CPUSubtype(uint32(CPUSubtypeX8664All) | lib64), "CPU_SUBTYPE_X86_64_ALL | CPU_SUBTYPE_LIB64"},
		{CPUArm64, CPUSubtypeArm64E, "CPU_SUBTYPE_ARM64E"},
		{CPUArm, CPUSubtypeArmV7S, "CPU_SUBTYPE_ARM_V7S"},
		{CPUArm64, 77, "77"},
		{CPUSparc, 0, "0"},
		{CPUAmd64, CpuSubtypeMultiple, "CPU_SUBTYPE_MULTIPLE"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.sub.String(tt.cpu))
	}

	st := CPUSubtype(uint32(CPUSubtypeArm64E) | lib64)
	assert.Equal(t, uint32(2), st.Subtype())
	assert.Equal(t, uint32(0x80000000), st.Caps())
	assert.True(t, st.Lib64())
}
