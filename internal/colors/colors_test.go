package colors

import (
	"strings"
	"testing"

	"github.com/fatih/color"
)

func TestInit_ForceOn(t *testing.T) {
	orig := color.NoColor
	defer func() { color.NoColor = orig }()

	color.NoColor = true
	forceOn := true
	Init(&forceOn)

	if !Enabled() {
		t.Error("Enabled() should return true")
	}
}

func TestInit_Nil_KeepsExisting(t *testing.T) {
	orig := color.NoColor
	defer func() { color.NoColor = orig }()

	color.NoColor = true
	Init(nil)
	if Enabled() {
		t.Error("Init(nil) should not change NoColor when it was true")
	}
}

func TestDump_Disabled(t *testing.T) {
	orig := color.NoColor
	defer func() { color.NoColor = orig }()

	color.NoColor = true
	in := "mach_header_64 {\n   warning: oops\n};\n"
	if got := Dump(in); got != in {
		t.Errorf("Dump() = %q; want unchanged %q", got, in)
	}
}

func TestDump_Enabled(t *testing.T) {
	orig := color.NoColor
	defer func() { color.NoColor = orig }()

	color.NoColor = false
	got := Dump("32 load_command { cmd = LC_UUID, cmdsize = 24 };\n   warning: oops\n")
	if !strings.Contains(got, "\x1b[") {
		t.Errorf("expected ANSI codes when colors enabled, got: %q", got)
	}
	if !strings.HasPrefix(got, "32 load_command") {
		t.Errorf("plain lines should be left alone, got: %q", got)
	}
	if !strings.HasSuffix(got, "\n") {
		t.Errorf("expected trailing newline to be kept, got: %q", got)
	}
}
