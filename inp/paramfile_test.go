package inp

import (
	"os"
	"path/filepath"
	"testing"
)

func Test_Default_round_trips_through_file(tst *testing.T) {
	dir := tst.TempDir()
	path := filepath.Join(dir, "test.params.txt")

	want := Default()
	want.RunName = "round-trip-run"
	want.NumberPassiveCrosslinkers = 42
	want.SpringConstant = 2.5

	if err := WriteParameterFile(path, want); err != nil {
		tst.Fatalf("WriteParameterFile: %v", err)
	}
	got, err := ReadParameterFile(path)
	if err != nil {
		tst.Fatalf("ReadParameterFile: %v", err)
	}
	if *got != *want {
		tst.Fatalf("round trip mismatch:\n got=%+v\nwant=%+v", got, want)
	}
}

func Test_WriteDefaultParameterFile_then_read(tst *testing.T) {
	dir := tst.TempDir()
	path := filepath.Join(dir, "default.params.txt")
	if err := WriteDefaultParameterFile(path); err != nil {
		tst.Fatalf("WriteDefaultParameterFile: %v", err)
	}
	got, err := ReadParameterFile(path)
	if err != nil {
		tst.Fatalf("ReadParameterFile: %v", err)
	}
	if *got != *Default() {
		tst.Fatalf("default file did not read back as Default(): %+v", got)
	}
}

func Test_ReadParameterFile_rejects_out_of_order(tst *testing.T) {
	dir := tst.TempDir()
	path := filepath.Join(dir, "bad.params.txt")
	if err := WriteDefaultParameterFile(path); err != nil {
		tst.Fatalf("WriteDefaultParameterFile: %v", err)
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		tst.Fatalf("ReadFile: %v", err)
	}
	lines := splitLines(string(raw))
	if len(lines) < 4 {
		tst.Fatalf("unexpectedly short file")
	}
	lines[1], lines[2] = lines[2], lines[1]
	if err := os.WriteFile(path, []byte(joinLines(lines)), 0o644); err != nil {
		tst.Fatalf("WriteFile: %v", err)
	}
	if _, err := ReadParameterFile(path); err == nil {
		tst.Fatalf("expected an error reading an out-of-order parameter file, got nil")
	}
}

func Test_ReadParameterFile_missing_file(tst *testing.T) {
	if _, err := ReadParameterFile(filepath.Join(tst.TempDir(), "does-not-exist.txt")); err == nil {
		tst.Fatalf("expected an error reading a missing parameter file, got nil")
	}
}

func Test_FileExists(tst *testing.T) {
	dir := tst.TempDir()
	path := filepath.Join(dir, "present.txt")
	if FileExists(path) {
		tst.Fatalf("FileExists reported true before the file was created")
	}
	if err := WriteDefaultParameterFile(path); err != nil {
		tst.Fatalf("WriteDefaultParameterFile: %v", err)
	}
	if !FileExists(path) {
		tst.Fatalf("FileExists reported false after the file was created")
	}
}

func splitLines(s string) []string {
	var lines []string
	start := 0
	for i := 0; i < len(s); i++ {
		if s[i] == '\n' {
			lines = append(lines, s[start:i])
			start = i + 1
		}
	}
	if start < len(s) {
		lines = append(lines, s[start:])
	}
	return lines
}

func joinLines(lines []string) string {
	out := ""
	for _, l := range lines {
		out += l + "\n"
	}
	return out
}
