package simlog

import "testing"

func Test_Logger_counts_clamps_and_reflections(tst *testing.T) {
	l := New(tst.TempDir(), "testrun")
	if l.NDeterministicClamps() != 0 || l.NReflections() != 0 {
		tst.Fatalf("new Logger should start with zero counts")
	}
	l.RecordDeterministicClamp()
	l.RecordDeterministicClamp()
	l.RecordReflection()
	if l.NDeterministicClamps() != 2 {
		tst.Fatalf("expected 2 deterministic clamps, got %d", l.NDeterministicClamps())
	}
	if l.NReflections() != 1 {
		tst.Fatalf("expected 1 reflection, got %d", l.NReflections())
	}
	l.WriteBoundaryProtocolAppearance()
	l.Message("a plain message")
	l.Error("something recoverable happened")
	l.Close()
}

func Test_timesWord(tst *testing.T) {
	if timesWord(1) != "time." {
		tst.Fatalf("expected singular wording for 1")
	}
	if timesWord(0) != "times." || timesWord(2) != "times." {
		tst.Fatalf("expected plural wording for 0 and 2")
	}
}
