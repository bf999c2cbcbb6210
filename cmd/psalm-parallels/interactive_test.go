// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/pdiddy/psalm-parallels/internal/relation"
	"github.com/pdiddy/psalm-parallels/pkg/types"
)

func promptSnapshot() types.Snapshot {
	return relation.BuildSnapshot(
		[][]string{{"2"}},
		[][]string{{"Dan 7:28"}},
	)
}

func TestPromptLoopLookup(t *testing.T) {
	in := strings.NewReader("psa 2\nquit\n")
	var out bytes.Buffer

	if err := promptLoop(in, &out, promptSnapshot()); err != nil {
		t.Fatal(err)
	}

	if !strings.Contains(out.String(), "Psa 2 relates to 1 reference(s)") {
		t.Errorf("output missing lookup result:\n%s", out.String())
	}
	if !strings.Contains(out.String(), "Dan 7:28") {
		t.Errorf("output missing related reference:\n%s", out.String())
	}
}

func TestPromptLoopRecoversFromFormatError(t *testing.T) {
	in := strings.NewReader("Hello\npsa 2\nquit\n")
	var out bytes.Buffer

	if err := promptLoop(in, &out, promptSnapshot()); err != nil {
		t.Fatal(err)
	}

	// The bad reference is reported and the loop keeps serving.
	if !strings.Contains(out.String(), "error: invalid reference") {
		t.Errorf("format error not reported:\n%s", out.String())
	}
	if !strings.Contains(out.String(), "Dan 7:28") {
		t.Errorf("loop did not continue past the error:\n%s", out.String())
	}
}

func TestPromptLoopDegradedAndEmpty(t *testing.T) {
	in := strings.NewReader("Psa 2:5\nRev 19:15\nquit\n")
	var out bytes.Buffer

	if err := promptLoop(in, &out, promptSnapshot()); err != nil {
		t.Fatal(err)
	}

	if !strings.Contains(out.String(), "showing results for Psa 2") {
		t.Errorf("degraded match not announced:\n%s", out.String())
	}
	if !strings.Contains(out.String(), "no relationships found for Rev 19:15") {
		t.Errorf("empty result not reported:\n%s", out.String())
	}
}

func TestPromptLoopEOF(t *testing.T) {
	var out bytes.Buffer
	if err := promptLoop(strings.NewReader(""), &out, promptSnapshot()); err != nil {
		t.Fatal(err)
	}
}

func TestVerifySnapshotAgreement(t *testing.T) {
	var out bytes.Buffer
	snap := relation.BuildSnapshot(
		[][]string{{"2"}, {"18"}, {"18"}},
		[][]string{{"Dan 7:28"}, {"2Sa 22:1"}, {"1Ch 16:7"}},
	)

	if got := verifySnapshot(snap, &out); got != 0 {
		t.Errorf("verifySnapshot = %d mismatches, want 0\n%s", got, out.String())
	}
}

func TestVerifySnapshotDetectsCorruption(t *testing.T) {
	var out bytes.Buffer
	snap := relation.BuildSnapshot(
		[][]string{{"2"}},
		[][]string{{"Dan 7:28"}},
	)
	// Corrupt the flattened index so the strategies disagree.
	snap.Index["Psa 2"] = []string{"Rev 19:15"}

	if got := verifySnapshot(snap, &out); got == 0 {
		t.Error("verifySnapshot missed a corrupted index")
	}
	if !strings.Contains(out.String(), "mismatch Psa 2") {
		t.Errorf("mismatch not reported:\n%s", out.String())
	}
}
