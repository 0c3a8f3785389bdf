package delta

import (
	"sort"
	"testing"
)

// mustFingerprint fingerprints data or fails the test.
func mustFingerprint(t *testing.T, data []byte, blockSize uint64) []Block {
	t.Helper()
	blocks, err := Fingerprint(data, blockSize)
	if err != nil {
		t.Fatal("fingerprinting failed:", err)
	}
	return blocks
}

// mustDiff computes a diff or fails the test.
func mustDiff(t *testing.T, base []byte, blocks []Block, blockSize uint64) *PatchCommands {
	t.Helper()
	commands, err := Diff(base, blocks, blockSize)
	if err != nil {
		t.Fatal("diff failed:", err)
	}
	return commands
}

// verifyTiling verifies that the target ranges of a command set partition
// the reconstruction range exactly.
func verifyTiling(t *testing.T, commands *PatchCommands, otherLength uint64) {
	t.Helper()
	all := append(append([]CopyCmd(nil), commands.Base...), commands.Other...)
	sort.Slice(all, func(i, j int) bool {
		return all[i].Target < all[j].Target
	})
	var next uint64
	for _, cmd := range all {
		if cmd.Target != next {
			t.Fatal("target ranges do not tile: gap or overlap at", cmd.Target)
		}
		next += uint64(cmd.Size)
	}
	if next != otherLength {
		t.Fatal("target ranges do not cover reconstruction range:", next, "!=", otherLength)
	}
}

// TestDiffInvalidBlockSize verifies that a zero block size is rejected.
func TestDiffInvalidBlockSize(t *testing.T) {
	if _, err := Diff([]byte("base"), nil, 0); err == nil {
		t.Error("zero block size considered valid")
	}
}

// TestDiffIdentical verifies that identical inputs are detected as
// synchronized.
func TestDiffIdentical(t *testing.T) {
	data := []byte("the quick brown fox")
	blocks := mustFingerprint(t, data, 4)
	commands := mustDiff(t, data, blocks, 4)
	if !commands.Synchronized() {
		t.Error("identical inputs not detected as synchronized")
	}
}

// TestDiffPrepended verifies the expected command structure when the other
// sequence is the base with bytes prepended.
func TestDiffPrepended(t *testing.T) {
	base := []byte("abcdefgh")
	other := []byte("XXabcdefgh")
	blocks := mustFingerprint(t, other, 2)
	commands := mustDiff(t, base, blocks, 2)

	// The prepended bytes are residual; everything else copies from base.
	if len(commands.Other) != 1 {
		t.Fatal("incorrect residual command count:", len(commands.Other))
	}
	if cmd := commands.Other[0]; cmd.Target != 0 || cmd.Size != 2 {
		t.Error("residual command incorrect:", cmd)
	}
	if len(commands.Base) != 4 {
		t.Fatal("incorrect base command count:", len(commands.Base))
	}
	for i, cmd := range commands.Base {
		if cmd.Source != uint64(2*i) || cmd.Target != uint64(2*i+2) || cmd.Size != 2 {
			t.Error("base command", i, "incorrect:", cmd)
		}
	}
	verifyTiling(t, commands, uint64(len(other)))
}

// TestDiffInteriorMutation verifies the expected command structure when the
// other sequence mutates bytes in the interior of the base. Only
// block-aligned regions of the other sequence can match, so the mutation
// also drags its neighboring block contents into the residual.
func TestDiffInteriorMutation(t *testing.T) {
	base := []byte("abcdefgh")
	other := []byte("abcXXfgh")
	blocks := mustFingerprint(t, other, 2)
	commands := mustDiff(t, base, blocks, 2)

	// "ab" and "gh" match; "cX" and "Xf" are residual.
	if len(commands.Base) != 2 {
		t.Fatal("incorrect base command count:", len(commands.Base))
	}
	if cmd := commands.Base[0]; cmd.Source != 0 || cmd.Target != 0 || cmd.Size != 2 {
		t.Error("first base command incorrect:", cmd)
	}
	if cmd := commands.Base[1]; cmd.Source != 6 || cmd.Target != 6 || cmd.Size != 2 {
		t.Error("second base command incorrect:", cmd)
	}
	if len(commands.Other) != 2 {
		t.Fatal("incorrect residual command count:", len(commands.Other))
	}
	if cmd := commands.Other[0]; cmd.Target != 2 || cmd.Size != 2 {
		t.Error("first residual command incorrect:", cmd)
	}
	if cmd := commands.Other[1]; cmd.Target != 4 || cmd.Size != 2 {
		t.Error("second residual command incorrect:", cmd)
	}
	verifyTiling(t, commands, uint64(len(other)))
}

// TestDiffEmptyBase verifies that diffing against an empty base yields pure
// residual commands.
func TestDiffEmptyBase(t *testing.T) {
	other := []byte("hello")
	blocks := mustFingerprint(t, other, 2)
	commands := mustDiff(t, nil, blocks, 2)
	if len(commands.Base) != 0 {
		t.Error("empty base produced base commands:", len(commands.Base))
	}
	if commands.NeedBytesFromOther() != uint64(len(other)) {
		t.Error(
			"residual does not cover other:",
			commands.NeedBytesFromOther(), "!=", len(other),
		)
	}
	verifyTiling(t, commands, uint64(len(other)))
}

// TestDiffEmptyOther verifies that diffing an empty other sequence yields
// no commands.
func TestDiffEmptyOther(t *testing.T) {
	commands := mustDiff(t, []byte("hello"), nil, 2)
	if !commands.Synchronized() {
		t.Error("empty other produced commands")
	}
}

// TestDiffDuplicateBaseContent verifies the tie-breaking behavior when base
// contains multiple block-aligned occurrences of the same content: the
// last-scanned offset wins.
func TestDiffDuplicateBaseContent(t *testing.T) {
	base := []byte("abcdabcd")
	other := []byte("abcd")
	blocks := mustFingerprint(t, other, 2)
	commands := mustDiff(t, base, blocks, 2)
	if len(commands.Other) != 0 {
		t.Fatal("duplicate content produced residual commands")
	}
	if len(commands.Base) != 2 {
		t.Fatal("incorrect base command count:", len(commands.Base))
	}
	if cmd := commands.Base[0]; cmd.Source != 4 || cmd.Target != 0 || cmd.Size != 2 {
		t.Error("first base command incorrect:", cmd)
	}
	if cmd := commands.Base[1]; cmd.Source != 6 || cmd.Target != 2 || cmd.Size != 2 {
		t.Error("second base command incorrect:", cmd)
	}
	verifyTiling(t, commands, uint64(len(other)))
}

// TestDiffUnalignedBaseMatch verifies that matches are found at arbitrary
// byte offsets within base, not just block-aligned ones.
func TestDiffUnalignedBaseMatch(t *testing.T) {
	base := []byte("...payload..")
	other := []byte("payl")
	blocks := mustFingerprint(t, other, 4)
	commands := mustDiff(t, base, blocks, 4)
	if len(commands.Base) != 1 {
		t.Fatal("unaligned content not matched")
	}
	if cmd := commands.Base[0]; cmd.Source != 3 || cmd.Target != 0 || cmd.Size != 4 {
		t.Error("base command incorrect:", cmd)
	}
}

// TestDiffShortFinalWindow verifies that the scan handles a base shorter
// than one block and matches the other sequence's short final block.
func TestDiffShortFinalWindow(t *testing.T) {
	base := []byte("xyz")
	other := []byte("01234xyz")
	blocks := mustFingerprint(t, other, 5)
	commands := mustDiff(t, base, blocks, 5)
	if len(commands.Base) != 1 {
		t.Fatal("short final block not matched against short base")
	}
	if cmd := commands.Base[0]; cmd.Source != 0 || cmd.Target != 5 || cmd.Size != 3 {
		t.Error("base command incorrect:", cmd)
	}
	verifyTiling(t, commands, uint64(len(other)))
}
