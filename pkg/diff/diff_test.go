package diff_test

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/typfmt/pkg/diff"
)

func TestComputeIdentical(t *testing.T) {
	t.Parallel()

	u := diff.Compute("main.typ", "= Title\n", "= Title\n")
	assert.Nil(t, u)
	assert.True(t, u.Empty())
	assert.Empty(t, u.String())
}

func TestComputeSingleChange(t *testing.T) {
	t.Parallel()

	u := diff.Compute("/doc/main.typ", "#f(a,b)\ntext\n", "#f(a, b)\ntext\n")
	require.False(t, u.Empty())

	want := "--- a/doc/main.typ\n" +
		"+++ b/doc/main.typ\n" +
		"@@ -1,2 +1,2 @@\n" +
		"-#f(a,b)\n" +
		"+#f(a, b)\n" +
		" text\n"
	if d := cmp.Diff(want, u.String()); d != "" {
		t.Errorf("unified diff mismatch (-want +got):\n%s", d)
	}
	assert.Equal(t, 1, u.Added)
	assert.Equal(t, 1, u.Removed)
}

func TestComputeSeparatesDistantChanges(t *testing.T) {
	t.Parallel()

	var before, after []string
	for i := range 20 {
		line := strings.Repeat("x", i+1)
		before = append(before, line)
		after = append(after, line)
	}
	after[1] = "changed early"
	after[18] = "changed late"

	u := diff.Compute("a.typ", strings.Join(before, "\n")+"\n", strings.Join(after, "\n")+"\n")
	require.Len(t, u.Hunks, 2)

	got := []string{u.Hunks[0].Header(), u.Hunks[1].Header()}
	want := []string{"@@ -1,5 +1,5 @@", "@@ -16,5 +16,5 @@"}
	if d := cmp.Diff(want, got); d != "" {
		t.Errorf("hunk headers mismatch (-want +got):\n%s", d)
	}
}

func TestComputeMergesNearbyChanges(t *testing.T) {
	t.Parallel()

	before := "a\nb\nc\nd\ne\nf\n"
	after := "A\nb\nc\nd\ne\nF\n"

	u := diff.Compute("a.typ", before, after)
	require.Len(t, u.Hunks, 1)
	assert.Equal(t, "@@ -1,6 +1,6 @@", u.Hunks[0].Header())
}

func TestComputeInsertionIntoEmptyFile(t *testing.T) {
	t.Parallel()

	u := diff.Compute("new.typ", "", "x\n")
	require.Len(t, u.Hunks, 1)
	assert.Equal(t, "@@ -0,0 +1,1 @@", u.Hunks[0].Header())
}

func TestComputeMissingFinalNewline(t *testing.T) {
	t.Parallel()

	u := diff.Compute("a.typ", "x", "x\n")
	assert.Equal(t,
		"--- a/a.typ\n+++ b/a.typ\n@@ -1,1 +1,1 @@\n-x\n\\ No newline at end of file\n+x\n",
		u.String())
}
