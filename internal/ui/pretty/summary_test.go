package pretty_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yaklabco/typfmt/internal/ui/pretty"
	"github.com/yaklabco/typfmt/pkg/config"
	"github.com/yaklabco/typfmt/pkg/runner"
)

func TestFormatSummary(t *testing.T) {
	t.Parallel()

	styles := pretty.NewStyles(false)

	tests := []struct {
		name  string
		stats runner.Stats
		mode  config.OutputMode
		want  string
	}{
		{
			name:  "check with changes",
			stats: runner.Stats{FilesFormatted: 7, FilesChanged: 2},
			mode:  config.OutputCheck,
			want:  "2 files would be reformatted, 5 files already formatted\n",
		},
		{
			name:  "in place",
			stats: runner.Stats{FilesFormatted: 3, FilesChanged: 1, FilesWritten: 1},
			mode:  config.OutputInPlace,
			want:  "1 file reformatted, 2 files already formatted\n",
		},
		{
			name:  "skipped write",
			stats: runner.Stats{FilesFormatted: 1, FilesChanged: 1, FilesSkipped: 1},
			mode:  config.OutputInPlace,
			want:  "1 file skipped\n",
		},
		{
			name:  "failures",
			stats: runner.Stats{FilesFormatted: 1, FilesFailed: 1},
			mode:  config.OutputDiff,
			want:  "1 file already formatted, 1 file failed\n",
		},
		{
			name: "nothing",
			mode: config.OutputCheck,
			want: "No files formatted\n",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tc.want, styles.FormatSummary(tc.stats, tc.mode))
		})
	}
}

func TestFormatLines(t *testing.T) {
	t.Parallel()

	styles := pretty.NewStyles(false)
	assert.Equal(t, "Would reformat: a.typ\n", styles.FormatCheckLine("a.typ"))
	assert.Equal(t, "a.typ: error: boom\n", styles.FormatFailure("a.typ", errors.New("boom")))
}
