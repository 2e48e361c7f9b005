package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/banshee-data/triplclust/internal/config"
	"github.com/banshee-data/triplclust/internal/hcluster"
)

func TestParseArgs_Defaults(t *testing.T) {
	opts, err := parseArgs([]string{"points.csv"})
	require.NoError(t, err)

	assert.Equal(t, "points.csv", opts.infile)
	assert.Equal(t, config.Scaled{Value: 2, DNN: true}, opts.params.Radius)
	assert.Equal(t, config.Scaled{Value: 0.3, DNN: true}, opts.params.Scale)
	assert.Equal(t, 19, opts.params.K)
	assert.Equal(t, 2, opts.params.N)
	assert.Equal(t, 0.03, opts.params.Alpha)
	assert.True(t, opts.params.AutoThreshold)
	assert.Equal(t, 5, opts.params.MinTriplets)
	assert.False(t, opts.params.SplitGaps)
	assert.Equal(t, hcluster.Single, opts.params.Linkage)
	assert.Equal(t, byte(' '), opts.delimiter)
	assert.Equal(t, 0, opts.verbose)
}

func TestParseArgs_AllOptions(t *testing.T) {
	opts, err := parseArgs([]string{
		"-r", "1.5", "-k", "7", "-n", "3", "-a", "0.1",
		"-s", "0.5dnn", "-t", "2.5", "-m", "4",
		"-dmax", "2dnn", "-link", "average", "-ordered",
		"-delim", ",", "-skip", "2", "-maxpoints", "500",
		"-oprefix", "out", "-gnuplot", "-vv",
		"in.csv",
	})
	require.NoError(t, err)

	assert.Equal(t, config.Scaled{Value: 1.5}, opts.params.Radius)
	assert.Equal(t, config.Scaled{Value: 0.5, DNN: true}, opts.params.Scale)
	assert.Equal(t, 7, opts.params.K)
	assert.Equal(t, 3, opts.params.N)
	assert.False(t, opts.params.AutoThreshold)
	assert.Equal(t, 2.5, opts.params.Threshold)
	assert.Equal(t, 4, opts.params.MinTriplets)
	assert.True(t, opts.params.SplitGaps)
	assert.Equal(t, config.Scaled{Value: 2, DNN: true}, opts.params.DMax)
	assert.Equal(t, hcluster.Average, opts.params.Linkage)
	assert.True(t, opts.params.Ordered)
	assert.Equal(t, byte(','), opts.delimiter)
	assert.Equal(t, 2, opts.skip)
	assert.Equal(t, 500, opts.maxPoints)
	assert.Equal(t, "out", opts.oprefix)
	assert.True(t, opts.gnuplot)
	assert.Equal(t, 2, opts.verbose)
}

func TestParseArgs_Errors(t *testing.T) {
	cases := [][]string{
		{},                                  // missing infile
		{"-r", "abc", "in.csv"},             // bad radius
		{"-t", "2dnn", "in.csv"},            // threshold cannot be dNN-scaled
		{"-link", "ward", "in.csv"},         // unknown linkage
		{"-delim", "ab", "in.csv"},          // multi-char delimiter
		{"-unknown", "in.csv"},              // unknown option
		{"-dmax", "wide", "in.csv"},         // bad dmax
		{"a.csv", "b.csv"},                  // two positional args
	}
	for _, args := range cases {
		_, err := parseArgs(args)
		assert.Errorf(t, err, "args %v", args)
	}
}

func TestParseArgs_NegativeSkipIgnored(t *testing.T) {
	opts, err := parseArgs([]string{"-skip", "-3", "in.csv"})
	require.NoError(t, err)
	assert.Equal(t, 0, opts.skip)
}

func TestParseArgs_DMaxNone(t *testing.T) {
	opts, err := parseArgs([]string{"-dmax", "none", "in.csv"})
	require.NoError(t, err)
	assert.False(t, opts.params.SplitGaps)
}

func writeInput(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "points.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func collinearInput() string {
	var sb strings.Builder
	for i := 0; i < 10; i++ {
		fmt.Fprintf(&sb, "%d 0 0\n", i)
	}
	return sb.String()
}

func TestRun_EndToEndCSV(t *testing.T) {
	path := writeInput(t, collinearInput())

	var out bytes.Buffer
	code := run([]string{path}, &out)
	require.Equal(t, exitOK, code)

	lines := strings.Split(strings.TrimRight(out.String(), "\n"), "\n")
	require.Len(t, lines, 12) // 2 header lines + 10 points
	for _, line := range lines[2:] {
		assert.True(t, strings.HasSuffix(line, ",0"), "line %q", line)
	}
}

func TestRun_EndToEndGnuplot(t *testing.T) {
	path := writeInput(t, collinearInput())

	var out bytes.Buffer
	code := run([]string{"-gnuplot", path}, &out)
	require.Equal(t, exitOK, code)
	assert.Contains(t, out.String(), "splot")
	assert.Contains(t, out.String(), "title 'curve 0'")
}

func TestRun_OutputPrefix(t *testing.T) {
	path := writeInput(t, collinearInput())
	prefix := filepath.Join(t.TempDir(), "result")

	var out bytes.Buffer
	code := run([]string{"-oprefix", prefix, "-gnuplot", path}, &out)
	require.Equal(t, exitOK, code)
	assert.Empty(t, out.String())
	assert.FileExists(t, prefix+".csv")
	assert.FileExists(t, prefix+".gnuplot")
}

func TestRun_MissingFile(t *testing.T) {
	var out bytes.Buffer
	assert.Equal(t, exitInput, run([]string{"no-such-file.csv"}, &out))
}

func TestRun_EmptyCloud(t *testing.T) {
	path := writeInput(t, "# nothing here\n")
	var out bytes.Buffer
	assert.Equal(t, exitInput, run([]string{path}, &out))
}

func TestRun_DuplicatePointsFatalWithDNN(t *testing.T) {
	path := writeInput(t, "1 1 1\n1 1 1\n1 1 1\n1 1 1\n")
	var out bytes.Buffer
	assert.Equal(t, exitSemantic, run([]string{path}, &out))
}

func TestRun_PointLimit(t *testing.T) {
	path := writeInput(t, collinearInput())
	var out bytes.Buffer
	assert.Equal(t, exitSemantic, run([]string{"-maxpoints", "5", path}, &out))
}

func TestRun_UsageError(t *testing.T) {
	var out bytes.Buffer
	assert.Equal(t, exitUsage, run([]string{"-link", "ward", "x.csv"}, &out))
}

func TestRun_RecordsDatabase(t *testing.T) {
	path := writeInput(t, collinearInput())
	dbPath := filepath.Join(t.TempDir(), "runs.db")

	var out bytes.Buffer
	code := run([]string{"-db", dbPath, path}, &out)
	require.Equal(t, exitOK, code)
	assert.FileExists(t, dbPath)
}
