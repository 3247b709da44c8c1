package main

import (
	"encoding/csv"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBenchCSV(t *testing.T) {
	code, stdout, stderr := runCLI(t, "bench", "--min", "3", "--max", "5", "--step", "1", "--passes", "2", "--workers", "2")
	require.Equal(t, 0, code, stderr)

	rows, err := csv.NewReader(strings.NewReader(stdout)).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 4)

	assert.Equal(t, []string{"qubits", "sim", "t0", "t1", "t_total"}, rows[0])
	for i, row := range rows[1:] {
		require.Len(t, row, 5)
		assert.Equal(t, strconv.Itoa(3+i), row[0])
		assert.Equal(t, "svsim-w2", row[1])
		for _, cell := range row[2:] {
			v, err := strconv.ParseFloat(cell, 64)
			require.NoError(t, err)
			assert.GreaterOrEqual(t, v, 0.0)
		}
	}
}

func TestBenchStepSkipsMax(t *testing.T) {
	code, stdout, _ := runCLI(t, "bench", "--min", "3", "--max", "6", "--step", "2", "--passes", "1")
	require.Equal(t, 0, code)

	lines := strings.Split(strings.TrimSpace(stdout), "\n")
	require.Len(t, lines, 3)
	assert.True(t, strings.HasPrefix(lines[1], "3,"))
	assert.True(t, strings.HasPrefix(lines[2], "5,"))
}

func TestBenchInvalidFlags(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"min below three", []string{"--min", "2"}, "--min must be at least 3"},
		{"max below min", []string{"--min", "8", "--max", "6"}, "below --min"},
		{"max too large", []string{"--max", "64"}, "--max must be at most"},
		{"zero step", []string{"--step", "0"}, "--step must be positive"},
		{"zero passes", []string{"--passes", "0"}, "--passes must be positive"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, stdout, stderr := runCLI(t, append([]string{"bench"}, tt.args...)...)
			assert.Equal(t, ExitCommandError, code)
			assert.Empty(t, stdout)
			assert.Contains(t, stderr, tt.want)
		})
	}
}
