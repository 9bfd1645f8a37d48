package main

import (
	"bytes"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v2"

	"github.com/simonhull/tjachart"
)

const fixture = "../../internal/tja/testdata/ready_to.tja"

func TestCommands(t *testing.T) {
	tests := [][]string{
		{"info", fixture},
		{"--strict", "info", fixture},
		{"--encoding", "utf-8", "notes", "--course", "hard", "--barlines", fixture},
		{"notes", "-c", "0", fixture},
	}

	for _, args := range tests {
		t.Run(args[0], func(t *testing.T) {
			err := newApp().Run(append([]string{"tja-dump"}, args...))
			require.NoError(t, err)
		})
	}
}

func TestVersionCommand(t *testing.T) {
	var out bytes.Buffer
	app := newApp()
	app.Writer = &out

	require.NoError(t, app.Run([]string{"tja-dump", "version"}))
	assert.Contains(t, out.String(), "tja-dump "+tjachart.Version)
	assert.Contains(t, out.String(), runtime.Version())
}

func TestCommandErrors(t *testing.T) {
	// cli.Exit errors would otherwise end the test binary
	orig := cli.OsExiter
	cli.OsExiter = func(int) {}
	t.Cleanup(func() { cli.OsExiter = orig })

	tests := []struct {
		name string
		args []string
	}{
		{"missing arg", []string{"info"}},
		{"bad encoding", []string{"--encoding", "latin1", "info", fixture}},
		{"bad course", []string{"notes", "--course", "extreme", fixture}},
		{"no p2", []string{"notes", "--p2", fixture}},
		{"missing chart", []string{"info", "does-not-exist.tja"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := newApp().Run(append([]string{"tja-dump"}, tt.args...))
			assert.Error(t, err)
		})
	}
}

func TestFormatSeconds(t *testing.T) {
	assert.Equal(t, "0 seconds", formatSeconds(0.2))
	assert.Equal(t, "1 minute 30 seconds", formatSeconds(90))
	assert.Equal(t, "2 seconds", formatSeconds(1.6))
}
