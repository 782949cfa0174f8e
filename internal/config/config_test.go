package config

import (
	"testing"

	"github.com/Fisch03/thanatos/internal/options"
	"github.com/retroenv/retrogolib/assert"
)

func TestCreateLogger(t *testing.T) {
	assert.NotNil(t, CreateLogger(false, false))
	assert.NotNil(t, CreateLogger(true, true))
}

func TestWorkers(t *testing.T) {
	assert.Equal(t, 3, Workers(options.Program{Flags: options.Flags{Workers: 3}}))
	assert.True(t, Workers(options.Program{}) > 0)
}

func TestOutputDir(t *testing.T) {
	tests := []struct {
		name     string
		opts     options.Program
		expected string
	}{
		{
			name:     "explicit",
			opts:     options.Program{Command: options.Scan, Parameters: options.Parameters{Output: "out"}},
			expected: "out",
		},
		{
			name:     "export default",
			opts:     options.Program{Command: options.Export},
			expected: DefaultExportDir,
		},
		{
			name:     "scan default",
			opts:     options.Program{Command: options.Scan},
			expected: "scan_0badf00d",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, OutputDir(tt.opts, 0x0badf00d))
		})
	}
}
