package main

import (
	"bytes"
	"errors"
	"testing"

	"github.com/retroenv/retrogolib/assert"
)

func TestParseOptions(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		want    Options
		wantErr bool
	}{
		{
			name: "defaults",
			args: []string{"pong.ch8"},
			want: Options{ROM: "pong.ch8", Hz: 500, Scale: 10, OnFault: faultHalt},
		},
		{
			name: "no rom",
			args: nil,
			want: Options{Hz: 500, Scale: 10, OnFault: faultHalt},
		},
		{
			name: "everything",
			args: []string{"-seed", "42", "-hz", "700", "-scale", "4", "-term", "-onfault", "SKIP", "-debug", "brix.ch8"},
			want: Options{ROM: "brix.ch8", Seed: 42, Hz: 700, Scale: 4, Term: true, OnFault: faultSkip, Debug: true},
		},
		{
			name:    "two roms",
			args:    []string{"a.ch8", "b.ch8"},
			wantErr: true,
		},
		{
			name:    "zero hz",
			args:    []string{"-hz", "0", "a.ch8"},
			wantErr: true,
		},
		{
			name:    "hz too fast",
			args:    []string{"-hz", "2000000000", "a.ch8"},
			wantErr: true,
		},
		{
			name: "fastest hz",
			args: []string{"-hz", "1000000", "a.ch8"},
			want: Options{ROM: "a.ch8", Hz: 1000000, Scale: 10, OnFault: faultHalt},
		},
		{
			name:    "negative scale",
			args:    []string{"-scale", "-1", "a.ch8"},
			wantErr: true,
		},
		{
			name:    "bad policy",
			args:    []string{"-onfault", "ignore", "a.ch8"},
			wantErr: true,
		},
		{
			name:    "terminal without rom",
			args:    []string{"-term"},
			wantErr: true,
		},
		{
			name:    "unknown flag",
			args:    []string{"-fast", "a.ch8"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts, err := ParseOptions(tt.args)
			if tt.wantErr {
				var usageErr *UsageError
				assert.True(t, errors.As(err, &usageErr))
				return
			}

			assert.NoError(t, err)
			assert.Equal(t, tt.want, opts)
		})
	}
}

func TestUsageError(t *testing.T) {
	_, err := ParseOptions([]string{"-hz", "0"})

	var usageErr *UsageError
	assert.True(t, errors.As(err, &usageErr))

	var buf bytes.Buffer
	usageErr.ShowUsage(&buf)

	assert.Contains(t, buf.String(), "-hz must be between 1 and 1000000")
	assert.Contains(t, buf.String(), "usage: chip8")
	assert.Contains(t, buf.String(), "-onfault")
}
