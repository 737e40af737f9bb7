package main

import (
	"bytes"
	"strings"
	"testing"
)

func TestRun_Help(t *testing.T) {
	var stdout, stderr bytes.Buffer
	if code := run([]string{"--help"}, &stdout, &stderr); code != 0 {
		t.Fatalf("run(--help) = %d, want 0", code)
	}
	if !strings.Contains(stderr.String(), "--cache") {
		t.Fatalf("usage missing --cache flag:\n%s", stderr.String())
	}
}

func TestRun_RejectsBadInvocations(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"unknown flag", []string{"--nope"}},
		{"positional argument", []string{"boards"}},
		{"board without print", []string{"--board", "b1"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var stdout, stderr bytes.Buffer
			if code := run(tt.args, &stdout, &stderr); code != 2 {
				t.Fatalf("run(%v) = %d, want 2", tt.args, code)
			}
		})
	}
}

func TestRun_ReportsRunErrors(t *testing.T) {
	var stdout, stderr bytes.Buffer
	code := run([]string{"--print", "--format", "xml"}, &stdout, &stderr)
	if code != 1 {
		t.Fatalf("run = %d, want 1", code)
	}
	if !strings.Contains(stderr.String(), "xml") {
		t.Fatalf("stderr = %q, want format error", stderr.String())
	}
}
