package main

import (
	"context"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"
)

func TestParseFlagsFromArgs(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want cliOptions
	}{
		{
			name: "no args",
			args: nil,
			want: cliOptions{},
		},
		{
			name: "all upload flags",
			args: []string{"-bucket", "my-bucket", "-key", "2026/08/30/report.pdf", "-file", "report.pdf", "-expires", "30m"},
			want: cliOptions{bucket: "my-bucket", key: "2026/08/30/report.pdf", file: "report.pdf", expires: "30m"},
		},
		{
			name: "profile and region",
			args: []string{"-p", "dev", "-r", "us-east-1"},
			want: cliOptions{profile: "dev", region: "us-east-1"},
		},
		{
			name: "long flags",
			args: []string{"--bucket", "b", "--key", "k"},
			want: cliOptions{bucket: "b", key: "k"},
		},
		{
			name: "value flag missing its value is ignored",
			args: []string{"-bucket"},
			want: cliOptions{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := parseFlagsFromArgs(tt.args)
			if got != tt.want {
				t.Errorf("parseFlagsFromArgs(%v) = %+v, want %+v", tt.args, got, tt.want)
			}
		})
	}
}

func TestFilterBuckets(t *testing.T) {
	names := []string{"prod-assets", "prod-logs", "staging-assets"}

	tests := []struct {
		name   string
		needle string
		want   []string
	}{
		{
			name:   "empty needle returns all",
			needle: "",
			want:   names,
		},
		{
			name:   "substring match",
			needle: "assets",
			want:   []string{"prod-assets", "staging-assets"},
		},
		{
			name:   "case insensitive",
			needle: "PROD",
			want:   []string{"prod-assets", "prod-logs"},
		},
		{
			name:   "no match",
			needle: "missing",
			want:   nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := filterBuckets(names, tt.needle)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("filterBuckets(%q) = %v, want %v", tt.needle, got, tt.want)
			}
		})
	}
}

func TestPromptModel_SkipsPresetSteps(t *testing.T) {
	tests := []struct {
		name                string
		bucket, key, file   string
		wantStep            promptStep
	}{
		{"nothing preset starts at bucket", "", "", "", stepBucket},
		{"bucket preset starts at key", "b", "", "", stepKey},
		{"bucket and key preset start at file", "b", "k", "", stepFile},
		{"everything preset is done", "b", "k", "f", stepDone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newPromptModel(context.Background(), tt.bucket, tt.key, tt.file)
			if m.step != tt.wantStep {
				t.Errorf("step = %v, want %v", m.step, tt.wantStep)
			}
		})
	}
}

func TestPromptModel_KeyPrefilledWithDatePrefix(t *testing.T) {
	m := newPromptModel(context.Background(), "my-bucket", "", "")

	wantPrefix := time.Now().Format("2006/01/02") + "/"
	if got := m.input.Value(); got != wantPrefix {
		t.Errorf("key input prefilled with %q, want %q", got, wantPrefix)
	}
}

func TestPromptModel_AcceptAdvancesSteps(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "upload.bin")
	if err := os.WriteFile(file, []byte("data"), 0644); err != nil {
		t.Fatal(err)
	}

	m := newPromptModel(context.Background(), "", "", "")

	m.input.SetValue("my-bucket")
	m.accept()
	if m.step != stepKey {
		t.Fatalf("after bucket accept, step = %v, want %v", m.step, stepKey)
	}
	if m.bucket != "my-bucket" {
		t.Errorf("bucket = %q, want my-bucket", m.bucket)
	}
	if !strings.HasSuffix(m.input.Value(), "/") {
		t.Errorf("key input %q should end with a date prefix slash", m.input.Value())
	}

	m.input.SetValue("2026/08/30/upload.bin")
	m.accept()
	if m.step != stepFile {
		t.Fatalf("after key accept, step = %v, want %v", m.step, stepFile)
	}

	m.input.SetValue(file)
	_, cmd := m.accept()
	if m.step != stepDone {
		t.Fatalf("after file accept, step = %v, want %v", m.step, stepDone)
	}
	if m.file != file {
		t.Errorf("file = %q, want %q", m.file, file)
	}
	if cmd == nil {
		t.Error("expected quit command after final step")
	}
}

func TestPromptModel_AcceptRejectsEmptyValue(t *testing.T) {
	m := newPromptModel(context.Background(), "", "", "")

	m.input.SetValue("   ")
	m.accept()

	if m.step != stepBucket {
		t.Errorf("step advanced on empty value, got %v", m.step)
	}
	if m.errNote == "" {
		t.Error("expected an error note for empty value")
	}
}

func TestPromptModel_AcceptRejectsMissingFile(t *testing.T) {
	m := newPromptModel(context.Background(), "b", "k", "")

	m.input.SetValue(filepath.Join(t.TempDir(), "does-not-exist"))
	m.accept()

	if m.step != stepFile {
		t.Errorf("step advanced past missing file, got %v", m.step)
	}
	if m.errNote == "" {
		t.Error("expected an error note for missing file")
	}
}

func TestPromptModel_AcceptRejectsDirectory(t *testing.T) {
	m := newPromptModel(context.Background(), "b", "k", "")

	m.input.SetValue(t.TempDir())
	m.accept()

	if m.step != stepFile {
		t.Errorf("step advanced past directory, got %v", m.step)
	}
	if m.errNote == "" {
		t.Error("expected an error note for directory")
	}
}
