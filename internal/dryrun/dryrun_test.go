package dryrun

import (
	"context"
	"strings"
	"testing"
)

func TestWithDryRun(t *testing.T) {
	ctx := WithDryRun(context.Background(), true)
	if !IsEnabled(ctx) {
		t.Error("IsEnabled should report true after WithDryRun(true)")
	}
}

func TestIsEnabled_DefaultFalse(t *testing.T) {
	if IsEnabled(context.Background()) {
		t.Error("IsEnabled should report false on a bare context")
	}
}

func TestWithDryRun_Disabled(t *testing.T) {
	ctx := WithDryRun(context.Background(), false)
	if IsEnabled(ctx) {
		t.Error("IsEnabled should report false after WithDryRun(false)")
	}
}

func TestPreview_Write(t *testing.T) {
	p := &Preview{
		Operation: "upload",
		Target:    "screenshot.png",
	}
	p.AddField("access_policy", "only_me")
	p.AddField("title", "login page")

	var buf strings.Builder
	p.Write(&buf)

	output := buf.String()
	if !strings.Contains(output, "[DRY-RUN] Would upload screenshot.png") {
		t.Errorf("preview missing header: %q", output)
	}
	if !strings.Contains(output, "access_policy: only_me") {
		t.Errorf("preview missing field: %q", output)
	}
}

func TestPreview_FieldOrder(t *testing.T) {
	p := &Preview{Operation: "upload", Target: "a.png"}
	p.AddField("first", 1)
	p.AddField("second", 2)
	p.AddField("third", 3)

	var buf strings.Builder
	p.Write(&buf)

	output := buf.String()
	if strings.Index(output, "first") > strings.Index(output, "second") ||
		strings.Index(output, "second") > strings.Index(output, "third") {
		t.Errorf("fields should render in insertion order: %q", output)
	}
}

func TestPreview_WriteWithWarnings(t *testing.T) {
	p := &Preview{
		Operation: "delete",
		Target:    "capture abc123",
		Warnings:  []string{"deletion cannot be undone"},
	}

	var buf strings.Builder
	p.Write(&buf)

	output := buf.String()
	if !strings.Contains(output, "! deletion cannot be undone") {
		t.Errorf("preview missing warning: %q", output)
	}
	if !strings.Contains(output, "No changes made") {
		t.Errorf("preview missing footer: %q", output)
	}
}
