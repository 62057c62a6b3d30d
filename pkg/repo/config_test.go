package repo

import (
	"os"
	"path/filepath"
	"testing"
)

func TestConfigSetAndGetRoundTrip(t *testing.T) {
	dir := t.TempDir()
	r, err := Init(dir)
	if err != nil {
		t.Fatalf("Init: %v", err)
	}

	if err := r.ConfigSet("user.name", "Ada", false); err != nil {
		t.Fatalf("ConfigSet: %v", err)
	}

	value, ok, err := r.ConfigGet("user.name")
	if err != nil {
		t.Fatalf("ConfigGet: %v", err)
	}
	if !ok || value != "Ada" {
		t.Fatalf("ConfigGet = (%q, %v), want (\"Ada\", true)", value, ok)
	}

	data, err := os.ReadFile(filepath.Join(r.MetaDir, "config"))
	if err != nil {
		t.Fatalf("ReadFile config: %v", err)
	}
	want := "[user]\nname = Ada\n"
	if string(data) != want {
		t.Errorf("config file = %q, want %q", data, want)
	}
}

func TestConfigMissingKeyNotOK(t *testing.T) {
	dir := t.TempDir()
	r, err := Init(dir)
	if err != nil {
		t.Fatalf("Init: %v", err)
	}
	_, ok, err := r.ConfigGet("nonexistent.key")
	if err != nil {
		t.Fatalf("ConfigGet: %v", err)
	}
	if ok {
		t.Error("expected ok=false for a key never set")
	}
}

func TestConfigPreservesOtherKeysOnUpdate(t *testing.T) {
	dir := t.TempDir()
	r, err := Init(dir)
	if err != nil {
		t.Fatalf("Init: %v", err)
	}
	if err := r.ConfigSet("user.name", "Ada", false); err != nil {
		t.Fatalf("ConfigSet: %v", err)
	}
	if err := r.ConfigSet("user.email", "ada@example.com", false); err != nil {
		t.Fatalf("ConfigSet: %v", err)
	}

	name, _, _ := r.ConfigGet("user.name")
	email, _, _ := r.ConfigGet("user.email")
	if name != "Ada" || email != "ada@example.com" {
		t.Errorf("got name=%q email=%q", name, email)
	}
}

func TestConfigTopLevelKeyNoSection(t *testing.T) {
	dir := t.TempDir()
	r, err := Init(dir)
	if err != nil {
		t.Fatalf("Init: %v", err)
	}
	if err := r.ConfigSet("editor", "vim", false); err != nil {
		t.Fatalf("ConfigSet: %v", err)
	}
	value, ok, err := r.ConfigGet("editor")
	if err != nil || !ok || value != "vim" {
		t.Fatalf("ConfigGet(editor) = (%q, %v, %v)", value, ok, err)
	}
}
