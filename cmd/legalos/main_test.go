package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/nguyentantai21042004/legal-os/internal/config"
)

func TestEnsureDirectories(t *testing.T) {
	root := t.TempDir()
	cfg := &config.Config{Paths: config.PathsConfig{
		Temp:     filepath.Join(root, "temp"),
		Inbox:    filepath.Join(root, "in", "box"),
		Archived: filepath.Join(root, "archived"),
	}}

	if err := ensureDirectories(cfg); err != nil {
		t.Fatalf("ensureDirectories() error = %v", err)
	}
	for _, dir := range []string{cfg.Paths.Temp, cfg.Paths.Inbox, cfg.Paths.Archived} {
		if info, err := os.Stat(dir); err != nil || !info.IsDir() {
			t.Errorf("%s not created: %v", dir, err)
		}
	}
}

func TestExportWithoutBrief(t *testing.T) {
	root := t.TempDir()
	cfgFile := filepath.Join(root, "config.yaml")
	yaml := "paths:\n" +
		"  database: " + filepath.Join(root, "legalos.db") + "\n" +
		"  temp: " + filepath.Join(root, "temp") + "\n" +
		"  inbox: " + filepath.Join(root, "inbox") + "\n" +
		"  archived: " + filepath.Join(root, "archived") + "\n" +
		"  secrets: " + filepath.Join(root, "missing.yaml") + "\n" +
		"logging:\n  level: error\n"
	if err := os.WriteFile(cfgFile, []byte(yaml), 0644); err != nil {
		t.Fatal(err)
	}

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs([]string{"export", "--config", cfgFile, "--case", "2f1c1d7e-3b8e-4c55-9d3a-0d7c0a1f5b11"})
	t.Cleanup(func() { rootCmd.SetArgs(nil) })

	err := rootCmd.Execute()
	if err == nil || !strings.Contains(err.Error(), "not found") {
		t.Errorf("Execute() error = %v, want not found", err)
	}
}
