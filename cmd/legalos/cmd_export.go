package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
)

var exportFlags struct {
	caseID string
	output string
}

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write a case brief to a .docx file",
	RunE:  runExport,
}

func init() {
	f := exportCmd.Flags()
	f.StringVar(&exportFlags.caseID, "case", "", "Case ID (required)")
	f.StringVarP(&exportFlags.output, "output", "o", "", "Output path; defaults to the brief's suggested name")
	_ = exportCmd.MarkFlagRequired("case")
}

func runExport(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	a, err := newApp(ctx)
	if err != nil {
		return err
	}
	defer a.Close()

	var buf bytes.Buffer
	name, err := a.cases.Export(ctx, exportFlags.caseID, &buf)
	if err != nil {
		return fmt.Errorf("export case %s: %w", exportFlags.caseID, err)
	}

	path := exportFlags.output
	if path == "" {
		path = filepath.Base(name)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Brief: %s\n", path)
	return nil
}
