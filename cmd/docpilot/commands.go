package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"docpilot/internal/config"
	"docpilot/internal/domain"
	"docpilot/internal/schema"
	"docpilot/internal/server"
	"docpilot/internal/service"
	"docpilot/pkg/logger"
)

// loadCore reads configuration and wires the services. Logs go to stderr so
// stdout carries only command output.
func loadCore(ctx context.Context) (*config.Config, *server.Core, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}
	logger.Init(&logger.Config{Level: cfg.Log.Level, Format: cfg.Log.Format, Output: os.Stderr})

	// The CLI is a single process run; conversations never outlive it.
	cfg.Session.Store = "memory"

	core, err := server.NewCore(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}
	return cfg, core, nil
}

// openDocument runs a local file through the same intake as an upload.
func openDocument(ctx context.Context, intake service.FileIntake, path string) (*domain.UploadedFile, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()

	size := int64(-1)
	if info, err := f.Stat(); err == nil {
		size = info.Size()
	}
	return intake.Accept(ctx, service.FileInput{
		Name: filepath.Base(path),
		Size: size,
		Body: f,
	})
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func serveCMD() *cobra.Command {
	var addr string
	serve := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP relay",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}
			logger.Init(&logger.Config{Level: cfg.Log.Level, Format: cfg.Log.Format})
			if addr != "" {
				cfg.Server.Port = addr
			}
			return server.Run(cfg)
		},
	}
	serve.Flags().StringVar(&addr, "addr", "", "listen address (default from DOCPILOT_SERVER_PORT)")
	return serve
}

func parseCMD() *cobra.Command {
	return &cobra.Command{
		Use:   "parse <file>",
		Short: "Parse a document and print its plain text",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			_, core, err := loadCore(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = core.Close() }()

			file, err := openDocument(ctx, core.Intake, args[0])
			if err != nil {
				return err
			}
			doc, err := core.Documents.ParseText(ctx, file)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), doc.PlainText)
			return err
		},
	}
}

func extractCMD() *cobra.Command {
	var schemaArg string
	extract := &cobra.Command{
		Use:   "extract <file>",
		Short: "Extract fields from a document",
		Long: "Extract fields described by --schema, which is either the path to a JSON Schema " +
			"file or the name of a built-in schema.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := resolveSchemaArg(schemaArg)
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			_, core, err := loadCore(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = core.Close() }()

			file, err := openDocument(ctx, core.Intake, args[0])
			if err != nil {
				return err
			}
			fields, err := core.Extraction.ExtractFields(ctx, file, s)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), fields)
		},
	}
	extract.Flags().StringVar(&schemaArg, "schema", "", "JSON Schema file or built-in schema name")
	_ = extract.MarkFlagRequired("schema")
	return extract
}

// resolveSchemaArg treats an existing path as a schema file and anything else
// as a built-in name.
func resolveSchemaArg(arg string) (*domain.ExtractionSchema, error) {
	if _, err := os.Stat(arg); err == nil {
		raw, err := os.ReadFile(arg)
		if err != nil {
			return nil, err
		}
		return schema.Resolve(string(raw), "")
	}
	return schema.Resolve("", arg)
}

func analyzeCMD() *cobra.Command {
	return &cobra.Command{
		Use:   "analyze <file>",
		Short: "Run the contract analysis pipeline and print the result",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			_, core, err := loadCore(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = core.Close() }()

			file, err := openDocument(ctx, core.Intake, args[0])
			if err != nil {
				return err
			}
			snap, err := core.Analysis.Analyze(ctx, uuid.Nil, file)
			if err != nil {
				return err
			}
			for _, w := range snap.Warnings {
				logger.Warn(ctx, w)
			}
			return printJSON(cmd.OutOrStdout(), snap.Analysis)
		},
	}
}
