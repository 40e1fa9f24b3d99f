package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/agenthands/doccheck/internal/config"
	"github.com/agenthands/doccheck/internal/core"
	"github.com/agenthands/doccheck/internal/core/model"
	"github.com/agenthands/doccheck/internal/llm"
	"github.com/agenthands/doccheck/internal/report"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze <file> <file> [files...]",
	Short: "Detect contradictions between every pair of the given files",
	Args:  cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfgPath, _ := cmd.Flags().GetString("config")
		cfg, err := config.Resolve(cfgPath)
		if err != nil {
			return err
		}
		if n, _ := cmd.Flags().GetInt("concurrency"); n > 0 {
			cfg.Concurrency.Adjudicate = n
		}

		ctx := cmd.Context()
		client, err := llm.NewClient(ctx, cfg.LLM)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if path, _ := cmd.Flags().GetString("report"); path != "" {
			f, err := os.Create(path)
			if err != nil {
				return fmt.Errorf("failed to create report file: %w", err)
			}
			defer f.Close()
			out = f
		}

		asJSON, _ := cmd.Flags().GetBool("json")
		return runAnalyze(ctx, llm.Wrap(client, cfg), cfg, args, out, asJSON)
	},
}

func init() {
	analyzeCmd.Flags().String("report", "", "write the report to this file instead of stdout")
	analyzeCmd.Flags().Bool("json", false, "print conflict records as JSON")
	analyzeCmd.Flags().Int("concurrency", 0, "adjudications in flight (overrides config)")

	rootCmd.AddCommand(analyzeCmd)
}

func runAnalyze(ctx context.Context, client llm.LLMClient, cfg *config.Config, paths []string, out io.Writer, asJSON bool) error {
	docs, err := readDocuments(paths)
	if err != nil {
		return err
	}

	conflicts, err := core.NewDetector(client, cfg).DetectAll(ctx, docs)
	if err != nil {
		return err
	}
	if conflicts == nil {
		conflicts = []model.ConflictRecord{}
	}

	if asJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(conflicts)
	}
	_, err = io.WriteString(out, report.Render(conflicts))
	return err
}

func readDocuments(paths []string) ([]model.Document, error) {
	docs := make([]model.Document, 0, len(paths))
	for _, p := range paths {
		data, err := os.ReadFile(p)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", p, err)
		}
		docs = append(docs, model.Document{
			Name: filepath.Base(p),
			Text: strings.ToValidUTF8(string(data), ""),
		})
	}
	return docs, nil
}
