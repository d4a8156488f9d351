package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/gobeaver/evidencekit"
	"github.com/gobeaver/evidencekit/filevalidator"
	"github.com/gobeaver/evidencekit/logger"
)

type rootOptions struct {
	prefix string
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	cmd := &cobra.Command{
		Use:           "evidencekit",
		Short:         "Verify and normalize evidence files",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.PersistentFlags().StringVar(&opts.prefix, "env-prefix", "BEAVER_", "environment variable prefix for configuration")

	cmd.AddCommand(newProcessCmd(opts), newDetectCmd())
	return cmd
}

type processOptions struct {
	declaredType string
	out          string
	progress     bool
}

// processReport is the JSON written to stdout by the process command
type processReport struct {
	ID                string                 `json:"id"`
	Category          filevalidator.Category `json:"category"`
	MIMEType          string                 `json:"mime_type"`
	OriginalSize      int64                  `json:"original_size"`
	OutputSize        int64                  `json:"output_size"`
	Width             int                    `json:"width,omitempty"`
	Height            int                    `json:"height,omitempty"`
	Quality           int                    `json:"quality,omitempty"`
	FastPath          bool                   `json:"fast_path,omitempty"`
	Checksum          string                 `json:"checksum"`
	ChecksumAlgorithm string                 `json:"checksum_algorithm"`
	Output            string                 `json:"output,omitempty"`
}

// errorReport is the JSON written to stdout when processing is rejected
type errorReport struct {
	Code             evidencekit.ErrorCode `json:"code"`
	Message          string                `json:"message"`
	LocalizedMessage string                `json:"localized_message"`
}

func newProcessCmd(root *rootOptions) *cobra.Command {
	opts := &processOptions{}
	cmd := &cobra.Command{
		Use:   "process <file>",
		Short: "Validate a file against its declared type and normalize images",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runProcess(cmd, root, opts, args[0])
		},
	}
	cmd.Flags().StringVarP(&opts.declaredType, "type", "t", "", "declared MIME type (default: from the file extension)")
	cmd.Flags().StringVarP(&opts.out, "out", "o", "", "write the processed file here")
	cmd.Flags().BoolVar(&opts.progress, "progress", false, "print progress to stderr")
	return cmd
}

func runProcess(cmd *cobra.Command, root *rootOptions, opts *processOptions, path string) error {
	cfg, err := evidencekit.LoadConfig(root.prefix)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	logger.InitWriter(cmd.ErrOrStderr(), cfg.LogLevel, cfg.LogFormat)

	p, err := evidencekit.New(cfg)
	if err != nil {
		return err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}

	declared := opts.declaredType
	if declared == "" {
		declared = filevalidator.MIMETypeForExtension(filepath.Ext(path))
	}

	var onProgress evidencekit.ProgressFunc
	if opts.progress {
		onProgress = func(pct int) { fmt.Fprintf(cmd.ErrOrStderr(), "%3d%%\n", pct) }
	}

	res, err := p.Process(cmd.Context(), data, declared, onProgress)
	if err != nil {
		if e, ok := err.(*evidencekit.Error); ok {
			_ = writeJSON(cmd.OutOrStdout(), errorReport{Code: e.Code, Message: e.Message, LocalizedMessage: e.LocalizedMessage})
		}
		return err
	}

	if opts.out != "" {
		if err := os.WriteFile(opts.out, res.Data, 0o600); err != nil {
			return fmt.Errorf("write %s: %w", opts.out, err)
		}
	}

	report := processReport{
		ID:                res.ID,
		Category:          res.Category,
		MIMEType:          res.MIMEType,
		OriginalSize:      int64(len(data)),
		OutputSize:        res.Size(),
		Checksum:          res.Checksum,
		ChecksumAlgorithm: string(res.ChecksumAlgorithm),
		Output:            opts.out,
	}
	if res.Stats != nil {
		report.Width = res.Stats.Width
		report.Height = res.Stats.Height
		report.Quality = res.Stats.Quality
		report.FastPath = res.Stats.FastPath
	}
	return writeJSON(cmd.OutOrStdout(), report)
}

func newDetectCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "detect <file>",
		Short: "Print the MIME type identified from a file's magic bytes",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer f.Close()

			mime, err := filevalidator.DetectMIME(f)
			if err != nil {
				return err
			}
			category, _ := filevalidator.DefaultSignatureRegistry().CategoryFor(mime)
			fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", mime, category)
			return nil
		},
	}
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
