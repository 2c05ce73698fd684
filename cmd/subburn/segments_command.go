package main

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"subburn/internal/pipeline"
	"subburn/internal/transcript"
)

func newSegmentsCommand(ctx *commandContext) *cobra.Command {
	segmentsCmd := &cobra.Command{
		Use:   "segments",
		Short: "Inspect and export caption segments",
	}

	segmentsCmd.AddCommand(newSegmentsListCommand(ctx))
	segmentsCmd.AddCommand(newSegmentsExportCommand(ctx))
	return segmentsCmd
}

func newSegmentsListCommand(ctx *commandContext) *cobra.Command {
	var languageFlag string
	var maxCharsFlag int

	cmd := &cobra.Command{
		Use:   "list <input>",
		Short: "Print the caption segments of an SRT file or a video",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			segments, err := loadSegments(ctx, args[0], languageFlag, maxCharsFlag)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, renderSegmentsTable(segments))
			fmt.Fprintf(out, "%d segments\n", len(segments))
			return nil
		},
	}

	cmd.Flags().StringVarP(&languageFlag, "language", "l", "", "Spoken language hint for recognition")
	cmd.Flags().IntVar(&maxCharsFlag, "max-chars", 0, "Maximum characters per caption")
	return cmd
}

func newSegmentsExportCommand(ctx *commandContext) *cobra.Command {
	var (
		outputFlag   string
		languageFlag string
		maxCharsFlag int
	)

	cmd := &cobra.Command{
		Use:   "export <input>",
		Short: "Export caption segments as an SRT file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			segments, err := loadSegments(ctx, args[0], languageFlag, maxCharsFlag)
			if err != nil {
				return err
			}

			output := strings.TrimSpace(outputFlag)
			if output == "" {
				output = srtPathFor(args[0])
			}
			if err := transcript.WriteSRTFile(output, segments); err != nil {
				return fmt.Errorf("write srt: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s (%d captions)\n", output, len(segments))
			return nil
		},
	}

	cmd.Flags().StringVarP(&outputFlag, "output", "o", "", "SRT output path (default: <input>.srt)")
	cmd.Flags().StringVarP(&languageFlag, "language", "l", "", "Spoken language hint for recognition")
	cmd.Flags().IntVar(&maxCharsFlag, "max-chars", 0, "Maximum characters per caption")
	return cmd
}

// loadSegments reads captions straight from an SRT file, or transcribes
// the input when it is a video.
func loadSegments(ctx *commandContext, input, language string, maxChars int) ([]transcript.Segment, error) {
	if strings.EqualFold(filepath.Ext(input), ".srt") {
		segments, err := transcript.ReadSRTFile(input)
		if err != nil {
			return nil, fmt.Errorf("read srt: %w", err)
		}
		if err := transcript.ValidateAll(segments); err != nil {
			return nil, err
		}
		return segments, nil
	}

	cfg, err := ctx.ensureConfig()
	if err != nil {
		return nil, err
	}
	logger, err := ctx.newLogger(cfg)
	if err != nil {
		return nil, err
	}
	p, cleanup, err := newPipeline(cfg, logger)
	if err != nil {
		return nil, err
	}
	defer cleanup()

	runCtx, cancel := signalContext()
	defer cancel()

	return p.Transcribe(runCtx, pipeline.Request{
		Input:    input,
		Language: language,
		MaxChars: maxChars,
	})
}
