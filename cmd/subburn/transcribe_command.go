package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"subburn/internal/pipeline"
)

func newTranscribeCommand(ctx *commandContext) *cobra.Command {
	var (
		outputFlag   string
		languageFlag string
		maxCharsFlag int
	)

	cmd := &cobra.Command{
		Use:   "transcribe <input>",
		Short: "Transcribe a video and write the captions as SRT without rendering",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.newLogger(cfg)
			if err != nil {
				return err
			}

			input := args[0]
			output := strings.TrimSpace(outputFlag)
			if output == "" {
				output = srtPathFor(input)
			}

			p, cleanup, err := newPipeline(cfg, logger)
			if err != nil {
				return err
			}
			defer cleanup()

			runCtx, cancel := signalContext()
			defer cancel()

			segments, err := p.Transcribe(runCtx, pipeline.Request{
				Input:    input,
				Language: languageFlag,
				MaxChars: maxCharsFlag,
				SRTOut:   output,
			})
			if err != nil {
				return err
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

func srtPathFor(input string) string {
	if idx := strings.LastIndex(input, "."); idx > 0 {
		return input[:idx] + ".srt"
	}
	return input + ".srt"
}
