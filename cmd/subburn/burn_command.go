package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"subburn/internal/pipeline"
)

func newBurnCommand(ctx *commandContext) *cobra.Command {
	var (
		outputFlag    string
		languageFlag  string
		maxCharsFlag  int
		srtOutFlag    string
		editedSRTFlag string
		keepTempFlag  bool
		quietFlag     bool
	)

	cmd := &cobra.Command{
		Use:   "burn <input>",
		Short: "Transcribe a video and burn the captions into a new file",
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
				output = defaultOutputPath(input)
			}

			p, cleanup, err := newPipeline(cfg, logger)
			if err != nil {
				return err
			}
			defer cleanup()

			runCtx, cancel := signalContext()
			defer cancel()

			result, err := p.Run(runCtx, pipeline.Request{
				Input:     input,
				Output:    output,
				Language:  languageFlag,
				MaxChars:  maxCharsFlag,
				SRTOut:    srtOutFlag,
				EditedSRT: editedSRTFlag,
				KeepTemp:  keepTempFlag,
				Progress:  printProgress(quietFlag),
			})
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Wrote %s (%d captions, %d frames)\n", result.Output, result.Segments, result.Stats.FramesWritten)
			if !result.Muxed {
				fmt.Fprintln(out, "Warning: audio mux failed or no audio track; the output is silent")
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&outputFlag, "output", "o", "", "Output video path (default: <input>.subbed.mp4)")
	cmd.Flags().StringVarP(&languageFlag, "language", "l", "", "Spoken language hint for recognition")
	cmd.Flags().IntVar(&maxCharsFlag, "max-chars", 0, "Maximum characters per caption")
	cmd.Flags().StringVar(&srtOutFlag, "srt", "", "Also export the captions as an SRT file")
	cmd.Flags().StringVar(&editedSRTFlag, "edited-srt", "", "Burn captions from this SRT file instead of transcribing")
	cmd.Flags().BoolVar(&keepTempFlag, "keep-temp", false, "Keep staging artifacts after the run")
	cmd.Flags().BoolVarP(&quietFlag, "quiet", "q", false, "Suppress progress output")
	return cmd
}

func defaultOutputPath(input string) string {
	if idx := strings.LastIndex(input, "."); idx > 0 {
		return input[:idx] + ".subbed.mp4"
	}
	return input + ".subbed.mp4"
}
