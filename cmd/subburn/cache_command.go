package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"subburn/internal/transcache"
)

func newCacheCommand(ctx *commandContext) *cobra.Command {
	cacheCmd := &cobra.Command{
		Use:   "cache",
		Short: "Transcript cache utilities",
	}

	cacheCmd.AddCommand(newCacheClearCommand(ctx))
	return cacheCmd
}

func newCacheClearCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "clear <input>",
		Short: "Drop the cached transcript for a media file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			fingerprint, err := transcache.Fingerprint(args[0])
			if err != nil {
				return fmt.Errorf("fingerprint input: %w", err)
			}

			store, err := transcache.Open(cfg.Recognizer.CachePath)
			if err != nil {
				return fmt.Errorf("open transcript cache: %w", err)
			}
			defer store.Close()

			if err := store.Delete(context.Background(), fingerprint); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Cleared cached transcript for %s\n", args[0])
			return nil
		},
	}
}
