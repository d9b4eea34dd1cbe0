// Package console implements the docs:cache and docs:clear administrative
// commands over the artifact cache.
package console

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/apidocs/docsmount/internal/cache"
	"github.com/apidocs/docsmount/internal/spec"
)

type Deps struct {
	// Generator must be the live generator, not a cache-backed source.
	Generator spec.Source
	Store     cache.Store
	Key       string
	Logger    zerolog.Logger
}

// Loader builds the command dependencies. The returned func releases them.
type Loader func(ctx context.Context) (Deps, func(), error)

// Cache replaces the cached artifact with a freshly generated document.
func Cache(ctx context.Context, d Deps) error {
	if err := d.Store.Delete(ctx, d.Key); err != nil {
		return fmt.Errorf("clear cached docs: %w", err)
	}
	raw, err := d.Generator.Document(ctx)
	if err != nil {
		return fmt.Errorf("generate docs: %w", err)
	}
	doc, err := spec.Normalize(raw)
	if err != nil {
		return err
	}
	if err := d.Store.Put(ctx, d.Key, doc); err != nil {
		return fmt.Errorf("store docs: %w", err)
	}
	d.Logger.Info().Str("key", d.Key).Int("bytes", len(doc)).Msg("api docs cached")
	return nil
}

func Clear(ctx context.Context, d Deps) error {
	if err := d.Store.Delete(ctx, d.Key); err != nil {
		return fmt.Errorf("clear cached docs: %w", err)
	}
	d.Logger.Info().Str("key", d.Key).Msg("api docs cache cleared")
	return nil
}

func NewCacheCommand(load Loader) *cobra.Command {
	return &cobra.Command{
		Use:   "docs:cache",
		Short: "Create a cache file for faster API docs loading",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, load, Cache, "API docs cached successfully.")
		},
	}
}

func NewClearCommand(load Loader) *cobra.Command {
	return &cobra.Command{
		Use:   "docs:clear",
		Short: "Remove the API docs cache file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, load, Clear, "API docs cache cleared!")
		},
	}
}

func run(cmd *cobra.Command, load Loader, action func(context.Context, Deps) error, done string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	d, release, err := load(ctx)
	if err != nil {
		return err
	}
	defer release()
	if err := action(ctx, d); err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), done)
	return nil
}
