package cli

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/unkn0wn-root/keyedcache"
	pr "github.com/unkn0wn-root/keyedcache/provider"
	"github.com/unkn0wn-root/keyedcache/value"
)

func newKeyCommands(a *App) []*cobra.Command {
	get := &cobra.Command{
		Use:   "get KEY",
		Short: "Print the value stored under KEY (null when absent)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withValues(cmd.Context(), func(ctx context.Context, c keyedcache.Cache[value.Value]) error {
				v, err := c.Get(ctx, args[0])
				if err != nil {
					return err
				}
				return printValue(cmd.OutOrStdout(), v)
			})
		},
	}

	has := &cobra.Command{
		Use:   "has KEY",
		Short: "Report whether KEY holds a non-empty value",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withValues(cmd.Context(), func(ctx context.Context, c keyedcache.Cache[value.Value]) error {
				ok, err := c.Has(ctx, args[0])
				if err != nil {
					return err
				}
				_, err = fmt.Fprintln(cmd.OutOrStdout(), ok)
				return err
			})
		},
	}

	set := &cobra.Command{
		Use:   "set KEY JSON",
		Short: "Store a JSON value under KEY (null removes it)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := parseValue(args[1])
			if err != nil {
				return err
			}
			return a.withValues(cmd.Context(), func(ctx context.Context, c keyedcache.Cache[value.Value]) error {
				// load first so an unchanged value is not rewritten;
				// a corrupt entry is simply overwritten
				if _, err := c.Get(ctx, args[0]); err != nil && !isCorrupt(err) {
					return err
				}
				stored, err := c.Set(ctx, args[0], v)
				if err != nil {
					return err
				}
				return printValue(cmd.OutOrStdout(), stored)
			})
		},
	}

	rm := &cobra.Command{
		Use:     "rm KEY",
		Aliases: []string{"remove"},
		Short:   "Remove KEY from the store",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withValues(cmd.Context(), func(ctx context.Context, c keyedcache.Cache[value.Value]) error {
				return c.Remove(ctx, args[0])
			})
		},
	}

	def := &cobra.Command{
		Use:   "default KEY JSON",
		Short: "Print KEY, storing JSON first when KEY has no value",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := parseValue(args[1])
			if err != nil {
				return err
			}
			return a.withValues(cmd.Context(), func(ctx context.Context, c keyedcache.Cache[value.Value]) error {
				got, err := c.Default(ctx, args[0], v)
				if err != nil {
					return err
				}
				return printValue(cmd.OutOrStdout(), got)
			})
		},
	}

	clearCmd := &cobra.Command{
		Use:   "clear KEY...",
		Short: "Remove every listed key",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withValues(cmd.Context(), func(ctx context.Context, c keyedcache.Cache[value.Value]) error {
				var corrupt []string
				for _, k := range args {
					if _, err := c.Get(ctx, k); err != nil {
						if !isCorrupt(err) {
							return err
						}
						corrupt = append(corrupt, k)
					}
				}
				if err := c.Clear(ctx); err != nil {
					return err
				}
				// entries that failed to decode were never loaded, so Clear skips them
				for _, k := range corrupt {
					if err := c.Remove(ctx, k); err != nil {
						return err
					}
				}
				_, err := fmt.Fprintf(cmd.OutOrStdout(), "cleared %d key(s)\n", len(args))
				return err
			})
		},
	}

	return []*cobra.Command{get, has, set, rm, def, clearCmd}
}

func (a *App) withValues(ctx context.Context, fn func(context.Context, keyedcache.Cache[value.Value]) error) error {
	vc, err := valueCodec(a.cfg.Codec)
	if err != nil {
		return err
	}
	return a.session(ctx, func(p pr.Provider) error {
		get, set, del := keyedcache.Bind(p)
		c, err := keyedcache.New(keyedcache.Options[value.Value]{
			Prefix:  a.cfg.Prefix,
			Getter:  get,
			Setter:  set,
			Remover: del,
			Codec:   vc,
			Logger:  a.cacheLogger(),
			Hooks:   a.hooks(),
		})
		if err != nil {
			return err
		}
		return fn(ctx, c)
	})
}

// isCorrupt reports whether err comes from a stored payload that cannot be decoded.
func isCorrupt(err error) bool {
	var se *keyedcache.SerializationError
	return errors.As(err, &se)
}

func parseValue(s string) (value.Value, error) {
	v, err := value.Parse([]byte(s))
	if err != nil {
		return value.Value{}, fmt.Errorf("invalid JSON value %q: %w", s, err)
	}
	return v, nil
}

func printValue(w io.Writer, v value.Value) error {
	_, err := fmt.Fprintln(w, v.String())
	return err
}
