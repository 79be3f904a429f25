package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	pr "github.com/unkn0wn-root/keyedcache/provider"
	"github.com/unkn0wn-root/keyedcache/settings"
)

func newConfigCommand(a *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show and edit the extension configuration",
	}

	show := &cobra.Command{
		Use:   "show",
		Short: "Print the configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.withSettings(cmd.Context(), func(ctx context.Context, s *settings.Store) error {
				cfg, err := s.Config(ctx)
				if err != nil {
					return err
				}
				rows := pterm.TableData{
					{"Property", "Value"},
					{"token", maskToken(cfg.Token)},
					{"randNames", strconv.FormatBool(cfg.RandNames)},
					{"randColors", strconv.FormatBool(cfg.RandColors)},
				}
				return pterm.DefaultTable.WithHasHeader().WithData(rows).WithWriter(cmd.OutOrStdout()).Render()
			})
		},
	}

	token := &cobra.Command{
		Use:   "token [TOKEN]",
		Short: "Set the GitHub token, or clear it when TOKEN is omitted",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tok := ""
			if len(args) == 1 {
				tok = args[0]
			}
			return a.withSettings(cmd.Context(), func(ctx context.Context, s *settings.Store) error {
				if _, err := s.SetToken(ctx, tok); err != nil {
					return err
				}
				msg := "Token cleared"
				if tok != "" {
					msg = "Token saved"
				}
				pterm.Success.WithWriter(cmd.OutOrStdout()).Println(msg)
				return nil
			})
		},
	}

	toggle := &cobra.Command{
		Use:       "toggle randNames|randColors",
		Short:     "Flip a boolean option",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{"randNames", "randColors"},
		RunE: func(cmd *cobra.Command, args []string) error {
			var flip func(*settings.Config)
			switch args[0] {
			case "randNames":
				flip = func(c *settings.Config) { c.RandNames = !c.RandNames }
			case "randColors":
				flip = func(c *settings.Config) { c.RandColors = !c.RandColors }
			default:
				return fmt.Errorf("unknown option %q: use randNames or randColors", args[0])
			}
			return a.withSettings(cmd.Context(), func(ctx context.Context, s *settings.Store) error {
				cfg, err := s.Update(ctx, flip)
				if err != nil {
					return err
				}
				on := cfg.RandNames
				if args[0] == "randColors" {
					on = cfg.RandColors
				}
				pterm.Success.WithWriter(cmd.OutOrStdout()).Printfln("%s is now %t", args[0], on)
				return nil
			})
		},
	}

	cmd.AddCommand(show, token, toggle)
	return cmd
}

func newFavCommand(a *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fav",
		Short: "List and toggle favorite pull requests",
	}

	list := &cobra.Command{
		Use:       "list TYPE",
		Short:     "List favorites of TYPE (" + strings.Join(settings.Types, "|") + ")",
		Args:      cobra.ExactArgs(1),
		ValidArgs: settings.Types,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withSettings(cmd.Context(), func(ctx context.Context, s *settings.Store) error {
				favs, err := s.Favorites(ctx, args[0])
				if err != nil {
					return err
				}
				if len(favs) == 0 {
					pterm.Info.WithWriter(cmd.OutOrStdout()).Printfln("No %s favorites", args[0])
					return nil
				}
				rows := pterm.TableData{{"ID", "Number", "Title", "URL"}}
				for _, f := range favs {
					rows = append(rows, []string{
						strconv.FormatInt(f.ID, 10),
						strconv.Itoa(f.Number),
						f.Title,
						f.URL,
					})
				}
				return pterm.DefaultTable.WithHasHeader().WithData(rows).WithWriter(cmd.OutOrStdout()).Render()
			})
		},
	}

	toggle := &cobra.Command{
		Use:   "toggle TYPE ID NUMBER TITLE [URL]",
		Short: "Add a pull request to the favorites of TYPE, or remove it",
		Args:  cobra.RangeArgs(4, 5),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[1], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid ID %q: %w", args[1], err)
			}
			num, err := strconv.Atoi(args[2])
			if err != nil {
				return fmt.Errorf("invalid NUMBER %q: %w", args[2], err)
			}
			p := settings.PullRequest{ID: id, Number: num, Title: args[3], Type: args[0]}
			if len(args) == 5 {
				p.URL = args[4]
			}
			return a.withSettings(cmd.Context(), func(ctx context.Context, s *settings.Store) error {
				on, err := s.ToggleFavorite(ctx, p)
				if err != nil {
					return err
				}
				if on {
					pterm.Success.WithWriter(cmd.OutOrStdout()).Printfln("Added #%d to %s favorites", p.Number, p.Type)
				} else {
					pterm.Success.WithWriter(cmd.OutOrStdout()).Printfln("Removed #%d from %s favorites", p.Number, p.Type)
				}
				return nil
			})
		},
	}

	imp := &cobra.Command{
		Use:   "import TYPE [FILE]",
		Short: "Add every pull request of a GitHub search response (FILE or stdin) to the favorites of TYPE",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			var in io.Reader = cmd.InOrStdin()
			if len(args) == 2 {
				f, err := os.Open(args[1])
				if err != nil {
					return err
				}
				defer f.Close()
				in = f
			}
			var res settings.SearchResult
			if err := json.NewDecoder(in).Decode(&res); err != nil {
				return fmt.Errorf("decode search response: %w", err)
			}
			return a.withSettings(cmd.Context(), func(ctx context.Context, s *settings.Store) error {
				added := 0
				for _, item := range res.Items {
					known, err := s.IsFavorite(ctx, args[0], item.ID)
					if err != nil {
						return err
					}
					if known {
						continue
					}
					if _, err := s.ToggleFavorite(ctx, settings.FromSearchItem(item, args[0])); err != nil {
						return err
					}
					added++
				}
				pterm.Success.WithWriter(cmd.OutOrStdout()).Printfln("Imported %d of %d pull requests into %s favorites", added, len(res.Items), args[0])
				return nil
			})
		},
	}

	cmd.AddCommand(list, toggle, imp)
	return cmd
}

// withSettings loads the settings store. The session owns the provider, so
// the store itself is never closed here.
func (a *App) withSettings(ctx context.Context, fn func(context.Context, *settings.Store) error) error {
	return a.session(ctx, func(p pr.Provider) error {
		s, err := settings.New(settings.Options{
			Provider: p,
			Prefix:   a.cfg.Prefix,
			Logger:   a.cacheLogger(),
			Hooks:    a.hooks(),
		})
		if err != nil {
			return err
		}
		if err := s.Load(ctx); err != nil {
			return err
		}
		return fn(ctx, s)
	})
}

func maskToken(tok string) string {
	if tok == "" {
		return "-"
	}
	if len(tok) <= 4 {
		return strings.Repeat("*", len(tok))
	}
	return strings.Repeat("*", len(tok)-4) + tok[len(tok)-4:]
}
