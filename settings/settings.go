// Package settings stores the extension's user configuration and pull request
// favorites on top of keyedcache.
package settings

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"slices"

	"github.com/samber/lo"

	"github.com/unkn0wn-root/keyedcache"
	pr "github.com/unkn0wn-root/keyedcache/provider"
)

// ConfigKey is the logical key of the configuration object.
const ConfigKey = "config"

// Favorites types, one list per repository.
const (
	TypeCommunity  = "community-pr"
	TypeEnterprise = "enterprise-pr"
)

// Types lists every favorites type loaded by Store.Load.
var Types = []string{TypeCommunity, TypeEnterprise}

var (
	ErrInvalidToken = errors.New("settings: token must be 40 alphanumeric characters")
	ErrUnknownType  = errors.New("settings: unknown favorites type")
	ErrNotLoaded    = errors.New("settings: not loaded")
)

var tokenPattern = regexp.MustCompile(`^[a-zA-Z0-9]{40}$`)

// Config is the user configuration object.
type Config struct {
	Token      string `json:"token"`
	RandNames  bool   `json:"randNames"`
	RandColors bool   `json:"randColors"`
}

// DefaultConfig is persisted on first Load.
func DefaultConfig() Config {
	return Config{Token: "", RandNames: true, RandColors: false}
}

// Label is a GitHub label as shown on a favorite. Color is "#rrggbb";
// ReverseColor is the black or white text color readable on it.
type Label struct {
	ID           int64  `json:"id"`
	Name         string `json:"name"`
	Color        string `json:"color"`
	ReverseColor string `json:"reverseColor,omitempty"`
}

// PullRequest is a favorited pull request.
type PullRequest struct {
	ID     int64   `json:"id"`
	Number int     `json:"number"`
	Title  string  `json:"title"`
	URL    string  `json:"url"`
	Type   string  `json:"type"`
	Body   string  `json:"body,omitempty"`
	Labels []Label `json:"labels,omitempty"`
}

// ValidToken reports whether token looks like a classic GitHub personal access token.
func ValidToken(token string) bool {
	return tokenPattern.MatchString(token)
}

type Options struct {
	Provider pr.Provider // required; closed by Store.Close
	Prefix   string      // keyedcache.DefaultPrefix when empty
	Logger   keyedcache.Logger
	Hooks    keyedcache.Hooks
}

// Store holds the config and favorites caches. It shares one provider.
type Store struct {
	provider  pr.Provider
	config    keyedcache.Cache[*Config]
	favorites keyedcache.Cache[[]PullRequest]
	log       keyedcache.Logger
	loaded    bool
}

func New(opts Options) (*Store, error) {
	if opts.Provider == nil {
		return nil, &keyedcache.ConfigError{Field: "Provider", Reason: "provider is required"}
	}
	get, set, del := keyedcache.Bind(opts.Provider)

	config, err := keyedcache.New(keyedcache.Options[*Config]{
		Prefix:  opts.Prefix,
		Getter:  get,
		Setter:  set,
		Remover: del,
		Logger:  opts.Logger,
		Hooks:   opts.Hooks,
	})
	if err != nil {
		return nil, err
	}
	favorites, err := keyedcache.New(keyedcache.Options[[]PullRequest]{
		Prefix:  opts.Prefix,
		Getter:  get,
		Setter:  set,
		Remover: del,
		Logger:  opts.Logger,
		Hooks:   opts.Hooks,
	})
	if err != nil {
		return nil, err
	}
	log := opts.Logger
	if log == nil {
		log = keyedcache.NopLogger{}
	}
	return &Store{provider: opts.Provider, config: config, favorites: favorites, log: log}, nil
}

// Load initializes every key with its default when the store has none.
// A key whose stored payload cannot be decoded is reset to its default.
// It must run once before the other methods.
func (s *Store) Load(ctx context.Context) error {
	def := DefaultConfig()
	if err := loadDefault(ctx, s, s.config, ConfigKey, &def); err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	for _, t := range Types {
		if err := loadDefault(ctx, s, s.favorites, t, []PullRequest{}); err != nil {
			return fmt.Errorf("load favorites %s: %w", t, err)
		}
	}
	s.loaded = true
	return nil
}

func loadDefault[V any](ctx context.Context, s *Store, c keyedcache.Cache[V], key string, def V) error {
	_, err := c.Default(ctx, key, def)
	var se *keyedcache.SerializationError
	if !errors.As(err, &se) {
		return err
	}
	s.log.Warn("resetting corrupt settings entry", keyedcache.Fields{"key": key, "err": se.Err})
	_, err = c.Set(ctx, key, def)
	return err
}

// Config returns a copy of the current configuration.
func (s *Store) Config(ctx context.Context) (Config, error) {
	if !s.loaded {
		return Config{}, ErrNotLoaded
	}
	c, err := s.config.Get(ctx, ConfigKey)
	if err != nil {
		return Config{}, err
	}
	if c == nil {
		// removed behind our back; fall back like a fresh install
		return DefaultConfig(), nil
	}
	return *c, nil
}

// Update applies fn to a copy of the configuration and persists the whole object.
func (s *Store) Update(ctx context.Context, fn func(*Config)) (Config, error) {
	cur, err := s.Config(ctx)
	if err != nil {
		return Config{}, err
	}
	next := cur
	fn(&next)
	if _, err := s.config.Set(ctx, ConfigKey, &next); err != nil {
		return Config{}, fmt.Errorf("save config: %w", err)
	}
	return next, nil
}

// SetToken stores token after validation. An empty token clears it.
func (s *Store) SetToken(ctx context.Context, token string) (Config, error) {
	if token != "" && !ValidToken(token) {
		return Config{}, ErrInvalidToken
	}
	return s.Update(ctx, func(c *Config) { c.Token = token })
}

// Favorites returns a copy of the favorites of type t.
func (s *Store) Favorites(ctx context.Context, t string) ([]PullRequest, error) {
	if err := s.checkType(t); err != nil {
		return nil, err
	}
	favs, err := s.favorites.Get(ctx, t)
	if err != nil {
		return nil, err
	}
	return slices.Clone(favs), nil
}

// IsFavorite reports whether the pull request id is a favorite of type t.
func (s *Store) IsFavorite(ctx context.Context, t string, id int64) (bool, error) {
	favs, err := s.Favorites(ctx, t)
	if err != nil {
		return false, err
	}
	return lo.ContainsBy(favs, func(f PullRequest) bool { return f.ID == id }), nil
}

// ToggleFavorite adds p to its type's favorites, or removes it when a favorite
// with the same ID exists. It returns whether p is a favorite afterwards.
func (s *Store) ToggleFavorite(ctx context.Context, p PullRequest) (bool, error) {
	favs, err := s.Favorites(ctx, p.Type)
	if err != nil {
		return false, err
	}
	var next []PullRequest
	isFavorite := !lo.ContainsBy(favs, func(f PullRequest) bool { return f.ID == p.ID })
	if isFavorite {
		next = append(favs, p)
	} else {
		next = lo.Filter(favs, func(f PullRequest, _ int) bool { return f.ID != p.ID })
	}
	if _, err := s.favorites.Set(ctx, p.Type, next); err != nil {
		return false, fmt.Errorf("save favorites %s: %w", p.Type, err)
	}
	return isFavorite, nil
}

// Reset removes the configuration and every favorites list loaded so far.
func (s *Store) Reset(ctx context.Context) error {
	err := errors.Join(s.config.Clear(ctx), s.favorites.Clear(ctx))
	s.loaded = false
	return err
}

func (s *Store) Close(ctx context.Context) error {
	return s.provider.Close(ctx)
}

func (s *Store) checkType(t string) error {
	if !s.loaded {
		return ErrNotLoaded
	}
	if !slices.Contains(Types, t) {
		return fmt.Errorf("%w: %q", ErrUnknownType, t)
	}
	return nil
}
