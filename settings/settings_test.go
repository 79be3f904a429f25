package settings

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/unkn0wn-root/keyedcache/provider/memory"
)

func newLoadedStore(t *testing.T, seed map[string]string) (*Store, *memory.Store) {
	t.Helper()
	ctx := context.Background()
	mem := memory.New(seed)
	s, err := New(Options{Provider: mem})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	t.Cleanup(func() { _ = s.Close(ctx) })
	if err := s.Load(ctx); err != nil {
		t.Fatalf("Load: %v", err)
	}
	return s, mem
}

func TestLoadPersistsDefaults(t *testing.T) {
	_, mem := newLoadedStore(t, nil)

	snap := mem.Snapshot()
	if got, want := snap["odoo-buddy-config"], `{"token":"","randNames":true,"randColors":false}`; got != want {
		t.Fatalf("config=%s want %s", got, want)
	}
	for _, typ := range Types {
		if got := snap["odoo-buddy-"+typ]; got != "[]" {
			t.Fatalf("%s=%q want []", typ, got)
		}
	}
}

func TestLoadKeepsExistingConfig(t *testing.T) {
	seed := map[string]string{
		"odoo-buddy-config": `{"token":"abc","randNames":false,"randColors":true}`,
	}
	s, mem := newLoadedStore(t, seed)

	cfg, err := s.Config(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Token != "abc" || cfg.RandNames || !cfg.RandColors {
		t.Fatalf("config overwritten: %+v", cfg)
	}
	if got := mem.Snapshot()["odoo-buddy-config"]; got != seed["odoo-buddy-config"] {
		t.Fatalf("stored config rewritten: %s", got)
	}
}

func TestOperationsBeforeLoad(t *testing.T) {
	s, err := New(Options{Provider: memory.New(nil)})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := s.Config(context.Background()); !errors.Is(err, ErrNotLoaded) {
		t.Fatalf("Config err=%v want ErrNotLoaded", err)
	}
	if _, err := s.Favorites(context.Background(), TypeCommunity); !errors.Is(err, ErrNotLoaded) {
		t.Fatalf("Favorites err=%v want ErrNotLoaded", err)
	}
}

func TestNewRequiresProvider(t *testing.T) {
	if _, err := New(Options{}); err == nil {
		t.Fatal("expected error without provider")
	}
}

func TestUpdateWritesWholeObject(t *testing.T) {
	s, mem := newLoadedStore(t, nil)
	ctx := context.Background()

	cfg, err := s.Update(ctx, func(c *Config) { c.RandColors = true })
	if err != nil {
		t.Fatal(err)
	}
	if !cfg.RandColors || !cfg.RandNames {
		t.Fatalf("got %+v", cfg)
	}
	if got, want := mem.Snapshot()["odoo-buddy-config"], `{"token":"","randNames":true,"randColors":true}`; got != want {
		t.Fatalf("stored=%s want %s", got, want)
	}

	again, err := s.Config(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if again != cfg {
		t.Fatalf("Config=%+v want %+v", again, cfg)
	}
}

func TestSetToken(t *testing.T) {
	s, _ := newLoadedStore(t, nil)
	ctx := context.Background()

	if _, err := s.SetToken(ctx, "short"); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("err=%v want ErrInvalidToken", err)
	}
	if _, err := s.SetToken(ctx, strings.Repeat("a", 39)+"!"); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("err=%v want ErrInvalidToken", err)
	}

	tok := strings.Repeat("aB3", 13) + "z"
	cfg, err := s.SetToken(ctx, tok)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Token != tok {
		t.Fatalf("token=%q", cfg.Token)
	}

	cfg, err = s.SetToken(ctx, "")
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Token != "" {
		t.Fatalf("token not cleared: %q", cfg.Token)
	}
}

func TestToggleFavorite(t *testing.T) {
	s, mem := newLoadedStore(t, nil)
	ctx := context.Background()

	p := PullRequest{ID: 7, Number: 101, Title: "fix", Type: TypeCommunity}
	on, err := s.ToggleFavorite(ctx, p)
	if err != nil {
		t.Fatal(err)
	}
	if !on {
		t.Fatal("expected favorite after first toggle")
	}
	ok, err := s.IsFavorite(ctx, TypeCommunity, 7)
	if err != nil || !ok {
		t.Fatalf("IsFavorite=%v err=%v", ok, err)
	}
	ok, err = s.IsFavorite(ctx, TypeEnterprise, 7)
	if err != nil || ok {
		t.Fatalf("enterprise IsFavorite=%v err=%v", ok, err)
	}

	on, err = s.ToggleFavorite(ctx, p)
	if err != nil {
		t.Fatal(err)
	}
	if on {
		t.Fatal("expected removal on second toggle")
	}
	favs, err := s.Favorites(ctx, TypeCommunity)
	if err != nil {
		t.Fatal(err)
	}
	if len(favs) != 0 {
		t.Fatalf("favorites=%v want empty", favs)
	}
	// an emptied list stays an empty array, it is not removed
	if got := mem.Snapshot()["odoo-buddy-community-pr"]; got != "[]" {
		t.Fatalf("stored=%q want []", got)
	}
}

func TestFavoritesReturnsCopy(t *testing.T) {
	s, _ := newLoadedStore(t, nil)
	ctx := context.Background()

	if _, err := s.ToggleFavorite(ctx, PullRequest{ID: 1, Title: "a", Type: TypeEnterprise}); err != nil {
		t.Fatal(err)
	}
	favs, err := s.Favorites(ctx, TypeEnterprise)
	if err != nil {
		t.Fatal(err)
	}
	favs[0].Title = "mutated"

	again, err := s.Favorites(ctx, TypeEnterprise)
	if err != nil {
		t.Fatal(err)
	}
	if again[0].Title != "a" {
		t.Fatalf("cached favorites mutated through returned slice: %q", again[0].Title)
	}
}

func TestUnknownFavoritesType(t *testing.T) {
	s, _ := newLoadedStore(t, nil)
	_, err := s.ToggleFavorite(context.Background(), PullRequest{ID: 1, Type: "nope"})
	if !errors.Is(err, ErrUnknownType) {
		t.Fatalf("err=%v want ErrUnknownType", err)
	}
}

func TestResetRemovesKeys(t *testing.T) {
	s, mem := newLoadedStore(t, nil)
	if err := s.Reset(context.Background()); err != nil {
		t.Fatal(err)
	}
	if keys := mem.Keys(); len(keys) != 0 {
		t.Fatalf("keys left after reset: %v", keys)
	}
}

func TestLoadResetsCorruptEntries(t *testing.T) {
	s, mem := newLoadedStore(t, map[string]string{
		"odoo-buddy-config":       "{bad",
		"odoo-buddy-community-pr": "oops",
	})

	cfg, err := s.Config(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if cfg != DefaultConfig() {
		t.Fatalf("config=%+v want defaults", cfg)
	}
	snap := mem.Snapshot()
	if got, want := snap["odoo-buddy-config"], `{"token":"","randNames":true,"randColors":false}`; got != want {
		t.Fatalf("stored config=%s want %s", got, want)
	}
	if got := snap["odoo-buddy-community-pr"]; got != "[]" {
		t.Fatalf("community-pr=%q want []", got)
	}
}
