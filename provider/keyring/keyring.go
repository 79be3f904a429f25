// Package keyring keeps keyedcache entries in the operating system keychain
// (macOS Keychain, Secret Service, Windows Credential Manager). It suits small
// secrets such as the GitHub personal access token.
package keyring

import (
	"context"
	"errors"
	"fmt"

	gokeyring "github.com/zalando/go-keyring"

	pr "github.com/unkn0wn-root/keyedcache/provider"
)

// DefaultService is the keychain service name when none is given.
const DefaultService = "odoo-buddy"

// Provider maps every key to a keychain item (service, key).
// Values are stored as strings; the keychain APIs are not binary-safe, so use a
// text codec (JSON, or codec.Text around a binary one).
type Provider struct {
	service string
}

var _ pr.Provider = (*Provider)(nil)

func New(service string) *Provider {
	if service == "" {
		service = DefaultService
	}
	return &Provider{service: service}
}

func (p *Provider) Get(_ context.Context, key string) ([]byte, bool, error) {
	s, err := gokeyring.Get(p.service, key)
	if errors.Is(err, gokeyring.ErrNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("keyring get %s: %w", key, err)
	}
	return []byte(s), true, nil
}

func (p *Provider) Set(_ context.Context, key string, value []byte) error {
	err := gokeyring.Set(p.service, key, string(value))
	if errors.Is(err, gokeyring.ErrSetDataTooBig) {
		return errors.Join(pr.ErrRejected, err)
	}
	if err != nil {
		return fmt.Errorf("keyring set %s: %w", key, err)
	}
	return nil
}

func (p *Provider) Del(_ context.Context, key string) error {
	err := gokeyring.Delete(p.service, key)
	if errors.Is(err, gokeyring.ErrNotFound) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("keyring delete %s: %w", key, err)
	}
	return nil
}

func (p *Provider) Close(_ context.Context) error { return nil }
