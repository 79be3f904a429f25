package cli

import (
	"context"
	"fmt"

	"github.com/unkn0wn-root/keyedcache/codec"
	"github.com/unkn0wn-root/keyedcache/internal/config"
	pr "github.com/unkn0wn-root/keyedcache/provider"
	"github.com/unkn0wn-root/keyedcache/provider/file"
	"github.com/unkn0wn-root/keyedcache/provider/keyring"
	"github.com/unkn0wn-root/keyedcache/provider/memory"
	"github.com/unkn0wn-root/keyedcache/provider/natskv"
	"github.com/unkn0wn-root/keyedcache/provider/postgres"
	"github.com/unkn0wn-root/keyedcache/provider/redis"
	"github.com/unkn0wn-root/keyedcache/value"
)

// OpenProvider is the default Opener.
func OpenProvider(ctx context.Context, cfg *config.Config) (pr.Provider, error) {
	s := cfg.Store
	switch s.Backend {
	case "file":
		p, err := file.Open(s.File.Path)
		if err != nil {
			return nil, err
		}
		return p, nil
	case "memory":
		return memory.New(nil), nil
	case "redis":
		p, err := redis.Dial(ctx, s.Redis.Address, s.Redis.Password, s.Redis.DB)
		if err != nil {
			return nil, err
		}
		return p, nil
	case "nats":
		p, err := natskv.Dial(ctx, s.NATS.URL, s.NATS.Bucket)
		if err != nil {
			return nil, err
		}
		return p, nil
	case "postgres":
		p, err := postgres.Dial(ctx, s.Postgres.DSN, s.Postgres.Table)
		if err != nil {
			return nil, err
		}
		return p, nil
	case "keyring":
		return keyring.New(s.Keyring.Service), nil
	default:
		return nil, fmt.Errorf("unknown backend %q", s.Backend)
	}
}

// valueCodec picks the codec for free-form values. Binary formats are
// base64-armoured since file and keyring stores only hold strings.
func valueCodec(name string) (codec.Codec[value.Value], error) {
	switch name {
	case "json", "":
		return codec.JSON[value.Value]{}, nil
	case "cbor":
		cb, err := codec.NewCBOR[any](0)
		if err != nil {
			return nil, fmt.Errorf("cbor codec: %w", err)
		}
		return codec.Text[value.Value]{Inner: value.Through{Inner: cb}}, nil
	case "msgpack":
		return codec.Text[value.Value]{Inner: value.Through{Inner: codec.Msgpack[any]{}}}, nil
	default:
		return nil, fmt.Errorf("unknown codec %q", name)
	}
}
