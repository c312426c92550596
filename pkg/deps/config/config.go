package config

import (
	"slices"
	"time"

	"github.com/sunnya97/cosmos-kit/pkg/wallet"
	"github.com/sunnya97/cosmos-kit/pkg/wallets/keyring"
)

// Session store backends.
const (
	SessionStoreLevelDB = "leveldb"
	SessionStoreRedis   = "redis"
	SessionStoreMemory  = "memory"
)

// Config is the walletkit configuration. It is decoded from the config file,
// WALLETKIT_* environment variables and bound flags.
type Config struct {
	// ChainsFile is the path to the chain registry YAML file.
	ChainsFile string `mapstructure:"chains_file"`

	// Chains restricts the registry to these chain names. Empty keeps every
	// chain, in registry order.
	Chains []string `mapstructure:"chains"`

	// Mutex allows at most one connected wallet per chain.
	Mutex bool `mapstructure:"mutex"`

	// Mobile hides the wallets which are disabled on mobile.
	Mobile bool `mapstructure:"mobile"`

	// SessionDuration is how long a connection lasts; zero never expires.
	SessionDuration time.Duration `mapstructure:"session_duration"`

	// ProbeTimeout bounds each endpoint health probe.
	ProbeTimeout time.Duration `mapstructure:"probe_timeout"`

	SessionStore SessionStoreConfig `mapstructure:"session_store"`
	Keyring      KeyringConfig      `mapstructure:"keyring"`
	Bridges      []BridgeConfig     `mapstructure:"bridges"`
}

type SessionStoreConfig struct {
	// Backend is one of leveldb, redis or memory.
	Backend   string `mapstructure:"backend"`
	Path      string `mapstructure:"path"`
	RedisURL  string `mapstructure:"redis_url"`
	KeyPrefix string `mapstructure:"key_prefix"`
}

type KeyringConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Backend string `mapstructure:"backend"`
	Dir     string `mapstructure:"dir"`
	AppName string `mapstructure:"app_name"`
	KeyName string `mapstructure:"key_name"`
	// Mnemonic is imported under KeyName when the key does not exist yet.
	// Prefer WALLETKIT_KEYRING_MNEMONIC over the config file.
	Mnemonic string `mapstructure:"mnemonic"`
}

type BridgeConfig struct {
	Name           string        `mapstructure:"name"`
	PrettyName     string        `mapstructure:"pretty_name"`
	URL            string        `mapstructure:"url"`
	RequestTimeout time.Duration `mapstructure:"request_timeout"`
}

// Validate checks the configuration for correctness:
// - ChainsFile must be set
// - the session store backend must be known and have its location set
// - at least one wallet (keyring or bridge) must be configured
// - bridge names must be set and unique
func (cfg *Config) Validate() error {
	if cfg.ChainsFile == "" {
		return ErrConfigInvalid.Wrap("chains_file MUST be set")
	}
	if cfg.SessionDuration < 0 {
		return ErrConfigInvalid.Wrapf("session_duration MUST NOT be negative, got %s", cfg.SessionDuration)
	}

	switch cfg.SessionStore.Backend {
	case SessionStoreLevelDB:
		if cfg.SessionStore.Path == "" {
			return ErrConfigInvalid.Wrap("session_store.path MUST be set for the leveldb backend")
		}
	case SessionStoreRedis:
		if cfg.SessionStore.RedisURL == "" {
			return ErrConfigInvalid.Wrap("session_store.redis_url MUST be set for the redis backend")
		}
	case SessionStoreMemory:
	default:
		return ErrConfigInvalid.Wrapf("unknown session_store.backend %q", cfg.SessionStore.Backend)
	}

	if !cfg.Keyring.Enabled && len(cfg.Bridges) == 0 {
		return ErrConfigInvalid.Wrap("at least one wallet MUST be configured (keyring.enabled or bridges)")
	}
	if cfg.Keyring.Enabled && !slices.Contains(keyring.Backends, cfg.Keyring.Backend) {
		return ErrConfigInvalid.Wrapf("unknown keyring.backend %q, expected one of %v", cfg.Keyring.Backend, keyring.Backends)
	}

	seen := make(map[wallet.Name]struct{})
	if cfg.Keyring.Enabled {
		seen[keyring.WalletName(cfg.Keyring.Backend)] = struct{}{}
	}
	for i, bridgeCfg := range cfg.Bridges {
		if bridgeCfg.Name == "" {
			return ErrConfigInvalid.Wrapf("bridges[%d].name MUST be set", i)
		}
		if bridgeCfg.URL == "" {
			return ErrConfigInvalid.Wrapf("bridges[%d].url MUST be set", i)
		}
		name := wallet.Name(bridgeCfg.Name)
		if _, ok := seen[name]; ok {
			return ErrConfigInvalid.Wrapf("duplicate wallet name %q", name)
		}
		seen[name] = struct{}{}
	}
	return nil
}
