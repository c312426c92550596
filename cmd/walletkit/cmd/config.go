package cmd

import (
	"errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/sunnya97/cosmos-kit/cmd/flags"
	"github.com/sunnya97/cosmos-kit/pkg/deps/config"
)

const (
	// envPrefix is the prefix of the environment variables overriding config
	// keys, e.g. WALLETKIT_SESSION_STORE_BACKEND for session_store.backend.
	envPrefix = "WALLETKIT"

	configName = "walletkit"
	homeDir    = ".walletkit"
)

// setupViper reads config values from the following sources, highest
// precedence first:
// 1. Bound flags
// 2. Environment variables
// 3. The config file
// 4. Defaults
func setupViper(cmd *cobra.Command, configPath string) error {
	if err := setViperConfig(configPath); err != nil {
		return err
	}

	viper.SetEnvPrefix(envPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	mobileFlag, err := flags.LookupPersistent(cmd, flags.FlagMobile)
	if err != nil {
		return err
	}
	if err := viper.BindPFlag("mobile", mobileFlag); err != nil {
		return err
	}

	setViperDefaults()
	return nil
}

// setViperConfig loads configPath, or searches $HOME/.walletkit and the
// working directory for walletkit.yaml when it is empty.
func setViperConfig(configPath string) error {
	viper.SetConfigName(configName)
	viper.SetConfigType("yaml")

	if configPath != "" {
		viper.SetConfigFile(configPath)
	} else {
		viper.AddConfigPath(filepath.Join("$HOME", homeDir))
		viper.AddConfigPath(".")
	}

	err := viper.ReadInConfig()
	switch {
	// Configuration MAY be done with flags and environment variables only.
	case errors.As(err, &viper.ConfigFileNotFoundError{}):
		return nil
	default:
		return err
	}
}

// setViperDefaults registers every config key, which also lets
// AutomaticEnv override keys absent from the config file.
func setViperDefaults() {
	home := homePath()

	viper.SetDefault("chains_file", "")
	viper.SetDefault("chains", []string{})
	viper.SetDefault("mutex", true)
	viper.SetDefault("mobile", false)
	viper.SetDefault("session_duration", "0s")
	viper.SetDefault("probe_timeout", "0s")

	viper.SetDefault("session_store.backend", config.SessionStoreLevelDB)
	viper.SetDefault("session_store.path", filepath.Join(home, "sessions"))
	viper.SetDefault("session_store.redis_url", "")
	viper.SetDefault("session_store.key_prefix", "")

	viper.SetDefault("keyring.enabled", true)
	viper.SetDefault("keyring.backend", "test")
	viper.SetDefault("keyring.dir", filepath.Join(home, "keyring"))
	viper.SetDefault("keyring.app_name", "")
	viper.SetDefault("keyring.key_name", "")
	viper.SetDefault("keyring.mnemonic", "")
}

func homePath() string {
	userHome, err := os.UserHomeDir()
	if err != nil {
		return homeDir
	}
	return filepath.Join(userHome, homeDir)
}

// parseConfigFromViper decodes and validates the walletkit config.
func parseConfigFromViper() (*config.Config, error) {
	cfg := new(config.Config)
	if err := viper.Unmarshal(cfg); err != nil {
		return nil, config.ErrConfigInvalid.Wrapf("%v", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
