package flags

import (
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// FlagDescriptor names a string flag and the config key it overrides.
type FlagDescriptor struct {
	FlagName    string
	ConfigKey   string
	Description string
}

// BindFlags registers each descriptor as a persistent string flag of cmd and
// binds it to its config key in the global viper instance.
func BindFlags(cmd *cobra.Command, flagDescriptors ...FlagDescriptor) error {
	v := viper.GetViper()

	for _, flagDesc := range flagDescriptors {
		cmd.PersistentFlags().String(
			flagDesc.FlagName,
			v.GetString(flagDesc.ConfigKey),
			flagDesc.Description,
		)

		flag, err := LookupPersistent(cmd, flagDesc.FlagName)
		if err != nil {
			return err
		}
		if err := v.BindPFlag(flagDesc.ConfigKey, flag); err != nil {
			return err
		}
	}
	return nil
}

// LookupPersistent returns the persistent flag named flagName, searching cmd
// and its parents.
func LookupPersistent(cmd *cobra.Command, flagName string) (*pflag.Flag, error) {
	for c := cmd; c != nil; c = c.Parent() {
		if flag := c.PersistentFlags().Lookup(flagName); flag != nil {
			return flag, nil
		}
	}
	return nil, ErrFlagNotRegistered.Wrapf("--%s", flagName)
}
