package flags

const (
	FlagConfig      = "config"
	FlagConfigUsage = "Path to the walletkit config file; searched in $HOME/.walletkit and . when empty"

	FlagChainsFile      = "chains-file"
	FlagChainsFileUsage = "Path to the chain registry YAML file"

	FlagMobile      = "mobile"
	FlagMobileUsage = "Run as a mobile environment, hiding the wallets which do not support it"

	FlagLogLevel      = "log-level"
	FlagLogLevelUsage = "The logging level (debug|info|warn|error)"
	DefaultLogLevel   = "info"

	FlagLogOutput      = "log-output"
	FlagLogOutputUsage = "The logging output (file path); defaults to stderr"
	DefaultLogOutput   = "-"
)
