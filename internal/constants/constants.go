package constants

const (
	AppName    = "policy-client"
	WalletFile = "wallet.json"

	SchemaV1      = 1
	FilePerm      = 0o600
	DirectoryPerm = 0o700

	// DefaultContractAddress is the deployed insurance contract the client talks to
	// unless config overrides it.
	DefaultContractAddress = "0xcCa8cff07cC9F21E8f5B310F868e83838571F6A4"

	NativeSymbol   = "ETH"
	NativeDecimals = 18

	// Display regions written on every refresh.
	RegionPolicyInfo      = "policyInfo"
	RegionContractBalance = "contractBalance"

	// DefaultTimeLayout mirrors the en-US locale date/time rendering.
	DefaultTimeLayout = "1/2/2006, 3:04:05 PM"

	// AAD const for the wallet file
	WalletAAD = "policy-client:wallet:v1"

	DefaultKeyEnv = "POLICY_PRIVATE_KEY"
)
