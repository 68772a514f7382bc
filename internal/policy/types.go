package policy

import (
	"context"
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/google/uuid"

	"github.com/quantumauth-io/policy-client/internal/wallet"
)

// Method names a contract function.
type Method string

const (
	MethodPurchasePolicy     Method = "purchasePolicy"
	MethodFileClaim          Method = "fileClaim"
	MethodCancelPolicy       Method = "cancelPolicy"
	MethodDonate             Method = "donate"
	MethodExtendPolicy       Method = "extendPolicy"
	MethodRenewPolicy        Method = "renewPolicy"
	MethodGetPolicyDetails   Method = "getPolicyDetails"
	MethodGetContractBalance Method = "getContractBalance"

	methodGetCode Method = "getCode"
)

// Action names a controller operation; it is echoed in every Result.
type Action string

const (
	ActionInitialize Action = "initializeSession"
	ActionPurchase   Action = "purchasePolicy"
	ActionClaim      Action = "fileClaim"
	ActionCancel     Action = "cancelPolicy"
	ActionDonate     Action = "donate"
	ActionExtend     Action = "extendPolicy"
	ActionRenew      Action = "renewPolicy"
	ActionRefresh    Action = "refreshDisplayedState"
)

type ClaimStatus uint8

const (
	ClaimNone ClaimStatus = iota
	ClaimFiled
	ClaimApproved
	ClaimRejected
)

var claimStatusLabels = [...]string{"None", "Filed", "Approved", "Rejected"}

func (c ClaimStatus) Valid() bool { return int(c) < len(claimStatusLabels) }

// String returns the label for c, or "Unknown" for values the contract
// should never report.
func (c ClaimStatus) String() string {
	if !c.Valid() {
		return "Unknown"
	}
	return claimStatusLabels[c]
}

func (c ClaimStatus) MarshalText() ([]byte, error) { return []byte(c.String()), nil }

// PolicyView is the caller's policy as the contract reports it.
type PolicyView struct {
	PolicyType  uint8       `json:"policyType"`
	Premium     *big.Int    `json:"premium"`
	Coverage    *big.Int    `json:"coverage"`
	ClaimStatus ClaimStatus `json:"claimStatus"`
	IsActive    bool        `json:"isActive"`
	Expiry      uint64      `json:"expiry"` // seconds since epoch
}

// Snapshot is the outcome of one refresh.
type Snapshot struct {
	Policy          PolicyView `json:"policy"`
	ContractBalance *big.Int   `json:"contractBalance"`
	FetchedAt       time.Time  `json:"fetchedAt"`
}

// TxRequest describes one state-changing contract call.
type TxRequest struct {
	Method     Method
	From       common.Address
	Value      *big.Int
	PolicyType uint8    // purchasePolicy
	ExtraDays  *big.Int // extendPolicy
}

// Remote is the contract as seen by a session.
type Remote interface {
	// Submit sends the transaction and blocks until it is mined.
	Submit(ctx context.Context, req TxRequest) (*types.Receipt, error)
	PolicyDetails(ctx context.Context, account common.Address) (PolicyView, error)
	ContractBalance(ctx context.Context) (*big.Int, error)
}

// Provider is the wallet capability: it authorizes accounts, signs, and
// relays calls to the node.
type Provider interface {
	RequestAccounts(ctx context.Context) ([]common.Address, error)
	TransactOpts(ctx context.Context, account common.Address) (*bind.TransactOpts, error)
	Backend(ctx context.Context) (wallet.Backend, error)
}

// RemoteFactory binds the contract at address through p.
type RemoteFactory func(ctx context.Context, p Provider, address common.Address) (Remote, error)

// Session is created once by Initialize and never changes afterwards.
type Session struct {
	Account  common.Address
	Contract Remote
}

// Result is what every action reports back to the hosting UI.
type Result struct {
	ID           uuid.UUID `json:"id"`
	Action       Action    `json:"action"`
	OK           bool      `json:"ok"`
	Message      string    `json:"message,omitempty"`
	Account      string    `json:"account,omitempty"`
	TxHash       string    `json:"txHash,omitempty"`
	ExplorerURL  string    `json:"explorerUrl,omitempty"`
	Snapshot     *Snapshot `json:"snapshot,omitempty"`
	Error        string    `json:"error,omitempty"`
	RefreshError string    `json:"refreshError,omitempty"`
	At           time.Time `json:"at"`
}

// Notifier receives every Result as soon as it is known.
type Notifier interface {
	Notify(Result)
}

type NotifierFunc func(Result)

func (f NotifierFunc) Notify(r Result) { f(r) }
