package policy

import (
	"context"
	"fmt"
	"strings"

	"github.com/cockroachdb/errors"

	"github.com/quantumauth-io/policy-client/internal/units"
	"github.com/quantumauth-io/policy-client/internal/wallet"
)

var (
	ErrProviderUnavailable = wallet.ErrUnavailable
	ErrAuthorizationDenied = wallet.ErrDenied
	ErrInvalidAmountFormat = units.ErrInvalidAmount

	// ErrRemoteCall matches every *RemoteCallError.
	ErrRemoteCall = errors.New("remote call failed")

	ErrSessionNotReady = errors.New("session not initialized; connect a wallet first")
	ErrSessionActive   = errors.New("session already initialized")
)

// FailureKind tells apart the ways a submitted call can fail.
type FailureKind string

const (
	KindRejected          FailureKind = "rejected"
	KindInsufficientFunds FailureKind = "insufficient-funds"
	KindReverted          FailureKind = "reverted"
	KindNotDeployed       FailureKind = "not-deployed"
	KindTransport         FailureKind = "transport"
)

// RemoteCallError is a failed contract query or transaction.
type RemoteCallError struct {
	Method Method
	Kind   FailureKind
	TxHash string // set once the transaction was broadcast
	Err    error
}

func (e *RemoteCallError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s %s", e.Method, e.Kind)
	if e.TxHash != "" {
		fmt.Fprintf(&b, " (tx %s)", e.TxHash)
	}
	if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}
	return b.String()
}

func (e *RemoteCallError) Unwrap() error { return e.Err }

func (e *RemoteCallError) Is(target error) bool { return target == ErrRemoteCall }

func remoteErr(method Method, err error) error {
	if err == nil {
		return nil
	}
	var rce *RemoteCallError
	if errors.As(err, &rce) {
		return err
	}
	return &RemoteCallError{Method: method, Kind: classify(err), Err: err}
}

// classify maps node and wallet errors onto a FailureKind. Nodes only report
// these as text, so matching is on the message.
func classify(err error) FailureKind {
	switch {
	case errors.Is(err, wallet.ErrDenied):
		return KindRejected
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return KindTransport
	}

	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "insufficient funds"):
		return KindInsufficientFunds
	case strings.Contains(msg, "execution reverted"), strings.Contains(msg, "revert"):
		return KindReverted
	case strings.Contains(msg, "user rejected"), strings.Contains(msg, "user denied"):
		return KindRejected
	default:
		return KindTransport
	}
}
