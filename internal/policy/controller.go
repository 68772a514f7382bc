// Package policy is the client session controller for the insurance contract:
// it connects a wallet, submits policy actions, and renders what the contract
// reports back.
package policy

import (
	"context"
	"math/big"
	"sync"
	"sync/atomic"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/ethereum/go-ethereum/common"
	"github.com/google/uuid"
	"github.com/quantumauth-io/quantum-go-utils/log"

	"github.com/quantumauth-io/policy-client/internal/units"
)

const (
	msgConnected = "Wallet connected."
	msgPurchased = "Policy purchased!"
	msgClaimed   = "Claim filed!"
	msgCanceled  = "Policy canceled."
	msgDonated   = "Donation successful."
	msgExtended  = "Policy extended."
	msgRenewed   = "Policy renewed."
	msgRefreshed = "State refreshed."
)

type Controller struct {
	provider  Provider
	contract  common.Address
	newRemote RemoteFactory

	display  Display
	notifier Notifier
	renderer Renderer
	txURL    func(txHash string) string
	now      func() time.Time

	initMu  sync.Mutex
	session atomic.Pointer[Session]

	// renderMu keeps both regions of one snapshot together.
	renderMu sync.Mutex
}

type Option func(*Controller)

func WithDisplay(d Display) Option { return func(c *Controller) { c.display = d } }

func WithNotifier(n Notifier) Option { return func(c *Controller) { c.notifier = n } }

func WithRemoteFactory(f RemoteFactory) Option { return func(c *Controller) { c.newRemote = f } }

func WithRenderer(r Renderer) Option { return func(c *Controller) { c.renderer = r } }

// WithExplorer sets how transaction hashes become links in Results.
func WithExplorer(txURL func(txHash string) string) Option {
	return func(c *Controller) { c.txURL = txURL }
}

// NewController returns an uninitialized controller for the contract at
// address. A nil provider is allowed; Initialize then reports
// ErrProviderUnavailable.
func NewController(provider Provider, address common.Address, opts ...Option) *Controller {
	c := &Controller{
		provider:  provider,
		contract:  address,
		newRemote: DialContract,
		display:   NewMemoryDisplay(),
		renderer:  DefaultRenderer(),
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Session returns the active session, or nil before Initialize succeeds.
func (c *Controller) Session() *Session { return c.session.Load() }

func (c *Controller) Ready() bool { return c.session.Load() != nil }

func (c *Controller) ContractAddress() common.Address { return c.contract }

// Initialize authorizes an account with the provider, binds the contract and
// runs the first refresh. It succeeds at most once per controller.
func (c *Controller) Initialize(ctx context.Context) (Result, error) {
	res := c.newResult(ActionInitialize)

	c.initMu.Lock()
	defer c.initMu.Unlock()

	if c.session.Load() != nil {
		return c.finish(res, ErrSessionActive)
	}
	if c.provider == nil {
		return c.finish(res, errors.Wrap(ErrProviderUnavailable, "install or create a wallet to continue"))
	}

	accounts, err := c.provider.RequestAccounts(ctx)
	if err != nil {
		if !errors.Is(err, ErrProviderUnavailable) && !errors.Is(err, ErrAuthorizationDenied) {
			err = errors.Wrapf(ErrAuthorizationDenied, "request accounts: %v", err)
		}
		return c.finish(res, err)
	}
	if len(accounts) == 0 {
		return c.finish(res, errors.Wrap(ErrAuthorizationDenied, "provider returned no accounts"))
	}
	account := accounts[0]

	remote, err := c.newRemote(ctx, c.provider, c.contract)
	if err != nil {
		return c.finish(res, err)
	}

	s := &Session{Account: account, Contract: remote}
	c.session.Store(s)
	log.Info("session ready", "account", account.Hex(), "contract", c.contract.Hex())

	res.OK = true
	res.Account = account.Hex()
	res.Message = msgConnected
	return c.refreshAfter(ctx, s, res)
}

func (c *Controller) PurchasePolicy(ctx context.Context, policyType uint8, premium string) (Result, error) {
	return c.transact(ctx, call{
		action:  ActionPurchase,
		req:     TxRequest{Method: MethodPurchasePolicy, PolicyType: policyType},
		payable: true,
		amount:  premium,
		okMsg:   msgPurchased,
		refresh: true,
	})
}

func (c *Controller) FileClaim(ctx context.Context) (Result, error) {
	return c.transact(ctx, call{
		action:  ActionClaim,
		req:     TxRequest{Method: MethodFileClaim},
		okMsg:   msgClaimed,
		refresh: true,
	})
}

func (c *Controller) CancelPolicy(ctx context.Context) (Result, error) {
	return c.transact(ctx, call{
		action:  ActionCancel,
		req:     TxRequest{Method: MethodCancelPolicy},
		okMsg:   msgCanceled,
		refresh: true,
	})
}

// Donate does not refresh: a donation leaves the caller's policy unchanged.
func (c *Controller) Donate(ctx context.Context, amount string) (Result, error) {
	return c.transact(ctx, call{
		action:  ActionDonate,
		req:     TxRequest{Method: MethodDonate},
		payable: true,
		amount:  amount,
		okMsg:   msgDonated,
	})
}

// ExtendPolicy does not refresh.
func (c *Controller) ExtendPolicy(ctx context.Context, extraDays uint64, payment string) (Result, error) {
	return c.transact(ctx, call{
		action:  ActionExtend,
		req:     TxRequest{Method: MethodExtendPolicy, ExtraDays: new(big.Int).SetUint64(extraDays)},
		payable: true,
		amount:  payment,
		okMsg:   msgExtended,
	})
}

func (c *Controller) RenewPolicy(ctx context.Context, premium string) (Result, error) {
	return c.transact(ctx, call{
		action:  ActionRenew,
		req:     TxRequest{Method: MethodRenewPolicy},
		payable: true,
		amount:  premium,
		okMsg:   msgRenewed,
		refresh: true,
	})
}

// Refresh queries the policy and contract balance and overwrites both display
// regions. If either query fails nothing is written.
func (c *Controller) Refresh(ctx context.Context) (Result, error) {
	res := c.newResult(ActionRefresh)
	s := c.session.Load()
	if s == nil {
		return c.finish(res, ErrSessionNotReady)
	}
	res.Account = s.Account.Hex()

	snap, err := c.refresh(ctx, s)
	if err != nil {
		return c.finish(res, err)
	}
	res.OK = true
	res.Message = msgRefreshed
	res.Snapshot = snap
	return c.finish(res, nil)
}

type call struct {
	action  Action
	req     TxRequest
	payable bool
	amount  string // main unit, payable calls only
	okMsg   string
	refresh bool
}

// transact submits one state-changing call and waits for it to be mined.
// Overlapping calls are not ordered.
func (c *Controller) transact(ctx context.Context, cl call) (Result, error) {
	res := c.newResult(cl.action)
	s := c.session.Load()
	if s == nil {
		return c.finish(res, ErrSessionNotReady)
	}
	res.Account = s.Account.Hex()

	req := cl.req
	if cl.payable {
		value, err := units.ToSmallest(cl.amount, c.renderer.Decimals)
		if err != nil {
			return c.finish(res, err)
		}
		req.Value = value
	}
	req.From = s.Account

	receipt, err := s.Contract.Submit(ctx, req)
	if err != nil {
		var rce *RemoteCallError
		if errors.As(err, &rce) && rce.TxHash != "" {
			res.TxHash = rce.TxHash
			res.ExplorerURL = c.explorerURL(rce.TxHash)
		}
		return c.finish(res, err)
	}

	res.OK = true
	res.Message = cl.okMsg
	res.TxHash = receipt.TxHash.Hex()
	res.ExplorerURL = c.explorerURL(res.TxHash)

	if !cl.refresh {
		return c.finish(res, nil)
	}
	return c.refreshAfter(ctx, s, res)
}

// refreshAfter notifies the successful action, then refreshes. A failed
// refresh does not undo the action; it is reported in RefreshError.
func (c *Controller) refreshAfter(ctx context.Context, s *Session, res Result) (Result, error) {
	c.notify(res)

	snap, err := c.refresh(ctx, s)
	if err != nil {
		log.Error("refresh after action failed", "action", res.Action, "error", err)
		res.RefreshError = err.Error()
		return res, nil
	}
	res.Snapshot = snap
	return res, nil
}

func (c *Controller) refresh(ctx context.Context, s *Session) (*Snapshot, error) {
	policy, err := s.Contract.PolicyDetails(ctx, s.Account)
	if err != nil {
		return nil, err
	}
	balance, err := s.Contract.ContractBalance(ctx)
	if err != nil {
		return nil, err
	}

	snap := &Snapshot{Policy: policy, ContractBalance: balance, FetchedAt: c.now()}
	if c.display != nil {
		c.renderMu.Lock()
		c.renderer.Render(c.display, snap)
		c.renderMu.Unlock()
	}
	return snap, nil
}

func (c *Controller) newResult(action Action) Result {
	return Result{ID: uuid.New(), Action: action, At: c.now()}
}

// finish records err on res, logs, and notifies.
func (c *Controller) finish(res Result, err error) (Result, error) {
	if err != nil {
		res.OK = false
		res.Error = err.Error()
		log.Error("action failed", "action", res.Action, "error", err)
	}
	c.notify(res)
	return res, err
}

func (c *Controller) notify(res Result) {
	if c.notifier != nil {
		c.notifier.Notify(res)
	}
}

func (c *Controller) explorerURL(txHash string) string {
	if c.txURL == nil {
		return ""
	}
	return c.txURL(txHash)
}
