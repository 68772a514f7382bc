package policy

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"runtime"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quantumauth-io/policy-client/internal/constants"
	"github.com/quantumauth-io/policy-client/internal/wallet"
)

var (
	accountA = common.HexToAddress("0xAAAaaAAaaAAaaaAaAAaAaaAAaaAaAaAaaAaAaAAA")
	contract = common.HexToAddress(constants.DefaultContractAddress)
	oneEther = new(big.Int).Exp(big.NewInt(10), big.NewInt(18), nil)
)

type fakeProvider struct {
	accounts []common.Address
	err      error
	calls    int
}

func (f *fakeProvider) RequestAccounts(context.Context) ([]common.Address, error) {
	f.calls++
	return f.accounts, f.err
}

func (f *fakeProvider) TransactOpts(context.Context, common.Address) (*bind.TransactOpts, error) {
	return nil, errors.New("not used")
}

func (f *fakeProvider) Backend(context.Context) (wallet.Backend, error) {
	return nil, errors.New("not used")
}

type fakeRemote struct {
	mu sync.Mutex

	submits   []TxRequest
	submitErr error
	txCount   int64

	policy       PolicyView
	balance      *big.Int
	detailsErr   error
	detailsCalls int
	balanceCalls int
	submitHook   func(TxRequest)
}

func (f *fakeRemote) Submit(_ context.Context, req TxRequest) (*types.Receipt, error) {
	if f.submitHook != nil {
		f.submitHook(req)
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.submits = append(f.submits, req)
	if f.submitErr != nil {
		return nil, f.submitErr
	}
	f.txCount++
	return &types.Receipt{Status: types.ReceiptStatusSuccessful, TxHash: common.BigToHash(big.NewInt(f.txCount))}, nil
}

func (f *fakeRemote) PolicyDetails(context.Context, common.Address) (PolicyView, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.detailsCalls++
	return f.policy, f.detailsErr
}

func (f *fakeRemote) ContractBalance(context.Context) (*big.Int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.balanceCalls++
	return f.balance, nil
}

func (f *fakeRemote) refreshes() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.detailsCalls
}

func (f *fakeRemote) lastSubmit() TxRequest {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.submits[len(f.submits)-1]
}

func samplePolicy() PolicyView {
	return PolicyView{
		PolicyType:  2,
		Premium:     new(big.Int).Set(oneEther),
		Coverage:    new(big.Int).Mul(oneEther, big.NewInt(5)),
		ClaimStatus: ClaimFiled,
		IsActive:    true,
		Expiry:      1700000000,
	}
}

func utcRenderer() Renderer {
	r := DefaultRenderer()
	r.Location = time.UTC
	return r
}

func newTestController(t *testing.T, p Provider, remote *fakeRemote, opts ...Option) (*Controller, *MemoryDisplay) {
	t.Helper()
	display := NewMemoryDisplay()
	base := []Option{
		WithDisplay(display),
		WithRenderer(utcRenderer()),
		WithRemoteFactory(func(_ context.Context, _ Provider, addr common.Address) (Remote, error) {
			require.Equal(t, contract, addr)
			return remote, nil
		}),
	}
	return NewController(p, contract, append(base, opts...)...), display
}

func readyController(t *testing.T, opts ...Option) (*Controller, *fakeRemote, *MemoryDisplay) {
	t.Helper()
	remote := &fakeRemote{policy: samplePolicy(), balance: big.NewInt(0)}
	c, display := newTestController(t, &fakeProvider{accounts: []common.Address{accountA}}, remote, opts...)
	_, err := c.Initialize(context.Background())
	require.NoError(t, err)
	return c, remote, display
}

func TestInitializeBindsFirstAccountAndRefreshesOnce(t *testing.T) {
	remote := &fakeRemote{policy: samplePolicy(), balance: big.NewInt(0)}
	provider := &fakeProvider{accounts: []common.Address{accountA, common.HexToAddress("0xBBB")}}
	c, display := newTestController(t, provider, remote)

	require.False(t, c.Ready())

	res, err := c.Initialize(context.Background())
	require.NoError(t, err)
	assert.True(t, res.OK)
	assert.Equal(t, ActionInitialize, res.Action)
	assert.Equal(t, accountA.Hex(), res.Account)
	require.NotNil(t, res.Snapshot)

	assert.True(t, c.Ready())
	assert.Equal(t, accountA, c.Session().Account)
	assert.Equal(t, 1, provider.calls)
	assert.Equal(t, 1, remote.refreshes())
	assert.Contains(t, display.Text(constants.RegionPolicyInfo), "Status: Filed")
}

func TestInitializeTwiceIsRejected(t *testing.T) {
	c, remote, _ := readyController(t)

	_, err := c.Initialize(context.Background())
	require.ErrorIs(t, err, ErrSessionActive)
	assert.Equal(t, 1, remote.refreshes())
}

func TestInitializeWithoutProvider(t *testing.T) {
	c := NewController(nil, contract)

	res, err := c.Initialize(context.Background())
	require.ErrorIs(t, err, ErrProviderUnavailable)
	assert.False(t, res.OK)
	assert.NotEmpty(t, res.Error)
	assert.False(t, c.Ready())

	actions := map[string]func() (Result, error){
		"purchase": func() (Result, error) { return c.PurchasePolicy(context.Background(), 1, "0.5") },
		"claim":    func() (Result, error) { return c.FileClaim(context.Background()) },
		"cancel":   func() (Result, error) { return c.CancelPolicy(context.Background()) },
		"donate":   func() (Result, error) { return c.Donate(context.Background(), "1") },
		"extend":   func() (Result, error) { return c.ExtendPolicy(context.Background(), 30, "0.1") },
		"renew":    func() (Result, error) { return c.RenewPolicy(context.Background(), "0.5") },
		"refresh":  func() (Result, error) { return c.Refresh(context.Background()) },
	}
	for name, act := range actions {
		t.Run(name, func(t *testing.T) {
			res, err := act()
			require.ErrorIs(t, err, ErrSessionNotReady)
			assert.False(t, res.OK)
		})
	}
}

func TestInitializeProviderErrors(t *testing.T) {
	tests := []struct {
		name     string
		provider *fakeProvider
		want     error
	}{
		{"unavailable", &fakeProvider{err: wallet.ErrUnavailable}, ErrProviderUnavailable},
		{"denied", &fakeProvider{err: wallet.ErrDenied}, ErrAuthorizationDenied},
		{"other failure counts as denial", &fakeProvider{err: errors.New("prompt closed")}, ErrAuthorizationDenied},
		{"no accounts", &fakeProvider{}, ErrAuthorizationDenied},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			remote := &fakeRemote{}
			c, _ := newTestController(t, tt.provider, remote)

			_, err := c.Initialize(context.Background())
			require.ErrorIs(t, err, tt.want)
			assert.False(t, c.Ready())
			assert.Zero(t, remote.refreshes())

			_, err = c.FileClaim(context.Background())
			require.ErrorIs(t, err, ErrSessionNotReady)
		})
	}
}

func TestInitializeRemoteBindFailure(t *testing.T) {
	bindErr := &RemoteCallError{Method: methodGetCode, Kind: KindNotDeployed, Err: errors.New("no code")}
	c := NewController(&fakeProvider{accounts: []common.Address{accountA}}, contract,
		WithRemoteFactory(func(context.Context, Provider, common.Address) (Remote, error) { return nil, bindErr }))

	_, err := c.Initialize(context.Background())
	require.ErrorIs(t, err, ErrRemoteCall)
	assert.False(t, c.Ready())
}

func TestInitializeRefreshFailureKeepsSession(t *testing.T) {
	remote := &fakeRemote{detailsErr: &RemoteCallError{Method: MethodGetPolicyDetails, Kind: KindTransport, Err: errors.New("timeout")}}
	c, display := newTestController(t, &fakeProvider{accounts: []common.Address{accountA}}, remote)

	res, err := c.Initialize(context.Background())
	require.NoError(t, err)
	assert.True(t, res.OK)
	assert.NotEmpty(t, res.RefreshError)
	assert.Nil(t, res.Snapshot)
	assert.True(t, c.Ready())
	assert.Empty(t, display.Regions())
}

func TestPurchasePolicySubmitsConvertedValue(t *testing.T) {
	var notes []Result
	c, remote, _ := readyController(t, WithNotifier(NotifierFunc(func(r Result) { notes = append(notes, r) })))
	before := remote.refreshes()

	res, err := c.PurchasePolicy(context.Background(), 1, "0.5")
	require.NoError(t, err)

	req := remote.lastSubmit()
	assert.Equal(t, MethodPurchasePolicy, req.Method)
	assert.Equal(t, uint8(1), req.PolicyType)
	assert.Equal(t, "500000000000000000", req.Value.String())
	assert.Equal(t, accountA, req.From)

	assert.True(t, res.OK)
	assert.Equal(t, "Policy purchased!", res.Message)
	assert.NotEmpty(t, res.TxHash)
	require.NotNil(t, res.Snapshot)
	assert.Equal(t, before+1, remote.refreshes())

	require.NotEmpty(t, notes)
	last := notes[len(notes)-1]
	assert.Equal(t, ActionPurchase, last.Action)
	assert.True(t, last.OK)
	assert.Equal(t, "Policy purchased!", last.Message)
}

func TestActionsRefreshPolicy(t *testing.T) {
	tests := []struct {
		name    string
		run     func(c *Controller) (Result, error)
		method  Method
		value   string
		message string
		refresh bool
	}{
		{"claim", func(c *Controller) (Result, error) { return c.FileClaim(context.Background()) }, MethodFileClaim, "", "Claim filed!", true},
		{"cancel", func(c *Controller) (Result, error) { return c.CancelPolicy(context.Background()) }, MethodCancelPolicy, "", "Policy canceled.", true},
		{"renew", func(c *Controller) (Result, error) { return c.RenewPolicy(context.Background(), "0.25") }, MethodRenewPolicy, "250000000000000000", "Policy renewed.", true},
		{"donate", func(c *Controller) (Result, error) { return c.Donate(context.Background(), "2") }, MethodDonate, "2000000000000000000", "Donation successful.", false},
		{"extend", func(c *Controller) (Result, error) { return c.ExtendPolicy(context.Background(), 30, "0.1") }, MethodExtendPolicy, "100000000000000000", "Policy extended.", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, remote, _ := readyController(t)
			before := remote.refreshes()

			res, err := tt.run(c)
			require.NoError(t, err)
			assert.True(t, res.OK)
			assert.Equal(t, tt.message, res.Message)

			req := remote.lastSubmit()
			assert.Equal(t, tt.method, req.Method)
			if tt.value == "" {
				assert.Nil(t, req.Value)
			} else {
				require.NotNil(t, req.Value)
				assert.Equal(t, tt.value, req.Value.String())
			}

			if tt.refresh {
				assert.Equal(t, before+1, remote.refreshes())
				assert.NotNil(t, res.Snapshot)
			} else {
				assert.Equal(t, before, remote.refreshes())
				assert.Nil(t, res.Snapshot)
			}
		})
	}
}

func TestExtendPolicyPassesDays(t *testing.T) {
	c, remote, _ := readyController(t)

	_, err := c.ExtendPolicy(context.Background(), 45, "0.1")
	require.NoError(t, err)
	assert.Equal(t, int64(45), remote.lastSubmit().ExtraDays.Int64())
}

func TestInvalidAmountIsNotSubmitted(t *testing.T) {
	c, remote, _ := readyController(t)

	for _, amount := range []string{"", "abc", "-1", "1.2.3", "0.0000000000000000001"} {
		_, err := c.RenewPolicy(context.Background(), amount)
		require.ErrorIs(t, err, ErrInvalidAmountFormat, amount)
	}
	_, err := c.Donate(context.Background(), "1e18")
	require.ErrorIs(t, err, ErrInvalidAmountFormat)
	assert.Empty(t, remote.submits)
}

func TestRemoteFailureIsReported(t *testing.T) {
	c, remote, display := readyController(t, WithExplorer(func(h string) string { return "https://explorer/tx/" + h }))
	before := display.Text(constants.RegionPolicyInfo)
	refreshes := remote.refreshes()

	remote.submitErr = &RemoteCallError{Method: MethodCancelPolicy, Kind: KindReverted, TxHash: "0xdead", Err: errors.New("transaction reverted")}
	res, err := c.CancelPolicy(context.Background())

	require.ErrorIs(t, err, ErrRemoteCall)
	var rce *RemoteCallError
	require.True(t, errors.As(err, &rce))
	assert.Equal(t, KindReverted, rce.Kind)

	assert.False(t, res.OK)
	assert.Equal(t, "0xdead", res.TxHash)
	assert.Equal(t, "https://explorer/tx/0xdead", res.ExplorerURL)
	assert.Contains(t, res.Error, "reverted")
	assert.Equal(t, refreshes, remote.refreshes())
	assert.Equal(t, before, display.Text(constants.RegionPolicyInfo))
}

func TestRefreshFailureLeavesDisplayStale(t *testing.T) {
	c, remote, display := readyController(t)
	before := display.Regions()

	remote.mu.Lock()
	remote.policy.ClaimStatus = ClaimApproved
	remote.detailsErr = &RemoteCallError{Method: MethodGetPolicyDetails, Kind: KindTransport, Err: errors.New("eof")}
	remote.mu.Unlock()

	res, err := c.Refresh(context.Background())
	require.ErrorIs(t, err, ErrRemoteCall)
	assert.False(t, res.OK)
	assert.Equal(t, before, display.Regions())
}

func TestRefreshRendersScenario(t *testing.T) {
	c, _, display := readyController(t)

	res, err := c.Refresh(context.Background())
	require.NoError(t, err)
	assert.True(t, res.OK)

	info := display.Text(constants.RegionPolicyInfo)
	assert.Contains(t, info, "Premium: 1 ETH")
	assert.Contains(t, info, "Coverage: 5 ETH")
	assert.Contains(t, info, "Status: Filed")
	assert.Contains(t, info, "Active: true")
	assert.Contains(t, info, "Expiry: 11/14/2023, 10:13:20 PM")
	assert.Equal(t, "Contract Balance: 0 ETH", display.Text(constants.RegionContractBalance))
}

// Two overlapping renewals are submitted independently; the display ends up
// with whichever refresh wrote last.
func TestConcurrentRenewals(t *testing.T) {
	c, remote, display := readyController(t)

	var started sync.WaitGroup
	started.Add(2)
	release := make(chan struct{})
	remote.submitHook = func(TxRequest) {
		started.Done()
		<-release
	}

	var wg sync.WaitGroup
	results := make([]Result, 2)
	for i, premium := range []string{"1", "2"} {
		wg.Add(1)
		go func(i int, premium string) {
			defer wg.Done()
			results[i], _ = c.RenewPolicy(context.Background(), premium)
		}(i, premium)
	}
	started.Wait()
	close(release)
	wg.Wait()

	values := make([]string, 0, 2)
	for _, s := range remote.submits {
		values = append(values, s.Value.String())
	}
	assert.ElementsMatch(t, []string{"1000000000000000000", "2000000000000000000"}, values)
	assert.True(t, results[0].OK)
	assert.True(t, results[1].OK)
	assert.NotEqual(t, results[0].TxHash, results[1].TxHash)
	assert.True(t, strings.HasPrefix(display.Text(constants.RegionPolicyInfo), "Type: 2"))
}

type snapshotKey struct{}

// taggedRemote answers reads with values derived from the tag on ctx, so
// each refresh fetches a distinguishable snapshot.
type taggedRemote struct{ fakeRemote }

func (r *taggedRemote) PolicyDetails(ctx context.Context, _ common.Address) (PolicyView, error) {
	p := samplePolicy()
	p.PolicyType, _ = ctx.Value(snapshotKey{}).(uint8)
	return p, nil
}

func (r *taggedRemote) ContractBalance(ctx context.Context) (*big.Int, error) {
	k, _ := ctx.Value(snapshotKey{}).(uint8)
	return new(big.Int).Mul(oneEther, big.NewInt(int64(k))), nil
}

type regionWrite struct{ region, text string }

// yieldingDisplay records writes in order and yields between them.
type yieldingDisplay struct {
	mu     sync.Mutex
	writes []regionWrite
}

func (d *yieldingDisplay) SetText(region, text string) {
	d.mu.Lock()
	d.writes = append(d.writes, regionWrite{region, text})
	d.mu.Unlock()
	runtime.Gosched()
}

func TestConcurrentRefreshesRenderWholeSnapshots(t *testing.T) {
	display := &yieldingDisplay{}
	remote := &taggedRemote{}
	c := NewController(&fakeProvider{accounts: []common.Address{accountA}}, contract,
		WithDisplay(display),
		WithRenderer(utcRenderer()),
		WithRemoteFactory(func(context.Context, Provider, common.Address) (Remote, error) {
			return remote, nil
		}),
	)
	_, err := c.Initialize(context.WithValue(context.Background(), snapshotKey{}, uint8(0)))
	require.NoError(t, err)

	const n = 16
	var wg sync.WaitGroup
	for k := 1; k <= n; k++ {
		wg.Add(1)
		go func(k uint8) {
			defer wg.Done()
			res, err := c.Refresh(context.WithValue(context.Background(), snapshotKey{}, k))
			assert.NoError(t, err)
			assert.True(t, res.OK)
		}(uint8(k))
	}
	wg.Wait()

	display.mu.Lock()
	defer display.mu.Unlock()
	require.Len(t, display.writes, 2*(n+1))
	for i := 0; i < len(display.writes); i += 2 {
		info, bal := display.writes[i], display.writes[i+1]
		require.Equal(t, constants.RegionPolicyInfo, info.region)
		require.Equal(t, constants.RegionContractBalance, bal.region)

		var k int
		_, err := fmt.Sscanf(info.text, "Type: %d", &k)
		require.NoError(t, err)
		assert.Equal(t, fmt.Sprintf("Contract Balance: %d ETH", k), bal.text, "write pair %d", i/2)
	}
}

func TestContractAddress(t *testing.T) {
	c, _, _ := readyController(t)
	assert.Equal(t, contract, c.ContractAddress())
}
