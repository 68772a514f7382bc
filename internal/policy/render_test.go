package policy

import (
	"bytes"
	"encoding/json"
	"math"
	"math/big"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quantumauth-io/policy-client/internal/constants"
)

func TestClaimStatusLabels(t *testing.T) {
	tests := []struct {
		in    uint8
		want  string
		valid bool
	}{
		{0, "None", true},
		{1, "Filed", true},
		{2, "Approved", true},
		{3, "Rejected", true},
		{4, "Unknown", false},
		{255, "Unknown", false},
	}
	for _, tt := range tests {
		s := ClaimStatus(tt.in)
		assert.Equal(t, tt.want, s.String(), "status %d", tt.in)
		assert.Equal(t, tt.valid, s.Valid(), "status %d", tt.in)
	}
}

func TestPolicyText(t *testing.T) {
	got := utcRenderer().PolicyText(samplePolicy())

	want := "Type: 2\n" +
		"Premium: 1 ETH\n" +
		"Coverage: 5 ETH\n" +
		"Status: Filed\n" +
		"Active: true\n" +
		"Expiry: 11/14/2023, 10:13:20 PM"
	assert.Equal(t, want, got)
}

func TestPolicyTextOutOfRangeStatus(t *testing.T) {
	p := samplePolicy()
	p.ClaimStatus = 9
	p.IsActive = false

	got := utcRenderer().PolicyText(p)
	assert.Contains(t, got, "Status: Unknown")
	assert.Contains(t, got, "Active: false")
	assert.NotContains(t, got, "undefined")
}

func TestFormatExpiryUsesLocation(t *testing.T) {
	r := utcRenderer()
	tokyo := time.FixedZone("JST", 9*60*60)
	r.Location = tokyo
	assert.Equal(t, "11/15/2023, 7:13:20 AM", r.FormatExpiry(1700000000))

	r.TimeLayout = time.RFC3339
	assert.Equal(t, "2023-11-15T07:13:20+09:00", r.FormatExpiry(1700000000))
}

func TestFormatExpiryClampsFarFuture(t *testing.T) {
	r := Renderer{Location: time.UTC}
	got := r.FormatExpiry(math.MaxUint64)
	assert.NotContains(t, got, "1969")
	assert.Equal(t, "12/31/9999, 11:59:59 PM", got)
	assert.Equal(t, got, r.FormatExpiry(math.MaxInt64))
}

func TestBalanceTextCustomCurrency(t *testing.T) {
	r := Renderer{Symbol: "USDC", Decimals: 6, Location: time.UTC}
	assert.Equal(t, "Contract Balance: 12.5 USDC", r.BalanceText(big.NewInt(12_500_000)))
	assert.Equal(t, "Contract Balance: 0 USDC", r.BalanceText(nil))
}

func TestRenderOverwritesRegions(t *testing.T) {
	d := NewMemoryDisplay()
	d.SetText(constants.RegionPolicyInfo, "stale")

	snap := &Snapshot{Policy: samplePolicy(), ContractBalance: new(big.Int).Mul(oneEther, big.NewInt(3))}
	utcRenderer().Render(d, snap)

	assert.Len(t, d.Regions(), 2)
	assert.NotContains(t, d.Text(constants.RegionPolicyInfo), "stale")
	assert.Equal(t, "Contract Balance: 3 ETH", d.Text(constants.RegionContractBalance))
	assert.Contains(t, d.Regions(), constants.RegionContractBalance)
	assert.Contains(t, d.Regions(), constants.RegionPolicyInfo)
}

func TestWriterDisplay(t *testing.T) {
	var buf bytes.Buffer
	d := &WriterDisplay{W: &buf}
	d.SetText(constants.RegionContractBalance, "Contract Balance: 1 ETH")
	assert.Equal(t, "[contractBalance]\nContract Balance: 1 ETH\n", buf.String())
}

func TestSnapshotJSON(t *testing.T) {
	b, err := json.Marshal(Snapshot{Policy: samplePolicy(), ContractBalance: big.NewInt(7)})
	require.NoError(t, err)
	assert.Contains(t, string(b), `"claimStatus":"Filed"`)
	assert.Contains(t, string(b), `"contractBalance":7`)
}
