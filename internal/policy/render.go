package policy

import (
	"fmt"
	"io"
	"math/big"
	"strings"
	"sync"
	"time"

	"github.com/quantumauth-io/quantum-go-utils/log"

	"github.com/quantumauth-io/policy-client/internal/constants"
	"github.com/quantumauth-io/policy-client/internal/units"
)

// Display is a surface with named text regions. Each SetText replaces the
// region's content wholesale.
type Display interface {
	SetText(region, text string)
}

// MemoryDisplay keeps the latest text per region.
type MemoryDisplay struct {
	mu      sync.RWMutex
	regions map[string]string
}

func NewMemoryDisplay() *MemoryDisplay {
	return &MemoryDisplay{regions: make(map[string]string)}
}

func (d *MemoryDisplay) SetText(region, text string) {
	d.mu.Lock()
	d.regions[region] = text
	d.mu.Unlock()
}

func (d *MemoryDisplay) Text(region string) string {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.regions[region]
}

// Regions returns a copy of all regions.
func (d *MemoryDisplay) Regions() map[string]string {
	d.mu.RLock()
	defer d.mu.RUnlock()
	out := make(map[string]string, len(d.regions))
	for k, v := range d.regions {
		out[k] = v
	}
	return out
}

// WriterDisplay prints each update to W.
type WriterDisplay struct {
	mu sync.Mutex
	W  io.Writer
}

func (d *WriterDisplay) SetText(region, text string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	_, _ = fmt.Fprintf(d.W, "[%s]\n%s\n", region, text)
}

// Renderer turns a Snapshot into display text.
type Renderer struct {
	Symbol     string
	Decimals   uint8
	TimeLayout string
	Location   *time.Location
}

func DefaultRenderer() Renderer {
	return Renderer{
		Symbol:     constants.NativeSymbol,
		Decimals:   constants.NativeDecimals,
		TimeLayout: constants.DefaultTimeLayout,
		Location:   time.Local,
	}
}

func (r Renderer) amount(v *big.Int) string {
	return units.Format(v, r.Decimals) + " " + r.Symbol
}

// maxExpiry is 9999-12-31T23:59:59Z, the last second with a four digit year.
const maxExpiry = 253402300799

// FormatExpiry renders seconds since epoch in the configured zone.
func (r Renderer) FormatExpiry(sec uint64) string {
	loc := r.Location
	if loc == nil {
		loc = time.Local
	}
	layout := r.TimeLayout
	if layout == "" {
		layout = constants.DefaultTimeLayout
	}
	if sec > maxExpiry {
		sec = maxExpiry
	}
	return time.Unix(int64(sec), 0).In(loc).Format(layout)
}

func (r Renderer) PolicyText(p PolicyView) string {
	if !p.ClaimStatus.Valid() {
		log.Warn("claim status out of range", "value", uint8(p.ClaimStatus))
	}

	lines := []string{
		fmt.Sprintf("Type: %d", p.PolicyType),
		"Premium: " + r.amount(p.Premium),
		"Coverage: " + r.amount(p.Coverage),
		"Status: " + p.ClaimStatus.String(),
		fmt.Sprintf("Active: %t", p.IsActive),
		"Expiry: " + r.FormatExpiry(p.Expiry),
	}
	return strings.Join(lines, "\n")
}

func (r Renderer) BalanceText(balance *big.Int) string {
	return "Contract Balance: " + r.amount(balance)
}

// Render writes both regions for snap.
func (r Renderer) Render(d Display, snap *Snapshot) {
	d.SetText(constants.RegionPolicyInfo, r.PolicyText(snap.Policy))
	d.SetText(constants.RegionContractBalance, r.BalanceText(snap.ContractBalance))
}
