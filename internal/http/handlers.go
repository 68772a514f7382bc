package http

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/quantumauth-io/policy-client/internal/policy"
)

// Actions is the controller surface the HTTP layer drives.
type Actions interface {
	Initialize(ctx context.Context) (policy.Result, error)
	PurchasePolicy(ctx context.Context, policyType uint8, premium string) (policy.Result, error)
	FileClaim(ctx context.Context) (policy.Result, error)
	CancelPolicy(ctx context.Context) (policy.Result, error)
	Donate(ctx context.Context, amount string) (policy.Result, error)
	ExtendPolicy(ctx context.Context, extraDays uint64, payment string) (policy.Result, error)
	RenewPolicy(ctx context.Context, premium string) (policy.Result, error)
	Refresh(ctx context.Context) (policy.Result, error)
	Session() *policy.Session
}

// Regions exposes the current display text.
type Regions interface {
	Regions() map[string]string
}

// Info is static context shown next to the session state.
type Info struct {
	Contract string `json:"contract"`
	Network  string `json:"network"`
	ChainID  uint64 `json:"chainId,omitempty"`
	Explorer string `json:"explorer,omitempty"`
	Version  string `json:"version,omitempty"`
}

type Handler struct {
	actions Actions
	display Regions
	info    Info
}

func NewHandler(actions Actions, display Regions, info Info) *Handler {
	return &Handler{
		actions: actions,
		display: display,
		info:    info,
	}
}

// -------- DTOs --------

type purchaseReq struct {
	PolicyType *uint8 `json:"policyType" binding:"required"`
	Premium    string `json:"premium"`
}

type extendReq struct {
	ExtraDays *uint64 `json:"extraDays" binding:"required"`
	Payment   string  `json:"payment"`
}

type renewReq struct {
	Premium string `json:"premium"`
}

type donateReq struct {
	Amount string `json:"amount"`
}

type stateRes struct {
	Ready   bool              `json:"ready"`
	Account string            `json:"account,omitempty"`
	Regions map[string]string `json:"regions"`
	Info
}

func (h *Handler) Health(c *gin.Context) {
	c.String(http.StatusOK, "ok")
}

// GET /api/state
func (h *Handler) State(c *gin.Context) {
	res := stateRes{Info: h.info, Regions: map[string]string{}}
	if s := h.actions.Session(); s != nil {
		res.Ready = true
		res.Account = s.Account.Hex()
	}
	if h.display != nil {
		res.Regions = h.display.Regions()
	}
	c.JSON(http.StatusOK, res)
}

// POST /api/session
func (h *Handler) Connect(c *gin.Context) {
	h.respond(c)(h.actions.Initialize(c.Request.Context()))
}

// POST /api/refresh
func (h *Handler) Refresh(c *gin.Context) {
	h.respond(c)(h.actions.Refresh(c.Request.Context()))
}

// POST /api/policy/purchase
func (h *Handler) Purchase(c *gin.Context) {
	var req purchaseReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{JSONKeyError: err.Error()})
		return
	}
	h.respond(c)(h.actions.PurchasePolicy(c.Request.Context(), *req.PolicyType, req.Premium))
}

// POST /api/policy/claim
func (h *Handler) Claim(c *gin.Context) {
	h.respond(c)(h.actions.FileClaim(c.Request.Context()))
}

// POST /api/policy/cancel
func (h *Handler) Cancel(c *gin.Context) {
	h.respond(c)(h.actions.CancelPolicy(c.Request.Context()))
}

// POST /api/policy/extend
func (h *Handler) Extend(c *gin.Context) {
	var req extendReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{JSONKeyError: err.Error()})
		return
	}
	h.respond(c)(h.actions.ExtendPolicy(c.Request.Context(), *req.ExtraDays, req.Payment))
}

// POST /api/policy/renew
func (h *Handler) Renew(c *gin.Context) {
	var req renewReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{JSONKeyError: err.Error()})
		return
	}
	h.respond(c)(h.actions.RenewPolicy(c.Request.Context(), req.Premium))
}

// POST /api/donate
func (h *Handler) Donate(c *gin.Context) {
	var req donateReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{JSONKeyError: err.Error()})
		return
	}
	h.respond(c)(h.actions.Donate(c.Request.Context(), req.Amount))
}

// respond writes the action Result with the status its error maps to.
func (h *Handler) respond(c *gin.Context) func(policy.Result, error) {
	return func(res policy.Result, err error) {
		c.JSON(statusFor(err), res)
	}
}
