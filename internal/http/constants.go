package http

import "time"

const JSONKeyError = "error"

const (
	HTTPErrorForbiddenText     = "forbidden"
	HTTPErrorForbiddenHostText = "forbidden host"
)

// API paths
const (
	PathHealth   = "/health"
	PathState    = "/state"
	PathSession  = "/session"
	PathRefresh  = "/refresh"
	PathPurchase = "/policy/purchase"
	PathClaim    = "/policy/claim"
	PathCancel   = "/policy/cancel"
	PathExtend   = "/policy/extend"
	PathRenew    = "/policy/renew"
	PathDonate   = "/donate"
)

const (
	corsMaxAge      = 10 * time.Minute
	shutdownTimeout = 5 * time.Second
	readHeaderLimit = 10 * time.Second
)
