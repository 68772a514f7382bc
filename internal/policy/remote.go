package policy

import (
	"context"
	"math/big"

	"github.com/cockroachdb/errors"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/quantumauth-io/quantum-go-utils/log"

	"github.com/quantumauth-io/policy-client/internal/contracts/bindings/go/insurance"
	"github.com/quantumauth-io/policy-client/internal/wallet"
)

// Signer produces signing options for an account.
type Signer interface {
	TransactOpts(ctx context.Context, account common.Address) (*bind.TransactOpts, error)
}

// nonceResetter is implemented by signers that reserve nonces locally and
// must release them when a transaction never reaches the node.
type nonceResetter interface {
	ResetNonce()
}

// ContractRemote is the Remote backed by the deployed insurance contract.
type ContractRemote struct {
	address  common.Address
	backend  wallet.Backend
	signer   Signer
	contract *insurance.Insurance
}

// NewContractRemote binds the contract at address and checks that code is
// deployed there.
func NewContractRemote(ctx context.Context, backend wallet.Backend, signer Signer, address common.Address) (*ContractRemote, error) {
	if backend == nil || signer == nil {
		return nil, errors.New("contract remote: missing backend or signer")
	}

	code, err := backend.CodeAt(ctx, address, nil)
	if err != nil {
		return nil, remoteErr(methodGetCode, errors.Wrap(err, "get contract code"))
	}
	if len(code) == 0 {
		return nil, &RemoteCallError{
			Method: methodGetCode,
			Kind:   KindNotDeployed,
			Err:    errors.Newf("no contract code at %s on this network", address.Hex()),
		}
	}

	contract, err := insurance.NewInsurance(address, backend)
	if err != nil {
		return nil, errors.Wrap(err, "bind insurance contract")
	}

	return &ContractRemote{
		address:  address,
		backend:  backend,
		signer:   signer,
		contract: contract,
	}, nil
}

// DialContract is the default RemoteFactory: it binds through the provider's
// own backend and signer.
func DialContract(ctx context.Context, p Provider, address common.Address) (Remote, error) {
	backend, err := p.Backend(ctx)
	if err != nil {
		return nil, err
	}
	r, err := NewContractRemote(ctx, backend, p, address)
	if err != nil {
		return nil, err
	}
	return r, nil
}

func (r *ContractRemote) Submit(ctx context.Context, req TxRequest) (*types.Receipt, error) {
	opts, err := r.signer.TransactOpts(ctx, req.From)
	if err != nil {
		return nil, remoteErr(req.Method, err)
	}
	opts.Context = ctx
	if req.Value != nil {
		opts.Value = new(big.Int).Set(req.Value)
	}

	var tx *types.Transaction
	switch req.Method {
	case MethodPurchasePolicy:
		tx, err = r.contract.PurchasePolicy(opts, req.PolicyType)
	case MethodFileClaim:
		tx, err = r.contract.FileClaim(opts)
	case MethodCancelPolicy:
		tx, err = r.contract.CancelPolicy(opts)
	case MethodDonate:
		tx, err = r.contract.Donate(opts)
	case MethodExtendPolicy:
		days := req.ExtraDays
		if days == nil {
			days = new(big.Int)
		}
		tx, err = r.contract.ExtendPolicy(opts, days)
	case MethodRenewPolicy:
		tx, err = r.contract.RenewPolicy(opts)
	default:
		r.releaseNonce()
		return nil, errors.Newf("unsupported contract method %q", req.Method)
	}
	if err != nil {
		r.releaseNonce()
		return nil, remoteErr(req.Method, err)
	}

	hash := tx.Hash().Hex()
	log.Info("transaction submitted", "method", req.Method, "tx", hash, "value", opts.Value)

	receipt, err := bind.WaitMined(ctx, r.backend, tx)
	if err != nil {
		return nil, &RemoteCallError{Method: req.Method, Kind: classify(err), TxHash: hash, Err: errors.Wrap(err, "wait mined")}
	}
	if receipt.Status != types.ReceiptStatusSuccessful {
		return receipt, &RemoteCallError{
			Method: req.Method,
			Kind:   KindReverted,
			TxHash: hash,
			Err:    errors.New("transaction reverted"),
		}
	}

	log.Info("transaction confirmed", "method", req.Method, "tx", hash, "block", receipt.BlockNumber)
	return receipt, nil
}

func (r *ContractRemote) releaseNonce() {
	if nr, ok := r.signer.(nonceResetter); ok {
		nr.ResetNonce()
	}
}

func (r *ContractRemote) PolicyDetails(ctx context.Context, account common.Address) (PolicyView, error) {
	out, err := r.contract.GetPolicyDetails(&bind.CallOpts{Context: ctx, From: account}, account)
	if err != nil {
		return PolicyView{}, remoteErr(MethodGetPolicyDetails, err)
	}
	if out.Expiry == nil || !out.Expiry.IsInt64() || out.Expiry.Sign() < 0 {
		return PolicyView{}, remoteErr(MethodGetPolicyDetails, errors.Newf("expiry %v out of range", out.Expiry))
	}

	return PolicyView{
		PolicyType:  out.PolicyType,
		Premium:     out.Premium,
		Coverage:    out.Coverage,
		ClaimStatus: ClaimStatus(out.ClaimStatus),
		IsActive:    out.IsActive,
		Expiry:      uint64(out.Expiry.Int64()),
	}, nil
}

func (r *ContractRemote) ContractBalance(ctx context.Context) (*big.Int, error) {
	bal, err := r.contract.GetContractBalance(&bind.CallOpts{Context: ctx})
	if err != nil {
		return nil, remoteErr(MethodGetContractBalance, err)
	}
	return bal, nil
}
