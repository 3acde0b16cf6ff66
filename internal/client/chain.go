package client

import (
	"context"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/rpc"
	"github.com/lunamints/nftledger/pkg/xcontext"
)

// ChainCaller is the boundary to the hosting platform: witness
// verification, native-token movement and contract management all
// happen on the other side of it.
type ChainCaller interface {
	// CheckWitness reports whether the platform holds a signature
	// proof that the identity authorized the current transaction.
	CheckWitness(ctx context.Context, identity common.Address) (bool, error)

	// IsContract reports whether the address resolves to a deployed
	// contract rather than a plain account.
	IsContract(ctx context.Context, address common.Address) (bool, error)

	// NativeBalanceOf returns the native payment-token balance held
	// by the given address.
	NativeBalanceOf(ctx context.Context, address common.Address) (*big.Int, error)

	// TransferNative moves native payment tokens between addresses.
	TransferNative(ctx context.Context, from, to common.Address, amount *big.Int) (bool, error)

	// CallTokenReceived invokes the NFT-receipt callback on a
	// recipient contract. An error fails the surrounding transfer.
	CallTokenReceived(ctx context.Context, recipient, from common.Address, amount int64, tokenID string, data []byte) error

	// UpdateContract replaces the running contract code.
	UpdateContract(ctx context.Context, code, manifest []byte) error

	Close()
}

type chainCaller struct {
	client *rpc.Client
}

func NewChainCaller(client *rpc.Client) *chainCaller {
	return &chainCaller{client: client}
}

func (c *chainCaller) CheckWitness(ctx context.Context, identity common.Address) (bool, error) {
	var result bool
	err := c.client.CallContext(ctx, &result, c.fname(ctx, "checkWitness"), identity)
	if err != nil {
		return false, err
	}

	return result, nil
}

func (c *chainCaller) IsContract(ctx context.Context, address common.Address) (bool, error) {
	var result bool
	err := c.client.CallContext(ctx, &result, c.fname(ctx, "isContract"), address)
	if err != nil {
		return false, err
	}

	return result, nil
}

func (c *chainCaller) NativeBalanceOf(ctx context.Context, address common.Address) (*big.Int, error) {
	var result string
	err := c.client.CallContext(ctx, &result, c.fname(ctx, "nativeBalanceOf"), address)
	if err != nil {
		return nil, err
	}

	balance, ok := new(big.Int).SetString(result, 10)
	if !ok {
		return nil, fmt.Errorf("invalid balance %q returned by host", result)
	}

	return balance, nil
}

func (c *chainCaller) TransferNative(ctx context.Context, from, to common.Address, amount *big.Int) (bool, error) {
	var result bool
	err := c.client.CallContext(ctx, &result, c.fname(ctx, "transferNative"), from, to, amount.String())
	if err != nil {
		return false, err
	}

	return result, nil
}

func (c *chainCaller) CallTokenReceived(ctx context.Context, recipient, from common.Address, amount int64, tokenID string, data []byte) error {
	var result bool
	err := c.client.CallContext(ctx, &result, c.fname(ctx, "callTokenReceived"), recipient, from, amount, tokenID, data)
	if err != nil {
		return err
	}

	if !result {
		return fmt.Errorf("receipt callback on %s rejected token %s", recipient.Hex(), tokenID)
	}

	return nil
}

func (c *chainCaller) UpdateContract(ctx context.Context, code, manifest []byte) error {
	return c.client.CallContext(ctx, nil, c.fname(ctx, "updateContract"), code, manifest)
}

func (c *chainCaller) Close() {
	c.client.Close()
}

func (c *chainCaller) fname(ctx context.Context, funcName string) string {
	return fmt.Sprintf("%s_%s", xcontext.Configs(ctx).Chain.RPCName, funcName)
}
