package domain

import (
	"context"
	"crypto/sha256"
	"encoding/binary"
	"errors"
	"strconv"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/lunamints/nftledger/internal/client"
	xcommon "github.com/lunamints/nftledger/internal/common"
	"github.com/lunamints/nftledger/internal/domain/transfer"
	"github.com/lunamints/nftledger/internal/entity"
	"github.com/lunamints/nftledger/internal/model"
	"github.com/lunamints/nftledger/internal/repository"
	"github.com/lunamints/nftledger/pkg/enum"
	"github.com/lunamints/nftledger/pkg/errorx"
	"github.com/lunamints/nftledger/pkg/xcontext"
	"gorm.io/gorm"
)

type TokenDomain interface {
	Mint(context.Context, *model.MintTokenRequest) (*model.MintTokenResponse, error)
	Properties(context.Context, *model.GetPropertiesRequest) (*model.GetPropertiesResponse, error)
	ListForSale(context.Context, *model.ListForSaleRequest) (*model.ListForSaleResponse, error)
	TokensOf(context.Context, *model.GetTokensOfRequest) (*model.GetTokensOfResponse, error)
	BalanceOf(context.Context, *model.GetBalanceOfRequest) (*model.GetBalanceOfResponse, error)
	TotalSupply(context.Context, *model.GetTotalSupplyRequest) (*model.GetTotalSupplyResponse, error)
	Symbol(context.Context, *model.GetSymbolRequest) (*model.GetSymbolResponse, error)
}

type tokenDomain struct {
	ownerVerifier     *xcommon.ContractOwnerVerifier
	engine            *transfer.Engine
	tokenRepo         repository.TokenRepository
	balanceRepo       repository.BalanceRepository
	accountTokenRepo  repository.AccountTokenRepository
	contractStateRepo repository.ContractStateRepository
	eventRepo         repository.EventRepository
	chainCaller       client.ChainCaller
}

func NewTokenDomain(
	ownerVerifier *xcommon.ContractOwnerVerifier,
	engine *transfer.Engine,
	tokenRepo repository.TokenRepository,
	balanceRepo repository.BalanceRepository,
	accountTokenRepo repository.AccountTokenRepository,
	contractStateRepo repository.ContractStateRepository,
	eventRepo repository.EventRepository,
	chainCaller client.ChainCaller,
) *tokenDomain {
	return &tokenDomain{
		ownerVerifier:     ownerVerifier,
		engine:            engine,
		tokenRepo:         tokenRepo,
		balanceRepo:       balanceRepo,
		accountTokenRepo:  accountTokenRepo,
		contractStateRepo: contractStateRepo,
		eventRepo:         eventRepo,
		chainCaller:       chainCaller,
	}
}

func (d *tokenDomain) Mint(ctx context.Context, req *model.MintTokenRequest) (*model.MintTokenResponse, error) {
	if err := d.ownerVerifier.Verify(ctx); err != nil {
		xcontext.Logger(ctx).Debugf("Mint denied: %v", err)
		return nil, errorx.New(errorx.Unauthorized, "Only the contract owner can mint tokens")
	}

	ctx = xcontext.WithDBTransaction(ctx)
	defer xcontext.WithRollbackDBTransaction(ctx)

	state, err := d.contractStateRepo.Get(ctx)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Unable to get contract state: %v", err)
		return nil, errorx.Unknown
	}

	tokenID := newTokenID(ctx, state)
	if err := d.contractStateRepo.Save(ctx, state); err != nil {
		xcontext.Logger(ctx).Errorf("Unable to advance token counter: %v", err)
		return nil, errorx.Unknown
	}

	token := &entity.Token{
		ID:          tokenID,
		Owner:       entity.EmptyOwner,
		Name:        req.Name,
		Description: req.Description,
		ImageURL:    req.ImageURL,
	}

	if err := d.engine.Mint(ctx, token); err != nil {
		return nil, err
	}

	event := &entity.EventLog{
		ID:      xcontext.SnowFlake(ctx).Generate().Int64(),
		Name:    entity.EventNewTokenCreated,
		TokenID: tokenID,
		Amount:  1,
		Payload: entity.Map{"name": req.Name},
	}
	if err := d.eventRepo.Create(ctx, event); err != nil {
		xcontext.Logger(ctx).Errorf("Unable to record mint event: %v", err)
		return nil, errorx.Unknown
	}

	xcontext.WithCommitDBTransaction(ctx)

	xcontext.Logger(ctx).Infof("Minted new token %q with id %s", req.Name, tokenID)
	return &model.MintTokenResponse{TokenID: tokenID}, nil
}

// newTokenID advances the mint counter and derives the next id.
// Counter values are never reused, so ids stay unique for the life of
// the contract in both modes.
func newTokenID(ctx context.Context, state *entity.ContractState) string {
	id := state.TokenCounter
	state.TokenCounter++

	if xcontext.Configs(ctx).Contract.UseSimpleSequentialIDs {
		return strconv.FormatInt(id, 10)
	}

	var counter [8]byte
	binary.BigEndian.PutUint64(counter[:], uint64(id))
	owner := common.HexToAddress(state.OwnerAddress)
	sum := sha256.Sum256(append(owner.Bytes(), counter[:]...))
	return hexutil.Encode(sum[:])
}

func (d *tokenDomain) Properties(ctx context.Context, req *model.GetPropertiesRequest) (*model.GetPropertiesResponse, error) {
	token, err := d.tokenRepo.GetByID(ctx, req.TokenID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found token %s", req.TokenID)
		}

		xcontext.Logger(ctx).Errorf("Unable to get token %s: %v", req.TokenID, err)
		return nil, errorx.Unknown
	}

	return &model.GetPropertiesResponse{
		Properties: map[string]any{
			"owner":         token.Owner,
			"name":          token.Name,
			"description":   token.Description,
			"image_url":     token.ImageURL,
			"is_for_sale":   token.ForSale,
			"allowed_buyer": token.AllowedBuyer,
			"sale_type":     string(token.SaleType),
			"sale_price":    token.SalePrice,
		},
	}, nil
}

func (d *tokenDomain) ListForSale(ctx context.Context, req *model.ListForSaleRequest) (*model.ListForSaleResponse, error) {
	saleType, err := enum.ToEnum[entity.SaleType](req.SaleType)
	if err != nil {
		return nil, errorx.New(errorx.InvalidArgument, "Invalid sale type %s", req.SaleType)
	}

	if req.SalePrice < 0 {
		return nil, errorx.New(errorx.InvalidArgument, "Negative sale price")
	}

	if req.AllowedBuyer != "" && !common.IsHexAddress(req.AllowedBuyer) {
		return nil, errorx.New(errorx.InvalidArgument, "Invalid allowed buyer address")
	}

	ctx = xcontext.WithDBTransaction(ctx)
	defer xcontext.WithRollbackDBTransaction(ctx)

	token, err := d.tokenRepo.GetByID(ctx, req.TokenID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found token %s", req.TokenID)
		}

		xcontext.Logger(ctx).Errorf("Unable to get token %s: %v", req.TokenID, err)
		return nil, errorx.Unknown
	}

	if err := d.verifySeller(ctx, token); err != nil {
		xcontext.Logger(ctx).Debugf("Listing denied: %v", err)
		return nil, errorx.New(errorx.Unauthorized,
			"Only the token owner or the contract owner can make a token eligible for sale")
	}

	token.ForSale = true
	token.SaleType = saleType
	token.SalePrice = req.SalePrice
	token.AllowedBuyer = ""
	if req.AllowedBuyer != "" {
		token.AllowedBuyer = common.HexToAddress(req.AllowedBuyer).Hex()
	}

	if err := d.tokenRepo.Save(ctx, token); err != nil {
		xcontext.Logger(ctx).Errorf("Unable to update token %s: %v", req.TokenID, err)
		return nil, errorx.Unknown
	}

	xcontext.WithCommitDBTransaction(ctx)
	return &model.ListForSaleResponse{}, nil
}

// verifySeller accepts the witnessed token owner or the contract
// owner. Pool-held tokens have no owner to speak for them, so only the
// contract owner can list those.
func (d *tokenDomain) verifySeller(ctx context.Context, token *entity.Token) error {
	sender := xcontext.RequestSender(ctx)
	if token.IsOwned() && sender.Hex() == token.Owner {
		witnessed, err := d.chainCaller.CheckWitness(ctx, sender)
		if err == nil && witnessed {
			return nil
		}
	}

	return d.ownerVerifier.Verify(ctx)
}

func (d *tokenDomain) TokensOf(ctx context.Context, req *model.GetTokensOfRequest) (*model.GetTokensOfResponse, error) {
	if !common.IsHexAddress(req.Owner) {
		return nil, errorx.New(errorx.InvalidArgument, "Invalid owner address")
	}

	records, err := d.accountTokenRepo.GetByOwner(ctx, common.HexToAddress(req.Owner).Hex())
	if err != nil {
		xcontext.Logger(ctx).Errorf("Unable to get tokens of %s: %v", req.Owner, err)
		return nil, errorx.Unknown
	}

	ids := make([]string, 0, len(records))
	for _, record := range records {
		ids = append(ids, record.TokenID)
	}

	return &model.GetTokensOfResponse{TokenIDs: ids}, nil
}

func (d *tokenDomain) BalanceOf(ctx context.Context, req *model.GetBalanceOfRequest) (*model.GetBalanceOfResponse, error) {
	if !common.IsHexAddress(req.Owner) {
		return nil, errorx.New(errorx.InvalidArgument, "Invalid owner address")
	}

	balance, err := d.balanceRepo.Get(ctx, common.HexToAddress(req.Owner).Hex())
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &model.GetBalanceOfResponse{Balance: 0}, nil
		}

		xcontext.Logger(ctx).Errorf("Unable to get balance of %s: %v", req.Owner, err)
		return nil, errorx.Unknown
	}

	return &model.GetBalanceOfResponse{Balance: balance.Amount}, nil
}

func (d *tokenDomain) TotalSupply(ctx context.Context, req *model.GetTotalSupplyRequest) (*model.GetTotalSupplyResponse, error) {
	state, err := d.contractStateRepo.Get(ctx)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &model.GetTotalSupplyResponse{TotalSupply: 0}, nil
		}

		xcontext.Logger(ctx).Errorf("Unable to get contract state: %v", err)
		return nil, errorx.Unknown
	}

	return &model.GetTotalSupplyResponse{TotalSupply: state.TotalSupply}, nil
}

func (d *tokenDomain) Symbol(ctx context.Context, req *model.GetSymbolRequest) (*model.GetSymbolResponse, error) {
	return &model.GetSymbolResponse{Symbol: xcontext.Configs(ctx).Contract.Symbol}, nil
}
