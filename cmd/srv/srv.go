package main

import (
	"context"
	"net/http"
	"os"
	"strconv"

	"github.com/bwmarrin/snowflake"
	"github.com/ethereum/go-ethereum/rpc"
	"github.com/lunamints/nftledger/api"
	"github.com/lunamints/nftledger/config"
	"github.com/lunamints/nftledger/internal/client"
	xcommon "github.com/lunamints/nftledger/internal/common"
	"github.com/lunamints/nftledger/internal/domain"
	"github.com/lunamints/nftledger/internal/domain/transfer"
	"github.com/lunamints/nftledger/internal/model"
	"github.com/lunamints/nftledger/internal/repository"
	"github.com/lunamints/nftledger/migration"
	"github.com/lunamints/nftledger/pkg/logger"
	"github.com/lunamints/nftledger/pkg/xcontext"
	"github.com/urfave/cli/v2"

	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type srv struct {
	app *cli.App

	configs config.Configs
	logger  logger.Logger
	db      *gorm.DB
	node    *snowflake.Node

	chainCaller client.ChainCaller

	tokenRepo         repository.TokenRepository
	balanceRepo       repository.BalanceRepository
	accountTokenRepo  repository.AccountTokenRepository
	contractStateRepo repository.ContractStateRepository
	eventRepo         repository.EventRepository

	tokenDomain    domain.TokenDomain
	contractDomain domain.ContractDomain
	paymentDomain  domain.PaymentDomain

	mux    *http.ServeMux
	server *http.Server
}

func (s *srv) loadConfig() {
	s.configs = config.Configs{
		Env:      getEnv("ENV", "local"),
		LogLevel: getEnv("LOG_LEVEL", "INFO"),
		ApiServer: config.ServerConfigs{
			Host: getEnv("HOST", "localhost"),
			Port: getEnv("PORT", "8080"),
		},
		Database: config.DatabaseConfigs{
			Host:     getEnv("MYSQL_HOST", "localhost"),
			Port:     getEnv("MYSQL_PORT", "3306"),
			Database: getEnv("MYSQL_DATABASE", "nftledger"),
			User:     getEnv("MYSQL_USER", "root"),
			Password: getEnv("MYSQL_PASSWORD", "secret"),
		},
		Contract: config.ContractConfigs{
			Symbol:                 getEnv("CONTRACT_SYMBOL", "LUNAMINTS"),
			Address:                getEnv("CONTRACT_ADDRESS", ""),
			UseSimpleSequentialIDs: getEnv("USE_SIMPLE_SEQUENTIAL_IDS", "false") == "true",
			Payment: config.PaymentConfigs{
				TokenAddress: getEnv("PAYMENT_TOKEN_ADDRESS", ""),
				MinAmount:    getInt64Env("PAYMENT_MIN_AMOUNT", 1),
				MaxAmount:    getInt64Env("PAYMENT_MAX_AMOUNT", 0),
			},
		},
		Chain: config.ChainConfigs{
			RPCEndpoint: getEnv("CHAIN_RPC_ENDPOINT", "http://localhost:10332"),
			RPCName:     getEnv("CHAIN_RPC_NAME", "host"),
		},
	}
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}

	return fallback
}

func getInt64Env(key string, fallback int64) int64 {
	value, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}

	parsed, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return fallback
	}

	return parsed
}

func (s *srv) loadLogger() {
	s.logger = logger.NewLogger(logger.ParseLevel(s.configs.LogLevel))
}

func (s *srv) loadDatabase() {
	var err error
	if s.configs.Env == "local" || s.configs.Env == "testing" {
		s.db, err = gorm.Open(sqlite.Open("nftledger.db"), &gorm.Config{})
	} else {
		s.db, err = gorm.Open(mysql.Open(s.configs.Database.ConnectionString()), &gorm.Config{})
	}

	if err != nil {
		panic(err)
	}
}

func (s *srv) loadSnowFlake() {
	node, err := snowflake.NewNode(1)
	if err != nil {
		panic(err)
	}

	s.node = node
}

func (s *srv) loadChainCaller() {
	rpcClient, err := rpc.Dial(s.configs.Chain.RPCEndpoint)
	if err != nil {
		panic(err)
	}

	s.chainCaller = client.NewChainCaller(rpcClient)
}

func (s *srv) loadRepos() {
	s.tokenRepo = repository.NewTokenRepository()
	s.balanceRepo = repository.NewBalanceRepository()
	s.accountTokenRepo = repository.NewAccountTokenRepository()
	s.contractStateRepo = repository.NewContractStateRepository()
	s.eventRepo = repository.NewEventRepository()
}

func (s *srv) loadDomains() {
	ownerVerifier := xcommon.NewContractOwnerVerifier(s.contractStateRepo, s.chainCaller)
	engine := transfer.NewEngine(
		s.tokenRepo,
		s.balanceRepo,
		s.accountTokenRepo,
		s.contractStateRepo,
		s.eventRepo,
		s.chainCaller,
	)

	s.tokenDomain = domain.NewTokenDomain(
		ownerVerifier,
		engine,
		s.tokenRepo,
		s.balanceRepo,
		s.accountTokenRepo,
		s.contractStateRepo,
		s.eventRepo,
		s.chainCaller,
	)
	s.contractDomain = domain.NewContractDomain(ownerVerifier, s.contractStateRepo, s.chainCaller)
	s.paymentDomain = domain.NewPaymentDomain(engine, s.tokenRepo)
}

func (s *srv) withAppContext(ctx context.Context) context.Context {
	ctx = xcontext.WithConfigs(ctx, s.configs)
	ctx = xcontext.WithLogger(ctx, s.logger)
	ctx = xcontext.WithDB(ctx, s.db)
	ctx = xcontext.WithSnowFlake(ctx, s.node)
	return ctx
}

func (s *srv) loadEndpoints() {
	s.mux = http.NewServeMux()

	register(s, &api.Endpoint[model.MintTokenRequest, model.MintTokenResponse]{
		Method: http.MethodPost, Path: "/tokens/mint", Handle: s.tokenDomain.Mint,
	})
	register(s, &api.Endpoint[model.GetPropertiesRequest, model.GetPropertiesResponse]{
		Method: http.MethodGet, Path: "/tokens/properties", Handle: s.tokenDomain.Properties,
	})
	register(s, &api.Endpoint[model.ListForSaleRequest, model.ListForSaleResponse]{
		Method: http.MethodPost, Path: "/tokens/list-for-sale", Handle: s.tokenDomain.ListForSale,
	})
	register(s, &api.Endpoint[model.GetTokensOfRequest, model.GetTokensOfResponse]{
		Method: http.MethodGet, Path: "/tokens/of", Handle: s.tokenDomain.TokensOf,
	})
	register(s, &api.Endpoint[model.GetBalanceOfRequest, model.GetBalanceOfResponse]{
		Method: http.MethodGet, Path: "/balances", Handle: s.tokenDomain.BalanceOf,
	})
	register(s, &api.Endpoint[model.GetTotalSupplyRequest, model.GetTotalSupplyResponse]{
		Method: http.MethodGet, Path: "/total-supply", Handle: s.tokenDomain.TotalSupply,
	})
	register(s, &api.Endpoint[model.GetSymbolRequest, model.GetSymbolResponse]{
		Method: http.MethodGet, Path: "/symbol", Handle: s.tokenDomain.Symbol,
	})
	register(s, &api.Endpoint[model.WithdrawRequest, model.WithdrawResponse]{
		Method: http.MethodPost, Path: "/withdraw", Handle: s.contractDomain.Withdraw,
	})
	register(s, &api.Endpoint[model.DeployRequest, model.DeployResponse]{
		Method: http.MethodPost, Path: "/platform/deploy", Handle: s.contractDomain.Deploy,
	})
	register(s, &api.Endpoint[model.UpdateContractRequest, model.UpdateContractResponse]{
		Method: http.MethodPost, Path: "/platform/update", Handle: s.contractDomain.Update,
	})
	register(s, &api.Endpoint[model.PaymentReceivedRequest, model.PaymentReceivedResponse]{
		Method: http.MethodPost, Path: "/platform/payment", Handle: s.paymentDomain.OnPaymentReceived,
	})
}

func register[Request, Response any](s *srv, e *api.Endpoint[Request, Response]) {
	e.Register(s.mux, s.withAppContext)
}

func (s *srv) startApi(*cli.Context) error {
	s.loadConfig()
	s.loadLogger()
	s.loadDatabase()
	s.loadSnowFlake()
	s.loadChainCaller()
	s.loadRepos()
	s.loadDomains()
	s.loadEndpoints()

	if err := migration.AutoMigrate(s.withAppContext(context.Background())); err != nil {
		return err
	}

	s.logger.Infof("Starting api server on %s", s.configs.ApiServer.Address())
	s.server = &http.Server{
		Addr:    s.configs.ApiServer.Address(),
		Handler: s.mux,
	}

	return s.server.ListenAndServe()
}

func (s *srv) migrate(*cli.Context) error {
	s.loadConfig()
	s.loadLogger()
	s.loadDatabase()

	return migration.AutoMigrate(s.withAppContext(context.Background()))
}
