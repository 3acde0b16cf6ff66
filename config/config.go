package config

import "fmt"

type Configs struct {
	Env      string
	LogLevel string

	ApiServer ServerConfigs
	Database  DatabaseConfigs
	Contract  ContractConfigs
	Chain     ChainConfigs
}

type ServerConfigs struct {
	Host string
	Port string
}

func (s ServerConfigs) Address() string {
	return fmt.Sprintf("%s:%s", s.Host, s.Port)
}

type DatabaseConfigs struct {
	Host     string
	Port     string
	Database string
	User     string
	Password string
}

func (d DatabaseConfigs) ConnectionString() string {
	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		d.User,
		d.Password,
		d.Host,
		d.Port,
		d.Database,
	)
}

type ContractConfigs struct {
	// Token symbol reported by the symbol entry point.
	Symbol string

	// Address of this contract's account on the hosting platform,
	// the holder of accumulated payment tokens.
	Address string

	// When true, token ids are the bare decimal value of the mint
	// counter. When false they are the sha256 of the contract owner
	// address and the counter. Resolved once at startup, never probed
	// from the runtime environment.
	UseSimpleSequentialIDs bool

	Payment PaymentConfigs
}

type PaymentConfigs struct {
	// Address of the only payment-token contract whose transfer
	// callbacks are accepted.
	TokenAddress string

	// Inclusive bounds on the accepted purchase amount. A zero
	// MaxAmount means unbounded above.
	MinAmount int64
	MaxAmount int64
}

type ChainConfigs struct {
	// RPC endpoint of the hosting platform node.
	RPCEndpoint string

	// Namespace prefix for host RPC methods.
	RPCName string
}
