package main

import "github.com/urfave/cli/v2"

func (s *srv) loadApp() {
	app := cli.NewApp()
	app.Name = "nftledger"
	app.Usage = "NFT issuance and transfer ledger"
	app.Action = cli.ShowAppHelp
	app.Commands = []*cli.Command{
		{
			Action:      s.startApi,
			Name:        "api",
			Usage:       "Start the ledger api",
			Category:    "Api",
			Description: `Serves the contract entry points over HTTP for the platform host.`,
		},
		{
			Action:      s.migrate,
			Name:        "migrate",
			Usage:       "Run database migration",
			Category:    "Database",
			Description: `Creates or updates the ledger tables.`,
		},
	}

	s.app = app
}
