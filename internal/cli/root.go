package cli

import (
	"context"
	"fmt"

	account "auction-house/internal/accountService"
	auction "auction-house/internal/auctionService"
	"auction-house/internal/config"
	"auction-house/internal/repository"
	"auction-house/utils"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
)

var (
	cfgFile string
	cfg     *config.Config
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "auction",
	Short: "Auction house - list items, bid on them and keep a watchlist",
	Long: `Auction house is a server-rendered online auction site.

It provides:
- Listings with a base bid, closable by their author
- Bidding where every new bid must beat the current highest
- Comments and a per-user watchlist
- SQLite, PostgreSQL and MySQL storage`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Name() == "help" {
			return nil
		}

		var err error
		cfg, err = config.Load(cfgFile)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		if err := utils.Configure(cfg.Log.Level, cfg.Log.Format); err != nil {
			return err
		}
		gin.SetMode(cfg.Server.GinMode)
		return nil
	},
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./auction.yml or /etc/auction/auction.yml)")
}

// Services holds all initialized services
type Services struct {
	DB       *repository.DB
	Auctions *auction.AuctionService
	Accounts *account.AccountService
}

// initServices opens the database, creates missing tables and wires the services
func initServices(ctx context.Context) (*Services, error) {
	db, err := repository.Open(cfg.RepositoryOptions())
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}
	if err := db.Migrate(ctx); err != nil {
		db.Close()
		return nil, err
	}

	repo := repository.NewSQLRepo(db)
	return &Services{
		DB:       db,
		Auctions: auction.NewAuctionService(repo),
		Accounts: account.NewAccountService(repo, []byte(cfg.Session.Secret), cfg.Session.TTL),
	}, nil
}

// Close closes all resources
func (s *Services) Close() {
	if s.DB != nil {
		s.DB.Close()
	}
}
