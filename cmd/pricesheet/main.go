package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/olekukonko/tablewriter"
	"go.uber.org/zap"

	"github.com/fekuna/omnipos-dealer-service/config"
	dealerRepoPkg "github.com/fekuna/omnipos-dealer-service/internal/dealer/repository"
	discRepoPkg "github.com/fekuna/omnipos-dealer-service/internal/discount/repository"
	"github.com/fekuna/omnipos-dealer-service/internal/listquery"
	"github.com/fekuna/omnipos-dealer-service/internal/model"
	"github.com/fekuna/omnipos-dealer-service/internal/pricing"
	prodRepoPkg "github.com/fekuna/omnipos-dealer-service/internal/product/repository"
	"github.com/fekuna/omnipos-dealer-service/pkg/logger"
	"github.com/fekuna/omnipos-dealer-service/pkg/postgres"
)

// pricesheet prints the catalog one dealer can order from, with the dealer's prices.
func main() {
	dealerID := flag.String("dealer", "", "dealer id (required)")
	search := flag.String("search", "", "only products whose name contains this text")
	category := flag.String("category", "", "only products in this category id")
	flag.Parse()

	_ = godotenv.Load()
	cfg := config.LoadEnv()

	appLogger := logger.NewZapLogger(&logger.ZapLoggerConfig{
		IsDevelopment:     true,
		Encoding:          "console",
		Level:             "warn",
		DisableStacktrace: true,
	})
	defer appLogger.Sync()

	if *dealerID == "" {
		fmt.Fprintln(os.Stderr, "usage: pricesheet -dealer <id> [-search text] [-category id]")
		os.Exit(2)
	}

	db, err := postgres.NewPostgres(&postgres.Config{
		Host:            cfg.Postgres.Host,
		Port:            cfg.Postgres.Port,
		User:            cfg.Postgres.User,
		Password:        cfg.Postgres.Password,
		DBName:          cfg.Postgres.DBName,
		SSLMode:         cfg.Postgres.SSLMode,
		MaxOpenConns:    2,
		MaxIdleConns:    1,
		ConnMaxLifetime: time.Minute,
	})
	if err != nil {
		appLogger.Fatal("Could not connect to database", zap.Error(err))
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	dealer, err := dealerRepoPkg.NewPGRepository(db).FindByID(ctx, *dealerID)
	if err != nil {
		appLogger.Fatal("Could not load dealer", zap.Error(err))
	}
	if dealer == nil {
		appLogger.Fatal("Dealer not found", zap.String("dealer_id", *dealerID))
	}

	discRepo := discRepoPkg.NewPGRepository(db)
	resolver := pricing.NewResolver(discRepo, cfg.Pricing.FailOpen, appLogger)
	products, err := loadCatalog(ctx, prodRepoPkg.NewPGRepository(db), dealer.ID, *search, *category)
	if err != nil {
		appLogger.Fatal("Could not load catalog", zap.Error(err))
	}

	inputs := make([]pricing.ProductPrice, len(products))
	for i, p := range products {
		inputs[i] = pricing.ProductPrice{ID: p.ID, BasePrice: p.BasePrice, CategoryID: p.CategoryID}
	}
	prices, err := resolver.ResolvePrices(ctx, dealer.ID, inputs)
	if err != nil {
		appLogger.Fatal("Could not resolve prices", zap.Error(err))
	}
	discounts, err := discRepo.FindPercentagesByDealer(ctx, dealer.ID)
	if err != nil {
		appLogger.Warn("Could not load discount percentages", zap.Error(err))
	}

	fmt.Printf("Price sheet for %s (%s)\n", dealer.Name, dealer.CompanyName)
	if err := renderSheet(os.Stdout, sheetRows(products, prices, discounts)); err != nil {
		appLogger.Fatal("Could not render price sheet", zap.Error(err))
	}
}

type catalogReader interface {
	FindCatalog(ctx context.Context, dealerID string, params listquery.Params) (*listquery.Result[model.Product], error)
}

// loadCatalog walks every page of the dealer's visible catalog.
func loadCatalog(ctx context.Context, repo catalogReader, dealerID, search, categoryID string) ([]model.Product, error) {
	params := listquery.Params{Search: search, SortBy: "name", SortOrder: "asc", Page: 1, Limit: listquery.MaxLimit}
	if categoryID != "" {
		params.FilterKey = "category_id"
		params.FilterValue = categoryID
	}

	var all []model.Product
	for {
		res, err := repo.FindCatalog(ctx, dealerID, params)
		if err != nil {
			return nil, err
		}
		all = append(all, res.Data...)
		if params.Page >= res.Meta.TotalPages {
			return all, nil
		}
		params.Page++
	}
}

func sheetRows(products []model.Product, prices, discounts map[string]float64) [][]string {
	rows := make([][]string, 0, len(products))
	for _, p := range products {
		category := "-"
		if p.CategoryName != nil {
			category = *p.CategoryName
		}
		discount := "-"
		if p.CategoryID != nil {
			if pct, ok := discounts[*p.CategoryID]; ok {
				discount = strconv.FormatFloat(pct, 'f', -1, 64) + "%"
			}
		}
		rows = append(rows, []string{
			p.Name,
			category,
			strconv.FormatFloat(p.BasePrice, 'f', 2, 64),
			discount,
			strconv.FormatFloat(prices[p.ID], 'f', 2, 64),
		})
	}
	return rows
}

func renderSheet(w io.Writer, rows [][]string) error {
	table := tablewriter.NewWriter(w)
	table.Header("Product", "Category", "Base Price", "Discount", "Your Price")
	for _, row := range rows {
		if err := table.Append(row); err != nil {
			return err
		}
	}
	return table.Render()
}
