package main

import (
	"errors"
	"fmt"
	"log"

	_ "github.com/lib/pq"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"pricebands/facet"
	"pricebands/product"
	"pricebands/product/postgres"
)

func main() {
	cli := &cli{}

	cmd := &cobra.Command{
		Use:     "pricebands: collapse catalog prices into display bands",
		PreRunE: cli.setupConfig,
		RunE:    cli.run,
	}

	var err error

	err = setupFlags(cmd)
	if err != nil {
		log.Fatal(err)
	}

	err = cmd.Execute()
	if err != nil {
		log.Fatal(err)
	}

}

type cli struct {
	cfg cfg
}

type cfg struct {
	Interval decimal.Decimal
	Buckets  int
}

// Reads the config fields from flags or a file
func (c *cli) setupConfig(cmd *cobra.Command, args []string) error {
	var err error

	configFile, err := cmd.Flags().GetString("config-file")
	if err != nil {
		return err
	}

	viper.SetConfigFile(configFile)

	if err = viper.ReadInConfig(); err != nil {
		// allow non-existent config file
		if !errors.As(err, &viper.ConfigFileNotFoundError{}) {
			return err
		}
	}

	c.cfg.Interval, err = decimal.NewFromString(viper.GetString("interval"))
	if err != nil {
		return fmt.Errorf("parsing interval: %v", err)
	}
	c.cfg.Buckets = viper.GetInt("buckets")

	return nil
}

func (c *cli) run(cmd *cobra.Command, args []string) error {
	config, err := postgres.Parse()
	if err != nil {
		return err
	}

	db, err := postgres.Connect(config)
	if err != nil {
		return err
	}
	defer db.Close()

	repo, err := product.NewPostgresRepo(db)
	if err != nil {
		return err
	}

	svc, err := facet.NewService(&facet.Config{Repo: repo})
	if err != nil {
		return err
	}

	bands, err := svc.PriceBands(c.cfg.Interval, c.cfg.Buckets)
	if err != nil {
		return err
	}

	fmt.Println("price bands:")
	for _, b := range bands {
		fmt.Printf("  %s\n", b)
	}

	quantiles, err := svc.PriceQuantiles(0.5, 0.75, 0.9, 0.99)
	if err != nil {
		return err
	}

	fmt.Println("price distribution:")
	for _, q := range quantiles {
		fmt.Printf("  %.0f%% <= %.2f\n", q.Q*100, q.Price)
	}

	return nil
}

func setupFlags(cmd *cobra.Command) error {
	fs := cmd.Flags()

	fs.String("config-file", "", "Path to config file")
	fs.String("interval", "10", "Width of the fine-grained price buckets")
	fs.Int("buckets", 5, "Number of display bands to collapse to")

	return viper.BindPFlags(cmd.Flags())
}
