// Package cmd is for command line interactions with the ncbi application
package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/amdshrif/ncbi-client/config"
	"github.com/amdshrif/ncbi-client/internal/cache"
	"github.com/amdshrif/ncbi-client/internal/eutils"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var cfgFile string

var logger = log.New(os.Stderr)

// RootCmd represents the base command when called without any subcommands.
var RootCmd = &cobra.Command{
	Use: "ncbi",
	Short: `Search, fetch and convert NCBI data.
Query the Entrez databases and work with FASTA and GenBank sequence files`,
	Version: "0.1.0",
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the RootCmd.
func Execute() {
	if err := RootCmd.Execute(); err != nil {
		logger.Fatal(err)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	RootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default $HOME/.ncbi.yaml)")
	RootCmd.PersistentFlags().String("api-key", "", "NCBI API key (default $NCBI_API_KEY)")
	RootCmd.PersistentFlags().String("email", "", "contact email sent with every request")
	RootCmd.PersistentFlags().BoolP("verbose", "v", false, "log debug output")

	viper.BindPFlag("api-key", RootCmd.PersistentFlags().Lookup("api-key"))
	viper.BindPFlag("email", RootCmd.PersistentFlags().Lookup("email"))
	viper.BindPFlag("verbose", RootCmd.PersistentFlags().Lookup("verbose"))
}

// initConfig reads in the config file and ENV variables if set.
func initConfig() {
	config.SetDefaults()

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else if home, err := os.UserHomeDir(); err == nil {
		viper.AddConfigPath(home)
		viper.SetConfigName(".ncbi")
		viper.SetConfigType("yaml")
	}
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		logger.Debug("using config file", "path", viper.ConfigFileUsed())
	}
}

// newClient builds an E-utilities client from the resolved settings. The
// returned closer releases the response cache, when one was opened.
func newClient() (*eutils.Client, func()) {
	conf := config.NewConfig()
	if conf.Verbose {
		logger.SetLevel(log.DebugLevel)
	}

	opts := []eutils.Option{
		eutils.WithAPIKey(conf.APIKey),
		eutils.WithEmail(conf.Email),
		eutils.WithTool(conf.Tool),
		eutils.WithLogger(logger),
	}
	if conf.RateLimit > 0 {
		opts = append(opts, eutils.WithRateLimit(conf.RateLimit))
	}

	closer := func() {}
	if conf.Cache.Enabled {
		store, err := cache.Open(conf.CachePath(), conf.CacheTTL())
		if err != nil {
			logger.Warn("response cache unavailable", "err", err)
		} else {
			opts = append(opts, eutils.WithCache(store))
			closer = func() { store.Close() }
		}
	}

	return eutils.New(opts...), closer
}

// openStore opens the response cache directly, for the cache subcommands.
func openStore() *cache.Store {
	conf := config.NewConfig()
	store, err := cache.Open(conf.CachePath(), conf.CacheTTL())
	if err != nil {
		logger.Fatal("failed to open response cache", "err", err)
	}
	return store
}

// printJSON writes v to stdout as indented JSON.
func printJSON(v interface{}) {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		logger.Fatal("failed to encode output", "err", err)
	}
	fmt.Println(string(b))
}

// writeOutput writes body to the -o file, or stdout when out is empty.
func writeOutput(out, body string) {
	if out == "" {
		fmt.Print(body)
		return
	}
	if err := os.WriteFile(out, []byte(body), 0o644); err != nil {
		logger.Fatal("failed to write output file", "err", err)
	}
}
