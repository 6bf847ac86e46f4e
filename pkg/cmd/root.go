package cmd

import (
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/nekruzvatanshoev/easydrive/pkg/carserv/dal"
	"github.com/nekruzvatanshoev/easydrive/pkg/logging"
)

const (
	RootCmdName  = "easydrive"
	RootCmdShort = "EasyDrive vehicle reviews browser"
	RootCmdLong  = `EasyDrive generates a catalog of reviewed vehicles and lets you browse it
by make and free-text search, eight vehicles at a time.`

	ServeCmdName  = "serve"
	ServeCmdShort = "Serve the browse API over HTTP"
	ServeCmdLong  = `Serve the vehicle catalog over HTTP.

  GET /vehicles?search=&make=&page=   visible page of the filtered catalog
  GET /makes                          makes available as filters
  GET /vehicles/{id}/image            image URL, or the fallback if it does not load`

	BrowseCmdName  = "browse"
	BrowseCmdShort = "Browse the catalog interactively"
	BrowseCmdLong  = `Browse the vehicle catalog from the terminal.

Commands:
  search <text>   filter by make, model or year (empty text clears)
  make <name>     select or unselect a make
  more            load the next page
  makes           list makes and whether they are selected
  quit            leave`
)

const envPrefix = "EASYDRIVE"

var configFile string

var RootCmd = &cobra.Command{
	Use:   RootCmdName,
	Short: RootCmdShort,
	Long:  RootCmdLong,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logging.Configure(&logging.Config{
			Level:  viper.GetString("log.level"),
			Format: viper.GetString("log.format"),
			Output: viper.GetString("log.output"),
		})
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		logging.Close()
	},
	SilenceUsage: true,
}

func Execute() {
	if err := RootCmd.Execute(); err != nil {
		logging.Default().Error().Err(err).Msg("command failed")
		logging.Close()
		os.Exit(-1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	flags := RootCmd.PersistentFlags()
	flags.StringVar(&configFile, "config", "", "config file (default: ./easydrive.yaml)")
	flags.Int("catalog-size", dal.DefaultCatalogSize, "number of generated vehicles")
	flags.String("log-level", "info", "log level (debug, info, warn, error)")
	flags.String("log-format", "console", "log format (console, json)")

	viper.BindPFlag("catalog.size", flags.Lookup("catalog-size"))
	viper.BindPFlag("log.level", flags.Lookup("log-level"))
	viper.BindPFlag("log.format", flags.Lookup("log-format"))

	viper.SetDefault("server.address", ":8080")
	viper.SetDefault("log.output", "stderr")
	viper.SetDefault("image.timeout", 0)

	RootCmd.AddCommand(ServeCmd)
	RootCmd.AddCommand(BrowseCmd)
}

func initConfig() {
	// a missing .env is fine
	_ = godotenv.Load()

	if configFile != "" {
		viper.SetConfigFile(configFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigName(RootCmdName)
	}

	viper.SetEnvPrefix(envPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok || configFile != "" {
			logging.Default().Warn().Err(err).Msg("could not read config file")
		}
		return
	}
	logging.Default().Debug().Str("file", viper.ConfigFileUsed()).Msg("using config file")
}
