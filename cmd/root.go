package cmd

import (
	"log"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const (
	app = "jobpilot"
)

type Config struct {
	Profile   *ProfileConfig `mapstructure:"profile"`
	Search    *SearchConfig  `mapstructure:"search"`
	Apply     *ApplyConfig   `mapstructure:"apply"`
	AI        *AIConfig      `mapstructure:"ai"`
	StoreFile string         `mapstructure:"store-file"`
}

type ProfileConfig struct {
	Email      string   `mapstructure:"email"`
	Name       string   `mapstructure:"name"`
	Phone      string   `mapstructure:"phone"`
	Experience string   `mapstructure:"experience"`
	Skills     []string `mapstructure:"skills"`
}

type SearchConfig struct {
	Location    string          `mapstructure:"location"`
	Dedupe      bool            `mapstructure:"dedupe"`
	Parallelism int             `mapstructure:"parallelism"`
	Seed        int64           `mapstructure:"seed"`
	Sources     []*SourceConfig `mapstructure:"sources"`
}

type SourceConfig struct {
	Name     string `mapstructure:"name"`
	Type     string `mapstructure:"type"`
	Endpoint string `mapstructure:"endpoint"`
}

type ApplyConfig struct {
	DailyLimit   int     `mapstructure:"daily-limit"`
	Threshold    float64 `mapstructure:"threshold"`
	PauseSeconds int     `mapstructure:"pause-seconds"`
}

type AIConfig struct {
	Enabled  bool          `mapstructure:"enabled"`
	Provider string        `mapstructure:"provider"`
	Gemini   *GeminiConfig `mapstructure:"gemini"`
}

type GeminiConfig struct {
	APIKeyFile   string `mapstructure:"api-key-file"`
	Model        string `mapstructure:"model"`
	MaxRetries   int    `mapstructure:"max-retries"`
	MaxLogLength int    `mapstructure:"max-log-length"`
}

var (
	// Used for flags.
	cfgFile string

	rootCmd = &cobra.Command{
		Use:   app,
		Short: "jobpilot is a cli that matches job listings to a profile and dispatches applications",
	}
)

// Execute executes the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	if err := viper.BindEnv("ai.gemini.api-key-file", "GEMINI_API_KEY_FILE"); err != nil {
		log.Fatalf("binding GEMINI_API_KEY_FILE environment variable: %v", err)
	}

	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "a config file (default is jobpilot.yaml in current directory)")
	rootCmd.PersistentFlags().BoolP("debug", "d", false, "verbose/debug output")
	rootCmd.PersistentFlags().BoolP("json", "j", false, "json format for logging")

	viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	viper.BindPFlag("json", rootCmd.PersistentFlags().Lookup("json"))
}

func initConfig() {
	// Config needed only for run command now. If there is no config, we can skip initialization
	if runCmd.CalledAs() == "" {
		return
	}

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigName(app + ".yaml")
	}

	// We can't proceed if the config file parsed with error.
	if err := viper.ReadInConfig(); err != nil {
		log.Fatal(err)
	}
}

func getConfig() (*Config, error) {
	var config *Config
	err := viper.Unmarshal(&config)
	if err != nil {
		return config, err
	}

	return config, nil
}
