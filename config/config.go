package config

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/go-viper/mapstructure/v2"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	configFileEnvName = "DASHBOARD_CONFIG_FILE"
	envPrefix         = "DASHBOARD"
)

type Catalog struct {
	URL            string        `mapstructure:"url"`
	Quantity       int           `mapstructure:"quantity"`
	CategoriesType string        `mapstructure:"categories_type"`
	Timeout        time.Duration `mapstructure:"timeout"`
}

type Dashboard struct {
	TopTags             int     `mapstructure:"top_tags"`
	AffordableThreshold float64 `mapstructure:"affordable_threshold"`
	TableCategories     int     `mapstructure:"table_categories"`
}

type Topics struct {
	ProductSnapshots   string `mapstructure:"product_snapshots"`
	DashboardSummaries string `mapstructure:"dashboard_summaries"`
}

type BrokerTLS struct {
	CA   string `mapstructure:"ca"`
	Cert string `mapstructure:"cert"`
	Key  string `mapstructure:"key"`
}

type Broker struct {
	SeedBrokers        []string  `mapstructure:"seed_brokers"`
	SchemaRegistryURLs []string  `mapstructure:"schema_registry_urls"`
	Topics             Topics    `mapstructure:"topics"`
	TLS                BrokerTLS `mapstructure:"tls"`
}

type Config struct {
	LogLevel       slog.Level `mapstructure:"log_level"`
	HTTPServerAddr string     `mapstructure:"http_server_addr"`
	SQLDB          string     `mapstructure:"sql_db"`
	Catalog        Catalog    `mapstructure:"catalog"`
	Dashboard      Dashboard  `mapstructure:"dashboard"`
	Broker         Broker     `mapstructure:"broker"`
}

// StorageEnabled reports whether dashboard snapshots are archived.
func (c Config) StorageEnabled() bool {
	return c.SQLDB != ""
}

// BrokerEnabled reports whether products and dashboards are published.
func (c Config) BrokerEnabled() bool {
	return len(c.Broker.SeedBrokers) != 0
}

// TLSEnabled reports whether broker connections use mutual TLS.
func (b Broker) TLSEnabled() bool {
	return b.TLS.CA != "" && b.TLS.Cert != "" && b.TLS.Key != ""
}

// Load reads the file from --config flag or DASHBOARD_CONFIG_FILE env.
// The process exits on any failure.
func Load() Config {
	cfg, err := LoadFile(getConfigFilepath())
	if err != nil {
		die(err)
	}
	return cfg
}

// LoadFile reads the YAML config at path.
//
// DASHBOARD_* environment variables override file values,
// e.g. DASHBOARD_CATALOG_QUANTITY for catalog.quantity.
func LoadFile(path string) (Config, error) {
	const op = "config.LoadFile"

	v := viper.New()
	setDefaults(v)

	v.SetConfigFile(path)
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		return Config{}, fmt.Errorf("%s: %w", op, err)
	}

	var cfg Config
	err := v.UnmarshalExact(&cfg, viper.DecodeHook(
		mapstructure.ComposeDecodeHookFunc(
			mapstructure.TextUnmarshallerHookFunc(),
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		),
	))
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", op, err)
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("log_level", "info")
	v.SetDefault("http_server_addr", ":8080")
	v.SetDefault("sql_db", "")

	v.SetDefault("catalog.url", "https://fakerapi.it/api/v2/products")
	v.SetDefault("catalog.quantity", 25)
	v.SetDefault("catalog.categories_type", "string")
	v.SetDefault("catalog.timeout", "10s")

	v.SetDefault("dashboard.top_tags", 5)
	v.SetDefault("dashboard.affordable_threshold", 500)
	v.SetDefault("dashboard.table_categories", 3)

	v.SetDefault("broker.seed_brokers", []string{})
	v.SetDefault("broker.schema_registry_urls", []string{})
	v.SetDefault("broker.topics.product_snapshots", "catalog-products")
	v.SetDefault("broker.topics.dashboard_summaries", "catalog-dashboards")
	v.SetDefault("broker.tls.ca", "")
	v.SetDefault("broker.tls.cert", "")
	v.SetDefault("broker.tls.key", "")
}

func getConfigFilepath() string {
	cmdLine := pflag.NewFlagSet(os.Args[0], pflag.ExitOnError)
	arg := cmdLine.String("config", "/config.yaml", "config file")
	_ = cmdLine.Parse(os.Args[1:])
	env, ok := os.LookupEnv(configFileEnvName)
	if ok {
		return env
	}
	return *arg
}

func die(err error) {
	printLoadFailure(os.Stderr, err)
	os.Exit(2)
}

func printLoadFailure(w io.Writer, err error) {
	fmt.Fprintf(w, "failed to load config file: %v\n", err)
}

func (c Config) Print() {
	template := `
	General:
	LogLevel=%q
	HTTPServerAddr=%q
	StorageEnabled=%t

	Catalog:
	URL=%q
	Quantity=%d
	CategoriesType=%q
	Timeout=%s

	Dashboard:
	TopTags=%d
	AffordableThreshold=%.2f
	TableCategories=%d

	BrokerConfig:
	SeedBrokers=%q
	SchemaRegistryURLs=%q
	TLS=%t
	Topics:
		ProductSnapshots=%q
		DashboardSummaries=%q

`
	fmt.Println("Loaded config:")
	fmt.Printf(
		strings.TrimLeft(template, "\n"),
		c.LogLevel,
		c.HTTPServerAddr,
		c.StorageEnabled(),
		c.Catalog.URL,
		c.Catalog.Quantity,
		c.Catalog.CategoriesType,
		c.Catalog.Timeout,
		c.Dashboard.TopTags,
		c.Dashboard.AffordableThreshold,
		c.Dashboard.TableCategories,
		c.Broker.SeedBrokers,
		c.Broker.SchemaRegistryURLs,
		c.Broker.TLSEnabled(),
		c.Broker.Topics.ProductSnapshots,
		c.Broker.Topics.DashboardSummaries,
	)
}
