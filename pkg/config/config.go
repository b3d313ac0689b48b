package config

import (
	"fmt"
	"os"

	"github.com/spf13/viper"
)

// Config represents the application configuration.
type Config struct {
	Pipeline PipelineConfig `mapstructure:"pipeline"`
	Viterbi  ViterbiConfig  `mapstructure:"viterbi"`
	Harness  HarnessConfig  `mapstructure:"harness"`
	Store    StoreConfig    `mapstructure:"store"`
	MQTT     MQTTConfig     `mapstructure:"mqtt"`
	Web      WebConfig      `mapstructure:"web"`
	Logging  LoggingConfig  `mapstructure:"logging"`
	Metrics  MetricsConfig  `mapstructure:"metrics"`
}

// PipelineConfig mirrors spec.md §6's configuration table.
type PipelineConfig struct {
	RSEncode       bool   `mapstructure:"rs_encode"`
	RSDecode       bool   `mapstructure:"rs_decode"`
	Interleave     bool   `mapstructure:"interleave"`
	Scramble       bool   `mapstructure:"scramble"`
	Descramble     bool   `mapstructure:"descramble"`
	NInterleave    int    `mapstructure:"n_interleave"`
	DualBasis      bool   `mapstructure:"dual_basis"`
	PuncturingType string `mapstructure:"puncturing_type"`
	Mode           string `mapstructure:"mode"` // ONLY_RS, ONLY_CC, RS_AND_CC
	Threshold      int    `mapstructure:"threshold"`

	LeadingZeroPad  int `mapstructure:"leading_zero_pad"`
	TrailingZeroPad int `mapstructure:"trailing_zero_pad"`
}

// ViterbiConfig holds the decoder's tunable constants (spec.md §6/§9).
type ViterbiConfig struct {
	PathMem     int   `mapstructure:"path_mem"`
	MergeDist   int   `mapstructure:"merge_dist"`
	TraceChunk  int   `mapstructure:"trace_chunk"`
	Renormalize int64 `mapstructure:"renormalize"`
}

// HarnessConfig parameterizes the BER-vs-Eb/N0 sweep.
type HarnessConfig struct {
	EbN0StartDB float64 `mapstructure:"ebn0_start_db"`
	EbN0StopDB  float64 `mapstructure:"ebn0_stop_db"`
	EbN0StepDB  float64 `mapstructure:"ebn0_step_db"`
	FramesPerPt int     `mapstructure:"frames_per_point"`
	Seed        int64   `mapstructure:"seed"`
}

// StoreConfig holds the decode-run ledger's persistence configuration.
type StoreConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Path    string `mapstructure:"path"`
}

// WebConfig holds the live sweep dashboard configuration.
type WebConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Host    string `mapstructure:"host"`
	Port    int    `mapstructure:"port"`
}

// MQTTConfig holds the event publisher's client configuration.
type MQTTConfig struct {
	Enabled     bool   `mapstructure:"enabled"`
	Broker      string `mapstructure:"broker"`
	TopicPrefix string `mapstructure:"topic_prefix"`
	ClientID    string `mapstructure:"client_id"`
	Username    string `mapstructure:"username"`
	Password    string `mapstructure:"password"`
	QoS         byte   `mapstructure:"qos"`
	Retained    bool   `mapstructure:"retained"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	Output string `mapstructure:"output"`
}

// MetricsConfig holds metrics configuration.
type MetricsConfig struct {
	Enabled    bool             `mapstructure:"enabled"`
	Prometheus PrometheusConfig `mapstructure:"prometheus"`
}

// PrometheusConfig holds Prometheus metrics configuration.
type PrometheusConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Port    int    `mapstructure:"port"`
	Path    string `mapstructure:"path"`
}

// Load loads configuration from file and environment variables.
func Load(configFile string) (*Config, error) {
	setDefaults()

	if configFile != "" {
		viper.SetConfigFile(configFile)
	} else {
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")
		viper.AddConfigPath("./configs")
		viper.AddConfigPath("/etc/ccsds-fec")
	}

	viper.SetEnvPrefix("CCSDS")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			// Config file not found is OK, use defaults.
		} else if os.IsNotExist(err) {
			// File explicitly specified but doesn't exist - that's also OK.
		} else {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validate(&config); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &config, nil
}

// setDefaults sets default configuration values.
func setDefaults() {
	viper.SetDefault("pipeline.rs_encode", true)
	viper.SetDefault("pipeline.rs_decode", true)
	viper.SetDefault("pipeline.interleave", false)
	viper.SetDefault("pipeline.scramble", false)
	viper.SetDefault("pipeline.descramble", false)
	viper.SetDefault("pipeline.n_interleave", 1)
	viper.SetDefault("pipeline.dual_basis", false)
	viper.SetDefault("pipeline.puncturing_type", "1/2")
	viper.SetDefault("pipeline.mode", "RS_AND_CC")
	viper.SetDefault("pipeline.threshold", 3)
	viper.SetDefault("pipeline.leading_zero_pad", 5)
	viper.SetDefault("pipeline.trailing_zero_pad", 3)

	viper.SetDefault("viterbi.path_mem", 256)
	viper.SetDefault("viterbi.merge_dist", 128)
	viper.SetDefault("viterbi.trace_chunk", 8)
	viper.SetDefault("viterbi.renormalize", 10000)

	viper.SetDefault("harness.ebn0_start_db", 0.0)
	viper.SetDefault("harness.ebn0_stop_db", 8.0)
	viper.SetDefault("harness.ebn0_step_db", 1.0)
	viper.SetDefault("harness.frames_per_point", 100)
	viper.SetDefault("harness.seed", 1)

	viper.SetDefault("store.enabled", false)
	viper.SetDefault("store.path", "ccsds-fec.db")

	viper.SetDefault("web.enabled", true)
	viper.SetDefault("web.host", "0.0.0.0")
	viper.SetDefault("web.port", 8080)

	viper.SetDefault("mqtt.enabled", false)
	viper.SetDefault("mqtt.topic_prefix", "ccsds/fec")
	viper.SetDefault("mqtt.client_id", "ccsds-fec")
	viper.SetDefault("mqtt.qos", 1)
	viper.SetDefault("mqtt.retained", false)

	viper.SetDefault("logging.level", "info")
	viper.SetDefault("logging.format", "text")

	viper.SetDefault("metrics.enabled", true)
	viper.SetDefault("metrics.prometheus.enabled", true)
	viper.SetDefault("metrics.prometheus.port", 9091)
	viper.SetDefault("metrics.prometheus.path", "/metrics")
}
