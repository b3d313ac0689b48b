package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/dbehnke/ccsds-fec/pkg/config"
	"github.com/dbehnke/ccsds-fec/pkg/harness"
	"github.com/dbehnke/ccsds-fec/pkg/logger"
	"github.com/dbehnke/ccsds-fec/pkg/metrics"
	"github.com/dbehnke/ccsds-fec/pkg/mqtt"
	"github.com/dbehnke/ccsds-fec/pkg/pipeline"
	"github.com/dbehnke/ccsds-fec/pkg/store"
	"github.com/dbehnke/ccsds-fec/pkg/viterbi"
	"github.com/dbehnke/ccsds-fec/pkg/web"
)

var (
	version   = "dev"
	gitCommit = "unknown"
	buildTime = "unknown"
)

func main() {
	configFile := flag.String("config", "config.yaml", "Path to configuration file")
	showVersion := flag.Bool("version", false, "Show version information")
	validateOnly := flag.Bool("validate", false, "Validate configuration and exit")
	flag.Parse()

	if *showVersion {
		fmt.Printf("ccsds-fec %s\n", version)
		fmt.Printf("Git Commit: %s\n", gitCommit)
		fmt.Printf("Built: %s\n", buildTime)
		os.Exit(0)
	}

	log := logger.New(logger.Config{
		Level:  "info",
		Format: "text",
	})

	log.Info("Starting ccsds-fec",
		logger.String("version", version),
		logger.String("commit", gitCommit),
		logger.String("build_time", buildTime))

	cfg, err := config.Load(*configFile)
	if err != nil {
		log.Error("Failed to load configuration", logger.Error(err))
		os.Exit(1)
	}

	if *validateOnly {
		log.Info("Configuration is valid")
		os.Exit(0)
	}

	log.Info("Configuration loaded successfully",
		logger.String("config_file", *configFile))

	log = logger.New(logger.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	var wg sync.WaitGroup

	metricsCollector := metrics.NewCollector()

	var repo *store.Repository
	if cfg.Store.Enabled {
		db, err := store.NewDB(store.Config{Path: cfg.Store.Path}, log.WithComponent("store"))
		if err != nil {
			log.Error("Failed to initialize store", logger.Error(err))
			os.Exit(1)
		}
		defer db.Close()
		repo = store.NewRepository(db)
		log.Info("Decode-run ledger initialized", logger.String("path", cfg.Store.Path))
	}

	if cfg.Metrics.Enabled && cfg.Metrics.Prometheus.Enabled {
		wg.Add(1)
		go func() {
			defer wg.Done()
			metricsServer := metrics.NewPrometheusServer(
				metrics.PrometheusConfig{
					Enabled: cfg.Metrics.Prometheus.Enabled,
					Port:    cfg.Metrics.Prometheus.Port,
					Path:    cfg.Metrics.Prometheus.Path,
				},
				metricsCollector,
				log.WithComponent("metrics"),
			)
			if err := metricsServer.Start(ctx); err != nil && err != context.Canceled {
				log.Error("Prometheus metrics server error", logger.Error(err))
			}
		}()
		log.Info("Prometheus metrics server started",
			logger.Int("port", cfg.Metrics.Prometheus.Port),
			logger.String("path", cfg.Metrics.Prometheus.Path))
	}

	var mqttPublisher *mqtt.Publisher
	if cfg.MQTT.Enabled {
		mqttPublisher = mqtt.New(
			mqtt.Config{
				Enabled:     cfg.MQTT.Enabled,
				Broker:      cfg.MQTT.Broker,
				TopicPrefix: cfg.MQTT.TopicPrefix,
				ClientID:    cfg.MQTT.ClientID,
				Username:    cfg.MQTT.Username,
				Password:    cfg.MQTT.Password,
				QoS:         cfg.MQTT.QoS,
				Retained:    cfg.MQTT.Retained,
			},
			log.WithComponent("mqtt"),
		)

		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := mqttPublisher.Start(ctx); err != nil && err != context.Canceled {
				log.Error("MQTT publisher error", logger.Error(err))
			}
		}()
		log.Info("MQTT publisher started",
			logger.String("broker", cfg.MQTT.Broker),
			logger.String("topic_prefix", cfg.MQTT.TopicPrefix))
	}

	var webServer *web.Server
	if cfg.Web.Enabled {
		webServer = web.NewServer(cfg.Web, log.WithComponent("web")).WithCollector(metricsCollector)

		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := webServer.Start(ctx); err != nil && err != context.Canceled {
				log.Error("Web server error", logger.Error(err))
			}
		}()
		log.Info("Web server started",
			logger.String("host", cfg.Web.Host),
			logger.Int("port", cfg.Web.Port))
	}

	sweepCfg := buildSweepConfig(cfg)

	log.Info("Running BER sweep",
		logger.Int("points", len(sweepCfg.EbN0dB)),
		logger.Int("frames_per_point", sweepCfg.FramesPerPt),
		logger.String("mode", sweepCfg.Pipeline.Mode.String()))

	points, err := harness.Sweep(sweepCfg)
	if err != nil {
		log.Error("Sweep failed", logger.Error(err))
		os.Exit(1)
	}

	for _, pt := range points {
		metricsCollector.SetCurrentEbN0(pt.EbN0dB)
		metricsCollector.BitsCompared(pt.BitErrors, pt.BitsCompared)
		for i := uint64(0); i < uint64(pt.FramesReceived); i++ {
			metricsCollector.FrameReceived()
		}
		for i := uint64(0); i < uint64(pt.FramesDecoded); i++ {
			metricsCollector.FrameDecoded()
		}

		log.Info("Sweep point complete",
			logger.EbN0(pt.EbN0dB),
			logger.BER(pt.BER),
			logger.Int("frames_received", pt.FramesReceived),
			logger.Int("frames_decoded", pt.FramesDecoded))

		if webServer != nil {
			webServer.GetHub().BroadcastSweepPoint(pt.EbN0dB, pt.BER, pt.FramesReceived, pt.FramesDecoded)
		}
		if mqttPublisher != nil {
			_ = mqttPublisher.PublishSweepPoint(mqtt.SweepPointEvent{
				EbN0DB:         pt.EbN0dB,
				BER:            pt.BER,
				FramesReceived: pt.FramesReceived,
				FramesDecoded:  pt.FramesDecoded,
			})
		}
		if repo != nil {
			if _, err := repo.SaveSweepPoint(pt); err != nil {
				log.Warn("Failed to persist sweep point", logger.Error(err))
			}
		}
	}

	if webServer != nil {
		webServer.GetHub().BroadcastSweepComplete(len(points))
	}
	if mqttPublisher != nil {
		_ = mqttPublisher.PublishSweepComplete(mqtt.SweepCompleteEvent{Points: len(points)})
	}

	log.Info("ccsds-fec sweep complete", logger.Int("points", len(points)))

	if cfg.Web.Enabled || (cfg.MQTT.Enabled) {
		log.Info("Serving until interrupted")
		sig := <-sigChan
		log.Info("Received shutdown signal", logger.String("signal", sig.String()))
	}

	cancel()

	if mqttPublisher != nil {
		mqttPublisher.Stop()
	}

	wg.Wait()

	log.Info("ccsds-fec stopped")
}

// buildSweepConfig translates the loaded configuration into a
// harness.SweepConfig, expanding harness.{ebn0_start,stop,step}_db into
// the explicit point list Sweep expects.
func buildSweepConfig(cfg *config.Config) harness.SweepConfig {
	pc := pipeline.Config{
		RSEncode:        cfg.Pipeline.RSEncode,
		RSDecode:        cfg.Pipeline.RSDecode,
		Interleave:      cfg.Pipeline.Interleave,
		Scramble:        cfg.Pipeline.Scramble,
		Descramble:      cfg.Pipeline.Descramble,
		NInterleave:     cfg.Pipeline.NInterleave,
		DualBasis:       cfg.Pipeline.DualBasis,
		PuncturingType:  cfg.Pipeline.PuncturingType,
		Mode:            modeFromString(cfg.Pipeline.Mode),
		Threshold:       cfg.Pipeline.Threshold,
		LeadingZeroPad:  cfg.Pipeline.LeadingZeroPad,
		TrailingZeroPad: cfg.Pipeline.TrailingZeroPad,
		Viterbi: viterbi.Params{
			PathMem:     cfg.Viterbi.PathMem,
			MergeDist:   cfg.Viterbi.MergeDist,
			TraceChunk:  cfg.Viterbi.TraceChunk,
			Renormalize: cfg.Viterbi.Renormalize,
		},
	}

	var points []float64
	for v := cfg.Harness.EbN0StartDB; v <= cfg.Harness.EbN0StopDB+1e-9; v += cfg.Harness.EbN0StepDB {
		points = append(points, v)
	}

	return harness.SweepConfig{
		Pipeline:    pc,
		EbN0dB:      points,
		FramesPerPt: cfg.Harness.FramesPerPt,
		Seed:        cfg.Harness.Seed,
	}
}

func modeFromString(s string) pipeline.Mode {
	switch s {
	case "ONLY_RS":
		return pipeline.OnlyRS
	case "ONLY_CC":
		return pipeline.OnlyCC
	default:
		return pipeline.RSAndCC
	}
}
