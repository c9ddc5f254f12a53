package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/petalex/engine/params"
	"github.com/petalex/engine/pkg/api"
	"github.com/petalex/engine/pkg/driver"
	"github.com/petalex/engine/pkg/exchange"
	"github.com/petalex/engine/pkg/report"
	"github.com/petalex/engine/pkg/util"
)

func main() {
	cfg := params.LoadFromEnv("")

	logger, err := buildLogger(cfg.LogFile)
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer logger.Sync()
	sugar := logger.Sugar()

	// ---- Report sinks ----
	csvSink, err := report.NewCSVSink(cfg.Engine.ReportFile)
	if err != nil {
		sugar.Fatalw("csv_sink_failed", "err", err)
	}
	sinks := []report.Sink{csvSink}

	var recent api.RecentSource
	if cfg.Archive.Dir != "" {
		archive, err := report.OpenArchive(cfg.Archive.Dir)
		if err != nil {
			sugar.Fatalw("archive_failed", "dir", cfg.Archive.Dir, "err", err)
		}
		sinks = append(sinks, archive)
		recent = archive
		sugar.Infow("report_archive_enabled", "dir", cfg.Archive.Dir)
	}

	if len(cfg.Kafka.Brokers) > 0 {
		kafkaSink, err := report.NewKafkaSink(cfg.Kafka.Brokers, cfg.Kafka.Topic)
		if err != nil {
			sugar.Fatalw("kafka_sink_failed", "brokers", cfg.Kafka.Brokers, "err", err)
		}
		sinks = append(sinks, kafkaSink)
		sugar.Infow("kafka_publishing_enabled", "topic", cfg.Kafka.Topic)
	}

	var hub *api.Hub
	if cfg.API.Enabled {
		hub = api.NewHub(sugar)
		sinks = append(sinks, hub)
		if recent == nil {
			mem := report.NewMemorySink()
			sinks = append(sinks, mem)
			recent = mem
		}
	}

	sink := report.NewMultiSink(sinks...)
	defer sink.Close()

	// ---- Engine and API ----
	eng := exchange.NewEngine(sink, sugar)

	if cfg.API.Enabled {
		apiServer := api.NewServer(eng, recent, hub, sugar)
		go func() {
			if err := apiServer.Start(cfg.API.Addr); err != nil {
				sugar.Fatalw("api_server_failed", "err", err)
			}
		}()
	}

	// ---- Batch run ----
	d := driver.New(eng, sugar)
	if cfg.Engine.OrderFile != "" {
		start := time.Now()
		stats, err := d.Feed(cfg.Engine.OrderFile)
		if err != nil {
			sugar.Fatalw("order_feed_failed", "file", cfg.Engine.OrderFile, "err", err)
		}
		if !cfg.API.Enabled {
			if err := eng.Drain(); err != nil {
				sugar.Fatalw("drain_failed", "err", err)
			}
		}
		sugar.Infow("run_complete",
			"file", cfg.Engine.OrderFile,
			"processed", stats.Processed,
			"malformed", stats.Malformed,
			"elapsed_ms", time.Since(start).Milliseconds())
	}

	if !cfg.API.Enabled {
		return
	}

	// Serve mode: keep books live until shutdown, then drain so the report
	// stream still carries every resting order.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	<-ctx.Done()

	if err := eng.Drain(); err != nil {
		sugar.Errorw("drain_failed", "err", err)
	}
}

func buildLogger(logFile string) (*zap.Logger, error) {
	if logFile != "" {
		return util.NewLoggerWithFile(logFile)
	}
	return util.NewLogger()
}
