package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/RoGogDBD/metric-pusher/internal/collector"
	"github.com/RoGogDBD/metric-pusher/internal/config"
	"github.com/RoGogDBD/metric-pusher/internal/remotewrite"
	"github.com/RoGogDBD/metric-pusher/internal/version"
)

func parseFlags() (*config.NetAddress, int, int, string) {
	addr := config.ParseAddressFlag()
	poll := flag.Int(config.FlagPollInterval, 2, "Poll interval in seconds")
	report := flag.Int(config.FlagReportInterval, 10, "Report interval in seconds")
	logLevel := flag.String(config.FlagLogLevel, "info", "Log level")
	cfgPath := flag.String(config.FlagConfig, "", "Path to JSON config file")

	flag.Parse()

	if path := config.EnvString(config.EnvConfig); path != "" {
		*cfgPath = path
	}

	if fileCfg, err := config.LoadAgentConfig(*cfgPath); err != nil {
		log.Printf("%v", err)
	} else if fileCfg != nil {
		if fileCfg.Address != "" {
			if err := addr.Set(fileCfg.Address); err != nil {
				log.Printf("invalid address in config file: %v", err)
			}
		}
		if fileCfg.PollInterval != 0 {
			*poll = fileCfg.PollInterval
		}
		if fileCfg.ReportInterval != 0 {
			*report = fileCfg.ReportInterval
		}
	}

	if val, err := config.EnvInt(config.EnvPollInterval); err != nil {
		log.Printf("%v", err)
	} else if val != 0 {
		*poll = val
	}

	if val, err := config.EnvInt(config.EnvReportInterval); err != nil {
		log.Printf("%v", err)
	} else if val != 0 {
		*report = val
	}

	if lvl := config.EnvString(config.EnvLogLevel); lvl != "" {
		*logLevel = lvl
	}

	return addr, *poll, *report, *logLevel
}

func main() {
	version.PrintBuildInfo()

	addr, poll, report, logLevel := parseFlags()

	if err := config.EnvServer(addr, config.EnvAddress); err != nil {
		log.Fatalf("failed to apply env override: %v", err)
	}

	if err := config.Initialize(logLevel); err != nil {
		log.Fatalf("failed to initialize logger: %v", err)
	}
	defer config.Log.Sync()

	fmt.Println("Receiver URL", addr.String())
	fmt.Println("Report interval", report)
	fmt.Println("Poll interval", poll)

	client, err := remotewrite.NewClient(remotewrite.Config{
		URL:     "http://" + addr.String() + "/api/v1/write",
		Timeout: 5 * time.Second,
		Logger:  config.Log,
	})
	if err != nil {
		log.Fatalf("failed to create remote write client: %v", err)
	}

	hostname, _ := os.Hostname()
	state := NewAgentState(poll, report,
		[]collector.Collector{
			collector.NewRuntimeCollector(),
			collector.NewSystemCollector(),
		},
		map[string]string{"instance": hostname},
		config.Log,
	)
	state.Sender = client

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pollTicker := time.NewTicker(time.Duration(poll) * time.Second)
	reportTicker := time.NewTicker(time.Duration(report) * time.Second)
	defer pollTicker.Stop()
	defer reportTicker.Stop()

	for {
		select {
		case <-pollTicker.C:
			collectMetrics(state)
		case <-reportTicker.C:
			sendMetrics(ctx, state)
		case <-ctx.Done():
			config.Log.Info("agent stopped")
			return
		}
	}
}
