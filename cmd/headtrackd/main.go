package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/teslashibe/go-headtrack/internal/config"
	"github.com/teslashibe/go-headtrack/internal/log"
	"github.com/teslashibe/go-headtrack/pkg/opentrack"
	"github.com/teslashibe/go-headtrack/pkg/pipeline"
	"github.com/teslashibe/go-headtrack/pkg/receiver"
	"github.com/teslashibe/go-headtrack/pkg/sink"
	"github.com/teslashibe/go-headtrack/pkg/stream"
	"github.com/teslashibe/go-headtrack/pkg/web"
)

func main() {
	// Command line flags
	port := flag.Int("port", config.ListenPort(opentrack.DefaultPort), "UDP port to listen on for OpenTrack packets")
	webPort := flag.String("web", config.WebPort(), "Web dashboard port")
	profilePath := flag.String("profile", "", "Tracking profile YAML (optional)")
	mqttBroker := flag.String("mqtt", config.MQTTBroker(), "MQTT broker URL for pose publishing (optional)")
	upstream := flag.String("upstream", os.Getenv("HEADTRACK_UPSTREAM"), "Upstream websocket URL to relay poses to (optional)")
	rate := flag.Int("rate", config.DefaultTickRate, "Processing tick rate in Hz")
	polling := flag.Bool("polling", false, "Use the single-threaded polling receiver")
	debug := flag.Bool("debug", false, "Enable debug logging")
	flag.Parse()

	level := config.LogLevel()
	if *debug {
		level = "debug"
	}
	log.Init(level)

	fmt.Println("🎯 Headtrack Daemon")
	fmt.Printf("   Listening: udp/%d\n", *port)
	fmt.Printf("   Dashboard: http://localhost:%s\n", *webPort)
	fmt.Println()

	// Processing chain, optionally configured from a profile
	cfg := pipeline.DefaultConfig()
	var mapper *pipeline.AxisMapper
	if *profilePath != "" {
		prof, err := config.LoadProfile(*profilePath)
		if err != nil {
			log.Error("load profile", "path", *profilePath, "err", err)
			os.Exit(1)
		}
		cfg = prof.PipelineConfig()
		mapper = prof.Mapper()
		log.Info("profile loaded", "path", *profilePath)
	}
	pl := pipeline.New(cfg)
	if mapper != nil {
		pl.SetMapper(mapper)
	}

	// Receiver, threaded by default. In polling mode the web server's
	// goroutines must not read the single-threaded receiver directly,
	// so they get a snapshot that this loop refreshes each tick.
	var src receiver.Source
	var poll func() bool
	if *polling {
		pr := receiver.NewPolling(*port)
		if err := pr.Start(); err != nil {
			log.Error("start receiver", "err", err)
			os.Exit(1)
		}
		defer pr.Close()
		snap := receiver.NewSnapshot(pr)
		src = snap
		poll = func() bool {
			got := pr.Poll()
			snap.Sync()
			return got
		}
	} else {
		rc := receiver.New(*port)
		if err := rc.Start(); err != nil {
			log.Error("start receiver", "err", err)
			os.Exit(1)
		}
		defer rc.Stop()
		src = rc
	}

	// Web dashboard
	srv := web.NewServer(*webPort, src, pl)
	srv.StartAsync()
	defer srv.Shutdown()

	// Optional MQTT sink
	var pub *sink.Publisher
	if *mqttBroker != "" {
		p, err := sink.NewPublisher(*mqttBroker)
		if err != nil {
			log.Warn("mqtt sink unavailable, continuing without", "err", err)
		} else {
			pub = p
			defer pub.Close()
		}
	}

	// Optional upstream relay
	var relay *stream.Relay
	if *upstream != "" {
		relay = stream.NewRelay(*upstream)
		relay.Start()
		defer relay.Close()
	}

	// Handle signals
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	ticker := time.NewTicker(time.Second / time.Duration(*rate))
	defer ticker.Stop()

	log.Info("tracking started", "rate_hz", *rate)

	for {
		select {
		case <-sigChan:
			fmt.Println("\n👋 Shutting down...")
			return

		case <-ticker.C:
			if poll != nil {
				poll()
			}
			raw := src.LatestPose()
			processed, err := pl.Process(raw, src.IsRemote())
			if err != nil {
				log.Error("process pose", "err", err)
				continue
			}

			srv.PublishPose(raw, processed)
			if pub != nil {
				pub.PublishRaw(raw)
				pub.PublishProcessed(processed)
			}
			if relay != nil {
				relay.Send(web.PoseUpdate{
					Timestamp: processed.Timestamp,
					Raw:       web.PoseAngles{Yaw: raw.Yaw, Pitch: raw.Pitch, Roll: raw.Roll},
					Processed: web.PoseAngles{Yaw: processed.Yaw, Pitch: processed.Pitch, Roll: processed.Roll},
				})
			}
		}
	}
}
