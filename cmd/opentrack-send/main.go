// opentrack-send emits synthetic OpenTrack datagrams for exercising
// the daemon without a real tracker attached.
package main

import (
	"flag"
	"fmt"
	"math"
	"net"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/teslashibe/go-headtrack/pkg/opentrack"
)

func main() {
	addr := flag.String("addr", "127.0.0.1:4242", "Destination address")
	rate := flag.Int("rate", 60, "Packets per second")
	amplitude := flag.Float64("amplitude", 45, "Peak deflection in degrees")
	period := flag.Float64("period", 4, "Seconds per full sweep")
	flag.Parse()

	conn, err := net.Dial("udp", *addr)
	if err != nil {
		fmt.Fprintf(os.Stderr, "dial %s: %v\n", *addr, err)
		os.Exit(1)
	}
	defer conn.Close()

	fmt.Printf("📡 Sending synthetic motion to %s at %d Hz\n", *addr, *rate)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	ticker := time.NewTicker(time.Second / time.Duration(*rate))
	defer ticker.Stop()

	start := time.Now()
	for {
		select {
		case <-sigChan:
			fmt.Println("\ndone")
			return

		case <-ticker.C:
			t := time.Since(start).Seconds()
			phase := 2 * math.Pi * t / *period

			// Yaw sweeps, pitch follows at half amplitude and double
			// speed, roll stays gentle. Looks enough like a head.
			yaw := *amplitude * math.Sin(phase)
			pitch := *amplitude / 2 * math.Sin(2*phase)
			roll := 10 * math.Sin(phase/2)

			if _, err := conn.Write(opentrack.Encode(yaw, pitch, roll)); err != nil {
				fmt.Fprintf(os.Stderr, "send: %v\n", err)
				os.Exit(1)
			}
		}
	}
}
