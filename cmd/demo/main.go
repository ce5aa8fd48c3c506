package main

import (
	"fmt"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/comalice/keepalive"
	"github.com/comalice/keepalive/realtime"
)

func main() {
	host := realtime.NewHost()

	var frame atomic.Int64
	update := func() { frame.Add(1) }

	events := make(chan keepalive.VisibilityEvent, 16)

	ka, err := keepalive.New(host, update,
		keepalive.WithInitialWakeDelay(100),
		keepalive.WithIntervalMode(false),
		keepalive.WithNotifier(keepalive.NewChannelNotifier(events)),
	)
	if err != nil {
		panic(err)
	}
	if err := ka.Start(); err != nil {
		panic(err)
	}
	defer ka.Stop()

	// Toggle visibility every 2s to exercise the hide/show handoff.
	toggle := time.NewTicker(2 * time.Second)
	defer toggle.Stop()
	report := time.NewTicker(500 * time.Millisecond)
	defer report.Stop()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)

	cycles := 0
	for {
		select {
		case <-toggle.C:
			host.SetVisible(!host.Visible())
			cycles++
			if cycles >= 6 {
				fmt.Println("Demo complete after 6 visibility cycles.")
				return
			}
		case <-report.C:
			fmt.Printf("frame=%-5d visible=%-5v scheduler=%-5s background=%v\n",
				frame.Load(), ka.Visibility().Visible(), ka.Scheduler().State(), ka.BackgroundTimer().Elapsed())
		case ev := <-events:
			fmt.Printf("visibility -> %v at %s\n", ev.Visible, ev.At.Format(time.TimeOnly))
		case <-sig:
			fmt.Println("\nShutting down gracefully...")
			return
		}
	}
}
