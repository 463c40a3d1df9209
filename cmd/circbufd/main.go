// Command circbufd drives a circbuf.Ring end to end with producer and
// consumer goroutines, for manual inspection and load generation. It is
// not part of the ring's core — the core has no notion of threads,
// timing, or a harness — but a caller still needs something to point at
// when exercising the library.
package main

import (
	"context"
	"encoding/binary"
	"flag"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/juusokasperi/circbuf-go"
	"github.com/juusokasperi/circbuf-go/internal/democonfig"
	"github.com/juusokasperi/circbuf-go/internal/demometrics"
)

func main() {
	var (
		configPath = flag.String("config", "", "path to a circbufd.toml config file (optional)")
		envPath    = flag.String("env", ".env", "path to an optional .env overlay")
	)
	flag.Parse()

	log := zerolog.New(os.Stdout).With().Timestamp().Logger()

	cfg, err := democonfig.Load(*configPath, *envPath)
	if err != nil {
		log.Fatal().Err(err).Msg("load config")
	}

	mode := circbuf.ModeMPMC
	if cfg.Ring.Mode == "spsc" {
		mode = circbuf.ModeSPSC
	}

	r, err := circbuf.NewWithHeap(mode, cfg.Ring.Capacity, cfg.Ring.SlotSize)
	if err != nil {
		log.Fatal().Err(err).
			Str("mode", mode.String()).
			Uint32("capacity", cfg.Ring.Capacity).
			Uint32("slot_size", cfg.Ring.SlotSize).
			Msg("construct ring")
	}
	defer r.Close()

	demometrics.Serve(cfg.Metrics.ListenAddr, func(err error) {
		log.Error().Err(err).Str("addr", cfg.Metrics.ListenAddr).Msg("metrics listener")
	})

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	producers, consumers := cfg.Ring.Producers, cfg.Ring.Consumers
	if mode == circbuf.ModeSPSC {
		producers, consumers = 1, 1
	}
	perProducer := cfg.Ring.MessageCount / producers

	log.Info().
		Str("mode", mode.String()).
		Uint32("capacity", cfg.Ring.Capacity).
		Uint32("slot_size", cfg.Ring.SlotSize).
		Int("producers", producers).
		Int("consumers", consumers).
		Int("messages", perProducer*producers).
		Msg("starting workload")

	start := time.Now()
	var wg sync.WaitGroup
	wg.Add(producers + consumers)

	for p := 0; p < producers; p++ {
		base := uint64(p * perProducer)
		go runProducer(ctx, &wg, r, mode, base, perProducer)
	}

	perConsumer := (perProducer * producers) / consumers
	for c := 0; c < consumers; c++ {
		go runConsumer(ctx, &wg, r, mode, perConsumer)
	}

	wg.Wait()
	elapsed := time.Since(start)

	log.Info().
		Dur("elapsed", elapsed).
		Float64("messages_per_sec", float64(perProducer*producers)/elapsed.Seconds()).
		Msg("workload complete")
}

func runProducer(ctx context.Context, wg *sync.WaitGroup, r *circbuf.Ring, mode circbuf.Mode, base uint64, count int) {
	defer wg.Done()
	buf := make([]byte, r.SlotSize())
	for i := 0; i < count; i++ {
		binary.LittleEndian.PutUint64(buf, base+uint64(i))
		for {
			select {
			case <-ctx.Done():
				return
			default:
			}
			err := r.Push(buf)
			if err == nil {
				demometrics.PushTotal.WithLabelValues(mode.String()).Inc()
				break
			}
			demometrics.WouldBlockTotal.WithLabelValues(mode.String(), "push").Inc()
		}
	}
}

func runConsumer(ctx context.Context, wg *sync.WaitGroup, r *circbuf.Ring, mode circbuf.Mode, count int) {
	defer wg.Done()
	buf := make([]byte, r.SlotSize())
	for i := 0; i < count; i++ {
		for {
			select {
			case <-ctx.Done():
				return
			default:
			}
			_, err := r.Pop(buf)
			if err == nil {
				demometrics.PopTotal.WithLabelValues(mode.String()).Inc()
				break
			}
			demometrics.WouldBlockTotal.WithLabelValues(mode.String(), "pop").Inc()
		}
	}
}
