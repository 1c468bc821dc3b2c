// Command baseballnine plays arcade baseball: a full game or a home run
// derby against a CPU pitcher and fielders.
package main

import (
	"flag"
	"log"

	"baseball/internal/config"
	"baseball/internal/game"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	flag.Uint64Var(&cfg.Seed, "seed", cfg.Seed, "random seed (0 = clock)")
	flag.TextVar(&cfg.Mode, "mode", cfg.Mode, "game or derby")
	flag.TextVar(&cfg.View, "view", cfg.View, "flat or behind")
	flag.StringVar(&cfg.Tuning, "tuning", cfg.Tuning, "YAML file overriding gameplay tuning")
	flag.BoolVar(&cfg.Mute, "mute", cfg.Mute, "disable sound")
	flag.BoolVar(&cfg.Verbose, "v", cfg.Verbose, "log every match event")
	flag.Parse()

	tun, err := config.LoadTuning(cfg.Tuning)
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	if err := game.RunDesktop(cfg, tun); err != nil {
		log.Fatalf("baseballnine: %v", err)
	}
}
