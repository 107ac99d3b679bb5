package main

import (
	"flag"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
)

func main() {
	configPath := flag.String("config", "porp.yaml", "path to the config file")
	levelName := flag.String("level", "", "level name in levels/ (basename, .yaml optional); overrides the config")
	debug := flag.Bool("debug", false, "show loop stats on screen")
	watch := flag.Bool("watch", true, "reload prefabs, scripts, levels and config when they change on disk")
	baseMonitor := flag.Bool("m", false, "use base monitor instead of primary (for multi-monitor setups)")
	flag.Parse()

	if *baseMonitor {
		ebiten.SetMonitor(ebiten.AppendMonitors(nil)[0])
	}

	if err := run(options{
		configPath: *configPath,
		level:      *levelName,
		debug:      *debug,
		watch:      *watch,
	}); err != nil {
		log.Fatal(err)
	}
}
