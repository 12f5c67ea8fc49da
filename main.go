package main

import (
	"errors"
	"flag"
	"log"

	"github.com/decker502/survival/pkg/app"
	"github.com/decker502/survival/pkg/embedded"
	"github.com/hajimehoshi/ebiten/v2"
)

func main() {
	verbose := flag.Bool("verbose", false, "Enable verbose logging")
	tuningPath := flag.String("tuning", "", "Tuning YAML file to load and watch (default: embedded data/tuning.yaml)")
	seed := flag.Int64("seed", 0, "Random seed for spawn placement (0 = time based)")
	flag.Parse()

	// embed.FS 声明在项目根目录，这里交给 embedded 包
	embedded.Init(dataFS)

	tuning, err := app.LoadTuning(*tuningPath)
	if err != nil {
		log.Fatalf("Failed to load tuning: %v", err)
	}

	game, err := app.NewApp(app.Config{
		Verbose:    *verbose,
		Tuning:     tuning,
		TuningPath: *tuningPath,
		Seed:       *seed,
	})
	if err != nil {
		log.Fatalf("Failed to create app: %v", err)
	}
	defer game.Close()

	ebiten.SetWindowSize(app.WindowWidth, app.WindowHeight)
	ebiten.SetWindowTitle("Zombie Survival")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	// Esc 返回 ebiten.Termination，属于正常退出
	if err := ebiten.RunGame(game); err != nil && !errors.Is(err, ebiten.Termination) {
		log.Fatal(err)
	}
}
