// survival-term 终端版客户端
//
// 与桌面版共享 session 和 physics，画面用 tcell 字符绘制，
// 受伤和波次开始时用 beep 播放提示音（没有音频设备时静默运行）。
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"math/rand"
	"os"
	"time"

	"github.com/decker502/survival/pkg/config"
	"github.com/decker502/survival/pkg/physics"
	"github.com/decker502/survival/pkg/session"
	"github.com/gdamore/tcell/v2"
)

func main() {
	verbose := flag.Bool("verbose", false, "Write logs to survival-term.log")
	tuningPath := flag.String("tuning", "", "Tuning YAML file (default: built-in values)")
	seed := flag.Int64("seed", 0, "Random seed for spawn placement (0 = time based)")
	tickHz := flag.Int("hz", 30, "Simulation frames per second")
	mute := flag.Bool("mute", false, "Disable sound")
	flag.Parse()

	// 终端被 tcell 占用，日志只能写文件
	if *verbose {
		f, err := os.OpenFile("survival-term.log", os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
		if err != nil {
			fmt.Fprintf(os.Stderr, "failed to open log file: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		log.SetOutput(f)
	} else {
		log.SetOutput(io.Discard)
	}

	if err := run(*tuningPath, *seed, *tickHz, *mute, *verbose); err != nil {
		fmt.Fprintf(os.Stderr, "survival-term: %v\n", err)
		os.Exit(1)
	}
}

func run(tuningPath string, seed int64, tickHz int, mute, verbose bool) error {
	tuning := config.DefaultTuning()
	if tuningPath != "" {
		loaded, err := config.LoadTuning(tuningPath)
		if err != nil {
			return err
		}
		tuning = loaded
	}

	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	s, err := session.New(session.Options{
		Tuning:  tuning,
		Rand:    rand.New(rand.NewSource(seed)),
		Verbose: verbose,
	})
	if err != nil {
		return err
	}
	world := physics.NewWorld(tuning)
	s.SetPositionSource(world)

	screen, err := tcell.NewScreen()
	if err != nil {
		return err
	}
	if err := screen.Init(); err != nil {
		return err
	}
	defer screen.Fini()

	tones := newTonePlayer()
	if !mute {
		if err := tones.init(); err != nil {
			// 没有声音也能玩
			log.Printf("[Term] Audio initialization failed: %v", err)
		}
	}
	defer tones.close()

	client := newTermClient(screen, world, tones)
	runner := session.NewRunner(s, tickHz, client.frame)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go client.pollInput(runner, cancel)

	if err := runner.Run(ctx); err != nil && ctx.Err() == nil {
		return err
	}
	return nil
}
