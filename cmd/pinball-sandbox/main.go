package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"runtime/debug"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/gopxl/beep"
	"github.com/lixenwraith/pinball/asset"
	"github.com/lixenwraith/pinball/audio"
	"github.com/lixenwraith/pinball/config"
	"github.com/lixenwraith/pinball/engine"
	"github.com/lixenwraith/pinball/event"
	"github.com/lixenwraith/pinball/parameter"
	"github.com/lixenwraith/pinball/render"
	"github.com/lixenwraith/pinball/replicate"
	"github.com/lixenwraith/pinball/state"
	"github.com/lixenwraith/pinball/status"
	"github.com/lixenwraith/pinball/table"
	"github.com/lixenwraith/pinball/vmath"
)

const (
	tickInterval  = 10 * time.Millisecond
	frameInterval = 16 * time.Millisecond
)

var (
	tablePath  = flag.String("table", "", "Table TOML file (built-in sandbox table when empty)")
	scriptPath = flag.String("script", "", "Lua table script, overrides PINBALL_SCRIPT")
	streamAddr = flag.String("stream", "", "Serve state frames over websocket on this address, overrides PINBALL_STREAM_ADDR")
	muteFlag   = flag.Bool("mute", false, "Start with sound muted")
	debugFlag  = flag.Bool("debug", false, "Write logs to "+logDir+"/"+logFileName)
)

type sandbox struct {
	screen tcell.Screen
	runner *engine.Runner
	view   *render.View
	sounds *audio.Sounds
	stats  *status.Registry
	rng    *vmath.FastRand
	name   string
}

func main() {
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}
	if *debugFlag {
		cfg.Debug = true
	}
	if *scriptPath != "" {
		cfg.Script = *scriptPath
	}
	if *streamAddr != "" {
		cfg.StreamAddr = *streamAddr
	}
	if f := setupLogging(cfg.Debug); f != nil {
		defer f.Close()
	}

	desc, script, err := loadTable(*tablePath, cfg.Script)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
	for _, e := range desc.Skipped {
		log.Printf("[sandbox] table entry skipped: %v", e)
	}

	var play audio.PlayFunc = func(beep.Streamer) {}
	rate := beep.SampleRate(parameter.AudioSampleRate)
	if sp, err := audio.OpenSpeaker(); err == nil {
		defer sp.Close()
		play, rate = sp.Play, sp.Rate()
	} else {
		log.Printf("[sandbox] audio disabled: %v", err)
	}
	stats := status.NewRegistry()
	sounds := audio.NewSounds(rate, play)
	sounds.SetMuted(*muteFlag)
	sounds.Instrument(stats)

	binders := []event.Binder{sounds}
	if script != nil {
		binders = append(binders, script)
	}
	player, err := engine.NewPlayer(cfg, desc, event.Fanout(binders...))
	if err != nil {
		fmt.Fprintf(os.Stderr, "player: %v\n", err)
		os.Exit(1)
	}
	defer player.Close()
	if script != nil {
		player.BindScript(script)
	}
	sounds.AssignItems(player.Items())
	player.Start()

	var onFrame engine.FrameFunc
	if cfg.StreamAddr != "" {
		hub := replicate.NewHub()
		hub.Instrument(stats)
		defer hub.Close()
		mux := http.NewServeMux()
		mux.Handle("/stream", hub)
		srv := &http.Server{Addr: cfg.StreamAddr, Handler: mux}
		go func() {
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				log.Printf("[sandbox] stream server: %v", err)
			}
		}()
		defer srv.Close()
		log.Printf("[sandbox] streaming on ws://%s/stream", cfg.StreamAddr)
		onFrame = func(f *state.Frame) {
			if err := hub.Broadcast(f); err != nil {
				log.Printf("[sandbox] broadcast: %v", err)
			}
		}
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		fmt.Fprintf(os.Stderr, "screen: %v\n", err)
		os.Exit(1)
	}
	if err := screen.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "screen: %v\n", err)
		os.Exit(1)
	}
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "\r\nSANDBOX CRASHED: %v\r\n%s\r\n", r, debug.Stack())
			os.Exit(1)
		}
	}()
	defer screen.Fini()

	runner := engine.NewRunner(player, tickInterval, onFrame)
	runner.Instrument(stats)
	s := &sandbox{
		screen: screen,
		runner: runner,
		view:   render.NewView(desc, render.NewScene()),
		sounds: sounds,
		stats:  stats,
		rng:    vmath.NewFastRand(uint64(time.Now().UnixNano())),
		name:   desc.Table.Name,
	}
	runner.Start()
	defer runner.Stop()
	s.run()
}

// loadTable reads the table and its script; an empty path selects the built-in table and rules
func loadTable(path, scriptPath string) (*table.Description, *event.Script, error) {
	var (
		desc   *table.Description
		script *event.Script
		err    error
	)
	if path == "" {
		desc, err = table.Parse([]byte(asset.DefaultTable))
	} else {
		desc, err = table.Load(path)
	}
	if err != nil {
		return nil, nil, fmt.Errorf("table: %w", err)
	}

	switch {
	case scriptPath != "":
		script, err = event.LoadScript(scriptPath)
	case path == "":
		script, err = event.NewScript(asset.DefaultScript)
	}
	if err != nil {
		return nil, nil, fmt.Errorf("script: %w", err)
	}
	return desc, script, nil
}

func (s *sandbox) run() {
	ticker := time.NewTicker(frameInterval)
	defer ticker.Stop()

	eventChan := make(chan tcell.Event, 100)
	go func() {
		for {
			ev := s.screen.PollEvent()
			if ev == nil {
				return
			}
			eventChan <- ev
		}
	}()

	for {
		select {
		case ev := <-eventChan:
			if !s.handleInput(ev) {
				return
			}
		case <-ticker.C:
			s.draw()
		}
	}
}

func (s *sandbox) handleInput(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC {
			return false
		}
		if ev.Key() != tcell.KeyRune {
			return true
		}
		switch ev.Rune() {
		case 'q':
			return false
		case ' ':
			vx := s.rng.FloatM11() * 4
			s.runner.Do(func(p *engine.Player) {
				b := p.CreateBall(mgl32.Vec3{500, 1000, 25}, mgl32.Vec3{vx, -25, 0})
				log.Printf("[sandbox] launched %s", p.BallName(b))
			})
		case 'p':
			if s.runner.Paused() {
				s.runner.Resume()
			} else {
				s.runner.Pause()
			}
		case 'm':
			s.sounds.ToggleMute()
		}
	case *tcell.EventResize:
		s.screen.Sync()
	}
	return true
}

func (s *sandbox) draw() {
	var (
		balls []mgl32.Vec3
		line  string
	)
	s.runner.Do(func(p *engine.Player) {
		p.Render(s.view.Scene())
		for _, b := range p.Balls() {
			balls = append(balls, b.State.Pos)
		}
		line = fmt.Sprintf(" %s  t=%.1fs  balls=%d", s.name, float64(p.TimeMsec())/1000, len(balls))
		if n := p.CappedCycles(); n > 0 {
			line += fmt.Sprintf("  capped=%d", n)
		}
	})
	line += "  " + s.stats.Format("engine.tick_ms")
	if clients := s.stats.Format("replicate.clients"); clients != "" {
		line += "  " + clients
	}
	if s.runner.Paused() {
		line += "  [paused]"
	}
	if s.sounds.Muted() {
		line += "  [muted]"
	}
	line += "  space:ball p:pause m:mute q:quit"

	s.view.Draw(s.screen, balls, line)
	s.screen.Show()
}
