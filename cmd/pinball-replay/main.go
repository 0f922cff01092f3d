// Command pinball-replay runs a table headless and writes its state frames as JSON lines
package main

import (
	"bufio"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/lixenwraith/pinball/asset"
	"github.com/lixenwraith/pinball/config"
	"github.com/lixenwraith/pinball/engine"
	"github.com/lixenwraith/pinball/event"
	"github.com/lixenwraith/pinball/table"
)

var (
	tablePath  = flag.String("table", "", "Table TOML file (built-in sandbox table when empty)")
	scriptPath = flag.String("script", "", "Lua table script, overrides PINBALL_SCRIPT")
	duration   = flag.Duration("duration", 10*time.Second, "Simulated time to run")
	step       = flag.Duration("step", 10*time.Millisecond, "Simulated time between frames")
	outPath    = flag.String("o", "", "Output file (stdout when empty)")
	events     = flag.Bool("events", false, "Log item events to stderr")
)

func main() {
	flag.Parse()
	log.SetFlags(0)
	log.SetOutput(os.Stderr)

	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "replay: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if *scriptPath != "" {
		cfg.Script = *scriptPath
	}
	if *step < time.Millisecond {
		return fmt.Errorf("step %v is below one physics tick", *step)
	}

	var desc *table.Description
	if *tablePath == "" {
		desc, err = table.Parse([]byte(asset.DefaultTable))
	} else {
		desc, err = table.Load(*tablePath)
	}
	if err != nil {
		return fmt.Errorf("table: %w", err)
	}

	var script *event.Script
	switch {
	case cfg.Script != "":
		script, err = event.LoadScript(cfg.Script)
	case *tablePath == "":
		script, err = event.NewScript(asset.DefaultScript)
	}
	if err != nil {
		return fmt.Errorf("script: %w", err)
	}

	var binders []event.Binder
	if script != nil {
		binders = append(binders, script)
	}
	if *events {
		binders = append(binders, event.BinderFunc(func(item string) event.Sink {
			return event.SinkFunc(func(name string, params []any) {
				log.Printf("[event] %s.%s%v", item, name, params)
			})
		}))
	}

	player, err := engine.NewPlayer(cfg, desc, event.Fanout(binders...))
	if err != nil {
		return err
	}
	defer player.Close()
	if script != nil {
		player.BindScript(script)
	}
	player.Start()

	var out io.Writer = os.Stdout
	if *outPath != "" {
		f, err := os.Create(*outPath)
		if err != nil {
			return err
		}
		defer f.Close()
		out = f
	}
	w := bufio.NewWriter(out)
	defer w.Flush()
	enc := json.NewEncoder(w)

	frames := 0
	msec := step.Milliseconds()
	for player.TimeMsec() < duration.Milliseconds() {
		player.SimulateTime(msec)
		f := player.PopStates()
		if !f.Empty() {
			err = enc.Encode(f)
			frames++
		}
		f.Release()
		if err != nil {
			return fmt.Errorf("encode frame: %w", err)
		}
	}
	log.Printf("%s: %d frames over %v, %d balls left, %d capped cycles",
		desc.Table.Name, frames, *duration, len(player.Balls()), player.CappedCycles())
	return nil
}
