package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"math/rand"
	"os"
	"time"

	"github.com/leonelquinteros/gotext"

	"cavern/pkg/engine/autotile"
	"cavern/pkg/engine/input"
	"cavern/pkg/engine/terminal"
	"cavern/pkg/engine/world"
	"cavern/pkg/game/devtools"
	"cavern/pkg/game/generator"
	"cavern/pkg/game/level"
	"cavern/pkg/game/renderer"
	ebitenrenderer "cavern/pkg/game/renderer/ebiten"
	"cavern/pkg/game/renderer/tui"
	"cavern/pkg/game/state"
)

func initLocale(locale string) {
	gotext.Configure("locales", locale, "default")
}

// loadLevel reads the layout from path, generates one, or falls back to the built-in cave
func loadLevel(path, gen string, depth int, seed int64) (*level.Level, error) {
	switch {
	case gen != "":
		g, ok := generator.ByName(gen)
		if !ok {
			return nil, fmt.Errorf("unknown generator %q", gen)
		}
		return g.Generate(depth, rand.New(rand.NewSource(seed))), nil
	case path != "":
		return level.LoadLevelFile(path)
	default:
		return level.DefaultLevel(), nil
	}
}

func loadPatterns(path string) (autotile.PatternMap, error) {
	if path == "" {
		return level.DefaultPatterns(), nil
	}
	return level.LoadPatternsFile(path)
}

// buildGame assigns every descriptor, places the base and spawns the first colonists
func buildGame(lvl *level.Level, patterns autotile.PatternMap, r renderer.Renderer, colonists int) (*state.Game, error) {
	g := state.NewGame(lvl.Grid(), patterns, r)
	if err := g.Load(); err != nil {
		return nil, err
	}

	if lvl.Base == nil {
		log.Printf("Level %s has no base, nothing will be revealed", lvl.Name)
		return g, nil
	}
	if err := g.PlaceBase(*lvl.Base); err != nil {
		return nil, err
	}
	for i := 0; i < colonists; i++ {
		g.SpawnActor(*lvl.Base)
	}
	return g, nil
}

// advance ticks the game in steps until d has passed
func advance(g *state.Game, d, step time.Duration) error {
	end := g.Now + d
	for g.Now < end {
		next := g.Now + step
		if next > end {
			next = end
		}
		if err := g.Tick(next); err != nil {
			return err
		}
	}
	return nil
}

// runTicks runs a fixed number of ticks and renders the last frame
func runTicks(g *state.Game, r renderer.Renderer, ticks int, step time.Duration) error {
	for i := 0; i < ticks; i++ {
		if err := g.Tick(g.Now + step); err != nil {
			return err
		}
	}
	r.RenderFrame(g)
	return nil
}

// runInteractive reads commands from in until it ends or the player quits
func runInteractive(g *state.Game, r *tui.TUIRenderer, in io.Reader, step time.Duration, clear bool) error {
	reader := input.NewReader(in)
	for {
		if clear {
			r.Clear()
		}
		r.RenderFrame(g)
		fmt.Print("\n> ")

		cmd, err := reader.Next()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if errors.Is(err, input.ErrBadCommand) {
			g.AddMessage(err.Error())
			continue
		}
		if err != nil {
			return err
		}

		if done, err := processCommand(g, cmd, step, r); done || err != nil {
			return err
		}
	}
}

// processCommand applies one terminal command. It returns true when the player quits.
func processCommand(g *state.Game, cmd input.Command, step time.Duration, descriptors devtools.DescriptorSource) (bool, error) {
	switch cmd.Action {
	case input.ActionQuit:
		fmt.Println(gotext.Get("Goodbye"))
		return true, nil
	case input.ActionSpawn:
		if g.Base == nil {
			g.AddMessage(gotext.Get("No base to spawn from"))
			return false, nil
		}
		a := g.SpawnActor(*g.Base)
		g.AddMessage(gotext.Get("Colonist %d ready", a.ID))
	case input.ActionMove:
		if _, err := g.RequestMove(cmd.Args[0], world.Pt(cmd.Args[1], cmd.Args[2])); err != nil {
			g.AddMessage(err.Error())
		}
	case input.ActionDig:
		if err := g.Dig(world.Pt(cmd.Args[0], cmd.Args[1])); err != nil {
			g.AddMessage(err.Error())
		}
	case input.ActionWait:
		d := step
		if len(cmd.Args) == 1 {
			d = time.Duration(cmd.Args[0]) * time.Millisecond
		}
		return false, advance(g, d, step)
	case input.ActionDumpMap:
		path, err := devtools.DumpMapToFile(g, descriptors)
		if err != nil {
			return false, err
		}
		g.AddMessage(gotext.Get("Map dumped to %s", path))
		return false, nil
	default:
		g.AddMessage(gotext.Get("%s is not available here", input.ActionName(cmd.Action)))
	}

	// Every command lets one step of time pass
	return false, advance(g, step, step)
}

func main() {
	rendererName := flag.String("renderer", "tui", "renderer to use: tui or ebiten")
	levelPath := flag.String("level", "", "level layout file (default: built-in cave)")
	patternsPath := flag.String("patterns", "", "pattern dictionary JSON file (default: built-in)")
	gen := flag.String("generate", "", "generate a cave instead of loading one: tunnels or chambers")
	depth := flag.Int("depth", 1, "depth of a generated cave")
	seed := flag.Int64("seed", time.Now().UnixNano(), "seed for cave generation")
	ticks := flag.Int("ticks", 0, "tui: run this many ticks and print the final frame (0 = interactive)")
	tickMs := flag.Int("tick-ms", 50, "game time per tick in milliseconds")
	locale := flag.String("locale", "en", "message locale")
	colonists := flag.Int("colonists", 1, "colonists spawned at the base")
	dump := flag.Bool("dump", false, "print the level layout and exit")
	flag.Parse()

	initLocale(*locale)

	lvl, err := loadLevel(*levelPath, *gen, *depth, *seed)
	if err != nil {
		log.Fatalf("Cannot load level: %v", err)
	}
	if *dump {
		fmt.Print(level.FormatGrid(lvl.Grid()))
		return
	}

	patterns, err := loadPatterns(*patternsPath)
	if err != nil {
		log.Fatalf("Cannot load patterns: %v", err)
	}
	if msg := lvl.Grid().Validate(); msg != "" {
		log.Fatalf("Invalid level %s: %s", lvl.Name, msg)
	}
	log.Printf("Loaded level %s (%d descriptors)", lvl.Name, len(autotile.Descriptors(patterns)))

	if *tickMs <= 0 {
		log.Fatalf("tick-ms must be positive, got %d", *tickMs)
	}
	step := time.Duration(*tickMs) * time.Millisecond

	switch *rendererName {
	case "tui":
		r := tui.New(os.Stdout)
		renderer.SetRenderer(r)
		renderer.Init()
		defer renderer.Close()

		g, err := buildGame(lvl, patterns, r, *colonists)
		if err != nil {
			log.Fatalf("Cannot start game: %v", err)
		}

		if *ticks > 0 {
			err = runTicks(g, r, *ticks, step)
		} else {
			err = runInteractive(g, r, os.Stdin, step, terminal.IsInteractive())
		}
		if err != nil {
			log.Fatalf("Game stopped: %v", err)
		}

	case "ebiten":
		r := ebitenrenderer.New()
		renderer.SetRenderer(r)
		renderer.Init()
		defer renderer.Close()

		g, err := buildGame(lvl, patterns, r, *colonists)
		if err != nil {
			log.Fatalf("Cannot start game: %v", err)
		}
		renderer.RenderFrame(g)
		if err := r.Run(); err != nil {
			log.Fatalf("Game stopped: %v", err)
		}

	default:
		log.Fatalf("Unknown renderer %q", *rendererName)
	}
}
