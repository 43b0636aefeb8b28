// Command sim runs the player through a level without a window, feeding it
// input from a tengo script, and logs the player's state as it goes.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/milk9111/raycontroller/entity"
	"github.com/milk9111/raycontroller/levels"
	"github.com/milk9111/raycontroller/motion"
	"github.com/milk9111/raycontroller/physics"
	"github.com/milk9111/raycontroller/prefabs"
	"github.com/milk9111/raycontroller/script"
	"gopkg.in/yaml.v3"
)

type frameState struct {
	Frame  int          `yaml:"frame"`
	Player entity.State `yaml:"player"`
}

func main() {
	levelName := flag.String("level", "test_room", "level name in levels/ (basename, .json optional)")
	scriptName := flag.String("script", "run_right", "input script in prefabs/scripts/ (.tengo optional)")
	frames := flag.Int("frames", 240, "number of ticks to simulate")
	tps := flag.Int("tps", 60, "ticks per second")
	every := flag.Int("every", 30, "log the player state every N ticks (0 disables)")
	dump := flag.Bool("yaml", false, "write the sampled states to stdout as YAML")
	list := flag.Bool("list", false, "list available input scripts and exit")
	flag.Parse()

	if *list {
		for _, n := range prefabs.ScriptNames() {
			fmt.Println(n)
		}
		return
	}

	if *tps <= 0 {
		log.Fatalf("sim: tps must be positive, got %d", *tps)
	}

	lvl, err := levels.Load(*levelName)
	if err != nil {
		log.Fatal(err)
	}
	spec, err := prefabs.LoadPlayerSpec()
	if err != nil {
		log.Fatal(err)
	}
	in, err := script.Load(*scriptName)
	if err != nil {
		log.Fatal(err)
	}

	world := physics.NewWorld(lvl)
	player, err := entity.NewPlayer(spec, world, lvl.SpawnPoint(), in, motion.NewFixedClock(*tps))
	if err != nil {
		log.Fatal(err)
	}
	in.Bind(player.Driver())

	log.Printf("sim: %s on %s, %d ticks at %d tps", in.Name(), *levelName, *frames, *tps)

	var samples []frameState
	for f := 1; f <= *frames; f++ {
		player.Update()
		if err := in.Err(); err != nil {
			log.Fatalf("sim: frame %d: %v", f, err)
		}
		if *every > 0 && (f%*every == 0 || f == *frames) {
			st := player.State()
			log.Printf("sim: %4d %s", f, st)
			samples = append(samples, frameState{Frame: f, Player: st})
		}
	}

	if *dump {
		enc := yaml.NewEncoder(os.Stdout)
		enc.SetIndent(2)
		if err := enc.Encode(samples); err != nil {
			log.Fatal(err)
		}
		if err := enc.Close(); err != nil {
			log.Fatal(err)
		}
	}
}
