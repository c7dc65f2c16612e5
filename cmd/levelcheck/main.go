// levelcheck validates level files and reports their contents.
package main

import (
	"fmt"
	"os"

	"github.com/skirmishgame/skirmish/internal/level"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "Usage: levelcheck <level.yaml> [more.yaml ...]")
		os.Exit(1)
	}

	failed := false
	for _, path := range os.Args[1:] {
		data, err := level.Load(path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "%s: %v\n", path, err)
			failed = true
			continue
		}

		starts, recipes, script := 0, 0, 0
		for _, obj := range data.Objects {
			switch {
			case obj.PlayerStart:
				starts++
			case obj.Recipe != nil:
				recipes++
			default:
				script++
			}
		}

		fmt.Printf("%s: ok\n", path)
		fmt.Printf("  level   %q %dx%d\n", data.Level.Name, data.Level.Width, data.Level.Height)
		fmt.Printf("  objects %d (%d starts, %d spawnable, %d script)\n",
			len(data.Objects), starts, recipes, script)
		if data.Script != "" {
			fmt.Printf("  script  %s\n", data.Script)
		}
		if starts == 0 {
			fmt.Fprintf(os.Stderr, "%s: warning: no player start\n", path)
		}
	}

	if failed {
		os.Exit(1)
	}
}
