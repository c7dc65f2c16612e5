package level

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/skirmishgame/skirmish/internal/component"
	"github.com/skirmishgame/skirmish/internal/geom"
)

// Object is one parsed level entity. Exactly one of the typed fields is
// set; Name is the unique "name|id" key from the level file.
type Object struct {
	Name   string
	Pos    geom.Vec3
	Dir    float64
	Active bool

	Recipe      *component.SpawnRecipe
	PlayerStart bool
	Trigger     *component.Trigger
	AreaTrigger *component.AreaTrigger
	Counter     *component.Counter
	Spawner     *component.Spawner
	Deleter     *component.Deleter
}

// Data is a fully parsed level file: static geometry, the object list
// in deterministic (sorted key) order, and an optional script path.
type Data struct {
	Level   *Level
	Objects []Object
	Script  string
}

type levelFile struct {
	Name    string                `yaml:"name"`
	Width   int                   `yaml:"width"`
	Height  int                   `yaml:"height"`
	Tiles   []int                 `yaml:"tiles"`
	Script  string                `yaml:"script"`
	Objects map[string]objectSpec `yaml:"objects"`
}

type objectSpec struct {
	Type   string `yaml:"type"`
	X      float64
	Z      float64
	Dir    float64
	Active *bool

	Sprite     string
	Size       float64
	Solid      bool
	HealthFrac float64 `yaml:"health_frac"`

	Item   string
	Weapon string

	Delay     float64
	Targets   []string
	ScriptFn  string    `yaml:"script_fn"`
	EndLevel  bool      `yaml:"end_level"`
	Rect      []float64 `yaml:"rect"`
	Counter   string
	Threshold int
	Recipe    string
	MaxCount  int `yaml:"max_count"`
}

// Load parses and validates a level file. Content problems are fatal
// with a message naming the offending object.
func Load(path string) (*Data, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read level %s: %w", path, err)
	}
	var file levelFile
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return nil, fmt.Errorf("parse level %s: %w", path, err)
	}

	if file.Width <= 0 || file.Height <= 0 {
		return nil, fmt.Errorf("level %s: bad dimensions %dx%d", path, file.Width, file.Height)
	}
	if len(file.Tiles) != file.Width*file.Height {
		return nil, fmt.Errorf("level %s: %d tiles, want %d", path, len(file.Tiles), file.Width*file.Height)
	}

	data := &Data{
		Level: &Level{
			Name:   file.Name,
			Width:  file.Width,
			Height: file.Height,
			Tiles:  file.Tiles,
		},
		Script: file.Script,
	}

	names := make([]string, 0, len(file.Objects))
	for name := range file.Objects {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		obj, err := parseObject(name, file.Objects[name])
		if err != nil {
			return nil, fmt.Errorf("level %s: %w", path, err)
		}
		data.Objects = append(data.Objects, obj)
	}

	if err := checkTargets(data.Objects); err != nil {
		return nil, fmt.Errorf("level %s: %w", path, err)
	}
	return data, nil
}

func parseObject(name string, spec objectSpec) (Object, error) {
	if !strings.Contains(name, "|") {
		return Object{}, fmt.Errorf("object %q: key must be name|id", name)
	}

	obj := Object{
		Name:   name,
		Pos:    geom.Vec3{X: spec.X, Z: spec.Z},
		Dir:    spec.Dir,
		Active: spec.Active == nil || *spec.Active,
	}

	switch spec.Type {
	case "player_start":
		obj.PlayerStart = true
	case "player", "buggy", "monster", "item", "doodad":
		recipe, err := parseRecipe(name, spec)
		if err != nil {
			return Object{}, err
		}
		obj.Recipe = recipe
	case "trigger":
		obj.Trigger = &component.Trigger{
			Delay:    spec.Delay,
			Targets:  spec.Targets,
			ScriptFn: spec.ScriptFn,
			EndLevel: spec.EndLevel,
		}
	case "area_trigger":
		if len(spec.Rect) != 4 {
			return Object{}, fmt.Errorf("object %q: rect needs 4 values, got %d", name, len(spec.Rect))
		}
		obj.AreaTrigger = &component.AreaTrigger{
			Rect: geom.Rect{
				Start: geom.Vec2{X: spec.Rect[0], Y: spec.Rect[1]},
				End:   geom.Vec2{X: spec.Rect[2], Y: spec.Rect[3]},
			},
			Targets: spec.Targets,
		}
	case "counter":
		if spec.Counter == "" {
			return Object{}, fmt.Errorf("object %q: counter needs a counter name", name)
		}
		if spec.Threshold <= 0 {
			return Object{}, fmt.Errorf("object %q: counter needs a positive threshold", name)
		}
		obj.Counter = &component.Counter{
			Name:      spec.Counter,
			Threshold: spec.Threshold,
			Targets:   spec.Targets,
			EndLevel:  spec.EndLevel,
		}
	case "spawner":
		arch, ok := component.ParseArchetype(spec.Recipe)
		if !ok {
			return Object{}, fmt.Errorf("object %q: spawner recipe %q unknown", name, spec.Recipe)
		}
		if spec.MaxCount <= 0 {
			return Object{}, fmt.Errorf("object %q: spawner needs a positive max_count", name)
		}
		obj.Spawner = &component.Spawner{
			MaxCount: spec.MaxCount,
			Delay:    spec.Delay,
			Recipe:   component.SpawnRecipe{Archetype: arch, HealthFrac: 1},
		}
	case "deleter":
		obj.Deleter = &component.Deleter{Targets: spec.Targets}
	case "":
		return Object{}, fmt.Errorf("object %q: missing type", name)
	default:
		return Object{}, fmt.Errorf("object %q: unknown type %q", name, spec.Type)
	}
	return obj, nil
}

func parseRecipe(name string, spec objectSpec) (*component.SpawnRecipe, error) {
	arch, _ := component.ParseArchetype(spec.Type)
	recipe := &component.SpawnRecipe{
		Archetype:   arch,
		HealthFrac:  spec.HealthFrac,
		Size:        spec.Size,
		SpriteSheet: spec.Sprite,
		Solidify:    spec.Solid,
	}
	if recipe.HealthFrac == 0 {
		recipe.HealthFrac = 1
	}

	switch arch {
	case component.ArchItem:
		item, err := parseItem(name, spec)
		if err != nil {
			return nil, err
		}
		recipe.Item = item
	case component.ArchDoodad:
		if spec.Sprite == "" {
			return nil, fmt.Errorf("object %q: doodad needs a sprite", name)
		}
		if spec.Size <= 0 {
			return nil, fmt.Errorf("object %q: doodad needs a positive size", name)
		}
	}
	return recipe, nil
}

func parseItem(name string, spec objectSpec) (component.ItemType, error) {
	var item component.ItemType
	switch spec.Item {
	case "health":
		item.Kind = component.ItemHealth
	case "armour":
		item.Kind = component.ItemArmour
	case "ammo":
		item.Kind = component.ItemAmmo
	case "weapon":
		item.Kind = component.ItemWeapon
	case "life":
		item.Kind = component.ItemLife
	case "":
		return item, fmt.Errorf("object %q: item needs an item kind", name)
	default:
		return item, fmt.Errorf("object %q: unknown item kind %q", name, spec.Item)
	}

	if item.Kind == component.ItemAmmo || item.Kind == component.ItemWeapon {
		w, ok := component.ParseWeapon(spec.Weapon)
		if !ok {
			return item, fmt.Errorf("object %q: item kind %q needs a weapon, got %q", name, spec.Item, spec.Weapon)
		}
		item.Weapon = w
	}
	return item, nil
}

// checkTargets verifies every trigger/counter/deleter target names an
// object present in the file.
func checkTargets(objects []Object) error {
	known := make(map[string]bool, len(objects))
	for _, obj := range objects {
		known[obj.Name] = true
	}

	check := func(owner string, targets []string) error {
		for _, t := range targets {
			if !known[t] {
				return fmt.Errorf("object %q: target %q not in level", owner, t)
			}
		}
		return nil
	}

	for _, obj := range objects {
		var targets []string
		switch {
		case obj.Trigger != nil:
			targets = obj.Trigger.Targets
		case obj.AreaTrigger != nil:
			targets = obj.AreaTrigger.Targets
		case obj.Counter != nil:
			targets = obj.Counter.Targets
		case obj.Deleter != nil:
			targets = obj.Deleter.Targets
		}
		if err := check(obj.Name, targets); err != nil {
			return err
		}
	}
	return nil
}
