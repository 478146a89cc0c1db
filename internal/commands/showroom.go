package commands

import (
	"errors"
	"flag"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"showroom/internal/overlay"
)

// ErrBadFlags is returned when a command's flags contradict each other or are missing.
var ErrBadFlags = errors.New("bad flags")

// Player is the slice of the controller the console can drive.
type Player interface {
	Respawn()
	SkipIntro()
	SetFOV(deg float32)
}

// Toggle is anything that can be shown or hidden.
type Toggle interface {
	SetVisible(bool)
}

// Targets are what the showroom commands act on. HUD may be nil.
type Targets struct {
	Player   Player
	Surfaces *overlay.Surfaces
	HUD      Toggle
	Log      zerolog.Logger
}

// RegisterShowroom adds the console commands: respawn, intro, fov, overlay, crosshair,
// hud and help.
func RegisterShowroom(r *Registry, t Targets) {
	r.Register("respawn", "respawn", func(*flag.FlagSet) func() error {
		return func() error {
			t.Player.Respawn()
			t.Log.Info().Msg("respawned by console")
			return nil
		}
	})

	r.Register("intro", "intro --skip", func(fs *flag.FlagSet) func() error {
		skip := fs.Bool("skip", false, "complete the intro now")
		return func() error {
			if !*skip {
				return fmt.Errorf("intro: %w: want --skip", ErrBadFlags)
			}
			t.Player.SkipIntro()
			return nil
		}
	})

	r.Register("fov", "fov --value <degrees>", func(fs *flag.FlagSet) func() error {
		value := fs.Float64("value", 0, "vertical field of view in degrees")
		return func() error {
			if *value <= 0 || *value >= 180 {
				return fmt.Errorf("fov: %w: value must be in (0, 180)", ErrBadFlags)
			}
			t.Player.SetFOV(float32(*value))
			t.Log.Info().Float64("fov", *value).Msg("fov set")
			return nil
		}
	})

	r.Register("overlay", "overlay --name <surface> --open|--close", func(fs *flag.FlagSet) func() error {
		name := fs.String("name", "", "surface name")
		open := fs.Bool("open", false, "open the surface")
		closeIt := fs.Bool("close", false, "close the surface")
		return func() error {
			if *open == *closeIt {
				return fmt.Errorf("overlay: %w: want exactly one of --open, --close", ErrBadFlags)
			}
			s, err := overlay.ParseSurface(*name)
			if err != nil {
				return fmt.Errorf("overlay: %w", err)
			}
			if *open {
				t.Surfaces.Open(s)
			} else {
				t.Surfaces.Close(s)
			}
			t.Log.Info().Str("surface", s.String()).Bool("open", *open).Msg("overlay")
			return nil
		}
	})

	r.Register("crosshair", "crosshair --show|--hide", showHide("crosshair", t.Surfaces.SetCrosshair))

	r.Register("hud", "hud --show|--hide", showHide("hud", func(v bool) {
		if t.HUD != nil {
			t.HUD.SetVisible(v)
		}
	}))

	r.Register("help", "help", func(*flag.FlagSet) func() error {
		return func() error {
			usages := make([]string, 0, len(r.cmds))
			for _, n := range r.Names() {
				u, _ := r.Usage(n)
				usages = append(usages, u)
			}
			t.Log.Info().Msg("commands: " + strings.Join(usages, "; "))
			return nil
		}
	})
}

func showHide(name string, set func(bool)) Setup {
	return func(fs *flag.FlagSet) func() error {
		show := fs.Bool("show", false, "show")
		hide := fs.Bool("hide", false, "hide")
		return func() error {
			if *show == *hide {
				return fmt.Errorf("%s: %w: want exactly one of --show, --hide", name, ErrBadFlags)
			}
			set(*show)
			return nil
		}
	}
}
