package main

import (
	"flag"
	"os"
	"time"

	"github.com/go-gl/mathgl/mgl32"

	"showroom/internal/camera"
	"showroom/internal/commands"
	"showroom/internal/config"
	"showroom/internal/debug"
	"showroom/internal/device"
	"showroom/internal/graphics"
	"showroom/internal/input"
	"showroom/internal/intro"
	"showroom/internal/logger"
	"showroom/internal/motion"
	"showroom/internal/overlay"
	"showroom/internal/physics"
	"showroom/internal/picking"
	"showroom/internal/platform"
	"showroom/internal/player"
	"showroom/internal/primitives"
	"showroom/internal/scene"
	"showroom/internal/terminal"
	"showroom/internal/tween"
)

func main() {
	cfgPath := flag.String("config", config.ConfigPath, "path to the showroom config file")
	flag.Parse()

	envErr := config.LoadDotEnv(".env")
	cfg, cfgErr := config.Load(*cfgPath)
	cfg.ApplyEnv(nil)

	log := logger.New(logger.Options{
		Level:   cfg.Logging.Level,
		File:    cfg.Logging.File,
		Console: cfg.Logging.Console,
	})
	defer log.Close()
	if envErr != nil {
		log.Warn().Err(envErr).Msg("ignoring .env")
	}
	if cfgErr != nil {
		log.Warn().Err(cfgErr).Msg("using default config")
	}
	if err := cfg.Validate(); err != nil {
		log.Error().Err(err).Msg("invalid config")
		os.Exit(1)
	}

	graph, fixture := loadScene(cfg.Scene, log)
	world, body := buildWorld(cfg, graph)

	caps := device.New(cfg.Device.ForceTouch, cfg.Window.Width, cfg.Window.Height)
	cam := camera.New(cfg.Camera.FOV, 1, cfg.Camera.Near, cfg.Camera.Far)
	surfaces := overlay.NewSurfaces()
	card := newProductCard(surfaces, log.Component("catalog"))

	ctrl := player.New(playerOptions(cfg), player.Deps{
		Camera:   cam,
		Body:     body,
		World:    world,
		Surfaces: surfaces,
		Touch:    &overlay.TouchGate{},
		Device:   caps,
		Picker:   picking.New(graph, fixture, log.Component("picking")),
		Products: card,
		Log:      log.Component("player"),
	})

	hud := debug.New()
	reg := commands.NewRegistry()
	commands.RegisterShowroom(reg, commands.Targets{
		Player:   ctrl,
		Surfaces: surfaces,
		HUD:      hud,
		Log:      log.Component("console"),
	})
	term := terminal.New(log.Component("console"), log, reg, surfaces)

	bus := input.NewBus()
	poller := platform.New(bus, &caps, surfaces, log.Component("platform"))
	stage := graphics.NewStage(primitives.NewRenderer())

	ctrl.Start(bus)
	defer ctrl.Stop()

	var hover scene.ProductID
	var hovering bool
	update := func(dt time.Duration) {
		term.Update()
		frame := poller.Poll()
		if frame.Click != nil {
			ctrl.Click(*frame.Click)
		}
		card.Update()
		ctrl.Tick(dt, frame.Keys)
		graph.Advance()
		hover, hovering = ctrl.Hover(picking.Pointer{Locked: true})
	}
	draw := func() {
		stage.Draw(cam, graph, hover, hovering && !surfaces.Blocked())
		if surfaces.CrosshairVisible() && !surfaces.IsOpen(overlay.Console) {
			graphics.DrawCrosshair()
		}
		poller.DrawJoystick()
		card.Draw()
		hud.Draw(ctrl.Status())
		term.Draw()
	}

	log.Info().Str("layout", cfg.Scene.Layout).Int("nodes", graph.Len()).Msg("showroom ready")
	graphics.Run(graphics.Window{
		Width:      cfg.Window.Width,
		Height:     cfg.Window.Height,
		Title:      cfg.Window.Title,
		Fullscreen: cfg.Window.Fullscreen,
		TargetFPS:  cfg.Window.TargetFPS,
	}, update, draw)
	stage.Unload()
}

// loadScene builds the scene graph and finds the pickable fixture. A broken layout
// leaves an empty showroom rather than stopping the program.
func loadScene(cfg config.SceneConfig, log *logger.Logger) (*scene.Graph, scene.NodeID) {
	l := log.Component("scene")
	layout, err := scene.LoadLayout(cfg.Layout)
	if err != nil {
		l.Warn().Err(err).Msg("no layout, empty scene")
		g := scene.NewGraph()
		return g, g.Root()
	}
	g, err := layout.Build()
	if err != nil {
		l.Warn().Err(err).Msg("layout build failed, empty scene")
		g = scene.NewGraph()
		return g, g.Root()
	}
	fixture, ok := g.Lookup(cfg.Fixture)
	if !ok {
		l.Warn().Str("fixture", cfg.Fixture).Msg("fixture not found, picking the whole scene")
		fixture = g.Root()
	}
	return g, fixture
}

// buildWorld creates the physics world: the floor slab, a static box per solid mesh
// and the player body at the intro start position.
func buildWorld(cfg config.Config, g *scene.Graph) (*physics.World, *physics.Body) {
	w := physics.NewWorld()
	w.Gravity = cfg.Physics.Gravity

	half := cfg.Physics.FloorHalfExtents
	floor := physics.NewBody(mgl32.Vec3{0, cfg.Physics.FloorTop - half.Y(), 0}, half.Mul(2), 1, true)
	w.AddBody(floor)

	for _, id := range g.Solids(g.Root()) {
		lo, hi, ok := g.Bounds(id)
		if !ok {
			continue
		}
		w.AddBody(physics.NewBody(lo.Add(hi).Mul(0.5), hi.Sub(lo), 1, true))
	}

	body := physics.NewPlayerBody(cfg.Intro.StartPosition, cfg.Player.BodyHalfExtents)
	w.AddBody(body)
	return w, body
}

func playerOptions(cfg config.Config) player.Options {
	p, in := cfg.Player, cfg.Intro
	return player.Options{
		Input: input.Settings{
			MoveSpeed:           p.MoveSpeed,
			JoystickForwardGain: p.JoystickForwardGain,
			TouchSensitivity:    mgl32.Vec2{p.TouchSensitivity.X, p.TouchSensitivity.Y},
			LookSensitivity:     mgl32.Vec2{p.LookSensitivity.X, p.LookSensitivity.Y},
		},
		Motion: motion.Settings{
			MoveSpeed:    p.MoveSpeed,
			JumpSpeed:    p.JumpSpeed,
			JumpCooldown: p.JumpCooldown,
		},
		Intro: intro.Settings{
			StartPosition:   in.StartPosition,
			StartYaw:        in.StartYaw,
			SpinDuration:    in.SpinDuration,
			DescendDuration: in.DescendDuration,
			SpawnPoint:      in.SpawnPoint,
			SafetyPeriod:    tween.PeriodForRate(in.SafetyRate),
			PortraitFOV:     in.PortraitFOV,
			FOVLerp:         in.FOVLerp,
		},
		FollowFactor:  p.FollowFactor,
		RespawnHeight: p.RespawnHeight,
		RespawnPoint:  p.RespawnPoint,
		SkipIntro:     in.Skip,
	}
}
