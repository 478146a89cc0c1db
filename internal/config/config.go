package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/go-gl/mathgl/mgl32"
	"gopkg.in/yaml.v3"
)

// ConfigPath is the path to the showroom config file, relative to the process working directory.
const ConfigPath = "config/showroom.yaml"

// ErrInvalid is wrapped by Validate for every out-of-range setting.
var ErrInvalid = errors.New("invalid config")

// Config is the full showroom configuration. Zero sections are filled from Default() by Load.
type Config struct {
	Window  WindowConfig  `yaml:"window"`
	Logging LoggingConfig `yaml:"logging"`
	Camera  CameraConfig  `yaml:"camera"`
	Player  PlayerConfig  `yaml:"player"`
	Intro   IntroConfig   `yaml:"intro"`
	Physics PhysicsConfig `yaml:"physics"`
	Scene   SceneConfig   `yaml:"scene"`
	Device  DeviceConfig  `yaml:"device"`
}

type WindowConfig struct {
	Width      int    `yaml:"width"`
	Height     int    `yaml:"height"`
	Title      string `yaml:"title"`
	Fullscreen bool   `yaml:"fullscreen"`
	TargetFPS  int    `yaml:"target_fps"`
}

type LoggingConfig struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"`
	// Console mirrors log lines to stderr in human-readable form.
	Console bool `yaml:"console"`
}

type CameraConfig struct {
	FOV  float32 `yaml:"fov"` // vertical, degrees
	Near float32 `yaml:"near"`
	Far  float32 `yaml:"far"`
}

// PlayerConfig tunes the per-frame controller (movement, jump, follow, respawn, touch look).
type PlayerConfig struct {
	MoveSpeed           float32       `yaml:"move_speed"`
	JumpSpeed           float32       `yaml:"jump_speed"`
	JumpCooldown        time.Duration `yaml:"jump_cooldown"`
	JoystickForwardGain float32       `yaml:"joystick_forward_gain"`
	FollowFactor        float32       `yaml:"follow_factor"`
	RespawnHeight       float32       `yaml:"respawn_height"`
	RespawnPoint        mgl32.Vec3    `yaml:"respawn_point"`
	TouchSensitivity    Sensitivity   `yaml:"touch_sensitivity"`
	LookSensitivity     Sensitivity   `yaml:"look_sensitivity"` // mouse, radians per pixel
	BodyHalfExtents     mgl32.Vec3    `yaml:"body_half_extents"`
}

type Sensitivity struct {
	X float32 `yaml:"x"`
	Y float32 `yaml:"y"`
}

// IntroConfig describes the one-shot cinematic that precedes player control.
type IntroConfig struct {
	Skip            bool          `yaml:"skip"`
	StartPosition   mgl32.Vec3    `yaml:"start_position"`
	StartYaw        float32       `yaml:"start_yaw"`
	SpinDuration    time.Duration `yaml:"spin_duration"`
	DescendDuration time.Duration `yaml:"descend_duration"`
	SpawnPoint      mgl32.Vec3    `yaml:"spawn_point"`
	SafetyRate      float32       `yaml:"safety_rate"` // Hz
	PortraitFOV     float32       `yaml:"portrait_fov"`
	FOVLerp         float32       `yaml:"fov_lerp"`
}

type PhysicsConfig struct {
	Gravity mgl32.Vec3 `yaml:"gravity"`
	// FloorHalfExtents sizes the static floor slab whose top face sits at Y=FloorTop.
	FloorHalfExtents mgl32.Vec3 `yaml:"floor_half_extents"`
	FloorTop         float32    `yaml:"floor_top"`
}

type SceneConfig struct {
	Layout string `yaml:"layout"`
	// Fixture names the bounded root that picking is restricted to.
	Fixture string `yaml:"fixture"`
}

type DeviceConfig struct {
	// ForceTouch treats the device as touch-capable even without touch hardware.
	ForceTouch bool `yaml:"force_touch"`
}

// Default returns the showroom defaults. Values mirror the shipped web showroom.
func Default() Config {
	return Config{
		Window: WindowConfig{
			Width:     1280,
			Height:    720,
			Title:     "showroom",
			TargetFPS: 60,
		},
		Logging: LoggingConfig{
			Level:   "info",
			File:    "logs/showroom.log",
			Console: true,
		},
		Camera: CameraConfig{
			FOV:  75,
			Near: 0.1,
			Far:  1000,
		},
		Player: PlayerConfig{
			MoveSpeed:           1,
			JumpSpeed:           5,
			JumpCooldown:        500 * time.Millisecond,
			JoystickForwardGain: 2,
			FollowFactor:        0.05,
			RespawnHeight:       -2,
			RespawnPoint:        mgl32.Vec3{0, 0.3, 0},
			TouchSensitivity:    Sensitivity{X: 0.004, Y: 0.004},
			LookSensitivity:     Sensitivity{X: 0.002, Y: 0.002},
			BodyHalfExtents:     mgl32.Vec3{0.2, 0.2, 0.2},
		},
		Intro: IntroConfig{
			StartPosition:   mgl32.Vec3{4, 0.5, 0},
			StartYaw:        -mgl32.DegToRad(90),
			SpinDuration:    5 * time.Second,
			DescendDuration: time.Second,
			SpawnPoint:      mgl32.Vec3{0, 0, 0},
			SafetyRate:      60,
			PortraitFOV:     90,
			FOVLerp:         0.05,
		},
		Physics: PhysicsConfig{
			Gravity:          mgl32.Vec3{0, -9.81, 0},
			FloorHalfExtents: mgl32.Vec3{20, 0.5, 20},
			FloorTop:         -0.2,
		},
		Scene: SceneConfig{
			Layout:  "assets/showroom.yaml",
			Fixture: "round_rack",
		},
	}
}

// Load reads the config at path. A missing file is not an error: Default() is returned.
// Keys absent from the file keep their default values; unknown keys are rejected.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("config: read %s: %w", path, err)
	}
	if err := Decode(bytes.NewReader(data), &cfg); err != nil {
		return Default(), fmt.Errorf("config: %s: %w", path, err)
	}
	return cfg, nil
}

// Decode strictly decodes YAML from r on top of the values already in cfg.
func Decode(r io.Reader, cfg *Config) error {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

// Save writes cfg as YAML to path, creating the parent directory if needed.
func Save(path string, cfg Config) error {
	if err := ensureDir(path); err != nil {
		return err
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Validate reports the first setting that would break the controller.
func (c Config) Validate() error {
	p, in := c.Player, c.Intro
	switch {
	case p.MoveSpeed <= 0:
		return fmt.Errorf("%w: player.move_speed must be > 0", ErrInvalid)
	case p.JumpSpeed < 0:
		return fmt.Errorf("%w: player.jump_speed must be >= 0", ErrInvalid)
	case p.JumpCooldown < 0:
		return fmt.Errorf("%w: player.jump_cooldown must be >= 0", ErrInvalid)
	case p.FollowFactor <= 0 || p.FollowFactor > 1:
		return fmt.Errorf("%w: player.follow_factor must be in (0, 1]", ErrInvalid)
	case p.TouchSensitivity.X <= 0 || p.TouchSensitivity.Y <= 0:
		return fmt.Errorf("%w: player.touch_sensitivity must be > 0", ErrInvalid)
	case p.LookSensitivity.X < 0 || p.LookSensitivity.Y < 0:
		return fmt.Errorf("%w: player.look_sensitivity must be >= 0", ErrInvalid)
	case in.SpinDuration <= 0 || in.DescendDuration <= 0:
		return fmt.Errorf("%w: intro durations must be > 0", ErrInvalid)
	case in.SafetyRate <= 0:
		return fmt.Errorf("%w: intro.safety_rate must be > 0", ErrInvalid)
	case in.FOVLerp < 0 || in.FOVLerp > 1:
		return fmt.Errorf("%w: intro.fov_lerp must be in [0, 1]", ErrInvalid)
	case c.Camera.FOV <= 0 || c.Camera.FOV >= 180:
		return fmt.Errorf("%w: camera.fov must be in (0, 180)", ErrInvalid)
	case c.Camera.Near <= 0 || c.Camera.Far <= c.Camera.Near:
		return fmt.Errorf("%w: camera near/far planes", ErrInvalid)
	}
	return nil
}
