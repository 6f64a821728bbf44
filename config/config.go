package config

import (
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Model describes one asset to load and where to place it. Angles are in
// radians, speeds per second.
type Model struct {
	File            string     `yaml:"file"`
	Name            string     `yaml:"name"`
	Translation     [3]float32 `yaml:"translation"`
	Yaw             float32    `yaml:"yaw"`
	Roll            float32    `yaml:"roll"`
	LinearSpeed     [3]float32 `yaml:"linear_speed"`
	RotationalSpeed [3]float32 `yaml:"rotational_speed"`

	// Name of the child node to spin independently, with its rates.
	SpinChild      string     `yaml:"spin_child"`
	SpinChildSpeed [3]float32 `yaml:"spin_child_speed"`
}

type Window struct {
	Title  string `yaml:"title"`
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
}

type Camera struct {
	Position [3]float32 `yaml:"position"`
}

type Config struct {
	ListenAddr string  `yaml:"listen_addr"`
	WebDir     string  `yaml:"web_dir"`
	Window     Window  `yaml:"window"`
	Camera     Camera  `yaml:"camera"`
	VertShader string  `yaml:"vert_shader"`
	FragShader string  `yaml:"frag_shader"`
	Models     []Model `yaml:"models"`
}

// Default returns the demo setup: a self-propelled tank with a spinning
// turret, a cockpit and a ground plane for reference.
func Default() *Config {
	return &Config{
		ListenAddr: ":8000",
		WebDir:     "web",
		Window:     Window{Title: "scene_viewer", Width: 1024, Height: 768},
		Camera:     Camera{Position: [3]float32{0, 0, 30}},
		VertShader: "data/ModelWorldCameraClip.vert",
		FragShader: "data/PassthroughColor.frag",
		Models: []Model{
			{
				File:            "data/tank.gltf",
				Name:            "tank",
				Translation:     [3]float32{-3, -1, -4},
				Yaw:             1.57,
				Roll:            0.2,
				RotationalSpeed: [3]float32{-0.05, -0.3, 0},
				LinearSpeed:     [3]float32{0, 0, 3},
				SpinChild:       "turret",
				SpinChildSpeed:  [3]float32{0, 0.8, 0},
			},
			{File: "data/cockpit.gltf", Name: "cockpit"},
			{File: "data/plane.gltf", Name: "plane"},
		},
	}
}

// Load reads a YAML config file on top of the defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "Failed to read config %q", path)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, errors.Wrapf(err, "Failed to parse config %q", path)
	}
	return cfg, nil
}

var current = Default()

func Get() *Config {
	return current
}

func Set(cfg *Config) {
	current = cfg
}
