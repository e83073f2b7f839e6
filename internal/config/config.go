// Package config handles Tumble configuration loading and management.
package config

// Vec is an (x, y, z) triple written as a YAML flow sequence.
type Vec [3]float64

// Config holds all settings.
type Config struct {
	Display DisplayConfig `yaml:"display"`
	Camera  CameraConfig  `yaml:"camera"`
	Physics PhysicsConfig `yaml:"physics"`
	Render  RenderConfig  `yaml:"render"`
	Scene   SceneConfig   `yaml:"scene"`
	Assets  AssetsConfig  `yaml:"assets"`
	Logging LoggingConfig `yaml:"logging"`
}

// DisplayConfig holds surface and timing settings.
type DisplayConfig struct {
	Width      int    `yaml:"width"`  // window width; the terminal host uses the terminal size
	Height     int    `yaml:"height"` // window height
	FPS        int    `yaml:"fps"`
	Background string `yaml:"background"`
	Square     bool   `yaml:"square"` // keep a square viewport
}

// CameraConfig holds the starting pose and input response.
type CameraConfig struct {
	Position    Vec     `yaml:"position,flow"`
	Yaw         float64 `yaml:"yaw"`
	Pitch       float64 `yaml:"pitch"`
	Sensitivity float64 `yaml:"sensitivity"`
	MoveSpeed   float64 `yaml:"move_speed"`
	Smoothing   bool    `yaml:"smoothing"` // spring-smoothed mouse look
}

// PhysicsConfig holds simulation constants. Velocities are per tick.
type PhysicsConfig struct {
	Enabled     bool    `yaml:"enabled"`
	Gravity     float64 `yaml:"gravity"`
	GroundY     float64 `yaml:"ground_y"`
	Restitution float64 `yaml:"restitution"`
	Friction    float64 `yaml:"friction"`
	StopEps     float64 `yaml:"stop_eps"`
	SnapVelY    float64 `yaml:"snap_vel_y"`
	SnapVelXZ   float64 `yaml:"snap_vel_xz"`
	SnapAngle   float64 `yaml:"snap_angle"`
	ImpulseSeed uint64  `yaml:"impulse_seed"` // 0 picks a random seed
}

// RenderConfig holds pipeline toggles.
type RenderConfig struct {
	Lines          bool    `yaml:"lines"`
	Textures       bool    `yaml:"textures"`
	Lighting       bool    `yaml:"lighting"`
	LightDirection Vec     `yaml:"light_direction,flow"`
	LightMarker    bool    `yaml:"light_marker"`
	Near           float64 `yaml:"near"`
	Foreground     string  `yaml:"foreground"`
}

// SceneConfig lists the figures created at startup.
type SceneConfig struct {
	Figures []FigureConfig `yaml:"figures"`
}

// FigureConfig describes one figure. Which size fields apply depends on
// Shape; zero values fall back to per-shape defaults.
type FigureConfig struct {
	Shape    string  `yaml:"shape"`
	Center   Vec     `yaml:"center,flow"`
	Size     float64 `yaml:"size,omitempty"`   // box edge, pyramid base, ground half-extent, model fit size
	Height   float64 `yaml:"height,omitempty"` // pyramid and prism
	Radius   float64 `yaml:"radius,omitempty"` // sphere and prism; a sphere also collides at this radius
	Steps    int     `yaml:"steps,omitempty"`  // prism sides, ground cells per side (1 is a single quad)
	LatSteps int     `yaml:"lat_steps,omitempty"`
	LonSteps int     `yaml:"lon_steps,omitempty"`
	Mass     float64 `yaml:"mass,omitempty"`
	Static   bool    `yaml:"static,omitempty"` // infinite mass
	Texture  string  `yaml:"texture,omitempty"`
	Color    string  `yaml:"color,omitempty"`
	Model    string  `yaml:"model,omitempty"` // GLB path for shape "model"
}

// AssetsConfig locates texture and model files.
type AssetsConfig struct {
	Dir string `yaml:"dir"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Shapes lists the recognised FigureConfig.Shape values.
var Shapes = []string{"box", "pyramid", "sphere", "ground", "prism", "model"}

// Default returns a Config with the stock scene: a box, a pyramid and a
// prism in a row, a sphere above them, and the ground.
func Default() *Config {
	return &Config{
		Display: DisplayConfig{
			Width:      800,
			Height:     800,
			FPS:        60,
			Background: "#101010",
			Square:     true,
		},
		Camera: CameraConfig{
			Position:    Vec{0, 0, -3},
			Sensitivity: 0.003,
			MoveSpeed:   0.05,
		},
		Physics: PhysicsConfig{
			Enabled:     true,
			Gravity:     -0.01,
			GroundY:     -0.8,
			Restitution: 0.5,
			Friction:    0.98,
			StopEps:     0.02,
			SnapVelY:    0.02,
			SnapVelXZ:   0.01,
			SnapAngle:   0.1,
		},
		Render: RenderConfig{
			Lines:          false,
			Textures:       true,
			Lighting:       true,
			LightDirection: Vec{0.5, 1, -0.6},
			LightMarker:    true,
			Near:           0.1,
			Foreground:     "#50FF50",
		},
		Scene: SceneConfig{
			Figures: []FigureConfig{
				{Shape: "box", Center: Vec{-0.7, 0, 2}, Size: 0.5, Mass: 1, Texture: "checker"},
				{Shape: "pyramid", Center: Vec{0.7, 0, 2}, Size: 0.4, Height: 0.5, Mass: 1, Texture: "gradient"},
				{Shape: "prism", Center: Vec{0, 0, 2}, Radius: 0.25, Height: 0.5, Steps: 16, Mass: 1},
				{Shape: "sphere", Center: Vec{0, 1, 2.5}, Radius: 0.3, LatSteps: 8, LonSteps: 12, Mass: 1, Texture: "checker"},
				{Shape: "ground", Center: Vec{0, -0.8, 2}, Size: 3, Static: true, Color: "#204020"},
			},
		},
		Assets: AssetsConfig{
			Dir: "assets",
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}
