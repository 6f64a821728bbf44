package main

import (
	"flag"
	"log"
	"runtime"
	"time"

	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/mogaika/scene_viewer/config"
	"github.com/mogaika/scene_viewer/loader"
	"github.com/mogaika/scene_viewer/render"
	"github.com/mogaika/scene_viewer/scene"
	"github.com/mogaika/scene_viewer/status"
	"github.com/mogaika/scene_viewer/utils"
	"github.com/mogaika/scene_viewer/web"
)

func init() {
	// GLFW event handling must run on the main OS thread.
	runtime.LockOSThread()
}

const (
	moveSpeed   = 10.0 // meters per second
	rotateSpeed = 1.5  // radians per second
)

func main() {
	var addr, cfgPath, webPath string
	flag.StringVar(&addr, "i", "", "Address of server (overrides config)")
	flag.StringVar(&cfgPath, "cfg", "", "Path to yaml config file")
	flag.StringVar(&webPath, "data", "", "Path to web inspector files (overrides config)")
	flag.Parse()

	cfg := config.Get()
	if cfgPath != "" {
		var err error
		if cfg, err = config.Load(cfgPath); err != nil {
			log.Fatal(err)
		}
		config.Set(cfg)
	}
	if addr == "" {
		addr = cfg.ListenAddr
	}
	if webPath == "" {
		webPath = cfg.WebDir
	}

	window, err := render.NewWindow(cfg.Window.Title, cfg.Window.Width, cfg.Window.Height)
	if err != nil {
		log.Fatal(err)
	}
	defer window.Terminate()

	program, err := render.NewProgram(cfg.VertShader, cfg.FragShader)
	if err != nil {
		log.Fatal(err)
	}
	defer program.Delete()

	sc := &scene.Scene{}
	if err := loadModels(cfg, program, sc); err != nil {
		log.Fatal(err)
	}

	camera := render.NewCamera(mgl32.Vec3(cfg.Camera.Position))
	renderer := render.NewRenderer(program, camera, sc)
	window.OnResize(renderer.SetViewport)

	web.Publish(sc)
	go func() {
		if err := web.StartServer(addr, webPath); err != nil {
			log.Printf("[main] web server: %v", err)
		}
	}()

	run(window, renderer, sc)
}

// loadModels builds the scene from the configured assets and places each
// model's root as authored in the config.
func loadModels(cfg *config.Config, program *render.Program, sc *scene.Scene) error {
	meshFn := render.MeshProvider(program)

	for _, model := range cfg.Models {
		roots, err := loader.Load(model.File, meshFn)
		if err != nil {
			return err
		}

		for i, root := range roots {
			if i == 0 {
				root.Move(mgl32.Vec3(model.Translation))
				root.Yaw(model.Yaw)
				root.Roll(model.Roll)
				root.SetLinearSpeed(mgl32.Vec3(model.LinearSpeed))
				root.SetRotationalSpeed(mgl32.Vec3(model.RotationalSpeed))
			}
			sc.AddRootNode(root)
		}

		if model.SpinChild != "" {
			if child := sc.FindNode(model.SpinChild); child != nil {
				child.SetRotationalSpeed(mgl32.Vec3(model.SpinChildSpeed))
			} else {
				log.Printf("[main] model %q has no child node %q", model.Name, model.SpinChild)
			}
		}
		status.Info("loaded %q", model.File)
	}
	return nil
}

func run(window *render.Window, renderer *render.Renderer, sc *scene.Scene) {
	window.OnKey(func(key glfw.Key) {
		if key == glfw.KeyEscape {
			window.Close()
		}
	})

	fps := utils.NewFPS(time.Second)
	for !window.ShouldClose() {
		elapsed, calculated := fps.Tick()
		dt := float32(elapsed.Seconds())

		checkKeys(window, renderer.Camera(), dt)
		renderer.Frame(dt)
		web.Publish(sc)

		if calculated {
			log.Printf("[main] %.1f fps (worst frame %v)", fps.Framerate(), fps.WorstFrame())
			status.Frame(fps.Framerate(), fps.WorstFrame(), sc.CountNodes())
		}

		window.SwapBuffers()
		window.PollEvents()
	}
}

// checkKeys applies the held movement keys to the camera. WASD and arrows
// move, RF pitch, QE yaw, ZX roll.
func checkKeys(window *render.Window, camera *render.Camera, dt float32) {
	move := moveSpeed * dt
	rotate := rotateSpeed * dt

	if window.KeyPressed(glfw.KeyW) || window.KeyPressed(glfw.KeyUp) {
		camera.Move(mgl32.Vec3{0, 0, -move})
	}
	if window.KeyPressed(glfw.KeyS) || window.KeyPressed(glfw.KeyDown) {
		camera.Move(mgl32.Vec3{0, 0, move})
	}
	if window.KeyPressed(glfw.KeyA) || window.KeyPressed(glfw.KeyLeft) {
		camera.Move(mgl32.Vec3{-move, 0, 0})
	}
	if window.KeyPressed(glfw.KeyD) || window.KeyPressed(glfw.KeyRight) {
		camera.Move(mgl32.Vec3{move, 0, 0})
	}
	if window.KeyPressed(glfw.KeySpace) {
		camera.Move(mgl32.Vec3{0, move, 0})
	}
	if window.KeyPressed(glfw.KeyLeftShift) {
		camera.Move(mgl32.Vec3{0, -move, 0})
	}

	if window.KeyPressed(glfw.KeyR) {
		camera.Pitch(rotate)
	}
	if window.KeyPressed(glfw.KeyF) {
		camera.Pitch(-rotate)
	}
	if window.KeyPressed(glfw.KeyQ) {
		camera.Yaw(rotate)
	}
	if window.KeyPressed(glfw.KeyE) {
		camera.Yaw(-rotate)
	}
	if window.KeyPressed(glfw.KeyZ) {
		camera.Roll(rotate)
	}
	if window.KeyPressed(glfw.KeyX) {
		camera.Roll(-rotate)
	}
}
