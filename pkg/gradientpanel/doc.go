// Package gradientpanel provides the public API for embedding a gradient
// panel: a window and a tree of widgets whose backgrounds are painted with a
// two-color horizontal gradient, an optional background image, and
// transparency composited against the parent.
//
// # Basic Usage
//
// Load a scene file and show it in a window:
//
//	p, err := gradientpanel.New("/path/to/scene.yaml", nil)
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer p.Close()
//
//	if err := p.Run(ctx); err != nil {
//		log.Fatal(err)
//	}
//
// Run blocks until the window is closed or ctx is cancelled, and must be
// called from the main goroutine.
//
// # Scene Files
//
// Scenes are written in Lua, YAML or TOML; the format is chosen by file
// extension. Use [NewFromReader] for scenes that do not live on disk.
//
// # Offscreen Rendering
//
// [Panel.Render] paints the whole scene into an image without opening a
// window, and [Panel.WritePNG] saves it:
//
//	if err := p.WritePNG("panel.png"); err != nil {
//		log.Fatal(err)
//	}
//
// # Runtime Changes
//
// Widget gradients can be changed while the panel runs:
//
//	p.SetGradient("cpu", red, transparent)
//	p.ResetGradient("cpu") // back to a flat fill of the back color
//
// All methods are safe for concurrent use.
package gradientpanel
