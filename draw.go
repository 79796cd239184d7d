package main

import (
	"fmt"
	"image/color"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/milk9111/locomotion/camera"
	"github.com/milk9111/locomotion/physics"
	"github.com/milk9111/locomotion/prefabs"
	"golang.org/x/image/colornames"
)

const pixelsPerMeter = 26

var (
	backgroundColor = colornames.Darkslategray
	characterColor  = colornames.Royalblue
	obstacleColor   = colornames.Dimgray
	platformColor   = colornames.Olivedrab
)

// topDownView maps the ground plane onto the screen with +Z pointing up.
type topDownView struct {
	cfg    physics.ArenaConfig
	center mgl32.Vec3
}

func newTopDownView(cfg physics.ArenaConfig, focus mgl32.Vec3) topDownView {
	return topDownView{cfg: cfg, center: focus}
}

func (v topDownView) toScreen(x, z float32) (float32, float32) {
	sx := baseWidth/2 + (x-v.center[0])*pixelsPerMeter
	sy := baseHeight/2 - (z-v.center[2])*pixelsPerMeter
	return sx, sy
}

func (v topDownView) fillRect(dst *ebiten.Image, r physics.Rect, clr color.Color) {
	x, y := v.toScreen(r.MinX, r.MaxZ)
	vector.FillRect(dst, x, y, (r.MaxX-r.MinX)*pixelsPerMeter, (r.MaxZ-r.MinZ)*pixelsPerMeter, clr, false)
	vector.StrokeRect(dst, x, y, (r.MaxX-r.MinX)*pixelsPerMeter, (r.MaxZ-r.MinZ)*pixelsPerMeter, 1, colornames.Black, false)
}

func (v topDownView) drawArena(dst *ebiten.Image, spec *prefabs.ArenaSpec) {
	bounds := physics.Rect{MinX: -v.cfg.HalfWidth, MinZ: -v.cfg.HalfDepth, MaxX: v.cfg.HalfWidth, MaxZ: v.cfg.HalfDepth}
	x, y := v.toScreen(bounds.MinX, bounds.MaxZ)
	vector.StrokeRect(dst, x, y, 2*v.cfg.HalfWidth*pixelsPerMeter, 2*v.cfg.HalfDepth*pixelsPerMeter, 3, colornames.Lightgrey, false)

	for i, p := range v.cfg.Platforms {
		clr := color.Color(platformColor)
		if spec != nil && i < len(spec.Platforms) {
			clr = spec.Platforms[i].Color.Or(platformColor)
		}
		v.fillRect(dst, p.Rect, clr)
		px, py := v.toScreen(p.MinX, p.MaxZ)
		ebitenutil.DebugPrintAt(dst, formatHeight(p.Top), int(px)+4, int(py)+4)
	}
	for _, o := range v.cfg.Obstacles {
		v.fillRect(dst, o, obstacleColor)
	}
}

func (v topDownView) drawCharacter(dst *ebiten.Image, arena *physics.Arena, heading mgl32.Quat, clr color.Color) {
	p := arena.Position()
	cx, cy := v.toScreen(p[0], p[2])
	r := v.cfg.Radius * pixelsPerMeter

	// Shadow stays on the ground under the character.
	ground := arena.GroundAt(p[0], p[2], p[1])
	shadow := r * (1 + (p[1]-ground)*0.08)
	vector.FillCircle(dst, cx, cy, shadow, color.RGBA{A: 80}, true)
	vector.FillCircle(dst, cx, cy, r, clr, true)

	facing := heading.Rotate(mgl32.Vec3{0, 0, 1})
	fx, fy := v.toScreen(p[0]+facing[0]*v.cfg.Radius*1.6, p[2]+facing[2]*v.cfg.Radius*1.6)
	vector.StrokeLine(dst, cx, cy, fx, fy, 3, colornames.White, true)
}

func (v topDownView) drawCamera(dst *ebiten.Image, orbit *camera.Orbit) {
	eye := orbit.Eye()
	focus := orbit.Focus()
	ex, ey := v.toScreen(eye[0], eye[2])
	fx, fy := v.toScreen(focus[0], focus[2])
	vector.StrokeLine(dst, ex, ey, fx, fy, 1, colornames.Gold, true)
	vector.FillCircle(dst, ex, ey, 5, colornames.Gold, true)
}

// drawHeightBar shows feet height against the tallest surface in the arena.
func drawHeightBar(dst *ebiten.Image, arena *physics.Arena, spec *prefabs.ArenaSpec) {
	const (
		barX      = baseWidth - 60
		barTop    = 80
		barHeight = baseHeight - 160
		barWidth  = 20
	)
	cfg := arena.Config()
	top := cfg.Floor + 10
	for _, p := range cfg.Platforms {
		top = max(top, p.Top+6)
	}
	span := top - cfg.Floor
	toY := func(h float32) float32 {
		t := mgl32.Clamp((h-cfg.Floor)/span, 0, 1)
		return barTop + barHeight*(1-t)
	}

	vector.FillRect(dst, barX, barTop, barWidth, barHeight, color.RGBA{A: 120}, false)
	vector.StrokeRect(dst, barX, barTop, barWidth, barHeight, 1, colornames.Lightgrey, false)
	for i, p := range cfg.Platforms {
		clr := color.Color(platformColor)
		if spec != nil && i < len(spec.Platforms) {
			clr = spec.Platforms[i].Color.Or(platformColor)
		}
		y := toY(p.Top)
		vector.StrokeLine(dst, barX-6, y, barX+barWidth+6, y, 2, clr, false)
	}

	p := arena.Position()
	y := toY(p[1])
	clr := colornames.Orange
	if arena.IsGrounded() {
		clr = colornames.Limegreen
	}
	vector.FillRect(dst, barX-4, y-3, barWidth+8, 6, clr, false)
	ebitenutil.DebugPrintAt(dst, formatHeight(p[1]), barX-10, barTop+barHeight+8)
}

func formatHeight(h float32) string {
	return fmt.Sprintf("%.1fm", h)
}
