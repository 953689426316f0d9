package scrolly

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

const (
	captionW       = 480
	captionH       = 24
	characterSize  = 6.0
	headingLength  = 18.0
	captionMarginY = 48.0

	// maxRibbonPoints keeps 2 vertices per point addressable by uint16.
	maxRibbonPoints = 1 << 15
)

// Renderer draws the revealed trace, the character marker, and scene
// captions as seen through a Camera.
type Renderer struct {
	camera    *Camera
	trace     *TraceLine
	character *Object

	// CharacterColor tints the character marker.
	CharacterColor Color

	screenPts []Vec2
	verts     []ebiten.Vertex
	inds      []uint16

	captionImages map[*Caption]*ebiten.Image
}

// NewRenderer creates a renderer. trace and character may be nil.
func NewRenderer(camera *Camera, trace *TraceLine, character *Object) *Renderer {
	return &Renderer{
		camera:         camera,
		trace:          trace,
		character:      character,
		CharacterColor: Color{1, 0.6, 0.2, 1},
		captionImages:  make(map[*Caption]*ebiten.Image),
	}
}

// projectTrace projects the trace's visible range into screen space,
// skipping points behind the camera.
func (r *Renderer) projectTrace() []Vec2 {
	r.screenPts = r.screenPts[:0]
	if r.trace == nil {
		return r.screenPts
	}
	start, _ := r.trace.DrawRange()
	if start < 0 {
		start = 0
	}
	for i := range r.trace.VisiblePoints() {
		p := r.trace.WorldVertex(start + i)
		sx, sy, ok := r.camera.WorldToScreen(p)
		if !ok {
			continue
		}
		r.screenPts = append(r.screenPts, Vec2{sx, sy})
	}
	return r.screenPts
}

// Draw renders the trace and character onto screen.
func (r *Renderer) Draw(screen *ebiten.Image) {
	pts := r.projectTrace()
	if len(pts) >= 2 {
		r.buildRibbon(pts, r.trace.Width, r.trace.Color)
		op := &ebiten.DrawTrianglesOptions{AntiAlias: true}
		screen.DrawTriangles(r.verts, r.inds, ensureWhitePixel(), op)
	}
	r.drawCharacter(screen)
}

func (r *Renderer) drawCharacter(screen *ebiten.Image) {
	if r.character == nil {
		return
	}
	pos := r.character.Position
	sx, sy, ok := r.camera.WorldToScreen(pos)
	if !ok || math.IsNaN(sx) || math.IsNaN(sy) {
		return
	}
	clr := r.CharacterColor.toRGBA()
	vector.DrawFilledCircle(screen, float32(sx), float32(sy), characterSize, clr, true)

	// Heading: project a short step along the character's yaw.
	yaw := r.character.Yaw()
	ahead := pos.Add(mgl64.Vec3{math.Sin(yaw), 0, math.Cos(yaw)})
	hx, hy, ok := r.camera.WorldToScreen(ahead)
	if !ok {
		return
	}
	dx, dy := hx-sx, hy-sy
	ln := math.Sqrt(dx*dx + dy*dy)
	if ln < 1e-9 {
		return
	}
	ex := sx + dx/ln*headingLength
	ey := sy + dy/ln*headingLength
	vector.StrokeLine(screen, float32(sx), float32(sy), float32(ex), float32(ey), 2, clr, true)
}

// DrawCaptions renders visible captions centered near the bottom of the
// camera viewport.
func (r *Renderer) DrawCaptions(screen *ebiten.Image, layer *CaptionLayer) {
	if layer == nil {
		return
	}
	vp := r.camera.Viewport
	for _, c := range layer.Captions() {
		if !c.Visible() {
			continue
		}
		img := r.captionImages[c]
		if img == nil {
			img = ebiten.NewImage(captionW, captionH)
			ebitenutil.DebugPrintAt(img, c.Text, 4, 4)
			r.captionImages[c] = img
		}
		op := &ebiten.DrawImageOptions{}
		op.GeoM.Translate(vp.X+(vp.Width-captionW)/2, vp.Y+vp.Height-captionMarginY-captionH)
		op.ColorScale.ScaleAlpha(float32(c.Alpha))
		screen.DrawImage(img, op)
	}
}

// buildRibbon turns a screen-space polyline into a triangle strip of the given
// width. For N points: 2N vertices, 6(N-1) indices.
func (r *Renderer) buildRibbon(points []Vec2, width float64, tint Color) {
	if len(points) > maxRibbonPoints {
		points = points[:maxRibbonPoints]
	}
	n := len(points)
	numVerts := n * 2
	numInds := (n - 1) * 6

	if cap(r.verts) < numVerts {
		r.verts = make([]ebiten.Vertex, numVerts)
	}
	r.verts = r.verts[:numVerts]
	if cap(r.inds) < numInds {
		r.inds = make([]uint16, numInds)
	}
	r.inds = r.inds[:numInds]

	halfW := width / 2
	cr := float32(tint.R * tint.A)
	cg := float32(tint.G * tint.A)
	cb := float32(tint.B * tint.A)
	ca := float32(tint.A)

	for i := 0; i < n; i++ {
		var nx, ny float64
		if i == 0 {
			nx, ny = perpendicular(points[0], points[1])
		} else if i == n-1 {
			nx, ny = perpendicular(points[n-2], points[n-1])
		} else {
			// Average of adjacent segment normals, miter-scaled and clamped to
			// 2x to avoid spikes at sharp corners.
			nx0, ny0 := perpendicular(points[i-1], points[i])
			nx1, ny1 := perpendicular(points[i], points[i+1])
			nx, ny = nx0+nx1, ny0+ny1
			ln := math.Sqrt(nx*nx + ny*ny)
			if ln > 1e-10 {
				nx /= ln
				ny /= ln
			}
			dot := nx0*nx + ny0*ny
			if dot > 0.1 {
				scale := math.Min(1.0/dot, 2.0)
				nx *= scale
				ny *= scale
			}
		}

		vi := i * 2
		r.verts[vi] = ebiten.Vertex{
			DstX: float32(points[i].X + nx*halfW), DstY: float32(points[i].Y + ny*halfW),
			ColorR: cr, ColorG: cg, ColorB: cb, ColorA: ca,
		}
		r.verts[vi+1] = ebiten.Vertex{
			DstX: float32(points[i].X - nx*halfW), DstY: float32(points[i].Y - ny*halfW),
			ColorR: cr, ColorG: cg, ColorB: cb, ColorA: ca,
		}
	}

	for i := 0; i < n-1; i++ {
		ii := i * 6
		v := uint16(i * 2)
		r.inds[ii+0] = v
		r.inds[ii+1] = v + 1
		r.inds[ii+2] = v + 2
		r.inds[ii+3] = v + 1
		r.inds[ii+4] = v + 3
		r.inds[ii+5] = v + 2
	}
}

// perpendicular returns the unit left-perpendicular of the segment from a to b.
func perpendicular(a, b Vec2) (float64, float64) {
	dx := b.X - a.X
	dy := b.Y - a.Y
	ln := math.Sqrt(dx*dx + dy*dy)
	if ln < 1e-10 {
		return 0, -1
	}
	return -dy / ln, dx / ln
}
