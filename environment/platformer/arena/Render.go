package arena

import (
	"fmt"
	"image"
	"image/color"

	"github.com/fogleman/gg"
	"gonum.org/v1/gonum/spatial/r3"
)

// PixelsPerMetre is the scale at which arenas are rendered
const PixelsPerMetre float64 = 20

var (
	skyShade         = color.RGBA{R: 30, G: 30, B: 30, A: 255}
	boundaryColour   = color.RGBA{R: 255, G: 166, B: 0, A: 255}
	platformColour   = color.RGBA{R: 77, G: 77, B: 128, A: 255}
	collectibleShade = color.RGBA{R: 255, G: 215, B: 0, A: 255}
	agentColour      = color.RGBA{R: 128, G: 102, B: 230, A: 255}
	headingColour    = color.RGBA{R: 255, G: 255, B: 255, A: 255}
)

// worldToPixelCoord converts a world position to pixel coordinates of
// a top-down view of the reset region. World +z points up the image.
func (a *Arena) worldToPixelCoord(p r3.Vec) [2]float64 {
	x := (p.X - a.cfg.Origin.X + a.cfg.RegionX/2) * PixelsPerMetre
	y := (a.cfg.Origin.Z - p.Z + a.cfg.RegionZ/2) * PixelsPerMetre
	return [2]float64{x, y}
}

// Render draws a top-down view of the arena
func (a *Arena) Render() image.Image {
	w := int(a.cfg.RegionX * PixelsPerMetre)
	h := int(a.cfg.RegionZ * PixelsPerMetre)
	dc := gg.NewContext(w, h)
	dc.SetColor(skyShade)
	dc.Clear()

	// Bounds
	if a.cfg.Boundary {
		dc.SetColor(boundaryColour)
		dc.SetLineWidth(5.0)
		dc.DrawRectangle(0, 0, float64(w), float64(h))
		dc.Stroke()
	}

	// Platforms
	dc.SetColor(platformColour)
	for _, box := range a.Platforms() {
		lo := a.worldToPixelCoord(r3.Vec{X: box.Min().X, Z: box.Max().Z})
		dc.DrawRectangle(lo[0], lo[1],
			2*box.HalfExtents.X*PixelsPerMetre,
			2*box.HalfExtents.Z*PixelsPerMetre)
		dc.Fill()
	}

	// Collectibles
	dc.SetColor(collectibleShade)
	for _, center := range a.Collectibles() {
		c := a.worldToPixelCoord(center)
		dc.DrawCircle(c[0], c[1], a.cfg.CollectibleRadius*PixelsPerMetre)
		dc.Fill()
	}

	// Agent
	pose := a.Body().Pose()
	c := a.worldToPixelCoord(pose.Position)
	dc.SetColor(agentColour)
	dc.DrawCircle(c[0], c[1], a.cfg.AgentRadius*PixelsPerMetre)
	dc.Fill()

	heading := a.worldToPixelCoord(r3.Add(pose.Position,
		r3.Scale(2*a.cfg.AgentRadius, pose.Forward())))
	dc.SetColor(headingColour)
	dc.SetLineWidth(2.0)
	dc.DrawLine(c[0], c[1], heading[0], heading[1])
	dc.Stroke()

	return dc.Image()
}

// SavePNG renders the arena to a PNG file
func (a *Arena) SavePNG(path string) error {
	if err := gg.SavePNG(path, a.Render()); err != nil {
		return fmt.Errorf("savePNG: %w", err)
	}
	return nil
}
