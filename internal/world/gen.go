package world

import (
	"math"
	"math/rand"

	"github.com/tilewalk/sim/internal/data"
)

// Generate fills a map with procedural terrain: irregular blocked water
// bodies, then winding fast paths laid over open ground. Deterministic for
// a given seed.
func Generate(m *TileMap, seed int64) {
	rng := rand.New(rand.NewSource(seed))

	for y := 0; y < m.Height(); y++ {
		for x := 0; x < m.Width(); x++ {
			m.SetTile(x, y, data.KindOpen)
		}
	}

	// Lake count scales with area; small test maps still get one.
	lakes := m.Width() * m.Height() / 2000
	if lakes < 1 {
		lakes = 1
	}
	minDim := m.Width()
	if m.Height() < minDim {
		minDim = m.Height()
	}
	for i := 0; i < lakes; i++ {
		cx := rng.Intn(m.Width())
		cy := rng.Intn(m.Height())
		rx := 3 + rng.Float64()*float64(minDim)/8
		ry := 3 + rng.Float64()*float64(minDim)/8
		carveLake(m, cx, cy, rx, ry, 0.3+rng.Float64()*0.2)
	}

	// Three main roads: one horizontal, one vertical, one diagonal.
	layWindingPath(m, 2, m.Height()/2, m.Width()-3, m.Height()/2, rng)
	layWindingPath(m, m.Width()/2, 2, m.Width()/2, m.Height()-3, rng)
	layWindingPath(m, 3, 3, m.Width()-4, m.Height()-4, rng)
}

// carveLake blocks cells inside an ellipse whose shore is perturbed by
// low-frequency sine noise for a natural outline.
func carveLake(m *TileMap, centerX, centerY int, radiusX, radiusY, irregularity float64) {
	for y := 0; y < m.Height(); y++ {
		for x := 0; x < m.Width(); x++ {
			dx := float64(x - centerX)
			dy := float64(y - centerY)

			angle := math.Atan2(dy, dx)
			noise := math.Sin(angle*6)*irregularity + math.Sin(angle*4+2.5)*irregularity*0.5

			distX := dx / (radiusX + noise)
			distY := dy / (radiusY + noise*0.7)
			if math.Sqrt(distX*distX+distY*distY) < 1.0 {
				m.SetTile(x, y, data.KindBlocked)
			}
		}
	}
}

// layWindingPath draws a fast path between two cells, snaking perpendicular
// to the direct line. Only open cells are converted, so roads never bridge
// water. Adjacent cells are filled too, keeping the road continuous where
// it curves.
func layWindingPath(m *TileMap, startX, startY, endX, endY int, rng *rand.Rand) {
	total := math.Hypot(float64(endX-startX), float64(endY-startY))
	if total == 0 {
		return
	}

	dirX := float64(endX-startX) / total
	dirY := float64(endY-startY) / total
	perpX, perpY := -dirY, dirX

	amplitude := 4 + rng.Float64()*6
	phase := rng.Float64() * 2 * math.Pi

	steps := int(total)
	for step := 0; step <= steps; step++ {
		t := float64(step) / float64(steps)
		baseX := float64(startX)*(1-t) + float64(endX)*t
		baseY := float64(startY)*(1-t) + float64(endY)*t

		curve := math.Sin(t*math.Pi*3+phase)*amplitude + math.Sin(t*math.Pi*7+phase)*amplitude*0.3

		gx := int(math.Round(baseX + perpX*curve))
		gy := int(math.Round(baseY + perpY*curve))

		for dx := -1; dx <= 1; dx++ {
			for dy := -1; dy <= 1; dy++ {
				if dx*dx+dy*dy > 1 {
					continue // cardinal neighbors only
				}
				if m.TileAt(gx+dx, gy+dy) == data.KindOpen {
					m.SetTile(gx+dx, gy+dy, data.KindFastPath)
				}
			}
		}
	}
}
