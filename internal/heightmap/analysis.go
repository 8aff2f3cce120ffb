package heightmap

// Feature is a detected terrain feature: a local height extremum
// sampled on the analysis stride, with an influence radius.
type Feature struct {
	X, Y   int
	Height float64
	Radius int
}

// Analysis holds the hills and valleys found on a coarse sample of the
// grid. It is approximate: features smaller than the stride can be
// missed, and plateau edges can record spurious peaks.
type Analysis struct {
	Hills   []Feature
	Valleys []Feature
}

// AnalysisStride returns the sampling stride for a map size.
func AnalysisStride(size int) int {
	if size >= 1024 {
		return 16
	}
	return 8
}

// Analyze samples the grid on a stride, skipping a stride-wide margin
// on every edge, and classifies each sample against its eight
// stride-distant neighbors. Equal-height neighbors do not disqualify
// a peak or basin.
func Analyze(g *Grid, waterLevel float64) Analysis {
	stride := AnalysisStride(g.Size)
	radius := 2 * stride

	var out Analysis
	for y := stride; y < g.Size-stride; y += stride {
		for x := stride; x < g.Size-stride; x += stride {
			h := g.At(x, y)

			switch {
			case h > waterLevel+80 && isExtremum(g, x, y, stride, true):
				out.Hills = append(out.Hills, Feature{X: x, Y: y, Height: h, Radius: radius})
			case h > waterLevel+5 && h < waterLevel+50 && isExtremum(g, x, y, stride, false):
				out.Valleys = append(out.Valleys, Feature{X: x, Y: y, Height: h, Radius: radius})
			}
		}
	}
	return out
}

func isExtremum(g *Grid, x, y, stride int, peak bool) bool {
	h := g.At(x, y)
	for dy := -1; dy <= 1; dy++ {
		for dx := -1; dx <= 1; dx++ {
			if dx == 0 && dy == 0 {
				continue
			}
			nx, ny := x+dx*stride, y+dy*stride
			if !g.In(nx, ny) {
				continue
			}
			n := g.At(nx, ny)
			if peak && n > h {
				return false
			}
			if !peak && n < h {
				return false
			}
		}
	}
	return true
}
