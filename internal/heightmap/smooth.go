package heightmap

// Smooth runs the given number of 3×3 box-blur passes over the grid.
// Each pass reads a snapshot of the previous pass and writes into the
// live grid, so the averaging stays isotropic. The one-cell border is
// never touched.
func Smooth(g *Grid, passes int) {
	for p := 0; p < passes; p++ {
		src := g.Clone()
		for y := 1; y < g.Size-1; y++ {
			for x := 1; x < g.Size-1; x++ {
				var sum float64
				for dy := -1; dy <= 1; dy++ {
					for dx := -1; dx <= 1; dx++ {
						sum += src.At(x+dx, y+dy)
					}
				}
				g.Set(x, y, sum/9)
			}
		}
	}
}
