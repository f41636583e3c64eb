package lbm

// span represents an inclusive column range inside a row mask.
type span struct{ start, end int }

// rowMask groups contiguous spans for a single row that requires computation.
type rowMask struct {
	y     int
	spans []span
}

// workerMask collects the row masks assigned to a worker goroutine.
type workerMask struct {
	rows []rowMask
}

// fluidRows builds row masks covering every non-wall cell of g. Rows made
// entirely of walls are omitted.
func fluidRows(g *Grid) []rowMask {
	rows := make([]rowMask, 0, g.Height)
	for y := 0; y < g.Height; y++ {
		base := y * g.Width
		var spans []span
		start := -1
		for x := 0; x < g.Width; x++ {
			blocked := g.wall[base+x]
			switch {
			case !blocked && start < 0:
				start = x
			case blocked && start >= 0:
				spans = append(spans, span{start: start, end: x - 1})
				start = -1
			}
		}
		if start >= 0 {
			spans = append(spans, span{start: start, end: g.Width - 1})
		}
		if len(spans) == 0 {
			continue
		}
		rows = append(rows, rowMask{y: y, spans: spans})
	}
	return rows
}

// fullRows builds one full-width span per row.
func fullRows(width, height int) []rowMask {
	rows := make([]rowMask, height)
	for y := range rows {
		rows[y] = rowMask{y: y, spans: []span{{start: 0, end: width - 1}}}
	}
	return rows
}

// wallIndices lists the flat indices of every wall cell in row-major order.
func wallIndices(g *Grid) []int {
	var idx []int
	for i, wall := range g.wall {
		if wall {
			idx = append(idx, i)
		}
	}
	return idx
}

// assignRowMasks distributes row masks across worker goroutines in round robin fashion.
func assignRowMasks(workerCount int, rows []rowMask) []workerMask {
	if workerCount < 1 {
		workerCount = 1
	}
	masks := make([]workerMask, workerCount)
	for idx, row := range rows {
		workerIdx := idx % workerCount
		masks[workerIdx].rows = append(masks[workerIdx].rows, row)
	}
	return masks
}
