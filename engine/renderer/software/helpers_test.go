package software

import (
	"sync"

	"github.com/spaghettifunk/anima-soft/engine/math"
	"github.com/spaghettifunk/anima-soft/engine/renderer/metadata"
)

const tolerance = 1e-5

func vtx(x, y, z, w float32, color math.Vec4) metadata.Vertex {
	return metadata.NewVertex(math.NewVec4(x, y, z, w), color)
}

func rgb(r, g, b float32) math.Vec4 {
	return math.NewVec4(r, g, b, 1)
}

// goroutineQueue runs every job on its own goroutine.
type goroutineQueue struct {
	wg sync.WaitGroup
}

func (q *goroutineQueue) QueueJob(job func()) error {
	q.wg.Add(1)
	go func() {
		defer q.wg.Done()
		job()
	}()
	return nil
}

func (q *goroutineQueue) Wait() {
	q.wg.Wait()
}

// countDrawn returns how many pixels hold a depth other than DepthFar.
func countDrawn(fb *FrameBuffer) int {
	n := 0
	for _, d := range fb.Depth().Pixels() {
		if d != DepthFar {
			n++
		}
	}
	return n
}

// depthClose allows for float32 rounding in the interpolated z.
func depthClose(a, b uint32) bool {
	const slack = 1 << 12
	if a > b {
		return a-b <= slack
	}
	return b-a <= slack
}

func drawCall(mesh *metadata.Mesh, cull metadata.CullMode, depth metadata.DepthTestMode) *metadata.DrawCall {
	dc := metadata.NewDrawCall(mesh, math.NewMat4Identity())
	dc.Mode = cull
	dc.DepthMode = depth
	return &dc
}
