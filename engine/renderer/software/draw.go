package software

import (
	"github.com/pkg/errors"

	"github.com/spaghettifunk/anima-soft/engine/core"
	"github.com/spaghettifunk/anima-soft/engine/renderer/metadata"
)

var ErrNilMesh = errors.New("draw call has no mesh")

// JobQueue runs the per triangle work of a draw. Wait blocks until every
// job queued so far has finished.
type JobQueue interface {
	QueueJob(job func()) error
	Wait()
}

// Draw rasterizes every triangle of dc.Mesh into fb and returns once all of
// them are done. Each triangle becomes one job on jobs; with a nil queue the
// triangles are drawn on the calling goroutine. The mesh must not change
// until Draw returns.
func Draw(vp Viewport, fb *FrameBuffer, dc metadata.DrawCall, jobs JobQueue) error {
	mesh := dc.Mesh
	if mesh == nil {
		return ErrNilMesh
	}
	if rest := len(mesh.Indices) % 3; rest != 0 {
		core.LogWarn("mesh %q has %d trailing indices that do not form a triangle", mesh.Name, rest)
	}

	vertexCount := uint32(len(mesh.Vertices))
	queued := 0
	for i := 0; i+2 < len(mesh.Indices); i += 3 {
		i0, i1, i2 := mesh.Indices[i], mesh.Indices[i+1], mesh.Indices[i+2]
		if i0 >= vertexCount || i1 >= vertexCount || i2 >= vertexCount {
			core.LogError("mesh %q triangle %d references a vertex out of range (%d, %d, %d) of %d",
				mesh.Name, i/3, i0, i1, i2, vertexCount)
			continue
		}

		job := func() {
			drawTriangle(mesh, i0, i1, i2, vp, fb, &dc)
		}
		if jobs == nil {
			job()
			continue
		}
		if err := jobs.QueueJob(job); err != nil {
			core.LogWarn("could not queue triangle %d, drawing it inline: %s", i/3, err)
			job()
			continue
		}
		queued++
	}

	if queued > 0 {
		jobs.Wait()
	}
	return nil
}

func drawTriangle(mesh *metadata.Mesh, i0, i1, i2 uint32, vp Viewport, fb *FrameBuffer, dc *metadata.DrawCall) {
	var tri metadata.Triangle
	for k, index := range [3]uint32{i0, i1, i2} {
		v := mesh.Vertices[index]
		tri[k] = metadata.Vertex{
			Position: v.Position.Transform(dc.Transform),
			Color:    v.Color,
		}
	}

	clipped := ClipTriangle(tri)
	for _, t := range clipped.Triangles() {
		Rasterize(t, vp, fb, dc)
	}
}
