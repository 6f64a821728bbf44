package render

import (
	"github.com/go-gl/gl/v3.3-core/gl"
	"github.com/pkg/errors"
	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"

	"github.com/mogaika/scene_viewer/loader"
	"github.com/mogaika/scene_viewer/scene"
)

// Mesh keeps the GPU side of a drawable: one interleaved-by-block VBO with
// positions, colors and normals, an index buffer and the VAO wiring them to
// the program attributes. Mesh owns its buffers; nodes only reference it.
type Mesh struct {
	vao uint32
	vbo uint32
	ebo uint32

	indexCount int32
}

const floatSize = 4

// NewMesh uploads vertex data to the GPU. colors and normals may be empty;
// positions are xyz triples, colors rgba quadruples, indices triangles.
func NewMesh(p *Program, positions []float32, colors []float32, normals []float32, indices []uint32) *Mesh {
	m := &Mesh{indexCount: int32(len(indices))}

	data := make([]float32, 0, len(positions)+len(colors)+len(normals))
	data = append(data, positions...)
	colorsOffset := len(positions)
	data = append(data, colors...)
	normalsOffset := colorsOffset + len(colors)
	data = append(data, normals...)

	gl.GenVertexArrays(1, &m.vao)
	gl.BindVertexArray(m.vao)

	gl.GenBuffers(1, &m.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, m.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(data)*floatSize, gl.Ptr(data), gl.STATIC_DRAW)

	gl.EnableVertexAttribArray(p.PositionAttrib)
	gl.VertexAttribPointer(p.PositionAttrib, 3, gl.FLOAT, false, 0, gl.PtrOffset(0))
	if len(colors) > 0 {
		gl.EnableVertexAttribArray(p.ColorAttrib)
		gl.VertexAttribPointer(p.ColorAttrib, 4, gl.FLOAT, false, 0, gl.PtrOffset(colorsOffset*floatSize))
	}
	if len(normals) > 0 {
		gl.EnableVertexAttribArray(p.NormalAttrib)
		gl.VertexAttribPointer(p.NormalAttrib, 3, gl.FLOAT, false, 0, gl.PtrOffset(normalsOffset*floatSize))
	}

	gl.GenBuffers(1, &m.ebo)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, m.ebo)
	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(indices)*4, gl.Ptr(indices), gl.STATIC_DRAW)

	gl.BindVertexArray(0)
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, 0)

	return m
}

// Draw issues the draw call with whatever transform the traversal uploaded.
func (m *Mesh) Draw() {
	gl.BindVertexArray(m.vao)
	gl.DrawElements(gl.TRIANGLES, m.indexCount, gl.UNSIGNED_INT, gl.PtrOffset(0))
	gl.BindVertexArray(0)
}

func (m *Mesh) Delete() {
	gl.DeleteBuffers(1, &m.ebo)
	gl.DeleteBuffers(1, &m.vbo)
	gl.DeleteVertexArrays(1, &m.vao)
}

// MeshProvider adapts glTF mesh data to GPU meshes for the loader.
// Primitives of one glTF mesh are merged into a single drawable.
func MeshProvider(p *Program) loader.MeshFunc {
	return func(doc *gltf.Document, meshIndex int) (scene.Drawable, error) {
		if meshIndex >= len(doc.Meshes) {
			return nil, errors.Errorf("mesh index %d out of range", meshIndex)
		}
		src := doc.Meshes[meshIndex]

		var positions, colors, normals []float32
		var indices []uint32

		for _, primitive := range src.Primitives {
			base := uint32(len(positions) / 3)

			posAccessor, ok := primitive.Attributes["POSITION"]
			if !ok {
				return nil, errors.Errorf("mesh %q primitive without positions", src.Name)
			}
			pos, err := modeler.ReadPosition(doc, doc.Accessors[posAccessor], nil)
			if err != nil {
				return nil, errors.Wrapf(err, "Failed to read positions of mesh %q", src.Name)
			}
			for _, v := range pos {
				positions = append(positions, v[0], v[1], v[2])
				// solid grey when the asset carries no vertex colors
				colors = append(colors, 0.7, 0.7, 0.7, 1.0)
			}

			if normalAccessor, ok := primitive.Attributes["NORMAL"]; ok {
				norm, err := modeler.ReadNormal(doc, doc.Accessors[normalAccessor], nil)
				if err != nil {
					return nil, errors.Wrapf(err, "Failed to read normals of mesh %q", src.Name)
				}
				for _, v := range norm {
					normals = append(normals, v[0], v[1], v[2])
				}
			}

			if primitive.Indices == nil {
				return nil, errors.Errorf("mesh %q primitive without indices", src.Name)
			}
			idx, err := modeler.ReadIndices(doc, doc.Accessors[*primitive.Indices], nil)
			if err != nil {
				return nil, errors.Wrapf(err, "Failed to read indices of mesh %q", src.Name)
			}
			for _, i := range idx {
				indices = append(indices, base+i)
			}
		}

		return NewMesh(p, positions, colors, normals, indices), nil
	}
}
