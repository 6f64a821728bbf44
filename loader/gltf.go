// Package loader builds scene graphs from glTF documents. Nodes are placed
// exactly as authored (rotation + translation, no scaling); constructing
// drawables for the meshes is delegated to the caller so the loader does
// not depend on any renderer.
package loader

import (
	"log"
	"time"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/pkg/errors"
	"github.com/qmuntal/gltf"

	"github.com/mogaika/scene_viewer/scene"
	"github.com/mogaika/scene_viewer/utils"
)

// MeshFunc constructs a drawable for the glTF mesh at the given index.
type MeshFunc func(doc *gltf.Document, meshIndex int) (scene.Drawable, error)

var nodeNames utils.RandomNameGenerator

// Load reads a glTF file and returns the root nodes of its default scene.
// A nil meshFn builds a transform-only hierarchy.
func Load(path string, meshFn MeshFunc) ([]*scene.Node, error) {
	start := time.Now()

	doc, err := gltf.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "Failed to open gltf %q", path)
	}

	roots, err := LoadDocument(doc, meshFn)
	if err != nil {
		return nil, errors.Wrapf(err, "Failed to load gltf %q", path)
	}

	log.Printf("[loader] %q: %d nodes, %d meshes in %v",
		path, len(doc.Nodes), len(doc.Meshes), time.Since(start))
	return roots, nil
}

// LoadDocument builds the default scene of an already parsed document.
func LoadDocument(doc *gltf.Document, meshFn MeshFunc) ([]*scene.Node, error) {
	if len(doc.Scenes) == 0 {
		return nil, errors.Errorf("gltf document has no scenes")
	}
	sceneIndex := uint32(0)
	if doc.Scene != nil {
		sceneIndex = *doc.Scene
	}
	if int(sceneIndex) >= len(doc.Scenes) {
		return nil, errors.Errorf("gltf scene index %d out of range", sceneIndex)
	}

	used := make(map[uint32]bool)
	roots := make([]*scene.Node, 0, len(doc.Scenes[sceneIndex].Nodes))
	for _, nodeIndex := range doc.Scenes[sceneIndex].Nodes {
		n, err := loadNode(doc, nodeIndex, meshFn, used)
		if err != nil {
			return nil, err
		}
		roots = append(roots, n)
	}
	return roots, nil
}

func loadNode(doc *gltf.Document, nodeIndex uint32, meshFn MeshFunc, used map[uint32]bool) (*scene.Node, error) {
	if int(nodeIndex) >= len(doc.Nodes) {
		return nil, errors.Errorf("gltf node index %d out of range", nodeIndex)
	}
	// Every node has exactly one parent across the graph.
	if used[nodeIndex] {
		return nil, errors.Errorf("gltf node %d referenced by more than one parent", nodeIndex)
	}
	used[nodeIndex] = true

	src := doc.Nodes[nodeIndex]
	name := src.Name
	if name == "" {
		name = nodeNames.RandomName()
	}

	n := scene.NewNode(name)
	translation, rotation := nodeTransform(src)
	n.SetOrientation(rotation.W, rotation.X(), rotation.Y(), rotation.Z())
	n.SetTranslation(translation[0], translation[1], translation[2])

	if src.Mesh != nil && meshFn != nil {
		drawable, err := meshFn(doc, int(*src.Mesh))
		if err != nil {
			return nil, errors.Wrapf(err, "Failed to build mesh %d for node %q", *src.Mesh, name)
		}
		n.AddMesh(drawable)
	}

	for _, childIndex := range src.Children {
		child, err := loadNode(doc, childIndex, meshFn, used)
		if err != nil {
			return nil, err
		}
		n.AddChildNode(child)
	}
	return n, nil
}

var identityMatrix = [16]float32{
	1, 0, 0, 0,
	0, 1, 0, 0,
	0, 0, 1, 0,
	0, 0, 0, 1,
}

// nodeTransform extracts the authored translation and rotation of a glTF
// node. Matrix-form nodes are decomposed assuming no scaling, like the
// TRS form they are equivalent to.
func nodeTransform(src *gltf.Node) (mgl32.Vec3, mgl32.Quat) {
	if src.Matrix != identityMatrix && src.Matrix != ([16]float32{}) {
		m := mgl32.Mat4(src.Matrix)
		return m.Col(3).Vec3(), mgl32.Mat4ToQuat(m)
	}

	rotation := mgl32.QuatIdent()
	// glTF stores quaternions as x,y,z,w
	if src.Rotation != ([4]float32{}) {
		rotation = mgl32.Quat{
			W: src.Rotation[3],
			V: mgl32.Vec3{src.Rotation[0], src.Rotation[1], src.Rotation[2]},
		}
	}
	return mgl32.Vec3(src.Translation), rotation
}
