package web

import (
	"log"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
	"github.com/pkg/errors"

	"github.com/mogaika/scene_viewer/scene"
	"github.com/mogaika/scene_viewer/status"
	"github.com/mogaika/scene_viewer/utils"
	"github.com/mogaika/scene_viewer/webutils"
)

// NodeInfo is the JSON snapshot of a node subtree.
type NodeInfo struct {
	Name            string      `json:"name"`
	Translation     [3]float32  `json:"translation"`
	Orientation     [4]float32  `json:"orientation"` // w, x, y, z
	EulerDegrees    [3]float32  `json:"eulerDegrees"`
	LinearSpeed     [3]float32  `json:"linearSpeed"`
	RotationalSpeed [3]float32  `json:"rotationalSpeed"`
	InMotion        bool        `json:"inMotion"`
	Drawables       int         `json:"drawables"`
	Children        []*NodeInfo `json:"children,omitempty"`
}

func makeNodeInfo(n *scene.Node) *NodeInfo {
	orientation := n.Orientation()
	motion := n.Motion()

	info := &NodeInfo{
		Name:            n.Name(),
		Translation:     [3]float32(n.Translation()),
		Orientation:     [4]float32{orientation.W, orientation.X(), orientation.Y(), orientation.Z()},
		EulerDegrees:    [3]float32(utils.RadiansToDegreeV3(utils.QuatToEuler(orientation))),
		LinearSpeed:     [3]float32(motion.LinearSpeed()),
		RotationalSpeed: [3]float32(motion.RotationalSpeed()),
		InMotion:        motion.InMotion(),
		Drawables:       len(n.Drawables()),
	}
	for _, child := range n.Children() {
		info.Children = append(info.Children, makeNodeInfo(child))
	}
	return info
}

func HandlerSceneTree(w http.ResponseWriter, r *http.Request) {
	roots := currentSnapshot()
	if roots == nil {
		roots = []*NodeInfo{}
	}
	webutils.WriteJson(w, roots)
}

func HandlerSceneNode(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["node"]
	info := findNodeInfo(currentSnapshot(), name)
	if info == nil {
		w.WriteHeader(http.StatusNotFound)
		webutils.WriteJson(w, map[string]string{"error": "node not found: " + name})
		return
	}
	webutils.WriteJson(w, info)
}

func HandlerDumpScene(w http.ResponseWriter, r *http.Request) {
	webutils.WriteTextFile(w, utils.SDump(currentSnapshot()), "scene_dump.txt")
}

var wsUpgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
}

func HandlerStatusWs(w http.ResponseWriter, r *http.Request) {
	conn, err := wsUpgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade already replied to the client.
		log.Printf("[web] ws upgrade error: %v", errors.Wrapf(err, "Failed to upgrade connection"))
		return
	}
	status.NewClient(conn)
}
