package web

import (
	"sync"

	"github.com/mogaika/scene_viewer/scene"
)

var (
	snapshotMu sync.RWMutex
	snapshot   []*NodeInfo
)

// Publish captures the current node poses for the handlers. The scene is
// walked here, so only the goroutine that owns the scene may call Publish;
// handlers never touch live nodes and serve whatever was published last.
func Publish(s *scene.Scene) {
	roots := make([]*NodeInfo, 0, len(s.RootNodes()))
	for _, n := range s.RootNodes() {
		roots = append(roots, makeNodeInfo(n))
	}

	snapshotMu.Lock()
	snapshot = roots
	snapshotMu.Unlock()
}

func currentSnapshot() []*NodeInfo {
	snapshotMu.RLock()
	defer snapshotMu.RUnlock()
	return snapshot
}

func findNodeInfo(infos []*NodeInfo, name string) *NodeInfo {
	for _, info := range infos {
		if info.Name == name {
			return info
		}
		if found := findNodeInfo(info.Children, name); found != nil {
			return found
		}
	}
	return nil
}
