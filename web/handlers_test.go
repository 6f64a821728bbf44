package web

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/mogaika/scene_viewer/scene"
)

func testServer(t *testing.T) *httptest.Server {
	s := &scene.Scene{}

	hull := scene.NewNode("hull")
	hull.SetTranslation(1, 2, 3)
	hull.SetLinearSpeed(mgl32.Vec3{0, 0, 3})
	turret := scene.NewNode("turret")
	hull.AddChildNode(turret)
	s.AddRootNode(hull)

	Publish(s)

	srv := httptest.NewServer(NewRouter(t.TempDir()))
	t.Cleanup(srv.Close)
	return srv
}

func getJson(t *testing.T, url string, v interface{}) *http.Response {
	resp, err := http.Get(url)
	if err != nil {
		t.Fatalf("GET %s: %v", url, err)
	}
	defer resp.Body.Close()
	if v != nil {
		if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
			t.Fatalf("decode %s: %v", url, err)
		}
	}
	return resp
}

func TestHandlerSceneTree(t *testing.T) {
	srv := testServer(t)

	var roots []*NodeInfo
	getJson(t, srv.URL+"/json/scene", &roots)

	if len(roots) != 1 {
		t.Fatalf("got %d roots; expected 1", len(roots))
	}
	hull := roots[0]
	if hull.Name != "hull" {
		t.Errorf("root name = %q", hull.Name)
	}
	if hull.Translation != [3]float32{1, 2, 3} {
		t.Errorf("root translation = %v", hull.Translation)
	}
	if !hull.InMotion {
		t.Errorf("root should be in motion")
	}
	if len(hull.Children) != 1 || hull.Children[0].Name != "turret" {
		t.Errorf("children = %+v", hull.Children)
	}
}

func TestHandlerSceneNode(t *testing.T) {
	srv := testServer(t)

	var info NodeInfo
	resp := getJson(t, srv.URL+"/json/scene/turret", &info)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	if info.Name != "turret" {
		t.Errorf("node name = %q", info.Name)
	}
	if info.InMotion {
		t.Errorf("turret should not be in motion")
	}
}

func TestHandlerSceneNodeNotFound(t *testing.T) {
	srv := testServer(t)

	resp, err := http.Get(srv.URL + "/json/scene/missing")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("status = %d; expected 404", resp.StatusCode)
	}
}

// The render loop integrates and republishes while handlers serve requests;
// the handlers must only ever see published snapshots, not live nodes.
func TestHandlersConcurrentWithIntegrate(t *testing.T) {
	s := &scene.Scene{}
	hull := scene.NewNode("hull")
	hull.SetLinearSpeed(mgl32.Vec3{0, 0, 3})
	hull.SetRotationalSpeed(mgl32.Vec3{0, 1, 0})
	s.AddRootNode(hull)
	Publish(s)

	srv := httptest.NewServer(NewRouter(t.TempDir()))
	t.Cleanup(srv.Close)

	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < 500; i++ {
			s.Integrate(0.001)
			Publish(s)
		}
	}()

	for i := 0; i < 50; i++ {
		var roots []*NodeInfo
		getJson(t, srv.URL+"/json/scene", &roots)
		if len(roots) != 1 || roots[0].Name != "hull" {
			t.Fatalf("snapshot roots = %+v", roots)
		}
		var info NodeInfo
		getJson(t, srv.URL+"/json/scene/hull", &info)
		if !info.InMotion {
			t.Fatalf("hull should be in motion")
		}
	}
	<-done
}

func TestHandlerDumpScene(t *testing.T) {
	srv := testServer(t)

	resp, err := http.Get(srv.URL + "/dump/scene")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("status = %d", resp.StatusCode)
	}
	if cd := resp.Header.Get("Content-Disposition"); !strings.Contains(cd, "scene_dump.txt") {
		t.Errorf("Content-Disposition = %q", cd)
	}
}
