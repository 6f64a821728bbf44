// Package status pushes live viewer statistics to connected web clients
// over websockets: frame timing once per second and loader progress lines.
package status

import (
	"encoding/json"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

const (
	INFO = iota
	ERROR
	FRAME
)

type status struct {
	Time         time.Time `json:"time"`
	Type         int       `json:"type"`
	Message      string    `json:"message,omitempty"`
	Framerate    float64   `json:"framerate,omitempty"`
	WorstFrameUs int64     `json:"worstFrameUs,omitempty"`
	Nodes        int       `json:"nodes,omitempty"`
}

type client struct {
	conn *websocket.Conn
	send chan []byte
}

func (c *client) writePump() {
	ticker := time.NewTicker(time.Second * 30)
	defer func() {
		ticker.Stop()
		unregisterClient(c)
		c.conn.Close()
	}()
	for {
		select {
		case msg, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(40 * time.Second))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				log.Printf("[status] ws write msg error: %v", err)
				return
			}
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(40 * time.Second))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				log.Printf("[status] ws write ping error: %v", err)
				return
			}
		}
	}
}

func NewClient(conn *websocket.Conn) *client {
	c := &client{conn: conn, send: make(chan []byte, 32)}
	registerClient(c)
	go c.writePump()
	globalLock.Lock()
	defer globalLock.Unlock()
	if lastMessage != nil {
		c.send <- lastMessage
	}
	return c
}

var statusBroadcast chan *status
var broadcastList map[*client]bool
var globalLock sync.Mutex
var lastMessage []byte = nil

func registerClient(c *client) {
	globalLock.Lock()
	defer globalLock.Unlock()
	broadcastList[c] = true
}

func unregisterClient(c *client) {
	globalLock.Lock()
	defer globalLock.Unlock()
	delete(broadcastList, c)
}

func init() {
	statusBroadcast = make(chan *status, 16)
	broadcastList = make(map[*client]bool)
	go func() {
		for s := range statusBroadcast {
			data, err := json.Marshal(s)
			if err != nil {
				panic(err)
			}
			globalLock.Lock()
			lastMessage = data
			for c := range broadcastList {
				select {
				case c.send <- data:
				default:
					// slow client, drop the update
				}
			}
			globalLock.Unlock()
		}
	}()
}

func send(s *status) {
	s.Time = time.Now()
	statusBroadcast <- s
}

// Frame broadcasts the statistics of the last closed measurement interval.
func Frame(framerate float64, worstFrame time.Duration, nodes int) {
	send(&status{
		Type:         FRAME,
		Framerate:    framerate,
		WorstFrameUs: worstFrame.Microseconds(),
		Nodes:        nodes,
	})
}

func Info(format string, a ...interface{}) {
	send(&status{Type: INFO, Message: fmt.Sprintf(format, a...)})
}

func Error(format string, a ...interface{}) {
	send(&status{Type: ERROR, Message: fmt.Sprintf(format, a...)})
}
