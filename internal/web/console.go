package web

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/yukesshwaran21/My-Portfolio/internal/console"
)

// effectJSON is how a console effect travels to the browser.
type effectJSON struct {
	Navigate string `json:"navigate,omitempty"`
	Download string `json:"download,omitempty"`
}

func effectFor(e console.Effect) (effectJSON, bool) {
	switch e.Kind {
	case console.Navigate:
		return effectJSON{Navigate: string(e.Section)}, true
	case console.Download:
		return effectJSON{Download: "resume"}, true
	}
	return effectJSON{}, false
}

// submit runs one console line for v and performs the server-side part of its effect.
func (s *Server) submit(ctx context.Context, v *visit, input string) console.Result {
	res := v.console.Submit(input)
	if res.Found {
		if err := s.store.RecordCommand(ctx, res.Command); err != nil {
			log.Printf("Error recording command: %v", err)
		}
	}
	if res.Effect.Kind == console.Download {
		v.flow.Trigger()
	}
	return res
}

// Console submit; returns the transcript fragment and hands effects to the page via HX-Trigger.
func (s *Server) handleConsoleSubmit(c *gin.Context) {
	v := s.visits.forRequest(c)
	res := s.submit(c.Request.Context(), v, c.PostForm("command"))

	if eff, ok := effectFor(res.Effect); ok {
		trigger, err := json.Marshal(eff)
		if err == nil {
			c.Header("HX-Trigger", string(trigger))
		}
	}
	c.HTML(http.StatusOK, "console.html", gin.H{"lines": res.Lines})
}

// Closing the overlay discards the transcript.
func (s *Server) handleConsoleClose(c *gin.Context) {
	if v := s.visits.existing(c); v != nil {
		v.console.Close()
	}
	c.HTML(http.StatusOK, "console.html", gin.H{"lines": []string{}})
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
}

type socketIn struct {
	Input string `json:"input"`
}

type socketOut struct {
	Lines    []string    `json:"lines,omitempty"`
	Cleared  bool        `json:"cleared,omitempty"`
	Effect   *effectJSON `json:"effect,omitempty"`
	Download *string     `json:"download,omitempty"`
}

// Websocket console: one JSON line in, transcript and effect out, plus pushed
// download status changes.
func (s *Server) handleConsoleSocket(c *gin.Context) {
	v := s.visits.forRequest(c)

	conn, err := upgrader.Upgrade(c.Writer, c.Request, c.Writer.Header())
	if err != nil {
		log.Printf("Error upgrading console socket: %v", err)
		return
	}
	defer conn.Close()

	statuses, unsubscribe := v.subscribe()
	defer unsubscribe()

	out := make(chan socketOut, 8)
	done := make(chan struct{})
	quit := make(chan struct{})

	// single writer; gorilla connections allow one concurrent writer
	go func() {
		defer close(done)
		for msg := range out {
			conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
			if err := conn.WriteJSON(msg); err != nil {
				return
			}
		}
	}()

	in := make(chan socketIn)
	readErr := make(chan error, 1)
	go func() {
		for {
			var msg socketIn
			if err := conn.ReadJSON(&msg); err != nil {
				readErr <- err
				return
			}
			select {
			case in <- msg:
			case <-quit:
				return
			}
		}
	}()

	defer func() {
		close(quit)
		close(out)
		<-done
	}()

	send := func(msg socketOut) bool {
		select {
		case out <- msg:
			return true
		case <-done:
			return false
		}
	}

	for {
		select {
		case msg := <-in:
			v.touch()
			res := s.submit(c.Request.Context(), v, msg.Input)
			reply := socketOut{Lines: res.Lines, Cleared: res.Cleared}
			if eff, ok := effectFor(res.Effect); ok {
				reply.Effect = &eff
			}
			if !send(reply) {
				return
			}
		case st := <-statuses:
			label := string(st)
			if !send(socketOut{Download: &label}) {
				return
			}
		case <-done:
			return
		case err := <-readErr:
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				log.Printf("Console socket closed: %v", err)
			}
			return
		}
	}
}
