// Package publish mirrors the picked color to an external message broker so other devices
// can follow it.
package publish

import (
	"encoding/json"
	"fmt"

	"colorbrowser/sparkos/client/logger"
	"colorbrowser/sparkos/colorpick"
	"colorbrowser/sparkos/kernel"
	"colorbrowser/sparkos/proto"
)

// Publisher delivers one document to a topic.
type Publisher interface {
	Publish(topic string, payload []byte) error
}

// Document is the JSON body published for every color change.
type Document struct {
	Label    string `json:"label"`
	Hex      string `json:"hex"`
	Red      uint8  `json:"red"`
	Green    uint8  `json:"green"`
	Blue     uint8  `json:"blue"`
	Selected string `json:"selected"`
}

// NewDocument builds the published document for a color state.
func NewDocument(st proto.ColorState) Document {
	c := colorpick.NewColor(st.R, st.G, st.B)
	return Document{
		Label:    c.Label(),
		Hex:      c.Hex(),
		Red:      st.R,
		Green:    st.G,
		Blue:     st.B,
		Selected: colorpick.Channel(st.Selected).String(),
	}
}

type Service struct {
	pub    Publisher
	topic  string
	ep     kernel.Capability
	logCap kernel.Capability
}

func New(pub Publisher, topic string, ep, logCap kernel.Capability) *Service {
	return &Service{pub: pub, topic: topic, ep: ep, logCap: logCap}
}

// Run publishes color states as they arrive. States that queued up while a publish was in
// flight collapse into the newest one, so a slow broker never ends on a stale color.
func (s *Service) Run(ctx *kernel.Context) {
	ch, ok := ctx.RecvChan(s.ep)
	if !ok {
		return
	}
	for msg := range ch {
		st, ok := s.decode(ctx, msg)
		if !ok {
			continue
		}
		st, open := s.latest(ctx, ch, st)
		if err := s.publish(st); err != nil {
			logger.Log(ctx, s.logCap, "publish: "+err.Error())
		}
		if !open {
			return
		}
	}
}

func (s *Service) decode(ctx *kernel.Context, msg kernel.Message) (proto.ColorState, bool) {
	if proto.Kind(msg.Kind) != proto.MsgColorState {
		return proto.ColorState{}, false
	}
	st, ok := proto.DecodeColorStatePayload(msg.Payload())
	if !ok {
		logger.Log(ctx, s.logCap, "publish: bad color state payload")
	}
	return st, ok
}

// latest drains whatever is queued without blocking and returns the newest valid state.
// open is false once the endpoint has been closed.
func (s *Service) latest(ctx *kernel.Context, ch <-chan kernel.Message, st proto.ColorState) (_ proto.ColorState, open bool) {
	for {
		select {
		case msg, ok := <-ch:
			if !ok {
				return st, false
			}
			if next, ok := s.decode(ctx, msg); ok {
				st = next
			}
		default:
			return st, true
		}
	}
}

func (s *Service) publish(st proto.ColorState) error {
	if s.pub == nil {
		return nil
	}
	b, err := json.Marshal(NewDocument(st))
	if err != nil {
		return fmt.Errorf("encode %s: %w", s.topic, err)
	}
	if err := s.pub.Publish(s.topic, b); err != nil {
		return fmt.Errorf("send %s: %w", s.topic, err)
	}
	return nil
}
