package protocol

import "github.com/danmuck/swimproto/internal/recon"

// EventMessage carries data published by a lane.
type EventMessage struct {
	Node string
	Lane string
	// Via is an optional relay address; empty means absent.
	Via  string
	Body recon.Record
}

func NewEventMessage(node, lane string) EventMessage {
	return EventMessage{Node: node, Lane: lane}
}

func (EventMessage) Kind() Kind { return KindEvent }
func (EventMessage) Role() Role { return KindEvent.Role() }
func (EventMessage) envelope()  {}
func (EventMessage) message()   {}

func (m EventMessage) Address() Address {
	return Address{Node: m.Node, Lane: m.Lane}
}

func (m EventMessage) WithAddress(opts ...AddressOption) EventMessage {
	a := readdress(m.Address(), opts)
	m.Node, m.Lane = a.Node, a.Lane
	return m
}

func (m EventMessage) WithVia(via string) EventMessage {
	m.Via = via
	return m
}

func (m EventMessage) WithBody(body recon.Record) EventMessage {
	m.Body = body
	return m
}

func (m EventMessage) Encode() recon.Value {
	return encodeEnvelope(KindEvent, []recon.Value{recon.Text(m.Node), recon.Text(m.Lane), optText(m.Via)}, m.Body)
}

// CommandMessage carries data sent to a lane.
type CommandMessage struct {
	Node string
	Lane string
	// Via is an optional relay address; empty means absent.
	Via  string
	Body recon.Record
}

func NewCommandMessage(node, lane string) CommandMessage {
	return CommandMessage{Node: node, Lane: lane}
}

func (CommandMessage) Kind() Kind { return KindCommand }
func (CommandMessage) Role() Role { return KindCommand.Role() }
func (CommandMessage) envelope()  {}
func (CommandMessage) message()   {}

func (m CommandMessage) Address() Address {
	return Address{Node: m.Node, Lane: m.Lane}
}

func (m CommandMessage) WithAddress(opts ...AddressOption) CommandMessage {
	a := readdress(m.Address(), opts)
	m.Node, m.Lane = a.Node, a.Lane
	return m
}

func (m CommandMessage) WithVia(via string) CommandMessage {
	m.Via = via
	return m
}

func (m CommandMessage) WithBody(body recon.Record) CommandMessage {
	m.Body = body
	return m
}

func (m CommandMessage) Encode() recon.Value {
	return encodeEnvelope(KindCommand, []recon.Value{recon.Text(m.Node), recon.Text(m.Lane), optText(m.Via)}, m.Body)
}
