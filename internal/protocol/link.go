package protocol

import "github.com/danmuck/swimproto/internal/recon"

// LinkRequest opens a link to a lane. Prio 0 is the default priority;
// non-finite priorities are treated as the default.
type LinkRequest struct {
	Node string
	Lane string
	Prio float64
	Body recon.Record
}

func NewLinkRequest(node, lane string) LinkRequest {
	return LinkRequest{Node: node, Lane: lane}
}

func (LinkRequest) Kind() Kind { return KindLink }
func (LinkRequest) Role() Role { return KindLink.Role() }
func (LinkRequest) envelope()  {}
func (LinkRequest) request()   {}

func (r LinkRequest) Address() Address {
	return Address{Node: r.Node, Lane: r.Lane}
}

func (r LinkRequest) WithAddress(opts ...AddressOption) LinkRequest {
	a := readdress(r.Address(), opts)
	r.Node, r.Lane = a.Node, a.Lane
	return r
}

func (r LinkRequest) WithPrio(prio float64) LinkRequest {
	r.Prio = finitePrio(prio)
	return r
}

func (r LinkRequest) WithBody(body recon.Record) LinkRequest {
	r.Body = body
	return r
}

func (r LinkRequest) Encode() recon.Value {
	return encodeEnvelope(KindLink, []recon.Value{recon.Text(r.Node), recon.Text(r.Lane), optNum(r.Prio)}, r.Body)
}

// LinkedResponse acknowledges a link.
type LinkedResponse struct {
	Node string
	Lane string
	Prio float64
	Body recon.Record
}

func NewLinkedResponse(node, lane string) LinkedResponse {
	return LinkedResponse{Node: node, Lane: lane}
}

func (LinkedResponse) Kind() Kind { return KindLinked }
func (LinkedResponse) Role() Role { return KindLinked.Role() }
func (LinkedResponse) envelope()  {}
func (LinkedResponse) response()  {}

func (r LinkedResponse) Address() Address {
	return Address{Node: r.Node, Lane: r.Lane}
}

func (r LinkedResponse) WithAddress(opts ...AddressOption) LinkedResponse {
	a := readdress(r.Address(), opts)
	r.Node, r.Lane = a.Node, a.Lane
	return r
}

func (r LinkedResponse) WithPrio(prio float64) LinkedResponse {
	r.Prio = finitePrio(prio)
	return r
}

func (r LinkedResponse) WithBody(body recon.Record) LinkedResponse {
	r.Body = body
	return r
}

func (r LinkedResponse) Encode() recon.Value {
	return encodeEnvelope(KindLinked, []recon.Value{recon.Text(r.Node), recon.Text(r.Lane), optNum(r.Prio)}, r.Body)
}

// SyncRequest links to a lane and asks for its current state.
type SyncRequest struct {
	Node string
	Lane string
	Prio float64
}

func NewSyncRequest(node, lane string) SyncRequest {
	return SyncRequest{Node: node, Lane: lane}
}

func (SyncRequest) Kind() Kind { return KindSync }
func (SyncRequest) Role() Role { return KindSync.Role() }
func (SyncRequest) envelope()  {}
func (SyncRequest) request()   {}

func (r SyncRequest) Address() Address {
	return Address{Node: r.Node, Lane: r.Lane}
}

func (r SyncRequest) WithAddress(opts ...AddressOption) SyncRequest {
	a := readdress(r.Address(), opts)
	r.Node, r.Lane = a.Node, a.Lane
	return r
}

func (r SyncRequest) WithPrio(prio float64) SyncRequest {
	r.Prio = finitePrio(prio)
	return r
}

func (r SyncRequest) Encode() recon.Value {
	return encodeEnvelope(KindSync, []recon.Value{recon.Text(r.Node), recon.Text(r.Lane), optNum(r.Prio)}, recon.Record{})
}

// SyncedResponse marks the end of a sync's initial state.
type SyncedResponse struct {
	Node string
	Lane string
}

func NewSyncedResponse(node, lane string) SyncedResponse {
	return SyncedResponse{Node: node, Lane: lane}
}

func (SyncedResponse) Kind() Kind { return KindSynced }
func (SyncedResponse) Role() Role { return KindSynced.Role() }
func (SyncedResponse) envelope()  {}
func (SyncedResponse) response()  {}

func (r SyncedResponse) Address() Address {
	return Address{Node: r.Node, Lane: r.Lane}
}

func (r SyncedResponse) WithAddress(opts ...AddressOption) SyncedResponse {
	a := readdress(r.Address(), opts)
	r.Node, r.Lane = a.Node, a.Lane
	return r
}

func (r SyncedResponse) Encode() recon.Value {
	return encodeEnvelope(KindSynced, []recon.Value{recon.Text(r.Node), recon.Text(r.Lane)}, recon.Record{})
}

// UnlinkRequest closes a link.
type UnlinkRequest struct {
	Node string
	Lane string
	Body recon.Record
}

func NewUnlinkRequest(node, lane string) UnlinkRequest {
	return UnlinkRequest{Node: node, Lane: lane}
}

func (UnlinkRequest) Kind() Kind { return KindUnlink }
func (UnlinkRequest) Role() Role { return KindUnlink.Role() }
func (UnlinkRequest) envelope()  {}
func (UnlinkRequest) request()   {}

func (r UnlinkRequest) Address() Address {
	return Address{Node: r.Node, Lane: r.Lane}
}

func (r UnlinkRequest) WithAddress(opts ...AddressOption) UnlinkRequest {
	a := readdress(r.Address(), opts)
	r.Node, r.Lane = a.Node, a.Lane
	return r
}

func (r UnlinkRequest) WithBody(body recon.Record) UnlinkRequest {
	r.Body = body
	return r
}

func (r UnlinkRequest) Encode() recon.Value {
	return encodeEnvelope(KindUnlink, []recon.Value{recon.Text(r.Node), recon.Text(r.Lane)}, r.Body)
}

// UnlinkedResponse acknowledges or forces the end of a link.
type UnlinkedResponse struct {
	Node string
	Lane string
	Body recon.Record
}

func NewUnlinkedResponse(node, lane string) UnlinkedResponse {
	return UnlinkedResponse{Node: node, Lane: lane}
}

func (UnlinkedResponse) Kind() Kind { return KindUnlinked }
func (UnlinkedResponse) Role() Role { return KindUnlinked.Role() }
func (UnlinkedResponse) envelope()  {}
func (UnlinkedResponse) response()  {}

func (r UnlinkedResponse) Address() Address {
	return Address{Node: r.Node, Lane: r.Lane}
}

func (r UnlinkedResponse) WithAddress(opts ...AddressOption) UnlinkedResponse {
	a := readdress(r.Address(), opts)
	r.Node, r.Lane = a.Node, a.Lane
	return r
}

func (r UnlinkedResponse) WithBody(body recon.Record) UnlinkedResponse {
	r.Body = body
	return r
}

func (r UnlinkedResponse) Encode() recon.Value {
	return encodeEnvelope(KindUnlinked, []recon.Value{recon.Text(r.Node), recon.Text(r.Lane)}, r.Body)
}
