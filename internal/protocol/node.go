package protocol

import "github.com/danmuck/swimproto/internal/recon"

// GetRequest fetches the state of a node. Node-only envelopes ignore the
// Lane address option.
type GetRequest struct {
	Node string
}

func NewGetRequest(node string) GetRequest {
	return GetRequest{Node: node}
}

func (GetRequest) Kind() Kind { return KindGet }
func (GetRequest) Role() Role { return KindGet.Role() }
func (GetRequest) envelope()  {}
func (GetRequest) request()   {}

func (r GetRequest) Address() Address {
	return Address{Node: r.Node}
}

func (r GetRequest) WithAddress(opts ...AddressOption) GetRequest {
	r.Node = readdress(r.Address(), opts).Node
	return r
}

func (r GetRequest) Encode() recon.Value {
	return encodeEnvelope(KindGet, []recon.Value{recon.Text(r.Node)}, recon.Record{})
}

// PutRequest replaces the state of a node with Body.
type PutRequest struct {
	Node string
	Body recon.Record
}

func NewPutRequest(node string) PutRequest {
	return PutRequest{Node: node}
}

func (PutRequest) Kind() Kind { return KindPut }
func (PutRequest) Role() Role { return KindPut.Role() }
func (PutRequest) envelope()  {}
func (PutRequest) request()   {}

func (r PutRequest) Address() Address {
	return Address{Node: r.Node}
}

func (r PutRequest) WithAddress(opts ...AddressOption) PutRequest {
	r.Node = readdress(r.Address(), opts).Node
	return r
}

func (r PutRequest) WithBody(body recon.Record) PutRequest {
	r.Body = body
	return r
}

func (r PutRequest) Encode() recon.Value {
	return encodeEnvelope(KindPut, []recon.Value{recon.Text(r.Node)}, r.Body)
}

// StateResponse carries the state of a node.
type StateResponse struct {
	Node string
	Body recon.Record
}

func NewStateResponse(node string) StateResponse {
	return StateResponse{Node: node}
}

func (StateResponse) Kind() Kind { return KindState }
func (StateResponse) Role() Role { return KindState.Role() }
func (StateResponse) envelope()  {}
func (StateResponse) response()  {}

func (r StateResponse) Address() Address {
	return Address{Node: r.Node}
}

func (r StateResponse) WithAddress(opts ...AddressOption) StateResponse {
	r.Node = readdress(r.Address(), opts).Node
	return r
}

func (r StateResponse) WithBody(body recon.Record) StateResponse {
	r.Body = body
	return r
}

func (r StateResponse) Encode() recon.Value {
	return encodeEnvelope(KindState, []recon.Value{recon.Text(r.Node)}, r.Body)
}
