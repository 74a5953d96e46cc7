package protocol

import "github.com/danmuck/swimproto/internal/recon"

// AuthRequest carries opaque credentials. The body is never inspected.
type AuthRequest struct {
	Body recon.Record
}

func NewAuthRequest() AuthRequest {
	return AuthRequest{}
}

func (AuthRequest) Kind() Kind { return KindAuth }
func (AuthRequest) Role() Role { return KindAuth.Role() }
func (AuthRequest) envelope()  {}
func (AuthRequest) request()   {}

func (r AuthRequest) WithBody(body recon.Record) AuthRequest {
	r.Body = body
	return r
}

func (r AuthRequest) Encode() recon.Value {
	return encodeEnvelope(KindAuth, nil, r.Body)
}

type AuthedResponse struct {
	Body recon.Record
}

func NewAuthedResponse() AuthedResponse {
	return AuthedResponse{}
}

func (AuthedResponse) Kind() Kind { return KindAuthed }
func (AuthedResponse) Role() Role { return KindAuthed.Role() }
func (AuthedResponse) envelope()  {}
func (AuthedResponse) response()  {}

func (r AuthedResponse) WithBody(body recon.Record) AuthedResponse {
	r.Body = body
	return r
}

func (r AuthedResponse) Encode() recon.Value {
	return encodeEnvelope(KindAuthed, nil, r.Body)
}

type DeauthRequest struct {
	Body recon.Record
}

func NewDeauthRequest() DeauthRequest {
	return DeauthRequest{}
}

func (DeauthRequest) Kind() Kind { return KindDeauth }
func (DeauthRequest) Role() Role { return KindDeauth.Role() }
func (DeauthRequest) envelope()  {}
func (DeauthRequest) request()   {}

func (r DeauthRequest) WithBody(body recon.Record) DeauthRequest {
	r.Body = body
	return r
}

func (r DeauthRequest) Encode() recon.Value {
	return encodeEnvelope(KindDeauth, nil, r.Body)
}

type DeauthedResponse struct {
	Body recon.Record
}

func NewDeauthedResponse() DeauthedResponse {
	return DeauthedResponse{}
}

func (DeauthedResponse) Kind() Kind { return KindDeauthed }
func (DeauthedResponse) Role() Role { return KindDeauthed.Role() }
func (DeauthedResponse) envelope()  {}
func (DeauthedResponse) response()  {}

func (r DeauthedResponse) WithBody(body recon.Record) DeauthedResponse {
	r.Body = body
	return r
}

func (r DeauthedResponse) Encode() recon.Value {
	return encodeEnvelope(KindDeauthed, nil, r.Body)
}
