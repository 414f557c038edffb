// Package api defines the Connect RPC surface of the server: JSON wire
// types, procedure names, handler constructors and clients for
// MenuService, OrderService and SplitService.
package api

import (
	"encoding/json"

	"connectrpc.com/connect"
)

// Codec serializes plain Go structs as JSON. It replaces connect's protojson
// codec, which only accepts generated protobuf messages.
type Codec struct{}

var _ connect.Codec = Codec{}

func (Codec) Name() string { return "json" }

func (Codec) Marshal(v any) ([]byte, error) { return json.Marshal(v) }

func (Codec) Unmarshal(data []byte, v any) error { return json.Unmarshal(data, v) }

// withCodec is applied to every handler and client in this package.
var withCodec = connect.WithCodec(Codec{})
