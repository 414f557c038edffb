package api

import (
	"context"
	"net/http"

	"connectrpc.com/connect"
)

const (
	MenuServiceName  = "dinesplit.v1.MenuService"
	OrderServiceName = "dinesplit.v1.OrderService"
	SplitServiceName = "dinesplit.v1.SplitService"
)

// Procedure names, in the form "/<package>.<Service>/<Method>".
const (
	MenuServiceListMenuProcedure = "/dinesplit.v1.MenuService/ListMenu"

	OrderServiceStartSessionProcedure = "/dinesplit.v1.OrderService/StartSession"
	OrderServiceGetOrderProcedure     = "/dinesplit.v1.OrderService/GetOrder"
	OrderServiceAddItemProcedure      = "/dinesplit.v1.OrderService/AddItem"
	OrderServiceSetQuantityProcedure  = "/dinesplit.v1.OrderService/SetQuantity"
	OrderServiceIncrementProcedure    = "/dinesplit.v1.OrderService/Increment"
	OrderServiceDecrementProcedure    = "/dinesplit.v1.OrderService/Decrement"
	OrderServiceRemoveItemProcedure   = "/dinesplit.v1.OrderService/RemoveItem"
	OrderServiceCheckoutProcedure     = "/dinesplit.v1.OrderService/Checkout"

	SplitServiceEnterSplitProcedure          = "/dinesplit.v1.SplitService/EnterSplit"
	SplitServiceGetSplitProcedure            = "/dinesplit.v1.SplitService/GetSplit"
	SplitServiceSetParticipantCountProcedure = "/dinesplit.v1.SplitService/SetParticipantCount"
	SplitServiceRenameParticipantProcedure   = "/dinesplit.v1.SplitService/RenameParticipant"
	SplitServiceToggleAssignmentProcedure    = "/dinesplit.v1.SplitService/ToggleAssignment"
	SplitServiceProceedToPaymentProcedure    = "/dinesplit.v1.SplitService/ProceedToPayment"
	SplitServiceBackToMenuProcedure          = "/dinesplit.v1.SplitService/BackToMenu"
)

// MenuServiceHandler is implemented by the menu service.
type MenuServiceHandler interface {
	ListMenu(context.Context, *connect.Request[ListMenuRequest]) (*connect.Response[ListMenuResponse], error)
}

// OrderServiceHandler is implemented by the ordering service.
type OrderServiceHandler interface {
	StartSession(context.Context, *connect.Request[EmptyRequest]) (*connect.Response[StartSessionResponse], error)
	GetOrder(context.Context, *connect.Request[EmptyRequest]) (*connect.Response[OrderResponse], error)
	AddItem(context.Context, *connect.Request[AddItemRequest]) (*connect.Response[OrderResponse], error)
	SetQuantity(context.Context, *connect.Request[SetQuantityRequest]) (*connect.Response[OrderResponse], error)
	Increment(context.Context, *connect.Request[LineRequest]) (*connect.Response[OrderResponse], error)
	Decrement(context.Context, *connect.Request[LineRequest]) (*connect.Response[OrderResponse], error)
	RemoveItem(context.Context, *connect.Request[LineRequest]) (*connect.Response[OrderResponse], error)
	Checkout(context.Context, *connect.Request[EmptyRequest]) (*connect.Response[OrderResponse], error)
}

// SplitServiceHandler is implemented by the bill split service.
type SplitServiceHandler interface {
	EnterSplit(context.Context, *connect.Request[EmptyRequest]) (*connect.Response[OrderResponse], error)
	GetSplit(context.Context, *connect.Request[EmptyRequest]) (*connect.Response[OrderResponse], error)
	SetParticipantCount(context.Context, *connect.Request[SetParticipantCountRequest]) (*connect.Response[OrderResponse], error)
	RenameParticipant(context.Context, *connect.Request[RenameParticipantRequest]) (*connect.Response[OrderResponse], error)
	ToggleAssignment(context.Context, *connect.Request[ToggleAssignmentRequest]) (*connect.Response[OrderResponse], error)
	ProceedToPayment(context.Context, *connect.Request[ProceedToPaymentRequest]) (*connect.Response[OrderResponse], error)
	BackToMenu(context.Context, *connect.Request[EmptyRequest]) (*connect.Response[OrderResponse], error)
}

// route maps procedure names to handlers under one service path.
type route map[string]http.Handler

func (r route) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	if h, ok := r[req.URL.Path]; ok {
		h.ServeHTTP(w, req)
		return
	}
	http.NotFound(w, req)
}

func handlerOptions(opts []connect.HandlerOption) []connect.HandlerOption {
	return append([]connect.HandlerOption{withCodec}, opts...)
}

// NewMenuServiceHandler builds an HTTP handler from the service
// implementation. It returns the path on which to mount the handler and the
// handler itself.
func NewMenuServiceHandler(svc MenuServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = handlerOptions(opts)
	return "/" + MenuServiceName + "/", route{
		MenuServiceListMenuProcedure: connect.NewUnaryHandler(MenuServiceListMenuProcedure, svc.ListMenu, opts...),
	}
}

// NewOrderServiceHandler builds an HTTP handler from the service
// implementation. It returns the path on which to mount the handler and the
// handler itself.
func NewOrderServiceHandler(svc OrderServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = handlerOptions(opts)
	return "/" + OrderServiceName + "/", route{
		OrderServiceStartSessionProcedure: connect.NewUnaryHandler(OrderServiceStartSessionProcedure, svc.StartSession, opts...),
		OrderServiceGetOrderProcedure:     connect.NewUnaryHandler(OrderServiceGetOrderProcedure, svc.GetOrder, opts...),
		OrderServiceAddItemProcedure:      connect.NewUnaryHandler(OrderServiceAddItemProcedure, svc.AddItem, opts...),
		OrderServiceSetQuantityProcedure:  connect.NewUnaryHandler(OrderServiceSetQuantityProcedure, svc.SetQuantity, opts...),
		OrderServiceIncrementProcedure:    connect.NewUnaryHandler(OrderServiceIncrementProcedure, svc.Increment, opts...),
		OrderServiceDecrementProcedure:    connect.NewUnaryHandler(OrderServiceDecrementProcedure, svc.Decrement, opts...),
		OrderServiceRemoveItemProcedure:   connect.NewUnaryHandler(OrderServiceRemoveItemProcedure, svc.RemoveItem, opts...),
		OrderServiceCheckoutProcedure:     connect.NewUnaryHandler(OrderServiceCheckoutProcedure, svc.Checkout, opts...),
	}
}

// NewSplitServiceHandler builds an HTTP handler from the service
// implementation. It returns the path on which to mount the handler and the
// handler itself.
func NewSplitServiceHandler(svc SplitServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = handlerOptions(opts)
	return "/" + SplitServiceName + "/", route{
		SplitServiceEnterSplitProcedure:          connect.NewUnaryHandler(SplitServiceEnterSplitProcedure, svc.EnterSplit, opts...),
		SplitServiceGetSplitProcedure:            connect.NewUnaryHandler(SplitServiceGetSplitProcedure, svc.GetSplit, opts...),
		SplitServiceSetParticipantCountProcedure: connect.NewUnaryHandler(SplitServiceSetParticipantCountProcedure, svc.SetParticipantCount, opts...),
		SplitServiceRenameParticipantProcedure:   connect.NewUnaryHandler(SplitServiceRenameParticipantProcedure, svc.RenameParticipant, opts...),
		SplitServiceToggleAssignmentProcedure:    connect.NewUnaryHandler(SplitServiceToggleAssignmentProcedure, svc.ToggleAssignment, opts...),
		SplitServiceProceedToPaymentProcedure:    connect.NewUnaryHandler(SplitServiceProceedToPaymentProcedure, svc.ProceedToPayment, opts...),
		SplitServiceBackToMenuProcedure:          connect.NewUnaryHandler(SplitServiceBackToMenuProcedure, svc.BackToMenu, opts...),
	}
}
