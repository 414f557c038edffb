package api

import (
	"context"
	"strings"

	"connectrpc.com/connect"
)

func clientOptions(opts []connect.ClientOption) []connect.ClientOption {
	return append([]connect.ClientOption{withCodec}, opts...)
}

// MenuServiceClient is a client for the dinesplit.v1.MenuService service.
type MenuServiceClient struct {
	listMenu *connect.Client[ListMenuRequest, ListMenuResponse]
}

// NewMenuServiceClient constructs a client for the dinesplit.v1.MenuService
// service. baseURL is the server root, e.g. "http://localhost:8080".
func NewMenuServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) *MenuServiceClient {
	baseURL = strings.TrimRight(baseURL, "/")
	opts = clientOptions(opts)
	return &MenuServiceClient{
		listMenu: connect.NewClient[ListMenuRequest, ListMenuResponse](httpClient, baseURL+MenuServiceListMenuProcedure, opts...),
	}
}

func (c *MenuServiceClient) ListMenu(ctx context.Context, req *connect.Request[ListMenuRequest]) (*connect.Response[ListMenuResponse], error) {
	return c.listMenu.CallUnary(ctx, req)
}

// OrderServiceClient is a client for the dinesplit.v1.OrderService service.
type OrderServiceClient struct {
	startSession *connect.Client[EmptyRequest, StartSessionResponse]
	getOrder     *connect.Client[EmptyRequest, OrderResponse]
	addItem      *connect.Client[AddItemRequest, OrderResponse]
	setQuantity  *connect.Client[SetQuantityRequest, OrderResponse]
	increment    *connect.Client[LineRequest, OrderResponse]
	decrement    *connect.Client[LineRequest, OrderResponse]
	removeItem   *connect.Client[LineRequest, OrderResponse]
	checkout     *connect.Client[EmptyRequest, OrderResponse]
}

// NewOrderServiceClient constructs a client for the dinesplit.v1.OrderService
// service.
func NewOrderServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) *OrderServiceClient {
	baseURL = strings.TrimRight(baseURL, "/")
	opts = clientOptions(opts)
	return &OrderServiceClient{
		startSession: connect.NewClient[EmptyRequest, StartSessionResponse](httpClient, baseURL+OrderServiceStartSessionProcedure, opts...),
		getOrder:     connect.NewClient[EmptyRequest, OrderResponse](httpClient, baseURL+OrderServiceGetOrderProcedure, opts...),
		addItem:      connect.NewClient[AddItemRequest, OrderResponse](httpClient, baseURL+OrderServiceAddItemProcedure, opts...),
		setQuantity:  connect.NewClient[SetQuantityRequest, OrderResponse](httpClient, baseURL+OrderServiceSetQuantityProcedure, opts...),
		increment:    connect.NewClient[LineRequest, OrderResponse](httpClient, baseURL+OrderServiceIncrementProcedure, opts...),
		decrement:    connect.NewClient[LineRequest, OrderResponse](httpClient, baseURL+OrderServiceDecrementProcedure, opts...),
		removeItem:   connect.NewClient[LineRequest, OrderResponse](httpClient, baseURL+OrderServiceRemoveItemProcedure, opts...),
		checkout:     connect.NewClient[EmptyRequest, OrderResponse](httpClient, baseURL+OrderServiceCheckoutProcedure, opts...),
	}
}

func (c *OrderServiceClient) StartSession(ctx context.Context, req *connect.Request[EmptyRequest]) (*connect.Response[StartSessionResponse], error) {
	return c.startSession.CallUnary(ctx, req)
}

func (c *OrderServiceClient) GetOrder(ctx context.Context, req *connect.Request[EmptyRequest]) (*connect.Response[OrderResponse], error) {
	return c.getOrder.CallUnary(ctx, req)
}

func (c *OrderServiceClient) AddItem(ctx context.Context, req *connect.Request[AddItemRequest]) (*connect.Response[OrderResponse], error) {
	return c.addItem.CallUnary(ctx, req)
}

func (c *OrderServiceClient) SetQuantity(ctx context.Context, req *connect.Request[SetQuantityRequest]) (*connect.Response[OrderResponse], error) {
	return c.setQuantity.CallUnary(ctx, req)
}

func (c *OrderServiceClient) Increment(ctx context.Context, req *connect.Request[LineRequest]) (*connect.Response[OrderResponse], error) {
	return c.increment.CallUnary(ctx, req)
}

func (c *OrderServiceClient) Decrement(ctx context.Context, req *connect.Request[LineRequest]) (*connect.Response[OrderResponse], error) {
	return c.decrement.CallUnary(ctx, req)
}

func (c *OrderServiceClient) RemoveItem(ctx context.Context, req *connect.Request[LineRequest]) (*connect.Response[OrderResponse], error) {
	return c.removeItem.CallUnary(ctx, req)
}

func (c *OrderServiceClient) Checkout(ctx context.Context, req *connect.Request[EmptyRequest]) (*connect.Response[OrderResponse], error) {
	return c.checkout.CallUnary(ctx, req)
}

// SplitServiceClient is a client for the dinesplit.v1.SplitService service.
type SplitServiceClient struct {
	enterSplit          *connect.Client[EmptyRequest, OrderResponse]
	getSplit            *connect.Client[EmptyRequest, OrderResponse]
	setParticipantCount *connect.Client[SetParticipantCountRequest, OrderResponse]
	renameParticipant   *connect.Client[RenameParticipantRequest, OrderResponse]
	toggleAssignment    *connect.Client[ToggleAssignmentRequest, OrderResponse]
	proceedToPayment    *connect.Client[ProceedToPaymentRequest, OrderResponse]
	backToMenu          *connect.Client[EmptyRequest, OrderResponse]
}

// NewSplitServiceClient constructs a client for the dinesplit.v1.SplitService
// service.
func NewSplitServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) *SplitServiceClient {
	baseURL = strings.TrimRight(baseURL, "/")
	opts = clientOptions(opts)
	return &SplitServiceClient{
		enterSplit:          connect.NewClient[EmptyRequest, OrderResponse](httpClient, baseURL+SplitServiceEnterSplitProcedure, opts...),
		getSplit:            connect.NewClient[EmptyRequest, OrderResponse](httpClient, baseURL+SplitServiceGetSplitProcedure, opts...),
		setParticipantCount: connect.NewClient[SetParticipantCountRequest, OrderResponse](httpClient, baseURL+SplitServiceSetParticipantCountProcedure, opts...),
		renameParticipant:   connect.NewClient[RenameParticipantRequest, OrderResponse](httpClient, baseURL+SplitServiceRenameParticipantProcedure, opts...),
		toggleAssignment:    connect.NewClient[ToggleAssignmentRequest, OrderResponse](httpClient, baseURL+SplitServiceToggleAssignmentProcedure, opts...),
		proceedToPayment:    connect.NewClient[ProceedToPaymentRequest, OrderResponse](httpClient, baseURL+SplitServiceProceedToPaymentProcedure, opts...),
		backToMenu:          connect.NewClient[EmptyRequest, OrderResponse](httpClient, baseURL+SplitServiceBackToMenuProcedure, opts...),
	}
}

func (c *SplitServiceClient) EnterSplit(ctx context.Context, req *connect.Request[EmptyRequest]) (*connect.Response[OrderResponse], error) {
	return c.enterSplit.CallUnary(ctx, req)
}

func (c *SplitServiceClient) GetSplit(ctx context.Context, req *connect.Request[EmptyRequest]) (*connect.Response[OrderResponse], error) {
	return c.getSplit.CallUnary(ctx, req)
}

func (c *SplitServiceClient) SetParticipantCount(ctx context.Context, req *connect.Request[SetParticipantCountRequest]) (*connect.Response[OrderResponse], error) {
	return c.setParticipantCount.CallUnary(ctx, req)
}

func (c *SplitServiceClient) RenameParticipant(ctx context.Context, req *connect.Request[RenameParticipantRequest]) (*connect.Response[OrderResponse], error) {
	return c.renameParticipant.CallUnary(ctx, req)
}

func (c *SplitServiceClient) ToggleAssignment(ctx context.Context, req *connect.Request[ToggleAssignmentRequest]) (*connect.Response[OrderResponse], error) {
	return c.toggleAssignment.CallUnary(ctx, req)
}

func (c *SplitServiceClient) ProceedToPayment(ctx context.Context, req *connect.Request[ProceedToPaymentRequest]) (*connect.Response[OrderResponse], error) {
	return c.proceedToPayment.CallUnary(ctx, req)
}

func (c *SplitServiceClient) BackToMenu(ctx context.Context, req *connect.Request[EmptyRequest]) (*connect.Response[OrderResponse], error) {
	return c.backToMenu.CallUnary(ctx, req)
}
