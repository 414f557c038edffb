package service

import (
	"context"
	"math"
	"testing"

	"connectrpc.com/connect"
	"github.com/google/go-cmp/cmp"

	"github.com/mmynk/dinesplit/internal/api"
)

// checkoutCart fills a cart with the given entry IDs and checks out.
func checkoutCart(t *testing.T, ts *testServer, tok string, ids ...string) *api.OrderResponse {
	t.Helper()
	for _, id := range ids {
		addItem(t, ts, tok, id)
	}
	resp, err := ts.order.Checkout(context.Background(), withToken(tok, &api.EmptyRequest{}))
	if err != nil {
		t.Fatalf("Checkout failed: %v", err)
	}
	if resp.Msg.Screen != "bill-split" {
		t.Fatalf("expected bill-split screen after checkout, got %q", resp.Msg.Screen)
	}
	return resp.Msg
}

func TestSplit_EndToEnd(t *testing.T) {
	ts, cleanup := setupTestServer(t)
	defer cleanup()
	tok := startSession(t, ts)
	ctx := context.Background()

	// Paneer Butter Masala x1 + Butter Chicken x2.
	order := checkoutCart(t, ts, tok, "1", "6", "6")
	wantNotifications(t, order.Notifications)

	split := order.Split
	if split == nil {
		t.Fatal("expected split view after checkout")
	}
	if split.Subtotal.Value != 1080 || split.ItemCount != 3 {
		t.Errorf("subtotal %v items %d, want 1080 and 3", split.Subtotal.Value, split.ItemCount)
	}
	if len(split.Participants) != 2 || split.Participants[1].Name != "Person 2" {
		t.Errorf("expected two default participants, got %+v", split.Participants)
	}
	if split.MaxParticipants != 20 {
		t.Errorf("maxParticipants = %d, want 20", split.MaxParticipants)
	}

	resp, err := ts.split.SetParticipantCount(ctx, withToken(tok, &api.SetParticipantCountRequest{Count: 3}))
	if err != nil {
		t.Fatalf("SetParticipantCount failed: %v", err)
	}
	split = resp.Msg.Split
	if split.EqualPerPerson.Display != "₹360.00" {
		t.Errorf("equal per person = %s, want ₹360.00", split.EqualPerPerson.Display)
	}
	if math.Abs(split.EqualPerPerson.Value*3-1080) > 0.01 {
		t.Errorf("equal shares do not add up: %v", split.EqualPerPerson.Value)
	}

	for _, idx := range []int{0, 2} {
		resp, err = ts.split.ToggleAssignment(ctx, withToken(tok, &api.ToggleAssignmentRequest{LineID: "6", Index: idx}))
		if err != nil {
			t.Fatalf("ToggleAssignment failed: %v", err)
		}
	}
	resp, err = ts.split.RenameParticipant(ctx, withToken(tok, &api.RenameParticipantRequest{Index: 0, Name: "Asha"}))
	if err != nil {
		t.Fatalf("RenameParticipant failed: %v", err)
	}

	split = resp.Msg.Split
	gotTotals := make([]float64, len(split.ByItem))
	for i, share := range split.ByItem {
		gotTotals[i] = share.Total.Value
	}
	if diff := cmp.Diff([]float64{800, 0, 800}, gotTotals); diff != "" {
		t.Errorf("per-item totals mismatch (-want +got):\n%s", diff)
	}
	if split.ByItem[0].Participant.Name != "Asha" {
		t.Errorf("rename not applied: %+v", split.ByItem[0].Participant)
	}
	if diff := cmp.Diff([]string{"1"}, split.Unassigned); diff != "" {
		t.Errorf("unassigned mismatch (-want +got):\n%s", diff)
	}

	// Veg group is {0, 1}, non-veg group is {2}.
	if split.Veg.PerPerson.Value != 140 || split.NonVeg.PerPerson.Value != 800 {
		t.Errorf("category split = %v / %v, want 140 / 800", split.Veg.PerPerson.Value, split.NonVeg.PerPerson.Value)
	}

	resp, err = ts.split.ProceedToPayment(ctx, withToken(tok, &api.ProceedToPaymentRequest{Strategy: "equal"}))
	if err != nil {
		t.Fatalf("ProceedToPayment failed: %v", err)
	}
	wantNotifications(t, resp.Msg.Notifications, api.Notification{Level: "success", Message: "Proceeding to payment with Equal split..."})

	// State survives a re-read.
	resp, err = ts.split.GetSplit(ctx, withToken(tok, &api.EmptyRequest{}))
	if err != nil {
		t.Fatalf("GetSplit failed: %v", err)
	}
	if resp.Msg.Split == nil || len(resp.Msg.Split.Participants) != 3 {
		t.Fatalf("expected split with 3 participants, got %+v", resp.Msg.Split)
	}

	resp, err = ts.split.BackToMenu(ctx, withToken(tok, &api.EmptyRequest{}))
	if err != nil {
		t.Fatalf("BackToMenu failed: %v", err)
	}
	if resp.Msg.Screen != "menu" || resp.Msg.Split != nil {
		t.Errorf("expected menu screen without split, got %q", resp.Msg.Screen)
	}
	if resp.Msg.Cart.Subtotal.Value != 1080 || len(resp.Msg.Cart.Lines) != 2 {
		t.Errorf("cart changed by the split screen: %+v", resp.Msg.Cart)
	}
}

func TestEnterSplit_EmptyCartGuard(t *testing.T) {
	ts, cleanup := setupTestServer(t)
	defer cleanup()
	tok := startSession(t, ts)

	resp, err := ts.split.EnterSplit(context.Background(), withToken(tok, &api.EmptyRequest{}))
	if err != nil {
		t.Fatalf("EnterSplit failed: %v", err)
	}

	if resp.Msg.Screen != "menu" {
		t.Errorf("expected redirect to menu, got %q", resp.Msg.Screen)
	}
	if resp.Msg.Split != nil {
		t.Error("expected no split view")
	}
	wantNotifications(t, resp.Msg.Notifications, api.Notification{Level: "error", Message: "No items in cart"})
}

func TestEnterSplit_WithoutPayloadDropsSplit(t *testing.T) {
	ts, cleanup := setupTestServer(t)
	defer cleanup()
	tok := startSession(t, ts)
	checkoutCart(t, ts, tok, "2")

	resp, err := ts.split.EnterSplit(context.Background(), withToken(tok, &api.EmptyRequest{}))
	if err != nil {
		t.Fatalf("EnterSplit failed: %v", err)
	}
	if resp.Msg.Screen != "menu" {
		t.Errorf("expected redirect to menu, got %q", resp.Msg.Screen)
	}
	wantNotifications(t, resp.Msg.Notifications, api.Notification{Level: "error", Message: "No items in cart"})
	if len(resp.Msg.Cart.Lines) != 1 {
		t.Errorf("expected cart kept, got %+v", resp.Msg.Cart.Lines)
	}
}

func TestSplit_ActionsIgnoredOnMenu(t *testing.T) {
	ts, cleanup := setupTestServer(t)
	defer cleanup()
	tok := startSession(t, ts)
	ctx := context.Background()
	addItem(t, ts, tok, "1")

	resp, err := ts.split.SetParticipantCount(ctx, withToken(tok, &api.SetParticipantCountRequest{Count: 5}))
	if err != nil {
		t.Fatalf("SetParticipantCount failed: %v", err)
	}
	if resp.Msg.Screen != "menu" || resp.Msg.Split != nil {
		t.Errorf("expected no-op on menu, got %+v", resp.Msg)
	}

	resp, err = ts.split.ProceedToPayment(ctx, withToken(tok, &api.ProceedToPaymentRequest{Strategy: "equal"}))
	if err != nil {
		t.Fatalf("ProceedToPayment failed: %v", err)
	}
	wantNotifications(t, resp.Msg.Notifications)
}

func TestSplit_CartActionsIgnoredOnSplit(t *testing.T) {
	ts, cleanup := setupTestServer(t)
	defer cleanup()
	tok := startSession(t, ts)
	checkoutCart(t, ts, tok, "1")

	order := addItem(t, ts, tok, "5")
	wantNotifications(t, order.Notifications)
	if order.Screen != "bill-split" {
		t.Errorf("expected to stay on bill-split, got %q", order.Screen)
	}
	if order.Cart.ItemCount != 1 || order.Split.ItemCount != 1 {
		t.Errorf("cart changed on split screen: cart %d split %d", order.Cart.ItemCount, order.Split.ItemCount)
	}
}

func TestSetParticipantCount_Clamps(t *testing.T) {
	ts, cleanup := setupTestServer(t)
	defer cleanup()
	tok := startSession(t, ts)
	checkoutCart(t, ts, tok, "1")

	tests := []struct {
		count int
		want  int
	}{
		{0, 1},
		{-4, 1},
		{7, 7},
		{21, 20},
		{100, 20},
	}

	for _, tt := range tests {
		resp, err := ts.split.SetParticipantCount(context.Background(), withToken(tok, &api.SetParticipantCountRequest{Count: tt.count}))
		if err != nil {
			t.Fatalf("SetParticipantCount(%d) failed: %v", tt.count, err)
		}
		if got := len(resp.Msg.Split.Participants); got != tt.want {
			t.Errorf("SetParticipantCount(%d): %d participants, want %d", tt.count, got, tt.want)
		}
	}
}

func TestSplit_StaleAssignmentsReturn(t *testing.T) {
	ts, cleanup := setupTestServer(t)
	defer cleanup()
	tok := startSession(t, ts)
	ctx := context.Background()
	checkoutCart(t, ts, tok, "5")

	mustSplit := func(resp *connect.Response[api.OrderResponse], err error) *api.SplitView {
		t.Helper()
		if err != nil {
			t.Fatalf("split call failed: %v", err)
		}
		return resp.Msg.Split
	}

	mustSplit(ts.split.SetParticipantCount(ctx, withToken(tok, &api.SetParticipantCountRequest{Count: 4})))
	split := mustSplit(ts.split.ToggleAssignment(ctx, withToken(tok, &api.ToggleAssignmentRequest{LineID: "5", Index: 3})))
	if split.ByItem[3].Total.Value != 380 {
		t.Fatalf("expected person 4 to owe 380, got %v", split.ByItem[3].Total.Value)
	}

	split = mustSplit(ts.split.SetParticipantCount(ctx, withToken(tok, &api.SetParticipantCountRequest{Count: 2})))
	if len(split.Lines[0].AssignedTo) != 0 || len(split.Unassigned) != 1 {
		t.Errorf("expected out-of-range assignment to be ignored, got %+v", split.Lines[0])
	}

	split = mustSplit(ts.split.SetParticipantCount(ctx, withToken(tok, &api.SetParticipantCountRequest{Count: 4})))
	if diff := cmp.Diff([]int{3}, split.Lines[0].AssignedTo); diff != "" {
		t.Errorf("assignment did not come back (-want +got):\n%s", diff)
	}
}

func TestProceedToPayment(t *testing.T) {
	ts, cleanup := setupTestServer(t)
	defer cleanup()
	tok := startSession(t, ts)
	checkoutCart(t, ts, tok, "1")

	tests := []struct {
		strategy string
		want     api.Notification
	}{
		{"equal", api.Notification{Level: "success", Message: "Proceeding to payment with Equal split..."}},
		{"items", api.Notification{Level: "success", Message: "Proceeding to payment with By Items split..."}},
		{"category", api.Notification{Level: "success", Message: "Proceeding to payment with Veg/Non-Veg split..."}},
		{"coin-flip", api.Notification{Level: "error", Message: `Unknown split method "coin-flip"`}},
	}

	for _, tt := range tests {
		t.Run(tt.strategy, func(t *testing.T) {
			resp, err := ts.split.ProceedToPayment(context.Background(), withToken(tok, &api.ProceedToPaymentRequest{Strategy: tt.strategy}))
			if err != nil {
				t.Fatalf("ProceedToPayment failed: %v", err)
			}
			wantNotifications(t, resp.Msg.Notifications, tt.want)
			if resp.Msg.Screen != "bill-split" {
				t.Errorf("expected to stay on bill-split, got %q", resp.Msg.Screen)
			}
		})
	}
}
