package service

import (
	"context"
	"fmt"
	"log/slog"

	"connectrpc.com/connect"

	"github.com/mmynk/dinesplit/internal/api"
	"github.com/mmynk/dinesplit/internal/catalog"
	"github.com/mmynk/dinesplit/internal/middleware"
	"github.com/mmynk/dinesplit/internal/models"
)

// MenuService implements the Connect MenuService.
type MenuService struct {
	catalog *catalog.Catalog
}

// NewMenuService creates a new MenuService serving the given catalog.
func NewMenuService(c *catalog.Catalog) *MenuService {
	return &MenuService{catalog: c}
}

// ListMenu returns the menu, optionally filtered to one category.
func (s *MenuService) ListMenu(ctx context.Context, req *connect.Request[api.ListMenuRequest]) (*connect.Response[api.ListMenuResponse], error) {
	cat := models.Category(req.Msg.Category)
	if cat != "" && !cat.Valid() {
		return nil, connect.NewError(connect.CodeInvalidArgument, fmt.Errorf("unknown category %q (want veg or nonveg)", req.Msg.Category))
	}

	entries := s.catalog.ByCategory(cat)
	slog.Debug("Listing menu",
		"category", cat,
		"count", len(entries),
		"session_id", middleware.GetSessionID(ctx),
	)

	return connect.NewResponse(&api.ListMenuResponse{
		Items: api.MenuItemsFromModel(entries),
	}), nil
}
