package http

import (
	"fmt"
	"net/http"

	"printflow/internal/core/application/usecases/commands"
	"printflow/internal/core/application/usecases/queries"
	"printflow/internal/core/domain/model/item"
	"printflow/internal/core/domain/model/kernel"
	"printflow/internal/pkg/errs"

	"github.com/labstack/echo/v4"
	"github.com/oapi-codegen/runtime"
)

// ListItemsByStatus handles GET /api/v1/items?status=.
func (s *Server) ListItemsByStatus(c echo.Context) error {
	var name string
	if err := runtime.BindQueryParameter("form", true, true, "status", c.QueryParams(), &name); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("status", err)
	}
	status, err := item.ParseStatus(name)
	if err != nil {
		return err
	}

	query, err := queries.NewListItemsByStatusQuery(status)
	if err != nil {
		return err
	}
	views, err := s.handlers.ListItemsByStatus.Handle(c.Request().Context(), query)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, itemViews(views))
}

// AdvanceStatus handles POST /api/v1/items/{itemId}/advance.
func (s *Server) AdvanceStatus(c echo.Context) error {
	itemID, err := pathID(c, "itemId")
	if err != nil {
		return err
	}
	var body Advance
	if err := c.Bind(&body); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("request body", err)
	}
	target, err := item.ParseStatus(body.Status)
	if err != nil {
		return err
	}

	cmd, err := commands.NewAdvanceStatusCommand(itemID, target, body.Reason)
	if err != nil {
		return err
	}
	if err := s.handlers.AdvanceStatus.Handle(c.Request().Context(), cmd); err != nil {
		return err
	}
	return s.itemResponse(c, itemID)
}

// BatchAdvance handles POST /api/v1/items/batch-advance.
func (s *Server) BatchAdvance(c echo.Context) error {
	var body BatchAdvance
	if err := c.Bind(&body); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("request body", err)
	}
	target, err := item.ParseStatus(body.Status)
	if err != nil {
		return err
	}
	itemIDs, err := toKernelList("itemIds", body.ItemIds)
	if err != nil {
		return err
	}

	cmd, err := commands.NewBatchAdvanceCommand(itemIDs, target, body.Reason)
	if err != nil {
		return err
	}
	if err := s.handlers.BatchAdvance.Handle(c.Request().Context(), cmd); err != nil {
		return err
	}

	query, err := queries.NewGetItemsQuery(itemIDs...)
	if err != nil {
		return err
	}
	views, err := s.handlers.GetItems.Handle(c.Request().Context(), query)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, itemViews(views))
}

// RequestReprint handles POST /api/v1/items/{itemId}/reprint. Scope "item"
// reprints the whole item and takes no part list; scope "parts" needs one.
func (s *Server) RequestReprint(c echo.Context) error {
	itemID, err := pathID(c, "itemId")
	if err != nil {
		return err
	}
	var body ReprintRequest
	if err := c.Bind(&body); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("request body", err)
	}

	scope, err := reprintScope(body)
	if err != nil {
		return err
	}

	cmd, err := commands.NewRequestReprintCommand(itemID, scope, body.Reason)
	if err != nil {
		return err
	}
	if err := s.handlers.RequestReprint.Handle(c.Request().Context(), cmd); err != nil {
		return err
	}
	return s.itemResponse(c, itemID)
}

// MarkReprintComplete handles POST /api/v1/items/{itemId}/reprint-complete.
func (s *Server) MarkReprintComplete(c echo.Context) error {
	itemID, err := pathID(c, "itemId")
	if err != nil {
		return err
	}
	var body PartIds
	if err := c.Bind(&body); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("request body", err)
	}
	partIDs, err := toKernelList("partIds", body.PartIds)
	if err != nil {
		return err
	}

	cmd, err := commands.NewMarkReprintCompleteCommand(itemID, partIDs)
	if err != nil {
		return err
	}
	if err := s.handlers.MarkReprintComplete.Handle(c.Request().Context(), cmd); err != nil {
		return err
	}
	return s.itemResponse(c, itemID)
}

// GetItemHistory handles GET /api/v1/items/{itemId}/history.
func (s *Server) GetItemHistory(c echo.Context) error {
	itemID, err := pathID(c, "itemId")
	if err != nil {
		return err
	}
	query, err := queries.NewGetItemHistoryQuery(itemID)
	if err != nil {
		return err
	}
	entries, err := s.handlers.GetItemHistory.Handle(c.Request().Context(), query)
	if err != nil {
		return err
	}

	response := make([]HistoryEntry, 0, len(entries))
	for _, e := range entries {
		entry := HistoryEntry{
			NewStatus: e.NewStatus.String(),
			ChangedAt: e.ChangedAt,
			Reason:    e.Reason,
		}
		if e.OldStatus != nil {
			old := e.OldStatus.String()
			entry.OldStatus = &old
		}
		response = append(response, entry)
	}
	return c.JSON(http.StatusOK, response)
}

// itemResponse writes the current view of one item.
func (s *Server) itemResponse(c echo.Context, itemID kernel.UUID) error {
	query, err := queries.NewGetItemsQuery(itemID)
	if err != nil {
		return err
	}
	views, err := s.handlers.GetItems.Handle(c.Request().Context(), query)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, itemViews(views)[0])
}

func reprintScope(body ReprintRequest) (item.ReprintScope, error) {
	switch body.Scope {
	case ReprintRequestScopeItem:
		if len(body.PartIds) > 0 {
			return nil, errs.NewValueIsInvalidErrorWithCause(
				"partIds",
				fmt.Errorf("scope %q takes no part list", body.Scope),
			)
		}
		return item.EntireItem{}, nil
	case ReprintRequestScopeParts:
		if len(body.PartIds) == 0 {
			return nil, errs.NewValueIsRequiredError("partIds")
		}
		partIDs, err := toKernelList("partIds", body.PartIds)
		if err != nil {
			return nil, err
		}
		partSet, err := item.NewPartSet(partIDs...)
		if err != nil {
			return nil, err
		}
		return partSet, nil
	default:
		return nil, errs.NewValueIsInvalidErrorWithCause("scope", fmt.Errorf("unknown reprint scope %q", body.Scope))
	}
}
