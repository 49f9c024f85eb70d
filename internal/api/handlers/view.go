package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/ledgerview/ledgerview/internal/api/dto"
	"github.com/ledgerview/ledgerview/internal/directory"
	"github.com/ledgerview/ledgerview/internal/ledger"
	"github.com/ledgerview/ledgerview/internal/review"
)

const filterDateLayout = "2006-01-02"

// ViewHandler serves the derived transaction view and its controls.
type ViewHandler struct {
	session   *review.Session
	directory *directory.Service
}

// NewViewHandler creates the view handler.
func NewViewHandler(session *review.Session, dir *directory.Service) *ViewHandler {
	return &ViewHandler{session: session, directory: dir}
}

// Get handles GET /api/view.
func (h *ViewHandler) Get(c *gin.Context) {
	c.JSON(http.StatusOK, toViewResponse(h.session.View(), h.directory))
}

// Refresh handles POST /api/view/refresh - re-fetches the open account's
// table, which is also the retry path after an error.
func (h *ViewHandler) Refresh(c *gin.Context) {
	if err := h.session.Refresh(c.Request.Context()); err == review.ErrNoAccount {
		c.JSON(http.StatusBadRequest, dto.ValidationError("no account selected"))
		return
	}
	// Fetch failures are part of the view state.
	c.JSON(http.StatusOK, toViewResponse(h.session.View(), h.directory))
}

// SetFilters handles POST /api/view/filters.
func (h *ViewHandler) SetFilters(c *gin.Context) {
	var req dto.FiltersRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.BadRequestError("invalid request body"))
		return
	}

	filters, err := parseFilters(req)
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.ValidationError(err.Error()))
		return
	}

	h.session.SetFilters(filters)
	c.JSON(http.StatusOK, toViewResponse(h.session.View(), h.directory))
}

// ClearFilters handles DELETE /api/view/filters.
func (h *ViewHandler) ClearFilters(c *gin.Context) {
	h.session.ClearFilters()
	c.JSON(http.StatusOK, toViewResponse(h.session.View(), h.directory))
}

// SetPage handles POST /api/view/page.
func (h *ViewHandler) SetPage(c *gin.Context) {
	var req dto.PageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.BadRequestError("invalid request body"))
		return
	}

	h.session.SetPage(req.Page)
	c.JSON(http.StatusOK, toViewResponse(h.session.View(), h.directory))
}

// SetPageSize handles POST /api/view/page-size.
func (h *ViewHandler) SetPageSize(c *gin.Context) {
	var req dto.PageSizeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.BadRequestError("invalid request body"))
		return
	}

	h.session.SetPerPage(req.PerPage)
	c.JSON(http.StatusOK, toViewResponse(h.session.View(), h.directory))
}

// parseFilters converts the form-shaped request into a typed filter set.
func parseFilters(req dto.FiltersRequest) (ledger.FilterSet, error) {
	var filters ledger.FilterSet

	if req.StartDate != "" {
		parsed, err := time.Parse(filterDateLayout, req.StartDate)
		if err != nil {
			return filters, errInvalidFilter("start date must be YYYY-MM-DD")
		}
		filters.StartDate = &parsed
	}
	if req.EndDate != "" {
		parsed, err := time.Parse(filterDateLayout, req.EndDate)
		if err != nil {
			return filters, errInvalidFilter("end date must be YYYY-MM-DD")
		}
		filters.EndDate = &parsed
	}
	if req.MinAmount != "" {
		parsed, err := decimal.NewFromString(req.MinAmount)
		if err != nil {
			return filters, errInvalidFilter("min amount must be a number")
		}
		filters.MinAmount = &parsed
	}
	if req.MaxAmount != "" {
		parsed, err := decimal.NewFromString(req.MaxAmount)
		if err != nil {
			return filters, errInvalidFilter("max amount must be a number")
		}
		filters.MaxAmount = &parsed
	}

	filters.SearchText = req.SearchText
	filters.Type = ledger.ParseTransactionType(req.TransactionType)
	return filters, nil
}

type errInvalidFilter string

func (e errInvalidFilter) Error() string { return string(e) }

// toViewResponse flattens a session view state into the wire shape.
func toViewResponse(state review.ViewState, dir *directory.Service) dto.ViewResponse {
	response := dto.ViewResponse{
		State:        string(state.State),
		AccountID:    state.AccountID,
		AccountName:  dir.Name(state.AccountID),
		Error:        state.ErrorMessage,
		Headers:      state.Headers,
		Transactions: []dto.TransactionResponse{},
		Filters:      toFiltersResponse(state.Filters),
	}

	if state.State != review.StateTable {
		return response
	}

	view := state.View
	response.FilteredCount = view.FilteredCount
	response.Summary = dto.SummaryResponse{
		TotalDebits:      view.Summary.TotalDebits,
		TotalCredits:     view.Summary.TotalCredits,
		Balance:          view.Summary.Balance,
		TransactionCount: view.Summary.TransactionCount,
	}
	response.Pagination = dto.PaginationResponse{
		Page:       view.Pagination.Page,
		PerPage:    view.Pagination.PerPage,
		TotalPages: view.Pagination.TotalPages,
		TotalCount: view.Pagination.TotalCount,
		From:       view.Pagination.From,
		To:         view.Pagination.To,
		HasPrev:    view.Pagination.HasPrev,
		HasNext:    view.Pagination.HasNext,
		Window:     view.Pagination.Window,
	}

	for _, tx := range view.Page {
		response.Transactions = append(response.Transactions, toTransactionResponse(tx))
	}
	return response
}

func toTransactionResponse(tx ledger.Transaction) dto.TransactionResponse {
	response := dto.TransactionResponse{
		Fields:         tx.Fields,
		Amount:         tx.Amount,
		IsDebit:        tx.IsDebit,
		DisplayAmount:  tx.DisplayAmount,
		RunningBalance: tx.RunningBalance,
		DisplayBalance: tx.DisplayBalance,
	}
	if !tx.Date.IsZero() {
		response.Date = tx.Date.Format(time.RFC3339)
	}
	return response
}

func toFiltersResponse(f ledger.FilterSet) dto.FiltersResponse {
	response := dto.FiltersResponse{
		SearchText:      f.SearchText,
		TransactionType: string(f.Type),
		Active:          f.Active(),
	}
	if response.TransactionType == "" {
		response.TransactionType = string(ledger.TypeAll)
	}
	if f.StartDate != nil {
		response.StartDate = f.StartDate.Format(filterDateLayout)
	}
	if f.EndDate != nil {
		response.EndDate = f.EndDate.Format(filterDateLayout)
	}
	if f.MinAmount != nil {
		response.MinAmount = f.MinAmount.String()
	}
	if f.MaxAmount != nil {
		response.MaxAmount = f.MaxAmount.String()
	}
	return response
}
