package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/ledgerview/ledgerview/internal/api/dto"
	"github.com/ledgerview/ledgerview/internal/bookkeeper"
	"github.com/ledgerview/ledgerview/internal/directory"
	"github.com/ledgerview/ledgerview/internal/review"
)

// AccountsHandler serves the account directory.
type AccountsHandler struct {
	directory *directory.Service
	session   *review.Session
}

// NewAccountsHandler creates the accounts handler.
func NewAccountsHandler(dir *directory.Service, session *review.Session) *AccountsHandler {
	return &AccountsHandler{directory: dir, session: session}
}

// List handles GET /api/accounts. With ?refresh=1 the directory is
// re-fetched first; if that fails, the stale list is still returned along
// with the error message.
func (h *AccountsHandler) List(c *gin.Context) {
	var refreshErr error
	if c.Query("refresh") == "1" {
		refreshErr = h.directory.Refresh(c.Request.Context())
	}

	state := h.directory.State()
	response := dto.AccountListResponse{
		Accounts:   make([]dto.AccountResponse, 0, len(state.Accounts)),
		SelectedID: state.SelectedID,
	}
	for _, a := range state.Accounts {
		response.Accounts = append(response.Accounts, dto.AccountResponse{ID: a.ID, Name: a.Name})
	}

	if refreshErr != nil && len(response.Accounts) == 0 {
		writeServiceError(c, refreshErr)
		return
	}
	c.JSON(http.StatusOK, response)
}

// Create handles POST /api/accounts. Required fields are checked locally
// before the remote call; a directory refresh failure after a successful
// creation does not fail the request.
func (h *AccountsHandler) Create(c *gin.Context) {
	var req dto.CreateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.BadRequestError("invalid request body"))
		return
	}

	if req.AccountName == "" {
		c.JSON(http.StatusBadRequest, dto.ValidationError("account name is required"))
		return
	}
	if req.StartingDate != "" {
		if _, err := time.Parse("2006-01-02", req.StartingDate); err != nil {
			c.JSON(http.StatusBadRequest, dto.ValidationError("starting date must be YYYY-MM-DD"))
			return
		}
	}

	id, err := h.directory.Create(c.Request.Context(), bookkeeper.AccountDraft{
		Name:            req.AccountName,
		HolderFirst:     req.FirstName,
		HolderLast:      req.LastName,
		StartingBalance: req.StartingBalance,
		StartingDate:    req.StartingDate,
	})
	if err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.CreateAccountResponse{
		AccountID: id,
		Message:   "Account created with ID " + id,
	})
}

// Select handles POST /api/accounts/select. Selecting an account triggers
// the transaction fetch; the outcome lands in the view state either way, so
// the response is the derived view rather than an error.
func (h *AccountsHandler) Select(c *gin.Context) {
	var req dto.SelectAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.BadRequestError("invalid request body"))
		return
	}

	if req.AccountID != "" {
		if _, ok := h.directory.Get(req.AccountID); !ok {
			c.JSON(http.StatusNotFound, dto.NotFoundError("account"))
			return
		}
	}

	h.directory.Select(req.AccountID)
	_ = h.session.Select(c.Request.Context(), req.AccountID)

	c.JSON(http.StatusOK, toViewResponse(h.session.View(), h.directory))
}
