// Package lendingdelivery manages delivery layer of the lending ledger.
//
// The authenticated account of a request is the caller of every ledger
// operation, and the request amount is the native value attached to it.
package lendingdelivery

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/holiman/uint256"
	"github.com/rs/zerolog"

	"github.com/go-petr/bitlease/internal/domain"
	"github.com/go-petr/bitlease/internal/middleware"
	"github.com/go-petr/bitlease/pkg/amountpkg"
	"github.com/go-petr/bitlease/pkg/errorspkg"
	"github.com/go-petr/bitlease/pkg/tokenpkg"
	"github.com/go-petr/bitlease/pkg/web"
)

// Service provides service layer interface needed by lending delivery layer.
//
//go:generate mockgen -source http.go -destination http_mock.go -package lendingdelivery
type Service interface {
	Lend(ctx context.Context, account, currency string, amount *uint256.Int) (domain.LenderPosition, error)
	Borrow(ctx context.Context, account string, arg domain.BorrowParams) (domain.BorrowerPosition, error)
	Withdraw(ctx context.Context, account, currency string, amount *uint256.Int) (domain.Transfer, error)
	PayInterest(ctx context.Context, account, currency string, paid *uint256.Int) (domain.Reserve, error)
	GetPosition(ctx context.Context, account, currency string) (*uint256.Int, bool, error)
	GetLenderPosition(ctx context.Context, account, currency string) (domain.LenderPosition, error)
	GetBorrowerPosition(ctx context.Context, account, currency string) (domain.BorrowerPosition, error)
	InterestDue(ctx context.Context, account, currency string) (*uint256.Int, error)
	GetReserves(ctx context.Context) ([]domain.Reserve, error)
	ListEntries(ctx context.Context, account string, pageSize, pageID int32) ([]domain.Entry, error)
	ListTransfers(ctx context.Context, account string, pageSize, pageID int32) ([]domain.Transfer, error)
	GetTransfer(ctx context.Context, account string, id int64) (domain.Transfer, error)
}

// Handler facilitates lending delivery layer logic.
type Handler struct {
	service Service
}

// NewHandler returns lending handler.
func NewHandler(ls Service) Handler {
	return Handler{service: ls}
}

// ErrPositionNotFound indicates that the account holds no position in the currency.
var ErrPositionNotFound = errors.New("position not found")

var badRequestErrors = []error{
	domain.ErrInvalidAmount,
	domain.ErrUnsupportedCurrency,
	domain.ErrCurrencyMismatch,
	domain.ErrInsufficientLiquidity,
	domain.ErrInsufficientBalance,
	domain.ErrInterestMismatch,
}

// writeError maps a service error to a status code and writes it.
func writeError(gctx *gin.Context, err error) {
	l := zerolog.Ctx(gctx.Request.Context())

	for _, e := range badRequestErrors {
		if errors.Is(err, e) {
			gctx.JSON(http.StatusBadRequest, web.Error(e))
			return
		}
	}

	switch {
	case errors.Is(err, domain.ErrNotALender):
		gctx.JSON(http.StatusNotFound, web.Error(domain.ErrNotALender))
	case errors.Is(err, domain.ErrNotABorrower):
		gctx.JSON(http.StatusNotFound, web.Error(domain.ErrNotABorrower))
	case errors.Is(err, domain.ErrTransferNotFound):
		gctx.JSON(http.StatusNotFound, web.Error(domain.ErrTransferNotFound))
	case errors.Is(err, domain.ErrOverflow):
		gctx.JSON(http.StatusUnprocessableEntity, web.Error(domain.ErrOverflow))
	case errors.Is(err, domain.ErrTransferFailed):
		l.Error().Err(err).Send()
		gctx.JSON(http.StatusBadGateway, web.Error(domain.ErrTransferFailed))
	default:
		l.Error().Err(err).Send()
		gctx.JSON(http.StatusInternalServerError, web.Error(errorspkg.ErrInternal))
	}
}

// bindError writes the 400 response for a request that failed binding.
func bindError(gctx *gin.Context, err error) {
	var (
		ve     validator.ValidationErrors
		errMsg = "invalid request"
	)

	if errors.As(err, &ve) {
		errMsg = web.GetErrorMsg(ve)
	}

	zerolog.Ctx(gctx.Request.Context()).Info().Err(err).Send()
	gctx.JSON(http.StatusBadRequest, web.Response{Error: errMsg})
}

func caller(gctx *gin.Context) string {
	return gctx.MustGet(middleware.AuthPayloadKey).(*tokenpkg.Payload).Account
}

type valueRequest struct {
	Currency string `json:"currency" binding:"required,currency"`
	Amount   string `json:"amount" binding:"required,amount"`
}

// bindValue reads a currency and the attached amount. The amount tag already
// guarantees that it parses.
func bindValue(gctx *gin.Context) (string, *uint256.Int, bool) {
	var req valueRequest
	if err := gctx.ShouldBindJSON(&req); err != nil {
		bindError(gctx, err)
		return "", nil, false
	}

	amount, err := amountpkg.Parse(req.Amount)
	if err != nil {
		bindError(gctx, err)
		return "", nil, false
	}

	return req.Currency, amount, true
}

type lenderResponse struct {
	Data struct {
		Position domain.LenderPosition `json:"position"`
	} `json:"data"`
}

// Lend handles http request to deposit into a pool.
func (h *Handler) Lend(gctx *gin.Context) {
	currency, amount, ok := bindValue(gctx)
	if !ok {
		return
	}

	pos, err := h.service.Lend(gctx.Request.Context(), caller(gctx), currency, amount)
	if err != nil {
		writeError(gctx, err)
		return
	}

	var res lenderResponse
	res.Data.Position = pos

	gctx.JSON(http.StatusOK, res)
}

type borrowRequest struct {
	CollateralCurrency string `json:"collateral_currency" binding:"required,currency"`
	CollateralAmount   string `json:"collateral_amount" binding:"required,amount"`
	BorrowCurrency     string `json:"borrow_currency" binding:"required,currency"`
	BorrowAmount       string `json:"borrow_amount" binding:"required,amount"`
}

type borrowerResponse struct {
	Data struct {
		Position domain.BorrowerPosition `json:"position"`
	} `json:"data"`
}

// Borrow handles http request to borrow from a pool against collateral.
func (h *Handler) Borrow(gctx *gin.Context) {
	var req borrowRequest
	if err := gctx.ShouldBindJSON(&req); err != nil {
		bindError(gctx, err)
		return
	}

	collateral, err := amountpkg.Parse(req.CollateralAmount)
	if err != nil {
		bindError(gctx, err)
		return
	}

	borrowed, err := amountpkg.Parse(req.BorrowAmount)
	if err != nil {
		bindError(gctx, err)
		return
	}

	pos, err := h.service.Borrow(gctx.Request.Context(), caller(gctx), domain.BorrowParams{
		CollateralCurrency: req.CollateralCurrency,
		CollateralAmount:   collateral,
		BorrowCurrency:     req.BorrowCurrency,
		BorrowAmount:       borrowed,
	})
	if err != nil {
		writeError(gctx, err)
		return
	}

	var res borrowerResponse
	res.Data.Position = pos

	gctx.JSON(http.StatusOK, res)
}

type transferResponse struct {
	Data struct {
		Transfer domain.Transfer `json:"transfer"`
	} `json:"data"`
}

// Withdraw handles http request to take a deposit back out of a pool.
func (h *Handler) Withdraw(gctx *gin.Context) {
	currency, amount, ok := bindValue(gctx)
	if !ok {
		return
	}

	t, err := h.service.Withdraw(gctx.Request.Context(), caller(gctx), currency, amount)
	if err != nil {
		writeError(gctx, err)
		return
	}

	var res transferResponse
	res.Data.Transfer = t

	gctx.JSON(http.StatusOK, res)
}

type reserveResponse struct {
	Data struct {
		Reserve domain.Reserve `json:"reserve"`
	} `json:"data"`
}

// PayInterest handles http request to pay interest on a loan.
func (h *Handler) PayInterest(gctx *gin.Context) {
	currency, amount, ok := bindValue(gctx)
	if !ok {
		return
	}

	r, err := h.service.PayInterest(gctx.Request.Context(), caller(gctx), currency, amount)
	if err != nil {
		writeError(gctx, err)
		return
	}

	var res reserveResponse
	res.Data.Reserve = r

	gctx.JSON(http.StatusOK, res)
}

type currencyURI struct {
	Currency string `uri:"currency" binding:"required,currency"`
}

type amountResponse struct {
	Data struct {
		Amount *uint256.Int `json:"amount"`
	} `json:"data"`
}

// GetPosition handles http request to get the caller's principal in a currency.
func (h *Handler) GetPosition(gctx *gin.Context) {
	var req currencyURI
	if err := gctx.ShouldBindUri(&req); err != nil {
		bindError(gctx, err)
		return
	}

	amount, ok, err := h.service.GetPosition(gctx.Request.Context(), caller(gctx), req.Currency)
	if err != nil {
		writeError(gctx, err)
		return
	}

	if !ok {
		gctx.JSON(http.StatusNotFound, web.Error(ErrPositionNotFound))
		return
	}

	var res amountResponse
	res.Data.Amount = amount

	gctx.JSON(http.StatusOK, res)
}

// GetLenderPosition handles http request to get the caller's full lender position.
func (h *Handler) GetLenderPosition(gctx *gin.Context) {
	var req currencyURI
	if err := gctx.ShouldBindUri(&req); err != nil {
		bindError(gctx, err)
		return
	}

	pos, err := h.service.GetLenderPosition(gctx.Request.Context(), caller(gctx), req.Currency)
	if err != nil {
		writeError(gctx, err)
		return
	}

	var res lenderResponse
	res.Data.Position = pos

	gctx.JSON(http.StatusOK, res)
}

// GetBorrowerPosition handles http request to get the caller's full borrower position.
func (h *Handler) GetBorrowerPosition(gctx *gin.Context) {
	var req currencyURI
	if err := gctx.ShouldBindUri(&req); err != nil {
		bindError(gctx, err)
		return
	}

	pos, err := h.service.GetBorrowerPosition(gctx.Request.Context(), caller(gctx), req.Currency)
	if err != nil {
		writeError(gctx, err)
		return
	}

	var res borrowerResponse
	res.Data.Position = pos

	gctx.JSON(http.StatusOK, res)
}

// InterestDue handles http request to get the interest the caller owes per payment.
func (h *Handler) InterestDue(gctx *gin.Context) {
	var req currencyURI
	if err := gctx.ShouldBindUri(&req); err != nil {
		bindError(gctx, err)
		return
	}

	due, err := h.service.InterestDue(gctx.Request.Context(), caller(gctx), req.Currency)
	if err != nil {
		writeError(gctx, err)
		return
	}

	var res amountResponse
	res.Data.Amount = due

	gctx.JSON(http.StatusOK, res)
}

type reservesResponse struct {
	Data struct {
		Reserves []domain.Reserve `json:"reserves"`
	} `json:"data"`
}

// GetReserves handles http request to get pool and interest reserves.
func (h *Handler) GetReserves(gctx *gin.Context) {
	reserves, err := h.service.GetReserves(gctx.Request.Context())
	if err != nil {
		writeError(gctx, err)
		return
	}

	var res reservesResponse
	res.Data.Reserves = reserves

	gctx.JSON(http.StatusOK, res)
}

type listRequest struct {
	PageID   int32 `form:"page_id" binding:"required,min=1"`
	PageSize int32 `form:"page_size" binding:"required,min=1,max=100"`
}

type entriesResponse struct {
	Data struct {
		Entries []domain.Entry `json:"entries"`
	} `json:"data"`
}

// ListEntries handles http request to list the caller's ledger journal.
func (h *Handler) ListEntries(gctx *gin.Context) {
	var req listRequest
	if err := gctx.ShouldBindQuery(&req); err != nil {
		bindError(gctx, err)
		return
	}

	entries, err := h.service.ListEntries(gctx.Request.Context(), caller(gctx), req.PageSize, req.PageID)
	if err != nil {
		writeError(gctx, err)
		return
	}

	var res entriesResponse
	res.Data.Entries = entries

	gctx.JSON(http.StatusOK, res)
}

type transfersResponse struct {
	Data struct {
		Transfers []domain.Transfer `json:"transfers"`
	} `json:"data"`
}

// ListTransfers handles http request to list transfers paid out to the caller.
func (h *Handler) ListTransfers(gctx *gin.Context) {
	var req listRequest
	if err := gctx.ShouldBindQuery(&req); err != nil {
		bindError(gctx, err)
		return
	}

	transfers, err := h.service.ListTransfers(gctx.Request.Context(), caller(gctx), req.PageSize, req.PageID)
	if err != nil {
		writeError(gctx, err)
		return
	}

	var res transfersResponse
	res.Data.Transfers = transfers

	gctx.JSON(http.StatusOK, res)
}

type transferURI struct {
	ID int64 `uri:"id" binding:"required,min=1"`
}

// GetTransfer handles http request to get one transfer paid out to the caller.
func (h *Handler) GetTransfer(gctx *gin.Context) {
	var req transferURI
	if err := gctx.ShouldBindUri(&req); err != nil {
		bindError(gctx, err)
		return
	}

	t, err := h.service.GetTransfer(gctx.Request.Context(), caller(gctx), req.ID)
	if err != nil {
		writeError(gctx, err)
		return
	}

	var res transferResponse
	res.Data.Transfer = t

	gctx.JSON(http.StatusOK, res)
}
