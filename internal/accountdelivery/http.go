// Package accountdelivery manages delivery layer of accounts.
package accountdelivery

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/monteverde/bank-backoffice/internal/domain"
	"github.com/monteverde/bank-backoffice/pkg/errorspkg"
	"github.com/monteverde/bank-backoffice/pkg/web"
)

const dateLayout = "2006-01-02"

// Service provides service layer interface needed by account delivery layer.
//
//go:generate mockgen -source http.go -destination http_mock.go -package accountdelivery
type Service interface {
	Open(ctx context.Context, customerDocument string, openedAt time.Time, initialBalance, accessSecret string) (domain.Account, error)
	Get(ctx context.Context, number int64) (domain.Account, error)
	List(ctx context.Context, pageSize, pageID int32) ([]domain.Account, error)
	Deposit(ctx context.Context, number int64, amount string) (domain.Account, error)
	Withdraw(ctx context.Context, number int64, amount string) (domain.Account, error)
	UpdateAccessSecret(ctx context.Context, number int64, newSecret string) (domain.Account, error)
	Close(ctx context.Context, number int64) error
}

// Handler facilitates account delivery layer logic.
type Handler struct {
	service Service
}

// NewHandler returns account handler.
func NewHandler(as Service) Handler {
	return Handler{service: as}
}

type data struct {
	Account domain.Account `json:"account"`
}

type createRequest struct {
	CustomerDocument string `json:"customer_document" binding:"required"`
	OpenedAt         string `json:"opened_at" binding:"required,datetime=2006-01-02"`
	InitialBalance   string `json:"initial_balance" binding:"required"`
	AccessSecret     string `json:"access_secret" binding:"required"`
}

// Create handles http request to open an account.
func (h *Handler) Create(gctx *gin.Context) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(ctx)

	var req createRequest
	if err := gctx.ShouldBindJSON(&req); err != nil {
		l.Info().Err(err).Send()

		var ve validator.ValidationErrors
		if errors.As(err, &ve) {
			gctx.JSON(http.StatusBadRequest, web.Response{Error: web.GetErrorMsg(ve)})
			return
		}

		gctx.JSON(http.StatusBadRequest, web.Error(err))

		return
	}

	openedAt, err := time.Parse(dateLayout, req.OpenedAt)
	if err != nil {
		gctx.JSON(http.StatusBadRequest, web.Error(err))
		return
	}

	account, err := h.service.Open(ctx, req.CustomerDocument, openedAt, req.InitialBalance, req.AccessSecret)
	if err != nil {
		switch err {
		case domain.ErrInvalidAmount, domain.ErrNegativeBalance, domain.ErrSecretTooShort:
			gctx.JSON(http.StatusBadRequest, web.Error(err))
			return
		case domain.ErrCustomerNotFound:
			gctx.JSON(http.StatusBadRequest, web.Error(err))
			return
		case domain.ErrAccountNumberTaken:
			gctx.JSON(http.StatusConflict, web.Error(err))
			return
		}

		gctx.JSON(http.StatusInternalServerError, web.Error(errorspkg.ErrInternal))

		return
	}

	gctx.JSON(http.StatusCreated, web.Response{Data: data{account}})
}

type getRequest struct {
	Number int64 `uri:"number" binding:"required,min=1"`
}

// Get handles http request to get an account by its number.
func (h *Handler) Get(gctx *gin.Context) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(ctx)

	var req getRequest
	if err := gctx.ShouldBindUri(&req); err != nil {
		l.Info().Err(err).Send()
		gctx.JSON(http.StatusBadRequest, web.Error(err))

		return
	}

	account, err := h.service.Get(ctx, req.Number)
	if err != nil {
		if err == domain.ErrAccountNotFound {
			gctx.JSON(http.StatusNotFound, web.Error(err))
			return
		}

		gctx.JSON(http.StatusInternalServerError, web.Error(errorspkg.ErrInternal))

		return
	}

	gctx.JSON(http.StatusOK, web.Response{Data: data{account}})
}

type listRequest struct {
	PageID   int32 `form:"page_id" binding:"required,min=1"`
	PageSize int32 `form:"page_size" binding:"required,min=1,max=100"`
}

type dataAccounts struct {
	Accounts []domain.Account `json:"accounts"`
}

// List handles http request to list accounts.
func (h *Handler) List(gctx *gin.Context) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(ctx)

	var req listRequest
	if err := gctx.ShouldBindQuery(&req); err != nil {
		l.Info().Err(err).Send()

		var ve validator.ValidationErrors
		if errors.As(err, &ve) {
			gctx.JSON(http.StatusBadRequest, web.Response{Error: web.GetErrorMsg(ve)})
			return
		}

		gctx.JSON(http.StatusBadRequest, web.Error(err))

		return
	}

	accounts, err := h.service.List(ctx, req.PageSize, req.PageID)
	if err != nil {
		gctx.JSON(http.StatusInternalServerError, web.Error(errorspkg.ErrInternal))
		return
	}

	gctx.JSON(http.StatusOK, web.Response{Data: dataAccounts{accounts}})
}

type moveMoneyRequest struct {
	AccountNumber int64  `json:"account_number" binding:"required,min=1"`
	Amount        string `json:"amount" binding:"required"`
}

// Deposit handles http request to deposit money into an account.
func (h *Handler) Deposit(gctx *gin.Context) {
	h.moveMoney(gctx, h.service.Deposit)
}

// Withdraw handles http request to withdraw money from an account.
func (h *Handler) Withdraw(gctx *gin.Context) {
	h.moveMoney(gctx, h.service.Withdraw)
}

func (h *Handler) moveMoney(gctx *gin.Context, move func(ctx context.Context, number int64, amount string) (domain.Account, error)) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(ctx)

	var req moveMoneyRequest
	if err := gctx.ShouldBindJSON(&req); err != nil {
		l.Info().Err(err).Send()

		var ve validator.ValidationErrors
		if errors.As(err, &ve) {
			gctx.JSON(http.StatusBadRequest, web.Response{Error: web.GetErrorMsg(ve)})
			return
		}

		gctx.JSON(http.StatusBadRequest, web.Error(err))

		return
	}

	account, err := move(ctx, req.AccountNumber, req.Amount)
	if err != nil {
		switch err {
		case domain.ErrInvalidAmount, domain.ErrInsufficientFunds:
			gctx.JSON(http.StatusBadRequest, web.Error(err))
			return
		case domain.ErrAccountNotFound:
			gctx.JSON(http.StatusNotFound, web.Error(err))
			return
		}

		gctx.JSON(http.StatusInternalServerError, web.Error(errorspkg.ErrInternal))

		return
	}

	gctx.JSON(http.StatusOK, web.Response{Data: data{account}})
}

type updateSecretRequest struct {
	NewSecret string `json:"new_secret" binding:"required,min=4"`
}

// UpdateSecret handles http request to replace an account's access secret.
func (h *Handler) UpdateSecret(gctx *gin.Context) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(ctx)

	var uri getRequest
	if err := gctx.ShouldBindUri(&uri); err != nil {
		l.Info().Err(err).Send()
		gctx.JSON(http.StatusBadRequest, web.Error(err))

		return
	}

	var req updateSecretRequest
	if err := gctx.ShouldBindJSON(&req); err != nil {
		l.Info().Err(err).Send()

		var ve validator.ValidationErrors
		if errors.As(err, &ve) {
			gctx.JSON(http.StatusBadRequest, web.Response{Error: web.GetErrorMsg(ve)})
			return
		}

		gctx.JSON(http.StatusBadRequest, web.Error(err))

		return
	}

	account, err := h.service.UpdateAccessSecret(ctx, uri.Number, req.NewSecret)
	if err != nil {
		switch err {
		case domain.ErrSecretTooShort:
			gctx.JSON(http.StatusBadRequest, web.Error(err))
			return
		case domain.ErrAccountNotFound:
			gctx.JSON(http.StatusNotFound, web.Error(err))
			return
		}

		gctx.JSON(http.StatusInternalServerError, web.Error(errorspkg.ErrInternal))

		return
	}

	gctx.JSON(http.StatusOK, web.Response{Data: data{account}})
}

// Close handles http request to close an account.
func (h *Handler) Close(gctx *gin.Context) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(ctx)

	var req getRequest
	if err := gctx.ShouldBindUri(&req); err != nil {
		l.Info().Err(err).Send()
		gctx.JSON(http.StatusBadRequest, web.Error(err))

		return
	}

	if err := h.service.Close(ctx, req.Number); err != nil {
		switch err {
		case domain.ErrNonZeroBalance:
			gctx.JSON(http.StatusBadRequest, web.Error(err))
			return
		case domain.ErrAccountNotFound:
			gctx.JSON(http.StatusNotFound, web.Error(err))
			return
		}

		gctx.JSON(http.StatusInternalServerError, web.Error(errorspkg.ErrInternal))

		return
	}

	gctx.JSON(http.StatusOK, web.Response{Data: gin.H{"message": "account closed"}})
}
