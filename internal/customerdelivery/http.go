// Package customerdelivery manages delivery layer of customers.
package customerdelivery

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

// Service provides service layer interface needed by customer delivery layer.
//
//go:generate mockgen -source http.go -destination http_mock.go -package customerdelivery
type Service interface {
	Create(ctx context.Context, document, fullName, phone string, birthDate time.Time) (domain.Customer, error)
	List(ctx context.Context, pageSize, pageID int32) ([]domain.Customer, error)
	Update(ctx context.Context, document, fullName, phone string, birthDate time.Time) (domain.Customer, error)
	Delete(ctx context.Context, document string) error
}

// Handler facilitates customer delivery layer logic.
type Handler struct {
	service Service
}

// NewHandler returns customer handler.
func NewHandler(cs Service) Handler {
	return Handler{service: cs}
}

type data struct {
	Customer domain.Customer `json:"customer"`
}

type customerBody struct {
	Document  string `json:"document" binding:"required"`
	FullName  string `json:"full_name" binding:"required"`
	Phone     string `json:"phone" binding:"required,numeric,min=10,max=15"`
	BirthDate string `json:"birth_date" binding:"required,datetime=2006-01-02"`
}

// Create handles http request to register a customer.
func (h *Handler) Create(gctx *gin.Context) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(ctx)

	var req customerBody
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

	birthDate, err := time.Parse(dateLayout, req.BirthDate)
	if err != nil {
		gctx.JSON(http.StatusBadRequest, web.Error(err))
		return
	}

	customer, err := h.service.Create(ctx, req.Document, req.FullName, req.Phone, birthDate)
	if err != nil {
		if err == domain.ErrDocumentAlreadyExists {
			gctx.JSON(http.StatusConflict, web.Error(err))
			return
		}

		gctx.JSON(http.StatusInternalServerError, web.Error(errorspkg.ErrInternal))

		return
	}

	gctx.JSON(http.StatusCreated, web.Response{Data: data{customer}})
}

type listRequest struct {
	PageID   int32 `form:"page_id" binding:"required,min=1"`
	PageSize int32 `form:"page_size" binding:"required,min=1,max=100"`
}

type dataCustomers struct {
	Customers []domain.Customer `json:"customers"`
}

// List handles http request to list customers.
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

	customers, err := h.service.List(ctx, req.PageSize, req.PageID)
	if err != nil {
		gctx.JSON(http.StatusInternalServerError, web.Error(errorspkg.ErrInternal))
		return
	}

	gctx.JSON(http.StatusOK, web.Response{Data: dataCustomers{customers}})
}

type documentURI struct {
	Document string `uri:"document" binding:"required"`
}

type updateRequest struct {
	FullName  string `json:"full_name" binding:"required"`
	Phone     string `json:"phone" binding:"required,numeric,min=10,max=15"`
	BirthDate string `json:"birth_date" binding:"required,datetime=2006-01-02"`
}

// Update handles http request to update a customer.
func (h *Handler) Update(gctx *gin.Context) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(ctx)

	var uri documentURI
	if err := gctx.ShouldBindUri(&uri); err != nil {
		l.Info().Err(err).Send()
		gctx.JSON(http.StatusBadRequest, web.Error(err))

		return
	}

	var req updateRequest
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

	birthDate, err := time.Parse(dateLayout, req.BirthDate)
	if err != nil {
		gctx.JSON(http.StatusBadRequest, web.Error(err))
		return
	}

	customer, err := h.service.Update(ctx, uri.Document, req.FullName, req.Phone, birthDate)
	if err != nil {
		if err == domain.ErrCustomerNotFound {
			gctx.JSON(http.StatusNotFound, web.Error(err))
			return
		}

		gctx.JSON(http.StatusInternalServerError, web.Error(errorspkg.ErrInternal))

		return
	}

	gctx.JSON(http.StatusOK, web.Response{Data: data{customer}})
}

// Delete handles http request to delete a customer.
func (h *Handler) Delete(gctx *gin.Context) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(ctx)

	var uri documentURI
	if err := gctx.ShouldBindUri(&uri); err != nil {
		l.Info().Err(err).Send()
		gctx.JSON(http.StatusBadRequest, web.Error(err))

		return
	}

	if err := h.service.Delete(ctx, uri.Document); err != nil {
		if err == domain.ErrCustomerNotFound {
			gctx.JSON(http.StatusNotFound, web.Error(err))
			return
		}

		gctx.JSON(http.StatusInternalServerError, web.Error(errorspkg.ErrInternal))

		return
	}

	gctx.JSON(http.StatusOK, web.Response{Data: gin.H{"message": "customer deleted"}})
}
