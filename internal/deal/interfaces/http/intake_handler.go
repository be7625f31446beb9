package http

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
	"github.com/wyfcoding/pkg/response"

	"github.com/wyfcoding/dealflow/internal/deal/application"
	"github.com/wyfcoding/dealflow/internal/deal/domain"
)

var maxDealAmount = decimal.NewFromInt(10_000_000)

// IntakeHandler 进件 HTTP 处理器
type IntakeHandler struct {
	service *application.IntakeService
}

func NewIntakeHandler(service *application.IntakeService) *IntakeHandler {
	return &IntakeHandler{service: service}
}

func (h *IntakeHandler) RegisterRoutes(router *gin.Engine) {
	api := router.Group("/api/v1")
	{
		api.POST("/deals", h.SubmitDeal)
		api.GET("/deals/:id", h.GetDeal)
	}
}

// SubmitDealReq 进件请求体
type SubmitDealReq struct {
	EquipmentType string          `json:"equipment_type" binding:"required,max=100"`
	EquipmentYear int             `json:"equipment_year" binding:"required,gte=1990"`
	Amount        decimal.Decimal `json:"amount"`
	TermMonths    int             `json:"term_months" binding:"required,gte=6,lte=120"`
	Industry      string          `json:"industry" binding:"required,max=100"`
	Province      string          `json:"province" binding:"required,max=50"`
	CreditRating  string          `json:"credit_rating" binding:"required,oneof=CR1 CR2 CR3 CR4 CR5"`

	AppNumber                *int             `json:"app_number"`
	CustomerLegalName        *string          `json:"customer_legal_name" binding:"omitempty,max=200"`
	PrimaryVendor            *string          `json:"primary_vendor" binding:"omitempty,max=200"`
	DealFormat               *string          `json:"deal_format" binding:"omitempty,oneof=VENDOR BROKER"`
	Lessor                   *string          `json:"lessor" binding:"omitempty,max=100"`
	AccountManager           *string          `json:"account_manager" binding:"omitempty,max=100"`
	PrimaryEquipmentCategory *string          `json:"primary_equipment_category" binding:"omitempty,max=100"`
	EquipmentCost            *decimal.Decimal `json:"equipment_cost"`
	GrossContract            *decimal.Decimal `json:"gross_contract"`
	NetInvest                *decimal.Decimal `json:"net_invest"`
	MonthlyPayment           *decimal.Decimal `json:"monthly_payment"`
}

// validate binding 之外的取值域检查，返回字段级错误
func (r *SubmitDealReq) validate() map[string]string {
	fieldErrs := map[string]string{}

	if !r.Amount.IsPositive() {
		fieldErrs["amount"] = "amount must be greater than 0"
	} else if r.Amount.GreaterThan(maxDealAmount) {
		fieldErrs["amount"] = "amount must not exceed 10000000"
	}

	if r.EquipmentYear > time.Now().UTC().Year()+1 {
		fieldErrs["equipment_year"] = fmt.Sprintf("equipment_year must not exceed %d", time.Now().UTC().Year()+1)
	}

	return fieldErrs
}

func (h *IntakeHandler) SubmitDeal(c *gin.Context) {
	var req SubmitDealReq
	if err := c.ShouldBindJSON(&req); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			c.JSON(http.StatusBadRequest, gin.H{"errors": fieldErrorMap(verrs)})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if fieldErrs := req.validate(); len(fieldErrs) > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"errors": fieldErrs})
		return
	}

	cmd := application.SubmitDealCmd{
		EquipmentType:            req.EquipmentType,
		EquipmentYear:            req.EquipmentYear,
		Amount:                   req.Amount,
		TermMonths:               req.TermMonths,
		Industry:                 req.Industry,
		Province:                 req.Province,
		CreditRating:             req.CreditRating,
		AppNumber:                req.AppNumber,
		CustomerLegalName:        req.CustomerLegalName,
		PrimaryVendor:            req.PrimaryVendor,
		DealFormat:               req.DealFormat,
		Lessor:                   req.Lessor,
		AccountManager:           req.AccountManager,
		PrimaryEquipmentCategory: req.PrimaryEquipmentCategory,
		EquipmentCost:            req.EquipmentCost,
		GrossContract:            req.GrossContract,
		NetInvest:                req.NetInvest,
		MonthlyPayment:           req.MonthlyPayment,
	}

	deal, err := h.service.SubmitDeal(c.Request.Context(), cmd)
	if err != nil {
		response.ErrorWithStatus(c, http.StatusInternalServerError, err.Error(), "")
		return
	}

	c.Header("Location", "/api/v1/deals/"+deal.DealID)
	c.JSON(http.StatusCreated, deal)
}

func (h *IntakeHandler) GetDeal(c *gin.Context) {
	id := c.Param("id")

	deal, err := h.service.GetDeal(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrDealNotFound) {
			response.ErrorWithStatus(c, http.StatusNotFound, "deal not found", "")
			return
		}
		response.ErrorWithStatus(c, http.StatusInternalServerError, err.Error(), "")
		return
	}

	response.Success(c, deal)
}

// fieldErrorMap 将 validator 错误展开为 field → message
func fieldErrorMap(verrs validator.ValidationErrors) map[string]string {
	out := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		switch fe.Tag() {
		case "required":
			out[fe.Field()] = fe.Field() + " is required"
		case "oneof":
			out[fe.Field()] = fmt.Sprintf("%s must be one of: %s", fe.Field(), fe.Param())
		case "max", "lte":
			out[fe.Field()] = fmt.Sprintf("%s must be at most %s", fe.Field(), fe.Param())
		case "min", "gte":
			out[fe.Field()] = fmt.Sprintf("%s must be at least %s", fe.Field(), fe.Param())
		default:
			out[fe.Field()] = fmt.Sprintf("%s is invalid (%s)", fe.Field(), fe.Tag())
		}
	}
	return out
}
