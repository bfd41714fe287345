package controllers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yeremiapane/palmpay-kiosk/models"
	"github.com/yeremiapane/palmpay-kiosk/utils"
)

type OrderController struct {
	DB *gorm.DB
}

func NewOrderController(db *gorm.DB) *OrderController {
	return &OrderController{DB: db}
}

func newOrderReference() string {
	return fmt.Sprintf("ORD-%s", strings.ToUpper(uuid.NewString()[:8]))
}

// CreateOrder -> order plus its items as one atomic insert.
// Line prices are taken from the payload as-is; the catalog is not consulted
// again, so the stored price is a snapshot of what the kiosk displayed.
func (oc *OrderController) CreateOrder(c *gin.Context) {
	type itemReq struct {
		ProductID uint `json:"productId" binding:"required"`
		Quantity  int  `json:"quantity" binding:"required"`
		// Price arrives as a number or a numeric string depending on the
		// kiosk firmware version.
		Price json.Number `json:"price"`
	}

	type reqBody struct {
		CustomerID   *uint     `json:"customerId"`
		CustomerName string    `json:"customerName"`
		Items        []itemReq `json:"items"`
		PalmDeviceID *uint     `json:"palmDeviceId"`
	}

	var req reqBody
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	if len(req.Items) == 0 {
		utils.RespondError(c, http.StatusBadRequest, errors.New("order needs at least one item"))
		return
	}
	if req.PalmDeviceID == nil {
		utils.RespondError(c, http.StatusBadRequest, errors.New("palmDeviceId is required"))
		return
	}

	var total float64
	items := make([]models.OrderItem, 0, len(req.Items))
	for _, item := range req.Items {
		price, err := item.Price.Float64()
		if err != nil {
			utils.RespondError(c, http.StatusBadRequest, fmt.Errorf("invalid price %q", item.Price))
			return
		}
		total += price * float64(item.Quantity)
		items = append(items, models.OrderItem{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			Price:     price,
			CreatedAt: time.Now(),
			UpdatedAt: time.Now(),
		})
	}

	order := models.Order{
		Reference:    newOrderReference(),
		CustomerID:   req.CustomerID,
		CustomerName: req.CustomerName,
		Status:       models.OrderStatusPending,
		TotalAmount:  total,
		PalmDeviceID: req.PalmDeviceID,
		OrderItems:   items,
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}

	// Create inserts the order and its items in a single transaction
	if err := oc.DB.Create(&order).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	var created models.Order
	if err := oc.DB.Preload("OrderItems.Product").
		Preload("OrderItems").
		Preload("Customer").
		First(&created, order.ID).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.InfoLogger.Printf("Order %s created (ID=%d, total=%.2f, device=%d)",
		created.Reference, created.ID, created.TotalAmount, *req.PalmDeviceID)

	c.JSON(http.StatusOK, gin.H{"order": created})
}

// GetAllOrders -> optional status filter and case-insensitive substring
// match on customerName, newest first
func (oc *OrderController) GetAllOrders(c *gin.Context) {
	query := oc.DB.Preload("OrderItems.Product").
		Preload("OrderItems").
		Preload("Customer").
		Order("created_at desc")

	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}
	if name := c.Query("customerName"); name != "" {
		query = query.Where("LOWER(customer_name) LIKE ?", "%"+strings.ToLower(name)+"%")
	}

	var orders []models.Order
	if err := query.Find(&orders).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"orders": orders})
}

// GetNextPendingOrder -> the globally oldest pending order, no device
// scoping and no auth. Two devices polling at the same time can both be
// handed the same order; the second complete call simply overwrites the
// status again.
func (oc *OrderController) GetNextPendingOrder(c *gin.Context) {
	var order models.Order
	err := oc.DB.Preload("OrderItems.Product").
		Preload("OrderItems").
		Preload("Customer").
		Where("status = ?", models.OrderStatusPending).
		Order("created_at asc").
		First(&order).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusOK, gin.H{"order": nil})
			return
		}
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"order": order})
}

// CompleteOrder -> sets status and completedAt. The customer link is left
// untouched: writing customerId here used to trip the foreign key whenever
// the kiosk sent an id with no matching customer row. A customerName
// overwrite is still accepted.
func (oc *OrderController) CompleteOrder(c *gin.Context) {
	idStr := c.Param("order_id")
	id, _ := strconv.Atoi(idStr)

	var order models.Order
	if err := oc.DB.First(&order, id).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	type reqBody struct {
		Status       *string `json:"status"`
		CustomerName *string `json:"customerName"`
	}

	var req reqBody
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			utils.RespondError(c, http.StatusBadRequest, err)
			return
		}
	}

	order.Status = models.OrderStatusCompleted
	if req.Status != nil && *req.Status != "" {
		order.Status = *req.Status
	}
	if req.CustomerName != nil {
		order.CustomerName = *req.CustomerName
	}
	now := time.Now()
	order.CompletedAt = &now
	order.UpdatedAt = now

	if err := oc.DB.Save(&order).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.InfoLogger.Printf("Order %d marked %s", order.ID, order.Status)

	c.JSON(http.StatusOK, gin.H{
		"order":   order,
		"message": fmt.Sprintf("Order %d marked %s", order.ID, order.Status),
	})
}
