package http

import (
	"crypto/subtle"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"appointer/internal/config"
	"appointer/internal/core/domain"
	"appointer/internal/core/json_types"
	"appointer/internal/core/ports/in"
	"appointer/internal/core/ports/out"
	"appointer/internal/utils"
)

type WeekViewController struct {
	useCase  in.WeekViewUseCase
	cfg      *config.Config
	logger   out.LoggerPort
	location *time.Location
}

func NewWeekViewController(useCase in.WeekViewUseCase, cfg *config.Config, logger out.LoggerPort) *WeekViewController {
	return &WeekViewController{
		useCase:  useCase,
		cfg:      cfg,
		logger:   logger,
		location: cfg.App.Location,
	}
}

func (c *WeekViewController) RegisterRoutes(router *gin.Engine) {
	api := router.Group("/api/v1")
	api.Use(c.basicAuth())
	{
		api.GET("/booking-types", c.listBookingTypes)
		api.GET("/week-view/:bookingType/:date", c.weekView)
		api.POST("/slots/check/:bookingType", c.checkSlot)
	}
}

type BookingTypeResponse struct {
	ID          string `json:"id"`
	Label       string `json:"label"`
	Description string `json:"description"`
	Location    string `json:"location"`
	Duration    int    `json:"duration"`
}

func (c *WeekViewController) listBookingTypes(ctx *gin.Context) {
	policies := c.useCase.BookingTypes()

	response := make([]BookingTypeResponse, 0, len(policies))
	for _, policy := range policies {
		response = append(response, BookingTypeResponse{
			ID:          policy.ID,
			Label:       policy.Label,
			Description: policy.Description,
			Location:    policy.Location,
			Duration:    policy.DurationMinutes,
		})
	}

	ctx.JSON(http.StatusOK, gin.H{"bookingTypes": response})
}

func (c *WeekViewController) weekView(ctx *gin.Context) {
	requestID := uuid.New()
	bookingTypeID := ctx.Param("bookingType")

	date, err := utils.ParseISODate(ctx.Param("date"), c.location)
	if err != nil {
		ctx.JSON(http.StatusNotFound, gin.H{"error": "date does not exist"})
		return
	}

	grid, err := c.useCase.GenerateWeekView(ctx.Request.Context(), bookingTypeID, date)
	if err != nil {
		c.abortWithUseCaseError(ctx, requestID, err)
		return
	}

	prevDate, nextDate := c.weekNavigation(bookingTypeID, grid.Monday)

	response := gin.H{
		"monday":           json_types.Date{Time: grid.Monday},
		"weekdays":         weekdayNames(grid.Weekdays),
		"rows":             grid.Rows,
		"hasAvailableSlot": grid.HasAvailableSlot,
	}
	if prevDate != nil {
		response["prevDate"] = json_types.Date{Time: *prevDate}
	}
	if nextDate != nil {
		response["nextDate"] = json_types.Date{Time: *nextDate}
	}

	ctx.JSON(http.StatusOK, response)
}

type CheckSlotRequest struct {
	Start string `json:"start" binding:"required"`
	End   string `json:"end"`
}

func (c *WeekViewController) checkSlot(ctx *gin.Context) {
	requestID := uuid.New()
	bookingTypeID := ctx.Param("bookingType")

	var req CheckSlotRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	start, err := time.Parse(time.RFC3339, req.Start)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid start format"})
		return
	}

	var end time.Time
	if req.End != "" {
		end, err = time.Parse(time.RFC3339, req.End)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid end format"})
			return
		}
	}

	slot, err := c.useCase.CheckSlot(ctx.Request.Context(), bookingTypeID, start, end)
	if err != nil {
		c.abortWithUseCaseError(ctx, requestID, err)
		return
	}

	ctx.JSON(http.StatusOK, slot)
}

// weekNavigation считает якоря соседних недель. Ссылка назад исчезает,
// когда предыдущая неделя целиком в прошлом, ссылка вперед - когда
// следующая неделя за горизонтом бронирования
func (c *WeekViewController) weekNavigation(bookingTypeID string, monday time.Time) (prev, next *time.Time) {
	policy, err := c.useCase.BookingPolicy(bookingTypeID)
	if err != nil {
		return nil, nil
	}

	now := time.Now().In(c.location)

	prevDate := monday.AddDate(0, 0, -7)
	if !prevDate.Before(utils.MondayOf(now)) {
		prev = &prevDate
	}

	nextDate := monday.AddDate(0, 0, 7)
	if policy.FutureLimitDays == 0 || !nextDate.After(now.AddDate(0, 0, policy.FutureLimitDays)) {
		next = &nextDate
	}

	return prev, next
}

func (c *WeekViewController) abortWithUseCaseError(ctx *gin.Context, requestID uuid.UUID, err error) {
	if errors.Is(err, domain.ErrUnknownBookingType) {
		ctx.JSON(http.StatusNotFound, gin.H{"error": "unknown booking type"})
		return
	}
	if errors.Is(err, domain.ErrDateNotFound) {
		ctx.JSON(http.StatusNotFound, gin.H{"error": "date does not exist"})
		return
	}

	c.logger.Error("http.request.failed", out.LogFields{
		"requestId": requestID,
		"path":      ctx.FullPath(),
		"error":     err.Error(),
	})
	ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
}

func weekdayNames(weekdays []time.Weekday) []string {
	names := make([]string, 0, len(weekdays))
	for _, weekday := range weekdays {
		names = append(names, string(domain.WeekdayCodeFor(weekday)))
	}
	return names
}

func (c *WeekViewController) basicAuth() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		username, password, hasAuth := ctx.Request.BasicAuth()
		if !hasAuth {
			ctx.Header("WWW-Authenticate", "Basic realm=Authorization Required")
			ctx.AbortWithStatus(http.StatusUnauthorized)
			return
		}

		for _, client := range c.cfg.Auth.BasicClients {
			if subtle.ConstantTimeCompare([]byte(username), []byte(client.Username)) == 1 &&
				subtle.ConstantTimeCompare([]byte(password), []byte(client.Password)) == 1 {
				ctx.Next()
				return
			}
		}

		ctx.Header("WWW-Authenticate", "Basic realm=Authorization Required")
		ctx.AbortWithStatus(http.StatusUnauthorized)
	}
}
