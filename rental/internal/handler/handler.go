package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/pkg/errors"
	echoSwagger "github.com/swaggo/echo-swagger"
	"go.uber.org/zap"

	md "github.com/Astemirdum/rental-service/pkg/middleware"
	"github.com/Astemirdum/rental-service/pkg/validate"
	"github.com/Astemirdum/rental-service/rental/internal/errs"
	"github.com/Astemirdum/rental-service/rental/internal/model"
	_ "github.com/Astemirdum/rental-service/swagger"
)

type Handler struct {
	rentalSvc RentalService
	log       *zap.Logger
}

func New(rentalSvc RentalService, log *zap.Logger) *Handler {
	return &Handler{
		rentalSvc: rentalSvc,
		log:       log.Named("handler"),
	}
}

func (h *Handler) NewRouter() *echo.Echo {
	e := echo.New()
	const (
		baseRPS = 10
		apiRPS  = 100
	)
	e.Use(middleware.RecoverWithConfig(middleware.RecoverConfig{
		StackSize: 4 << 10, // 4 KB
	}))
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{http.MethodGet, http.MethodOptions, http.MethodHead, http.MethodPost},
		AllowHeaders: []string{echo.HeaderContentType, md.XEmployeeIDHeader},
	}))

	base := e.Group("", md.NewRateLimiter(baseRPS))
	base.GET("/manage/health", h.Health)
	base.GET("/swagger/*", echoSwagger.WrapHandler)

	e.Validator = validate.NewCustomValidator()
	api := e.Group("/api/v1",
		middleware.RequestLoggerWithConfig(md.RequestLoggerConfig(h.log)),
		middleware.RequestID(),
		md.NewRateLimiter(apiRPS),
		md.EmployeeContext,
	)

	api.POST("/rentals/check-out", h.CheckOut)
	api.POST("/rentals/:rentalId/check-in", h.CheckIn)
	api.GET("/rentals/:rentalId", h.GetRental)
	api.GET("/rentals/:rentalId/charges", h.GetAdditionalCharges)
	api.GET("/rentals/:rentalId/inspections", h.GetInspections)
	api.GET("/rentals/:rentalId/inspections/compare", h.CompareInspections)

	return e
}

func (h *Handler) Health(c echo.Context) error {
	return c.String(http.StatusOK, "OK")
}

// CheckOut godoc
// @Summary  Hand a reserved vehicle over to the customer
// @Tags     rentals
// @Accept   json
// @Produce  json
// @Param    X-Employee-Id header int false "operator id, used when the body omits employeeId"
// @Param    request body model.CheckOutRequest true "check-out"
// @Success  201 {object} model.Rental
// @Failure  400,404,409 {object} errs.ErrorResponse
// @Router   /rentals/check-out [post]
func (h *Handler) CheckOut(c echo.Context) error {
	var req model.CheckOutRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if req.EmployeeID == 0 {
		req.EmployeeID, _ = md.EmployeeID(c.Request().Context())
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	rental, err := h.rentalSvc.CheckOut(c.Request().Context(), req)
	if err != nil {
		return h.httpError(err)
	}
	return c.JSON(http.StatusCreated, rental)
}

// CheckIn godoc
// @Summary  Take the vehicle back and compute additional charges
// @Tags     rentals
// @Accept   json
// @Produce  json
// @Param    rentalId path int true "rental id"
// @Param    request body model.CheckInRequest true "check-in"
// @Success  200 {object} model.CheckInResult
// @Failure  400,404,409 {object} errs.ErrorResponse
// @Router   /rentals/{rentalId}/check-in [post]
func (h *Handler) CheckIn(c echo.Context) error {
	var req model.CheckInRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if req.EmployeeID == 0 {
		req.EmployeeID, _ = md.EmployeeID(c.Request().Context())
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	res, err := h.rentalSvc.CheckIn(c.Request().Context(), req)
	if err != nil {
		return h.httpError(err)
	}
	return c.JSON(http.StatusOK, res)
}

// @Summary  Get a rental
// @Tags     rentals
// @Produce  json
// @Param    rentalId path int true "rental id"
// @Success  200 {object} model.Rental
// @Failure  400,404 {object} errs.ErrorResponse
// @Router   /rentals/{rentalId} [get]
func (h *Handler) GetRental(c echo.Context) error {
	id, err := rentalID(c)
	if err != nil {
		return err
	}
	rental, err := h.rentalSvc.GetRental(c.Request().Context(), id)
	if err != nil {
		return h.httpError(err)
	}
	return c.JSON(http.StatusOK, rental)
}

// GetAdditionalCharges returns the itemized charges. For an open rental the
// optional endKilometers and endFuelLevel query parameters preview a return now.
//
// @Summary  Itemized additional charges
// @Tags     rentals
// @Produce  json
// @Param    rentalId path int true "rental id"
// @Param    endKilometers query int false "preview odometer reading"
// @Param    endFuelLevel query string false "preview fuel level"
// @Success  200 {object} model.Charges
// @Failure  400,404 {object} errs.ErrorResponse
// @Router   /rentals/{rentalId}/charges [get]
func (h *Handler) GetAdditionalCharges(c echo.Context) error {
	id, err := rentalID(c)
	if err != nil {
		return err
	}
	var preview model.ChargesPreview
	if raw := c.QueryParam("endKilometers"); raw != "" {
		km, err := strconv.Atoi(raw)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "endKilometers is invalid")
		}
		preview.EndKilometers = &km
	}
	if raw := c.QueryParam("endFuelLevel"); raw != "" {
		lvl := model.FuelLevel(raw)
		if !lvl.Valid() {
			return echo.NewHTTPError(http.StatusBadRequest, "endFuelLevel is invalid")
		}
		preview.EndFuelLevel = &lvl
	}
	charges, err := h.rentalSvc.GetAdditionalCharges(c.Request().Context(), id, preview)
	if err != nil {
		return h.httpError(err)
	}
	return c.JSON(http.StatusOK, charges)
}

// @Summary  Inspection snapshots of a rental
// @Tags     inspections
// @Produce  json
// @Param    rentalId path int true "rental id"
// @Success  200 {array} model.Inspection
// @Failure  400,404 {object} errs.ErrorResponse
// @Router   /rentals/{rentalId}/inspections [get]
func (h *Handler) GetInspections(c echo.Context) error {
	id, err := rentalID(c)
	if err != nil {
		return err
	}
	items, err := h.rentalSvc.GetInspections(c.Request().Context(), id)
	if err != nil {
		return h.httpError(err)
	}
	return c.JSON(http.StatusOK, items)
}

// @Summary  Discrepancies between check-out and check-in inspections
// @Tags     inspections
// @Produce  json
// @Param    rentalId path int true "rental id"
// @Success  200 {object} model.Comparison
// @Failure  400,404 {object} errs.ErrorResponse
// @Router   /rentals/{rentalId}/inspections/compare [get]
func (h *Handler) CompareInspections(c echo.Context) error {
	id, err := rentalID(c)
	if err != nil {
		return err
	}
	cmp, err := h.rentalSvc.CompareInspections(c.Request().Context(), id)
	if err != nil {
		return h.httpError(err)
	}
	return c.JSON(http.StatusOK, cmp)
}

func rentalID(c echo.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("rentalId"), 10, 64)
	if err != nil || id <= 0 {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "rentalId is invalid")
	}
	return id, nil
}

func (h *Handler) httpError(err error) error {
	switch {
	case errors.Is(err, errs.ErrValidation):
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	case errors.Is(err, errs.ErrNotFound):
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	case errors.Is(err, errs.ErrInvalidState),
		errors.Is(err, errs.ErrAlreadyCheckedOut),
		errors.Is(err, errs.ErrConcurrentUpdate),
		errors.Is(err, errs.ErrInspectionExists):
		return echo.NewHTTPError(http.StatusConflict, err.Error())
	}
	h.log.Error("internal", zap.Error(err))
	return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
}
