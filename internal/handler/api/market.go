package api

import (
	"errors"
	"time"

	"idxsignal/internal/domain/models"
	"idxsignal/internal/usecase"
	xhttp "idxsignal/pkg/http"
	xlogger "idxsignal/pkg/logger"

	"github.com/labstack/echo/v4"
)

// AppName is the display name reported by the index and health endpoints.
const AppName = "IDX Signal API"

// MarketHandler implements the Echo-based HTTP surface over the signal,
// regime and screener use cases.
type MarketHandler struct {
	logger   *xlogger.Logger
	bars     *usecase.BarService
	signal   *usecase.SignalUseCase
	regime   *usecase.RegimeUseCase
	screener *usecase.ScreenerUseCase
}

func NewMarketHandler(
	logger *xlogger.Logger,
	bars *usecase.BarService,
	signal *usecase.SignalUseCase,
	regime *usecase.RegimeUseCase,
	screener *usecase.ScreenerUseCase,
) *MarketHandler {
	return &MarketHandler{
		logger:   logger,
		bars:     bars,
		signal:   signal,
		regime:   regime,
		screener: screener,
	}
}

func (h *MarketHandler) RegisterRoutes(e *echo.Echo) {
	e.GET("/", h.Index)
	e.GET("/api", h.Index)

	g := e.Group("/api")
	g.GET("/health", h.Health)
	g.GET("/market-regime", h.MarketRegime)
	g.GET("/ohlcv", h.OHLCV)
	g.GET("/signal", h.Signal)
	g.GET("/screener", h.Screener)
}

func (h *MarketHandler) Index(c echo.Context) error {
	return xhttp.SuccessResponse(c, map[string]interface{}{
		"ok":      true,
		"name":    AppName,
		"message": "API is up. The endpoints below can be called directly.",
		"endpoints": map[string]string{
			"health":        "/api/health",
			"market_regime": "/api/market-regime",
			"ohlcv":         "/api/ohlcv?ticker=BBRI&days=260",
			"signal":        "/api/signal?ticker=BBRI&days=260",
			"screener":      "/api/screener?universe=LQ45&days=260",
		},
	})
}

func (h *MarketHandler) Health(c echo.Context) error {
	return xhttp.SuccessResponse(c, map[string]interface{}{
		"ok":   true,
		"name": AppName,
		"ts":   time.Now().UTC().Unix(),
	})
}

func (h *MarketHandler) MarketRegime(c echo.Context) error {
	// Never fails; upstream trouble surfaces as status UNKNOWN.
	return xhttp.SuccessResponse(c, h.regime.Evaluate(c.Request().Context()))
}

// barPoint is the wire form of a bar: date at UTC midnight as unix seconds.
type barPoint struct {
	Time   int64   `json:"time"`
	Open   float64 `json:"open"`
	High   float64 `json:"high"`
	Low    float64 `json:"low"`
	Close  float64 `json:"close"`
	Volume float64 `json:"volume"`
}

func (h *MarketHandler) OHLCV(c echo.Context) error {
	req := &models.BarsRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	ticker := models.NormalizeTicker(req.Ticker)
	bars, err := h.bars.GetBars(c.Request().Context(), ticker, req.Days)
	if err != nil {
		return h.fetchErrorResponse(c, ticker, err)
	}

	points := make([]barPoint, 0, len(bars))
	for _, b := range bars {
		points = append(points, barPoint{
			Time:   b.Date.Unix(),
			Open:   b.Open,
			High:   b.High,
			Low:    b.Low,
			Close:  b.Close,
			Volume: b.Volume,
		})
	}

	return xhttp.SuccessResponse(c, map[string]interface{}{
		"ticker": ticker,
		"bars":   points,
	})
}

func (h *MarketHandler) Signal(c echo.Context) error {
	req := &models.SignalRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	ticker, sig, err := h.signal.GetSignal(c.Request().Context(), req.Ticker, req.Days)
	if err != nil {
		return h.fetchErrorResponse(c, ticker, err)
	}

	return xhttp.SuccessResponse(c, map[string]interface{}{
		"ticker": ticker,
		"signal": sig,
	})
}

func (h *MarketHandler) Screener(c echo.Context) error {
	req := &models.ScreenerRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	res, err := h.screener.Run(c.Request().Context(), req.Universe, req.Days)
	if err != nil {
		if errors.Is(err, models.ErrUnknownUniverse) {
			return xhttp.AppErrorResponse(c,
				xhttp.BadRequestErrorf("unsupported universe %q", req.Universe).WithError(err))
		}
		h.logger.Error("screener failed", xlogger.Error(err))
		return xhttp.AppErrorResponse(c, err)
	}

	return xhttp.SuccessResponse(c, res)
}

func (h *MarketHandler) fetchErrorResponse(c echo.Context, ticker string, err error) error {
	if errors.Is(err, models.ErrNoData) {
		return xhttp.AppErrorResponse(c,
			xhttp.NotFoundErrorf("no data for ticker %s", ticker).WithError(err))
	}
	h.logger.Error("bar fetch failed",
		xlogger.String("ticker", ticker),
		xlogger.Error(err),
	)
	return xhttp.AppErrorResponse(c, err)
}
