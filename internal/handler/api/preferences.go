package api

import (
	"time"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"

	"DashPull/internal/domain/models"
	"DashPull/internal/usecase"
	xhttp "DashPull/pkg/http"
	xlogger "DashPull/pkg/logger"
)

const (
	wsWriteWait  = 10 * time.Second
	wsPongWait   = 60 * time.Second
	wsPingPeriod = wsPongWait * 9 / 10
	wsBuffer     = 8
)

// PreferencesHandler exposes the shared theme/language state over HTTP and
// streams changes over a websocket.
type PreferencesHandler struct {
	logger   *xlogger.Logger
	prefs    *usecase.PreferencesUseCase
	upgrader websocket.Upgrader
}

func NewPreferencesHandler(logger *xlogger.Logger, prefs *usecase.PreferencesUseCase) *PreferencesHandler {
	return &PreferencesHandler{
		logger: logger,
		prefs:  prefs,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
	}
}

func (h *PreferencesHandler) RegisterRoutes(e *echo.Echo) {
	e.GET("/api/preferences", h.Get)
	e.PUT("/api/preferences", h.Put)
	e.GET("/ws/preferences", h.Stream)
}

func (h *PreferencesHandler) Get(c echo.Context) error {
	return xhttp.SuccessResponse(c, h.prefs.Current())
}

func (h *PreferencesHandler) Put(c echo.Context) error {
	req := &models.PreferencesUpdate{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}
	cur, changed := h.prefs.Update(*req)
	return xhttp.SuccessResponse(c, map[string]interface{}{
		"preferences": cur,
		"changed":     changed,
	})
}

// Stream sends the current preferences, then every change. Text frames from
// the client are applied as updates.
func (h *PreferencesHandler) Stream(c echo.Context) error {
	conn, err := h.upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		h.logger.Warn("websocket upgrade", xlogger.Error(err))
		return nil
	}
	defer conn.Close()

	updates := make(chan models.Preferences, wsBuffer)
	stop := h.prefs.Watch(func(_, cur models.Preferences) {
		select {
		case updates <- cur:
		default:
			h.logger.Warn("websocket subscriber lagging, dropping update")
		}
	})
	defer stop()

	done := make(chan struct{})
	go h.readLoop(conn, done)

	ticker := time.NewTicker(wsPingPeriod)
	defer ticker.Stop()

	if err := h.write(conn, h.prefs.Current()); err != nil {
		return nil
	}
	for {
		select {
		case cur := <-updates:
			if err := h.write(conn, cur); err != nil {
				return nil
			}
		case <-ticker.C:
			_ = conn.SetWriteDeadline(time.Now().Add(wsWriteWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return nil
			}
		case <-done:
			return nil
		case <-c.Request().Context().Done():
			return nil
		}
	}
}

func (h *PreferencesHandler) readLoop(conn *websocket.Conn, done chan<- struct{}) {
	defer close(done)
	_ = conn.SetReadDeadline(time.Now().Add(wsPongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(wsPongWait))
	})
	for {
		var u models.PreferencesUpdate
		if err := conn.ReadJSON(&u); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				h.logger.Debug("websocket read", xlogger.Error(err))
			}
			return
		}
		if verr := xhttp.ValidateStruct(&u); verr != nil {
			h.logger.Debug("websocket update rejected", xlogger.Any("errors", verr))
			continue
		}
		h.prefs.Update(u)
	}
}

func (h *PreferencesHandler) write(conn *websocket.Conn, p models.Preferences) error {
	_ = conn.SetWriteDeadline(time.Now().Add(wsWriteWait))
	return conn.WriteJSON(p)
}
