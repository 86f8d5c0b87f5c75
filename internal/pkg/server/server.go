package server

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/anicoll/foxess-integration/internal/pkg/model"
	"go.uber.org/zap"
)

type foxessCommands interface {
	SetWorkMode(ctx context.Context, mode model.WorkMode) error
	SetMinSoc(ctx context.Context, field model.MinSocField, value int) error
}

type snapshotter interface {
	Data() *model.Snapshot
	LastUpdateSuccess() bool
	RequestRefresh()
}

type server struct {
	foxess      foxessCommands
	coordinator snapshotter
	auth        *auth
	logger      *zap.Logger
}

func New(foxess foxessCommands, coordinator snapshotter, password string) *server {
	return &server{
		foxess:      foxess,
		coordinator: coordinator,
		auth:        newAuth(password),
		logger:      zap.L(),
	}
}

func (s *server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /login", s.postLogin)
	mux.Handle("GET /status", s.auth.middleware(http.HandlerFunc(s.getStatus)))
	mux.Handle("POST /workmode", s.auth.middleware(http.HandlerFunc(s.postWorkMode)))
	mux.Handle("POST /minsoc", s.auth.middleware(http.HandlerFunc(s.postMinSoc)))
	return LoggingMiddleware(mux)
}

type loginPayload struct {
	Password string `json:"password"`
}

type workModePayload struct {
	Mode string `json:"mode"`
}

type minSocPayload struct {
	Field string `json:"field"`
	Value int    `json:"value"`
}

func (s *server) postLogin(w http.ResponseWriter, r *http.Request) {
	req, err := unmarshalPayload[loginPayload](r)
	if err != nil {
		handleError(w, err)
		return
	}
	token, err := s.auth.login(req.Password)
	if err != nil {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(err.Error()))
		return
	}
	writeJSON(w, map[string]string{"token": token})
}

func (s *server) getStatus(w http.ResponseWriter, r *http.Request) {
	snapshot := s.coordinator.Data()
	if snapshot == nil {
		w.WriteHeader(http.StatusServiceUnavailable)
		w.Write([]byte("no data yet"))
		return
	}
	writeJSON(w, map[string]any{
		"device":              snapshot.DeviceInfo,
		"real_time":           snapshot.RealTime,
		"battery_settings":    snapshot.BatterySettings,
		"work_mode":           snapshot.WorkMode,
		"last_update_success": s.coordinator.LastUpdateSuccess(),
	})
}

func (s *server) postWorkMode(w http.ResponseWriter, r *http.Request) {
	req, err := unmarshalPayload[workModePayload](r)
	if err != nil {
		handleError(w, err)
		return
	}
	mode := model.WorkMode(req.Mode)
	if !mode.Valid() {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte("unknown work mode: " + req.Mode))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), time.Second*30)
	defer cancel()
	if err := s.foxess.SetWorkMode(ctx, mode); err != nil {
		handleError(w, err)
		return
	}
	s.logger.Info("work mode switched", zap.String("mode", string(mode)))
	s.coordinator.RequestRefresh()
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("success"))
}

func (s *server) postMinSoc(w http.ResponseWriter, r *http.Request) {
	req, err := unmarshalPayload[minSocPayload](r)
	if err != nil {
		handleError(w, err)
		return
	}
	field := model.MinSocField(req.Field)
	if !field.Valid() {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte("unknown field: " + req.Field))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), time.Second*30)
	defer cancel()
	if err := s.foxess.SetMinSoc(ctx, field, req.Value); err != nil {
		handleError(w, err)
		return
	}
	s.logger.Info("min soc updated", zap.String("field", req.Field), zap.Int("value", req.Value))
	s.coordinator.RequestRefresh()
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("success"))
}

func handleError(w http.ResponseWriter, err error) {
	if errors.Is(err, errInvalidToken) {
		w.WriteHeader(http.StatusUnauthorized)
	} else {
		w.WriteHeader(http.StatusInternalServerError)
	}
	w.Write([]byte(err.Error()))
}

func writeJSON(w http.ResponseWriter, payload any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		zap.L().Error("failed to encode response", zap.Error(err))
	}
}

func unmarshalPayload[T any](r *http.Request) (*T, error) {
	data, err := io.ReadAll(r.Body)
	if err != nil {
		return nil, err
	}
	var out T
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
