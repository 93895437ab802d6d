package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog/log"

	"matzip_radar/internal/app"
	"matzip_radar/internal/domain"
)

type Handlers struct {
	Rec  *app.RecommendService
	Auth *app.AuthService
}

type problem struct {
	Type   string `json:"type"`
	Title  string `json:"title"`
	Status int    `json:"status"`
	Detail string `json:"detail,omitempty"`
}

func (s *Server) MountHandlers(h *Handlers) {
	s.mux.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200); _, _ = w.Write([]byte("ok")) })
	s.mux.Post("/v1/recommend", h.recommend)
	s.mux.Post("/v1/auth/register", h.register)
	s.mux.Post("/v1/auth/login", h.login)
}

func writeProblem(w http.ResponseWriter, status int, title, detail string) {
	w.Header().Set("Content-Type", "application/problem+json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(problem{Type: "about:blank", Title: title, Status: status, Detail: detail}); err != nil {
		log.Error().Err(err).Msg("write JSON problem response failed")
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Msg("write JSON response failed")
	}
}

func (h *Handlers) recommend(w http.ResponseWriter, r *http.Request) {
	var req domain.RecommendRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeProblem(w, http.StatusBadRequest, "Invalid body", "request body must be valid JSON")
		return
	}
	if req.RadiusKm <= 0 {
		writeProblem(w, http.StatusBadRequest, "Invalid radius", "radius_km must be positive")
		return
	}

	rec, err := h.Rec.Recommend(r.Context(), req)
	if err != nil {
		// The pipeline degrades internally; an error here is unexpected.
		// Keep the contract anyway: respond with the degraded shape.
		log.Error().Err(err).Msg("recommend failed")
		rec = domain.Recommendation{Report: "오류 발생: " + err.Error(), Stores: []domain.Marker{}}
	}
	writeJSON(w, http.StatusOK, rec)
}

type credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (h *Handlers) register(w http.ResponseWriter, r *http.Request) {
	var c credentials
	if err := json.NewDecoder(r.Body).Decode(&c); err != nil {
		writeProblem(w, http.StatusBadRequest, "Invalid body", "request body must be valid JSON")
		return
	}
	if err := h.Auth.Register(r.Context(), c.Username, c.Password); err != nil {
		switch {
		case errors.Is(err, domain.ErrDuplicateUser):
			writeProblem(w, http.StatusBadRequest, "Duplicate user", "이미 존재하는 아이디입니다.")
		case errors.Is(err, app.ErrPasswordTooLong):
			writeProblem(w, http.StatusBadRequest, "Password too long", "비밀번호는 72자 이하로 입력해주세요.")
		case errors.Is(err, app.ErrInvalidCredentials):
			writeProblem(w, http.StatusBadRequest, "Invalid credentials", "아이디와 비밀번호를 입력해주세요.")
		default:
			log.Error().Err(err).Msg("register failed")
			writeProblem(w, http.StatusInternalServerError, "Internal error", "")
		}
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{"message": "회원가입 성공"})
}

func (h *Handlers) login(w http.ResponseWriter, r *http.Request) {
	var c credentials
	if err := json.NewDecoder(r.Body).Decode(&c); err != nil {
		writeProblem(w, http.StatusBadRequest, "Invalid body", "request body must be valid JSON")
		return
	}
	tok, err := h.Auth.Login(r.Context(), c.Username, c.Password)
	if err != nil {
		if errors.Is(err, app.ErrInvalidCredentials) {
			writeProblem(w, http.StatusUnauthorized, "Login failed", "로그인 실패")
			return
		}
		log.Error().Err(err).Msg("login failed")
		writeProblem(w, http.StatusInternalServerError, "Internal error", "")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"access_token": tok, "token_type": "bearer"})
}
