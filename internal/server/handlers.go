package server

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/abhisek/kousuan/internal/kousuan"
	"github.com/abhisek/kousuan/internal/problemgen"
)

type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

func respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func respondError(w http.ResponseWriter, status int, code, message string) {
	respondJSON(w, status, errorResponse{Error: message, Code: code})
}

func decodeJSON(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("invalid request body: %w", err)
	}
	return nil
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{
		"status": "healthy",
		"time":   time.Now().UTC().Format(time.RFC3339),
	})
}

// Kousuan handlers

type typeInfo struct {
	ID      kousuan.ProblemType `json:"id"`
	Label   string              `json:"label"`
	Tier    string              `json:"tier"`
	Ceiling int                 `json:"ceiling"`
}

func (s *Server) handleListTypes(w http.ResponseWriter, r *http.Request) {
	var tier *kousuan.Tier
	if v := r.URL.Query().Get("tier"); v != "" {
		t, err := kousuan.ParseTier(v)
		if err != nil {
			respondError(w, http.StatusBadRequest, "invalid_tier", err.Error())
			return
		}
		tier = &t
	}

	types := []typeInfo{}
	for _, spec := range kousuan.AllSpecs() {
		if tier != nil && spec.Tier != *tier {
			continue
		}
		types = append(types, typeInfo{ID: spec.ID, Label: spec.Label, Tier: spec.Tier.String(), Ceiling: spec.Ceiling})
	}
	respondJSON(w, http.StatusOK, map[string]any{
		"types": types,
		"total": len(types),
	})
}

type worksheetRequest struct {
	Count int      `json:"count"`
	Types []string `json:"types"`
	Tier  string   `json:"tier"`
}

type worksheetResponse struct {
	ID       string            `json:"id"`
	Problems []kousuan.Problem `json:"problems"`
}

func (s *Server) handleCreateWorksheet(w http.ResponseWriter, r *http.Request) {
	var req worksheetRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}
	if req.Count < 0 || req.Count > maxWorksheetSize {
		respondError(w, http.StatusBadRequest, "invalid_count",
			fmt.Sprintf("count must be between 0 and %d", maxWorksheetSize))
		return
	}

	types := make([]kousuan.ProblemType, 0, len(req.Types))
	for _, name := range req.Types {
		t, err := kousuan.ParseType(name)
		if err != nil {
			respondError(w, http.StatusBadRequest, "invalid_type", err.Error())
			return
		}
		types = append(types, t)
	}
	if len(types) == 0 && req.Tier != "" {
		tier, err := kousuan.ParseTier(req.Tier)
		if err != nil {
			respondError(w, http.StatusBadRequest, "invalid_tier", err.Error())
			return
		}
		types = kousuan.TypesForTier(tier)
	}

	gen := kousuan.NewGenerator(s.newSource(), s.logger)
	resp := worksheetResponse{
		ID:       uuid.NewString(),
		Problems: gen.Generate(req.Count, types),
	}
	s.logger.Debug("worksheet created", "id", resp.ID, "count", len(resp.Problems))
	respondJSON(w, http.StatusCreated, resp)
}

type scoreRequest struct {
	Problems []kousuan.Problem `json:"problems"`
	Answers  []string          `json:"answers"`
}

type scoreResponse struct {
	Problems []kousuan.Problem    `json:"problems"`
	Summary  kousuan.ScoreSummary `json:"summary"`
}

func (s *Server) handleScore(w http.ResponseWriter, r *http.Request) {
	var req scoreRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}
	graded := kousuan.Grade(req.Problems, req.Answers)
	respondJSON(w, http.StatusOK, scoreResponse{
		Problems: graded,
		Summary:  kousuan.Score(graded),
	})
}

// Math handlers

func parseLevel(s string) (problemgen.Level, error) {
	if s == "" {
		return problemgen.Easy, nil
	}
	return problemgen.ParseLevel(s)
}

func (s *Server) handleMathProblem(w http.ResponseWriter, r *http.Request) {
	level, err := parseLevel(r.URL.Query().Get("level"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid_level", err.Error())
		return
	}
	respondJSON(w, http.StatusOK, s.problems.Quiz(r.Context(), level))
}

type optionsRequest struct {
	Answer string `json:"answer"`
	Level  string `json:"level"`
}

func (s *Server) handleOptions(w http.ResponseWriter, r *http.Request) {
	var req optionsRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}
	level, err := parseLevel(req.Level)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid_level", err.Error())
		return
	}
	if req.Answer == "" {
		respondError(w, http.StatusBadRequest, "invalid_answer", "answer is required")
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{
		"options": problemgen.BuildOptions(req.Answer, level, s.problems.Rand()),
	})
}

type checkRequest struct {
	Question  string `json:"question"`
	Answer    string `json:"answer"`
	Level     string `json:"level"`
	Submitted string `json:"submitted"`
}

func (s *Server) handleCheck(w http.ResponseWriter, r *http.Request) {
	var req checkRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}
	level, err := parseLevel(req.Level)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid_level", err.Error())
		return
	}
	p := problemgen.Problem{Question: req.Question, Answer: req.Answer, Level: level}
	respondJSON(w, http.StatusOK, map[string]bool{
		"correct": problemgen.CheckAnswer(req.Submitted, p),
	})
}
