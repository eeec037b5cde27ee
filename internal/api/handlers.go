package api

import (
	"math"
	"net/http"
	"strconv"

	"github.com/google/uuid"

	"github.com/abhisek/mathwheel/internal/lessons"
	"github.com/abhisek/mathwheel/internal/logging"
	"github.com/abhisek/mathwheel/internal/quiz"
	"github.com/abhisek/mathwheel/internal/store"
	"github.com/abhisek/mathwheel/internal/wheel"
)

type operationView struct {
	Operation wheel.Operation `json:"operation"`
	Symbol    string          `json:"symbol"`
	ASCII     string          `json:"ascii"`
	Color     string          `json:"color"`
	Lesson    lessons.Lesson  `json:"lesson"`
}

func (s *Server) listOperations(w http.ResponseWriter, r *http.Request) {
	// Wheel order, clockwise from the top.
	out := make([]operationView, 0, len(wheel.Segments))
	for _, op := range wheel.Segments {
		out = append(out, operationView{
			Operation: op,
			Symbol:    op.Symbol(),
			ASCII:     op.ASCII(),
			Color:     op.Color(),
			Lesson:    lessons.For(op),
		})
	}
	writeJSON(w, http.StatusOK, map[string]any{"operations": out})
}

func (s *Server) createSpin(w http.ResponseWriter, r *http.Request) {
	res := wheel.Spin(s.opts.Wheel)
	s.metrics.spin(res.Operation)
	writeJSON(w, http.StatusCreated, res)
}

type segmentResponse struct {
	Angle      float64         `json:"angle"`
	Normalized float64         `json:"normalized"`
	Operation  wheel.Operation `json:"operation"`
}

func (s *Server) getSegment(w http.ResponseWriter, r *http.Request) {
	raw := r.URL.Query().Get("angle")
	if raw == "" {
		writeErr(w, http.StatusBadRequest, "missing_angle", "angle query parameter is required")
		return
	}
	angle, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(angle) || math.IsInf(angle, 0) {
		writeErr(w, http.StatusBadRequest, "invalid_angle", "angle must be a finite number of degrees")
		return
	}
	writeJSON(w, http.StatusOK, segmentResponse{
		Angle:      angle,
		Normalized: wheel.Normalize(angle),
		Operation:  wheel.SelectSegment(angle),
	})
}

type questionRequest struct {
	Operation wheel.Operation `json:"operation"`
}

type questionResponse struct {
	QuestionID string          `json:"question_id"`
	OperandA   int             `json:"operand_a"`
	OperandB   int             `json:"operand_b"`
	Operation  wheel.Operation `json:"operation"`
	Text       string          `json:"text"`
	Options    []int           `json:"options"`
}

func (s *Server) createQuestion(w http.ResponseWriter, r *http.Request) {
	var req questionRequest
	if err := decodeJSON(r, &req); err != nil {
		writeErr(w, http.StatusBadRequest, "invalid_body", err.Error())
		return
	}
	if !req.Operation.Valid() {
		writeErr(w, http.StatusBadRequest, "missing_operation", "operation is required")
		return
	}

	q := s.opts.Questions.Question(req.Operation)
	s.metrics.question(q.Operation)
	writeJSON(w, http.StatusCreated, questionResponse{
		QuestionID: uuid.NewString(),
		OperandA:   q.OperandA,
		OperandB:   q.OperandB,
		Operation:  q.Operation,
		Text:       q.Text(),
		Options:    s.opts.Questions.OptionSet(q.Answer, s.opts.OptionCount),
	})
}

type answerRequest struct {
	QuestionID string          `json:"question_id,omitempty"`
	SessionID  string          `json:"session_id,omitempty"`
	OperandA   int             `json:"operand_a"`
	OperandB   int             `json:"operand_b"`
	Operation  wheel.Operation `json:"operation"`
	Options    []int           `json:"options,omitempty"`
	Choice     int             `json:"choice"`
}

type answerResponse struct {
	Correct  bool   `json:"correct"`
	Answer   int    `json:"answer"`
	Equation string `json:"equation"`
}

func (s *Server) submitAnswer(w http.ResponseWriter, r *http.Request) {
	var req answerRequest
	if err := decodeJSON(r, &req); err != nil {
		writeErr(w, http.StatusBadRequest, "invalid_body", err.Error())
		return
	}

	q, err := quiz.NewQuestion(req.Operation, req.OperandA, req.OperandB)
	if err != nil {
		writeErr(w, http.StatusBadRequest, "invalid_question", err.Error())
		return
	}
	correct := q.Check(req.Choice)
	s.metrics.answer(q.Operation, correct)

	if s.opts.Rounds != nil {
		session := req.SessionID
		if session == "" {
			session = "api"
		}
		options := req.Options
		if options == nil {
			options = []int{}
		}
		err := s.opts.Rounds.AppendRound(r.Context(), &store.Round{
			SessionID: session,
			Operation: q.Operation,
			OperandA:  q.OperandA,
			OperandB:  q.OperandB,
			Answer:    q.Answer,
			Options:   options,
			Chosen:    req.Choice,
			Correct:   correct,
		})
		if err != nil {
			log := logging.FromContext(r.Context())
			log.Error().Err(err).Str("question_id", req.QuestionID).Msg("record round")
			writeErr(w, http.StatusInternalServerError, "store_failed", "could not record the answer")
			return
		}
	}

	writeJSON(w, http.StatusOK, answerResponse{
		Correct:  correct,
		Answer:   q.Answer,
		Equation: q.Equation(),
	})
}

func (s *Server) getStats(w http.ResponseWriter, r *http.Request) {
	if s.opts.Rounds == nil {
		writeErr(w, http.StatusServiceUnavailable, "no_store", "stats need a database")
		return
	}
	st, err := s.opts.Rounds.Stats(r.Context())
	if err != nil {
		log := logging.FromContext(r.Context())
		log.Error().Err(err).Msg("load stats")
		writeErr(w, http.StatusInternalServerError, "internal", "could not load stats")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"stats":    st,
		"accuracy": st.Accuracy(),
	})
}
