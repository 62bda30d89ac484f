package api

import (
	"errors"
	"net/http"

	"github.com/abhisek/mathforest/internal/auth"
	"github.com/abhisek/mathforest/internal/boss"
	"github.com/abhisek/mathforest/internal/game"
	"github.com/abhisek/mathforest/internal/progression"
	"github.com/abhisek/mathforest/internal/session"
)

// statusFor maps engine and auth errors to HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, progression.ErrInvalidAnswer):
		return http.StatusUnprocessableEntity
	case errors.Is(err, session.ErrUnknownSkill),
		errors.Is(err, game.ErrEmptyName),
		errors.Is(err, auth.ErrInvalidEmail),
		errors.Is(err, auth.ErrWeakPassword):
		return http.StatusBadRequest
	case errors.Is(err, session.ErrSkillLocked),
		errors.Is(err, boss.ErrUnavailable),
		errors.Is(err, auth.ErrEmailNotConfirmed):
		return http.StatusForbidden
	case errors.Is(err, session.ErrSessionComplete),
		errors.Is(err, session.ErrNotComplete),
		errors.Is(err, session.ErrAlreadyClaimed),
		errors.Is(err, boss.ErrWrongPhase):
		return http.StatusConflict
	case errors.Is(err, game.ErrNoPractice),
		errors.Is(err, game.ErrNoEncounter):
		return http.StatusNotFound
	case errors.Is(err, auth.ErrInvalidCredentials),
		errors.Is(err, auth.ErrInvalidToken):
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) fail(w http.ResponseWriter, err error) {
	code := statusFor(err)
	if code == http.StatusInternalServerError {
		s.log.Error("request failed", "error", err)
		writeError(w, code, auth.UserMessage(err))
		return
	}
	msg := err.Error()
	if errors.Is(err, auth.ErrInvalidCredentials) || errors.Is(err, auth.ErrEmailNotConfirmed) ||
		errors.Is(err, auth.ErrInvalidToken) || errors.Is(err, auth.ErrInvalidEmail) ||
		errors.Is(err, auth.ErrWeakPassword) {
		msg = auth.UserMessage(err)
	}
	writeError(w, code, msg)
}

// saved reports whether err is nil or only a lost write, in which case the
// request itself succeeded.
func saved(err error) bool {
	return err == nil || errors.Is(err, game.ErrSaveFailed)
}

// ─── Auth ────────────────────────────────────────────────────────────────────

func (s *Server) handleSignUp(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := decode(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	res, sess, err := s.auth.SignUp(r.Context(), req.Email, req.Password)
	if err != nil {
		s.fail(w, err)
		return
	}
	code := http.StatusOK
	if res == auth.SignedIn {
		code = http.StatusCreated
	}
	writeJSON(w, code, signUpResponse{Result: res, Session: sess})
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := decode(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	sess, err := s.auth.SignInWithPassword(r.Context(), req.Email, req.Password)
	if err != nil {
		s.fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, sess)
}

func (s *Server) handleConfirm(w http.ResponseWriter, r *http.Request) {
	var req tokenRequest
	if err := decode(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	sess, err := s.auth.Confirm(r.Context(), req.Token)
	if err != nil {
		s.fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, sess)
}

func (s *Server) handleSession(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, identityFrom(r.Context()))
}

// ─── Profile ─────────────────────────────────────────────────────────────────

func (s *Server) handleProfile(w http.ResponseWriter, r *http.Request) {
	g := gameFrom(r.Context())
	writeJSON(w, http.StatusOK, toProfile(identityFrom(r.Context()), g.Profile()))
}

func (s *Server) handleSetName(w http.ResponseWriter, r *http.Request) {
	var req nameRequest
	if err := decode(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	g := gameFrom(r.Context())
	if err := g.SetName(r.Context(), req.Name); !saved(err) {
		s.fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toProfile(identityFrom(r.Context()), g.Profile()))
}

func (s *Server) handleReset(w http.ResponseWriter, r *http.Request) {
	g := gameFrom(r.Context())
	if err := g.Reset(r.Context()); !saved(err) {
		s.fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toProfile(identityFrom(r.Context()), g.Profile()))
}

func (s *Server) handleHome(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, toHome(gameFrom(r.Context()).Home()))
}

func (s *Server) handleSaveStatus(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"status": gameFrom(r.Context()).SaveStatus()})
}

// ─── Practice ────────────────────────────────────────────────────────────────

func (s *Server) handleGetPractice(w http.ResponseWriter, r *http.Request) {
	v, ok := gameFrom(r.Context()).Practice()
	if !ok {
		s.fail(w, game.ErrNoPractice)
		return
	}
	writeJSON(w, http.StatusOK, toPractice(v))
}

func (s *Server) handleStartPractice(w http.ResponseWriter, r *http.Request) {
	var req skillRequest
	if err := decode(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	v, err := gameFrom(r.Context()).StartPractice(req.Skill)
	if err != nil {
		s.fail(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toPractice(v))
}

func (s *Server) handleAnswer(w http.ResponseWriter, r *http.Request) {
	var req answerRequest
	if err := decode(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	g := gameFrom(r.Context())
	res, v, err := g.Submit(r.Context(), req.Answer)
	if err != nil {
		s.fail(w, err)
		return
	}
	out := res.Outcome
	writeJSON(w, http.StatusOK, answerResponse{
		Correct:    out.Correct,
		XPGained:   out.XPGained,
		Bonus:      out.Bonus,
		Star:       out.Star,
		Hint:       res.Hint,
		Answer:     res.Answer,
		Completed:  res.Completed,
		Advanced:   res.Next != nil,
		Events:     toEvents(out.Events),
		Practice:   toPractice(v),
		SaveStatus: g.SaveStatus(),
	})
}

func (s *Server) handleContinue(w http.ResponseWriter, r *http.Request) {
	v, err := gameFrom(r.Context()).Continue()
	if err != nil {
		s.fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toPractice(v))
}

func (s *Server) handleClaim(w http.ResponseWriter, r *http.Request) {
	g := gameFrom(r.Context())
	events, err := g.Claim(r.Context())
	if !saved(err) {
		s.fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"events":      toEvents(events),
		"save_status": g.SaveStatus(),
	})
}

func (s *Server) handleEndPractice(w http.ResponseWriter, r *http.Request) {
	sum, err := gameFrom(r.Context()).EndPractice()
	if err != nil {
		s.fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toSummary(sum))
}

// ─── Boss ────────────────────────────────────────────────────────────────────

func (s *Server) handleGetBoss(w http.ResponseWriter, r *http.Request) {
	v, ok := gameFrom(r.Context()).Boss()
	if !ok {
		s.fail(w, game.ErrNoEncounter)
		return
	}
	writeJSON(w, http.StatusOK, toBoss(v))
}

func (s *Server) handleStartBoss(w http.ResponseWriter, r *http.Request) {
	v, err := gameFrom(r.Context()).StartBoss()
	if err != nil {
		s.fail(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toBoss(v))
}

func (s *Server) handleFight(w http.ResponseWriter, r *http.Request) {
	v, err := gameFrom(r.Context()).BeginFight()
	if err != nil {
		s.fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toBoss(v))
}

func (s *Server) handleBossAnswer(w http.ResponseWriter, r *http.Request) {
	var req answerRequest
	if err := decode(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	st, v, err := gameFrom(r.Context()).SubmitBoss(r.Context(), req.Answer)
	if !saved(err) {
		s.fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, strikeJSON{
		Hit:     st.Hit,
		Message: st.Message,
		Answer:  st.Answer,
		Won:     st.Won,
		Lost:    st.Lost,
		Boss:    toBoss(v),
	})
}
