package http

import (
	"encoding/json"
	"net/http"

	"driving-quiz-service/internal/app"
	"driving-quiz-service/internal/domain"
	"driving-quiz-service/internal/i18n"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

type WSHandler struct {
	service  *app.PracticeService
	log      *zap.Logger
	upgrader websocket.Upgrader
}

func NewWSHandler(service *app.PracticeService, log *zap.Logger) *WSHandler {
	if log == nil {
		log = zap.NewNop()
	}
	return &WSHandler{
		service: service,
		log:     log,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
	}
}

type inboundMessage struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

type startPayload struct {
	Category domain.Category `json:"category"`
}

type answerPayload struct {
	OptionID string `json:"optionId"`
}

type outboundMessage[T any] struct {
	Type    string `json:"type"`
	Payload T      `json:"payload"`
}

// sessionPayload is a view plus the display strings for the chosen language.
type sessionPayload struct {
	app.View
	CategoryTitle string `json:"categoryTitle"`
	Progress      string `json:"progress,omitempty"`
}

type answerResultPayload struct {
	AnsweredCorrectly bool   `json:"answeredCorrectly"`
	Message           string `json:"message"`
	CorrectOptionID   string `json:"correctOptionId"`
	Explanation       string `json:"explanation"`
	sessionPayload
}

type completedPayload struct {
	Score     int         `json:"score"`
	Tier      domain.Tier `json:"tier"`
	Message   string      `json:"message"`
	Color     string      `json:"color"`
	Correct   int         `json:"correct"`
	Incorrect int         `json:"incorrect"`
	Total     int         `json:"total"`
}

type reviewPayload struct {
	app.Result
	Message string `json:"message"`
	Color   string `json:"color"`
}

type exitedPayload struct {
	Message string `json:"message"`
}

// ServeWS upgrades HTTP requests to websockets and drives one player's practice session.
func (h *WSHandler) ServeWS(w http.ResponseWriter, r *http.Request) {
	playerID := r.URL.Query().Get("playerId")
	if playerID == "" {
		http.Error(w, "missing playerId", http.StatusBadRequest)
		return
	}
	tr := translatorFor(r)

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Warn("ws upgrade failed", zap.Error(err))
		return
	}
	defer conn.Close()

	ctx := r.Context()
	// A practice lives as long as the connection that last started it.
	var practiceID string
	defer func() { h.service.Release(ctx, playerID, practiceID) }()

	send := make(chan outboundMessage[any], 16)
	writerDone := make(chan struct{})

	// single writer; gorilla connections do not support concurrent writes
	go func() {
		defer close(writerDone)
		for msg := range send {
			if err := conn.WriteJSON(msg); err != nil {
				h.log.Debug("ws write failed", zap.String("player_id", playerID), zap.Error(err))
				return
			}
		}
	}()

	sendErr := func(err error) {
		_, code := classify(err)
		if code == "internal" {
			h.log.Error("practice operation failed", zap.String("player_id", playerID), zap.Error(err))
		}
		send <- outboundMessage[any]{Type: "error", Payload: errorPayload{Code: code, Message: err.Error()}}
	}

	for {
		var inbound inboundMessage
		if err := conn.ReadJSON(&inbound); err != nil {
			break
		}
		switch inbound.Type {
		case "start":
			var payload startPayload
			if len(inbound.Payload) > 0 {
				if err := json.Unmarshal(inbound.Payload, &payload); err != nil {
					send <- outboundMessage[any]{Type: "error", Payload: errorPayload{Code: "bad_payload", Message: "invalid start payload"}}
					continue
				}
			}
			if payload.Category == "" {
				payload.Category = domain.CategoryAll
			}
			view, err := h.service.Start(ctx, playerID, payload.Category)
			if err != nil {
				sendErr(err)
				continue
			}
			practiceID = view.PracticeID
			send <- outboundMessage[any]{Type: "session", Payload: newSessionPayload(tr, view)}
		case "answer":
			var payload answerPayload
			if err := json.Unmarshal(inbound.Payload, &payload); err != nil || payload.OptionID == "" {
				send <- outboundMessage[any]{Type: "error", Payload: errorPayload{Code: "bad_payload", Message: "invalid answer payload"}}
				continue
			}
			view, err := h.service.Answer(ctx, playerID, payload.OptionID)
			if err != nil {
				sendErr(err)
				continue
			}
			send <- outboundMessage[any]{Type: "answerResult", Payload: newAnswerResult(tr, view)}
		case "next":
			view, err := h.service.Next(ctx, playerID)
			if err != nil {
				sendErr(err)
				continue
			}
			if view.Completed && view.Summary != nil {
				send <- outboundMessage[any]{Type: "completed", Payload: completedPayload{
					Score:     view.Summary.Score,
					Tier:      view.Summary.Tier,
					Message:   tr.TierMessage(view.Summary.Tier),
					Color:     view.Summary.Tier.Color(),
					Correct:   view.Summary.Correct,
					Incorrect: view.Summary.Incorrect,
					Total:     view.Summary.Total,
				}}
				continue
			}
			send <- outboundMessage[any]{Type: "session", Payload: newSessionPayload(tr, view)}
		case "restart":
			view, err := h.service.Restart(ctx, playerID)
			if err != nil {
				sendErr(err)
				continue
			}
			practiceID = view.PracticeID
			send <- outboundMessage[any]{Type: "session", Payload: newSessionPayload(tr, view)}
		case "review":
			result, err := h.service.Review(ctx, playerID)
			if err != nil {
				sendErr(err)
				continue
			}
			send <- outboundMessage[any]{Type: "review", Payload: reviewPayload{
				Result:  result,
				Message: tr.TierMessage(result.Summary.Tier),
				Color:   result.Summary.Tier.Color(),
			}}
		case "exit":
			h.service.Exit(ctx, playerID)
			practiceID = ""
			send <- outboundMessage[any]{Type: "exited", Payload: exitedPayload{Message: tr.T("quiz.exited")}}
		default:
			send <- outboundMessage[any]{Type: "error", Payload: errorPayload{Code: "unsupported", Message: "unsupported message type"}}
		}
	}

	close(send)
	<-writerDone
}

func newSessionPayload(tr i18n.Translator, view app.View) sessionPayload {
	p := sessionPayload{View: view, CategoryTitle: tr.CategoryTitle(view.Category)}
	if view.Total > 0 && !view.Completed {
		p.Progress = tr.Tf("quiz.question", view.Index+1, view.Total)
	}
	return p
}

func newAnswerResult(tr i18n.Translator, view app.View) answerResultPayload {
	p := answerResultPayload{sessionPayload: newSessionPayload(tr, view)}
	if q := view.Question; q != nil && q.AnsweredCorrect != nil {
		p.AnsweredCorrectly = *q.AnsweredCorrect
		p.CorrectOptionID = q.CorrectOptionID
		p.Explanation = q.Explanation
	}
	p.Message = tr.T("quiz.incorrect")
	if p.AnsweredCorrectly {
		p.Message = tr.T("quiz.correct")
	}
	return p
}

// translatorFor picks the language from ?lang=, then Accept-Language.
func translatorFor(r *http.Request) i18n.Translator {
	raw := r.URL.Query().Get("lang")
	if raw == "" {
		raw = r.Header.Get("Accept-Language")
	}
	return i18n.New(i18n.Parse(raw))
}
