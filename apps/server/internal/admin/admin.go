package admin

import (
	"encoding/json"
	"net/http"
	"sync"

	"github.com/google/uuid"
	"github.com/julienschmidt/httprouter"

	"superego/apps/server/internal/registry"
	"superego/apps/server/internal/store"
	"superego/game"
)

// Admin is the thin session-control HTTP surface described by spec.md §6
// and grounded directly in original_source's infrastructure/http/server.py
// route table: insert people/cards, and start/inspect/stop the one running
// game. No game logic lives here -- everything funnels into game.Lobby and
// registry.Registry. Route shape (GET/DELETE /game with no id segment)
// matches SPEC_FULL.md's documented table verbatim: this surface controls
// one running game at a time, tracked by currentID.
type Admin struct {
	people   store.PersonStore
	decks    store.DeckStore
	sessions *registry.Registry

	mu        sync.RWMutex
	currentID string
}

// New builds an Admin surface over the given collaborators.
func New(people store.PersonStore, decks store.DeckStore, sessions *registry.Registry) *Admin {
	return &Admin{people: people, decks: decks, sessions: sessions}
}

// Register wires every admin route into the given httprouter.Router,
// matching the routing style of Seednode-partybox's ServePage.
func (a *Admin) Register(mux *httprouter.Router) {
	mux.POST("/cards", a.addCard)
	mux.GET("/people", a.listPeople)
	mux.POST("/people", a.addPerson)
	mux.POST("/game", a.startGame)
	mux.GET("/game", a.gameStatus)
	mux.DELETE("/game", a.stopGame)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

type addCardRequest struct {
	DeckID   string `json:"deck_id"`
	Question string `json:"question"`
	AnswerA  string `json:"answer_a"`
	AnswerB  string `json:"answer_b"`
	AnswerC  string `json:"answer_c"`
}

func (a *Admin) addCard(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var req addCardRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid body")
		return
	}
	if req.DeckID == "" || req.Question == "" || req.AnswerA == "" || req.AnswerB == "" || req.AnswerC == "" {
		writeError(w, http.StatusBadRequest, "missing required field")
		return
	}
	card := game.Card{
		Question: req.Question,
		AnswerA:  req.AnswerA,
		AnswerB:  req.AnswerB,
		AnswerC:  req.AnswerC,
	}
	if err := a.decks.InsertCard(req.DeckID, card); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (a *Admin) listPeople(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	if name := r.URL.Query().Get("name"); name != "" {
		id, err := a.people.RetrieveGUID(name)
		if err != nil {
			writeError(w, http.StatusNotFound, err.Error())
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"name": name, "id": id.String()})
		return
	}
	people, err := a.people.ListPeople()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, people)
}

type addPersonRequest struct {
	Name string `json:"name"`
}

func (a *Admin) addPerson(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var req addPersonRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Name == "" {
		writeError(w, http.StatusBadRequest, "missing name")
		return
	}
	member, err := a.people.InsertPerson(req.Name)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, member)
}

type startGameRequest struct {
	DeckID          string   `json:"deck_id"`
	MaxRoundsFactor int      `json:"max_rounds_factor"`
	PlayerNames     []string `json:"player_names"`
}

func (a *Admin) startGame(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var req startGameRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid body")
		return
	}
	if len(req.PlayerNames) == 0 {
		writeError(w, http.StatusBadRequest, "player_names must not be empty")
		return
	}
	if req.MaxRoundsFactor <= 0 {
		req.MaxRoundsFactor = 3
	}

	deck, err := a.decks.GetDeck(req.DeckID)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	members := make([]game.LobbyMember, 0, len(req.PlayerNames))
	for _, name := range req.PlayerNames {
		id, err := a.people.RetrieveGUID(name)
		if err != nil {
			writeError(w, http.StatusBadRequest, "unknown person: "+name)
			return
		}
		members = append(members, game.LobbyMember{ID: id, Name: name})
	}

	host := members[0]
	lobby := game.NewLobby(uuid.New(), host, game.GameSettings{Deck: deck, MaxRoundsFactor: req.MaxRoundsFactor})
	for _, m := range members[1:] {
		lobby.AddMember(m)
	}

	sess := a.sessions.StartGame(lobby)

	a.mu.Lock()
	a.currentID = sess.ID()
	a.mu.Unlock()

	writeJSON(w, http.StatusOK, map[string]string{"address": sess.ID()})
}

func (a *Admin) gameStatus(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	a.mu.RLock()
	id := a.currentID
	a.mu.RUnlock()

	sess, ok := a.sessions.Lookup(id)
	if !ok {
		writeError(w, http.StatusNotFound, "no game running")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"address": sess.ID(), "game_over": sess.Over()})
}

func (a *Admin) stopGame(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	a.mu.Lock()
	id := a.currentID
	a.currentID = ""
	a.mu.Unlock()

	if err := a.sessions.StopGame(id); err != nil {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "stopped"})
}
