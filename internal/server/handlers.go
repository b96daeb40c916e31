package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/abhisek/solfa/internal/exercise"
	"github.com/abhisek/solfa/internal/pitch"
	"github.com/abhisek/solfa/internal/store"
)

type keyView struct {
	Note      string  `json:"note"`
	Frequency float64 `json:"frequency"`
	Black     bool    `json:"black"`
	Binding   string  `json:"binding,omitempty"`
}

type itemView struct {
	Degree string `json:"degree"`
	Note   string `json:"note,omitempty"`
	Status string `json:"status"`
}

type exerciseView struct {
	Key     string     `json:"key"`
	Length  int        `json:"length"`
	Phase   string     `json:"phase"`
	Cursor  int        `json:"cursor"`
	Correct int        `json:"correct"`
	Items   []itemView `json:"items"`
}

type voiceView struct {
	TargetFrequency    float64 `json:"targetFrequency"`
	ReferenceFrequency float64 `json:"referenceFrequency"`
	PlaybackRate       float64 `json:"playbackRate"`
	StartGain          float64 `json:"startGain"`
	EndGain            float64 `json:"endGain"`
	DecaySeconds       float64 `json:"decaySeconds"`
}

type pressView struct {
	Note     string       `json:"note"`
	Outcome  string       `json:"outcome"`
	Position int          `json:"position"`
	Played   bool         `json:"played"`
	Voice    *voiceView   `json:"voice,omitempty"`
	Exercise exerciseView `json:"exercise"`
}

type errorView struct {
	Error string `json:"error"`
}

func (s *Server) handleKeys(w http.ResponseWriter, r *http.Request) {
	out := make([]keyView, 0, len(s.layout.Keys))
	for _, k := range s.layout.Keys {
		out = append(out, keyView{
			Note:      k.Note.String(),
			Frequency: k.Frequency,
			Black:     k.Black,
			Binding:   k.Binding,
		})
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleFrequency(w http.ResponseWriter, r *http.Request) {
	n, err := pitch.ParseNote(mux.Vars(r)["note"])
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	freq, err := n.Frequency()
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"note":      n.String(),
		"midi":      n.MIDI(),
		"frequency": freq,
	})
}

func (s *Server) handleGetExercise(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	writeJSON(w, http.StatusOK, viewExercise(s.ctrl.Exercise()))
}

type newExerciseRequest struct {
	Key    string `json:"key"`
	Length int    `json:"length"`
}

func (s *Server) handleNewExercise(w http.ResponseWriter, r *http.Request) {
	var req newExerciseRequest
	if r.ContentLength != 0 {
		if err := decodeJSON(w, r, &req); err != nil {
			writeBodyError(w, err)
			return
		}
	}

	var key pitch.PitchClass
	if req.Key != "" {
		k, err := pitch.ParsePitchClass(req.Key)
		if err != nil {
			writeError(w, http.StatusBadRequest, err)
			return
		}
		key = k
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if key == "" {
		key = s.ctrl.Key()
	}
	length := req.Length
	if length == 0 {
		length = s.ctrl.Length()
	}
	if err := s.ctrl.Configure(key, length); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	writeJSON(w, http.StatusOK, viewExercise(s.ctrl.Exercise()))
}

type pressRequest struct {
	Note string `json:"note"`
}

func (s *Server) handlePress(w http.ResponseWriter, r *http.Request) {
	var req pressRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeBodyError(w, err)
		return
	}
	n, err := pitch.ParseNote(req.Note)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	res := s.ctrl.Press(n)
	out := pressView{
		Note:     res.Note.String(),
		Outcome:  res.Outcome.String(),
		Position: res.Position,
		Played:   res.Played,
		Exercise: viewExercise(s.ctrl.Exercise()),
	}
	if res.Played {
		v := res.Voice
		out.Voice = &voiceView{
			TargetFrequency:    v.TargetFrequency,
			ReferenceFrequency: v.ReferenceFrequency,
			PlaybackRate:       v.PlaybackRate,
			StartGain:          v.Envelope.StartGain,
			EndGain:            v.Envelope.EndGain,
			DecaySeconds:       v.Envelope.Decay.Seconds(),
		}
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleReset(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ctrl.Reset()
	writeJSON(w, http.StatusOK, viewExercise(s.ctrl.Exercise()))
}

type lengthRequest struct {
	Delta int `json:"delta"`
}

func (s *Server) handleLength(w http.ResponseWriter, r *http.Request) {
	var req lengthRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeBodyError(w, err)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.ctrl.ChangeLength(req.Delta); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	writeJSON(w, http.StatusOK, viewExercise(s.ctrl.Exercise()))
}

type keyRequest struct {
	Key string `json:"key"`
}

func (s *Server) handleSetKey(w http.ResponseWriter, r *http.Request) {
	var req keyRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeBodyError(w, err)
		return
	}
	key, err := pitch.ParsePitchClass(req.Key)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.ctrl.SetKey(key); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	writeJSON(w, http.StatusOK, viewExercise(s.ctrl.Exercise()))
}

func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	if s.events == nil {
		writeError(w, http.StatusNotFound, errors.New("history is not enabled"))
		return
	}
	limit := 20
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			writeError(w, http.StatusBadRequest, errors.New("limit must be a positive integer"))
			return
		}
		limit = n
	}

	sums, err := s.events.QueryExerciseSummaries(r.Context(), store.QueryOpts{Limit: limit})
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	out := make([]map[string]any, 0, len(sums))
	for _, sum := range sums {
		out = append(out, map[string]any{
			"id":         sum.ExerciseID,
			"timestamp":  sum.Timestamp,
			"key":        sum.Key,
			"degrees":    sum.Degrees,
			"result":     sum.Result,
			"correct":    sum.CorrectCount,
			"length":     sum.Length,
			"durationMs": sum.Duration.Milliseconds(),
		})
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	if s.events == nil {
		writeError(w, http.StatusNotFound, errors.New("history is not enabled"))
		return
	}
	stats, err := s.events.DegreeAccuracy(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	out := make([]map[string]any, 0, len(stats))
	for _, st := range stats {
		out = append(out, map[string]any{
			"degree":   st.Degree,
			"attempts": st.Attempts,
			"correct":  st.Correct,
			"accuracy": st.Accuracy(),
		})
	}
	writeJSON(w, http.StatusOK, out)
}

// viewExercise hides the notes of items still pending until the exercise
// is over.
func viewExercise(ex *exercise.Exercise) exerciseView {
	v := exerciseView{
		Key:     ex.Key.String(),
		Length:  ex.Len(),
		Phase:   ex.Phase.String(),
		Cursor:  ex.Cursor,
		Correct: ex.CorrectCount(),
		Items:   make([]itemView, 0, ex.Len()),
	}
	for _, it := range ex.Items {
		iv := itemView{Degree: it.Degree.String(), Status: string(it.Status)}
		if it.Status != exercise.StatusPending || ex.Finished() {
			iv.Note = it.Note.String()
		}
		v.Items = append(v.Items, iv)
	}
	return v
}

// maxBodyBytes caps request bodies. Every request body is a small JSON object.
const maxBodyBytes = 4 << 10

func decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	return json.NewDecoder(r.Body).Decode(v)
}

func writeBodyError(w http.ResponseWriter, err error) {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		writeError(w, http.StatusRequestEntityTooLarge, err)
		return
	}
	writeError(w, http.StatusBadRequest, err)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, errorView{Error: err.Error()})
}
