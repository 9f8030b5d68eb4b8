package http

import (
	"encoding/json"
	"net/http"

	"github.com/deskline-lab/vaani/pkg/domain/model/errs"
	"github.com/deskline-lab/vaani/pkg/domain/types"
	"github.com/deskline-lab/vaani/pkg/usecase"
	"github.com/deskline-lab/vaani/pkg/utils/logging"
	"github.com/go-chi/chi/v5"
	"github.com/m-mizutani/goerr/v2"
)

// turnResponse adds the persistence outcome to the computed result. A reply
// with persisted=false was delivered but not stored; the caller should retry
// the turn or expect the next one to replay from the stored state.
type turnResponse struct {
	*usecase.TurnResult
	Persisted bool `json:"persisted"`
}

func turnHandler(uc UseCase) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var input usecase.TurnInput
		if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
			handleError(w, r, goerr.Wrap(err, "failed to decode turn request",
				goerr.T(errs.TagValidation)))
			return
		}

		result, err := uc.HandleTurn(r.Context(), input)
		if err != nil {
			if result != nil {
				// The turn was computed but not persisted. Deliver the reply
				// anyway and flag the write failure.
				errs.Handle(r.Context(), err)
				respondJSON(w, r, http.StatusOK, turnResponse{TurnResult: result})
				return
			}
			handleError(w, r, err)
			return
		}

		respondJSON(w, r, http.StatusOK, turnResponse{TurnResult: result, Persisted: true})
	}
}

func getSessionHandler(uc UseCase) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := types.SessionID(chi.URLParam(r, "id"))
		if id == "" {
			handleError(w, r, goerr.New("session id is required", goerr.T(errs.TagValidation)))
			return
		}

		sess, err := uc.GetSession(r.Context(), id)
		if err != nil {
			handleError(w, r, err)
			return
		}

		respondJSON(w, r, http.StatusOK, sess)
	}
}

func respondJSON(w http.ResponseWriter, r *http.Request, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		logging.From(r.Context()).Warn("failed to encode response", logging.ErrAttr(err))
	}
}
