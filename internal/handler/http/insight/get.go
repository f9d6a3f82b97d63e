package insight

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"newspulse/internal/domain/entity"
	"newspulse/internal/handler/http/respond"
	"newspulse/internal/observability/logging"
	"newspulse/internal/usecase/aggregate"
	fetchUC "newspulse/internal/usecase/fetch"
)

// Refresher runs one pipeline refresh.
type Refresher interface {
	RefreshWithOptions(ctx context.Context, q fetchUC.Query, opts aggregate.Options) (*fetchUC.Report, error)
}

// GetHandler serves GET /insights.
type GetHandler struct {
	Svc Refresher
}

// ServeHTTP runs one refresh.
// @Summary      Refresh insights
// @Description  Fetches one batch of articles, enriches them and returns the aggregates
// @Tags         insights
// @Produce      json
// @Param        q             query string false "Search query (default: electronics OR semiconductors OR manufacturing)"
// @Param        language      query string false "Two-letter language code (default: en)"
// @Param        count         query int    false "Number of articles, 1-100 (default: 20)"
// @Param        top           query int    false "Countries in the ranking, negative for all (default: 10)"
// @Param        min_mentions  query int    false "Cross-tab mention threshold (default: 2)"
// @Success      200 {object} DTO
// @Failure      400 {object} respond.ErrorBody "Invalid query"
// @Failure      429 {object} respond.ErrorBody "Too many requests"
// @Failure      502 {object} respond.ErrorBody "No data: the upstream fetch failed"
// @Router       /insights [get]
func (h GetHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	params := r.URL.Query()

	count, err := intParam(params.Get("count"), "count")
	if err != nil {
		respond.SafeError(w, http.StatusBadRequest, err)
		return
	}
	if params.Has("count") && count == 0 {
		respond.JSON(w, http.StatusBadRequest, respond.ErrorBody{
			Error: fmt.Sprintf("count must be between %d and %d", entity.MinArticleCount, entity.MaxArticleCount),
		})
		return
	}
	top, err := intParam(params.Get("top"), "top")
	if err != nil {
		respond.SafeError(w, http.StatusBadRequest, err)
		return
	}
	minMentions, err := intParam(params.Get("min_mentions"), "min_mentions")
	if err != nil {
		respond.SafeError(w, http.StatusBadRequest, err)
		return
	}
	if minMentions < 0 {
		respond.SafeError(w, http.StatusBadRequest, errors.New("min_mentions must be positive"))
		return
	}

	q := fetchUC.Query{
		Text:     params.Get("q"),
		Language: params.Get("language"),
		Count:    count,
	}
	opts := aggregate.Options{TopCountries: top, MinMentions: minMentions}

	report, err := h.Svc.RefreshWithOptions(r.Context(), q, opts)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	respond.JSON(w, http.StatusOK, NewDTO(report))
}

func (h GetHandler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	var vErr *entity.ValidationError
	switch {
	case errors.As(err, &vErr):
		respond.JSON(w, http.StatusBadRequest, respond.ErrorBody{Error: vErr.Message})
	case errors.Is(err, fetchUC.ErrNoData):
		logging.FromContext(r.Context()).WarnContext(r.Context(), "insights unavailable",
			slog.String("error", respond.SanitizeError(err)))
		respond.JSON(w, http.StatusBadGateway, respond.ErrorBody{Error: respond.SanitizeError(err)})
	default:
		respond.SafeError(w, http.StatusInternalServerError, err)
	}
}

// intParam parses an optional integer query parameter. Empty means zero.
func intParam(raw, name string) (int, error) {
	if raw == "" {
		return 0, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer", name)
	}
	return v, nil
}
