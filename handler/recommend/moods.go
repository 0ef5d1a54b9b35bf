package recommend

import (
	"encoding/json"
	"net/http"

	"github.com/mager/thalamus/recommender"
	"go.uber.org/zap"
)

// MoodsHandler lists the mood tags the engine understands.
type MoodsHandler struct {
	log *zap.SugaredLogger
}

func (*MoodsHandler) Pattern() string {
	return "/recommend/moods"
}

// NewMoodsHandler builds a new MoodsHandler.
func NewMoodsHandler(log *zap.SugaredLogger) *MoodsHandler {
	return &MoodsHandler{log: log}
}

type MoodsResponse struct {
	Moods []string `json:"moods"`
}

// List moods
// @Summary List moods
// @Description List the recognized mood tags
// @Tags Recommend
// @Accept json
// @Produce json
// @Success 200 {object} MoodsResponse
// @Router /recommend/moods [get]
func (h *MoodsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(MoodsResponse{Moods: recommender.MoodNames()})
}
