package recommend

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sort"
	"testing"

	"github.com/mager/thalamus/logger"
)

func TestMoodsHandler(t *testing.T) {
	log, _ := logger.NewTestLogger()
	handler := NewMoodsHandler(log)

	req, err := http.NewRequest(http.MethodGet, "/recommend/moods", nil)
	if err != nil {
		t.Fatal(err)
	}

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Errorf("handler returned wrong status code: got %v want %v", rr.Code, http.StatusOK)
	}

	var resp MoodsResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to unmarshal response: %v", err)
	}
	if len(resp.Moods) == 0 {
		t.Fatal("no moods returned")
	}
	if !sort.StringsAreSorted(resp.Moods) {
		t.Errorf("moods not sorted: %v", resp.Moods)
	}
}
