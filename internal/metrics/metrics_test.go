package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMiddlewareUsesRoutePattern(t *testing.T) {
	r := chi.NewRouter()
	r.Use(Middleware)
	r.Get("/movies/{id}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	before := testutil.CollectAndCount(HTTPRequestDuration)
	for _, id := range []string{"1", "2", "3"} {
		r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/movies/"+id, nil))
	}
	// tres ids distintos, una sola serie
	assert.Equal(t, before+1, testutil.CollectAndCount(HTTPRequestDuration))
}

func TestObserveRecommendation(t *testing.T) {
	before := testutil.CollectAndCount(RecommendationDuration)
	ObserveRecommendation("test-engine", time.Now())
	assert.Equal(t, before+1, testutil.CollectAndCount(RecommendationDuration))
}
