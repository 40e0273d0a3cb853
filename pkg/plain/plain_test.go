package plain

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/neotica/restaurantreview/pkg/controller"
	"github.com/neotica/restaurantreview/pkg/logging"
	"github.com/neotica/restaurantreview/pkg/model"
)

type stubClient struct {
	fetch    model.Restaurant
	fetchErr error
	post     model.Restaurant
	postErr  error
	posted   []string
}

func (s *stubClient) FetchRestaurant(context.Context, string) (model.Restaurant, error) {
	return s.fetch, s.fetchErr
}

func (s *stubClient) PostReview(_ context.Context, _, _, text string) (model.Restaurant, error) {
	s.posted = append(s.posted, text)
	return s.post, s.postErr
}

func cafeX() model.Restaurant {
	return model.Restaurant{
		ID:      "r1",
		Name:    "Cafe X",
		City:    "Medan",
		Rating:  4.2,
		Reviews: []model.Review{{Name: "A", Text: "Good"}},
	}
}

func setup(sc *stubClient) (*controller.Controller, *View, *bytes.Buffer) {
	var buf bytes.Buffer
	v := NewView(&buf)
	ctrl := controller.New(controller.Config{RestaurantID: "r1", ReviewerName: "martinn"}, sc, v,
		controller.WithLogger(logging.Discard()))
	return ctrl, v, &buf
}

func TestRun_PrintsRestaurant(t *testing.T) {
	ctrl, v, buf := setup(&stubClient{fetch: cafeX()})

	require.NoError(t, Run(context.Background(), ctrl, v, "", nil))

	out := buf.String()
	assert.Contains(t, out, "Cafe X")
	assert.Contains(t, out, "Medan · ★ 4.2")
	assert.Contains(t, out, "Reviews (1)")
	assert.Contains(t, out, "  Good\n  - A\n")
}

func TestRun_FetchFailure(t *testing.T) {
	ctrl, v, buf := setup(&stubClient{fetchErr: errors.New("dns")})

	err := Run(context.Background(), ctrl, v, "Great food", nil)
	require.Error(t, err)
	assert.Contains(t, buf.String(), "error: Could not load restaurant")
	assert.NotContains(t, buf.String(), "Reviews (")
}

func TestRun_PostsReview(t *testing.T) {
	updated := cafeX()
	updated.Reviews = append(updated.Reviews, model.Review{Name: "martinn", Text: "Great food"})
	sc := &stubClient{fetch: cafeX(), post: updated}
	ctrl, v, buf := setup(sc)

	require.NoError(t, Run(context.Background(), ctrl, v, "Great food", nil))

	assert.Equal(t, []string{"Great food"}, sc.posted)
	assert.Contains(t, buf.String(), "Reviews (2)")
	assert.Contains(t, buf.String(), "Review posted.")
}

func TestRun_PostFailure(t *testing.T) {
	sc := &stubClient{fetch: cafeX(), postErr: errors.New("reset")}
	ctrl, v, _ := setup(sc)

	err := Run(context.Background(), ctrl, v, "Great food", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Could not post review")
}

func TestRun_UsesPromptWhenNoReviewGiven(t *testing.T) {
	sc := &stubClient{fetch: cafeX(), post: cafeX()}
	ctrl, v, _ := setup(sc)

	prompt := func(context.Context) (string, error) { return "From prompt", nil }
	require.NoError(t, Run(context.Background(), ctrl, v, "", prompt))
	assert.Equal(t, []string{"From prompt"}, sc.posted)
}

func TestRun_BlankPromptSkipsPost(t *testing.T) {
	sc := &stubClient{fetch: cafeX()}
	ctrl, v, _ := setup(sc)

	prompt := func(context.Context) (string, error) { return "  ", nil }
	require.NoError(t, Run(context.Background(), ctrl, v, "", prompt))
	assert.Empty(t, sc.posted)
}
