package memory

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/netreach/internal/core/domain"
)

func newScenario(id string, created time.Time) *domain.Scenario {
	return &domain.Scenario{
		ID:             id,
		Name:           "Scenario " + id,
		TargetAudience: "All 18-44",
		City:           "RF",
		Plan:           []domain.PlanItem{{Name: "TV", Reach: 50}},
		Result:         &domain.CalculationResult{FinalReach: 0.5},
		CreatedAt:      created,
	}
}

func TestScenarioStore_SaveAndGet(t *testing.T) {
	store := NewScenarioStore()
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, newScenario("a", time.Now())))

	got, err := store.Get(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, "Scenario a", got.Name)
	assert.Equal(t, 0.5, got.Result.FinalReach)
}

func TestScenarioStore_Get_NotFound(t *testing.T) {
	store := NewScenarioStore()

	got, err := store.Get(context.Background(), "missing")

	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Nil(t, got)
}

func TestScenarioStore_Save_Update(t *testing.T) {
	store := NewScenarioStore()
	ctx := context.Background()
	sc := newScenario("a", time.Now())

	require.NoError(t, store.Save(ctx, sc))
	sc.Name = "renamed"
	require.NoError(t, store.Save(ctx, sc))

	got, err := store.Get(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, "renamed", got.Name)

	all, err := store.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestScenarioStore_Save_CopiesPlan(t *testing.T) {
	store := NewScenarioStore()
	ctx := context.Background()
	sc := newScenario("a", time.Now())
	require.NoError(t, store.Save(ctx, sc))

	sc.Plan[0].Reach = 99

	got, err := store.Get(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, 50.0, got.Plan[0].Reach)
}

func TestScenarioStore_Delete(t *testing.T) {
	store := NewScenarioStore()
	ctx := context.Background()
	require.NoError(t, store.Save(ctx, newScenario("a", time.Now())))

	require.NoError(t, store.Delete(ctx, "a"))

	_, err := store.Get(ctx, "a")
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.NoError(t, store.Delete(ctx, "a"), "deleting a missing scenario is a no-op")
}

func TestScenarioStore_List_OldestFirst(t *testing.T) {
	store := NewScenarioStore()
	ctx := context.Background()
	base := time.Date(2024, 7, 19, 12, 0, 0, 0, time.UTC)

	require.NoError(t, store.Save(ctx, newScenario("c", base.Add(2*time.Hour))))
	require.NoError(t, store.Save(ctx, newScenario("a", base)))
	require.NoError(t, store.Save(ctx, newScenario("b", base.Add(time.Hour))))

	all, err := store.List(ctx)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "a", all[0].ID)
	assert.Equal(t, "b", all[1].ID)
	assert.Equal(t, "c", all[2].ID)
}

func TestScenarioStore_List_Empty(t *testing.T) {
	all, err := NewScenarioStore().List(context.Background())

	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestScenarioStore_Concurrent(t *testing.T) {
	store := NewScenarioStore()
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			id := fmt.Sprintf("s-%d", i)
			_ = store.Save(ctx, newScenario(id, time.Now()))
			_, _ = store.Get(ctx, id)
			_, _ = store.List(ctx)
		}(i)
	}
	wg.Wait()

	all, err := store.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 50)
}
