package core_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/library-circulation-go/library/shared/core"
)

func Test_HoldQueue_IsOrderedByCreatedAt_TiesByAppendOrder(t *testing.T) {
	// arrange
	itemID := uuid.New()
	first, second, third := uuid.New(), uuid.New(), uuid.New()
	t0 := time.Unix(1000, 0).UTC()

	history := core.DomainEvents{
		core.BuildHoldRequested(uuid.New(), itemID, third, t0.Add(time.Minute)),
		core.BuildHoldRequested(uuid.New(), itemID, first, t0),
		core.BuildHoldRequested(uuid.New(), itemID, second, t0.Add(time.Minute)),
	}

	// act
	queue := core.ProjectItemCirculation(history, itemID.String()).Queue()

	// assert
	require.Len(t, queue, 3)
	assert.Equal(t, first.String(), queue[0].MemberID)
	assert.Equal(t, third.String(), queue[1].MemberID)
	assert.Equal(t, second.String(), queue[2].MemberID)
	assert.Equal(t, 2, queue.PositionOf(third.String()))
	assert.Equal(t, 0, queue.PositionOf(uuid.NewString()))
}

func Test_HoldQueue_Cancel_KeepsRelativeOrderOfTheRest(t *testing.T) {
	// arrange
	itemID := uuid.New()
	members := []uuid.UUID{uuid.New(), uuid.New(), uuid.New(), uuid.New()}
	t0 := time.Unix(1000, 0).UTC()

	history := core.DomainEvents{}
	holds := make([]core.HoldRequested, 0, len(members))
	for i, memberID := range members {
		hold := core.BuildHoldRequested(uuid.New(), itemID, memberID, t0.Add(time.Duration(i)*time.Minute))
		holds = append(holds, hold)
		history = append(history, hold)
	}

	cancelled := core.ProjectItemCirculation(history, itemID.String()).Queue()[1]
	history = append(history, core.BuildHoldCancelled(cancelled, t0.Add(time.Hour)))

	// act
	queue := core.ProjectItemCirculation(history, itemID.String()).Queue()

	// assert
	require.Len(t, queue, 3)
	assert.Equal(t, holds[0].HoldID, queue[0].HoldID)
	assert.Equal(t, holds[2].HoldID, queue[1].HoldID)
	assert.Equal(t, holds[3].HoldID, queue[2].HoldID)
}

func Test_HoldQueue_AtMostOneNextInLine(t *testing.T) {
	itemID := uuid.New()
	t0 := time.Unix(1000, 0).UTC()

	history := core.DomainEvents{}
	for i := 0; i < 5; i++ {
		history = append(history, core.BuildHoldRequested(uuid.New(), itemID, uuid.New(), t0))
	}

	queue := core.ProjectItemCirculation(history, itemID.String()).Queue()

	nextInLine := 0
	for _, hold := range queue {
		if queue.IsNextInLine(hold.HoldID) {
			nextInLine++
		}
	}
	assert.Equal(t, 1, nextInLine)

	empty := core.BuildHoldQueue(nil)
	_, ok := empty.Next()
	assert.False(t, ok)
	assert.False(t, empty.IsNextInLine(uuid.NewString()))
}

func Test_HoldQueue_Without(t *testing.T) {
	itemID := uuid.New()
	t0 := time.Unix(1000, 0).UTC()
	a := core.BuildHoldRequested(uuid.New(), itemID, uuid.New(), t0)
	b := core.BuildHoldRequested(uuid.New(), itemID, uuid.New(), t0.Add(time.Second))

	queue := core.ProjectItemCirculation(core.DomainEvents{a, b}, itemID.String()).Queue()
	rest := queue.Without(a.HoldID)

	require.Len(t, rest, 1)
	assert.Equal(t, b.HoldID, rest[0].HoldID)
	assert.Len(t, queue, 2)
}
