package item_test

import (
	"math/rand/v2"
	"testing"
	"time"

	"printflow/internal/core/domain/model/item"
	"printflow/internal/core/domain/model/kernel"
	"printflow/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var baseTime = time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)

func newTestItem(t *testing.T, partIDs ...kernel.UUID) *item.Item {
	t.Helper()
	if len(partIDs) == 0 {
		partIDs = []kernel.UUID{kernel.NewUUID()}
	}
	specs := make([]item.PartSpec, 0, len(partIDs))
	for _, id := range partIDs {
		specs = append(specs, item.PartSpec{PartID: id, Quantity: 1})
	}
	it, err := item.NewItem(
		kernel.NewUUID(), kernel.NewUUID(), "Dragon plate",
		[]kernel.UUID{kernel.NewUUID(), kernel.NewUUID()},
		specs, baseTime,
	)
	require.NoError(t, err)
	return it
}

func advanceTo(t *testing.T, it *item.Item, target item.Status) {
	t.Helper()
	for it.Status() < target {
		next, err := it.Status().Next()
		require.NoError(t, err)
		require.NoError(t, it.Advance(next, "", baseTime))
	}
}

func TestNewItem(t *testing.T) {
	t.Run("should start in queue with a created audit entry", func(t *testing.T) {
		it := newTestItem(t)

		require.NoError(t, it.Validate())
		assert.Equal(t, item.InQueue, it.Status())
		changes := it.PendingChanges()
		require.Len(t, changes, 1)
		assert.Nil(t, changes[0].From)
		assert.Equal(t, item.InQueue, changes[0].To)
		assert.Equal(t, item.CreatedReason, changes[0].Reason)
	})

	t.Run("should number colors densely from one", func(t *testing.T) {
		it := newTestItem(t)

		colors := it.Colors()
		require.Len(t, colors, 2)
		assert.Equal(t, 1, colors[0].Position)
		assert.Equal(t, 2, colors[1].Position)
	})

	t.Run("should reject invalid input", func(t *testing.T) {
		partSpecs := []item.PartSpec{{PartID: kernel.NewUUID(), Quantity: 1}}
		oneColor := []kernel.UUID{kernel.NewUUID()}
		fiveColors := []kernel.UUID{kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID()}
		dupPart := kernel.NewUUID()

		testCases := []struct {
			name     string
			itemName string
			colors   []kernel.UUID
			parts    []item.PartSpec
			target   error
		}{
			{"blank name", "  ", oneColor, partSpecs, errs.ErrValueIsRequired},
			{"no colors", "plate", nil, partSpecs, errs.ErrValueIsOutOfRange},
			{"five colors", "plate", fiveColors, partSpecs, errs.ErrValueIsOutOfRange},
			{"no parts", "plate", oneColor, nil, errs.ErrValueIsRequired},
			{"zero quantity", "plate", oneColor, []item.PartSpec{{PartID: kernel.NewUUID(), Quantity: 0}}, errs.ErrValueIsInvalid},
			{
				"duplicate part", "plate", oneColor,
				[]item.PartSpec{{PartID: dupPart, Quantity: 1}, {PartID: dupPart, Quantity: 2}},
				errs.ErrValueIsInvalid,
			},
		}

		for _, tc := range testCases {
			t.Run(tc.name, func(t *testing.T) {
				_, err := item.NewItem(kernel.NewUUID(), kernel.NewUUID(), tc.itemName, tc.colors, tc.parts, baseTime)

				require.ErrorIs(t, err, tc.target)
			})
		}
	})

	t.Run("zero value item fails validation", func(t *testing.T) {
		var it item.Item

		require.ErrorIs(t, it.Validate(), item.ErrItemIsNotConstructed)
	})
}

func TestRestoreItem(t *testing.T) {
	colorA, colorB := kernel.NewUUID(), kernel.NewUUID()
	part, err := item.RestorePart(kernel.NewUUID(), 2, true)
	require.NoError(t, err)

	t.Run("should order colors by position and keep version", func(t *testing.T) {
		it, err := item.RestoreItem(
			kernel.NewUUID(), kernel.NewUUID(), "plate", item.Assembled,
			[]item.ColorSlot{{ColorID: colorB, Position: 2}, {ColorID: colorA, Position: 1}},
			[]*item.Part{part}, baseTime, baseTime, 7,
		)

		require.NoError(t, err)
		assert.Equal(t, 7, it.Version())
		assert.True(t, it.Colors()[0].ColorID.IsEqual(colorA))
		assert.Empty(t, it.PendingChanges())
		assert.Len(t, it.PartsNeedingReprint(), 1)
	})

	t.Run("should reject gaps in color order", func(t *testing.T) {
		_, err := item.RestoreItem(
			kernel.NewUUID(), kernel.NewUUID(), "plate", item.InQueue,
			[]item.ColorSlot{{ColorID: colorA, Position: 1}, {ColorID: colorB, Position: 3}},
			[]*item.Part{part}, baseTime, baseTime, 1,
		)

		require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
	})

	t.Run("should reject unknown status", func(t *testing.T) {
		_, err := item.RestoreItem(
			kernel.NewUUID(), kernel.NewUUID(), "plate", item.Unknown,
			[]item.ColorSlot{{ColorID: colorA, Position: 1}},
			[]*item.Part{part}, baseTime, baseTime, 1,
		)

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}

func TestItem_Advance(t *testing.T) {
	t.Run("should walk the full production line", func(t *testing.T) {
		it := newTestItem(t)

		for _, next := range item.AllStatuses()[1:] {
			require.NoError(t, it.Advance(next, "", baseTime.Add(time.Minute)))
			assert.Equal(t, next, it.Status())
		}

		changes := it.PendingChanges()
		require.Len(t, changes, 6)
		for idx, change := range changes[1:] {
			assert.Equal(t, changes[idx].To, *change.From)
			assert.Equal(t, item.DefaultAdvanceReason, change.Reason)
		}
	})

	t.Run("should keep caller reason", func(t *testing.T) {
		it := newTestItem(t)

		require.NoError(t, it.Advance(item.InPrintfarm, "printer 3", baseTime))

		changes := it.PendingChanges()
		assert.Equal(t, "printer 3", changes[len(changes)-1].Reason)
	})

	t.Run("should refuse to skip stages without side effects", func(t *testing.T) {
		it := newTestItem(t)

		err := it.Advance(item.Printed, "", baseTime)

		require.ErrorIs(t, err, errs.ErrInvalidTransition)
		assert.Equal(t, item.InQueue, it.Status())
		assert.Len(t, it.PendingChanges(), 1)
	})

	t.Run("should refuse to move backwards", func(t *testing.T) {
		it := newTestItem(t)
		advanceTo(t, it, item.Assembled)

		require.ErrorIs(t, it.Advance(item.InQueue, "", baseTime), errs.ErrInvalidTransition)
		require.ErrorIs(t, it.Advance(item.Printed, "", baseTime), errs.ErrInvalidTransition)
	})
}

func TestItem_RequestReprint(t *testing.T) {
	t.Run("part reprint flags only the named part and resets status", func(t *testing.T) {
		p1, p2 := kernel.NewUUID(), kernel.NewUUID()
		it := newTestItem(t, p1, p2)
		advanceTo(t, it, item.Assembled)
		scope, err := item.NewPartSet(p1)
		require.NoError(t, err)

		require.NoError(t, it.RequestReprint(scope, "color mismatch", baseTime))

		assert.Equal(t, item.InQueue, it.Status())
		parts := it.Parts()
		assert.True(t, parts[0].NeedsReprint())
		assert.False(t, parts[1].NeedsReprint())
		changes := it.PendingChanges()
		last := changes[len(changes)-1]
		assert.Equal(t, item.Assembled, *last.From)
		assert.Equal(t, item.InQueue, last.To)
		assert.Equal(t, "color mismatch", last.Reason)
	})

	t.Run("entire item reprint resets without flagging parts", func(t *testing.T) {
		it := newTestItem(t)
		advanceTo(t, it, item.Packed)

		require.NoError(t, it.RequestReprint(item.EntireItem{}, "", baseTime))

		assert.Equal(t, item.InQueue, it.Status())
		assert.Empty(t, it.PartsNeedingReprint())
		changes := it.PendingChanges()
		assert.Equal(t, item.DefaultReprintReason, changes[len(changes)-1].Reason)
	})

	t.Run("entire item reprint in queue is a no-op", func(t *testing.T) {
		it := newTestItem(t)

		err := it.RequestReprint(item.EntireItem{}, "warped", baseTime)

		require.ErrorIs(t, err, errs.ErrNoOpTransition)
		assert.Len(t, it.PendingChanges(), 1)
	})

	t.Run("part reprint in queue stores flags without an audit entry", func(t *testing.T) {
		p1 := kernel.NewUUID()
		it := newTestItem(t, p1)
		scope, _ := item.NewPartSet(p1)

		require.NoError(t, it.RequestReprint(scope, "layer shift", baseTime))

		assert.Equal(t, item.InQueue, it.Status())
		assert.Equal(t, []kernel.UUID{p1}, it.PartsNeedingReprint())
		assert.Len(t, it.PendingChanges(), 1)
	})

	t.Run("unknown part fails without flagging anything", func(t *testing.T) {
		p1 := kernel.NewUUID()
		it := newTestItem(t, p1)
		advanceTo(t, it, item.Printed)
		scope, _ := item.NewPartSet(p1, kernel.NewUUID())

		err := it.RequestReprint(scope, "", baseTime)

		require.ErrorIs(t, err, errs.ErrUnknownPart)
		assert.Equal(t, item.Printed, it.Status())
		assert.Empty(t, it.PartsNeedingReprint())
	})

	t.Run("shipped items cannot be reprinted", func(t *testing.T) {
		p1 := kernel.NewUUID()
		it := newTestItem(t, p1)
		advanceTo(t, it, item.Shipped)
		scope, _ := item.NewPartSet(p1)

		require.ErrorIs(t, it.RequestReprint(item.EntireItem{}, "", baseTime), errs.ErrInvalidTransition)
		require.ErrorIs(t, it.RequestReprint(scope, "", baseTime), errs.ErrInvalidTransition)
		assert.Empty(t, it.PartsNeedingReprint())
	})
}

func TestItem_CompleteReprint(t *testing.T) {
	p1, p2 := kernel.NewUUID(), kernel.NewUUID()
	it := newTestItem(t, p1, p2)
	advanceTo(t, it, item.Printed)
	scope, _ := item.NewPartSet(p1, p2)
	require.NoError(t, it.RequestReprint(scope, "", baseTime))

	t.Run("clears only the named flags and keeps status", func(t *testing.T) {
		require.NoError(t, it.CompleteReprint([]kernel.UUID{p2}, baseTime))

		assert.Equal(t, []kernel.UUID{p1}, it.PartsNeedingReprint())
		assert.Equal(t, item.InQueue, it.Status())
	})

	t.Run("rejects foreign parts", func(t *testing.T) {
		require.ErrorIs(t, it.CompleteReprint([]kernel.UUID{kernel.NewUUID()}, baseTime), errs.ErrUnknownPart)
	})

	t.Run("requires at least one part", func(t *testing.T) {
		require.ErrorIs(t, it.CompleteReprint(nil, baseTime), errs.ErrValueIsRequired)
	})
}

func TestNewPartSet(t *testing.T) {
	p1 := kernel.NewUUID()

	scope, err := item.NewPartSet(p1, p1)
	require.NoError(t, err)
	assert.Equal(t, []kernel.UUID{p1}, scope.PartIDs())

	_, err = item.NewPartSet()
	require.ErrorIs(t, err, errs.ErrValueIsRequired)

	_, err = item.NewPartSet(kernel.UUID{})
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
}

// Random operation sequences must leave a history in which every entry starts
// where the previous one ended, and every backward move is a reset to InQueue.
func TestItem_HistoryIsForwardOnlyExceptResets(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 2))
	p1 := kernel.NewUUID()

	for run := 0; run < 50; run++ {
		it := newTestItem(t, p1)
		for step := 0; step < 40; step++ {
			switch rng.IntN(4) {
			case 0:
				_ = it.RequestReprint(item.EntireItem{}, "", baseTime)
			case 1:
				scope, _ := item.NewPartSet(p1)
				_ = it.RequestReprint(scope, "", baseTime)
			default:
				_ = it.Advance(item.Status(rng.IntN(8)), "", baseTime)
			}
		}

		changes := it.PendingChanges()
		require.NotEmpty(t, changes)
		assert.Nil(t, changes[0].From)
		for idx := 1; idx < len(changes); idx++ {
			prev, cur := changes[idx-1], changes[idx]
			require.NotNil(t, cur.From)
			assert.Equal(t, prev.To, *cur.From)
			if cur.To < *cur.From {
				assert.Equal(t, item.InQueue, cur.To)
			} else {
				assert.Equal(t, int(*cur.From)+1, int(cur.To))
			}
		}
		assert.Equal(t, changes[len(changes)-1].To, it.Status())
	}
}

func TestItem_MarkPersisted(t *testing.T) {
	it := newTestItem(t)

	it.MarkPersisted(1)

	assert.Empty(t, it.PendingChanges())
	assert.Equal(t, 1, it.Version())
}
