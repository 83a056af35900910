// Package rota turns the roster and activity list into a duty schedule.
package rota

import (
	"errors"
	"log/slog"
	"math/rand/v2"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/danli429/team-scheduling-system/internal/model"
	"github.com/danli429/team-scheduling-system/internal/recurrence"
	"github.com/danli429/team-scheduling-system/internal/store"
)

var (
	ErrNoActiveMembers  = errors.New("no active members to assign")
	ErrNoActivities     = errors.New("no activities to schedule")
	ErrInvalidDateRange = errors.New("start date is after end date")
)

type Generator struct {
	store *store.Store
	log   *slog.Logger
	rand  *rand.Rand
}

func New(st *store.Store, log *slog.Logger) *Generator {
	seed := uint64(time.Now().UnixNano())
	return &Generator{
		store: st,
		log:   log,
		rand:  rand.New(rand.NewPCG(seed, seed>>32)),
	}
}

// Generate replaces the whole schedule with a fresh plan covering
// [start, end] inclusive and resets the fairness counters for the run.
//
// Preconditions are checked before the previous batch is discarded, so a
// failed run never loses the existing plan. Participation counts are
// shared mutable state for the whole run: occurrences assigned while
// planning one activity influence the ordering snapshots of the
// activities that follow.
func (g *Generator) Generate(start, end model.Date) ([]model.ScheduleEntry, error) {
	if start.After(end.Time) {
		return nil, ErrInvalidDateRange
	}

	members := g.store.Members()
	working := activePointers(members)
	if len(working) == 0 {
		return nil, ErrNoActiveMembers
	}

	activities := g.store.Activities()
	if len(activities) == 0 {
		return nil, ErrNoActivities
	}

	if err := g.store.ReplaceSchedules(nil); err != nil {
		return nil, err
	}

	for _, m := range working {
		m.ParticipationCount = 0
	}

	algorithm := g.store.Settings().Algorithm
	entries := []model.ScheduleEntry{}
	for _, activity := range activities {
		entries = append(entries, g.planActivity(activity, working, algorithm, start, end)...)
	}

	if err := g.store.SaveGeneration(entries, members); err != nil {
		return nil, err
	}

	g.log.Info("schedule generated",
		"entries", len(entries),
		"activities", len(activities),
		"members", len(working),
		"algorithm", string(algorithm),
		"from", start.String(),
		"to", end.String(),
	)
	return entries, nil
}

// planActivity emits one entry per occurrence of the activity in the
// window. The count-sorted snapshot is taken once here; rotation and
// random draw from it unchanged, balanced keeps re-sorting the working
// set as counts move.
func (g *Generator) planActivity(activity model.Activity, members []*model.Member, algorithm model.Algorithm, start, end model.Date) []model.ScheduleEntry {
	working := make([]*model.Member, len(members))
	copy(working, members)
	sortByCount(working)

	snapshot := make([]*model.Member, len(working))
	copy(snapshot, working)

	entries := []model.ScheduleEntry{}
	rotation := 0
	for _, date := range recurrence.Expand(start, end, activity.Frequency, activity.FrequencyUnit) {
		var pick *model.Member
		switch algorithm {
		case model.AlgorithmRotation:
			pick = snapshot[rotation%len(snapshot)]
			rotation++
		case model.AlgorithmRandom:
			pick = snapshot[g.rand.IntN(len(snapshot))]
		case model.AlgorithmBalanced:
			sortByCount(working)
			pick = working[0]
		default:
			pick = snapshot[0]
		}

		entries = append(entries, model.ScheduleEntry{
			ID:           uuid.NewString(),
			ActivityID:   activity.ID,
			ActivityName: activity.Name,
			MemberID:     pick.ID,
			MemberName:   pick.Name,
			Date:         date,
		})
		pick.ParticipationCount++
	}
	return entries
}

// activePointers returns pointers to the active members inside the full
// slice, so count updates land in the collection that gets persisted.
func activePointers(members []model.Member) []*model.Member {
	active := []*model.Member{}
	for i := range members {
		if members[i].Active() {
			active = append(active, &members[i])
		}
	}
	return active
}

func sortByCount(members []*model.Member) {
	sort.SliceStable(members, func(i, j int) bool {
		return members[i].ParticipationCount < members[j].ParticipationCount
	})
}
