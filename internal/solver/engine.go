// Package solver holds the optimization engine that assigns employees to
// draft shifts, and the queue/redis client the API uses to talk to it. The
// roster core only ever sees the client's trigger/cancel/latest-result
// surface.
package solver

import (
	"fmt"
	"math/rand"
	"slices"
	"sort"
	"time"

	"github.com/rosterhub-dev/roster-manager/backend/internal/domain"
)

// Parameters of the genetic algorithm.
type Parameters struct {
	PopulationSize int
	MaxGenerations int
	CrossoverRate  float64
	MutationRate   float64
	EliteCount     int
}

type gene struct {
	shift      *domain.Shift
	employeeID *int64
}

type chromosome struct {
	genes []gene
	score domain.Score
}

// Engine assigns employees to the draft-region shifts of one roster
// snapshot. Published and historic shifts are never touched.
type Engine struct {
	parameters Parameters
	roster     *domain.Roster

	draftShifts  []*domain.Shift
	candidates   map[int64][]int64 // shift id -> employee ids holding all required skills
	availability map[availabilityKey]domain.AvailabilityState
}

type availabilityKey struct {
	employeeID int64
	day        int64
}

func NewEngine(parameters Parameters, roster *domain.Roster) (*Engine, error) {
	if roster == nil || roster.State == nil {
		return nil, fmt.Errorf("roster snapshot with state is required: %w", domain.ErrInvalidArgument)
	}
	if parameters.PopulationSize < 1 || parameters.MaxGenerations < 1 {
		return nil, fmt.Errorf("population size and generations must be positive: %w", domain.ErrInvalidArgument)
	}
	if parameters.EliteCount > parameters.PopulationSize {
		parameters.EliteCount = parameters.PopulationSize
	}

	e := &Engine{
		parameters:   parameters,
		roster:       roster,
		candidates:   make(map[int64][]int64),
		availability: make(map[availabilityKey]domain.AvailabilityState),
	}

	spotsByID := make(map[int64]*domain.Spot, len(roster.Spots))
	for _, spot := range roster.Spots {
		spotsByID[spot.ID] = spot
	}

	for _, shift := range roster.Shifts {
		if !roster.State.IsDraft(startOfDay(shift.StartTime)) {
			continue
		}
		e.draftShifts = append(e.draftShifts, shift)

		spot := spotsByID[shift.SpotID]
		for _, employee := range roster.Employees {
			if spot == nil || hasAllSkills(employee, spot.RequiredSkillIDs) {
				e.candidates[shift.ID] = append(e.candidates[shift.ID], employee.ID)
			}
		}
	}

	for _, availability := range roster.Availabilities {
		key := availabilityKey{employeeID: availability.EmployeeID, day: epochDay(availability.Date)}
		e.availability[key] = availability.State
	}

	return e, nil
}

// Solve runs the genetic algorithm and returns the snapshot with the best
// assignments and score filled in. cancelled is polled between generations;
// a cancelled run still returns the best roster found so far.
func (e *Engine) Solve(cancelled func() bool) *domain.Roster {
	pop := make([]*chromosome, e.parameters.PopulationSize)
	for i := range pop {
		pop[i] = e.randomChromosome()
		pop[i].score = e.evaluate(pop[i])
	}

	best := clone(pop[0])
	for gen := 0; gen < e.parameters.MaxGenerations; gen++ {
		if cancelled != nil && cancelled() {
			break
		}

		for _, ch := range pop {
			if best.score.Less(ch.score) {
				best = clone(ch)
			}
		}

		sort.Slice(pop, func(i, j int) bool {
			return pop[j].score.Less(pop[i].score)
		})

		newPop := make([]*chromosome, 0, e.parameters.PopulationSize)
		for _, elite := range pop[:e.parameters.EliteCount] {
			newPop = append(newPop, clone(elite))
		}

		for len(newPop) < e.parameters.PopulationSize {
			p1 := clone(e.selectByRoulette(pop))
			p2 := clone(e.selectByRoulette(pop))

			if rand.Float64() < e.parameters.CrossoverRate {
				e.singlePointCrossover(p1, p2)
			}

			e.mutate(p1)
			e.mutate(p2)

			newPop = append(newPop, p1)
			if len(newPop) < e.parameters.PopulationSize {
				newPop = append(newPop, p2)
			}
		}

		pop = newPop
		for _, ch := range pop {
			ch.score = e.evaluate(ch)
		}
	}

	for _, ch := range pop {
		if best.score.Less(ch.score) {
			best = clone(ch)
		}
	}

	return e.applyToRoster(best)
}

func (e *Engine) randomChromosome() *chromosome {
	genes := make([]gene, len(e.draftShifts))
	for i, shift := range e.draftShifts {
		genes[i] = gene{shift: shift, employeeID: e.randomCandidate(shift.ID)}
	}
	return &chromosome{genes: genes}
}

func (e *Engine) randomCandidate(shiftID int64) *int64 {
	candidates := e.candidates[shiftID]
	if len(candidates) == 0 {
		return nil
	}
	// Leave an occasional shift open so the search can trade coverage
	// against hard constraints.
	if rand.Float64() < 0.05 {
		return nil
	}
	id := candidates[rand.Intn(len(candidates))]
	return &id
}

func (e *Engine) evaluate(ch *chromosome) domain.Score {
	var hard, soft int64

	spotsByID := make(map[int64]*domain.Spot, len(e.roster.Spots))
	for _, spot := range e.roster.Spots {
		spotsByID[spot.ID] = spot
	}
	employeesByID := make(map[int64]*domain.Employee, len(e.roster.Employees))
	for _, employee := range e.roster.Employees {
		employeesByID[employee.ID] = employee
	}

	workMinutes := make(map[int64]int64)
	assigned := make(map[int64][]gene)

	for _, g := range ch.genes {
		if g.employeeID == nil {
			soft--
			continue
		}

		employee := employeesByID[*g.employeeID]
		spot := spotsByID[g.shift.SpotID]
		if employee == nil || (spot != nil && !hasAllSkills(employee, spot.RequiredSkillIDs)) {
			hard--
		}

		switch e.availability[availabilityKey{employeeID: *g.employeeID, day: epochDay(startOfDay(g.shift.StartTime))}] {
		case domain.AvailabilityUnavailable:
			hard--
		case domain.AvailabilityUndesired:
			soft--
		case domain.AvailabilityDesired:
			soft++
		}

		for _, other := range assigned[*g.employeeID] {
			if g.shift.StartTime.Before(other.shift.EndTime) && other.shift.StartTime.Before(g.shift.EndTime) {
				hard--
			}
		}
		assigned[*g.employeeID] = append(assigned[*g.employeeID], g)
		workMinutes[*g.employeeID] += int64(g.shift.EndTime.Sub(g.shift.StartTime).Minutes())
	}

	// Workload fairness: penalize the spread between the busiest and the
	// least busy assigned employee, in hours.
	if len(workMinutes) > 1 {
		var minWork, maxWork int64 = -1, 0
		for _, minutes := range workMinutes {
			if minWork < 0 || minutes < minWork {
				minWork = minutes
			}
			if minutes > maxWork {
				maxWork = minutes
			}
		}
		soft -= (maxWork - minWork) / 60
	}

	return domain.Score{Hard: hard, Soft: soft}
}

// selectByRoulette picks a parent with probability proportional to its score
// shifted into positive territory (scores are usually negative).
func (e *Engine) selectByRoulette(pop []*chromosome) *chromosome {
	worst := pop[0].score
	for _, ch := range pop {
		if ch.score.Less(worst) {
			worst = ch.score
		}
	}

	weight := func(ch *chromosome) float64 {
		return float64(ch.score.Hard-worst.Hard)*1000 + float64(ch.score.Soft-worst.Soft) + 1
	}

	total := 0.0
	for _, ch := range pop {
		total += weight(ch)
	}

	pick := rand.Float64() * total
	partial := 0.0
	for _, ch := range pop {
		partial += weight(ch)
		if partial >= pick {
			return ch
		}
	}

	return pop[len(pop)-1]
}

func (e *Engine) singlePointCrossover(ch1, ch2 *chromosome) {
	if len(ch1.genes) != len(ch2.genes) || len(ch1.genes) == 0 {
		return
	}

	point := rand.Intn(len(ch1.genes))
	for i := point; i < len(ch1.genes); i++ {
		ch1.genes[i].employeeID, ch2.genes[i].employeeID = ch2.genes[i].employeeID, ch1.genes[i].employeeID
	}
}

func (e *Engine) mutate(ch *chromosome) {
	for i := range ch.genes {
		if rand.Float64() > e.parameters.MutationRate {
			continue
		}
		ch.genes[i].employeeID = e.randomCandidate(ch.genes[i].shift.ID)
	}
}

func (e *Engine) applyToRoster(best *chromosome) *domain.Roster {
	assignments := make(map[int64]*int64, len(best.genes))
	for _, g := range best.genes {
		assignments[g.shift.ID] = g.employeeID
	}

	result := *e.roster
	result.Shifts = make([]*domain.Shift, len(e.roster.Shifts))
	for i, shift := range e.roster.Shifts {
		copied := *shift
		if employeeID, ok := assignments[shift.ID]; ok {
			copied.EmployeeID = employeeID
		}
		result.Shifts[i] = &copied
	}
	result.Score = &domain.Score{Hard: best.score.Hard, Soft: best.score.Soft}

	return &result
}

func clone(ch *chromosome) *chromosome {
	genes := make([]gene, len(ch.genes))
	copy(genes, ch.genes)
	return &chromosome{genes: genes, score: ch.score}
}

func hasAllSkills(employee *domain.Employee, required []int64) bool {
	for _, skillID := range required {
		if !slices.Contains(employee.SkillIDs, skillID) {
			return false
		}
	}
	return true
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func epochDay(date time.Time) int64 {
	return date.Unix() / (24 * 60 * 60)
}
