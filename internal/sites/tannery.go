package sites

import (
	"fmt"

	"github.com/oakvale/villagesim/internal/entropy"
	"github.com/oakvale/villagesim/internal/weather"
)

// Tannery constants.
const (
	tanneryDailyCapacity = 12   // hides processable per day
	tanneryAccidentBase  = 0.04 // per work shift
	tanneryRuinChance    = 0.15 // per hide, before skill reduction
	tanneryEffluent      = 0.003
	tanneryWagePerHide   = 1.5
)

// Tannery turns raw hides into leather. Throughput is capped per day and
// resets each morning; runoff pollutes the attached river.
type Tannery struct {
	Name string

	HidesProcessedToday int
	Operational         bool

	river *River
	src   *entropy.Source
}

// NewTannery creates a tannery draining into river. river may be nil for a
// dry-pit operation with no runoff.
func NewTannery(name string, river *River, src *entropy.Source) *Tannery {
	return &Tannery{
		Name:        name,
		Operational: true,
		river:       river,
		src:         src,
	}
}

// UpdateDaily resets daily throughput and rolls operational state. Deep
// cold stops the vats working.
func (t *Tannery) UpdateDaily(day weather.Snapshot) {
	t.HidesProcessedToday = 0
	t.Operational = day.Temperature > -5
}

// RemainingCapacity reports how many more hides fit today.
func (t *Tannery) RemainingCapacity() int {
	return max(0, tanneryDailyCapacity-t.HidesProcessedToday)
}

// WorkResult reports one tannery shift.
type WorkResult struct {
	HidesUsed int
	Leather   int
	Wages     float64
	Accident  bool
	Message   string
	Err       bool // invalid input only
}

// ProcessHides tans up to hides raw hides into leather. Skill reduces the
// per-hide ruin chance; wages are paid per hide actually processed. A hide
// ruined in the vat is consumed but yields nothing. Throughput never
// exceeds the daily capacity.
func (t *Tannery) ProcessHides(hides int, skill float64) WorkResult {
	if hides <= 0 {
		return WorkResult{Err: true, Message: "nothing to tan"}
	}
	if !t.Operational {
		return WorkResult{Message: fmt.Sprintf("%s vats are frozen solid", t.Name)}
	}
	capacity := t.RemainingCapacity()
	if capacity == 0 {
		return WorkResult{Message: fmt.Sprintf("%s is at capacity for today", t.Name)}
	}
	used := min(hides, capacity)
	t.HidesProcessedToday += used

	ruinChance := clamp(tanneryRuinChance-skill*0.02, 0.01, tanneryRuinChance)
	leather := 0
	for i := 0; i < used; i++ {
		if !t.src.Chance(ruinChance) {
			leather++
		}
	}

	if t.river != nil {
		t.river.Pollute(tanneryEffluent * float64(used))
	}

	res := WorkResult{
		HidesUsed: used,
		Leather:   leather,
		Wages:     tanneryWagePerHide * float64(used),
		Message:   fmt.Sprintf("tanned %d of %d hides", leather, used),
	}
	if t.src.Chance(tanneryAccidentBase - skill*0.005) {
		res.Accident = true
		res.Message += "; caught a splash of tanning liquor"
	}
	return res
}
