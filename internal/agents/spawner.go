// Villager spawning: rolls names, ages, trades, and starting coin for the
// founding population and later arrivals.
package agents

import (
	"fmt"
	"log/slog"

	"github.com/oakvale/villagesim/internal/entropy"
)

var firstNames = []string{
	"Aldric", "Berta", "Cedric", "Dunstan", "Edwina", "Falk", "Gisela",
	"Hamon", "Isolde", "Jorund", "Kendra", "Leofric", "Maelis", "Norbert",
	"Odelia", "Percival", "Quenild", "Rosamund", "Sigurd", "Thora",
	"Ulric", "Venna", "Wilmot", "Ysolt",
}

var lastNames = []string{
	"Ashdown", "Blackbrook", "Cooper", "Draper", "Eaves", "Fletcher",
	"Granger", "Hollowell", "Ironwood", "Kettleworth", "Longfield",
	"Marsh", "Netterly", "Oakhurst", "Pelham", "Quill", "Redfern",
	"Stokely", "Thatcher", "Underhill", "Wainwright", "Yarrow",
}

// Spawner creates villagers. It draws from the run's entropy source so a
// seed reproduces the same founding population.
type Spawner struct {
	src  *entropy.Source
	log  *slog.Logger
	used map[string]int
}

// NewSpawner creates a villager spawner.
func NewSpawner(src *entropy.Source, log *slog.Logger) *Spawner {
	return &Spawner{src: src, log: log, used: make(map[string]int)}
}

// uniqueName rolls a name, suffixing repeats so the population map keys
// stay distinct.
func (s *Spawner) uniqueName() string {
	name := entropy.Pick(s.src, firstNames) + " " + entropy.Pick(s.src, lastNames)
	s.used[name]++
	if n := s.used[name]; n > 1 {
		name = fmt.Sprintf("%s II", name)
		if n > 2 {
			name = fmt.Sprintf("%s (%d)", name, n)
		}
	}
	return name
}

// Spawn creates one villager with a rolled trade and modest starting coin.
func (s *Spawner) Spawn() *Villager {
	occ := entropy.Pick(s.src, Occupations)
	age := s.src.Between(16, 60)
	money := s.src.Uniform(10, 60)
	return NewVillager(s.uniqueName(), age, occ, money, s.src, s.log)
}

// SpawnPopulation creates the founding batch.
func (s *Spawner) SpawnPopulation(count int) []*Villager {
	out := make([]*Villager, 0, count)
	for i := 0; i < count; i++ {
		out = append(out, s.Spawn())
	}
	return out
}
