package seeder

import (
	"fmt"
	"math/rand"
	"time"
)

var (
	firstNames = []string{
		"James", "Mary", "Robert", "Patricia", "John", "Jennifer", "Michael", "Linda",
		"David", "Elizabeth", "William", "Barbara", "Richard", "Susan", "Joseph", "Jessica",
		"Priya", "Arjun", "Ananya", "Rohan", "Mei", "Hiroshi", "Yuki", "Lukas",
		"Sofia", "Mateo", "Amara", "Kwame", "Olivia", "Noah", "Emma", "Liam",
	}
	lastNames = []string{
		"Smith", "Johnson", "Williams", "Brown", "Jones", "Garcia", "Miller", "Davis",
		"Rodriguez", "Martinez", "Patel", "Sharma", "Iyer", "Tanaka", "Sato", "Müller",
		"Schmidt", "Rossi", "Silva", "Okafor", "Mensah", "Nguyen", "Kim", "Chen",
	}
	companySuffixes = []string{"Inc", "LLC", "Ltd", "Group", "and Sons", "PLC", "GmbH", "Trading Co"}
	countries       = []string{
		"India", "United States", "United Kingdom", "Germany", "Singapore", "Australia",
		"Canada", "Japan", "France", "Brazil", "Netherlands", "Sweden", "South Africa",
		"Mexico", "Spain", "Italy", "Ireland", "New Zealand", "Kenya", "Vietnam",
	}
	freeEmailDomains = []string{"gmail.com", "yahoo.com", "hotmail.com", "outlook.com", "icloud.com", "proton.me"}
	words            = []string{
		"alpha", "nova", "prime", "lite", "pro", "max", "eco", "flex", "core", "edge",
		"smart", "ultra", "classic", "air", "zen", "pulse", "terra", "luna", "apex", "vivid",
	}
)

// Faker produces human-looking values from its own seeded stream so that
// name and date draws never shift the business-rule stream.
type Faker struct {
	rand *rand.Rand
	now  time.Time
}

func NewFaker(seed int64, now time.Time) *Faker {
	return &Faker{
		rand: rand.New(rand.NewSource(seed)),
		now:  now,
	}
}

func (f *Faker) Name() string {
	return pick(f.rand, firstNames) + " " + pick(f.rand, lastNames)
}

func (f *Faker) Company() string {
	return fmt.Sprintf("%s %s", pick(f.rand, lastNames), pick(f.rand, companySuffixes))
}

func (f *Faker) Country() string {
	return pick(f.rand, countries)
}

func (f *Faker) FreeEmailDomain() string {
	return pick(f.rand, freeEmailDomains)
}

func (f *Faker) Word() string {
	return pick(f.rand, words)
}

// TimeWithinYears returns a second-precision instant uniformly drawn from
// the trailing window of the given number of years.
func (f *Faker) TimeWithinYears(years int) time.Time {
	start := f.now.AddDate(-years, 0, 0)
	span := f.now.Sub(start)
	offset := time.Duration(f.rand.Int63n(int64(span/time.Second)+1)) * time.Second
	return start.Add(offset).Truncate(time.Second)
}

func pick(r *rand.Rand, values []string) string {
	return values[r.Intn(len(values))]
}
