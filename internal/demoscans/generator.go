package demoscans

import (
	"math"
	"math/rand/v2"
	"slices"
	"strconv"
	"time"

	"github.com/okian/mindscan/internal/domain/model"
	"github.com/okian/mindscan/internal/domain/scoring"
)

// Strain random walk parameters.
const (
	strainStart   = 0.35
	strainStep    = 0.18
	answerNoise   = 0.6
	habitBaseline = 0.75
)

// Lifestyle questions whose higher answers mean more strain. Every other
// lifestyle question is protective.
var strainingLifestyle = []string{"screen"}

// Generate builds cfg.Days consecutive days ending at cfg.Now. The same seed
// and questionnaire always yield the same answers and habits.
func Generate(cfg Config, questions []scoring.Question) []Day {
	n, now := cfg.Days, cfg.Now
	if n <= 0 {
		n = DefaultDays
	}
	if now == nil {
		now = time.Now
	}
	rng := rand.New(rand.NewPCG(cfg.Seed, cfg.Seed^0x9e3779b97f4a7c15))

	today := now()
	first := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, today.Location()).
		AddDate(0, 0, -(n - 1))

	days := make([]Day, n)
	strain := strainStart
	for i := range days {
		strain = model.Clamp(strain+rng.NormFloat64()*strainStep, 0, 1)
		date := first.AddDate(0, 0, i).Format(model.DateLayout)
		days[i] = Day{
			Date:         date,
			SubmissionID: "demo-" + strconv.FormatUint(cfg.Seed, 10) + "-" + date,
			Strain:       math.Round(strain*100) / 100,
			Answers:      generateAnswers(rng, questions, strain),
			Habits:       generateHabits(rng, strain),
		}
	}
	return days
}

// generateAnswers maps strain onto each question's domain with some noise.
func generateAnswers(rng *rand.Rand, questions []scoring.Question, strain float64) model.Answers {
	answers := make(model.Answers, len(questions))
	for _, q := range questions {
		level := strain
		if slices.Contains(model.LifestyleQuestions, q.ID) && !slices.Contains(strainingLifestyle, q.ID) {
			level = 1 - strain
		}
		span := float64(q.Max - q.Min)
		v := math.Round(level*span + rng.NormFloat64()*answerNoise)
		answers[q.ID] = q.Min + int(model.Clamp(v, 0, span))
	}
	return answers
}

// generateHabits completes each habit less often as strain rises.
func generateHabits(rng *rand.Rand, strain float64) map[model.Habit]bool {
	done := make(map[model.Habit]bool, len(model.Habits))
	for _, h := range model.Habits {
		done[h] = rng.Float64() < habitBaseline*(1-strain/2)
	}
	return done
}
