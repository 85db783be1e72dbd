package scoring_test

import (
	"errors"
	"math/rand"
	"sort"
	"testing"

	"github.com/okian/mindscan/internal/domain/model"
	scoring "github.com/okian/mindscan/internal/domain/scoring"
	. "github.com/smartystreets/goconvey/convey"
)

func dassAnswers(q int, sleep, screen, move, support int) model.Answers {
	a := model.Answers{"sleep": sleep, "screen": screen, "move": move, "support": support}
	for _, id := range []string{"q1", "q2", "q3", "q4", "q5", "q6", "q7", "q8", "q9"} {
		a[id] = q
	}
	return a
}

func randomAnswers(rng *rand.Rand, q scoring.Questionnaire) model.Answers {
	a := model.Answers{}
	for _, item := range q.Questions {
		a[item.ID] = item.Min + rng.Intn(item.Max-item.Min+1)
	}
	return a
}

func TestRegistry(t *testing.T) {
	Convey("Given the strategy registry", t, func() {
		Convey("Then both built-in strategies are registered", func() {
			So(scoring.Names(), ShouldResemble, []string{scoring.DASSLifestyleV2, scoring.LifestyleSumV1})
		})

		Convey("When looking up an empty name", func() {
			s, err := scoring.Lookup("")
			So(err, ShouldBeNil)
			So(s.Name(), ShouldEqual, scoring.Default)
		})

		Convey("When looking up an unknown name", func() {
			_, err := scoring.Lookup("dass-v0")
			So(errors.Is(err, scoring.ErrUnknownStrategy), ShouldBeTrue)
		})

		Convey("When asking the scale of a retired strategy", func() {
			So(scoring.ScaleFor("retired").Max, ShouldEqual, 12)
			So(scoring.ScaleFor(scoring.LifestyleSumV1).Max, ShouldEqual, 13)
		})
	})
}

func TestDASS_Compute(t *testing.T) {
	Convey("Given the three-axis strategy", t, func() {
		s, err := scoring.Lookup(scoring.DASSLifestyleV2)
		So(err, ShouldBeNil)

		Convey("When every symptom is absent and lifestyle is neutral", func() {
			r, err := s.Compute(dassAnswers(0, 3, 2, 1, 1))
			So(err, ShouldBeNil)

			Convey("Then wellness is at the top of the range", func() {
				So(r.Wellness, ShouldEqual, 12)
				So(r.SymptomIndex, ShouldEqual, 0)
				So(r.Risk, ShouldEqual, model.RiskLow)
				So(r.Label, ShouldEqual, "Green – doing okay")
			})
		})

		Convey("When every symptom is at its maximum", func() {
			r, err := s.Compute(dassAnswers(3, 3, 2, 1, 1))
			So(err, ShouldBeNil)

			Convey("Then wellness bottoms out", func() {
				So(r.Wellness, ShouldEqual, 0)
				So(r.Risk, ShouldEqual, model.RiskHigh)
				So(r.RawAxes[model.AxisMood], ShouldEqual, 9)
			})
		})

		Convey("When symptoms are mild and lifestyle is neutral", func() {
			r, err := s.Compute(dassAnswers(1, 3, 2, 1, 1))
			So(err, ShouldBeNil)

			Convey("Then each axis normalizes to 4 and wellness sits on the green threshold", func() {
				So(r.Axes[model.AxisMood], ShouldAlmostEqual, 4, 1e-9)
				So(r.Wellness, ShouldAlmostEqual, 8, 1e-9)
				So(r.Risk, ShouldEqual, s.Scale().Classify(r.Wellness))
			})
		})

		Convey("When poor lifestyle answers are added to mild symptoms", func() {
			r, err := s.Compute(dassAnswers(1, 1, 4, 0, 0))
			So(err, ShouldBeNil)

			Convey("Then each axis receives its own lifestyle weights", func() {
				So(r.Axes[model.AxisMood], ShouldAlmostEqual, 3.9/9*12, 1e-9)
				So(r.Axes[model.AxisAnxiety], ShouldAlmostEqual, 5.0/9*12, 1e-9)
				So(r.Axes[model.AxisStress], ShouldAlmostEqual, 6.5/9*12, 1e-9)
				So(r.Wellness, ShouldAlmostEqual, 12-(3.9+5.0+6.5)/9*12/3, 1e-9)
				So(r.Risk, ShouldEqual, model.RiskModerate)
			})
		})

		Convey("When an answer is missing", func() {
			a := dassAnswers(1, 3, 2, 1, 1)
			delete(a, "q5")
			_, err := s.Compute(a)

			Convey("Then scoring is refused with the missing field", func() {
				So(errors.Is(err, scoring.ErrIncompleteAnswers), ShouldBeTrue)
				var verr *scoring.ValidationError
				So(errors.As(err, &verr), ShouldBeTrue)
				So(verr.Missing, ShouldResemble, []string{"q5"})
			})
		})

		Convey("When an answer is outside its domain", func() {
			a := dassAnswers(1, 3, 2, 1, 1)
			a["sleep"] = 0
			_, err := s.Compute(a)

			Convey("Then scoring is refused", func() {
				var verr *scoring.ValidationError
				So(errors.As(err, &verr), ShouldBeTrue)
				So(verr.OutOfRange, ShouldResemble, []string{"sleep"})
			})
		})

		Convey("When an unknown answer is supplied", func() {
			a := dassAnswers(1, 3, 2, 1, 1)
			a["energy"] = 2
			_, err := s.Compute(a)
			var verr *scoring.ValidationError
			So(errors.As(err, &verr), ShouldBeTrue)
			So(verr.Fields(), ShouldResemble, []string{"energy"})
		})
	})
}

func TestLifestyleSum_Compute(t *testing.T) {
	Convey("Given the single-sum strategy", t, func() {
		s, err := scoring.Lookup(scoring.LifestyleSumV1)
		So(err, ShouldBeNil)

		Convey("When every positive indicator is maxed", func() {
			r, err := s.Compute(model.Answers{"sleep": 4, "energy": 3, "motivation": 3, "mood": 3, "stress": 0, "screen": 2})
			So(err, ShouldBeNil)
			So(r.Wellness, ShouldEqual, 13)
			So(r.SymptomIndex, ShouldEqual, 0)
			So(r.Risk, ShouldEqual, model.RiskLow)
			So(r.Axes, ShouldBeNil)
		})

		Convey("When penalties exceed the positive sum", func() {
			r, err := s.Compute(model.Answers{"sleep": 0, "energy": 0, "motivation": 1, "mood": 0, "stress": 3, "screen": 4})
			So(err, ShouldBeNil)

			Convey("Then the raw sum is floored at zero", func() {
				So(r.Wellness, ShouldEqual, 0)
				So(r.Risk, ShouldEqual, model.RiskHigh)
			})
		})

		Convey("When screen time stays at the neutral point", func() {
			r, err := s.Compute(model.Answers{"sleep": 2, "energy": 2, "motivation": 2, "mood": 2, "stress": 1, "screen": 2})
			So(err, ShouldBeNil)

			Convey("Then only stress is subtracted", func() {
				So(r.Wellness, ShouldEqual, 7)
				So(r.Risk, ShouldEqual, model.RiskModerate)
			})
		})
	})
}

func TestStrategyProperties(t *testing.T) {
	Convey("Given random valid answers for every strategy", t, func() {
		rng := rand.New(rand.NewSource(7))
		for _, name := range scoring.Names() {
			s, err := scoring.Lookup(name)
			So(err, ShouldBeNil)
			scale := s.Scale()

			var results []model.ScoreResult
			for i := 0; i < 500; i++ {
				r, err := s.Compute(randomAnswers(rng, s.Questionnaire()))
				So(err, ShouldBeNil)
				results = append(results, r)
			}

			Convey("Then "+name+" stays in bounds with consistent labels", func() {
				for _, r := range results {
					So(r.Wellness, ShouldBeBetweenOrEqual, 0, scale.Max)
					So(r.Risk, ShouldEqual, scale.Classify(r.Wellness))
				}
			})

			Convey("Then "+name+" labels never invert score order", func() {
				sort.Slice(results, func(i, j int) bool { return results[i].Wellness < results[j].Wellness })
				for i := 1; i < len(results); i++ {
					So(int(results[i].Risk), ShouldBeGreaterThanOrEqualTo, int(results[i-1].Risk))
				}
			})
		}
	})
}
