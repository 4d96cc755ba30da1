package rain

import (
	"math"
	"testing"

	. "github.com/onsi/gomega"
)

func TestAggregateIdle(t *testing.T) {
	g := NewWithT(t)

	s := NewState(0.7)
	s.ApplyResize(Viewport{Width: 800, Height: 600, PixelRatio: 2})
	out := Aggregate(s, 5, DefaultParams())

	g.Expect(out).To(Equal(RenderParams{
		RainAmount:      0.7,
		SpeedMultiplier: 1,
		Viewport:        Viewport{Width: 800, Height: 600, PixelRatio: 2},
		ElapsedTime:     5,
	}))
}

func TestAggregateIsPure(t *testing.T) {
	g := NewWithT(t)
	p := DefaultParams()

	s := NewState(0.7)
	s.ApplySlider(0.3, 10)
	before := s

	a := Aggregate(s, 10.3, p)
	b := Aggregate(s, 10.3, p)
	g.Expect(a).To(Equal(b))
	g.Expect(s).To(Equal(before))

	Aggregate(s, 50, p)
	g.Expect(s).To(Equal(before))
}

func TestAggregatePulseIsAdditive(t *testing.T) {
	g := NewWithT(t)
	p := DefaultParams()

	s := NewState(0.5)
	s.ApplySlider(0.7, 0)

	quarter := Aggregate(s, 0.225, p)
	g.Expect(quarter.PulseProgress).To(BeNumerically("~", 0.25, 1e-9))
	g.Expect(quarter.PulseAmplitude).To(BeNumerically("~", 0.4, 1e-9))
	g.Expect(quarter.RainAmount).To(BeNumerically("~", 0.7+0.4*math.Sin(math.Pi/4), 1e-9))

	peak := Aggregate(s, 0.45, p)
	g.Expect(peak.RainAmount).To(Equal(1.0))

	done := Aggregate(s, 0.9, p)
	g.Expect(done.RainAmount).To(Equal(0.7))
	g.Expect(done.PulseProgress).To(Equal(0.0))
	g.Expect(done.PulseAmplitude).To(Equal(0.0))
}

func TestAggregateDecreaseBias(t *testing.T) {
	g := NewWithT(t)
	p := DefaultParams()

	s := NewState(0.7)
	s.ApplySlider(0.3, 10)

	entry := Aggregate(s, 10, p)
	g.Expect(entry.IsDecreasing).To(BeTrue())
	g.Expect(entry.DisableSecondaryEffect).To(BeTrue())
	g.Expect(entry.RainAmount).To(BeNumerically("~", 0.15, 1e-9))

	mid := Aggregate(s, 11.5, p)
	g.Expect(mid.RainAmount).To(BeNumerically("~", 0.225, 1e-9))
	g.Expect(mid.RainAmount).To(BeNumerically(">", 0))

	expired := Aggregate(s, 13, p)
	g.Expect(expired.IsDecreasing).To(BeFalse())
	g.Expect(expired.DisableSecondaryEffect).To(BeFalse())
	g.Expect(expired.RainAmount).To(Equal(0.3))
}

func TestAggregateStoryTakesPrecedence(t *testing.T) {
	g := NewWithT(t)
	p := DefaultParams()

	s := NewState(0.3)
	s.ApplySlider(0, 20)
	g.Expect(s.IsDecreasing()).To(BeTrue())

	out := Aggregate(s, 21, p)
	g.Expect(out.StoryActive).To(BeTrue())
	g.Expect(out.IsDecreasing).To(BeFalse())
	g.Expect(out.DisableSecondaryEffect).To(BeTrue())
	g.Expect(out.RainAmount).To(Equal(0.0))

	peak := Aggregate(s, 20.45, p)
	g.Expect(peak.RainAmount).To(BeNumerically("~", 0.6, 1e-9))
}

func TestAggregateSpeedFloor(t *testing.T) {
	tests := []struct {
		name  string
		speed float64
		want  float64
	}{
		{"zero", 0, MinSpeed},
		{"negative", -3, MinSpeed},
		{"nan", math.NaN(), MinSpeed},
		{"normal", 2.5, 2.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewState(0.5)
			s.SpeedMultiplier = tt.speed
			out := Aggregate(s, 0, DefaultParams())
			if out.SpeedMultiplier != tt.want {
				t.Errorf("expected %g, got %g", tt.want, out.SpeedMultiplier)
			}
		})
	}
}
