package player

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var ErrUnknownLiveForm = errors.New("unknown live form rating")

// LiveForm is the weekly condition grade of a real-life player. Empty means
// no grade is set.
type LiveForm string

const (
	LiveFormNone LiveForm = ""
	LiveFormA    LiveForm = "A"
	LiveFormB    LiveForm = "B"
	LiveFormC    LiveForm = "C"
	LiveFormD    LiveForm = "D"
	LiveFormE    LiveForm = "E"
)

var liveFormBonus = map[LiveForm]float64{
	LiveFormA: 8,
	LiveFormB: 4,
	LiveFormC: 0,
	LiveFormD: -5,
	LiveFormE: -10,
}

func ParseLiveForm(raw string) (LiveForm, error) {
	value := LiveForm(strings.ToUpper(strings.TrimSpace(raw)))
	if value == LiveFormNone {
		return LiveFormNone, nil
	}
	if _, ok := liveFormBonus[value]; !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownLiveForm, raw)
	}
	return value, nil
}

// Bonus returns the flat ranking adjustment for the grade.
func (f LiveForm) Bonus() float64 {
	return liveFormBonus[f]
}

// EffectiveLiveForm returns the grade still in force at now. A zero now or ttl
// disables expiry.
func (p Player) EffectiveLiveForm(now time.Time, ttl time.Duration) LiveForm {
	if p.LiveForm == LiveFormNone || p.LiveFormNonExpiring {
		return p.LiveForm
	}
	if now.IsZero() || ttl <= 0 || p.LiveFormSetAt.IsZero() {
		return p.LiveForm
	}
	if now.Sub(p.LiveFormSetAt) > ttl {
		return LiveFormNone
	}
	return p.LiveForm
}
