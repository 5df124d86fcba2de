package discordbot

import (
	"errors"
	"math/rand"
	"strconv"
	"strings"
	"sync"
	"time"
)

// MaxDice bounds a single /roll so the reply fits in one message.
const MaxDice = 100

var (
	ErrDiceFormat   = errors.New("Format has to be in NdN!")
	ErrDiceNotPos   = errors.New("Both numbers must be positive")
	ErrTooManyDice  = errors.New("Too many dice, the limit is " + strconv.Itoa(MaxDice))
	ErrNoChoices    = errors.New("Give me something to choose from")
	errMissingInput = errors.New("missing input")
)

// Roller provides dice rolling and random choice. It is safe for concurrent use.
type Roller struct {
	mu     sync.Mutex
	random *rand.Rand
}

// RollerConfig configures a Roller.
type RollerConfig struct {
	// Seed fixes the sequence for tests. Zero seeds from the clock.
	Seed int64
}

// NewRoller creates a dice roller.
func NewRoller(cfg *RollerConfig) *Roller {
	seed := time.Now().UnixNano()
	if cfg != nil && cfg.Seed != 0 {
		seed = cfg.Seed
	}
	return &Roller{random: rand.New(rand.NewSource(seed))}
}

// Roll returns a value in [1, sides].
func (r *Roller) Roll(sides int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.random.Intn(sides) + 1
}

// Pick returns one of choices.
func (r *Roller) Pick(choices []string) string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return choices[r.random.Intn(len(choices))]
}

// ParseDice reads NdN notation, e.g. 3d6.
func ParseDice(spec string) (count, sides int, err error) {
	left, right, ok := strings.Cut(strings.ToLower(strings.TrimSpace(spec)), "d")
	if !ok {
		return 0, 0, ErrDiceFormat
	}
	count, err = strconv.Atoi(left)
	if err != nil {
		return 0, 0, ErrDiceFormat
	}
	sides, err = strconv.Atoi(right)
	if err != nil {
		return 0, 0, ErrDiceFormat
	}
	if count <= 0 || sides <= 0 {
		return 0, 0, ErrDiceNotPos
	}
	if count > MaxDice {
		return 0, 0, ErrTooManyDice
	}
	return count, sides, nil
}

// RollDice rolls spec and joins the results with ", ".
func (r *Roller) RollDice(spec string) (string, error) {
	count, sides, err := ParseDice(spec)
	if err != nil {
		return "", err
	}
	out := make([]string, count)
	for i := range out {
		out[i] = strconv.Itoa(r.Roll(sides))
	}
	return strings.Join(out, ", "), nil
}

// SplitChoices splits on commas when present, otherwise on whitespace.
func SplitChoices(raw string) []string {
	var parts []string
	if strings.Contains(raw, ",") {
		parts = strings.Split(raw, ",")
	} else {
		parts = strings.Fields(raw)
	}
	out := parts[:0]
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
