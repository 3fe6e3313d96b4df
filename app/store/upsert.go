package store

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/lysyi3m/recipe-box/app/recipe"
)

var ErrInvalidPolicy = errors.New("invalid conflict policy")

// ConflictPolicy decides what happens when a new recipe's id is already stored.
type ConflictPolicy string

const (
	PolicyPrompt    ConflictPolicy = "prompt"
	PolicyOverwrite ConflictPolicy = "overwrite"
)

func ParsePolicy(s string) (ConflictPolicy, error) {
	switch p := ConflictPolicy(strings.ToLower(strings.TrimSpace(s))); p {
	case PolicyPrompt, PolicyOverwrite:
		return p, nil
	case "":
		return PolicyPrompt, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidPolicy, s)
	}
}

// Confirmer answers yes/no questions, usually by asking a person at a terminal.
type Confirmer interface {
	Confirm(question string) (bool, error)
}

type Outcome int

const (
	Added Outcome = iota
	Replaced
	Skipped
)

func (o Outcome) String() string {
	switch o {
	case Added:
		return "added"
	case Replaced:
		return "replaced"
	case Skipped:
		return "not added"
	default:
		return "unknown"
	}
}

// Upsert appends r, or replaces the stored recipe with the same id in place.
// Under PolicyPrompt a collision is confirmed first; a declined prompt returns
// Skipped and leaves the file untouched.
func (s *Store) Upsert(r recipe.Recipe, policy ConflictPolicy, confirm Confirmer) (Outcome, error) {
	recipes, err := s.Load()
	if err != nil {
		return Skipped, err
	}

	r.EnsureLists()

	i := indexOf(recipes, r.ID)
	if i < 0 {
		recipes = append(recipes, r)
		if err := s.Save(recipes); err != nil {
			return Skipped, err
		}
		return Added, nil
	}

	if policy != PolicyOverwrite {
		if confirm == nil {
			return Skipped, fmt.Errorf("recipe %q already exists and no confirmer is available", r.ID)
		}
		ok, err := confirm.Confirm(fmt.Sprintf("Recipe %q already exists. Overwrite?", r.ID))
		if err != nil {
			return Skipped, fmt.Errorf("failed to confirm overwrite: %w", err)
		}
		if !ok {
			return Skipped, nil
		}
	}

	recipes[i] = r
	if err := s.Save(recipes); err != nil {
		return Skipped, err
	}
	return Replaced, nil
}

// TerminalConfirmer asks on Out and reads a y/N answer from In. Anything but y or yes is no.
type TerminalConfirmer struct {
	In  io.Reader
	Out io.Writer
}

func (c TerminalConfirmer) Confirm(question string) (bool, error) {
	if _, err := fmt.Fprintf(c.Out, "%s [y/N] ", question); err != nil {
		return false, err
	}

	answer, err := bufio.NewReader(c.In).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return false, err
	}

	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "y", "yes":
		return true, nil
	default:
		return false, nil
	}
}
