package app

import (
	"fmt"

	"github.com/sufield/credjar/internal/domain"
)

func unknownCriterion(c domain.Criterion) error {
	return fmt.Errorf("%w: %s", domain.ErrUnknownCriterion, c)
}
