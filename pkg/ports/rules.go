package ports

import (
	"context"

	"github.com/aretw0/espalier/pkg/domain"
)

// RuleEvaluator decides row-level visibility rules. Rule semantics live in
// the host (they are authored alongside the block configuration); the engine
// only calls out with the rule list and the current post record.
// A nil evaluator, or an evaluation error, leaves the item visible: the
// engine fails open rather than hiding configured content on a broken rule.
type RuleEvaluator func(ctx context.Context, rules []domain.VisibilityRule, post *domain.PostContext) (bool, error)
