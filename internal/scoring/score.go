// Package scoring maps a window of per-match performance records to a
// single skill rating.
package scoring

import (
	"fmt"

	"github.com/rs/zerolog"

	"pubg-tracker/internal/domain"
)

// Linear model coefficients fit offline against placement, damage and
// assists as a skill proxy.
const (
	coefBase    = -2.7557
	coefPlace   = 13.2481
	coefDamage  = 3.5403
	coefAssists = 1.4424

	// rankedFlatScore stands in until a ranked-specific model exists.
	rankedFlatScore = 1.2
)

// Compute aggregates the list into a scalar rating. Matches of a type the
// model does not know are skipped from the sum but still weigh into the
// divisor. A win placement of zero is an arithmetic fault and fails fast
// rather than producing Inf.
func Compute(statsList []domain.PlayerMatchStats, logger zerolog.Logger) (float64, error) {
	if len(statsList) == 0 {
		return 0, fmt.Errorf("scoring: empty match stats list")
	}

	var total float64
	for _, stats := range statsList {
		switch stats.MatchType {
		case domain.MatchTypeNormal:
			if stats.WinPlace == 0 {
				return 0, fmt.Errorf("scoring: match %s has win place 0", stats.MatchID)
			}
			total += coefBase +
				coefPlace*(1/float64(stats.WinPlace)) +
				coefDamage*(stats.DamageDealt/100) +
				coefAssists*float64(stats.Assists)
		case domain.MatchTypeRanked:
			total += rankedFlatScore
		default:
			logger.Warn().
				Str("match_id", stats.MatchID).
				Str("match_type", string(stats.MatchType)).
				Msg("unknown match type, skipping in score sum")
		}
	}

	return total / float64(len(statsList)), nil
}
