package processor

import (
	"fmt"
	"sort"

	"github.com/fplhub/fpl-league-hub/internal/models"
)

// TiebreakPolicy selects how weekly and monthly rankings break score ties.
// Both policies have been used by this league; the choice is configuration,
// not code.
type TiebreakPolicy string

const (
	// TiebreakNetScore ranks by a single key: points minus transfer cost.
	TiebreakNetScore TiebreakPolicy = "net_score"
	// TiebreakTwoKey ranks by points descending, then transfers made
	// ascending; rows tie only when both keys match.
	TiebreakTwoKey TiebreakPolicy = "two_key"
)

// ParseTiebreakPolicy maps a config string to a policy, defaulting to
// net_score for anything unrecognized.
func ParseTiebreakPolicy(s string) TiebreakPolicy {
	if TiebreakPolicy(s) == TiebreakTwoKey {
		return TiebreakTwoKey
	}
	return TiebreakNetScore
}

// RankRows sorts rows by the tiebreak policy and assigns competition ranks:
// rows with an identical sort key share a rank, and the next distinct key
// gets rank = its 0-based position + 1. Medals go to ranks 1-3; tied firsts
// all take gold. Rows the caller wants excluded (e.g. unplayed gameweeks)
// must be filtered before calling.
func RankRows(rows []models.RankingRow, policy TiebreakPolicy) []models.RankingRow {
	ranked := make([]models.RankingRow, len(rows))
	copy(ranked, rows)

	switch policy {
	case TiebreakTwoKey:
		sort.SliceStable(ranked, func(i, j int) bool {
			if ranked[i].Points != ranked[j].Points {
				return ranked[i].Points > ranked[j].Points
			}
			return ranked[i].Transfers < ranked[j].Transfers
		})
	default:
		sort.SliceStable(ranked, func(i, j int) bool {
			return ranked[i].NetPoints > ranked[j].NetPoints
		})
	}

	for i := range ranked {
		if i == 0 {
			ranked[i].Rank = 1
		} else if sameRankKey(ranked[i], ranked[i-1], policy) {
			ranked[i].Rank = ranked[i-1].Rank
		} else {
			ranked[i].Rank = i + 1
		}
		ranked[i].Medal = models.MedalForRank(ranked[i].Rank)
	}
	return ranked
}

func sameRankKey(a, b models.RankingRow, policy TiebreakPolicy) bool {
	if policy == TiebreakTwoKey {
		return a.Points == b.Points && a.Transfers == b.Transfers
	}
	return a.NetPoints == b.NetPoints
}

// competitionRanks assigns shared ranks over already-descending-sorted
// scores: equal adjacent scores share a rank, the next distinct score gets
// its position + 1.
func competitionRanks(scores []int) []int {
	ranks := make([]int, len(scores))
	for i := range scores {
		if i == 0 {
			ranks[i] = 1
		} else if scores[i] == scores[i-1] {
			ranks[i] = ranks[i-1]
		} else {
			ranks[i] = i + 1
		}
	}
	return ranks
}

// FormatTransferInfo renders the transfer annotation used across tables:
// "-" for no transfers, "n" for free transfers, "n(-c)" when a cost was
// paid.
func FormatTransferInfo(transfers, cost int) string {
	if transfers == 0 {
		return "-"
	}
	if cost == 0 {
		return fmt.Sprintf("%d", transfers)
	}
	return fmt.Sprintf("%d(-%d)", transfers, cost)
}
