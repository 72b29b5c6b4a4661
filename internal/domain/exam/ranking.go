package exam

import "sort"

// RankResults assigns competition ranks ("1224") by obtained marks, highest
// first. Absent and disqualified results are left unranked and are not
// counted in the total.
func RankResults(results []*ExamResult) {
	ranked := make([]*ExamResult, 0, len(results))
	for _, r := range results {
		if !r.ResultStatus.IsExplicit() {
			ranked = append(ranked, r)
		}
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].ObtainedMarks > ranked[j].ObtainedMarks
	})

	total := len(ranked)
	for i, r := range ranked {
		rank := i + 1
		if i > 0 && r.ObtainedMarks == ranked[i-1].ObtainedMarks {
			rank = *ranked[i-1].Rank
		}
		r.AssignRank(rank, total)
	}
	for _, r := range results {
		if r.ResultStatus.IsExplicit() {
			r.AssignRank(0, total)
		}
	}
}
