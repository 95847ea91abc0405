// file: internal/metasearch/bestresult.go
// version: 1.2.0
// guid: 1f7c4e9a-5b32-4d86-9e0f-2a6d8c3b5f91

package metasearch

import (
	"context"
	"sort"
)

// BestResultStrategy runs the parallel fan-out, then deduplicates and
// ranks so the caller sees one entry per actual book, best first.
// Two results describe the same book when their normalized title and
// author match, or when they share an ISBN.
type BestResultStrategy struct {
	par  *ParallelStrategy
	rank map[string]int // source name -> priority index
	norm Normalizer
}

// NewBestResultStrategy builds the strategy from cfg.
func NewBestResultStrategy(cfg StrategyConfig) *BestResultStrategy {
	rank := make(map[string]int, len(cfg.Sources))
	for i, src := range cfg.Sources {
		rank[src.Name()] = i
	}
	return &BestResultStrategy{
		par:  NewParallelStrategy(cfg),
		rank: rank,
		norm: cfg.normalizer(),
	}
}

// Name implements Strategy.
func (b *BestResultStrategy) Name() string {
	return StrategyBest
}

// SearchByISBN implements Strategy.
func (b *BestResultStrategy) SearchByISBN(ctx context.Context, isbn string) ([]UnifiedResult, []SourceMetric) {
	results, ms := b.par.SearchByISBN(ctx, isbn)
	return b.rankResults(results), ms
}

// SearchByTitleAuthor implements Strategy.
func (b *BestResultStrategy) SearchByTitleAuthor(ctx context.Context, title, author string) ([]UnifiedResult, []SourceMetric) {
	results, ms := b.par.SearchByTitleAuthor(ctx, title, author)
	return b.rankResults(results), ms
}

// rankResults deduplicates, merges and orders by score descending.
// Equal scores keep priority-then-arrival order; both sorts are stable
// so the outcome is deterministic for a given arrival order.
func (b *BestResultStrategy) rankResults(results []UnifiedResult) []UnifiedResult {
	if len(results) == 0 {
		return results
	}

	merged := make([]UnifiedResult, 0, len(results))
	for _, g := range b.group(results) {
		merged = append(merged, b.merge(g))
	}

	sort.SliceStable(merged, func(i, j int) bool {
		return b.priority(merged[i]) < b.priority(merged[j])
	})
	sort.SliceStable(merged, func(i, j int) bool {
		return merged[i].Score > merged[j].Score
	})
	return merged
}

// group partitions results into duplicate clusters, preserving arrival
// order within each cluster.
func (b *BestResultStrategy) group(results []UnifiedResult) [][]UnifiedResult {
	keys := make([]string, len(results))
	for i, r := range results {
		keys[i] = titleAuthorKey(r)
	}

	var groups [][]int
next:
	for i := range results {
		for gi, g := range groups {
			for _, j := range g {
				if sameBook(results[i], results[j], keys[i], keys[j]) {
					groups[gi] = append(g, i)
					continue next
				}
			}
		}
		groups = append(groups, []int{i})
	}

	out := make([][]UnifiedResult, len(groups))
	for gi, g := range groups {
		cluster := make([]UnifiedResult, len(g))
		for k, j := range g {
			cluster[k] = results[j]
		}
		out[gi] = cluster
	}
	return out
}

func sameBook(a, c UnifiedResult, keyA, keyC string) bool {
	if a.ISBN != "" && a.ISBN == c.ISBN {
		return true
	}
	return keyA == keyC
}

// merge keeps the best-scoring member of a cluster and fills its gaps
// from the others, highest score first. The inputs stay untouched: the
// survivor is a fresh value with recomputed score and the provenance of
// every contributor.
func (b *BestResultStrategy) merge(cluster []UnifiedResult) UnifiedResult {
	best := 0
	for i := 1; i < len(cluster); i++ {
		if cluster[i].Score > cluster[best].Score ||
			(cluster[i].Score == cluster[best].Score && b.priority(cluster[i]) < b.priority(cluster[best])) {
			best = i
		}
	}

	out := cluster[best]
	out.Authors = append([]string(nil), out.Authors...)

	others := make([]UnifiedResult, 0, len(cluster)-1)
	for i, r := range cluster {
		if i != best {
			others = append(others, r)
		}
	}
	sort.SliceStable(others, func(i, j int) bool {
		if others[i].Score != others[j].Score {
			return others[i].Score > others[j].Score
		}
		return b.priority(others[i]) < b.priority(others[j])
	})

	for _, o := range others {
		if out.Subtitle == "" {
			out.Subtitle = o.Subtitle
		}
		if len(out.Authors) == 0 && len(o.Authors) > 0 {
			out.Authors = append([]string(nil), o.Authors...)
			out.MainAuthor = o.MainAuthor
		}
		if out.ISBN == "" {
			out.ISBN = o.ISBN
		}
		if out.Publisher == "" {
			out.Publisher = o.Publisher
		}
		if out.Year == "" {
			out.Year = o.Year
		}
		if out.Description == "" {
			out.Description = o.Description
		}
		if out.CoverURL == "" {
			out.CoverURL = o.CoverURL
		}
		if out.Language == "" {
			out.Language = o.Language
		}
	}

	seen := make(map[string]bool)
	var contributors []string
	for _, r := range cluster {
		for _, s := range r.Sources {
			if !seen[s] {
				seen[s] = true
				contributors = append(contributors, s)
			}
		}
	}
	sort.SliceStable(contributors, func(i, j int) bool {
		return b.rankOf(contributors[i]) < b.rankOf(contributors[j])
	})
	out.Sources = contributors
	out.Score = b.norm.Weights.Score(out)
	return out
}

func (b *BestResultStrategy) priority(r UnifiedResult) int {
	return b.rankOf(r.Origin.Name)
}

func (b *BestResultStrategy) rankOf(name string) int {
	if i, ok := b.rank[name]; ok {
		return i
	}
	return len(b.rank)
}
