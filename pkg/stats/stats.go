/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: stats.go
Description: Reductions over collections of descriptions: minimal and average
description length per feature, minimal length and minimal descriptions per phoneme,
feature counts and length counts over minimal descriptions. All reductions are
commutative, so input order never changes a result.
*/

package stats

import (
	"sort"

	"github.com/kleascm/featuremin/pkg/features"
)

// MinimalLengthPerFeature maps every feature that appears in some description to the
// length of the shortest description containing it
func MinimalLengthPerFeature(descs []features.Description) map[string]int {
	out := make(map[string]int)
	for _, d := range descs {
		for _, sf := range d {
			if l, ok := out[sf.Feature]; !ok || d.Len() < l {
				out[sf.Feature] = d.Len()
			}
		}
	}
	return out
}

// AverageLengthPerFeature maps every name in universe to the mean length of the
// descriptions containing it. Features that never appear average 0.
// Features outside universe are ignored.
func AverageLengthPerFeature(descs []features.Description, universe []string) map[string]float64 {
	type acc struct {
		total int
		count int
	}
	sums := make(map[string]*acc, len(universe))
	for _, name := range universe {
		sums[name] = &acc{}
	}

	for _, d := range descs {
		for _, sf := range d {
			if a, ok := sums[sf.Feature]; ok {
				a.total += d.Len()
				a.count++
			}
		}
	}

	out := make(map[string]float64, len(sums))
	for name, a := range sums {
		if a.count == 0 {
			out[name] = 0
			continue
		}
		out[name] = float64(a.total) / float64(a.count)
	}
	return out
}

// MinimalLengthPerPhoneme maps each phoneme with at least one description to its
// shortest description length
func MinimalLengthPerPhoneme(perPhoneme map[string][]features.Description) map[string]int {
	out := make(map[string]int, len(perPhoneme))
	for phoneme, descs := range perPhoneme {
		for _, d := range descs {
			if l, ok := out[phoneme]; !ok || d.Len() < l {
				out[phoneme] = d.Len()
			}
		}
	}
	return out
}

// MinimalDescriptions keeps, per phoneme, the descriptions of minimal length.
// Phonemes without descriptions map to an empty list.
func MinimalDescriptions(perPhoneme map[string][]features.Description) map[string][]features.Description {
	minLen := MinimalLengthPerPhoneme(perPhoneme)
	out := make(map[string][]features.Description, len(perPhoneme))
	for phoneme, descs := range perPhoneme {
		kept := []features.Description{}
		for _, d := range descs {
			if d.Len() == minLen[phoneme] {
				kept = append(kept, d)
			}
		}
		out[phoneme] = kept
	}
	return out
}

// FeatureCounts counts how many minimal descriptions include each feature
func FeatureCounts(minimal map[string][]features.Description) map[string]int {
	out := make(map[string]int)
	for _, descs := range minimal {
		for _, d := range descs {
			for _, sf := range d {
				out[sf.Feature]++
			}
		}
	}
	return out
}

// LengthCounts counts minimal descriptions per length
func LengthCounts(minimal map[string][]features.Description) map[int]int {
	out := make(map[int]int)
	for _, descs := range minimal {
		for _, d := range descs {
			out[d.Len()]++
		}
	}
	return out
}

// Summary is the per-inventory record of description statistics
type Summary struct {
	MinLengths            map[string]int                    `json:"min_lengths" yaml:"min_lengths"`
	MinLengthsPhonemes    map[string]int                    `json:"min_lengths_phonemes" yaml:"min_lengths_phonemes"`
	MinDescriptions       map[string][]features.Description `json:"min_descriptions" yaml:"min_descriptions"`
	CountPhoneme          map[string]int                    `json:"count_phoneme" yaml:"count_phoneme"`
	AvgLengths            map[string]float64                `json:"avg_lengths" yaml:"avg_lengths"`
	CountLengths          map[int]int                       `json:"count_lengths" yaml:"count_lengths"`
	MinimalFeatureLengths map[string]int                    `json:"minimal_feature_lengths" yaml:"minimal_feature_lengths"`
}

// Summarize reduces every description found per phoneme. featureNames is the
// universe for the averages, normally the table's header.
func Summarize(perPhoneme map[string][]features.Description, featureNames []string) *Summary {
	var all []features.Description
	for _, descs := range perPhoneme {
		all = append(all, descs...)
	}

	minimal := MinimalDescriptions(perPhoneme)
	var minimalAll []features.Description
	for _, descs := range minimal {
		minimalAll = append(minimalAll, descs...)
	}

	return &Summary{
		MinLengths:            MinimalLengthPerFeature(all),
		MinLengthsPhonemes:    MinimalLengthPerPhoneme(perPhoneme),
		MinDescriptions:       minimal,
		CountPhoneme:          FeatureCounts(minimal),
		AvgLengths:            AverageLengthPerFeature(all, featureNames),
		CountLengths:          LengthCounts(minimal),
		MinimalFeatureLengths: MinimalLengthPerFeature(minimalAll),
	}
}

// Entry is one bar of a ranked chart
type Entry struct {
	Name  string  `json:"name" yaml:"name"`
	Value float64 `json:"value" yaml:"value"`
}

// Ranked orders a map by ascending value, ties by name
func Ranked[V int | float64](m map[string]V) []Entry {
	out := make([]Entry, 0, len(m))
	for name, v := range m {
		out = append(out, Entry{Name: name, Value: float64(v)})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Value != out[j].Value {
			return out[i].Value < out[j].Value
		}
		return out[i].Name < out[j].Name
	})
	return out
}
