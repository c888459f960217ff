package concat

import (
	beam "github.com/kkarthikpsgtech/beam"
)

// CompositeMetadata derives the metadata of a concatenation from its sub-sources:
//   - EstimatedSizeBytes is the sum of sub-source estimates, present only if every
//     sub-source supplies one
//   - IsInfinite is true if any sub-source reports infinite; one unbounded member makes
//     the whole concatenation unbounded
//   - ProducesSortedKeys is true only if every sub-source reports sorted keys. Note that
//     this is necessary but not sufficient for a globally sorted composite stream, which
//     additionally requires non-overlapping, increasing key ranges across sub-sources in
//     list order; callers must not build merge assumptions on this flag alone.
//
// Flags whose value no sub-source supplied remain absent. An empty source list yields nil.
func CompositeMetadata(sources []*beam.Source) *beam.SourceMetadata {
	if len(sources) == 0 {
		return nil
	}
	var sizeSum int64
	sizeKnown := true
	infinitePresent := false
	anyInfinite := false
	sortedPresent := false
	allSorted := true
	for _, source := range sources {
		md := source.Metadata
		if md == nil || md.EstimatedSizeBytes == nil {
			sizeKnown = false
		} else if sizeKnown {
			sizeSum += *md.EstimatedSizeBytes
		}
		if md != nil && md.IsInfinite != nil {
			infinitePresent = true
			if *md.IsInfinite {
				anyInfinite = true
			}
		}
		if md != nil && md.ProducesSortedKeys != nil {
			sortedPresent = true
			if !*md.ProducesSortedKeys {
				allSorted = false
			}
		} else {
			allSorted = false
		}
	}
	composed := &beam.SourceMetadata{}
	populated := false
	if sizeKnown {
		composed.EstimatedSizeBytes = &sizeSum
		populated = true
	}
	if infinitePresent {
		infinite := anyInfinite
		composed.IsInfinite = &infinite
		populated = true
	}
	if sortedPresent {
		sorted := allSorted
		composed.ProducesSortedKeys = &sorted
		populated = true
	}
	if !populated {
		return nil
	}
	return composed
}

// CompositeDoesNotNeedSplitting derives the splitting hint of a concatenation: the
// composite opts out of splitting only when every sub-source explicitly does. A single
// splittable member keeps the composite splittable at sub-source granularity.
func CompositeDoesNotNeedSplitting(sources []*beam.Source) *bool {
	if len(sources) == 0 {
		return nil
	}
	present := false
	allTrue := true
	for _, source := range sources {
		if source.DoesNotNeedSplitting != nil {
			present = true
			if !*source.DoesNotNeedSplitting {
				allTrue = false
			}
		} else {
			allTrue = false
		}
	}
	if !present {
		return nil
	}
	hint := allTrue
	return &hint
}
