package beam

// SourceMetadata carries optional, explicitly-supplied hints about a source. Each field is
// nil unless the serialized configuration supplied it; no field defaults to a zero value.
type SourceMetadata struct {
	ProducesSortedKeys *bool
	IsInfinite         *bool
	EstimatedSizeBytes *int64
}

// A Source describes one configured source: the spec identifying its type and parameters,
// an optional codec spec, inherited base spec fragments, optional metadata, and an optional
// splitting hint. Sources are constructed once at reader-build time and are immutable
// thereafter; they are owned by the reader built from them and discarded with it.
type Source struct {
	Spec                 SpecObject
	Codec                *SpecObject
	BaseSpecs            []SpecObject
	Metadata             *SourceMetadata
	DoesNotNeedSplitting *bool
}

// ParseSource produces a Source from one sub-source configuration dictionary. The spec field
// is required; every other field is either fully absent or holds an explicitly-supplied value.
func ParseSource(dict SpecObject) (*Source, error) {
	spec, err := dict.Object(PropertySpec)
	if err != nil {
		return nil, err
	}
	source := &Source{Spec: spec}

	codec, present, err := dict.OptionalObject(PropertyEncoding)
	if err != nil {
		return nil, err
	}
	if present {
		source.Codec = &codec
	}

	baseSpecs, present, err := dict.OptionalObjectList(PropertyBaseSpecs)
	if err != nil {
		return nil, err
	}
	if present {
		source.BaseSpecs = baseSpecs
	}

	producesSortedKeys, err := dict.OptionalBool(PropertyProducesSortedKeys)
	if err != nil {
		return nil, err
	}
	isInfinite, err := dict.OptionalBool(PropertyIsInfinite)
	if err != nil {
		return nil, err
	}
	estimatedSizeBytes, err := dict.OptionalSize(PropertyEstimatedSizeBytes)
	if err != nil {
		return nil, err
	}
	// the metadata group is only materialized if at least one member was supplied
	if producesSortedKeys != nil || isInfinite != nil || estimatedSizeBytes != nil {
		source.Metadata = &SourceMetadata{
			ProducesSortedKeys: producesSortedKeys,
			IsInfinite:         isInfinite,
			EstimatedSizeBytes: estimatedSizeBytes,
		}
	}

	doesNotNeedSplitting, err := dict.OptionalBool(PropertyDoesNotNeedSplitting)
	if err != nil {
		return nil, err
	}
	source.DoesNotNeedSplitting = doesNotNeedSplitting

	return source, nil
}

// ParseSourceList extracts the ordered list of Sources stored under key within dict. An
// absent key yields an empty list, representing zero sub-sources. A malformed element aborts
// the whole list construction with the error it raised.
func ParseSourceList(dict SpecObject, key string) ([]*Source, error) {
	dicts, present, err := dict.OptionalObjectList(key)
	if err != nil {
		return nil, err
	}
	sources := make([]*Source, 0, len(dicts))
	if !present {
		return sources, nil
	}
	for _, d := range dicts {
		source, err := ParseSource(d)
		if err != nil {
			return nil, err
		}
		sources = append(sources, source)
	}
	return sources, nil
}
