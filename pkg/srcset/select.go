package srcset

// SelectBest picks one media type's size map from classified links. JPEG is
// preferred whenever present, as the universally supported baseline; other
// media types are only offered through the per-type path ([PictureSources]).
// Without a JPEG entry the first media type encountered in the input wins.
// Returns false when no media type is present.
func SelectBest(byType *LinksByType) (SizeMap, bool) {
	if byType.Len() == 0 {
		return nil, false
	}
	if m, ok := byType.Get(MediaTypeJPEG); ok {
		return m, true
	}
	m, _ := byType.Get(byType.Types()[0])
	return m, true
}
