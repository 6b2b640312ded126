package resolver

import (
	"slices"
	"strings"
)

// Default naming convention suffixes.
const (
	DefaultViewSuffix      = "View"
	DefaultViewModelSuffix = "ViewModel"
)

const (
	viewsSegment      = "views"
	viewModelsSegment = "viewmodels"
)

// candidateName derives the conventional viewmodel type name for a view
// type name: a trailing view suffix is replaced by the viewmodel suffix,
// any other name gets the viewmodel suffix appended ("MainWindow" ->
// "MainWindowViewModel").
func candidateName(viewName, viewSuffix, vmSuffix string) string {
	if base, ok := strings.CutSuffix(viewName, viewSuffix); ok && base != "" {
		return base + vmSuffix
	}
	return viewName + vmSuffix
}

// candidatePackages lists the packages to probe for a conventional
// viewmodel, most specific first:
//
//  1. the view's own package
//  2. for every "views" path segment, the package with that segment
//     replaced by "viewmodels" ("app/views/admin" -> "app/viewmodels/admin")
//  3. the parent fallback for each replacement, truncated after the
//     replaced segment ("app/views/admin" -> "app/viewmodels")
func candidatePackages(pkg string) []string {
	out := []string{pkg}
	segs := splitPackage(pkg)
	for i, s := range segs {
		if !strings.EqualFold(s, viewsSegment) {
			continue
		}
		repl := slices.Clone(segs)
		repl[i] = viewModelsSegment
		out = append(out, strings.Join(repl, "/"))
		if i < len(segs)-1 {
			out = append(out, strings.Join(repl[:i+1], "/"))
		}
	}
	return dedupe(out)
}

func dedupe(in []string) []string {
	seen := make(map[string]struct{}, len(in))
	out := in[:0]
	for _, s := range in {
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}
