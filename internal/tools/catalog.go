package tools

import "sort"

// registerBuiltInTools registers the GitLab tool catalog
func (r *Registry) registerBuiltInTools() {
	r.mustRegister(projectTools()...)
	r.mustRegister(mergeRequestTools()...)
	r.mustRegister(issueTools()...)
	r.mustRegister(discussionTools()...)
	r.mustRegister(pipelineTools()...)
	r.mustRegister(repositoryTools()...)
	r.mustRegister(labelTools()...)
	r.mustRegister(milestoneTools()...)
	r.mustRegister(userTools()...)
	r.mustRegister(namespaceTools()...)
	r.mustRegister(releaseTools()...)
	r.mustRegister(wikiTools()...)
}

// Toolsets returns the names of all toolsets in the registry, sorted
func (r *Registry) Toolsets() []string {
	seen := make(map[string]bool)
	var result []string
	for _, info := range r.ListTools() {
		if !seen[info.Toolset] {
			seen[info.Toolset] = true
			result = append(result, info.Toolset)
		}
	}
	sort.Strings(result)
	return result
}

// UnknownToolsets returns the names that match no registered toolset
func (r *Registry) UnknownToolsets(names []string) []string {
	known := r.Toolsets()
	var unknown []string
	for _, name := range names {
		i := sort.SearchStrings(known, name)
		if i == len(known) || known[i] != name {
			unknown = append(unknown, name)
		}
	}
	return unknown
}
