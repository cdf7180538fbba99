package jsoncfg

import (
	"fmt"
	"strings"
)

// ResourceEntry is one (title, url) learning reference inside a generated node.
type ResourceEntry struct {
	Title string `json:"title"`
	URL   string `json:"url"`
}

// NodeEntry is one learning module as returned by the text-generation
// provider. ID is the provider-assigned integer, meaningful only within
// a single payload.
type NodeEntry struct {
	ID        int             `json:"id"`
	Title     string          `json:"title"`
	Details   string          `json:"details"`
	Resources []ResourceEntry `json:"resources"`
}

// DependencyEntry is a directed edge between provider-assigned node ids.
// Source must be completed before Target.
type DependencyEntry struct {
	Source int `json:"source"`
	Target int `json:"target"`
}

// RoadmapPayload is the JSON contract the generation prompt asks the
// provider for.
type RoadmapPayload struct {
	Nodes        []NodeEntry       `json:"nodes"`
	Dependencies []DependencyEntry `json:"dependencies"`
}

// Normalize trims whitespace and drops resource entries without a URL.
func (p *RoadmapPayload) Normalize() {
	if p == nil {
		return
	}
	for i := range p.Nodes {
		p.Nodes[i].Title = strings.TrimSpace(p.Nodes[i].Title)
		p.Nodes[i].Details = strings.TrimSpace(p.Nodes[i].Details)
		kept := p.Nodes[i].Resources[:0]
		for _, res := range p.Nodes[i].Resources {
			res.Title = strings.TrimSpace(res.Title)
			res.URL = strings.TrimSpace(res.URL)
			if res.URL == "" {
				continue
			}
			kept = append(kept, res)
		}
		p.Nodes[i].Resources = kept
	}
}

// Validate ensures the payload can be materialized into a roadmap.
func (p RoadmapPayload) Validate() error {
	if len(p.Nodes) == 0 {
		return fmt.Errorf("nodes array is empty")
	}
	seen := make(map[int]struct{}, len(p.Nodes))
	for _, node := range p.Nodes {
		if strings.TrimSpace(node.Title) == "" {
			return fmt.Errorf("node %d: title is required", node.ID)
		}
		if _, ok := seen[node.ID]; ok {
			return fmt.Errorf("node id %d appears more than once", node.ID)
		}
		seen[node.ID] = struct{}{}
	}
	return nil
}

// JobSuggestion is one entry of the job-profile suggestion contract.
type JobSuggestion struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}
