// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
package model

import (
	"fmt"

	"github.com/awalterschulze/gographviz"
	"github.com/specialistvlad/gretago/internal/config"
	"github.com/specialistvlad/gretago/internal/diagram"
	"github.com/specialistvlad/gretago/internal/node"
	"gopkg.in/yaml.v3"
)

// Summary is the exportable overview of a model.
type Summary struct {
	Nodes      int              `yaml:"nodes"`
	Components int              `yaml:"components"`
	Targets    []string         `yaml:"targets"`
	Roles      map[string]int   `yaml:"roles"`
	Precision  config.Precision `yaml:"precision"`
	Cores      int              `yaml:"cores"`
	Compile    bool             `yaml:"compile"`
	Members    [][]string       `yaml:"members"`
}

// Summary counts the model's nodes by role and lists every component.
func (m *Model) Summary() Summary {
	s := Summary{
		Nodes:      m.graph.Nodes.Len(),
		Components: m.graph.Components.Count(),
		Roles:      make(map[string]int, len(node.Roles)),
		Precision:  m.options.Precision,
		Cores:      m.options.CoreCount,
		Compile:    m.options.Compile,
	}
	for _, r := range node.Roles {
		s.Roles[r.String()] = 0
	}
	for _, r := range m.graph.Roles {
		s.Roles[r.String()]++
	}
	for _, id := range m.graph.Seeds {
		s.Targets = append(s.Targets, m.Label(id))
	}
	for i := 0; i < s.Components; i++ {
		var labels []string
		for _, id := range m.graph.Components.Members(i) {
			labels = append(labels, m.Label(id))
		}
		s.Members = append(s.Members, labels)
	}
	return s
}

// YAML renders the summary as a YAML document.
func (m *Model) YAML() ([]byte, error) {
	out, err := yaml.Marshal(m.Summary())
	if err != nil {
		return nil, fmt.Errorf("encoding model summary: %w", err)
	}
	return out, nil
}

// Diagram builds the labelled graph of the model for external rendering.
func (m *Model) Diagram() (*gographviz.Graph, error) {
	return diagram.Build(m)
}
