// Package config provides configuration types, defaults, and persistence for the evaluator.
package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// SaveChallengeDirs updates the challenge_dirs list in the config file.
// This preserves comments and formatting in other sections by using yaml.Node.
func SaveChallengeDirs(configPath string, dirs []string) error {
	data, err := os.ReadFile(configPath)
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("reading config: %w", err)
	}

	var doc yaml.Node
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return fmt.Errorf("parsing config: %w", err)
		}
	}

	dirsNode := buildChallengeDirsNode(dirs)

	if doc.Kind == 0 {
		doc = yaml.Node{
			Kind: yaml.DocumentNode,
			Content: []*yaml.Node{
				{
					Kind: yaml.MappingNode,
					Content: []*yaml.Node{
						{Kind: yaml.ScalarNode, Value: "challenge_dirs"},
						dirsNode,
					},
				},
			},
		}
	} else if doc.Kind == yaml.DocumentNode && len(doc.Content) > 0 {
		root := doc.Content[0]
		if root.Kind == yaml.MappingNode {
			found := false
			for i := 0; i < len(root.Content)-1; i += 2 {
				if root.Content[i].Value == "challenge_dirs" {
					root.Content[i+1] = dirsNode
					found = true
					break
				}
			}
			if !found {
				root.Content = append(root.Content,
					&yaml.Node{Kind: yaml.ScalarNode, Value: "challenge_dirs"},
					dirsNode,
				)
			}
		}
	}

	var buf bytes.Buffer
	encoder := yaml.NewEncoder(&buf)
	encoder.SetIndent(2)
	if err := encoder.Encode(&doc); err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	_ = encoder.Close()

	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	temp, err := os.CreateTemp(dir, ".vimgolf.yaml.tmp.*")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tempPath := temp.Name()

	if _, err := temp.Write(buf.Bytes()); err != nil {
		_ = temp.Close()
		_ = os.Remove(tempPath)
		return fmt.Errorf("writing temp file: %w", err)
	}
	if err := temp.Close(); err != nil {
		_ = os.Remove(tempPath)
		return fmt.Errorf("closing temp file: %w", err)
	}

	if err := os.Rename(tempPath, configPath); err != nil {
		_ = os.Remove(tempPath)
		return fmt.Errorf("renaming temp file: %w", err)
	}

	return nil
}

func buildChallengeDirsNode(dirs []string) *yaml.Node {
	node := &yaml.Node{
		Kind:    yaml.SequenceNode,
		Content: make([]*yaml.Node, 0, len(dirs)),
	}
	for _, d := range dirs {
		node.Content = append(node.Content, &yaml.Node{Kind: yaml.ScalarNode, Value: d})
	}
	return node
}

// AddChallengeDir appends a directory to the config and saves, skipping
// duplicates.
func AddChallengeDir(configPath string, dir string, existing []string) error {
	for _, d := range existing {
		if d == dir {
			return nil
		}
	}
	return SaveChallengeDirs(configPath, append(existing, dir))
}

// RemoveChallengeDir removes a directory from the config and saves.
func RemoveChallengeDir(configPath string, dir string, existing []string) error {
	updated := make([]string, 0, len(existing))
	for _, d := range existing {
		if d != dir {
			updated = append(updated, d)
		}
	}
	if len(updated) == 0 {
		return fmt.Errorf("cannot remove the only challenge directory")
	}
	return SaveChallengeDirs(configPath, updated)
}
