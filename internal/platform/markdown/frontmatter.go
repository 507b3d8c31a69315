package markdown

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

const separator = "---\n"

// SplitFrontmatter separates the YAML header from the body. Content without a
// header yields an empty raw block and the full content as body.
func SplitFrontmatter(content string) (string, string, error) {
	content = strings.ReplaceAll(content, "\r\n", "\n")
	if !strings.HasPrefix(content, separator) {
		return "", content, nil
	}
	rest := strings.TrimPrefix(content, separator)
	if strings.HasPrefix(rest, separator) {
		return "", strings.TrimPrefix(rest, separator), nil
	}
	idx := strings.Index(rest, "\n---\n")
	if idx < 0 {
		if strings.HasSuffix(rest, "\n---") {
			return strings.TrimSuffix(rest, "\n---"), "", nil
		}
		return "", "", fmt.Errorf("invalid frontmatter: missing closing separator")
	}
	return rest[:idx], rest[idx+len("\n---\n"):], nil
}

// DecodeFrontmatter unmarshals the YAML header into dst and returns the body.
func DecodeFrontmatter(content string, dst any) (string, error) {
	raw, body, err := SplitFrontmatter(content)
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(raw) == "" {
		return body, nil
	}
	if err := yaml.Unmarshal([]byte(raw), dst); err != nil {
		return "", fmt.Errorf("unmarshal frontmatter: %w", err)
	}
	return body, nil
}

// CountWords counts whitespace-separated tokens, ignoring markdown heading and
// list markers that stand alone.
func CountWords(body string) int {
	count := 0
	for _, field := range strings.Fields(body) {
		if isMarker(field) {
			continue
		}
		count++
	}
	return count
}

// CountChars counts the characters of every counted word, excluding
// whitespace.
func CountChars(body string) int {
	count := 0
	for _, field := range strings.Fields(body) {
		if isMarker(field) {
			continue
		}
		count += len([]rune(field))
	}
	return count
}

func isMarker(field string) bool {
	switch field {
	case "-", "*", "+", ">", "---", "***":
		return true
	}
	return strings.Trim(field, "#") == ""
}
