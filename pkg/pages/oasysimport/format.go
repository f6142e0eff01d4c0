package oasysimport

import (
	"fmt"
	"strings"
)

func formatSections(sections []int) string {
	parts := make([]string, len(sections))
	for i, section := range sections {
		parts[i] = fmt.Sprintf("Section %d", section)
	}
	return strings.Join(parts, ", ")
}
